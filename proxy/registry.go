package proxy

import (
	"honnef.co/go/pointerproxy/io/pointer"

	"gioui.org/io/event"
)

// Registry owns one proxy per event root. Proxies are created by the first
// Bind for a root and disposed of when their last binding is released.
//
// All proxies of a registry share one suppressor, because compatibility mouse
// events aren't necessarily delivered to the root that saw the touch.
type Registry struct {
	host       Host
	opts       []Option
	suppressor *Suppressor
	proxies    map[event.Tag]*Proxy
}

func NewRegistry(host Host, opts ...Option) *Registry {
	o := resolveOptions(opts)
	s := o.suppressor
	if s == nil {
		s = NewSuppressor(o.suppress)
	}
	return &Registry{
		host:       host,
		opts:       append(opts[:len(opts):len(opts)], WithSuppressor(s)),
		suppressor: s,
		proxies:    make(map[event.Tag]*Proxy),
	}
}

// BindType returns the type that has to be bound to receive t. Enter and
// leave are derived from the bubbling over and out types.
func BindType(t pointer.Type) pointer.Type {
	switch t {
	case pointer.Enter:
		return pointer.Over
	case pointer.Leave:
		return pointer.Out
	default:
		return t
	}
}

// Bind binds t on the proxy for root, creating the proxy if necessary.
func (r *Registry) Bind(root event.Tag, t pointer.Type) {
	p, ok := r.proxies[root]
	if !ok {
		p = New(root, r.host, r.opts...)
		r.proxies[root] = p
	}
	p.Bind(BindType(t))
}

// Unbind releases a binding of t on the proxy for root. The proxy is
// disposed of once nothing is bound anymore.
func (r *Registry) Unbind(root event.Tag, t pointer.Type) {
	p, ok := r.proxies[root]
	if !ok {
		return
	}
	p.Unbind(BindType(t))
	if !p.IsBound() && r.proxies[root] == p {
		delete(r.proxies, root)
	}
}

// Proxy returns the proxy for root, if one exists.
func (r *Registry) Proxy(root event.Tag) (*Proxy, bool) {
	p, ok := r.proxies[root]
	return p, ok
}

// Len returns the number of live proxies.
func (r *Registry) Len() int {
	return len(r.proxies)
}

func (r *Registry) Suppressor() *Suppressor {
	return r.suppressor
}
