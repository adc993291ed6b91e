package scene

import (
	"slices"

	"honnef.co/go/pointerproxy/f32"
	"honnef.co/go/pointerproxy/io/native"
	"honnef.co/go/pointerproxy/io/pointer"
	"honnef.co/go/pointerproxy/proxy"

	"gioui.org/io/event"
	giopointer "gioui.org/io/pointer"
)

var _ proxy.Host = (*Document)(nil)

// Document is the event root of a node tree. It implements proxy.Host.
type Document struct {
	root     *Node
	registry *proxy.Registry

	listeners map[native.Type][]native.Handler
	handlers  map[*Node]map[pointer.Type][]*Registration

	// touchTargets remembers the start target of Gio touch pointers, because
	// touch events keep being delivered to the node the touch started on.
	touchTargets map[giopointer.ID]*Node
}

// Registration is a handler registered with Document.On.
type Registration struct {
	doc      *Document
	node     *Node
	bindType pointer.Type
	fn       proxy.HandlerFunc
	removed  bool
}

func NewDocument(root *Node, opts ...proxy.Option) *Document {
	d := &Document{
		root:         root,
		listeners:    make(map[native.Type][]native.Handler),
		handlers:     make(map[*Node]map[pointer.Type][]*Registration),
		touchTargets: make(map[giopointer.ID]*Node),
	}
	d.registry = proxy.NewRegistry(d, opts...)
	return d
}

func (d *Document) Root() *Node { return d.root }

func (d *Document) Registry() *proxy.Registry { return d.registry }

// On registers fn for pointer events of type t on n. The first handler for a
// type on a node binds the type on the document's proxy.
func (d *Document) On(n *Node, t pointer.Type, fn proxy.HandlerFunc) *Registration {
	bindType := proxy.BindType(t)
	if bindType != t {
		fn = proxy.EnterLeave(t, d.Contains, fn)
	}
	reg := &Registration{doc: d, node: n, bindType: bindType, fn: fn}

	byType := d.handlers[n]
	if byType == nil {
		byType = make(map[pointer.Type][]*Registration)
		d.handlers[n] = byType
	}
	first := len(byType[bindType]) == 0
	byType[bindType] = append(byType[bindType], reg)
	if first {
		d.registry.Bind(d, bindType)
	}
	return reg
}

// Off removes the registration. The last handler for a type on a node unbinds
// the type. Calling Off more than once has no effect.
func (reg *Registration) Off() {
	if reg.removed {
		return
	}
	reg.removed = true
	d := reg.doc
	byType := d.handlers[reg.node]
	regs := slices.DeleteFunc(byType[reg.bindType], func(r *Registration) bool { return r == reg })
	if len(regs) > 0 {
		byType[reg.bindType] = regs
		return
	}
	delete(byType, reg.bindType)
	if len(byType) == 0 {
		delete(d.handlers, reg.node)
	}
	d.registry.Unbind(d, reg.bindType)
}

// Emit delivers a native event to the listeners subscribed to its type.
// Listeners added or removed by a listener take effect with the next event.
func (d *Document) Emit(ev *native.Event) {
	for _, h := range slices.Clone(d.listeners[ev.Type]) {
		h.HandleNativeEvent(ev)
	}
}

// EmitGio converts a Gio pointer event and emits it. Mouse events target the
// node under the pointer; touch events target the node the touch started on.
func (d *Document) EmitGio(ev giopointer.Event) {
	var target *Node
	if ev.Source == giopointer.Touch {
		switch ev.Type {
		case giopointer.Press:
			target = d.root.HitTest(ev.Position)
			d.touchTargets[ev.PointerID] = target
		case giopointer.Release, giopointer.Cancel:
			target = d.touchTargets[ev.PointerID]
			delete(d.touchTargets, ev.PointerID)
		default:
			target = d.touchTargets[ev.PointerID]
		}
	} else {
		target = d.root.HitTest(ev.Position)
	}
	if target == nil {
		return
	}
	if nev, ok := native.FromGio(ev, target); ok {
		d.Emit(nev)
	}
}

// Subscribe implements proxy.Host.
func (d *Document) Subscribe(root event.Tag, t native.Type, h native.Handler) {
	if root != d {
		return
	}
	d.listeners[t] = append(d.listeners[t], h)
}

// Unsubscribe implements proxy.Host.
func (d *Document) Unsubscribe(root event.Tag, t native.Type, h native.Handler) {
	if root != d {
		return
	}
	hs := slices.DeleteFunc(d.listeners[t], func(o native.Handler) bool { return o == h })
	if len(hs) == 0 {
		delete(d.listeners, t)
	} else {
		d.listeners[t] = hs
	}
}

// Listening reports whether any native listener for t is attached.
func (d *Document) Listening(t native.Type) bool {
	return len(d.listeners[t]) > 0
}

// Dispatch implements proxy.Host. The event bubbles from target to the root.
func (d *Document) Dispatch(ev pointer.Event, target event.Tag) {
	n, ok := target.(*Node)
	if !ok || n == nil {
		return
	}
	for ; n != nil; n = n.parent {
		for _, reg := range slices.Clone(d.handlers[n][ev.Type]) {
			if !reg.removed {
				reg.fn(n, ev)
			}
		}
	}
}

// HitTest implements proxy.Host.
func (d *Document) HitTest(root event.Tag, p f32.Point) event.Tag {
	if root != d {
		return nil
	}
	if hit := d.root.HitTest(p); hit != nil {
		return hit
	}
	return nil
}

// Contains implements proxy.Host.
func (d *Document) Contains(ancestor, descendant event.Tag) bool {
	a, ok := ancestor.(*Node)
	if !ok {
		return false
	}
	n, ok := descendant.(*Node)
	if !ok {
		return false
	}
	return a.Contains(n)
}
