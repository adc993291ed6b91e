package proxy

import (
	"testing"

	"honnef.co/go/pointerproxy/f32"
	"honnef.co/go/pointerproxy/io/native"
	"honnef.co/go/pointerproxy/io/pointer"

	"gioui.org/io/event"
	"github.com/google/go-cmp/cmp"
)

func TestRegistryLifecycle(t *testing.T) {
	host := newFakeHost()
	r := NewRegistry(host, WithScheduler(new(manualScheduler)))

	r.Bind("a", pointer.Down)
	r.Bind("a", pointer.Down)
	r.Bind("b", pointer.Up)
	if r.Len() != 2 {
		t.Fatalf("got %d proxies, want 2", r.Len())
	}
	pa, _ := r.Proxy("a")

	r.Unbind("a", pointer.Down)
	if got, ok := r.Proxy("a"); !ok || got != pa {
		t.Fatalf("proxy for a disposed of while still bound")
	}
	r.Unbind("a", pointer.Down)
	if _, ok := r.Proxy("a"); ok {
		t.Errorf("proxy for a not disposed of")
	}
	if pa.IsBound() {
		t.Errorf("disposed proxy still bound")
	}

	// Unbinding unknown roots and types does nothing.
	r.Unbind("a", pointer.Down)
	r.Unbind("c", pointer.Move)
	r.Unbind("b", pointer.Down)
	if r.Len() != 1 {
		t.Errorf("got %d proxies, want 1", r.Len())
	}

	r.Unbind("b", pointer.Up)
	if r.Len() != 0 {
		t.Errorf("got %d proxies, want 0", r.Len())
	}
	if subs := host.subscribed(); len(subs) != 0 {
		t.Errorf("native listeners left attached: %v", subs)
	}

	// Binding again creates a fresh proxy.
	r.Bind("a", pointer.Down)
	if got, _ := r.Proxy("a"); got == pa {
		t.Errorf("disposed proxy was reused")
	}
}

func TestBindType(t *testing.T) {
	tests := map[pointer.Type]pointer.Type{
		pointer.Enter:  pointer.Over,
		pointer.Leave:  pointer.Out,
		pointer.Over:   pointer.Over,
		pointer.Down:   pointer.Down,
		pointer.Cancel: pointer.Cancel,
	}
	for in, want := range tests {
		if got := BindType(in); got != want {
			t.Errorf("BindType(%v) = %v, want %v", in, got, want)
		}
	}

	host := newFakeHost()
	r := NewRegistry(host, WithScheduler(new(manualScheduler)))
	r.Bind("a", pointer.Enter)
	r.Bind("a", pointer.Leave)
	p, _ := r.Proxy("a")
	if p.Ledger().Count(pointer.Over) != 1 || p.Ledger().Count(pointer.Out) != 1 {
		t.Errorf("enter and leave did not bind over and out")
	}
	r.Unbind("a", pointer.Enter)
	r.Unbind("a", pointer.Leave)
	if r.Len() != 0 {
		t.Errorf("proxy not disposed of after unbinding enter and leave")
	}
}

// routingHost dispatches native events by root.
type routingHost struct {
	*fakeHost
	roots map[event.Tag]map[native.Type][]native.Handler
}

func (h *routingHost) Subscribe(root event.Tag, t native.Type, hd native.Handler) {
	if h.roots[root] == nil {
		h.roots[root] = make(map[native.Type][]native.Handler)
	}
	h.roots[root][t] = append(h.roots[root][t], hd)
}

func (h *routingHost) emitTo(root event.Tag, ev *native.Event) {
	for _, hd := range h.roots[root][ev.Type] {
		hd.HandleNativeEvent(ev)
	}
}

func TestRegistrySharesSuppressor(t *testing.T) {
	host := &routingHost{fakeHost: newFakeHost(), roots: make(map[event.Tag]map[native.Type][]native.Handler)}
	r := NewRegistry(host, WithScheduler(new(manualScheduler)))
	r.Bind("a", pointer.Down)
	r.Bind("b", pointer.Down)

	pa, _ := r.Proxy("a")
	pb, _ := r.Proxy("b")
	if r.Suppressor() == nil || pa.suppressor != r.Suppressor() || pb.suppressor != r.Suppressor() {
		t.Fatalf("proxies don't share the registry's suppressor")
	}

	e := &elem{"e"}
	host.emitTo("a", touchEvent(native.TouchStart, native.Touch{ID: 0, Target: e, Client: f32.Pt(10, 10)}))
	host.emitTo("b", mouseEvent(native.MouseDown, e, 10, 10))

	want := []delivery{{Type: pointer.Down, Target: e, ID: 2, Primary: true}}
	if diff := cmp.Diff(want, host.deliveries); diff != "" {
		t.Errorf("deliveries mismatch (-want +got):\n%s", diff)
	}
}

func TestEnterLeave(t *testing.T) {
	parent, child, other := &elem{"parent"}, &elem{"child"}, &elem{"other"}
	contains := func(ancestor, descendant event.Tag) bool {
		return ancestor == parent && descendant == child
	}

	var got []pointer.Type
	h := EnterLeave(pointer.Enter, contains, func(currentTarget event.Tag, ev pointer.Event) {
		got = append(got, ev.Type)
	})

	tests := []struct {
		name    string
		related event.Tag
		fire    bool
	}{
		{"no related target", nil, true},
		{"from outside", other, true},
		{"from a descendant", child, false},
		{"from itself", parent, false},
	}
	for _, tt := range tests {
		got = nil
		h(parent, pointer.Event{Type: pointer.Over, RelatedTarget: tt.related})
		if fired := len(got) == 1; fired != tt.fire {
			t.Errorf("%s: fired = %t, want %t", tt.name, fired, tt.fire)
		}
		if tt.fire && got[0] != pointer.Enter {
			t.Errorf("%s: delivered as %v, want %v", tt.name, got[0], pointer.Enter)
		}
	}
}
