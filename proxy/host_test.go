package proxy

import (
	"slices"
	"sort"
	"time"

	"honnef.co/go/pointerproxy/f32"
	"honnef.co/go/pointerproxy/io/native"
	"honnef.co/go/pointerproxy/io/pointer"

	"gioui.org/io/event"
)

type elem struct{ Name string }

func (e *elem) String() string { return e.Name }

// delivery is a dispatched event in a form that is easy to compare.
type delivery struct {
	Type    pointer.Type
	Target  event.Tag
	Related event.Tag
	ID      pointer.ID
	Primary bool
}

type fakeHost struct {
	subs map[native.Type][]native.Handler
	// under is what HitTest reports.
	under event.Tag
	hits  int

	events     []pointer.Event
	deliveries []delivery
	onDispatch func(ev pointer.Event, target event.Tag)
}

func newFakeHost() *fakeHost {
	return &fakeHost{subs: make(map[native.Type][]native.Handler)}
}

func (h *fakeHost) Subscribe(root event.Tag, t native.Type, hd native.Handler) {
	h.subs[t] = append(h.subs[t], hd)
}

func (h *fakeHost) Unsubscribe(root event.Tag, t native.Type, hd native.Handler) {
	h.subs[t] = slices.DeleteFunc(h.subs[t], func(o native.Handler) bool { return o == hd })
	if len(h.subs[t]) == 0 {
		delete(h.subs, t)
	}
}

func (h *fakeHost) Dispatch(ev pointer.Event, target event.Tag) {
	h.events = append(h.events, ev)
	h.deliveries = append(h.deliveries, delivery{
		Type:    ev.Type,
		Target:  target,
		Related: ev.RelatedTarget,
		ID:      ev.PointerID,
		Primary: ev.IsPrimary,
	})
	if h.onDispatch != nil {
		h.onDispatch(ev, target)
	}
}

func (h *fakeHost) HitTest(root event.Tag, p f32.Point) event.Tag {
	h.hits++
	return h.under
}

func (h *fakeHost) Contains(ancestor, descendant event.Tag) bool {
	return ancestor == descendant
}

// emit delivers ev to every subscribed handler, like a host would.
func (h *fakeHost) emit(ev *native.Event) {
	for _, hd := range slices.Clone(h.subs[ev.Type]) {
		hd.HandleNativeEvent(ev)
	}
}

func (h *fakeHost) subscribed() []native.Type {
	var out []native.Type
	for t, hs := range h.subs {
		if len(hs) > 0 {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (h *fakeHost) reset() {
	h.events = nil
	h.deliveries = nil
	h.hits = 0
}

// manualScheduler runs scheduled functions when time is advanced.
type manualScheduler struct {
	now     time.Duration
	pending []scheduled
}

type scheduled struct {
	at time.Duration
	f  func()
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) {
	s.pending = append(s.pending, scheduled{at: s.now + d, f: f})
}

func (s *manualScheduler) Advance(d time.Duration) {
	s.now += d
	var due []scheduled
	s.pending = slices.DeleteFunc(s.pending, func(sc scheduled) bool {
		if sc.at <= s.now {
			due = append(due, sc)
			return true
		}
		return false
	})
	for _, sc := range due {
		sc.f()
	}
}

func touchEvent(typ native.Type, touches ...native.Touch) *native.Event {
	if touches == nil {
		touches = []native.Touch{}
	}
	return &native.Event{Type: typ, Changed: touches}
}

func mouseEvent(typ native.Type, target event.Tag, x, y float32) *native.Event {
	return &native.Event{
		Type:    typ,
		Target:  target,
		Has:     native.FieldClient | native.FieldScreen | native.FieldButtons,
		Client:  f32.Pt(x, y),
		Screen:  f32.Pt(x, y),
		Buttons: pointer.ButtonPrimary,
	}
}
