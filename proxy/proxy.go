package proxy

import (
	"log/slog"

	"honnef.co/go/pointerproxy/io/native"
	"honnef.co/go/pointerproxy/io/pointer"

	"gioui.org/io/event"
)

var _ native.Handler = (*Proxy)(nil)

var mouseTypes = [native.NumTypes]pointer.Type{
	native.MouseDown: pointer.Down,
	native.MouseUp:   pointer.Up,
	native.MouseMove: pointer.Move,
	native.MouseOver: pointer.Over,
	native.MouseOut:  pointer.Out,
}

var relayedTypes = [native.NumTypes]pointer.Type{
	native.PointerDown:     pointer.Down,
	native.PointerUp:       pointer.Up,
	native.PointerCancel:   pointer.Cancel,
	native.PointerMove:     pointer.Move,
	native.PointerOver:     pointer.Over,
	native.PointerOut:      pointer.Out,
	native.MSPointerDown:   pointer.Down,
	native.MSPointerUp:     pointer.Up,
	native.MSPointerCancel: pointer.Cancel,
	native.MSPointerMove:   pointer.Move,
	native.MSPointerOver:   pointer.Over,
	native.MSPointerOut:    pointer.Out,
}

// Proxy synthesizes pointer events for a single event root. It is not safe
// for concurrent use; all methods are expected to run on the host's event
// loop.
type Proxy struct {
	root       event.Tag
	host       Host
	mode       Mode
	ledger     *Ledger
	tracker    Tracker
	suppressor *Suppressor
	logger     *slog.Logger
	inst       *instruments

	// mouse is the one mouse pointer. It is kept out of the tracker so that it
	// doesn't affect the primary status of touch contacts.
	mouse LogicalPointer

	attached [native.NumTypes]bool
	handlers [native.NumTypes]func(ev *native.Event)
}

func New(root event.Tag, host Host, opts ...Option) *Proxy {
	o := resolveOptions(opts)
	p := &Proxy{
		root:       root,
		host:       host,
		mode:       o.mode,
		ledger:     NewLedger(DependenciesFor(o.mode)),
		suppressor: o.suppressor,
		logger:     o.logger,
		inst:       getInstruments(),
		mouse:      LogicalPointer{IsPrimary: true},
	}
	if p.suppressor == nil {
		p.suppressor = NewSuppressor(o.suppress)
	}

	switch o.mode {
	case Synthesize:
		for _, n := range []native.Type{native.MouseDown, native.MouseUp, native.MouseMove, native.MouseOver, native.MouseOut} {
			p.handlers[n] = p.proxyMouse
		}
		p.handlers[native.TouchStart] = p.proxyTouchStart
		p.handlers[native.TouchMove] = p.proxyTouchMove
		p.handlers[native.TouchEnd] = p.proxyTouchEnd
		p.handlers[native.TouchCancel] = p.proxyTouchCancel
	case Native:
		for n := native.PointerDown; n <= native.PointerOut; n++ {
			p.handlers[n] = p.relayNative
		}
	case Vendor:
		for n := native.MSPointerDown; n <= native.MSPointerOut; n++ {
			p.handlers[n] = p.relayVendor
		}
	}
	return p
}

func (p *Proxy) Root() event.Tag { return p.root }

func (p *Proxy) Mode() Mode { return p.mode }

// Tracker returns the proxy's active touch contacts.
func (p *Proxy) Tracker() *Tracker { return &p.tracker }

// Mouse returns the state of the mouse pointer.
func (p *Proxy) Mouse() LogicalPointer { return p.mouse }

func (p *Proxy) Ledger() *Ledger { return p.ledger }

// IsBound reports whether any logical type is still bound. A proxy that
// isn't bound has no native listeners attached.
func (p *Proxy) IsBound() bool { return p.ledger.IsBound() }

// Bind registers interest in t, attaching the native listeners t needs.
func (p *Proxy) Bind(t pointer.Type) {
	p.sync(p.ledger.Bind(t))
}

// Unbind releases interest in t, detaching native listeners nothing else
// needs.
func (p *Proxy) Unbind(t pointer.Type) {
	p.sync(p.ledger.Unbind(t))
}

// sync brings the attachment state of the native types in ns in line with
// their reference counts. The host may call back into the proxy from
// Subscribe or Unsubscribe; attachment state is updated before calling the
// host so that nested calls observe it.
func (p *Proxy) sync(ns []native.Type) {
	for _, n := range ns {
		want := p.ledger.NativeCount(n) > 0
		if p.attached[n] == want {
			continue
		}
		p.attached[n] = want
		if want {
			p.logger.Debug("attaching native listener", "type", n)
			p.inst.recordListeners(1)
			p.host.Subscribe(p.root, n, p)
		} else {
			p.logger.Debug("detaching native listener", "type", n)
			p.inst.recordListeners(-1)
			p.host.Unsubscribe(p.root, n, p)
		}
	}
}

// Attached reports whether the native listener for n is attached.
func (p *Proxy) Attached(n native.Type) bool {
	return p.attached[n]
}

// HandleNativeEvent implements native.Handler.
func (p *Proxy) HandleNativeEvent(ev *native.Event) {
	if int(ev.Type) >= len(p.handlers) {
		return
	}
	if h := p.handlers[ev.Type]; h != nil {
		h(ev)
	}
}

func (p *Proxy) dispatch(ev pointer.Event, target event.Tag) {
	p.inst.recordDispatch(ev.Type)
	p.host.Dispatch(ev, target)
}

func (p *Proxy) proxyMouse(ev *native.Event) {
	typ := mouseTypes[ev.Type]
	p.mouse.Target = ev.Target

	// Only dispatch when somebody is bound, and not for the compatibility
	// mouse events that follow a touch.
	if !p.ledger.Interested(typ) {
		return
	}
	client := ev.Lookup(native.FieldClient).Client
	if p.suppressor.IsLikelySynthetic(client) {
		p.logger.Debug("discarding simulated mouse event", "type", ev.Type, "client", client)
		p.inst.recordSuppressed()
		return
	}
	p.dispatch(normalizeMouse(ev, typ), ev.Target)
}

// changedTouches returns the changed contacts of a touch event. Events
// injected by scripts may lack them altogether.
func (p *Proxy) changedTouches(ev *native.Event) ([]native.Touch, bool) {
	touches := ev.Changed
	if touches == nil {
		touches = ev.Deepest().Changed
	}
	if touches == nil {
		p.logger.Debug("ignoring touch event without changed touches", "type", ev.Type)
		p.inst.recordMalformed(ev.Type)
		return nil, false
	}
	return touches, true
}

func (p *Proxy) proxyTouchStart(ev *native.Event) {
	touches, ok := p.changedTouches(ev)
	if !ok {
		return
	}
	for _, t := range touches {
		lp := p.tracker.Track(t.ID, t.Target)

		if p.ledger.Interested(pointer.Down) {
			p.dispatch(normalizeTouch(ev, t, pointer.Down, nil, lp.IsPrimary), t.Target)
		}
		// Touch contacts have no hover state that would have produced an
		// over event before the down event.
		if p.ledger.Interested(pointer.Over) {
			p.dispatch(normalizeTouch(ev, t, pointer.Over, nil, lp.IsPrimary), t.Target)
		}

		p.suppressor.Record(t.Client)
	}
}

func (p *Proxy) proxyTouchMove(ev *native.Event) {
	touches, ok := p.changedTouches(ev)
	if !ok {
		return
	}
	for _, t := range touches {
		if !p.ledger.Interested(pointer.Move | pointer.Over | pointer.Out) {
			continue
		}

		lp := p.tracker.FetchOrTrack(t.ID, t.Target)
		// Touch events keep being dispatched to the target of the touch
		// start; pointer events follow the element under the contact.
		actual := p.host.HitTest(p.root, t.Client)

		if lp.Target == actual {
			if p.ledger.Interested(pointer.Move) {
				p.dispatch(normalizeTouch(ev, t, pointer.Move, nil, lp.IsPrimary), actual)
			}
			continue
		}

		previous := lp.Target
		lp.Target = actual

		if p.ledger.Interested(pointer.Out) {
			p.dispatch(normalizeTouch(ev, t, pointer.Out, actual, lp.IsPrimary), previous)
		}
		if p.ledger.Interested(pointer.Move) {
			p.dispatch(normalizeTouch(ev, t, pointer.Move, nil, lp.IsPrimary), actual)
		}
		if p.ledger.Interested(pointer.Over) {
			p.dispatch(normalizeTouch(ev, t, pointer.Over, previous, lp.IsPrimary), actual)
		}
	}
}

func (p *Proxy) proxyTouchEnd(ev *native.Event) {
	p.finishTouches(ev, pointer.Up)
}

func (p *Proxy) proxyTouchCancel(ev *native.Event) {
	p.finishTouches(ev, pointer.Cancel)
}

// finishTouches dispatches typ followed by an out event for every changed
// contact and stops tracking the contacts.
func (p *Proxy) finishTouches(ev *native.Event, typ pointer.Type) {
	touches, ok := p.changedTouches(ev)
	if !ok {
		return
	}
	for _, t := range touches {
		lp := p.tracker.FetchOrTrack(t.ID, t.Target)

		// Touch end and cancel are dispatched to the target of the touch
		// start, but pointer events go to the element under the contact. The
		// hit test is done at most once per contact.
		var actual event.Tag
		resolved := false
		target := func() event.Tag {
			if !resolved {
				actual = p.host.HitTest(p.root, t.Client)
				resolved = true
			}
			return actual
		}

		if p.ledger.Interested(typ) {
			p.dispatch(normalizeTouch(ev, t, typ, nil, lp.IsPrimary), target())
		}
		if p.ledger.Interested(pointer.Out) {
			p.dispatch(normalizeTouch(ev, t, pointer.Out, nil, lp.IsPrimary), target())
		}

		p.tracker.Untrack(t.ID)
	}
}

func (p *Proxy) relayNative(ev *native.Event) {
	typ := relayedTypes[ev.Type]
	if p.ledger.Interested(typ) {
		p.dispatch(normalizeNative(ev, typ, false), ev.Target)
	}
}

func (p *Proxy) relayVendor(ev *native.Event) {
	typ := relayedTypes[ev.Type]
	if p.ledger.Interested(typ) {
		p.dispatch(normalizeNative(ev, typ, true), ev.Target)
	}
}
