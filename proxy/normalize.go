package proxy

import (
	"honnef.co/go/pointerproxy/io/native"
	"honnef.co/go/pointerproxy/io/pointer"

	"gioui.org/io/event"
)

const (
	// Finger contacts are reported with a fixed size, approximating the
	// width of a fingertip.
	touchSize = 20
	// activePressure is reported for pressed buttons and touch contacts when
	// the device doesn't measure pressure.
	activePressure = 0.5
)

// chordedButtons maps DOM button codes to W3C chorded button bits.
var chordedButtons = map[int]pointer.Buttons{
	0: pointer.ButtonPrimary,   // left
	1: pointer.ButtonTertiary,  // middle
	2: pointer.ButtonSecondary, // right
}

// copyable lists the properties that are taken from the native event when
// the canonical event doesn't set them itself.
var copyable = [...]native.Field{
	native.FieldScreen,
	native.FieldClient,
	native.FieldModifiers,
	native.FieldRelatedTarget,
	native.FieldDetail,
	native.FieldTime,
}

// copyFields fills every copyable field not in explicit, preferring ev over
// the deepest native event.
func copyFields(dst *pointer.Event, explicit native.Field, ev *native.Event) {
	for _, f := range copyable {
		if explicit&f != 0 {
			continue
		}
		src := ev.Lookup(f)
		switch f {
		case native.FieldScreen:
			dst.Screen = src.Screen
		case native.FieldClient:
			dst.Client = src.Client
		case native.FieldModifiers:
			dst.Modifiers = src.Modifiers
		case native.FieldRelatedTarget:
			dst.RelatedTarget = src.RelatedTarget
		case native.FieldDetail:
			dst.Detail = src.Detail
		case native.FieldTime:
			dst.Time = src.Time
		}
	}
}

// mouseButtons normalizes button and buttons. Chorded buttons make this
// different from regular mouse button normalization.
func mouseButtons(ev *native.Event) (button int, buttons pointer.Buttons) {
	nat := ev.Deepest()
	if nat.Reports(native.FieldButtons) {
		if nat.Buttons == 0 {
			return -1, 0
		}
		return nat.Button, nat.Buttons
	}
	if which := ev.Lookup(native.FieldWhich); which.Reports(native.FieldWhich) && which.Which == 0 {
		return -1, 0
	}
	return nat.Button, chordedButtons[nat.Button]
}

func normalizeMouse(ev *native.Event, typ pointer.Type) pointer.Event {
	button, buttons := mouseButtons(ev)

	nat := ev.Deepest()
	pressure := float32(0)
	switch {
	case nat.Reports(native.FieldPressure) && nat.Pressure != 0:
		pressure = nat.Pressure
	case buttons != 0:
		pressure = activePressure
	}

	out := pointer.Event{
		Type:        typ,
		Button:      button,
		Buttons:     buttons,
		PointerID:   pointer.MouseID,
		PointerType: pointer.Mouse,
		Pressure:    pressure,
		IsPrimary:   true,
	}
	copyFields(&out, 0, ev)
	return out
}

func normalizeTouch(ev *native.Event, t native.Touch, typ pointer.Type, related event.Tag, primary bool) pointer.Event {
	out := pointer.Event{
		Type:          typ,
		Screen:        t.Screen,
		Client:        t.Client,
		RelatedTarget: related,
		Button:        0,
		Buttons:       pointer.ButtonPrimary,
		PointerID:     pointer.TouchID(t.ID),
		PointerType:   pointer.Touch,
		Width:         touchSize,
		Height:        touchSize,
		Pressure:      activePressure,
		IsPrimary:     primary,
	}
	copyFields(&out, native.FieldScreen|native.FieldClient|native.FieldRelatedTarget, ev)
	return out
}

// normalizeNative relays a native pointer event. Every property is taken
// from ev, falling back to the deepest native event.
func normalizeNative(ev *native.Event, typ pointer.Type, vendor bool) pointer.Event {
	out := pointer.Event{Type: typ}
	copyFields(&out, 0, ev)

	if src := ev.Lookup(native.FieldButton); src.Reports(native.FieldButton) {
		out.Button = src.Button
	} else {
		out.Button = -1
	}
	out.Buttons = ev.Lookup(native.FieldButtons).Buttons
	out.PointerID = pointer.ID(ev.Lookup(native.FieldPointerID).PointerID)
	size := ev.Lookup(native.FieldSize)
	out.Width, out.Height = size.Width, size.Height
	tilt := ev.Lookup(native.FieldTilt)
	out.TiltX, out.TiltY = tilt.TiltX, tilt.TiltY
	out.IsPrimary = ev.Lookup(native.FieldIsPrimary).IsPrimary

	// Prefixed implementations report numeric pointer types, which
	// ParseSource understands as well.
	if src, ok := pointer.ParseSource(ev.Lookup(native.FieldPointerType).PointerType); ok {
		out.PointerType = src
	}

	out.Pressure = ev.Lookup(native.FieldPressure).Pressure
	if vendor && out.Pressure == 0 && out.Buttons != 0 {
		// Prefixed implementations don't report 0.5 for contacts without
		// pressure sensing.
		out.Pressure = activePressure
	}
	return out
}
