package native

import (
	"gioui.org/io/event"
	giopointer "gioui.org/io/pointer"

	"honnef.co/go/pointerproxy/io/pointer"
)

var gioMouseTypes = map[giopointer.Type]Type{
	giopointer.Press:   MouseDown,
	giopointer.Release: MouseUp,
	giopointer.Move:    MouseMove,
	giopointer.Drag:    MouseMove,
	giopointer.Enter:   MouseOver,
	giopointer.Leave:   MouseOut,
}

var gioTouchTypes = map[giopointer.Type]Type{
	giopointer.Press:   TouchStart,
	giopointer.Move:    TouchMove,
	giopointer.Drag:    TouchMove,
	giopointer.Release: TouchEnd,
	giopointer.Cancel:  TouchCancel,
}

// FromGio converts a Gio pointer event that was delivered to target. Gio
// reports touch contacts as individual pointers; each becomes a touch event
// with a single changed contact. Events without a native counterpart, such
// as scrolling, are reported with ok == false.
func FromGio(ev giopointer.Event, target event.Tag) (out *Event, ok bool) {
	switch ev.Source {
	case giopointer.Mouse:
		typ, ok := gioMouseTypes[ev.Type]
		if !ok {
			return nil, false
		}
		out = &Event{
			Type:      typ,
			Target:    target,
			Has:       FieldClient | FieldTime | FieldModifiers | FieldButtons,
			Time:      ev.Time,
			Client:    ev.Position,
			Modifiers: ev.Modifiers,
			Buttons:   pointer.Buttons(ev.Buttons),
		}
		if btn, ok := gioButton(ev.Buttons); ok {
			out.Button = btn
			out.Has |= FieldButton
		}
		return out, true
	case giopointer.Touch:
		typ, ok := gioTouchTypes[ev.Type]
		if !ok {
			return nil, false
		}
		return &Event{
			Type:      typ,
			Target:    target,
			Has:       FieldTime | FieldModifiers,
			Time:      ev.Time,
			Modifiers: ev.Modifiers,
			Changed: []Touch{{
				ID:     int(ev.PointerID),
				Target: target,
				Client: ev.Position,
				Screen: ev.Position,
			}},
		}, true
	default:
		return nil, false
	}
}

// gioButton returns the DOM button code of the lowest pressed button.
func gioButton(b giopointer.Buttons) (int, bool) {
	switch {
	case b&giopointer.ButtonPrimary != 0:
		return 0, true
	case b&giopointer.ButtonTertiary != 0:
		return 1, true
	case b&giopointer.ButtonSecondary != 0:
		return 2, true
	default:
		return 0, false
	}
}
