// Package native models the low-level input events a host delivers to the
// proxy: mouse events, touch events carrying a list of changed contacts, and
// already-native pointer events, including their vendor-prefixed variants.
//
// Host frameworks commonly wrap the platform's event in their own event
// object. Event mirrors that with the Original field, and with a presence
// bitmask that distinguishes "reported as zero" from "not reported at all".
package native

import (
	"fmt"
	"time"

	"honnef.co/go/pointerproxy/f32"
	"honnef.co/go/pointerproxy/io/pointer"

	"gioui.org/io/event"
	"gioui.org/io/key"
)

type Type uint8

const (
	MouseDown Type = iota + 1
	MouseUp
	MouseMove
	MouseOver
	MouseOut

	TouchStart
	TouchMove
	TouchEnd
	TouchCancel

	PointerDown
	PointerUp
	PointerCancel
	PointerMove
	PointerOver
	PointerOut

	MSPointerDown
	MSPointerUp
	MSPointerCancel
	MSPointerMove
	MSPointerOver
	MSPointerOut

	numTypes
)

// NumTypes is one larger than the largest Type, suitable for sizing tables
// indexed by Type.
const NumTypes = int(numTypes)

var typeNames = [...]string{
	MouseDown:       "mousedown",
	MouseUp:         "mouseup",
	MouseMove:       "mousemove",
	MouseOver:       "mouseover",
	MouseOut:        "mouseout",
	TouchStart:      "touchstart",
	TouchMove:       "touchmove",
	TouchEnd:        "touchend",
	TouchCancel:     "touchcancel",
	PointerDown:     "pointerdown",
	PointerUp:       "pointerup",
	PointerCancel:   "pointercancel",
	PointerMove:     "pointermove",
	PointerOver:     "pointerover",
	PointerOut:      "pointerout",
	MSPointerDown:   "MSPointerDown",
	MSPointerUp:     "MSPointerUp",
	MSPointerCancel: "MSPointerCancel",
	MSPointerMove:   "MSPointerMove",
	MSPointerOver:   "MSPointerOver",
	MSPointerOut:    "MSPointerOut",
}

func (t Type) String() string {
	if t > 0 && t < numTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// ParseType returns the type with the DOM name s.
func ParseType(s string) (Type, bool) {
	for t := Type(1); t < numTypes; t++ {
		if typeNames[t] == s {
			return t, true
		}
	}
	return 0, false
}

func (t Type) IsMouse() bool   { return t >= MouseDown && t <= MouseOut }
func (t Type) IsTouch() bool   { return t >= TouchStart && t <= TouchCancel }
func (t Type) IsPointer() bool { return t >= PointerDown && t <= PointerOut }
func (t Type) IsVendor() bool  { return t >= MSPointerDown && t <= MSPointerOut }

// Field is a set of optional event properties.
type Field uint32

const (
	FieldScreen Field = 1 << iota
	FieldClient
	FieldModifiers
	FieldRelatedTarget
	FieldDetail
	FieldTime
	FieldWhich
	FieldButton
	FieldButtons
	FieldPressure
	FieldPointerID
	FieldPointerType
	FieldSize
	FieldTilt
	FieldIsPrimary
)

// Touch is a single contact point of a touch event.
type Touch struct {
	// ID is the platform's identifier for the contact. It is stable from
	// touch start to touch end or cancel.
	ID     int
	Target event.Tag
	Screen f32.Point
	Client f32.Point
}

// Event is a native input event.
type Event struct {
	Type   Type
	Target event.Tag
	// Has records which of the optional properties below were reported.
	Has Field

	Time          time.Duration
	Screen        f32.Point
	Client        f32.Point
	Modifiers     key.Modifiers
	RelatedTarget event.Tag
	Detail        int

	// Which is the framework-normalized button indicator, where 0 means no
	// button.
	Which   int
	Button  int
	Buttons pointer.Buttons

	Pressure float32
	// Fields of native pointer events.
	PointerID int
	// PointerType is the reported type, either a name like "touch" or a
	// numeric code for prefixed implementations.
	PointerType string
	Width       float32
	Height      float32
	TiltX       float32
	TiltY       float32
	IsPrimary   bool

	// Changed lists the contacts that changed in a touch event. A touch
	// event with a nil list is malformed.
	Changed []Touch

	// Original is the event this one wraps, if any.
	Original *Event
}

// Reports reports whether ev itself carries all fields in f.
func (ev *Event) Reports(f Field) bool {
	return ev.Has&f == f
}

// Deepest returns the innermost wrapped event, which is ev itself if it wraps
// nothing.
func (ev *Event) Deepest() *Event {
	for ev.Original != nil {
		ev = ev.Original
	}
	return ev
}

// Lookup returns ev if it reports f, or else the deepest native event. The
// returned event may not report f either.
func (ev *Event) Lookup(f Field) *Event {
	if ev.Reports(f) {
		return ev
	}
	return ev.Deepest()
}

type Handler interface {
	HandleNativeEvent(ev *Event)
}
