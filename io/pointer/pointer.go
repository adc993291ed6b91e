// Package pointer defines the canonical pointer event produced by the proxy,
// independent of whether it originated from a mouse, a touch contact or a
// native pointer event.
package pointer

import (
	"fmt"
	"strings"
	"time"

	"honnef.co/go/pointerproxy/f32"

	"gioui.org/io/event"
	"gioui.org/io/key"
)

// Event is a canonical pointer event. All fields have the same meaning
// regardless of the event's source.
type Event struct {
	Type Type
	// Time is when the underlying native event was received, relative to an
	// undefined base.
	Time time.Duration

	Screen    f32.Point
	Client    f32.Point
	Modifiers key.Modifiers
	// RelatedTarget is the target the pointer came from (over) or went to
	// (out), if known.
	RelatedTarget event.Tag
	Detail        int

	// Button is the button whose state changed, or -1 if no button is
	// pressed.
	Button  int
	Buttons Buttons

	PointerID   ID
	PointerType Source
	Width       float32
	Height      float32
	Pressure    float32
	TiltX       float32
	TiltY       float32
	IsPrimary   bool
}

func (ev Event) String() string {
	return fmt.Sprintf("%s{id=%d type=%s client=%v buttons=%s primary=%t}",
		ev.Type, ev.PointerID, ev.PointerType, ev.Client, ev.Buttons, ev.IsPrimary)
}

// Type is a logical pointer event type. Types are bits so that sets of them
// can be expressed as a single value.
type Type uint8

const (
	Down Type = 1 << iota
	Up
	Cancel
	Move
	Over
	Out
	Enter
	Leave
)

// AllTypes is the set of every logical type, in dispatch table order.
var AllTypes = [...]Type{Down, Up, Cancel, Move, Over, Out, Enter, Leave}

var typeNames = map[Type]string{
	Down:   "pointerdown",
	Up:     "pointerup",
	Cancel: "pointercancel",
	Move:   "pointermove",
	Over:   "pointerover",
	Out:    "pointerout",
	Enter:  "pointerenter",
	Leave:  "pointerleave",
}

// String returns the DOM name of a single type, or a "|"-joined list of names
// for a set.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	var names []string
	for _, tt := range AllTypes {
		if t&tt != 0 {
			names = append(names, typeNames[tt])
		}
	}
	if len(names) == 0 {
		return fmt.Sprintf("Type(%#x)", uint8(t))
	}
	return strings.Join(names, "|")
}

// ParseType returns the type named s, such as "pointerdown".
func ParseType(s string) (Type, bool) {
	for t, name := range typeNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

// Source is the kind of device that produced a pointer event.
type Source uint8

const (
	Mouse Source = iota
	Touch
	Pen
)

func (s Source) String() string {
	switch s {
	case Mouse:
		return "mouse"
	case Touch:
		return "touch"
	case Pen:
		return "pen"
	default:
		return fmt.Sprintf("Source(%d)", uint8(s))
	}
}

// ParseSource returns the source named s. It accepts the W3C names as well as
// the numeric codes that prefixed implementations report.
func ParseSource(s string) (Source, bool) {
	switch s {
	case "mouse", "4":
		return Mouse, true
	case "touch", "2":
		return Touch, true
	case "pen", "3":
		return Pen, true
	default:
		return 0, false
	}
}

// Buttons is a chorded button bitmask.
type Buttons uint32

const (
	// ButtonPrimary is the primary button, usually the left button for a
	// right-handed user.
	ButtonPrimary Buttons = 1 << iota
	// ButtonSecondary is the secondary button, usually the right button for a
	// right-handed user.
	ButtonSecondary
	// ButtonTertiary is the tertiary button, usually the middle button.
	ButtonTertiary
)

func (b Buttons) String() string {
	if b == 0 {
		return "none"
	}
	var names []string
	if b&ButtonPrimary != 0 {
		names = append(names, "primary")
	}
	if b&ButtonSecondary != 0 {
		names = append(names, "secondary")
	}
	if b&ButtonTertiary != 0 {
		names = append(names, "tertiary")
	}
	if rest := b &^ (ButtonPrimary | ButtonSecondary | ButtonTertiary); rest != 0 {
		names = append(names, fmt.Sprintf("%#x", uint32(rest)))
	}
	return strings.Join(names, "|")
}

// ID identifies a pointer for the duration of its contact.
type ID int

const (
	// MouseID is the id of the one and only mouse pointer.
	MouseID ID = 1
	// TouchIDOffset is added to native touch identifiers so that they never
	// collide with MouseID.
	TouchIDOffset ID = 2
)

// TouchID returns the pointer id for a native touch identifier.
func TouchID(native int) ID {
	return ID(native) + TouchIDOffset
}
