package proxy

import (
	"honnef.co/go/pointerproxy/io/pointer"

	"gioui.org/io/event"
)

// HandlerFunc handles a pointer event delivered to currentTarget, which is
// the target the handler was registered on.
type HandlerFunc func(currentTarget event.Tag, ev pointer.Event)

// EnterLeave adapts h, registered for pointer.Enter or pointer.Leave, to run
// on over or out events. h only runs when the pointer came from, or went to,
// outside of the current target's subtree. Without a related target, which is
// the case for transitions across windows and for devices without hover, h
// always runs.
func EnterLeave(typ pointer.Type, contains func(ancestor, descendant event.Tag) bool, h HandlerFunc) HandlerFunc {
	return func(currentTarget event.Tag, ev pointer.Event) {
		related := ev.RelatedTarget
		if related == nil || (related != currentTarget && !contains(currentTarget, related)) {
			ev.Type = typ
			h(currentTarget, ev)
		}
	}
}
