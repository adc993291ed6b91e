// Package proxy synthesizes a single stream of pointer events from mouse,
// touch and native pointer input.
//
// A Proxy serves one event root, such as a document. It attaches native
// listeners lazily, only for the logical types somebody is bound to, and
// delivers canonical events through the host's Dispatch. A Registry owns the
// proxies of every root of a host.
package proxy

import (
	"fmt"
	"time"

	"honnef.co/go/pointerproxy/f32"
	"honnef.co/go/pointerproxy/io/native"
	"honnef.co/go/pointerproxy/io/pointer"

	"gioui.org/io/event"
)

// Host is the event framework a proxy is embedded in.
type Host interface {
	Subscribe(root event.Tag, t native.Type, h native.Handler)
	Unsubscribe(root event.Tag, t native.Type, h native.Handler)
	// Dispatch delivers ev to target. The proxy doesn't expect the host to
	// bubble the event, but hosts may do so.
	Dispatch(ev pointer.Event, target event.Tag)
	// HitTest returns the target at p, in client coordinates, or nil.
	HitTest(root event.Tag, p f32.Point) event.Tag
	// Contains reports whether descendant is ancestor or one of its
	// descendants.
	Contains(ancestor, descendant event.Tag) bool
}

// Scheduler runs f after d has elapsed. Hosts with an event loop should run f
// on that loop.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type SchedulerFunc func(d time.Duration, f func())

func (fn SchedulerFunc) AfterFunc(d time.Duration, f func()) { fn(d, f) }

type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// Mode selects which native events a proxy consumes.
type Mode uint8

const (
	// Synthesize derives pointer events from mouse and touch events.
	Synthesize Mode = iota
	// Native relays the host's own pointer events.
	Native
	// Vendor relays MSPointer events, fixing their pointer type and pressure.
	Vendor
)

func (m Mode) String() string {
	switch m {
	case Synthesize:
		return "synthesize"
	case Native:
		return "native"
	case Vendor:
		return "vendor"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "synthesize":
		return Synthesize, nil
	case "native":
		return Native, nil
	case "vendor":
		return Vendor, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}
