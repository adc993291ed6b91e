package proxy

import (
	"sync"
	"time"

	"honnef.co/go/pointerproxy/f32"
)

const (
	// DefaultSuppressThreshold is the per-axis distance under which a mouse
	// event is attributed to a recent touch start.
	DefaultSuppressThreshold = 20
	// DefaultSuppressWindow is how long a touch start is remembered. Browsers
	// emit the compatibility mouse events up to about 1.5s after the touch.
	DefaultSuppressWindow = 1550 * time.Millisecond
)

type SuppressorOptions struct {
	Threshold float32
	Window    time.Duration
	// TouchCapable is false for hosts that never produce touch events, in
	// which case no mouse event is ever considered synthetic.
	TouchCapable bool
	Scheduler    Scheduler
}

// Suppressor recognizes mouse events that a platform synthesizes after a
// touch interaction. It is a heuristic: mouse events close to a recent touch
// start are assumed to be compatibility events.
//
// A Suppressor is safe for concurrent use, so that its scheduler may fire on
// another goroutine.
type Suppressor struct {
	threshold float32
	window    time.Duration
	disabled  bool
	scheduler Scheduler

	mu     sync.Mutex
	seq    uint64
	recent []recentTouch
}

type recentTouch struct {
	id     uint64
	client f32.Point
}

func NewSuppressor(opts SuppressorOptions) *Suppressor {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultSuppressThreshold
	}
	if opts.Window <= 0 {
		opts.Window = DefaultSuppressWindow
	}
	if opts.Scheduler == nil {
		opts.Scheduler = timeScheduler{}
	}
	return &Suppressor{
		threshold: opts.Threshold,
		window:    opts.Window,
		disabled:  !opts.TouchCapable,
		scheduler: opts.Scheduler,
	}
}

// Record remembers a touch start at client for the suppression window.
func (s *Suppressor) Record(client f32.Point) {
	if s.disabled {
		return
	}
	s.mu.Lock()
	s.seq++
	id := s.seq
	s.recent = append(s.recent, recentTouch{id: id, client: client})
	s.mu.Unlock()

	s.scheduler.AfterFunc(s.window, func() { s.forget(id) })
}

// forget removes the entry with the given id. Entries are matched by id
// because the log may have changed since the removal was scheduled.
func (s *Suppressor) forget(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rt := range s.recent {
		if rt.id == id {
			s.recent = append(s.recent[:i], s.recent[i+1:]...)
			return
		}
	}
}

// IsLikelySynthetic reports whether a mouse event at client is probably the
// compatibility event of a recent touch.
func (s *Suppressor) IsLikelySynthetic(client f32.Point) bool {
	if s.disabled {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.recent) - 1; i >= 0; i-- {
		if f32.Near(client, s.recent[i].client, s.threshold) {
			return true
		}
	}
	return false
}

// Len returns the number of remembered touch starts.
func (s *Suppressor) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recent)
}
