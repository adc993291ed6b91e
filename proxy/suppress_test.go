package proxy

import (
	"testing"
	"time"

	"honnef.co/go/pointerproxy/f32"
)

func newTestSuppressor(sched Scheduler) *Suppressor {
	return NewSuppressor(SuppressorOptions{
		Threshold:    DefaultSuppressThreshold,
		Window:       DefaultSuppressWindow,
		TouchCapable: true,
		Scheduler:    sched,
	})
}

func TestSuppressorThreshold(t *testing.T) {
	s := newTestSuppressor(new(manualScheduler))
	s.Record(f32.Pt(100, 100))

	tests := []struct {
		p    f32.Point
		want bool
	}{
		{f32.Pt(100, 100), true},
		{f32.Pt(119, 119), true},
		{f32.Pt(81, 81), true},
		{f32.Pt(120, 100), false},
		{f32.Pt(80, 100), false},
		{f32.Pt(100, 120), false},
		{f32.Pt(119, 121), false},
	}
	for _, tt := range tests {
		if got := s.IsLikelySynthetic(tt.p); got != tt.want {
			t.Errorf("IsLikelySynthetic(%v) = %t, want %t", tt.p, got, tt.want)
		}
	}
}

func TestSuppressorExpiry(t *testing.T) {
	sched := new(manualScheduler)
	s := newTestSuppressor(sched)
	s.Record(f32.Pt(10, 10))

	sched.Advance(DefaultSuppressWindow - time.Millisecond)
	if !s.IsLikelySynthetic(f32.Pt(10, 10)) {
		t.Fatalf("touch start forgotten before the window elapsed")
	}
	sched.Advance(time.Millisecond)
	if s.IsLikelySynthetic(f32.Pt(10, 10)) {
		t.Fatalf("touch start remembered after the window elapsed")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after expiry", s.Len())
	}
}

func TestSuppressorExpiresEntriesIndividually(t *testing.T) {
	sched := new(manualScheduler)
	s := newTestSuppressor(sched)
	s.Record(f32.Pt(10, 10))
	sched.Advance(time.Second)
	s.Record(f32.Pt(300, 300))

	sched.Advance(DefaultSuppressWindow - time.Second)
	if s.IsLikelySynthetic(f32.Pt(10, 10)) {
		t.Errorf("first touch start should have expired")
	}
	if !s.IsLikelySynthetic(f32.Pt(300, 300)) {
		t.Errorf("second touch start expired together with the first")
	}
}

func TestSuppressorRemovesByIdentity(t *testing.T) {
	// Fire removals in reverse order of insertion. Index based removal would
	// remove the wrong entries.
	var removals []func()
	sched := SchedulerFunc(func(d time.Duration, f func()) { removals = append(removals, f) })
	s := newTestSuppressor(sched)

	s.Record(f32.Pt(0, 0))
	s.Record(f32.Pt(100, 0))
	s.Record(f32.Pt(200, 0))

	removals[2]()
	if s.IsLikelySynthetic(f32.Pt(200, 0)) {
		t.Errorf("third entry survived its own removal")
	}
	if !s.IsLikelySynthetic(f32.Pt(0, 0)) || !s.IsLikelySynthetic(f32.Pt(100, 0)) {
		t.Errorf("removal of the third entry removed another one")
	}
	removals[0]()
	if s.IsLikelySynthetic(f32.Pt(0, 0)) || !s.IsLikelySynthetic(f32.Pt(100, 0)) {
		t.Errorf("removal of the first entry removed the wrong one")
	}
	removals[1]()
	removals[1]()
	if s.Len() != 0 {
		t.Errorf("Len = %d after all removals", s.Len())
	}
}

func TestSuppressorWithoutTouch(t *testing.T) {
	sched := new(manualScheduler)
	s := NewSuppressor(SuppressorOptions{TouchCapable: false, Scheduler: sched})
	s.Record(f32.Pt(5, 5))
	if s.IsLikelySynthetic(f32.Pt(5, 5)) {
		t.Errorf("suppressor on a host without touch suppressed a mouse event")
	}
	if len(sched.pending) != 0 {
		t.Errorf("suppressor on a host without touch scheduled work")
	}
}

func TestSuppressorConfigurable(t *testing.T) {
	s := NewSuppressor(SuppressorOptions{Threshold: 5, Window: time.Second, TouchCapable: true, Scheduler: new(manualScheduler)})
	s.Record(f32.Pt(0, 0))
	if !s.IsLikelySynthetic(f32.Pt(4, 4)) {
		t.Errorf("expected suppression inside a custom threshold")
	}
	if s.IsLikelySynthetic(f32.Pt(6, 0)) {
		t.Errorf("expected no suppression outside a custom threshold")
	}
}
