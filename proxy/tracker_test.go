package proxy

import "testing"

func TestTrackerPrimary(t *testing.T) {
	var tr Tracker
	a, b := &elem{"a"}, &elem{"b"}

	first := tr.Track(0, a)
	second := tr.Track(1, b)
	if !first.IsPrimary {
		t.Errorf("first contact should be primary")
	}
	if second.IsPrimary {
		t.Errorf("concurrent contact should not be primary")
	}

	tr.Untrack(0)
	if third := tr.Track(2, a); third.IsPrimary {
		t.Errorf("contact started while another is active should not be primary")
	}

	tr.Untrack(1)
	tr.Untrack(2)
	if tr.Len() != 0 {
		t.Fatalf("Len = %d after untracking everything", tr.Len())
	}
	if fourth := tr.Track(3, b); !fourth.IsPrimary {
		t.Errorf("contact started while none is active should be primary")
	}
}

func TestTrackerReplace(t *testing.T) {
	var tr Tracker
	a, b := &elem{"a"}, &elem{"b"}
	tr.Track(7, a)
	lp := tr.Track(7, b)
	if tr.Len() != 1 {
		t.Fatalf("Len = %d, want 1 after re-tracking the same id", tr.Len())
	}
	if lp.Target != b || !lp.IsPrimary {
		t.Errorf("replacement = %+v, want primary at b", lp)
	}
	if got, _ := tr.Lookup(7); got != lp {
		t.Errorf("Lookup returned the replaced record")
	}
}

func TestTrackerFetchOrTrack(t *testing.T) {
	var tr Tracker
	a, b := &elem{"a"}, &elem{"b"}
	lp := tr.FetchOrTrack(1, a)
	if again := tr.FetchOrTrack(1, b); again != lp {
		t.Errorf("FetchOrTrack created a new record for a tracked id")
	}
	if lp.Target != a {
		t.Errorf("FetchOrTrack changed the target of an existing record")
	}
	if tr.Len() != 1 {
		t.Errorf("Len = %d, want 1", tr.Len())
	}
}

func TestTrackerUntrackUnknown(t *testing.T) {
	var tr Tracker
	tr.Untrack(42)
	tr.Track(1, nil)
	tr.Untrack(42)
	if tr.Len() != 1 {
		t.Errorf("untracking an unknown id changed Len to %d", tr.Len())
	}
	if _, ok := tr.Lookup(42); ok {
		t.Errorf("unknown id reported as tracked")
	}
}
