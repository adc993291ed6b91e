package f32

import "testing"

func TestNear(t *testing.T) {
	origin := Pt(100, 100)
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(100, 100), true},
		{Pt(119.9, 80.1), true},
		{Pt(120, 100), false},
		{Pt(100, 80), false},
		{Pt(80.5, 119.5), true},
		{Pt(130, 130), false},
	}
	for _, tt := range tests {
		if got := Near(origin, tt.p, 20); got != tt.want {
			t.Errorf("Near(%v, %v, 20) = %t, want %t", origin, tt.p, got, tt.want)
		}
	}
}

func TestAbs(t *testing.T) {
	if got := Abs(-3); got != 3 {
		t.Errorf("Abs(-3) = %d", got)
	}
	if got := Abs(float32(-0.5)); got != 0.5 {
		t.Errorf("Abs(-0.5) = %g", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect(10, 10, 0, 0)
	if r.Min != Pt(0, 0) || r.Max != Pt(10, 10) {
		t.Fatalf("Rect did not canonicalize: %v", r)
	}
	if !r.Contains(Pt(0, 0)) {
		t.Errorf("expected min corner to be contained")
	}
	if r.Contains(Pt(10, 5)) {
		t.Errorf("expected max edge to be excluded")
	}
	if got := r.Add(Pt(5, 5)); got != Rect(5, 5, 15, 15) {
		t.Errorf("Add = %v", got)
	}
	if !(Rectangle{}).Empty() {
		t.Errorf("zero rectangle should be empty")
	}
}
