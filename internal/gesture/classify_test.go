package gesture

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		name   string
		dx, dy float64
		want   Lock
	}{
		{"at rest", 0, 0, LockUndecided},
		{"below threshold", 6, 6, LockUndecided},
		{"clean horizontal", 15, 2, LockHorizontal},
		{"clean vertical", 2, 15, LockVertical},
		{"negative axes", -15, 2, LockHorizontal},
		{"horizontal without dominance", 12, 9, LockUndecided},
		{"vertical without dominance", 9, 12, LockUndecided},
		{"diagonal tie-break", 12, 12, LockVertical},
		{"dominant diagonal horizontal", 30, 12, LockHorizontal},
		{"dominant diagonal vertical", 12, 30, LockVertical},
		{"exactly at threshold", 10, 0, LockHorizontal},
	}
	for _, tc := range cases {
		got := classify(cfg, Sample{DX: tc.dx, DY: tc.dy})
		if got != tc.want {
			t.Fatalf("%s (dx=%v dy=%v): got %v, want %v", tc.name, tc.dx, tc.dy, got, tc.want)
		}
	}
}

func TestTrackerInstantaneousVelocity(t *testing.T) {
	tr := newTracker(0, 0, t0)

	s := tr.sample(10, 0, t0.Add(100*time.Millisecond)) // +10 units in 100ms
	if s.VX != 100 {
		t.Fatalf("expected 100 units/sec, got %v", s.VX)
	}

	// A slow stretch followed by a fast finish must report the finish
	// velocity, not an average from the gesture start.
	s = tr.sample(12, 0, t0.Add(600*time.Millisecond))
	if s.VX != 4 {
		t.Fatalf("expected 4 units/sec over the slow stretch, got %v", s.VX)
	}
	s = tr.sample(40, 0, t0.Add(650*time.Millisecond)) // +28 units in 50ms
	if s.VX != 560 {
		t.Fatalf("expected 560 units/sec on the flick, got %v", s.VX)
	}
	if s.DX != 40 {
		t.Fatalf("expected cumulative dx 40, got %v", s.DX)
	}

	// Same-timestamp sample keeps the previous reading instead of
	// dividing by zero.
	s = tr.sample(41, 0, t0.Add(650*time.Millisecond))
	if s.VX != 560 {
		t.Fatalf("expected velocity carried over on zero dt, got %v", s.VX)
	}
}
