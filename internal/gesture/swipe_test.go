package gesture

import (
	"math"
	"testing"
)

func TestSwipeOffsetClamped(t *testing.T) {
	cfg := DefaultConfig()
	for _, dx := range []float64{-1e9, -121, -120, -60, 0, 59.9, 120, 500, 1e9} {
		st := swipeUpdate(cfg, dx)
		if st.OffsetX < -cfg.MaxOffset || st.OffsetX > cfg.MaxOffset {
			t.Fatalf("offset %v escaped clamp for dx=%v", st.OffsetX, dx)
		}
	}
}

func TestSwipeActionThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		dx   float64
		want SwipeAction
	}{
		{0, ActionNone},
		{60, ActionNone}, // threshold is strict
		{61, ActionEdit},
		{-60, ActionNone},
		{-61, ActionDelete},
		{500, ActionEdit},
		{-500, ActionDelete},
	}
	for _, tc := range cases {
		if got := swipeUpdate(cfg, tc.dx).Action; got != tc.want {
			t.Fatalf("dx=%v: got %v, want %v", tc.dx, got, tc.want)
		}
	}
}

func TestSwipeBlendContinuousAndBounded(t *testing.T) {
	cfg := DefaultConfig()
	prev := -1.0
	for dx := 0.0; dx <= 200; dx += 5 {
		b := swipeUpdate(cfg, dx).Blend
		if b < 0 || b > 1 {
			t.Fatalf("blend %v out of [0,1] at dx=%v", b, dx)
		}
		if b < prev {
			t.Fatalf("blend decreased while dragging outward: %v -> %v at dx=%v", prev, b, dx)
		}
		prev = b
	}
	if got := swipeUpdate(cfg, 60).Blend; math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected blend 0.5 at half of max offset, got %v", got)
	}
	// Dragging back toward zero reverses the factor exactly.
	if a, b := swipeUpdate(cfg, 90).Blend, swipeUpdate(cfg, 90).Blend; a != b {
		t.Fatalf("blend not a pure function of dx: %v vs %v", a, b)
	}
}

func TestSwipeDecideOffsetOrVelocity(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		name string
		dx   float64
		vx   float64
		want SwipeAction
	}{
		{"slow past offset", 80, 50, ActionEdit},
		{"fast short flick right", 20, 400, ActionEdit},
		{"slow short drag", 40, 50, ActionNone},
		{"slow past delete offset", -80, -50, ActionDelete},
		{"fast short flick left", -20, -500, ActionDelete},
		{"exactly at thresholds cancels", 60, 300, ActionNone},
		{"conflicting reads follow position", 80, -900, ActionEdit},
		{"conflicting reads follow position left", -80, 900, ActionDelete},
	}
	for _, tc := range cases {
		st := swipeUpdate(cfg, tc.dx)
		if got := swipeDecide(cfg, st, tc.vx); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}
