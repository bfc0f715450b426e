package gesture

import "time"

// Sample is one normalized movement reading: cumulative deltas from the
// press origin, instantaneous velocity, and time since press. Samples are
// transient; one is derived per movement event and not retained beyond the
// session's last-sample slot.
type Sample struct {
	DX, DY  float64
	VX, VY  float64 // units/sec, delta over wall clock since the previous sample
	Elapsed time.Duration
}

// tracker converts raw positions + timestamps into Samples. It owns no
// policy: thresholds, locking and commits live upstream.
type tracker struct {
	startX, startY float64
	startAt        time.Time
	lastX, lastY   float64
	lastAt         time.Time
	lastVX, lastVY float64
}

func newTracker(x, y float64, at time.Time) tracker {
	return tracker{
		startX: x, startY: y, startAt: at,
		lastX: x, lastY: y, lastAt: at,
	}
}

func (t *tracker) sample(x, y float64, at time.Time) Sample {
	s := Sample{
		DX:      x - t.startX,
		DY:      y - t.startY,
		Elapsed: at.Sub(t.startAt),
	}
	// Velocity over the previous sample's interval, not over the whole
	// gesture: averaging from the start would decay a late flick to nothing.
	dt := at.Sub(t.lastAt).Seconds()
	if dt > 0 {
		s.VX = (x - t.lastX) / dt
		s.VY = (y - t.lastY) / dt
		t.lastVX, t.lastVY = s.VX, s.VY
	} else {
		// Same-timestamp sample (event coalescing): keep the last reading
		// rather than dividing by zero.
		s.VX, s.VY = t.lastVX, t.lastVY
	}
	t.lastX, t.lastY, t.lastAt = x, y, at
	return s
}
