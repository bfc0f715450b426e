package gesture

import "math"

// classify decides the axis lock for a session from cumulative deltas.
//
// The lock fires the first time either axis's magnitude reaches
// cfg.LockThreshold AND that axis dominates the other by cfg.AxisBias; until
// then the session stays undecided. If both axes have crossed the threshold
// with no clear dominance (a diagonal press), vertical wins: reordering is
// the default, lower-risk interaction, while swipe-to-delete should require
// clearer intent.
//
// The caller never re-runs classify after a non-undecided result; the lock
// is terminal for the session.
func classify(cfg Config, s Sample) Lock {
	ax := math.Abs(s.DX)
	ay := math.Abs(s.DY)

	if ax < cfg.LockThreshold && ay < cfg.LockThreshold {
		return LockUndecided
	}
	if ax >= cfg.LockThreshold && ax >= ay*cfg.AxisBias {
		return LockHorizontal
	}
	if ay >= cfg.LockThreshold && ay >= ax*cfg.AxisBias {
		return LockVertical
	}
	if ax >= cfg.LockThreshold && ay >= cfg.LockThreshold {
		// Both crossed, neither dominates: vertical tie-break.
		return LockVertical
	}
	// One axis crossed but without dominance: wait for more samples.
	return LockUndecided
}
