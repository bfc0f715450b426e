package gesture

import "time"

// Config holds every gesture threshold. Distances are in whatever unit the
// host feeds positions in ("px-equivalent"); the TUI feeds scaled terminal
// cells. Velocities are units per second.
//
// All values are tunable; the defaults below are a reasonable feel for a
// pointer surface, not hard requirements.
type Config struct {
	// LockThreshold is the minimum movement magnitude before the gesture's
	// axis is decided.
	LockThreshold float64
	// AxisBias is the dominance ratio one axis must have over the other to
	// win the lock. Below it the classifier waits for more samples (and,
	// when both axes have crossed LockThreshold, falls back to vertical:
	// reordering is the lower-risk default, swipe-to-delete needs clearer
	// intent).
	AxisBias float64

	// MaxOffset caps the horizontal translation so a card can never be
	// dragged off-surface. Symmetric.
	MaxOffset float64
	// EditThreshold / DeleteThreshold are the preview thresholds (offset
	// magnitudes) past which the swipe shows the edit / delete action.
	EditThreshold   float64
	DeleteThreshold float64
	// CommitOffset / CommitVelocity are the release thresholds: a swipe
	// commits when either one is crossed.
	CommitOffset   float64
	CommitVelocity float64

	// DefaultCardHeight is used by the reorder engine when the Geometry
	// collaborator has no measurement for a card.
	DefaultCardHeight float64

	// HoldToArm, when non-zero, defers the vertical (reorder) lock until
	// the press has been held this long. Zero disables the timer and lets
	// vertical drags start immediately.
	HoldToArm time.Duration
}

// DefaultConfig returns the default thresholds for a pixel-unit surface.
func DefaultConfig() Config {
	return Config{
		LockThreshold:     10,
		AxisBias:          1.5,
		MaxOffset:         120,
		EditThreshold:     60,
		DeleteThreshold:   60,
		CommitOffset:      60,
		CommitVelocity:    300,
		DefaultCardHeight: 140,
	}
}

// normalized fills unset (zero or negative) fields from DefaultConfig so a
// partially specified Config still behaves.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.LockThreshold <= 0 {
		c.LockThreshold = d.LockThreshold
	}
	if c.AxisBias < 1 {
		c.AxisBias = d.AxisBias
	}
	if c.MaxOffset <= 0 {
		c.MaxOffset = d.MaxOffset
	}
	if c.EditThreshold <= 0 {
		c.EditThreshold = d.EditThreshold
	}
	if c.DeleteThreshold <= 0 {
		c.DeleteThreshold = d.DeleteThreshold
	}
	if c.CommitOffset <= 0 {
		c.CommitOffset = d.CommitOffset
	}
	if c.CommitVelocity <= 0 {
		c.CommitVelocity = d.CommitVelocity
	}
	if c.DefaultCardHeight <= 0 {
		c.DefaultCardHeight = d.DefaultCardHeight
	}
	if c.HoldToArm < 0 {
		c.HoldToArm = 0
	}
	return c
}
