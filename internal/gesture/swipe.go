package gesture

import "math"

// swipeState is the horizontal engine's live view of the active session:
// translation, previewed action, and a 0..1 blend factor for progressive
// color/opacity feedback. All three are pure functions of the current dx,
// so dragging back toward zero reverses them continuously.
type swipeState struct {
	OffsetX float64
	Action  SwipeAction
	Blend   float64
}

func swipeUpdate(cfg Config, dx float64) swipeState {
	off := clamp(dx, -cfg.MaxOffset, cfg.MaxOffset)
	st := swipeState{OffsetX: off}
	switch {
	case off > cfg.EditThreshold:
		st.Action = ActionEdit
	case off < -cfg.DeleteThreshold:
		st.Action = ActionDelete
	}
	st.Blend = math.Min(1, math.Abs(off)/cfg.MaxOffset)
	return st
}

// swipeDecide picks the outcome at release. A swipe commits when either the
// position or the velocity threshold is crossed, whichever crossed first;
// otherwise the gesture cancels (spring back, no dispatch).
//
// When the two readings disagree (card sitting past the edit offset but
// flicked hard leftward), the release position wins: it is what the user is
// looking at when they let go.
func swipeDecide(cfg Config, st swipeState, vx float64) SwipeAction {
	edit := st.OffsetX > cfg.CommitOffset || vx > cfg.CommitVelocity
	del := -st.OffsetX > cfg.CommitOffset || -vx > cfg.CommitVelocity
	if edit && del {
		if st.OffsetX >= 0 {
			del = false
		} else {
			edit = false
		}
	}
	switch {
	case edit:
		return ActionEdit
	case del:
		return ActionDelete
	default:
		return ActionNone
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
