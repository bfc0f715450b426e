// Package gesture implements the pointer-gesture state machine behind the
// question-card list.
//
// One press/drag/release cycle on a card is classified as a tap, a
// horizontal swipe (edit to the right, delete to the left) or a vertical
// drag (reorder). The classification is locked once per press and never
// revisited for the rest of that press. The package owns no presentation:
// it consumes positions + timestamps and exposes a per-card Frame the host
// view layer turns into pixels or terminal cells.
//
// Committed intents (edit, delete, reorder) are handed to a Dispatcher
// implemented by the surrounding application, which exclusively owns the
// authoritative card order. Deletes are always routed through a
// confirmation request first; the controller holds the card in a
// pending-confirmation state until the host answers via ResolveDelete.
package gesture

// Lock is the axis a gesture session has been locked to. It is set at most
// once per session and is terminal.
type Lock int

const (
	LockUndecided Lock = iota
	LockHorizontal
	LockVertical
)

func (l Lock) String() string {
	switch l {
	case LockHorizontal:
		return "horizontal"
	case LockVertical:
		return "vertical"
	default:
		return "undecided"
	}
}

// SwipeAction is the action a horizontal swipe is currently previewing (or,
// at release, committing).
type SwipeAction int

const (
	ActionNone SwipeAction = iota
	ActionEdit
	ActionDelete
)

func (a SwipeAction) String() string {
	switch a {
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	default:
		return "none"
	}
}
