package gesture

// Frame is the per-card render state the host view layer consumes each
// frame. The core never touches presentation: translating offsets, blend
// and candidate index into pixels/cells/animation is entirely the host's
// concern.
type Frame struct {
	CardID string
	Lock   Lock

	// OffsetX/OffsetY are the card's translation along its locked axis.
	// Only the locked axis is ever non-zero.
	OffsetX float64
	OffsetY float64

	// Action is the previewed swipe action; Blend is 0..1 feedback
	// intensity (|offset| / max offset).
	Action SwipeAction
	Blend  float64

	// CandidateIndex is the insertion index a vertical drag would commit
	// to, or -1 when no reorder is in flight.
	CandidateIndex int

	// PendingConfirm is true while the card is held awaiting the host's
	// delete confirmation.
	PendingConfirm bool
}

func neutralFrame(cardID string) Frame {
	return Frame{CardID: cardID, CandidateIndex: -1}
}
