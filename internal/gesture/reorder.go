package gesture

import "math"

// reorderCandidate maps a vertical offset to the insertion index the card
// would land on if released now.
//
// The math is continuous offset / card height rather than hit-testing
// sibling bounds: O(1) per sample regardless of list length, at the cost of
// assuming reasonably uniform card heights. cardHeight <= 0 falls back to
// cfg.DefaultCardHeight. The result is always clamped into [0, listLen-1].
func reorderCandidate(cfg Config, originalIndex int, dy, cardHeight float64, listLen int) int {
	if listLen <= 0 {
		return 0
	}
	h := cardHeight
	if h <= 0 {
		h = cfg.DefaultCardHeight
	}
	idx := originalIndex + int(math.Round(dy/h))
	if idx < 0 {
		idx = 0
	}
	if idx > listLen-1 {
		idx = listLen - 1
	}
	return idx
}
