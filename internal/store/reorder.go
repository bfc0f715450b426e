package store

import (
	"errors"
	"strings"

	"quizdeck-cli/internal/model"
)

// ReorderResult describes the rank updates needed to realize an index-based
// reorder. RankByID includes only questions whose ranks should change.
type ReorderResult struct {
	RankByID     map[string]string
	WindowIDs    []string // ids whose ranks were (re)assigned in the fallback path, in final order
	UsedFallback bool
}

// PlanReorderRanks plans rank updates for moving one question inside a deck.
//
// sibs is the deck's current question set (including the moved one); insertAt
// is the target index in the list *after removing* the moved question.
//
// Fast path: only the moved question's rank changes. When the immediate
// neighbor bounds are unusable (duplicate or inverted ranks), ranks are
// rebalanced for the smallest contiguous window around the insertion point
// that yields valid outer bounds.
func PlanReorderRanks(sibs []model.Question, movedID string, insertAt int) (ReorderResult, error) {
	movedID = strings.TrimSpace(movedID)
	if movedID == "" {
		return ReorderResult{}, errors.New("missing movedID")
	}
	if len(sibs) == 0 {
		return ReorderResult{RankByID: map[string]string{}}, nil
	}

	cur := append([]model.Question{}, sibs...)
	SortQuestionsByRankOrder(cur)

	movedIdx := -1
	for i := range cur {
		if cur[i].ID == movedID {
			movedIdx = i
			break
		}
	}
	if movedIdx < 0 {
		return ReorderResult{}, errors.New("moved question not found in deck")
	}
	moved := cur[movedIdx]

	rest := make([]model.Question, 0, len(cur)-1)
	rest = append(rest, cur[:movedIdx]...)
	rest = append(rest, cur[movedIdx+1:]...)

	if insertAt < 0 {
		insertAt = 0
	}
	if insertAt > len(rest) {
		insertAt = len(rest)
	}
	if insertAt == movedIdx {
		return ReorderResult{RankByID: map[string]string{}}, nil
	}
	// When moving up, prefer rebalancing to the right (the displaced
	// neighbors) rather than pulling in earlier siblings.
	preferRight := insertAt < movedIdx

	final := make([]model.Question, 0, len(cur))
	final = append(final, rest[:insertAt]...)
	final = append(final, moved)
	final = append(final, rest[insertAt:]...)

	// Fast path: just the moved question, if its new neighbors leave room.
	existing := existingRanksExcluding(final, map[string]bool{movedID: true})
	if r, ok := rankBetweenNeighbors(existing, final, insertAt); ok {
		if strings.TrimSpace(moved.Rank) != r {
			return ReorderResult{RankByID: map[string]string{movedID: r}}, nil
		}
		return ReorderResult{RankByID: map[string]string{}}, nil
	}

	lo, hi := minimalValidWindow(final, insertAt, preferRight)

	lower := ""
	upper := ""
	if lo > 0 {
		lower = strings.TrimSpace(final[lo-1].Rank)
	}
	if hi+1 < len(final) {
		upper = strings.TrimSpace(final[hi+1].Rank)
	}

	excl := map[string]bool{}
	for i := lo; i <= hi; i++ {
		excl[final[i].ID] = true
	}
	existing = existingRanksExcluding(final, excl)

	res := ReorderResult{
		RankByID:     map[string]string{},
		WindowIDs:    make([]string, 0, hi-lo+1),
		UsedFallback: true,
	}
	curLower := lower
	for i := lo; i <= hi; i++ {
		id := final[i].ID
		r, err := RankBetweenUnique(existing, curLower, upper)
		if err != nil {
			return ReorderResult{}, err
		}
		existing[strings.ToLower(strings.TrimSpace(r))] = true
		res.RankByID[id] = r
		res.WindowIDs = append(res.WindowIDs, id)
		curLower = r
	}
	return res, nil
}

// ApplyReorder plans and applies a reorder on db for the given deck, moving
// the question at fromIdx to toIdx (indices into QuestionsForDeck order).
// Both indices are validated defensively; out-of-range is a no-op.
func (db *DB) ApplyReorder(deckID string, fromIdx, toIdx int) error {
	sibs := db.QuestionsForDeck(deckID)
	if fromIdx < 0 || fromIdx >= len(sibs) || toIdx < 0 || toIdx >= len(sibs) || fromIdx == toIdx {
		return nil
	}
	res, err := PlanReorderRanks(sibs, sibs[fromIdx].ID, toIdx)
	if err != nil {
		return err
	}
	for i := range db.Questions {
		if r, ok := res.RankByID[db.Questions[i].ID]; ok {
			db.Questions[i].Rank = r
		}
	}
	return nil
}

func existingRanksExcluding(qs []model.Question, excludeIDs map[string]bool) map[string]bool {
	existing := map[string]bool{}
	for _, q := range qs {
		if excludeIDs != nil && excludeIDs[q.ID] {
			continue
		}
		rn := strings.ToLower(strings.TrimSpace(q.Rank))
		if rn != "" {
			existing[rn] = true
		}
	}
	return existing
}

// rankBetweenNeighbors computes a rank for the moved question from its
// immediate neighbors in the final order. ok=false when the bounds are
// unusable (lower >= upper, or no representable rank between them).
func rankBetweenNeighbors(existing map[string]bool, final []model.Question, movedIdx int) (rank string, ok bool) {
	lower := ""
	upper := ""
	if movedIdx > 0 {
		lower = strings.TrimSpace(final[movedIdx-1].Rank)
	}
	if movedIdx+1 < len(final) {
		upper = strings.TrimSpace(final[movedIdx+1].Rank)
	}
	if lower != "" && upper != "" && !(lower < upper) {
		return "", false
	}
	r, err := RankBetweenUnique(existing, lower, upper)
	if err != nil {
		return "", false
	}
	return r, true
}

// minimalValidWindow finds the smallest contiguous window [lo, hi] containing
// movedIdx whose outer bounds (rank before lo, rank after hi) leave room for
// new ranks. An open lower bound does not qualify by itself: when the first
// card's rank is all zeros nothing fits below it, and the window must widen
// to include that card so it gets a fresh rank too.
func minimalValidWindow(final []model.Question, movedIdx int, preferRight bool) (lo, hi int) {
	if movedIdx < 0 || movedIdx >= len(final) {
		return 0, len(final) - 1
	}

	valid := func(lo, hi int) bool {
		lower := ""
		upper := ""
		if lo > 0 {
			lower = strings.TrimSpace(final[lo-1].Rank)
		}
		if hi+1 < len(final) {
			upper = strings.TrimSpace(final[hi+1].Rank)
		}
		return rankSpaceBetween(lower, upper)
	}

	for size := 1; size <= len(final); size++ {
		startMin := movedIdx - (size - 1)
		if startMin < 0 {
			startMin = 0
		}
		startMax := movedIdx
		if startMax+size > len(final) {
			startMax = len(final) - size
		}
		if preferRight {
			for lo := startMax; lo >= startMin; lo-- {
				hi := lo + size - 1
				if valid(lo, hi) {
					return lo, hi
				}
			}
		} else {
			for lo := startMin; lo <= startMax; lo++ {
				hi := lo + size - 1
				if valid(lo, hi) {
					return lo, hi
				}
			}
		}
	}
	return 0, len(final) - 1
}
