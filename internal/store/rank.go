package store

import (
	"errors"
	"strings"
)

// Fractional ranks for ordering questions within a deck.
//
// Ranks are lowercase base36-like strings ordered lexicographically. Moving a
// question usually only rewrites that question's rank (a midpoint between its
// new neighbors); see PlanReorderRanks for the rebalancing fallback.

const rankAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func rankDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'z':
		return 10 + int(c-'a'), true
	default:
		return 0, false
	}
}

func rankChar(d int) byte {
	if d < 0 {
		d = 0
	}
	if d > 35 {
		d = 35
	}
	return rankAlphabet[d]
}

// RankBetween returns a rank strictly between a and b. a may be empty (no
// lower bound) and b may be empty (no upper bound).
func RankBetween(a, b string) (string, error) {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a != "" && b != "" && !(a < b) {
		return "", errors.New("RankBetween requires a < b")
	}

	betweenOK := func(r string) bool {
		if strings.TrimSpace(r) == "" {
			return false
		}
		if a != "" && !(a < r) {
			return false
		}
		if b != "" && !(r < b) {
			return false
		}
		return true
	}

	const min = 0
	const max = 35

	prefix := make([]byte, 0, 8)
	for i := 0; i < 256; i++ {
		da := min
		db := max
		if i < len(a) {
			v, ok := rankDigit(a[i])
			if !ok {
				return "", errors.New("invalid rank character in a")
			}
			da = v
		}
		if i < len(b) {
			v, ok := rankDigit(b[i])
			if !ok {
				return "", errors.New("invalid rank character in b")
			}
			db = v
		}

		if da == db {
			prefix = append(prefix, rankChar(da))
			continue
		}

		if db-da > 1 {
			mid := da + (db-da)/2
			prefix = append(prefix, rankChar(mid))
			r := string(prefix)
			if !betweenOK(r) {
				// Happens when the upper bound is a prefix extension of the lower
				// (e.g. "y" < "y0"): no string fits strictly between them.
				return "", errors.New("no space between ranks")
			}
			return r, nil
		}

		// Adjacent digits: extend a. Since b differs at this position, any
		// extension of a is still < b.
		r := a + "0"
		if !betweenOK(r) {
			return "", errors.New("no space between ranks")
		}
		return r, nil
	}
	return "", errors.New("unable to compute rank between")
}

func RankAfter(a string) (string, error) { return RankBetween(a, "") }

func RankInitial() (string, error) { return RankBetween("", "") }

// RankBefore returns a rank ordered before b, keeping headroom below: the
// result is never an all-zeros rank, so repeated front inserts descend
// forever ("1" -> "0h" -> "08" -> ... -> "01" -> "00h" -> ...) instead of
// bottoming out at "0". Only an all-zeros b has no rank before it.
func RankBefore(b string) (string, error) {
	b = strings.ToLower(strings.TrimSpace(b))
	if b == "" {
		return RankInitial()
	}
	for i := 0; i < len(b); i++ {
		d, ok := rankDigit(b[i])
		if !ok {
			return "", errors.New("invalid rank character in b")
		}
		if d == 0 {
			continue
		}
		if d == 1 {
			// Halving would land on a zero digit; descend a level instead.
			return b[:i] + "0h", nil
		}
		return b[:i] + string(rankChar(d/2)), nil
	}
	return "", errors.New("no space before rank")
}

// rankSpaceBetween reports whether a new rank can actually be produced
// strictly between the bounds. An open lower bound is not enough on its
// own: nothing fits below an all-zeros upper bound.
func rankSpaceBetween(lower, upper string) bool {
	if lower != "" && upper != "" && !(lower < upper) {
		return false
	}
	var err error
	if lower == "" && upper != "" {
		_, err = RankBefore(upper)
	} else {
		_, err = RankBetween(lower, upper)
	}
	return err == nil
}

// RankBetweenUnique returns a rank between lower and upper that is not
// already present in existing (keys normalized lowercase + trimmed).
func RankBetweenUnique(existing map[string]bool, lower, upper string) (string, error) {
	if existing == nil {
		existing = map[string]bool{}
	}
	lower = strings.ToLower(strings.TrimSpace(lower))
	upper = strings.ToLower(strings.TrimSpace(upper))

	// Tighten the lower bound until the midpoint is unused. Each iteration
	// produces a value strictly between the bounds, so the loop advances.
	// Front inserts go through RankBefore to preserve its headroom rule.
	curLower := lower
	for i := 0; i < 256; i++ {
		var r string
		var err error
		if curLower == "" && upper != "" {
			r, err = RankBefore(upper)
		} else {
			r, err = RankBetween(curLower, upper)
		}
		if err != nil {
			return "", err
		}
		rn := strings.ToLower(strings.TrimSpace(r))
		if rn == "" {
			return "", errors.New("generated empty rank")
		}
		if !existing[rn] {
			return rn, nil
		}
		curLower = rn
	}
	return "", errors.New("unable to find unique rank")
}
