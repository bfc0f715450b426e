package store

import "testing"

func TestRankBetweenBasics(t *testing.T) {
	cases := []struct{ a, b string }{
		{"", ""},
		{"", "m"},
		{"m", ""},
		{"a", "b"},
		{"a", "a1"},
		{"h", "hz"},
	}
	for _, tc := range cases {
		r, err := RankBetween(tc.a, tc.b)
		if err != nil {
			t.Fatalf("RankBetween(%q,%q): %v", tc.a, tc.b, err)
		}
		if tc.a != "" && !(tc.a < r) {
			t.Fatalf("RankBetween(%q,%q)=%q not above lower bound", tc.a, tc.b, r)
		}
		if tc.b != "" && !(r < tc.b) {
			t.Fatalf("RankBetween(%q,%q)=%q not below upper bound", tc.a, tc.b, r)
		}
	}
}

func TestRankBetweenRejectsInvertedBounds(t *testing.T) {
	if _, err := RankBetween("m", "a"); err == nil {
		t.Fatalf("expected error for a >= b")
	}
	if _, err := RankBetween("m", "m"); err == nil {
		t.Fatalf("expected error for equal bounds")
	}
}

func TestRankBetweenNoSpace(t *testing.T) {
	// "y" < "y0" leaves no string strictly between.
	if _, err := RankBetween("y", "y0"); err == nil {
		t.Fatalf("expected no-space error")
	}
}

func TestRankBetweenUniqueSkipsCollisions(t *testing.T) {
	existing := map[string]bool{}
	mid, err := RankBetween("a", "z")
	if err != nil {
		t.Fatalf("RankBetween: %v", err)
	}
	existing[mid] = true

	r, err := RankBetweenUnique(existing, "a", "z")
	if err != nil {
		t.Fatalf("RankBetweenUnique: %v", err)
	}
	if r == mid {
		t.Fatalf("returned a rank already in use: %q", r)
	}
	if !("a" < r && r < "z") {
		t.Fatalf("unique rank %q escaped bounds", r)
	}
}

func TestRankChainStaysOrdered(t *testing.T) {
	// Repeatedly inserting at the front must keep producing smaller ranks.
	upper := ""
	var prev string
	for i := 0; i < 50; i++ {
		r, err := RankBefore(upper)
		if err != nil {
			t.Fatalf("RankBefore(%q) at step %d: %v", upper, i, err)
		}
		if prev != "" && !(r < prev) {
			t.Fatalf("rank %q not below previous %q", r, prev)
		}
		prev = r
		upper = r
	}
}

func TestRankBeforeKeepsHeadroomBelow(t *testing.T) {
	cases := []struct{ in, want string }{
		{"h", "8"},
		{"8", "4"},
		{"2", "1"},
		{"1", "0h"},
		{"0h", "08"},
		{"01", "00h"},
		{"001", "000h"},
	}
	for _, tc := range cases {
		r, err := RankBefore(tc.in)
		if err != nil {
			t.Fatalf("RankBefore(%q): %v", tc.in, err)
		}
		if r != tc.want {
			t.Fatalf("RankBefore(%q) = %q, want %q", tc.in, r, tc.want)
		}
		if !(r < tc.in) {
			t.Fatalf("RankBefore(%q) = %q is not below its input", tc.in, r)
		}
	}
}

func TestRankBeforeRejectsAllZeros(t *testing.T) {
	for _, b := range []string{"0", "00", "000"} {
		if _, err := RankBefore(b); err == nil {
			t.Fatalf("RankBefore(%q): expected no-space error", b)
		}
	}
}

func TestRankBetweenUniqueFrontInsertAvoidsZeroTerminal(t *testing.T) {
	// Open lower bound goes through the headroom rule: the produced rank is
	// never all zeros, so a later front insert still has room below it.
	existing := map[string]bool{"1": true}
	r, err := RankBetweenUnique(existing, "", "1")
	if err != nil {
		t.Fatalf("RankBetweenUnique: %v", err)
	}
	if r == "0" {
		t.Fatalf("front insert landed on the zero terminal")
	}
	if _, err := RankBefore(r); err != nil {
		t.Fatalf("no room left below front rank %q: %v", r, err)
	}
}
