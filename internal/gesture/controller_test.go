package gesture

import (
	"testing"
	"time"
)

// stubList is a mutable authoritative order the tests splice directly.
type stubList struct{ ids []string }

func (l *stubList) CardIDs() []string { return l.ids }

func (l *stubList) remove(id string) {
	for i, v := range l.ids {
		if v == id {
			l.ids = append(l.ids[:i], l.ids[i+1:]...)
			return
		}
	}
}

type stubGeom struct{ h float64 }

func (g stubGeom) CardHeight(string) (float64, bool) { return g.h, g.h > 0 }

type recordingDispatcher struct {
	edits    []string
	confirms []string
	deletes  []string
	reorders [][2]int
}

func (d *recordingDispatcher) Edit(id string)                      { d.edits = append(d.edits, id) }
func (d *recordingDispatcher) RequestDeleteConfirmation(id string) { d.confirms = append(d.confirms, id) }
func (d *recordingDispatcher) Delete(id string)                    { d.deletes = append(d.deletes, id) }
func (d *recordingDispatcher) Reorder(from, to int) {
	d.reorders = append(d.reorders, [2]int{from, to})
}

func (d *recordingDispatcher) total() int {
	return len(d.edits) + len(d.confirms) + len(d.deletes) + len(d.reorders)
}

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestController(ids ...string) (*Controller, *recordingDispatcher, *stubList) {
	l := &stubList{ids: ids}
	d := &recordingDispatcher{}
	c := NewController(DefaultConfig(), d, stubGeom{h: 140}, l)
	return c, d, l
}

func TestSlowDragRightCommitsEdit(t *testing.T) {
	c, d, _ := newTestController("qa", "qb", "qc")

	if !c.Press("qa", 100, 50, t0) {
		t.Fatalf("expected press to open a session")
	}
	// 20 units per 100ms => 200 units/sec, below the 300 commit velocity.
	for i := 1; i <= 4; i++ {
		c.Move(100+float64(i)*20, 50, t0.Add(time.Duration(i)*100*time.Millisecond))
	}

	f := c.FrameFor("qa")
	if f.Lock != LockHorizontal {
		t.Fatalf("expected horizontal lock, got %v", f.Lock)
	}
	if f.OffsetX != 80 {
		t.Fatalf("expected offsetX=80, got %v", f.OffsetX)
	}
	if f.Action != ActionEdit {
		t.Fatalf("expected edit preview past the threshold, got %v", f.Action)
	}

	c.Release(t0.Add(500 * time.Millisecond))
	if len(d.edits) != 1 || d.edits[0] != "qa" {
		t.Fatalf("expected exactly one edit dispatch for qa, got %v", d.edits)
	}
	if len(d.confirms) != 0 || len(d.deletes) != 0 || len(d.reorders) != 0 {
		t.Fatalf("expected no other dispatches, got %+v", d)
	}
	if got := c.FrameFor("qa"); got.OffsetX != 0 || got.Action != ActionNone {
		t.Fatalf("expected neutral frame after release, got %+v", got)
	}
}

func TestShortDragCancelsWithNoDispatch(t *testing.T) {
	c, d, _ := newTestController("qa", "qb")

	c.Press("qa", 100, 50, t0)
	c.Move(80, 50, t0.Add(100*time.Millisecond))
	c.Move(60, 50, t0.Add(200*time.Millisecond)) // offset -40, below both thresholds

	if f := c.FrameFor("qa"); f.Action != ActionNone {
		t.Fatalf("expected no previewed action below the threshold, got %v", f.Action)
	}
	c.Release(t0.Add(300 * time.Millisecond))
	if d.total() != 0 {
		t.Fatalf("expected no dispatch on cancel, got %+v", d)
	}
	if f := c.FrameFor("qa"); f.OffsetX != 0 {
		t.Fatalf("expected spring back to zero, got %v", f.OffsetX)
	}
}

func TestFlickLeftCommitsDeleteThroughConfirmation(t *testing.T) {
	c, d, _ := newTestController("qa", "qb")

	c.Press("qa", 100, 50, t0)
	c.Move(95, 50, t0.Add(50*time.Millisecond))
	// -15 units in 30ms => -500 units/sec: commit by velocity despite the
	// small (-20) offset.
	c.Move(80, 50, t0.Add(80*time.Millisecond))
	c.Release(t0.Add(90 * time.Millisecond))

	if len(d.confirms) != 1 || d.confirms[0] != "qa" {
		t.Fatalf("expected one confirmation request for qa, got %v", d.confirms)
	}
	if len(d.deletes) != 0 {
		t.Fatalf("delete must not fire before confirmation, got %v", d.deletes)
	}

	f := c.FrameFor("qa")
	if !f.PendingConfirm {
		t.Fatalf("expected card parked in pending-confirmation, got %+v", f)
	}
	if f.OffsetX != -DefaultConfig().MaxOffset {
		t.Fatalf("expected card held at the armed offset, got %v", f.OffsetX)
	}

	c.ResolveDelete("qa", true)
	if len(d.deletes) != 1 || d.deletes[0] != "qa" {
		t.Fatalf("expected delete after confirmation, got %v", d.deletes)
	}
	if len(d.confirms) != 1 {
		t.Fatalf("expected exactly one confirmation request, got %v", d.confirms)
	}
}

func TestDeclinedConfirmationSpringsBack(t *testing.T) {
	c, d, _ := newTestController("qa")

	c.Press("qa", 100, 50, t0)
	for i := 1; i <= 4; i++ {
		c.Move(100-float64(i)*20, 50, t0.Add(time.Duration(i)*100*time.Millisecond))
	}
	c.Release(t0.Add(500 * time.Millisecond))
	if len(d.confirms) != 1 {
		t.Fatalf("expected a confirmation request, got %v", d.confirms)
	}

	c.ResolveDelete("qa", false)
	if len(d.deletes) != 0 {
		t.Fatalf("declined confirmation must never delete, got %v", d.deletes)
	}
	if f := c.FrameFor("qa"); f.PendingConfirm || f.OffsetX != 0 {
		t.Fatalf("expected spring back after decline, got %+v", f)
	}
	// The parked session is gone; a fresh press works again.
	if !c.Press("qa", 10, 10, t0.Add(time.Second)) {
		t.Fatalf("expected a new press after the declined confirmation")
	}
}

func TestVerticalDragCommitsReorder(t *testing.T) {
	c, d, _ := newTestController("qa", "qb", "qc")

	c.Press("qa", 100, 50, t0)
	c.Move(100, 80, t0.Add(50*time.Millisecond))
	c.Move(100, 200, t0.Add(200*time.Millisecond)) // dy=150, card height 140 => candidate 1

	f := c.FrameFor("qa")
	if f.Lock != LockVertical {
		t.Fatalf("expected vertical lock, got %v", f.Lock)
	}
	if f.CandidateIndex != 1 {
		t.Fatalf("expected candidate index 1, got %d", f.CandidateIndex)
	}
	if f.OffsetX != 0 {
		t.Fatalf("vertical session must not translate horizontally, got %v", f.OffsetX)
	}

	c.Release(t0.Add(300 * time.Millisecond))
	if len(d.reorders) != 1 || d.reorders[0] != [2]int{0, 1} {
		t.Fatalf("expected reorder(0,1), got %v", d.reorders)
	}
}

func TestLockIsTerminalForTheSession(t *testing.T) {
	c, _, _ := newTestController("qa", "qb", "qc")

	c.Press("qa", 100, 50, t0)
	c.Move(130, 50, t0.Add(50*time.Millisecond)) // locks horizontal
	// A large vertical excursion afterwards must not relock or leak into
	// the orthogonal axis.
	c.Move(130, 500, t0.Add(150*time.Millisecond))

	f := c.FrameFor("qa")
	if f.Lock != LockHorizontal {
		t.Fatalf("lock changed after being decided: %v", f.Lock)
	}
	if f.OffsetY != 0 || f.CandidateIndex != -1 {
		t.Fatalf("horizontal session leaked vertical state: %+v", f)
	}
}

func TestDiagonalPressPrefersVertical(t *testing.T) {
	c, _, _ := newTestController("qa", "qb")

	c.Press("qa", 100, 50, t0)
	// Both axes past the lock threshold, neither dominating by 1.5x.
	c.Move(112, 62, t0.Add(50*time.Millisecond))

	if f := c.FrameFor("qa"); f.Lock != LockVertical {
		t.Fatalf("expected vertical tie-break on diagonal press, got %v", f.Lock)
	}
}

func TestAmbiguousSingleAxisStaysUndecided(t *testing.T) {
	c, _, _ := newTestController("qa")

	c.Press("qa", 100, 50, t0)
	// |dx|=12 crossed the threshold but dy=9 keeps it under the 1.5x bias.
	c.Move(112, 59, t0.Add(50*time.Millisecond))

	if f := c.FrameFor("qa"); f.Lock != LockUndecided {
		t.Fatalf("expected undecided on ambiguous press, got %v", f.Lock)
	}
}

func TestExclusiveCaptureRejectsSecondPress(t *testing.T) {
	c, d, _ := newTestController("qa", "qb")

	if !c.Press("qa", 100, 50, t0) {
		t.Fatalf("first press should open a session")
	}
	if c.Press("qb", 10, 10, t0.Add(10*time.Millisecond)) {
		t.Fatalf("second press must be rejected while a session is live")
	}
	if id, ok := c.Active(); !ok || id != "qa" {
		t.Fatalf("active session changed: %q %v", id, ok)
	}
	c.Release(t0.Add(50 * time.Millisecond))
	if d.total() != 0 {
		t.Fatalf("tap dispatched something: %+v", d)
	}
	if !c.Press("qb", 10, 10, t0.Add(time.Second)) {
		t.Fatalf("press should work again once the session closed")
	}
}

func TestStaleCardAbandonsSilently(t *testing.T) {
	c, d, l := newTestController("qa", "qb")

	c.Press("qa", 100, 50, t0)
	c.Move(105, 50, t0.Add(20*time.Millisecond))

	// Another path deletes the bound card mid-gesture.
	l.remove("qa")
	c.Move(160, 50, t0.Add(40*time.Millisecond))

	if _, ok := c.Active(); ok {
		t.Fatalf("expected session abandoned after card vanished")
	}
	c.Release(t0.Add(60 * time.Millisecond))
	if d.total() != 0 {
		t.Fatalf("abandoned session dispatched something: %+v", d)
	}
}

func TestSyncListCancelsSessionForRemovedCard(t *testing.T) {
	c, d, l := newTestController("qa", "qb")

	c.Press("qa", 100, 50, t0)
	l.remove("qa")
	c.SyncList()

	if _, ok := c.Active(); ok {
		t.Fatalf("expected SyncList to abandon the stale session")
	}
	c.Release(t0.Add(time.Second))
	if d.total() != 0 {
		t.Fatalf("expected no dispatch, got %+v", d)
	}
}

func TestMoveBeforePressIsIgnored(t *testing.T) {
	c, d, _ := newTestController("qa")

	c.Move(500, 500, t0)
	c.Release(t0.Add(time.Millisecond))
	if d.total() != 0 {
		t.Fatalf("out-of-order events dispatched something: %+v", d)
	}
	if f := c.FrameFor("qa"); f != neutralFrame("qa") {
		t.Fatalf("expected neutral frame, got %+v", f)
	}
}

func TestExternalCancelResetsWithoutDispatch(t *testing.T) {
	c, d, _ := newTestController("qa")

	c.Press("qa", 100, 50, t0)
	c.Move(190, 50, t0.Add(50*time.Millisecond)) // well past commit offset
	c.Cancel()

	if f := c.FrameFor("qa"); f.OffsetX != 0 {
		t.Fatalf("cancel must reset visual state, got %+v", f)
	}
	c.Release(t0.Add(100 * time.Millisecond))
	if d.total() != 0 {
		t.Fatalf("cancelled session dispatched something: %+v", d)
	}
}

func TestHoldToArmDefersVerticalLock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HoldToArm = 500 * time.Millisecond
	l := &stubList{ids: []string{"qa", "qb"}}
	d := &recordingDispatcher{}
	c := NewController(cfg, d, stubGeom{h: 140}, l)

	c.Press("qa", 100, 50, t0)
	c.Move(100, 80, t0.Add(100*time.Millisecond))
	if f := c.FrameFor("qa"); f.Lock != LockUndecided {
		t.Fatalf("vertical lock before the arm delay: %v", f.Lock)
	}

	// Past the delay the same vertical movement arms the drag.
	c.Move(100, 120, t0.Add(600*time.Millisecond))
	if f := c.FrameFor("qa"); f.Lock != LockVertical {
		t.Fatalf("expected vertical lock once armed, got %v", f.Lock)
	}
}

func TestGeometryFallbackHeight(t *testing.T) {
	l := &stubList{ids: []string{"qa", "qb", "qc"}}
	d := &recordingDispatcher{}
	// Geometry has no measurements: the default card height (140) applies.
	c := NewController(DefaultConfig(), d, stubGeom{}, l)

	c.Press("qa", 100, 50, t0)
	c.Move(100, 80, t0.Add(50*time.Millisecond))
	c.Move(100, 340, t0.Add(200*time.Millisecond)) // dy=290 => round(290/140)=2

	if f := c.FrameFor("qa"); f.CandidateIndex != 2 {
		t.Fatalf("expected candidate 2 via fallback height, got %d", f.CandidateIndex)
	}
}

func TestPendingSessionBlocksNewPressAndMoves(t *testing.T) {
	c, d, _ := newTestController("qa", "qb")

	c.Press("qa", 100, 50, t0)
	for i := 1; i <= 4; i++ {
		c.Move(100-float64(i)*20, 50, t0.Add(time.Duration(i)*100*time.Millisecond))
	}
	c.Release(t0.Add(500 * time.Millisecond))
	if len(d.confirms) != 1 {
		t.Fatalf("expected pending confirmation, got %+v", d)
	}

	if c.Press("qb", 5, 5, t0.Add(time.Second)) {
		t.Fatalf("press must be rejected while a delete is pending")
	}
	c.Move(300, 300, t0.Add(time.Second))
	if f := c.FrameFor("qa"); !f.PendingConfirm {
		t.Fatalf("moves must not disturb a pending session, got %+v", f)
	}
	// A resolution for the wrong card is ignored.
	c.ResolveDelete("qb", true)
	if len(d.deletes) != 0 {
		t.Fatalf("mismatched resolution deleted something: %v", d.deletes)
	}
}
