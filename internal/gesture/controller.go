package gesture

import "time"

// Dispatcher receives committed gesture intents. It is implemented by the
// surrounding application, which exclusively owns (and mutates) the
// authoritative card order; the gesture engines never touch it directly.
type Dispatcher interface {
	// Edit requests navigation to the edit view for the card.
	Edit(cardID string)
	// RequestDeleteConfirmation asks the host to confirm a destructive
	// delete. The host answers via Controller.ResolveDelete; a dialog
	// dismissed without an explicit answer must be reported as false.
	RequestDeleteConfirmation(cardID string)
	// Delete removes the card from the authoritative list. Must be a no-op
	// (not a crash) for ids that are already gone.
	Delete(cardID string)
	// Reorder splices the list: remove at from, insert at to. Indices are
	// in range when called, but the dispatcher should still validate.
	Reorder(from, to int)
}

// Geometry supplies measured card heights for the reorder engine. ok=false
// falls back to Config.DefaultCardHeight.
type Geometry interface {
	CardHeight(cardID string) (height float64, ok bool)
}

// CardList exposes the authoritative card order. The controller only reads
// it: to resolve indices and to notice that its bound card disappeared.
type CardList interface {
	CardIDs() []string
}

// Controller runs the per-list gesture state machine. At most one session
// is live across the whole list at any instant; a press while another
// session is active is rejected rather than pre-empting it (pre-emption
// invites surprising double-triggers).
//
// All methods are synchronous and must be called from the host's single
// event goroutine, in event-arrival order.
type Controller struct {
	cfg      Config
	dispatch Dispatcher
	geom     Geometry
	list     CardList

	sess *session
}

// session is the ephemeral per-interaction state, bound to exactly one card
// from press to release/cancel.
type session struct {
	cardID        string
	originalIndex int

	track tracker
	lock  Lock
	last  Sample

	swipe     swipeState
	candidate int

	pending       bool // awaiting delete confirmation
	pendingOffset float64
}

// NewController wires the state machine to its collaborators. All three
// collaborators are required.
func NewController(cfg Config, d Dispatcher, g Geometry, l CardList) *Controller {
	return &Controller{cfg: cfg.normalized(), dispatch: d, geom: g, list: l}
}

// Press opens a gesture session on cardID. It reports false when the press
// is rejected: another session is live (including one parked in
// pending-confirmation), or the card id is not in the list.
func (c *Controller) Press(cardID string, x, y float64, at time.Time) bool {
	if c.sess != nil {
		return false
	}
	idx := c.indexOf(cardID)
	if idx < 0 {
		return false
	}
	c.sess = &session{
		cardID:        cardID,
		originalIndex: idx,
		track:         newTracker(x, y, at),
		lock:          LockUndecided,
		candidate:     -1,
	}
	return true
}

// Move feeds one movement sample. Moves with no open session (an
// out-of-order event stream) are ignored; logging such streams is the
// host's concern.
func (c *Controller) Move(x, y float64, at time.Time) {
	s := c.sess
	if s == nil || s.pending {
		return
	}
	if c.indexOf(s.cardID) < 0 {
		// The bound card was removed under us; abandon silently.
		c.sess = nil
		return
	}

	sample := s.track.sample(x, y, at)
	s.last = sample

	if s.lock == LockUndecided {
		lock := classify(c.cfg, sample)
		if lock == LockVertical && c.cfg.HoldToArm > 0 && sample.Elapsed < c.cfg.HoldToArm {
			// Hold-to-arm: the press has not been held long enough to arm
			// a reorder drag. Stay undecided; a later sample may still
			// lock horizontal, or vertical once armed.
			lock = LockUndecided
		}
		if lock != LockUndecided {
			s.lock = lock
			// Re-resolve the index at lock time: the list may have shifted
			// since press.
			s.originalIndex = c.indexOf(s.cardID)
		}
	}

	switch s.lock {
	case LockHorizontal:
		s.swipe = swipeUpdate(c.cfg, sample.DX)
	case LockVertical:
		s.candidate = reorderCandidate(
			c.cfg, s.originalIndex, sample.DY, c.cardHeight(s.cardID), c.listLen())
	}
}

// Release closes the session and commits or cancels.
//
// Horizontal: commit edit/delete by offset-or-velocity, else cancel. A
// delete commit parks the session in pending-confirmation (the card held at
// a fixed armed offset) and asks the dispatcher for confirmation; the
// actual Delete fires only from ResolveDelete(true). Vertical: commit a
// reorder when the candidate differs from the origin. Undecided: a tap, no
// dispatch.
func (c *Controller) Release(at time.Time) {
	s := c.sess
	if s == nil || s.pending {
		return
	}
	if c.indexOf(s.cardID) < 0 {
		c.sess = nil
		return
	}

	switch s.lock {
	case LockHorizontal:
		switch swipeDecide(c.cfg, s.swipe, s.last.VX) {
		case ActionEdit:
			c.sess = nil
			c.dispatch.Edit(s.cardID)
		case ActionDelete:
			s.pending = true
			s.pendingOffset = -c.cfg.MaxOffset
			c.dispatch.RequestDeleteConfirmation(s.cardID)
		default:
			c.sess = nil
		}
	case LockVertical:
		from := s.originalIndex
		to := s.candidate
		c.sess = nil
		if to >= 0 && to != from {
			c.dispatch.Reorder(from, to)
		}
	default:
		c.sess = nil
	}
}

// ResolveDelete resumes a session parked in pending-confirmation. confirmed
// dispatches the delete; anything else (explicit no, dialog dismissed)
// springs the card back with no dispatch. Calls that don't match the
// pending session are ignored.
func (c *Controller) ResolveDelete(cardID string, confirmed bool) {
	s := c.sess
	if s == nil || !s.pending || s.cardID != cardID {
		return
	}
	c.sess = nil
	if confirmed {
		c.dispatch.Delete(cardID)
	}
}

// Cancel aborts any live session with full visual reset and no dispatch.
// Hosts call it on external list refreshes or focus loss.
func (c *Controller) Cancel() { c.sess = nil }

// SyncList tells the controller the authoritative list changed externally.
// A session bound to a card that no longer exists abandons silently.
func (c *Controller) SyncList() {
	if c.sess != nil && c.indexOf(c.sess.cardID) < 0 {
		c.sess = nil
	}
}

// Capturing reports whether a locked session is in flight. While true the
// host should suppress its default scroll/selection behavior so the surface
// doesn't scroll under a horizontal swipe (and vice versa).
func (c *Controller) Capturing() bool {
	return c.sess != nil && (c.sess.lock != LockUndecided || c.sess.pending)
}

// Active returns the card bound to the live session, if any.
func (c *Controller) Active() (cardID string, ok bool) {
	if c.sess == nil {
		return "", false
	}
	return c.sess.cardID, true
}

// FrameFor derives the render state for one card. Cards other than the
// active session's target always get the neutral frame, so the host can
// call this per card per frame without tracking the session itself.
func (c *Controller) FrameFor(cardID string) Frame {
	s := c.sess
	if s == nil || s.cardID != cardID {
		return neutralFrame(cardID)
	}
	f := neutralFrame(cardID)
	f.Lock = s.lock
	if s.pending {
		f.OffsetX = s.pendingOffset
		f.Action = ActionDelete
		f.Blend = 1
		f.PendingConfirm = true
		return f
	}
	switch s.lock {
	case LockHorizontal:
		f.OffsetX = s.swipe.OffsetX
		f.Action = s.swipe.Action
		f.Blend = s.swipe.Blend
	case LockVertical:
		f.OffsetY = s.last.DY
		f.CandidateIndex = s.candidate
	}
	return f
}

func (c *Controller) indexOf(cardID string) int {
	for i, id := range c.list.CardIDs() {
		if id == cardID {
			return i
		}
	}
	return -1
}

func (c *Controller) listLen() int { return len(c.list.CardIDs()) }

func (c *Controller) cardHeight(cardID string) float64 {
	if c.geom == nil {
		return 0
	}
	if h, ok := c.geom.CardHeight(cardID); ok && h > 0 {
		return h
	}
	return 0
}
