package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// handleMouse routes pointer events into the gesture controller. It reports
// whether the event was consumed; unconsumed events (wheel scrolling while
// no gesture is capturing) fall through to the list.
func (m *appModel) handleMouse(msg tea.MouseMsg) bool {
	if m.view != viewQuestions || m.modal != modalNone {
		return false
	}

	now := time.Now()
	ux, uy := cellToUnits(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			id, ok := m.questionUnderPointer(msg)
			if !ok {
				return false
			}
			if !m.ctrl.Press(id, ux, uy, now) {
				m.debugLogf("mouse press rejected id=%s (session live)", id)
			}
			m.refreshGestureView()
			return true
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			// Suppress list scrolling under a locked gesture so the card
			// doesn't slide away from the pointer mid-swipe.
			return m.ctrl.Capturing()
		}

	case tea.MouseActionMotion:
		if _, ok := m.ctrl.Active(); !ok {
			return false
		}
		m.ctrl.Move(ux, uy, now)
		m.refreshGestureView()
		return true

	case tea.MouseActionRelease:
		if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonNone {
			return false
		}
		if _, ok := m.ctrl.Active(); !ok {
			return false
		}
		m.ctrl.Release(now)
		m.refreshGestureView()
		return true
	}
	return false
}

// questionUnderPointer hit-tests the pointer against the card zones marked
// by the delegate on the previous render.
func (m *appModel) questionUnderPointer(msg tea.MouseMsg) (string, bool) {
	for _, id := range m.bridge.CardIDs() {
		if zone.Get(questionZoneID(id)).InBounds(msg) {
			return id, true
		}
	}
	return "", false
}

// refreshGestureView copies the controller's per-card frame into the shared
// render snapshot the delegate reads.
func (m *appModel) refreshGestureView() {
	id, ok := m.ctrl.Active()
	m.gview.active = ok
	if ok {
		m.gview.frame = m.ctrl.FrameFor(id)
	} else {
		m.gview.frame = gestureNeutral
	}
}
