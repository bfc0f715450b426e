package tui

import (
	"os"
	"strconv"
	"strings"
	"time"

	"quizdeck-cli/internal/gesture"
)

// Gesture wiring. The update loop feeds pointer events into the gesture
// controller; committed intents come back out through this bridge as queued
// values drained before the Update call returns, so every mutation stays on
// the single program goroutine and dispatch order follows event order.

// gestureNeutral is the frame rendered for every card while no session is
// live.
var gestureNeutral = gesture.Frame{CandidateIndex: -1}

type intentKind int

const (
	intentEdit intentKind = iota
	intentConfirmDelete
	intentDelete
	intentReorder
)

type intent struct {
	kind   intentKind
	cardID string
	from   int
	to     int
}

// gestureBridge implements the controller's three collaborator interfaces
// (Dispatcher, Geometry, CardList) over the deck currently on screen.
type gestureBridge struct {
	queue []intent
	ids   []string
}

func (b *gestureBridge) Edit(cardID string) {
	b.queue = append(b.queue, intent{kind: intentEdit, cardID: cardID})
}

func (b *gestureBridge) RequestDeleteConfirmation(cardID string) {
	b.queue = append(b.queue, intent{kind: intentConfirmDelete, cardID: cardID})
}

func (b *gestureBridge) Delete(cardID string) {
	b.queue = append(b.queue, intent{kind: intentDelete, cardID: cardID})
}

func (b *gestureBridge) Reorder(from, to int) {
	b.queue = append(b.queue, intent{kind: intentReorder, from: from, to: to})
}

// CardHeight reports the list stride in gesture units. Cards all render at
// the same height, so one measurement covers every id.
func (b *gestureBridge) CardHeight(string) (float64, bool) {
	return cardStrideRows * rowUnit, true
}

func (b *gestureBridge) CardIDs() []string { return b.ids }

func (b *gestureBridge) setCards(ids []string) { b.ids = ids }

func (b *gestureBridge) drain() []intent {
	out := b.queue
	b.queue = nil
	return out
}

// Pointer-unit scaling. Terminal cells are roughly twice as tall as they
// are wide; scaling rows by 2 gives the direction classifier square-ish
// units so diagonal presses aren't biased toward horizontal.
const (
	colUnit = 1.0
	rowUnit = 2.0
)

func cellToUnits(x, y int) (ux, uy float64) {
	return float64(x) * colUnit, float64(y) * rowUnit
}

// tuiGestureConfig is the cell-scale tuning of the gesture thresholds.
// QUIZDECK_HOLD_MS opts into hold-to-arm for reorder drags.
func tuiGestureConfig() gesture.Config {
	cfg := gesture.Config{
		LockThreshold:     2,
		AxisBias:          1.5,
		MaxOffset:         16,
		EditThreshold:     8,
		DeleteThreshold:   8,
		CommitOffset:      8,
		CommitVelocity:    40,
		DefaultCardHeight: cardStrideRows * rowUnit,
	}
	if v := strings.TrimSpace(os.Getenv("QUIZDECK_HOLD_MS")); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.HoldToArm = time.Duration(ms) * time.Millisecond
		}
	}
	return cfg
}
