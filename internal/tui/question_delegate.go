package tui

import (
	"fmt"
	"io"
	"math"
	"strings"

	"quizdeck-cli/internal/gesture"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
)

// Card geometry. The reorder engine's Geometry collaborator reports
// cardStride (in gesture units) so vertical drags step one card per card.
const (
	cardInnerLines = 2
	cardFrameLines = 2 // top + bottom border
	cardSpacing    = 1
	cardStrideRows = cardInnerLines + cardFrameLines + cardSpacing
)

// gestureView is the render-side snapshot of the active gesture session,
// shared by pointer between the update loop and the list delegate so the
// delegate stays a pure function of it.
type gestureView struct {
	active bool
	frame  gesture.Frame
}

type questionCardDelegate struct {
	gview *gestureView

	normalCard   lipgloss.Style
	selectedCard lipgloss.Style

	titleStyle lipgloss.Style
	metaStyle  lipgloss.Style
}

func newQuestionCardDelegate(gv *gestureView) questionCardDelegate {
	base := lipgloss.NewStyle().
		Width(0). // set per render
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Foreground(colorSurfaceFg)

	selected := base.BorderForeground(colorSelectedBorder)

	return questionCardDelegate{
		gview:        gv,
		normalCard:   base,
		selectedCard: selected,
		titleStyle:   lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg),
		metaStyle:    lipgloss.NewStyle().Foreground(colorCardMetaFg),
	}
}

func (d questionCardDelegate) Height() int  { return cardInnerLines + cardFrameLines }
func (d questionCardDelegate) Spacing() int { return cardSpacing }
func (d questionCardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d questionCardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(questionItem)
	if !ok {
		fmt.Fprint(w, "")
		return
	}
	totalW := m.Width()
	if totalW < 16 {
		fmt.Fprint(w, "")
		return
	}

	var f gesture.Frame
	isActive := false
	isDropTarget := false
	if d.gview != nil && d.gview.active {
		if d.gview.frame.CardID == it.q.ID {
			f = d.gview.frame
			isActive = true
		} else if d.gview.frame.CandidateIndex == index {
			isDropTarget = true
		}
	}

	card := d.normalCard
	if index == m.Index() {
		card = d.selectedCard
	}

	// Horizontal translation: offset units map 1:1 onto columns, capped so
	// the card always keeps a readable body.
	shift := 0
	if isActive {
		shift = int(math.Round(f.OffsetX))
		if maxShift := totalW / 3; shift > maxShift {
			shift = maxShift
		} else if shift < -maxShift {
			shift = -maxShift
		}
	}

	switch {
	case isActive && f.PendingConfirm:
		card = card.BorderForeground(colorWarn)
	case isActive && f.Lock == gesture.LockHorizontal && shift != 0:
		if shift > 0 {
			card = card.BorderForeground(rampColor(editRamp, f.Blend))
		} else {
			card = card.BorderForeground(rampColor(deleteRamp, f.Blend))
		}
	case isActive && f.Lock == gesture.LockVertical:
		// The lifted card renders faint so the drop target reads clearly.
		card = card.Faint(true)
	case isDropTarget:
		card = card.BorderTopForeground(colorAccent)
	}

	frameW := card.GetHorizontalFrameSize()
	innerW := totalW - frameW - abs(shift)
	if innerW < 8 {
		innerW = 8
	}
	card = card.Width(innerW)

	title := firstLine(it.q.Prompt)
	if title == "" {
		title = "(empty question)"
	}
	meta := it.Description()
	if isActive {
		if hint := d.actionHint(f); hint != "" {
			meta = hint
		}
	} else if isDropTarget {
		meta = lipgloss.NewStyle().Foreground(colorAccent).Render("⇣ drop here") + "  " + meta
	}

	lines := []string{
		padOrCutANSI(d.titleStyle.Render(truncateToWidth(title, innerW)), innerW),
		padOrCutANSI(d.metaStyle.Render(meta), innerW),
	}
	body := card.Render(strings.Join(lines, "\n"))

	// Gutter on the revealed side; the action glyph sits where the card
	// slid away from.
	if shift != 0 {
		glyph := d.gutterGlyph(f)
		body = placeBesideCard(body, glyph, shift)
	}

	fmt.Fprint(w, zone.Mark(questionZoneID(it.q.ID), body))
}

// actionHint is the in-card feedback line while a swipe or drag is live.
// Intensity tracks the blend factor: the hint starts muted and turns bold
// as the gesture approaches the commit threshold.
func (d questionCardDelegate) actionHint(f gesture.Frame) string {
	if f.PendingConfirm {
		return lipgloss.NewStyle().Foreground(colorWarn).Bold(true).Render("✖ delete? confirm below")
	}
	switch f.Lock {
	case gesture.LockHorizontal:
		st := styleMuted()
		switch f.Action {
		case gesture.ActionEdit:
			st = lipgloss.NewStyle().Foreground(rampColor(editRamp, f.Blend)).Bold(f.Blend >= 1)
			return st.Render("✎ release to edit")
		case gesture.ActionDelete:
			st = lipgloss.NewStyle().Foreground(rampColor(deleteRamp, f.Blend)).Bold(f.Blend >= 1)
			return st.Render("✖ release to delete")
		default:
			if f.OffsetX > 0 {
				return st.Render("✎ keep dragging to edit")
			}
			if f.OffsetX < 0 {
				return st.Render("✖ keep dragging to delete")
			}
		}
	case gesture.LockVertical:
		if f.CandidateIndex >= 0 {
			return styleMuted().Render(fmt.Sprintf("moving to position %d", f.CandidateIndex+1))
		}
	}
	return ""
}

func (d questionCardDelegate) gutterGlyph(f gesture.Frame) string {
	if f.OffsetX > 0 {
		return lipgloss.NewStyle().Foreground(rampColor(editRamp, f.Blend)).Render("✎")
	}
	return lipgloss.NewStyle().Foreground(rampColor(deleteRamp, f.Blend)).Render("✖")
}

// placeBesideCard pads every line of the rendered card with a gutter of
// |shift| columns on the revealed side, centering the glyph vertically.
func placeBesideCard(body, glyph string, shift int) string {
	lines := strings.Split(body, "\n")
	gutterW := abs(shift)
	mid := len(lines) / 2
	for i := range lines {
		gutter := strings.Repeat(" ", gutterW)
		if i == mid && gutterW >= 2 {
			gw := xansi.StringWidth(glyph)
			if gw < gutterW {
				pad := gutterW - gw
				gutter = strings.Repeat(" ", pad/2) + glyph + strings.Repeat(" ", pad-pad/2)
			}
		}
		if shift > 0 {
			lines[i] = gutter + lines[i]
		} else {
			lines[i] = lines[i] + gutter
		}
	}
	return strings.Join(lines, "\n")
}

func questionZoneID(id string) string { return "qcard:" + id }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func truncateToWidth(s string, w int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w <= 1 {
		return "…"
	}
	return xansi.Cut(s, 0, w-1) + "…"
}

func padOrCutANSI(s string, w int) string {
	cur := xansi.StringWidth(s)
	switch {
	case cur < w:
		return s + strings.Repeat(" ", w-cur)
	case cur > w:
		return xansi.Cut(s, 0, w) + "\x1b[0m"
	default:
		return s
	}
}
