package tui

import (
	"fmt"
	"strings"

	"quizdeck-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type deckItem struct {
	deck      model.Deck
	questions int
}

func (i deckItem) FilterValue() string { return i.deck.Title }
func (i deckItem) Title() string       { return i.deck.Title }
func (i deckItem) Description() string {
	return fmt.Sprintf("%d questions", i.questions)
}

type questionItem struct {
	q model.Question
}

func (i questionItem) FilterValue() string { return i.q.Prompt }
func (i questionItem) Title() string       { return firstLine(i.q.Prompt) }
func (i questionItem) Description() string {
	if n := len(i.q.Choices); n > 0 {
		return fmt.Sprintf("%d choices • %d correct", n, i.q.CorrectCount())
	}
	return "open answer"
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}

func newList(title, statusName string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// We render our own footer + breadcrumb, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName(statusName, statusName+"s")
	// The bubbles list quits on ESC by default; here ESC means back/cancel.
	l.KeyMap.Quit.SetKeys("ctrl+c")
	return l
}
