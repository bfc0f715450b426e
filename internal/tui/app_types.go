package tui

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type view int

const (
	viewDecks view = iota
	viewQuestions
	viewEdit
)

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmDelete
	modalNewDeck
)

type confirmModalFocus int

const (
	confirmFocusCancel confirmModalFocus = iota
	confirmFocusConfirm
)

type minibufferClearMsg struct{ seq int }

func (m *appModel) debugLogf(format string, args ...any) {
	if m.debugLogPath == "" {
		return
	}
	f, err := os.OpenFile(m.debugLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	line := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintf(f, "%s %s\n", time.Now().Format("15:04:05.000"), line)
}
