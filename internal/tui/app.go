package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"quizdeck-cli/internal/gesture"
	"quizdeck-cli/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

const (
	topPadLines      = 1
	minSplitPreviewW = 100
)

type appModel struct {
	dir   string
	store store.Store
	db    *store.DB

	width  int
	height int

	view view

	decksList      list.Model
	questionsList  list.Model
	selectedDeckID string

	// Gesture plumbing: one controller per app, bound to the questions of
	// the deck currently on screen.
	gview  *gestureView
	bridge *gestureBridge
	ctrl   *gesture.Controller

	modal             modalKind
	modalForID        string
	confirmFocus      confirmModalFocus
	confirmViaGesture bool
	confirmIsDeck     bool

	input          textinput.Model
	editor         textarea.Model
	editQuestionID string

	minibufferText string
	minibufferSeq  int

	debugLogPath string
}

func newAppModel(dir string, db *store.DB) appModel {
	gv := &gestureView{frame: gestureNeutral}
	bridge := &gestureBridge{}

	m := appModel{
		dir:          dir,
		store:        store.Store{Dir: dir},
		db:           db,
		view:         viewDecks,
		gview:        gv,
		bridge:       bridge,
		ctrl:         gesture.NewController(tuiGestureConfig(), bridge, bridge, bridge),
		debugLogPath: strings.TrimSpace(os.Getenv("QUIZDECK_TUI_DEBUG_LOG")),
	}

	m.decksList = newList("Decks", "deck", nil)
	m.questionsList = newList("Questions", "question", nil)
	m.questionsList.SetDelegate(newQuestionCardDelegate(gv))

	m.input = textinput.New()
	m.input.Placeholder = "Deck title"
	m.input.CharLimit = 120
	m.input.Width = 40

	m.editor = textarea.New()
	m.editor.Placeholder = "Question prompt…"
	m.editor.CharLimit = 0
	m.editor.SetWidth(72)
	m.editor.SetHeight(14)
	m.editor.ShowLineNumbers = false

	m.refreshDecks()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m *appModel) refreshDecks() {
	counts := map[string]int{}
	for _, q := range m.db.Questions {
		counts[q.DeckID]++
	}
	items := make([]list.Item, 0, len(m.db.Decks))
	for _, d := range m.db.Decks {
		items = append(items, deckItem{deck: d, questions: counts[d.ID]})
	}
	m.decksList.SetItems(items)
}

func (m *appModel) refreshQuestions() {
	qs := m.db.QuestionsForDeck(m.selectedDeckID)
	items := make([]list.Item, 0, len(qs))
	ids := make([]string, 0, len(qs))
	for _, q := range qs {
		items = append(items, questionItem{q: q})
		ids = append(ids, q.ID)
	}
	m.questionsList.SetItems(items)
	m.bridge.setCards(ids)
	// The authoritative order changed: a session bound to a removed card
	// must abandon rather than dispatch against a stale id.
	m.ctrl.SyncList()
	m.refreshGestureView()
}

func (m *appModel) persist() {
	if err := m.store.Save(m.db); err != nil {
		m.showMinibuffer("Save failed: " + err.Error())
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.store.RebuildIndex(ctx, m.db); err != nil {
		// The JSON state saved fine; a stale search index is not worth
		// interrupting the interaction for.
		m.debugLogf("index rebuild failed: %v", err)
	}
}

func (m *appModel) showMinibuffer(text string) tea.Cmd {
	m.minibufferText = text
	m.minibufferSeq++
	seq := m.minibufferSeq
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return minibufferClearMsg{seq: seq}
	})
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case minibufferClearMsg:
		if msg.seq == m.minibufferSeq {
			m.minibufferText = ""
		}
		return m, nil

	case tea.MouseMsg:
		if m.handleMouse(msg) {
			cmd := m.applyIntents()
			return m, cmd
		}
		// Wheel scrolling etc. falls through to the list.
		if m.view == viewQuestions && m.modal == modalNone {
			var cmd tea.Cmd
			m.questionsList, cmd = m.questionsList.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.modal {
	case modalConfirmDelete:
		return m.updateConfirmModal(msg)
	case modalNewDeck:
		return m.updateNewDeckModal(msg)
	}

	switch m.view {
	case viewDecks:
		return m.updateDecksKey(msg)
	case viewQuestions:
		return m.updateQuestionsKey(msg)
	case viewEdit:
		return m.updateEditKey(msg)
	}
	return m, nil
}

func (m appModel) updateConfirmModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusCancel {
			m.confirmFocus = confirmFocusConfirm
		} else {
			m.confirmFocus = confirmFocusCancel
		}
		return m, nil
	case "enter":
		cmd := m.resolveConfirm(m.confirmFocus == confirmFocusConfirm)
		return m, cmd
	case "y":
		cmd := m.resolveConfirm(true)
		return m, cmd
	case "n", "esc":
		// Dismissal without an explicit answer counts as "no": the card
		// must never stay parked in pending-confirmation.
		cmd := m.resolveConfirm(false)
		return m, cmd
	}
	return m, nil
}

func (m *appModel) resolveConfirm(confirmed bool) tea.Cmd {
	id := m.modalForID
	viaGesture := m.confirmViaGesture
	isDeck := m.confirmIsDeck

	m.modal = modalNone
	m.modalForID = ""
	m.confirmViaGesture = false
	m.confirmIsDeck = false
	m.confirmFocus = confirmFocusCancel

	switch {
	case viaGesture:
		m.ctrl.ResolveDelete(id, confirmed)
		m.refreshGestureView()
		return m.applyIntents()
	case confirmed && isDeck:
		m.deleteDeck(id)
	case confirmed:
		m.deleteQuestion(id)
	}
	return nil
}

func (m appModel) updateNewDeckModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		m.modal = modalNone
		m.input.Blur()
		if title == "" {
			return m, nil
		}
		if _, err := m.db.AppendDeck(title, time.Now()); err != nil {
			return m, m.showMinibuffer("Create failed: " + err.Error())
		}
		m.persist()
		m.refreshDecks()
		return m, nil
	case "esc":
		m.modal = modalNone
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateDecksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.decksList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.decksList, cmd = m.decksList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		if it, ok := m.decksList.SelectedItem().(deckItem); ok {
			m.selectedDeckID = it.deck.ID
			m.view = viewQuestions
			m.refreshQuestions()
			m.resizeLists()
		}
		return m, nil
	case "n":
		m.modal = modalNewDeck
		m.input.SetValue("")
		m.input.Focus()
		return m, nil
	case "d":
		if it, ok := m.decksList.SelectedItem().(deckItem); ok {
			m.modal = modalConfirmDelete
			m.modalForID = it.deck.ID
			m.confirmIsDeck = true
			m.confirmFocus = confirmFocusCancel
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.decksList, cmd = m.decksList.Update(msg)
	return m, cmd
}

func (m appModel) updateQuestionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.questionsList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.questionsList, cmd = m.questionsList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.ctrl.Cancel()
		m.refreshGestureView()
		m.view = viewDecks
		m.refreshDecks()
		return m, nil
	case "r":
		// Reload from disk so CLI edits in another terminal are reflected.
		if db, err := m.store.Load(); err == nil {
			m.db = db
			m.refreshDecks()
			m.refreshQuestions()
		}
		return m, nil
	case "enter", "e":
		if it, ok := m.questionsList.SelectedItem().(questionItem); ok {
			m.openEditor(it.q.ID)
		}
		return m, nil
	case "a":
		q, err := m.db.AppendQuestion(m.selectedDeckID, "New question", nil, time.Now())
		if err != nil {
			return m, m.showMinibuffer("Add failed: " + err.Error())
		}
		m.persist()
		m.refreshQuestions()
		m.openEditor(q.ID)
		return m, nil
	case "d":
		if it, ok := m.questionsList.SelectedItem().(questionItem); ok {
			m.modal = modalConfirmDelete
			m.modalForID = it.q.ID
			m.confirmFocus = confirmFocusCancel
		}
		return m, nil
	case "ctrl+j":
		m.moveSelected(1)
		return m, nil
	case "ctrl+k":
		m.moveSelected(-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.questionsList, cmd = m.questionsList.Update(msg)
	return m, cmd
}

func (m appModel) updateEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		cmd := m.saveEditor()
		return m, cmd
	case "esc":
		m.editor.Blur()
		m.editQuestionID = ""
		m.view = viewQuestions
		m.refreshQuestions()
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// applyIntents drains intents queued by the gesture bridge during this
// Update call and applies them in dispatch order.
func (m *appModel) applyIntents() tea.Cmd {
	var cmds []tea.Cmd
	for _, it := range m.bridge.drain() {
		switch it.kind {
		case intentEdit:
			m.openEditor(it.cardID)
		case intentConfirmDelete:
			m.modal = modalConfirmDelete
			m.modalForID = it.cardID
			m.confirmViaGesture = true
			m.confirmFocus = confirmFocusCancel
		case intentDelete:
			m.deleteQuestion(it.cardID)
		case intentReorder:
			if err := m.db.ApplyReorder(m.selectedDeckID, it.from, it.to); err != nil {
				cmds = append(cmds, m.showMinibuffer("Reorder failed: "+err.Error()))
				continue
			}
			m.persist()
			m.refreshQuestions()
		}
	}
	return tea.Batch(cmds...)
}

func (m *appModel) openEditor(questionID string) {
	q, ok := m.db.FindQuestion(questionID)
	if !ok {
		m.showMinibuffer("Question no longer exists")
		return
	}
	m.editQuestionID = q.ID
	m.editor.SetValue(questionToEditorText(q))
	m.editor.Focus()
	m.view = viewEdit
}

func (m *appModel) saveEditor() tea.Cmd {
	id := m.editQuestionID
	m.editQuestionID = ""
	m.editor.Blur()
	m.view = viewQuestions

	q, ok := m.db.FindQuestion(id)
	if !ok {
		// Deleted underneath the editor (another terminal, or a pending
		// delete that resolved). Nothing sane to save into.
		m.refreshQuestions()
		return m.showMinibuffer("Question was deleted while editing")
	}
	prompt, choices := parseEditorText(m.editor.Value())
	q.Prompt = prompt
	q.Choices = choices
	q.UpdatedAt = time.Now()
	m.db.UpsertQuestion(q)
	m.persist()
	m.refreshQuestions()
	return nil
}

func (m *appModel) deleteQuestion(id string) {
	m.db.RemoveQuestion(id)
	m.persist()
	m.refreshQuestions()
}

func (m *appModel) deleteDeck(id string) {
	m.db.RemoveDeck(id)
	if m.selectedDeckID == id {
		m.selectedDeckID = ""
		m.view = viewDecks
	}
	m.persist()
	m.refreshDecks()
}

// moveSelected is the keyboard reorder path (ctrl+j/ctrl+k). It shares the
// dispatcher-side splice with the gesture path.
func (m *appModel) moveSelected(delta int) {
	it, ok := m.questionsList.SelectedItem().(questionItem)
	if !ok {
		return
	}
	qs := m.db.QuestionsForDeck(m.selectedDeckID)
	from := -1
	for i, q := range qs {
		if q.ID == it.q.ID {
			from = i
			break
		}
	}
	to := from + delta
	if from < 0 || to < 0 || to >= len(qs) {
		return
	}
	if err := m.db.ApplyReorder(m.selectedDeckID, from, to); err != nil {
		m.showMinibuffer("Reorder failed: " + err.Error())
		return
	}
	m.persist()
	m.refreshQuestions()
	m.questionsList.Select(to)
}

func (m *appModel) resizeLists() {
	chrome := topPadLines + 3 // breadcrumb, footer, minibuffer
	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	m.decksList.SetSize(m.width, h)
	m.questionsList.SetSize(m.questionsListWidth(), h)
}

func (m appModel) questionsListWidth() int {
	if m.width >= minSplitPreviewW {
		return m.width / 2
	}
	return m.width
}

func (m appModel) View() string {
	var body string
	switch m.view {
	case viewDecks:
		body = m.viewDecksScreen()
	case viewQuestions:
		body = m.viewQuestionsScreen()
	case viewEdit:
		body = m.viewEditScreen()
	}

	if m.modal != modalNone {
		body = m.overlayModal()
	}
	// bubblezone needs to scan the final frame to learn card bounds.
	return zone.Scan(body)
}

func (m appModel) breadcrumb() string {
	parts := []string{"quizdeck"}
	if m.view != viewDecks {
		if d, ok := m.db.FindDeck(m.selectedDeckID); ok {
			parts = append(parts, d.Title)
		}
	}
	if m.view == viewEdit {
		parts = append(parts, "edit")
	}
	return styleMuted().Render(strings.Join(parts, " › "))
}

func (m appModel) viewDecksScreen() string {
	help := styleMuted().Render("enter: open   n: new deck   d: delete   /: filter   q: quit")
	return m.chromeAround(m.decksList.View(), help)
}

func (m appModel) viewQuestionsScreen() string {
	help := styleMuted().Render(
		"swipe →: edit   swipe ←: delete   drag ↕: reorder   a: add   e: edit   d: delete   ctrl+j/k: move   q: quit")

	content := m.questionsList.View()
	if m.width >= minSplitPreviewW {
		preview := m.renderPreview(m.width - m.questionsListWidth() - 2)
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, "  ", preview)
	}
	return m.chromeAround(content, help)
}

// renderPreview shows the selected question's prompt as rendered markdown
// plus its choices.
func (m appModel) renderPreview(width int) string {
	it, ok := m.questionsList.SelectedItem().(questionItem)
	if !ok {
		return styleMuted().Render("(no question selected)")
	}
	var b strings.Builder
	b.WriteString(renderMarkdown(it.q.Prompt, width-2))
	if len(it.q.Choices) > 0 {
		b.WriteString("\n\n")
		for _, c := range it.q.Choices {
			mark := "○"
			st := styleMuted()
			if c.Correct {
				mark = "●"
				st = lipgloss.NewStyle().Foreground(colorAccent)
			}
			b.WriteString(st.Render(mark+" "+c.Text) + "\n")
		}
	}
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Padding(0, 1).
		Render(strings.TrimRight(b.String(), "\n"))
}

func (m appModel) viewEditScreen() string {
	help := styleMuted().Render("ctrl+s: save   esc: discard   (prompt, then --- and one [x]/[ ] choice per line)")
	return m.chromeAround(m.editor.View(), help)
}

func (m appModel) chromeAround(content, help string) string {
	rows := []string{
		"",
		" " + m.breadcrumb(),
		content,
		help,
	}
	if m.minibufferText != "" {
		rows = append(rows, lipgloss.NewStyle().Foreground(colorWarn).Render(m.minibufferText))
	} else {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

func (m appModel) overlayModal() string {
	var box string
	switch m.modal {
	case modalConfirmDelete:
		title := "Delete question"
		body := "Delete this question? This cannot be undone."
		if m.confirmIsDeck {
			title = "Delete deck"
			if d, ok := m.db.FindDeck(m.modalForID); ok {
				body = fmt.Sprintf("Delete %q and all its questions? This cannot be undone.", d.Title)
			}
		} else if q, ok := m.db.FindQuestion(m.modalForID); ok {
			body = fmt.Sprintf("Delete %q? This cannot be undone.", truncateToWidth(firstLine(q.Prompt), 40))
		}
		box = renderConfirmModal(m.width, title, body, "Delete", "Cancel", m.confirmFocus)
	case modalNewDeck:
		box = renderModalBox(m.width, "New deck", m.input.View()+"\n\n"+styleMuted().Render("enter: create   esc: cancel"))
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
