package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"quizdeck-cli/internal/model"

	"github.com/spf13/cobra"
)

type questionOut struct {
	ID        string         `json:"id"`
	DeckID    string         `json:"deckId"`
	Rank      string         `json:"rank"`
	Prompt    string         `json:"prompt"`
	Choices   []model.Choice `json:"choices,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func questionToOut(q model.Question) questionOut {
	return questionOut{
		ID:        q.ID,
		DeckID:    q.DeckID,
		Rank:      q.Rank,
		Prompt:    q.Prompt,
		Choices:   q.Choices,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

// parseChoiceFlag parses a repeated --choice value. A "[x] " prefix marks the
// choice correct; "[ ] " or no prefix marks it incorrect.
func parseChoiceFlag(s string) (model.Choice, error) {
	c := model.Choice{}
	switch {
	case strings.HasPrefix(s, "[x] "), strings.HasPrefix(s, "[X] "):
		c.Correct = true
		c.Text = strings.TrimSpace(s[4:])
	case strings.HasPrefix(s, "[ ] "):
		c.Text = strings.TrimSpace(s[4:])
	default:
		c.Text = strings.TrimSpace(s)
	}
	if c.Text == "" {
		return c, fmt.Errorf("empty choice text in %q", s)
	}
	return c, nil
}

func newQuestionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Manage questions",
	}
	cmd.AddCommand(newQuestionsListCmd(app))
	cmd.AddCommand(newQuestionsShowCmd(app))
	cmd.AddCommand(newQuestionsAddCmd(app))
	cmd.AddCommand(newQuestionsEditCmd(app))
	cmd.AddCommand(newQuestionsDeleteCmd(app))
	cmd.AddCommand(newQuestionsMoveCmd(app))
	cmd.AddCommand(newQuestionsSearchCmd(app))
	return cmd
}

func newQuestionsListCmd(app *App) *cobra.Command {
	var deckID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List questions in a deck, in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := db.FindDeck(deckID); !ok {
				return writeErr(cmd, fmt.Errorf("deck not found: %s", deckID))
			}
			out := []questionOut{}
			for _, q := range db.QuestionsForDeck(deckID) {
				out = append(out, questionToOut(q))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	cmd.Flags().StringVar(&deckID, "deck", "", "Deck id (required)")
	_ = cmd.MarkFlagRequired("deck")
	return cmd
}

func newQuestionsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <question-id>",
		Short: "Show one question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			q, ok := db.FindQuestion(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("question not found: %s", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": questionToOut(q)})
		},
	}
	return cmd
}

func newQuestionsAddCmd(app *App) *cobra.Command {
	var (
		deckID  string
		prompt  string
		choices []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a question at the end of a deck",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var cs []model.Choice
			for _, raw := range choices {
				c, err := parseChoiceFlag(raw)
				if err != nil {
					return writeErr(cmd, err)
				}
				cs = append(cs, c)
			}
			q, err := db.AppendQuestion(deckID, prompt, cs, time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveAndIndex(s, db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": questionToOut(q)})
		},
	}
	cmd.Flags().StringVar(&deckID, "deck", "", "Deck id (required)")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Question prompt, markdown (required)")
	cmd.Flags().StringArrayVar(&choices, "choice", nil, `Choice text; prefix with "[x] " to mark it correct (repeatable)`)
	_ = cmd.MarkFlagRequired("deck")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

func newQuestionsEditCmd(app *App) *cobra.Command {
	var (
		prompt  string
		choices []string
	)
	cmd := &cobra.Command{
		Use:   "edit <question-id>",
		Short: "Update a question's prompt and/or choices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			q, ok := db.FindQuestion(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("question not found: %s", args[0]))
			}
			if cmd.Flags().Changed("prompt") {
				q.Prompt = prompt
			}
			if cmd.Flags().Changed("choice") {
				var cs []model.Choice
				for _, raw := range choices {
					c, err := parseChoiceFlag(raw)
					if err != nil {
						return writeErr(cmd, err)
					}
					cs = append(cs, c)
				}
				q.Choices = cs
			}
			q.UpdatedAt = time.Now()
			db.UpsertQuestion(q)
			if err := saveAndIndex(s, db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": questionToOut(q)})
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "", "New prompt")
	cmd.Flags().StringArrayVar(&choices, "choice", nil, "Replacement choices (repeatable, replaces all)")
	return cmd
}

func newQuestionsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <question-id>",
		Short: "Delete a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			removed := db.RemoveQuestion(args[0])
			if removed {
				if err := saveAndIndex(s, db); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"deleted": args[0], "removed": removed},
			})
		},
	}
	return cmd
}

func newQuestionsMoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <question-id> <index>",
		Short: "Move a question to a zero-based position within its deck",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			q, ok := db.FindQuestion(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("question not found: %s", args[0]))
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return writeErr(cmd, fmt.Errorf("index must be an integer: %q", args[1]))
			}
			qs := db.QuestionsForDeck(q.DeckID)
			from := -1
			for i := range qs {
				if qs[i].ID == q.ID {
					from = i
					break
				}
			}
			if to < 0 || to >= len(qs) {
				return writeErr(cmd, fmt.Errorf("index out of range: %d (deck has %d questions)", to, len(qs)))
			}
			if err := db.ApplyReorder(q.DeckID, from, to); err != nil {
				return writeErr(cmd, err)
			}
			if err := saveAndIndex(s, db); err != nil {
				return writeErr(cmd, err)
			}
			out := []questionOut{}
			for _, sq := range db.QuestionsForDeck(q.DeckID) {
				out = append(out, questionToOut(sq))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	return cmd
}

func newQuestionsSearchCmd(app *App) *cobra.Command {
	var deckID string
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search question prompts (SQLite index)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			// Keep the index consistent with db.json even when the file was
			// edited out-of-band.
			if err := saveAndIndex(s, db); err != nil {
				return writeErr(cmd, err)
			}
			hits, err := s.SearchQuestions(cmd.Context(), deckID, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": hits})
		},
	}
	cmd.Flags().StringVar(&deckID, "deck", "", "Restrict to one deck")
	return cmd
}
