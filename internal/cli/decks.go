package cli

import (
	"fmt"
	"strings"
	"time"

	"quizdeck-cli/internal/model"

	"github.com/spf13/cobra"
)

type deckOut struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	Archived  bool      `json:"archived,omitempty"`
	Questions int       `json:"questions"`
}

func deckToOut(d model.Deck, questionCount int) deckOut {
	return deckOut{
		ID:        d.ID,
		Title:     d.Title,
		CreatedAt: d.CreatedAt,
		Archived:  d.Archived,
		Questions: questionCount,
	}
}

func newDecksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decks",
		Short: "Manage decks",
	}
	cmd.AddCommand(newDecksListCmd(app))
	cmd.AddCommand(newDecksAddCmd(app))
	cmd.AddCommand(newDecksRenameCmd(app))
	cmd.AddCommand(newDecksDeleteCmd(app))
	return cmd
}

func newDecksListCmd(app *App) *cobra.Command {
	var includeArchived bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List decks",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			counts := map[string]int{}
			for _, q := range db.Questions {
				counts[q.DeckID]++
			}
			out := []deckOut{}
			for _, d := range db.Decks {
				if d.Archived && !includeArchived {
					continue
				}
				out = append(out, deckToOut(d, counts[d.ID]))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	cmd.Flags().BoolVar(&includeArchived, "all", false, "Include archived decks")
	return cmd
}

func newDecksAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			d, err := db.AppendDeck(args[0], time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveAndIndex(s, db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": deckToOut(d, 0)})
		},
	}
	return cmd
}

func newDecksRenameCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <deck-id> <title>",
		Short: "Rename a deck",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			title := strings.TrimSpace(args[1])
			if title == "" {
				return writeErr(cmd, fmt.Errorf("title must not be empty"))
			}
			d, ok := db.RenameDeck(args[0], title)
			if !ok {
				return writeErr(cmd, fmt.Errorf("deck not found: %s", args[0]))
			}
			if err := saveAndIndex(s, db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": deckToOut(d, len(db.QuestionsForDeck(d.ID))),
			})
		},
	}
	return cmd
}

func newDecksDeleteCmd(app *App) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete <deck-id>",
		Short: "Delete a deck and all of its questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			d, ok := db.FindDeck(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("deck not found: %s", args[0]))
			}
			n := len(db.QuestionsForDeck(d.ID))
			if n > 0 && !force {
				return writeErr(cmd, fmt.Errorf("deck %q has %d questions; pass --force to delete them too", d.Title, n))
			}
			db.RemoveDeck(d.ID)
			if err := saveAndIndex(s, db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"deleted": d.ID, "questionsDeleted": n},
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Delete even when the deck still has questions")
	return cmd
}
