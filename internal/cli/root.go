package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"quizdeck-cli/internal/store"
	"quizdeck-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "quizdeck",
		Short:        "Quizdeck (local-first) CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  quizdeck

  # Scriptable commands
  quizdeck decks list
  quizdeck questions list --deck deck-ab3k9f2m

  # Direct question lookup (shortcut for: quizdeck questions show <question-id>)
  quizdeck q-vth3k2aa
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("QUIZDECK_DIR", ""), "Path to store dir (default: walk up from cwd for a .quizdeck directory)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newReindexCmd(app))
	cmd.AddCommand(newDecksCmd(app))
	cmd.AddCommand(newQuestionsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	db, s, err := loadDB(app)
	if err != nil {
		return err
	}
	return tui.Run(s.Dir, db)
}

func loadDB(app *App) (*store.DB, store.Store, error) {
	dir := app.Dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, store.Store{}, err
		}
		d, ok := store.DiscoverDir(cwd)
		if !ok {
			return nil, store.Store{}, fmt.Errorf("no .quizdeck directory found (run `quizdeck init` first, or pass --dir)")
		}
		dir = d
		app.Dir = dir
	}

	s := store.Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		return nil, s, err
	}
	return db, s, nil
}

// saveAndIndex persists db.json and refreshes the SQLite search index.
func saveAndIndex(s store.Store, db *store.DB) error {
	if err := s.Save(db); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.RebuildIndex(ctx, db)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
