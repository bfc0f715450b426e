package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Search index over question prompts, kept in index.sqlite next to db.json.
// db.json stays authoritative; the index is rebuilt wholesale on save, which
// is cheap at the deck sizes this tool targets.

const indexFileName = "index.sqlite"

func (s Store) sqlitePath() string { return filepath.Join(s.Dir, indexFileName) }

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout helps avoid
	// "database is locked" flakiness when a TUI and a script overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateIndex(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateIndex(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS questions (
			id TEXT PRIMARY KEY,
			deck_id TEXT NOT NULL,
			rank TEXT NOT NULL DEFAULT '',
			prompt TEXT NOT NULL,
			choice_count INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_questions_deck ON questions(deck_id, rank);`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// RebuildIndex replaces the question index with the current db.json state.
func (s Store) RebuildIndex(ctx context.Context, st *DB) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions;`); err != nil {
		return err
	}
	ins, err := tx.PrepareContext(ctx,
		`INSERT INTO questions (id, deck_id, rank, prompt, choice_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return err
	}
	defer ins.Close()

	for _, q := range st.Questions {
		_, err := ins.ExecContext(ctx,
			q.ID, q.DeckID, q.Rank, q.Prompt, len(q.Choices),
			q.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SearchHit is one question index match.
type SearchHit struct {
	ID          string
	DeckID      string
	Prompt      string
	ChoiceCount int
}

// SearchQuestions returns questions whose prompt contains the query
// (case-insensitive), optionally restricted to one deck.
func (s Store) SearchQuestions(ctx context.Context, deckID, query string) ([]SearchHit, error) {
	query = strings.TrimSpace(query)
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	where := `WHERE prompt LIKE ? ESCAPE '\'`
	args := []any{"%" + escapeLike(query) + "%"}
	if strings.TrimSpace(deckID) != "" {
		where += ` AND deck_id = ?`
		args = append(args, strings.TrimSpace(deckID))
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, deck_id, prompt, choice_count FROM questions `+where+` ORDER BY deck_id, rank, id;`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SearchHit
	for rows.Next() {
		var h SearchHit
		if err := rows.Scan(&h.ID, &h.DeckID, &h.Prompt, &h.ChoiceCount); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
