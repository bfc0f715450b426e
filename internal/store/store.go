package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"quizdeck-cli/internal/model"
)

const dbFileName = "db.json"

type DB struct {
	Version   int              `json:"version"`
	Decks     []model.Deck     `json:"decks"`
	Questions []model.Question `json:"questions"`
}

type Store struct {
	Dir string
}

// DiscoverDir walks upward from start looking for a .quizdeck directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".quizdeck")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func (s Store) dbPath() string { return filepath.Join(s.Dir, dbFileName) }

func (s Store) Init() (*DB, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return nil, errors.New("store dir not set")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, err
	}
	if _, err := os.Stat(s.dbPath()); err == nil {
		return s.Load()
	}
	db := &DB{Version: 1}
	if err := s.Save(db); err != nil {
		return nil, err
	}
	return db, nil
}

func (s Store) Load() (*DB, error) {
	b, err := os.ReadFile(s.dbPath())
	if err != nil {
		return nil, err
	}
	var db DB
	if err := json.Unmarshal(b, &db); err != nil {
		return nil, fmt.Errorf("parse %s: %w", dbFileName, err)
	}
	if db.Version == 0 {
		db.Version = 1
	}
	return &db, nil
}

// Save writes atomically (temp file + rename) so a crash mid-write never
// leaves a truncated db.json behind.
func (s Store) Save(db *DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.dbPath() + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.dbPath())
}

func (db *DB) FindDeck(id string) (model.Deck, bool) {
	id = strings.TrimSpace(id)
	for _, d := range db.Decks {
		if d.ID == id {
			return d, true
		}
	}
	return model.Deck{}, false
}

func (db *DB) FindQuestion(id string) (model.Question, bool) {
	id = strings.TrimSpace(id)
	for _, q := range db.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return model.Question{}, false
}

// QuestionsForDeck returns the deck's questions in authoritative order:
// rank (lexicographic), then CreatedAt, then ID.
func (db *DB) QuestionsForDeck(deckID string) []model.Question {
	deckID = strings.TrimSpace(deckID)
	out := make([]model.Question, 0, 8)
	for _, q := range db.Questions {
		if q.DeckID == deckID {
			out = append(out, q)
		}
	}
	SortQuestionsByRankOrder(out)
	return out
}

// UpsertQuestion replaces the question with the same ID, or appends it.
func (db *DB) UpsertQuestion(q model.Question) {
	for i := range db.Questions {
		if db.Questions[i].ID == q.ID {
			db.Questions[i] = q
			return
		}
	}
	db.Questions = append(db.Questions, q)
}

// RemoveQuestion deletes by id. Removing an id that is already gone is a
// no-op (concurrent paths may race to delete the same card).
func (db *DB) RemoveQuestion(id string) bool {
	id = strings.TrimSpace(id)
	for i := range db.Questions {
		if db.Questions[i].ID == id {
			db.Questions = append(db.Questions[:i], db.Questions[i+1:]...)
			return true
		}
	}
	return false
}

func (db *DB) RemoveDeck(id string) bool {
	id = strings.TrimSpace(id)
	found := false
	for i := range db.Decks {
		if db.Decks[i].ID == id {
			db.Decks = append(db.Decks[:i], db.Decks[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return false
	}
	kept := db.Questions[:0]
	for _, q := range db.Questions {
		if q.DeckID != id {
			kept = append(kept, q)
		}
	}
	db.Questions = kept
	return true
}

// RenameDeck updates a deck's title in place, returning the updated deck
// and whether the id was found.
func (db *DB) RenameDeck(id, title string) (model.Deck, bool) {
	id = strings.TrimSpace(id)
	for i := range db.Decks {
		if db.Decks[i].ID == id {
			db.Decks[i].Title = title
			return db.Decks[i], true
		}
	}
	return model.Deck{}, false
}

// SortQuestionsByRankOrder sorts questions in place using the same ordering
// the TUI renders: rank (lexicographic), then CreatedAt, then ID.
func SortQuestionsByRankOrder(qs []model.Question) {
	sort.SliceStable(qs, func(i, j int) bool {
		return compareQuestionsByRankCreatedID(qs[i], qs[j]) < 0
	})
}

func compareQuestionsByRankCreatedID(a, b model.Question) int {
	ra := strings.TrimSpace(a.Rank)
	rb := strings.TrimSpace(b.Rank)
	if ra != "" && rb != "" && ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		if a.CreatedAt.Before(b.CreatedAt) {
			return -1
		}
		return 1
	}
	if a.ID < b.ID {
		return -1
	}
	if a.ID > b.ID {
		return 1
	}
	return 0
}

// AppendQuestion creates a question at the end of the deck's order.
func (db *DB) AppendQuestion(deckID, prompt string, choices []model.Choice, now time.Time) (model.Question, error) {
	deckID = strings.TrimSpace(deckID)
	if _, ok := db.FindDeck(deckID); !ok {
		return model.Question{}, fmt.Errorf("unknown deck %q", deckID)
	}
	id, err := NewQuestionID(db)
	if err != nil {
		return model.Question{}, err
	}
	sibs := db.QuestionsForDeck(deckID)
	lower := ""
	if len(sibs) > 0 {
		lower = strings.TrimSpace(sibs[len(sibs)-1].Rank)
	}
	rank, err := RankAfter(lower)
	if err != nil {
		return model.Question{}, err
	}
	q := model.Question{
		ID:        id,
		DeckID:    deckID,
		Rank:      rank,
		Prompt:    strings.TrimSpace(prompt),
		Choices:   choices,
		CreatedAt: now,
		UpdatedAt: now,
	}
	db.Questions = append(db.Questions, q)
	return q, nil
}

// AppendDeck creates a deck.
func (db *DB) AppendDeck(title string, now time.Time) (model.Deck, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Deck{}, errors.New("deck title required")
	}
	id, err := NewDeckID(db)
	if err != nil {
		return model.Deck{}, err
	}
	d := model.Deck{ID: id, Title: title, CreatedAt: now}
	db.Decks = append(db.Decks, d)
	return d, nil
}
