package model

import "time"

type Deck struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	Archived  bool      `json:"archived"`
}

// Choice is one answer option on a question. More than one choice may be
// marked correct (multi-select questions).
type Choice struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type Question struct {
	ID     string `json:"id"`
	DeckID string `json:"deckId"`

	// Rank orders questions within a deck. Ordering is purely lexicographic;
	// see store.RankBetween.
	Rank string `json:"rank,omitempty"`

	// Prompt is markdown (rendered in the TUI preview pane).
	Prompt  string   `json:"prompt"`
	Choices []Choice `json:"choices,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CorrectCount returns how many choices are marked correct.
func (q Question) CorrectCount() int {
	n := 0
	for _, c := range q.Choices {
		if c.Correct {
			n++
		}
	}
	return n
}
