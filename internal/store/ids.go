package store

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"strings"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 8 chars base32 ~= 40 bits of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

func idExists(db *DB, id string) bool {
	for _, d := range db.Decks {
		if d.ID == id {
			return true
		}
	}
	for _, q := range db.Questions {
		if q.ID == id {
			return true
		}
	}
	return false
}

func newUniqueID(db *DB, prefix string) (string, error) {
	for i := 0; i < 32; i++ {
		id, err := newRandomID(prefix)
		if err != nil {
			return "", err
		}
		if !idExists(db, id) {
			return id, nil
		}
	}
	return "", errors.New("unable to generate unique id")
}

func NewDeckID(db *DB) (string, error)     { return newUniqueID(db, "deck") }
func NewQuestionID(db *DB) (string, error) { return newUniqueID(db, "q") }
