package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryRecord is one successful lookup.
type HistoryRecord struct {
	ID         uuid.UUID
	Word       string
	Lang       Lang
	Source     string
	LookedUpAt time.Time
}

// NewHistoryRecord stamps a lookup with a fresh ID and the current time.
func NewHistoryRecord(word string, lang Lang, source string, now time.Time) HistoryRecord {
	return HistoryRecord{
		ID:         uuid.New(),
		Word:       word,
		Lang:       lang,
		Source:     source,
		LookedUpAt: now.UTC(),
	}
}

// WordCount is a headword with the number of times it was looked up.
type WordCount struct {
	Word  string
	Lang  Lang
	Count int64
	Last  time.Time
}
