package domain

import "fmt"

// Lang identifies which entry shape a lookup produces.
type Lang string

const (
	LangEnglish Lang = "en"
	LangChinese Lang = "zh"
)

func (l Lang) IsValid() bool {
	return l == LangEnglish || l == LangChinese
}

// EnglishPronunciation holds the three phonetic slots of an English entry.
// Each slot is a bracketed phonetic string such as "[test]" or empty.
type EnglishPronunciation struct {
	UK    string
	USA   string
	Other string
}

// IsEmpty reports whether no slot carries a value.
func (p EnglishPronunciation) IsEmpty() bool {
	return p.UK == "" && p.USA == "" && p.Other == ""
}

// Paraphrase is one labelled group of definitions. Label is a part of speech
// or category and may be empty when the source gave a bare list.
type Paraphrase struct {
	Label       string
	Definitions []string
}

// EnglishEntry is the normalized record of an English headword.
type EnglishEntry struct {
	Word          string
	Pronunciation EnglishPronunciation
	Paraphrases   []Paraphrase
	Rank          string
	Pattern       string
	Sentences     Sentences
}

// NewEnglishEntry builds an entry and enforces the headword invariant.
// Nil slices are replaced with empty ones so renderers never see nil.
func NewEnglishEntry(word string, pron EnglishPronunciation, paraphrases []Paraphrase, rank, pattern string, sentences Sentences) (*EnglishEntry, error) {
	if word == "" {
		return nil, fmt.Errorf("english entry: word is empty: %w", ErrInvariant)
	}
	if paraphrases == nil {
		paraphrases = []Paraphrase{}
	}
	if sentences.Units == nil {
		sentences.Units = []SentenceUnit{}
	}
	return &EnglishEntry{
		Word:          word,
		Pronunciation: pron,
		Paraphrases:   paraphrases,
		Rank:          rank,
		Pattern:       pattern,
		Sentences:     sentences,
	}, nil
}

// DescBlock is one entry of a Chinese word's detailed description.
// An empty block keeps its position in the list but is never displayed.
type DescBlock struct {
	Subtitle string
	// Fragments alternate source-language (even index) and
	// target-language (odd index) text.
	Fragments []string
	Empty     bool
}

// ChineseEntry is the normalized record of a Chinese headword.
type ChineseEntry struct {
	Word          string
	Pronunciation string
	Paraphrases   []string
	Desc          []DescBlock
	// Sentences holds PlainUnit or SkippedUnit values only.
	Sentences []SentenceUnit
}

// NewChineseEntry builds an entry and enforces the headword invariant.
func NewChineseEntry(word, pronunciation string, paraphrases []string, desc []DescBlock, sentences []SentenceUnit) (*ChineseEntry, error) {
	if word == "" {
		return nil, fmt.Errorf("chinese entry: word is empty: %w", ErrInvariant)
	}
	if paraphrases == nil {
		paraphrases = []string{}
	}
	if desc == nil {
		desc = []DescBlock{}
	}
	if sentences == nil {
		sentences = []SentenceUnit{}
	}
	return &ChineseEntry{
		Word:          word,
		Pronunciation: pronunciation,
		Paraphrases:   paraphrases,
		Desc:          desc,
		Sentences:     sentences,
	}, nil
}

// Entry is the result of one lookup. Exactly one of English and Chinese is
// set, matching Lang.
type Entry struct {
	Lang    Lang
	English *EnglishEntry
	Chinese *ChineseEntry
}

// Word returns the headword of whichever shape is set.
func (e Entry) Word() string {
	switch {
	case e.English != nil:
		return e.English.Word
	case e.Chinese != nil:
		return e.Chinese.Word
	default:
		return ""
	}
}
