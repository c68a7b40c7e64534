package domain

// SentenceFormat is the example format an English entry uses.
// It is decided once per entry and applies to every unit in it.
type SentenceFormat int

const (
	FormatEmpty SentenceFormat = iota
	FormatPlain
	FormatAnnotated
)

func (f SentenceFormat) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatAnnotated:
		return "annotated"
	default:
		return "empty"
	}
}

// SentenceUnit is one example record. The concrete type is one of
// PlainUnit, AnnotatedUnit or SkippedUnit.
type SentenceUnit interface {
	isSentenceUnit()
}

// PlainUnit is a [source, translation] example.
type PlainUnit struct {
	Source      string
	Translation string
}

// ExamplePair is a single example under an annotated sense.
type ExamplePair struct {
	Source      string
	Translation string
}

// AnnotatedUnit is a [source, category, examples] record.
type AnnotatedUnit struct {
	Source       string
	Category     string
	Translations []ExamplePair
}

// SkippedUnit stands in for a raw unit that did not match the entry's
// format. It is never displayed but still occupies its position, so later
// units keep the number they have in the source.
type SkippedUnit struct {
	Reason string
}

func (PlainUnit) isSentenceUnit()     {}
func (AnnotatedUnit) isSentenceUnit() {}
func (SkippedUnit) isSentenceUnit()   {}

// Sentences is the example list of an English entry together with the
// format detected for it.
type Sentences struct {
	Format SentenceFormat
	Units  []SentenceUnit
}

// Len returns the number of raw units, skipped ones included.
func (s Sentences) Len() int {
	return len(s.Units)
}
