package entry

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/wudao-dict/internal/domain"
)

// DecodeEnglish parses an English entry document:
//
//	{
//	  "word": "test",
//	  "pronunciation": {"uk": "[test]", "usa": "", "other": ""},
//	  "paraphrase": {"n.": ["测试"]},
//	  "rank": "CET4",
//	  "pattern": "tests ",
//	  "sentence": [["This is a test.", "这是一个测试。"]]
//	}
//
// "paraphrase" may also be a list of strings, and "sentence" may be wrapped
// as {"sentences": [...]}. Only "word" is required.
func DecodeEnglish(data []byte) (*domain.EnglishEntry, error) {
	doc, err := parseDocument("english", data)
	if err != nil {
		return nil, err
	}

	e, err := domain.NewEnglishEntry(
		headword(doc),
		decodeEnglishPronunciation(doc.Get("pronunciation")),
		decodeParaphrases(doc.Get("paraphrase")),
		str(doc.Get("rank")),
		str(doc.Get("pattern")),
		decodeSentences(doc.Get("sentence")),
	)
	if err != nil {
		return nil, fmt.Errorf("decode english entry: %w", err)
	}
	return e, nil
}

func decodeEnglishPronunciation(r gjson.Result) domain.EnglishPronunciation {
	if r.Type == gjson.String {
		return domain.EnglishPronunciation{Other: r.Str}
	}
	return domain.EnglishPronunciation{
		UK:    str(r.Get("uk")),
		USA:   str(r.Get("usa")),
		Other: str(r.Get("other")),
	}
}

// decodeParaphrases keeps the document order of an object's keys, which is
// the display order.
func decodeParaphrases(r gjson.Result) []domain.Paraphrase {
	var out []domain.Paraphrase
	switch {
	case r.IsObject():
		r.ForEach(func(key, value gjson.Result) bool {
			defs := stringList(value)
			if len(defs) > 0 {
				out = append(out, domain.Paraphrase{Label: key.String(), Definitions: defs})
			}
			return true
		})
	default:
		for _, s := range stringList(r) {
			out = append(out, domain.Paraphrase{Definitions: []string{s}})
		}
	}
	return out
}

func decodeSentences(r gjson.Result) domain.Sentences {
	if r.IsObject() {
		r = r.Get("sentences")
	}
	raw := list(r)
	format := Classify(raw)

	units := make([]domain.SentenceUnit, 0, len(raw))
	for _, u := range raw {
		switch format {
		case domain.FormatPlain:
			units = append(units, plainUnit(u))
		case domain.FormatAnnotated:
			units = append(units, annotatedUnit(u))
		}
	}
	return domain.Sentences{Format: format, Units: units}
}

func plainUnit(u gjson.Result) domain.SentenceUnit {
	parts := list(u)
	if len(parts) != 2 {
		return domain.SkippedUnit{Reason: fmt.Sprintf("plain unit has %d elements", len(parts))}
	}
	return domain.PlainUnit{Source: str(parts[0]), Translation: str(parts[1])}
}

func annotatedUnit(u gjson.Result) domain.SentenceUnit {
	parts := list(u)
	if len(parts) != 3 {
		return domain.SkippedUnit{Reason: fmt.Sprintf("annotated unit has %d elements", len(parts))}
	}
	category := str(parts[1])
	if category == "" {
		return domain.SkippedUnit{Reason: "annotated unit has no category"}
	}
	rawPairs := list(parts[2])
	if len(rawPairs) == 0 {
		return domain.SkippedUnit{Reason: "annotated unit has no examples"}
	}

	pairs := make([]domain.ExamplePair, 0, len(rawPairs))
	for _, p := range rawPairs {
		if pair, ok := examplePair(p); ok {
			pairs = append(pairs, pair)
		}
	}
	return domain.AnnotatedUnit{
		Source:       str(parts[0]),
		Category:     category,
		Translations: pairs,
	}
}

// examplePair accepts ["en", "zh"] as well as {"en": ..., "zh": ...}.
func examplePair(p gjson.Result) (domain.ExamplePair, bool) {
	if p.IsObject() {
		return domain.ExamplePair{Source: str(p.Get("en")), Translation: str(p.Get("zh"))}, true
	}
	parts := list(p)
	if len(parts) < 2 {
		return domain.ExamplePair{}, false
	}
	return domain.ExamplePair{Source: str(parts[0]), Translation: str(parts[1])}, true
}
