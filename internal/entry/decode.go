package entry

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/wudao-dict/internal/domain"
)

// Decode parses a raw entry document of the given language.
func Decode(lang domain.Lang, data []byte) (domain.Entry, error) {
	switch lang {
	case domain.LangEnglish:
		e, err := DecodeEnglish(data)
		if err != nil {
			return domain.Entry{}, err
		}
		return domain.Entry{Lang: lang, English: e}, nil
	case domain.LangChinese:
		e, err := DecodeChinese(data)
		if err != nil {
			return domain.Entry{}, err
		}
		return domain.Entry{Lang: lang, Chinese: e}, nil
	default:
		return domain.Entry{}, fmt.Errorf("decode entry: unknown language %q: %w", lang, domain.ErrInvariant)
	}
}

// parseDocument validates that data is a JSON object and returns its root.
func parseDocument(kind string, data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("decode %s entry: invalid json: %w", kind, domain.ErrInvariant)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return gjson.Result{}, fmt.Errorf("decode %s entry: document is %s, not an object: %w", kind, doc.Type, domain.ErrInvariant)
	}
	return doc, nil
}

// str returns the text of a scalar. Absent values, null, lists and objects
// all read as "" so a wrongly typed field behaves like a missing one.
func str(r gjson.Result) string {
	switch r.Type {
	case gjson.String, gjson.Number:
		return r.String()
	default:
		return ""
	}
}

// list returns the elements of an array, or nil for anything else.
func list(r gjson.Result) []gjson.Result {
	if !r.IsArray() {
		return nil
	}
	return r.Array()
}

// stringList returns the string elements of an array, or a single-element
// slice when r is itself a string. Non-string elements are dropped.
func stringList(r gjson.Result) []string {
	if r.Type == gjson.String {
		return []string{r.Str}
	}
	var out []string
	for _, v := range list(r) {
		if v.Type == gjson.String {
			out = append(out, v.Str)
		}
	}
	return out
}

func headword(doc gjson.Result) string {
	return strings.TrimSpace(str(doc.Get("word")))
}
