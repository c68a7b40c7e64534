// Package entry turns raw entry documents, as produced by a dictionary
// source, into domain entries. Raw documents are JSON with loosely typed
// nested lists; anything that does not fit is defaulted or skipped here so
// that renderers only ever see well-formed domain values.
package entry

import (
	"github.com/tidwall/gjson"

	"github.com/heartmarshall/wudao-dict/internal/domain"
)

// Classify decides the example format of an English entry from its raw
// sentence list. Only the first unit is inspected: exactly two elements
// means plain, anything else (including a unit that is not a list at all)
// means annotated. The result applies to every unit of the entry.
func Classify(units []gjson.Result) domain.SentenceFormat {
	if len(units) == 0 {
		return domain.FormatEmpty
	}
	first := units[0]
	if first.IsArray() && len(first.Array()) == 2 {
		return domain.FormatPlain
	}
	return domain.FormatAnnotated
}
