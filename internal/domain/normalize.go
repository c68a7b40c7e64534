package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeWord prepares a user query for lookup:
//   - applies NFKC, folding full-width Latin letters and spaces typed
//     through a Chinese input method
//   - trims leading/trailing whitespace
//   - compresses runs of whitespace into one space
//   - lowercases English queries; Chinese queries are left as typed
func NormalizeWord(text string) string {
	text = norm.NFKC.String(text)
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return ""
	}
	if DetectLang(text) == LangEnglish {
		text = strings.ToLower(text)
	}
	return text
}

// DetectLang reports LangChinese when the query contains any Han character.
func DetectLang(text string) Lang {
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			return LangChinese
		}
	}
	return LangEnglish
}
