package render

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/wudao-dict/internal/domain"
)

const (
	paraphraseSeparator = "  ;  "
	zhSentencesHeading  = "例句:"
	fragmentPad         = "    "
)

// Chinese renders a Chinese entry: headword, pronunciation, paraphrases,
// then descriptions and examples unless opts.Short is set.
func Chinese(e *domain.ChineseEntry, opts Options) ([]Block, error) {
	if e == nil || e.Word == "" {
		return nil, fmt.Errorf("render chinese entry: missing headword: %w", domain.ErrInvariant)
	}

	var b builder
	b.line(seg(e.Word, StyleHeadword))
	if e.Pronunciation != "" {
		b.line(seg(e.Pronunciation, StyleAccent))
	}
	for _, p := range e.Paraphrases {
		b.line(plain(strings.ReplaceAll(p, paraphraseSeparator, ", ")))
	}

	if opts.Short {
		return b.blocks, nil
	}

	if len(e.Desc) > 0 {
		b.blank()
		for i, d := range e.Desc {
			if d.Empty {
				continue
			}
			b.line(seg(fmt.Sprintf("%d. %s", i+1, strings.ReplaceAll(d.Subtitle, ";", ",")), StyleLabel))
			for j, f := range d.Fragments {
				if j%2 == 0 {
					text := strings.ReplaceAll(strings.TrimSpace(f), ";", "")
					b.inline(seg(fragmentPad+text+fragmentPad, StyleAccent))
				} else {
					b.line(plain(f))
				}
			}
		}
	}

	if len(e.Sentences) > 0 {
		b.blank()
		b.line(seg(zhSentencesHeading, StyleHeading))
		for i, unit := range e.Sentences {
			u, ok := unit.(domain.PlainUnit)
			if !ok {
				continue
			}
			b.blank()
			b.line(
				seg(fmt.Sprintf("%d. %s", i+1, u.Source), StyleAccent),
				plain(fragmentPad+u.Translation),
			)
		}
	}

	return b.blocks, nil
}

// Render dispatches on the entry's language.
func Render(e domain.Entry, opts Options) ([]Block, error) {
	switch e.Lang {
	case domain.LangEnglish:
		return English(e.English, opts)
	case domain.LangChinese:
		return Chinese(e.Chinese, opts)
	default:
		return nil, fmt.Errorf("render: unknown language %q: %w", e.Lang, domain.ErrInvariant)
	}
}
