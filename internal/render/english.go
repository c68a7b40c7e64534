package render

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/wudao-dict/internal/domain"
)

const (
	labelUK    = "英"
	labelUSA   = "美"
	labelOther = "英/美"

	noPronunciation  = "暂无音标数据"
	sentencesHeading = "例句"
	plainExampleTag  = "[example]"
	exampleLabel     = "例:"
)

// English renders an English entry. Blocks come in a fixed order: headword,
// pronunciation, paraphrases, rank/pattern, then examples unless
// opts.Short is set.
func English(e *domain.EnglishEntry, opts Options) ([]Block, error) {
	if e == nil || e.Word == "" {
		return nil, fmt.Errorf("render english entry: missing headword: %w", domain.ErrInvariant)
	}

	var b builder
	b.line(seg(e.Word, StyleHeadword))
	b.line(pronunciationSegments(e.Pronunciation)...)

	for _, p := range e.Paraphrases {
		b.line(plain(strings.Join(p.Definitions, "; ")))
	}

	if rp := rankPattern(e.Rank, e.Pattern); rp != "" {
		b.line(seg(rp, StyleEmphasis))
	}

	if !opts.Short && e.Sentences.Len() > 0 {
		b.blank()
		b.line(seg(sentencesHeading, StyleHeading))
		renderEnglishSentences(&b, e.Sentences)
	}

	return b.blocks, nil
}

func pronunciationSegments(p domain.EnglishPronunciation) []Segment {
	slots := []struct {
		label string
		value string
	}{
		{labelUK, p.UK},
		{labelUSA, p.USA},
		{labelOther, p.Other},
	}

	var segs []Segment
	for _, s := range slots {
		if s.value == "" {
			continue
		}
		if len(segs) > 0 {
			segs = append(segs, plain("  "))
		}
		segs = append(segs, seg(s.label+" "+s.value, StylePronunciation))
	}
	if len(segs) == 0 {
		return []Segment{seg(noPronunciation, StylePlaceholder)}
	}
	return segs
}

func rankPattern(rank, pattern string) string {
	var parts []string
	if rank != "" {
		parts = append(parts, rank)
	}
	if p := strings.TrimSpace(pattern); p != "" {
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}

// renderEnglishSentences numbers units by their position in the source list,
// so a skipped unit leaves a gap in the numbering.
func renderEnglishSentences(b *builder, s domain.Sentences) {
	for i, unit := range s.Units {
		n := i + 1
		switch u := unit.(type) {
		case domain.PlainUnit:
			if s.Format != domain.FormatPlain {
				continue
			}
			b.line(
				seg(fmt.Sprintf("%d. %s ", n, plainExampleTag), StyleLabel),
				plain(u.Source),
				plain("  "),
				seg(u.Translation, StyleAccent),
			)
		case domain.AnnotatedUnit:
			if s.Format != domain.FormatAnnotated {
				continue
			}
			b.line(
				seg(fmt.Sprintf("%d. [%s] ", n, u.Category), StyleLabel),
				plain(u.Source),
			)
			for _, ex := range u.Translations {
				b.indented(2,
					seg(exampleLabel+" ", StyleLabel),
					seg(ex.Source+" "+ex.Translation, StyleAccent),
				)
			}
		}
	}
}
