package entry

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/wudao-dict/internal/domain"
)

// DecodeChinese parses a Chinese entry document:
//
//	{
//	  "word": "猫",
//	  "pronunciation": "māo",
//	  "paraphrase": ["cat  ;  puss"],
//	  "desc": [["cat;pussy", ["cat;", "猫", "puss;", "猫咪"]], []],
//	  "sentence": [["我的猫", "my cat"]]
//	}
func DecodeChinese(data []byte) (*domain.ChineseEntry, error) {
	doc, err := parseDocument("chinese", data)
	if err != nil {
		return nil, err
	}

	e, err := domain.NewChineseEntry(
		headword(doc),
		str(doc.Get("pronunciation")),
		stringList(doc.Get("paraphrase")),
		decodeDesc(doc.Get("desc")),
		decodeChineseSentences(doc.Get("sentence")),
	)
	if err != nil {
		return nil, fmt.Errorf("decode chinese entry: %w", err)
	}
	return e, nil
}

func decodeDesc(r gjson.Result) []domain.DescBlock {
	raw := list(r)
	out := make([]domain.DescBlock, 0, len(raw))
	for _, b := range raw {
		parts := list(b)
		if len(parts) == 0 {
			out = append(out, domain.DescBlock{Empty: true})
			continue
		}
		block := domain.DescBlock{Subtitle: str(parts[0])}
		if len(parts) == 2 {
			for _, f := range list(parts[1]) {
				// Non-string fragments still occupy a slot so the
				// source/target parity of later fragments holds.
				block.Fragments = append(block.Fragments, str(f))
			}
		}
		out = append(out, block)
	}
	return out
}

func decodeChineseSentences(r gjson.Result) []domain.SentenceUnit {
	raw := list(r)
	out := make([]domain.SentenceUnit, 0, len(raw))
	for _, u := range raw {
		out = append(out, plainUnit(u))
	}
	return out
}
