// Package localdict serves raw entry documents from a JSON file on disk.
//
// The file holds one object per language keyed by headword:
//
//	{"en": {"test": {...}}, "zh": {"猫": {...}}}
package localdict

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/wudao-dict/internal/domain"
)

// Provider looks words up in an in-memory copy of the dictionary file.
type Provider struct {
	data []byte
	log  *slog.Logger
}

// Open reads and validates the dictionary file at path.
func Open(path string, logger *slog.Logger) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("localdict: read %s: %w", path, err)
	}
	p, err := New(data, logger)
	if err != nil {
		return nil, fmt.Errorf("localdict: %s: %w", path, err)
	}
	p.log.Info("local dictionary loaded",
		slog.String("path", path),
		slog.Int64("en", p.count(domain.LangEnglish)),
		slog.Int64("zh", p.count(domain.LangChinese)),
	)
	return p, nil
}

// New wraps an already loaded dictionary document.
func New(data []byte, logger *slog.Logger) (*Provider, error) {
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("dictionary is not a JSON object: %w", domain.ErrValidation)
	}
	return &Provider{data: data, log: logger.With("adapter", "localdict")}, nil
}

func (p *Provider) Name() string { return "local" }

// Fetch returns the raw entry for word, or domain.ErrNotFound.
func (p *Provider) Fetch(ctx context.Context, word string, lang domain.Lang) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r := gjson.GetBytes(p.data, string(lang)+"."+gjson.Escape(word))
	if !r.IsObject() {
		p.log.DebugContext(ctx, "local miss", slog.String("word", word), slog.String("lang", string(lang)))
		return nil, fmt.Errorf("localdict: %q: %w", word, domain.ErrNotFound)
	}
	return []byte(r.Raw), nil
}

func (p *Provider) count(lang domain.Lang) int64 {
	var n int64
	gjson.GetBytes(p.data, string(lang)).ForEach(func(_, _ gjson.Result) bool {
		n++
		return true
	})
	return n
}
