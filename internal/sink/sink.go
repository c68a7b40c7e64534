// Package sink writes rendered blocks to an output stream. Each sink maps the
// abstract render styles to its own presentation.
package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/heartmarshall/wudao-dict/internal/domain"
	"github.com/heartmarshall/wudao-dict/internal/render"
)

// Format names an output sink.
type Format string

const (
	FormatTerminal Format = "terminal"
	FormatPlain    Format = "plain"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatHTML     Format = "html"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatTerminal, FormatPlain, FormatJSON, FormatYAML, FormatHTML}

// IsValid reports whether f names a known sink.
func (f Format) IsValid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// Document is one rendered lookup.
type Document struct {
	Word   string         `json:"word"   yaml:"word"`
	Lang   domain.Lang    `json:"lang"   yaml:"lang"`
	Blocks []render.Block `json:"blocks" yaml:"blocks"`
}

// Sink writes documents to w.
type Sink interface {
	Write(w io.Writer, docs ...Document) error
}

// Color modes accepted by ColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ColorEnabled resolves a color mode for w. In auto mode color is used only
// when w is a terminal and NO_COLOR is unset.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// New returns the sink for format. color only affects the terminal sink.
func New(format Format, color bool) (Sink, error) {
	switch format {
	case FormatTerminal:
		return Terminal{Color: color}, nil
	case FormatPlain:
		return Terminal{}, nil
	case FormatJSON:
		return JSON{}, nil
	case FormatYAML:
		return YAML{}, nil
	case FormatHTML:
		return NewHTML(), nil
	default:
		return nil, fmt.Errorf("sink: unknown format %q: %w", format, domain.ErrValidation)
	}
}
