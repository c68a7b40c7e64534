// Package render maps normalized dictionary entries to an ordered list of
// abstract styled blocks. It never writes to a terminal; sinks decide how a
// style looks.
package render

import (
	"fmt"
	"strings"
)

// Style is an abstract presentation tag.
type Style int

const (
	StylePlain Style = iota
	StyleHeadword
	StyleEmphasis
	StylePronunciation
	StyleLabel
	StyleAccent
	StyleHeading
	StylePlaceholder
)

var styleNames = map[Style]string{
	StylePlain:         "plain",
	StyleHeadword:      "headword",
	StyleEmphasis:      "emphasis",
	StylePronunciation: "pronunciation",
	StyleLabel:         "label",
	StyleAccent:        "accent",
	StyleHeading:       "heading",
	StylePlaceholder:   "placeholder",
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("style(%d)", int(s))
}

// MarshalText encodes the style by name for the json and yaml sinks.
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (s *Style) UnmarshalText(text []byte) error {
	for style, name := range styleNames {
		if name == string(text) {
			*s = style
			return nil
		}
	}
	return fmt.Errorf("render: unknown style %q", text)
}

// Segment is a run of text in a single style.
type Segment struct {
	Text  string `json:"text"  yaml:"text"`
	Style Style  `json:"style" yaml:"style"`
}

// Block is one output line. Indent is a count of leading spaces; NoNewline
// means the next block continues on the same line.
type Block struct {
	Segments  []Segment `json:"segments"             yaml:"segments"`
	Indent    int       `json:"indent,omitempty"     yaml:"indent,omitempty"`
	NoNewline bool      `json:"no_newline,omitempty" yaml:"no_newline,omitempty"`
}

// Text returns the block's text without indentation.
func (b Block) Text() string {
	var sb strings.Builder
	for _, s := range b.Segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// String returns the block's text with indentation applied.
func (b Block) String() string {
	return strings.Repeat(" ", b.Indent) + b.Text()
}

// IsBlank reports whether the block is an empty separator line.
func (b Block) IsBlank() bool {
	return len(b.Segments) == 0
}

// Options controls what a renderer emits.
type Options struct {
	// Short suppresses descriptions and example sentences.
	Short bool
}

// builder accumulates blocks in order.
type builder struct {
	blocks []Block
}

func (b *builder) line(segs ...Segment) {
	b.blocks = append(b.blocks, Block{Segments: segs})
}

func (b *builder) indented(indent int, segs ...Segment) {
	b.blocks = append(b.blocks, Block{Segments: segs, Indent: indent})
}

func (b *builder) inline(segs ...Segment) {
	b.blocks = append(b.blocks, Block{Segments: segs, NoNewline: true})
}

func (b *builder) blank() {
	b.blocks = append(b.blocks, Block{})
}

func seg(text string, style Style) Segment {
	return Segment{Text: text, Style: style}
}

func plain(text string) Segment {
	return Segment{Text: text, Style: StylePlain}
}
