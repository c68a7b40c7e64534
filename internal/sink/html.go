package sink

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/heartmarshall/wudao-dict/internal/render"
)

// HTML converts blocks to Markdown and renders that with goldmark. Headwords
// become h1, section headings h3, labels strong and accents em.
type HTML struct {
	md goldmark.Markdown
}

func NewHTML() HTML {
	return HTML{md: goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps()))}
}

func (h HTML) Write(w io.Writer, docs ...Document) error {
	var src bytes.Buffer
	for i, doc := range docs {
		if i > 0 {
			src.WriteString("\n---\n\n")
		}
		writeMarkdown(&src, doc.Blocks)
	}
	if err := h.md.Convert(src.Bytes(), w); err != nil {
		return fmt.Errorf("sink html: %w", err)
	}
	return nil
}

func writeMarkdown(buf *bytes.Buffer, blocks []render.Block) {
	var line strings.Builder
	prefix := ""
	for _, b := range blocks {
		if line.Len() == 0 && len(b.Segments) > 0 {
			switch b.Segments[0].Style {
			case render.StyleHeadword:
				prefix = "# "
			case render.StyleHeading:
				prefix = "### "
			}
		}
		line.WriteString(strings.Repeat(" ", b.Indent))
		for _, s := range b.Segments {
			line.WriteString(markdownSegment(s, prefix != ""))
		}
		if b.NoNewline {
			continue
		}
		buf.WriteString(prefix)
		buf.WriteString(hardSpaces(line.String()))
		buf.WriteByte('\n')
		if prefix != "" {
			buf.WriteByte('\n')
		}
		line.Reset()
		prefix = ""
	}
	if line.Len() > 0 {
		buf.WriteString(hardSpaces(line.String()))
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
}

func markdownSegment(s render.Segment, inHeading bool) string {
	if inHeading {
		return escapeMarkdown(s.Text)
	}
	switch s.Style {
	case render.StyleLabel:
		return delimit(s.Text, "**")
	case render.StyleAccent, render.StyleEmphasis:
		return delimit(s.Text, "*")
	default:
		return escapeMarkdown(s.Text)
	}
}

// delimit wraps the trimmed text in marker, keeping surrounding spaces
// outside so the emphasis run stays valid.
func delimit(text, marker string) string {
	core := strings.TrimSpace(text)
	if core == "" {
		return text
	}
	start := strings.Index(text, core)
	return text[:start] + marker + escapeMarkdown(core) + marker + text[start+len(core):]
}

const markdownPunct = "\\`*_{}[]()<>#+-.!|~&"

func escapeMarkdown(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune(markdownPunct, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// hardSpaces turns leading spaces into non-breaking spaces; four of them
// would otherwise start a code block.
func hardSpaces(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	n := len(line) - len(trimmed)
	return strings.Repeat("&nbsp;", n) + trimmed
}
