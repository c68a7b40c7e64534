package sink

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/heartmarshall/wudao-dict/internal/render"
)

// styleRegistry maps render styles to lipgloss styles bound to r. Plain text
// has no entry and is written as is.
func styleRegistry(r *lipgloss.Renderer) map[render.Style]lipgloss.Style {
	red := lipgloss.Color("1")
	return map[render.Style]lipgloss.Style{
		render.StyleHeadword:      r.NewStyle().Bold(true).Foreground(red),
		render.StyleHeading:       r.NewStyle().Bold(true).Foreground(red),
		render.StyleEmphasis:      r.NewStyle().Foreground(red),
		render.StylePronunciation: r.NewStyle().Foreground(lipgloss.Color("6")),
		render.StylePlaceholder:   r.NewStyle().Foreground(lipgloss.Color("6")).Italic(true),
		render.StyleLabel:         r.NewStyle().Foreground(lipgloss.Color("2")),
		render.StyleAccent:        r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// Terminal writes blocks as lines of text. With Color set, styles are
// rendered with the basic ANSI palette; otherwise the renderer uses the
// ASCII profile and the output is plain text.
type Terminal struct {
	Color bool
}

func (t Terminal) Write(w io.Writer, docs ...Document) error {
	r := lipgloss.NewRenderer(w)
	if t.Color {
		// The color decision was already made by ColorEnabled.
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	styles := styleRegistry(r)

	bw := bufio.NewWriter(w)
	for i, doc := range docs {
		if i > 0 {
			bw.WriteByte('\n')
		}
		writeBlocks(bw, styles, doc.Blocks)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("sink terminal: %w", err)
	}
	return nil
}

func writeBlocks(bw *bufio.Writer, styles map[render.Style]lipgloss.Style, blocks []render.Block) {
	open := false
	for _, b := range blocks {
		bw.WriteString(strings.Repeat(" ", b.Indent))
		for _, s := range b.Segments {
			style, ok := styles[s.Style]
			if !ok || s.Text == "" {
				bw.WriteString(s.Text)
				continue
			}
			bw.WriteString(style.Render(s.Text))
		}
		open = b.NoNewline
		if !open {
			bw.WriteByte('\n')
		}
	}
	if open {
		bw.WriteByte('\n')
	}
}
