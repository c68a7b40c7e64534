package youdao

import (
	"strings"

	"github.com/tidwall/sjson"
	"golang.org/x/net/html"
)

// unlabeled is the paraphrase key for definitions shown without a part of speech.
const unlabeled = "misc."

// document accumulates a raw entry with sjson; the first error sticks.
type document struct {
	buf []byte
	err error
}

func newDocument() *document {
	return &document{buf: []byte(`{}`)}
}

func (d *document) set(path string, v any) {
	if d.err != nil {
		return
	}
	d.buf, d.err = sjson.SetBytes(d.buf, path, v)
}

func (d *document) raw(path, value string) {
	if d.err != nil {
		return
	}
	d.buf, d.err = sjson.SetRawBytes(d.buf, path, []byte(value))
}

func (d *document) bytes() ([]byte, error) {
	return d.buf, d.err
}

// escapeKey escapes characters sjson treats as path syntax.
func escapeKey(k string) string {
	var sb strings.Builder
	for _, r := range k {
		switch r {
		case '.', '*', '?', '\\', '|', '#', '@', ':':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// found reports whether the page carries a result at all.
func found(root *html.Node) bool {
	return find(root, "word-head") != nil
}

func headword(root *html.Node, query string) string {
	if w := ownText(findPath(root, "word-head", "title")); w != "" {
		return w
	}
	return query
}

func phonetic(n *html.Node) string {
	return strings.Trim(text(n), "/ ")
}

// splitDefinitions splits a translation line on full- and half-width semicolons.
func splitDefinitions(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '；' || r == ';' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseEnglish builds the raw English entry document from a result page.
func parseEnglish(root *html.Node, query string) ([]byte, error) {
	d := newDocument()
	d.set("word", headword(root, query))

	d.raw("pronunciation", `{"usa":"","uk":"","other":""}`)
	for _, p := range findAll(find(root, "phone_con"), "per-phone") {
		ph := phonetic(find(p, "phonetic"))
		if ph == "" {
			continue
		}
		slot := "other"
		label := text(p)
		switch {
		case strings.Contains(label, "英"):
			slot = "uk"
		case strings.Contains(label, "美"):
			slot = "usa"
		}
		d.set("pronunciation."+slot, "["+ph+"]")
	}

	d.raw("paraphrase", `{}`)
	seen := make(map[string]bool)
	for _, li := range findAll(find(root, "basic"), "word-exp") {
		defs := splitDefinitions(text(find(li, "trans")))
		if len(defs) == 0 {
			continue
		}
		label := text(find(li, "pos"))
		if label == "" {
			label = unlabeled
		}
		key := "paraphrase." + escapeKey(label)
		if !seen[label] {
			seen[label] = true
			d.set(key, defs)
			continue
		}
		for _, def := range defs {
			d.set(key+".-1", def)
		}
	}

	var ranks []string
	for _, v := range findAll(find(root, "exam_type"), "exam_type-value") {
		if t := text(v); t != "" {
			ranks = append(ranks, t)
		}
	}
	d.set("rank", strings.Join(ranks, " "))

	var forms []string
	for _, cell := range findAll(find(root, "word-wfs-less"), "word-wfs-cell-less") {
		name, value := text(find(cell, "wfs-name")), text(find(cell, "transformation"))
		if value == "" {
			continue
		}
		forms = append(forms, strings.TrimSpace(name+" "+value))
	}
	d.set("pattern", strings.Join(forms, "  "))

	if items := findAll(find(root, "collins"), "collins-item"); len(items) > 0 {
		d.raw("sentence", `{"is_collins":true,"sentences":[]}`)
		for _, it := range items {
			pairs := [][]string{}
			for _, ex := range findAll(it, "collins-example") {
				pairs = append(pairs, []string{text(find(ex, "sen-eng")), text(find(ex, "sen-ch"))})
			}
			d.set("sentence.sentences.-1", []any{text(find(it, "collins-mean")), text(find(it, "collins-cat")), pairs})
		}
	} else {
		d.raw("sentence", `[]`)
		for _, li := range bilingual(root) {
			d.set("sentence.-1", []string{text(find(li, "sen-eng")), text(find(li, "sen-ch"))})
		}
	}

	return d.bytes()
}

// parseChinese builds the raw Chinese entry document from a result page.
func parseChinese(root *html.Node, query string) ([]byte, error) {
	d := newDocument()
	d.set("word", headword(root, query))
	d.set("pronunciation", phonetic(findPath(root, "phone_con", "phonetic")))

	d.raw("paraphrase", `[]`)
	for _, li := range findAll(find(root, "basic"), "word-exp-ce") {
		var words []string
		for _, p := range findAll(li, "point") {
			if t := text(p); t != "" {
				words = append(words, t)
			}
		}
		line := strings.Join(words, "  ;  ")
		if line == "" {
			line = text(li)
		}
		if line != "" {
			d.set("paraphrase.-1", line)
		}
	}

	d.raw("desc", `[]`)
	for _, sense := range findAll(find(root, "ce-detail"), "ce-sense") {
		title := text(find(sense, "sense-title"))
		if title == "" {
			d.raw("desc.-1", `[]`)
			continue
		}
		items := findAll(sense, "sense-item")
		if len(items) == 0 {
			d.set("desc.-1", []string{title})
			continue
		}
		fragments := make([]string, 0, 2*len(items))
		for _, it := range items {
			fragments = append(fragments, text(find(it, "sense-en")), text(find(it, "sense-zh")))
		}
		d.set("desc.-1", []any{title, fragments})
	}

	d.raw("sentence", `[]`)
	for _, li := range bilingual(root) {
		d.set("sentence.-1", []string{text(find(li, "sen-ch")), text(find(li, "sen-eng"))})
	}

	return d.bytes()
}

func bilingual(root *html.Node) []*html.Node {
	return findAll(find(root, "blng_sents_part"), "mcols-layout")
}
