package youdao

import (
	"strings"

	"golang.org/x/net/html"
)

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// findAll returns every descendant of n carrying class, in document order.
// Matches are not searched for nested matches.
func findAll(n *html.Node, class string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		for ch := c.FirstChild; ch != nil; ch = ch.NextSibling {
			if hasClass(ch, class) {
				out = append(out, ch)
				continue
			}
			walk(ch)
		}
	}
	if n != nil {
		walk(n)
	}
	return out
}

// find returns the first descendant of n carrying class, or nil.
func find(n *html.Node, class string) *html.Node {
	if all := findAll(n, class); len(all) > 0 {
		return all[0]
	}
	return nil
}

// findPath descends through classes in order, e.g. findPath(doc, "word-head", "title").
func findPath(n *html.Node, classes ...string) *html.Node {
	for _, c := range classes {
		if n == nil {
			return nil
		}
		n = find(n, c)
	}
	return n
}

// text returns the node's text content with whitespace runs collapsed.
func text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
			return
		}
		for ch := c.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// ownText returns only the text nodes directly under n.
func ownText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var parts []string
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.TextNode {
			parts = append(parts, strings.Fields(ch.Data)...)
		}
	}
	return strings.Join(parts, " ")
}
