package tui

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Rendered is page markup laid out as terminal lines.
type Rendered struct {
	Lines []string
	// Anchors maps element ids to the line the element starts on.
	Anchors map[string]int
}

// Content joins the lines for a viewport.
func (r Rendered) Content() string { return strings.Join(r.Lines, "\n") }

type textRenderer struct {
	width   int
	lines   []string
	anchors map[string]int
	buf     strings.Builder
	pending []string
	prefix  string
	pre     bool
}

// Render lays out markup for a terminal of the given width. Headings keep a
// markdown-style marker so they stand out without colour.
func Render(markup string, width int) Rendered {
	if width < 10 {
		width = 10
	}
	r := &textRenderer{width: width, anchors: make(map[string]int)}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		// The tokenizer is lenient; this only fails on reader errors.
		return Rendered{Lines: []string{markup}, Anchors: r.anchors}
	}
	for _, n := range nodes {
		r.walk(n)
	}
	r.flush()
	for len(r.lines) > 0 && r.lines[len(r.lines)-1] == "" {
		r.lines = r.lines[:len(r.lines)-1]
	}
	return Rendered{Lines: r.lines, Anchors: r.anchors}
}

func (r *textRenderer) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		r.buf.WriteString(n.Data)
		return
	case html.ElementNode:
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			r.walk(c)
		}
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style:
		return
	case atom.Br:
		r.flush()
		return
	case atom.Td, atom.Th:
		if r.buf.Len() > 0 {
			r.buf.WriteString(" | ")
		}
	}

	block, prefix, gap := blockStyle(n)
	if block {
		r.flush()
	}
	if id := attr(n, "id"); id != "" {
		r.pending = append(r.pending, id)
	}

	if !block {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			r.walk(c)
		}
		return
	}

	savedPrefix, savedPre := r.prefix, r.pre
	if prefix != "" {
		r.prefix = prefix
	}
	if n.DataAtom == atom.Pre {
		r.pre = true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c)
	}
	r.flush()
	r.prefix, r.pre = savedPrefix, savedPre
	if gap && len(r.lines) > 0 && r.lines[len(r.lines)-1] != "" {
		r.lines = append(r.lines, "")
	}
}

// flush writes the buffered inline text as wrapped lines.
func (r *textRenderer) flush() {
	text := r.buf.String()
	r.buf.Reset()

	start := len(r.lines)
	for _, id := range r.pending {
		r.anchors[id] = start
	}
	r.pending = nil

	if r.pre {
		text = strings.Trim(text, "\n")
		if text == "" {
			return
		}
		for _, line := range strings.Split(text, "\n") {
			r.lines = append(r.lines, "    "+line)
		}
		return
	}

	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return
	}
	indent := strings.Repeat(" ", len([]rune(r.prefix)))
	wrapped := wordwrap.String(text, r.width-len(indent))
	for i, line := range strings.Split(wrapped, "\n") {
		if i == 0 {
			r.lines = append(r.lines, r.prefix+line)
		} else {
			r.lines = append(r.lines, indent+line)
		}
	}
}

// blockStyle reports whether n starts a new block, the marker its lines
// carry, and whether a blank line follows it.
func blockStyle(n *html.Node) (block bool, prefix string, gap bool) {
	switch n.DataAtom {
	case atom.H1:
		return true, "# ", true
	case atom.H2:
		return true, "## ", true
	case atom.H3:
		return true, "### ", true
	case atom.H4, atom.H5, atom.H6:
		return true, "#### ", true
	case atom.Li:
		return true, "• ", false
	case atom.Blockquote:
		return true, "> ", true
	case atom.P, atom.Pre, atom.Table, atom.Ul, atom.Ol, atom.Hr:
		return true, "", true
	case atom.Div, atom.Section, atom.Article, atom.Tr, atom.Thead, atom.Tbody, atom.Nav:
		return true, "", false
	}
	return false, "", false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
