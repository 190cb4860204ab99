package content

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes every `<...>` tag from s. Entities are left as-is.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// PlainText decodes the entities StripTags leaves behind, for text that is
// shown or matched as plain text.
func PlainText(s string) string {
	return html.UnescapeString(s)
}

// WrapTables wraps each <table> element in a horizontally scrollable
// <div class="table-wrapper">.
func WrapTables(s string) string {
	s = strings.ReplaceAll(s, "<table", `<div class="table-wrapper"><table`)
	return strings.ReplaceAll(s, "</table>", "</table></div>")
}

// Heading is an anchor target inside a rendered page.
type Heading struct {
	ID    string
	Title string
	Level int
}

// TOCClass and TOCLinkClass are the markers the floating table of contents
// looks for in rendered HTML.
const (
	TOCClass     = "jekyll-toc"
	TOCLinkClass = "toc-link"
)

// BuildTOC renders a table-of-contents block linking to the given headings.
// It returns "" when there is nothing to link. The block never contains a
// nested <div>, so the first closing </div> ends it.
func BuildTOC(headings []Heading) string {
	if len(headings) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<div class=%q>\n<h2>Table of contents</h2>\n<ol class=\"toc-list\">\n", TOCClass)
	for _, h := range headings {
		fmt.Fprintf(&b, "<li class=\"toc-item\"><a href=\"#%s\" class=%q>%s</a></li>\n",
			html.EscapeString(h.ID), TOCLinkClass, html.EscapeString(h.Title))
	}
	b.WriteString("</ol>\n</div>\n")
	return b.String()
}

// HasAnchor reports whether the markup contains an element whose id
// attribute is exactly id. It is a textual check, not a parse.
func HasAnchor(markup, id string) bool {
	if id == "" {
		return false
	}
	return strings.Contains(markup, `id="`+id+`"`)
}

// collapseSpace folds runs of whitespace into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
