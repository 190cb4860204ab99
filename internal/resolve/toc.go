package resolve

import (
	"html"
	"regexp"
	"strings"

	"github.com/yacademy/researchsite/internal/content"
)

var (
	tocBlock = regexp.MustCompile(`(?s)<div class="` + content.TOCClass + `">.*?</div>`)
	tocLink  = regexp.MustCompile(`<a href="([^"]*)" class="` + content.TOCLinkClass + `">([^<]*)</a>`)
)

// TOCLink is one entry of the floating table of contents.
type TOCLink struct {
	Href  string `json:"href"`
	Title string `json:"title"`
}

// Fragment returns the link target without its leading "#".
func (l TOCLink) Fragment() string {
	_, frag, ok := strings.Cut(l.Href, "#")
	if !ok {
		return ""
	}
	return frag
}

// FloatingTOC extracts the links of the first table-of-contents block in
// markup, in document order. It returns nil when there is no block, in
// which case the floating TOC is not shown at all.
func FloatingTOC(markup string) []TOCLink {
	block := tocBlock.FindString(markup)
	if block == "" {
		return nil
	}
	var links []TOCLink
	for _, m := range tocLink.FindAllStringSubmatch(block, -1) {
		links = append(links, TOCLink{Href: m[1], Title: html.UnescapeString(m[2])})
	}
	return links
}

// FindPageWithAnchor returns the slug of the first record whose markup
// carries an element with id fragment. A leading "#" is ignored.
func FindPageWithAnchor(records []content.Record, fragment string) (string, bool) {
	fragment = strings.TrimPrefix(fragment, "#")
	for _, r := range records {
		if content.HasAnchor(r.ContentHTML, fragment) {
			return r.Slug, true
		}
	}
	return "", false
}

func escape(s string) string { return html.EscapeString(s) }
