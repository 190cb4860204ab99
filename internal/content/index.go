package content

import (
	"fmt"
	"strings"
)

// BuildSearchIndex produces the section-granular search index for records:
// one page entry per record followed by one entry per h2 section. Section
// entries link straight to their heading anchor.
func BuildSearchIndex(records []Record) []SearchEntry {
	var entries []SearchEntry
	for _, r := range records {
		pagePath := PagePath(r.Section, r.Slug)
		body := collapseSpace(PlainText(StripTags(r.ContentHTML)))
		entries = append(entries, SearchEntry{
			ID:         r.Slug,
			Type:       EntryPage,
			Title:      r.Title,
			Path:       pagePath,
			Category:   r.Category,
			Content:    body,
			SearchText: strings.ToLower(r.Title + " " + body),
		})
		for i, s := range r.Sections {
			path := pagePath
			if s.Anchor != "" {
				path += "#" + s.Anchor
			}
			entries = append(entries, SearchEntry{
				ID:         fmt.Sprintf("%s-section-%d", r.Slug, i),
				Type:       EntrySection,
				Title:      s.Title,
				PageTitle:  r.Title,
				Path:       path,
				Category:   r.Category,
				Content:    s.Content,
				SearchText: strings.ToLower(s.Title + " " + s.Content),
			})
		}
	}
	return entries
}

// PagePath is the site URL of a page: "/<section>/<slug>", or "/<section>"
// for the section home.
func PagePath(section, slug string) string {
	if section == "" {
		section = "proxies"
	}
	if slug == "" || slug == "home" {
		return "/" + section
	}
	return "/" + section + "/" + slug
}
