package content

import "errors"

// ErrNoContent is returned when a loader or snapshot store has no pages.
var ErrNoContent = errors.New("no content found")

// Record is one rendered research page. Records are immutable once loaded;
// every consumer shares the same slice.
type Record struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	ContentHTML string    `json:"contentHtml"`
	Description string    `json:"description,omitempty"`
	Sections    []Section `json:"sections,omitempty"`

	// Section is the site area the page belongs to ("proxies" or "mpc").
	Section string `json:"section,omitempty"`
	Order   int    `json:"order,omitempty"`
	// Markdown is the raw source, kept for agents that prefer it over HTML.
	Markdown string `json:"-"`
}

// Section is an h2-delimited block of a page, stripped to plain text.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	// Anchor is the heading id the section starts at.
	Anchor string `json:"anchor,omitempty"`
}

// EntryType distinguishes page-level from section-level search entries.
type EntryType string

const (
	EntryPage    EntryType = "page"
	EntrySection EntryType = "section"
)

// SearchEntry is one searchable unit derived from a Record. The part of ID
// before "-section-" is always the slug of the record it came from.
type SearchEntry struct {
	ID         string    `json:"id"`
	Type       EntryType `json:"type"`
	Title      string    `json:"title"`
	PageTitle  string    `json:"pageTitle,omitempty"`
	Path       string    `json:"path"`
	Category   string    `json:"category"`
	Content    string    `json:"content"`
	SearchText string    `json:"searchText"`
}

// Corpus is the output of a content load: the pages plus a pre-built search
// index. An empty SearchIndex means consumers synthesize their own.
type Corpus struct {
	Records     []Record      `json:"records"`
	SearchIndex []SearchEntry `json:"searchIndex"`
}

// BySlug returns the record with the given slug.
func (c *Corpus) BySlug(slug string) (Record, bool) {
	if c == nil {
		return Record{}, false
	}
	for _, r := range c.Records {
		if r.Slug == slug {
			return r, true
		}
	}
	return Record{}, false
}

// InSection returns the records that belong to the named site section.
func (c *Corpus) InSection(section string) []Record {
	if c == nil {
		return nil
	}
	var out []Record
	for _, r := range c.Records {
		if r.Section == section {
			out = append(out, r)
		}
	}
	return out
}
