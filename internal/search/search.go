// Package search implements the in-page full-text search: a linear,
// case-insensitive substring filter over a flat index with highlighted
// snippets.
package search

import (
	"html"
	"regexp"
	"strings"

	"github.com/yacademy/researchsite/internal/content"
)

// Entry is one searchable unit of the index.
type Entry = content.SearchEntry

// DefaultLimit caps the number of results a query returns.
const DefaultLimit = 10

// DefaultTag is the element used to emphasize matches.
const DefaultTag = "mark"

// Result is a matching entry with its content highlighted.
type Result struct {
	Entry
	HighlightedContent string `json:"highlightedContent"`
}

// BuildIndex returns the working index for records. A non-empty prebuilt
// index is used verbatim; otherwise one page entry is synthesized per record.
func BuildIndex(records []content.Record, prebuilt []Entry) []Entry {
	if len(prebuilt) > 0 {
		return prebuilt
	}
	index := make([]Entry, 0, len(records))
	for _, r := range records {
		category := r.Category
		if category == "" {
			category = "general"
		}
		text := content.StripTags(r.ContentHTML)
		index = append(index, Entry{
			ID:         r.Slug,
			Type:       content.EntryPage,
			Title:      r.Title,
			Path:       "/" + r.Slug,
			Category:   category,
			Content:    text,
			SearchText: strings.ToLower(r.Title + " " + text),
		})
	}
	return index
}

// Search returns the first DefaultLimit entries whose search text contains
// query, case-insensitively, in index order. Blank queries match nothing.
func Search(query string, index []Entry) []Result {
	return search(query, index, DefaultLimit, DefaultTag)
}

func search(query string, index []Entry, limit int, tag string) []Result {
	if strings.TrimSpace(query) == "" {
		return []Result{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	needle := strings.ToLower(query)
	var pattern *regexp.Regexp
	results := []Result{}
	for _, e := range index {
		if !strings.Contains(e.SearchText, needle) {
			continue
		}
		if pattern == nil {
			pattern = highlightPattern(query)
		}
		results = append(results, Result{
			Entry:              e,
			HighlightedContent: highlight(pattern, e.Content, tag),
		})
		if len(results) == limit {
			break
		}
	}
	return results
}

// Highlight wraps every case-insensitive occurrence of query in text with
// <tag>…</tag>, preserving the original casing. The query is matched
// literally.
func Highlight(text, query, tag string) string {
	if query == "" {
		return text
	}
	return highlight(highlightPattern(query), text, tag)
}

// HighlightHTML is Highlight for plain text bound for an HTML document:
// the text between and inside matches is escaped, so a query can never
// split an entity or inject markup.
func HighlightHTML(text, query, tag string) string {
	if tag == "" {
		tag = DefaultTag
	}
	if query == "" {
		return html.EscapeString(text)
	}
	var b strings.Builder
	last := 0
	for _, loc := range highlightPattern(query).FindAllStringIndex(text, -1) {
		b.WriteString(html.EscapeString(text[last:loc[0]]))
		b.WriteString("<" + tag + ">" + html.EscapeString(text[loc[0]:loc[1]]) + "</" + tag + ">")
		last = loc[1]
	}
	b.WriteString(html.EscapeString(text[last:]))
	return b.String()
}

func highlightPattern(query string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
}

func highlight(pattern *regexp.Regexp, text, tag string) string {
	if tag == "" {
		tag = DefaultTag
	}
	return pattern.ReplaceAllStringFunc(text, func(m string) string {
		return "<" + tag + ">" + m + "</" + tag + ">"
	})
}

// PageSlug returns the slug of the page an entry belongs to.
func PageSlug(entryID string) string {
	slug, _, _ := strings.Cut(entryID, "-section-")
	return slug
}
