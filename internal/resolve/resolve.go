// Package resolve maps page ids to content records. Resolution is total:
// unknown ids fall back to synthesized records and finally to a home page.
package resolve

import (
	"github.com/yacademy/researchsite/internal/content"
)

// Alias borrows another record's content under a navigation id.
type Alias struct {
	Slug  string
	Title string
}

// Source tells how a record was resolved.
type Source int

const (
	SourceRecord Source = iota
	SourceAlias
	SourceFallback
	SourceHome
)

func (s Source) String() string {
	switch s {
	case SourceRecord:
		return "record"
	case SourceAlias:
		return "alias"
	case SourceFallback:
		return "fallback"
	}
	return "home"
}

// Resolver resolves page ids for one site section.
type Resolver struct {
	Records   []content.Record
	Aliases   map[string]Alias
	Fallbacks map[string]content.Record
	Home      content.Record

	bySlug map[string]int
}

// New builds a resolver and indexes records by slug.
func New(records []content.Record, aliases map[string]Alias, fallbacks map[string]content.Record, home content.Record) *Resolver {
	r := &Resolver{Records: records, Aliases: aliases, Fallbacks: fallbacks, Home: home}
	r.bySlug = make(map[string]int, len(records))
	for i, rec := range records {
		if _, dup := r.bySlug[rec.Slug]; !dup {
			r.bySlug[rec.Slug] = i
		}
	}
	return r
}

func (r *Resolver) lookup(slug string) (content.Record, bool) {
	if r.bySlug != nil {
		i, ok := r.bySlug[slug]
		if !ok {
			return content.Record{}, false
		}
		return r.Records[i], true
	}
	for _, rec := range r.Records {
		if rec.Slug == slug {
			return rec, true
		}
	}
	return content.Record{}, false
}

// Resolve returns the record for id. It never fails and the returned title
// is never empty.
func (r *Resolver) Resolve(id string) content.Record {
	rec, _ := r.ResolveSource(id)
	return rec
}

// ResolveSource is Resolve that also reports which rule matched.
func (r *Resolver) ResolveSource(id string) (content.Record, Source) {
	if id != "" {
		if rec, ok := r.lookup(id); ok {
			return withTitle(rec, id), SourceRecord
		}
		if a, ok := r.Aliases[id]; ok {
			if rec, ok := r.lookup(a.Slug); ok {
				rec.Slug = id
				if a.Title != "" {
					rec.Title = a.Title
				}
				return withTitle(rec, id), SourceAlias
			}
		}
		if fb, ok := r.Fallbacks[id]; ok {
			return withTitle(fb, id), SourceFallback
		}
	}
	return withTitle(r.Home, "Home"), SourceHome
}

// Known reports whether id resolves to something other than the home
// fallback.
func (r *Resolver) Known(id string) bool {
	_, src := r.ResolveSource(id)
	return src != SourceHome
}

func withTitle(rec content.Record, title string) content.Record {
	if rec.Title == "" {
		rec.Title = title
	}
	if rec.Title == "" {
		rec.Title = "Untitled"
	}
	return rec
}

// Body returns the markup to display for rec: its HTML with tables wrapped,
// else its sections, else its description.
func Body(rec content.Record) string {
	if rec.ContentHTML != "" {
		return content.WrapTables(rec.ContentHTML)
	}
	if len(rec.Sections) > 0 {
		var b []byte
		for _, s := range rec.Sections {
			b = append(b, "<section><h2"...)
			if s.Anchor != "" {
				b = append(b, ` id="`...)
				b = append(b, escape(s.Anchor)...)
				b = append(b, '"')
			}
			b = append(b, '>')
			b = append(b, escape(s.Title)...)
			b = append(b, "</h2><p>"...)
			b = append(b, escape(s.Content)...)
			b = append(b, "</p></section>\n"...)
		}
		return string(b)
	}
	if rec.Description != "" {
		return "<p>" + escape(rec.Description) + "</p>"
	}
	return "<p>Content not available.</p>"
}
