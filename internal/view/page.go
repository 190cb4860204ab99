// Package view assembles everything a renderer needs to draw one page.
package view

import (
	"strings"

	"github.com/yacademy/researchsite/internal/content"
	"github.com/yacademy/researchsite/internal/nav"
	"github.com/yacademy/researchsite/internal/resolve"
	"github.com/yacademy/researchsite/internal/search"
)

// Section bundles the collaborators of one site section.
type Section struct {
	Name     string
	Title    string
	Sidebar  []nav.Item
	Router   nav.Router
	Resolver *resolve.Resolver
	Engine   *search.Engine
	// Records are the loaded pages of this section only.
	Records []content.Record
}

// NewSection wires a section from a corpus. A nil corpus gives a section
// that serves only synthesized pages.
func NewSection(name string, corpus *content.Corpus, engine *search.Engine) *Section {
	title := "Proxies Research"
	if name == nav.SectionMPC {
		title = "MPC Research"
	}
	return &Section{
		Name:     name,
		Title:    title,
		Sidebar:  nav.SidebarFor(name),
		Router:   nav.RouterFor(name),
		Resolver: resolve.ForSection(name, corpus),
		Engine:   engine,
		Records:  corpus.InSection(name),
	}
}

// PageIDs lists every addressable page of the section: the sidebar ids
// followed by loaded pages the sidebar does not name.
func (s *Section) PageIDs() []string {
	ids := nav.IDs(s.Sidebar)
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	for _, r := range s.Records {
		if !seen[r.Slug] {
			seen[r.Slug] = true
			ids = append(ids, r.Slug)
		}
	}
	return ids
}

// PageWithAnchor returns the id of the page that carries the element
// fragment, searching loaded pages and then synthesized ones. Ids the
// router redirects to another page are never returned.
func (s *Section) PageWithAnchor(fragment string) (string, bool) {
	records := make([]content.Record, 0, len(s.Records))
	for _, r := range s.Records {
		if !s.redirected(r.Slug) {
			records = append(records, r)
		}
	}
	if slug, ok := resolve.FindPageWithAnchor(records, fragment); ok {
		return slug, true
	}
	for _, id := range nav.IDs(s.Sidebar) {
		if s.redirected(id) {
			continue
		}
		rec, src := s.Resolver.ResolveSource(id)
		if src == resolve.SourceRecord || (src == resolve.SourceHome && id != nav.HomeID) {
			continue
		}
		if content.HasAnchor(rec.ContentHTML, strings.TrimPrefix(fragment, "#")) {
			return id, true
		}
	}
	return "", false
}

func (s *Section) redirected(id string) bool {
	_, ok := s.Router.ParentRedirects[id]
	return ok
}

// NewState starts a navigation session on id with the section defaults.
func (s *Section) NewState(id string) *nav.State {
	return nav.NewState(id, nav.DefaultExpanded(s.Name))
}

// SidebarRow is a sidebar line with its link.
type SidebarRow struct {
	nav.Row
	Href string
}

// TreeNode is a top-level sidebar entry with all of its children, for
// renderers that collapse children client-side.
type TreeNode struct {
	SidebarRow
	Children []SidebarRow
}

// Page is the view model of one rendered page.
type Page struct {
	Section    string
	ID         string
	Record     content.Record
	Source     resolve.Source
	InSidebar  bool
	Body       string
	Breadcrumb *nav.Breadcrumb
	TOC        []resolve.TOCLink
	Sidebar    []SidebarRow
	Tree       []TreeNode
	Query      string
	Results    []search.Result
}

// Known reports whether the page id is addressable: it resolved to real
// or synthesized content, or the sidebar names it.
func (p *Page) Known() bool {
	return p.Source != resolve.SourceHome || p.InSidebar || p.ID == ""
}

// Build renders the view model for the state's current page.
func (s *Section) Build(st *nav.State) *Page {
	rec, src := s.Resolver.ResolveSource(st.CurrentPageID)
	p := &Page{
		Section:   s.Name,
		ID:        st.CurrentPageID,
		Record:    rec,
		Source:    src,
		InSidebar: nav.Contains(s.Sidebar, st.CurrentPageID),
		Body:      resolve.Body(rec),
		TOC:       resolve.FloatingTOC(rec.ContentHTML),
		Query:     st.SearchQuery,
	}

	if bc, ok := nav.BreadcrumbFor(s.Sidebar, st.CurrentPageID, rec.Title); ok {
		p.Breadcrumb = &bc
	}

	for _, row := range st.VisibleRows(s.Sidebar) {
		p.Sidebar = append(p.Sidebar, SidebarRow{Row: row, Href: s.Router.PathFor(row.ID)})
	}

	for _, it := range s.Sidebar {
		node := TreeNode{SidebarRow: SidebarRow{
			Row: nav.Row{
				ID:         it.ID,
				Title:      it.Title,
				Icon:       it.Icon,
				Expandable: it.HasChildren(),
				Expanded:   it.HasChildren() && st.IsExpanded(it.ID),
				Active:     st.IsActive(it.ID),
			},
			Href: s.Router.PathFor(it.ID),
		}}
		for _, c := range it.Children {
			node.Children = append(node.Children, SidebarRow{
				Row:  nav.Row{ID: c.ID, Title: c.Title, Depth: 1, ParentID: it.ID, Active: st.IsActive(c.ID)},
				Href: s.Router.PathFor(c.ID),
			})
		}
		p.Tree = append(p.Tree, node)
	}

	if s.Engine != nil && st.SearchQuery != "" {
		p.Results = s.Engine.SearchSection(st.SearchQuery, s.Name)
	}
	return p
}

// ResultHref returns the link of a search result within this section:
// the entry's own path when it has one, else the page path.
func (s *Section) ResultHref(r search.Result) string {
	if r.Type == content.EntrySection && r.Path != "" {
		return strings.TrimSuffix(s.Router.Base, "/") + r.Path
	}
	return s.Router.PathFor(search.PageSlug(r.ID))
}
