package site

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/yacademy/researchsite/internal/anchor"
	"github.com/yacademy/researchsite/internal/content"
	"github.com/yacademy/researchsite/internal/nav"
	"github.com/yacademy/researchsite/internal/resolve"
	"github.com/yacademy/researchsite/internal/search"
	"github.com/yacademy/researchsite/internal/view"
)

// NarrowPx is the viewport width below which the browser treats the
// layout as narrow. It matches the CSS breakpoint.
const NarrowPx = 768

const snippetRadius = 80

// Options controls page rendering.
type Options struct {
	SiteTitle string
	Logo      string
	// Base is the path prefix the site is mounted under, e.g. "/docs".
	Base string
	// Live pages talk to the HTTP server for search and anchor lookups;
	// static pages fall back to search-index.json.
	Live         bool
	MaxResults   int
	HighlightTag string
	Scroll       anchor.Config
}

// Renderer executes the page and landing templates.
type Renderer struct {
	page    *template.Template
	landing *template.Template
	opts    Options
}

// NewRenderer parses the templates.
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.SiteTitle == "" {
		opts.SiteTitle = "yAcademy Research"
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = search.DefaultLimit
	}
	if opts.HighlightTag == "" {
		opts.HighlightTag = search.DefaultTag
	}
	if opts.Scroll == (anchor.Config{}) {
		opts.Scroll = anchor.DefaultConfig()
	}

	page, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	landing, err := template.New("landing").Parse(landingTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing landing template: %w", err)
	}
	return &Renderer{page: page, landing: landing, opts: opts}, nil
}

type scrollData struct {
	InitialMS    int64
	NavigateMS   int64
	RetryMS      int64
	MaxRetries   int
	HeaderOffset int
}

type resultView struct {
	Href      string
	Title     string
	PageTitle string
	Snippet   template.HTML
}

// pageData holds the data passed to the page template.
type pageData struct {
	SiteTitle      string
	Logo           string
	Base           string
	Section        string
	SectionTitle   string
	PageID         string
	Title          string
	Category       string
	Description    string
	Body           template.HTML
	Breadcrumb     *nav.Breadcrumb
	BreadcrumbHref string
	TOC            []resolve.TOCLink
	Tree           []view.TreeNode
	SidebarOpen    bool
	Query          string
	Results        []resultView
	Live           bool
	MaxResults     int
	HighlightTag   string
	Scroll         scrollData
	NarrowPx       int
}

type sectionCard struct {
	Name    string
	Title   string
	Summary string
	Pages   int
}

type landingData struct {
	SiteTitle string
	Logo      string
	Base      string
	Sections  []sectionCard
}

// Base returns the mount prefix without a trailing slash.
func (r *Renderer) Base() string {
	return strings.TrimSuffix(r.opts.Base, "/")
}

// Page renders the page p of section sec for the navigation state st.
func (r *Renderer) Page(w io.Writer, sec *view.Section, st *nav.State, p *view.Page) error {
	return r.page.Execute(w, r.pageData(sec, st, p))
}

func (r *Renderer) pageData(sec *view.Section, st *nav.State, p *view.Page) pageData {
	sc := r.opts.Scroll
	d := pageData{
		SiteTitle:    r.opts.SiteTitle,
		Logo:         r.opts.Logo,
		Base:         strings.TrimSuffix(sec.Router.Base, "/"),
		Section:      sec.Name,
		SectionTitle: sec.Title,
		PageID:       p.ID,
		Title:        p.Record.Title,
		Category:     p.Record.Category,
		Description:  p.Record.Description,
		// Record markup is produced by our own markdown renderer.
		Body:         template.HTML(p.Body),
		Breadcrumb:   p.Breadcrumb,
		TOC:          p.TOC,
		Tree:         p.Tree,
		SidebarOpen:  st != nil && st.SidebarOpen,
		Query:        p.Query,
		Live:         r.opts.Live,
		MaxResults:   r.opts.MaxResults,
		HighlightTag: r.opts.HighlightTag,
		Scroll: scrollData{
			InitialMS:    sc.InitialDelay.Milliseconds(),
			NavigateMS:   sc.NavigateDelay.Milliseconds(),
			RetryMS:      sc.RetryInterval.Milliseconds(),
			MaxRetries:   sc.MaxRetries,
			HeaderOffset: int(sc.HeaderOffset),
		},
		NarrowPx: NarrowPx,
	}
	if p.Breadcrumb != nil {
		d.BreadcrumbHref = sec.Router.PathFor(p.Breadcrumb.ParentID)
	}
	for _, res := range p.Results {
		d.Results = append(d.Results, resultView{
			Href:      sec.ResultHref(res),
			Title:     res.Title,
			PageTitle: res.PageTitle,
			Snippet:   Snippet(res.Content, p.Query, r.opts.HighlightTag),
		})
	}
	return d
}

// Landing renders the page that links to every section.
func (r *Renderer) Landing(w io.Writer, sections []*view.Section) error {
	d := landingData{SiteTitle: r.opts.SiteTitle, Logo: r.opts.Logo, Base: r.Base()}
	for _, sec := range sections {
		home := sec.Resolver.Resolve(nav.HomeID)
		d.Sections = append(d.Sections, sectionCard{
			Name:    sec.Name,
			Title:   sec.Title,
			Summary: home.Description,
			Pages:   len(nav.IDs(sec.Sidebar)),
		})
	}
	return r.landing.Execute(w, d)
}

// Snippet cuts a window of index text around the first match of query,
// escapes it and wraps every match in tag.
func Snippet(text, query, tag string) template.HTML {
	excerpt := excerpt(content.PlainText(text), query, snippetRadius)
	return template.HTML(search.HighlightHTML(excerpt, query, tag))
}

func excerpt(text, query string, radius int) string {
	i := strings.Index(strings.ToLower(text), strings.ToLower(query))
	if i < 0 || query == "" {
		i = 0
	}
	start := max(i-radius, 0)
	end := min(i+len(query)+radius, len(text))
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}
	out := strings.TrimSpace(text[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(text) {
		out += "..."
	}
	return out
}
