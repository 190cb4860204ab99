package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacademy/researchsite/internal/content"
	"github.com/yacademy/researchsite/internal/resolve"
	"github.com/yacademy/researchsite/internal/search"
)

func testCorpus() *content.Corpus {
	records := []content.Record{
		{Slug: "proxies-storage", Title: "Proxies Storage", Section: "proxies",
			ContentHTML: content.BuildTOC([]content.Heading{{ID: "slots", Title: "Slots"}}) + `<h2 id="slots">Slots</h2><table></table>`,
			Sections:    []content.Section{{Title: "Slots", Content: "storage slots", Anchor: "slots"}}},
		{Slug: "protocol-basics", Title: "Protocol Basics", Section: "mpc", ContentHTML: "<p>storage of shares</p>"},
	}
	return &content.Corpus{Records: records, SearchIndex: content.BuildSearchIndex(records)}
}

func TestBuildChildPage(t *testing.T) {
	corpus := testCorpus()
	sec := NewSection("proxies", corpus, search.NewEngine(corpus))
	st := sec.NewState("proxies-storage")
	st.SetQuery("storage")

	p := sec.Build(st)
	assert.Equal(t, "Proxies Storage", p.Record.Title)
	assert.Equal(t, resolve.SourceRecord, p.Source)
	assert.True(t, p.Known())
	assert.Contains(t, p.Body, `<div class="table-wrapper"><table>`)

	require.NotNil(t, p.Breadcrumb)
	assert.Equal(t, "proxies-deep-dive", p.Breadcrumb.ParentID)

	require.Len(t, p.TOC, 1)
	assert.Equal(t, "#slots", p.TOC[0].Href)

	active := 0
	for _, row := range p.Sidebar {
		if row.Active {
			active++
			assert.Equal(t, "/proxies/proxies-storage", row.Href)
		}
	}
	assert.Equal(t, 1, active)

	require.Len(t, p.Results, 2, "results stay in the proxies section")
	assert.Equal(t, "/proxies/proxies-storage", sec.ResultHref(p.Results[0]))
	assert.Equal(t, "/proxies/proxies-storage#slots", sec.ResultHref(p.Results[1]))

	sec.Router.Base = "/docs"
	assert.Equal(t, "/docs/proxies/proxies-storage", sec.ResultHref(p.Results[0]))
	assert.Equal(t, "/docs/proxies/proxies-storage#slots", sec.ResultHref(p.Results[1]))
}

func TestBuildUnknownPage(t *testing.T) {
	sec := NewSection("proxies", nil, nil)
	p := sec.Build(sec.NewState("nope"))
	assert.Equal(t, resolve.SourceHome, p.Source)
	assert.False(t, p.Known())
	assert.Nil(t, p.Breadcrumb)
	assert.Empty(t, p.Results)
	assert.Equal(t, "yAcademy Proxies Research", p.Record.Title)

	home := sec.Build(sec.NewState("home"))
	assert.True(t, home.Known())

	unwritten := sec.Build(sec.NewState("proxy-basics"))
	assert.Equal(t, resolve.SourceHome, unwritten.Source)
	assert.True(t, unwritten.Known(), "sidebar ids are addressable before their page exists")
}

func TestBuildMPC(t *testing.T) {
	corpus := testCorpus()
	sec := NewSection("mpc", corpus, search.NewEngine(corpus))
	assert.Equal(t, "MPC Research", sec.Title)

	p := sec.Build(sec.NewState("vulnerability-guide"))
	assert.Contains(t, p.Body, "Coming Soon")
	require.NotNil(t, p.Breadcrumb)
	assert.Equal(t, "Security Analysis / Vulnerability Guide", p.Breadcrumb.String())
	assert.Empty(t, p.TOC)
}

func TestBuildTreeKeepsCollapsedChildren(t *testing.T) {
	sec := NewSection("proxies", nil, nil)
	st := sec.NewState("proxy-identification")
	st.ToggleSection("security-guide")

	p := sec.Build(st)
	require.Len(t, p.Tree, 4)
	guide := p.Tree[3]
	assert.Equal(t, "security-guide", guide.ID)
	assert.False(t, guide.Expanded)
	require.Len(t, guide.Children, 1)
	assert.True(t, guide.Children[0].Active)
	assert.Equal(t, "/proxies/proxy-identification", guide.Children[0].Href)
	assert.Equal(t, "/proxies/proxies-list", p.Tree[2].Href)

	for _, row := range p.Sidebar {
		assert.NotEqual(t, "proxy-identification", row.ID, "collapsed children are not visible rows")
	}
}

func TestPageIDs(t *testing.T) {
	sec := NewSection("proxies", &content.Corpus{Records: []content.Record{
		{Slug: "proxies-storage", Section: "proxies"},
		{Slug: "upgrade-patterns", Section: "proxies"},
		{Slug: "protocol-basics", Section: "mpc"},
	}}, nil)

	ids := sec.PageIDs()
	assert.Equal(t, "home", ids[0])
	assert.Contains(t, ids, "security-guide")
	assert.Equal(t, "upgrade-patterns", ids[len(ids)-1])
	assert.NotContains(t, ids, "protocol-basics")
}

func TestPageWithAnchor(t *testing.T) {
	sec := NewSection("proxies", testCorpus(), nil)

	id, ok := sec.PageWithAnchor("#slots")
	require.True(t, ok)
	assert.Equal(t, "proxies-storage", id)

	id, ok = sec.PageWithAnchor("getting-started")
	require.True(t, ok, "synthesized pages carry anchors too")
	assert.Equal(t, "home", id)

	_, ok = sec.PageWithAnchor("missing")
	assert.False(t, ok)
}

func TestPageWithAnchorSkipsRedirectedIDs(t *testing.T) {
	records := []content.Record{
		{Slug: "proxies-deep-dive", Title: "Deep Dive", Section: "proxies", ContentHTML: `<h2 id="loop">Loop</h2>`},
		{Slug: "proxy-basics", Title: "Proxy Basics", Section: "proxies", ContentHTML: `<h2 id="basics">Basics</h2>`},
	}
	corpus := &content.Corpus{Records: records}
	sec := NewSection("proxies", corpus, nil)

	_, ok := sec.PageWithAnchor("loop")
	assert.False(t, ok, "proxies-deep-dive always routes to proxies-list")

	slug, ok := sec.PageWithAnchor("#basics")
	assert.True(t, ok)
	assert.Equal(t, "proxy-basics", slug)
}
