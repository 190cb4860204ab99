package search

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacademy/researchsite/internal/content"
)

func sectionCorpus() *content.Corpus {
	records := []content.Record{
		{Slug: "proxy-basics", Title: "Proxy Basics", Section: "proxies", ContentHTML: "<p>shared word</p>",
			Sections: []content.Section{{Title: "Slots", Content: "shared slot", Anchor: "slots"}}},
		{Slug: "protocol-basics", Title: "Protocol Basics", Section: "mpc", ContentHTML: "<p>shared secret</p>"},
	}
	return &content.Corpus{Records: records, SearchIndex: content.BuildSearchIndex(records)}
}

func TestEngineNilCorpus(t *testing.T) {
	e := NewEngine(nil)
	assert.Equal(t, 0, e.Len())
	assert.Empty(t, e.Search("anything"))
}

func TestEngineOptions(t *testing.T) {
	e := NewEngine(sectionCorpus(), WithLimit(1), WithTag("em"), WithLogger(nil))
	results := e.Search("shared")
	require.Len(t, results, 1)
	assert.Contains(t, results[0].HighlightedContent, "<em>shared</em>")
}

func TestEngineSearchSection(t *testing.T) {
	e := NewEngine(sectionCorpus())

	all := e.SearchSection("shared", "")
	assert.Len(t, all, 3)

	proxies := e.SearchSection("shared", "proxies")
	require.Len(t, proxies, 2)
	assert.Equal(t, "proxy-basics", proxies[0].ID)
	assert.Equal(t, "proxy-basics-section-0", proxies[1].ID)
	assert.Equal(t, "/proxies/proxy-basics#slots", proxies[1].Path)

	mpc := e.SearchSection("shared", "mpc")
	require.Len(t, mpc, 1)
	assert.Equal(t, "protocol-basics", mpc[0].ID)

	assert.Empty(t, e.SearchSection("shared", "prox"), "section must match a whole path segment")
}

func TestEngineReload(t *testing.T) {
	e := NewEngine(sectionCorpus())
	require.Len(t, e.Search("secret"), 1)

	e.Reload(&content.Corpus{Records: []content.Record{{Slug: "new", Title: "New", ContentHTML: "fresh"}}})
	assert.Empty(t, e.Search("secret"))
	assert.Len(t, e.Search("fresh"), 1)
	assert.Equal(t, 1, e.Len())
	assert.Equal(t, "/new", e.Index()[0].Path)
}

func TestEngineSearchSectionWithoutPrebuiltIndex(t *testing.T) {
	records := []content.Record{
		{Slug: "proxy-basics", Title: "Proxy Basics", Section: "proxies", ContentHTML: "<p>delegatecall</p>"},
		{Slug: "uups", Title: "UUPS", ContentHTML: "<p>delegatecall via implementation</p>"},
		{Slug: "protocol-basics", Title: "Protocol Basics", Section: "mpc", ContentHTML: "<p>no delegatecall here</p>"},
	}
	e := NewEngine(&content.Corpus{Records: records})

	require.Len(t, e.Search("delegatecall"), 3)
	assert.Equal(t, "/proxy-basics", e.Index()[0].Path, "synthesized entries keep their slug path")

	proxies := e.SearchSection("delegatecall", "proxies")
	require.Len(t, proxies, 2)
	assert.Equal(t, "proxy-basics", proxies[0].ID)
	assert.Equal(t, "uups", proxies[1].ID, "records without a section belong to proxies")

	mpc := e.SearchSection("delegatecall", "mpc")
	require.Len(t, mpc, 1)
	assert.Equal(t, "protocol-basics", mpc[0].ID)
}

func TestEngineSearchSectionUnknownEntryUsesPath(t *testing.T) {
	index := []content.SearchEntry{
		{ID: "orphan", Type: content.EntryPage, Path: "/mpc/orphan", SearchText: "orphan"},
	}
	e := NewEngine(&content.Corpus{SearchIndex: index})
	assert.Len(t, e.SearchSection("orphan", "mpc"), 1)
	assert.Empty(t, e.SearchSection("orphan", "proxies"))
}

func TestEngineConcurrentReload(t *testing.T) {
	e := NewEngine(sectionCorpus())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			e.Search("shared")
		}()
		go func() {
			defer wg.Done()
			e.Reload(sectionCorpus())
		}()
	}
	wg.Wait()
	assert.Len(t, e.Search("shared"), 3)
}
