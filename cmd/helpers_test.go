package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yacademy/researchsite/internal/config"
	"github.com/yacademy/researchsite/internal/content"
	"github.com/yacademy/researchsite/internal/db"
	"github.com/yacademy/researchsite/internal/search"
)

func TestScrollConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scroll.RetryInterval = 50 * time.Millisecond
	cfg.Scroll.HeaderOffset = 64
	cfg.BaseURL = "https://example.org/docs/"

	sc := scrollConfig(cfg)
	assert.Equal(t, 500*time.Millisecond, sc.InitialDelay)
	assert.Equal(t, 100*time.Millisecond, sc.NavigateDelay)
	assert.Equal(t, 50*time.Millisecond, sc.RetryInterval)
	assert.Equal(t, 10, sc.MaxRetries)
	assert.Equal(t, float64(64), sc.HeaderOffset)

	opts := renderOptions(cfg)
	assert.Equal(t, cfg.SiteTitle, opts.SiteTitle)
	assert.Equal(t, 10, opts.MaxResults)
	assert.Equal(t, "mark", opts.HighlightTag)
	assert.Equal(t, "/docs", opts.Base)
	assert.False(t, opts.Live)
}

func TestLoadCorpusFromSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.db")
	records := []content.Record{
		{Slug: "proxy-basics", Title: "Proxy Basics", Section: "proxies", ContentHTML: "<p>delegatecall basics</p>"},
	}
	database, err := db.Open(path)
	require.NoError(t, err)
	corpus := &content.Corpus{Records: records, SearchIndex: content.BuildSearchIndex(records)}
	require.NoError(t, content.NewStore(database).Save(context.Background(), corpus))
	require.NoError(t, database.Close())

	got, err := loadCorpus(context.Background(), config.DefaultConfig(), path, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, got.Records, 1)
	assert.Equal(t, "proxy-basics", got.Records[0].Slug)
}

func TestLoadCorpusMissingSnapshot(t *testing.T) {
	_, err := loadCorpus(context.Background(), config.DefaultConfig(), filepath.Join(t.TempDir(), "nope.db"), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "researchsite index")
}

func TestLoadCorpusOrWarnEmptyDir(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ContentDir = t.TempDir()
	assert.Nil(t, loadCorpusOrWarn(context.Background(), cfg, "", zap.NewNop()))
}

func sampleResults() []search.Result {
	return []search.Result{
		{Entry: search.Entry{
			ID: "proxy-basics", Type: content.EntryPage, Title: "Proxy Basics",
			Path: "/proxies/proxy-basics", Content: "Basics of\n  delegatecall &amp; storage.",
		}},
		{Entry: search.Entry{
			ID: "proxies-storage-section-0", Type: content.EntrySection, Title: "Slots",
			PageTitle: "Storage", Path: "/proxies/proxies-storage#slots", Content: "Slot detail.",
		}},
	}
}

func TestPrintSearchTable(t *testing.T) {
	var buf bytes.Buffer
	printSearchTable(&buf, sampleResults())
	out := buf.String()
	assert.Contains(t, out, "Found 2 results:")
	assert.Contains(t, out, "1. Proxy Basics\n")
	assert.Contains(t, out, "Basics of delegatecall & storage.")
	assert.Contains(t, out, "2. Slots (in Storage)")
	assert.Contains(t, out, "/proxies/proxies-storage#slots")
}

func TestPrintSearchJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printSearchJSON(&buf, sampleResults()))

	var got []searchResultJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[1].Rank)
	assert.Equal(t, "section", got[1].Type)
	assert.Equal(t, "Basics of delegatecall & storage.", got[0].Excerpt)

	buf.Reset()
	require.NoError(t, printSearchJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}
