package site

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yacademy/researchsite/internal/content"
	"github.com/yacademy/researchsite/internal/progress"
	"github.com/yacademy/researchsite/internal/search"
	"github.com/yacademy/researchsite/internal/view"
)

func testCorpus() *content.Corpus {
	records := []content.Record{
		{
			Slug: "proxies-list", Title: "List of Proxies", Category: "proxies", Section: "proxies",
			ContentHTML: `<h2 id="transparent">Transparent</h2><p>The transparent proxy pattern.</p>`,
			Sections:    []content.Section{{Title: "Transparent", Content: "The transparent proxy pattern.", Anchor: "transparent"}},
		},
		{
			Slug: "proxies-storage", Title: "Proxies Storage", Category: "proxies", Section: "proxies",
			ContentHTML: content.BuildTOC([]content.Heading{{ID: "slots", Title: "Slots", Level: 2}}) +
				`<h2 id="slots">Slots</h2><table><tr><td>slot 0</td></tr></table>`,
			Sections: []content.Section{{Title: "Slots", Content: "slot 0", Anchor: "slots"}},
		},
	}
	return &content.Corpus{Records: records, SearchIndex: content.BuildSearchIndex(records)}
}

func newTestRenderer(t *testing.T, live bool) *Renderer {
	t.Helper()
	r, err := NewRenderer(Options{SiteTitle: "Test Research", Live: live})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func readOutput(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func TestGenerateUnderBase(t *testing.T) {
	out := t.TempDir()
	r, err := NewRenderer(Options{SiteTitle: "Test Research", Base: "/docs/"})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if _, err := NewGenerator(testCorpus(), out, r, nil).Generate(); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	landing := readOutput(t, out, "index.html")
	if !strings.Contains(landing, `href="/docs/proxies"`) {
		t.Errorf("landing links miss the base:\n%s", landing)
	}
	storage := readOutput(t, out, "proxies/proxies-storage/index.html")
	for _, want := range []string{`data-base="/docs"`, `href="/docs/proxies/proxies-list"`} {
		if !strings.Contains(storage, want) {
			t.Errorf("storage page missing %q", want)
		}
	}

	var entries []search.Entry
	if err := json.Unmarshal([]byte(readOutput(t, out, "search-index.json")), &entries); err != nil {
		t.Fatalf("search index: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Path, "/docs") {
			t.Errorf("index path %q carries the base", e.Path)
		}
	}
}

func TestGenerate(t *testing.T) {
	out := t.TempDir()
	var log bytes.Buffer
	g := NewGenerator(testCorpus(), out, newTestRenderer(t, false), nil)
	g.Reporter = &progress.CIReporter{Out: &log, Description: "Rendering"}

	n, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Landing, 8 proxies sidebar ids plus proxies-list, 5 MPC ids.
	if n != 15 {
		t.Errorf("pages = %d, want 15", n)
	}
	if !strings.Contains(log.String(), "[15/15] mpc/implementation-guide/index.html") {
		t.Errorf("progress log missing last page:\n%s", log.String())
	}

	landing := readOutput(t, out, "index.html")
	for _, want := range []string{"Test Research", `href="/proxies"`, `href="/mpc"`, "MPC Research"} {
		if !strings.Contains(landing, want) {
			t.Errorf("landing page missing %q", want)
		}
	}

	storage := readOutput(t, out, "proxies/proxies-storage/index.html")
	for _, want := range []string{
		`<h1 class="page-title">Proxies Storage</h1>`,
		`<div class="table-wrapper"><table>`,
		`<a href="/proxies/proxies-list">Proxies Deep Dive</a>`,
		"On this page",
		`<li><a href="#slots">Slots</a></li>`,
		`data-page="proxies-storage"`,
		`data-initial-delay="500"`,
		`data-max-retries="10"`,
	} {
		if !strings.Contains(storage, want) {
			t.Errorf("storage page missing %q", want)
		}
	}

	guide := readOutput(t, out, "proxies/security-guide/index.html")
	if !strings.Contains(guide, "Security Guide to Proxy Vulns") || !strings.Contains(guide, "#storage-collision-vulnerability") {
		t.Error("security guide should be synthesized with its TOC")
	}

	stub := readOutput(t, out, "mpc/vulnerability-guide/index.html")
	if !strings.Contains(stub, "Coming Soon") {
		t.Error("MPC pages should be coming-soon stubs")
	}

	listed := readOutput(t, out, "proxies/proxies-list/index.html")
	if !strings.Contains(listed, "List of Proxies") {
		t.Error("pages outside the sidebar should still be generated")
	}

	for _, asset := range []string{"style.css", "script.js"} {
		if _, err := os.Stat(filepath.Join(out, asset)); err != nil {
			t.Errorf("asset %s not written: %v", asset, err)
		}
	}

	var entries []search.Entry
	if err := json.Unmarshal([]byte(readOutput(t, out, "search-index.json")), &entries); err != nil {
		t.Fatalf("decoding search index: %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("search entries = %d, want 4", len(entries))
	}
}

func TestGenerateWithoutContent(t *testing.T) {
	out := t.TempDir()
	g := NewGenerator(nil, out, newTestRenderer(t, false), nil)

	n, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if n != 14 {
		t.Errorf("pages = %d, want 14", n)
	}
	home := readOutput(t, out, "proxies/index.html")
	if !strings.Contains(home, "yAcademy Proxies Research") {
		t.Error("proxies home should be rendered from the built-in record")
	}
	if got := strings.TrimSpace(readOutput(t, out, "search-index.json")); got != "[]" {
		t.Errorf("search index = %q, want []", got)
	}
}

func TestRenderPageWithQuery(t *testing.T) {
	corpus := testCorpus()
	sec := view.NewSection("proxies", corpus, search.NewEngine(corpus))
	st := sec.NewState("proxies-list")
	st.SetQuery("transparent")

	var buf bytes.Buffer
	if err := newTestRenderer(t, true).Page(&buf, sec, st, sec.Build(st)); err != nil {
		t.Fatalf("Page: %v", err)
	}
	got := buf.String()
	for _, want := range []string{
		`class="search-results visible"`,
		`href="/proxies/proxies-list#transparent"`,
		"<mark>transparent</mark>",
		`data-live="1"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestRenderPageNoResults(t *testing.T) {
	sec := view.NewSection("proxies", nil, search.NewEngine(nil))
	st := sec.NewState("home")
	st.SetQuery("zzz")

	var buf bytes.Buffer
	if err := newTestRenderer(t, false).Page(&buf, sec, st, sec.Build(st)); err != nil {
		t.Fatalf("Page: %v", err)
	}
	if !strings.Contains(buf.String(), `No results for "zzz"`) {
		t.Errorf("expected empty-results message, got:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), `id="floating-toc"`) {
		t.Error("floating TOC should be hidden when the page has no TOC block")
	}
}

func TestSnippet(t *testing.T) {
	got := string(Snippet("Use <delegatecall> for storage. Storage matters.", "storage", "mark"))
	want := "Use &lt;delegatecall&gt; for <mark>storage</mark>. <mark>Storage</mark> matters."
	if got != want {
		t.Errorf("Snippet = %q, want %q", got, want)
	}
}

func TestSnippetDecodesEntities(t *testing.T) {
	got := string(Snippet("Tom &amp; &quot;Jerry&quot;", "amp", "mark"))
	if got != "Tom &amp; &#34;Jerry&#34;" {
		t.Errorf("Snippet = %q, entity must survive intact", got)
	}
	got = string(Snippet("Tom &amp; Jerry", "& jerry", "mark"))
	if got != "Tom <mark>&amp; Jerry</mark>" {
		t.Errorf("Snippet = %q", got)
	}
}

func TestExcerpt(t *testing.T) {
	text := strings.Repeat("a", 200) + "needle" + strings.Repeat("b", 200)
	got := excerpt(text, "NEEDLE", 10)
	want := "..." + strings.Repeat("a", 10) + "needle" + strings.Repeat("b", 10) + "..."
	if got != want {
		t.Errorf("excerpt = %q, want %q", got, want)
	}

	if got := excerpt("short text", "missing", 80); got != "short text" {
		t.Errorf("excerpt without match = %q, want whole text", got)
	}

	// Cuts never split a multi-byte rune.
	multi := strings.Repeat("é", 20) + "x"
	if got := excerpt(multi, "x", 3); !strings.HasPrefix(got, "...") || !strings.HasSuffix(got, "x") {
		t.Errorf("excerpt = %q", got)
	}
}

func TestScriptScopesLocalSearch(t *testing.T) {
	js := Script()
	for _, want := range []string{
		// the JSON index fallback keeps only entries of the current section
		"if (owner && owner !== section) continue;",
		// entries under a section link to their own path
		"if (entrySection(r)) return base + r.path;",
		// snippets are built from decoded text and escaped piecewise
		"var snippet = highlight(excerpt(text, query), query);",
	} {
		if !strings.Contains(js, want) {
			t.Errorf("script.js missing %q", want)
		}
	}
	if strings.Contains(js, "r.highlightedContent ||") {
		t.Error("script.js must not inject unescaped highlighted content")
	}
}

func TestPageFile(t *testing.T) {
	tests := []struct {
		section, id, want string
	}{
		{"proxies", "home", "proxies/index.html"},
		{"proxies", "proxies-storage", "proxies/proxies-storage/index.html"},
		{"mpc", "protocol-basics", "mpc/protocol-basics/index.html"},
	}
	for _, tt := range tests {
		if got := pageFile(tt.section, tt.id); got != tt.want {
			t.Errorf("pageFile(%q, %q) = %q, want %q", tt.section, tt.id, got, tt.want)
		}
	}
}

func TestWriteSearchIndexNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search-index.json")
	if err := WriteSearchIndex(nil, path); err != nil {
		t.Fatalf("WriteSearchIndex: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "[]" {
		t.Errorf("index = %q, want []", data)
	}
}
