// Package site renders research pages to HTML and writes the static site.
package site

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/yacademy/researchsite/internal/content"
	"github.com/yacademy/researchsite/internal/nav"
	"github.com/yacademy/researchsite/internal/progress"
	"github.com/yacademy/researchsite/internal/search"
	"github.com/yacademy/researchsite/internal/view"
)

// Generator writes every page of every section as static HTML.
type Generator struct {
	Corpus    *content.Corpus
	OutputDir string
	Renderer  *Renderer
	Engine    *search.Engine
	Logger    *zap.Logger
	Reporter  progress.Reporter
}

// NewGenerator creates a Generator. A nil corpus produces a site made of
// synthesized pages only.
func NewGenerator(corpus *content.Corpus, outputDir string, renderer *Renderer, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		Corpus:    corpus,
		OutputDir: outputDir,
		Renderer:  renderer,
		Engine:    search.NewEngine(corpus, search.WithLogger(logger)),
		Logger:    logger,
		Reporter:  progress.Nop{},
	}
}

// Sections returns the site sections in landing-page order, with links
// mounted under base.
func Sections(corpus *content.Corpus, engine *search.Engine, base string) []*view.Section {
	sections := []*view.Section{
		view.NewSection(nav.SectionProxies, corpus, engine),
		view.NewSection(nav.SectionMPC, corpus, engine),
	}
	for _, sec := range sections {
		sec.Router.Base = base
	}
	return sections
}

// Generate builds the full static site. Returns the number of pages generated.
func (g *Generator) Generate() (int, error) {
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}

	if err := WriteSearchIndex(g.Engine.Index(), filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return 0, fmt.Errorf("writing search index: %w", err)
	}

	// Write static assets.
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "script.js"), []byte(jsContent), 0o644); err != nil {
		return 0, err
	}

	sections := Sections(g.Corpus, g.Engine, g.Renderer.Base())
	total := 1
	for _, sec := range sections {
		total += len(sec.PageIDs())
	}
	g.Reporter.Start(total)
	defer g.Reporter.Finish()

	var buf bytes.Buffer
	if err := g.Renderer.Landing(&buf, sections); err != nil {
		return 0, fmt.Errorf("rendering landing page: %w", err)
	}
	if err := writePage(filepath.Join(g.OutputDir, "index.html"), buf.Bytes()); err != nil {
		return 0, err
	}
	count := 1
	g.Reporter.Update(count, "index.html")

	for _, sec := range sections {
		for _, id := range sec.PageIDs() {
			rel := pageFile(sec.Name, id)
			if err := g.renderPage(sec, id, rel); err != nil {
				return count, fmt.Errorf("rendering %s: %w", rel, err)
			}
			count++
			g.Reporter.Update(count, rel)
		}
	}

	g.Logger.Info("static site generated",
		zap.String("output", g.OutputDir),
		zap.Int("pages", count),
		zap.Int("search_entries", g.Engine.Len()),
	)
	return count, nil
}

// renderPage writes one page with its section defaults applied.
func (g *Generator) renderPage(sec *view.Section, id, rel string) error {
	st := sec.NewState(id)
	p := sec.Build(st)
	var buf bytes.Buffer
	if err := g.Renderer.Page(&buf, sec, st, p); err != nil {
		return err
	}
	return writePage(filepath.Join(g.OutputDir, filepath.FromSlash(rel)), buf.Bytes())
}

// pageFile returns the output path of a page relative to the site root,
// so that /<section>/<id> resolves through index.html.
func pageFile(section, id string) string {
	if id == nav.HomeID {
		return section + "/index.html"
	}
	return section + "/" + id + "/index.html"
}

func writePage(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
