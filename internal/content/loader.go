package content

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"
)

// DefaultInclude selects every markdown file below the content directory.
var DefaultInclude = []string{"**/*.md"}

// Loader reads markdown research articles from a directory tree. The first
// path component names the site section ("proxies/proxy-basics.md"); files
// at the root belong to DefaultSection.
type Loader struct {
	Dir            string
	Include        []string
	Exclude        []string
	DefaultSection string
	Logger         *zap.Logger
}

// NewLoader returns a Loader for dir with default globs.
func NewLoader(dir string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		Dir:            dir,
		Include:        DefaultInclude,
		DefaultSection: "proxies",
		Logger:         logger,
	}
}

// Load walks the content directory, renders every matching file and builds
// the section-granular search index. It returns ErrNoContent when nothing
// matched.
func (l *Loader) Load(ctx context.Context) (*Corpus, error) {
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	paths, err := l.discover()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoContent, l.Dir)
	}

	md := newMarkdown()
	seen := make(map[string]string, len(paths))
	records := make([]Record, 0, len(paths))
	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, err := os.ReadFile(filepath.Join(l.Dir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", rel, err)
		}
		rec, err := l.render(md, rel, src)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", rel, err)
		}
		if prev, dup := seen[rec.Slug]; dup {
			return nil, fmt.Errorf("duplicate slug %q in %s and %s", rec.Slug, prev, rel)
		}
		seen[rec.Slug] = rel
		records = append(records, rec)
		logger.Debug("loaded page", zap.String("slug", rec.Slug), zap.String("path", rel))
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Order != records[j].Order {
			return records[i].Order < records[j].Order
		}
		return records[i].Slug < records[j].Slug
	})

	logger.Info("content loaded", zap.String("dir", l.Dir), zap.Int("pages", len(records)))
	return &Corpus{Records: records, SearchIndex: BuildSearchIndex(records)}, nil
}

// discover returns slash-separated paths relative to Dir, sorted.
func (l *Loader) discover() ([]string, error) {
	include := l.Include
	if len(include) == 0 {
		include = DefaultInclude
	}
	var paths []string
	err := filepath.WalkDir(l.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != l.Dir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || filepath.Ext(name) != ".md" {
			return nil
		}
		rel, err := filepath.Rel(l.Dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !matchesAny(rel, include) || matchesAny(rel, l.Exclude) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking content dir: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

func matchesAny(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

func (l *Loader) render(md goldmark.Markdown, rel string, src []byte) (Record, error) {
	fm, body, err := splitFrontMatter(src)
	if err != nil {
		return Record{}, err
	}

	doc := md.Parser().Parse(text.NewReader(body))

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, body, doc); err != nil {
		return Record{}, fmt.Errorf("converting markdown: %w", err)
	}

	title, sections, headings := outline(doc, body)
	if fm.Title != "" {
		title = fm.Title
	}
	base := strings.TrimSuffix(filepath.Base(rel), ".md")
	if title == "" {
		title = base
	}

	slug := fm.Slug
	if slug == "" {
		slug = base
	}

	section := fm.Section
	if section == "" {
		section = l.DefaultSection
		if i := strings.IndexByte(rel, '/'); i > 0 {
			section = rel[:i]
		}
	}

	category := fm.Category
	if category == "" {
		category = "general"
	}

	htmlContent := buf.String()
	if fm.TOC {
		htmlContent = BuildTOC(headings) + htmlContent
	}

	return Record{
		Slug:        slug,
		Title:       title,
		Category:    category,
		ContentHTML: htmlContent,
		Description: fm.Description,
		Sections:    sections,
		Section:     section,
		Order:       fm.Order,
		Markdown:    string(body),
	}, nil
}

// outline extracts the h1 title, the h2 sections and the h2 headings from a
// parsed document.
func outline(doc ast.Node, src []byte) (string, []Section, []Heading) {
	var (
		title    string
		sections []Section
		headings []Heading
		current  *Section
		body     strings.Builder
	)
	flush := func() {
		if current != nil {
			current.Content = collapseSpace(body.String())
			sections = append(sections, *current)
		}
		body.Reset()
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if ok && h.Level == 1 && title == "" {
			title = strings.TrimSpace(nodeText(h, src))
			continue
		}
		if ok && h.Level == 2 {
			flush()
			hd := Heading{ID: headingID(h), Title: strings.TrimSpace(nodeText(h, src)), Level: 2}
			headings = append(headings, hd)
			current = &Section{Title: hd.Title, Anchor: hd.ID}
			continue
		}
		if current != nil {
			body.WriteString(nodeText(n, src))
			body.WriteByte(' ')
		}
	}
	flush()
	return title, sections, headings
}

func headingID(h *ast.Heading) string {
	v, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	}
	return ""
}

// nodeText flattens the text content of n. Code blocks contribute their raw
// lines; inline containers recurse.
func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
			return
		case *ast.String:
			b.Write(node.Value)
			return
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			b.WriteString(blockLines(n, src))
			return
		case *ast.HTMLBlock:
			b.WriteString(StripTags(blockLines(n, src)))
			return
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
			if c.Type() == ast.TypeBlock {
				b.WriteByte(' ')
			}
		}
	}
	walk(n)
	return b.String()
}

func blockLines(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}
