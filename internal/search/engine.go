package search

import (
	"sync"

	"github.com/yacademy/researchsite/internal/content"
	"go.uber.org/zap"
)

// Engine holds an index snapshot that can be replaced while queries run.
type Engine struct {
	mu    sync.RWMutex
	index []Entry
	// sections maps each record slug to its site section.
	sections map[string]string
	limit    int
	tag      string
	logger   *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLimit sets the maximum number of results per query.
func WithLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

// WithTag sets the element used to emphasize matches.
func WithTag(tag string) Option {
	return func(e *Engine) {
		if tag != "" {
			e.tag = tag
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine builds an engine over corpus. A nil corpus yields an empty
// index, so every query returns no results.
func NewEngine(corpus *content.Corpus, opts ...Option) *Engine {
	e := &Engine{
		limit:  DefaultLimit,
		tag:    DefaultTag,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Reload(corpus)
	return e
}

// Reload swaps in the index derived from corpus.
func (e *Engine) Reload(corpus *content.Corpus) {
	var index []Entry
	sections := make(map[string]string)
	if corpus != nil {
		index = BuildIndex(corpus.Records, corpus.SearchIndex)
		for _, r := range corpus.Records {
			sections[r.Slug] = sectionOf(r)
		}
	}
	e.mu.Lock()
	e.index = index
	e.sections = sections
	e.mu.Unlock()
	e.logger.Debug("search index reloaded", zap.Int("entries", len(index)))
}

// Search runs query against the current snapshot.
func (e *Engine) Search(query string) []Result {
	e.mu.RLock()
	index := e.index
	e.mu.RUnlock()
	return search(query, index, e.limit, e.tag)
}

// SearchSection is Search restricted to entries of one site section. An
// entry belongs to the section of the record it came from; entries with no
// such record fall back to their path lying under "/<section>". An empty
// section searches everything.
func (e *Engine) SearchSection(query, section string) []Result {
	if section == "" {
		return e.Search(query)
	}
	e.mu.RLock()
	index, sections := e.index, e.sections
	e.mu.RUnlock()

	prefix := "/" + section
	var scoped []Entry
	for _, entry := range index {
		if sec, ok := sections[PageSlug(entry.ID)]; ok {
			if sec == section {
				scoped = append(scoped, entry)
			}
			continue
		}
		if entry.Path == prefix || hasPathPrefix(entry.Path, prefix) {
			scoped = append(scoped, entry)
		}
	}
	return search(query, scoped, e.limit, e.tag)
}

// sectionOf matches content.PagePath, which files section-less records
// under proxies.
func sectionOf(r content.Record) string {
	if r.Section == "" {
		return "proxies"
	}
	return r.Section
}

func hasPathPrefix(path, prefix string) bool {
	if len(path) <= len(prefix) || path[:len(prefix)] != prefix {
		return false
	}
	c := path[len(prefix)]
	return c == '/' || c == '#'
}

// Index returns the current snapshot. Callers must not modify it.
func (e *Engine) Index() []Entry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index
}

// Len reports the number of entries in the current snapshot.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.index)
}
