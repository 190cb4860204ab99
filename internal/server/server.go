// Package server serves the research site and its search API over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/yacademy/researchsite/internal/content"
	"github.com/yacademy/researchsite/internal/search"
	"github.com/yacademy/researchsite/internal/site"
	"github.com/yacademy/researchsite/internal/view"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
	Render   site.Options
}

// Server renders pages and answers search requests for the current corpus.
type Server struct {
	cfg        Config
	logger     *zap.Logger
	renderer   *site.Renderer
	router     chi.Router
	httpServer *http.Server

	mu       sync.RWMutex
	corpus   *content.Corpus
	engine   *search.Engine
	sections []*view.Section
}

// New creates a server over corpus. A nil corpus serves synthesized pages
// and an empty search index.
func New(cfg Config, corpus *content.Corpus, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.Render.Live = true
	renderer, err := site.NewRenderer(cfg.Render)
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, logger: logger, renderer: renderer}
	s.Swap(corpus)
	s.router = s.buildRouter()
	return s, nil
}

// Swap replaces the served content. Requests in flight finish against the
// previous corpus.
func (s *Server) Swap(corpus *content.Corpus) {
	engine := search.NewEngine(corpus,
		search.WithLimit(s.cfg.Render.MaxResults),
		search.WithTag(s.cfg.Render.HighlightTag),
		search.WithLogger(s.logger),
	)
	sections := site.Sections(corpus, engine, s.cfg.Render.Base)

	s.mu.Lock()
	s.corpus = corpus
	s.engine = engine
	s.sections = sections
	s.mu.Unlock()

	pages := 0
	if corpus != nil {
		pages = len(corpus.Records)
	}
	s.logger.Info("content swapped", zap.Int("pages", pages), zap.Int("search_entries", engine.Len()))
}

// snapshot returns the engine and sections of the current corpus.
func (s *Server) snapshot() (*search.Engine, []*view.Section) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine, s.sections
}

func (s *Server) section(name string) (*view.Section, bool) {
	_, sections := s.snapshot()
	for _, sec := range sections {
		if sec.Name == name {
			return sec, true
		}
	}
	return nil, false
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// The websocket outlives the request timeout.
	r.Get("/ws/search", s.handleSearchSocket)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/", s.handleLanding)
		r.Get("/style.css", s.handleAsset("text/css; charset=utf-8", site.Stylesheet()))
		r.Get("/script.js", s.handleAsset("application/javascript; charset=utf-8", site.Script()))
		r.Get("/search-index.json", s.handleSearchIndex)

		for _, name := range []string{"proxies", "mpc"} {
			r.Get("/"+name, s.handlePage(name))
			r.Get("/"+name+"/{id}", s.handlePage(name))
		}

		r.Route("/api", func(r chi.Router) {
			r.Get("/search", s.handleSearch)
			r.Get("/pages/{id}", s.handleGetPage)
			r.Get("/anchors/{fragment}", s.handleAnchor)
		})
	})

	base := strings.TrimSuffix(s.cfg.Render.Base, "/")
	if base == "" {
		return r
	}
	root := chi.NewRouter()
	root.Mount(base, r)
	root.Handle("/", http.RedirectHandler(base+"/", http.StatusFound))
	return root
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("researchsite server listening", zap.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
