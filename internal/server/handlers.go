package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yacademy/researchsite/internal/content"
	"github.com/yacademy/researchsite/internal/nav"
	"github.com/yacademy/researchsite/internal/resolve"
	"github.com/yacademy/researchsite/internal/search"
)

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	_, sections := s.snapshot()
	var buf bytes.Buffer
	if err := s.renderer.Landing(&buf, sections); err != nil {
		s.logger.Error("rendering landing page", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// handlePage renders a page of the named section. Unknown ids still get
// the section home, with a 404 status.
func (s *Server) handlePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sec, ok := s.section(name)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown section")
			return
		}

		id := chi.URLParam(r, "id")
		if id == "" {
			id = nav.HomeID
		}
		st := sec.NewState(id)
		st.SetQuery(r.URL.Query().Get("q"))
		p := sec.Build(st)

		var buf bytes.Buffer
		if err := s.renderer.Page(&buf, sec, st, p); err != nil {
			s.logger.Error("rendering page", zap.String("section", name), zap.String("id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "render failed")
			return
		}

		status := http.StatusOK
		if !p.Known() {
			status = http.StatusNotFound
			s.logger.Debug("unknown page id", zap.String("section", name), zap.String("id", id))
		}
		writeHTML(w, status, buf.Bytes())
	}
}

func (s *Server) handleAsset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write([]byte(body))
	}
}

func (s *Server) handleSearchIndex(w http.ResponseWriter, r *http.Request) {
	engine, _ := s.snapshot()
	index := engine.Index()
	if index == nil {
		index = []search.Entry{}
	}
	writeJSON(w, http.StatusOK, index)
}

type searchResponse struct {
	Query   string          `json:"query"`
	Section string          `json:"section,omitempty"`
	Results []search.Result `json:"results"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	section := r.URL.Query().Get("section")
	if section != "" {
		if _, ok := s.section(section); !ok {
			writeError(w, http.StatusBadRequest, "unknown section: "+section)
			return
		}
	}

	engine, _ := s.snapshot()
	writeJSON(w, http.StatusOK, searchResponse{
		Query:   q,
		Section: section,
		Results: engine.SearchSection(q, section),
	})
}

type pageResponse struct {
	Section    string            `json:"section"`
	ID         string            `json:"id"`
	Source     string            `json:"source"`
	Path       string            `json:"path"`
	Record     content.Record    `json:"record"`
	Body       string            `json:"body"`
	TOC        []resolve.TOCLink `json:"toc"`
	Breadcrumb *nav.Breadcrumb   `json:"breadcrumb,omitempty"`
}

func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("section")
	if name == "" {
		name = nav.SectionProxies
	}
	sec, ok := s.section(name)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown section: "+name)
		return
	}

	id := chi.URLParam(r, "id")
	p := sec.Build(sec.NewState(id))
	toc := p.TOC
	if toc == nil {
		toc = []resolve.TOCLink{}
	}

	status := http.StatusOK
	if !p.Known() {
		status = http.StatusNotFound
	}
	writeJSON(w, status, pageResponse{
		Section:    sec.Name,
		ID:         id,
		Source:     p.Source.String(),
		Path:       sec.Router.RelativePath(id),
		Record:     p.Record,
		Body:       p.Body,
		TOC:        toc,
		Breadcrumb: p.Breadcrumb,
	})
}

type anchorResponse struct {
	Section string `json:"section"`
	Slug    string `json:"slug"`
	Path    string `json:"path"`
}

// handleAnchor finds the page that carries an element id. The section
// query parameter is searched first.
func (s *Server) handleAnchor(w http.ResponseWriter, r *http.Request) {
	fragment := strings.TrimPrefix(chi.URLParam(r, "fragment"), "#")
	if fragment == "" {
		writeError(w, http.StatusBadRequest, "fragment is required")
		return
	}

	_, sections := s.snapshot()
	preferred := r.URL.Query().Get("section")
	ordered := make([]int, 0, len(sections))
	for i, sec := range sections {
		if sec.Name == preferred {
			ordered = append([]int{i}, ordered...)
		} else {
			ordered = append(ordered, i)
		}
	}

	for _, i := range ordered {
		sec := sections[i]
		if slug, ok := sec.PageWithAnchor(fragment); ok {
			writeJSON(w, http.StatusOK, anchorResponse{
				Section: sec.Name,
				Slug:    slug,
				Path:    sec.Router.RelativePath(slug) + "#" + fragment,
			})
			return
		}
	}
	writeError(w, http.StatusNotFound, "anchor not found")
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
