// Package mcp exposes the research pages to AI agents over the Model
// Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/yacademy/researchsite/internal/content"
	"github.com/yacademy/researchsite/internal/search"
	"github.com/yacademy/researchsite/internal/site"
	"github.com/yacademy/researchsite/internal/view"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes research search tools.
type Server struct {
	engine   *search.Engine
	sections []*view.Section
	logger   *zap.Logger
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server over corpus. A nil corpus serves the
// synthesized pages only.
func NewServer(corpus *content.Corpus, logger *zap.Logger, opts ...search.Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := search.NewEngine(corpus, append([]search.Option{search.WithLogger(logger)}, opts...)...)
	s := &Server{
		engine:   engine,
		sections: site.Sections(corpus, engine, ""),
		logger:   logger,
	}

	s.mcp = server.NewMCPServer(
		"researchsite",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchDocsTool, s.handleSearchDocs)
	s.mcp.AddTool(getPageTool, s.handleGetPage)
	s.mcp.AddTool(listPagesTool, s.handleListPages)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	s.logger.Info("mcp server starting on stdio", zap.Int("search_entries", s.engine.Len()))
	return server.ServeStdio(s.mcp)
}

func (s *Server) section(name string) (*view.Section, bool) {
	for _, sec := range s.sections {
		if sec.Name == name {
			return sec, true
		}
	}
	return nil, false
}
