package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/yacademy/researchsite/internal/content"
	"github.com/yacademy/researchsite/internal/nav"
	"github.com/yacademy/researchsite/internal/resolve"
	"github.com/yacademy/researchsite/internal/search"
	"github.com/yacademy/researchsite/internal/view"
)

// handleSearchDocs runs a substring search over the index.
func (s *Server) handleSearchDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query must not be blank"), nil
	}

	section := request.GetString("section", "")
	if section != "" {
		if _, ok := s.section(section); !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown section %q", section)), nil
		}
	}

	results := s.engine.SearchSection(query, section)
	if limit := request.GetInt("limit", 0); limit > 0 && limit < len(results) {
		results = results[:limit]
	}

	if len(results) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No results found for %q.", query)), nil
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleGetPage resolves a page id the same way the site does.
func (s *Server) handleGetPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("page_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: page_id"), nil
	}

	name := request.GetString("section", nav.SectionProxies)
	sec, ok := s.section(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown section %q", name)), nil
	}

	p := sec.Build(sec.NewState(id))
	return mcp.NewToolResultText(formatPage(sec, p)), nil
}

// handleListPages returns the navigation tree of each section.
func (s *Server) handleListPages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	only := request.GetString("section", "")
	if only != "" {
		if _, ok := s.section(only); !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown section %q", only)), nil
		}
	}

	var sb strings.Builder
	for _, sec := range s.sections {
		if only != "" && sec.Name != only {
			continue
		}
		sb.WriteString(fmt.Sprintf("# %s (%s)\n", sec.Title, sec.Name))
		listed := make(map[string]bool)
		for _, it := range sec.Sidebar {
			listed[it.ID] = true
			sb.WriteString(fmt.Sprintf("- %s: %s%s\n", it.ID, it.Title, availability(sec, it.ID)))
			for _, c := range it.Children {
				listed[c.ID] = true
				sb.WriteString(fmt.Sprintf("  - %s: %s%s\n", c.ID, c.Title, availability(sec, c.ID)))
			}
		}
		for _, r := range sec.Records {
			if !listed[r.Slug] {
				sb.WriteString(fmt.Sprintf("- %s: %s\n", r.Slug, r.Title))
			}
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(strings.TrimRight(sb.String(), "\n") + "\n"), nil
}

// availability marks sidebar entries that have no page of their own yet.
func availability(sec *view.Section, id string) string {
	if id == nav.HomeID {
		return ""
	}
	switch _, src := sec.Resolver.ResolveSource(id); src {
	case resolve.SourceHome:
		return " (not written yet)"
	case resolve.SourceFallback:
		return " (placeholder)"
	}
	return ""
}

// formatSearchResults converts search results into a text format suited
// to AI agent consumption.
func formatSearchResults(results []search.Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("\n--- Result %d ---\n", i+1))
		sb.WriteString(fmt.Sprintf("Title: %s\n", r.Title))
		if r.PageTitle != "" {
			sb.WriteString(fmt.Sprintf("Page: %s\n", r.PageTitle))
		}
		sb.WriteString(fmt.Sprintf("Type: %s\n", r.Type))
		sb.WriteString(fmt.Sprintf("Path: %s\n", r.Path))
		if r.Category != "" {
			sb.WriteString(fmt.Sprintf("Category: %s\n", r.Category))
		}
		sb.WriteString("\n")
		sb.WriteString(content.PlainText(r.Content))
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatPage renders a resolved page as markdown-flavoured text. The raw
// markdown is preferred when the page was loaded from a file.
func formatPage(sec *view.Section, p *view.Page) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", p.Record.Title))
	sb.WriteString(fmt.Sprintf("Section: %s\n", sec.Name))
	sb.WriteString(fmt.Sprintf("Path: %s\n", sec.Router.PathFor(p.ID)))
	sb.WriteString(fmt.Sprintf("Source: %s\n", p.Source))
	if p.Breadcrumb != nil {
		sb.WriteString(fmt.Sprintf("Breadcrumb: %s\n", p.Breadcrumb))
	}
	if p.Record.Description != "" {
		sb.WriteString(fmt.Sprintf("Description: %s\n", p.Record.Description))
	}

	if len(p.TOC) > 0 {
		sb.WriteString("\n## Contents\n")
		for _, l := range p.TOC {
			sb.WriteString(fmt.Sprintf("- %s (%s)\n", l.Title, l.Href))
		}
	}

	sb.WriteString("\n")
	if p.Record.Markdown != "" {
		sb.WriteString(p.Record.Markdown)
	} else {
		sb.WriteString(content.PlainText(content.StripTags(p.Body)))
	}
	sb.WriteString("\n")
	return sb.String()
}
