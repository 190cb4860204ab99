package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/yacademy/researchsite/internal/content"
	"github.com/yacademy/researchsite/internal/search"
)

func testCorpus() *content.Corpus {
	records := []content.Record{
		{
			Slug: "proxies-storage", Title: "Proxies Storage", Category: "proxies", Section: "proxies",
			ContentHTML: content.BuildTOC([]content.Heading{{ID: "slots", Title: "Slots", Level: 2}}) +
				`<h2 id="slots">Slots</h2><p>EIP-1967 storage slots.</p>`,
			Sections: []content.Section{{Title: "Slots", Content: "EIP-1967 storage slots.", Anchor: "slots"}},
			Markdown: "## Slots\n\nEIP-1967 storage slots.\n",
		},
		{
			Slug: "upgrade-patterns", Title: "Upgrade Patterns", Category: "proxies", Section: "proxies",
			ContentHTML: "<p>UUPS keeps upgrade logic in the implementation.</p>",
		},
		{
			Slug: "protocol-basics", Title: "Protocol Basics", Category: "mpc", Section: "mpc",
			ContentHTML: "<p>Shares of a storage key.</p>",
		},
	}
	return &content.Corpus{Records: records, SearchIndex: content.BuildSearchIndex(records)}
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}

// extractText gets the text content from a CallToolResult.
func extractText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"search_docs", searchDocsTool, "search_docs"},
		{"get_page", getPageTool, "get_page"},
		{"list_pages", listPagesTool, "list_pages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := NewServer(testCorpus(), nil)
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.engine.Len() != 4 {
		t.Errorf("search entries = %d, want 4", srv.engine.Len())
	}
	if len(srv.sections) != 2 {
		t.Errorf("sections = %d, want 2", len(srv.sections))
	}
}

func TestHandleSearchDocs(t *testing.T) {
	srv := NewServer(testCorpus(), nil)

	t.Run("basic search", func(t *testing.T) {
		result := callTool(t, srv.handleSearchDocs, map[string]any{"query": "storage"})
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := extractText(result)
		if !strings.HasPrefix(text, "Found 3 result(s):") {
			t.Errorf("unexpected header: %q", text)
		}
		if !strings.Contains(text, "Path: /proxies/proxies-storage#slots") {
			t.Errorf("section result missing its anchor path:\n%s", text)
		}
	})

	t.Run("limit and section", func(t *testing.T) {
		result := callTool(t, srv.handleSearchDocs, map[string]any{"query": "storage", "limit": 1, "section": "proxies"})
		text := extractText(result)
		if !strings.HasPrefix(text, "Found 1 result(s):") || !strings.Contains(text, "Title: Proxies Storage") {
			t.Errorf("unexpected result:\n%s", text)
		}
	})

	t.Run("no results", func(t *testing.T) {
		result := callTool(t, srv.handleSearchDocs, map[string]any{"query": "zk-snark"})
		if result.IsError {
			t.Error("empty results should not be an error")
		}
		if !strings.Contains(extractText(result), "No results found") {
			t.Errorf("unexpected text: %q", extractText(result))
		}
	})

	t.Run("missing query", func(t *testing.T) {
		if !callTool(t, srv.handleSearchDocs, map[string]any{}).IsError {
			t.Error("expected error for missing query")
		}
	})

	t.Run("blank query", func(t *testing.T) {
		if !callTool(t, srv.handleSearchDocs, map[string]any{"query": "  "}).IsError {
			t.Error("expected error for blank query")
		}
	})

	t.Run("unknown section", func(t *testing.T) {
		if !callTool(t, srv.handleSearchDocs, map[string]any{"query": "x", "section": "zk"}).IsError {
			t.Error("expected error for unknown section")
		}
	})
}

func TestHandleSearchDocsSynthesizedIndex(t *testing.T) {
	corpus := &content.Corpus{Records: []content.Record{
		{Slug: "proxy-basics", Title: "Proxy Basics", Section: "proxies", ContentHTML: "<p>Tom &amp; &quot;Jerry&quot;</p>"},
	}}
	srv := NewServer(corpus, nil)

	result := callTool(t, srv.handleSearchDocs, map[string]any{"query": "jerry", "section": "proxies"})
	text := extractText(result)
	if !strings.HasPrefix(text, "Found 1 result(s):") {
		t.Fatalf("section search must find the page:\n%s", text)
	}
	if !strings.Contains(text, `Tom & "Jerry"`) || strings.Contains(text, "&amp;") {
		t.Errorf("content must be plain text:\n%s", text)
	}
}

func TestHandleSearchDocsConfiguredLimit(t *testing.T) {
	srv := NewServer(testCorpus(), nil, search.WithLimit(2))
	text := extractText(callTool(t, srv.handleSearchDocs, map[string]any{"query": "storage", "limit": 50}))
	if !strings.HasPrefix(text, "Found 2 result(s):") {
		t.Errorf("configured limit not applied:\n%s", text)
	}
}

func TestHandleGetPage(t *testing.T) {
	srv := NewServer(testCorpus(), nil)

	t.Run("record", func(t *testing.T) {
		text := extractText(callTool(t, srv.handleGetPage, map[string]any{"page_id": "proxies-storage"}))
		for _, want := range []string{
			"# Proxies Storage",
			"Source: record",
			"Breadcrumb: Proxies Deep Dive / Proxies Storage",
			"## Contents\n- Slots (#slots)",
			"EIP-1967 storage slots.",
		} {
			if !strings.Contains(text, want) {
				t.Errorf("page text missing %q:\n%s", want, text)
			}
		}
	})

	t.Run("fallback", func(t *testing.T) {
		text := extractText(callTool(t, srv.handleGetPage, map[string]any{"page_id": "security-guide"}))
		if !strings.Contains(text, "Source: fallback") || !strings.Contains(text, "(#function-clashing-vulnerability)") {
			t.Errorf("unexpected fallback page:\n%s", text)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		result := callTool(t, srv.handleGetPage, map[string]any{"page_id": "nope"})
		if result.IsError {
			t.Fatal("unknown ids resolve to the home page")
		}
		if !strings.Contains(extractText(result), "# yAcademy Proxies Research") {
			t.Errorf("unexpected page:\n%s", extractText(result))
		}
	})

	t.Run("mpc", func(t *testing.T) {
		text := extractText(callTool(t, srv.handleGetPage, map[string]any{"page_id": "vulnerability-guide", "section": "mpc"}))
		if !strings.Contains(text, "Coming Soon") {
			t.Errorf("expected a coming-soon stub:\n%s", text)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		if !callTool(t, srv.handleGetPage, map[string]any{}).IsError {
			t.Error("expected error for missing page_id")
		}
	})
}

func TestHandleListPages(t *testing.T) {
	srv := NewServer(testCorpus(), nil)

	text := extractText(callTool(t, srv.handleListPages, map[string]any{}))
	for _, want := range []string{
		"# Proxies Research (proxies)",
		"- home: yAcademy Proxies Research\n",
		"- proxy-basics: Proxy Basics (not written yet)",
		"  - proxies-storage: Proxies Storage\n",
		"- security-guide: Security Guide to Proxy Vulns (placeholder)",
		"- upgrade-patterns: Upgrade Patterns",
		"# MPC Research (mpc)",
		"- protocol-basics: Protocol Basics\n",
		"  - implementation-guide: Implementation Guide (placeholder)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("list missing %q:\n%s", want, text)
		}
	}

	only := extractText(callTool(t, srv.handleListPages, map[string]any{"section": "mpc"}))
	if strings.Contains(only, "proxies") {
		t.Errorf("section filter ignored:\n%s", only)
	}
}
