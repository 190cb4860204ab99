package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchDocsTool defines the search_docs MCP tool.
var searchDocsTool = mcp.NewTool("search_docs",
	mcp.WithDescription("Search the research pages by case-insensitive substring. Returns matching pages and sections with their links."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Text to look for"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
	mcp.WithString("section",
		mcp.Description("Restrict results to one site section"),
		mcp.Enum("proxies", "mpc"),
	),
)

// getPageTool defines the get_page MCP tool.
var getPageTool = mcp.NewTool("get_page",
	mcp.WithDescription("Get a research page by id, with its table of contents. Unknown ids return the section home."),
	mcp.WithString("page_id",
		mcp.Required(),
		mcp.Description("Page id or slug, e.g. proxies-storage"),
	),
	mcp.WithString("section",
		mcp.Description("Site section the id belongs to (default proxies)"),
		mcp.Enum("proxies", "mpc"),
	),
)

// listPagesTool defines the list_pages MCP tool.
var listPagesTool = mcp.NewTool("list_pages",
	mcp.WithDescription("List every page of the research site as a navigation tree."),
	mcp.WithString("section",
		mcp.Description("Only list one site section"),
		mcp.Enum("proxies", "mpc"),
	),
)
