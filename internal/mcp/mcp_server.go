// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gitgrade/gitgrade/internal/contract"
)

// NewMCPServer initializes and configures the gitgrade MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, source contract.CommitSource, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Gitgrade Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		source:  source,
		mgr:     mgr,
	}

	s.AddTool(mcp.NewTool("score_authors",
		mcp.WithDescription("Analyze git history and grade each author's commit behavior, quality and activity."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the configured repository).")),
		mcp.WithString("older", mcp.Description("Older end of the commit range (tag, branch or hash).")),
		mcp.WithString("newer", mcp.Description("Newer end of the commit range (tag, branch or hash).")),
		mcp.WithString("authors", mcp.Description("Comma-separated author allow-list.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of ranked authors returned.")),
	), h.handleScoreAuthors)

	s.AddTool(mcp.NewTool("get_top_files",
		mcp.WithDescription("List the most frequently changed files with the change-frequency distribution."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithString("older", mcp.Description("Older end of the commit range.")),
		mcp.WithString("newer", mcp.Description("Newer end of the commit range.")),
	), h.handleGetTopFiles)

	s.AddTool(mcp.NewTool("get_activity_timeline",
		mcp.WithDescription("Build the author-by-month commit activity matrix."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithString("older", mcp.Description("Older end of the commit range.")),
		mcp.WithString("newer", mcp.Description("Newer end of the commit range.")),
	), h.handleGetActivityTimeline)

	return s
}

// StartMCPServer starts the gitgrade MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, source contract.CommitSource, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, source, mgr)
	return server.ServeStdio(s)
}
