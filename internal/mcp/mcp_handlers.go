package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gitgrade/gitgrade/core"
	"github.com/gitgrade/gitgrade/internal/contract"
	"github.com/gitgrade/gitgrade/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	source  contract.CommitSource
	mgr     contract.CacheManager
}

// requestConfig clones the base config and applies the shared range arguments.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if older := request.GetString("older", ""); older != "" {
		cfg.OlderRef = older
	}
	if newer := request.GetString("newer", ""); newer != "" {
		cfg.NewerRef = newer
	}
	// Recent commit listings are for the interactive path only.
	cfg.RecentLimit = 0
	return cfg
}

func (h *toolHandler) handleScoreAuthors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.requestConfig(request)
	if authors := request.GetString("authors", ""); authors != "" {
		cfg.FilterAuthors = nil
		for _, a := range strings.Split(authors, ",") {
			if a = strings.TrimSpace(a); a != "" {
				cfg.FilterAuthors = append(cfg.FilterAuthors, a)
			}
		}
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	report, err := core.AnalyzeHistory(core.WithSuppressHeader(ctx), cfg, h.source, h.mgr, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	scores := report.AuthorScores
	if cfg.ResultLimit > 0 && len(scores) > cfg.ResultLimit {
		scores = scores[:cfg.ResultLimit]
	}

	jsonData, _ := json.MarshalIndent(struct {
		Summary      schema.HistorySummary        `json:"summary"`
		AuthorScores []schema.EnrichedScoreResult `json:"author_scores"`
	}{
		Summary:      report.Summary,
		AuthorScores: schema.EnrichScores(scores),
	}, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTopFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.requestConfig(request)

	report, err := core.AnalyzeHistory(core.WithSuppressHeader(ctx), cfg, h.source, h.mgr, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(struct {
		TopChangedFiles    []schema.FileChangeCount  `json:"top_changed_files"`
		ChangeDistribution schema.ChangeDistribution `json:"change_distribution"`
	}{
		TopChangedFiles:    report.TopChangedFiles,
		ChangeDistribution: report.ChangeDistribution,
	}, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetActivityTimeline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.requestConfig(request)

	report, err := core.AnalyzeHistory(core.WithSuppressHeader(ctx), cfg, h.source, h.mgr, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report.DeveloperActivity, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
