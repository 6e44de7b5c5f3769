package httpserver

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gitgrade/gitgrade/core"
	"github.com/gitgrade/gitgrade/core/codestats"
)

// analyzeGitRequest overrides the base config for one git analysis.
type analyzeGitRequest struct {
	RepoPath   string   `json:"repo_path"`
	Older      string   `json:"older"`
	Newer      string   `json:"newer"`
	Authors    []string `json:"authors"`
	MaxCommits int      `json:"max_commits"`
	Limit      int      `json:"limit"`
}

// analyzeCodeRequest selects the tree for one code scan.
type analyzeCodeRequest struct {
	Path           string   `json:"path" binding:"required"`
	ExcludeFolders []string `json:"exclude_folders"`
	ExcludeFiles   []string `json:"exclude_files"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleAnalyzeGit(c *gin.Context) {
	var req analyzeGitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := s.baseCfg.Clone()
	if req.RepoPath != "" {
		cfg.RepoPath = req.RepoPath
	}
	if req.Older != "" {
		cfg.OlderRef = req.Older
	}
	if req.Newer != "" {
		cfg.NewerRef = req.Newer
	}
	if len(req.Authors) > 0 {
		cfg.FilterAuthors = req.Authors
	}
	if req.MaxCommits > 0 {
		cfg.MaxCommits = req.MaxCommits
	}
	if req.Limit > 0 {
		cfg.ResultLimit = req.Limit
	}
	// Recent commit listings are for the interactive path only.
	cfg.RecentLimit = 0

	ctx := core.WithSuppressHeader(c.Request.Context())
	report, err := core.AnalyzeHistory(ctx, cfg, s.source, s.mgr, s.broker)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if cfg.ResultLimit > 0 && len(report.AuthorScores) > cfg.ResultLimit {
		report.AuthorScores = report.AuthorScores[:cfg.ResultLimit]
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleAnalyzeCode(c *gin.Context) {
	var req analyzeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := codestats.Analyze(req.Path, req.ExcludeFolders, req.ExcludeFiles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// handleProgress streams broker events to the client as SSE until the
// client disconnects.
func (s *Server) handleProgress(c *gin.Context) {
	events, cancel := s.broker.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(_ io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("progress", event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
