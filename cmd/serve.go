package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gitgrade/gitgrade/internal/contract"
	"github.com/gitgrade/gitgrade/internal/httpserver"
)

// serveCmd exposes the analysis pipeline over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve [repo-path]",
	Short: "Start the gitgrade HTTP API server.",
	Long: `Serve the analysis pipeline over a small HTTP API.

Endpoints:
  POST /api/analyze/git   - run history analysis, returns the full report
  POST /api/analyze/code  - run the code scan for a directory tree
  GET  /api/health        - liveness probe
  GET  /api/progress      - server-sent-events stream of analysis progress

The repository given on the command line (or the current directory) is
the default target; requests may override it per call.

Examples:
  # Serve on the default port
  gitgrade serve

  # Serve a specific repository on another port
  gitgrade serve ~/code/myrepo --addr :9090`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := httpserver.New(cfg, contract.NewLocalGitClient(), cacheManager)
		fmt.Printf("Serving gitgrade API on %s\n", cfg.ServeAddr)
		return srv.Run(ctx)
	},
}
