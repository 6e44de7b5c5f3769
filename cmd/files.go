package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gitgrade/gitgrade/core"
	"github.com/gitgrade/gitgrade/internal/contract"
)

// filesCmd shows the most frequently changed files.
var filesCmd = &cobra.Command{
	Use:   "files [repo-path]",
	Short: "Show the most frequently changed files.",
	Long: `Rank files by how often they appear in commits within the range.

Also prints the change-frequency distribution, bucketing files into
1-5, 6-15, 16-30 and >30 changes. Frequently changed files are where
review attention pays off most.

Examples:
  # Top changed files for the whole history window
  gitgrade files

  # Changes between two releases
  gitgrade files --older v1.0.0 --newer v2.0.0

  # Ignore generated lockfiles
  gitgrade files --exclude "package-lock.json,go.sum"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFiles(rootCtx, cfg, contract.NewLocalGitClient(), cacheManager); err != nil {
			contract.LogFatal("Cannot run file analysis", err)
		}
	},
}
