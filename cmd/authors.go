package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gitgrade/gitgrade/core"
	"github.com/gitgrade/gitgrade/internal/contract"
)

// authorsCmd performs the per-author quality scoring.
var authorsCmd = &cobra.Command{
	Use:   "authors [repo-path]",
	Short: "Grade each author's commit behavior, quality and activity.",
	Long: `Mine Git history and rank authors by a composite quality grade.

Each author receives three banded sub-scores:
- Behavior (40%) - commit size discipline, message quality, rework habits
- Quality (30%)  - contribution balance, file spread, churn profile
- Activity (30%) - cadence, active months, recency

The total maps to a letter grade from S (exceptional) down to D.

Examples:
  # Grade everyone who touched the current repository
  gitgrade authors

  # Grade a release window
  gitgrade authors --older v1.0.0 --newer v2.0.0

  # Focus on two developers, JSON output
  gitgrade authors --authors "alice,bob" --output json

  # Export the full table to CSV for tracking
  gitgrade authors --output csv --output-file grades.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAuthors(rootCtx, cfg, contract.NewLocalGitClient(), cacheManager); err != nil {
			contract.LogFatal("Cannot run author analysis", err)
		}
	},
}
