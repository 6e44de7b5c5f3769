package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gitgrade/gitgrade/core"
	"github.com/gitgrade/gitgrade/internal/contract"
)

// timelineCmd shows the author-by-month activity matrix.
var timelineCmd = &cobra.Command{
	Use:   "timeline [repo-path]",
	Short: "Show the author-by-month commit activity matrix.",
	Long: `Build a dense month-by-author matrix of commit counts.

Every month between the oldest and newest commit appears, including
quiet ones, so gaps in activity are visible at a glance.

Examples:
  # Activity matrix for the current repository
  gitgrade timeline

  # Narrow to a release window and two developers
  gitgrade timeline --older v1.0.0 --newer v2.0.0 --authors "alice,bob"

  # Machine-readable form for dashboards
  gitgrade timeline --output json --output-file activity.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTimeline(rootCtx, cfg, contract.NewLocalGitClient(), cacheManager); err != nil {
			contract.LogFatal("Cannot run timeline analysis", err)
		}
	},
}
