package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gitgrade/gitgrade/internal/contract"
	"github.com/gitgrade/gitgrade/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [repo-path]",
	Short: "Start the gitgrade MCP server",
	Long:  `Launch an MCP server that allows AI agents to run gitgrade analysis via standard tools.`,
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The protocol owns stdio, so the analysis must not print its
		// normal header there.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, contract.NewLocalGitClient(), cacheManager)
	},
}
