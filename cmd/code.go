package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gitgrade/gitgrade/core"
	"github.com/gitgrade/gitgrade/internal/contract"
	"github.com/gitgrade/gitgrade/schema"
)

// codeSetup loads minimal configuration needed for the code scan.
// The scan works on any directory, so there is no Git repo validation
// and no persistence layer involved.
func codeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	cfg.Output = schema.OutputMode(strings.ToLower(viper.GetString("output")))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Width = viper.GetInt("width")

	colors, err := contract.ParseBoolString(viper.GetString("color"))
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.CodeExcludeFolders = splitFlagList(viper.GetString("exclude-folders"))
	cfg.CodeExcludeFiles = splitFlagList(viper.GetString("exclude-code-files"))
	return nil
}

// splitFlagList splits a comma-separated flag value into clean tokens.
func splitFlagList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// codeSetupWrapper wraps codeSetup to provide PreRunE for the code command.
func codeSetupWrapper(_ *cobra.Command, _ []string) error {
	return codeSetup()
}

// codeCmd scans a directory tree for line and complexity statistics.
var codeCmd = &cobra.Command{
	Use:   "code [path]",
	Short: "Scan source files for line counts and complexity estimates.",
	Long: `Walk a directory tree and estimate per-file code statistics.

For each recognized source file this reports:
- Non-blank line count
- Number of function definitions
- Estimated cyclomatic complexity (branch keywords per function)

No Git history is consulted, so this works on any checkout or even
unversioned code. Common build and dependency folders are skipped
automatically.

Examples:
  # Scan the current directory
  gitgrade code

  # Scan a subtree, skipping generated code
  gitgrade code ./src --exclude-folders "gen,testdata"

  # CSV export for spreadsheets
  gitgrade code --output csv --output-file complexity.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: codeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}
		if err := core.ExecuteCode(rootCtx, cfg, path); err != nil {
			contract.LogFatal("Cannot run code scan", err)
		}
	},
}
