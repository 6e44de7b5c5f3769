// Package cmd defines the command-line interface for gitgrade.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gitgrade/gitgrade/internal/contract"
	"github.com/gitgrade/gitgrade/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(authorsCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(codeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(runsCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("older", "", "Older Git reference bounding the commit range")
	rootCmd.PersistentFlags().String("newer", "", "Newer Git reference bounding the commit range")
	rootCmd.PersistentFlags().Int("max-commits", schema.DefaultMaxCommits, "Maximum number of commits to traverse")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of file tokens to ignore")
	rootCmd.PersistentFlags().String("exclude-match", "", "Exclude match policies: basename, substring, suffix (comma-separated)")
	rootCmd.PersistentFlags().StringP("authors", "a", "", "Comma-separated author allow-list (case-insensitive)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextMode), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("runs-backend", "", "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("runs-db-connect", "", "Database connection string for run tracking (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of authorsCmd to Viper
	authorsCmd.Flags().Int("recent", contract.DefaultRecentLimit, "Number of recent commits to show under the score table (0 = off)")
	if err := viper.BindPFlags(authorsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding authors flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultServeAddr, "Listen address for the HTTP API")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of codeCmd to Viper
	codeCmd.Flags().String("exclude-folders", "", "Comma-separated folder names to skip during the code scan")
	codeCmd.Flags().String("exclude-code-files", "", "Comma-separated file names to skip during the code scan")
	if err := viper.BindPFlags(codeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding code flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
