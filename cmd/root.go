package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel      string   // Log verbosity level
	configPath    string   // Path to a YAML analysis config; empty uses the built-in defaults
	jsonOutput    bool     // Emit JSON instead of text
	versionLabels []string // Dataset labels in argument order; defaults to file base names

	// cfg is the analysis configuration resolved before every command runs.
	cfg = DefaultConfig()
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "perftrend",
	Short: "Latency and memory trend analysis for application performance logs",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		loaded, err := LoadConfig(configPath)
		if err != nil {
			logrus.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	},
}

// Execute runs the CLI root command. An interrupt cancels in-flight analyses.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// wantJSON reports whether output should be JSON, from the flag or the config.
func wantJSON() bool {
	return jsonOutput || cfg.Output == outputJSON
}

// labelFor returns the user-supplied label for the i-th log argument, or "" to use the file name.
func labelFor(i int) string {
	if i < len(versionLabels) {
		return versionLabels[i]
	}
	return ""
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to analysis config YAML (defaults to built-in settings)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Write results as JSON")
	rootCmd.PersistentFlags().StringSliceVar(&versionLabels, "version-label", nil, "Comma-separated dataset labels in argument order (default: file base names)")

	rootCmd.AddCommand(analyzeCmd, trendCmd, driftCmd, compareCmd, gradeCmd)
}
