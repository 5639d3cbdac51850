package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/duskforge/triad/gclog"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	noColor bool

	optionsFile string
)

var rootCmd = &cobra.Command{
	Use:   "gcctl",
	Short: "Drive and inspect the incremental object collector",
	Long: `gcctl is a diagnostics tool for the incremental mark-and-sweep
collector. It can drive collection cycles against a synthetic object graph,
walk live collector state for invariant violations, and report accountant
and pacing statistics.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// --verbose doubles as the switch for the gc package's own
		// phase-transition logging, not just this binary's printVerbose
		// output, so a user chasing a pacing bug sees both at once.
		gclog.Init(gclog.Options{Enabled: verbose, Level: slog.LevelDebug, Writer: os.Stderr})
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().
		StringVar(&optionsFile, "options", "", "YAML tunables file (pause/stepMul/finalGC)")
}

// ANSI color codes for the text report; colorize is a no-op when --no-color
// is set or when the report is destined for something other than a human
// (--json callers never go through it).
const (
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiReset  = "\033[0m"
)

// colorize wraps s in the given ANSI color code unless --no-color was set.
func colorize(code, s string) string {
	if noColor {
		return s
	}
	return code + s + ansiReset
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
