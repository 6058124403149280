// Package cli implements the cobra-based CLI commands for flightcal.
//
// Each subcommand (lookup, export, timezones, history, serve) is defined
// in its own file within this package. This file defines the root command
// that serves as the parent for all subcommands and handles global flags.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/flightcal/internal/model"
)

// Global flag variables shared across all subcommands. These are bound to
// cobra persistent flags on the root command, which makes them available
// to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When false (default), output uses human-readable text format.
	jsonOutput bool

	// verbose enables debug logging on stderr in addition to the log file.
	verbose bool

	// configPath points at an explicit config file. Empty means the
	// standard locations are probed.
	configPath string
)

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flightcal",
		Short: "Flight schedule lookup and iCalendar generator",
		Long: `flightcal looks up scheduled flights by flight number and turns them into
iCalendar (.ics) events with correct airport-local times, ready to import
into any calendar app.

When no schedule entry exists for the requested date, flightcal guesses
from the route's schedule history and clearly flags the result.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// Execute formats errors itself (text or JSON based on --json).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (.jsonc, .json, .yaml, .yml)")

	rootCmd.AddCommand(NewLookupCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewTimezonesCommand())
	rootCmd.AddCommand(NewHistoryCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes. CLIError values
// carry their own exit codes; other errors default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag. Errors go to stderr
// even in JSON mode, because stdout is reserved for command output.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}

// printJSON writes a value as indented JSON to stdout.
func printJSON(v interface{}) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(data))
}
