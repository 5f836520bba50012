// Package main implements the focusd CLI for evaluating leadership focus
// recommendations from a workspace snapshot.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	// configPath is the config file location, empty means the default path
	configPath string
	// nowFlag overrides the evaluation clock for reproducible runs
	nowFlag string
	// outputJSONFlag switches output to JSON
	outputJSONFlag bool
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "focusd",
	Short: "Leadership focus and cadence recommendations",
	Long: `focusd evaluates a workspace snapshot and recommends where a lead
should focus next: overdue 1:1s, offboarding employees, events missing
prep notes, upcoming birthdays, and more.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/focusd/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&nowFlag, "now", "", "evaluation time as RFC 3339 (default wall clock)")
	rootCmd.PersistentFlags().BoolVar(&outputJSONFlag, "json", false, "Output results as JSON")
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(upcomingCmd)
	rootCmd.AddCommand(dismissCmd)
}

// evaluationTime resolves --now, falling back to the wall clock.
func evaluationTime() (time.Time, error) {
	if nowFlag == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, nowFlag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now value %q: %w", nowFlag, err)
	}
	return t, nil
}

// outputJSON marshals v as indented JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
