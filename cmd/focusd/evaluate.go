package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/focusd/internal/focus"
)

var evalLimit int

func init() {
	evaluateCmd.Flags().IntVar(&evalLimit, "limit", 0, "Maximum number of signals to return (default from config)")
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [snapshot]",
	Short: "Rank focus signals from a workspace snapshot",
	Long: `Evaluate a workspace snapshot and print the ranked focus list.

The snapshot is a JSON document holding the cadence rules, open actions,
today's events, people, challenges, and suggestions to evaluate.

Examples:
  # Evaluate a snapshot file
  focusd evaluate snapshot.json

  # Evaluate from stdin
  workspace export | focusd evaluate -

  # Reproducible run with a fixed clock
  focusd evaluate snapshot.json --now 2026-08-30T09:00:00Z

  # Output as JSON
  focusd evaluate snapshot.json --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEvaluate,
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	now, err := evaluationTime()
	if err != nil {
		return err
	}

	snap, err := readSnapshot(args)
	if err != nil {
		return err
	}

	a, err := initApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if evalLimit > 0 {
		svc, err := focus.NewService(&focus.Config{
			Limit:              evalLimit,
			UpcomingWindowDays: a.cfg.Focus.UpcomingWindowDays,
			UpcomingLimit:      a.cfg.Focus.UpcomingLimit,
		}, a.store, a.logger)
		if err != nil {
			return fmt.Errorf("failed to create focus service: %w", err)
		}
		a.svc = svc
	}

	signals, err := a.svc.Evaluate(context.Background(), snap, now)
	if err != nil {
		return fmt.Errorf("failed to evaluate snapshot: %w", err)
	}

	if outputJSONFlag {
		return outputJSON(signals)
	}

	if len(signals) == 0 {
		fmt.Println("Nothing needs attention right now.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRIORITY\tKIND\tID\tTITLE")
	for _, s := range signals {
		fmt.Fprintf(w, "%.2f\t%s\t%s\t%s\n", s.Priority, s.Kind, s.ID, s.Title)
	}
	return w.Flush()
}
