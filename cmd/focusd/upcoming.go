package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/focusd/internal/focus"
)

var upcomingCmd = &cobra.Command{
	Use:   "upcoming [snapshot]",
	Short: "List upcoming birthdays and work anniversaries",
	Long: `List the birthdays and work anniversaries falling inside the
configured window, soonest first.

Examples:
  # From a snapshot file
  focusd upcoming snapshot.json

  # From stdin with a fixed clock
  workspace export | focusd upcoming - --now 2026-08-30T09:00:00Z`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpcoming,
}

func runUpcoming(cmd *cobra.Command, args []string) error {
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

	events, err := a.svc.Upcoming(context.Background(), snap.People, now)
	if err != nil {
		return fmt.Errorf("failed to list upcoming events: %w", err)
	}

	if outputJSONFlag {
		return outputJSON(events)
	}

	if len(events) == 0 {
		fmt.Printf("No birthdays or anniversaries in the next %d days.\n", a.cfg.Focus.UpcomingWindowDays)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "IN\tDATE\tPERSON\tEVENT")
	for _, e := range events {
		in := fmt.Sprintf("%d days", e.DaysUntil)
		if e.DaysUntil == 0 {
			in = "today"
		}
		label := string(e.Kind)
		if e.Kind == focus.PersonEventAnniversary {
			label = fmt.Sprintf("%d-year anniversary", e.Years)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", in, e.OccursOn.Format("2006-01-02"), e.PersonName, label)
	}
	return w.Flush()
}
