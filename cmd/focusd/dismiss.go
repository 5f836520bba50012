package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/focusd/internal/config"
)

var dismissCmd = &cobra.Command{
	Use:   "dismiss <kind> <id>",
	Short: "Dismiss a focus signal",
	Long: `Dismiss a focus signal so it stops appearing in future evaluations.

The kind and id come from the evaluate output. Dismissing the same signal
twice keeps the original dismissal time.

Examples:
  # Dismiss an overdue 1:1 signal
  focusd dismiss cadence-due rule-42

  # Dismiss a composite signal
  focusd dismiss events-without-prep ev-1,ev-7`,
	Args: cobra.ExactArgs(2),
	RunE: runDismiss,
}

func runDismiss(cmd *cobra.Command, args []string) error {
	kind, id := args[0], args[1]
	if kind == "" || id == "" {
		return fmt.Errorf("kind and id cannot be empty")
	}

	a, err := initApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.Dismissal.Backend == config.BackendMemory {
		a.logger.Warn("memory backend does not persist dismissals across runs",
			zap.String("hint", "set dismissal.backend to redis"),
		)
	}

	if err := a.store.Record(context.Background(), kind, id); err != nil {
		return fmt.Errorf("failed to record dismissal: %w", err)
	}

	fmt.Printf("Dismissed %s %s for user %s\n", kind, id, a.cfg.Dismissal.User)
	return nil
}
