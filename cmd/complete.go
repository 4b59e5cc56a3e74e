package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/weekplan/internal/utils"
)

var completeUndo bool

var completeCmd = &cobra.Command{
	Use:   "complete [date]",
	Short: "Mark a workout as done (default: today)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		date := utils.FormatDate(a.svc.Today())
		if len(args) == 1 {
			date = args[0]
		}

		ctx := context.Background()
		st, err := a.store.Load(ctx)
		if err != nil {
			return err
		}
		p, err := resolvePerson(st, personFlag)
		if err != nil {
			return err
		}

		next, err := a.store.SetWorkoutCompleted(ctx, expectedRev(cmd), p.ID, date, !completeUndo)
		if err != nil {
			return fmt.Errorf("Failed to save workout: %w", err)
		}
		if completeUndo {
			printRev(st.Rev, next, fmt.Sprintf("Workout on %s reopened", date))
		} else {
			printRev(st.Rev, next, fmt.Sprintf("Workout on %s completed", date))
		}
		return nil
	},
}

func init() {
	completeCmd.Flags().BoolVar(&completeUndo, "undo", false, "Mark the workout as not done")
	addExpectedRev(completeCmd)
	rootCmd.AddCommand(completeCmd)
}
