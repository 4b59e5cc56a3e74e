package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteWorkoutCmd = &cobra.Command{
	Use:   "delete-workout [date]",
	Short: "Delete the workout on a date from its week's plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := context.Background()
		st, err := a.store.Load(ctx)
		if err != nil {
			return err
		}
		p, err := resolvePerson(st, personFlag)
		if err != nil {
			return err
		}

		next, err := a.store.DeleteWorkout(ctx, expectedRev(cmd), p.ID, args[0])
		if err != nil {
			return fmt.Errorf("Failed to delete workout: %w", err)
		}
		printRev(st.Rev, next, fmt.Sprintf("Workout on %s deleted", args[0]))
		return nil
	},
}

func init() {
	addExpectedRev(deleteWorkoutCmd)
	rootCmd.AddCommand(deleteWorkoutCmd)
}
