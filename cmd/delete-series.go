package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var seriesWeeks int

var deleteSeriesCmd = &cobra.Command{
	Use:   "delete-series [start-date]",
	Short: "Delete the workouts on the same weekday across consecutive weeks",
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

		next, err := a.store.DeleteWorkoutSeries(ctx, expectedRev(cmd), p.ID, args[0], seriesWeeks)
		if err != nil {
			return fmt.Errorf("Failed to delete series: %w", err)
		}
		printRev(st.Rev, next, fmt.Sprintf("Deleted up to %d workouts from %s", seriesWeeks, args[0]))
		return nil
	},
}

func init() {
	deleteSeriesCmd.Flags().IntVarP(&seriesWeeks, "weeks", "w", 4, "Number of weeks (1-52)")
	addExpectedRev(deleteSeriesCmd)
	rootCmd.AddCommand(deleteSeriesCmd)
}
