package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/weekplan/internal/utils"
)

var archiveWeekCmd = &cobra.Command{
	Use:   "archive-week [week-start]",
	Short: "Copy a week's completed workouts into history (default: previous week)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		week := utils.FormatDate(a.svc.WeekStartForOffset(-1))
		if len(args) == 1 {
			week = args[0]
		}

		ctx := context.Background()
		st, err := a.store.Load(ctx)
		if err != nil {
			return err
		}
		next, err := a.store.ArchiveWeek(ctx, expectedRev(cmd), week)
		if err != nil {
			return fmt.Errorf("Failed to archive week: %w", err)
		}
		printRev(st.Rev, next, "Archived week of "+week)
		return nil
	},
}

func init() {
	addExpectedRev(archiveWeekCmd)
	rootCmd.AddCommand(archiveWeekCmd)
}
