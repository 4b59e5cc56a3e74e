package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCycleCmd = &cobra.Command{
	Use:   "delete-cycle",
	Short: "Remove a person's cycle and every workout inside its window",
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
		if p.Cycle == nil {
			return fmt.Errorf("%s has no cycle", p.Name)
		}

		next, err := a.store.DeleteCycle(ctx, expectedRev(cmd), p.ID)
		if err != nil {
			return fmt.Errorf("Failed to delete cycle: %w", err)
		}
		printRev(st.Rev, next, fmt.Sprintf("Cycle from %s deleted for %s", p.Cycle.StartWeek, p.Name))
		return nil
	},
}

func init() {
	addExpectedRev(deleteCycleCmd)
	rootCmd.AddCommand(deleteCycleCmd)
}
