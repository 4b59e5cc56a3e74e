package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/storage"
	"github.com/misterclayt0n/weekplan/internal/utils"
)

var (
	newSetWeight float64
	newSetReps   int
)

var addSetCmd = &cobra.Command{
	Use:   "add-set [squat|deadlift|bench]",
	Short: "Log a top set and raise the stored max when its estimated 1RM beats it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lift := strings.ToLower(strings.TrimSpace(args[0]))
		if lift != "squat" && lift != "deadlift" && lift != "bench" {
			return fmt.Errorf("Invalid lift %q. Must be squat, deadlift or bench", args[0])
		}

		estimate := utils.CalculateEpley1RM(newSetWeight, newSetReps)
		if estimate <= 0 {
			return fmt.Errorf("Invalid set. Weight and reps must be positive")
		}

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

		rounded := roundedMax(estimate, p.Units)
		current := currentMax(p.Maxes, lift)
		fmt.Printf("Estimated 1RM: %g%s (stored %g%s)\n", rounded, p.Units, current, p.Units)
		if rounded <= current {
			fmt.Println("No new max")
			return nil
		}

		patch := storage.PersonPatch{ID: p.ID}
		switch lift {
		case "squat":
			patch.Maxes.Squat = &rounded
		case "deadlift":
			patch.Maxes.Deadlift = &rounded
		case "bench":
			patch.Maxes.Bench = &rounded
		}
		next, err := a.store.UpsertPerson(ctx, expectedRev(cmd), patch)
		if err != nil {
			return fmt.Errorf("Failed to update max: %w", err)
		}
		fmt.Printf("✅ New %s max for %s: %g%s ★ (rev %d)\n", lift, p.Name, rounded, p.Units, next.Rev)
		return nil
	},
}

// roundedMax rounds an estimate down to a loadable weight.
func roundedMax(estimate float64, units models.Units) float64 {
	step := units.PlateIncrement()
	return float64(int(estimate/step)) * step
}

func currentMax(m models.Maxes, lift string) float64 {
	switch lift {
	case "squat":
		return m.Squat
	case "deadlift":
		return m.Deadlift
	}
	return m.Bench
}

func init() {
	addSetCmd.Flags().Float64VarP(&newSetWeight, "weight", "w", 0, "Weight lifted")
	addSetCmd.Flags().IntVarP(&newSetReps, "reps", "r", 0, "Reps performed")
	addSetCmd.MarkFlagRequired("weight")
	addSetCmd.MarkFlagRequired("reps")
	addExpectedRev(addSetCmd)
	rootCmd.AddCommand(addSetCmd)
}
