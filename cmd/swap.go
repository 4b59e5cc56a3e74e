package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/storage"
)

var swapClear bool

var swapExerciseCmd = &cobra.Command{
	Use:   "swap [slot] [exercise-name]",
	Short: "Pin an exercise to a slot (e.g. a_lower, upper_push) and switch to manual planning",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot := strings.ToLower(strings.TrimSpace(args[0]))
		if !models.IsSlotKey(slot) {
			return fmt.Errorf("Unknown slot %q. Slots are <layout>_<role> with layouts %s and roles %s",
				args[0], strings.Join(models.SlotLayouts, ", "), strings.Join(models.SlotRoles, ", "))
		}
		if !swapClear && len(args) != 2 {
			return fmt.Errorf("Missing exercise name (or pass --clear)")
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

		name := ""
		if !swapClear {
			lib, err := a.store.Library(ctx)
			if err != nil {
				return err
			}
			ex, ok := lib.Lookup(args[1])
			if !ok {
				return fmt.Errorf("Failed to find exercise %s", args[1])
			}
			if slices.ContainsFunc(st.ExerciseConfig.DisabledExercises, func(d string) bool { return strings.EqualFold(d, ex.Name) }) {
				fmt.Printf("Warning: %s is disabled and will be skipped by the generator\n", ex.Name)
			}
			name = ex.Name
		}

		manual := string(models.PlanningManual)
		patch := storage.OverridesPatch{SessionOverrides: map[string]string{slot: name}}
		if !swapClear {
			patch.PlanningMode = &manual
		}
		next, err := a.store.SetOverrides(ctx, expectedRev(cmd), patch)
		if err != nil {
			return fmt.Errorf("Failed to save slot: %w", err)
		}

		if swapClear {
			printRev(st.Rev, next, "Cleared slot "+slot)
		} else {
			printRev(st.Rev, next, fmt.Sprintf("Swapped %s to %s", slot, name))
		}
		return nil
	},
}

func init() {
	swapExerciseCmd.Flags().BoolVar(&swapClear, "clear", false, "Remove the pinned exercise from the slot")
	addExpectedRev(swapExerciseCmd)
	rootCmd.AddCommand(swapExerciseCmd)
}
