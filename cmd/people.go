package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/weekplan/internal/storage"
	"github.com/misterclayt0n/weekplan/internal/utils"
)

var (
	personName      string
	personColor     string
	personGender    string
	personDuration  int
	personPreferred string
	personEquipment string
	personUnits     string
	personSquat     float64
	personDeadlift  float64
	personBench     float64
)

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "List people",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		st, err := a.store.Load(context.Background())
		if err != nil {
			return err
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		for _, p := range st.People {
			marker := " "
			if p.ID == st.ActivePersonID {
				marker = "*"
			}
			fmt.Printf("%s %s %s\n", marker, yellow(p.Name), cyan(p.ID))
			fmt.Printf("    %s, %d min, %s, maxes squat %g / deadlift %g / bench %g\n",
				p.Gender, p.DurationMinutes, p.Units, p.Maxes.Squat, p.Maxes.Deadlift, p.Maxes.Bench)
			fmt.Printf("    equipment: %s\n", strings.Join(p.Equipment, ", "))
			if len(p.PreferredExercises) > 0 {
				fmt.Printf("    preferred: %s\n", strings.Join(p.PreferredExercises, ", "))
			}
		}
		return nil
	},
}

// personPatch builds a patch from the flags that were set.
func personPatch(cmd *cobra.Command, id string) storage.PersonPatch {
	patch := storage.PersonPatch{ID: id}
	flags := cmd.Flags()
	if flags.Changed("name") {
		patch.Name = &personName
	}
	if flags.Changed("color") {
		patch.Color = &personColor
	}
	if flags.Changed("gender") {
		patch.Gender = &personGender
	}
	if flags.Changed("duration") {
		patch.DurationMinutes = &personDuration
	}
	if flags.Changed("preferred") {
		preferred := utils.ParseCSV(personPreferred)
		patch.PreferredExercises = &preferred
	}
	if flags.Changed("equipment") {
		equipment := utils.ParseCSV(personEquipment)
		patch.Equipment = &equipment
	}
	if flags.Changed("units") {
		patch.Units = &personUnits
	}
	if flags.Changed("squat") {
		patch.Maxes.Squat = &personSquat
	}
	if flags.Changed("deadlift") {
		patch.Maxes.Deadlift = &personDeadlift
	}
	if flags.Changed("bench") {
		patch.Maxes.Bench = &personBench
	}
	return patch
}

var addPersonCmd = &cobra.Command{
	Use:   "add-person",
	Short: "Create a new person",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		st, err := a.store.UpsertPerson(context.Background(), expectedRev(cmd), personPatch(cmd, ""))
		if err != nil {
			return fmt.Errorf("Failed to create person: %w", err)
		}
		p := st.People[len(st.People)-1]
		fmt.Printf("✅ Created person %s (%s, rev %d)\n", p.Name, p.ID, st.Rev)
		return nil
	},
}

var updatePersonCmd = &cobra.Command{
	Use:   "update-person",
	Short: "Update the selected person (see --person)",
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

		next, err := a.store.UpsertPerson(ctx, expectedRev(cmd), personPatch(cmd, p.ID))
		if err != nil {
			return fmt.Errorf("Failed to update person: %w", err)
		}
		printRev(st.Rev, next, "Updated "+p.Name)
		return nil
	},
}

var deletePersonCmd = &cobra.Command{
	Use:   "delete-person [name-or-id]",
	Short: "Delete a person and all of their plans",
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
		p, err := resolvePerson(st, args[0])
		if err != nil {
			return err
		}

		next, err := a.store.DeletePerson(ctx, expectedRev(cmd), p.ID)
		if err != nil {
			return fmt.Errorf("Failed to delete person: %w", err)
		}
		printRev(st.Rev, next, "Deleted "+p.Name)
		return nil
	},
}

var usePersonCmd = &cobra.Command{
	Use:   "use-person [name-or-id]",
	Short: "Make a person active and reset the person-specific overrides",
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
		p, err := resolvePerson(st, args[0])
		if err != nil {
			return err
		}

		next, err := a.store.SetActivePerson(ctx, expectedRev(cmd), p.ID)
		if err != nil {
			return fmt.Errorf("Failed to switch person: %w", err)
		}
		printRev(st.Rev, next, p.Name+" is now active")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{addPersonCmd, updatePersonCmd} {
		c.Flags().StringVarP(&personName, "name", "n", "", "Name")
		c.Flags().StringVar(&personColor, "color", "", "Display color, e.g. #64b5f6")
		c.Flags().StringVarP(&personGender, "gender", "g", "", "male or female")
		c.Flags().IntVar(&personDuration, "duration", 0, "Session length in minutes")
		c.Flags().StringVar(&personPreferred, "preferred", "", "Preferred exercises or tags, comma separated")
		c.Flags().StringVar(&personEquipment, "equipment", "", "Available equipment, comma separated")
		c.Flags().StringVarP(&personUnits, "units", "u", "", "kg or lb")
		c.Flags().Float64Var(&personSquat, "squat", 0, "Squat 1RM")
		c.Flags().Float64Var(&personDeadlift, "deadlift", 0, "Deadlift 1RM")
		c.Flags().Float64Var(&personBench, "bench", 0, "Bench press 1RM")
		addExpectedRev(c)
	}
	addPersonCmd.MarkFlagRequired("name")
	addExpectedRev(deletePersonCmd)
	addExpectedRev(usePersonCmd)

	rootCmd.AddCommand(peopleCmd)
	rootCmd.AddCommand(addPersonCmd)
	rootCmd.AddCommand(updatePersonCmd)
	rootCmd.AddCommand(deletePersonCmd)
	rootCmd.AddCommand(usePersonCmd)
}
