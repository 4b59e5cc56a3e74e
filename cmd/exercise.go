package cmd

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/weekplan/internal/catalog"
	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/utils"
)

var (
	exerciseName      string
	exerciseTags      string
	exerciseEquipment string
	exerciseTagFilter string
	exerciseEnable    bool
)

var addExerciseCmd = &cobra.Command{
	Use:   "add-exercise",
	Short: "Create a custom exercise",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		exercise := models.Exercise{
			Name:      strings.TrimSpace(exerciseName),
			Tags:      utils.ParseCSV(exerciseTags),
			Equipment: utils.ParseCSV(exerciseEquipment),
		}
		if _, ok := builtinByName(exercise.Name); ok {
			return fmt.Errorf("%s is a built-in exercise", exercise.Name)
		}

		st, err := a.store.AddCustomExercise(context.Background(), expectedRev(cmd), exercise)
		if err != nil {
			return fmt.Errorf("Failed to create exercise: %w", err)
		}
		fmt.Printf("✅ Created exercise: %s (rev %d)\n", exercise.Name, st.Rev)
		return nil
	},
}

var importExercisesCmd = &cobra.Command{
	Use:   "import-exercises [file]",
	Short: "Import custom exercises from a TOML file of [[exercise]] tables",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		exercises, err := catalog.ParseTOML(string(data))
		if err != nil {
			return fmt.Errorf("invalid TOML format: %w", err)
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

		custom := slices.Clone(st.ExerciseConfig.CustomExercises)
		imported := 0
		for _, ex := range exercises {
			if _, ok := builtinByName(ex.Name); ok {
				fmt.Printf("Skipping built-in exercise %s\n", ex.Name)
				continue
			}
			custom = slices.DeleteFunc(custom, func(c models.Exercise) bool { return strings.EqualFold(c.Name, ex.Name) })
			custom = append(custom, ex)
			imported++
		}

		next, err := a.store.SetExerciseConfig(ctx, expectedRev(cmd), nil, custom)
		if err != nil {
			return fmt.Errorf("failed to save exercises: %w", err)
		}
		fmt.Printf("✅ Imported %d exercises (rev %d)\n", imported, next.Rev)
		return nil
	},
}

var removeExerciseCmd = &cobra.Command{
	Use:   "remove-exercise [name]",
	Short: "Delete a custom exercise",
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
		next, err := a.store.RemoveCustomExercise(ctx, expectedRev(cmd), args[0])
		if err != nil {
			return fmt.Errorf("Failed to remove exercise: %w", err)
		}
		printRev(st.Rev, next, "Removed "+args[0])
		return nil
	},
}

var disableExerciseCmd = &cobra.Command{
	Use:   "disable-exercise [name]",
	Short: "Keep an exercise out of every generated workout (--enable to undo)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := context.Background()
		lib, err := a.store.Library(ctx)
		if err != nil {
			return err
		}
		ex, ok := lib.Lookup(args[0])
		if !ok {
			return fmt.Errorf("Failed to find exercise %s", args[0])
		}

		st, err := a.store.Load(ctx)
		if err != nil {
			return err
		}
		next, err := a.store.SetExerciseDisabled(ctx, expectedRev(cmd), ex.Name, !exerciseEnable)
		if err != nil {
			return fmt.Errorf("Failed to save exercise config: %w", err)
		}
		if exerciseEnable {
			printRev(st.Rev, next, ex.Name+" enabled")
		} else {
			printRev(st.Rev, next, ex.Name+" disabled")
		}
		return nil
	},
}

var listExercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "List the exercise library",
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
		lib, err := a.store.Library(ctx)
		if err != nil {
			return err
		}

		disabled := utils.TokenSet(st.ExerciseConfig.DisabledExercises)
		yellow := color.New(color.FgYellow).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()
		tag := strings.ToLower(strings.TrimSpace(exerciseTagFilter))
		for _, ex := range lib.Exercises() {
			if tag != "" && !ex.HasTag(tag) {
				continue
			}
			name := yellow(ex.Name)
			if disabled[strings.ToLower(ex.Name)] {
				name = faint(ex.Name + " (disabled)")
			}
			if ex.Custom {
				name += " [custom]"
			}
			fmt.Printf("%s\n    tags: %s | equipment: %s\n", name, strings.Join(ex.Tags, ", "), strings.Join(ex.Equipment, ", "))
		}
		return nil
	},
}

func builtinByName(name string) (models.Exercise, bool) {
	builtin, err := catalog.Builtin()
	if err != nil {
		return models.Exercise{}, false
	}
	return catalog.New(builtin).Lookup(name)
}

func init() {
	addExerciseCmd.Flags().StringVarP(&exerciseName, "name", "n", "", "Exercise name")
	addExerciseCmd.Flags().StringVarP(&exerciseTags, "tags", "t", "", "Tags, comma separated (e.g. squat,leg)")
	addExerciseCmd.Flags().StringVarP(&exerciseEquipment, "equipment", "e", "", "Required equipment, comma separated")
	addExerciseCmd.MarkFlagRequired("name")
	addExerciseCmd.MarkFlagRequired("tags")
	addExpectedRev(addExerciseCmd)

	addExpectedRev(importExercisesCmd)
	addExpectedRev(removeExerciseCmd)

	disableExerciseCmd.Flags().BoolVar(&exerciseEnable, "enable", false, "Enable the exercise again")
	addExpectedRev(disableExerciseCmd)

	listExercisesCmd.Flags().StringVarP(&exerciseTagFilter, "tag", "t", "", "Only list exercises with this tag")

	rootCmd.AddCommand(addExerciseCmd)
	rootCmd.AddCommand(importExercisesCmd)
	rootCmd.AddCommand(removeExerciseCmd)
	rootCmd.AddCommand(disableExerciseCmd)
	rootCmd.AddCommand(listExercisesCmd)
}
