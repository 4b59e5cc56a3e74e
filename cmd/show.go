package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/weekplan/internal/storage"
	"github.com/misterclayt0n/weekplan/internal/utils"
)

var (
	showOffset   int
	showMarkdown bool
)

var showCmd = &cobra.Command{
	Use:   "show [week-start]",
	Short: "Show a person's plan for a week",
	Args:  cobra.MaximumNArgs(1),
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
		person, err := resolvePerson(st, personFlag)
		if err != nil {
			return err
		}

		week := utils.FormatDate(a.svc.WeekStartForOffset(showOffset))
		if len(args) == 1 {
			week = args[0]
		}

		plan, err := a.store.GetPlan(ctx, person.ID, week)
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Printf("No plan for %s in the week of %s. Run `weekplan generate` first.\n", person.Name, week)
			return nil
		}
		if err != nil {
			return fmt.Errorf("Failed to get plan: %w", err)
		}

		if showMarkdown {
			fmt.Println(plan.Markdown)
			return nil
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Printf("%s %s, week %d (%s)\n", cyan("Plan for"), person.Name, plan.WeekNumber, plan.WeekStart)
		fmt.Printf("%s %s, lower family %s\n\n", cyan("Mode:"), plan.Meta.PlanningMode, plan.Meta.LowerFamily)
		for _, w := range plan.SortedWorkouts() {
			printWorkout(w)
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&showOffset, "offset", "o", 0, "Week offset from the current week")
	showCmd.Flags().BoolVarP(&showMarkdown, "markdown", "m", false, "Print the stored text summary")
}
