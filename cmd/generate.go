package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/weekplan/internal/service"
)

var (
	generateWeekday string
	generateOffset  int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the workout for a day and store it in the week's plan",
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

		req := service.GenerateRequest{PersonID: person.ID, ExpectedRev: expectedRev(cmd)}
		if cmd.Flags().Changed("weekday") {
			day, err := parseWeekday(generateWeekday)
			if err != nil {
				return err
			}
			req.Weekday = &day
		}
		if cmd.Flags().Changed("offset") {
			req.WeekOffset = &generateOffset
		}

		res, err := a.svc.GenerateForDay(ctx, req)
		if err != nil {
			return fmt.Errorf("Failed to generate workout: %w", err)
		}

		fmt.Printf("✅ Generated workout for %s, week of %s (rev %d)\n\n", person.Name, res.WeekStart, res.State.Rev)
		printWorkout(res.Workout)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateWeekday, "weekday", "d", "", "Day to generate (mon..sun or 0-6, default: selected weekday or today)")
	generateCmd.Flags().IntVarP(&generateOffset, "offset", "o", 0, "Week offset from the current week (-1..3)")
	addExpectedRev(generateCmd)
}
