package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/utils"
)

var (
	filterPerson string
	filterDay    string
)

// historyCmd shows archived weeks, newest first.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display archived weeks, optionally filtered by person and/or day",
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

		// If filtering by day.
		day := ""
		if filterDay != "" {
			parsedDay, err := utils.ParseDate(filterDay)
			if err != nil {
				parsedDay, err = time.Parse("02/01/06", filterDay)
			}
			if err != nil {
				return fmt.Errorf("failed to parse day: %w", err)
			}
			day = utils.FormatDate(parsedDay)
		}

		entries := filterHistory(st.History, filterPerson, day)
		if len(entries) == 0 {
			fmt.Println("No archived workouts")
			return nil
		}

		green := color.New(color.FgGreen, color.Bold).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		for _, h := range entries {
			fmt.Printf("%s %s (archived %s)\n", green("Week of"), h.WeekStart, h.ArchivedAt.In(a.loc).Format("2006-01-02 15:04"))
			for _, hw := range h.Workouts {
				fmt.Printf("  %s %s: %s, %d items\n", cyan(hw.Date), hw.PersonName, hw.Workout.Name, len(hw.Workout.Items))
				for _, item := range hw.Workout.Items {
					fmt.Printf("      %s %s\n", item.Exercise, item.SetsReps)
				}
			}
			fmt.Println()
		}
		return nil
	},
}

// filterHistory keeps workouts matching person (name or id, case
// insensitive) and day, dropping entries left empty.
func filterHistory(history []models.HistoryEntry, person, day string) []models.HistoryEntry {
	var out []models.HistoryEntry
	for _, h := range history {
		var kept []models.HistoryWorkout
		for _, hw := range h.Workouts {
			if person != "" && !strings.EqualFold(hw.PersonName, person) && hw.PersonID != person {
				continue
			}
			if day != "" && hw.Date != day {
				continue
			}
			kept = append(kept, hw)
		}
		if len(kept) > 0 {
			h.Workouts = kept
			out = append(out, h)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVarP(&filterPerson, "who", "w", "", "Filter by person name or id")
	historyCmd.Flags().StringVarP(&filterDay, "day", "d", "", "Filter by day (e.g. 2025-02-07 or 07/02/25)")
}
