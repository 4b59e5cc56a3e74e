package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/utils"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state revision, people, this week's progress and the week streak",
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
		week := a.svc.WeekStartForOffset(0)
		weekKey := utils.FormatDate(week)

		printBoxedHeader("STATUS")
		printMetric("Revision", st.Rev)
		printMetric("Updated", st.UpdatedAt.In(a.loc).Format(time.RFC1123))
		printMetric("Current week", weekKey)
		printMetric("Week streak", fmt.Sprintf("%d weeks", computeWeekStreak(st, week)))
		printMetric("Archived weeks", len(st.History))
		fmt.Println()

		header := color.New(color.FgGreen, color.Bold).Sprintf("People:")
		fmt.Println(header)
		for _, p := range st.People {
			name := color.New(color.FgMagenta, color.Bold).Sprint(p.Name)
			if p.ID == st.ActivePersonID {
				name += " (active)"
			}
			done, total := 0, 0
			if plan, ok := st.Plan(p.ID, weekKey); ok {
				for _, w := range plan.Workouts {
					total++
					if w.Completed {
						done++
					}
				}
			}
			fmt.Printf("  • %s: %d/%d workouts done this week\n", name, done, total)
			if c := p.ActiveCycle(); c != nil {
				fmt.Printf("      cycle %s/%s from %s, %d weeks\n", c.Preset, c.Program, c.StartWeek, c.Weeks)
			}
		}
		fmt.Println()
		return nil
	},
}

// computeWeekStreak counts consecutive weeks, ending with the current one,
// that have at least one completed workout in a plan or in history. An empty
// current week does not break a streak that reaches the previous week.
func computeWeekStreak(st *models.State, current time.Time) int {
	weeks := make(map[string]bool)
	for _, h := range st.History {
		if len(h.Workouts) > 0 {
			weeks[h.WeekStart] = true
		}
	}
	for _, plans := range st.Plans {
		for key, plan := range plans {
			for _, w := range plan.Workouts {
				if w.Completed {
					weeks[key] = true
				}
			}
		}
	}

	week := current
	if !weeks[utils.FormatDate(week)] {
		week = week.AddDate(0, 0, -7)
	}
	streak := 0
	for weeks[utils.FormatDate(week)] {
		streak++
		week = week.AddDate(0, 0, -7)
	}
	return streak
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
