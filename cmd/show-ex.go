package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/planner"
)

var (
	limitWorkouts int
	historyOnly   bool
)

type exerciseUse struct {
	date     string
	person   string
	item     models.WorkoutItem
	archived bool
}

var showExCmd = &cobra.Command{
	Use:   "show-ex [exercise-name]",
	Short: "Display an exercise and where it appears in plans and history",
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
			return fmt.Errorf("failed to get exercise: %s", args[0])
		}
		st, err := a.store.Load(ctx)
		if err != nil {
			return err
		}

		boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
		boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		magenta := color.New(color.FgMagenta).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		if !historyOnly {
			fmt.Println(boldGreen("Exercise Information:"))
			fmt.Printf("  %s: %s\n", boldCyan("Name"), ex.Name)
			fmt.Printf("  %s: %s\n", boldCyan("Tags"), strings.Join(ex.Tags, ", "))
			fmt.Printf("  %s: %s\n", boldCyan("Equipment"), strings.Join(ex.Equipment, ", "))
			if ex.Custom {
				fmt.Printf("  %s: %s\n", boldCyan("Custom"), ex.ID)
			}
			if p, ok := st.ActivePerson(); ok {
				if base := planner.BaseMax(ex.Name, p.Maxes); base > 0 {
					fmt.Printf("  %s: %s%s\n", boldCyan("Working 1RM"), yellow(planner.FormatLoad(planner.RoundLoad(base, p.Units))), p.Units)
				}
			}
			fmt.Println()
		}

		uses := exerciseUses(st, ex.Name)
		fmt.Printf("%s %s:\n", boldGreen("History for"), ex.Name)
		if len(uses) == 0 {
			fmt.Println(magenta("  Not in any plan or archived week."))
			return nil
		}
		if limitWorkouts > 0 && len(uses) > limitWorkouts {
			uses = uses[:limitWorkouts]
		}

		fmt.Printf("      %-10s | %-12s | %-8s | %-10s\n", "Date", "Person", "Sets", "Load")
		fmt.Println("      " + strings.Repeat("─", 48))
		for _, u := range uses {
			load := "-"
			if u.item.SuggestedLoad != nil {
				load = planner.FormatLoad(*u.item.SuggestedLoad) + string(u.item.Units)
			}
			date := u.date
			if u.archived {
				date = magenta(date)
			}
			fmt.Printf("      %-10s | %-12s | %-8s | %-10s\n", date, u.person, u.item.SetsReps, load)
		}
		return nil
	},
}

// exerciseUses lists every planned or archived item using name, newest first.
func exerciseUses(st *models.State, name string) []exerciseUse {
	var uses []exerciseUse
	for _, p := range st.People {
		for _, plan := range st.Plans[p.ID] {
			for _, w := range plan.Workouts {
				for _, item := range w.Items {
					if strings.EqualFold(item.Exercise, name) {
						uses = append(uses, exerciseUse{date: w.Date, person: p.Name, item: item})
					}
				}
			}
		}
	}
	for _, h := range st.History {
		for _, hw := range h.Workouts {
			for _, item := range hw.Workout.Items {
				if strings.EqualFold(item.Exercise, name) {
					uses = append(uses, exerciseUse{date: hw.Date, person: hw.PersonName, item: item, archived: true})
				}
			}
		}
	}
	sort.SliceStable(uses, func(i, j int) bool {
		if uses[i].date != uses[j].date {
			return uses[i].date > uses[j].date
		}
		return uses[i].person < uses[j].person
	})
	return uses
}

func init() {
	rootCmd.AddCommand(showExCmd)
	showExCmd.Flags().IntVarP(&limitWorkouts, "limit", "l", 10, "Number of workouts to display")
	showExCmd.Flags().BoolVarP(&historyOnly, "history-only", "H", false, "Display only history without exercise details")
}
