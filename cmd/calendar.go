package cmd

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/utils"
)

// details is a flag to enable verbose workout details.
var details bool

type calendarEntry struct {
	person  models.Person
	workout models.Workout
}

// calendarCmd prints a month grid. Days with workouts are colored by person,
// with a legend below. Archived workouts are included.
var calendarCmd = &cobra.Command{
	Use:   "calendar [month] [year]",
	Short: "Display a calendar of planned and archived workouts, colored by person",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		// Determine month and year (default to current month/year).
		today := a.svc.Today()
		month := today.Month()
		year := today.Year()
		if len(args) >= 1 {
			m, err := strconv.Atoi(args[0])
			if err != nil || m < 1 || m > 12 {
				return fmt.Errorf("invalid month: %s", args[0])
			}
			month = time.Month(m)
		}
		if len(args) == 2 {
			y, err := strconv.Atoi(args[1])
			if err != nil || y < 1 {
				return fmt.Errorf("invalid year: %s", args[1])
			}
			year = y
		}

		firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

		st, err := a.store.Load(context.Background())
		if err != nil {
			return err
		}
		byDay := collectCalendar(st, firstOfMonth, lastOfMonth)

		// Define a fixed palette of colors, one per person in order.
		colorPalette := []color.Attribute{
			color.FgRed, color.FgGreen, color.FgYellow,
			color.FgBlue, color.FgMagenta, color.FgCyan,
		}
		personColors := make(map[string]func(a ...interface{}) string)
		for i, p := range st.People {
			personColors[p.ID] = color.New(colorPalette[i%len(colorPalette)]).SprintFunc()
		}

		header := fmt.Sprintf("%s %d", month.String(), year)
		fmt.Println(strings.TrimRight(padCenter(header, 20), " "))
		fmt.Println("Mo Tu We Th Fr Sa Su")

		weekday := utils.MondayIndex(firstOfMonth)
		for i := 0; i < weekday; i++ {
			fmt.Print("   ")
		}

		for day := 1; day <= lastOfMonth.Day(); day++ {
			dayStr := fmt.Sprintf("%2d", day)
			if entries, ok := byDay[day]; ok {
				mark := "*"
				if entries[0].workout.Completed {
					mark = "✔"
				}
				if colFunc, ok := personColors[entries[0].person.ID]; ok {
					dayStr = colFunc(dayStr + mark)
				} else {
					dayStr = color.New(color.FgWhite).Sprint(dayStr + mark)
				}
			} else {
				dayStr += " "
			}
			fmt.Print(dayStr)
			weekday++
			if weekday%7 == 0 {
				fmt.Println()
			}
		}
		fmt.Print("\n\n")

		fmt.Println("Legend:")
		for _, p := range st.People {
			fmt.Printf("  %s: %s\n", personColors[p.ID]("██"), p.Name)
		}

		if details {
			fmt.Println("\nWorkout Details:")
			var days []int
			for d := range byDay {
				days = append(days, d)
			}
			sort.Ints(days)
			for _, day := range days {
				dayDate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
				fmt.Printf("\n%s:\n", dayDate.Format("Mon, 02 Jan 2006"))
				for _, e := range byDay[day] {
					status := "planned"
					if e.workout.Completed {
						status = "done"
					}
					fmt.Printf("  %s: %s (%d items, %s)\n", e.person.Name, e.workout.Name, len(e.workout.Items), status)
				}
			}
		}

		return nil
	},
}

// collectCalendar groups workouts dated in [first, last] by day of month.
// Stored plans win over archived copies of the same person and date.
func collectCalendar(st *models.State, first, last time.Time) map[int][]calendarEntry {
	byDay := make(map[int][]calendarEntry)
	seen := make(map[string]bool)
	add := func(p models.Person, w models.Workout) {
		d, err := utils.ParseDate(w.Date)
		if err != nil || d.Before(first) || d.After(last) || seen[p.ID+w.Date] {
			return
		}
		seen[p.ID+w.Date] = true
		byDay[d.Day()] = append(byDay[d.Day()], calendarEntry{person: p, workout: w})
	}

	for _, p := range st.People {
		for _, plan := range st.Plans[p.ID] {
			for _, w := range plan.Workouts {
				add(p, w)
			}
		}
	}
	for _, h := range st.History {
		for _, hw := range h.Workouts {
			p, ok := st.Person(hw.PersonID)
			if !ok {
				p = models.Person{ID: hw.PersonID, Name: hw.PersonName, Color: hw.PersonColor}
			}
			add(p, hw.Workout)
		}
	}
	for _, entries := range byDay {
		sort.Slice(entries, func(i, j int) bool { return entries[i].person.Name < entries[j].person.Name })
	}
	return byDay
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().BoolVarP(&details, "details", "d", false, "Print workout details per day")
}
