package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/planner"
	"github.com/misterclayt0n/weekplan/internal/storage"
)

const expectedRevFlag = "expected-rev"

func addExpectedRev(cmd *cobra.Command) {
	cmd.Flags().Int64(expectedRevFlag, 0, "Fail unless the stored revision equals this value")
}

// expectedRev returns nil unless --expected-rev was given.
func expectedRev(cmd *cobra.Command) *int64 {
	if !cmd.Flags().Changed(expectedRevFlag) {
		return nil
	}
	rev, _ := cmd.Flags().GetInt64(expectedRevFlag)
	return storage.ExpectRev(rev)
}

// resolvePerson finds a person by id or case-insensitive name. An empty ref
// means the active person.
func resolvePerson(st *models.State, ref string) (models.Person, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		if p, ok := st.ActivePerson(); ok {
			return p, nil
		}
		return models.Person{}, fmt.Errorf("No people configured")
	}
	for _, p := range st.People {
		if p.ID == ref || strings.EqualFold(p.Name, ref) {
			return p, nil
		}
	}
	return models.Person{}, fmt.Errorf("Unknown person %q", ref)
}

var weekdayNames = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// parseWeekday accepts 0-6 (Monday = 0) or a day name.
func parseWeekday(raw string) (int, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if n, err := strconv.Atoi(raw); err == nil && n >= 0 && n <= 6 {
		return n, nil
	}
	for i, name := range weekdayNames {
		if len(raw) >= 3 && strings.HasPrefix(raw, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday: %s", raw)
}

func parseWeekdays(raw string) ([]int, error) {
	var days []int
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		d, err := parseWeekday(part)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return models.NormalizeWeekdays(days), nil
}

// printRev reports the new revision, or that nothing changed.
func printRev(before int64, st *models.State, msg string) {
	if st.Rev == before {
		fmt.Printf("Nothing to do (rev %d)\n", st.Rev)
		return
	}
	fmt.Printf("✅ %s (rev %d)\n", msg, st.Rev)
}

func printWorkout(w models.Workout) {
	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	title := fmt.Sprintf("%s %s (%s)", w.Name, w.Date, weekdayNames[models.ClampInt(w.Weekday, 0, 6)])
	if w.Completed {
		title += " " + green("✔ done")
	}
	fmt.Println(green(title))
	if w.Cycle != nil {
		phase := fmt.Sprintf("week %d/%d", w.Cycle.WeekIndex+1, w.Cycle.Weeks)
		if w.Cycle.IsDeload {
			phase += " " + red("deload")
		}
		fmt.Printf("   %s %s, %s, load x%.3f\n", cyan("Cycle:"), w.Cycle.Preset, phase, w.Cycle.LoadFactor)
	} else if w.Progression != nil && w.Progression.Enabled {
		fmt.Printf("   %s %+d weeks, load x%.3f\n", cyan("Progression:"), w.Progression.OffsetWeeks, w.Progression.LoadFactor)
	}

	for i, item := range w.Items {
		load := ""
		if item.SuggestedLoad != nil {
			load = fmt.Sprintf(" @ ~%s%s", planner.FormatLoad(*item.SuggestedLoad), item.Units)
		}
		fmt.Printf("   %s %-12s %s  %s%s\n", cyan(fmt.Sprintf("%d.", i+1)), item.Type, yellow(item.Exercise), item.SetsReps, load)
	}
}

// printBoxedHeader prints the title in a Unicode box with a fixed width.
func printBoxedHeader(title string) {
	width := 40
	cyanBold := color.New(color.FgCyan, color.Bold).SprintFunc()
	border := strings.Repeat("═", width)
	fmt.Println(cyanBold("╔" + border + "╗"))
	fmt.Println(cyanBold("║" + padCenter(title, width) + "║"))
	fmt.Println(cyanBold("╚" + border + "╝"))
}

func padCenter(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-len(s)-padding)
}

// printMetric prints a label and value using bold yellow for the label.
func printMetric(label string, value any) {
	yellowBold := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Printf("  %s: %v\n", yellowBold(label), value)
}
