package planner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/misterclayt0n/weekplan/internal/models"
)

// RenderMarkdown builds the plain-text summary of a plan, workouts by date.
func RenderMarkdown(plan models.Plan) string {
	units := plan.Profile.Units
	if units == "" {
		units = models.UnitsKg
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Weekly Training Plan (ISO week %d)\n", plan.WeekNumber)
	fmt.Fprintf(&sb, "- Week start: %s\n\n", plan.WeekStart)

	workouts := plan.SortedWorkouts()
	if len(workouts) == 0 {
		sb.WriteString("_No sessions generated yet._")
		return strings.TrimSpace(sb.String())
	}
	for _, w := range workouts {
		name := w.Name
		if name == "" {
			name = "Session"
		}
		fmt.Fprintf(&sb, "## %s (%s)\n", name, w.Date)
		for _, item := range w.Items {
			if item.SuggestedLoad != nil && *item.SuggestedLoad > 0 {
				itemUnits := item.Units
				if itemUnits == "" {
					itemUnits = units
				}
				fmt.Fprintf(&sb, "- %s: %s @ ~%s%s\n", item.Exercise, item.SetsReps, FormatLoad(*item.SuggestedLoad), itemUnits)
			} else {
				fmt.Fprintf(&sb, "- %s: %s\n", item.Exercise, item.SetsReps)
			}
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

// FormatLoad prints a load without trailing zeros.
func FormatLoad(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
