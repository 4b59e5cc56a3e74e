package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/storage"
	"github.com/misterclayt0n/weekplan/internal/utils"
)

var (
	setOffset      int
	setWeekday     string
	setDuration    int
	setPreferred   string
	setMode        string
	setIntensity   string
	setProgression bool
	setStepPct     string
)

var setOverridesCmd = &cobra.Command{
	Use:   "set",
	Short: "Change generation overrides (week offset, weekday, duration, mode, intensity, progression)",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		var patch storage.OverridesPatch
		if flags.Changed("offset") {
			patch.WeekOffset = &setOffset
		}
		if flags.Changed("weekday") {
			day := -1 // "today"
			if setWeekday != "" && setWeekday != "today" {
				d, err := parseWeekday(setWeekday)
				if err != nil {
					return err
				}
				day = d
			}
			patch.SelectedWeekday = &day
		}
		if flags.Changed("duration") {
			patch.DurationMinutes = &setDuration
		}
		if flags.Changed("preferred") {
			preferred := utils.ParseCSV(setPreferred)
			patch.PreferredExercises = &preferred
		}
		if flags.Changed("mode") {
			patch.PlanningMode = &setMode
		}
		if flags.Changed("intensity") {
			patch.Intensity = &setIntensity
		}
		if flags.Changed("progression") {
			patch.ProgressionEnabled = &setProgression
		}
		if flags.Changed("step") {
			patch.ProgressionStepPct = &setStepPct
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
		next, err := a.store.SetOverrides(ctx, expectedRev(cmd), patch)
		if err != nil {
			return fmt.Errorf("Failed to save overrides: %w", err)
		}
		printRev(st.Rev, next, "Overrides updated")

		o := next.Overrides
		weekday := "today"
		if o.SelectedWeekday != nil {
			weekday = weekdayNames[*o.SelectedWeekday]
		}
		printMetric("Week offset", o.WeekOffset)
		printMetric("Weekday", weekday)
		printMetric("Mode", o.PlanningMode)
		printMetric("Intensity", o.Intensity)
		printMetric("Progression", fmt.Sprintf("%t, %g%%/week", o.Progression.Enabled, o.Progression.StepPct.Or(models.DefaultStepPct)))
		return nil
	},
}

func init() {
	f := setOverridesCmd.Flags()
	f.IntVarP(&setOffset, "offset", "o", 0, "Week offset from the current week (-1..3)")
	f.StringVarP(&setWeekday, "weekday", "d", "", "Selected weekday (mon..sun, 0-6 or today)")
	f.IntVar(&setDuration, "duration", 0, "Session length override in minutes (0 clears)")
	f.StringVar(&setPreferred, "preferred", "", "Preferred exercises override, comma separated (empty clears)")
	f.StringVarP(&setMode, "mode", "m", "", "Planning mode: auto or manual")
	f.StringVarP(&setIntensity, "intensity", "i", "", "easy, normal or hard")
	f.BoolVar(&setProgression, "progression", true, "Enable linear progression")
	f.StringVar(&setStepPct, "step", "", "Linear progression step in percent per week")
	addExpectedRev(setOverridesCmd)
	rootCmd.AddCommand(setOverridesCmd)
}
