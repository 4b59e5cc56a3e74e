package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/weekplan/internal/models"
)

var (
	cyclePreset       string
	cycleProgram      string
	cycleStart        string
	cycleDays         string
	cycleWeeks        int
	cycleStep         float64
	cycleDeloadPct    float64
	cycleDeloadVolume float64
)

var planCycleCmd = &cobra.Command{
	Use:   "plan-cycle",
	Short: "Attach a periodization cycle to a person and generate all of its workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := parseWeekdays(cycleDays)
		if err != nil {
			return err
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
		p, err := resolvePerson(st, personFlag)
		if err != nil {
			return err
		}

		cycle := models.CycleConfig{
			Preset:           models.ParsePreset(cyclePreset),
			Program:          models.ParseProgram(cycleProgram),
			StartWeek:        cycleStart,
			TrainingWeekdays: days,
			Weeks:            cycleWeeks,
		}
		flags := cmd.Flags()
		if flags.Changed("step") {
			cycle.StepPct = models.NewNumber(cycleStep)
		}
		if flags.Changed("deload-pct") {
			cycle.DeloadPct = models.NewNumber(cycleDeloadPct)
		}
		if flags.Changed("deload-volume") {
			cycle.DeloadVolume = models.NewNumber(cycleDeloadVolume)
		}
		next, err := a.svc.GenerateCycle(ctx, expectedRev(cmd), p.ID, cycle)
		if err != nil {
			return fmt.Errorf("Failed to plan cycle: %w", err)
		}

		saved, _ := next.Person(p.ID)
		if saved.Cycle == nil {
			fmt.Println("The cycle window has already passed, nothing generated")
			return nil
		}
		c := saved.Cycle
		fmt.Printf("✅ Planned %s %s cycle for %s: %d weeks from %s (rev %d)\n",
			c.Preset, c.Program, p.Name, c.Weeks, c.StartWeek, next.Rev)
		fmt.Printf("   step %g%%, deload -%g%% at x%g volume\n", c.StepPct.Or(0), c.DeloadPct.Or(0), c.DeloadVolume.Or(0))
		return nil
	},
}

func init() {
	f := planCycleCmd.Flags()
	f.StringVar(&cyclePreset, "preset", "strength", "strength, hypertrophy or minimalist")
	f.StringVar(&cycleProgram, "program", "full_body_abc", "full_body_abc, full_body_2day or upper_lower_4day")
	f.StringVarP(&cycleStart, "start", "s", "", "Start week (YYYY-MM-DD, default: current week)")
	f.StringVarP(&cycleDays, "days", "d", "mon,wed,fri", "Training weekdays, comma separated")
	f.IntVarP(&cycleWeeks, "weeks", "w", models.DefaultCycleWeeks, "Cycle length in weeks (1-12)")
	f.Float64Var(&cycleStep, "step", 0, "Load increase per week in percent (default: preset)")
	f.Float64Var(&cycleDeloadPct, "deload-pct", 0, "Load reduction on the deload week in percent (default: preset)")
	f.Float64Var(&cycleDeloadVolume, "deload-volume", 0, "Set multiplier on the deload week (default: preset)")
	addExpectedRev(planCycleCmd)
	rootCmd.AddCommand(planCycleCmd)
}
