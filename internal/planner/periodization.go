package planner

import (
	"math"
	"time"

	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/utils"
)

const (
	minCycleLoadFactor  = 0.80
	maxCycleLoadFactor  = 1.25
	minLinearLoadFactor = 0.85
	maxLinearLoadFactor = 1.20
)

// Phase is where a week sits inside a cycle.
type Phase struct {
	WeekIndex    int
	IsDeload     bool
	LoadFactor   float64
	VolumeFactor float64
}

// Periodize resolves the phase of weekStart within cfg. It reports false when
// the cycle is disabled, has no valid start, or weekStart precedes the start.
func Periodize(cfg models.CycleConfig, weekStart time.Time) (Phase, bool) {
	if !cfg.Enabled {
		return Phase{}, false
	}
	cfg = cfg.Normalized()
	start, ok := cfg.Start()
	if !ok {
		return Phase{}, false
	}
	delta := utils.FloorWeeks(start, utils.WeekStart(weekStart))
	if delta < 0 {
		return Phase{}, false
	}

	idx := delta % cfg.Weeks
	phase := Phase{WeekIndex: idx, VolumeFactor: 1}
	if idx == cfg.Weeks-1 {
		phase.IsDeload = true
		phase.LoadFactor = 1 - cfg.DeloadPct.Or(models.DefaultDeloadPct)/100
		phase.VolumeFactor = cfg.DeloadVolume.Or(models.DefaultDeloadVolume)
	} else {
		steps := min(idx, cfg.Weeks-2)
		phase.LoadFactor = 1 + cfg.StepPct.Or(models.DefaultStepPct)/100*float64(steps)
	}
	phase.LoadFactor = models.ClampFloat(phase.LoadFactor, minCycleLoadFactor, maxCycleLoadFactor)
	return phase, true
}

// LinearFactor is the load multiplier of the non-cyclic progression model.
func LinearFactor(stepPct float64, offsetWeeks int) float64 {
	return models.ClampFloat(1+stepPct/100*float64(offsetWeeks), minLinearLoadFactor, maxLinearLoadFactor)
}

// ScaleSets multiplies the set count, rounding and keeping at least one set.
func ScaleSets(sets int, factor float64) int {
	return max(1, int(math.Round(float64(sets)*factor)))
}
