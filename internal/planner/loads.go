package planner

import (
	"math"
	"strings"

	"github.com/misterclayt0n/weekplan/internal/models"
)

// Names containing these never get a barbell-max based load.
var unloadedPatterns = []string{"split squat", "bodyweight", "goblet", "lunge"}

// BaseMax estimates the 1RM for an exercise from the three tracked maxes.
// It returns 0 when no estimate applies.
func BaseMax(exercise string, maxes models.Maxes) float64 {
	name := strings.ToLower(strings.TrimSpace(exercise))
	for _, p := range unloadedPatterns {
		if strings.Contains(name, p) {
			return 0
		}
	}
	switch {
	case strings.Contains(name, "squat"):
		if strings.Contains(name, "front squat") {
			return maxes.Squat * 0.85
		}
		return maxes.Squat
	case strings.Contains(name, "deadlift"):
		if strings.Contains(name, "romanian") {
			return maxes.Deadlift * 0.65
		}
		return maxes.Deadlift
	case strings.Contains(name, "bench"):
		return maxes.Bench
	case strings.Contains(name, "overhead press"), name == "press":
		return maxes.Bench * 0.65
	}
	return 0
}

// RoundLoad rounds to the nearest plate increment of units.
func RoundLoad(value float64, units models.Units) float64 {
	if value <= 0 {
		return 0
	}
	inc := units.PlateIncrement()
	return math.Round(value/inc) * inc
}

// SuggestedLoad is max x intensity percentage x load factor, rounded. The
// boolean is false when the result would not be positive.
func SuggestedLoad(exercise string, maxes models.Maxes, intensity models.Intensity, factor float64, units models.Units) (float64, bool) {
	base := BaseMax(exercise, maxes)
	if base <= 0 {
		return 0, false
	}
	load := RoundLoad(base*intensity.MainPercent()*factor, units)
	return load, load > 0
}

// applyLoad sets or clears the item's suggested load.
func applyLoad(item *models.WorkoutItem, maxes models.Maxes, intensity models.Intensity, factor float64, units models.Units) {
	item.SuggestedLoad = nil
	item.Units = ""
	if !item.Type.IsMain() {
		return
	}
	if load, ok := SuggestedLoad(item.Exercise, maxes, intensity, factor, units); ok {
		item.SuggestedLoad = &load
		item.Units = units
	}
}

// RecomputeLoads returns w with main lift loads recalculated for new maxes,
// keeping its exercises, intensity and load factor.
func RecomputeLoads(w models.Workout, maxes models.Maxes, units models.Units) models.Workout {
	items := make([]models.WorkoutItem, len(w.Items))
	copy(items, w.Items)
	factor := w.LoadFactor()
	for i := range items {
		applyLoad(&items[i], maxes, w.Intensity, factor, units)
	}
	w.Items = items
	return w
}
