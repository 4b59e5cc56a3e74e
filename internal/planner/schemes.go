package planner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/misterclayt0n/weekplan/internal/models"
)

// Scheme is a sets x reps prescription.
type Scheme struct {
	Sets int
	Reps int
}

func (s Scheme) String() string {
	return fmt.Sprintf("%d x %d", s.Sets, s.Reps)
}

// ParseScheme reads "S x R" (spaces optional).
func ParseScheme(raw string) (Scheme, error) {
	parts := strings.Split(strings.ToLower(raw), "x")
	if len(parts) != 2 {
		return Scheme{}, fmt.Errorf("invalid sets x reps %q", raw)
	}
	sets, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Scheme{}, fmt.Errorf("invalid sets in %q: %w", raw, err)
	}
	reps, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Scheme{}, fmt.Errorf("invalid reps in %q: %w", raw, err)
	}
	return Scheme{Sets: sets, Reps: reps}, nil
}

// Schemes holds the prescriptions for each slot family of one workout.
type Schemes struct {
	Main      Scheme
	Accessory Scheme
	Core      Scheme
}

// For returns the scheme for an item type.
func (s Schemes) For(t models.ItemType) Scheme {
	switch {
	case t.IsMain():
		return s.Main
	case t == models.ItemCore:
		return s.Core
	}
	return s.Accessory
}

// Scaled applies a deload volume factor to every set count.
func (s Schemes) Scaled(volume float64) Schemes {
	if volume == 1 {
		return s
	}
	scale := func(sc Scheme) Scheme {
		return Scheme{Sets: ScaleSets(sc.Sets, volume), Reps: sc.Reps}
	}
	return Schemes{Main: scale(s.Main), Accessory: scale(s.Accessory), Core: scale(s.Core)}
}

// PresetSchemes are the prescriptions used inside a cycle.
func PresetSchemes(p models.Preset) Schemes {
	switch p {
	case models.PresetHypertrophy:
		return Schemes{Main: Scheme{4, 8}, Accessory: Scheme{3, 12}, Core: Scheme{3, 15}}
	case models.PresetMinimalist:
		return Schemes{Main: Scheme{3, 5}, Accessory: Scheme{2, 10}, Core: Scheme{2, 12}}
	}
	return Schemes{Main: Scheme{4, 5}, Accessory: Scheme{3, 8}, Core: Scheme{3, 12}}
}

// DefaultSchemes are the prescriptions outside a cycle. Gender only shifts
// the main lift reps.
func DefaultSchemes(intensity models.Intensity, gender models.Gender) Schemes {
	mainReps := 5
	if gender == models.GenderFemale {
		mainReps = 6
	}
	core := Scheme{3, 12}
	switch intensity {
	case models.IntensityEasy:
		return Schemes{Main: Scheme{3, mainReps}, Accessory: Scheme{2, 12}, Core: core}
	case models.IntensityHard:
		return Schemes{Main: Scheme{4, mainReps}, Accessory: Scheme{3, 10}, Core: core}
	}
	return Schemes{Main: Scheme{3, mainReps}, Accessory: Scheme{3, 10}, Core: core}
}
