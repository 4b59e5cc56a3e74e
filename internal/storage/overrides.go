package storage

import (
	"context"
	"reflect"
	"strings"

	"github.com/misterclayt0n/weekplan/internal/models"
)

// OverridesPatch carries the fields to change; nil fields are kept.
// Numeric and enum values are parsed leniently and fall back to defaults.
type OverridesPatch struct {
	WeekOffset *int
	// SelectedWeekday outside 0..6 clears the selection ("today").
	SelectedWeekday *int
	// DurationMinutes <= 0 clears the override.
	DurationMinutes *int
	// An empty list clears the override.
	PreferredExercises *[]string
	PlanningMode       *string
	Intensity          *string
	ProgressionEnabled *bool
	ProgressionStepPct *string
	// SessionOverrides are merged by slot key; an empty name clears the slot
	// and unknown keys are ignored.
	SessionOverrides map[string]string
}

func (s *Store) SetOverrides(ctx context.Context, expectedRev *int64, patch OverridesPatch) (*models.State, error) {
	return s.mutate(ctx, "set_overrides", expectedRev, func(st *models.State) (bool, error) {
		o := st.Overrides
		o.SessionOverrides = make(map[string]string, len(st.Overrides.SessionOverrides))
		for k, v := range st.Overrides.SessionOverrides {
			o.SessionOverrides[k] = v
		}

		if patch.WeekOffset != nil {
			o.WeekOffset = *patch.WeekOffset
		}
		if patch.SelectedWeekday != nil {
			day := *patch.SelectedWeekday
			o.SelectedWeekday = &day
		}
		if patch.DurationMinutes != nil {
			o.DurationMinutes = max(0, *patch.DurationMinutes)
		}
		if patch.PreferredExercises != nil {
			o.PreferredExercises = *patch.PreferredExercises
		}
		if patch.PlanningMode != nil {
			o.PlanningMode = models.PlanningMode(*patch.PlanningMode)
		}
		if patch.Intensity != nil {
			o.Intensity = models.Intensity(*patch.Intensity)
		}
		if patch.ProgressionEnabled != nil {
			o.Progression.Enabled = *patch.ProgressionEnabled
		}
		if patch.ProgressionStepPct != nil {
			o.Progression.StepPct = models.NewNumber(models.ParseFloatOr(*patch.ProgressionStepPct, models.DefaultStepPct))
		}
		for key, name := range patch.SessionOverrides {
			key = strings.ToLower(strings.TrimSpace(key))
			if strings.TrimSpace(name) == "" {
				delete(o.SessionOverrides, key)
				continue
			}
			o.SessionOverrides[key] = name
		}
		normalizeOverrides(&o)

		if reflect.DeepEqual(o, st.Overrides) {
			return false, nil
		}
		st.Overrides = o
		return true, nil
	})
}
