package service

import (
	"context"
	"fmt"

	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/utils"
)

// WithPresetDefaults enables the cycle and fills step, deload and start week
// values that were left unset.
func (s *Service) WithPresetDefaults(cycle models.CycleConfig) models.CycleConfig {
	cycle.Enabled = true
	cycle.Preset = models.ParsePreset(string(cycle.Preset))
	step, deloadPct, deloadVolume := models.PresetDefaults(cycle.Preset)
	cycle.StepPct = models.NewNumber(cycle.StepPct.Or(step))
	cycle.DeloadPct = models.NewNumber(cycle.DeloadPct.Or(deloadPct))
	cycle.DeloadVolume = models.NewNumber(cycle.DeloadVolume.Or(deloadVolume))
	if cycle.StartWeek == "" {
		cycle.StartWeek = utils.FormatDate(s.WeekStartForOffset(0))
	}
	return cycle.Normalized()
}

// GenerateCycle attaches cycle to the person and generates every training day
// of every week in the window. Only the first write checks expectedRev.
func (s *Service) GenerateCycle(ctx context.Context, expectedRev *int64, personID string, cycle models.CycleConfig) (*models.State, error) {
	st, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	person, err := resolvePerson(st, personID)
	if err != nil {
		return nil, err
	}

	cycle = s.WithPresetDefaults(cycle)
	if cycle.StartWeek == "" {
		return nil, fmt.Errorf("invalid cycle start week")
	}
	st, err = s.Store.SetCycle(ctx, expectedRev, person.ID, cycle)
	if err != nil {
		return nil, fmt.Errorf("Failed to save cycle: %w", err)
	}
	person, _ = st.Person(person.ID)
	if person.Cycle == nil {
		// Normalization pruned it: the window already elapsed.
		return st, nil
	}

	start, _ := cycle.Start()
	count := 0
	for week := range cycle.Weeks {
		weekStart := start.AddDate(0, 0, 7*week)
		for _, day := range cycle.TrainingWeekdays {
			plan, err := s.generate(ctx, st, person, weekStart, day)
			if err != nil {
				return nil, err
			}
			st, err = s.Store.SavePlan(ctx, nil, person.ID, utils.FormatDate(weekStart), plan)
			if err != nil {
				return nil, fmt.Errorf("Failed to save plan: %w", err)
			}
			count++
		}
	}

	s.Logger.Info("cycle generated", "person", person.ID, "start_week", cycle.StartWeek,
		"weeks", cycle.Weeks, "workouts", count)
	return st, nil
}

// Rollover archives the completed workouts of the week before the current
// one, then deletes that week's plans.
func (s *Service) Rollover(ctx context.Context) (*models.State, error) {
	prev := utils.FormatDate(s.WeekStartForOffset(-1))
	if _, err := s.Store.ArchiveWeek(ctx, nil, prev); err != nil {
		return nil, fmt.Errorf("Failed to archive week %s: %w", prev, err)
	}
	st, err := s.Store.DeleteWeek(ctx, nil, prev)
	if err != nil {
		return nil, fmt.Errorf("Failed to delete week %s: %w", prev, err)
	}
	s.Logger.Info("rollover done", "week_start", prev, "rev", st.Rev)
	return st, nil
}
