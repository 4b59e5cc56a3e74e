package storage

import (
	"context"
	"fmt"

	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/planner"
	"github.com/misterclayt0n/weekplan/internal/utils"
)

// weekKey normalizes any date inside a week to its Monday key.
func weekKey(date string) (string, error) {
	d, err := utils.ParseDate(date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return utils.FormatDate(utils.WeekStart(d)), nil
}

// GetPlan returns the stored plan for a person and week.
func (s *Store) GetPlan(ctx context.Context, personID, weekStart string) (models.Plan, error) {
	key, err := weekKey(weekStart)
	if err != nil {
		return models.Plan{}, err
	}
	st, err := s.Load(ctx)
	if err != nil {
		return models.Plan{}, err
	}
	plan, ok := st.Plan(personID, key)
	if !ok {
		return models.Plan{}, fmt.Errorf("plan for %s week %s: %w", personID, key, ErrNotFound)
	}
	return plan, nil
}

// SavePlan stores plan under (personID, weekStart), replacing any previous
// plan. Saving for an unknown person is a no-op.
func (s *Store) SavePlan(ctx context.Context, expectedRev *int64, personID, weekStart string, plan models.Plan) (*models.State, error) {
	key, err := weekKey(weekStart)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, "save_plan", expectedRev, func(st *models.State) (bool, error) {
		if _, ok := st.Person(personID); !ok {
			return false, nil
		}
		st.PutPlan(personID, key, plan.Clone())
		return true, nil
	})
}

// DeleteWeek removes the week's plan for every person.
func (s *Store) DeleteWeek(ctx context.Context, expectedRev *int64, weekStart string) (*models.State, error) {
	key, err := weekKey(weekStart)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, "delete_week", expectedRev, func(st *models.State) (bool, error) {
		changed := false
		for personID, plans := range st.Plans {
			if _, ok := plans[key]; ok {
				delete(plans, key)
				changed = true
			}
			if len(plans) == 0 {
				delete(st.Plans, personID)
			}
		}
		return changed, nil
	})
}

// SetCycle attaches cycle to a person, replacing any existing one.
func (s *Store) SetCycle(ctx context.Context, expectedRev *int64, personID string, cycle models.CycleConfig) (*models.State, error) {
	if _, err := s.Person(ctx, personID); err != nil {
		return nil, err
	}
	return s.UpsertPerson(ctx, expectedRev, PersonPatch{ID: personID, Cycle: &cycle})
}

// DeleteCycle removes every workout inside the person's cycle window and
// clears the cycle. Without a cycle it is a no-op.
func (s *Store) DeleteCycle(ctx context.Context, expectedRev *int64, personID string) (*models.State, error) {
	return s.mutate(ctx, "delete_cycle", expectedRev, func(st *models.State) (bool, error) {
		i := st.PersonIndex(personID)
		if i < 0 || st.People[i].Cycle == nil {
			return false, nil
		}
		cycle := st.People[i].Cycle.Normalized()
		for weekStart, plan := range st.Plans[personID] {
			start, err := utils.ParseDate(weekStart)
			if err != nil || !cycle.InWindow(start) {
				continue
			}
			plan.Workouts = nil
			plan.Markdown = planner.RenderMarkdown(plan)
			st.Plans[personID][weekStart] = plan
		}
		st.People[i].Cycle = nil
		st.People[i].UpdatedAt = s.clock.Now().UTC()
		return true, nil
	})
}
