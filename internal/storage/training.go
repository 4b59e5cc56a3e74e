package storage

import (
	"context"
	"fmt"
	"slices"

	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/planner"
	"github.com/misterclayt0n/weekplan/internal/utils"
)

const maxSeriesWeeks = 52

// editWorkout applies fn to the workout on date in the person's plan. A
// missing plan or workout is a no-op.
func editWorkout(st *models.State, personID, date string, fn func(plan *models.Plan, i int) bool) (bool, error) {
	d, err := utils.ParseDate(date)
	if err != nil {
		return false, fmt.Errorf("invalid date %q: %w", date, err)
	}
	key := utils.FormatDate(utils.WeekStart(d))
	plan, ok := st.Plan(personID, key)
	if !ok {
		return false, nil
	}
	i := plan.WorkoutIndex(utils.FormatDate(d))
	if i < 0 {
		return false, nil
	}
	plan.Workouts = slices.Clone(plan.Workouts)
	if !fn(&plan, i) {
		return false, nil
	}
	plan.Markdown = planner.RenderMarkdown(plan)
	st.PutPlan(personID, key, plan)
	return true, nil
}

// SetWorkoutCompleted marks the workout on date as done or not done.
func (s *Store) SetWorkoutCompleted(ctx context.Context, expectedRev *int64, personID, date string, completed bool) (*models.State, error) {
	return s.mutate(ctx, "set_workout_completed", expectedRev, func(st *models.State) (bool, error) {
		return editWorkout(st, personID, date, func(plan *models.Plan, i int) bool {
			w := &plan.Workouts[i]
			if w.Completed == completed {
				return false
			}
			w.Completed = completed
			w.CompletedAt = nil
			if completed {
				now := s.clock.Now().UTC()
				w.CompletedAt = &now
			}
			return true
		})
	})
}

// DeleteWorkout removes the workout on date. The plan itself is kept.
func (s *Store) DeleteWorkout(ctx context.Context, expectedRev *int64, personID, date string) (*models.State, error) {
	return s.mutate(ctx, "delete_workout", expectedRev, func(st *models.State) (bool, error) {
		return editWorkout(st, personID, date, func(plan *models.Plan, i int) bool {
			plan.Workouts = slices.Delete(plan.Workouts, i, i+1)
			return true
		})
	})
}

// DeleteWorkoutSeries removes the workout on the weekday of startDate in
// each of weeks consecutive weeks, starting with startDate itself.
func (s *Store) DeleteWorkoutSeries(ctx context.Context, expectedRev *int64, personID, startDate string, weeks int) (*models.State, error) {
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", startDate, err)
	}
	weeks = models.ClampInt(weeks, 1, maxSeriesWeeks)
	return s.mutate(ctx, "delete_workout_series", expectedRev, func(st *models.State) (bool, error) {
		changed := false
		for n := range weeks {
			date := utils.FormatDate(start.AddDate(0, 0, 7*n))
			ok, err := editWorkout(st, personID, date, func(plan *models.Plan, i int) bool {
				plan.Workouts = slices.Delete(plan.Workouts, i, i+1)
				return true
			})
			if err != nil {
				return false, err
			}
			changed = changed || ok
		}
		return changed, nil
	})
}

// UpsertWorkout inserts or replaces the workout on w.Date, creating the
// week's plan if needed.
func (s *Store) UpsertWorkout(ctx context.Context, expectedRev *int64, personID string, w models.Workout) (*models.State, error) {
	date, err := utils.ParseDate(w.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid workout date %q: %w", w.Date, err)
	}
	w.Date = utils.FormatDate(date)
	w.Weekday = utils.MondayIndex(date)
	weekStart := utils.WeekStart(date)
	key := utils.FormatDate(weekStart)

	return s.mutate(ctx, "upsert_workout", expectedRev, func(st *models.State) (bool, error) {
		person, ok := st.Person(personID)
		if !ok {
			return false, nil
		}
		plan, ok := st.Plan(personID, key)
		if !ok {
			_, week := weekStart.ISOWeek()
			plan = models.Plan{
				WeekNumber:  week,
				WeekStart:   key,
				GeneratedAt: s.clock.Now().UTC(),
				Profile: models.ProfileSnapshot{
					Gender:          person.Gender,
					DurationMinutes: person.DurationMinutes,
					Units:           person.Units,
				},
				Meta: models.PlanMeta{PlanningMode: st.Overrides.PlanningMode},
			}
		}
		plan.Workouts = slices.Clone(plan.Workouts)
		plan.PutWorkout(w)
		plan.Markdown = planner.RenderMarkdown(plan)
		st.PutPlan(personID, key, plan)
		return true, nil
	})
}
