package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/planner"
	"github.com/misterclayt0n/weekplan/internal/storage"
	"github.com/misterclayt0n/weekplan/internal/utils"
)

// Service runs generation against the store: read profile and overrides,
// build the day's workout, persist the plan.
type Service struct {
	Store    *storage.Store
	Clock    planner.Clock
	Location *time.Location
	Logger   *slog.Logger
}

func New(store *storage.Store, clock planner.Clock, loc *time.Location, log *slog.Logger) *Service {
	if clock == nil {
		clock = planner.SystemClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{Store: store, Clock: clock, Location: loc, Logger: log}
}

type GenerateRequest struct {
	PersonID string
	// Nil fields fall back to the stored overrides.
	WeekOffset  *int
	Weekday     *int
	ExpectedRev *int64
}

type GenerateResult struct {
	State     *models.State
	PersonID  string
	WeekStart string
	Workout   models.Workout
}

// WeekStartForOffset is the Monday offset weeks away from the current week.
func (s *Service) WeekStartForOffset(offset int) time.Time {
	return planner.CurrentWeekStart(s.Clock.Now(), s.Location).AddDate(0, 0, 7*offset)
}

// Today is the effective current date, honoring the Monday rollover hour.
func (s *Service) Today() time.Time {
	return planner.EffectiveToday(s.Clock.Now(), s.Location)
}

// GenerateForDay generates and stores one day's workout.
func (s *Service) GenerateForDay(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	st, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	person, err := resolvePerson(st, req.PersonID)
	if err != nil {
		return nil, err
	}

	offset := st.Overrides.WeekOffset
	if req.WeekOffset != nil {
		offset = *req.WeekOffset
	}
	offset = models.ClampInt(offset, models.MinWeekOffset, models.MaxWeekOffset)
	weekStart := s.WeekStartForOffset(offset)

	weekday := utils.MondayIndex(s.Today())
	if st.Overrides.SelectedWeekday != nil {
		weekday = *st.Overrides.SelectedWeekday
	}
	if req.Weekday != nil {
		weekday = *req.Weekday
	}
	weekday = models.ClampInt(weekday, 0, 6)

	key := utils.FormatDate(weekStart)
	plan, err := s.generate(ctx, st, person, weekStart, weekday)
	if err != nil {
		return nil, err
	}
	next, err := s.Store.SavePlan(ctx, req.ExpectedRev, person.ID, key, plan)
	if err != nil {
		return nil, fmt.Errorf("Failed to save plan: %w", err)
	}

	date := utils.FormatDate(weekStart.AddDate(0, 0, weekday))
	w := plan.Workouts[plan.WorkoutIndex(date)]
	s.Logger.Debug("workout generated", "person", person.ID, "date", date, "name", w.Name, "rev", next.Rev)
	return &GenerateResult{State: next, PersonID: person.ID, WeekStart: key, Workout: w}, nil
}

func (s *Service) generate(ctx context.Context, st *models.State, person models.Person, weekStart time.Time, weekday int) (models.Plan, error) {
	lib, err := s.Store.Library(ctx)
	if err != nil {
		return models.Plan{}, fmt.Errorf("Failed to load exercise library: %w", err)
	}

	in := planner.Input{
		Profile:   EffectiveProfile(person, st.Overrides),
		Library:   lib,
		Disabled:  st.ExerciseConfig.DisabledExercises,
		Overrides: st.Overrides,
		WeekStart: weekStart,
		Weekday:   weekday,
		Now:       s.Clock.Now(),
		Location:  s.Location,
	}
	if existing, ok := st.Plan(person.ID, utils.FormatDate(weekStart)); ok {
		in.Existing = &existing
	}
	return planner.Generate(in), nil
}

// EffectiveProfile applies the duration and preferred-exercise overrides.
func EffectiveProfile(p models.Person, o models.Overrides) models.Person {
	if o.DurationMinutes > 0 {
		p.DurationMinutes = o.DurationMinutes
	}
	if o.PreferredExercises != nil {
		p.PreferredExercises = o.PreferredExercises
	}
	return p
}

// resolvePerson picks id, else the active person (which falls back to the
// first one).
func resolvePerson(st *models.State, id string) (models.Person, error) {
	if id != "" {
		p, ok := st.Person(id)
		if !ok {
			return models.Person{}, fmt.Errorf("person %q: %w", id, storage.ErrNotFound)
		}
		return p, nil
	}
	if p, ok := st.ActivePerson(); ok {
		return p, nil
	}
	return models.Person{}, fmt.Errorf("no people configured: %w", storage.ErrNotFound)
}
