package storage

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/planner"
	"github.com/misterclayt0n/weekplan/internal/utils"
)

// MaxesPatch updates individual one-rep maxes; nil fields are kept.
type MaxesPatch struct {
	Squat    *float64
	Deadlift *float64
	Bench    *float64
}

// PersonPatch describes an upsert. An empty ID creates a new person; nil
// fields keep the stored value.
type PersonPatch struct {
	ID                 string
	Name               *string
	Color              *string
	Gender             *string
	DurationMinutes    *int
	PreferredExercises *[]string
	Equipment          *[]string
	Units              *string
	Maxes              MaxesPatch
	// Cycle replaces the cycle when set; ClearCycle removes it.
	Cycle      *models.CycleConfig
	ClearCycle bool
}

// Person returns the person with id.
func (s *Store) Person(ctx context.Context, id string) (models.Person, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return models.Person{}, err
	}
	p, ok := st.Person(id)
	if !ok {
		return models.Person{}, fmt.Errorf("person %s: %w", id, ErrNotFound)
	}
	return p, nil
}

// UpsertPerson creates or updates a person. When the maxes of an existing
// person change, loads inside their active cycle window are recomputed.
func (s *Store) UpsertPerson(ctx context.Context, expectedRev *int64, patch PersonPatch) (*models.State, error) {
	return s.mutate(ctx, "upsert_person", expectedRev, func(st *models.State) (bool, error) {
		now := s.clock.Now().UTC()
		i := -1
		if patch.ID != "" {
			i = st.PersonIndex(patch.ID)
		}

		var p models.Person
		if i >= 0 {
			p = st.People[i]
		} else {
			p = defaultPerson(now)
			if patch.ID != "" {
				p.ID = patch.ID
			}
			p.Color = models.PersonColors[len(st.People)%len(models.PersonColors)]
		}
		before := p
		oldMaxes, oldUnits := p.Maxes, p.Units

		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Color != nil && strings.TrimSpace(*patch.Color) != "" {
			p.Color = strings.TrimSpace(*patch.Color)
		}
		if patch.Gender != nil {
			p.Gender = models.Gender(*patch.Gender)
		}
		if patch.DurationMinutes != nil {
			p.DurationMinutes = *patch.DurationMinutes
		}
		if patch.PreferredExercises != nil {
			p.PreferredExercises = *patch.PreferredExercises
		}
		if patch.Equipment != nil {
			p.Equipment = *patch.Equipment
		}
		if patch.Units != nil {
			p.Units = models.Units(*patch.Units)
		}
		if patch.Maxes.Squat != nil {
			p.Maxes.Squat = *patch.Maxes.Squat
		}
		if patch.Maxes.Deadlift != nil {
			p.Maxes.Deadlift = *patch.Maxes.Deadlift
		}
		if patch.Maxes.Bench != nil {
			p.Maxes.Bench = *patch.Maxes.Bench
		}
		switch {
		case patch.ClearCycle:
			p.Cycle = nil
		case patch.Cycle != nil:
			cycle := *patch.Cycle
			p.Cycle = &cycle
		}
		normalizePerson(&p)

		if i >= 0 && samePerson(before, p) {
			return false, nil
		}
		p.UpdatedAt = now

		if i >= 0 {
			st.People[i] = p
		} else {
			st.People = append(st.People, p)
		}
		if st.ActivePersonID == "" {
			st.ActivePersonID = p.ID
		}
		if i >= 0 && (p.Maxes != oldMaxes || p.Units != oldUnits) {
			recomputeCycleLoads(st, p)
		}
		return true, nil
	})
}

func samePerson(a, b models.Person) bool {
	return a.ID == b.ID && a.Name == b.Name && a.Color == b.Color && a.Gender == b.Gender &&
		a.DurationMinutes == b.DurationMinutes && a.Units == b.Units && a.Maxes == b.Maxes &&
		slices.Equal(a.PreferredExercises, b.PreferredExercises) &&
		slices.Equal(a.Equipment, b.Equipment) && sameCycle(a.Cycle, b.Cycle)
}

func sameCycle(a, b *models.CycleConfig) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Enabled == b.Enabled && a.Preset == b.Preset && a.Program == b.Program &&
		a.StartWeek == b.StartWeek && a.Weeks == b.Weeks && a.StepPct.Or(-1) == b.StepPct.Or(-1) &&
		a.DeloadPct.Or(-1) == b.DeloadPct.Or(-1) && a.DeloadVolume.Or(-1) == b.DeloadVolume.Or(-1) &&
		slices.Equal(a.TrainingWeekdays, b.TrainingWeekdays)
}

// recomputeCycleLoads refreshes suggested loads of p's workouts inside the
// active cycle window. Exercise selection is left alone.
func recomputeCycleLoads(st *models.State, p models.Person) {
	cycle := p.ActiveCycle()
	if cycle == nil {
		return
	}
	for weekStart, plan := range st.Plans[p.ID] {
		start, err := utils.ParseDate(weekStart)
		if err != nil || !cycle.InWindow(start) {
			continue
		}
		for j, w := range plan.Workouts {
			plan.Workouts[j] = planner.RecomputeLoads(w, p.Maxes, p.Units)
		}
		plan.Profile.Units = p.Units
		plan.Markdown = planner.RenderMarkdown(plan)
		st.Plans[p.ID][weekStart] = plan
	}
}

// DeletePerson removes a person and all of their plans. Unknown ids are a no-op.
func (s *Store) DeletePerson(ctx context.Context, expectedRev *int64, id string) (*models.State, error) {
	return s.mutate(ctx, "delete_person", expectedRev, func(st *models.State) (bool, error) {
		i := st.PersonIndex(id)
		if i < 0 {
			return false, nil
		}
		st.People = slices.Delete(st.People, i, i+1)
		delete(st.Plans, id)
		if st.ActivePersonID == id {
			st.ActivePersonID = ""
			if len(st.People) > 0 {
				st.ActivePersonID = st.People[0].ID
			}
		}
		return true, nil
	})
}

// SetActivePerson switches the active person and resets the person-scoped
// overrides. Week navigation and linear progression are kept. Selecting the
// person who is already active still resets. Unknown ids, or a reset that
// changes nothing, are a no-op.
func (s *Store) SetActivePerson(ctx context.Context, expectedRev *int64, id string) (*models.State, error) {
	return s.mutate(ctx, "set_active_person", expectedRev, func(st *models.State) (bool, error) {
		if _, ok := st.Person(id); !ok {
			return false, nil
		}
		o := models.DefaultOverrides()
		o.WeekOffset = st.Overrides.WeekOffset
		o.SelectedWeekday = st.Overrides.SelectedWeekday
		o.Progression = st.Overrides.Progression
		normalizeOverrides(&o)
		if st.ActivePersonID == id && reflect.DeepEqual(o, st.Overrides) {
			return false, nil
		}
		st.ActivePersonID = id
		st.Overrides = o
		return true, nil
	})
}
