package storage

import (
	"context"
	"slices"
	"strings"

	"github.com/misterclayt0n/weekplan/internal/catalog"
	"github.com/misterclayt0n/weekplan/internal/models"
)

// Library returns the built-in exercises merged with the custom ones.
func (s *Store) Library(ctx context.Context) (*catalog.Library, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Load(st.ExerciseConfig.CustomExercises)
}

// SetExerciseConfig replaces the disabled list and/or the custom exercises.
// Nil arguments keep the stored value.
func (s *Store) SetExerciseConfig(ctx context.Context, expectedRev *int64, disabled []string, custom []models.Exercise) (*models.State, error) {
	return s.mutate(ctx, "set_exercise_config", expectedRev, func(st *models.State) (bool, error) {
		cfg := st.ExerciseConfig
		if disabled != nil {
			cfg.DisabledExercises = catalog.NormalizeNames(disabled)
		}
		if custom != nil {
			cfg.CustomExercises = catalog.NormalizeCustom(custom)
		}
		if sameExerciseConfig(cfg, st.ExerciseConfig) {
			return false, nil
		}
		st.ExerciseConfig = cfg
		return true, nil
	})
}

// AddCustomExercise adds ex, or replaces the custom exercise with the same name.
func (s *Store) AddCustomExercise(ctx context.Context, expectedRev *int64, ex models.Exercise) (*models.State, error) {
	return s.mutate(ctx, "add_custom_exercise", expectedRev, func(st *models.State) (bool, error) {
		custom := slices.DeleteFunc(slices.Clone(st.ExerciseConfig.CustomExercises), func(c models.Exercise) bool {
			if !strings.EqualFold(c.Name, strings.TrimSpace(ex.Name)) {
				return false
			}
			if ex.ID == "" {
				ex.ID = c.ID
			}
			return true
		})
		custom = catalog.NormalizeCustom(append(custom, ex))
		if sameExercises(custom, st.ExerciseConfig.CustomExercises) {
			return false, nil
		}
		st.ExerciseConfig.CustomExercises = custom
		return true, nil
	})
}

// RemoveCustomExercise deletes a custom exercise by name.
func (s *Store) RemoveCustomExercise(ctx context.Context, expectedRev *int64, name string) (*models.State, error) {
	return s.mutate(ctx, "remove_custom_exercise", expectedRev, func(st *models.State) (bool, error) {
		before := len(st.ExerciseConfig.CustomExercises)
		st.ExerciseConfig.CustomExercises = slices.DeleteFunc(st.ExerciseConfig.CustomExercises, func(c models.Exercise) bool {
			return strings.EqualFold(c.Name, strings.TrimSpace(name))
		})
		return len(st.ExerciseConfig.CustomExercises) != before, nil
	})
}

// SetExerciseDisabled adds name to, or removes it from, the disabled list.
func (s *Store) SetExerciseDisabled(ctx context.Context, expectedRev *int64, name string, disabled bool) (*models.State, error) {
	return s.mutate(ctx, "set_exercise_disabled", expectedRev, func(st *models.State) (bool, error) {
		name = strings.TrimSpace(name)
		list := st.ExerciseConfig.DisabledExercises
		has := slices.ContainsFunc(list, func(n string) bool { return strings.EqualFold(n, name) })
		switch {
		case name == "", has == disabled:
			return false, nil
		case disabled:
			list = append(list, name)
		default:
			list = slices.DeleteFunc(list, func(n string) bool { return strings.EqualFold(n, name) })
		}
		st.ExerciseConfig.DisabledExercises = catalog.NormalizeNames(list)
		return true, nil
	})
}

func sameExerciseConfig(a, b models.ExerciseConfig) bool {
	return slices.Equal(a.DisabledExercises, b.DisabledExercises) && sameExercises(a.CustomExercises, b.CustomExercises)
}

func sameExercises(a, b []models.Exercise) bool {
	return slices.EqualFunc(a, b, func(x, y models.Exercise) bool {
		return x.ID == y.ID && x.Name == y.Name && x.Custom == y.Custom &&
			slices.Equal(x.Tags, y.Tags) && slices.Equal(x.Equipment, y.Equipment)
	})
}
