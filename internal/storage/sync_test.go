package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/weekplan/internal/models"
)

func TestExportImportConfig(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t, nil)
	st, err := src.UpsertPerson(ctx, nil, PersonPatch{
		Name:  ptr("Ana"),
		Units: ptr("lb"),
		Cycle: cycleFrom("2026-02-16"),
		Maxes: MaxesPatch{Squat: ptr(225.0)},
	})
	require.NoError(t, err)
	_, err = src.SetExerciseDisabled(ctx, nil, "Front Squat", true)
	require.NoError(t, err)
	_, err = src.AddCustomExercise(ctx, nil, models.Exercise{Name: "Sled Push", Tags: []string{"conditioning"}})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "export.toml")
	require.NoError(t, src.ExportConfigToFile(ctx, path))

	dst := newTestStore(t, nil)
	before, err := dst.Load(ctx)
	require.NoError(t, err)
	_, err = dst.SavePlan(ctx, nil, before.ActivePersonID, "2026-02-16", planWith("2026-02-16", "2026-02-16"))
	require.NoError(t, err)

	got, err := dst.ImportConfigFromFile(ctx, nil, path)
	require.NoError(t, err)

	require.Len(t, got.People, 2)
	assert.Equal(t, st.ActivePersonID, got.ActivePersonID)
	ana, ok := got.Person(st.People[1].ID)
	require.True(t, ok)
	assert.Equal(t, "Ana", ana.Name)
	assert.Equal(t, models.UnitsLb, ana.Units)
	assert.Equal(t, 225.0, ana.Maxes.Squat)
	require.NotNil(t, ana.Cycle)
	assert.Equal(t, "2026-02-16", ana.Cycle.StartWeek)
	assert.Equal(t, []int{0, 2, 4}, ana.Cycle.TrainingWeekdays)
	assert.Equal(t, []string{"Front Squat"}, got.ExerciseConfig.DisabledExercises)
	require.Len(t, got.ExerciseConfig.CustomExercises, 1)
	assert.Equal(t, "Sled Push", got.ExerciseConfig.CustomExercises[0].Name)
	assert.NotContains(t, got.Plans, before.ActivePersonID, "plans of replaced people dropped")
}

func TestImportConfigRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	_, err := s.ImportConfig(ctx, nil, []byte("not = [toml"))
	assert.Error(t, err)
	_, err = s.ImportConfig(ctx, nil, []byte(`active_person_id = "x"`))
	assert.Error(t, err)
}
