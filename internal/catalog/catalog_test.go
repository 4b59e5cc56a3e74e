package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/weekplan/internal/models"
)

func TestBuiltin(t *testing.T) {
	exercises, err := Builtin()
	require.NoError(t, err)
	require.NotEmpty(t, exercises)

	names := map[string]bool{}
	for _, ex := range exercises {
		assert.NotEmpty(t, ex.ID, ex.Name)
		assert.False(t, names[ex.Name], "duplicate %s", ex.Name)
		names[ex.Name] = true
	}
	for _, want := range []string{"Back Squat", "Deadlift", "Bench Press", "Barbell Row", "Plank", "Bodyweight Squat"} {
		assert.True(t, names[want], want)
	}
}

func TestBuiltinReturnsCopy(t *testing.T) {
	first, err := Builtin()
	require.NoError(t, err)
	first[0].Name = "Mutated"

	second, err := Builtin()
	require.NoError(t, err)
	assert.NotEqual(t, "Mutated", second[0].Name)
}

func TestNewSortsAndDedupes(t *testing.T) {
	lib := New([]models.Exercise{
		{Name: "Plank", Tags: []string{"Core"}},
		{Name: " Deadlift ", Tags: []string{"hinge"}},
		{Name: "Plank", Tags: []string{"other"}},
		{Name: ""},
	})

	require.Equal(t, 2, lib.Len())
	exercises := lib.Exercises()
	assert.Equal(t, "Deadlift", exercises[0].Name)
	assert.Equal(t, "Plank", exercises[1].Name)
	assert.Equal(t, []string{"core"}, exercises[1].Tags)

	_, ok := lib.ByName("plank")
	assert.False(t, ok)
	ex, ok := lib.Lookup(" plank ")
	require.True(t, ok)
	assert.Equal(t, "Plank", ex.Name)
}

func TestLoadMergesCustom(t *testing.T) {
	lib, err := Load([]models.Exercise{
		{Name: "Sled Push", Tags: []string{"conditioning"}},
		{Name: "back squat", Tags: []string{"custom"}},
	})
	require.NoError(t, err)

	sled, ok := lib.ByName("Sled Push")
	require.True(t, ok)
	assert.True(t, sled.Custom)

	squat, ok := lib.ByName("Back Squat")
	require.True(t, ok)
	assert.False(t, squat.Custom)
	_, ok = lib.ByName("back squat")
	assert.False(t, ok)
}

func TestParseTOML(t *testing.T) {
	exercises, err := ParseTOML(`
[[exercise]]
name = "Sled Push"
tags = ["Conditioning", "leg", "leg"]
equipment = ["Sled"]

[[exercise]]
name = "  "
`)
	require.NoError(t, err)
	require.Len(t, exercises, 1)
	assert.Equal(t, []string{"conditioning", "leg"}, exercises[0].Tags)
	assert.Equal(t, []string{"sled"}, exercises[0].Equipment)

	_, err = ParseTOML(`[[exercise]`)
	assert.Error(t, err)
}

func TestNormalizeCustom(t *testing.T) {
	out := NormalizeCustom([]models.Exercise{
		{Name: "Sled Push"},
		{Name: "sled push"},
		{Name: "Farmer Carry", ID: "keep_me"},
		{Name: ""},
	})
	require.Len(t, out, 2)
	assert.True(t, out[0].Custom)
	assert.Regexp(t, `^custom_[0-9a-f]{10}$`, out[0].ID)
	assert.Equal(t, "keep_me", out[1].ID)
}

func TestNormalizeNames(t *testing.T) {
	assert.Equal(t, []string{"Front Squat", "Plank"}, NormalizeNames([]string{" Front Squat", "front squat", "", "Plank"}))
}
