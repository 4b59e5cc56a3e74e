package planner

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/weekplan/internal/catalog"
	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/utils"
)

func testLibrary() *catalog.Library {
	ex := func(name string, tags ...string) models.Exercise {
		return models.Exercise{
			ID:        strings.ReplaceAll(strings.ToLower(name), " ", "_"),
			Name:      name,
			Tags:      tags,
			Equipment: []string{"barbell"},
		}
	}
	return catalog.New([]models.Exercise{
		ex("Back Squat", "squat", "leg"),
		ex("Pause Squat", "squat", "leg"),
		ex("Front Squat", "squat", "leg"),
		ex("Deadlift", "deadlift", "hinge"),
		ex("Bench Press", "bench", "push", "press"),
		ex("Close-Grip Bench Press", "bench", "push", "press"),
		ex("Barbell Row", "row", "pull"),
		ex("Dumbbell Row", "row", "pull"),
		ex("Pull-Up", "pullup", "pull"),
		ex("Dumbbell Shoulder Press", "shoulders", "press", "push"),
		ex("Hanging Leg Raise", "core"),
		ex("Ab Wheel Rollout", "core"),
		ex("Plank", "core"),
		ex("Hammer Curl", "arms"),
		ex("Bulgarian Split Squat", "lunge", "single_leg", "leg"),
		ex("Romanian Deadlift", "hinge"),
	})
}

func testPerson() models.Person {
	return models.Person{
		ID:              "person_test",
		Name:            "Tester",
		Gender:          models.GenderMale,
		DurationMinutes: 55,
		Units:           models.UnitsKg,
		Equipment:       []string{"barbell", "dumbbell", "bodyweight", "band"},
		Maxes:           models.Maxes{Squat: 120, Deadlift: 160, Bench: 100},
	}
}

func withCycle(p models.Person, program models.Program, days ...int) models.Person {
	p.Cycle = &models.CycleConfig{
		Enabled:          true,
		Preset:           models.PresetStrength,
		Program:          program,
		StartWeek:        "2026-02-16",
		TrainingWeekdays: days,
		Weeks:            4,
		StepPct:          models.NewNumber(2.5),
		DeloadPct:        models.NewNumber(10),
		DeloadVolume:     models.NewNumber(0.65),
	}
	return p
}

var (
	monday  = mustDate("2026-02-16")
	testNow = time.Date(2026, 2, 16, 10, 0, 0, 0, time.UTC)
)

func mustDate(s string) time.Time {
	d, err := utils.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func baseInput(p models.Person) Input {
	return Input{
		Profile:   p,
		Library:   testLibrary(),
		Overrides: models.DefaultOverrides(),
		WeekStart: monday,
		Now:       testNow,
		Location:  time.UTC,
	}
}

// generateDays generates each weekday in order, feeding the plan forward.
func generateDays(in Input, days ...int) models.Plan {
	var plan *models.Plan
	for _, d := range days {
		in.Weekday = d
		in.Existing = plan
		next := Generate(in)
		plan = &next
	}
	return *plan
}

func workoutOn(t *testing.T, plan models.Plan, date string) models.Workout {
	t.Helper()
	i := plan.WorkoutIndex(date)
	require.GreaterOrEqual(t, i, 0, "workout not found for %s", date)
	return plan.Workouts[i]
}

func itemOf(w models.Workout, typ models.ItemType) (models.WorkoutItem, bool) {
	for _, item := range w.Items {
		if item.Type == typ {
			return item, true
		}
	}
	return models.WorkoutItem{}, false
}

func TestGenerateFullBodyABCRotatesAcrossWeek(t *testing.T) {
	in := baseInput(withCycle(testPerson(), models.ProgramFullBodyABC, 0, 2, 4))
	plan := generateDays(in, 0, 2, 4)

	assert.Equal(t, "Dag A", workoutOn(t, plan, "2026-02-16").Name)
	assert.Equal(t, "Dag B", workoutOn(t, plan, "2026-02-18").Name)
	assert.Equal(t, "Dag C", workoutOn(t, plan, "2026-02-20").Name)
	assert.Len(t, plan.Workouts, 3)
}

func TestGenerateRotationContinuesAcrossWeeks(t *testing.T) {
	in := baseInput(withCycle(testPerson(), models.ProgramFullBodyABC, 0, 3))
	first := generateDays(in, 0, 3)
	in.WeekStart = monday.AddDate(0, 0, 7)
	second := generateDays(in, 0, 3)

	assert.Equal(t, "Dag A", workoutOn(t, first, "2026-02-16").Name)
	assert.Equal(t, "Dag B", workoutOn(t, first, "2026-02-19").Name)
	assert.Equal(t, "Dag C", workoutOn(t, second, "2026-02-23").Name)
	assert.Equal(t, "Dag A", workoutOn(t, second, "2026-02-26").Name)
}

func TestGenerateFullBody2DayAlternates(t *testing.T) {
	in := baseInput(withCycle(testPerson(), models.ProgramFullBody2Day, 1, 4))
	plan := generateDays(in, 1, 4)
	in.WeekStart = monday.AddDate(0, 0, 7)
	next := generateDays(in, 1)

	assert.Equal(t, "Dag A", workoutOn(t, plan, "2026-02-17").Name)
	assert.Equal(t, "Dag B", workoutOn(t, plan, "2026-02-20").Name)
	assert.Equal(t, "Dag A", workoutOn(t, next, "2026-02-24").Name)
}

func TestGenerateUpperLower4DayNames(t *testing.T) {
	in := baseInput(withCycle(testPerson(), models.ProgramUpperLower4Day, 0, 1, 3, 4))
	plan := generateDays(in, 0, 1, 3, 4)

	assert.Equal(t, "Upper", workoutOn(t, plan, "2026-02-16").Name)
	assert.Equal(t, "Lower (Squat)", workoutOn(t, plan, "2026-02-17").Name)
	assert.Equal(t, "Upper", workoutOn(t, plan, "2026-02-19").Name)
	assert.Equal(t, "Lower (Deadlift)", workoutOn(t, plan, "2026-02-20").Name)

	squatDay, ok := itemOf(workoutOn(t, plan, "2026-02-17"), models.ItemMainLower)
	require.True(t, ok)
	assert.Equal(t, "Back Squat", squatDay.Exercise)
	deadliftDay, ok := itemOf(workoutOn(t, plan, "2026-02-20"), models.ItemMainLower)
	require.True(t, ok)
	assert.Equal(t, "Deadlift", deadliftDay.Exercise)

	upper := workoutOn(t, plan, "2026-02-16")
	_, ok = itemOf(upper, models.ItemMainLower)
	assert.False(t, ok)
	assert.Len(t, upper.Items, 5)
}

func TestGenerateFrontSquatNotAutoSelected(t *testing.T) {
	in := baseInput(withCycle(testPerson(), models.ProgramFullBodyABC, 0, 2, 4))
	for _, days := range [][]int{{4}, {0, 2, 4}} {
		plan := generateDays(in, days...)
		for _, w := range plan.Workouts {
			item, ok := itemOf(w, models.ItemMainLower)
			require.True(t, ok)
			assert.NotContains(t, strings.ToLower(item.Exercise), "front squat")
		}
	}
}

func TestGenerateCycleWorkoutContents(t *testing.T) {
	in := baseInput(withCycle(testPerson(), models.ProgramFullBodyABC, 0, 2, 4))
	in.Weekday = 0
	plan := Generate(in)
	w := workoutOn(t, plan, "2026-02-16")

	want := []models.WorkoutItem{
		{Type: models.ItemMainLower, Exercise: "Back Squat", SetsReps: "4 x 5"},
		{Type: models.ItemMainPush, Exercise: "Bench Press", SetsReps: "4 x 5"},
		{Type: models.ItemMainPull, Exercise: "Barbell Row", SetsReps: "4 x 5"},
		{Type: models.ItemAccessory, Exercise: "Dumbbell Shoulder Press", SetsReps: "3 x 8"},
		{Type: models.ItemCore, Exercise: "Ab Wheel Rollout", SetsReps: "3 x 12"},
	}
	require.Len(t, w.Items, len(want))
	for i, item := range w.Items {
		assert.Equal(t, want[i].Type, item.Type)
		assert.Equal(t, want[i].Exercise, item.Exercise)
		assert.Equal(t, want[i].SetsReps, item.SetsReps)
	}
	require.NotNil(t, w.Items[0].SuggestedLoad)
	assert.Equal(t, 90.0, *w.Items[0].SuggestedLoad)
	assert.Equal(t, models.UnitsKg, w.Items[0].Units)
	require.NotNil(t, w.Items[1].SuggestedLoad)
	assert.Equal(t, 75.0, *w.Items[1].SuggestedLoad)
	assert.Nil(t, w.Items[2].SuggestedLoad)
	assert.Nil(t, w.Items[3].SuggestedLoad)

	require.NotNil(t, w.Cycle)
	assert.Equal(t, 0, w.Cycle.WeekIndex)
	assert.False(t, w.Cycle.IsDeload)
	assert.Nil(t, w.Progression)
}

func TestGenerateDeloadWeek(t *testing.T) {
	in := baseInput(withCycle(testPerson(), models.ProgramFullBodyABC, 0, 2, 4))
	in.WeekStart = mustDate("2026-03-09")
	in.Weekday = 0
	plan := Generate(in)
	w := workoutOn(t, plan, "2026-03-09")

	require.NotNil(t, w.Cycle)
	assert.True(t, w.Cycle.IsDeload)
	assert.Equal(t, 3, w.Cycle.WeekIndex)

	lower, ok := itemOf(w, models.ItemMainLower)
	require.True(t, ok)
	assert.Equal(t, "3 x 5", lower.SetsReps)
	require.NotNil(t, lower.SuggestedLoad)
	assert.Equal(t, 80.0, *lower.SuggestedLoad)

	acc, ok := itemOf(w, models.ItemAccessory)
	require.True(t, ok)
	assert.Equal(t, "2 x 8", acc.SetsReps)
}

func TestGenerateLoadRoundingWithoutPeriodization(t *testing.T) {
	in := baseInput(testPerson())
	in.Overrides.Progression.Enabled = false
	in.WeekStart = mustDate("2026-03-02")
	in.Weekday = 0
	plan := Generate(in)

	lower, ok := itemOf(workoutOn(t, plan, "2026-03-02"), models.ItemMainLower)
	require.True(t, ok)
	assert.Equal(t, "Back Squat", lower.Exercise)
	require.NotNil(t, lower.SuggestedLoad)
	assert.Equal(t, 90.0, *lower.SuggestedLoad)
}

func TestGenerateLinearProgression(t *testing.T) {
	tests := []struct {
		name      string
		weekStart string
		want      float64
	}{
		{"current week", "2026-02-16", 90},
		{"next week", "2026-02-23", 92.5},
		{"last week", "2026-02-09", 87.5},
		{"clamped far future", "2026-12-28", 107.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput(testPerson())
			in.WeekStart = mustDate(tt.weekStart)
			plan := Generate(in)

			w := workoutOn(t, plan, tt.weekStart)
			require.NotNil(t, w.Progression)
			lower, ok := itemOf(w, models.ItemMainLower)
			require.True(t, ok)
			require.NotNil(t, lower.SuggestedLoad)
			assert.Equal(t, tt.want, *lower.SuggestedLoad)
		})
	}
}

func TestGenerateZeroStepKeepsLoadFlat(t *testing.T) {
	t.Run("linear", func(t *testing.T) {
		in := baseInput(testPerson())
		in.Overrides.Progression = models.Progression{Enabled: true, StepPct: models.NewNumber(0)}
		in.WeekStart = mustDate("2026-03-02")
		plan := Generate(in)

		w := workoutOn(t, plan, "2026-03-02")
		require.NotNil(t, w.Progression)
		assert.Equal(t, 2, w.Progression.OffsetWeeks)
		assert.Equal(t, 0.0, w.Progression.StepPct)
		assert.Equal(t, 1.0, w.Progression.LoadFactor)
		lower := mustItem(t, w, models.ItemMainLower)
		assert.Equal(t, "Back Squat", lower.Exercise)
		require.NotNil(t, lower.SuggestedLoad)
		assert.Equal(t, 90.0, *lower.SuggestedLoad)
	})

	t.Run("cycle", func(t *testing.T) {
		p := withCycle(testPerson(), models.ProgramFullBodyABC, 0, 2, 4)
		p.Cycle.StepPct = models.NewNumber(0)
		p.Cycle.DeloadPct = models.NewNumber(0)
		in := baseInput(p)
		in.Weekday = 0

		in.WeekStart = mustDate("2026-03-02")
		w := workoutOn(t, Generate(in), "2026-03-02")
		require.NotNil(t, w.Cycle)
		assert.Equal(t, 2, w.Cycle.WeekIndex)
		assert.Equal(t, 1.0, w.Cycle.LoadFactor)

		in.WeekStart = mustDate("2026-03-09")
		w = workoutOn(t, Generate(in), "2026-03-09")
		require.NotNil(t, w.Cycle)
		assert.True(t, w.Cycle.IsDeload)
		assert.Equal(t, 1.0, w.Cycle.LoadFactor)
	})
}

func TestGenerateIsPure(t *testing.T) {
	in := baseInput(withCycle(testPerson(), models.ProgramFullBodyABC, 0, 2, 4))
	existing := generateDays(in, 0)
	snapshot := existing.Clone()

	in.Existing = &existing
	in.Weekday = 2
	a := Generate(in)
	b := Generate(in)

	assert.Equal(t, a, b)
	assert.Equal(t, snapshot, existing.Clone())
	assert.Len(t, existing.Workouts, 1)
}

func TestGenerateReplacesSameDate(t *testing.T) {
	in := baseInput(testPerson())
	plan := generateDays(in, 0, 0, 2, 2, 0)

	assert.Len(t, plan.Workouts, 2)
	assert.Equal(t, "2026-02-16", plan.Workouts[1].Date)
}

func TestGenerateLowerFamilyPinnedAcrossWeek(t *testing.T) {
	lib := testLibrary()
	in := baseInput(testPerson())
	in.Overrides.PlanningMode = models.PlanningManual
	in.Overrides.SessionOverrides = map[string]string{
		"a_lower": "Deadlift",
		"b_lower": "Back Squat",
	}
	plan := generateDays(in, 0, 1, 2, 3, 4, 5, 6)

	assert.Equal(t, models.LowerDeadlift, plan.Meta.LowerFamily)
	squat, hinge := false, false
	for _, w := range plan.Workouts {
		item, ok := itemOf(w, models.ItemMainLower)
		require.True(t, ok, w.Date)
		ex, ok := lib.ByName(item.Exercise)
		require.True(t, ok, item.Exercise)
		squat = squat || ex.HasTag("squat")
		hinge = hinge || ex.HasTag("deadlift")
	}
	assert.False(t, squat && hinge)
	assert.Equal(t, "Deadlift", mustItem(t, workoutOn(t, plan, "2026-02-16"), models.ItemMainLower).Exercise)
	assert.Equal(t, "Romanian Deadlift", mustItem(t, workoutOn(t, plan, "2026-02-18"), models.ItemMainLower).Exercise)
}

func TestGenerateExistingFamilyWins(t *testing.T) {
	in := baseInput(testPerson())
	existing := models.Plan{Meta: models.PlanMeta{LowerFamily: models.LowerSquat}}
	in.Existing = &existing
	in.Overrides.PlanningMode = models.PlanningManual
	in.Overrides.SessionOverrides = map[string]string{"a_lower": "Deadlift"}
	plan := Generate(in)

	assert.Equal(t, models.LowerSquat, plan.Meta.LowerFamily)
	assert.Equal(t, "Back Squat", mustItem(t, workoutOn(t, plan, "2026-02-16"), models.ItemMainLower).Exercise)
}

func TestGeneratePreferredDeadlift(t *testing.T) {
	p := testPerson()
	p.PreferredExercises = []string{"deadlift"}
	plan := Generate(baseInput(p))

	assert.Equal(t, models.LowerDeadlift, plan.Meta.LowerFamily)
	assert.Equal(t, "Deadlift", mustItem(t, workoutOn(t, plan, "2026-02-16"), models.ItemMainLower).Exercise)
}

func TestGenerateManualPicks(t *testing.T) {
	in := baseInput(testPerson())
	in.Overrides.SessionOverrides = map[string]string{"a_push": "Close-Grip Bench Press"}

	auto := Generate(in)
	assert.Equal(t, "Bench Press", mustItem(t, workoutOn(t, auto, "2026-02-16"), models.ItemMainPush).Exercise)

	in.Overrides.PlanningMode = models.PlanningManual
	manual := Generate(in)
	assert.Equal(t, "Close-Grip Bench Press", mustItem(t, workoutOn(t, manual, "2026-02-16"), models.ItemMainPush).Exercise)
}

func TestGenerateManualPushRejectsSquat(t *testing.T) {
	in := baseInput(testPerson())
	in.Overrides.PlanningMode = models.PlanningManual
	in.Overrides.SessionOverrides = map[string]string{"a_push": "Front Squat"}
	plan := Generate(in)

	assert.Equal(t, "Bench Press", mustItem(t, workoutOn(t, plan, "2026-02-16"), models.ItemMainPush).Exercise)
}

func TestGenerateNeverUsesDisabled(t *testing.T) {
	in := baseInput(testPerson())
	in.Disabled = []string{"back squat", "Bench Press", "Ab Wheel Rollout"}
	in.Overrides.PlanningMode = models.PlanningManual
	in.Overrides.SessionOverrides = map[string]string{
		"a_lower": "Back Squat",
		"a_push":  "Bench Press",
	}
	plan := generateDays(in, 0, 1, 2, 3, 4, 5, 6)

	for _, w := range plan.Workouts {
		for _, item := range w.Items {
			assert.NotEqual(t, "Back Squat", item.Exercise, w.Date)
			assert.NotEqual(t, "Bench Press", item.Exercise, w.Date)
			assert.NotEqual(t, "Ab Wheel Rollout", item.Exercise, w.Date)
		}
	}
	assert.Equal(t, "Front Squat", mustItem(t, workoutOn(t, plan, "2026-02-16"), models.ItemMainLower).Exercise)
}

func TestGenerateDisabledFallbackLeavesLowerOut(t *testing.T) {
	in := baseInput(testPerson())
	for _, ex := range in.Library.Exercises() {
		in.Disabled = append(in.Disabled, ex.Name)
	}
	in.Disabled = append(in.Disabled, "bodyweight squat")
	plan := generateDays(in, 0, 2, 4)

	require.Len(t, plan.Workouts, 3)
	for _, w := range plan.Workouts {
		assert.Empty(t, w.Items, w.Date)
	}

	in.Disabled = in.Disabled[:len(in.Disabled)-1]
	w := workoutOn(t, Generate(in), "2026-02-16")
	require.Len(t, w.Items, 1)
	assert.Equal(t, FallbackLowerExercise, w.Items[0].Exercise)
}

func TestGenerateLongSessionAddsArms(t *testing.T) {
	p := testPerson()
	p.DurationMinutes = 60
	plan := Generate(baseInput(p))
	w := workoutOn(t, plan, "2026-02-16")

	types := make([]models.ItemType, 0, len(w.Items))
	for _, item := range w.Items {
		types = append(types, item.Type)
	}
	assert.Equal(t, []models.ItemType{
		models.ItemMainLower, models.ItemMainPush, models.ItemMainPull,
		models.ItemAccessory, models.ItemAccessory2, models.ItemCore,
	}, types)
	assert.Equal(t, "Hammer Curl", mustItem(t, w, models.ItemAccessory2).Exercise)
	assert.Equal(t, 60, plan.Profile.DurationMinutes)
}

func TestGenerateFallbackNames(t *testing.T) {
	in := baseInput(testPerson())
	plan := generateDays(in, 1, 3, 6)

	assert.Equal(t, "Full Body A", workoutOn(t, plan, "2026-02-17").Name)
	assert.Equal(t, "Full Body B", workoutOn(t, plan, "2026-02-19").Name)
	assert.Equal(t, "Full Body C", workoutOn(t, plan, "2026-02-22").Name)
	assert.Equal(t, 8, plan.WeekNumber)
	assert.Equal(t, "2026-02-16", plan.WeekStart)
}

func TestGenerateNonTrainingDayUsesFallback(t *testing.T) {
	in := baseInput(withCycle(testPerson(), models.ProgramFullBodyABC, 0, 2, 4))
	in.Weekday = 5
	plan := Generate(in)

	w := workoutOn(t, plan, "2026-02-21")
	assert.Equal(t, "Full Body C", w.Name)
	require.NotNil(t, w.Cycle)
}

func TestGenerateBeforeCycleStartUsesLinearModel(t *testing.T) {
	in := baseInput(withCycle(testPerson(), models.ProgramFullBodyABC, 0, 2, 4))
	in.WeekStart = mustDate("2026-02-09")
	plan := Generate(in)

	w := workoutOn(t, plan, "2026-02-09")
	assert.Nil(t, w.Cycle)
	assert.NotNil(t, w.Progression)
	assert.Equal(t, "Full Body A", w.Name)
}

func TestGenerateTolerantOfBadOverrides(t *testing.T) {
	in := baseInput(testPerson())
	in.Overrides = models.Overrides{
		PlanningMode: "sideways",
		Intensity:    "extreme",
		Progression:  models.Progression{Enabled: true, StepPct: models.NewNumber(-4)},
	}
	in.Weekday = 42
	in.Profile.Units = "stone"
	in.Profile.DurationMinutes = -1
	plan := Generate(in)

	w := workoutOn(t, plan, "2026-02-22")
	assert.Equal(t, models.IntensityNormal, w.Intensity)
	assert.Equal(t, models.PlanningAuto, plan.Meta.PlanningMode)
	assert.Equal(t, models.DefaultDurationMinutes, plan.Profile.DurationMinutes)
	assert.Equal(t, models.UnitsKg, plan.Profile.Units)
	assert.Equal(t, models.DefaultStepPct, w.Progression.StepPct)
}

func TestGenerateMarkdown(t *testing.T) {
	in := baseInput(testPerson())
	plan := generateDays(in, 2, 0)

	lines := strings.Split(plan.Markdown, "\n")
	assert.Equal(t, "# Weekly Training Plan (ISO week 8)", lines[0])
	assert.Equal(t, "- Week start: 2026-02-16", lines[1])
	assert.Equal(t, "## Full Body A (2026-02-16)", lines[3])
	assert.Equal(t, "- Back Squat: 3 x 5 @ ~90kg", lines[4])
	assert.Contains(t, plan.Markdown, "## Full Body B (2026-02-18)")
	assert.Less(t, strings.Index(plan.Markdown, "2026-02-16"), strings.Index(plan.Markdown, "2026-02-18"))
}

func mustItem(t *testing.T, w models.Workout, typ models.ItemType) models.WorkoutItem {
	t.Helper()
	item, ok := itemOf(w, typ)
	require.True(t, ok, "no %s item in %s", typ, w.Date)
	return item
}
