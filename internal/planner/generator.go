package planner

import (
	"slices"
	"time"

	"github.com/misterclayt0n/weekplan/internal/catalog"
	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/utils"
)

// FallbackLowerExercise fills main_lower when nothing in the library may,
// unless it is disabled itself, in which case the slot is left out.
const FallbackLowerExercise = "Bodyweight Squat"

// Input is everything one generation call depends on.
type Input struct {
	// Profile is the effective person: overrides for duration and preferred
	// exercises already applied.
	Profile   models.Person
	Library   *catalog.Library
	Disabled  []string
	Overrides models.Overrides
	WeekStart time.Time
	Weekday   int
	// Existing is the stored plan for the same person and week, if any. It is
	// not modified.
	Existing *models.Plan
	Now      time.Time
	Location *time.Location
}

// Generate builds the workout for one day and merges it into the week's plan.
// It never fails: malformed settings degrade to defaults.
func Generate(in Input) models.Plan {
	weekStart := utils.WeekStart(in.WeekStart)
	weekday := models.ClampInt(in.Weekday, 0, 6)
	date := weekStart.AddDate(0, 0, weekday)
	_, weekNumber := weekStart.ISOWeek()

	profile := in.Profile
	units := models.ParseUnits(string(profile.Units))
	gender := models.ParseGender(string(profile.Gender))
	duration := profile.DurationMinutes
	if duration <= 0 {
		duration = models.DefaultDurationMinutes
	}
	mode := models.ParsePlanningMode(string(in.Overrides.PlanningMode))
	intensity := models.ParseIntensity(string(in.Overrides.Intensity))

	lib := in.Library
	if lib == nil {
		lib = catalog.New(nil)
	}
	picker := NewPicker(lib, profile.Equipment, profile.PreferredExercises, in.Disabled)
	family := resolveLowerFamily(in.Existing, in.Overrides.SessionOverrides, picker, profile.PreferredExercises)

	w := models.Workout{
		Date:      utils.FormatDate(date),
		Weekday:   weekday,
		Intensity: intensity,
	}

	var (
		cycle   *models.CycleConfig
		schemes Schemes
		factor  = 1.0
	)
	if c := profile.ActiveCycle(); c != nil {
		norm := c.Normalized()
		if phase, ok := Periodize(norm, weekStart); ok {
			cycle = &norm
			schemes = PresetSchemes(norm.Preset).Scaled(phase.VolumeFactor)
			factor = phase.LoadFactor
			w.Cycle = &models.CycleSnapshot{
				Enabled:      true,
				Preset:       norm.Preset,
				Program:      norm.Program,
				StartWeek:    norm.StartWeek,
				Weeks:        norm.Weeks,
				WeekIndex:    phase.WeekIndex,
				IsDeload:     phase.IsDeload,
				LoadFactor:   phase.LoadFactor,
				VolumeFactor: phase.VolumeFactor,
			}
		}
	}
	if cycle == nil {
		schemes = DefaultSchemes(intensity, gender)
		prog := in.Overrides.Progression
		step := prog.StepPct.Or(models.DefaultStepPct)
		offset := utils.WeeksBetween(CurrentWeekStart(in.Now, in.Location), weekStart)
		if prog.Enabled {
			factor = LinearFactor(step, offset)
		}
		w.Progression = &models.ProgressionSnapshot{
			Enabled:     prog.Enabled,
			StepPct:     step,
			OffsetWeeks: offset,
			LoadFactor:  factor,
		}
	}

	layout := ResolveLayout(cycle, weekStart, weekday, mode, family)
	w.Name = layout.Name
	slots := slices.Clone(layout.Slots)
	if !layout.Fixed && duration >= 60 {
		at := slices.IndexFunc(slots, func(s Slot) bool { return s.Type == models.ItemCore })
		if at < 0 {
			at = len(slots)
		}
		slots = slices.Insert(slots, at, armsSlot)
	}

	used := make(map[string]bool, len(slots))
	for _, slot := range slots {
		ex, ok := pickSlot(picker, layout.Key, slot, mode, in.Overrides.SessionOverrides, used)
		if !ok {
			if slot.Type != models.ItemMainLower || picker.Disabled(FallbackLowerExercise) {
				continue
			}
			ex = models.Exercise{Name: FallbackLowerExercise}
		}
		used[ex.Name] = true
		item := models.WorkoutItem{
			Type:     slot.Type,
			Exercise: ex.Name,
			SetsReps: schemes.For(slot.Type).String(),
		}
		applyLoad(&item, profile.Maxes, intensity, factor, units)
		w.Items = append(w.Items, item)
	}

	plan := models.Plan{}
	if in.Existing != nil {
		plan = *in.Existing
		plan.Workouts = slices.Clone(in.Existing.Workouts)
	}
	plan.WeekNumber = weekNumber
	plan.WeekStart = utils.FormatDate(weekStart)
	plan.GeneratedAt = in.Now.UTC()
	plan.Profile = models.ProfileSnapshot{Gender: gender, DurationMinutes: duration, Units: units}
	plan.Meta = models.PlanMeta{PlanningMode: mode, LowerFamily: family}
	plan.PutWorkout(w)
	plan.Markdown = RenderMarkdown(plan)
	return plan
}

func pickSlot(p *Picker, layoutKey string, slot Slot, mode models.PlanningMode, manual map[string]string, used map[string]bool) (models.Exercise, bool) {
	if mode == models.PlanningManual && slot.Role != "" {
		if ex, ok := p.Manual(manual[models.SlotKey(layoutKey, slot.Role)], slot); ok {
			return ex, true
		}
	}
	return p.Pick(slot, used)
}

// resolveLowerFamily keeps the week on one primary lower lift: the existing
// plan's family wins, then manual lower picks, then preferences, then squat.
func resolveLowerFamily(existing *models.Plan, manual map[string]string, p *Picker, preferred []string) models.LowerFamily {
	if existing != nil {
		if family := models.ParseLowerFamily(string(existing.Meta.LowerFamily)); family != "" {
			return family
		}
	}
	for _, layout := range []string{"a", "b", "c"} {
		name := manual[models.SlotKey(layout, "lower")]
		ex, ok := p.Manual(name, Slot{})
		if !ok {
			continue
		}
		if ex.HasTag("squat") {
			return models.LowerSquat
		}
		if ex.HasTag("deadlift") || ex.HasTag("hinge") {
			return models.LowerDeadlift
		}
	}
	tokens := utils.TokenSet(preferred)
	switch {
	case tokens["squat"]:
		return models.LowerSquat
	case tokens["deadlift"], tokens["hinge"]:
		return models.LowerDeadlift
	}
	return models.LowerSquat
}
