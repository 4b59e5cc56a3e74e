package storage

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/misterclayt0n/weekplan/internal/catalog"
	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/utils"
)

const (
	minDurationMinutes = 10
	maxDurationMinutes = 240
)

// NewPersonID returns an opaque person id like "person_3f9a0c12be".
func NewPersonID() string {
	return "person_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
}

// normalizeState repairs a decoded document in place: defaults, clamps,
// retention, expired cycles and the one-time legacy cycle migration.
func normalizeState(st *models.State, now, today time.Time) {
	st.Schema = models.SchemaVersion
	if st.Plans == nil {
		st.Plans = map[string]map[string]models.Plan{}
	}
	if st.People == nil {
		st.People = []models.Person{}
	}

	st.ExerciseConfig.DisabledExercises = catalog.NormalizeNames(st.ExerciseConfig.DisabledExercises)
	st.ExerciseConfig.CustomExercises = catalog.NormalizeCustom(st.ExerciseConfig.CustomExercises)

	seen := map[string]bool{}
	for i := range st.People {
		p := &st.People[i]
		if p.ID == "" || seen[p.ID] {
			p.ID = NewPersonID()
		}
		seen[p.ID] = true
		if p.Color == "" {
			p.Color = models.PersonColors[i%len(models.PersonColors)]
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now.UTC()
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = p.CreatedAt
		}
		normalizePerson(p)
		if p.Cycle != nil && p.Cycle.Expired(today) {
			p.Cycle = nil
		}
	}
	if len(st.People) == 0 {
		st.People = append(st.People, defaultPerson(now))
	}
	if _, ok := st.Person(st.ActivePersonID); !ok {
		st.ActivePersonID = st.People[0].ID
	}

	if legacy := st.Overrides.LegacyCycle; legacy != nil {
		st.Overrides.LegacyCycle = nil
		i := st.PersonIndex(st.ActivePersonID)
		if legacy.Enabled && st.People[i].Cycle == nil {
			cycle := legacy.Normalized()
			if !cycle.Expired(today) && cycle.StartWeek != "" {
				st.People[i].Cycle = &cycle
			}
		}
	}

	normalizeOverrides(&st.Overrides)
	st.History = trimHistory(st.History)
}

func defaultPerson(now time.Time) models.Person {
	p := models.Person{
		ID:        NewPersonID(),
		Name:      models.DefaultPersonName,
		Color:     models.PersonColors[0],
		Equipment: utils.ParseCSV(models.DefaultEquipment),
		Maxes: models.Maxes{
			Squat:    models.DefaultMaxSquat,
			Deadlift: models.DefaultMaxDeadlift,
			Bench:    models.DefaultMaxBench,
		},
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	normalizePerson(&p)
	return p
}

func normalizePerson(p *models.Person) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		p.Name = models.DefaultPersonName
	}
	p.Gender = models.ParseGender(string(p.Gender))
	p.Units = models.ParseUnits(string(p.Units))
	if p.DurationMinutes <= 0 {
		p.DurationMinutes = models.DefaultDurationMinutes
	}
	p.DurationMinutes = models.ClampInt(p.DurationMinutes, minDurationMinutes, maxDurationMinutes)
	p.PreferredExercises = utils.NormalizeTokens(p.PreferredExercises)
	p.Equipment = utils.NormalizeTokens(p.Equipment)
	p.Maxes.Squat = max(0, p.Maxes.Squat)
	p.Maxes.Deadlift = max(0, p.Maxes.Deadlift)
	p.Maxes.Bench = max(0, p.Maxes.Bench)
	if p.Cycle != nil {
		cycle := p.Cycle.Normalized()
		if cycle.StartWeek == "" {
			p.Cycle = nil
		} else {
			p.Cycle = &cycle
		}
	}
}

func normalizeOverrides(o *models.Overrides) {
	o.WeekOffset = models.ClampInt(o.WeekOffset, models.MinWeekOffset, models.MaxWeekOffset)
	if o.SelectedWeekday != nil && (*o.SelectedWeekday < 0 || *o.SelectedWeekday > 6) {
		o.SelectedWeekday = nil
	}
	if o.DurationMinutes < 0 {
		o.DurationMinutes = 0
	}
	if o.DurationMinutes > 0 {
		o.DurationMinutes = models.ClampInt(o.DurationMinutes, minDurationMinutes, maxDurationMinutes)
	}
	o.PreferredExercises = utils.NormalizeTokens(o.PreferredExercises)
	if len(o.PreferredExercises) == 0 {
		o.PreferredExercises = nil
	}
	o.PlanningMode = models.ParsePlanningMode(string(o.PlanningMode))
	o.Intensity = models.ParseIntensity(string(o.Intensity))
	o.Progression.StepPct = models.NewNumber(models.ClampFloat(o.Progression.StepPct.Or(models.DefaultStepPct), 0, 25))

	clean := make(map[string]string, len(o.SessionOverrides))
	for key, name := range o.SessionOverrides {
		key = strings.ToLower(strings.TrimSpace(key))
		name = strings.TrimSpace(name)
		if name != "" && models.IsSlotKey(key) {
			clean[key] = name
		}
	}
	o.SessionOverrides = clean
}

// trimHistory keeps the newest entry per week, newest week first, at most
// HistoryRetention weeks.
func trimHistory(history []models.HistoryEntry) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, len(history))
	seen := map[string]bool{}
	for _, h := range history {
		if h.WeekStart == "" || seen[h.WeekStart] {
			continue
		}
		seen[h.WeekStart] = true
		out = append(out, h)
	}
	slices.SortStableFunc(out, func(a, b models.HistoryEntry) int {
		return strings.Compare(b.WeekStart, a.WeekStart)
	})
	if len(out) > models.HistoryRetention {
		out = out[:models.HistoryRetention]
	}
	return out
}
