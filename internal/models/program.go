package models

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/misterclayt0n/weekplan/internal/utils"
)

const (
	DefaultCycleWeeks   = 4
	MaxCycleWeeks       = 12
	DefaultStepPct      = 2.5
	DefaultDeloadPct    = 10
	DefaultDeloadVolume = 0.65
)

// DefaultTrainingWeekdays is Monday, Wednesday, Friday.
var DefaultTrainingWeekdays = []int{0, 2, 4}

// CycleConfig is a multi-week periodization window attached to a person.
type CycleConfig struct {
	Enabled          bool    `json:"enabled" toml:"enabled"`
	Preset           Preset  `json:"preset" toml:"preset"`
	Program          Program `json:"program" toml:"program"`
	StartWeek        string  `json:"start_week" toml:"start_week"`
	TrainingWeekdays []int   `json:"training_weekdays" toml:"training_weekdays"`
	Weeks            int     `json:"weeks" toml:"weeks"`
	StepPct          *Number `json:"step_pct,omitempty" toml:"step_pct"`
	DeloadPct        *Number `json:"deload_pct,omitempty" toml:"deload_pct"`
	DeloadVolume     *Number `json:"deload_volume,omitempty" toml:"deload_volume"`
}

// UnmarshalJSON also accepts start_week_start, the key older documents used
// for the start Monday.
func (c *CycleConfig) UnmarshalJSON(b []byte) error {
	type plain CycleConfig
	var raw struct {
		plain
		StartWeekStart string `json:"start_week_start"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*c = CycleConfig(raw.plain)
	if c.StartWeek == "" {
		c.StartWeek = raw.StartWeekStart
	}
	return nil
}

// PresetDefaults returns step_pct, deload_pct and deload_volume tuned for a preset.
func PresetDefaults(p Preset) (step, deloadPct, deloadVolume float64) {
	switch p {
	case PresetHypertrophy:
		return 2.5, 12.5, 0.75
	case PresetMinimalist:
		return 2.0, 15, 0.80
	}
	return 3.0, 10, 0.65
}

// Normalized clamps every field into range and fills defaults. StartWeek is
// snapped to its Monday; an unparseable StartWeek is left empty.
func (c CycleConfig) Normalized() CycleConfig {
	c.Preset = ParsePreset(string(c.Preset))
	c.Program = ParseProgram(string(c.Program))
	if c.Weeks <= 0 {
		c.Weeks = DefaultCycleWeeks
	}
	c.Weeks = ClampInt(c.Weeks, 1, MaxCycleWeeks)
	c.StepPct = NewNumber(ClampFloat(c.StepPct.Or(DefaultStepPct), 0, 25))
	c.DeloadPct = NewNumber(ClampFloat(c.DeloadPct.Or(DefaultDeloadPct), 0, 50))
	c.DeloadVolume = NewNumber(ClampFloat(c.DeloadVolume.Or(DefaultDeloadVolume), 0.1, 1))
	c.TrainingWeekdays = NormalizeWeekdays(c.TrainingWeekdays)
	if len(c.TrainingWeekdays) == 0 {
		c.TrainingWeekdays = slices.Clone(DefaultTrainingWeekdays)
	}
	if start, err := utils.ParseDate(c.StartWeek); err == nil {
		c.StartWeek = utils.FormatDate(utils.WeekStart(start))
	} else {
		c.StartWeek = ""
	}
	return c
}

// Start returns the parsed start Monday.
func (c CycleConfig) Start() (time.Time, bool) {
	start, err := utils.ParseDate(c.StartWeek)
	if err != nil {
		return time.Time{}, false
	}
	return utils.WeekStart(start), true
}

// InWindow reports whether weekStart falls inside [start, start + weeks).
func (c CycleConfig) InWindow(weekStart time.Time) bool {
	start, ok := c.Start()
	if !ok {
		return false
	}
	idx := utils.FloorWeeks(start, weekStart)
	return idx >= 0 && idx < c.Weeks
}

// Expired reports whether the cycle window has fully elapsed by the week of today.
func (c CycleConfig) Expired(today time.Time) bool {
	start, ok := c.Start()
	if !ok {
		return false
	}
	return utils.FloorWeeks(start, utils.WeekStart(today)) >= c.Weeks
}

// IsTrainingDay reports whether weekday (Monday = 0) is one of the cycle's days.
func (c CycleConfig) IsTrainingDay(weekday int) bool {
	return slices.Contains(c.TrainingWeekdays, weekday)
}

// NormalizeWeekdays keeps distinct values in 0..6, sorted.
func NormalizeWeekdays(days []int) []int {
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 || slices.Contains(out, d) {
			continue
		}
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}

// Progression is the linear, non-cyclic load model used when no cycle applies.
type Progression struct {
	Enabled bool    `json:"enabled" toml:"enabled"`
	StepPct *Number `json:"step_pct,omitempty" toml:"step_pct"`
}

const (
	MinWeekOffset = -1
	MaxWeekOffset = 3
)

// Overrides are entry-wide generation settings shared by every person.
type Overrides struct {
	WeekOffset         int               `json:"week_offset"`
	SelectedWeekday    *int              `json:"selected_weekday"`
	DurationMinutes    int               `json:"duration_minutes,omitempty"`
	PreferredExercises []string          `json:"preferred_exercises,omitempty"`
	PlanningMode       PlanningMode      `json:"planning_mode"`
	Intensity          Intensity         `json:"intensity"`
	Progression        Progression       `json:"progression"`
	SessionOverrides   map[string]string `json:"session_overrides"`

	// LegacyCycle is the entry-level cycle older documents carried; it is
	// moved onto the active person on load.
	LegacyCycle *CycleConfig `json:"cycle,omitempty"`
}

func DefaultOverrides() Overrides {
	return Overrides{
		PlanningMode:     PlanningAuto,
		Intensity:        IntensityNormal,
		Progression:      Progression{Enabled: true, StepPct: NewNumber(DefaultStepPct)},
		SessionOverrides: map[string]string{},
	}
}

// Slot layouts and roles that can carry a manual pick.
var (
	SlotLayouts = []string{"a", "b", "c", "upper", "lower_squat", "lower_deadlift"}
	SlotRoles   = []string{"lower", "push", "pull"}
)

// SlotKey joins a layout and a role, e.g. "a_lower".
func SlotKey(layout, role string) string {
	return layout + "_" + role
}

// IsSlotKey reports whether key names a known layout/role pair.
func IsSlotKey(key string) bool {
	for _, l := range SlotLayouts {
		for _, r := range SlotRoles {
			if key == SlotKey(l, r) {
				return true
			}
		}
	}
	return false
}
