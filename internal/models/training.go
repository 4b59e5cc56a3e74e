package models

import (
	"encoding/json"
	"slices"
	"time"
)

type ItemType string

const (
	ItemMainLower  ItemType = "main_lower"
	ItemMainPush   ItemType = "main_push"
	ItemMainPull   ItemType = "main_pull"
	ItemAccessory  ItemType = "accessory"
	ItemAccessory2 ItemType = "accessory_2"
	ItemCore       ItemType = "core"
)

// IsMain reports whether the item is one of the main lifts that get a suggested load.
func (t ItemType) IsMain() bool {
	return t == ItemMainLower || t == ItemMainPush || t == ItemMainPull
}

type WorkoutItem struct {
	Type          ItemType `json:"type"`
	Exercise      string   `json:"exercise"`
	SetsReps      string   `json:"sets_reps"`
	SuggestedLoad *float64 `json:"suggested_load,omitempty"`
	Units         Units    `json:"units,omitempty"`
}

// ProgressionSnapshot records the linear progression applied to a workout.
type ProgressionSnapshot struct {
	Enabled     bool    `json:"enabled"`
	StepPct     float64 `json:"step_pct"`
	OffsetWeeks int     `json:"offset_weeks"`
	LoadFactor  float64 `json:"load_factor"`
}

// CycleSnapshot records the periodization phase a workout was generated in.
type CycleSnapshot struct {
	Enabled      bool    `json:"enabled"`
	Preset       Preset  `json:"preset"`
	Program      Program `json:"program"`
	StartWeek    string  `json:"start_week"`
	Weeks        int     `json:"weeks"`
	WeekIndex    int     `json:"week_index"`
	IsDeload     bool    `json:"is_deload"`
	LoadFactor   float64 `json:"load_factor"`
	VolumeFactor float64 `json:"volume_factor"`
}

type Workout struct {
	Date        string               `json:"date"`
	Weekday     int                  `json:"weekday"`
	Name        string               `json:"name"`
	Intensity   Intensity            `json:"intensity"`
	Progression *ProgressionSnapshot `json:"progression,omitempty"`
	Cycle       *CycleSnapshot       `json:"cycle,omitempty"`
	Items       []WorkoutItem        `json:"items"`
	Completed   bool                 `json:"completed"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
}

// LoadFactor is the load multiplier the workout was generated with.
func (w Workout) LoadFactor() float64 {
	switch {
	case w.Cycle != nil && w.Cycle.Enabled:
		return w.Cycle.LoadFactor
	case w.Progression != nil && w.Progression.Enabled && w.Progression.LoadFactor > 0:
		return w.Progression.LoadFactor
	}
	return 1
}

type ProfileSnapshot struct {
	Gender          Gender `json:"gender"`
	DurationMinutes int    `json:"duration_minutes"`
	Units           Units  `json:"units"`
}

type PlanMeta struct {
	PlanningMode PlanningMode `json:"planning_mode"`
	LowerFamily  LowerFamily  `json:"lower_family"`
}

// Plan is one person's week. Workouts hold at most one entry per date.
type Plan struct {
	WeekNumber  int             `json:"week_number"`
	WeekStart   string          `json:"week_start"`
	GeneratedAt time.Time       `json:"generated_at"`
	Profile     ProfileSnapshot `json:"profile"`
	Meta        PlanMeta        `json:"meta"`
	Workouts    []Workout       `json:"workouts"`
	Markdown    string          `json:"markdown"`
}

// WorkoutIndex returns the index of the workout on date, or -1.
func (p *Plan) WorkoutIndex(date string) int {
	return slices.IndexFunc(p.Workouts, func(w Workout) bool { return w.Date == date })
}

// PutWorkout inserts w, replacing any workout on the same date.
func (p *Plan) PutWorkout(w Workout) {
	p.Workouts = slices.DeleteFunc(p.Workouts, func(existing Workout) bool { return existing.Date == w.Date })
	p.Workouts = append(p.Workouts, w)
}

// Clone returns a deep copy of the plan.
func (p Plan) Clone() Plan {
	data, err := json.Marshal(p)
	if err != nil {
		panic("plan is not serializable: " + err.Error())
	}
	var out Plan
	if err := json.Unmarshal(data, &out); err != nil {
		panic("plan does not round-trip: " + err.Error())
	}
	return out
}

// SortedWorkouts returns the workouts ordered by date.
func (p *Plan) SortedWorkouts() []Workout {
	out := slices.Clone(p.Workouts)
	slices.SortStableFunc(out, func(a, b Workout) int {
		switch {
		case a.Date < b.Date:
			return -1
		case a.Date > b.Date:
			return 1
		}
		return 0
	})
	return out
}

// HistoryWorkout is an archived completed workout with the person it belonged to.
type HistoryWorkout struct {
	PersonID    string  `json:"person_id"`
	PersonName  string  `json:"person_name"`
	PersonColor string  `json:"person_color"`
	Date        string  `json:"date"`
	Workout     Workout `json:"workout"`
}

type HistoryEntry struct {
	WeekStart  string           `json:"week_start"`
	ArchivedAt time.Time        `json:"archived_at"`
	Workouts   []HistoryWorkout `json:"workouts"`
}
