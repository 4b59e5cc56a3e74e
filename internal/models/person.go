package models

import "time"

const (
	DefaultPersonName      = "You"
	DefaultDurationMinutes = 45
	DefaultEquipment       = "bodyweight, dumbbell, barbell, band"
	DefaultMaxSquat        = 100
	DefaultMaxDeadlift     = 120
	DefaultMaxBench        = 80
)

// PersonColors is the display palette handed out to new people in order.
var PersonColors = []string{"#e57373", "#64b5f6", "#81c784", "#ffb74d", "#ba68c8", "#4db6ac", "#f06292", "#a1887f"}

// Maxes are one-rep maxes in the person's units. Zero means unknown.
type Maxes struct {
	Squat    float64 `json:"squat" toml:"squat"`
	Deadlift float64 `json:"deadlift" toml:"deadlift"`
	Bench    float64 `json:"bench" toml:"bench"`
}

type Person struct {
	ID                 string       `json:"id" toml:"id"`
	Name               string       `json:"name" toml:"name"`
	Color              string       `json:"color" toml:"color"`
	Gender             Gender       `json:"gender" toml:"gender"`
	DurationMinutes    int          `json:"duration_minutes" toml:"duration_minutes"`
	PreferredExercises []string     `json:"preferred_exercises" toml:"preferred_exercises"`
	Equipment          []string     `json:"equipment" toml:"equipment"`
	Units              Units        `json:"units" toml:"units"`
	Maxes              Maxes        `json:"maxes" toml:"maxes"`
	Cycle              *CycleConfig `json:"cycle,omitempty" toml:"cycle,omitempty"`
	CreatedAt          time.Time    `json:"created_at" toml:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at" toml:"updated_at"`
}

// ActiveCycle returns the person's cycle when it is enabled, nil otherwise.
func (p Person) ActiveCycle() *CycleConfig {
	if p.Cycle == nil || !p.Cycle.Enabled {
		return nil
	}
	return p.Cycle
}
