package models

import (
	"encoding/json"
	"slices"
	"time"
)

const (
	SchemaVersion    = 1
	HistoryRetention = 4
)

// State is the aggregate document persisted per installation.
type State struct {
	Schema         int                        `json:"schema"`
	Rev            int64                      `json:"rev"`
	People         []Person                   `json:"people"`
	ActivePersonID string                     `json:"active_person_id"`
	Overrides      Overrides                  `json:"overrides"`
	Plans          map[string]map[string]Plan `json:"plans"`
	ExerciseConfig ExerciseConfig             `json:"exercise_config"`
	History        []HistoryEntry             `json:"history"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}

func NewState() *State {
	return &State{
		Schema:         SchemaVersion,
		People:         []Person{},
		Overrides:      DefaultOverrides(),
		Plans:          map[string]map[string]Plan{},
		ExerciseConfig: ExerciseConfig{DisabledExercises: []string{}, CustomExercises: []Exercise{}},
		History:        []HistoryEntry{},
	}
}

// Clone returns a deep copy that shares nothing with s.
func (s *State) Clone() *State {
	data, err := json.Marshal(s)
	if err != nil {
		panic("state is not serializable: " + err.Error())
	}
	out := &State{}
	if err := json.Unmarshal(data, out); err != nil {
		panic("state does not round-trip: " + err.Error())
	}
	return out
}

// PersonIndex returns the position of the person with id, or -1.
func (s *State) PersonIndex(id string) int {
	return slices.IndexFunc(s.People, func(p Person) bool { return p.ID == id })
}

// Person returns the person with id.
func (s *State) Person(id string) (Person, bool) {
	if i := s.PersonIndex(id); i >= 0 {
		return s.People[i], true
	}
	return Person{}, false
}

// ActivePerson returns the active person, falling back to the first one.
func (s *State) ActivePerson() (Person, bool) {
	if p, ok := s.Person(s.ActivePersonID); ok {
		return p, true
	}
	if len(s.People) > 0 {
		return s.People[0], true
	}
	return Person{}, false
}

// Plan returns the stored plan for (personID, weekStart).
func (s *State) Plan(personID, weekStart string) (Plan, bool) {
	plan, ok := s.Plans[personID][weekStart]
	return plan, ok
}

// PutPlan stores plan under (personID, weekStart).
func (s *State) PutPlan(personID, weekStart string, plan Plan) {
	if s.Plans == nil {
		s.Plans = map[string]map[string]Plan{}
	}
	if s.Plans[personID] == nil {
		s.Plans[personID] = map[string]Plan{}
	}
	s.Plans[personID][weekStart] = plan
}

//
// For TOML parsing only
//

// ConfigExport is the portable subset of the state: people and exercise
// settings. Plans and history stay behind.
type ConfigExport struct {
	ExportedAt     time.Time      `toml:"exported_at"`
	ActivePersonID string         `toml:"active_person_id"`
	People         []Person       `toml:"person"`
	ExerciseConfig ExerciseConfig `toml:"exercise_config"`
}
