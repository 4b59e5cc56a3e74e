package models

import (
	"slices"

	"github.com/misterclayt0n/weekplan/internal/utils"
)

type Exercise struct {
	ID        string   `json:"id" toml:"id,omitempty"`
	Name      string   `json:"name" toml:"name"`
	Tags      []string `json:"tags" toml:"tags"`
	Equipment []string `json:"equipment" toml:"equipment"`
	Custom    bool     `json:"custom,omitempty" toml:"custom,omitempty"`
}

func (e Exercise) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// HasAnyTag reports whether the exercise carries at least one tag of set.
func (e Exercise) HasAnyTag(set map[string]bool) bool {
	return utils.Intersects(set, e.Tags)
}

// Normalized returns a copy with lowercase de-duplicated tags and equipment.
func (e Exercise) Normalized() Exercise {
	e.Tags = utils.NormalizeTokens(e.Tags)
	e.Equipment = utils.NormalizeTokens(e.Equipment)
	return e
}

// ExerciseConfig holds user customizations of the exercise library.
type ExerciseConfig struct {
	DisabledExercises []string   `json:"disabled_exercises" toml:"disabled_exercises"`
	CustomExercises   []Exercise `json:"custom_exercises" toml:"custom_exercises"`
}

//
// For TOML parsing only
//

type ExerciseImport struct {
	Exercises []Exercise `toml:"exercise"`
}
