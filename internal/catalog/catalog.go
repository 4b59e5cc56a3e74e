package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/misterclayt0n/weekplan/internal/models"
)

//go:embed exercises.toml
var builtinTOML string

var builtin = sync.OnceValues(func() ([]models.Exercise, error) {
	exercises, err := ParseTOML(builtinTOML)
	if err != nil {
		return nil, fmt.Errorf("Failed to parse built-in exercises: %w", err)
	}
	return exercises, nil
})

// Builtin returns a copy of the embedded exercise library.
func Builtin() ([]models.Exercise, error) {
	exercises, err := builtin()
	if err != nil {
		return nil, err
	}
	return slices.Clone(exercises), nil
}

// ParseTOML decodes a list of [[exercise]] tables.
func ParseTOML(data string) ([]models.Exercise, error) {
	var doc models.ExerciseImport
	if _, err := toml.Decode(data, &doc); err != nil {
		return nil, fmt.Errorf("Failed to decode exercises: %w", err)
	}
	out := make([]models.Exercise, 0, len(doc.Exercises))
	for _, ex := range doc.Exercises {
		ex.Name = strings.TrimSpace(ex.Name)
		if ex.Name == "" {
			continue
		}
		out = append(out, ex.Normalized())
	}
	return out, nil
}

// Library is an immutable, name-sorted exercise catalog. Safe for concurrent reads.
type Library struct {
	exercises []models.Exercise
	byName    map[string]models.Exercise
}

// New builds a library from exercises. Empty names are skipped and the first
// exercise with a given name wins.
func New(exercises []models.Exercise) *Library {
	lib := &Library{byName: make(map[string]models.Exercise, len(exercises))}
	for _, ex := range exercises {
		ex.Name = strings.TrimSpace(ex.Name)
		if ex.Name == "" {
			continue
		}
		if _, dup := lib.byName[ex.Name]; dup {
			continue
		}
		ex = ex.Normalized()
		lib.byName[ex.Name] = ex
		lib.exercises = append(lib.exercises, ex)
	}
	slices.SortStableFunc(lib.exercises, func(a, b models.Exercise) int {
		return strings.Compare(a.Name, b.Name)
	})
	return lib
}

// Load merges the built-in library with custom exercises. A custom exercise
// whose name matches a built-in one (case-insensitively) is dropped.
func Load(custom []models.Exercise) (*Library, error) {
	exercises, err := Builtin()
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(exercises))
	for _, ex := range exercises {
		taken[strings.ToLower(ex.Name)] = true
	}
	for _, ex := range custom {
		if taken[strings.ToLower(strings.TrimSpace(ex.Name))] {
			continue
		}
		ex.Custom = true
		exercises = append(exercises, ex)
	}
	return New(exercises), nil
}

// Exercises returns the exercises sorted by name.
func (l *Library) Exercises() []models.Exercise {
	return slices.Clone(l.exercises)
}

func (l *Library) Len() int {
	return len(l.exercises)
}

// ByName looks up an exercise by its exact display name.
func (l *Library) ByName(name string) (models.Exercise, bool) {
	ex, ok := l.byName[name]
	return ex, ok
}

// Lookup finds an exercise by name ignoring case and surrounding space.
func (l *Library) Lookup(name string) (models.Exercise, bool) {
	if ex, ok := l.byName[name]; ok {
		return ex, true
	}
	name = strings.ToLower(strings.TrimSpace(name))
	for _, ex := range l.exercises {
		if strings.ToLower(ex.Name) == name {
			return ex, true
		}
	}
	return models.Exercise{}, false
}

// NormalizeCustom trims, de-duplicates (case-insensitively, first wins) and
// marks custom exercises, assigning ids where missing.
func NormalizeCustom(in []models.Exercise) []models.Exercise {
	out := make([]models.Exercise, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, ex := range in {
		ex.Name = strings.TrimSpace(ex.Name)
		key := strings.ToLower(ex.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		ex = ex.Normalized()
		ex.Custom = true
		if strings.TrimSpace(ex.ID) == "" {
			ex.ID = NewCustomID()
		}
		out = append(out, ex)
	}
	return out
}

// NewCustomID returns an id for a user-added exercise.
func NewCustomID() string {
	return "custom_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
}

// NormalizeNames trims and de-duplicates exercise names case-insensitively,
// keeping the first spelling.
func NormalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		key := strings.ToLower(n)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}
