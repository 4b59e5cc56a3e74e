package planner

import (
	"strings"

	"github.com/misterclayt0n/weekplan/internal/catalog"
	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/utils"
)

// Slot is one position in a day's template.
type Slot struct {
	Type models.ItemType
	// Role is the manual-pick role ("lower", "push", "pull"); empty means the
	// slot is always picked automatically.
	Role         string
	Candidates   []string
	TagsAny      []string
	FallbackTags []string
	Disallow     []string
}

// Picker chooses exercises deterministically from a library.
type Picker struct {
	lib       *catalog.Library
	equipment map[string]bool
	preferred []string
	disabled  map[string]bool
}

func NewPicker(lib *catalog.Library, equipment, preferred, disabled []string) *Picker {
	return &Picker{
		lib:       lib,
		equipment: utils.TokenSet(equipment),
		preferred: utils.NormalizeTokens(preferred),
		disabled:  utils.TokenSet(disabled),
	}
}

// Disabled reports whether name is on the disabled list.
func (p *Picker) Disabled(name string) bool {
	return p.disabled[strings.ToLower(strings.TrimSpace(name))]
}

func (p *Picker) equipmentOK(ex models.Exercise) bool {
	if len(p.equipment) == 0 || len(ex.Equipment) == 0 {
		return true
	}
	return utils.Intersects(p.equipment, ex.Equipment)
}

func (p *Picker) preferredOK(ex models.Exercise) bool {
	if len(p.preferred) == 0 {
		return true
	}
	name := strings.ToLower(ex.Name)
	for _, token := range p.preferred {
		if strings.Contains(name, token) || ex.HasTag(token) {
			return true
		}
	}
	return false
}

// Pick fills slot automatically. Exercises in used are skipped while an
// unused match exists at the same stage. The boolean is false only when
// every exercise in the library is disabled.
func (p *Picker) Pick(slot Slot, used map[string]bool) (models.Exercise, bool) {
	disallow := utils.TokenSet(slot.Disallow)
	allowed := func(ex models.Exercise) bool {
		return !p.Disabled(ex.Name) && !ex.HasAnyTag(disallow)
	}

	for _, name := range slot.Candidates {
		ex, ok := p.lib.ByName(name)
		if ok && !used[ex.Name] && allowed(ex) && p.equipmentOK(ex) && p.preferredOK(ex) {
			return ex, true
		}
	}

	stages := []func(models.Exercise) bool{
		func(ex models.Exercise) bool {
			return allowed(ex) && p.equipmentOK(ex) && p.preferredOK(ex) && tagsMatch(ex, slot.TagsAny)
		},
		func(ex models.Exercise) bool {
			return len(slot.FallbackTags) > 0 && allowed(ex) && p.equipmentOK(ex) && ex.HasAnyTag(utils.TokenSet(slot.FallbackTags))
		},
		allowed,
		func(ex models.Exercise) bool { return !p.Disabled(ex.Name) },
	}
	for _, keep := range stages {
		if ex, ok := p.first(keep, used); ok {
			return ex, true
		}
	}
	return models.Exercise{}, false
}

// Manual returns the named exercise when it may fill slot: it must exist, be
// enabled and carry none of the slot's disallowed tags.
func (p *Picker) Manual(name string, slot Slot) (models.Exercise, bool) {
	name = strings.TrimSpace(name)
	if name == "" || p.Disabled(name) {
		return models.Exercise{}, false
	}
	ex, ok := p.lib.Lookup(name)
	if !ok || ex.HasAnyTag(utils.TokenSet(slot.Disallow)) {
		return models.Exercise{}, false
	}
	return ex, true
}

// first walks the name-sorted library and returns the first match, preferring
// exercises not yet used.
func (p *Picker) first(keep func(models.Exercise) bool, used map[string]bool) (models.Exercise, bool) {
	var fallback *models.Exercise
	for _, ex := range p.lib.Exercises() {
		if !keep(ex) {
			continue
		}
		if !used[ex.Name] {
			return ex, true
		}
		if fallback == nil {
			fallback = &ex
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return models.Exercise{}, false
}

func tagsMatch(ex models.Exercise, tagsAny []string) bool {
	if len(tagsAny) == 0 {
		return true
	}
	return ex.HasAnyTag(utils.TokenSet(tagsAny))
}
