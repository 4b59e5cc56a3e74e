package planner

import (
	"slices"
	"strings"
	"time"

	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/utils"
)

// Layout is the template of one day.
type Layout struct {
	// Key prefixes the manual slot keys, e.g. "a" for "a_lower".
	Key   string
	Name  string
	Slots []Slot
	// Fixed layouts never get the extra duration-based accessory.
	Fixed bool
}

var (
	pushTags     = []string{"bench", "push", "press"}
	pullTags     = []string{"row", "pull", "pullup"}
	noSquat      = []string{"squat"}
	noHinge      = []string{"deadlift", "hinge"}
	noMainLowers = []string{"squat", "deadlift", "hinge"}
)

func mainLower(family models.LowerFamily, squatNames, deadliftNames []string) Slot {
	if family == models.LowerDeadlift {
		return Slot{Type: models.ItemMainLower, Role: "lower", Candidates: deadliftNames,
			TagsAny: []string{"deadlift", "hinge"}, FallbackTags: []string{"hinge"}, Disallow: noSquat}
	}
	return Slot{Type: models.ItemMainLower, Role: "lower", Candidates: squatNames,
		TagsAny: []string{"squat"}, FallbackTags: []string{"leg"}, Disallow: noHinge}
}

func singleLeg(t models.ItemType, role string) Slot {
	return Slot{Type: t, Role: role, Candidates: []string{"Bulgarian Split Squat", "Walking Lunge"},
		TagsAny: []string{"lunge", "single_leg"}, FallbackTags: []string{"leg"}, Disallow: noMainLowers}
}

func push(names ...string) Slot {
	return Slot{Type: models.ItemMainPush, Role: "push", Candidates: names, TagsAny: pushTags,
		FallbackTags: []string{"push"}, Disallow: noSquat}
}

func pull(names ...string) Slot {
	return Slot{Type: models.ItemMainPull, Role: "pull", Candidates: names, TagsAny: pullTags,
		FallbackTags: []string{"pull"}}
}

var (
	shoulderSlot = Slot{Type: models.ItemAccessory, TagsAny: []string{"shoulders", "rear_delt"}, FallbackTags: []string{"shoulders"}}
	armsSlot     = Slot{Type: models.ItemAccessory2, TagsAny: []string{"arms"}, FallbackTags: []string{"arms"}}
	coreSlot     = Slot{Type: models.ItemCore, TagsAny: []string{"core"}, FallbackTags: []string{"core"}}
)

// fullBody returns the A, B or C full-body template.
func fullBody(letter string, family models.LowerFamily) []Slot {
	switch letter {
	case "B":
		return []Slot{
			mainLower(family, []string{"Pause Squat", "Back Squat"}, []string{"Romanian Deadlift", "Deadlift"}),
			push("Overhead Press", "Dumbbell Shoulder Press"),
			pull("Pull-Up", "Lat Pulldown"),
			shoulderSlot,
			coreSlot,
		}
	case "C":
		return []Slot{
			singleLeg(models.ItemMainLower, "lower"),
			push("Close-Grip Bench Press", "Dumbbell Bench Press"),
			pull("Dumbbell Row", "Barbell Row"),
			shoulderSlot,
			coreSlot,
		}
	}
	return []Slot{
		mainLower(family, []string{"Back Squat"}, []string{"Deadlift"}),
		push("Bench Press"),
		pull("Barbell Row"),
		shoulderSlot,
		coreSlot,
	}
}

func upperLayout(second bool) Layout {
	p, q := push("Bench Press"), pull("Barbell Row")
	if second {
		p, q = push("Overhead Press", "Dumbbell Shoulder Press"), pull("Pull-Up", "Lat Pulldown")
	}
	return Layout{Key: "upper", Name: "Upper", Fixed: true, Slots: []Slot{p, q, shoulderSlot, armsSlot, coreSlot}}
}

func lowerLayout(family models.LowerFamily) Layout {
	if family == models.LowerDeadlift {
		return Layout{Key: "lower_deadlift", Name: "Lower (Deadlift)", Fixed: true, Slots: []Slot{
			mainLower(models.LowerDeadlift, nil, []string{"Deadlift", "Trap Bar Deadlift"}),
			singleLeg(models.ItemAccessory, ""),
			coreSlot,
		}}
	}
	return Layout{Key: "lower_squat", Name: "Lower (Squat)", Fixed: true, Slots: []Slot{
		mainLower(models.LowerSquat, []string{"Back Squat", "Pause Squat"}, nil),
		{Type: models.ItemAccessory, Candidates: []string{"Romanian Deadlift"}, TagsAny: []string{"hinge"}, FallbackTags: []string{"leg"}},
		coreSlot,
	}}
}

// DateLetter is the plain A/B/C split by weekday: Mon-Tue A, Wed-Thu B, rest C.
func DateLetter(weekday int) string {
	switch {
	case weekday <= 1:
		return "A"
	case weekday <= 3:
		return "B"
	}
	return "C"
}

// ResolveLayout picks the template for weekday. cycle is nil when no cycle
// applies to weekStart.
func ResolveLayout(cycle *models.CycleConfig, weekStart time.Time, weekday int, mode models.PlanningMode, family models.LowerFamily) Layout {
	if cycle != nil && cycle.IsTrainingDay(weekday) {
		pos := slices.Index(cycle.TrainingWeekdays, weekday)
		switch cycle.Program {
		case models.ProgramUpperLower4Day:
			switch pos % 4 {
			case 1:
				return lowerLayout(models.LowerSquat)
			case 3:
				return lowerLayout(models.LowerDeadlift)
			}
			return upperLayout(pos%4 == 2)
		case models.ProgramFullBodyABC, models.ProgramFullBody2Day:
			if mode == models.PlanningManual {
				break
			}
			start, _ := cycle.Start()
			ordinal := utils.FloorWeeks(start, weekStart)*len(cycle.TrainingWeekdays) + pos
			rotation := 3
			if cycle.Program == models.ProgramFullBody2Day {
				rotation = 2
			}
			letter := string(rune('A' + ordinal%rotation))
			return Layout{Key: strings.ToLower(letter), Name: "Dag " + letter, Slots: fullBody(letter, family)}
		}
	}
	letter := DateLetter(weekday)
	return Layout{Key: strings.ToLower(letter), Name: "Full Body " + letter, Slots: fullBody(letter, family)}
}
