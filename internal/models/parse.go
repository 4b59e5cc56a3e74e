package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type Units string

const (
	UnitsKg Units = "kg"
	UnitsLb Units = "lb"
)

// PlateIncrement is the smallest load step suggested for the unit system.
func (u Units) PlateIncrement() float64 {
	if u == UnitsLb {
		return 5
	}
	return 2.5
}

type Intensity string

const (
	IntensityEasy   Intensity = "easy"
	IntensityNormal Intensity = "normal"
	IntensityHard   Intensity = "hard"
)

// MainPercent is the share of the 1RM prescribed for main lifts.
func (i Intensity) MainPercent() float64 {
	switch i {
	case IntensityEasy:
		return 0.65
	case IntensityHard:
		return 0.80
	}
	return 0.75
}

type PlanningMode string

const (
	PlanningAuto   PlanningMode = "auto"
	PlanningManual PlanningMode = "manual"
)

type Preset string

const (
	PresetStrength    Preset = "strength"
	PresetHypertrophy Preset = "hypertrophy"
	PresetMinimalist  Preset = "minimalist"
)

type Program string

const (
	ProgramFullBodyABC    Program = "full_body_abc"
	ProgramFullBody2Day   Program = "full_body_2day"
	ProgramUpperLower4Day Program = "upper_lower_4day"
)

type LowerFamily string

const (
	LowerSquat    LowerFamily = "squat"
	LowerDeadlift LowerFamily = "deadlift"
)

func clean(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func ParseGender(raw string) Gender {
	switch clean(raw) {
	case "female", "f", "woman":
		return GenderFemale
	}
	return GenderMale
}

func ParseUnits(raw string) Units {
	switch clean(raw) {
	case "lb", "lbs", "pound", "pounds":
		return UnitsLb
	}
	return UnitsKg
}

func ParseIntensity(raw string) Intensity {
	switch Intensity(clean(raw)) {
	case IntensityEasy:
		return IntensityEasy
	case IntensityHard:
		return IntensityHard
	}
	return IntensityNormal
}

func ParsePlanningMode(raw string) PlanningMode {
	if PlanningMode(clean(raw)) == PlanningManual {
		return PlanningManual
	}
	return PlanningAuto
}

func ParsePreset(raw string) Preset {
	switch Preset(clean(raw)) {
	case PresetHypertrophy:
		return PresetHypertrophy
	case PresetMinimalist:
		return PresetMinimalist
	}
	return PresetStrength
}

func ParseProgram(raw string) Program {
	switch Program(clean(raw)) {
	case ProgramFullBody2Day:
		return ProgramFullBody2Day
	case ProgramUpperLower4Day:
		return ProgramUpperLower4Day
	}
	return ProgramFullBodyABC
}

// ParseLowerFamily returns "" for anything that is not a known family.
func ParseLowerFamily(raw string) LowerFamily {
	switch LowerFamily(clean(raw)) {
	case LowerSquat:
		return LowerSquat
	case LowerDeadlift:
		return LowerDeadlift
	}
	return ""
}

// ParseFloatOr parses raw as a finite float, returning def on any failure.
func ParseFloatOr(raw string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// ParseIntOr parses raw as an integer (accepting "4.0"), returning def on failure.
func ParseIntOr(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	f := ParseFloatOr(raw, math.NaN())
	if math.IsNaN(f) {
		return def
	}
	return int(math.Round(f))
}

func ClampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func ClampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Number is a float that decodes leniently: JSON numbers and numeric strings.
// Anything else decodes as -1, which Or treats as unset. Optional settings are
// held as *Number so that an explicit zero survives and only nil means absent.
type Number float64

const invalidNumber Number = -1

func (n *Number) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = Number(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*n = Number(ParseFloatOr(s, float64(invalidNumber)))
		return nil
	}
	*n = invalidNumber
	return nil
}

// NewNumber returns a pointer to v.
func NewNumber(v float64) *Number {
	n := Number(v)
	return &n
}

// Or returns the value, or def when n is nil, negative or not finite.
// Zero is a value.
func (n *Number) Or(def float64) float64 {
	if n == nil {
		return def
	}
	v := float64(*n)
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}
