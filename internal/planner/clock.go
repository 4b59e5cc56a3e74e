package planner

import (
	"time"

	"github.com/misterclayt0n/weekplan/internal/utils"
)

// Clock is the only source of "now" for generation and rollover.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// RolloverHour is the local hour on Monday at which a new week begins.
const RolloverHour = 1

// EffectiveToday returns the calendar date of now in loc, except that the
// first hour of Monday still counts as the previous Sunday.
func EffectiveToday(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	if local.Weekday() == time.Monday && local.Hour() < RolloverHour {
		local = local.AddDate(0, 0, -1)
	}
	return utils.Date(local)
}

// CurrentWeekStart is the Monday of the effective current week.
func CurrentWeekStart(now time.Time, loc *time.Location) time.Time {
	return utils.WeekStart(EffectiveToday(now, loc))
}
