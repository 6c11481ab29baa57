package lockwindow

import (
	"FocusLock/models"
	"sort"
	"time"

	"github.com/dromara/carbon/v2"
)

// transitionHorizonDays bounds the search. A weekly schedule that has not
// flipped within eight days never will.
const transitionHorizonDays = 8

// NextTransition returns the first instant after at where the schedule part
// of the decision changes. The usage limit is left out because it depends on
// future usage. ok is false when nothing changes within the horizon.
func NextTransition(rule models.AppRule, at time.Time) (next time.Time, ok bool) {
	boundaries := boundaryMinutes(rule.Schedules)
	if len(boundaries) == 0 {
		return time.Time{}, false
	}

	current := evaluateSchedule(rule.Schedules, at).Locked
	for d := 0; d <= transitionHorizonDays; d++ {
		for _, m := range boundaries {
			candidate := wallClock(carbon.NewCarbon(at).StartOfDay().AddDays(d), m)
			if !candidate.After(at) {
				continue
			}
			if evaluateSchedule(rule.Schedules, candidate).Locked != current {
				return candidate, true
			}
		}
	}
	return time.Time{}, false
}

// wallClock returns minute m of day. A minute skipped by a forward clock
// change maps to the first instant after the gap.
func wallClock(day *carbon.Carbon, m int) time.Time {
	t := day.SetHour(m / 60).SetMinute(m % 60).StdTime()
	wall := t.Hour()*60 + t.Minute()
	switch {
	case wall < m:
		if _, end := t.ZoneBounds(); !end.IsZero() {
			return end
		}
	case wall > m:
		if start, _ := t.ZoneBounds(); !start.IsZero() {
			return start
		}
	}
	return t
}

// boundaryMinutes lists, in ascending order, every minute of day at which
// some well-formed range starts or ends.
func boundaryMinutes(schedules []models.Schedule) []int {
	set := make(map[int]struct{})
	for _, s := range schedules {
		if s.Type != models.ScheduleLock && s.Type != models.ScheduleUnlock {
			continue
		}
		for _, r := range s.TimeRanges {
			for _, sp := range spans(r) {
				set[sp.start] = struct{}{}
				set[sp.end%minutesPerDay] = struct{}{}
			}
		}
	}
	out := make([]int, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Ints(out)
	return out
}
