// Package lockwindow decides whether an app should be locked at a given
// instant from its lock and unlock windows and its daily usage limit.
//
// Evaluation is pure and fails open: malformed ranges never match, so a bad
// rule can never keep a user out of their own device.
package lockwindow

import (
	"FocusLock/models"
	"time"
)

// Reason explains a Decision.
type Reason string

const (
	ReasonNone         Reason = "none"
	ReasonSchedule     Reason = "schedule"
	ReasonUnlockWindow Reason = "unlock_window"
	ReasonUsageLimit   Reason = "usage_limit"
	ReasonOneTime      Reason = "one_time"
	ReasonFocus        Reason = "focus"
)

// Decision is the outcome of evaluating a rule at one instant.
type Decision struct {
	Locked bool              `json:"locked"`
	Reason Reason            `json:"reason"`
	Range  *models.TimeRange `json:"range,omitempty"`
}

// UsageExceeded reports whether today's usage has used up the daily limit.
// A limit of zero or less means no limit.
func UsageExceeded(rule models.AppRule) bool {
	if rule.UsageLimitMinutes <= 0 {
		return false
	}
	used := rule.UsageTodayMinutes
	if used < 0 {
		used = 0
	}
	return used >= rule.UsageLimitMinutes
}

// Evaluate decides the lock state of rule at the instant at, read in at's
// own location. The usage limit wins over everything, an unlock window wins
// over a lock window.
func Evaluate(rule models.AppRule, at time.Time) Decision {
	if UsageExceeded(rule) {
		return Decision{Locked: true, Reason: ReasonUsageLimit}
	}
	return evaluateSchedule(rule.Schedules, at)
}

// IsLocked is Evaluate reduced to its verdict.
func IsLocked(rule models.AppRule, at time.Time) bool {
	return Evaluate(rule, at).Locked
}

func evaluateSchedule(schedules []models.Schedule, at time.Time) Decision {
	day, minute := clock(at)

	lockHit := matchType(schedules, models.ScheduleLock, day, minute)
	if lockHit == nil {
		return Decision{Reason: ReasonNone}
	}
	if unlockHit := matchType(schedules, models.ScheduleUnlock, day, minute); unlockHit != nil {
		return Decision{Locked: false, Reason: ReasonUnlockWindow, Range: unlockHit}
	}
	return Decision{Locked: true, Reason: ReasonSchedule, Range: lockHit}
}

// matchType returns the first range of the given schedule type covering the
// instant, or nil.
func matchType(schedules []models.Schedule, typ models.ScheduleType, day, minute int) *models.TimeRange {
	for _, s := range schedules {
		if s.Type != typ {
			continue
		}
		for i := range s.TimeRanges {
			if rangeContains(s.TimeRanges[i], day, minute) {
				r := s.TimeRanges[i]
				return &r
			}
		}
	}
	return nil
}
