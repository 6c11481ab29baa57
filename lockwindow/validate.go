package lockwindow

import (
	"FocusLock/models"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRule is wrapped by every error Validate returns.
var ErrInvalidRule = errors.New("invalid rule")

// Validate rejects the input that Evaluate would silently ignore. Every
// problem found is reported in one error.
func Validate(rule models.AppRule) error {
	var problems []string
	if strings.TrimSpace(rule.PackageName) == "" {
		problems = append(problems, "package name is required")
	}
	if rule.UsageLimitMinutes < 0 || rule.UsageLimitMinutes > minutesPerDay {
		problems = append(problems, fmt.Sprintf("usage limit %d out of range 0..%d", rule.UsageLimitMinutes, minutesPerDay))
	}
	problems = append(problems, scheduleProblems(rule.Schedules)...)

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidRule, strings.Join(problems, "; "))
}

// ValidateSchedules checks schedules on their own.
func ValidateSchedules(schedules []models.Schedule) error {
	problems := scheduleProblems(schedules)
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidRule, strings.Join(problems, "; "))
}

func scheduleProblems(schedules []models.Schedule) []string {
	var problems []string
	for i, s := range schedules {
		if s.Type != models.ScheduleLock && s.Type != models.ScheduleUnlock {
			problems = append(problems, fmt.Sprintf("schedule %d: unknown type %q", i, s.Type))
		}
		for j, r := range s.TimeRanges {
			for _, p := range rangeProblems(r) {
				problems = append(problems, fmt.Sprintf("schedule %d range %d: %s", i, j, p))
			}
		}
	}
	return problems
}

func rangeProblems(r models.TimeRange) []string {
	var problems []string
	if r.StartHour < 0 || r.StartHour > 23 {
		problems = append(problems, fmt.Sprintf("start hour %d out of range", r.StartHour))
	}
	if r.EndHour < 0 || r.EndHour > 23 {
		problems = append(problems, fmt.Sprintf("end hour %d out of range", r.EndHour))
	}
	if r.StartMinute < 0 || r.StartMinute > 59 {
		problems = append(problems, fmt.Sprintf("start minute %d out of range", r.StartMinute))
	}
	if r.EndMinute < 0 || r.EndMinute > 59 {
		problems = append(problems, fmt.Sprintf("end minute %d out of range", r.EndMinute))
	}
	if len(r.Days) == 0 {
		problems = append(problems, "no days")
	}
	seen := make(map[int]bool, len(r.Days))
	for _, d := range r.Days {
		if d < 0 || d > 6 {
			problems = append(problems, fmt.Sprintf("day %d out of range 0..6", d))
			continue
		}
		if seen[d] {
			problems = append(problems, fmt.Sprintf("day %d listed twice", d))
		}
		seen[d] = true
	}
	return problems
}
