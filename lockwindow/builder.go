package lockwindow

import (
	"FocusLock/models"
	"errors"
	"fmt"
)

// RuleBuilder assembles an AppRule step by step and reports every mistake
// at Build time.
//
//	rule, err := lockwindow.NewRule("com.instagram.android").
//		Lock("09:00", "17:00", 1, 2, 3, 4, 5).
//		Unlock("12:00", "13:00", 1, 2, 3, 4, 5).
//		UsageLimit(60).
//		Build()
type RuleBuilder struct {
	errors []error
	rule   models.AppRule
}

func NewRule(packageName string) *RuleBuilder {
	return &RuleBuilder{rule: models.AppRule{PackageName: packageName}}
}

func (b *RuleBuilder) addRange(typ models.ScheduleType, from, to string, days []int) *RuleBuilder {
	r, err := NewTimeRange(from, to, days...)
	if err != nil {
		b.errors = append(b.errors, err)
		return b
	}
	for i := range b.rule.Schedules {
		if b.rule.Schedules[i].Type == typ {
			b.rule.Schedules[i].TimeRanges = append(b.rule.Schedules[i].TimeRanges, r)
			return b
		}
	}
	b.rule.Schedules = append(b.rule.Schedules, models.Schedule{Type: typ, TimeRanges: []models.TimeRange{r}})
	return b
}

// Lock adds a lock window. A "to" clock not after "from" wraps past midnight.
func (b *RuleBuilder) Lock(from, to string, days ...int) *RuleBuilder {
	return b.addRange(models.ScheduleLock, from, to, days)
}

// Unlock adds an unlock window that carves time out of the lock windows.
func (b *RuleBuilder) Unlock(from, to string, days ...int) *RuleBuilder {
	return b.addRange(models.ScheduleUnlock, from, to, days)
}

// UsageLimit sets the daily budget in minutes. Zero disables it.
func (b *RuleBuilder) UsageLimit(minutes int) *RuleBuilder {
	if minutes < 0 {
		b.errors = append(b.errors, fmt.Errorf("usage limit must not be negative, got %d", minutes))
		return b
	}
	b.rule.UsageLimitMinutes = minutes
	return b
}

// UsedToday records how many minutes the app has been used today.
func (b *RuleBuilder) UsedToday(minutes int) *RuleBuilder {
	b.rule.UsageTodayMinutes = minutes
	return b
}

// ExcludeFromPomodoro keeps the app usable during focus sessions.
func (b *RuleBuilder) ExcludeFromPomodoro() *RuleBuilder {
	b.rule.ExcludeFromPomodoro = true
	return b
}

// Build returns the rule, or every error collected while building it.
func (b *RuleBuilder) Build() (models.AppRule, error) {
	if len(b.errors) > 0 {
		return models.AppRule{}, fmt.Errorf("%w: %w", ErrInvalidRule, errors.Join(b.errors...))
	}
	if err := Validate(b.rule); err != nil {
		return models.AppRule{}, err
	}
	return b.rule, nil
}
