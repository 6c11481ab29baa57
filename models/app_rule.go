package models

import "fmt"

// ScheduleType tags a schedule as a lock or an unlock window set.
type ScheduleType string

const (
	ScheduleLock   ScheduleType = "lock"
	ScheduleUnlock ScheduleType = "unlock"
)

// TimeRange is a daily window on the listed weekdays (0 = Sunday).
// A range whose end is not after its start continues into the next day.
type TimeRange struct {
	StartHour   int   `json:"startHour" yaml:"startHour"`
	StartMinute int   `json:"startMinute" yaml:"startMinute"`
	EndHour     int   `json:"endHour" yaml:"endHour"`
	EndMinute   int   `json:"endMinute" yaml:"endMinute"`
	Days        []int `json:"days" yaml:"days"`
}

// StartOfRange returns the start as minutes since midnight.
func (r TimeRange) StartOfRange() int {
	return r.StartHour*60 + r.StartMinute
}

// EndOfRange returns the end as minutes since midnight.
func (r TimeRange) EndOfRange() int {
	return r.EndHour*60 + r.EndMinute
}

// String formats the range as "HH:MM-HH:MM [days]".
func (r TimeRange) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d %v", r.StartHour, r.StartMinute, r.EndHour, r.EndMinute, r.Days)
}

// Schedule groups time ranges of one type.
type Schedule struct {
	Type       ScheduleType `json:"type" yaml:"type"`
	TimeRanges []TimeRange  `json:"timeRanges" yaml:"timeRanges"`
}

// AppRule is everything the lock-window evaluator needs to know about one app.
type AppRule struct {
	PackageName         string     `json:"package_name" yaml:"package"`
	Schedules           []Schedule `json:"schedules" yaml:"schedules"`
	UsageLimitMinutes   int        `json:"usage_limit_minutes" yaml:"usageLimitMinutes"`
	UsageTodayMinutes   int        `json:"usage_today_minutes" yaml:"usageTodayMinutes"`
	ExcludeFromPomodoro bool       `json:"exclude_from_pomodoro" yaml:"excludeFromPomodoro"`
}
