package models

import "time"

// FocusSession is a Pomodoro run on a device. While it is active every app
// that is not excluded from Pomodoro gets locked.
type FocusSession struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	DeviceID   uint       `json:"device_id" gorm:"index"`
	StartedAt  time.Time  `json:"started_at"`
	PlannedEnd time.Time  `json:"planned_end"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
}

// ActiveAt reports whether the session covers t.
func (s FocusSession) ActiveAt(t time.Time) bool {
	if t.Before(s.StartedAt) || !t.Before(s.PlannedEnd) {
		return false
	}
	return s.EndedAt == nil || t.Before(*s.EndedAt)
}

// EndTime is the moment the session stops locking apps.
func (s FocusSession) EndTime() time.Time {
	if s.EndedAt != nil && s.EndedAt.Before(s.PlannedEnd) {
		return *s.EndedAt
	}
	return s.PlannedEnd
}
