package models

import "time"

// OneTimeBlock locks an app until EndsAt regardless of its schedules.
type OneTimeBlock struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	DeviceID   uint      `json:"device_id" gorm:"index"`
	AppPackage string    `json:"app_package" gorm:"index"`
	EndsAt     time.Time `json:"ends_at"`
	Duration   string    `json:"duration"` // human readable, e.g. "1.5 hours"
	CreatedAt  time.Time `json:"created_at"`
}

// ActiveAt reports whether the block is still running at t.
func (b OneTimeBlock) ActiveAt(t time.Time) bool {
	return t.Before(b.EndsAt)
}

// TempBlockRequest is the body of a block-once request.
type TempBlockRequest struct {
	AppPackages   []string `json:"app_packages" binding:"required"`
	DurationHours float64  `json:"duration_hours" binding:"required,min=0.5,max=24"`
}
