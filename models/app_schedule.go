package models

import "time"

// AppSchedule is the persisted schedule set of one app on one device.
type AppSchedule struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	DeviceID            uint       `json:"device_id" gorm:"uniqueIndex:idx_schedule_device_package"`
	PackageName         string     `json:"package_name" gorm:"uniqueIndex:idx_schedule_device_package"`
	Schedules           []Schedule `json:"schedules" gorm:"serializer:json"`
	ExcludeFromPomodoro bool       `json:"exclude_from_pomodoro"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (AppSchedule) TableName() string {
	return "app_schedules"
}

// AppUsageLimit is a daily time budget for one app on one device.
type AppUsageLimit struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	DeviceID     uint      `json:"device_id" gorm:"uniqueIndex:idx_limit_device_package"`
	PackageName  string    `json:"package_name" gorm:"uniqueIndex:idx_limit_device_package"`
	LimitMinutes int       `json:"limit_minutes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (AppUsageLimit) TableName() string {
	return "app_usage_limits"
}
