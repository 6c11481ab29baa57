package repositories

import "FocusLock/models"

type ScheduleRepository interface {
	FindByPackage(deviceID uint, packageName string) (models.AppSchedule, error)
	ListByDevice(deviceID uint) ([]models.AppSchedule, error)
	// Save inserts the schedule or replaces the one stored for the same device and package.
	Save(schedule *models.AppSchedule) error
	Delete(deviceID uint, packageName string) error
}

type UsageLimitRepository interface {
	FindByPackage(deviceID uint, packageName string) (models.AppUsageLimit, error)
	ListByDevice(deviceID uint) ([]models.AppUsageLimit, error)
	Save(limit *models.AppUsageLimit) error
	Delete(deviceID uint, packageName string) error
}
