package repositories

import (
	"FocusLock/models"
	"time"
)

type OneTimeBlockRepository interface {
	ListActive(deviceID uint, at time.Time) ([]models.OneTimeBlock, error)
	Add(blocks []models.OneTimeBlock) error
	// Cancel removes the device's blocks for the given packages, or all of them when none are given.
	Cancel(deviceID uint, appPackages []string) error
	DeleteExpired(before time.Time) (int64, error)
}

type FocusSessionRepository interface {
	FindActive(deviceID uint, at time.Time) (models.FocusSession, error)
	Save(session *models.FocusSession) error
	DeleteEndedBefore(before time.Time) (int64, error)
}
