package mocks

import (
	"FocusLock/models"
	"time"

	"github.com/stretchr/testify/mock"
)

// OneTimeBlockRepository is a mock type for the OneTimeBlockRepository type
type OneTimeBlockRepository struct {
	mock.Mock
}

func (m *OneTimeBlockRepository) ListActive(deviceID uint, at time.Time) ([]models.OneTimeBlock, error) {
	args := m.Called(deviceID, at)
	return args.Get(0).([]models.OneTimeBlock), args.Error(1)
}

func (m *OneTimeBlockRepository) Add(blocks []models.OneTimeBlock) error {
	args := m.Called(blocks)
	return args.Error(0)
}

func (m *OneTimeBlockRepository) Cancel(deviceID uint, appPackages []string) error {
	args := m.Called(deviceID, appPackages)
	return args.Error(0)
}

func (m *OneTimeBlockRepository) DeleteExpired(before time.Time) (int64, error) {
	args := m.Called(before)
	return args.Get(0).(int64), args.Error(1)
}

// FocusSessionRepository is a mock type for the FocusSessionRepository type
type FocusSessionRepository struct {
	mock.Mock
}

func (m *FocusSessionRepository) FindActive(deviceID uint, at time.Time) (models.FocusSession, error) {
	args := m.Called(deviceID, at)
	return args.Get(0).(models.FocusSession), args.Error(1)
}

func (m *FocusSessionRepository) Save(session *models.FocusSession) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *FocusSessionRepository) DeleteEndedBefore(before time.Time) (int64, error) {
	args := m.Called(before)
	return args.Get(0).(int64), args.Error(1)
}
