package mocks

import (
	"FocusLock/models"

	"github.com/stretchr/testify/mock"
)

// ScheduleRepository is a mock type for the ScheduleRepository type
type ScheduleRepository struct {
	mock.Mock
}

func (m *ScheduleRepository) FindByPackage(deviceID uint, packageName string) (models.AppSchedule, error) {
	args := m.Called(deviceID, packageName)
	return args.Get(0).(models.AppSchedule), args.Error(1)
}

func (m *ScheduleRepository) ListByDevice(deviceID uint) ([]models.AppSchedule, error) {
	args := m.Called(deviceID)
	return args.Get(0).([]models.AppSchedule), args.Error(1)
}

func (m *ScheduleRepository) Save(schedule *models.AppSchedule) error {
	args := m.Called(schedule)
	return args.Error(0)
}

func (m *ScheduleRepository) Delete(deviceID uint, packageName string) error {
	args := m.Called(deviceID, packageName)
	return args.Error(0)
}

// UsageLimitRepository is a mock type for the UsageLimitRepository type
type UsageLimitRepository struct {
	mock.Mock
}

func (m *UsageLimitRepository) FindByPackage(deviceID uint, packageName string) (models.AppUsageLimit, error) {
	args := m.Called(deviceID, packageName)
	return args.Get(0).(models.AppUsageLimit), args.Error(1)
}

func (m *UsageLimitRepository) ListByDevice(deviceID uint) ([]models.AppUsageLimit, error) {
	args := m.Called(deviceID)
	return args.Get(0).([]models.AppUsageLimit), args.Error(1)
}

func (m *UsageLimitRepository) Save(limit *models.AppUsageLimit) error {
	args := m.Called(limit)
	return args.Error(0)
}

func (m *UsageLimitRepository) Delete(deviceID uint, packageName string) error {
	args := m.Called(deviceID, packageName)
	return args.Error(0)
}
