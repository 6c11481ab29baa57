package mocks

import (
	"FocusLock/models"

	"github.com/stretchr/testify/mock"
)

// DeviceRepository is a mock type for the DeviceRepository type
type DeviceRepository struct {
	mock.Mock
}

func (m *DeviceRepository) FindByID(id uint) (models.Device, error) {
	args := m.Called(id)
	return args.Get(0).(models.Device), args.Error(1)
}

func (m *DeviceRepository) FindByName(name string) (models.Device, error) {
	args := m.Called(name)
	return args.Get(0).(models.Device), args.Error(1)
}

func (m *DeviceRepository) FindByOwnerID(ownerID string) ([]models.Device, error) {
	args := m.Called(ownerID)
	return args.Get(0).([]models.Device), args.Error(1)
}

func (m *DeviceRepository) List() ([]models.Device, error) {
	args := m.Called()
	return args.Get(0).([]models.Device), args.Error(1)
}

func (m *DeviceRepository) Save(device *models.Device) error {
	args := m.Called(device)
	return args.Error(0)
}
