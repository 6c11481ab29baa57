package repositories

import "FocusLock/models"

type DeviceRepository interface {
	FindByID(id uint) (models.Device, error)
	FindByName(name string) (models.Device, error)
	FindByOwnerID(ownerID string) ([]models.Device, error)
	List() ([]models.Device, error)
	Save(device *models.Device) error
}
