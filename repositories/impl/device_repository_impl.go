package impl

import (
	"FocusLock/models"
	"FocusLock/repositories"

	"gorm.io/gorm"
)

type DeviceRepositoryImpl struct {
	DB *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) repositories.DeviceRepository {
	return &DeviceRepositoryImpl{DB: db}
}

func (r *DeviceRepositoryImpl) FindByID(id uint) (models.Device, error) {
	var device models.Device
	if err := r.DB.First(&device, id).Error; err != nil {
		return models.Device{}, translate(err)
	}
	return device, nil
}

func (r *DeviceRepositoryImpl) FindByName(name string) (models.Device, error) {
	var device models.Device
	if err := r.DB.Where("name = ?", name).First(&device).Error; err != nil {
		return models.Device{}, translate(err)
	}
	return device, nil
}

func (r *DeviceRepositoryImpl) FindByOwnerID(ownerID string) ([]models.Device, error) {
	var devices []models.Device
	if err := r.DB.Where("owner_id = ?", ownerID).Order("id").Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

func (r *DeviceRepositoryImpl) List() ([]models.Device, error) {
	var devices []models.Device
	if err := r.DB.Order("id").Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

func (r *DeviceRepositoryImpl) Save(device *models.Device) error {
	return r.DB.Save(device).Error
}
