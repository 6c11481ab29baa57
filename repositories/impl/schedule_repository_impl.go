package impl

import (
	"FocusLock/models"
	"FocusLock/repositories"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScheduleRepositoryImpl struct {
	DB *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) repositories.ScheduleRepository {
	return &ScheduleRepositoryImpl{DB: db}
}

func (r *ScheduleRepositoryImpl) FindByPackage(deviceID uint, packageName string) (models.AppSchedule, error) {
	var schedule models.AppSchedule
	err := r.DB.Where("device_id = ? AND package_name = ?", deviceID, packageName).First(&schedule).Error
	if err != nil {
		return models.AppSchedule{}, translate(err)
	}
	return schedule, nil
}

func (r *ScheduleRepositoryImpl) ListByDevice(deviceID uint) ([]models.AppSchedule, error) {
	var schedules []models.AppSchedule
	if err := r.DB.Where("device_id = ?", deviceID).Order("package_name").Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *ScheduleRepositoryImpl) Save(schedule *models.AppSchedule) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}, {Name: "package_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"schedules", "exclude_from_pomodoro", "updated_at"}),
	}).Create(schedule).Error
}

func (r *ScheduleRepositoryImpl) Delete(deviceID uint, packageName string) error {
	res := r.DB.Where("device_id = ? AND package_name = ?", deviceID, packageName).Delete(&models.AppSchedule{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

type UsageLimitRepositoryImpl struct {
	DB *gorm.DB
}

func NewUsageLimitRepository(db *gorm.DB) repositories.UsageLimitRepository {
	return &UsageLimitRepositoryImpl{DB: db}
}

func (r *UsageLimitRepositoryImpl) FindByPackage(deviceID uint, packageName string) (models.AppUsageLimit, error) {
	var limit models.AppUsageLimit
	err := r.DB.Where("device_id = ? AND package_name = ?", deviceID, packageName).First(&limit).Error
	if err != nil {
		return models.AppUsageLimit{}, translate(err)
	}
	return limit, nil
}

func (r *UsageLimitRepositoryImpl) ListByDevice(deviceID uint) ([]models.AppUsageLimit, error) {
	var limits []models.AppUsageLimit
	if err := r.DB.Where("device_id = ?", deviceID).Order("package_name").Find(&limits).Error; err != nil {
		return nil, err
	}
	return limits, nil
}

func (r *UsageLimitRepositoryImpl) Save(limit *models.AppUsageLimit) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}, {Name: "package_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"limit_minutes", "updated_at"}),
	}).Create(limit).Error
}

func (r *UsageLimitRepositoryImpl) Delete(deviceID uint, packageName string) error {
	return r.DB.Where("device_id = ? AND package_name = ?", deviceID, packageName).Delete(&models.AppUsageLimit{}).Error
}
