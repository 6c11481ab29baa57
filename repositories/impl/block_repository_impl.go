package impl

import (
	"FocusLock/models"
	"FocusLock/repositories"
	"time"

	"gorm.io/gorm"
)

type OneTimeBlockRepositoryImpl struct {
	DB *gorm.DB
}

func NewOneTimeBlockRepository(db *gorm.DB) repositories.OneTimeBlockRepository {
	return &OneTimeBlockRepositoryImpl{DB: db}
}

func (r *OneTimeBlockRepositoryImpl) ListActive(deviceID uint, at time.Time) ([]models.OneTimeBlock, error) {
	var blocks []models.OneTimeBlock
	err := r.DB.Where("device_id = ? AND ends_at > ?", deviceID, at).Order("ends_at").Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *OneTimeBlockRepositoryImpl) Add(blocks []models.OneTimeBlock) error {
	if len(blocks) == 0 {
		return nil
	}
	return r.DB.Create(&blocks).Error
}

func (r *OneTimeBlockRepositoryImpl) Cancel(deviceID uint, appPackages []string) error {
	query := r.DB.Where("device_id = ?", deviceID)
	if len(appPackages) > 0 {
		query = query.Where("app_package IN ?", appPackages)
	}
	return query.Delete(&models.OneTimeBlock{}).Error
}

func (r *OneTimeBlockRepositoryImpl) DeleteExpired(before time.Time) (int64, error) {
	res := r.DB.Where("ends_at <= ?", before).Delete(&models.OneTimeBlock{})
	return res.RowsAffected, res.Error
}

type FocusSessionRepositoryImpl struct {
	DB *gorm.DB
}

func NewFocusSessionRepository(db *gorm.DB) repositories.FocusSessionRepository {
	return &FocusSessionRepositoryImpl{DB: db}
}

func (r *FocusSessionRepositoryImpl) FindActive(deviceID uint, at time.Time) (models.FocusSession, error) {
	var session models.FocusSession
	err := r.DB.
		Where("device_id = ? AND started_at <= ? AND planned_end > ?", deviceID, at, at).
		Where("ended_at IS NULL OR ended_at > ?", at).
		Order("started_at DESC").
		First(&session).Error
	if err != nil {
		return models.FocusSession{}, translate(err)
	}
	return session, nil
}

func (r *FocusSessionRepositoryImpl) Save(session *models.FocusSession) error {
	return r.DB.Save(session).Error
}

func (r *FocusSessionRepositoryImpl) DeleteEndedBefore(before time.Time) (int64, error) {
	res := r.DB.
		Where("planned_end <= ? OR (ended_at IS NOT NULL AND ended_at <= ?)", before, before).
		Delete(&models.FocusSession{})
	return res.RowsAffected, res.Error
}
