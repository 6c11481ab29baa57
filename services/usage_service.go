package services

import (
	"FocusLock/cache"
	"FocusLock/models"
	"FocusLock/repositories"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const maxDailyMinutes = 24 * 60

type UsageService struct {
	LimitRepo  repositories.UsageLimitRepository
	DeviceRepo repositories.DeviceRepository
	Store      cache.UsageStore
	Sync       *SyncService
	Trigger    ReevaluationTrigger
}

func NewUsageService(limitRepo repositories.UsageLimitRepository, deviceRepo repositories.DeviceRepository, store cache.UsageStore, sync *SyncService, trigger ReevaluationTrigger) *UsageService {
	return &UsageService{LimitRepo: limitRepo, DeviceRepo: deviceRepo, Store: store, Sync: sync, Trigger: trigger}
}

// GetUsageLimit returns the app's daily limit. An app without one gets a zero limit.
func (s *UsageService) GetUsageLimit(deviceID uint, packageName string) (models.AppUsageLimit, error) {
	limit, err := s.LimitRepo.FindByPackage(deviceID, packageName)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.AppUsageLimit{DeviceID: deviceID, PackageName: packageName}, nil
	}
	return limit, err
}

// SetUsageLimit stores a daily limit in minutes. Zero removes the limit.
func (s *UsageService) SetUsageLimit(ctx context.Context, deviceID uint, packageName string, minutes int) (models.AppUsageLimit, error) {
	if packageName == "" {
		return models.AppUsageLimit{}, fmt.Errorf("%w: package name is required", ErrInvalidInput)
	}
	if minutes < 0 || minutes > maxDailyMinutes {
		return models.AppUsageLimit{}, fmt.Errorf("%w: limit must be between 0 and %d minutes", ErrInvalidInput, maxDailyMinutes)
	}

	limit := models.AppUsageLimit{DeviceID: deviceID, PackageName: packageName, LimitMinutes: minutes}
	if minutes == 0 {
		if err := s.LimitRepo.Delete(deviceID, packageName); err != nil {
			return models.AppUsageLimit{}, err
		}
	} else if err := s.LimitRepo.Save(&limit); err != nil {
		return models.AppUsageLimit{}, fmt.Errorf("save usage limit for %s: %w", packageName, err)
	}

	if err := s.Sync.PushUsageLimit(ctx, limit); err != nil {
		log.Warn().Err(err).Uint("device_id", deviceID).Str("package", packageName).Msg("[usage] supabase push failed")
	}
	trigger(s.Trigger, deviceID)

	return limit, nil
}

// ReportUsage adds minutes to today's counter and returns the new total.
// Crossing the limit triggers a reevaluation so the app gets locked right away.
func (s *UsageService) ReportUsage(ctx context.Context, deviceID uint, packageName string, minutes int, at time.Time) (int, error) {
	if minutes <= 0 || minutes > maxDailyMinutes {
		return 0, fmt.Errorf("%w: minutes must be between 1 and %d", ErrInvalidInput, maxDailyMinutes)
	}
	device, err := s.DeviceRepo.FindByID(deviceID)
	if err != nil {
		return 0, err
	}

	total, err := s.Store.AddUsage(ctx, deviceID, packageName, cache.DayKey(at.In(device.Location())), minutes)
	if err != nil {
		return 0, err
	}

	limit, err := s.GetUsageLimit(deviceID, packageName)
	if err != nil {
		return total, err
	}
	if limit.LimitMinutes > 0 && total >= limit.LimitMinutes && total-minutes < limit.LimitMinutes {
		log.Info().Uint("device_id", deviceID).Str("package", packageName).Int("used", total).Msg("[usage] daily limit reached")
		trigger(s.Trigger, deviceID)
	}
	return total, nil
}

// UsageToday returns the minutes used on the device-local day containing at.
func (s *UsageService) UsageToday(ctx context.Context, deviceID uint, packageName string, at time.Time) (int, error) {
	device, err := s.DeviceRepo.FindByID(deviceID)
	if err != nil {
		return 0, err
	}
	return s.Store.UsageOn(ctx, deviceID, packageName, cache.DayKey(at.In(device.Location())))
}
