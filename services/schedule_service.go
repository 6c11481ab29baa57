package services

import (
	"FocusLock/lockwindow"
	"FocusLock/models"
	"FocusLock/repositories"
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

type ScheduleService struct {
	ScheduleRepo repositories.ScheduleRepository
	Sync         *SyncService
	Trigger      ReevaluationTrigger
}

func NewScheduleService(scheduleRepo repositories.ScheduleRepository, sync *SyncService, trigger ReevaluationTrigger) *ScheduleService {
	return &ScheduleService{ScheduleRepo: scheduleRepo, Sync: sync, Trigger: trigger}
}

func (s *ScheduleService) GetAppSchedule(deviceID uint, packageName string) (models.AppSchedule, error) {
	return s.ScheduleRepo.FindByPackage(deviceID, packageName)
}

func (s *ScheduleService) ListAppSchedules(deviceID uint) ([]models.AppSchedule, error) {
	return s.ScheduleRepo.ListByDevice(deviceID)
}

// SetAppSchedule replaces the schedules of one app. The row is saved locally
// first; a failed push to Supabase is logged and the local write stands.
func (s *ScheduleService) SetAppSchedule(ctx context.Context, deviceID uint, packageName string, schedules []models.Schedule, excludeFromPomodoro bool) (models.AppSchedule, error) {
	packageName = strings.TrimSpace(packageName)
	if packageName == "" {
		return models.AppSchedule{}, fmt.Errorf("%w: package name is required", ErrInvalidInput)
	}
	if err := lockwindow.ValidateSchedules(schedules); err != nil {
		return models.AppSchedule{}, err
	}

	schedule := models.AppSchedule{
		DeviceID:            deviceID,
		PackageName:         packageName,
		Schedules:           schedules,
		ExcludeFromPomodoro: excludeFromPomodoro,
	}
	if err := s.ScheduleRepo.Save(&schedule); err != nil {
		return models.AppSchedule{}, fmt.Errorf("save schedule for %s: %w", packageName, err)
	}

	if err := s.Sync.PushSchedule(ctx, schedule); err != nil {
		log.Warn().Err(err).Uint("device_id", deviceID).Str("package", packageName).Msg("[schedule] supabase push failed")
	}
	trigger(s.Trigger, deviceID)

	return schedule, nil
}

func (s *ScheduleService) DeleteAppSchedule(ctx context.Context, deviceID uint, packageName string) error {
	if err := s.ScheduleRepo.Delete(deviceID, packageName); err != nil {
		return err
	}
	if err := s.Sync.DeleteSchedule(ctx, deviceID, packageName); err != nil {
		log.Warn().Err(err).Uint("device_id", deviceID).Str("package", packageName).Msg("[schedule] supabase delete failed")
	}
	trigger(s.Trigger, deviceID)
	return nil
}
