package services

import (
	"FocusLock/lockwindow"
	"FocusLock/models"
	"FocusLock/repositories"
	"FocusLock/supabase"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// RemoteStore is the Supabase side of the sync.
type RemoteStore interface {
	UpsertSchedule(ctx context.Context, row supabase.ScheduleRow) error
	DeleteSchedule(ctx context.Context, userID, packageName string) error
	ListSchedules(ctx context.Context, userID string) ([]supabase.ScheduleRow, error)
	UpsertUsageLimit(ctx context.Context, row supabase.UsageLimitRow) error
	DeleteUsageLimit(ctx context.Context, userID, packageName string) error
	ListUsageLimits(ctx context.Context, userID string) ([]supabase.UsageLimitRow, error)
}

// SyncResult counts the remote rows that replaced local ones.
type SyncResult struct {
	SchedulesApplied int `json:"schedules_applied"`
	LimitsApplied    int `json:"limits_applied"`
}

// SyncService mirrors schedules and usage limits to Supabase keyed by the
// device owner. The newer updated_at wins. A nil *SyncService is a no-op.
type SyncService struct {
	Remote       RemoteStore
	DeviceRepo   repositories.DeviceRepository
	ScheduleRepo repositories.ScheduleRepository
	LimitRepo    repositories.UsageLimitRepository
	Trigger      ReevaluationTrigger
}

func NewSyncService(remote RemoteStore, deviceRepo repositories.DeviceRepository, scheduleRepo repositories.ScheduleRepository, limitRepo repositories.UsageLimitRepository) *SyncService {
	return &SyncService{Remote: remote, DeviceRepo: deviceRepo, ScheduleRepo: scheduleRepo, LimitRepo: limitRepo}
}

func (s *SyncService) enabled() bool {
	return s != nil && s.Remote != nil
}

// ownerOf returns the Supabase user id of the device, or "" for devices
// that are not linked to an account.
func (s *SyncService) ownerOf(deviceID uint) (string, error) {
	device, err := s.DeviceRepo.FindByID(deviceID)
	if err != nil {
		return "", err
	}
	return device.OwnerID, nil
}

func (s *SyncService) PushSchedule(ctx context.Context, schedule models.AppSchedule) error {
	if !s.enabled() {
		return nil
	}
	owner, err := s.ownerOf(schedule.DeviceID)
	if err != nil || owner == "" {
		return err
	}
	updatedAt := schedule.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	return s.Remote.UpsertSchedule(ctx, supabase.ScheduleRow{
		UserID:              owner,
		PackageName:         schedule.PackageName,
		Schedules:           schedule.Schedules,
		ExcludeFromPomodoro: schedule.ExcludeFromPomodoro,
		UpdatedAt:           updatedAt.UTC(),
	})
}

func (s *SyncService) DeleteSchedule(ctx context.Context, deviceID uint, packageName string) error {
	if !s.enabled() {
		return nil
	}
	owner, err := s.ownerOf(deviceID)
	if err != nil || owner == "" {
		return err
	}
	return s.Remote.DeleteSchedule(ctx, owner, packageName)
}

// PushUsageLimit mirrors a limit. A zero limit removes the remote row.
func (s *SyncService) PushUsageLimit(ctx context.Context, limit models.AppUsageLimit) error {
	if !s.enabled() {
		return nil
	}
	owner, err := s.ownerOf(limit.DeviceID)
	if err != nil || owner == "" {
		return err
	}
	if limit.LimitMinutes == 0 {
		return s.Remote.DeleteUsageLimit(ctx, owner, limit.PackageName)
	}
	updatedAt := limit.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	return s.Remote.UpsertUsageLimit(ctx, supabase.UsageLimitRow{
		UserID:       owner,
		PackageName:  limit.PackageName,
		LimitMinutes: limit.LimitMinutes,
		UpdatedAt:    updatedAt.UTC(),
	})
}

// Pull applies the remote rows of the device owner that are newer than the
// local ones.
func (s *SyncService) Pull(ctx context.Context, deviceID uint) (SyncResult, error) {
	var result SyncResult
	if !s.enabled() {
		return result, nil
	}
	owner, err := s.ownerOf(deviceID)
	if err != nil || owner == "" {
		return result, err
	}

	schedules, err := s.Remote.ListSchedules(ctx, owner)
	if err != nil {
		return result, fmt.Errorf("pull schedules: %w", err)
	}
	for _, row := range schedules {
		applied, err := s.applySchedule(deviceID, row)
		if err != nil {
			return result, err
		}
		if applied {
			result.SchedulesApplied++
		}
	}

	limits, err := s.Remote.ListUsageLimits(ctx, owner)
	if err != nil {
		return result, fmt.Errorf("pull usage limits: %w", err)
	}
	for _, row := range limits {
		applied, err := s.applyLimit(deviceID, row)
		if err != nil {
			return result, err
		}
		if applied {
			result.LimitsApplied++
		}
	}

	if result.SchedulesApplied+result.LimitsApplied > 0 {
		log.Info().Uint("device_id", deviceID).Int("schedules", result.SchedulesApplied).Int("limits", result.LimitsApplied).Msg("[sync] applied remote changes")
		trigger(s.Trigger, deviceID)
	}
	return result, nil
}

func (s *SyncService) applySchedule(deviceID uint, row supabase.ScheduleRow) (bool, error) {
	local, err := s.ScheduleRepo.FindByPackage(deviceID, row.PackageName)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return false, err
	}
	if err == nil && !row.UpdatedAt.After(local.UpdatedAt) {
		return false, nil
	}
	if verr := lockwindow.ValidateSchedules(row.Schedules); verr != nil {
		log.Warn().Err(verr).Str("package", row.PackageName).Msg("[sync] skipping invalid remote schedule")
		return false, nil
	}

	schedule := models.AppSchedule{
		DeviceID:            deviceID,
		PackageName:         row.PackageName,
		Schedules:           row.Schedules,
		ExcludeFromPomodoro: row.ExcludeFromPomodoro,
		UpdatedAt:           row.UpdatedAt,
	}
	if err := s.ScheduleRepo.Save(&schedule); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SyncService) applyLimit(deviceID uint, row supabase.UsageLimitRow) (bool, error) {
	local, err := s.LimitRepo.FindByPackage(deviceID, row.PackageName)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return false, err
	}
	if err == nil && !row.UpdatedAt.After(local.UpdatedAt) {
		return false, nil
	}
	if row.LimitMinutes <= 0 || row.LimitMinutes > maxDailyMinutes {
		return false, nil
	}

	limit := models.AppUsageLimit{
		DeviceID:     deviceID,
		PackageName:  row.PackageName,
		LimitMinutes: row.LimitMinutes,
		UpdatedAt:    row.UpdatedAt,
	}
	if err := s.LimitRepo.Save(&limit); err != nil {
		return false, err
	}
	return true, nil
}

// PullAll pulls every device linked to an account. One failing device does
// not stop the others.
func (s *SyncService) PullAll(ctx context.Context) error {
	if !s.enabled() {
		return nil
	}
	devices, err := s.DeviceRepo.List()
	if err != nil {
		return err
	}
	var errs []error
	for _, device := range devices {
		if device.OwnerID == "" {
			continue
		}
		if _, err := s.Pull(ctx, device.ID); err != nil {
			errs = append(errs, fmt.Errorf("device %d: %w", device.ID, err))
		}
	}
	return errors.Join(errs...)
}
