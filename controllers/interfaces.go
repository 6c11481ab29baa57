package controllers

import (
	"FocusLock/interfaces"
	"FocusLock/lockwindow"
	"FocusLock/models"
	"FocusLock/services"
	"context"
	"time"
)

// AuthServiceInterface определяет методы регистрации и входа устройства
type AuthServiceInterface interface {
	RegisterDevice(name, secret, timeZone string) (models.Device, string, error)
	LoginDevice(name, secret string) (models.Device, string, error)
	AuthenticateFirebase(ctx context.Context, idToken, deviceName, timeZone string) (models.Device, string, error)
	UpdatePushToken(deviceID uint, fcmToken string) error
}

type ScheduleServiceInterface interface {
	GetAppSchedule(deviceID uint, packageName string) (models.AppSchedule, error)
	ListAppSchedules(deviceID uint) ([]models.AppSchedule, error)
	SetAppSchedule(ctx context.Context, deviceID uint, packageName string, schedules []models.Schedule, excludeFromPomodoro bool) (models.AppSchedule, error)
	DeleteAppSchedule(ctx context.Context, deviceID uint, packageName string) error
}

type UsageServiceInterface interface {
	GetUsageLimit(deviceID uint, packageName string) (models.AppUsageLimit, error)
	SetUsageLimit(ctx context.Context, deviceID uint, packageName string, minutes int) (models.AppUsageLimit, error)
	ReportUsage(ctx context.Context, deviceID uint, packageName string, minutes int, at time.Time) (int, error)
	UsageToday(ctx context.Context, deviceID uint, packageName string, at time.Time) (int, error)
}

// BlockingServiceInterface определяет методы проверки блокировки приложений
type BlockingServiceInterface interface {
	ShouldAppBeLocked(ctx context.Context, deviceID uint, packageName string, at time.Time) (lockwindow.Decision, error)
	ReevaluateAppBlockingStatus(ctx context.Context, deviceID uint, at time.Time) (interfaces.LockStateUpdate, error)
	NextTransition(ctx context.Context, deviceID uint, at time.Time) (time.Time, bool, error)
}

type OneTimeBlockServiceInterface interface {
	BlockOnce(deviceID uint, request models.TempBlockRequest) ([]models.OneTimeBlock, error)
	ListActive(deviceID uint) ([]models.OneTimeBlock, error)
	Cancel(deviceID uint, appPackages []string) error
}

type FocusServiceInterface interface {
	Start(deviceID uint, minutes int) (models.FocusSession, error)
	Stop(deviceID uint) (models.FocusSession, error)
	Active(deviceID uint) (models.FocusSession, error)
}

type SyncServiceInterface interface {
	Pull(ctx context.Context, deviceID uint) (services.SyncResult, error)
}
