package controllers

import (
	"FocusLock/interfaces"
	"FocusLock/lockwindow"
	"FocusLock/models"
	"FocusLock/services"
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) RegisterDevice(name, secret, timeZone string) (models.Device, string, error) {
	args := m.Called(name, secret, timeZone)
	return args.Get(0).(models.Device), args.String(1), args.Error(2)
}

func (m *MockAuthService) LoginDevice(name, secret string) (models.Device, string, error) {
	args := m.Called(name, secret)
	return args.Get(0).(models.Device), args.String(1), args.Error(2)
}

func (m *MockAuthService) AuthenticateFirebase(ctx context.Context, idToken, deviceName, timeZone string) (models.Device, string, error) {
	args := m.Called(ctx, idToken, deviceName, timeZone)
	return args.Get(0).(models.Device), args.String(1), args.Error(2)
}

func (m *MockAuthService) UpdatePushToken(deviceID uint, fcmToken string) error {
	args := m.Called(deviceID, fcmToken)
	return args.Error(0)
}

type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) GetAppSchedule(deviceID uint, packageName string) (models.AppSchedule, error) {
	args := m.Called(deviceID, packageName)
	return args.Get(0).(models.AppSchedule), args.Error(1)
}

func (m *MockScheduleService) ListAppSchedules(deviceID uint) ([]models.AppSchedule, error) {
	args := m.Called(deviceID)
	return args.Get(0).([]models.AppSchedule), args.Error(1)
}

func (m *MockScheduleService) SetAppSchedule(ctx context.Context, deviceID uint, packageName string, schedules []models.Schedule, excludeFromPomodoro bool) (models.AppSchedule, error) {
	args := m.Called(ctx, deviceID, packageName, schedules, excludeFromPomodoro)
	return args.Get(0).(models.AppSchedule), args.Error(1)
}

func (m *MockScheduleService) DeleteAppSchedule(ctx context.Context, deviceID uint, packageName string) error {
	args := m.Called(ctx, deviceID, packageName)
	return args.Error(0)
}

type MockUsageService struct {
	mock.Mock
}

func (m *MockUsageService) GetUsageLimit(deviceID uint, packageName string) (models.AppUsageLimit, error) {
	args := m.Called(deviceID, packageName)
	return args.Get(0).(models.AppUsageLimit), args.Error(1)
}

func (m *MockUsageService) SetUsageLimit(ctx context.Context, deviceID uint, packageName string, minutes int) (models.AppUsageLimit, error) {
	args := m.Called(ctx, deviceID, packageName, minutes)
	return args.Get(0).(models.AppUsageLimit), args.Error(1)
}

func (m *MockUsageService) ReportUsage(ctx context.Context, deviceID uint, packageName string, minutes int, at time.Time) (int, error) {
	args := m.Called(ctx, deviceID, packageName, minutes, at)
	return args.Int(0), args.Error(1)
}

func (m *MockUsageService) UsageToday(ctx context.Context, deviceID uint, packageName string, at time.Time) (int, error) {
	args := m.Called(ctx, deviceID, packageName, at)
	return args.Int(0), args.Error(1)
}

type MockBlockingService struct {
	mock.Mock
}

func (m *MockBlockingService) ShouldAppBeLocked(ctx context.Context, deviceID uint, packageName string, at time.Time) (lockwindow.Decision, error) {
	args := m.Called(ctx, deviceID, packageName, at)
	return args.Get(0).(lockwindow.Decision), args.Error(1)
}

func (m *MockBlockingService) ReevaluateAppBlockingStatus(ctx context.Context, deviceID uint, at time.Time) (interfaces.LockStateUpdate, error) {
	args := m.Called(ctx, deviceID, at)
	return args.Get(0).(interfaces.LockStateUpdate), args.Error(1)
}

func (m *MockBlockingService) NextTransition(ctx context.Context, deviceID uint, at time.Time) (time.Time, bool, error) {
	args := m.Called(ctx, deviceID, at)
	return args.Get(0).(time.Time), args.Bool(1), args.Error(2)
}

type MockOneTimeBlockService struct {
	mock.Mock
}

func (m *MockOneTimeBlockService) BlockOnce(deviceID uint, request models.TempBlockRequest) ([]models.OneTimeBlock, error) {
	args := m.Called(deviceID, request)
	return args.Get(0).([]models.OneTimeBlock), args.Error(1)
}

func (m *MockOneTimeBlockService) ListActive(deviceID uint) ([]models.OneTimeBlock, error) {
	args := m.Called(deviceID)
	return args.Get(0).([]models.OneTimeBlock), args.Error(1)
}

func (m *MockOneTimeBlockService) Cancel(deviceID uint, appPackages []string) error {
	args := m.Called(deviceID, appPackages)
	return args.Error(0)
}

type MockFocusService struct {
	mock.Mock
}

func (m *MockFocusService) Start(deviceID uint, minutes int) (models.FocusSession, error) {
	args := m.Called(deviceID, minutes)
	return args.Get(0).(models.FocusSession), args.Error(1)
}

func (m *MockFocusService) Stop(deviceID uint) (models.FocusSession, error) {
	args := m.Called(deviceID)
	return args.Get(0).(models.FocusSession), args.Error(1)
}

func (m *MockFocusService) Active(deviceID uint) (models.FocusSession, error) {
	args := m.Called(deviceID)
	return args.Get(0).(models.FocusSession), args.Error(1)
}

type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) Pull(ctx context.Context, deviceID uint) (services.SyncResult, error) {
	args := m.Called(ctx, deviceID)
	return args.Get(0).(services.SyncResult), args.Error(1)
}

const testDeviceID uint = 7

// withDevice имитирует AuthMiddleware
func withDevice(c *gin.Context) {
	c.Set("device_id", testDeviceID)
	c.Next()
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.POST("/register/device", RegisterDevice)
	router.POST("/login/device", LoginDevice)
	router.POST("/auth/firebase", AuthenticateFirebase)

	authed := router.Group("/", withDevice)
	{
		authed.PUT("/device/push-token", UpdatePushToken)
		authed.GET("/apps/schedules", ListAppSchedules)
		authed.GET("/apps/:package/schedule", GetAppSchedule)
		authed.PUT("/apps/:package/schedule", SetAppSchedule)
		authed.DELETE("/apps/:package/schedule", DeleteAppSchedule)
		authed.GET("/apps/:package/usage-limit", GetUsageLimit)
		authed.PUT("/apps/:package/usage-limit", SetUsageLimit)
		authed.POST("/apps/:package/usage", ReportUsage)
		authed.GET("/apps/:package/locked", CheckAppLocked)
		authed.POST("/apps/reevaluate", ReevaluateApps)
		authed.GET("/apps/next-transition", GetNextTransition)
		authed.POST("/apps/block-once", BlockAppsOnce)
		authed.GET("/apps/block-once", GetOneTimeBlocks)
		authed.DELETE("/apps/block-once", CancelOneTimeBlocks)
		authed.GET("/focus", GetFocus)
		authed.POST("/focus/start", StartFocus)
		authed.POST("/focus/stop", StopFocus)
		authed.POST("/sync/pull", PullFromSupabase)
	}
	// Без middleware: проверка отсутствующего device_id
	router.GET("/anonymous/schedules", ListAppSchedules)
	return router
}
