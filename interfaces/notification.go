package interfaces

import (
	"FocusLock/lockwindow"
	"time"
)

// LockStateNotifier доставляет результаты переоценки блокировок на устройство
type LockStateNotifier interface {
	NotifyLockState(update LockStateUpdate) error
}

// AppDecision решение по одному приложению устройства
type AppDecision struct {
	PackageName string `json:"package_name"`
	lockwindow.Decision
}

// LockStateUpdate определяет структуру сообщения, которое получает устройство
type LockStateUpdate struct {
	Type        string        `json:"type"`
	DeviceID    uint          `json:"device_id"`
	Decisions   []AppDecision `json:"decisions"`
	EvaluatedAt time.Time     `json:"evaluated_at"`
	// NextCheck момент следующего переключения расписаний, если он наступает в течение недели
	NextCheck *time.Time `json:"next_check,omitempty"`
}

const LockStateMessageType = "lock_state"
