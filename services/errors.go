package services

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthorized     = errors.New("invalid credentials")
	ErrDeviceExists     = errors.New("device name already taken")
	ErrFocusActive      = errors.New("a focus session is already running")
	ErrNoFocusSession   = errors.New("no focus session is running")
	ErrFirebaseDisabled = errors.New("firebase is not configured")
)

// ReevaluationTrigger asks for a device's lock state to be recomputed soon.
type ReevaluationTrigger interface {
	Trigger(deviceID uint)
}

func trigger(t ReevaluationTrigger, deviceID uint) {
	if t != nil {
		t.Trigger(deviceID)
	}
}
