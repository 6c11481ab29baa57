package services

import (
	"FocusLock/interfaces"
	"FocusLock/repositories"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog/log"
)

// PushSender sends FCM messages. *messaging.Client satisfies it.
type PushSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NotificationService delivers lock state over FCM data messages.
type NotificationService struct {
	FCMClient  PushSender
	DeviceRepo repositories.DeviceRepository
	timeout    time.Duration
}

func NewNotificationService(fcm PushSender, deviceRepo repositories.DeviceRepository) *NotificationService {
	return &NotificationService{FCMClient: fcm, DeviceRepo: deviceRepo, timeout: 10 * time.Second}
}

// NotifyLockState sends the decisions as a data-only, high priority push so
// the device agent can apply them while in the background.
func (s *NotificationService) NotifyLockState(update interfaces.LockStateUpdate) error {
	device, err := s.DeviceRepo.FindByID(update.DeviceID)
	if err != nil {
		return err
	}
	if device.FCMToken == "" {
		return nil
	}

	decisions, err := json.Marshal(update.Decisions)
	if err != nil {
		return err
	}
	data := map[string]string{
		"type":         update.Type,
		"device_id":    strconv.FormatUint(uint64(update.DeviceID), 10),
		"decisions":    string(decisions),
		"evaluated_at": update.EvaluatedAt.Format(time.RFC3339),
	}
	if update.NextCheck != nil {
		data["next_check"] = update.NextCheck.Format(time.RFC3339)
	}

	message := &messaging.Message{
		Data:    data,
		Token:   device.FCMToken,
		Android: &messaging.AndroidConfig{Priority: "high"},
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	id, err := s.FCMClient.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("fcm send to device %d: %w", update.DeviceID, err)
	}
	log.Debug().Uint("device_id", update.DeviceID).Str("message_id", id).Msg("[FCM] lock state sent")
	return nil
}

// NotifierGroup fans an update out to several notifiers.
type NotifierGroup []interfaces.LockStateNotifier

func (g NotifierGroup) NotifyLockState(update interfaces.LockStateUpdate) error {
	var errs []error
	for _, n := range g {
		if err := n.NotifyLockState(update); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
