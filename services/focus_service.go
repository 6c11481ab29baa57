package services

import (
	"FocusLock/models"
	"FocusLock/repositories"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultFocusMinutes = 25
	maxFocusMinutes     = 4 * 60
)

type FocusService struct {
	FocusRepo repositories.FocusSessionRepository
	Trigger   ReevaluationTrigger
	now       func() time.Time
}

func NewFocusService(focusRepo repositories.FocusSessionRepository, trigger ReevaluationTrigger) *FocusService {
	return &FocusService{FocusRepo: focusRepo, Trigger: trigger, now: time.Now}
}

// Start begins a Pomodoro session. Zero minutes means the default length.
func (s *FocusService) Start(deviceID uint, minutes int) (models.FocusSession, error) {
	if minutes == 0 {
		minutes = DefaultFocusMinutes
	}
	if minutes < 1 || minutes > maxFocusMinutes {
		return models.FocusSession{}, fmt.Errorf("%w: focus length must be between 1 and %d minutes", ErrInvalidInput, maxFocusMinutes)
	}

	now := s.now()
	if _, err := s.FocusRepo.FindActive(deviceID, now); err == nil {
		return models.FocusSession{}, ErrFocusActive
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return models.FocusSession{}, err
	}

	session := models.FocusSession{
		DeviceID:   deviceID,
		StartedAt:  now,
		PlannedEnd: now.Add(time.Duration(minutes) * time.Minute),
	}
	if err := s.FocusRepo.Save(&session); err != nil {
		return models.FocusSession{}, err
	}
	log.Info().Uint("device_id", deviceID).Int("minutes", minutes).Msg("[focus] session started")
	trigger(s.Trigger, deviceID)

	return session, nil
}

// Stop ends the running session early.
func (s *FocusService) Stop(deviceID uint) (models.FocusSession, error) {
	now := s.now()
	session, err := s.FocusRepo.FindActive(deviceID, now)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.FocusSession{}, ErrNoFocusSession
	}
	if err != nil {
		return models.FocusSession{}, err
	}

	session.EndedAt = &now
	if err := s.FocusRepo.Save(&session); err != nil {
		return models.FocusSession{}, err
	}
	trigger(s.Trigger, deviceID)

	return session, nil
}

// Active returns the running session, or ErrNoFocusSession.
func (s *FocusService) Active(deviceID uint) (models.FocusSession, error) {
	session, err := s.FocusRepo.FindActive(deviceID, s.now())
	if errors.Is(err, repositories.ErrNotFound) {
		return models.FocusSession{}, ErrNoFocusSession
	}
	return session, err
}
