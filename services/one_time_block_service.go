package services

import (
	"FocusLock/models"
	"FocusLock/repositories"
	"fmt"
	"strings"
	"time"
)

type OneTimeBlockService struct {
	BlockRepo repositories.OneTimeBlockRepository
	Trigger   ReevaluationTrigger
	now       func() time.Time
}

func NewOneTimeBlockService(blockRepo repositories.OneTimeBlockRepository, trigger ReevaluationTrigger) *OneTimeBlockService {
	return &OneTimeBlockService{BlockRepo: blockRepo, Trigger: trigger, now: time.Now}
}

// BlockOnce locks the apps once for the given number of hours.
func (s *OneTimeBlockService) BlockOnce(deviceID uint, request models.TempBlockRequest) ([]models.OneTimeBlock, error) {
	if request.DurationHours < 0.5 || request.DurationHours > 24 {
		return nil, fmt.Errorf("%w: duration must be between 0.5 and 24 hours", ErrInvalidInput)
	}

	// End of the block
	endTime := s.now().Add(time.Duration(request.DurationHours * float64(time.Hour)))

	var blocks []models.OneTimeBlock
	for _, appPackage := range request.AppPackages {
		appPackage = strings.TrimSpace(appPackage)
		if appPackage == "" {
			continue
		}
		blocks = append(blocks, models.OneTimeBlock{
			DeviceID:   deviceID,
			AppPackage: appPackage,
			EndsAt:     endTime,
			Duration:   formatDuration(request.DurationHours),
		})
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: no app packages given", ErrInvalidInput)
	}

	if err := s.BlockRepo.Add(blocks); err != nil {
		return nil, err
	}
	trigger(s.Trigger, deviceID)

	return blocks, nil
}

// ListActive returns the device's one-time blocks that have not ended.
func (s *OneTimeBlockService) ListActive(deviceID uint) ([]models.OneTimeBlock, error) {
	return s.BlockRepo.ListActive(deviceID, s.now())
}

// Cancel ends the one-time blocks of the given apps, or all of them when the list is empty.
func (s *OneTimeBlockService) Cancel(deviceID uint, appPackages []string) error {
	if err := s.BlockRepo.Cancel(deviceID, appPackages); err != nil {
		return err
	}
	trigger(s.Trigger, deviceID)
	return nil
}

// formatDuration renders a duration in hours for humans.
func formatDuration(hours float64) string {
	switch {
	case hours < 1:
		return fmt.Sprintf("%.0f minutes", hours*60)
	case hours == 1:
		return "1 hour"
	default:
		return fmt.Sprintf("%.1f hours", hours)
	}
}
