package services

import (
	"FocusLock/cache"
	"FocusLock/interfaces"
	"FocusLock/lockwindow"
	"FocusLock/models"
	"FocusLock/repositories"
	"context"
	"errors"
	"sort"
	"time"

	"github.com/dromara/carbon/v2"
	"github.com/rs/zerolog/log"
)

// BlockingService answers "should this app be locked now" for a device. The
// schedule and usage limit decide first; a running one-time block or focus
// session can only add a lock on top.
type BlockingService struct {
	DeviceRepo   repositories.DeviceRepository
	ScheduleRepo repositories.ScheduleRepository
	LimitRepo    repositories.UsageLimitRepository
	BlockRepo    repositories.OneTimeBlockRepository
	FocusRepo    repositories.FocusSessionRepository
	Usage        cache.UsageStore
	Notifier     interfaces.LockStateNotifier
}

func NewBlockingService(
	deviceRepo repositories.DeviceRepository,
	scheduleRepo repositories.ScheduleRepository,
	limitRepo repositories.UsageLimitRepository,
	blockRepo repositories.OneTimeBlockRepository,
	focusRepo repositories.FocusSessionRepository,
	usage cache.UsageStore,
	notifier interfaces.LockStateNotifier,
) *BlockingService {
	return &BlockingService{
		DeviceRepo:   deviceRepo,
		ScheduleRepo: scheduleRepo,
		LimitRepo:    limitRepo,
		BlockRepo:    blockRepo,
		FocusRepo:    focusRepo,
		Usage:        usage,
		Notifier:     notifier,
	}
}

// deviceState is everything stored about a device that evaluation needs.
type deviceState struct {
	device    models.Device
	schedules map[string]models.AppSchedule
	limits    map[string]models.AppUsageLimit
	blocks    []models.OneTimeBlock
	focus     *models.FocusSession
}

func (s *BlockingService) loadState(deviceID uint, at time.Time) (deviceState, error) {
	state := deviceState{
		schedules: make(map[string]models.AppSchedule),
		limits:    make(map[string]models.AppUsageLimit),
	}

	device, err := s.DeviceRepo.FindByID(deviceID)
	if err != nil {
		return state, err
	}
	state.device = device

	schedules, err := s.ScheduleRepo.ListByDevice(deviceID)
	if err != nil {
		return state, err
	}
	for _, sc := range schedules {
		state.schedules[sc.PackageName] = sc
	}

	limits, err := s.LimitRepo.ListByDevice(deviceID)
	if err != nil {
		return state, err
	}
	for _, l := range limits {
		state.limits[l.PackageName] = l
	}

	state.blocks, err = s.BlockRepo.ListActive(deviceID, at)
	if err != nil {
		return state, err
	}

	focus, err := s.FocusRepo.FindActive(deviceID, at)
	switch {
	case err == nil:
		state.focus = &focus
	case !errors.Is(err, repositories.ErrNotFound):
		return state, err
	}
	return state, nil
}

// packages lists every app the device has a rule or an active block for.
func (st deviceState) packages() []string {
	seen := make(map[string]bool)
	for p := range st.schedules {
		seen[p] = true
	}
	for p := range st.limits {
		seen[p] = true
	}
	for _, b := range st.blocks {
		seen[b.AppPackage] = true
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (s *BlockingService) buildRule(ctx context.Context, st deviceState, packageName string, local time.Time) (models.AppRule, error) {
	rule := models.AppRule{PackageName: packageName}
	if sc, ok := st.schedules[packageName]; ok {
		rule.Schedules = sc.Schedules
		rule.ExcludeFromPomodoro = sc.ExcludeFromPomodoro
	}
	if l, ok := st.limits[packageName]; ok && l.LimitMinutes > 0 {
		rule.UsageLimitMinutes = l.LimitMinutes
		used, err := s.Usage.UsageOn(ctx, st.device.ID, packageName, cache.DayKey(local))
		if err != nil {
			return rule, err
		}
		rule.UsageTodayMinutes = used
	}
	return rule, nil
}

func decide(st deviceState, rule models.AppRule, local time.Time) lockwindow.Decision {
	decision := lockwindow.Evaluate(rule, local)
	if decision.Locked {
		return decision
	}
	for _, b := range st.blocks {
		if b.AppPackage == rule.PackageName && b.ActiveAt(local) {
			return lockwindow.Decision{Locked: true, Reason: lockwindow.ReasonOneTime}
		}
	}
	if st.focus != nil && st.focus.ActiveAt(local) && !rule.ExcludeFromPomodoro {
		return lockwindow.Decision{Locked: true, Reason: lockwindow.ReasonFocus}
	}
	return decision
}

// ShouldAppBeLocked evaluates one app at the instant at, read in the
// device's time zone. Apps without any rule are only locked by a one-time
// block or a focus session.
func (s *BlockingService) ShouldAppBeLocked(ctx context.Context, deviceID uint, packageName string, at time.Time) (lockwindow.Decision, error) {
	st, err := s.loadState(deviceID, at)
	if err != nil {
		return lockwindow.Decision{}, err
	}
	local := at.In(st.device.Location())
	rule, err := s.buildRule(ctx, st, packageName, local)
	if err != nil {
		return lockwindow.Decision{}, err
	}
	return decide(st, rule, local), nil
}

// ReevaluateAppBlockingStatus evaluates every app known for the device and
// hands the result to the notifier. A failed notification is logged.
func (s *BlockingService) ReevaluateAppBlockingStatus(ctx context.Context, deviceID uint, at time.Time) (interfaces.LockStateUpdate, error) {
	st, err := s.loadState(deviceID, at)
	if err != nil {
		return interfaces.LockStateUpdate{}, err
	}
	local := at.In(st.device.Location())

	update := interfaces.LockStateUpdate{
		Type:        interfaces.LockStateMessageType,
		DeviceID:    deviceID,
		Decisions:   []interfaces.AppDecision{},
		EvaluatedAt: at.UTC(),
	}
	var rules []models.AppRule
	for _, pkg := range st.packages() {
		rule, err := s.buildRule(ctx, st, pkg, local)
		if err != nil {
			return interfaces.LockStateUpdate{}, err
		}
		rules = append(rules, rule)
		update.Decisions = append(update.Decisions, interfaces.AppDecision{PackageName: pkg, Decision: decide(st, rule, local)})
	}
	if next, ok := nextChange(st, rules, local); ok {
		next = next.UTC()
		update.NextCheck = &next
	}

	if s.Notifier != nil {
		if err := s.Notifier.NotifyLockState(update); err != nil {
			log.Warn().Err(err).Uint("device_id", deviceID).Msg("[blocking] lock state notification failed")
		}
	}
	return update, nil
}

// NextTransition returns the earliest upcoming instant at which any app of
// the device may change state: a schedule boundary, the end of a one-time
// block, or the end of a focus session.
func (s *BlockingService) NextTransition(ctx context.Context, deviceID uint, at time.Time) (time.Time, bool, error) {
	st, err := s.loadState(deviceID, at)
	if err != nil {
		return time.Time{}, false, err
	}
	local := at.In(st.device.Location())
	var rules []models.AppRule
	for _, pkg := range st.packages() {
		rule, err := s.buildRule(ctx, st, pkg, local)
		if err != nil {
			return time.Time{}, false, err
		}
		rules = append(rules, rule)
	}
	next, ok := nextChange(st, rules, local)
	return next, ok, nil
}

func nextChange(st deviceState, rules []models.AppRule, local time.Time) (time.Time, bool) {
	var next time.Time
	found := false
	consider := func(t time.Time) {
		if t.After(local) && (!found || t.Before(next)) {
			next, found = t, true
		}
	}
	for _, rule := range rules {
		if t, ok := lockwindow.NextTransition(rule, local); ok {
			consider(t)
		}
		// Usage counters reset at device-local midnight.
		if lockwindow.UsageExceeded(rule) {
			consider(carbon.CreateFromStdTime(local).StartOfDay().AddDay().StdTime())
		}
	}
	for _, b := range st.blocks {
		consider(b.EndsAt)
	}
	if st.focus != nil {
		consider(st.focus.EndTime())
	}
	return next, found
}
