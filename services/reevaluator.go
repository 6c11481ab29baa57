package services

import (
	"FocusLock/interfaces"
	"FocusLock/repositories"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Workiva/go-datastructures/queue"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const (
	DefaultPruneSpec = "5 0 * * *"
	DefaultSyncSpec  = "@every 15m"
)

// DeviceEvaluator recomputes and publishes the lock state of a device.
type DeviceEvaluator interface {
	ReevaluateAppBlockingStatus(ctx context.Context, deviceID uint, at time.Time) (interfaces.LockStateUpdate, error)
}

// dueItem is a pending reevaluation, ordered by time.
type dueItem struct {
	deviceID uint
	at       time.Time
}

func (i dueItem) Compare(other queue.Item) int {
	o := other.(dueItem)
	switch {
	case i.at.Before(o.at):
		return -1
	case i.at.After(o.at):
		return 1
	case i.deviceID < o.deviceID:
		return -1
	case i.deviceID > o.deviceID:
		return 1
	}
	return 0
}

type ReevaluatorConfig struct {
	PruneSpec  string
	SyncSpec   string
	RetryDelay time.Duration
	Location   *time.Location
}

// Reevaluator wakes up whenever some device's apps are due to change state,
// reevaluates that device and queues its next transition. It also runs the
// periodic prune and Supabase pull jobs.
type Reevaluator struct {
	Evaluator  DeviceEvaluator
	DeviceRepo repositories.DeviceRepository
	BlockRepo  repositories.OneTimeBlockRepository
	FocusRepo  repositories.FocusSessionRepository
	Sync       *SyncService

	cfg   ReevaluatorConfig
	queue *queue.PriorityQueue
	cron  *cron.Cron
	wake  chan struct{}
	now   func() time.Time

	mu  sync.Mutex
	due map[uint]time.Time
}

func NewReevaluator(evaluator DeviceEvaluator, deviceRepo repositories.DeviceRepository, blockRepo repositories.OneTimeBlockRepository, focusRepo repositories.FocusSessionRepository, sync *SyncService, cfg ReevaluatorConfig) *Reevaluator {
	if cfg.PruneSpec == "" {
		cfg.PruneSpec = DefaultPruneSpec
	}
	if cfg.SyncSpec == "" {
		cfg.SyncSpec = DefaultSyncSpec
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Minute
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Reevaluator{
		Evaluator:  evaluator,
		DeviceRepo: deviceRepo,
		BlockRepo:  blockRepo,
		FocusRepo:  focusRepo,
		Sync:       sync,
		cfg:        cfg,
		queue:      queue.NewPriorityQueue(64, false),
		wake:       make(chan struct{}, 1),
		now:        time.Now,
		due:        make(map[uint]time.Time),
	}
}

// Trigger queues an immediate reevaluation of the device.
func (r *Reevaluator) Trigger(deviceID uint) {
	r.ScheduleAt(deviceID, r.now())
}

// ScheduleAt queues a reevaluation of the device at the given time. An
// earlier pending reevaluation of the same device is kept.
func (r *Reevaluator) ScheduleAt(deviceID uint, at time.Time) {
	r.mu.Lock()
	if pending, ok := r.due[deviceID]; ok && !pending.After(at) {
		r.mu.Unlock()
		return
	}
	r.due[deviceID] = at
	r.mu.Unlock()

	if err := r.queue.Put(dueItem{deviceID: deviceID, at: at}); err != nil {
		log.Error().Err(err).Uint("device_id", deviceID).Msg("[reevaluator] queue put failed")
		return
	}
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Pending returns when the device is next due, if it is queued.
func (r *Reevaluator) Pending(deviceID uint) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	at, ok := r.due[deviceID]
	return at, ok
}

// Run seeds the queue with every known device, starts the cron jobs and
// processes due reevaluations until ctx is cancelled.
func (r *Reevaluator) Run(ctx context.Context) error {
	if err := r.startCron(ctx); err != nil {
		return err
	}
	defer r.cron.Stop()

	devices, err := r.DeviceRepo.List()
	if err != nil {
		return err
	}
	for _, d := range devices {
		r.Trigger(d.ID)
	}
	log.Info().Int("devices", len(devices)).Msg("[reevaluator] started")

	for {
		var timer *time.Timer
		var fire <-chan time.Time
		if head := r.queue.Peek(); head != nil {
			timer = time.NewTimer(time.Until(head.(dueItem).at))
			fire = timer.C
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			r.queue.Dispose()
			log.Info().Msg("[reevaluator] shutting down")
			return nil
		case <-r.wake:
			if timer != nil {
				timer.Stop()
			}
			continue
		case <-fire:
		}

		r.processDue(ctx)
	}
}

// processDue handles every queued item whose time has come.
func (r *Reevaluator) processDue(ctx context.Context) {
	for {
		head := r.queue.Peek()
		if head == nil || head.(dueItem).at.After(r.now()) {
			return
		}
		items, err := r.queue.Get(1)
		if err != nil || len(items) == 0 {
			return
		}
		r.handle(ctx, items[0].(dueItem))
	}
}

func (r *Reevaluator) handle(ctx context.Context, item dueItem) {
	r.mu.Lock()
	pending, ok := r.due[item.deviceID]
	if !ok || !pending.Equal(item.at) {
		r.mu.Unlock()
		return
	}
	delete(r.due, item.deviceID)
	r.mu.Unlock()

	update, err := r.Evaluator.ReevaluateAppBlockingStatus(ctx, item.deviceID, r.now())
	if errors.Is(err, repositories.ErrNotFound) {
		return
	}
	if err != nil {
		log.Error().Err(err).Uint("device_id", item.deviceID).Msg("[reevaluator] reevaluation failed, retrying")
		r.ScheduleAt(item.deviceID, r.now().Add(r.cfg.RetryDelay))
		return
	}
	if update.NextCheck != nil {
		r.ScheduleAt(item.deviceID, *update.NextCheck)
	}
}

func (r *Reevaluator) startCron(ctx context.Context) error {
	r.cron = cron.New(cron.WithLocation(r.cfg.Location))
	if _, err := r.cron.AddFunc(r.cfg.PruneSpec, func() { r.prune() }); err != nil {
		return err
	}
	if r.Sync.enabled() {
		if _, err := r.cron.AddFunc(r.cfg.SyncSpec, func() {
			if err := r.Sync.PullAll(ctx); err != nil {
				log.Warn().Err(err).Msg("[sync] periodic pull failed")
			}
		}); err != nil {
			return err
		}
	}
	r.cron.Start()
	return nil
}

// prune drops expired one-time blocks and finished focus sessions.
func (r *Reevaluator) prune() {
	now := r.now()
	blocks, err := r.BlockRepo.DeleteExpired(now)
	if err != nil {
		log.Error().Err(err).Msg("[prune] one-time blocks")
	}
	sessions, err := r.FocusRepo.DeleteEndedBefore(now)
	if err != nil {
		log.Error().Err(err).Msg("[prune] focus sessions")
	}
	log.Info().Int64("blocks", blocks).Int64("sessions", sessions).Msg("[prune] done")
}
