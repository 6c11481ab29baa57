// Package cache keeps per-day app usage counters.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dromara/carbon/v2"
	"github.com/redis/go-redis/v9"
)

// usageTTL keeps yesterday's counter around for late reports from devices.
const usageTTL = 48 * time.Hour

// UsageStore counts minutes of app usage per device-local day.
type UsageStore interface {
	AddUsage(ctx context.Context, deviceID uint, packageName string, day string, minutes int) (int, error)
	UsageOn(ctx context.Context, deviceID uint, packageName string, day string) (int, error)
}

// DayKey names the device-local calendar day of at, e.g. "2025-08-05".
func DayKey(at time.Time) string {
	return carbon.NewCarbon(at).ToDateString()
}

func usageKey(deviceID uint, packageName, day string) string {
	return fmt.Sprintf("usage:%d:%s:%s", deviceID, packageName, day)
}

type RedisUsageStore struct {
	Rdb *redis.Client
}

func NewRedisUsageStore(rdb *redis.Client) *RedisUsageStore {
	return &RedisUsageStore{Rdb: rdb}
}

func (s *RedisUsageStore) AddUsage(ctx context.Context, deviceID uint, packageName string, day string, minutes int) (int, error) {
	key := usageKey(deviceID, packageName, day)

	pipe := s.Rdb.TxPipeline()
	incr := pipe.IncrBy(ctx, key, int64(minutes))
	pipe.Expire(ctx, key, usageTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("add usage %s: %w", key, err)
	}
	return int(incr.Val()), nil
}

func (s *RedisUsageStore) UsageOn(ctx context.Context, deviceID uint, packageName string, day string) (int, error) {
	key := usageKey(deviceID, packageName, day)

	minutes, err := s.Rdb.Get(ctx, key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read usage %s: %w", key, err)
	}
	return minutes, nil
}

// MemoryUsageStore is used when no redis address is configured and by tests.
// Counters never expire.
type MemoryUsageStore struct {
	mu       sync.Mutex
	counters map[string]int
}

func NewMemoryUsageStore() *MemoryUsageStore {
	return &MemoryUsageStore{counters: make(map[string]int)}
}

func (s *MemoryUsageStore) AddUsage(_ context.Context, deviceID uint, packageName string, day string, minutes int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := usageKey(deviceID, packageName, day)
	s.counters[key] += minutes
	return s.counters[key], nil
}

func (s *MemoryUsageStore) UsageOn(_ context.Context, deviceID uint, packageName string, day string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[usageKey(deviceID, packageName, day)], nil
}
