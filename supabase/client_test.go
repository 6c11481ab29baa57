package supabase

import (
	"FocusLock/models"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "service-key", Options{RetryCount: 2, RetryWaitTime: time.Millisecond})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestUpsertSchedule(t *testing.T) {
	var got ScheduleRow
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/app_schedules", r.URL.Path)
		assert.Equal(t, "user_id,package_name", r.URL.Query().Get("on_conflict"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("Prefer"), "resolution=merge-duplicates")

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusCreated)
	})

	row := ScheduleRow{
		UserID:      "user-1",
		PackageName: "com.instagram.android",
		Schedules: []models.Schedule{{
			Type:       models.ScheduleLock,
			TimeRanges: []models.TimeRange{{StartHour: 9, EndHour: 17, Days: []int{1, 2, 3, 4, 5}}},
		}},
		UpdatedAt: time.Date(2025, time.August, 5, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, client.UpsertSchedule(context.Background(), row))

	assert.Equal(t, "com.instagram.android", got.PackageName)
	require.Len(t, got.Schedules, 1)
	assert.Equal(t, 17, got.Schedules[0].TimeRanges[0].EndHour)
}

func TestListUsageLimits(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/app_usage_limits", r.URL.Path)
		assert.Equal(t, "eq.user-1", r.URL.Query().Get("user_id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"user_id":"user-1","package_name":"com.youtube","limit_minutes":45,"updated_at":"2025-08-05T10:00:00Z"}]`))
	})

	rows, err := client.ListUsageLimits(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "com.youtube", rows[0].PackageName)
	assert.Equal(t, 45, rows[0].LimitMinutes)
}

func TestDeleteSchedule(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "eq.user-1", r.URL.Query().Get("user_id"))
		assert.Equal(t, "eq.com.tiktok", r.URL.Query().Get("package_name"))
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.DeleteSchedule(context.Background(), "user-1", "com.tiktok"))
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	rows, err := client.ListSchedules(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid api key"}`))
	})

	err := client.UpsertUsageLimit(context.Background(), UsageLimitRow{UserID: "user-1", PackageName: "com.youtube", LimitMinutes: 30})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
	assert.Equal(t, int32(1), calls.Load())
}
