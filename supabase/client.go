// Package supabase talks to the Supabase PostgREST API that mirrors the
// app_schedules and app_usage_limits tables across a user's devices.
package supabase

import (
	"FocusLock/models"
	"context"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"
)

const (
	SchedulesTable   = "app_schedules"
	UsageLimitsTable = "app_usage_limits"
)

// ScheduleRow is a row of the remote app_schedules table.
type ScheduleRow struct {
	UserID              string            `json:"user_id"`
	PackageName         string            `json:"package_name"`
	Schedules           []models.Schedule `json:"schedules"`
	ExcludeFromPomodoro bool              `json:"exclude_from_pomodoro"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// UsageLimitRow is a row of the remote app_usage_limits table.
type UsageLimitRow struct {
	UserID       string    `json:"user_id"`
	PackageName  string    `json:"package_name"`
	LimitMinutes int       `json:"limit_minutes"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Client struct {
	http *resty.Client
}

type Options struct {
	RetryCount    int
	RetryWaitTime time.Duration
	Timeout       time.Duration
}

// NewClient creates a client for the project at baseURL, e.g.
// https://xyzcompany.supabase.co, authenticating with the service key.
func NewClient(baseURL, apiKey string, opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.RetryWaitTime == 0 {
		opts.RetryWaitTime = 500 * time.Millisecond
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")+"/rest/v1").
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWaitTime).
		SetRetryMaxWaitTime(5*time.Second).
		SetAllowNonIdempotentRetry(true).
		AddRetryConditions(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		}).
		SetHeader("apikey", apiKey).
		SetHeader("Accept", "application/json").
		SetAuthToken(apiKey)

	return &Client{http: client}
}

func (c *Client) Close() error {
	return c.http.Close()
}

func (c *Client) upsert(ctx context.Context, table string, row any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetContentType("application/json").
		SetHeader("Prefer", "resolution=merge-duplicates,return=minimal").
		SetQueryParam("on_conflict", "user_id,package_name").
		SetBody(row).
		Post("/" + table)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", table, err)
	}
	if resp.IsError() {
		return fmt.Errorf("upsert %s: %s: %s", table, resp.Status(), resp.String())
	}
	return nil
}

func (c *Client) delete(ctx context.Context, table, userID, packageName string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("user_id", "eq."+userID).
		SetQueryParam("package_name", "eq."+packageName).
		Delete("/" + table)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if resp.IsError() {
		return fmt.Errorf("delete from %s: %s: %s", table, resp.Status(), resp.String())
	}
	return nil
}

func (c *Client) list(ctx context.Context, table, userID string, result any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("user_id", "eq."+userID).
		SetQueryParam("select", "*").
		SetResult(result).
		Get("/" + table)
	if err != nil {
		return fmt.Errorf("list %s: %w", table, err)
	}
	if resp.IsError() {
		return fmt.Errorf("list %s: %s: %s", table, resp.Status(), resp.String())
	}
	return nil
}

func (c *Client) UpsertSchedule(ctx context.Context, row ScheduleRow) error {
	return c.upsert(ctx, SchedulesTable, row)
}

func (c *Client) DeleteSchedule(ctx context.Context, userID, packageName string) error {
	return c.delete(ctx, SchedulesTable, userID, packageName)
}

func (c *Client) ListSchedules(ctx context.Context, userID string) ([]ScheduleRow, error) {
	var rows []ScheduleRow
	if err := c.list(ctx, SchedulesTable, userID, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) UpsertUsageLimit(ctx context.Context, row UsageLimitRow) error {
	return c.upsert(ctx, UsageLimitsTable, row)
}

func (c *Client) DeleteUsageLimit(ctx context.Context, userID, packageName string) error {
	return c.delete(ctx, UsageLimitsTable, userID, packageName)
}

func (c *Client) ListUsageLimits(ctx context.Context, userID string) ([]UsageLimitRow, error) {
	var rows []UsageLimitRow
	if err := c.list(ctx, UsageLimitsTable, userID, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
