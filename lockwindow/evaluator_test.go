package lockwindow

import (
	"FocusLock/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var weekdays = []int{1, 2, 3, 4, 5}

// at builds an instant in August 2025, where the 3rd is a Sunday.
func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.August, day, hour, minute, 0, 0, time.UTC)
}

func workHoursRule() models.AppRule {
	return models.AppRule{
		PackageName: "com.instagram.android",
		Schedules: []models.Schedule{
			{
				Type: models.ScheduleLock,
				TimeRanges: []models.TimeRange{
					{StartHour: 9, StartMinute: 0, EndHour: 17, EndMinute: 0, Days: weekdays},
				},
			},
		},
	}
}

func TestEvaluate_WorkHoursExample(t *testing.T) {
	rule := workHoursRule()

	d := Evaluate(rule, at(5, 10, 0)) // Tuesday
	assert.True(t, d.Locked)
	assert.Equal(t, ReasonSchedule, d.Reason)
	require.NotNil(t, d.Range)
	assert.Equal(t, 9, d.Range.StartHour)

	assert.False(t, IsLocked(rule, at(9, 10, 0))) // Saturday
}

func TestEvaluate_HalfOpenBoundaries(t *testing.T) {
	rule := workHoursRule()

	tests := []struct {
		name   string
		at     time.Time
		locked bool
	}{
		{"minute before start", at(5, 8, 59), false},
		{"start is inside", at(5, 9, 0), true},
		{"last minute inside", at(5, 16, 59), true},
		{"end is outside", at(5, 17, 0), false},
		{"sunday", at(3, 12, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.locked, IsLocked(rule, tt.at))
		})
	}
}

func TestEvaluate_UnlockWindowWinsInsideLock(t *testing.T) {
	rule := workHoursRule()
	rule.Schedules = append(rule.Schedules, models.Schedule{
		Type: models.ScheduleUnlock,
		TimeRanges: []models.TimeRange{
			{StartHour: 12, StartMinute: 0, EndHour: 13, EndMinute: 0, Days: weekdays},
		},
	})

	d := Evaluate(rule, at(5, 12, 30))
	assert.False(t, d.Locked)
	assert.Equal(t, ReasonUnlockWindow, d.Reason)
	require.NotNil(t, d.Range)
	assert.Equal(t, 12, d.Range.StartHour)

	assert.True(t, IsLocked(rule, at(5, 13, 0)))
}

func TestEvaluate_UnlockWindowAloneLeavesAppOpen(t *testing.T) {
	rule := models.AppRule{
		PackageName: "com.whatsapp",
		Schedules: []models.Schedule{
			{Type: models.ScheduleUnlock, TimeRanges: []models.TimeRange{{StartHour: 8, EndHour: 9, Days: weekdays}}},
		},
	}

	d := Evaluate(rule, at(5, 8, 30))
	assert.False(t, d.Locked)
	assert.Equal(t, ReasonNone, d.Reason)
}

func TestEvaluate_UsageLimit(t *testing.T) {
	t.Run("exceeded with empty schedules", func(t *testing.T) {
		rule := models.AppRule{PackageName: "com.youtube", UsageLimitMinutes: 60, UsageTodayMinutes: 61}
		d := Evaluate(rule, at(5, 10, 0))
		assert.True(t, d.Locked)
		assert.Equal(t, ReasonUsageLimit, d.Reason)
		assert.Nil(t, d.Range)
	})

	t.Run("reached exactly", func(t *testing.T) {
		rule := models.AppRule{PackageName: "com.youtube", UsageLimitMinutes: 60, UsageTodayMinutes: 60}
		assert.True(t, IsLocked(rule, at(9, 3, 0)))
	})

	t.Run("below limit", func(t *testing.T) {
		rule := models.AppRule{PackageName: "com.youtube", UsageLimitMinutes: 60, UsageTodayMinutes: 59}
		assert.False(t, IsLocked(rule, at(5, 10, 0)))
	})

	t.Run("zero limit means none", func(t *testing.T) {
		rule := models.AppRule{PackageName: "com.youtube", UsageTodayMinutes: 500}
		assert.False(t, IsLocked(rule, at(5, 10, 0)))
	})

	t.Run("negative usage counts as zero", func(t *testing.T) {
		rule := models.AppRule{PackageName: "com.youtube", UsageLimitMinutes: 1, UsageTodayMinutes: -30}
		assert.False(t, IsLocked(rule, at(5, 10, 0)))
	})

	t.Run("wins over unlock window", func(t *testing.T) {
		rule := workHoursRule()
		rule.Schedules = append(rule.Schedules, models.Schedule{
			Type:       models.ScheduleUnlock,
			TimeRanges: []models.TimeRange{{StartHour: 12, EndHour: 13, Days: weekdays}},
		})
		rule.UsageLimitMinutes = 30
		rule.UsageTodayMinutes = 30

		d := Evaluate(rule, at(5, 12, 30))
		assert.True(t, d.Locked)
		assert.Equal(t, ReasonUsageLimit, d.Reason)
	})
}

func TestEvaluate_MidnightWrap(t *testing.T) {
	// Friday 22:00 to Saturday 07:00.
	rule := models.AppRule{
		PackageName: "com.reddit.frontpage",
		Schedules: []models.Schedule{
			{Type: models.ScheduleLock, TimeRanges: []models.TimeRange{{StartHour: 22, EndHour: 7, Days: []int{5}}}},
		},
	}

	assert.False(t, IsLocked(rule, at(8, 21, 59)))
	assert.True(t, IsLocked(rule, at(8, 22, 0)))
	assert.True(t, IsLocked(rule, at(8, 23, 59)))
	assert.True(t, IsLocked(rule, at(9, 0, 0)))
	assert.True(t, IsLocked(rule, at(9, 6, 59)))
	assert.False(t, IsLocked(rule, at(9, 7, 0)))
	// Saturday is not a start day.
	assert.False(t, IsLocked(rule, at(9, 22, 30)))
}

func TestEvaluate_SaturdayWrapsIntoSunday(t *testing.T) {
	rule := models.AppRule{
		PackageName: "com.netflix.mediaclient",
		Schedules: []models.Schedule{
			{Type: models.ScheduleLock, TimeRanges: []models.TimeRange{{StartHour: 23, EndHour: 1, Days: []int{6}}}},
		},
	}

	assert.True(t, IsLocked(rule, at(9, 23, 30)))
	assert.True(t, IsLocked(rule, at(10, 0, 30)))
	assert.False(t, IsLocked(rule, at(10, 1, 0)))
}

func TestEvaluate_EqualStartAndEndCoversWholeDay(t *testing.T) {
	rule := models.AppRule{
		PackageName: "com.tiktok",
		Schedules: []models.Schedule{
			{Type: models.ScheduleLock, TimeRanges: []models.TimeRange{{Days: []int{3}}}},
		},
	}

	assert.True(t, IsLocked(rule, at(6, 0, 0)))
	assert.True(t, IsLocked(rule, at(6, 23, 59)))
	assert.False(t, IsLocked(rule, at(7, 0, 0)))
	assert.False(t, IsLocked(rule, at(5, 23, 59)))
}

func TestEvaluate_FailsOpenOnMalformedInput(t *testing.T) {
	tests := []struct {
		name     string
		schedule models.Schedule
	}{
		{"no days", models.Schedule{Type: models.ScheduleLock, TimeRanges: []models.TimeRange{{StartHour: 0, EndHour: 23, EndMinute: 59}}}},
		{"day out of range", models.Schedule{Type: models.ScheduleLock, TimeRanges: []models.TimeRange{{StartHour: 0, EndHour: 23, Days: []int{2, 7}}}}},
		{"hour out of range", models.Schedule{Type: models.ScheduleLock, TimeRanges: []models.TimeRange{{StartHour: 0, EndHour: 24, Days: weekdays}}}},
		{"negative minute", models.Schedule{Type: models.ScheduleLock, TimeRanges: []models.TimeRange{{StartMinute: -1, EndHour: 23, Days: weekdays}}}},
		{"unknown type", models.Schedule{Type: "block", TimeRanges: []models.TimeRange{{StartHour: 0, EndHour: 23, Days: weekdays}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := models.AppRule{PackageName: "com.example", Schedules: []models.Schedule{tt.schedule}}
			assert.NotPanics(t, func() {
				d := Evaluate(rule, at(5, 10, 0))
				assert.False(t, d.Locked)
				assert.Equal(t, ReasonNone, d.Reason)
			})
		})
	}
}

func TestEvaluate_UsesInstantLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	rule := workHoursRule()

	// 07:00 UTC on Tuesday is 10:00 at UTC+3.
	instant := at(5, 7, 0)
	assert.False(t, IsLocked(rule, instant))
	assert.True(t, IsLocked(rule, instant.In(loc)))
}

func TestEvaluate_Idempotent(t *testing.T) {
	rule := workHoursRule()
	rule.UsageLimitMinutes = 90
	rule.UsageTodayMinutes = 10
	instant := at(5, 16, 30)

	first := Evaluate(rule, instant)
	second := Evaluate(rule, instant)
	assert.Equal(t, first, second)
}

func TestTimeRange_String(t *testing.T) {
	r := models.TimeRange{StartHour: 9, StartMinute: 5, EndHour: 17, EndMinute: 30, Days: []int{1, 2}}
	assert.Equal(t, "09:05-17:30 [1 2]", r.String())
}
