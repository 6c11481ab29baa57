package lockwindow

import (
	"FocusLock/models"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// span is a same-day half-open interval [start, end) in minutes on one weekday.
type span struct {
	day   int
	start int
	end   int
}

func (s span) contains(day, minute int) bool {
	return s.day == day && minute >= s.start && minute < s.end
}

// wellFormed reports whether the range can take part in evaluation.
func wellFormed(r models.TimeRange) bool {
	if len(r.Days) == 0 {
		return false
	}
	if r.StartHour < 0 || r.StartHour > 23 || r.EndHour < 0 || r.EndHour > 23 {
		return false
	}
	if r.StartMinute < 0 || r.StartMinute > 59 || r.EndMinute < 0 || r.EndMinute > 59 {
		return false
	}
	for _, d := range r.Days {
		if d < 0 || d > 6 {
			return false
		}
	}
	return true
}

// spans splits a range into same-day intervals. A range whose end is not
// after its start runs to midnight and continues on the following weekday.
// Malformed ranges produce no spans.
func spans(r models.TimeRange) []span {
	if !wellFormed(r) {
		return nil
	}
	start, end := r.StartOfRange(), r.EndOfRange()
	out := make([]span, 0, len(r.Days)*2)
	for _, d := range r.Days {
		if end > start {
			out = append(out, span{day: d, start: start, end: end})
			continue
		}
		out = append(out, span{day: d, start: start, end: minutesPerDay})
		if end > 0 {
			out = append(out, span{day: (d + 1) % 7, start: 0, end: end})
		}
	}
	return out
}

// rangeContains reports whether the range covers the given weekday and minute.
func rangeContains(r models.TimeRange, day, minute int) bool {
	for _, s := range spans(r) {
		if s.contains(day, minute) {
			return true
		}
	}
	return false
}

// clock decomposes t into weekday (0 = Sunday) and minute of day in t's own location.
func clock(t time.Time) (day, minute int) {
	return int(t.Weekday()), t.Hour()*60 + t.Minute()
}

// ParseClock parses "HH:MM" into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock %q: want HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// NewTimeRange builds a range from two "HH:MM" clocks.
func NewTimeRange(from, to string, days ...int) (models.TimeRange, error) {
	sh, sm, err := ParseClock(from)
	if err != nil {
		return models.TimeRange{}, err
	}
	eh, em, err := ParseClock(to)
	if err != nil {
		return models.TimeRange{}, err
	}
	return models.TimeRange{StartHour: sh, StartMinute: sm, EndHour: eh, EndMinute: em, Days: days}, nil
}
