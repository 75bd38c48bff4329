package domain

import (
	"fmt"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// TimeOfDay is a wall-clock time without a date, stored as minutes since midnight.
type TimeOfDay int

// clockLayouts are tried in order by ParseTimeOfDay.
var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
}

// ParseTimeOfDay parses a 24-hour ("09:30", "09:30:00") or 12-hour
// ("9:30 AM", "9:30pm") clock value. Surrounding whitespace is ignored.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return 0, fmt.Errorf("empty time value")
	}
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return TimeOfDay(t.Hour()*60 + t.Minute()), nil
		}
	}
	return 0, fmt.Errorf("invalid time %q (expected HH:MM)", strings.TrimSpace(s))
}

// MustParseTimeOfDay is ParseTimeOfDay for literals known to be valid.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTimeOfDay builds a TimeOfDay from hour and minute components.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute).normalize()
}

func (t TimeOfDay) Hour() int   { return int(t.normalize()) / 60 }
func (t TimeOfDay) Minute() int { return int(t.normalize()) % 60 }

// String renders the time as zero-padded 24-hour HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Add returns t shifted by the given number of minutes, wrapping past midnight.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return (t + TimeOfDay(minutes)).normalize()
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t < other
}

// Sub returns the number of minutes from other to t.
func (t TimeOfDay) Sub(other TimeOfDay) int {
	return int(t) - int(other)
}

func (t TimeOfDay) normalize() TimeOfDay {
	m := int(t) % minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return TimeOfDay(m)
}
