package fields

import (
	"fmt"
	"time"
)

// Date is a calendar date with no time-of-day and no zone. It is the native
// value of the DateOnly variant, kept distinct from time.Time so that date
// and datetime inputs cannot silently stand in for each other.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String renders the date in ISO 8601 form, YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight of the date in loc. A nil loc means UTC.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Clock is a wall-clock time with no date and no zone, the native value of
// the TimeOnly variant.
type Clock struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// ClockOf truncates t to its wall-clock reading in t's location.
func ClockOf(t time.Time) Clock {
	return Clock{
		Hour:       t.Hour(),
		Minute:     t.Minute(),
		Second:     t.Second(),
		Nanosecond: t.Nanosecond(),
	}
}

// String renders the clock in ISO 8601 form, hh:mm:ss with microseconds
// when they are nonzero.
func (c Clock) String() string {
	if c.Nanosecond != 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%06d", c.Hour, c.Minute, c.Second, c.Nanosecond/1000)
	}
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// IsZero reports whether the clock is exactly midnight.
func (c Clock) IsZero() bool {
	return c.Hour == 0 && c.Minute == 0 && c.Second == 0 && c.Nanosecond == 0
}

// layout renders the clock through a time layout on the reference date.
func (c Clock) layout(layout string) string {
	t := time.Date(1, time.January, 1, c.Hour, c.Minute, c.Second, c.Nanosecond, time.UTC)
	return t.Format(layout)
}
