package timezone

import (
	"errors"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var ErrInvalidClock = errors.New("invalid HH:MM clock value")

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves the shop zone. An empty or unknown name falls back to
// the server's local zone.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

func ParseDate(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, loc)
}

// ParseDateTime combines a YYYY-MM-DD date and an HH:MM clock into a
// wall-clock instant in loc.
func ParseDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+clock, loc)
}

// AddMinutes moves t forward on the local calendar: the minute field is
// advanced and time.Date normalizes day/month/year rollover in t's zone.
func AddMinutes(t time.Time, minutes int) time.Time {
	return time.Date(
		t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute()+minutes, t.Second(), t.Nanosecond(),
		t.Location(),
	)
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// AtClock returns day's calendar date at the given HH:MM.
func AtClock(day time.Time, clock string) (time.Time, error) {
	hm, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return time.Time{}, ErrInvalidClock
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		hm.Hour(), hm.Minute(), 0, 0,
		day.Location(),
	), nil
}
