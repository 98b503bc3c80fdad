package model

import (
	"time"

	"github.com/pkg/errors"
)

const DayLayout = "2006-01-02"

// DayOf returns the calendar day of t, in t's own location, as midnight UTC.
// Days are civil dates: they never go through time.Local, so a DST gap at
// midnight can't move them.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func Today() time.Time {
	return DayOf(time.Now())
}

func NextDay(day time.Time) time.Time {
	return DayOf(day).AddDate(0, 0, 1)
}

func ParseDay(text string) (time.Time, error) {
	result, err := time.ParseInLocation(DayLayout, text, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid date '%v', expected YYYY-MM-DD", text)
	}

	return result, nil
}

func FormatDay(day time.Time) string {
	return day.Format(DayLayout)
}
