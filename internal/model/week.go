package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const DateKeyLayout = "2006-01-02"

const DaysPerWeek = 7

var ErrInvalidDateKey = errors.New("model: invalid date key")

// DateKey identifies a calendar day as YYYY-MM-DD.
type DateKey string

// KeyOf uses the calendar fields of t in its own location.
func KeyOf(t time.Time) DateKey {
	return DateKey(t.Format(DateKeyLayout))
}

func ParseDateKey(raw string) (DateKey, error) {
	trimmed := strings.TrimSpace(raw)
	if _, err := time.Parse(DateKeyLayout, trimmed); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, raw)
	}
	return DateKey(trimmed), nil
}

// Date returns midnight of the key's day in loc.
func (k DateKey) Date(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateKeyLayout, string(k), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, string(k))
	}
	return t, nil
}

func (k DateKey) String() string { return string(k) }

// Week is seven consecutive days, Sunday first.
type Week [DaysPerWeek]time.Time

// WeekOf returns the Sunday..Saturday window containing anchor. Days are
// midnight in the anchor's location.
func WeekOf(anchor time.Time) Week {
	y, m, d := anchor.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, anchor.Location())
	start := day.AddDate(0, 0, -int(day.Weekday()))

	var w Week
	for i := range w {
		w[i] = start.AddDate(0, 0, i)
	}
	return w
}

func (w Week) Start() time.Time { return w[0] }

func (w Week) End() time.Time { return w[DaysPerWeek-1] }

func (w Week) Keys() []DateKey {
	out := make([]DateKey, 0, DaysPerWeek)
	for _, day := range w {
		out = append(out, KeyOf(day))
	}
	return out
}

func (w Week) Contains(key DateKey) bool {
	return w.IndexOf(key) >= 0
}

// IndexOf returns the column of key in the window, or -1.
func (w Week) IndexOf(key DateKey) int {
	for i, day := range w {
		if KeyOf(day) == key {
			return i
		}
	}
	return -1
}

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(raw string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sun", "sunday":
		return time.Sunday, true
	case "mon", "monday":
		return time.Monday, true
	case "tue", "tues", "tuesday":
		return time.Tuesday, true
	case "wed", "wednesday":
		return time.Wednesday, true
	case "thu", "thur", "thurs", "thursday":
		return time.Thursday, true
	case "fri", "friday":
		return time.Friday, true
	case "sat", "saturday":
		return time.Saturday, true
	default:
		return time.Sunday, false
	}
}
