package model

import (
	"fmt"
	"time"
)

var (
	shortWeekdays = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	shortMonths   = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

// FormatDayHeader renders t as "Wed 10th Jan (01/10)".
func FormatDayHeader(t time.Time) string {
	day := t.Day()
	return fmt.Sprintf("%s %d%s %s (%02d/%02d)",
		shortWeekdays[t.Weekday()],
		day,
		OrdinalSuffix(day),
		shortMonths[t.Month()-1],
		int(t.Month()),
		day,
	)
}

func OrdinalSuffix(day int) string {
	switch day % 100 {
	case 11, 12, 13:
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

func ShortWeekday(d time.Weekday) string {
	return shortWeekdays[d]
}
