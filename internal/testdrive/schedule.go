// Package testdrive holds the test-drive calendar and booking rules.
package testdrive

import (
	"slices"
	"time"
)

// DateLayout is the wire format of booking dates.
const DateLayout = "2006-01-02"

// Schedule answers which time slots are offered on a date.
type Schedule interface {
	Slots(date time.Time) []string
}

// FixedSchedule offers slots only on the listed dates, keyed by DateLayout.
type FixedSchedule map[string][]string

func (s FixedSchedule) Slots(date time.Time) []string {
	return slices.Clone(s[date.Format(DateLayout)])
}

// WeeklySchedule repeats the same slots every week.
type WeeklySchedule map[time.Weekday][]string

func (s WeeklySchedule) Slots(date time.Time) []string {
	return slices.Clone(s[date.Weekday()])
}

// LaunchWeek is the calendar the showroom opened with (Mon 15 to Fri 19
// January 2024).
func LaunchWeek() FixedSchedule {
	return FixedSchedule{
		"2024-01-15": {"9:00 AM", "11:00 AM", "2:00 PM", "4:00 PM"},
		"2024-01-16": {"10:00 AM", "1:00 PM", "3:00 PM"},
		"2024-01-17": {"9:00 AM", "11:00 AM", "2:00 PM", "4:00 PM", "5:00 PM"},
		"2024-01-18": {"10:00 AM", "12:00 PM", "3:00 PM"},
		"2024-01-19": {"9:00 AM", "11:00 AM", "1:00 PM", "4:00 PM"},
	}
}

// Weekdays repeats the launch week's pattern Monday to Friday. Weekends are
// closed for test drives.
func Weekdays() WeeklySchedule {
	week := WeeklySchedule{}
	for day, slots := range LaunchWeek() {
		d, _ := time.Parse(DateLayout, day)
		week[d.Weekday()] = slots
	}
	return week
}

// Offered reports whether slot is available on date.
func Offered(s Schedule, date time.Time, slot string) bool {
	return slices.Contains(s.Slots(date), slot)
}
