package services

import (
	"math"
	"time"
)

const dayDuration = 24 * time.Hour

// DaysBetween counts any started day as a whole one.
func DaysBetween(a time.Time, b time.Time) int {
	elapsed := b.Sub(a)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	return int(math.Ceil(float64(elapsed) / float64(dayDuration)))
}

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// CalendarDaysFrom is the signed number of calendar days from start to
// candidate, both read in the candidate's location.
func CalendarDaysFrom(start time.Time, candidate time.Time) int {
	location := candidate.Location()
	startYear, startMonth, startDay := start.In(location).Date()
	year, month, day := candidate.Date()
	from := time.Date(startYear, startMonth, startDay, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from) / dayDuration)
}

func SameCalendarDay(a time.Time, b time.Time, location *time.Location) bool {
	return DateAtLocation(a, location).Equal(DateAtLocation(b, location))
}

func roundHalfUp(value float64) int {
	return int(math.Floor(value + 0.5))
}
