package model

import "time"

// CycleEnd computes the instant at which the daily booking cycle containing
// checkIn ends, given the hour-of-day at which cycles roll over. The boundary
// falls on check-in day at cycleStartHour; a guest checking in at or after
// that hour belongs to the cycle ending on the following day.
func CycleEnd(checkIn time.Time, cycleStartHour int) time.Time {
	boundary := time.Date(
		checkIn.Year(), checkIn.Month(), checkIn.Day(),
		cycleStartHour, 0, 0, 0,
		checkIn.Location(),
	)

	if checkIn.Hour() >= cycleStartHour {
		boundary = boundary.AddDate(0, 0, 1)
	}

	return boundary
}

// Overdue reports whether now is strictly past the cycle boundary.
// Exactly at the boundary is not overdue.
func Overdue(now, boundary time.Time) bool {
	return now.After(boundary)
}
