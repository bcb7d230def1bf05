package model

import (
	"sort"
	"time"

	bookingModel "lodge/internal/domains/booking/model"
	"lodge/shared/constant"
)

type KPI struct {
	TotalRevenue  float64
	TotalBookings int
	OccupancyRate float64
	AverageAmount float64
}

type RoomPerformance struct {
	RoomNo   string
	Bookings int
	Revenue  float64
}

type TrendPoint struct {
	Date     string
	Bookings int
	Revenue  float64
}

// DaysBetween counts calendar days in the inclusive range [from, to].
// A range starting and ending on the same day is one day.
func DaysBetween(from, to time.Time) int {
	days := int(to.Sub(from).Hours()/24) + 1
	if days < 1 {
		return 1
	}

	return days
}

// Summarize computes the dashboard KPIs for bookings whose check-in falls in
// the selected range. Occupancy is bookings over rooms times days, as a
// percentage.
func Summarize(bookings []bookingModel.Booking, roomCount int, from, to time.Time) KPI {
	kpi := KPI{TotalBookings: len(bookings)}

	for _, booking := range bookings {
		kpi.TotalRevenue += booking.Amount
	}

	if len(bookings) > 0 {
		kpi.AverageAmount = kpi.TotalRevenue / float64(len(bookings))
	}

	capacity := roomCount * DaysBetween(from, to)
	if capacity > 0 {
		kpi.OccupancyRate = float64(len(bookings)) / float64(capacity) * 100
	}

	return kpi
}

// PerRoom aggregates booking count and revenue per room number, sorted by
// revenue descending.
func PerRoom(bookings []bookingModel.Booking) []RoomPerformance {
	byRoom := map[string]*RoomPerformance{}

	for _, booking := range bookings {
		perf, ok := byRoom[booking.RoomNo]
		if !ok {
			perf = &RoomPerformance{RoomNo: booking.RoomNo}
			byRoom[booking.RoomNo] = perf
		}

		perf.Bookings++
		perf.Revenue += booking.Amount
	}

	result := make([]RoomPerformance, 0, len(byRoom))
	for _, perf := range byRoom {
		result = append(result, *perf)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Revenue > result[j].Revenue
	})

	return result
}

// Trend buckets revenue by check-in day, sorted chronologically.
func Trend(bookings []bookingModel.Booking) []TrendPoint {
	byDay := map[string]*TrendPoint{}

	for _, booking := range bookings {
		day := booking.CheckIn.Format(constant.DateOnlyFormat)

		point, ok := byDay[day]
		if !ok {
			point = &TrendPoint{Date: day}
			byDay[day] = point
		}

		point.Bookings++
		point.Revenue += booking.Amount
	}

	result := make([]TrendPoint, 0, len(byDay))
	for _, point := range byDay {
		result = append(result, *point)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})

	return result
}
