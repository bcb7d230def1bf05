package model_test

import (
	"testing"
	"time"

	"lodge/internal/domains/analytics/model"
	bookingModel "lodge/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
)

func day(d int, hour int) time.Time {
	return time.Date(2026, 3, d, hour, 0, 0, 0, time.UTC)
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{name: "same day is one day", from: day(1, 0), to: day(1, 0), want: 1},
		{name: "five day range", from: day(1, 0), to: day(5, 0), want: 5},
		{name: "inverted range collapses to one day", from: day(5, 0), to: day(1, 0), want: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, model.DaysBetween(test.from, test.to))
		})
	}
}

func TestSummarize(t *testing.T) {
	bookings := []bookingModel.Booking{
		{RoomNo: "101", Amount: 1000, CheckIn: day(1, 9)},
		{RoomNo: "102", Amount: 2000, CheckIn: day(2, 14)},
		{RoomNo: "101", Amount: 1500, CheckIn: day(3, 9)},
	}

	// 3 bookings over 3 rooms times 5 days = 20% occupancy.
	kpi := model.Summarize(bookings, 3, day(1, 0), day(5, 0))

	assert.Equal(t, 3, kpi.TotalBookings)
	assert.Equal(t, float64(4500), kpi.TotalRevenue)
	assert.Equal(t, float64(1500), kpi.AverageAmount)
	assert.InDelta(t, 20.0, kpi.OccupancyRate, 0.001)
}

func TestSummarizeEmpty(t *testing.T) {
	kpi := model.Summarize(nil, 0, day(1, 0), day(5, 0))

	assert.Zero(t, kpi.TotalBookings)
	assert.Zero(t, kpi.TotalRevenue)
	assert.Zero(t, kpi.AverageAmount)
	assert.Zero(t, kpi.OccupancyRate)
}

func TestPerRoom(t *testing.T) {
	bookings := []bookingModel.Booking{
		{RoomNo: "101", Amount: 1000},
		{RoomNo: "102", Amount: 3000},
		{RoomNo: "101", Amount: 1500},
	}

	perf := model.PerRoom(bookings)

	assert.Len(t, perf, 2)
	assert.Equal(t, "102", perf[0].RoomNo)
	assert.Equal(t, float64(3000), perf[0].Revenue)
	assert.Equal(t, "101", perf[1].RoomNo)
	assert.Equal(t, 2, perf[1].Bookings)
	assert.Equal(t, float64(2500), perf[1].Revenue)
}

func TestTrend(t *testing.T) {
	bookings := []bookingModel.Booking{
		{Amount: 2000, CheckIn: day(3, 9)},
		{Amount: 1000, CheckIn: day(1, 9)},
		{Amount: 1500, CheckIn: day(1, 18)},
	}

	trend := model.Trend(bookings)

	assert.Len(t, trend, 2)
	assert.Equal(t, "2026-03-01", trend[0].Date)
	assert.Equal(t, 2, trend[0].Bookings)
	assert.Equal(t, float64(2500), trend[0].Revenue)
	assert.Equal(t, "2026-03-03", trend[1].Date)
}
