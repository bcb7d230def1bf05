package dto

import (
	"lodge/internal/domains/analytics/model"
)

type SummaryResponse struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalBookings int     `json:"total_bookings"`
	OccupancyRate float64 `json:"occupancy_rate"`
	AverageAmount float64 `json:"average_amount"`
}

func (r *SummaryResponse) FromKPI(kpi model.KPI) {
	r.TotalRevenue = kpi.TotalRevenue
	r.TotalBookings = kpi.TotalBookings
	r.OccupancyRate = kpi.OccupancyRate
	r.AverageAmount = kpi.AverageAmount
}

type RoomPerformanceResponse struct {
	RoomNo   string  `json:"room_no"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

type GetRoomPerformanceResponse struct {
	Rooms []RoomPerformanceResponse `json:"rooms"`
}

func (r *GetRoomPerformanceResponse) FromModels(perfs []model.RoomPerformance) {
	r.Rooms = make([]RoomPerformanceResponse, len(perfs))
	for i, perf := range perfs {
		r.Rooms[i] = RoomPerformanceResponse{
			RoomNo:   perf.RoomNo,
			Bookings: perf.Bookings,
			Revenue:  perf.Revenue,
		}
	}
}

type TrendPointResponse struct {
	Date     string  `json:"date"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

type GetTrendResponse struct {
	Points []TrendPointResponse `json:"points"`
}

func (r *GetTrendResponse) FromModels(points []model.TrendPoint) {
	r.Points = make([]TrendPointResponse, len(points))
	for i, point := range points {
		r.Points[i] = TrendPointResponse{
			Date:     point.Date,
			Bookings: point.Bookings,
			Revenue:  point.Revenue,
		}
	}
}
