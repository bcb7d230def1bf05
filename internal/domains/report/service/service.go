package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"

	"lodge/infras/otel"
	bookingModel "lodge/internal/domains/booking/model"
	bookingRepo "lodge/internal/domains/booking/repository"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const bookingsSheetName = "Bookings"

type Report interface {
	GenerateBill(ctx context.Context, bookingID string) ([]byte, error)
	ExportBookings(ctx context.Context, filter gDto.FilterGroup) ([]byte, error)
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	otel        otel.Otel
}

func New(bookingRepo bookingRepo.Booking, otel otel.Otel) Report {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		otel:        otel,
	}
}

// GenerateBill renders the bill for one booking as a PDF document.
func (s *serviceImpl) GenerateBill(ctx context.Context, bookingID string) (res []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GenerateBill")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking for bill")

		return nil, fmt.Errorf("failed to get booking for bill: %w", err)
	}

	if booking.ID == constant.Empty {
		return nil, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Booking Bill")
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 12)

	checkOut := "-"
	if booking.CheckOut != nil {
		checkOut = timezone.Format(*booking.CheckOut, constant.DateFormat)
	}

	rows := [][2]string{
		{"Booking ID", booking.ID},
		{"Room No", booking.RoomNo},
		{"Guest Name", booking.GuestName},
		{"Persons", fmt.Sprintf("%d", booking.Persons)},
		{"Check In", timezone.Format(booking.CheckIn, constant.DateFormat)},
		{"Check Out", checkOut},
		{"Total Amount", fmt.Sprintf("%.2f", booking.Amount)},
	}

	for _, row := range rows {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(50, 10, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(120, 10, row[1], "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Error().Err(err).Msg("failed to render bill PDF")

		return nil, fmt.Errorf("failed to render bill PDF: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportBookings writes the filtered booking history to an Excel workbook.
func (s *serviceImpl) ExportBookings(ctx context.Context, filter gDto.FilterGroup) (res []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExportBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{
		SortBy:  bookingModel.FieldCheckIn,
		SortDir: "ASC",
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for export")

		return nil, fmt.Errorf("failed to get bookings for export: %w", err)
	}

	file := excelize.NewFile()
	file.SetSheetName("Sheet1", bookingsSheetName)

	headers := []string{"Booking ID", "Room No", "Guest Name", "Phone", "Persons", "Amount", "Check In", "Check Out", "Status"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell name: %w", err)
		}

		if err := file.SetCellValue(bookingsSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for rowIdx, booking := range bookings {
		checkOut := ""
		if booking.CheckOut != nil {
			checkOut = timezone.Format(*booking.CheckOut, constant.DateFormat)
		}

		values := []any{
			booking.ID,
			booking.RoomNo,
			booking.GuestName,
			booking.CustomerPhone,
			booking.Persons,
			booking.Amount,
			timezone.Format(booking.CheckIn, constant.DateFormat),
			checkOut,
			booking.Status,
		}

		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell name: %w", err)
			}

			if err := file.SetCellValue(bookingsSheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		log.Error().Err(err).Msg("failed to render bookings workbook")

		return nil, fmt.Errorf("failed to render bookings workbook: %w", err)
	}

	return buf.Bytes(), nil
}
