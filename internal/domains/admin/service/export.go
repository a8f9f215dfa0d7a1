package service

import (
	"fmt"

	"hotel/internal/domains/admin/model"
	"hotel/shared/constant"
	"hotel/shared/timezone"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Bookings"

var exportHeader = []string{
	"Booking Code",
	"Guest",
	"Email",
	"Room",
	"Room Type",
	"Check-in",
	"Check-out",
	"Nights",
	"Total Amount",
	"Status",
	"Payment Status",
	"Paid Amount",
	"Booked At",
}

var exportWidths = []float64{18, 24, 30, 10, 14, 12, 12, 8, 14, 20, 16, 14, 20}

func exportRecord(row model.ExportRow) []any {
	paid := constant.Empty
	if row.PaidAmount != nil {
		paid = row.PaidAmount.StringFixed(2)
	}

	return []any{
		row.Code,
		row.GuestName,
		row.GuestEmail,
		row.RoomNumber,
		row.RoomType,
		timezone.Format(row.CheckIn, constant.DateOnlyFormat),
		timezone.Format(row.CheckOut, constant.DateOnlyFormat),
		row.Nights,
		row.TotalAmount.StringFixed(2),
		row.Status,
		row.PaymentStatus,
		paid,
		timezone.Format(row.CreatedAt, "2006-01-02 15:04"),
	}
}

// renderBookings writes rows to a single-sheet workbook and returns its bytes.
func renderBookings(rows []model.ExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	if err = f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err = f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(exportHeader))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve column: %w", err)
	}

	if err = f.SetCellStyle(exportSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, width := range exportWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err = f.SetColWidth(exportSheet, col, col, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}

		record := exportRecord(row)
		if err = f.SetSheetRow(exportSheet, cell, &record); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
