package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"booking-reconciliation/internal/domain"
)

const reportSheet = "Reconciliation"

var reportHeadings = []string{
	"Booking", "Customer", "Chassis No", "Remark",
	"Customer Payments", "Supplier Payments",
	"Advance Payment Date", "Advance Payment Amount",
	"Balance Payment Date", "Balance Payment Amount",
	"Undeposited", "Unresolved Links",
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, report *domain.ReconciliationReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteXLSX writes one spreadsheet row per booking.
func WriteXLSX(w io.Writer, report *domain.ReconciliationReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headings := make([]any, len(reportHeadings))
	for i, h := range reportHeadings {
		headings[i] = h
	}
	if err := f.SetSheetRow(reportSheet, "A1", &headings); err != nil {
		return fmt.Errorf("failed to write headings: %w", err)
	}

	for i, b := range report.Bookings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := bookingRow(b)
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write booking %s: %w", b.BookingID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func bookingRow(b domain.BookingReport) []any {
	var customer, chassisNo, remark string
	if b.Invoice != nil {
		customer = b.Invoice.Customer
		chassisNo = b.Invoice.VehicleChassisNo
	}
	if b.Remark != nil {
		remark = b.Remark.String()
	}

	return []any{
		b.BookingID, customer, chassisNo, remark,
		len(b.CustomerPayments), len(b.SupplierPayments),
		formatDate(b.Summary.AdvanceDate), formatAmount(b.Summary.AdvanceAmount),
		formatDate(b.Summary.BalanceDate), formatAmount(b.Summary.BalanceAmount),
		b.UndepositedCount, b.UnresolvedLinks,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

func formatAmount(d *decimal.Decimal) any {
	if d == nil {
		return ""
	}
	return d.InexactFloat64()
}
