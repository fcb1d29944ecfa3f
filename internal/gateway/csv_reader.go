package gateway

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"booking-reconciliation/internal/domain"
)

// Accepted layouts for date and timestamp columns.
var (
	dateLayouts      = []string{time.DateOnly, "02-01-2006"}
	timestampLayouts = []string{time.RFC3339Nano, time.DateTime, "2006-01-02 15:04:05.999999", time.DateOnly}
)

// CSVPaymentRepository implements the payment and booking repositories over CSV exports.
type CSVPaymentRepository struct {
	paymentsPath string
	bookingsPath string
}

// NewCSVPaymentRepository creates a new repository instance.
// bookingsPath may be empty when no invoice export is available.
func NewCSVPaymentRepository(paymentsPath, bookingsPath string) *CSVPaymentRepository {
	return &CSVPaymentRepository{paymentsPath: paymentsPath, bookingsPath: bookingsPath}
}

// FetchPayments reads the payment export, keeps the rows selected by query and
// orders them by instrument date, posting date and creation time.
func (r *CSVPaymentRepository) FetchPayments(ctx context.Context, query domain.PaymentQuery) ([]domain.PaymentRecord, error) {
	if len(query.BookingIDs) == 0 {
		return nil, nil
	}
	wanted := toSet(query.BookingIDs)

	var payments []domain.PaymentRecord
	err := readCSV(ctx, r.paymentsPath, []string{"row_id", "booking_id", "payment_type", "amount", "posting_date"}, func(row csvRow) error {
		if _, ok := wanted[row.get("booking_id")]; !ok {
			return nil
		}
		p, err := parsePaymentRow(row)
		if err != nil {
			return err
		}
		if query.Matches(p.DocStatus, p.PaymentType) {
			payments = append(payments, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	domain.OrderByInstrumentDate(payments)
	return payments, nil
}

// FetchBookings reads the booking invoice export for the given bookings.
func (r *CSVPaymentRepository) FetchBookings(ctx context.Context, bookingIDs []string) ([]domain.BookingInvoice, error) {
	if r.bookingsPath == "" || len(bookingIDs) == 0 {
		return nil, nil
	}
	wanted := toSet(bookingIDs)

	var bookings []domain.BookingInvoice
	err := readCSV(ctx, r.bookingsPath, []string{"booking_id", "outstanding_amount"}, func(row csvRow) error {
		if _, ok := wanted[row.get("booking_id")]; !ok {
			return nil
		}
		b := domain.BookingInvoice{
			BookingID:            row.get("booking_id"),
			Customer:             row.get("customer"),
			VehicleChassisNo:     row.get("vehicle_chassis_no"),
			VehicleEngineNo:      row.get("vehicle_engine_no"),
			VehicleLicensePlate:  row.get("vehicle_license_plate"),
			VehicleUnregistered:  parseFlag(row.get("vehicle_unregistered")),
			OutstandingAmount:    domain.ParseAmount(row.get("outstanding_amount")),
			VehicleAmount:        domain.ParseAmount(row.get("vehicle_amount")),
			FNIAmount:            domain.ParseAmount(row.get("fni_amount")),
			WithholdingTaxAmount: domain.ParseAmount(row.get("withholding_tax_amount")),
			PaymentAdjustment:    domain.ParseAmount(row.get("payment_adjustment")),
			Cancelled:            parseFlag(row.get("cancelled")),
		}
		b.FormatVehicleFields()
		bookings = append(bookings, b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func parsePaymentRow(row csvRow) (domain.PaymentRecord, error) {
	id := row.get("row_id")

	paymentType, err := domain.ParsePaymentType(row.get("payment_type"))
	if err != nil {
		return domain.PaymentRecord{}, fmt.Errorf("%s line %d: %w", row.path, row.line,
			&domain.InputError{RecordID: id, Field: "payment_type", Reason: err.Error()})
	}

	amount, err := decimal.NewFromString(row.get("amount"))
	if err != nil {
		return domain.PaymentRecord{}, fmt.Errorf("could not parse amount '%s' in %s line %d: %w", row.get("amount"), row.path, row.line, err)
	}

	postingDate, err := parseTime(row.get("posting_date"), dateLayouts)
	if err != nil {
		return domain.PaymentRecord{}, fmt.Errorf("could not parse posting_date in %s line %d: %w", row.path, row.line, err)
	}

	createdAt := postingDate
	if v := row.get("creation"); v != "" {
		if createdAt, err = parseTime(v, timestampLayouts); err != nil {
			return domain.PaymentRecord{}, fmt.Errorf("could not parse creation in %s line %d: %w", row.path, row.line, err)
		}
	}

	var instrumentDate *time.Time
	if v := row.get("instrument_date"); v != "" {
		d, err := parseTime(v, dateLayouts)
		if err != nil {
			return domain.PaymentRecord{}, fmt.Errorf("could not parse instrument_date in %s line %d: %w", row.path, row.line, err)
		}
		instrumentDate = &d
	}

	docStatus := domain.DocStatusSubmitted
	if v := row.get("docstatus"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.PaymentRecord{}, fmt.Errorf("could not parse docstatus '%s' in %s line %d: %w", v, row.path, row.line, err)
		}
		docStatus = domain.DocStatus(n)
	}

	return domain.PaymentRecord{
		ID:                 id,
		PaymentDocID:       row.get("name"),
		BookingID:          row.get("booking_id"),
		PartyType:          row.get("party_type"),
		Party:              row.get("party"),
		PaymentType:        paymentType,
		Amount:             amount,
		InstrumentType:     row.get("instrument_type"),
		InstrumentTitle:    row.get("instrument_title"),
		InstrumentNo:       row.get("instrument_no"),
		InstrumentDate:     instrumentDate,
		Bank:               row.get("bank"),
		DepositSlipNo:      row.get("deposit_slip_no"),
		DepositType:        row.get("deposit_type"),
		PostingDate:        postingDate,
		CreatedAt:          createdAt,
		DocStatus:          docStatus,
		LinkedReceiveRowID: row.get("linked_row_id"),
	}, nil
}

type csvRow struct {
	path   string
	line   int
	header map[string]int
	record []string
}

// get returns the trimmed value of a column, or "" when the column is absent.
func (r csvRow) get(name string) string {
	i, ok := r.header[name]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func readCSV(ctx context.Context, path string, required []string, fn func(csvRow) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	head, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read header from %s: %w", path, err)
	}
	header := make(map[string]int, len(head))
	for i, h := range head {
		header[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range required {
		if _, ok := header[name]; !ok {
			return fmt.Errorf("missing required header %q in %s", name, path)
		}
	}

	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("error reading record from %s: %w", path, err)
		}
		if err := fn(csvRow{path: path, line: line, header: header, record: record}); err != nil {
			return err
		}
	}
}

func parseTime(s string, layouts []string) (time.Time, error) {
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseFlag(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
