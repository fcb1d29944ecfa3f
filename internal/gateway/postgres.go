package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"booking-reconciliation/internal/domain"
)

const paymentsQuery = `
SELECT i.name, p.name, p.vehicle_booking_order, p.party_type, p.party,
	p.payment_type, i.amount,
	i.instrument_type, i.instrument_title, i.instrument_no, i.instrument_date, i.bank,
	p.deposit_slip_no, p.deposit_type,
	p.posting_date, p.creation, p.docstatus, i.vehicle_booking_payment_row
FROM vehicle_booking_payment_detail i
INNER JOIN vehicle_booking_payment p ON p.name = i.parent
WHERE %s AND p.vehicle_booking_order IN (%s)%s
ORDER BY i.instrument_date NULLS FIRST, p.posting_date, p.creation`

const bookingsQuery = `
SELECT name, customer, vehicle_chassis_no, vehicle_engine_no, vehicle_license_plate,
	vehicle_unregistered, customer_outstanding, vehicle_amount, fni_amount,
	withholding_tax_amount, payment_adjustment, docstatus
FROM vehicle_booking_order
WHERE name IN (%s)
ORDER BY name`

// SQLPaymentRepository implements the payment and booking repositories over the
// booking payment tables in PostgreSQL.
type SQLPaymentRepository struct {
	db *sql.DB
}

// NewSQLPaymentRepository creates a new repository instance.
func NewSQLPaymentRepository(db *sql.DB) *SQLPaymentRepository {
	return &SQLPaymentRepository{db: db}
}

// FetchPayments joins payment details with their headers for the requested bookings.
func (r *SQLPaymentRepository) FetchPayments(ctx context.Context, query domain.PaymentQuery) ([]domain.PaymentRecord, error) {
	if len(query.BookingIDs) == 0 {
		return nil, nil
	}

	docStatusCond := "p.docstatus = 1"
	if query.IncludeDraft {
		docStatusCond = "p.docstatus < 2"
	}

	args := make([]any, 0, len(query.BookingIDs)+1)
	for _, id := range query.BookingIDs {
		args = append(args, id)
	}
	inList := placeholders(1, len(query.BookingIDs))

	paymentTypeCond := ""
	if query.PaymentType != nil {
		args = append(args, query.PaymentType.String())
		paymentTypeCond = fmt.Sprintf(" AND p.payment_type = $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(paymentsQuery, docStatusCond, inList, paymentTypeCond), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query booking payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.PaymentRecord
	for rows.Next() {
		var (
			p                                                      domain.PaymentRecord
			paymentType                                            string
			partyType, party, instrumentType, instrumentTitle      sql.NullString
			instrumentNo, bank, depositSlipNo, depositType, linked sql.NullString
			instrumentDate                                         sql.NullTime
			docStatus                                              int
		)
		if err := rows.Scan(
			&p.ID, &p.PaymentDocID, &p.BookingID, &partyType, &party,
			&paymentType, &p.Amount,
			&instrumentType, &instrumentTitle, &instrumentNo, &instrumentDate, &bank,
			&depositSlipNo, &depositType,
			&p.PostingDate, &p.CreatedAt, &docStatus, &linked,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking payment: %w", err)
		}

		if p.PaymentType, err = domain.ParsePaymentType(paymentType); err != nil {
			return nil, &domain.InputError{RecordID: p.ID, Field: "payment_type", Reason: err.Error()}
		}
		p.PartyType = partyType.String
		p.Party = party.String
		p.InstrumentType = instrumentType.String
		p.InstrumentTitle = instrumentTitle.String
		p.InstrumentNo = instrumentNo.String
		p.Bank = bank.String
		p.DepositSlipNo = depositSlipNo.String
		p.DepositType = depositType.String
		p.LinkedReceiveRowID = linked.String
		p.DocStatus = domain.DocStatus(docStatus)
		if instrumentDate.Valid {
			d := instrumentDate.Time
			p.InstrumentDate = &d
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read booking payments: %w", err)
	}

	return payments, nil
}

// FetchBookings loads the invoice components of the requested bookings.
func (r *SQLPaymentRepository) FetchBookings(ctx context.Context, bookingIDs []string) ([]domain.BookingInvoice, error) {
	if len(bookingIDs) == 0 {
		return nil, nil
	}

	args := make([]any, len(bookingIDs))
	for i, id := range bookingIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(bookingsQuery, placeholders(1, len(bookingIDs))), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query booking orders: %w", err)
	}
	defer rows.Close()

	var bookings []domain.BookingInvoice
	for rows.Next() {
		var (
			b                                              domain.BookingInvoice
			customer, chassisNo, engineNo, licensePlate    sql.NullString
			unregistered                                   sql.NullBool
			outstanding, vehicle, fni, withholding, adjust decimal.NullDecimal
			docStatus                                      int
		)
		if err := rows.Scan(
			&b.BookingID, &customer, &chassisNo, &engineNo, &licensePlate,
			&unregistered, &outstanding, &vehicle, &fni,
			&withholding, &adjust, &docStatus,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking order: %w", err)
		}

		b.Customer = customer.String
		b.VehicleChassisNo = chassisNo.String
		b.VehicleEngineNo = engineNo.String
		b.VehicleLicensePlate = licensePlate.String
		b.VehicleUnregistered = unregistered.Bool
		b.OutstandingAmount = outstanding.Decimal
		b.VehicleAmount = vehicle.Decimal
		b.FNIAmount = fni.Decimal
		b.WithholdingTaxAmount = withholding.Decimal
		b.PaymentAdjustment = adjust.Decimal
		b.Cancelled = domain.DocStatus(docStatus) == domain.DocStatusCancelled
		b.FormatVehicleFields()
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read booking orders: %w", err)
	}

	return bookings, nil
}

// placeholders renders n positional parameters starting at $start.
func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}
