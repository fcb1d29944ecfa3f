package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdvanceBalanceSummary condenses the advance and balance payments of a booking.
// A side with no payments leaves its fields nil.
type AdvanceBalanceSummary struct {
	AdvanceDate   *time.Time       `json:"advance_payment_date,omitempty"`
	AdvanceAmount *decimal.Decimal `json:"advance_payment_amount,omitempty"`
	BalanceDate   *time.Time       `json:"balance_payment_date,omitempty"`
	BalanceAmount *decimal.Decimal `json:"balance_payment_amount,omitempty"`
}

// HasAdvance reports whether any advance payment was summarized.
func (s AdvanceBalanceSummary) HasAdvance() bool { return s.AdvanceAmount != nil }

// HasBalance reports whether any balance payment was summarized.
func (s AdvanceBalanceSummary) HasBalance() bool { return s.BalanceAmount != nil }

// BookingReport is the reconciliation result for a single booking.
type BookingReport struct {
	BookingID        string                `json:"booking_id"`
	Invoice          *BookingInvoice       `json:"invoice,omitempty"`
	CustomerPayments []PaymentRecord       `json:"customer_payments"`
	SupplierPayments []PaymentRecord       `json:"supplier_payments"`
	AdvanceCount     int                   `json:"advance_count"`
	BalanceCount     int                   `json:"balance_count"`
	UndepositedCount int                   `json:"undeposited_count"`
	UnresolvedLinks  int                   `json:"unresolved_links"`
	CustomerTotal    decimal.Decimal       `json:"customer_total"`
	SupplierTotal    decimal.Decimal       `json:"supplier_total"`
	Summary          AdvanceBalanceSummary `json:"summary"`
	// Remark is nil when no invoice is known for the booking.
	Remark *Remark `json:"remark,omitempty"`
}

// Summary provides high-level statistics of the reconciliation run.
type Summary struct {
	BookingsProcessed    int  `json:"bookings_processed"`
	PaymentRowsProcessed int  `json:"payment_rows_processed"`
	CustomerPaymentRows  int  `json:"customer_payment_rows"`
	SupplierPaymentRows  int  `json:"supplier_payment_rows"`
	UnresolvedLinks      int  `json:"unresolved_links"`
	IncludeDraft         bool `json:"include_draft"`
}

// ReconciliationReport is the top-level structure for the final output.
type ReconciliationReport struct {
	ReconciliationSummary Summary         `json:"reconciliation_summary"`
	Bookings              []BookingReport `json:"bookings"`
}
