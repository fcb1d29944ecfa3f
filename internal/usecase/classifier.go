package usecase

import (
	"time"

	"booking-reconciliation/internal/domain"
)

// ClassifyAdvanceBalance partitions customer payments around the first supplier deposit.
//
// A customer payment deposited on or before the calendar date of the earliest
// supplier payment is an advance; anything deposited later, or never deposited,
// is a balance payment. Without supplier payments every customer payment is an
// advance. Both results keep the order of customerPayments.
func ClassifyAdvanceBalance(customerPayments, supplierPayments []domain.PaymentRecord) ([]domain.PaymentRecord, []domain.PaymentRecord) {
	advance := make([]domain.PaymentRecord, 0)
	balance := make([]domain.PaymentRecord, 0)

	if len(supplierPayments) == 0 {
		return append(advance, customerPayments...), balance
	}

	cutoff := calendarDate(supplierPayments[0].PostingDate)
	for _, p := range customerPayments {
		if p.DepositDate != nil && !calendarDate(*p.DepositDate).After(cutoff) {
			advance = append(advance, p)
		} else {
			balance = append(balance, p)
		}
	}
	return advance, balance
}

// calendarDate drops the clock part of t, keeping the date as seen in t's location.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
