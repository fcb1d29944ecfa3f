package usecase

import (
	"time"

	"booking-reconciliation/internal/domain"
)

// Summarize reduces classified payments to their first advance and last balance dates
// and the total of each side.
func Summarize(advancePayments, balancePayments []domain.PaymentRecord) domain.AdvanceBalanceSummary {
	var summary domain.AdvanceBalanceSummary

	if len(advancePayments) > 0 {
		summary.AdvanceDate = copyTime(advancePayments[0].DepositDate)
		amount := domain.SumAmounts(advancePayments)
		summary.AdvanceAmount = &amount
	}
	if len(balancePayments) > 0 {
		summary.BalanceDate = copyTime(balancePayments[len(balancePayments)-1].DepositDate)
		amount := domain.SumAmounts(balancePayments)
		summary.BalanceAmount = &amount
	}

	return summary
}

// AdvanceBalanceDetails separates, classifies and summarizes the payments of one booking.
func AdvanceBalanceDetails(payments []domain.PaymentRecord) (domain.AdvanceBalanceSummary, error) {
	customerPayments, supplierPayments, err := Separate(payments)
	if err != nil {
		return domain.AdvanceBalanceSummary{}, err
	}
	advance, balance := ClassifyAdvanceBalance(customerPayments, supplierPayments)
	return Summarize(advance, balance), nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
