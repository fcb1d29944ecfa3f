package usecase

import (
	"github.com/shopspring/decimal"

	"booking-reconciliation/internal/domain"
)

// DefaultCurrencyPrecision is the number of decimal places compared when matching
// an outstanding amount against invoice components.
const DefaultCurrencyPrecision int32 = 0

// OutstandingClassifier derives a remark from an invoice's outstanding amount.
type OutstandingClassifier struct {
	precision int32
}

// NewOutstandingClassifier creates a classifier comparing amounts at the given precision.
func NewOutstandingClassifier(precision int32) *OutstandingClassifier {
	if precision < 0 {
		precision = DefaultCurrencyPrecision
	}
	return &OutstandingClassifier{precision: precision}
}

// ClassifyOutstanding classifies at the default currency precision.
func ClassifyOutstanding(outstanding, vehicleAmount, fniAmount, withholdingTaxAmount, paymentAdjustment decimal.Decimal, isCancelled bool) domain.Remark {
	return NewOutstandingClassifier(DefaultCurrencyPrecision).Classify(outstanding, vehicleAmount, fniAmount, withholdingTaxAmount, paymentAdjustment, isCancelled)
}

// Classify returns the first matching remark. Every comparison is made after
// rounding both sides to the classifier's precision (half to even). The payment
// adjustment is tested unrounded.
func (c *OutstandingClassifier) Classify(outstanding, vehicleAmount, fniAmount, withholdingTaxAmount, paymentAdjustment decimal.Decimal, isCancelled bool) domain.Remark {
	if isCancelled {
		return domain.RemarkCancelled
	}

	out := c.round(outstanding)
	if out.IsZero() {
		if !paymentAdjustment.IsZero() {
			return domain.RemarkPaidWithAdjustment
		}
		return domain.RemarkFullyPaid
	}

	invoiceTotal := vehicleAmount.Add(fniAmount).Add(withholdingTaxAmount)
	if out.GreaterThanOrEqual(c.round(invoiceTotal)) {
		return domain.RemarkUnpaid
	}

	matches := []struct {
		amount decimal.Decimal
		remark domain.Remark
	}{
		{vehicleAmount, domain.RemarkExFactoryAmountDue},
		{fniAmount, domain.RemarkFreightChargesDue},
		{withholdingTaxAmount, domain.RemarkWithholdingTaxDue},
		{vehicleAmount.Add(fniAmount), domain.RemarkExFactoryPlusFreightDue},
		{vehicleAmount.Add(withholdingTaxAmount), domain.RemarkExFactoryPlusWithholdingTaxDue},
		{fniAmount.Add(withholdingTaxAmount), domain.RemarkFreightPlusWithholdingTaxDue},
	}
	for _, m := range matches {
		if out.Equal(c.round(m.amount)) {
			return m.remark
		}
	}

	return domain.RemarkBalanceDue
}

// ClassifyInvoice classifies the outstanding state of a booking invoice.
func (c *OutstandingClassifier) ClassifyInvoice(inv domain.BookingInvoice) domain.Remark {
	return c.Classify(inv.OutstandingAmount, inv.VehicleAmount, inv.FNIAmount, inv.WithholdingTaxAmount, inv.PaymentAdjustment, inv.Cancelled)
}

func (c *OutstandingClassifier) round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(c.precision)
}
