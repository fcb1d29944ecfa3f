package domain

import "fmt"

// Remark is the outstanding-status label of a booking invoice.
type Remark int

const (
	RemarkCancelled Remark = iota + 1
	RemarkPaidWithAdjustment
	RemarkFullyPaid
	RemarkUnpaid
	RemarkExFactoryAmountDue
	RemarkFreightChargesDue
	RemarkWithholdingTaxDue
	RemarkExFactoryPlusFreightDue
	RemarkExFactoryPlusWithholdingTaxDue
	RemarkFreightPlusWithholdingTaxDue
	RemarkBalanceDue
)

var remarkLabels = map[Remark]string{
	RemarkCancelled:                      "Cancelled",
	RemarkPaidWithAdjustment:             "Paid with Adjustment",
	RemarkFullyPaid:                      "Fully Paid",
	RemarkUnpaid:                         "Unpaid",
	RemarkExFactoryAmountDue:             "Ex Factory Amount Due",
	RemarkFreightChargesDue:              "Freight Charges Due",
	RemarkWithholdingTaxDue:              "Withholding Tax Due",
	RemarkExFactoryPlusFreightDue:        "Ex Factory + Freight Due",
	RemarkExFactoryPlusWithholdingTaxDue: "Ex Factory + Withholding Tax Due",
	RemarkFreightPlusWithholdingTaxDue:   "Freight + Withholding Tax Due",
	RemarkBalanceDue:                     "Balance Due",
}

// AllRemarks returns every remark in decision order.
func AllRemarks() []Remark {
	return []Remark{
		RemarkCancelled,
		RemarkPaidWithAdjustment,
		RemarkFullyPaid,
		RemarkUnpaid,
		RemarkExFactoryAmountDue,
		RemarkFreightChargesDue,
		RemarkWithholdingTaxDue,
		RemarkExFactoryPlusFreightDue,
		RemarkExFactoryPlusWithholdingTaxDue,
		RemarkFreightPlusWithholdingTaxDue,
		RemarkBalanceDue,
	}
}

// String returns the English label. Callers localize from the Remark value.
func (r Remark) String() string {
	if label, ok := remarkLabels[r]; ok {
		return label
	}
	return fmt.Sprintf("Remark(%d)", int(r))
}

func (r Remark) MarshalText() ([]byte, error) {
	if _, ok := remarkLabels[r]; !ok {
		return nil, fmt.Errorf("cannot marshal %s", r)
	}
	return []byte(r.String()), nil
}
