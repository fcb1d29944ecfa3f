package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType defines the direction of a booking payment.
type PaymentType int

const (
	// PaymentTypeReceive is money paid in by the customer.
	PaymentTypeReceive PaymentType = iota + 1
	// PaymentTypePay is money paid out to the supplier (a deposit).
	PaymentTypePay
)

// ParsePaymentType maps the stored label ("Receive" or "Pay") to a PaymentType.
func ParsePaymentType(s string) (PaymentType, error) {
	switch strings.TrimSpace(s) {
	case "Receive":
		return PaymentTypeReceive, nil
	case "Pay":
		return PaymentTypePay, nil
	}
	return 0, fmt.Errorf("unknown payment type %q", s)
}

// IsValid reports whether t is one of the declared payment types.
func (t PaymentType) IsValid() bool {
	return t == PaymentTypeReceive || t == PaymentTypePay
}

func (t PaymentType) String() string {
	switch t {
	case PaymentTypeReceive:
		return "Receive"
	case PaymentTypePay:
		return "Pay"
	}
	return fmt.Sprintf("PaymentType(%d)", int(t))
}

func (t PaymentType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("cannot marshal %s", t)
	}
	return []byte(t.String()), nil
}

func (t *PaymentType) UnmarshalText(b []byte) error {
	parsed, err := ParsePaymentType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// DocStatus is the lifecycle state of the payment document a row belongs to.
type DocStatus int

const (
	DocStatusDraft DocStatus = iota
	DocStatusSubmitted
	DocStatusCancelled
)

// IsCommitted reports whether the document has been submitted.
func (s DocStatus) IsCommitted() bool { return s == DocStatusSubmitted }

// PaymentRecord is a single payment detail line joined with its payment header.
type PaymentRecord struct {
	ID              string          `json:"row_id" validate:"required"`
	PaymentDocID    string          `json:"payment_doc_id"`
	BookingID       string          `json:"booking_id" validate:"required"`
	PartyType       string          `json:"party_type,omitempty"`
	Party           string          `json:"party,omitempty"`
	PaymentType     PaymentType     `json:"payment_type" validate:"required,oneof=1 2"`
	Amount          decimal.Decimal `json:"amount"`
	InstrumentType  string          `json:"instrument_type,omitempty"`
	InstrumentTitle string          `json:"instrument_title,omitempty"`
	InstrumentNo    string          `json:"instrument_no,omitempty"`
	InstrumentDate  *time.Time      `json:"instrument_date,omitempty"`
	Bank            string          `json:"bank,omitempty"`
	DepositSlipNo   string          `json:"deposit_slip_no,omitempty"`
	DepositType     string          `json:"deposit_type,omitempty"`
	PostingDate     time.Time       `json:"posting_date"`
	CreatedAt       time.Time       `json:"created_at"`
	DocStatus       DocStatus       `json:"docstatus"`

	// LinkedReceiveRowID is set on Pay rows and names the Receive row the deposit settles.
	LinkedReceiveRowID string `json:"linked_receive_row_id,omitempty"`

	// Set during separation. Unset on a Receive row means it has not been deposited.
	DepositDocID string     `json:"deposit_doc_id,omitempty"`
	DepositDate  *time.Time `json:"deposit_date,omitempty"`
}

// IsDeposited reports whether a deposit has been recorded against the row.
func (p PaymentRecord) IsDeposited() bool {
	return p.DepositDate != nil
}

// Clone returns a copy that shares no pointers with p.
func (p PaymentRecord) Clone() PaymentRecord {
	c := p
	c.InstrumentDate = cloneTime(p.InstrumentDate)
	c.DepositDate = cloneTime(p.DepositDate)
	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// PaymentQuery selects the payment rows to reconcile.
type PaymentQuery struct {
	BookingIDs   []string
	IncludeDraft bool
	// PaymentType restricts the rows to one direction when set.
	PaymentType *PaymentType
}

// Matches reports whether a row with the given status and type passes the query filters.
// Booking membership is checked separately.
func (q PaymentQuery) Matches(status DocStatus, paymentType PaymentType) bool {
	if q.IncludeDraft {
		if status >= DocStatusCancelled {
			return false
		}
	} else if !status.IsCommitted() {
		return false
	}
	return q.PaymentType == nil || *q.PaymentType == paymentType
}
