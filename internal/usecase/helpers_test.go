package usecase_test

import (
	"time"

	"github.com/shopspring/decimal"

	"booking-reconciliation/internal/domain"
)

func mustDate(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := mustDate(s)
	return &t
}

func receive(id, booking string, amount int64, instrumentDate, postingDate string) domain.PaymentRecord {
	var instrument *time.Time
	if instrumentDate != "" {
		instrument = datePtr(instrumentDate)
	}
	return domain.PaymentRecord{
		ID:             id,
		PaymentDocID:   "VBP-" + id,
		BookingID:      booking,
		PartyType:      "Customer",
		Party:          "CUST-001",
		PaymentType:    domain.PaymentTypeReceive,
		Amount:         decimal.NewFromInt(amount),
		InstrumentType: "Cheque",
		InstrumentDate: instrument,
		PostingDate:    mustDate(postingDate),
		CreatedAt:      mustDate(postingDate),
		DocStatus:      domain.DocStatusSubmitted,
	}
}

func pay(id, booking string, amount int64, postingDate, linkedRowID string) domain.PaymentRecord {
	return domain.PaymentRecord{
		ID:                 id,
		PaymentDocID:       "VBP-" + id,
		BookingID:          booking,
		PartyType:          "Supplier",
		Party:              "SUPP-001",
		PaymentType:        domain.PaymentTypePay,
		Amount:             decimal.NewFromInt(amount),
		DepositSlipNo:      "DS-" + id,
		DepositType:        "Cash",
		PostingDate:        mustDate(postingDate),
		CreatedAt:          mustDate(postingDate),
		DocStatus:          domain.DocStatusSubmitted,
		LinkedReceiveRowID: linkedRowID,
	}
}

func ids(payments []domain.PaymentRecord) []string {
	out := make([]string, len(payments))
	for i, p := range payments {
		out[i] = p.ID
	}
	return out
}
