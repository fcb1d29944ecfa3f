package usecase

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"booking-reconciliation/internal/domain"
)

var validate = validator.New()

// Separate splits payments into customer (Receive) and supplier (Pay) rows.
//
// Every Pay row is its own deposit record. A Pay row linked to a Receive row in the
// same batch copies its deposit details onto that row; when several Pay rows target
// the same Receive row the last one in input order wins. Links that do not resolve
// are ignored. The input slice is never modified.
//
// Customer rows are ordered by instrument date, posting date and creation time.
// Supplier rows are ordered by posting date, creation time and input position.
func Separate(payments []domain.PaymentRecord) ([]domain.PaymentRecord, []domain.PaymentRecord, error) {
	customerPayments := make([]domain.PaymentRecord, 0)
	supplierPayments := make([]domain.PaymentRecord, 0)
	customerByRowID := make(map[string]int)

	for _, p := range payments {
		if err := validatePayment(p); err != nil {
			return nil, nil, err
		}

		rec := p.Clone()
		switch rec.PaymentType {
		case domain.PaymentTypeReceive:
			customerByRowID[rec.ID] = len(customerPayments)
			customerPayments = append(customerPayments, rec)
		case domain.PaymentTypePay:
			rec.DepositDocID = depositDocID(rec)
			postingDate := rec.PostingDate
			rec.DepositDate = &postingDate
			supplierPayments = append(supplierPayments, rec)
		}
	}

	for _, s := range supplierPayments {
		if s.LinkedReceiveRowID == "" {
			continue
		}
		i, ok := customerByRowID[s.LinkedReceiveRowID]
		if !ok {
			continue
		}
		c := &customerPayments[i]
		c.DepositSlipNo = s.DepositSlipNo
		c.DepositType = s.DepositType
		c.DepositDocID = depositDocID(s)
		postingDate := s.PostingDate
		c.DepositDate = &postingDate
	}

	domain.OrderByInstrumentDate(customerPayments)
	domain.OrderByPostingDate(supplierPayments)

	return customerPayments, supplierPayments, nil
}

// UnresolvedLinks returns the supplier rows whose linked Receive row is not among
// the customer rows.
func UnresolvedLinks(customerPayments, supplierPayments []domain.PaymentRecord) []domain.PaymentRecord {
	known := make(map[string]struct{}, len(customerPayments))
	for _, c := range customerPayments {
		known[c.ID] = struct{}{}
	}

	var unresolved []domain.PaymentRecord
	for _, s := range supplierPayments {
		if s.LinkedReceiveRowID == "" {
			continue
		}
		if _, ok := known[s.LinkedReceiveRowID]; !ok {
			unresolved = append(unresolved, s)
		}
	}
	return unresolved
}

// depositDocID is the payment document a deposit belongs to, falling back to the row id.
func depositDocID(p domain.PaymentRecord) string {
	if p.PaymentDocID != "" {
		return p.PaymentDocID
	}
	return p.ID
}

func validatePayment(p domain.PaymentRecord) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &domain.InputError{RecordID: p.ID, Field: "record", Reason: err.Error()}
	}

	fe := fieldErrs[0]
	reason := "is required"
	if fe.Tag() == "oneof" {
		reason = "has unknown value " + p.PaymentType.String()
	}
	return &domain.InputError{RecordID: p.ID, Field: fe.Field(), Reason: reason}
}
