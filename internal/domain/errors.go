package domain

import "fmt"

// InputError reports a payment record that cannot be reconciled as given.
type InputError struct {
	RecordID string
	Field    string
	Reason   string
}

func (e *InputError) Error() string {
	if e.RecordID == "" {
		return fmt.Sprintf("invalid payment record: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid payment record %s: %s %s", e.RecordID, e.Field, e.Reason)
}
