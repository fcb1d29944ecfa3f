package domain

import (
	"sort"
	"time"
)

// OrderByInstrumentDate sorts payments by instrument date, posting date and creation
// time. Rows without an instrument date come first. Ties keep their relative order.
func OrderByInstrumentDate(payments []PaymentRecord) {
	sort.SliceStable(payments, func(i, j int) bool {
		a, b := payments[i], payments[j]
		if c := compareOptionalTime(a.InstrumentDate, b.InstrumentDate); c != 0 {
			return c < 0
		}
		if !a.PostingDate.Equal(b.PostingDate) {
			return a.PostingDate.Before(b.PostingDate)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

// OrderByPostingDate sorts payments by posting date and creation time.
// Ties keep their relative order, so input position is the final key.
func OrderByPostingDate(payments []PaymentRecord) {
	sort.SliceStable(payments, func(i, j int) bool {
		a, b := payments[i], payments[j]
		if !a.PostingDate.Equal(b.PostingDate) {
			return a.PostingDate.Before(b.PostingDate)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

func compareOptionalTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}
