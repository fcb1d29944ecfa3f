package usecase

import (
	"sort"

	"booking-reconciliation/internal/domain"
)

// GroupByBooking groups payments by booking id, keeping input order within each group.
func GroupByBooking(payments []domain.PaymentRecord) map[string][]domain.PaymentRecord {
	groups := make(map[string][]domain.PaymentRecord)
	for _, p := range payments {
		groups[p.BookingID] = append(groups[p.BookingID], p)
	}
	return groups
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
