package usecase

import (
	"context"

	"booking-reconciliation/internal/domain"
)

// PaymentRepository defines the interface for fetching booking payment rows.
// Rows come back ordered by instrument date, posting date and creation time.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go
type PaymentRepository interface {
	FetchPayments(ctx context.Context, query domain.PaymentQuery) ([]domain.PaymentRecord, error)
}

// BookingRepository defines the interface for fetching booking invoice components.
type BookingRepository interface {
	FetchBookings(ctx context.Context, bookingIDs []string) ([]domain.BookingInvoice, error)
}
