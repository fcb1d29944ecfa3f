package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"booking-reconciliation/internal/domain"
)

// BookingReconciliationUseCase orchestrates the reconciliation of booking payments.
type BookingReconciliationUseCase struct {
	payments PaymentRepository
	bookings BookingRepository
	remarks  *OutstandingClassifier
	logger   *zap.Logger
}

// Option configures a BookingReconciliationUseCase.
type Option func(*BookingReconciliationUseCase)

// WithLogger sets the logger used by the use case.
func WithLogger(logger *zap.Logger) Option {
	return func(uc *BookingReconciliationUseCase) {
		if logger != nil {
			uc.logger = logger
		}
	}
}

// WithCurrencyPrecision sets the precision used when deriving outstanding remarks.
func WithCurrencyPrecision(precision int32) Option {
	return func(uc *BookingReconciliationUseCase) {
		uc.remarks = NewOutstandingClassifier(precision)
	}
}

// NewBookingReconciliationUseCase creates a new instance of the usecase.
// bookings may be nil, in which case no outstanding remarks are derived.
func NewBookingReconciliationUseCase(payments PaymentRepository, bookings BookingRepository, opts ...Option) *BookingReconciliationUseCase {
	uc := &BookingReconciliationUseCase{
		payments: payments,
		bookings: bookings,
		remarks:  NewOutstandingClassifier(DefaultCurrencyPrecision),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Reconcile fetches the payments selected by query and reconciles each booking.
func (uc *BookingReconciliationUseCase) Reconcile(ctx context.Context, query domain.PaymentQuery) (*domain.ReconciliationReport, error) {
	// Step 1: Data Ingestion
	payments, err := uc.payments.FetchPayments(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not fetch payments: %w", err)
	}

	invoices := make(map[string]domain.BookingInvoice)
	if uc.bookings != nil {
		bookings, err := uc.bookings.FetchBookings(ctx, query.BookingIDs)
		if err != nil {
			return nil, fmt.Errorf("could not fetch bookings: %w", err)
		}
		for _, b := range bookings {
			invoices[b.BookingID] = b
		}
	}

	// Step 2: Grouping
	groups := GroupByBooking(payments)
	for id := range invoices {
		if _, ok := groups[id]; !ok {
			groups[id] = nil
		}
	}

	report := domain.ReconciliationReport{
		ReconciliationSummary: domain.Summary{
			PaymentRowsProcessed: len(payments),
			IncludeDraft:         query.IncludeDraft,
		},
		Bookings: make([]domain.BookingReport, 0, len(groups)),
	}

	// Step 3: Per-booking separation and classification
	for _, bookingID := range sortedKeys(groups) {
		var invoice *domain.BookingInvoice
		if inv, ok := invoices[bookingID]; ok {
			invoice = &inv
		}

		br, err := uc.reconcileBooking(bookingID, groups[bookingID], invoice)
		if err != nil {
			return nil, fmt.Errorf("could not reconcile booking %s: %w", bookingID, err)
		}

		report.ReconciliationSummary.CustomerPaymentRows += len(br.CustomerPayments)
		report.ReconciliationSummary.SupplierPaymentRows += len(br.SupplierPayments)
		report.ReconciliationSummary.UnresolvedLinks += br.UnresolvedLinks
		report.Bookings = append(report.Bookings, br)
	}
	report.ReconciliationSummary.BookingsProcessed = len(report.Bookings)

	uc.logger.Info("reconciliation completed",
		zap.Int("bookings", report.ReconciliationSummary.BookingsProcessed),
		zap.Int("payment_rows", report.ReconciliationSummary.PaymentRowsProcessed),
		zap.Int("unresolved_links", report.ReconciliationSummary.UnresolvedLinks),
	)

	return &report, nil
}

func (uc *BookingReconciliationUseCase) reconcileBooking(bookingID string, payments []domain.PaymentRecord, invoice *domain.BookingInvoice) (domain.BookingReport, error) {
	customerPayments, supplierPayments, err := Separate(payments)
	if err != nil {
		return domain.BookingReport{}, err
	}

	unresolved := UnresolvedLinks(customerPayments, supplierPayments)
	for _, s := range unresolved {
		uc.logger.Warn("deposit links to unknown customer payment row",
			zap.String("booking_id", bookingID),
			zap.String("row_id", s.ID),
			zap.String("linked_row_id", s.LinkedReceiveRowID),
		)
	}

	advance, balance := ClassifyAdvanceBalance(customerPayments, supplierPayments)

	br := domain.BookingReport{
		BookingID:        bookingID,
		Invoice:          invoice,
		CustomerPayments: customerPayments,
		SupplierPayments: supplierPayments,
		AdvanceCount:     len(advance),
		BalanceCount:     len(balance),
		UnresolvedLinks:  len(unresolved),
		CustomerTotal:    domain.SumAmounts(customerPayments),
		SupplierTotal:    domain.SumAmounts(supplierPayments),
		Summary:          Summarize(advance, balance),
	}
	for _, c := range customerPayments {
		if !c.IsDeposited() {
			br.UndepositedCount++
		}
	}
	if invoice != nil {
		remark := uc.remarks.ClassifyInvoice(*invoice)
		br.Remark = &remark
	}

	uc.logger.Debug("booking reconciled",
		zap.String("booking_id", bookingID),
		zap.Int("customer_payments", len(customerPayments)),
		zap.Int("supplier_payments", len(supplierPayments)),
		zap.Int("advance", br.AdvanceCount),
		zap.Int("balance", br.BalanceCount),
	)

	return br, nil
}
