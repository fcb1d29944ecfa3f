package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"booking-reconciliation/internal/config"
	"booking-reconciliation/internal/domain"
	"booking-reconciliation/internal/gateway"
	"booking-reconciliation/internal/logger"
	"booking-reconciliation/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Define command-line flags; they override configuration values
	bookingsStr := flag.String("bookings", "", "Comma-separated list of booking ids to reconcile (required)")
	source := flag.String("source", cfg.Source.Kind, "Payment source: csv or postgres")
	paymentsFile := flag.String("payments", cfg.Source.PaymentsFile, "Path to the booking payments CSV file (csv source)")
	invoicesFile := flag.String("invoices", cfg.Source.BookingsFile, "Path to the booking invoices CSV file (optional)")
	includeDraft := flag.Bool("include-draft", cfg.Reconciliation.IncludeDraft, "Include draft payments")
	paymentTypeStr := flag.String("payment-type", "", "Restrict to one payment type: Receive or Pay")
	format := flag.String("format", cfg.Output.Format, "Output format: json or xlsx")
	outPath := flag.String("out", cfg.Output.Path, "Output file (default stdout)")
	flag.Parse()

	// Validate required flags
	bookingIDs := splitList(*bookingsStr)
	if len(bookingIDs) == 0 {
		fmt.Println("Error: the -bookings flag is required.")
		flag.Usage()
		os.Exit(1)
	}

	query := domain.PaymentQuery{BookingIDs: bookingIDs, IncludeDraft: *includeDraft}
	if *paymentTypeStr != "" {
		paymentType, err := domain.ParsePaymentType(*paymentTypeStr)
		if err != nil {
			log.Fatalf("Error parsing payment type: %v", err)
		}
		query.PaymentType = &paymentType
	}

	zl, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// --- Dependency Injection (Wiring the application) ---
	var (
		payments usecase.PaymentRepository
		bookings usecase.BookingRepository
	)
	switch strings.ToLower(*source) {
	case config.SourceCSV:
		if *paymentsFile == "" {
			zl.Fatal("the csv source needs a payments file (-payments)")
		}
		csvRepo := gateway.NewCSVPaymentRepository(*paymentsFile, *invoicesFile)
		payments = csvRepo
		if *invoicesFile != "" {
			bookings = csvRepo
		}
	case config.SourcePostgres:
		db, err := gateway.OpenDB(ctx, gateway.DBConfig{
			URL:             cfg.Database.URL,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			zl.Fatal("database", zap.Error(err))
		}
		defer db.Close()
		sqlRepo := gateway.NewSQLPaymentRepository(db)
		payments, bookings = sqlRepo, sqlRepo
	default:
		zl.Fatal("unknown payment source", zap.String("source", *source))
	}

	reconciliationUseCase := usecase.NewBookingReconciliationUseCase(payments, bookings,
		usecase.WithLogger(zl),
		usecase.WithCurrencyPrecision(cfg.Reconciliation.CurrencyPrecision),
	)

	// --- Execute the Usecase ---
	report, err := reconciliationUseCase.Reconcile(ctx, query)
	if err != nil {
		zl.Fatal("reconciliation failed", zap.Error(err))
	}

	// --- Present the Output ---
	var w io.Writer = os.Stdout
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			zl.Fatal("could not create output file", zap.String("path", *outPath), zap.Error(err))
		}
		defer file.Close()
		w = file
	}

	switch strings.ToLower(*format) {
	case config.FormatXLSX:
		err = gateway.WriteXLSX(w, report)
	default:
		err = gateway.WriteJSON(w, report)
	}
	if err != nil {
		zl.Fatal("could not write report", zap.Error(err))
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
