package usecase_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-reconciliation/internal/domain"
	"booking-reconciliation/internal/usecase"
)

func TestSeparate(t *testing.T) {
	t.Run("empty input yields two empty sides", func(t *testing.T) {
		customer, supplier, err := usecase.Separate(nil)
		require.NoError(t, err)
		assert.Empty(t, customer)
		assert.Empty(t, supplier)
	})

	t.Run("every record lands on exactly one side", func(t *testing.T) {
		input := []domain.PaymentRecord{
			receive("R1", "VBO-1", 500, "2024-01-02", "2024-01-03"),
			pay("P1", "VBO-1", 500, "2024-01-10", "R1"),
			receive("R2", "VBO-1", 300, "2024-01-05", "2024-01-06"),
			pay("P2", "VBO-1", 800, "2024-01-12", ""),
			receive("R3", "VBO-1", 200, "", "2024-01-07"),
		}

		customer, supplier, err := usecase.Separate(input)
		require.NoError(t, err)
		assert.Len(t, customer, 3)
		assert.Len(t, supplier, 2)
		assert.Equal(t, len(input), len(customer)+len(supplier))
	})

	t.Run("pay rows are their own deposit", func(t *testing.T) {
		_, supplier, err := usecase.Separate([]domain.PaymentRecord{pay("P1", "VBO-1", 100, "2024-03-04", "")})
		require.NoError(t, err)
		require.Len(t, supplier, 1)
		assert.Equal(t, "VBP-P1", supplier[0].DepositDocID)
		require.NotNil(t, supplier[0].DepositDate)
		assert.True(t, supplier[0].DepositDate.Equal(mustDate("2024-03-04")))
	})

	t.Run("linked pay row propagates deposit details", func(t *testing.T) {
		input := []domain.PaymentRecord{
			receive("R1", "VBO-1", 500, "2024-01-02", "2024-01-03"),
			pay("P1", "VBO-1", 500, "2024-01-10", "R1"),
		}

		customer, supplier, err := usecase.Separate(input)
		require.NoError(t, err)
		require.Len(t, customer, 1)

		c, s := customer[0], supplier[0]
		assert.Equal(t, s.DepositSlipNo, c.DepositSlipNo)
		assert.Equal(t, s.DepositType, c.DepositType)
		assert.Equal(t, s.DepositDocID, c.DepositDocID)
		require.NotNil(t, c.DepositDate)
		assert.True(t, c.DepositDate.Equal(s.PostingDate))
		assert.True(t, c.IsDeposited())
	})

	t.Run("input records are not modified", func(t *testing.T) {
		input := []domain.PaymentRecord{
			receive("R1", "VBO-1", 500, "2024-01-02", "2024-01-03"),
			pay("P1", "VBO-1", 500, "2024-01-10", "R1"),
		}

		customer, _, err := usecase.Separate(input)
		require.NoError(t, err)

		assert.Nil(t, input[0].DepositDate)
		assert.Empty(t, input[0].DepositDocID)
		assert.Nil(t, input[1].DepositDate)

		*customer[0].InstrumentDate = mustDate("1999-01-01")
		assert.True(t, input[0].InstrumentDate.Equal(mustDate("2024-01-02")))
	})

	t.Run("last pay row in input order wins a shared receive row", func(t *testing.T) {
		first := pay("P1", "VBO-1", 300, "2024-01-20", "R1")
		second := pay("P2", "VBO-1", 200, "2024-01-10", "R1")
		second.DepositType = "Cheque"

		customer, supplier, err := usecase.Separate([]domain.PaymentRecord{
			receive("R1", "VBO-1", 500, "2024-01-02", "2024-01-03"),
			first,
			second,
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"P2", "P1"}, ids(supplier))
		assert.Equal(t, "VBP-P2", customer[0].DepositDocID)
		assert.Equal(t, "DS-P2", customer[0].DepositSlipNo)
		assert.Equal(t, "Cheque", customer[0].DepositType)
		assert.True(t, customer[0].DepositDate.Equal(mustDate("2024-01-10")))
	})

	t.Run("unresolved link is ignored", func(t *testing.T) {
		customer, supplier, err := usecase.Separate([]domain.PaymentRecord{
			receive("R1", "VBO-1", 500, "2024-01-02", "2024-01-03"),
			pay("P1", "VBO-1", 500, "2024-01-10", "R404"),
		})
		require.NoError(t, err)

		assert.Nil(t, customer[0].DepositDate)
		assert.Empty(t, customer[0].DepositSlipNo)
		assert.Equal(t, []string{"P1"}, ids(usecase.UnresolvedLinks(customer, supplier)))
	})

	t.Run("deposit doc id falls back to row id", func(t *testing.T) {
		p := pay("P1", "VBO-1", 500, "2024-01-10", "R1")
		p.PaymentDocID = ""

		customer, _, err := usecase.Separate([]domain.PaymentRecord{
			receive("R1", "VBO-1", 500, "2024-01-02", "2024-01-03"),
			p,
		})
		require.NoError(t, err)
		assert.Equal(t, "P1", customer[0].DepositDocID)
	})

	t.Run("customer payments are ordered by instrument date, posting date and creation", func(t *testing.T) {
		r1 := receive("R1", "VBO-1", 100, "2024-02-01", "2024-02-01")
		r2 := receive("R2", "VBO-1", 100, "2024-01-15", "2024-02-03")
		r3 := receive("R3", "VBO-1", 100, "", "2024-02-05")
		r4 := receive("R4", "VBO-1", 100, "2024-02-01", "2024-02-01")
		r4.CreatedAt = mustTime("2024-01-31T08:00:00Z")

		customer, _, err := usecase.Separate([]domain.PaymentRecord{r1, r2, r3, r4})
		require.NoError(t, err)
		assert.Equal(t, []string{"R3", "R2", "R4", "R1"}, ids(customer))
	})

	t.Run("identical instrument and posting dates keep creation order", func(t *testing.T) {
		early := receive("EARLY", "VBO-1", 100, "2024-02-01", "2024-02-01")
		early.CreatedAt = mustTime("2024-02-01T09:00:00Z")
		late := receive("LATE", "VBO-1", 100, "2024-02-01", "2024-02-01")
		late.CreatedAt = mustTime("2024-02-01T17:00:00Z")

		customer, _, err := usecase.Separate([]domain.PaymentRecord{late, early})
		require.NoError(t, err)
		assert.Equal(t, []string{"EARLY", "LATE"}, ids(customer))
	})

	t.Run("supplier payments fall back to input position", func(t *testing.T) {
		p1 := pay("P1", "VBO-1", 100, "2024-02-10", "")
		p2 := pay("P2", "VBO-1", 100, "2024-02-01", "")
		p3 := pay("P3", "VBO-1", 100, "2024-02-10", "")
		p4 := pay("P4", "VBO-1", 100, "2024-02-10", "")
		p4.CreatedAt = p4.CreatedAt.Add(-time.Hour)

		_, supplier, err := usecase.Separate([]domain.PaymentRecord{p1, p2, p3, p4})
		require.NoError(t, err)
		assert.Equal(t, []string{"P2", "P4", "P1", "P3"}, ids(supplier))
	})

	t.Run("separating customer output again is a no-op", func(t *testing.T) {
		customer, _, err := usecase.Separate([]domain.PaymentRecord{
			receive("R2", "VBO-1", 300, "2024-01-05", "2024-01-06"),
			pay("P1", "VBO-1", 500, "2024-01-10", "R1"),
			receive("R1", "VBO-1", 500, "2024-01-02", "2024-01-03"),
		})
		require.NoError(t, err)

		again, supplier, err := usecase.Separate(customer)
		require.NoError(t, err)
		assert.Empty(t, supplier)
		assert.Equal(t, customer, again)
	})
}

func TestSeparate_InputErrors(t *testing.T) {
	tests := []struct {
		name      string
		record    domain.PaymentRecord
		wantField string
	}{
		{
			name: "unknown payment type",
			record: func() domain.PaymentRecord {
				r := receive("R1", "VBO-1", 100, "", "2024-01-01")
				r.PaymentType = domain.PaymentType(9)
				return r
			}(),
			wantField: "PaymentType",
		},
		{
			name: "missing payment type",
			record: func() domain.PaymentRecord {
				r := receive("R1", "VBO-1", 100, "", "2024-01-01")
				r.PaymentType = 0
				return r
			}(),
			wantField: "PaymentType",
		},
		{
			name:      "missing row id",
			record:    receive("", "VBO-1", 100, "", "2024-01-01"),
			wantField: "ID",
		},
		{
			name:      "missing booking id",
			record:    pay("P1", "", 100, "2024-01-01", ""),
			wantField: "BookingID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := usecase.Separate([]domain.PaymentRecord{tt.record})
			require.Error(t, err)

			var inputErr *domain.InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.wantField, inputErr.Field)
		})
	}
}
