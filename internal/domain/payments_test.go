package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentType(t *testing.T) {
	t.Run("ParsePaymentType accepts stored labels", func(t *testing.T) {
		got, err := ParsePaymentType("Receive")
		require.NoError(t, err)
		assert.Equal(t, PaymentTypeReceive, got)

		got, err = ParsePaymentType(" Pay ")
		require.NoError(t, err)
		assert.Equal(t, PaymentTypePay, got)
	})

	t.Run("ParsePaymentType rejects unknown labels", func(t *testing.T) {
		_, err := ParsePaymentType("Internal Transfer")
		assert.Error(t, err)
		_, err = ParsePaymentType("")
		assert.Error(t, err)
	})

	t.Run("text round trip", func(t *testing.T) {
		b, err := json.Marshal(PaymentTypePay)
		require.NoError(t, err)
		assert.Equal(t, `"Pay"`, string(b))

		var pt PaymentType
		require.NoError(t, json.Unmarshal([]byte(`"Receive"`), &pt))
		assert.Equal(t, PaymentTypeReceive, pt)

		_, err = json.Marshal(PaymentType(7))
		assert.Error(t, err)
	})

	t.Run("IsValid", func(t *testing.T) {
		assert.True(t, PaymentTypeReceive.IsValid())
		assert.True(t, PaymentTypePay.IsValid())
		assert.False(t, PaymentType(0).IsValid())
		assert.Equal(t, "PaymentType(3)", PaymentType(3).String())
	})
}

func TestPaymentQuery_Matches(t *testing.T) {
	pay := PaymentTypePay

	tests := []struct {
		name   string
		query  PaymentQuery
		status DocStatus
		ptype  PaymentType
		want   bool
	}{
		{"committed only accepts submitted", PaymentQuery{}, DocStatusSubmitted, PaymentTypeReceive, true},
		{"committed only rejects draft", PaymentQuery{}, DocStatusDraft, PaymentTypeReceive, false},
		{"committed only rejects cancelled", PaymentQuery{}, DocStatusCancelled, PaymentTypeReceive, false},
		{"draft included", PaymentQuery{IncludeDraft: true}, DocStatusDraft, PaymentTypeReceive, true},
		{"draft never includes cancelled", PaymentQuery{IncludeDraft: true}, DocStatusCancelled, PaymentTypeReceive, false},
		{"payment type filter keeps match", PaymentQuery{PaymentType: &pay}, DocStatusSubmitted, PaymentTypePay, true},
		{"payment type filter drops other", PaymentQuery{PaymentType: &pay}, DocStatusSubmitted, PaymentTypeReceive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.Matches(tt.status, tt.ptype))
		})
	}
}

func TestPaymentRecord_Clone(t *testing.T) {
	instrument := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	deposit := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	p := PaymentRecord{ID: "R1", Amount: decimal.NewFromInt(10), InstrumentDate: &instrument, DepositDate: &deposit}

	c := p.Clone()
	assert.Equal(t, p, c)
	assert.NotSame(t, p.InstrumentDate, c.InstrumentDate)
	assert.NotSame(t, p.DepositDate, c.DepositDate)
	assert.True(t, c.IsDeposited())
	assert.False(t, PaymentRecord{}.IsDeposited())
}

func TestOrdering(t *testing.T) {
	d := func(s string) time.Time {
		v, _ := time.Parse(time.DateOnly, s)
		return v
	}
	dp := func(s string) *time.Time {
		v := d(s)
		return &v
	}

	t.Run("instrument date with missing dates first", func(t *testing.T) {
		payments := []PaymentRecord{
			{ID: "A", InstrumentDate: dp("2024-01-03"), PostingDate: d("2024-01-01")},
			{ID: "B", PostingDate: d("2024-01-09")},
			{ID: "C", InstrumentDate: dp("2024-01-01"), PostingDate: d("2024-01-05")},
			{ID: "D", InstrumentDate: dp("2024-01-01"), PostingDate: d("2024-01-02")},
		}
		OrderByInstrumentDate(payments)
		assert.Equal(t, []string{"B", "D", "C", "A"}, []string{payments[0].ID, payments[1].ID, payments[2].ID, payments[3].ID})
	})

	t.Run("posting date then creation then position", func(t *testing.T) {
		payments := []PaymentRecord{
			{ID: "A", PostingDate: d("2024-01-02"), CreatedAt: d("2024-01-02")},
			{ID: "B", PostingDate: d("2024-01-02"), CreatedAt: d("2024-01-01")},
			{ID: "C", PostingDate: d("2024-01-01"), CreatedAt: d("2024-01-03")},
			{ID: "D", PostingDate: d("2024-01-02"), CreatedAt: d("2024-01-02")},
		}
		OrderByPostingDate(payments)
		assert.Equal(t, []string{"C", "B", "A", "D"}, []string{payments[0].ID, payments[1].ID, payments[2].ID, payments[3].ID})
	})
}
