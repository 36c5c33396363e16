package accounting_test

import (
	"math"
	"testing"

	"github.com/Arshia-r-m/Financial-tracker/internal/apperrors"
	"github.com/Arshia-r-m/Financial-tracker/internal/core/domain"
	"github.com/Arshia-r-m/Financial-tracker/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceDelta(t *testing.T) {
	tests := []struct {
		name   string
		kind   domain.Kind
		amount int64
		dir    accounting.Direction
		want   int64
	}{
		{"expense post", domain.Expense, 10, accounting.Post, -10},
		{"income post", domain.Income, 50, accounting.Post, 50},
		{"expense reverse", domain.Expense, 10, accounting.Reverse, 10},
		{"income reverse", domain.Income, 50, accounting.Reverse, -50},
		{"zero amount", domain.Expense, 0, accounting.Post, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.BalanceDelta(tt.kind, tt.amount, tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBalanceDelta_PostThenReverseCancels(t *testing.T) {
	for _, kind := range domain.Kinds {
		post, err := accounting.BalanceDelta(kind, 1234, accounting.Post)
		require.NoError(t, err)
		rev, err := accounting.BalanceDelta(kind, 1234, accounting.Reverse)
		require.NoError(t, err)
		assert.Zero(t, post+rev, "kind %s", kind)
	}
}

func TestBalanceDelta_Errors(t *testing.T) {
	_, err := accounting.BalanceDelta(domain.Expense, -1, accounting.Post)
	assert.Error(t, err)

	_, err = accounting.BalanceDelta(domain.Kind("transfer"), 1, accounting.Post)
	assert.Error(t, err)

	_, err = accounting.BalanceDelta(domain.Income, 1, accounting.Direction(7))
	assert.Error(t, err)
}

func TestApplyDelta(t *testing.T) {
	got, err := accounting.ApplyDelta(100, -250)
	require.NoError(t, err)
	assert.Equal(t, int64(-150), got)

	got, err = accounting.ApplyDelta(math.MaxInt64-1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), got)

	got, err = accounting.ApplyDelta(math.MinInt64+1, -1)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), got)
}

func TestApplyDelta_Overflow(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		delta   int64
	}{
		{"income past max", 100, math.MaxInt64},
		{"max plus one", math.MaxInt64, 1},
		{"expense past min", -100, -math.MaxInt64},
		{"min minus one", math.MinInt64, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := accounting.ApplyDelta(tt.balance, tt.delta)
			assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
		})
	}
}

func TestToMajorUnits(t *testing.T) {
	assert.True(t, decimal.RequireFromString("12.34").Equal(accounting.ToMajorUnits(1234, 2)))
	assert.True(t, decimal.RequireFromString("-0.05").Equal(accounting.ToMajorUnits(-5, 2)))
	assert.True(t, decimal.NewFromInt(500).Equal(accounting.ToMajorUnits(500, 0)))
}
