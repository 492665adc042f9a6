//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"hotel-reservation/internal/domain/money"
	"hotel-reservation/internal/domain/period"
	"hotel-reservation/internal/domain/pricing"
	"hotel-reservation/internal/domain/room"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*room.Room, period.Period) {
	t.Helper()
	rate, err := money.New(15000, "USD")
	require.NoError(t, err)
	rt, err := room.NewType("deluxe", 2, rate, nil)
	require.NoError(t, err)
	r, err := room.New(room.NewParams{Number: "101", Type: rt, Floor: 1}, time.Now())
	require.NoError(t, err)
	in := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	p, err := period.Reconstruct(in, in.AddDate(0, 0, 3))
	require.NoError(t, err)
	return r, p
}

func TestPrice(t *testing.T) {
	calc := pricing.NewDefaultCalculator()
	r, p := setup(t)

	price, err := calc.Price(r, p)
	require.NoError(t, err)
	assert.Equal(t, int64(45000), price.Cents())

	discounted, err := calc.PriceWithDiscount(r, p, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(40500), discounted.Cents())

	_, err = calc.PriceWithDiscount(r, p, 120)
	require.ErrorIs(t, err, money.ErrInvalidPercent)
}

func TestPriceWithTax(t *testing.T) {
	calc := pricing.NewDefaultCalculator()
	base, err := money.New(45000, "USD")
	require.NoError(t, err)

	withTax, err := calc.PriceWithTax(base, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(49500), withTax.Cents())

	untaxed, err := calc.PriceWithTax(base, 0)
	require.NoError(t, err)
	assert.Equal(t, base, untaxed)

	_, err = calc.PriceWithTax(base, -5)
	require.ErrorIs(t, err, pricing.ErrNegativeTax)
}

func TestCancellationSchedule(t *testing.T) {
	tests := []struct {
		days    int
		percent float64
		cents   int64
	}{
		{days: 30, percent: 0, cents: 0},
		{days: 7, percent: 0, cents: 0},
		{days: 6, percent: 25, cents: 11250},
		{days: 3, percent: 25, cents: 11250},
		{days: 2, percent: 50, cents: 22500},
		{days: 1, percent: 50, cents: 22500},
		{days: 0, percent: 100, cents: 45000},
		{days: -2, percent: 100, cents: 45000},
	}
	calc := pricing.NewDefaultCalculator()
	price, err := money.New(45000, "USD")
	require.NoError(t, err)

	for _, tt := range tests {
		assert.Equal(t, tt.percent, pricing.PenaltyPercent(tt.days), "days=%d", tt.days)

		penalty, err := calc.CancellationPenalty(price, tt.days)
		require.NoError(t, err)
		assert.Equal(t, tt.cents, penalty.Cents(), "days=%d", tt.days)
	}
}
