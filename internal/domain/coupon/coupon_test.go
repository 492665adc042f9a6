//go:build unit

package coupon_test

import (
	"testing"
	"time"

	"hotel-reservation/internal/domain/coupon"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponCode(t *testing.T) {
	code, err := coupon.NewCouponCode(" save10 ")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", code.String())

	for _, bad := range []string{"", "AB", "WAY-TOO-DASHED", "THISCODEISFARTOOLONGX1"} {
		_, err := coupon.NewCouponCode(bad)
		require.ErrorIs(t, err, coupon.ErrInvalidCouponCode, bad)
	}
}

func TestNewCoupon(t *testing.T) {
	c, err := coupon.NewCoupon(uuid.New(), "SUMMER", 15, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 15.0, c.PercentOff())

	_, err = coupon.NewCoupon(uuid.New(), "SUMMER", 101, nil, nil)
	require.ErrorIs(t, err, coupon.ErrInvalidDiscountPercent)

	_, err = coupon.NewCoupon(uuid.New(), "S", 10, nil, nil)
	require.ErrorIs(t, err, coupon.ErrInvalidCouponCode)
}

func TestValidity(t *testing.T) {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	c, err := coupon.NewCoupon(uuid.New(), "JUNE", 20, &from, &to)
	require.NoError(t, err)

	tests := []struct {
		name  string
		at    time.Time
		errIs error
	}{
		{name: "inside", at: from.AddDate(0, 0, 10)},
		{name: "first instant", at: from},
		{name: "last instant", at: to},
		{name: "too early", at: from.Add(-time.Second), errIs: coupon.ErrCouponNotYetValid},
		{name: "expired", at: to.Add(time.Second), errIs: coupon.ErrCouponExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.ValidateUsage(tt.at)
			if tt.errIs == nil {
				require.NoError(t, err)
				assert.True(t, c.IsValidAt(tt.at))
				return
			}
			require.ErrorIs(t, err, tt.errIs)
			assert.False(t, c.IsValidAt(tt.at))
		})
	}

	open, err := coupon.NewCoupon(uuid.New(), "ALWAYS", 5, nil, nil)
	require.NoError(t, err)
	assert.NoError(t, open.ValidateUsage(time.Time{}))
}
