package coupon

import (
	"time"

	"hotel-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidCouponCode      = errs.Define(errs.KindValidation, "INVALID_COUPON_CODE", "invalid coupon code format")
	ErrInvalidDiscountPercent = errs.Define(errs.KindValidation, "INVALID_COUPON_PERCENT", "coupon discount must be between 0 and 100 percent")
	ErrCouponExpired          = errs.Define(errs.KindBusinessRule, "COUPON_EXPIRED", "coupon has expired")
	ErrCouponNotYetValid      = errs.Define(errs.KindBusinessRule, "COUPON_NOT_YET_VALID", "coupon is not yet valid")
)

// Coupon grants a percentage off the stay price within an optional validity window.
type Coupon struct {
	id         uuid.UUID
	code       Code
	percentOff float64
	validFrom  *time.Time
	validTo    *time.Time
}

func NewCoupon(id uuid.UUID, code string, percentOff float64, validFrom, validTo *time.Time) (*Coupon, error) {
	couponCode, err := NewCouponCode(code)
	if err != nil {
		return nil, err
	}
	if percentOff < 0 || percentOff > 100 {
		return nil, ErrInvalidDiscountPercent
	}
	return &Coupon{
		id:         id,
		code:       couponCode,
		percentOff: percentOff,
		validFrom:  validFrom,
		validTo:    validTo,
	}, nil
}

func (c *Coupon) IsValidAt(t time.Time) bool {
	if c.validFrom != nil && t.Before(*c.validFrom) {
		return false
	}
	if c.validTo != nil && t.After(*c.validTo) {
		return false
	}
	return true
}

func (c *Coupon) ValidateUsage(t time.Time) error {
	if !c.IsValidAt(t) {
		if c.validFrom != nil && t.Before(*c.validFrom) {
			return ErrCouponNotYetValid
		}
		return ErrCouponExpired
	}
	return nil
}

func (c *Coupon) ID() uuid.UUID         { return c.id }
func (c *Coupon) Code() Code            { return c.code }
func (c *Coupon) PercentOff() float64   { return c.percentOff }
func (c *Coupon) ValidFrom() *time.Time { return c.validFrom }
func (c *Coupon) ValidTo() *time.Time   { return c.validTo }
