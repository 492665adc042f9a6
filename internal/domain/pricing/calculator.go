package pricing

import (
	"math"

	"hotel-reservation/internal/domain/money"
	"hotel-reservation/internal/domain/period"
	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/pkg/errs"
)

var ErrNegativeTax = errs.Define(errs.KindValidation, "NEGATIVE_TAX", "tax percentage cannot be negative")

type Calculator interface {
	Price(r *room.Room, p period.Period) (money.Money, error)
	PriceWithDiscount(r *room.Room, p period.Period, pct float64) (money.Money, error)
	PriceWithTax(base money.Money, taxPct float64) (money.Money, error)
	CancellationPenalty(price money.Money, daysBeforeCheckIn int) (money.Money, error)
}

type DefaultCalculator struct{}

func NewDefaultCalculator() *DefaultCalculator {
	return &DefaultCalculator{}
}

// Price is nights times the room's base price.
func (DefaultCalculator) Price(r *room.Room, p period.Period) (money.Money, error) {
	return r.TotalPriceFor(p.Nights())
}

func (c DefaultCalculator) PriceWithDiscount(r *room.Room, p period.Period, pct float64) (money.Money, error) {
	base, err := c.Price(r, p)
	if err != nil {
		return money.Money{}, err
	}
	return base.ApplyDiscountPercent(pct)
}

// PriceWithTax allows rates above 100%.
func (DefaultCalculator) PriceWithTax(base money.Money, taxPct float64) (money.Money, error) {
	if taxPct < 0 || math.IsNaN(taxPct) {
		return money.Money{}, ErrNegativeTax
	}
	return base.Scale(1 + taxPct/100.0)
}

func (DefaultCalculator) CancellationPenalty(price money.Money, daysBeforeCheckIn int) (money.Money, error) {
	return price.Percent(PenaltyPercent(daysBeforeCheckIn))
}
