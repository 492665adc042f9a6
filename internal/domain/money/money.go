package money

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"hotel-reservation/internal/pkg/errs"
)

var (
	ErrNegativeAmount   = errs.Define(errs.KindValidation, "NEGATIVE_AMOUNT", "money amount cannot be negative")
	ErrInvalidCurrency  = errs.Define(errs.KindValidation, "INVALID_CURRENCY", "currency must be a 3-letter ISO code")
	ErrCurrencyMismatch = errs.Define(errs.KindBusinessRule, "CURRENCY_MISMATCH", "currency mismatch")
	ErrNegativeFactor   = errs.Define(errs.KindValidation, "NEGATIVE_FACTOR", "scale factor cannot be negative")
	ErrInvalidPercent   = errs.Define(errs.KindValidation, "INVALID_PERCENT", "percentage must be between 0 and 100")
	ErrAmountOverflow   = errs.Define(errs.KindValidation, "AMOUNT_OVERFLOW", "money amount is too large")
)

// overflowCents is 2^63, the smallest float64 that no longer fits in int64.
const overflowCents = 1 << 63

var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// Money is a non-negative amount in minor units (cents) of a single currency.
type Money struct {
	cents    int64
	currency string
}

func New(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !currencyRegex.MatchString(currency) {
		return Money{}, ErrInvalidCurrency
	}
	return Money{cents: cents, currency: currency}, nil
}

// FromMajor converts a decimal amount such as 150.25 into cents.
func FromMajor(amount float64, currency string) (Money, error) {
	if amount < 0 || math.IsNaN(amount) {
		return Money{}, ErrNegativeAmount
	}
	cents, err := toCents(amount * 100)
	if err != nil {
		return Money{}, err
	}
	return New(cents, currency)
}

// toCents rounds a non-negative float amount of cents, rejecting values past int64.
func toCents(f float64) (int64, error) {
	rounded := math.Round(f)
	if rounded >= overflowCents {
		return 0, ErrAmountOverflow
	}
	return int64(rounded), nil
}

func Zero(currency string) Money {
	return Money{currency: strings.ToUpper(currency)}
}

func (m Money) Cents() int64     { return m.cents }
func (m Money) Currency() string { return m.currency }
func (m Money) IsZero() bool     { return m.cents == 0 }
func (m Money) Amount() float64  { return float64(m.cents) / 100.0 }

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.cents/100, m.cents%100, m.currency)
}

func (m Money) SameCurrency(other Money) bool {
	return m.currency == other.currency
}

func (m Money) Add(other Money) (Money, error) {
	if !m.SameCurrency(other) {
		return Money{}, errs.WithDetail(ErrCurrencyMismatch, m.currency+" vs "+other.currency)
	}
	if m.cents > math.MaxInt64-other.cents {
		return Money{}, ErrAmountOverflow
	}
	return Money{cents: m.cents + other.cents, currency: m.currency}, nil
}

// Sub floors at zero.
func (m Money) Sub(other Money) (Money, error) {
	if !m.SameCurrency(other) {
		return Money{}, errs.WithDetail(ErrCurrencyMismatch, m.currency+" vs "+other.currency)
	}
	remaining := m.cents - other.cents
	if remaining < 0 {
		remaining = 0
	}
	return Money{cents: remaining, currency: m.currency}, nil
}

func (m Money) Scale(factor float64) (Money, error) {
	if factor < 0 || math.IsNaN(factor) {
		return Money{}, ErrNegativeFactor
	}
	cents, err := toCents(float64(m.cents) * factor)
	if err != nil {
		return Money{}, err
	}
	return Money{cents: cents, currency: m.currency}, nil
}

// Percent returns pct percent of m, rounded to the nearest cent.
func (m Money) Percent(pct float64) (Money, error) {
	if pct < 0 || pct > 100 || math.IsNaN(pct) {
		return Money{}, ErrInvalidPercent
	}
	cents, err := toCents(float64(m.cents) * pct / 100.0)
	if err != nil {
		return Money{}, err
	}
	if cents > m.cents {
		cents = m.cents
	}
	return Money{cents: cents, currency: m.currency}, nil
}

func (m Money) ApplyDiscountPercent(pct float64) (Money, error) {
	discount, err := m.Percent(pct)
	if err != nil {
		return Money{}, err
	}
	return Money{cents: m.cents - discount.cents, currency: m.currency}, nil
}

// Compare returns -1, 0 or 1.
func (m Money) Compare(other Money) (int, error) {
	if !m.SameCurrency(other) {
		return 0, errs.WithDetail(ErrCurrencyMismatch, m.currency+" vs "+other.currency)
	}
	switch {
	case m.cents < other.cents:
		return -1, nil
	case m.cents > other.cents:
		return 1, nil
	default:
		return 0, nil
	}
}

func (m Money) GreaterThan(other Money) (bool, error) {
	c, err := m.Compare(other)
	return c > 0, err
}

func (m Money) LessThanOrEqual(other Money) (bool, error) {
	c, err := m.Compare(other)
	return c <= 0, err
}
