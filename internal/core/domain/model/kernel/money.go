package kernel

import (
	"fmt"

	"github.com/shopspring/decimal"

	"roodi/internal/pkg/errs"
)

// Money is a value object for monetary amounts in BRL. Amounts are kept with
// fixed-point semantics: every Money is rounded to two decimal places on
// construction and is never negative. The zero value is a valid R$ 0.00.
//
// Money must never be compared through float conversion; use Equals or Cmp,
// which compare the underlying decimals exactly.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money from a decimal amount, rounding to two decimal places.
// Returns an error if the amount is negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	rounded := amount.Round(2)
	if rounded.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money amount",
			fmt.Errorf("%s is negative", rounded.String()),
		)
	}
	return Money{amount: rounded}, nil
}

// MoneyFromString parses a decimal string ("15.00") into a Money.
func MoneyFromString(value string) (Money, error) {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount", err)
	}
	return NewMoney(parsed)
}

// MoneyFromFloat creates a Money from a float64, rounding to two decimal places.
// Intended for request payloads only; internal arithmetic stays on decimals.
func MoneyFromFloat(value float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(value))
}

// ZeroMoney returns R$ 0.00.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero.Round(2)}
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount).Round(2)}
}

// Max returns the larger of the two amounts.
func (m Money) Max(other Money) Money {
	if m.amount.Cmp(other.amount) >= 0 {
		return m
	}
	return other
}

// Cmp compares two amounts: -1 if m < other, 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// Equals reports whether two amounts are exactly equal.
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsZero reports whether the amount is R$ 0.00.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than R$ 0.00.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Decimal returns the underlying decimal amount, already rounded to two places.
func (m Money) Decimal() decimal.Decimal {
	return m.amount.Round(2)
}

// Float64 returns the amount as a float64 for response payloads.
func (m Money) Float64() float64 {
	f, _ := m.amount.Round(2).Float64()
	return f
}

// String returns the amount with exactly two decimal places, e.g. "15.00".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
