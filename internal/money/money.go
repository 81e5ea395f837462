// Package money holds exact non-negative amounts in minor currency units.
package money

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-pricing/internal/common"
)

// MinorUnitScale is the number of decimal places one major unit is split into.
const MinorUnitScale = 2

// Zero is the zero amount. It equals the zero value of Money.
var Zero = Money{}

// Money represents a monetary value stored in minor units. It is never negative.
type Money struct {
	cents int64
}

// New validates cents and returns the corresponding amount.
func New(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, common.InvalidArgument("money cannot be negative, got %d", cents)
	}
	return Money{cents: cents}, nil
}

// MustNew behaves like New but panics on error. Useful for tests and constants.
func MustNew(cents int64) Money {
	m, err := New(cents)
	if err != nil {
		panic(err)
	}
	return m
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return m.cents
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.cents > 0
}

// Add returns m + other. Overflow of int64 is not guarded.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// AddAssign sets m to m + other.
func (m *Money) AddAssign(other Money) {
	m.cents += other.cents
}

// Sub returns m - other, failing when other is larger than m.
func (m Money) Sub(other Money) (Money, error) {
	return New(m.cents - other.cents)
}

// Times returns m multiplied by n, failing when n is negative.
func (m Money) Times(n int) (Money, error) {
	if n < 0 {
		return Money{}, common.InvalidArgument("multiplier cannot be negative, got %d", n)
	}
	return Money{cents: m.cents * int64(n)}, nil
}

// Equal reports whether both amounts hold exactly the same number of minor units.
func (m Money) Equal(other Money) bool {
	return m.cents == other.cents
}

// String renders the amount in major units, e.g. 22500 -> "225.00".
func (m Money) String() string {
	return decimal.New(m.cents, -MinorUnitScale).StringFixed(MinorUnitScale)
}

// MarshalJSON encodes the amount as an integer number of minor units.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.cents)
}

// UnmarshalJSON decodes an integer number of minor units, rejecting null and negatives.
func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return common.InvalidArgument("money amount must not be null")
	}
	var cents int64
	if err := json.Unmarshal(data, &cents); err != nil {
		return fmt.Errorf("money: decode minor units: %w", err)
	}
	v, err := New(cents)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
