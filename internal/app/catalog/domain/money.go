package domain

import (
	"fmt"
	"math/big"
)

// Money is a price with exact decimal arithmetic backed by big.Rat.
// Storing numerator/denominator avoids the float drift that plagues
// price columns.
type Money struct {
	rat *big.Rat
}

// NewMoney creates a Money from numerator and denominator.
// Example: NewMoney(24990, 100) represents R$ 249.90.
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}
	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// ParseMoney parses a decimal string such as "249.90" into Money.
func ParseMoney(s string) (*Money, error) {
	rat, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("not a decimal number: %q", s)
	}
	return &Money{rat: rat}, nil
}

// Num returns the numerator of the normalized rational value.
func (m *Money) Num() int64 {
	return m.rat.Num().Int64()
}

// Denom returns the denominator of the normalized rational value.
func (m *Money) Denom() int64 {
	return m.rat.Denom().Int64()
}

// IsSafeForStorage reports whether both numerator and denominator fit int64.
func (m *Money) IsSafeForStorage() bool {
	return m.rat.Num().IsInt64() && m.rat.Denom().IsInt64()
}

// IsZero returns true if the value is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsNegative returns true if the value is below zero.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// Equals returns true if both values are numerically equal.
func (m *Money) Equals(other *Money) bool {
	return m.rat.Cmp(other.rat) == 0
}

// Float64 returns an approximate float64 representation for display.
func (m *Money) Float64() float64 {
	f, _ := m.rat.Float64()
	return f
}

// String renders the value with two decimal places.
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// Copy creates an independent copy.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.rat)}
}
