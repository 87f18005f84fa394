package decimals

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// cached exponents cover the division precision
const (
	minPowerOfTen = -DefaultDivPrecision
	maxPowerOfTen = DefaultDivPrecision
)

var powerOfTen = func() map[int64]decimal.Decimal {
	m := make(map[int64]decimal.Decimal, maxPowerOfTen-minPowerOfTen+1)
	for n := int64(minPowerOfTen); n <= maxPowerOfTen; n++ {
		m[n] = decimal.New(1, int32(n))
	}
	return m
}()

// PowerOfTen returns 10^n, cached for |n| <= 36.
func PowerOfTen[T constraints.Integer](n T) decimal.Decimal {
	if val, ok := powerOfTen[int64(n)]; ok {
		return val
	}
	return decimal.New(1, int32(n))
}
