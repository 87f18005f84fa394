package decimals

import (
	"math"
	"math/big"
	"reflect"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/pkg/logger"
	"github.com/gaze-network/tokensale/pkg/logger/slogx"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

const (
	DefaultDivPrecision = 36

	// Ether is the number of decimals of the native coin and of the sale token.
	Ether = 18
)

func init() {
	decimal.DivisionPrecision = DefaultDivPrecision
}

// MustFromString convert string to decimal.Decimal. Panic if error
// string must be a valid number, not NaN, Inf or empty string.
func MustFromString(s string) decimal.Decimal {
	return utils.Must(decimal.NewFromString(s))
}

// ToDecimal convert any integer amount to decimal.Decimal with the given decimals.
func ToDecimal[T constraints.Integer](ivalue any, decimals T) decimal.Decimal {
	value := new(big.Int)
	switch v := ivalue.(type) {
	case string:
		value.SetString(v, 10)
	case *big.Int:
		value = v
	case int64:
		value = big.NewInt(v)
	case int, int8, int16, int32:
		value.SetInt64(reflect.ValueOf(v).Int())
	case uint64:
		value = new(big.Int).SetUint64(v)
	case uint, uint8, uint16, uint32:
		value.SetUint64(reflect.ValueOf(v).Uint())
	case []byte:
		value.SetBytes(v)
	case uint256.Int:
		value = v.ToBig()
	case *uint256.Int:
		if v != nil {
			value = v.ToBig()
		}
	}

	switch {
	case int64(decimals) > math.MaxInt32:
		logger.Panic("ToDecimal: decimals is too big, should be equal less than 2^31-1", slogx.Any("decimals", decimals))
	case int64(decimals) < math.MinInt32+1:
		logger.Panic("ToDecimal: decimals is too small, should be greater than -2^31", slogx.Any("decimals", decimals))
	}

	return decimal.NewFromBigInt(value, -int32(decimals))
}

// FormatUnits renders an integer amount as a human readable decimal string, e.g. 5e17 wei as "0.5".
func FormatUnits(amount *uint256.Int, decimals uint16) string {
	return ToDecimal(amount, decimals).String()
}

// ParseUnits converts a human readable amount, e.g. "0.5", into integer units.
// Negative amounts, fractions finer than decimals and values above 2^256-1 are rejected.
func ParseUnits(s string, decimals uint16) (*uint256.Int, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return nil, errors.Wrapf(errs.InvalidArgument, "invalid amount %q", s)
	}
	if amount.IsNegative() {
		return nil, errors.Wrapf(errs.InvalidArgument, "negative amount %q", s)
	}
	units := amount.Mul(PowerOfTen(decimals))
	if !units.Equal(units.Truncate(0)) {
		return nil, errors.Wrapf(errs.InvalidArgument, "amount %q has more than %d decimals", s, decimals)
	}
	result, overflow := uint256.FromBig(units.BigInt())
	if overflow {
		return nil, errors.Wrapf(errs.Overflow, "amount %q", s)
	}
	return result, nil
}

// ToBigInt convert any type to *big.Int
func ToBigInt(iamount any, decimals uint16) *big.Int {
	amount := decimal.Zero
	switch v := iamount.(type) {
	case string:
		amount, _ = decimal.NewFromString(v)
	case float64:
		amount = decimal.NewFromFloat(v)
	case float32:
		amount = decimal.NewFromFloat32(v)
	case int64:
		amount = decimal.NewFromInt(v)
	case int, int8, int16, int32:
		amount = decimal.NewFromInt(reflect.ValueOf(v).Int())
	case decimal.Decimal:
		amount = v
	case *decimal.Decimal:
		amount = *v
	case *big.Float:
		amount, _ = decimal.NewFromString(v.String())
	}
	return amount.Mul(PowerOfTen(decimals)).BigInt()
}

// ToUint256 convert any type to *uint256.Int. Panics on overflow.
func ToUint256(iamount any, decimals uint16) *uint256.Int {
	result := new(uint256.Int)
	if overflow := result.SetFromBig(ToBigInt(iamount, decimals)); overflow {
		logger.Panic("ToUint256: overflow", slogx.Any("amount", iamount), slogx.Uint16("decimals", decimals))
	}
	return result
}
