package shred

import (
	"math/big"
)

// Decimal is a fixed-point decimal value: an unscaled integer combined
// with a precision and a scale. The unscaled integer is backed by the
// physical type of the column it was read from.
type Decimal struct {
	backing   DecimalBacking
	i64       int64
	bytes     []byte
	precision int32
	scale     int32
}

// DecimalFromInt32 builds a decimal backed by a 32-bit unscaled integer.
func DecimalFromInt32(unscaled, precision, scale int32) Decimal {
	return Decimal{backing: DecimalInt32, i64: int64(unscaled), precision: precision, scale: scale}
}

// DecimalFromInt64 builds a decimal backed by a 64-bit unscaled integer.
func DecimalFromInt64(unscaled int64, precision, scale int32) Decimal {
	return Decimal{backing: DecimalInt64, i64: unscaled, precision: precision, scale: scale}
}

// DecimalFromBytes builds a decimal backed by a big-endian two's
// complement unscaled integer.
func DecimalFromBytes(unscaled []byte, precision, scale int32) Decimal {
	return Decimal{backing: DecimalByteArray, bytes: unscaled, precision: precision, scale: scale}
}

// Backing returns the physical backing of the decimal.
func (d Decimal) Backing() DecimalBacking {
	return d.backing
}

// Precision returns the total number of digits of the decimal.
func (d Decimal) Precision() int32 {
	return d.precision
}

// Scale returns the number of fractional digits of the decimal.
func (d Decimal) Scale() int32 {
	return d.scale
}

// Int returns the unscaled integer.
func (d Decimal) Int() *big.Int {
	switch d.backing {
	case DecimalByteArray:
		z := new(big.Int).SetBytes(d.bytes)
		if len(d.bytes) > 0 && d.bytes[0]&0x80 != 0 {
			// big-endian two's complement
			offset := new(big.Int).Lsh(big.NewInt(1), uint(len(d.bytes))*8)
			z.Sub(z, offset)
		}
		return z
	default:
		return big.NewInt(d.i64)
	}
}

// Rat returns the decimal as an exact rational number.
func (d Decimal) Rat() *big.Rat {
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d.scale)), nil)
	return new(big.Rat).SetFrac(d.Int(), denom)
}

func (d Decimal) String() string {
	return d.Rat().FloatString(int(d.scale))
}

func equalDecimal(a, b Decimal) bool {
	if a.backing != b.backing || a.precision != b.precision || a.scale != b.scale {
		return false
	}
	if a.backing == DecimalByteArray {
		return a.Int().Cmp(b.Int()) == 0
	}
	return a.i64 == b.i64
}
