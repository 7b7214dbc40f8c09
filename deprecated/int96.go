// Package deprecated provides implementations of the deprecated INT96
// column type.
package deprecated

import (
	"math/big"
	"math/bits"
)

// Int96 is an implementation of the deprecated INT96 type.
//
// Values are stored little-endian: the two low words hold the lower 64
// bits, the high word holds the upper 32 bits. Timestamps encoded as INT96
// store the nanoseconds elapsed within the day in the lower 64 bits and
// the Julian day number in the high word.
type Int96 [3]uint32

// FromDayNanos constructs an Int96 from a Julian day number and the count
// of nanoseconds elapsed since the beginning of that day.
func FromDayNanos(day uint32, nanos uint64) Int96 {
	return Int96{
		0: uint32(nanos),
		1: uint32(nanos >> 32),
		2: day,
	}
}

// JulianDay returns the high word of i, which holds the Julian day number
// of timestamp values.
func (i Int96) JulianDay() uint32 {
	return i[2]
}

// Nanos returns the lower 64 bits of i, which hold the nanoseconds within
// the day of timestamp values.
func (i Int96) Nanos() uint64 {
	return uint64(i[1])<<32 | uint64(i[0])
}

// Negative returns true if i is a negative value.
func (i Int96) Negative() bool {
	return (i[2] >> 31) != 0
}

// Less returns true if i < j.
//
// The method implements a signed comparison between the two operands.
func (i Int96) Less(j Int96) bool {
	if i.Negative() {
		if !j.Negative() {
			return true
		}
	} else {
		if j.Negative() {
			return false
		}
	}
	for k := 2; k >= 0; k-- {
		a, b := i[k], j[k]
		switch {
		case a < b:
			return true
		case a > b:
			return false
		}
	}
	return false
}

// Int converts i to a big.Int representation.
func (i Int96) Int() *big.Int {
	z := new(big.Int)
	z.Or(z, big.NewInt(int64(int32(i[2]))))
	z.Lsh(z, 32)
	z.Or(z, big.NewInt(int64(i[1])))
	z.Lsh(z, 32)
	z.Or(z, big.NewInt(int64(i[0])))
	return z
}

// String returns a string representation of i.
func (i Int96) String() string {
	return i.Int().String()
}

// Len returns the minimum length in bits required to store the value of i.
func (i Int96) Len() int {
	n0 := bits.Len32(i[0])
	n1 := bits.Len32(i[1])
	n2 := bits.Len32(i[2])
	switch {
	case n2 != 0:
		return n2 + 64
	case n1 != 0:
		return n1 + 32
	default:
		return n0
	}
}
