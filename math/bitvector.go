package math

import (
	"strings"
	"unsafe"
)

// BitVector is a bit-precise integer of up to 64 bits where every bit is
// independently known-0, known-1 or unknown. Unknown bits always read as zero
// in the value word so that two vectors with identical knowledge compare
// equal.
type BitVector struct {
	value   uint64 // bit values; zero at unknown positions
	unknown uint64 // mask of unknown bits
	width   uint
}

// bitmask returns a mask covering the given number of low bits.
func bitmask(width uint) uint64 {
	if width >= WidthMax {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

// signExtend reinterprets the low width bits of v as a two's complement value.
func signExtend(v uint64, width uint) int64 {
	shift := WidthMax - width
	return int64(v<<shift) >> shift
}

// NewBitVector returns a fully-known vector holding value at the given width.
func NewBitVector(value uint64, width uint) BitVector {
	assert(width >= 1 && width <= WidthMax, "invalid bit vector width: %d", width)
	return BitVector{value: value & bitmask(width), width: width}
}

// NewUnknownBitVector returns a vector of the given width with every bit
// unknown.
func NewUnknownBitVector(width uint) BitVector {
	assert(width >= 1 && width <= WidthMax, "invalid bit vector width: %d", width)
	return BitVector{unknown: bitmask(width), width: width}
}

// NewPartialBitVector returns a vector whose bits under unknown are unknown
// and whose remaining bits take their value from value.
func NewPartialBitVector(value, unknown uint64, width uint) BitVector {
	assert(width >= 1 && width <= WidthMax, "invalid bit vector width: %d", width)
	unknown &= bitmask(width)
	return BitVector{value: value & bitmask(width) &^ unknown, unknown: unknown, width: width}
}

// Width returns the number of bits in the vector.
func (v BitVector) Width() uint { return v.width }

// Mask returns the mask covering every bit of the vector.
func (v BitVector) Mask() uint64 { return bitmask(v.width) }

// KnownMask returns the mask of bits whose value is known.
func (v BitVector) KnownMask() uint64 { return bitmask(v.width) &^ v.unknown }

// UnknownMask returns the mask of bits whose value is unknown.
func (v BitVector) UnknownMask() uint64 { return v.unknown }

// KnownOnes returns the mask of bits known to be one.
func (v BitVector) KnownOnes() uint64 { return v.value }

// KnownZeros returns the mask of bits known to be zero.
func (v BitVector) KnownZeros() uint64 { return ^v.value & bitmask(v.width) &^ v.unknown }

// IsKnown returns true if every bit of the vector is known.
func (v BitVector) IsKnown() bool { return v.unknown == 0 }

// Uint64 returns the vector as an unsigned integer if every bit is known.
func (v BitVector) Uint64() (uint64, bool) {
	if !v.IsKnown() {
		return 0, false
	}
	return v.value, true
}

// Int64 returns the vector sign-extended to 64 bits if every bit is known.
func (v BitVector) Int64() (int64, bool) {
	if !v.IsKnown() {
		return 0, false
	}
	return signExtend(v.value, v.width), true
}

// umin returns the smallest unsigned value the vector can take.
func (v BitVector) umin() uint64 { return v.value }

// umax returns the largest unsigned value the vector can take.
func (v BitVector) umax() uint64 { return v.value | v.unknown }

// As returns the vector reinterpreted as the integer type V. The read fails
// only if a bit V actually needs is unknown; high bits beyond V's size do not
// have to be known.
func As[V Integer](v BitVector) (V, bool) {
	need := bitsOf[V]()
	if need > v.width {
		need = v.width
	}
	if v.unknown&bitmask(need) != 0 {
		var zero V
		return zero, false
	}
	if isSigned[V]() && v.width <= bitsOf[V]() {
		return V(signExtend(v.value, v.width)), true
	}
	return V(v.value), true
}

// Resize returns the vector resized to the given width. Shrinking truncates;
// growing extends with known zeros, or with copies of the top bit (including
// its unknown-ness) when signExtend is set.
func (v BitVector) Resize(width uint, signExtend bool) BitVector {
	assert(width >= 1 && width <= WidthMax, "invalid bit vector width: %d", width)
	if width <= v.width {
		return BitVector{value: v.value & bitmask(width), unknown: v.unknown & bitmask(width), width: width}
	}
	out := BitVector{value: v.value, unknown: v.unknown, width: width}
	if signExtend {
		ext := bitmask(width) &^ bitmask(v.width)
		top := uint64(1) << (v.width - 1)
		if v.unknown&top != 0 {
			out.unknown |= ext
		} else if v.value&top != 0 {
			out.value |= ext
		}
	}
	return out
}

// Equal returns true if both vectors have the same width and per-bit
// knowledge.
func (v BitVector) Equal(other BitVector) bool {
	return v == other
}

// String renders the vector MSB-first with '?' marking unknown bits.
func (v BitVector) String() string {
	var sb strings.Builder
	sb.WriteString("0b")
	for i := int(v.width) - 1; i >= 0; i-- {
		bit := uint64(1) << uint(i)
		switch {
		case v.unknown&bit != 0:
			sb.WriteByte('?')
		case v.value&bit != 0:
			sb.WriteByte('1')
		default:
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// bitsOf returns the natural width of the integer type V.
func bitsOf[V Integer]() uint {
	var zero V
	return uint(unsafe.Sizeof(zero)) * 8
}

// isSigned returns true if the integer type V is signed.
func isSigned[V Integer]() bool {
	return V(0)-1 < 0
}
