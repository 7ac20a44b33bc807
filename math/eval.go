package math

import "math/bits"

// EvaluateUnary computes the bit-precise result of a unary operator. The
// result is fully known whenever it is derivable from the known bits of the
// operand alone.
func EvaluateUnary(op Operator, x BitVector) BitVector {
	assert(op.IsUnary(), "not a unary operator: %s", op)
	w := op.resultWidth(x, x)

	switch op {
	case NOT:
		return NewPartialBitVector(^x.value, x.unknown, w)
	case NEG:
		if v, ok := x.Uint64(); ok {
			return NewBitVector(-v, w)
		}
		return NewUnknownBitVector(w)
	case POPCOUNT:
		if v, ok := x.Uint64(); ok {
			return NewBitVector(uint64(bits.OnesCount64(v)), w)
		}
		return NewUnknownBitVector(w)
	case MASK:
		return NewBitVector(x.Mask(), w)
	case BITCOUNT:
		return NewBitVector(uint64(x.width), w)
	default:
		panic("unreachable")
	}
}

// EvaluateBinary computes the bit-precise result of a binary operator.
//
// When both operands are fully known the result is the exact machine result
// at the operator's width and signedness. Otherwise known bits are propagated
// where the operator's semantics allow (bitwise combination, shifts and
// rotates by known amounts, extension bits of casts, selects with a known
// condition, comparisons decidable from known bits); every remaining bit of
// the result is unknown.
//
// Division and remainder by a value that is zero or not fully known produce a
// fully-unknown result rather than failing, so construction stays total and
// the caller symbolizes.
func EvaluateBinary(x BitVector, op Operator, y BitVector) BitVector {
	assert(op.IsBinary(), "not a binary operator: %s", op)
	w := op.resultWidth(x, y)

	switch op {
	case ZEXT, SEXT:
		return x.Resize(w, op == SEXT)

	case SELECT:
		if c, ok := x.Uint64(); ok {
			if c != 0 {
				return y
			}
			return NewBitVector(0, w)
		}
		return NewUnknownBitVector(w)

	case SHL, SHR, ROTL, ROTR:
		return evalShift(x, op, y, w)

	case AND:
		sx, sy := extend(x, op, y, w)
		unknown := (sx.unknown | sy.unknown) &^ (sx.KnownZeros() | sy.KnownZeros())
		return NewPartialBitVector(sx.value&sy.value, unknown, w)
	case OR:
		sx, sy := extend(x, op, y, w)
		unknown := (sx.unknown | sy.unknown) &^ (sx.value | sy.value)
		return NewPartialBitVector(sx.value|sy.value, unknown, w)
	case XOR:
		sx, sy := extend(x, op, y, w)
		return NewPartialBitVector(sx.value^sy.value, sx.unknown|sy.unknown, w)

	case BT:
		if i, ok := y.Uint64(); ok {
			if i >= uint64(x.width) {
				return NewBitVector(0, w)
			}
			bit := uint64(1) << i
			if x.unknown&bit == 0 {
				return NewBitVector(x.value>>i&1, w)
			}
		}
		return NewUnknownBitVector(w)

	case EQ, NE, ULT, ULE, UGT, UGE, SLT, SLE, SGT, SGE:
		return evalCompare(x, op, y, w)

	default:
		return evalArithmetic(x, op, y, w)
	}
}

// resultWidth derives the width of the result from the descriptor's rule, so
// the table in operators.go stays the single authority on operator shape.
func (op Operator) resultWidth(x, y BitVector) uint {
	switch op.Desc().result {
	case resultLHS:
		return x.width
	case resultRHS:
		return y.width
	case resultBool:
		return WidthBool
	case resultByte:
		return Width8
	case resultCast:
		w, ok := y.Uint64()
		assert(ok, "%s: width operand must be fully known", op)
		assert(w >= 1 && w <= WidthMax, "%s: invalid target width: %d", op, w)
		return uint(w)
	default:
		return maxWidth(x, y)
	}
}

// maxWidth returns the width of the widest operand.
func maxWidth(x, y BitVector) uint {
	if x.width >= y.width {
		return x.width
	}
	return y.width
}

// extend resizes both operands to the given width, sign-extending for signed
// operators.
func extend(x BitVector, op Operator, y BitVector, w uint) (BitVector, BitVector) {
	return x.Resize(w, op.IsSigned()), y.Resize(w, op.IsSigned())
}

// evalShift handles shifts and rotates. The result has the width of the left
// operand; a known shift amount moves known and unknown bits alike.
func evalShift(x BitVector, op Operator, y BitVector, w uint) BitVector {
	n, ok := y.Uint64()
	if !ok {
		return NewUnknownBitVector(w)
	}

	switch op {
	case SHL:
		if n >= uint64(w) {
			return NewBitVector(0, w)
		}
		return NewPartialBitVector(x.value<<n, x.unknown<<n, w)
	case SHR:
		if n >= uint64(w) {
			return NewBitVector(0, w)
		}
		return NewPartialBitVector(x.value>>n, x.unknown>>n, w)
	case ROTL, ROTR:
		n %= uint64(w)
		if op == ROTR {
			n = uint64(w) - n
		}
		rot := func(v uint64) uint64 {
			return (v<<n | v>>(uint64(w)-n)) & bitmask(w)
		}
		return NewPartialBitVector(rot(x.value), rot(x.unknown), w)
	default:
		panic("unreachable")
	}
}

// evalCompare handles the comparison operators. Equality can be decided early
// when any commonly-known bit differs; unsigned ordering can be decided from
// the [min,max] interval each operand spans.
func evalCompare(x BitVector, op Operator, y BitVector, w uint) BitVector {
	sx, sy := extend(x, op, y, maxWidth(x, y))

	if a, ok := sx.Uint64(); ok {
		if b, ok := sy.Uint64(); ok {
			return NewBitVector(boolBit(compareKnown(sx, op, sy, a, b)), w)
		}
	}

	switch op {
	case EQ, NE:
		conflict := (sx.value ^ sy.value) & sx.KnownMask() & sy.KnownMask()
		if conflict != 0 {
			return NewBitVector(boolBit(op == NE), w)
		}
	case ULT, UGE:
		if sx.umax() < sy.umin() {
			return NewBitVector(boolBit(op == ULT), w)
		}
		if sx.umin() >= sy.umax() {
			return NewBitVector(boolBit(op == UGE), w)
		}
	case ULE, UGT:
		if sx.umax() <= sy.umin() {
			return NewBitVector(boolBit(op == ULE), w)
		}
		if sx.umin() > sy.umax() {
			return NewBitVector(boolBit(op == UGT), w)
		}
	}
	return NewUnknownBitVector(w)
}

// boolBit converts a decided comparison to its single-bit value.
func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// compareKnown decides a comparison between two fully-known operands.
func compareKnown(sx BitVector, op Operator, sy BitVector, a, b uint64) bool {
	sa, sb := signExtend(a, sx.width), signExtend(b, sy.width)
	switch op {
	case EQ:
		return a == b
	case NE:
		return a != b
	case ULT:
		return a < b
	case ULE:
		return a <= b
	case UGT:
		return a > b
	case UGE:
		return a >= b
	case SLT:
		return sa < sb
	case SLE:
		return sa <= sb
	case SGT:
		return sa > sb
	case SGE:
		return sa >= sb
	default:
		panic("unreachable")
	}
}

// evalArithmetic handles the arithmetic and min/max operators, which fold
// only when both operands are fully known.
func evalArithmetic(x BitVector, op Operator, y BitVector, w uint) BitVector {
	sx, sy := extend(x, op, y, w)

	a, ok := sx.Uint64()
	if !ok {
		return NewUnknownBitVector(w)
	}
	b, ok := sy.Uint64()
	if !ok {
		return NewUnknownBitVector(w)
	}

	switch op {
	case ADD:
		return NewBitVector(a+b, w)
	case SUB:
		return NewBitVector(a-b, w)
	case MUL, UMUL:
		return NewBitVector(a*b, w)
	case MULHI:
		sa, sb := signExtend(a, w), signExtend(b, w)
		hi, lo := bits.Mul64(uint64(sa), uint64(sb))
		if sa < 0 {
			hi -= uint64(sb)
		}
		if sb < 0 {
			hi -= uint64(sa)
		}
		return NewBitVector(productHigh(hi, lo, w), w)
	case UMULHI:
		hi, lo := bits.Mul64(a, b)
		return NewBitVector(productHigh(hi, lo, w), w)
	case SDIV, SREM:
		if b == 0 {
			return NewUnknownBitVector(w)
		}
		sa, sb := signExtend(a, w), signExtend(b, w)
		if sb == -1 {
			// Avoid the overflowing INT_MIN / -1 machine case.
			if op == SDIV {
				return NewBitVector(uint64(-sa), w)
			}
			return NewBitVector(0, w)
		}
		if op == SDIV {
			return NewBitVector(uint64(sa/sb), w)
		}
		return NewBitVector(uint64(sa%sb), w)
	case UDIV, UREM:
		if b == 0 {
			return NewUnknownBitVector(w)
		}
		if op == UDIV {
			return NewBitVector(a/b, w)
		}
		return NewBitVector(a%b, w)
	case MAX, MIN:
		sa, sb := signExtend(a, w), signExtend(b, w)
		if (sa >= sb) == (op == MAX) {
			return NewBitVector(a, w)
		}
		return NewBitVector(b, w)
	case UMAX, UMIN:
		if (a >= b) == (op == UMAX) {
			return NewBitVector(a, w)
		}
		return NewBitVector(b, w)
	default:
		panic("unreachable")
	}
}

// productHigh extracts bits [w, 2w) of a 128-bit product.
func productHigh(hi, lo uint64, w uint) uint64 {
	if w == WidthMax {
		return hi
	}
	return lo>>w | hi<<(WidthMax-w)
}
