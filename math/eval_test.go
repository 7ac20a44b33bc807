package math_test

import (
	"testing"

	"github.com/jilvan1234/VTIL-Common/math"
)

func known(value uint64, width uint) math.BitVector {
	return math.NewBitVector(value, width)
}

func unknown(width uint) math.BitVector {
	return math.NewUnknownBitVector(width)
}

func partial(value, unknownMask uint64, width uint) math.BitVector {
	return math.NewPartialBitVector(value, unknownMask, width)
}

func requireKnown(t *testing.T, v math.BitVector, want uint64, width uint) {
	t.Helper()
	got, ok := v.Uint64()
	if !ok {
		t.Fatalf("expected known value, got %s", v)
	} else if got != want || v.Width() != width {
		t.Fatalf("unexpected value: %#x width=%d, want %#x width=%d", got, v.Width(), want, width)
	}
}

func TestEvaluateUnary(t *testing.T) {
	t.Run("NOT", func(t *testing.T) {
		requireKnown(t, math.EvaluateUnary(math.NOT, known(0x0F, 8)), 0xF0, 8)
	})
	t.Run("NOTPartial", func(t *testing.T) {
		v := math.EvaluateUnary(math.NOT, partial(0xF0, 0x0F, 8))
		if v.UnknownMask() != 0x0F || v.KnownOnes() != 0x00 || v.KnownZeros() != 0xF0 {
			t.Fatalf("unexpected result: %s", v)
		}
	})
	t.Run("NEG", func(t *testing.T) {
		requireKnown(t, math.EvaluateUnary(math.NEG, known(5, 8)), 0xFB, 8)
	})
	t.Run("NEGUnknown", func(t *testing.T) {
		if v := math.EvaluateUnary(math.NEG, unknown(8)); v.IsKnown() {
			t.Fatalf("expected unknown, got %s", v)
		}
	})
	t.Run("POPCOUNT", func(t *testing.T) {
		requireKnown(t, math.EvaluateUnary(math.POPCOUNT, known(0xF1, 8)), 5, 8)
	})
	t.Run("MASK", func(t *testing.T) {
		// Mask is known even for a fully-unknown operand.
		requireKnown(t, math.EvaluateUnary(math.MASK, unknown(8)), 0xFF, 8)
	})
	t.Run("BITCOUNT", func(t *testing.T) {
		requireKnown(t, math.EvaluateUnary(math.BITCOUNT, unknown(32)), 32, 8)
	})
	t.Run("BinaryOpPanics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic")
			}
		}()
		math.EvaluateUnary(math.ADD, known(1, 8))
	})
}

// The width-8 scenario from the design discussion: x=5, y=3.
func TestEvaluateBinary_Concrete(t *testing.T) {
	x, y := known(5, 8), known(3, 8)

	requireKnown(t, math.EvaluateBinary(x, math.AND, y), 1, 8)
	requireKnown(t, math.EvaluateBinary(x, math.OR, y), 7, 8)
	requireKnown(t, math.EvaluateBinary(x, math.XOR, y), 6, 8)
	requireKnown(t, math.EvaluateBinary(x, math.ADD, y), 8, 8)
	requireKnown(t, math.EvaluateBinary(x, math.SLT, y), 0, 1)
	requireKnown(t, math.EvaluateBinary(x, math.SHR, known(1, 8)), 2, 8)
}

func TestEvaluateBinary_Arithmetic(t *testing.T) {
	t.Run("SUB", func(t *testing.T) {
		requireKnown(t, math.EvaluateBinary(known(3, 8), math.SUB, known(5, 8)), 0xFE, 8)
	})
	t.Run("MUL", func(t *testing.T) {
		requireKnown(t, math.EvaluateBinary(known(0x40, 8), math.MUL, known(4, 8)), 0x00, 8)
	})
	t.Run("MULHI", func(t *testing.T) {
		// -128 * -128 = 0x4000 at width 8; high byte is 0x40.
		requireKnown(t, math.EvaluateBinary(known(0x80, 8), math.MULHI, known(0x80, 8)), 0x40, 8)
	})
	t.Run("UMULHI", func(t *testing.T) {
		requireKnown(t, math.EvaluateBinary(known(1<<63, 64), math.UMULHI, known(2, 64)), 1, 64)
	})
	t.Run("UMULHI8", func(t *testing.T) {
		// 0x80 * 0x80 = 0x4000 unsigned as well.
		requireKnown(t, math.EvaluateBinary(known(0x80, 8), math.UMULHI, known(0x80, 8)), 0x40, 8)
	})
	t.Run("SDIV", func(t *testing.T) {
		// -6 / 3 == -2.
		requireKnown(t, math.EvaluateBinary(known(0xFA, 8), math.SDIV, known(3, 8)), 0xFE, 8)
	})
	t.Run("SDIVOverflow", func(t *testing.T) {
		// INT_MIN / -1 wraps to INT_MIN.
		requireKnown(t, math.EvaluateBinary(known(0x80, 8), math.SDIV, known(0xFF, 8)), 0x80, 8)
	})
	t.Run("SREM", func(t *testing.T) {
		// -7 % 3 == -1.
		requireKnown(t, math.EvaluateBinary(known(0xF9, 8), math.SREM, known(3, 8)), 0xFF, 8)
	})
	t.Run("UDIV", func(t *testing.T) {
		requireKnown(t, math.EvaluateBinary(known(0xFA, 8), math.UDIV, known(3, 8)), 83, 8)
	})
	t.Run("UREM", func(t *testing.T) {
		requireKnown(t, math.EvaluateBinary(known(0xFA, 8), math.UREM, known(3, 8)), 1, 8)
	})
	t.Run("DivideByZero", func(t *testing.T) {
		for _, op := range []math.Operator{math.SDIV, math.SREM, math.UDIV, math.UREM} {
			if v := math.EvaluateBinary(known(5, 8), op, known(0, 8)); v.IsKnown() {
				t.Fatalf("%s: expected unknown, got %s", op, v)
			}
		}
	})
	t.Run("WidthMixing", func(t *testing.T) {
		// Result takes the wider operand's width.
		requireKnown(t, math.EvaluateBinary(known(0xFF, 8), math.ADD, known(1, 16)), 0x100, 16)
	})
	t.Run("SignedWidthMixing", func(t *testing.T) {
		// -1 at width 8 sign-extends before the signed multiply.
		requireKnown(t, math.EvaluateBinary(known(0xFF, 8), math.MUL, known(2, 16)), 0xFFFE, 16)
	})
}

func TestEvaluateBinary_Bitwise(t *testing.T) {
	t.Run("ANDKnownZeroDominates", func(t *testing.T) {
		// Low nibble unknown, but AND with zero kills everything.
		v := math.EvaluateBinary(partial(0xF0, 0x0F, 8), math.AND, known(0x00, 8))
		requireKnown(t, v, 0x00, 8)
	})
	t.Run("ANDKnownBits", func(t *testing.T) {
		v := math.EvaluateBinary(partial(0xF0, 0x0F, 8), math.AND, known(0xF0, 8))
		requireKnown(t, v, 0xF0, 8)
	})
	t.Run("ANDFullMask", func(t *testing.T) {
		// Low nibble known-1, high nibble known-0: AND with 0xFF collapses.
		v := math.EvaluateBinary(known(0x0F, 8), math.AND, known(0xFF, 8))
		requireKnown(t, v, 0x0F, 8)
	})
	t.Run("ANDPartialSurvives", func(t *testing.T) {
		v := math.EvaluateBinary(partial(0xF0, 0x0F, 8), math.AND, known(0xFF, 8))
		if v.UnknownMask() != 0x0F || v.KnownOnes() != 0xF0 {
			t.Fatalf("unexpected result: %s", v)
		}
	})
	t.Run("ORKnownOneDominates", func(t *testing.T) {
		v := math.EvaluateBinary(partial(0x00, 0xFF, 8), math.OR, known(0xFF, 8))
		requireKnown(t, v, 0xFF, 8)
	})
	t.Run("XORUnknownUnion", func(t *testing.T) {
		v := math.EvaluateBinary(partial(0x00, 0x0F, 8), math.XOR, partial(0x00, 0xF0, 8))
		if v.UnknownMask() != 0xFF {
			t.Fatalf("unexpected unknown mask: %#x", v.UnknownMask())
		}
	})
	t.Run("ANDWidthMixing", func(t *testing.T) {
		// The zero-extended high bits of the narrow operand are known zeros.
		v := math.EvaluateBinary(known(0x0F, 8), math.AND, unknown(16))
		if v.KnownZeros() != 0xFFF0 || v.UnknownMask() != 0x000F {
			t.Fatalf("unexpected result: %s", v)
		}
	})
}

func TestEvaluateBinary_Shifts(t *testing.T) {
	t.Run("SHL", func(t *testing.T) {
		requireKnown(t, math.EvaluateBinary(known(0x81, 8), math.SHL, known(1, 8)), 0x02, 8)
	})
	t.Run("SHLPartial", func(t *testing.T) {
		// A known shift moves unknown bits and fills with known zeros.
		v := math.EvaluateBinary(partial(0x00, 0x0F, 8), math.SHL, known(4, 8))
		if v.UnknownMask() != 0xF0 || v.KnownZeros() != 0x0F {
			t.Fatalf("unexpected result: %s", v)
		}
	})
	t.Run("SHLOutOfRange", func(t *testing.T) {
		requireKnown(t, math.EvaluateBinary(unknown(8), math.SHL, known(8, 8)), 0, 8)
	})
	t.Run("SHRPartial", func(t *testing.T) {
		v := math.EvaluateBinary(partial(0x00, 0xF0, 8), math.SHR, known(4, 8))
		if v.UnknownMask() != 0x0F || v.KnownZeros() != 0xF0 {
			t.Fatalf("unexpected result: %s", v)
		}
	})
	t.Run("UnknownAmount", func(t *testing.T) {
		if v := math.EvaluateBinary(known(1, 8), math.SHL, unknown(8)); v.IsKnown() {
			t.Fatalf("expected unknown, got %s", v)
		}
	})
	t.Run("ROTL", func(t *testing.T) {
		requireKnown(t, math.EvaluateBinary(known(0x81, 8), math.ROTL, known(1, 8)), 0x03, 8)
	})
	t.Run("ROTR", func(t *testing.T) {
		requireKnown(t, math.EvaluateBinary(known(0x81, 8), math.ROTR, known(1, 8)), 0xC0, 8)
	})
	t.Run("ROTRZero", func(t *testing.T) {
		requireKnown(t, math.EvaluateBinary(known(0x81, 8), math.ROTR, known(0, 8)), 0x81, 8)
	})
	t.Run("ROTL64", func(t *testing.T) {
		requireKnown(t, math.EvaluateBinary(known(1<<63|1, 64), math.ROTL, known(1, 64)), 3, 64)
	})
}

func TestEvaluateBinary_BitTest(t *testing.T) {
	requireKnown(t, math.EvaluateBinary(known(0x04, 8), math.BT, known(2, 8)), 1, 1)
	requireKnown(t, math.EvaluateBinary(known(0x04, 8), math.BT, known(3, 8)), 0, 1)
	requireKnown(t, math.EvaluateBinary(unknown(8), math.BT, known(9, 8)), 0, 1)

	// A known bit of a partially-known value can be tested.
	requireKnown(t, math.EvaluateBinary(partial(0xF0, 0x0F, 8), math.BT, known(7, 8)), 1, 1)
	if v := math.EvaluateBinary(partial(0xF0, 0x0F, 8), math.BT, known(0, 8)); v.IsKnown() {
		t.Fatalf("expected unknown, got %s", v)
	}
}

func TestEvaluateBinary_Casts(t *testing.T) {
	t.Run("ZEXT", func(t *testing.T) {
		requireKnown(t, math.EvaluateBinary(known(0xFF, 8), math.ZEXT, known(16, 8)), 0x00FF, 16)
	})
	t.Run("SEXT", func(t *testing.T) {
		requireKnown(t, math.EvaluateBinary(known(0xFF, 8), math.SEXT, known(16, 8)), 0xFFFF, 16)
	})
	t.Run("Truncate", func(t *testing.T) {
		requireKnown(t, math.EvaluateBinary(known(0x1234, 16), math.ZEXT, known(8, 8)), 0x34, 8)
	})
	t.Run("SEXTUnknownSign", func(t *testing.T) {
		v := math.EvaluateBinary(partial(0x00, 0x80, 8), math.SEXT, known(16, 8))
		if v.UnknownMask() != 0xFF80 {
			t.Fatalf("unexpected unknown mask: %#x", v.UnknownMask())
		}
	})
	t.Run("UnknownWidthPanics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic")
			}
		}()
		math.EvaluateBinary(known(1, 8), math.ZEXT, unknown(8))
	})
}

func TestEvaluateBinary_Compare(t *testing.T) {
	t.Run("Signed", func(t *testing.T) {
		// -2 < 1 signed, but not unsigned.
		requireKnown(t, math.EvaluateBinary(known(0xFE, 8), math.SLT, known(1, 8)), 1, 1)
		requireKnown(t, math.EvaluateBinary(known(0xFE, 8), math.ULT, known(1, 8)), 0, 1)
	})
	t.Run("EQConflict", func(t *testing.T) {
		// Bit 7 is known to differ even though the low nibbles are unknown.
		x := partial(0x80, 0x0F, 8)
		y := partial(0x00, 0x0F, 8)
		requireKnown(t, math.EvaluateBinary(x, math.EQ, y), 0, 1)
		requireKnown(t, math.EvaluateBinary(x, math.NE, y), 1, 1)
	})
	t.Run("EQUndecidable", func(t *testing.T) {
		x := partial(0x80, 0x0F, 8)
		if v := math.EvaluateBinary(x, math.EQ, x); v.IsKnown() {
			t.Fatalf("expected unknown, got %s", v)
		}
	})
	t.Run("ULTInterval", func(t *testing.T) {
		// x spans [0,15], so x < 16 regardless of its unknown bits.
		x := partial(0x00, 0x0F, 8)
		requireKnown(t, math.EvaluateBinary(x, math.ULT, known(16, 8)), 1, 1)
		requireKnown(t, math.EvaluateBinary(x, math.UGE, known(16, 8)), 0, 1)
		requireKnown(t, math.EvaluateBinary(known(16, 8), math.UGT, x), 1, 1)
		requireKnown(t, math.EvaluateBinary(known(16, 8), math.ULE, x), 0, 1)
	})
	t.Run("ULTUndecidable", func(t *testing.T) {
		x := partial(0x00, 0x0F, 8)
		if v := math.EvaluateBinary(x, math.ULT, known(10, 8)); v.IsKnown() {
			t.Fatalf("expected unknown, got %s", v)
		}
	})
}

func TestEvaluateBinary_Select(t *testing.T) {
	t.Run("True", func(t *testing.T) {
		requireKnown(t, math.EvaluateBinary(known(1, 1), math.SELECT, known(0xAB, 8)), 0xAB, 8)
	})
	t.Run("False", func(t *testing.T) {
		requireKnown(t, math.EvaluateBinary(known(0, 1), math.SELECT, known(0xAB, 8)), 0x00, 8)
	})
	t.Run("UnknownCondition", func(t *testing.T) {
		if v := math.EvaluateBinary(unknown(1), math.SELECT, known(0xAB, 8)); v.IsKnown() {
			t.Fatalf("expected unknown, got %s", v)
		}
	})
	t.Run("PartialValuePassesThrough", func(t *testing.T) {
		v := math.EvaluateBinary(known(1, 1), math.SELECT, partial(0xF0, 0x0F, 8))
		if v.UnknownMask() != 0x0F || v.KnownOnes() != 0xF0 {
			t.Fatalf("unexpected result: %s", v)
		}
	})
}

func TestEvaluateBinary_MinMax(t *testing.T) {
	minusOne, one := known(0xFF, 8), known(1, 8)

	requireKnown(t, math.EvaluateBinary(minusOne, math.MAX, one), 1, 8)
	requireKnown(t, math.EvaluateBinary(minusOne, math.MIN, one), 0xFF, 8)
	requireKnown(t, math.EvaluateBinary(minusOne, math.UMAX, one), 0xFF, 8)
	requireKnown(t, math.EvaluateBinary(minusOne, math.UMIN, one), 1, 8)
}

// Every result width must follow the rule recorded in the operator table,
// including with mixed operand widths.
func TestEvaluateBinary_ResultWidths(t *testing.T) {
	for _, tt := range []struct {
		op   math.Operator
		x, y math.BitVector
		want uint
	}{
		{math.ADD, known(1, 8), known(1, 32), 32},    // widest operand
		{math.AND, unknown(16), known(1, 8), 16},     // widest operand
		{math.SHL, known(1, 8), known(1, 32), 8},     // left operand
		{math.ROTR, unknown(16), known(1, 8), 16},    // left operand
		{math.SELECT, known(1, 1), unknown(32), 32},  // right operand
		{math.EQ, known(1, 8), unknown(32), 1},       // single bit
		{math.ULT, unknown(8), known(1, 8), 1},       // single bit
		{math.BT, unknown(8), known(2, 8), 1},        // single bit
		{math.ZEXT, known(0xFF, 8), known(16, 8), 16}, // collapsed right operand
		{math.SEXT, unknown(8), known(64, 8), 64},    // collapsed right operand
	} {
		t.Run(tt.op.String(), func(t *testing.T) {
			if got := math.EvaluateBinary(tt.x, tt.op, tt.y).Width(); got != tt.want {
				t.Fatalf("unexpected width: %d, want %d", got, tt.want)
			}
		})
	}
}
