package math_test

import (
	"testing"

	"github.com/jilvan1234/VTIL-Common/math"
)

func TestNewOperand(t *testing.T) {
	t.Run("NaturalWidth", func(t *testing.T) {
		o := math.NewOperand(int8(-5))
		if o.Width() != 8 {
			t.Fatalf("unexpected width: %d", o.Width())
		} else if got, ok := o.Int64(); !ok || got != -5 {
			t.Fatalf("unexpected value: %d (%v)", got, ok)
		}
	})
	t.Run("NaturalWidth32", func(t *testing.T) {
		o := math.NewOperand(uint32(7))
		if o.Width() != 32 {
			t.Fatalf("unexpected width: %d", o.Width())
		}
	})
	t.Run("ExplicitWidth", func(t *testing.T) {
		o := math.NewOperandWidth(300, 8)
		if got, ok := o.Uint64(); !ok || got != 300&0xFF {
			t.Fatalf("unexpected value: %d (%v)", got, ok)
		}
	})
	t.Run("AlwaysConstant", func(t *testing.T) {
		o := math.NewOperand(uint16(0))
		if !o.IsConstant() {
			t.Fatal("expected constant")
		}
	})
}

func TestOperand_Accessors(t *testing.T) {
	o := math.Operand{Value: math.NewPartialBitVector(0xF0, 0x0F, 8)}
	if o.KnownMask() != 0xF0 {
		t.Fatalf("unexpected known mask: %#x", o.KnownMask())
	} else if o.UnknownMask() != 0x0F {
		t.Fatalf("unexpected unknown mask: %#x", o.UnknownMask())
	} else if o.KnownOnes() != 0xF0 {
		t.Fatalf("unexpected known ones: %#x", o.KnownOnes())
	} else if o.KnownZeros() != 0x00 {
		t.Fatalf("unexpected known zeros: %#x", o.KnownZeros())
	} else if o.IsConstant() {
		t.Fatal("expected non-constant")
	}
}

func TestCollapse(t *testing.T) {
	t.Run("Known", func(t *testing.T) {
		o := math.NewOperandWidth(0xFB, 8)
		if got, ok := math.Collapse[int8](&o); !ok || got != -5 {
			t.Fatalf("unexpected value: %d (%v)", got, ok)
		}
	})
	t.Run("Unknown", func(t *testing.T) {
		o := math.Operand{Value: math.NewUnknownBitVector(8)}
		if _, ok := math.Collapse[uint8](&o); ok {
			t.Fatal("expected collapse failure")
		}
	})
}

func TestOperand_Resize(t *testing.T) {
	t.Run("Constant", func(t *testing.T) {
		o := math.NewOperandWidth(0xFE, 8)
		o.Resize(16, true)
		if got, ok := o.Uint64(); !ok || got != 0xFFFE || o.Width() != 16 {
			t.Fatalf("unexpected value: %#x (%v) width=%d", got, ok, o.Width())
		}
	})
	t.Run("NonConstantPanics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic")
			}
		}()
		o := math.Operand{Value: math.NewUnknownBitVector(8)}
		o.Resize(16, false)
	})
}
