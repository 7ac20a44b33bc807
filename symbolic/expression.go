// Package symbolic provides the reference derived operand type of the
// algebra: an expression tree that folds to a constant whenever every bit of
// the result is known and records the operation as a node otherwise.
package symbolic

import (
	"fmt"

	"github.com/jilvan1234/VTIL-Common/math"
)

// Expression is a symbolic value. A leaf is either a constant (fully-known
// value, empty Name) or a variable (fully-unknown value, non-empty Name); an
// interior node carries the operator and its operand subtrees. The embedded
// operand always holds the most precise bit-level knowledge derivable for the
// subtree, so partially-known interior values are representable too.
type Expression struct {
	math.Operand

	Op  math.Operator
	LHS *Expression
	RHS *Expression

	// Name identifies a variable leaf.
	Name string
}

// NewConstant returns a constant expression of the given width.
func NewConstant(value uint64, width uint) *Expression {
	return &Expression{Operand: math.Operand{Value: math.NewBitVector(value, width)}}
}

// NewVariable returns a variable expression whose bits are all unknown.
func NewVariable(name string, width uint) *Expression {
	assert(name != "", "variable name cannot be empty")
	return &Expression{
		Operand: math.Operand{Value: math.NewUnknownBitVector(width)},
		Name:    name,
	}
}

// SetUnary initializes the expression as op applied to x, folding to a
// constant leaf if the result is fully known.
func (e *Expression) SetUnary(op math.Operator, x *Expression) {
	value := math.EvaluateUnary(op, x.Value)
	if value.IsKnown() {
		*e = Expression{Operand: math.Operand{Value: value}}
		return
	}
	*e = Expression{Operand: math.Operand{Value: value}, Op: op, RHS: x}
}

// SetBinary initializes the expression as x op y, folding to a constant leaf
// if the result is fully known.
func (e *Expression) SetBinary(x *Expression, op math.Operator, y *Expression) {
	value := math.EvaluateBinary(x.Value, op, y.Value)
	if value.IsKnown() {
		*e = Expression{Operand: math.Operand{Value: value}}
		return
	}
	*e = Expression{Operand: math.Operand{Value: value}, Op: op, LHS: x, RHS: y}
}

// IsLeaf returns true if the expression carries no operator.
func (e *Expression) IsLeaf() bool { return e.Op == math.INVALID }

// IsVariable returns true if the expression is a variable leaf.
func (e *Expression) IsVariable() bool { return e.IsLeaf() && e.Name != "" }

// Resize resizes the expression to a new width. Constants resize in place;
// anything carrying unknown bits is wrapped in a cast node instead, which is
// the bit-precise-aware behavior the base wrapper cannot provide.
func (e *Expression) Resize(width uint, signExtend bool) {
	if e.IsConstant() {
		e.Operand.Resize(width, signExtend)
		return
	}
	src := *e
	w := NewConstant(uint64(width), math.Width8)
	if signExtend {
		*e = *math.SExt(&src, w)
	} else {
		*e = *math.ZExt(&src, w)
	}
}

// Substitute returns the expression with variables replaced by their bound
// constants, re-evaluated bottom-up so that any newly-foldable subtree folds.
// Subtrees without bound variables are shared, not copied.
func (e *Expression) Substitute(b *Bindings) *Expression {
	switch {
	case e.IsVariable():
		if value, ok := b.Get(e.Name); ok {
			return NewConstant(value, e.Width())
		}
		return e
	case e.IsLeaf():
		return e
	case e.Op.IsUnary():
		if x := e.RHS.Substitute(b); x != e.RHS {
			return math.Unary(e.Op, x)
		}
		return e
	default:
		x, y := e.LHS.Substitute(b), e.RHS.Substitute(b)
		if x != e.LHS || y != e.RHS {
			return math.Binary(x, e.Op, y)
		}
		return e
	}
}

// Eval substitutes bindings and collapses the result, returning false if any
// needed variable remains unbound.
func (e *Expression) Eval(b *Bindings) (uint64, bool) {
	return e.Substitute(b).Uint64()
}

// String renders the expression as an s-expression.
func (e *Expression) String() string {
	switch {
	case e.IsVariable():
		return fmt.Sprintf("(var %s %d)", e.Name, e.Width())
	case e.IsLeaf():
		value, ok := e.Uint64()
		if !ok {
			return fmt.Sprintf("(unknown %s)", e.Value)
		}
		return fmt.Sprintf("(const %d %d)", value, e.Width())
	case e.Op.IsUnary():
		return fmt.Sprintf("(%s %s)", e.Op, e.RHS)
	default:
		return fmt.Sprintf("(%s %s %s)", e.Op, e.LHS, e.RHS)
	}
}

// Register identifies a machine register. It does not participate in the
// algebra directly: it aliases Expression, and the explicit resolution step
// is the only way a register meets an operator.
type Register struct {
	ID    int
	Width uint
}

// ResolveAlias returns the variable expression standing for the register.
func (r Register) ResolveAlias() *Expression {
	return NewVariable(fmt.Sprintf("r%d", r.ID), r.Width)
}

// assert panics if condition is false.
func assert(condition bool, format string, args ...interface{}) {
	if !condition {
		panic(fmt.Sprintf("assert: "+format, args...))
	}
}
