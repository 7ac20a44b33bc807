package math

// Integer is the set of native integer types that may be promoted into the
// algebra.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Operand holds one bit-precise value and is embedded by every derived
// operand type. It supplies the value, its read accessors and the constant
// constructor; how an operation is folded or recorded is entirely up to the
// embedding type.
type Operand struct {
	Value BitVector
}

// NewOperand returns a fully-known operand holding v at its natural width.
func NewOperand[V Integer](v V) Operand {
	return NewOperandWidth(v, bitsOf[V]())
}

// NewOperandWidth returns a fully-known operand holding v at the given width.
func NewOperandWidth[V Integer](v V, width uint) Operand {
	return Operand{Value: NewBitVector(uint64(v), width)}
}

// SetConstant initializes the operand to a fully-known constant. Derived
// types inherit this as their integer constructor.
func (o *Operand) SetConstant(value uint64, width uint) {
	o.Value = NewBitVector(value, width)
}

// Width returns the bit width of the held value.
func (o *Operand) Width() uint { return o.Value.Width() }

// KnownMask returns the mask of bits whose value is known.
func (o *Operand) KnownMask() uint64 { return o.Value.KnownMask() }

// UnknownMask returns the mask of bits whose value is unknown.
func (o *Operand) UnknownMask() uint64 { return o.Value.UnknownMask() }

// KnownOnes returns the mask of bits known to be one.
func (o *Operand) KnownOnes() uint64 { return o.Value.KnownOnes() }

// KnownZeros returns the mask of bits known to be zero.
func (o *Operand) KnownZeros() uint64 { return o.Value.KnownZeros() }

// IsConstant returns true if every bit of the held value is known.
func (o *Operand) IsConstant() bool { return o.Value.IsKnown() }

// Uint64 returns the held value as an unsigned integer if fully known.
func (o *Operand) Uint64() (uint64, bool) { return o.Value.Uint64() }

// Int64 returns the held value sign-extended to 64 bits if fully known.
func (o *Operand) Int64() (int64, bool) { return o.Value.Int64() }

// Collapse returns the operand's value reinterpreted as the integer type V.
// Failure to collapse is not an error: it is the normal outcome for any
// operand with unknown bits, and callers deciding between folding and
// symbolizing must handle it.
func Collapse[V Integer](o *Operand) (V, bool) {
	return As[V](o.Value)
}

// Resize resizes the held value, optionally sign-extending. The base wrapper
// can only resize fully-known values; a derived type that must resize a value
// with unknown bits has to override this with its own bit-precise logic.
func (o *Operand) Resize(width uint, signExtend bool) {
	assert(o.IsConstant(), "resize of non-constant operand")
	o.Value = o.Value.Resize(width, signExtend)
}

// Operable is the capability a derived operand type must provide to receive
// the operator surface. It is satisfied by a pointer to any type that embeds
// Operand (which supplies SetConstant) and implements the two operator
// constructors. The constructors alone decide whether to fold the operation
// into a known value or record it symbolically.
//
// Because every catalogue function is generic over a single such type, two
// distinct derived operand types can never meet under one operator: the
// ill-typed combination fails to compile, and the result type of a legal
// combination is the operand type itself.
type Operable[T any] interface {
	*T
	SetConstant(value uint64, width uint)
	SetUnary(op Operator, x *T)
	SetBinary(x *T, op Operator, y *T)
}

// Const promotes a native integer into the operand type T at the integer's
// natural width. Promotion is always explicit; there is no implicit
// conversion anywhere in the algebra.
func Const[T any, PT Operable[T], V Integer](v V) *T {
	return ConstWidth[T, PT](v, bitsOf[V]())
}

// ConstWidth promotes a native integer into the operand type T at an explicit
// width.
func ConstWidth[T any, PT Operable[T], V Integer](v V, width uint) *T {
	var out T
	PT(&out).SetConstant(uint64(v), width)
	return &out
}

// Alias is implemented by types that stand in for a canonical operand type.
// Resolving is the explicit conversion step required before a value of an
// aliasing type can participate in the algebra.
type Alias[T any] interface {
	ResolveAlias() *T
}

// Resolve converts an aliasing value to its canonical operand type.
func Resolve[T any](v Alias[T]) *T {
	return v.ResolveAlias()
}
