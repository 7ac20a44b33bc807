package math

// The operator catalogue. Every function here is a thin, uniform dispatch
// from an operator id and typed operands to the derived type's constructor;
// none of them evaluates anything itself. A derived type that satisfies
// Operable receives the whole surface at once.

// Unary constructs the result of a unary operator over x.
func Unary[T any, PT Operable[T]](op Operator, x *T) *T {
	assert(op.IsUnary(), "not a unary operator: %s", op)
	var out T
	PT(&out).SetUnary(op, x)
	return &out
}

// Binary constructs the result of a binary operator over x and y.
func Binary[T any, PT Operable[T]](x *T, op Operator, y *T) *T {
	assert(op.IsBinary(), "not a binary operator: %s", op)
	var out T
	PT(&out).SetBinary(x, op, y)
	return &out
}

// Unary operators.

// Not returns the bitwise complement of x.
func Not[T any, PT Operable[T]](x *T) *T { return Unary[T, PT](NOT, x) }

// Neg returns the two's complement negation of x.
func Neg[T any, PT Operable[T]](x *T) *T { return Unary[T, PT](NEG, x) }

// Popcount returns the number of set bits in x.
func Popcount[T any, PT Operable[T]](x *T) *T { return Unary[T, PT](POPCOUNT, x) }

// Mask returns the mask covering the width of x.
func Mask[T any, PT Operable[T]](x *T) *T { return Unary[T, PT](MASK, x) }

// BitCount returns the width of x in bits.
func BitCount[T any, PT Operable[T]](x *T) *T { return Unary[T, PT](BITCOUNT, x) }

// Arithmetic operators.

func Add[T any, PT Operable[T]](x, y *T) *T    { return Binary[T, PT](x, ADD, y) }
func Sub[T any, PT Operable[T]](x, y *T) *T    { return Binary[T, PT](x, SUB, y) }
func Mul[T any, PT Operable[T]](x, y *T) *T    { return Binary[T, PT](x, MUL, y) }
func MulHi[T any, PT Operable[T]](x, y *T) *T  { return Binary[T, PT](x, MULHI, y) }
func UMul[T any, PT Operable[T]](x, y *T) *T   { return Binary[T, PT](x, UMUL, y) }
func UMulHi[T any, PT Operable[T]](x, y *T) *T { return Binary[T, PT](x, UMULHI, y) }
func SDiv[T any, PT Operable[T]](x, y *T) *T   { return Binary[T, PT](x, SDIV, y) }
func SRem[T any, PT Operable[T]](x, y *T) *T   { return Binary[T, PT](x, SREM, y) }
func UDiv[T any, PT Operable[T]](x, y *T) *T   { return Binary[T, PT](x, UDIV, y) }
func URem[T any, PT Operable[T]](x, y *T) *T   { return Binary[T, PT](x, UREM, y) }

// Bitwise, shift and rotate operators.

func And[T any, PT Operable[T]](x, y *T) *T  { return Binary[T, PT](x, AND, y) }
func Or[T any, PT Operable[T]](x, y *T) *T   { return Binary[T, PT](x, OR, y) }
func Xor[T any, PT Operable[T]](x, y *T) *T  { return Binary[T, PT](x, XOR, y) }
func Shl[T any, PT Operable[T]](x, y *T) *T  { return Binary[T, PT](x, SHL, y) }
func Shr[T any, PT Operable[T]](x, y *T) *T  { return Binary[T, PT](x, SHR, y) }
func Rotl[T any, PT Operable[T]](x, y *T) *T { return Binary[T, PT](x, ROTL, y) }
func Rotr[T any, PT Operable[T]](x, y *T) *T { return Binary[T, PT](x, ROTR, y) }

// BitTest returns bit y of x as a boolean.
func BitTest[T any, PT Operable[T]](x, y *T) *T { return Binary[T, PT](x, BT, y) }

// Casts. The width operand must collapse to a fully-known value.

// ZExt resizes x to the width given by w, extending with zeros.
func ZExt[T any, PT Operable[T]](x, w *T) *T { return Binary[T, PT](x, ZEXT, w) }

// SExt resizes x to the width given by w, extending with the sign bit.
func SExt[T any, PT Operable[T]](x, w *T) *T { return Binary[T, PT](x, SEXT, w) }

// Comparison operators.

func Eq[T any, PT Operable[T]](x, y *T) *T  { return Binary[T, PT](x, EQ, y) }
func Ne[T any, PT Operable[T]](x, y *T) *T  { return Binary[T, PT](x, NE, y) }
func Slt[T any, PT Operable[T]](x, y *T) *T { return Binary[T, PT](x, SLT, y) }
func Sle[T any, PT Operable[T]](x, y *T) *T { return Binary[T, PT](x, SLE, y) }
func Sgt[T any, PT Operable[T]](x, y *T) *T { return Binary[T, PT](x, SGT, y) }
func Sge[T any, PT Operable[T]](x, y *T) *T { return Binary[T, PT](x, SGE, y) }
func Ult[T any, PT Operable[T]](x, y *T) *T { return Binary[T, PT](x, ULT, y) }
func Ule[T any, PT Operable[T]](x, y *T) *T { return Binary[T, PT](x, ULE, y) }
func Ugt[T any, PT Operable[T]](x, y *T) *T { return Binary[T, PT](x, UGT, y) }
func Uge[T any, PT Operable[T]](x, y *T) *T { return Binary[T, PT](x, UGE, y) }

// Selection operators.

// Select returns y if the condition x holds, and zero otherwise.
func Select[T any, PT Operable[T]](x, y *T) *T { return Binary[T, PT](x, SELECT, y) }

func Max[T any, PT Operable[T]](x, y *T) *T  { return Binary[T, PT](x, MAX, y) }
func Min[T any, PT Operable[T]](x, y *T) *T  { return Binary[T, PT](x, MIN, y) }
func UMax[T any, PT Operable[T]](x, y *T) *T { return Binary[T, PT](x, UMAX, y) }
func UMin[T any, PT Operable[T]](x, y *T) *T { return Binary[T, PT](x, UMIN, y) }
