package math

import "fmt"

// Operator identifies an operation in the algebra. The set is closed: no
// operator outside this enumeration can be dispatched through the generic
// construction mechanism.
type Operator int

// Operator identifiers.
const (
	INVALID = Operator(iota)

	unary_op_begin
	NOT      // bitwise complement
	NEG      // two's complement negation
	POPCOUNT // number of set bits
	MASK     // mask covering the operand width
	BITCOUNT // operand width in bits
	unary_op_end

	arithmetic_op_begin
	ADD
	SUB
	MUL
	MULHI
	UMUL
	UMULHI
	SDIV
	SREM
	UDIV
	UREM
	arithmetic_op_end

	bitwise_op_begin
	AND
	OR
	XOR
	SHL
	SHR
	ROTL
	ROTR
	BT // bit test
	bitwise_op_end

	cast_op_begin
	ZEXT // resize with zero extension
	SEXT // resize with sign extension
	cast_op_end

	compare_op_begin
	EQ
	NE
	SLT
	SLE
	SGT
	SGE
	ULT
	ULE
	UGT
	UGE
	compare_op_end

	select_op_begin
	SELECT // rhs if condition, else zero
	MAX
	MIN
	UMAX
	UMIN
	select_op_end
)

// Result width rules. Most operators produce a value as wide as their widest
// operand; the exceptions are encoded here so that dispatch stays data-driven.
type resultRule int

const (
	resultWidest resultRule = iota // width of the widest operand
	resultLHS                      // width of the left operand (shifts, rotates)
	resultRHS                      // width of the right operand (select)
	resultBool                     // single bit
	resultByte                     // 8 bits (bit counts)
	resultCast                     // collapsed right operand value
)

// OperatorDesc describes a single operator.
type OperatorDesc struct {
	Name     string // canonical name, also used by the surface syntax
	Symbol   string // infix symbol where one exists, informational
	Operands int    // 1 or 2
	Signed   bool   // operands are interpreted as two's complement
	result   resultRule
}

var operators = [...]OperatorDesc{
	NOT:      {Name: "not", Symbol: "~", Operands: 1},
	NEG:      {Name: "neg", Symbol: "-", Operands: 1, Signed: true},
	POPCOUNT: {Name: "popcount", Operands: 1, result: resultByte},
	MASK:     {Name: "mask", Operands: 1},
	BITCOUNT: {Name: "bitcount", Operands: 1, result: resultByte},

	ADD:    {Name: "add", Symbol: "+", Operands: 2},
	SUB:    {Name: "sub", Symbol: "-", Operands: 2},
	MUL:    {Name: "mul", Symbol: "*", Operands: 2, Signed: true},
	MULHI:  {Name: "mulhi", Operands: 2, Signed: true},
	UMUL:   {Name: "umul", Operands: 2},
	UMULHI: {Name: "umulhi", Operands: 2},
	SDIV:   {Name: "sdiv", Symbol: "/", Operands: 2, Signed: true},
	SREM:   {Name: "srem", Symbol: "%", Operands: 2, Signed: true},
	UDIV:   {Name: "udiv", Operands: 2},
	UREM:   {Name: "urem", Operands: 2},

	AND:  {Name: "and", Symbol: "&", Operands: 2},
	OR:   {Name: "or", Symbol: "|", Operands: 2},
	XOR:  {Name: "xor", Symbol: "^", Operands: 2},
	SHL:  {Name: "shl", Symbol: "<<", Operands: 2, result: resultLHS},
	SHR:  {Name: "shr", Symbol: ">>", Operands: 2, result: resultLHS},
	ROTL: {Name: "rotl", Operands: 2, result: resultLHS},
	ROTR: {Name: "rotr", Operands: 2, result: resultLHS},
	BT:   {Name: "bt", Operands: 2, result: resultBool},

	ZEXT: {Name: "zext", Operands: 2, result: resultCast},
	SEXT: {Name: "sext", Operands: 2, Signed: true, result: resultCast},

	EQ:  {Name: "eq", Symbol: "==", Operands: 2, result: resultBool},
	NE:  {Name: "ne", Symbol: "!=", Operands: 2, result: resultBool},
	SLT: {Name: "slt", Symbol: "<", Operands: 2, Signed: true, result: resultBool},
	SLE: {Name: "sle", Symbol: "<=", Operands: 2, Signed: true, result: resultBool},
	SGT: {Name: "sgt", Symbol: ">", Operands: 2, Signed: true, result: resultBool},
	SGE: {Name: "sge", Symbol: ">=", Operands: 2, Signed: true, result: resultBool},
	ULT: {Name: "ult", Operands: 2, result: resultBool},
	ULE: {Name: "ule", Operands: 2, result: resultBool},
	UGT: {Name: "ugt", Operands: 2, result: resultBool},
	UGE: {Name: "uge", Operands: 2, result: resultBool},

	SELECT: {Name: "select", Operands: 2, result: resultRHS},
	MAX:    {Name: "max", Operands: 2, Signed: true},
	MIN:    {Name: "min", Operands: 2, Signed: true},
	UMAX:   {Name: "umax", Operands: 2},
	UMIN:   {Name: "umin", Operands: 2},
}

// Desc returns the descriptor for the operator.
func (op Operator) Desc() OperatorDesc {
	assert(op.Valid(), "invalid operator: %d", op)
	return operators[op]
}

// Valid returns true if op identifies an operator in the catalogue.
func (op Operator) Valid() bool {
	return op > INVALID && op < Operator(len(operators)) && operators[op].Operands != 0
}

// String returns the canonical name of the operator.
func (op Operator) String() string {
	if op.Valid() {
		return operators[op].Name
	}
	return fmt.Sprintf("Operator<%d>", int(op))
}

// IsUnary returns true if op takes a single operand.
func (op Operator) IsUnary() bool {
	return op > unary_op_begin && op < unary_op_end
}

// IsBinary returns true if op takes two operands.
func (op Operator) IsBinary() bool {
	return op.Valid() && !op.IsUnary()
}

// IsArithmetic returns true if op is an arithmetic operator.
func (op Operator) IsArithmetic() bool {
	return op > arithmetic_op_begin && op < arithmetic_op_end
}

// IsBitwise returns true if op is a bitwise, shift or rotate operator.
func (op Operator) IsBitwise() bool {
	return op > bitwise_op_begin && op < bitwise_op_end
}

// IsCast returns true if op resizes its operand.
func (op Operator) IsCast() bool {
	return op > cast_op_begin && op < cast_op_end
}

// IsCompare returns true if op is a comparison operator.
func (op Operator) IsCompare() bool {
	return op > compare_op_begin && op < compare_op_end
}

// IsSigned returns true if op interprets its operands as two's complement.
func (op Operator) IsSigned() bool {
	return op.Valid() && operators[op].Signed
}

// ParseOperator returns the operator with the given canonical name.
func ParseOperator(name string) (Operator, bool) {
	for op, desc := range operators {
		if desc.Operands != 0 && desc.Name == name {
			return Operator(op), true
		}
	}
	return INVALID, false
}
