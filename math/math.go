// Package math implements the generic operand algebra used by the symbolic
// intermediate representation: bit-precise values whose individual bits may
// each be known-0, known-1 or unknown, and a closed operator catalogue that
// uniformly folds or symbolizes operations over any derived operand type.
package math

import (
	"fmt"
)

// Standard widths.
const (
	WidthBool = 1
	Width8    = 8
	Width16   = 16
	Width32   = 32
	Width64   = 64

	// WidthMax is the largest representable bit vector width.
	WidthMax = 64
)

// assert panics if condition is false.
func assert(condition bool, format string, args ...interface{}) {
	if !condition {
		panic(fmt.Sprintf("assert: "+format, args...))
	}
}
