// vtil-math evaluates bit-precise symbolic expressions from the command line.
//
// Expressions use an s-expression form:
//
//	vtil-math eval '(add (var x 8) (const 3 8))' --bind x=5
//	vtil-math eval '(and (reg 0 64) 0xff)' --dump
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jilvan1234/VTIL-Common/math"
	"github.com/jilvan1234/VTIL-Common/sexp"
	"github.com/jilvan1234/VTIL-Common/symbolic"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "vtil-math",
	Short:        "Bit-precise symbolic expression toolbox.",
	SilenceUsage: true,
}

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Parse and evaluate a symbolic expression.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEval,
}

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List the operator catalogue.",
	Run:   runOps,
}

func init() {
	evalCmd.Flags().StringArray("bind", nil, "bind a variable, e.g. --bind x=5")
	evalCmd.Flags().Bool("dump", false, "dump the evaluated expression tree")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(opsCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(log.DebugLevel)
	}

	form, err := sexp.Parse(args[0])
	if err != nil {
		return err
	}
	expr, err := translate(form)
	if err != nil {
		return err
	}
	log.Debugf("parsed expression: %s", expr)

	binds, _ := cmd.Flags().GetStringArray("bind")
	bindings, err := parseBindings(binds)
	if err != nil {
		return err
	}

	result := expr.Substitute(bindings)
	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		spew.Dump(result)
	}

	fmt.Println(result)
	if value, ok := result.Uint64(); ok {
		fmt.Printf("= %d (0x%x) width=%d\n", value, value, result.Width())
	} else {
		fmt.Printf("= symbolic, known bits %s\n", result.Value)
	}
	return nil
}

func runOps(cmd *cobra.Command, args []string) {
	for op := math.Operator(1); ; op++ {
		if !op.Valid() {
			if op > math.UMIN {
				return
			}
			continue
		}
		desc := op.Desc()
		fmt.Printf("%-10s operands=%d signed=%-5v %s\n", desc.Name, desc.Operands, desc.Signed, desc.Symbol)
	}
}

// parseBindings parses name=value flags into a binding set. Values accept any
// base understood by strconv (0x.., 0b.., decimal).
func parseBindings(binds []string) (*symbolic.Bindings, error) {
	bindings := symbolic.NewBindings()
	for _, bind := range binds {
		name, value, ok := strings.Cut(bind, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid binding %q, expected name=value", bind)
		}
		v, err := strconv.ParseUint(value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid binding %q: %w", bind, err)
		}
		bindings = bindings.Bind(name, v)
	}
	return bindings, nil
}

// translate converts a parsed s-expression into a symbolic expression. Bare
// integers become 64-bit constants; (const v w), (var name w) and (reg id w)
// introduce leaves; every other head must name a catalogue operator.
func translate(form sexp.SExp) (*symbolic.Expression, error) {
	switch form := form.(type) {
	case sexp.Symbol:
		value, err := strconv.ParseUint(string(form), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("expected integer literal, got %q", form)
		}
		return symbolic.NewConstant(value, math.Width64), nil

	case sexp.List:
		if len(form) == 0 {
			return nil, fmt.Errorf("empty expression")
		}
		head, ok := form[0].(sexp.Symbol)
		if !ok {
			return nil, fmt.Errorf("expression head must be a symbol: %s", form)
		}

		switch head {
		case "const":
			if len(form) != 3 {
				return nil, fmt.Errorf("const expects value and width: %s", form)
			}
			value, err := parseLiteral(form[1])
			if err != nil {
				return nil, err
			}
			width, err := parseWidth(form[2])
			if err != nil {
				return nil, err
			}
			return symbolic.NewConstant(value, width), nil

		case "var":
			if len(form) != 3 {
				return nil, fmt.Errorf("var expects name and width: %s", form)
			}
			name, ok := form[1].(sexp.Symbol)
			if !ok {
				return nil, fmt.Errorf("var name must be a symbol: %s", form)
			}
			width, err := parseWidth(form[2])
			if err != nil {
				return nil, err
			}
			return symbolic.NewVariable(string(name), width), nil

		case "reg":
			if len(form) != 3 {
				return nil, fmt.Errorf("reg expects id and width: %s", form)
			}
			id, err := parseLiteral(form[1])
			if err != nil {
				return nil, err
			}
			width, err := parseWidth(form[2])
			if err != nil {
				return nil, err
			}
			reg := symbolic.Register{ID: int(id), Width: width}
			return math.Resolve[symbolic.Expression](reg), nil
		}

		op, ok := math.ParseOperator(string(head))
		if !ok {
			return nil, fmt.Errorf("unknown operator %q", head)
		}
		if len(form)-1 != op.Desc().Operands {
			return nil, fmt.Errorf("%s expects %d operand(s), got %d", op, op.Desc().Operands, len(form)-1)
		}

		operands := make([]*symbolic.Expression, 0, len(form)-1)
		for _, arg := range form[1:] {
			operand, err := translate(arg)
			if err != nil {
				return nil, err
			}
			operands = append(operands, operand)
		}
		if op.IsUnary() {
			return math.Unary(op, operands[0]), nil
		}
		return math.Binary(operands[0], op, operands[1]), nil
	}
	panic("unreachable")
}

func parseLiteral(form sexp.SExp) (uint64, error) {
	s, ok := form.(sexp.Symbol)
	if !ok {
		return 0, fmt.Errorf("expected integer literal, got %s", form)
	}
	value, err := strconv.ParseUint(string(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q", s)
	}
	return value, nil
}

func parseWidth(form sexp.SExp) (uint, error) {
	width, err := parseLiteral(form)
	if err != nil {
		return 0, err
	}
	if width < 1 || width > math.WidthMax {
		return 0, fmt.Errorf("width out of range: %d", width)
	}
	return uint(width), nil
}
