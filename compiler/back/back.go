package back

import (
	"context"
	"fmt"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/slowlang/tinyc/compiler/asm"
	"github.com/slowlang/tinyc/compiler/asm/arm64"
	"github.com/slowlang/tinyc/compiler/ast"
)

type (
	// Compiler lowers analyzed programs to assembly.
	// It does no type checking: the program must have passed analyze.
	Compiler struct {
		Target arm64.Target
	}

	// InternalError means an earlier stage let through something codegen can't handle.
	InternalError struct {
		Node ast.Node
		At   loc.PC
	}
)

// Expressions are evaluated with two registers only.
// The right operand of a binary operation is spilled to secondary once,
// so an expression nested deeper on both sides at the same time would clobber it.
const (
	primary   = asm.R0
	secondary = asm.R1
)

var arith = map[ast.Op]asm.ArithOp{
	ast.Add: asm.Add,
	ast.Sub: asm.Sub,
	ast.Mul: asm.Mul,
	ast.Div: asm.Div,
}

func New(t arm64.Target) *Compiler {
	return &Compiler{Target: t}
}

// CompileProgram appends assembly for every function of p in declaration order.
func (c *Compiler) CompileProgram(ctx context.Context, b []byte, p *ast.Program) (_ []byte, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "codegen", "funcs", len(p.Funcs))
	defer tr.Finish("err", &err)

	for _, f := range p.Funcs {
		af, err := c.Lower(ctx, f)
		if err != nil {
			return nil, errors.Wrap(err, "func %v", f.Name)
		}

		b, err = c.Target.AppendFunc(b, af)
		if err != nil {
			return nil, errors.Wrap(err, "func %v", f.Name)
		}
	}

	return b, nil
}

func (c *Compiler) Lower(ctx context.Context, f *ast.Func) (_ asm.Func, err error) {
	af := asm.Func{Name: f.Name}

	for _, s := range f.Body {
		af.Body, err = c.lowerStmt(ctx, af.Body, s)
		if err != nil {
			return af, err
		}
	}

	tlog.V("codegen").Printw("lowered func", "name", f.Name, "instrs", len(af.Body))

	return af, nil
}

func (c *Compiler) lowerStmt(ctx context.Context, code []asm.Instr, s ast.Stmt) (_ []asm.Instr, err error) {
	switch s := s.(type) {
	case ast.Return:
		if s.Value != nil {
			code, err = c.lowerExpr(ctx, code, s.Value)
			if err != nil {
				return nil, errors.Wrap(err, "return")
			}
		}

		code = append(code, asm.Ret{})
	default:
		return nil, NewInternal(s)
	}

	return code, nil
}

// lowerExpr leaves the value of x in primary.
func (c *Compiler) lowerExpr(ctx context.Context, code []asm.Instr, x ast.Expr) (_ []asm.Instr, err error) {
	switch x := x.(type) {
	case ast.IntLit:
		code = append(code, asm.MovImm{Out: [1]asm.Reg{primary}, Word: x.Value})
	case ast.Call:
		// callee result comes back in primary
		code = append(code,
			asm.PushFrame{},
			asm.BL{Label: x.Name},
			asm.PopFrame{},
		)
	case ast.BinOp:
		op, ok := arith[x.Op]
		if !ok {
			return nil, NewInternal(x)
		}

		code, err = c.lowerExpr(ctx, code, x.Right)
		if err != nil {
			return nil, errors.Wrap(err, "right")
		}

		code = append(code, asm.Mov{Out: [1]asm.Reg{secondary}, In: [1]asm.Reg{primary}})

		if _, ok := x.Left.(ast.IntLit); !ok {
			tlog.SpanFromContext(ctx).Printw("left operand may clobber secondary register", "pos", x.Pos, "op", x.Op)
		}

		code, err = c.lowerExpr(ctx, code, x.Left)
		if err != nil {
			return nil, errors.Wrap(err, "left")
		}

		code = append(code, asm.Arith{
			Op:  op,
			Out: [1]asm.Reg{primary},
			In:  [2]asm.Reg{primary, secondary},
		})
	default:
		return nil, NewInternal(x)
	}

	return code, nil
}

func NewInternal(x ast.Node) InternalError {
	return InternalError{
		Node: x,
		At:   loc.Caller(1),
	}
}

func (e InternalError) Error() string {
	return fmt.Sprintf("internal error: unsupported node %T at %v", e.Node, e.At)
}
