package llgen

import (
	"context"
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/tinyc/compiler/ast"
	"github.com/slowlang/tinyc/compiler/tp"
)

type (
	// Generator builds one LLVM module per program.
	// Like the assembly backend it relies on the program being analyzed.
	Generator struct {
		mod   *ir.Module
		funcs map[string]*ir.Func
	}

	UnsupportedNodeError struct {
		Node ast.Node
	}
)

func Generate(ctx context.Context, p *ast.Program) (*ir.Module, error) {
	return New().Generate(ctx, p)
}

func New() *Generator {
	return &Generator{
		mod:   ir.NewModule(),
		funcs: make(map[string]*ir.Func),
	}
}

func (g *Generator) Generate(ctx context.Context, p *ast.Program) (_ *ir.Module, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "llgen", "funcs", len(p.Funcs))
	defer tr.Finish("err", &err)

	for _, f := range p.Funcs {
		err = g.genFunc(ctx, f)
		if err != nil {
			return nil, errors.Wrap(err, "func %v", f.Name)
		}
	}

	return g.mod, nil
}

func (g *Generator) genFunc(ctx context.Context, f *ast.Func) error {
	lf := g.mod.NewFunc(f.Name, convType(f.Type))
	g.funcs[f.Name] = lf

	b := lf.NewBlock("entry")

	for _, s := range f.Body {
		switch s := s.(type) {
		case ast.Return:
			if s.Value == nil {
				b.NewRet(nil)
				break
			}

			v, err := g.genExpr(ctx, b, s.Value)
			if err != nil {
				return errors.Wrap(err, "return")
			}

			if f.Type == tp.Void {
				// a void call: keep it for the side effects
				b.NewRet(nil)
			} else {
				b.NewRet(v)
			}
		default:
			return NewUnsupportedNode(s)
		}

		// the rest of the body is dead code
		if b.Term != nil {
			break
		}
	}

	if b.Term == nil {
		if f.Type == tp.Void {
			b.NewRet(nil)
		} else {
			b.NewUnreachable()
		}
	}

	return nil
}

func (g *Generator) genExpr(ctx context.Context, b *ir.Block, x ast.Expr) (value.Value, error) {
	switch x := x.(type) {
	case ast.IntLit:
		return constant.NewInt(intType, int64(x.Value)), nil
	case ast.Call:
		callee, ok := g.funcs[x.Name]
		if !ok {
			return nil, NewUnsupportedNode(x)
		}

		return b.NewCall(callee), nil
	case ast.BinOp:
		l, err := g.genExpr(ctx, b, x.Left)
		if err != nil {
			return nil, errors.Wrap(err, "left")
		}

		r, err := g.genExpr(ctx, b, x.Right)
		if err != nil {
			return nil, errors.Wrap(err, "right")
		}

		// void arithmetic type checks but has no IR form
		if l.Type().Equal(types.Void) {
			return nil, NewUnsupportedNode(x)
		}

		switch x.Op {
		case ast.Add:
			return b.NewAdd(l, r), nil
		case ast.Sub:
			return b.NewSub(l, r), nil
		case ast.Mul:
			return b.NewMul(l, r), nil
		case ast.Div:
			return b.NewSDiv(l, r), nil
		}

		return nil, NewUnsupportedNode(x)
	default:
		return nil, NewUnsupportedNode(x)
	}
}

// intType matches the int width the assembly backend computes in.
var intType = types.NewInt(uint64(tp.Int.Size()) * 8)

func convType(t tp.Type) types.Type {
	if t == tp.Int {
		return intType
	}

	return types.Void
}

func NewUnsupportedNode(x ast.Node) UnsupportedNodeError {
	return UnsupportedNodeError{Node: x}
}

func (e UnsupportedNodeError) Error() string {
	return fmt.Sprintf("unsupported node: %T", e.Node)
}
