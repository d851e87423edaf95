package analyze

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/tinyc/compiler/ast"
	"github.com/slowlang/tinyc/compiler/tp"
)

type (
	Analyzer struct {
		syms *SymbolTable
	}
)

// Analyze type checks the program. It's the same as New().Analyze.
func Analyze(ctx context.Context, p *ast.Program) error {
	return New().Analyze(ctx, p)
}

func New() *Analyzer {
	return &Analyzer{
		syms: NewSymbolTable(),
	}
}

func (a *Analyzer) Symbols() *SymbolTable { return a.syms }

func (a *Analyzer) Analyze(ctx context.Context, p *ast.Program) (err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "analyze", "funcs", len(p.Funcs))
	defer tr.Finish("err", &err)

	for _, f := range p.Funcs {
		err = a.analyzeFunc(ctx, f)
		if err != nil {
			return errors.Wrap(err, "func %v", f.Name)
		}
	}

	return nil
}

func (a *Analyzer) analyzeFunc(ctx context.Context, f *ast.Func) (err error) {
	if _, ok := a.syms.LookupLocal(f.Name); ok {
		return NewRedefinedSymbol(f.Name, f.Pos)
	}

	// before the body so the function can call itself
	a.syms.Insert(f.Name, Symbol{Kind: Function, Type: f.Type})

	a.syms.Enter()
	defer a.syms.Exit()

	for _, s := range f.Body {
		err = a.analyzeStmt(ctx, f, s)
		if err != nil {
			return err
		}
	}

	tlog.SpanFromContext(ctx).Printw("func", "name", f.Name, "type", f.Type)

	return nil
}

func (a *Analyzer) analyzeStmt(ctx context.Context, f *ast.Func, s ast.Stmt) error {
	switch s := s.(type) {
	case ast.Return:
		t, err := a.exprType(ctx, s.Value)
		if err != nil {
			return err
		}

		if t != f.Type {
			return NewReturnTypeMismatch(f.Type, t, s.Pos)
		}

		return nil
	default:
		return NewUnsupportedASTNode(s)
	}
}

// exprType computes the static type of x. Nil x is a missing expression, which is Void.
func (a *Analyzer) exprType(ctx context.Context, x ast.Expr) (tp.Type, error) {
	switch x := x.(type) {
	case nil:
		return tp.Void, nil
	case ast.IntLit:
		return tp.Int, nil
	case ast.Call:
		sym, ok := a.syms.Lookup(x.Name)
		if !ok {
			return 0, NewUndefinedSymbol(x.Name, x.Pos)
		}

		return sym.Type, nil
	case ast.BinOp:
		l, err := a.exprType(ctx, x.Left)
		if err != nil {
			return 0, err
		}

		r, err := a.exprType(ctx, x.Right)
		if err != nil {
			return 0, err
		}

		if l != r {
			return 0, NewTypeMismatch(l, r, x.Pos)
		}

		return l, nil
	default:
		return 0, NewUnsupportedASTNode(x)
	}
}
