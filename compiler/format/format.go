package format

import (
	"context"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/slowlang/tinyc/compiler/ast"
)

// Format renders x as source text. x is *ast.Program, *ast.Func or ast.Expr.
// Nested binary operations are always parenthesized.
func Format(ctx context.Context, b []byte, x any) ([]byte, error) {
	return format(ctx, b, x, 0)
}

func format(ctx context.Context, b []byte, x any, d int) ([]byte, error) {
	switch x := x.(type) {
	case *ast.Program:
		return formatProgram(ctx, b, x, d)
	case *ast.Func:
		return formatFunc(ctx, b, x, d)
	case ast.Expr:
		return formatExpr(ctx, b, x, true)
	default:
		return nil, errors.New("unsupported type: %T", x)
	}
}

func formatProgram(ctx context.Context, b []byte, x *ast.Program, d int) (_ []byte, err error) {
	for i, f := range x.Funcs {
		if i != 0 {
			b = append(b, '\n')
		}

		b, err = formatFunc(ctx, b, f, d)
		if err != nil {
			return nil, errors.Wrap(err, "func %v", f.Name)
		}
	}

	return b, nil
}

func formatFunc(ctx context.Context, b []byte, x *ast.Func, d int) (_ []byte, err error) {
	b = app(b, d, "%v %v() {\n", x.Type, x.Name)

	for _, s := range x.Body {
		switch s := s.(type) {
		case ast.Return:
			if s.Value == nil {
				b = app(b, d+1, "return;\n")
				continue
			}

			b = app(b, d+1, "return ")

			b, err = formatExpr(ctx, b, s.Value, true)
			if err != nil {
				return nil, errors.Wrap(err, "return")
			}

			b = append(b, ";\n"...)
		default:
			return nil, errors.New("unsupported stmt: %T", s)
		}
	}

	b = app(b, d, "}\n")

	return b, nil
}

func formatExpr(ctx context.Context, b []byte, x ast.Expr, top bool) (_ []byte, err error) {
	switch x := x.(type) {
	case ast.IntLit:
		b = hfmt.Appendf(b, "%d", x.Value)
	case ast.Call:
		b = hfmt.Appendf(b, "%s()", x.Name)
	case ast.BinOp:
		if !top {
			b = append(b, '(')
		}

		b, err = formatExpr(ctx, b, x.Left, false)
		if err != nil {
			return nil, errors.Wrap(err, "left")
		}

		b = hfmt.Appendf(b, " %s ", x.Op)

		b, err = formatExpr(ctx, b, x.Right, false)
		if err != nil {
			return nil, errors.Wrap(err, "right")
		}

		if !top {
			b = append(b, ')')
		}
	default:
		return nil, errors.New("unsupported expr: %T", x)
	}

	return b, nil
}

func app(b []byte, d int, f string, args ...any) []byte {
	const tabs = "\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t"
	b = append(b, tabs[:d]...)
	b = hfmt.Appendf(b, f, args...)
	return b
}
