package parse

import (
	"context"

	"tlog.app/go/tlog"

	"github.com/slowlang/tinyc/compiler/ast"
	"github.com/slowlang/tinyc/compiler/token"
)

type (
	// stackOp is either a binary operator or an open paren marker (empty Op).
	stackOp struct {
		Op  ast.Op
		Pos token.Pos

		depth int // operands on the stack when the marker was pushed
	}

	shunter struct {
		args []ast.Expr
		ops  []stackOp

		// first empty parentheses, reported only if the parens are balanced
		empty    bool
		emptyPos token.Pos
	}
)

// parseExpr reads an expression with the shunting-yard algorithm.
// It stops at the first token which can't continue the expression.
// Nil expression with nil error means there was no expression at all.
func (p *Parser) parseExpr(ctx context.Context, st int) (x ast.Expr, i int, err error) {
	var s shunter

	i = st

loop:
	for {
		tk := p.tok(i)

		switch tk.Kind {
		case token.Int:
			s.push(ast.IntLit{
				Base:  ast.Base{Pos: tk.Pos},
				Value: tk.Value,
			})

			i++
		case token.Ident:
			x, i, err = p.parseCall(ctx, i)
			if err != nil {
				return nil, i, err
			}

			s.push(x)
		case token.LParen:
			s.ops = append(s.ops, stackOp{Pos: tk.Pos, depth: len(s.args)})

			i++
		case token.RParen:
			err = s.close(tk.Pos)
			if err != nil {
				return nil, i, err
			}

			i++
		default:
			if !tk.Kind.IsOperator() {
				break loop
			}

			op, _ := ast.OpOf(tk.Kind)

			err = s.operator(op, tk.Pos)
			if err != nil {
				return nil, i, err
			}

			i++
		}
	}

	x, err = s.finish()
	if err != nil {
		return nil, i, err
	}

	return x, i, nil
}

func (p *Parser) parseCall(ctx context.Context, st int) (x ast.Expr, i int, err error) {
	tk, i := p.next(st)

	_, i, err = p.expect(i, token.LParen)
	if err != nil {
		return nil, i, err
	}

	_, i, err = p.expect(i, token.RParen)
	if err != nil {
		return nil, i, err
	}

	return ast.Call{
		Base: ast.Base{Pos: tk.Pos},
		Name: tk.Text,
	}, i, nil
}

func (s *shunter) push(x ast.Expr) {
	tlog.V("shunt").Printw("push operand", "x", x, "depth", len(s.args))

	s.args = append(s.args, x)
}

func (s *shunter) operator(op ast.Op, pos token.Pos) error {
	for len(s.ops) != 0 {
		top := s.ops[len(s.ops)-1]
		if top.marker() || top.Op.Prec() < op.Prec() {
			break
		}

		s.ops = s.ops[:len(s.ops)-1]

		if err := s.apply(top); err != nil {
			return err
		}
	}

	s.ops = append(s.ops, stackOp{Op: op, Pos: pos})

	return nil
}

func (s *shunter) close(pos token.Pos) error {
	for {
		if len(s.ops) == 0 {
			return NewMismatchedParens(pos)
		}

		top := s.ops[len(s.ops)-1]
		s.ops = s.ops[:len(s.ops)-1]

		if !top.marker() {
			if err := s.apply(top); err != nil {
				return err
			}

			continue
		}

		switch n := len(s.args) - top.depth; {
		case n == 0 && !s.empty:
			s.empty, s.emptyPos = true, top.Pos
		case n > 1:
			return NewInvalidExpression(s.args[top.depth+1].Position(), "too many operands")
		}

		return nil
	}
}

func (s *shunter) finish() (ast.Expr, error) {
	for len(s.ops) != 0 {
		top := s.ops[len(s.ops)-1]
		s.ops = s.ops[:len(s.ops)-1]

		if top.marker() {
			return nil, NewMismatchedParens(top.Pos)
		}

		if err := s.apply(top); err != nil {
			return nil, err
		}
	}

	if s.empty {
		return nil, NewInvalidExpression(s.emptyPos, "empty parentheses")
	}

	switch len(s.args) {
	case 0:
		return nil, nil
	case 1:
		return s.args[0], nil
	default:
		return nil, NewInvalidExpression(s.args[1].Position(), "too many operands")
	}
}

// apply replaces two top operands with the binary operation over them.
// Operands below the innermost open marker are out of reach.
func (s *shunter) apply(o stackOp) error {
	n := len(s.args)

	if n-s.floor() < 2 {
		return NewInvalidExpression(o.Pos, "not enough operands")
	}

	x := ast.BinOp{
		Base:  ast.Base{Pos: o.Pos},
		Op:    o.Op,
		Left:  s.args[n-2],
		Right: s.args[n-1],
	}

	tlog.V("shunt").Printw("apply operator", "op", o.Op, "depth", n)

	s.args = append(s.args[:n-2], x)

	return nil
}

func (s *shunter) floor() int {
	for j := len(s.ops) - 1; j >= 0; j-- {
		if s.ops[j].marker() {
			return s.ops[j].depth
		}
	}

	return 0
}

func (o stackOp) marker() bool { return o.Op == "" }
