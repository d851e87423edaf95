package parse

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/tinyc/compiler/ast"
	"github.com/slowlang/tinyc/compiler/token"
)

type (
	Parser struct {
		toks []token.Token
	}
)

func Parse(ctx context.Context, toks []token.Token) (*ast.Program, error) {
	return New(toks).Parse(ctx)
}

func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

func (p *Parser) Parse(ctx context.Context) (x *ast.Program, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "parse", "tokens", len(p.toks))
	defer tr.Finish("err", &err)

	x = &ast.Program{}

	for i := 0; p.tok(i).Kind != token.EOF; {
		var f *ast.Func

		f, i, err = p.parseFunc(ctx, i)
		if err != nil {
			return nil, err
		}

		tr.Printw("func", "name", f.Name, "type", f.Type, "stmts", len(f.Body))

		x.Funcs = append(x.Funcs, f)
	}

	return x, nil
}

func (p *Parser) parseFunc(ctx context.Context, st int) (f *ast.Func, i int, err error) {
	tk, i := p.next(st)
	if tk.Kind != token.Type {
		return nil, st, NewUnexpected("type", tk)
	}

	f = &ast.Func{
		Base: ast.Base{Pos: tk.Pos},
		Type: tk.Type,
	}

	tk, i, err = p.expect(i, token.Ident)
	if err != nil {
		return nil, i, err
	}

	f.Name = tk.Text

	for _, k := range []token.Kind{token.LParen, token.RParen, token.LBrace} {
		_, i, err = p.expect(i, k)
		if err != nil {
			return nil, i, errors.Wrap(err, "func %v", f.Name)
		}
	}

	f.Body, i, err = p.parseBody(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "func %v", f.Name)
	}

	return f, i, nil
}

// parseBody parses statements up to and including the closing brace.
func (p *Parser) parseBody(ctx context.Context, st int) (body []ast.Stmt, i int, err error) {
	i = st

	for {
		tk := p.tok(i)

		switch tk.Kind {
		case token.RBrace:
			return body, i + 1, nil
		case token.Return:
			var s ast.Stmt

			s, i, err = p.parseReturn(ctx, i)
			if err != nil {
				return nil, i, err
			}

			body = append(body, s)
		case token.EOF:
			return nil, i, NewUnexpectedEOF(token.RBrace.String())
		default:
			return nil, i, NewUnimplemented(tk)
		}
	}
}

func (p *Parser) parseReturn(ctx context.Context, st int) (x ast.Stmt, i int, err error) {
	tk, i := p.next(st)

	r := ast.Return{Base: ast.Base{Pos: tk.Pos}}

	r.Value, i, err = p.parseExpr(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "return")
	}

	_, i, err = p.expect(i, token.Semi)
	if err != nil {
		return nil, i, errors.Wrap(err, "return")
	}

	return r, i, nil
}

// tok returns the token at i or an EOF token placed right after the last one.
func (p *Parser) tok(i int) token.Token {
	if i < len(p.toks) {
		return p.toks[i]
	}

	if len(p.toks) == 0 {
		return token.Token{Kind: token.EOF}
	}

	last := p.toks[len(p.toks)-1]

	return token.Token{Kind: token.EOF, Pos: last.Pos}
}

func (p *Parser) next(st int) (tk token.Token, i int) {
	tk = p.tok(st)
	if tk.Kind == token.EOF {
		return tk, st
	}

	return tk, st + 1
}

func (p *Parser) expect(st int, k token.Kind) (tk token.Token, i int, err error) {
	tk, i = p.next(st)

	switch tk.Kind {
	case k:
		return tk, i, nil
	case token.EOF:
		return tk, st, NewUnexpectedEOF(k.String())
	default:
		return tk, st, NewUnexpected(k.String(), tk)
	}
}
