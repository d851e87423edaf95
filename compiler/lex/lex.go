package lex

import (
	"context"
	"fmt"
	"strconv"

	"tlog.app/go/tlog"

	"github.com/slowlang/tinyc/compiler/token"
)

type (
	Error struct {
		Pos    token.Pos
		Char   byte
		Reason string
	}

	state struct {
		file string
		b    []byte

		line int
		bol  int // offset of the current line start
	}
)

// Lex splits text into tokens. The result has no trailing EOF token.
func Lex(ctx context.Context, file string, text []byte) (toks []token.Token, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "lex", "file", file, "size", len(text))
	defer tr.Finish("err", &err)

	s := &state{
		file: file,
		b:    text,
		line: 1,
	}

	for i := 0; ; {
		var tk token.Token

		tk, i, err = s.next(ctx, i)
		if err != nil {
			return nil, err
		}

		if tk.Kind == token.EOF {
			break
		}

		toks = append(toks, tk)
	}

	return toks, nil
}

func (s *state) next(ctx context.Context, st int) (tk token.Token, i int, err error) {
	i = s.skip(st)

	tk.Pos = s.pos(i)

	if i == len(s.b) {
		return tk, i, nil
	}

	c := s.b[i]

	switch c {
	case '(', ')', '{', '}', ';', '+', '-', '*', '/':
		tk.Kind = punct[c]
		tk.Text = string(s.b[i : i+1])

		return tk, i + 1, nil
	}

	switch {
	case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_':
		e := skipIdent(s.b, i)
		word := string(s.b[i:e])

		if kw, ok := token.Keyword(word); ok {
			kw.Pos = tk.Pos
			tk = kw
		} else {
			tk.Kind = token.Ident
			tk.Text = word
		}

		i = e
	case c >= '0' && c <= '9':
		e := skipNum(s.b, i)

		tk.Kind = token.Int
		tk.Text = string(s.b[i:e])

		tk.Value, err = strconv.ParseUint(tk.Text, 10, 32)
		if err != nil {
			return tk, i, NewError(tk.Pos, c, fmt.Sprintf("integer literal %s out of range", tk.Text))
		}

		i = e
	default:
		return tk, i, NewError(tk.Pos, c, "")
	}

	tlog.V("lex").Printw("token", "tk", tk, "st", st, "i", i)

	return tk, i, nil
}

// skip steps over white space and line comments keeping line accounting.
func (s *state) skip(i int) int {
	for i < len(s.b) {
		switch s.b[i] {
		case ' ', '\t', '\r':
			i++
		case '\n':
			i++
			s.line++
			s.bol = i
		case '/':
			if i+1 == len(s.b) || s.b[i+1] != '/' {
				return i
			}

			i = skipLine(s.b, i)
		default:
			return i
		}
	}

	return i
}

func (s *state) pos(i int) token.Pos {
	return token.Pos{
		File: s.file,
		Line: s.line,
		Col:  i - s.bol + 1,
	}
}

var punct = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	';': token.Semi,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
}

func skipIdent(b []byte, i int) int {
	for i < len(b) && (b[i] >= 'a' && b[i] <= 'z' || b[i] >= 'A' && b[i] <= 'Z' || b[i] >= '0' && b[i] <= '9' || b[i] == '_') {
		i++
	}

	return i
}

func skipNum(b []byte, i int) int {
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}

	return i
}

func skipLine(b []byte, i int) int {
	for i < len(b) && b[i] != '\n' {
		i++
	}

	return i
}

func NewError(pos token.Pos, c byte, reason string) Error {
	return Error{Pos: pos, Char: c, Reason: reason}
}

func (e Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v: %s", e.Pos, e.Reason)
	}

	return fmt.Sprintf("%v: unexpected character %q", e.Pos, e.Char)
}
