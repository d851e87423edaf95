package lex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/tinyc/compiler/token"
	"github.com/slowlang/tinyc/compiler/tp"
)

func kinds(toks []token.Token) (r []token.Kind) {
	for _, tk := range toks {
		r = append(r, tk.Kind)
	}

	return r
}

func TestLex(t *testing.T) {
	toks, err := Lex(context.Background(), "a.c", []byte("int main() {\n\treturn 1 + f_2() * (3 - 4) / 5; // done\n}\n"))
	require.NoError(t, err)

	assert.Equal(t, []token.Kind{
		token.Type, token.Ident, token.LParen, token.RParen, token.LBrace,
		token.Return, token.Int, token.Plus, token.Ident, token.LParen, token.RParen, token.Star,
		token.LParen, token.Int, token.Minus, token.Int, token.RParen, token.Slash, token.Int, token.Semi,
		token.RBrace,
	}, kinds(toks))

	assert.Equal(t, tp.Int, toks[0].Type)
	assert.Equal(t, token.Pos{File: "a.c", Line: 1, Col: 1}, toks[0].Pos)
	assert.Equal(t, "main", toks[1].Text)
	assert.Equal(t, token.Pos{File: "a.c", Line: 1, Col: 5}, toks[1].Pos)

	assert.Equal(t, token.Pos{File: "a.c", Line: 2, Col: 2}, toks[5].Pos)
	assert.Equal(t, uint64(1), toks[6].Value)
	assert.Equal(t, "f_2", toks[8].Text)

	assert.Equal(t, token.Pos{File: "a.c", Line: 3, Col: 1}, toks[len(toks)-1].Pos)
}

func TestKeywords(t *testing.T) {
	toks, err := Lex(context.Background(), "", []byte("void return int voids"))
	require.NoError(t, err)
	require.Len(t, toks, 4)

	assert.Equal(t, token.Type, toks[0].Kind)
	assert.Equal(t, tp.Void, toks[0].Type)
	assert.Equal(t, token.Return, toks[1].Kind)
	assert.Equal(t, token.Type, toks[2].Kind)
	assert.Equal(t, tp.Int, toks[2].Type)
	assert.Equal(t, token.Ident, toks[3].Kind)
}

func TestEmpty(t *testing.T) {
	toks, err := Lex(context.Background(), "", []byte(" \n\t// only comment"))
	require.NoError(t, err)
	assert.Empty(t, toks)
}

func TestErrors(t *testing.T) {
	_, err := Lex(context.Background(), "a.c", []byte("int main() {\n  return 1 % 2;\n}"))

	var le Error
	require.ErrorAs(t, err, &le)
	assert.Equal(t, byte('%'), le.Char)
	assert.Equal(t, token.Pos{File: "a.c", Line: 2, Col: 12}, le.Pos)
	assert.EqualError(t, err, `a.c:2:12: unexpected character '%'`)

	_, err = Lex(context.Background(), "", []byte("return 4294967296;"))
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Reason, "out of range")

	toks, err := Lex(context.Background(), "", []byte("4294967295"))
	require.NoError(t, err)
	assert.Equal(t, uint64(4294967295), toks[0].Value)
}
