package token

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slowlang/tinyc/compiler/tp"
)

func TestString(t *testing.T) {
	assert.Equal(t, "EOF", Token{}.String())
	assert.Equal(t, `identifier "main"`, Token{Kind: Ident, Text: "main"}.String())
	assert.Equal(t, `integer "42"`, Token{Kind: Int, Text: "42", Value: 42}.String())
	assert.Equal(t, `"{"`, Token{Kind: LBrace, Text: "{"}.String())

	assert.Equal(t, "Kind(100)", Kind(100).String())

	assert.Equal(t, "a.c:3:7", Pos{File: "a.c", Line: 3, Col: 7}.String())
	assert.Equal(t, "3:7", Pos{Line: 3, Col: 7}.String())
}

func TestKeyword(t *testing.T) {
	tk, ok := Keyword("void")
	assert.True(t, ok)
	assert.Equal(t, Type, tk.Kind)
	assert.Equal(t, tp.Void, tk.Type)

	_, ok = Keyword("main")
	assert.False(t, ok)
}

func TestIsOperator(t *testing.T) {
	for _, k := range []Kind{Plus, Minus, Star, Slash} {
		assert.True(t, k.IsOperator(), "%v", k)
	}

	for _, k := range []Kind{EOF, Ident, Int, LParen, Semi} {
		assert.False(t, k.IsOperator(), "%v", k)
	}
}
