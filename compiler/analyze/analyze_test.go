package analyze

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/tinyc/compiler/ast"
	"github.com/slowlang/tinyc/compiler/lex"
	"github.com/slowlang/tinyc/compiler/parse"
	"github.com/slowlang/tinyc/compiler/token"
	"github.com/slowlang/tinyc/compiler/tp"
)

func analyzeText(t *testing.T, text string) (*Analyzer, error) {
	t.Helper()

	ctx := context.Background()

	toks, err := lex.Lex(ctx, "t.c", []byte(text))
	require.NoError(t, err)

	p, err := parse.Parse(ctx, toks)
	require.NoError(t, err)

	a := New()

	return a, a.Analyze(ctx, p)
}

func TestAnalyzeOK(t *testing.T) {
	for _, text := range []string{
		"",
		"int main() { return 42; }",
		"void f() { return; }",
		"void f() {}",
		"int f() { return f(); }",
		"int one() { return 1; } int main() { return one() * (2 + one()) / 3 - 4; }",
		"int main() { return 1; return 2; }",
	} {
		t.Run(text, func(t *testing.T) {
			a, err := analyzeText(t, text)
			require.NoError(t, err)
			assert.Equal(t, 0, a.Symbols().Depth())
		})
	}
}

func TestGlobalSymbols(t *testing.T) {
	a, err := analyzeText(t, "int b() { return 1; } void a() { return; }")
	require.NoError(t, err)

	g := a.Symbols().Innermost()
	assert.Equal(t, []string{"b", "a"}, g.Names())

	sym, ok := g.Get("a")
	require.True(t, ok)
	assert.Equal(t, Symbol{Kind: Function, Type: tp.Void}, sym)
}

func TestReturnTypeMismatch(t *testing.T) {
	for _, tc := range []struct {
		text      string
		want, got tp.Type
	}{
		{"int main() { return; }", tp.Int, tp.Void},
		{"void main() { return 1; }", tp.Void, tp.Int},
		{"void f() { return; } int main() { return f(); }", tp.Int, tp.Void},
	} {
		t.Run(tc.text, func(t *testing.T) {
			a, err := analyzeText(t, tc.text)

			var e ReturnTypeMismatchError
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tc.want, e.Expected)
			assert.Equal(t, tc.got, e.Found)

			assert.Equal(t, 0, a.Symbols().Depth())
		})
	}
}

func TestUndefinedSymbol(t *testing.T) {
	a, err := analyzeText(t, "int main() { return 1 + foo(); }")

	var e UndefinedSymbolError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "foo", e.Name)
	assert.Equal(t, token.Pos{File: "t.c", Line: 1, Col: 25}, e.Pos)

	assert.Equal(t, 0, a.Symbols().Depth())
}

func TestForwardCallUndefined(t *testing.T) {
	_, err := analyzeText(t, "int main() { return later(); } int later() { return 1; }")

	var e UndefinedSymbolError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "later", e.Name)
}

func TestRedefinedSymbol(t *testing.T) {
	_, err := analyzeText(t, "int f() { return 1; } void f() { return; }")

	var e RedefinedSymbolError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "f", e.Name)
	assert.Equal(t, token.Pos{File: "t.c", Line: 1, Col: 23}, e.Pos)
}

func TestTypeMismatch(t *testing.T) {
	_, err := analyzeText(t, "void v() { return; } int main() { return 1 + v(); }")

	var e TypeMismatchError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, tp.Int, e.Left)
	assert.Equal(t, tp.Void, e.Right)
	assert.Contains(t, err.Error(), "type mismatch: int and void")
}

func TestUnsupportedNode(t *testing.T) {
	type bogus struct{ ast.Return }

	p := &ast.Program{Funcs: []*ast.Func{{
		Name: "main",
		Type: tp.Int,
		Body: []ast.Stmt{bogus{}},
	}}}

	a := New()
	err := a.Analyze(context.Background(), p)

	var e UnsupportedASTNodeError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 0, a.Symbols().Depth())
}
