package format

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/tinyc/compiler/ast"
	"github.com/slowlang/tinyc/compiler/tp"
)

func TestFormatProgram(t *testing.T) {
	p := &ast.Program{Funcs: []*ast.Func{
		{Name: "nop", Type: tp.Void, Body: []ast.Stmt{ast.Return{}}},
		{Name: "main", Type: tp.Int, Body: []ast.Stmt{
			ast.Return{Value: ast.BinOp{
				Op: ast.Add,
				Left: ast.BinOp{
					Op:    ast.Mul,
					Left:  ast.IntLit{Value: 1},
					Right: ast.IntLit{Value: 2},
				},
				Right: ast.Call{Name: "three"},
			}},
		}},
	}}

	b, err := Format(context.Background(), nil, p)
	require.NoError(t, err)

	assert.Equal(t, `void nop() {
	return;
}

int main() {
	return (1 * 2) + three();
}
`, string(b))
}

func TestFormatUnsupported(t *testing.T) {
	_, err := Format(context.Background(), nil, 42)
	assert.Error(t, err)
}
