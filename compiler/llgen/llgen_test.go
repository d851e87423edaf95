package llgen

import (
	"context"
	"testing"

	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/tinyc/compiler/ast"
	"github.com/slowlang/tinyc/compiler/tp"
)

func TestGenerate(t *testing.T) {
	p := &ast.Program{Funcs: []*ast.Func{
		{Name: "nop", Type: tp.Void, Body: []ast.Stmt{ast.Return{}}},
		{Name: "two", Type: tp.Int, Body: []ast.Stmt{ast.Return{Value: ast.IntLit{Value: 2}}}},
		{Name: "main", Type: tp.Int, Body: []ast.Stmt{
			ast.Return{Value: ast.BinOp{
				Op:    ast.Mul,
				Left:  ast.Call{Name: "two"},
				Right: ast.IntLit{Value: 21},
			}},
			ast.Return{Value: ast.IntLit{Value: 0}},
		}},
	}}

	m, err := Generate(context.Background(), p)
	require.NoError(t, err)

	require.Len(t, m.Funcs, 3)

	text := m.String()

	assert.Contains(t, text, "define void @nop()")
	assert.Contains(t, text, "ret void")
	assert.Contains(t, text, "define i32 @two()")
	assert.Contains(t, text, "ret i32 2")
	assert.Contains(t, text, "call i32 @two()")
	assert.Contains(t, text, "mul i32")

	assert.True(t, m.Funcs[1].Sig.RetType.Equal(types.I32), "int is %v", m.Funcs[1].Sig.RetType)
	assert.True(t, m.Funcs[0].Sig.RetType.Equal(types.Void))

	main := m.Funcs[2]
	require.Len(t, main.Blocks, 1)
	assert.Len(t, main.Blocks[0].Insts, 2, "dead return must not be lowered")
}

func TestFallOffEnd(t *testing.T) {
	p := &ast.Program{Funcs: []*ast.Func{
		{Name: "v", Type: tp.Void},
		{Name: "i", Type: tp.Int},
	}}

	m, err := Generate(context.Background(), p)
	require.NoError(t, err)

	text := m.String()

	assert.Contains(t, text, "ret void")
	assert.Contains(t, text, "unreachable")
}

func TestUndefinedCallee(t *testing.T) {
	p := &ast.Program{Funcs: []*ast.Func{
		{Name: "main", Type: tp.Int, Body: []ast.Stmt{ast.Return{Value: ast.Call{Name: "nowhere"}}}},
	}}

	_, err := Generate(context.Background(), p)

	var ue UnsupportedNodeError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, ast.Call{Name: "nowhere"}, ue.Node)
}
