package analyze

import (
	"fmt"
	"reflect"

	"github.com/slowlang/tinyc/compiler/ast"
	"github.com/slowlang/tinyc/compiler/token"
	"github.com/slowlang/tinyc/compiler/tp"
)

type (
	UndefinedSymbolError struct {
		Name string
		Pos  token.Pos
	}

	RedefinedSymbolError struct {
		Name string
		Pos  token.Pos
	}

	TypeMismatchError struct {
		Left  tp.Type
		Right tp.Type
		Pos   token.Pos
	}

	ReturnTypeMismatchError struct {
		Expected tp.Type
		Found    tp.Type
		Pos      token.Pos
	}

	UnsupportedASTNodeError struct{ T ast.Node }
)

func NewUndefinedSymbol(name string, pos token.Pos) UndefinedSymbolError {
	return UndefinedSymbolError{Name: name, Pos: pos}
}

func NewRedefinedSymbol(name string, pos token.Pos) RedefinedSymbolError {
	return RedefinedSymbolError{Name: name, Pos: pos}
}

func NewTypeMismatch(l, r tp.Type, pos token.Pos) TypeMismatchError {
	return TypeMismatchError{Left: l, Right: r, Pos: pos}
}

func NewReturnTypeMismatch(want, got tp.Type, pos token.Pos) ReturnTypeMismatchError {
	return ReturnTypeMismatchError{Expected: want, Found: got, Pos: pos}
}

func NewUnsupportedASTNode(x ast.Node) UnsupportedASTNodeError {
	return UnsupportedASTNodeError{
		T: x,
	}
}

func (e UndefinedSymbolError) Error() string {
	return fmt.Sprintf("%v: undefined symbol: %v", e.Pos, e.Name)
}

func (e RedefinedSymbolError) Error() string {
	return fmt.Sprintf("%v: symbol redefined: %v", e.Pos, e.Name)
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("%v: type mismatch: %v and %v", e.Pos, e.Left, e.Right)
}

func (e ReturnTypeMismatchError) Error() string {
	return fmt.Sprintf("%v: return type mismatch: want %v, got %v", e.Pos, e.Expected, e.Found)
}

func (e UnsupportedASTNodeError) Error() string {
	return fmt.Sprintf("unsupported node: %v", reflect.TypeOf(e.T))
}
