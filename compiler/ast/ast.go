package ast

import (
	"github.com/slowlang/tinyc/compiler/token"
	"github.com/slowlang/tinyc/compiler/tp"
)

type (
	Node interface {
		Position() token.Pos
	}

	Stmt interface {
		Node
		stmt()
	}

	Expr interface {
		Node
		expr()
	}

	Op string

	Base struct {
		Pos token.Pos `yaml:"pos"`
	}

	Program struct {
		Funcs []*Func `yaml:"funcs"`
	}

	Func struct {
		Base `yaml:",inline"`

		Name string  `yaml:"name"`
		Type tp.Type `yaml:"type"`
		Body []Stmt  `yaml:"body"`
	}

	// Return value is nil for a bare return.
	Return struct {
		Base `yaml:",inline"`

		Value Expr `yaml:"value,omitempty"`
	}

	IntLit struct {
		Base `yaml:",inline"`

		Value uint64 `yaml:"int"`
	}

	Call struct {
		Base `yaml:",inline"`

		Name string `yaml:"call"`
	}

	BinOp struct {
		Base `yaml:",inline"`

		Op    Op   `yaml:"op"`
		Left  Expr `yaml:"left"`
		Right Expr `yaml:"right"`
	}
)

const (
	Add Op = "+"
	Sub Op = "-"
	Mul Op = "*"
	Div Op = "/"
)

func (b Base) Position() token.Pos { return b.Pos }

func (Return) stmt() {}

func (IntLit) expr() {}
func (Call) expr()   {}
func (BinOp) expr()  {}

// Prec is the binding power of a binary operator. Higher binds tighter.
func (op Op) Prec() int {
	switch op {
	case Add, Sub:
		return 1
	case Mul, Div:
		return 2
	default:
		return 0
	}
}

// OpOf maps an operator token kind to its Op.
func OpOf(k token.Kind) (Op, bool) {
	switch k {
	case token.Plus:
		return Add, true
	case token.Minus:
		return Sub, true
	case token.Star:
		return Mul, true
	case token.Slash:
		return Div, true
	default:
		return "", false
	}
}
