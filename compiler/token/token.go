package token

import (
	"fmt"

	"github.com/slowlang/tinyc/compiler/tp"
)

type (
	Kind int

	// Pos is a source position. Line and Col are 1-based.
	Pos struct {
		File string `yaml:"file,omitempty"`
		Line int    `yaml:"line"`
		Col  int    `yaml:"col"`
	}

	Token struct {
		Kind  Kind
		Text  string
		Value uint64  // Int
		Type  tp.Type // Type
		Pos   Pos
	}
)

const (
	EOF Kind = iota

	Ident
	Int

	// keywords
	Return
	Type

	// separators
	LParen
	RParen
	LBrace
	RBrace
	Semi

	// operators
	Plus
	Minus
	Star
	Slash
)

var kindNames = [...]string{
	EOF:    "EOF",
	Ident:  "identifier",
	Int:    "integer",
	Return: "return",
	Type:   "type",
	LParen: "(",
	RParen: ")",
	LBrace: "{",
	RBrace: "}",
	Semi:   ";",
	Plus:   "+",
	Minus:  "-",
	Star:   "*",
	Slash:  "/",
}

var keywords = map[string]Token{
	"return": {Kind: Return, Text: "return"},
	"int":    {Kind: Type, Text: "int", Type: tp.Int},
	"void":   {Kind: Type, Text: "void", Type: tp.Void},
}

// Keyword returns the keyword token for word, if it is one.
// Pos is left zero.
func Keyword(word string) (Token, bool) {
	t, ok := keywords[word]
	return t, ok
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsOperator reports whether k is a binary arithmetic operator.
func (k Kind) IsOperator() bool {
	return k >= Plus && k <= Slash
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}

	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "EOF"
	case Ident, Int:
		return fmt.Sprintf("%v %q", t.Kind, t.Text)
	default:
		return fmt.Sprintf("%q", t.Text)
	}
}
