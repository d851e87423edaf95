package analyze

import (
	"fmt"

	"tlog.app/go/tlog"

	"github.com/slowlang/tinyc/compiler/tp"
)

type (
	SymbolKind int

	Symbol struct {
		Kind SymbolKind
		Type tp.Type
	}

	// Scope keeps bindings in insertion order.
	Scope struct {
		names []string
		syms  map[string]Symbol
	}

	// SymbolTable is a stack of scopes. Scope 0 is global and never popped.
	SymbolTable struct {
		scopes []*Scope
	}
)

const (
	Function SymbolKind = iota
	Variable
)

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		scopes: []*Scope{newScope()},
	}
}

func newScope() *Scope {
	return &Scope{
		syms: make(map[string]Symbol),
	}
}

func (t *SymbolTable) Enter() {
	t.scopes = append(t.scopes, newScope())

	tlog.V("scope").Printw("enter scope", "depth", t.Depth())
}

// Exit pops the innermost scope. Exiting the global scope is a bug in the caller.
func (t *SymbolTable) Exit() {
	if len(t.scopes) == 1 {
		panic("exit global scope")
	}

	tlog.V("scope").Printw("exit scope", "depth", t.Depth(), "names", t.Innermost().names)

	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Depth is the number of scopes above the global one.
func (t *SymbolTable) Depth() int {
	return len(t.scopes) - 1
}

func (t *SymbolTable) Innermost() *Scope {
	return t.scopes[len(t.scopes)-1]
}

// Insert binds name in the innermost scope, replacing an existing binding there.
func (t *SymbolTable) Insert(name string, sym Symbol) {
	t.Innermost().insert(name, sym)

	tlog.V("scope").Printw("insert symbol", "name", name, "kind", sym.Kind, "type", sym.Type, "depth", t.Depth())
}

// Lookup searches scopes from the innermost outwards.
func (t *SymbolTable) Lookup(name string) (Symbol, bool) {
	for j := len(t.scopes) - 1; j >= 0; j-- {
		if sym, ok := t.scopes[j].syms[name]; ok {
			return sym, true
		}
	}

	return Symbol{}, false
}

func (t *SymbolTable) LookupLocal(name string) (Symbol, bool) {
	sym, ok := t.Innermost().syms[name]
	return sym, ok
}

func (s *Scope) insert(name string, sym Symbol) {
	if _, ok := s.syms[name]; !ok {
		s.names = append(s.names, name)
	}

	s.syms[name] = sym
}

// Names returns bound names in insertion order.
func (s *Scope) Names() []string {
	return s.names
}

func (s *Scope) Get(name string) (Symbol, bool) {
	sym, ok := s.syms[name]
	return sym, ok
}

func (k SymbolKind) String() string {
	switch k {
	case Function:
		return "function"
	case Variable:
		return "variable"
	default:
		return fmt.Sprintf("SymbolKind(%d)", int(k))
	}
}
