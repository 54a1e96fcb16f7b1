package types

import "github.com/aegis-lang/aegis/internal/lexer"

// SymbolKind says what a name refers to. The set of kinds is closed.
type SymbolKind interface {
	isSymbolKind()
}

// VariableKind is a let binding, parameter, loop variable or pattern binding.
type VariableKind struct {
	Tracked bool
}

// TypeKind is a named type with no further structure, such as an app or a
// generic parameter.
type TypeKind struct{}

type FunctionKind struct {
	Params []Type
	Return Type
	Async  bool
}

type EnumKind struct {
	Variants []string
}

type ContractKind struct {
	Fields []Field
}

// GenericContractKind holds field types that still mention Generic
// parameters.
type GenericContractKind struct {
	Params []string
	Fields []Field
}

func (*VariableKind) isSymbolKind()        {}
func (*TypeKind) isSymbolKind()            {}
func (*FunctionKind) isSymbolKind()        {}
func (*EnumKind) isSymbolKind()            {}
func (*ContractKind) isSymbolKind()        {}
func (*GenericContractKind) isSymbolKind() {}

// Field is one contract field. Fields keep declaration order.
type Field struct {
	Name string
	Type Type
}

// LookupField finds a field by name.
func LookupField(fields []Field, name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Symbol represents a named entity in the source code.
type Symbol struct {
	Name string
	Kind SymbolKind
	Type Type
	Span lexer.Span // where the name was declared
}

// Scope represents a lexical scope containing symbols.
type Scope struct {
	Parent  *Scope
	Symbols map[string]*Symbol
}

// NewScope creates a new scope with an optional parent.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		Parent:  parent,
		Symbols: make(map[string]*Symbol),
	}
}

// Define adds sym to this scope. It returns false, leaving the scope
// unchanged, when the name is already defined here. Names in enclosing
// scopes may be shadowed.
func (s *Scope) Define(sym *Symbol) bool {
	if _, ok := s.Symbols[sym.Name]; ok {
		return false
	}
	s.Symbols[sym.Name] = sym
	return true
}

// Lookup finds a symbol in the current scope or any parent scope.
func (s *Scope) Lookup(name string) *Symbol {
	for sc := s; sc != nil; sc = sc.Parent {
		if sym, ok := sc.Symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// LookupLocal finds a symbol in this scope only.
func (s *Scope) LookupLocal(name string) *Symbol {
	return s.Symbols[name]
}
