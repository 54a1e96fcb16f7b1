package ast

import "github.com/aegis-lang/aegis/internal/lexer"

// Pattern is the left-hand side of a when case.
type Pattern interface {
	Node
	patternNode()
}

// LiteralPattern matches a number, string, boolean or nothing literal.
type LiteralPattern struct {
	Value Expr
}

// Span returns the pattern span.
func (p *LiteralPattern) Span() lexer.Span { return p.Value.Span() }

// NewLiteralPattern constructs a literal pattern node.
func NewLiteralPattern(value Expr) *LiteralPattern {
	return &LiteralPattern{Value: value}
}

func (*LiteralPattern) patternNode() {}

// IdentPattern matches anything and binds it to Name.
type IdentPattern struct {
	Name *Ident
}

// Span returns the pattern span.
func (p *IdentPattern) Span() lexer.Span { return p.Name.Span() }

// NewIdentPattern constructs an identifier pattern node.
func NewIdentPattern(name *Ident) *IdentPattern {
	return &IdentPattern{Name: name}
}

func (*IdentPattern) patternNode() {}

// EnumVariantPattern matches `Enum.Variant(bindings...)`.
type EnumVariantPattern struct {
	Enum     *Ident
	Variant  *Ident
	Bindings []*Ident
	span     lexer.Span
}

// Span returns the pattern span.
func (p *EnumVariantPattern) Span() lexer.Span { return p.span }

// NewEnumVariantPattern constructs an enum variant pattern node.
func NewEnumVariantPattern(enum, variant *Ident, bindings []*Ident, span lexer.Span) *EnumVariantPattern {
	return &EnumVariantPattern{
		Enum:     enum,
		Variant:  variant,
		Bindings: bindings,
		span:     span,
	}
}

func (*EnumVariantPattern) patternNode() {}

// ElsePattern is the catch-all `else` case.
type ElsePattern struct {
	span lexer.Span
}

// Span returns the pattern span.
func (p *ElsePattern) Span() lexer.Span { return p.span }

// NewElsePattern constructs an else pattern node.
func NewElsePattern(span lexer.Span) *ElsePattern {
	return &ElsePattern{span: span}
}

func (*ElsePattern) patternNode() {}
