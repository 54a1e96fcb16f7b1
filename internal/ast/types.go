package ast

import (
	"strings"

	"github.com/aegis-lang/aegis/internal/lexer"
)

// TypeExpr represents a type annotation: a simple name or a generic
// instantiation such as `List<number>`.
type TypeExpr interface {
	Node
	typeNode()
	String() string
}

// SimpleType is a bare type name.
type SimpleType struct {
	Name string
	span lexer.Span
}

// Span returns the type span.
func (t *SimpleType) Span() lexer.Span { return t.span }

// NewSimpleType constructs a simple type node.
func NewSimpleType(name string, span lexer.Span) *SimpleType {
	return &SimpleType{Name: name, span: span}
}

func (t *SimpleType) String() string { return t.Name }

func (*SimpleType) typeNode() {}

// GenericType is `Name<Arg, ...>`.
type GenericType struct {
	Name string
	Args []TypeExpr
	span lexer.Span
}

// Span returns the type span.
func (t *GenericType) Span() lexer.Span { return t.span }

// NewGenericType constructs a generic type node.
func NewGenericType(name string, args []TypeExpr, span lexer.Span) *GenericType {
	return &GenericType{Name: name, Args: args, span: span}
}

func (t *GenericType) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return t.Name + "<" + strings.Join(args, ", ") + ">"
}

func (*GenericType) typeNode() {}
