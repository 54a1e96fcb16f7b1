package ast

import "github.com/aegis-lang/aegis/internal/lexer"

// ShowBlock is the `show:` section of an app with its single root element.
type ShowBlock struct {
	Root *UIElement
	span lexer.Span
}

// Span returns the block span.
func (b *ShowBlock) Span() lexer.Span { return b.span }

// NewShowBlock constructs a show block node.
func NewShowBlock(root *UIElement, span lexer.Span) *ShowBlock {
	return &ShowBlock{Root: root, span: span}
}

// UIElement is a component such as `column:` or `text "Hello"`.
type UIElement struct {
	Name     *Ident
	Props    []UIProp
	Children []*UIElement
	span     lexer.Span
}

// Span returns the element span.
func (e *UIElement) Span() lexer.Span { return e.span }

// NewUIElement constructs a UI element node.
func NewUIElement(name *Ident, props []UIProp, children []*UIElement, span lexer.Span) *UIElement {
	return &UIElement{
		Name:     name,
		Props:    props,
		Children: children,
		span:     span,
	}
}

// SetSpan updates the element span.
func (e *UIElement) SetSpan(span lexer.Span) {
	e.span = span
}

// UIProp is a property attached to a UI element.
type UIProp interface {
	Node
	propNode()
}

// PositionalProp is an unnamed property value.
type PositionalProp struct {
	Value Expr
}

// Span returns the property span.
func (p *PositionalProp) Span() lexer.Span { return p.Value.Span() }

// NewPositionalProp constructs a positional property.
func NewPositionalProp(value Expr) *PositionalProp {
	return &PositionalProp{Value: value}
}

func (*PositionalProp) propNode() {}

// NamedProp is `name: value`.
type NamedProp struct {
	Name  *Ident
	Value Expr
	span  lexer.Span
}

// Span returns the property span.
func (p *NamedProp) Span() lexer.Span { return p.span }

// NewNamedProp constructs a named property.
func NewNamedProp(name *Ident, value Expr, span lexer.Span) *NamedProp {
	return &NamedProp{Name: name, Value: value, span: span}
}

func (*NamedProp) propNode() {}

// EventBinding attaches a handler body to an event such as `when_clicked`.
type EventBinding struct {
	Event *Ident
	Body  *BlockStmt
	span  lexer.Span
}

// Span returns the binding span.
func (b *EventBinding) Span() lexer.Span { return b.span }

// NewEventBinding constructs an event binding.
func NewEventBinding(event *Ident, body *BlockStmt, span lexer.Span) *EventBinding {
	return &EventBinding{Event: event, Body: body, span: span}
}

func (*EventBinding) propNode() {}
