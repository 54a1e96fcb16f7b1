package ast

import "github.com/aegis-lang/aegis/internal/lexer"

// LetStmt represents `let's [track] name [: Type] = value`.
type LetStmt struct {
	Name    *Ident
	Tracked bool
	Type    TypeExpr // nil when not annotated
	Value   Expr
	span    lexer.Span
}

// Span returns the statement span.
func (s *LetStmt) Span() lexer.Span { return s.span }

// NewLetStmt constructs a let statement node.
func NewLetStmt(name *Ident, tracked bool, typ TypeExpr, value Expr, span lexer.Span) *LetStmt {
	return &LetStmt{
		Name:    name,
		Tracked: tracked,
		Type:    typ,
		Value:   value,
		span:    span,
	}
}

// SetSpan updates the let statement span.
func (s *LetStmt) SetSpan(span lexer.Span) {
	s.span = span
}

func (*LetStmt) stmtNode() {}

// ForStmt represents `for item in iterable: body`.
type ForStmt struct {
	Iterator *Ident
	Iterable Expr
	Body     *BlockStmt
	span     lexer.Span
}

// Span returns the statement span.
func (s *ForStmt) Span() lexer.Span { return s.span }

// NewForStmt constructs a for statement node.
func NewForStmt(iterator *Ident, iterable Expr, body *BlockStmt, span lexer.Span) *ForStmt {
	return &ForStmt{
		Iterator: iterator,
		Iterable: iterable,
		Body:     body,
		span:     span,
	}
}

func (*ForStmt) stmtNode() {}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	Value Expr // nil for a bare return
	span  lexer.Span
}

// Span returns the statement span.
func (s *ReturnStmt) Span() lexer.Span { return s.span }

// NewReturnStmt constructs a return statement node.
func NewReturnStmt(value Expr, span lexer.Span) *ReturnStmt {
	return &ReturnStmt{Value: value, span: span}
}

func (*ReturnStmt) stmtNode() {}

// BlockStmt is an ordered list of statements forming a body.
type BlockStmt struct {
	Stmts []Stmt
	span  lexer.Span
}

// Span returns the block span.
func (b *BlockStmt) Span() lexer.Span { return b.span }

// NewBlockStmt constructs a block node.
func NewBlockStmt(stmts []Stmt, span lexer.Span) *BlockStmt {
	return &BlockStmt{Stmts: stmts, span: span}
}

// SetSpan updates the block span.
func (b *BlockStmt) SetSpan(span lexer.Span) {
	b.span = span
}

func (*BlockStmt) stmtNode() {}

// ExprStmt represents an expression evaluated for its effect or value.
type ExprStmt struct {
	Expr Expr
	span lexer.Span
}

// Span returns the statement span.
func (s *ExprStmt) Span() lexer.Span { return s.span }

// NewExprStmt constructs an expression statement node.
func NewExprStmt(expr Expr, span lexer.Span) *ExprStmt {
	return &ExprStmt{Expr: expr, span: span}
}

func (*ExprStmt) stmtNode() {}
