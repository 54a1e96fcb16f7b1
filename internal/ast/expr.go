package ast

import "github.com/aegis-lang/aegis/internal/lexer"

// PrefixOp is a unary operator.
type PrefixOp int

const (
	OpNegate PrefixOp = iota // -
	OpNot                    // !
)

func (op PrefixOp) String() string {
	switch op {
	case OpNegate:
		return "-"
	case OpNot:
		return "!"
	default:
		return "?"
	}
}

// InfixOp is a binary operator.
type InfixOp int

const (
	OpAdd InfixOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNotEq
	OpLt
	OpGt
	OpLe
	OpGe
)

var infixOpText = [...]string{
	OpAdd:   "+",
	OpSub:   "-",
	OpMul:   "*",
	OpDiv:   "/",
	OpEq:    "==",
	OpNotEq: "!=",
	OpLt:    "<",
	OpGt:    ">",
	OpLe:    "<=",
	OpGe:    ">=",
}

func (op InfixOp) String() string {
	if int(op) < 0 || int(op) >= len(infixOpText) {
		return "?"
	}
	return infixOpText[op]
}

// IsArithmetic reports whether op is one of + - * /.
func (op InfixOp) IsArithmetic() bool {
	return op == OpAdd || op == OpSub || op == OpMul || op == OpDiv
}

// IsComparison reports whether op is one of < > <= >=.
func (op InfixOp) IsComparison() bool {
	return op == OpLt || op == OpGt || op == OpLe || op == OpGe
}

// Ident represents an identifier.
type Ident struct {
	Name string
	span lexer.Span
}

// Span returns the identifier span.
func (i *Ident) Span() lexer.Span { return i.span }

// NewIdent constructs an identifier node.
func NewIdent(name string, span lexer.Span) *Ident {
	return &Ident{Name: name, span: span}
}

func (*Ident) exprNode() {}

// NumberLit is an integer literal kept in source form.
type NumberLit struct {
	Text string
	span lexer.Span
}

// Span returns the literal span.
func (l *NumberLit) Span() lexer.Span { return l.span }

// NewNumberLit constructs a number literal node.
func NewNumberLit(text string, span lexer.Span) *NumberLit {
	return &NumberLit{Text: text, span: span}
}

func (*NumberLit) exprNode() {}

// StringLit is a string literal with escapes decoded.
type StringLit struct {
	Value string
	span  lexer.Span
}

// Span returns the literal span.
func (l *StringLit) Span() lexer.Span { return l.span }

// NewStringLit constructs a string literal node.
func NewStringLit(value string, span lexer.Span) *StringLit {
	return &StringLit{Value: value, span: span}
}

func (*StringLit) exprNode() {}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Value bool
	span  lexer.Span
}

// Span returns the literal span.
func (l *BoolLit) Span() lexer.Span { return l.span }

// NewBoolLit constructs a boolean literal node.
func NewBoolLit(value bool, span lexer.Span) *BoolLit {
	return &BoolLit{Value: value, span: span}
}

func (*BoolLit) exprNode() {}

// NothingLit is the `nothing` literal.
type NothingLit struct {
	span lexer.Span
}

// Span returns the literal span.
func (l *NothingLit) Span() lexer.Span { return l.span }

// NewNothingLit constructs a nothing literal node.
func NewNothingLit(span lexer.Span) *NothingLit {
	return &NothingLit{span: span}
}

func (*NothingLit) exprNode() {}

// ListLit is `[a, b, ...]`.
type ListLit struct {
	Elements []Expr
	span     lexer.Span
}

// Span returns the literal span.
func (l *ListLit) Span() lexer.Span { return l.span }

// NewListLit constructs a list literal node.
func NewListLit(elements []Expr, span lexer.Span) *ListLit {
	return &ListLit{Elements: elements, span: span}
}

// SetSpan updates the literal span.
func (l *ListLit) SetSpan(span lexer.Span) {
	l.span = span
}

func (*ListLit) exprNode() {}

// MapEntry is one `key: value` pair of a map literal.
type MapEntry struct {
	Key   Expr
	Value Expr
}

// MapLit is `{key: value, ...}`. Entries keep source order.
type MapLit struct {
	Entries []*MapEntry
	span    lexer.Span
}

// Span returns the literal span.
func (l *MapLit) Span() lexer.Span { return l.span }

// NewMapLit constructs a map literal node.
func NewMapLit(entries []*MapEntry, span lexer.Span) *MapLit {
	return &MapLit{Entries: entries, span: span}
}

// SetSpan updates the literal span.
func (l *MapLit) SetSpan(span lexer.Span) {
	l.span = span
}

func (*MapLit) exprNode() {}

// PrefixExpr represents a unary operation.
type PrefixExpr struct {
	Op    PrefixOp
	Right Expr
	span  lexer.Span
}

// Span returns the expression span.
func (e *PrefixExpr) Span() lexer.Span { return e.span }

// NewPrefixExpr constructs a prefix expression node.
func NewPrefixExpr(op PrefixOp, right Expr, span lexer.Span) *PrefixExpr {
	return &PrefixExpr{Op: op, Right: right, span: span}
}

func (*PrefixExpr) exprNode() {}

// InfixExpr represents a binary operation.
type InfixExpr struct {
	Left  Expr
	Op    InfixOp
	Right Expr
	span  lexer.Span
}

// Span returns the expression span.
func (e *InfixExpr) Span() lexer.Span { return e.span }

// NewInfixExpr constructs an infix expression node.
func NewInfixExpr(op InfixOp, left, right Expr, span lexer.Span) *InfixExpr {
	return &InfixExpr{Left: left, Op: op, Right: right, span: span}
}

func (*InfixExpr) exprNode() {}

// AssignExpr represents `name = value`.
type AssignExpr struct {
	Target *Ident
	Value  Expr
	span   lexer.Span
}

// Span returns the expression span.
func (e *AssignExpr) Span() lexer.Span { return e.span }

// NewAssignExpr constructs an assignment expression node.
func NewAssignExpr(target *Ident, value Expr, span lexer.Span) *AssignExpr {
	return &AssignExpr{Target: target, Value: value, span: span}
}

func (*AssignExpr) exprNode() {}

// IfExpr represents `if cond: consequence [else: alternative]`.
// Alternative is nil, a *BlockStmt, or an *ExprStmt holding an else-if.
type IfExpr struct {
	Cond        Expr
	Consequence *BlockStmt
	Alternative Stmt
	span        lexer.Span
}

// Span returns the expression span.
func (e *IfExpr) Span() lexer.Span { return e.span }

// NewIfExpr constructs an if expression node.
func NewIfExpr(cond Expr, consequence *BlockStmt, alternative Stmt, span lexer.Span) *IfExpr {
	return &IfExpr{
		Cond:        cond,
		Consequence: consequence,
		Alternative: alternative,
		span:        span,
	}
}

func (*IfExpr) exprNode() {}

// WhenCase is one `is pattern => body` arm.
type WhenCase struct {
	Pattern Pattern
	Body    Expr
	span    lexer.Span
}

// Span returns the case span.
func (c *WhenCase) Span() lexer.Span { return c.span }

// NewWhenCase constructs a when case node.
func NewWhenCase(pattern Pattern, body Expr, span lexer.Span) *WhenCase {
	return &WhenCase{Pattern: pattern, Body: body, span: span}
}

// WhenExpr matches Subject against each case in order.
type WhenExpr struct {
	Subject Expr
	Cases   []*WhenCase
	span    lexer.Span
}

// Span returns the expression span.
func (e *WhenExpr) Span() lexer.Span { return e.span }

// NewWhenExpr constructs a when expression node.
func NewWhenExpr(subject Expr, cases []*WhenCase, span lexer.Span) *WhenExpr {
	return &WhenExpr{Subject: subject, Cases: cases, span: span}
}

func (*WhenExpr) exprNode() {}

// CallExpr represents `callee(args...)`.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	span   lexer.Span
}

// Span returns the expression span.
func (e *CallExpr) Span() lexer.Span { return e.span }

// NewCallExpr constructs a call expression node.
func NewCallExpr(callee Expr, args []Expr, span lexer.Span) *CallExpr {
	return &CallExpr{Callee: callee, Args: args, span: span}
}

func (*CallExpr) exprNode() {}

// MemberExpr represents `object.property`.
type MemberExpr struct {
	Object   Expr
	Property *Ident
	span     lexer.Span
}

// Span returns the expression span.
func (e *MemberExpr) Span() lexer.Span { return e.span }

// NewMemberExpr constructs a member access node.
func NewMemberExpr(object Expr, property *Ident, span lexer.Span) *MemberExpr {
	return &MemberExpr{Object: object, Property: property, span: span}
}

func (*MemberExpr) exprNode() {}

// AwaitExpr represents `await value`.
type AwaitExpr struct {
	Value Expr
	span  lexer.Span
}

// Span returns the expression span.
func (e *AwaitExpr) Span() lexer.Span { return e.span }

// NewAwaitExpr constructs an await expression node.
func NewAwaitExpr(value Expr, span lexer.Span) *AwaitExpr {
	return &AwaitExpr{Value: value, span: span}
}

func (*AwaitExpr) exprNode() {}

// AskJsExpr represents `ask_javascript "code"`, an escape hatch evaluated by
// the JavaScript bridge at run time.
type AskJsExpr struct {
	Code string
	span lexer.Span
}

// Span returns the expression span.
func (e *AskJsExpr) Span() lexer.Span { return e.span }

// NewAskJsExpr constructs an ask_javascript node.
func NewAskJsExpr(code string, span lexer.Span) *AskJsExpr {
	return &AskJsExpr{Code: code, span: span}
}

func (*AskJsExpr) exprNode() {}
