package ast

import "github.com/aegis-lang/aegis/internal/lexer"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Definition represents a top-level item of a program.
type Definition interface {
	Node
	defNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of a parsed source file.
type Program struct {
	Definitions []Definition
	span        lexer.Span
}

// Span returns the span covering the entire program.
func (p *Program) Span() lexer.Span { return p.span }

// NewProgram constructs a program node with the provided span.
func NewProgram(span lexer.Span) *Program {
	return &Program{span: span}
}

// SetSpan updates the program span.
func (p *Program) SetSpan(span lexer.Span) {
	p.span = span
}

// ContractField is a single `name: Type` entry of a contract.
type ContractField struct {
	Name *Ident
	Type TypeExpr
	span lexer.Span
}

// Span returns the field span.
func (f *ContractField) Span() lexer.Span { return f.span }

// NewContractField constructs a contract field node.
func NewContractField(name *Ident, typ TypeExpr, span lexer.Span) *ContractField {
	return &ContractField{Name: name, Type: typ, span: span}
}

// ContractDef declares a record type, optionally generic over TypeParams.
type ContractDef struct {
	Name       *Ident
	TypeParams []*Ident
	Fields     []*ContractField
	span       lexer.Span
}

// Span returns the definition span.
func (d *ContractDef) Span() lexer.Span { return d.span }

// NewContractDef constructs a contract definition node.
func NewContractDef(name *Ident, typeParams []*Ident, fields []*ContractField, span lexer.Span) *ContractDef {
	return &ContractDef{
		Name:       name,
		TypeParams: typeParams,
		Fields:     fields,
		span:       span,
	}
}

// SetSpan updates the definition span.
func (d *ContractDef) SetSpan(span lexer.Span) {
	d.span = span
}

func (*ContractDef) defNode() {}

// EnumVariant is a named alternative of an enum with optional payload types.
type EnumVariant struct {
	Name  *Ident
	Types []TypeExpr
	span  lexer.Span
}

// Span returns the variant span.
func (v *EnumVariant) Span() lexer.Span { return v.span }

// NewEnumVariant constructs an enum variant node.
func NewEnumVariant(name *Ident, types []TypeExpr, span lexer.Span) *EnumVariant {
	return &EnumVariant{Name: name, Types: types, span: span}
}

// EnumDef declares a tagged union.
type EnumDef struct {
	Name     *Ident
	Variants []*EnumVariant
	span     lexer.Span
}

// Span returns the definition span.
func (d *EnumDef) Span() lexer.Span { return d.span }

// NewEnumDef constructs an enum definition node.
func NewEnumDef(name *Ident, variants []*EnumVariant, span lexer.Span) *EnumDef {
	return &EnumDef{Name: name, Variants: variants, span: span}
}

// SetSpan updates the definition span.
func (d *EnumDef) SetSpan(span lexer.Span) {
	d.span = span
}

func (*EnumDef) defNode() {}

// Param represents a function parameter.
type Param struct {
	Name *Ident
	Type TypeExpr
	span lexer.Span
}

// Span returns the parameter span.
func (p *Param) Span() lexer.Span { return p.span }

// NewParam constructs a parameter node.
func NewParam(name *Ident, typ TypeExpr, span lexer.Span) *Param {
	return &Param{Name: name, Type: typ, span: span}
}

// FunctionDef represents `[async] let's name(params) [-> Type]: body`.
type FunctionDef struct {
	Name       *Ident
	Async      bool
	Params     []*Param
	ReturnType TypeExpr // nil when not declared
	Body       *BlockStmt
	span       lexer.Span
}

// Span returns the definition span.
func (d *FunctionDef) Span() lexer.Span { return d.span }

// NewFunctionDef constructs a function definition node.
func NewFunctionDef(name *Ident, async bool, params []*Param, ret TypeExpr, body *BlockStmt, span lexer.Span) *FunctionDef {
	return &FunctionDef{
		Name:       name,
		Async:      async,
		Params:     params,
		ReturnType: ret,
		Body:       body,
		span:       span,
	}
}

// SetSpan updates the definition span.
func (d *FunctionDef) SetSpan(span lexer.Span) {
	d.span = span
}

func (*FunctionDef) defNode() {}

// AppDef declares a UI application: state, handlers and a show tree.
type AppDef struct {
	Name    *Ident
	Members []Definition // *StmtDef and *FunctionDef
	Show    *ShowBlock   // nil when the app has no show block
	span    lexer.Span
}

// Span returns the definition span.
func (d *AppDef) Span() lexer.Span { return d.span }

// NewAppDef constructs an app definition node.
func NewAppDef(name *Ident, members []Definition, show *ShowBlock, span lexer.Span) *AppDef {
	return &AppDef{Name: name, Members: members, Show: show, span: span}
}

// SetSpan updates the definition span.
func (d *AppDef) SetSpan(span lexer.Span) {
	d.span = span
}

func (*AppDef) defNode() {}

// StmtDef wraps a statement that appears at the top level.
type StmtDef struct {
	Stmt Stmt
}

// Span returns the span of the wrapped statement.
func (d *StmtDef) Span() lexer.Span { return d.Stmt.Span() }

// NewStmtDef wraps stmt as a definition.
func NewStmtDef(stmt Stmt) *StmtDef {
	return &StmtDef{Stmt: stmt}
}

func (*StmtDef) defNode() {}
