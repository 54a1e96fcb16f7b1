package types

import (
	"github.com/aegis-lang/aegis/internal/ast"
)

// Checker performs semantic analysis on a parsed program. It walks the
// definitions once, in order, so a name must be declared before it is
// used. The AST is never modified.
type Checker struct {
	GlobalScope *Scope
	Errors      []SemanticError

	scope *Scope
	fn    *funcContext // nil outside function bodies
}

type funcContext struct {
	async bool
	ret   Type // type a return value must have
}

// NewChecker creates a new semantic checker.
func NewChecker() *Checker {
	c := &Checker{}
	c.reset()
	return c
}

func (c *Checker) reset() {
	c.GlobalScope = NewScope(nil)
	c.Errors = nil
	c.scope = c.GlobalScope
	c.fn = nil
}

// Check analyzes prog. State from a previous call is discarded first, so
// checking the same program twice gives the same errors.
func (c *Checker) Check(prog *ast.Program) {
	c.reset()

	for _, def := range prog.Definitions {
		c.checkDefinition(def)
	}
}

// InferExprType returns the type of expr in the checker's global scope.
// Errors found on the way are appended to Errors.
func (c *Checker) InferExprType(expr ast.Expr) Type {
	return c.inferExpr(expr)
}

// enterScope opens a child scope and returns a func restoring the previous one.
func (c *Checker) enterScope() func() {
	outer := c.scope
	c.scope = NewScope(outer)
	return func() { c.scope = outer }
}

// define adds sym to the current scope, reporting a duplicate.
func (c *Checker) define(sym *Symbol) {
	if c.scope.Define(sym) {
		return
	}

	prev := c.scope.LookupLocal(sym.Name)
	e := c.report(DuplicateDeclaration, sym.Span, "%s is already declared in this scope", sym.Name)
	e.Previous = prev.Span
}

func (c *Checker) checkDefinition(def ast.Definition) {
	switch d := def.(type) {
	case *ast.ContractDef:
		c.checkContractDef(d)
	case *ast.EnumDef:
		c.checkEnumDef(d)
	case *ast.FunctionDef:
		c.checkFunctionDef(d)
	case *ast.AppDef:
		c.checkAppDef(d)
	case *ast.StmtDef:
		c.checkStmt(d.Stmt)
	}
}
