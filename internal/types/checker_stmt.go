package types

import (
	"github.com/aegis-lang/aegis/internal/ast"
)

func (c *Checker) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		c.checkLet(s)
	case *ast.ForStmt:
		c.checkFor(s)
	case *ast.ReturnStmt:
		c.checkReturn(s)
	case *ast.BlockStmt:
		leave := c.enterScope()
		for _, inner := range s.Stmts {
			c.checkStmt(inner)
		}
		leave()
	case *ast.ExprStmt:
		c.checkExprStmt(s.Expr)
	}
}

// checkExprStmt checks an expression whose value is discarded. Branches of
// an if or when in this position may disagree on their type.
func (c *Checker) checkExprStmt(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.IfExpr:
		c.inferIf(e, false)
	case *ast.WhenExpr:
		c.inferWhen(e, false)
	default:
		c.inferExpr(e)
	}
}

func (c *Checker) checkLet(s *ast.LetStmt) {
	var typ Type

	if s.Type != nil {
		typ = c.resolveType(s.Type, true)

		if actual, ok := c.checkValue(typ, s.Value); !ok {
			c.report(TypeMismatch, s.Value.Span(), "cannot use %s as %s in declaration of %s", actual, typ, s.Name.Name)
		}
	} else {
		typ = c.inferExpr(s.Value)
	}

	c.define(&Symbol{
		Name: s.Name.Name,
		Kind: &VariableKind{Tracked: s.Tracked},
		Type: typ,
		Span: s.Name.Span(),
	})
}

// checkValue checks value against the expected type. A map literal given
// for a contract type is checked field by field, reporting its own errors.
// Otherwise the inferred type is returned with whether it is compatible.
func (c *Checker) checkValue(expected Type, value ast.Expr) (Type, bool) {
	if m, ok := value.(*ast.MapLit); ok {
		if _, ok := expected.(*Custom); ok {
			c.checkContractInit(expected, m)
			return expected, true
		}
		if _, ok := expected.(*Concrete); ok {
			c.checkContractInit(expected, m)
			return expected, true
		}
	}

	actual := c.inferExpr(value)

	return actual, Compatible(expected, actual)
}

// checkContractInit checks a map literal used to initialize contract t.
func (c *Checker) checkContractInit(t Type, m *ast.MapLit) {
	fields, ok := c.contractFields(t)
	if !ok {
		c.report(UndefinedType, m.Span(), "%s is not a contract", t)
		return
	}

	supplied := make(map[string]bool, len(m.Entries))

	for _, e := range m.Entries {
		key, ok := fieldKey(e.Key)
		if !ok {
			se := c.report(InvalidFieldKey, e.Key.Span(), "contract field keys must be names or string literals")
			se.Help = "write the key as name: value"
			continue
		}

		field, ok := LookupField(fields, key)
		if !ok {
			c.report(UnknownField, e.Key.Span(), "%s has no field %s", t, key)
			continue
		}

		if supplied[key] {
			c.report(DuplicateDeclaration, e.Key.Span(), "field %s is given more than once", key)
			continue
		}
		supplied[key] = true

		if actual, ok := c.checkValue(field.Type, e.Value); !ok {
			c.report(TypeMismatch, e.Value.Span(), "field %s of %s expects %s, found %s", key, t, field.Type, actual)
		}
	}

	for _, f := range fields {
		if !supplied[f.Name] {
			c.report(MissingField, m.Span(), "missing field %s in %s", f.Name, t)
		}
	}
}

func fieldKey(key ast.Expr) (string, bool) {
	switch k := key.(type) {
	case *ast.Ident:
		return k.Name, true
	case *ast.StringLit:
		return k.Value, true
	default:
		return "", false
	}
}

func (c *Checker) checkFor(s *ast.ForStmt) {
	iterable := c.inferExpr(s.Iterable)

	var elem Type
	switch t := iterable.(type) {
	case *List:
		elem = t.Elem
	case *Set:
		elem = t.Elem
	case *Map:
		elem = t.Key
	default:
		if IsError(t) || isPrimitive(t, Dynamic) {
			elem = t
			break
		}
		c.report(InvalidOperation, s.Iterable.Span(), "cannot iterate over %s", t)
		elem = TypeError
	}

	leave := c.enterScope()
	defer leave()

	c.define(&Symbol{Name: s.Iterator.Name, Kind: &VariableKind{}, Type: elem, Span: s.Iterator.Span()})

	for _, inner := range s.Body.Stmts {
		c.checkStmt(inner)
	}
}

func (c *Checker) checkReturn(s *ast.ReturnStmt) {
	if c.fn == nil {
		c.report(InvalidOperation, s.Span(), "return outside of a function")
		if s.Value != nil {
			c.inferExpr(s.Value)
		}
		return
	}

	if s.Value == nil {
		if !Compatible(c.fn.ret, TypeNothing) {
			c.report(ReturnTypeMismatch, s.Span(), "missing return value, function returns %s", c.fn.ret)
		}
		return
	}

	if actual, ok := c.checkValue(c.fn.ret, s.Value); !ok {
		c.report(ReturnTypeMismatch, s.Value.Span(), "cannot return %s from a function returning %s", actual, c.fn.ret)
	}
}

// checkBranch checks the statements of an if branch in their own scope.
// As a value, the branch has the type of its trailing expression statement,
// or nothing.
func (c *Checker) checkBranch(b *ast.BlockStmt, value bool) Type {
	leave := c.enterScope()
	defer leave()

	var typ Type = TypeNothing

	for i, s := range b.Stmts {
		if es, ok := s.(*ast.ExprStmt); ok && value && i == len(b.Stmts)-1 {
			typ = c.inferExpr(es.Expr)
			continue
		}
		c.checkStmt(s)
	}

	return typ
}
