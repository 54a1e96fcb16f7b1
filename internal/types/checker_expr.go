package types

import (
	"github.com/aegis-lang/aegis/internal/ast"
)

// inferExpr returns the type of expr, reporting what is wrong with it. An
// expression that failed has the error sentinel type, which never causes
// further errors.
func (c *Checker) inferExpr(expr ast.Expr) Type {
	switch e := expr.(type) {
	case *ast.NumberLit:
		return TypeNumber
	case *ast.StringLit:
		return TypeString
	case *ast.BoolLit:
		return TypeBoolean
	case *ast.NothingLit:
		return TypeNothing
	case *ast.Ident:
		return c.inferIdent(e)
	case *ast.ListLit:
		return c.inferList(e)
	case *ast.MapLit:
		return c.inferMap(e)
	case *ast.PrefixExpr:
		return c.inferPrefix(e)
	case *ast.InfixExpr:
		return c.inferInfix(e)
	case *ast.AssignExpr:
		return c.inferAssign(e)
	case *ast.IfExpr:
		return c.inferIf(e, true)
	case *ast.WhenExpr:
		return c.inferWhen(e, true)
	case *ast.CallExpr:
		return c.inferCall(e)
	case *ast.MemberExpr:
		return c.inferMember(e)
	case *ast.AwaitExpr:
		return c.inferAwait(e)
	case *ast.AskJsExpr:
		return TypeDynamic
	case nil:
		return TypeError
	default:
		c.report(InvalidOperation, expr.Span(), "unsupported expression")
		return TypeError
	}
}

func (c *Checker) inferIdent(id *ast.Ident) Type {
	sym := c.scope.Lookup(id.Name)
	if sym == nil {
		c.report(UndefinedSymbol, id.Span(), "undefined: %s", id.Name)
		return TypeError
	}

	switch sym.Kind.(type) {
	case *VariableKind, *FunctionKind:
		return sym.Type
	default:
		c.report(InvalidOperation, id.Span(), "%s is a type, not a value", id.Name)
		return TypeError
	}
}

func (c *Checker) inferList(l *ast.ListLit) Type {
	if len(l.Elements) == 0 {
		return &List{Elem: TypeDynamic}
	}

	var elem Type
	for _, el := range l.Elements {
		t := c.inferExpr(el)
		switch {
		case IsError(t):
		case elem == nil:
			elem = t
		case !Identical(elem, t):
			c.report(TypeMismatch, el.Span(), "list elements must share a type: %s and %s", elem, t)
		}
	}

	if elem == nil {
		elem = TypeError
	}

	return &List{Elem: elem}
}

// inferMap infers a map literal. Bare identifier keys are field names and
// count as strings.
func (c *Checker) inferMap(m *ast.MapLit) Type {
	if len(m.Entries) == 0 {
		return &Map{Key: TypeDynamic, Value: TypeDynamic}
	}

	var key, value Type
	for i, e := range m.Entries {
		var kt Type = TypeString
		if _, ok := e.Key.(*ast.Ident); !ok {
			kt = c.inferExpr(e.Key)
		}
		vt := c.inferExpr(e.Value)

		if i == 0 {
			key, value = kt, vt
			continue
		}
		if !Compatible(key, kt) {
			key = TypeDynamic
		}
		if !Compatible(value, vt) {
			value = TypeDynamic
		}
	}

	return &Map{Key: key, Value: value}
}

func (c *Checker) inferPrefix(e *ast.PrefixExpr) Type {
	right := c.inferExpr(e.Right)
	if IsError(right) {
		return TypeError
	}

	want := TypeNumber
	if e.Op == ast.OpNot {
		want = TypeBoolean
	}

	if !Identical(want, right) {
		c.report(InvalidOperation, e.Span(), "operator %s requires %s, found %s", e.Op, want, right)
		return TypeError
	}

	return want
}

func (c *Checker) inferInfix(e *ast.InfixExpr) Type {
	left := c.inferExpr(e.Left)
	right := c.inferExpr(e.Right)
	if IsError(left) || IsError(right) {
		return TypeError
	}

	switch {
	case e.Op.IsArithmetic(), e.Op.IsComparison():
		if !isPrimitive(left, Number) || !isPrimitive(right, Number) {
			c.report(InvalidOperation, e.Span(), "operator %s requires number operands, found %s and %s", e.Op, left, right)
			return TypeError
		}
		if e.Op.IsArithmetic() {
			return TypeNumber
		}
		return TypeBoolean

	case e.Op == ast.OpEq, e.Op == ast.OpNotEq:
		if !Identical(left, right) {
			c.report(TypeMismatch, e.Span(), "cannot compare %s with %s", left, right)
			return TypeError
		}
		return TypeBoolean

	default:
		c.report(InvalidOperation, e.Span(), "unsupported operator %s", e.Op)
		return TypeError
	}
}

func (c *Checker) inferAssign(e *ast.AssignExpr) Type {
	sym := c.scope.Lookup(e.Target.Name)
	value := c.inferExpr(e.Value)

	switch {
	case sym == nil:
		c.report(UndefinedSymbol, e.Target.Span(), "undefined: %s", e.Target.Name)
	case !isVariable(sym):
		c.report(InvalidOperation, e.Target.Span(), "cannot assign to %s", e.Target.Name)
	case !Compatible(sym.Type, value):
		c.report(TypeMismatch, e.Value.Span(), "cannot assign %s to %s of type %s", value, e.Target.Name, sym.Type)
	}

	return TypeNothing
}

func isVariable(sym *Symbol) bool {
	_, ok := sym.Kind.(*VariableKind)
	return ok
}

// inferIf checks an if expression. As a value both branches must have the
// same type; without an else the result is nothing.
func (c *Checker) inferIf(e *ast.IfExpr, value bool) Type {
	if cond := c.inferExpr(e.Cond); !Compatible(TypeBoolean, cond) {
		c.report(TypeMismatch, e.Cond.Span(), "if condition must be boolean, found %s", cond)
	}

	then := c.checkBranch(e.Consequence, value)

	if e.Alternative == nil {
		return TypeNothing
	}

	var other Type = TypeNothing
	switch alt := e.Alternative.(type) {
	case *ast.BlockStmt:
		other = c.checkBranch(alt, value)
	case *ast.ExprStmt:
		if nested, ok := alt.Expr.(*ast.IfExpr); ok {
			other = c.inferIf(nested, value)
		} else {
			other = c.inferExpr(alt.Expr)
		}
	default:
		c.checkStmt(alt)
	}

	if !value {
		return TypeNothing
	}
	if IsError(then) || IsError(other) {
		return TypeError
	}
	if !Identical(then, other) {
		c.report(TypeMismatch, e.Span(), "if branches have different types: %s and %s", then, other)
		return TypeError
	}

	return then
}

// inferWhen checks a when expression. Each case is checked in its own scope
// holding the pattern's bindings. As a value every case must have the same
// type, which is the result.
func (c *Checker) inferWhen(e *ast.WhenExpr, value bool) Type {
	subject := c.inferExpr(e.Subject)

	bodies := make([]Type, 0, len(e.Cases))
	for _, wc := range e.Cases {
		leave := c.enterScope()
		c.checkPattern(wc.Pattern, subject)
		bodies = append(bodies, c.inferExpr(wc.Body))
		leave()
	}

	if !value || len(bodies) == 0 {
		return TypeNothing
	}

	for i := 1; i < len(bodies); i++ {
		prev, cur := bodies[i-1], bodies[i]
		if IsError(prev) || IsError(cur) {
			return TypeError
		}
		if !Identical(prev, cur) {
			c.report(TypeMismatch, e.Cases[i].Body.Span(), "when case has type %s, previous case has %s", cur, prev)
			return TypeError
		}
	}

	return bodies[0]
}

func (c *Checker) checkPattern(p ast.Pattern, subject Type) {
	switch p := p.(type) {
	case *ast.LiteralPattern:
		if t := c.inferExpr(p.Value); !Compatible(subject, t) {
			c.report(TypeMismatch, p.Span(), "%s pattern cannot match %s", t, subject)
		}

	case *ast.IdentPattern:
		c.define(&Symbol{Name: p.Name.Name, Kind: &VariableKind{}, Type: subject, Span: p.Name.Span()})

	case *ast.EnumVariantPattern:
		c.checkVariantPattern(p, subject)

	case *ast.ElsePattern:
	}
}

func (c *Checker) checkVariantPattern(p *ast.EnumVariantPattern, subject Type) {
	bindAll := func(t Type) {
		for _, b := range p.Bindings {
			c.define(&Symbol{Name: b.Name, Kind: &VariableKind{}, Type: t, Span: b.Span()})
		}
	}

	sym := c.scope.Lookup(p.Enum.Name)
	if sym == nil {
		c.report(UndefinedType, p.Enum.Span(), "undefined enum %s", p.Enum.Name)
		bindAll(TypeError)
		return
	}

	enum, ok := sym.Type.(*Enum)
	if _, isEnum := sym.Kind.(*EnumKind); !isEnum || !ok {
		c.report(InvalidPattern, p.Enum.Span(), "%s is not an enum", p.Enum.Name)
		bindAll(TypeError)
		return
	}

	if !IsError(subject) && !Identical(enum, subject) {
		c.report(TypeMismatch, p.Span(), "%s pattern cannot match %s", enum, subject)
	}

	variant, ok := enum.Variant(p.Variant.Name)
	if !ok {
		c.report(InvalidPattern, p.Variant.Span(), "%s has no variant %s", enum, p.Variant.Name)
		bindAll(TypeError)
		return
	}

	if len(p.Bindings) > 0 && len(p.Bindings) != len(variant.Types) {
		c.report(InvalidPattern, p.Span(), "%s.%s carries %d values, pattern binds %d", enum, variant.Name, len(variant.Types), len(p.Bindings))
		bindAll(TypeError)
		return
	}

	for i, b := range p.Bindings {
		c.define(&Symbol{Name: b.Name, Kind: &VariableKind{}, Type: variant.Types[i], Span: b.Span()})
	}
}

// enumNamed returns the enum declared under the identifier obj, if any.
func (c *Checker) enumNamed(obj ast.Expr) (*Enum, bool) {
	id, ok := obj.(*ast.Ident)
	if !ok {
		return nil, false
	}

	sym := c.scope.Lookup(id.Name)
	if sym == nil {
		return nil, false
	}
	if _, ok := sym.Kind.(*EnumKind); !ok {
		return nil, false
	}

	enum, ok := sym.Type.(*Enum)
	return enum, ok
}

func (c *Checker) inferCall(e *ast.CallExpr) Type {
	if m, ok := e.Callee.(*ast.MemberExpr); ok {
		if enum, ok := c.enumNamed(m.Object); ok {
			return c.inferVariantCall(enum, m, e)
		}
	}

	var (
		name   = "function"
		params []Type
		result Type
	)

	if id, ok := e.Callee.(*ast.Ident); ok {
		name = id.Name
	}

	callee := c.inferExpr(e.Callee)
	switch t := callee.(type) {
	case *Function:
		params, result = t.Params, t.Return
	default:
		for _, a := range e.Args {
			c.inferExpr(a)
		}
		if IsError(t) {
			return TypeError
		}
		if isPrimitive(t, Dynamic) {
			return TypeDynamic
		}
		c.report(InvalidOperation, e.Callee.Span(), "cannot call %s of type %s", name, t)
		return TypeError
	}

	if len(e.Args) != len(params) {
		c.report(ArityMismatch, e.Span(), "%s expects %d arguments, found %d", name, len(params), len(e.Args))
		for _, a := range e.Args {
			c.inferExpr(a)
		}
		return result
	}

	for i, a := range e.Args {
		if actual, ok := c.checkValue(params[i], a); !ok {
			c.report(TypeMismatch, a.Span(), "argument %d of %s expects %s, found %s", i+1, name, params[i], actual)
		}
	}

	return result
}

// inferVariantCall checks Enum.Variant(args). Any failure makes the whole
// expression an error.
func (c *Checker) inferVariantCall(enum *Enum, m *ast.MemberExpr, e *ast.CallExpr) Type {
	args := make([]Type, len(e.Args))
	for i, a := range e.Args {
		args[i] = c.inferExpr(a)
	}

	variant, ok := enum.Variant(m.Property.Name)
	if !ok {
		c.report(InvalidMemberAccess, m.Property.Span(), "%s has no variant %s", enum, m.Property.Name)
		return TypeError
	}

	if len(variant.Types) == 0 {
		c.report(InvalidOperation, e.Span(), "%s.%s carries no values and cannot be called", enum, variant.Name)
		return TypeError
	}

	if len(args) != len(variant.Types) {
		c.report(ArityMismatch, e.Span(), "%s.%s expects %d values, found %d", enum, variant.Name, len(variant.Types), len(args))
		return TypeError
	}

	failed := false
	for i, t := range args {
		if !Compatible(variant.Types[i], t) {
			c.report(TypeMismatch, e.Args[i].Span(), "value %d of %s.%s expects %s, found %s", i+1, enum, variant.Name, variant.Types[i], t)
			failed = true
		}
	}
	if failed {
		return TypeError
	}

	return enum
}

func (c *Checker) inferMember(e *ast.MemberExpr) Type {
	prop := e.Property.Name

	if enum, ok := c.enumNamed(e.Object); ok {
		variant, ok := enum.Variant(prop)
		if !ok {
			c.report(InvalidMemberAccess, e.Property.Span(), "%s has no variant %s", enum, prop)
			return TypeError
		}
		if len(variant.Types) > 0 {
			se := c.report(InvalidMemberAccess, e.Span(), "%s.%s carries %d values and must be called", enum, prop, len(variant.Types))
			se.Help = "construct it as " + enum.Name + "." + prop + "(...)"
			return TypeError
		}
		return enum
	}

	obj := c.inferExpr(e.Object)
	if IsError(obj) {
		return TypeError
	}
	if isPrimitive(obj, Dynamic) {
		return TypeDynamic
	}

	if fields, ok := c.contractFields(obj); ok {
		if f, ok := LookupField(fields, prop); ok {
			return f.Type
		}
		c.report(InvalidMemberAccess, e.Property.Span(), "%s has no field %s", obj, prop)
		return TypeError
	}

	c.report(InvalidMemberAccess, e.Span(), "cannot access %s on %s", prop, obj)

	return TypeError
}

func (c *Checker) inferAwait(e *ast.AwaitExpr) Type {
	if c.fn == nil || !c.fn.async {
		c.report(AwaitOutsideAsync, e.Span(), "await is only allowed inside async functions")
	}

	switch t := c.inferExpr(e.Value).(type) {
	case *Future:
		return t.Elem
	default:
		if IsError(t) || isPrimitive(t, Dynamic) {
			return t
		}
		c.report(InvalidOperation, e.Value.Span(), "cannot await %s", t)
		return TypeError
	}
}
