package types

import (
	"github.com/aegis-lang/aegis/internal/ast"
	"github.com/aegis-lang/aegis/internal/lexer"
)

var primitives = map[string]Type{
	"number":  TypeNumber,
	"boolean": TypeBoolean,
	"string":  TypeString,
	"nothing": TypeNothing,
	"dynamic": TypeDynamic,
}

// builtinGenerics maps the builtin generic names to their parameter count.
var builtinGenerics = map[string]int{
	"List":     1,
	"Set":      1,
	"Optional": 1,
	"Future":   1,
	"Map":      2,
}

// resolveType turns a syntactic type reference into a Type.
//
// With strict set, a name that is neither a primitive nor a declared type
// reports UndefinedType and resolves to the error sentinel. Otherwise it
// resolves to a Custom placeholder without a diagnostic.
func (c *Checker) resolveType(te ast.TypeExpr, strict bool) Type {
	switch t := te.(type) {
	case *ast.SimpleType:
		return c.resolveNamed(t.Name, t.Span(), strict)
	case *ast.GenericType:
		return c.resolveGeneric(t, strict)
	default:
		return TypeError
	}
}

func (c *Checker) resolveNamed(name string, span lexer.Span, strict bool) Type {
	if sym := c.scope.Lookup(name); sym != nil {
		switch k := sym.Kind.(type) {
		case *TypeKind, *EnumKind, *ContractKind:
			return sym.Type
		case *GenericContractKind:
			c.report(InvalidGenericArgs, span, "%s needs %d type arguments", name, len(k.Params))
			return TypeError
		}
	}

	if t, ok := primitives[name]; ok {
		return t
	}

	if strict {
		c.report(UndefinedType, span, "undefined type %s", name)
		return TypeError
	}

	return &Custom{Name: name}
}

func (c *Checker) resolveGeneric(t *ast.GenericType, strict bool) Type {
	args := make([]Type, len(t.Args))
	failed := false
	for i, a := range t.Args {
		args[i] = c.resolveType(a, strict)
		failed = failed || IsError(args[i])
	}

	// user declarations shadow the builtin generics
	if sym := c.scope.Lookup(t.Name); sym != nil {
		k, ok := sym.Kind.(*GenericContractKind)
		if !ok {
			c.report(InvalidGenericArgs, t.Span(), "%s does not take type arguments", t.Name)
			return TypeError
		}
		if len(args) != len(k.Params) {
			c.report(InvalidGenericArgs, t.Span(), "%s expects %d type arguments, found %d", t.Name, len(k.Params), len(args))
			return TypeError
		}
		if failed {
			return TypeError
		}
		return &Concrete{Name: t.Name, Args: args}
	}

	n, ok := builtinGenerics[t.Name]
	if !ok {
		c.report(UndefinedType, t.Span(), "undefined generic type %s", t.Name)
		return TypeError
	}
	if len(args) != n {
		c.report(InvalidGenericArgs, t.Span(), "%s expects %d type arguments, found %d", t.Name, n, len(args))
		return TypeError
	}
	if failed {
		return TypeError
	}

	switch t.Name {
	case "List":
		return &List{Elem: args[0]}
	case "Set":
		return &Set{Elem: args[0]}
	case "Optional":
		return &Optional{Elem: args[0]}
	case "Future":
		return &Future{Elem: args[0]}
	default:
		return &Map{Key: args[0], Value: args[1]}
	}
}

// contractFields returns the fields of the contract t names, with generic
// parameters substituted for a Concrete type.
func (c *Checker) contractFields(t Type) ([]Field, bool) {
	switch t := t.(type) {
	case *Custom:
		if sym := c.scope.Lookup(t.Name); sym != nil {
			if k, ok := sym.Kind.(*ContractKind); ok {
				return k.Fields, true
			}
		}

	case *Concrete:
		if sym := c.scope.Lookup(t.Name); sym != nil {
			if k, ok := sym.Kind.(*GenericContractKind); ok && len(k.Params) == len(t.Args) {
				subst := make(map[string]Type, len(k.Params))
				for i, p := range k.Params {
					subst[p] = t.Args[i]
				}

				fields := make([]Field, len(k.Fields))
				for i, f := range k.Fields {
					fields[i] = Field{Name: f.Name, Type: Substitute(f.Type, subst)}
				}
				return fields, true
			}
		}
	}

	return nil, false
}
