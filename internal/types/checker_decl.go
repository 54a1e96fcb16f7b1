package types

import (
	"strings"

	"github.com/aegis-lang/aegis/internal/ast"
)

// uiComponents lists the elements a show block may use.
var uiComponents = map[string]bool{
	"column": true,
	"row":    true,
	"stack":  true,
	"text":   true,
	"button": true,
	"image":  true,
	"input":  true,
	"spacer": true,
	"list":   true,
}

func (c *Checker) checkContractDef(def *ast.ContractDef) {
	name := def.Name.Name

	if len(def.TypeParams) == 0 {
		c.define(&Symbol{
			Name: name,
			Kind: &ContractKind{Fields: c.resolveFields(def.Fields)},
			Type: &Custom{Name: name},
			Span: def.Name.Span(),
		})
		return
	}

	// The parameters are only visible while resolving the field types.
	leave := c.enterScope()

	params := make([]string, len(def.TypeParams))
	for i, p := range def.TypeParams {
		params[i] = p.Name
		c.define(&Symbol{Name: p.Name, Kind: &TypeKind{}, Type: &Generic{Param: p.Name}, Span: p.Span()})
	}

	fields := c.resolveFields(def.Fields)
	leave()

	c.define(&Symbol{
		Name: name,
		Kind: &GenericContractKind{Params: params, Fields: fields},
		Type: &Custom{Name: name},
		Span: def.Name.Span(),
	})
}

func (c *Checker) resolveFields(defs []*ast.ContractField) []Field {
	fields := make([]Field, 0, len(defs))
	seen := make(map[string]*ast.ContractField, len(defs))

	for _, f := range defs {
		typ := c.resolveType(f.Type, true)

		if prev, ok := seen[f.Name.Name]; ok {
			e := c.report(DuplicateDeclaration, f.Name.Span(), "field %s is already declared", f.Name.Name)
			e.Previous = prev.Name.Span()
			continue
		}
		seen[f.Name.Name] = f

		fields = append(fields, Field{Name: f.Name.Name, Type: typ})
	}

	return fields
}

func (c *Checker) checkEnumDef(def *ast.EnumDef) {
	enum := &Enum{Name: def.Name.Name}
	names := make([]string, 0, len(def.Variants))

	for _, v := range def.Variants {
		if _, dup := enum.Variant(v.Name.Name); dup {
			c.report(DuplicateDeclaration, v.Name.Span(), "variant %s is already declared in %s", v.Name.Name, enum.Name)
			continue
		}

		var assoc []Type
		for _, t := range v.Types {
			assoc = append(assoc, c.resolveType(t, false))
		}

		enum.Variants = append(enum.Variants, Variant{Name: v.Name.Name, Types: assoc})
		names = append(names, v.Name.Name)
	}

	c.define(&Symbol{
		Name: enum.Name,
		Kind: &EnumKind{Variants: names},
		Type: enum,
		Span: def.Name.Span(),
	})
}

func (c *Checker) checkFunctionDef(def *ast.FunctionDef) {
	params := make([]Type, len(def.Params))
	for i, p := range def.Params {
		params[i] = c.resolveType(p.Type, false)
	}

	var ret Type = TypeNothing
	if def.ReturnType != nil {
		ret = c.resolveType(def.ReturnType, false)
	}

	// Defined before the body is checked so the function can call itself.
	c.define(&Symbol{
		Name: def.Name.Name,
		Kind: &FunctionKind{Params: params, Return: ret, Async: def.Async},
		Type: &Function{Params: params, Return: callResult(ret, def.Async)},
		Span: def.Name.Span(),
	})

	leave := c.enterScope()
	defer leave()

	outer := c.fn
	defer func() { c.fn = outer }()

	// An async function declared to return Future<T> returns T values.
	value := ret
	if f, ok := ret.(*Future); ok && def.Async {
		value = f.Elem
	}
	c.fn = &funcContext{async: def.Async, ret: value}

	for i, p := range def.Params {
		c.define(&Symbol{Name: p.Name.Name, Kind: &VariableKind{}, Type: params[i], Span: p.Name.Span()})
	}

	if def.Body != nil {
		for _, s := range def.Body.Stmts {
			c.checkStmt(s)
		}
	}
}

// callResult is the type produced by calling a function declared to return ret.
func callResult(ret Type, async bool) Type {
	if !async {
		return ret
	}
	if _, ok := ret.(*Future); ok {
		return ret
	}
	return &Future{Elem: ret}
}

func (c *Checker) checkAppDef(def *ast.AppDef) {
	name := def.Name.Name

	c.define(&Symbol{
		Name: name,
		Kind: &TypeKind{},
		Type: &Custom{Name: "App<" + name + ">"},
		Span: def.Name.Span(),
	})

	leave := c.enterScope()
	defer leave()

	for _, m := range def.Members {
		c.checkDefinition(m)
	}

	if def.Show != nil && def.Show.Root != nil {
		c.checkUIElement(def.Show.Root)
	}
}

func (c *Checker) checkUIElement(el *ast.UIElement) {
	if !uiComponents[el.Name.Name] {
		e := c.report(InvalidUIComponent, el.Name.Span(), "unknown UI component %s", el.Name.Name)
		e.Help = "use one of column, row, stack, text, button, image, input, spacer or list"
	}

	for _, prop := range el.Props {
		switch p := prop.(type) {
		case *ast.PositionalProp:
			c.checkUIValue(p.Value)
		case *ast.NamedProp:
			c.checkUIValue(p.Value)
		case *ast.EventBinding:
			leave := c.enterScope()
			for _, s := range p.Body.Stmts {
				c.checkStmt(s)
			}
			leave()
		}
	}

	for _, child := range el.Children {
		c.checkUIElement(child)
	}
}

func (c *Checker) checkUIValue(v ast.Expr) {
	c.inferExpr(v)

	if s, ok := v.(*ast.StringLit); ok {
		c.checkInterpolation(s)
	}
}

// checkInterpolation resolves every {name} or {name.field} placeholder in a
// string shown in the UI. Braces holding anything else are plain text.
func (c *Checker) checkInterpolation(s *ast.StringLit) {
	rest := s.Value

	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			return
		}
		rest = rest[open+1:]

		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return
		}
		expr := strings.TrimSpace(rest[:end])
		rest = rest[end+1:]

		root, _, _ := strings.Cut(expr, ".")
		if !isIdentifier(root) {
			continue
		}

		if c.scope.Lookup(root) == nil {
			c.report(UndefinedSymbol, s.Span(), "undefined %s in string interpolation", root)
		}
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
		case r == '\'' && i > 0:
		default:
			return false
		}
	}

	return true
}
