package parser

import (
	"github.com/aegis-lang/aegis/internal/ast"
	"github.com/aegis-lang/aegis/internal/lexer"
)

// inSection reports whether curTok still belongs to the indented section
// introduced on a line with the given indentation. Sections also end at any
// definition keyword.
func (p *Parser) inSection(indent int) bool {
	return p.curTok.Type != lexer.EOF &&
		!isDefinitionStart(p.curTok.Type) &&
		p.curTok.Span.Column > indent
}

// parseContractDef parses
//
//	contract Name[<T, ...>]:
//	    field: Type
func (p *Parser) parseContractDef() *ast.ContractDef {
	contractTok := p.curTok
	p.nextToken()

	name, ok := p.expectIdent("contract name")
	if !ok {
		return nil
	}

	var typeParams []*ast.Ident
	if p.curTok.Type == lexer.LT {
		if typeParams, ok = p.parseTypeParams(); !ok {
			return nil
		}
	}

	colon, ok := p.expect(lexer.COLON, "after contract name")
	if !ok {
		return nil
	}

	var fields []*ast.ContractField
	for p.curTok.Span.Line == colon.Span.Line || p.inSection(contractTok.LineIndent) {
		if p.curTok.Type == lexer.EOF || isDefinitionStart(p.curTok.Type) {
			break
		}

		field := p.parseContractField()
		if field == nil {
			return nil
		}
		fields = append(fields, field)

		if p.curTok.Type == lexer.COMMA {
			p.nextToken()
		}
	}

	return ast.NewContractDef(name, typeParams, fields, p.spanFrom(contractTok.Span))
}

func (p *Parser) parseContractField() *ast.ContractField {
	name, ok := p.expectIdent("field name in contract")
	if !ok {
		return nil
	}

	if _, ok := p.expect(lexer.COLON, "after field name"); !ok {
		return nil
	}

	typ := p.parseTypeExpr()
	if typ == nil {
		return nil
	}

	return ast.NewContractField(name, typ, p.spanFrom(name.Span()))
}

// parseEnumDef parses
//
//	enum Name:
//	    Variant
//	    Variant(Type, ...)
func (p *Parser) parseEnumDef() *ast.EnumDef {
	enumTok := p.curTok
	p.nextToken()

	name, ok := p.expectIdent("enum name")
	if !ok {
		return nil
	}

	colon, ok := p.expect(lexer.COLON, "after enum name")
	if !ok {
		return nil
	}

	var variants []*ast.EnumVariant
	for p.curTok.Span.Line == colon.Span.Line || p.inSection(enumTok.LineIndent) {
		if p.curTok.Type == lexer.EOF || isDefinitionStart(p.curTok.Type) {
			break
		}

		variant := p.parseEnumVariant()
		if variant == nil {
			return nil
		}
		variants = append(variants, variant)

		if p.curTok.Type == lexer.COMMA {
			p.nextToken()
		}
	}

	if len(variants) == 0 {
		p.reportExpected("at least one enum variant", p.curTok)
		return nil
	}

	return ast.NewEnumDef(name, variants, p.spanFrom(enumTok.Span))
}

func (p *Parser) parseEnumVariant() *ast.EnumVariant {
	name, ok := p.expectIdent("variant name")
	if !ok {
		return nil
	}

	var types []ast.TypeExpr
	if p.curTok.Type == lexer.LPAREN {
		p.nextToken()
		for p.curTok.Type != lexer.RPAREN {
			typ := p.parseTypeExpr()
			if typ == nil {
				return nil
			}
			types = append(types, typ)

			if p.curTok.Type != lexer.COMMA {
				break
			}
			p.nextToken()
		}

		if _, ok := p.expect(lexer.RPAREN, "to close variant types"); !ok {
			return nil
		}
	}

	return ast.NewEnumVariant(name, types, p.spanFrom(name.Span()))
}

// parseAppDef parses an app: state declarations, handlers and one show block.
//
//	app Counter:
//	    let's track count = 0
//	    let's increment():
//	        count = count + 1
//	    show:
//	        column:
//	            text "Count: {count}"
func (p *Parser) parseAppDef() *ast.AppDef {
	appTok := p.curTok
	p.nextToken()

	name, ok := p.expectIdent("app name")
	if !ok {
		return nil
	}

	if _, ok := p.expect(lexer.COLON, "after app name"); !ok {
		return nil
	}

	app := ast.NewAppDef(name, nil, nil, appTok.Span)
	indent := appTok.LineIndent

	for p.curTok.Type != lexer.EOF && p.curTok.Span.Column > indent {
		startTok := p.curTok

		switch p.curTok.Type {
		case lexer.SHOW:
			show := p.parseShowBlock()
			if show == nil {
				p.recoverStatement(startTok)
				continue
			}
			if app.Show != nil {
				p.reportError("app already has a show block", startTok.Span)
			} else {
				app.Show = show
			}

		case lexer.LET:
			member := p.parseLetOrFunction()
			if member == nil {
				p.recoverStatement(startTok)
				continue
			}
			app.Members = append(app.Members, member)

		case lexer.ASYNC:
			fn := p.parseAsyncFunction()
			if fn == nil {
				p.recoverStatement(startTok)
				continue
			}
			app.Members = append(app.Members, fn)

		default:
			p.reportUnexpected(p.curTok, "in app body, expected let's or show")
			p.recoverStatement(startTok)
			continue
		}

		p.expectLineEnd("app member")
	}

	app.SetSpan(p.spanFrom(appTok.Span))

	return app
}

func (p *Parser) parseShowBlock() *ast.ShowBlock {
	showTok := p.curTok
	p.nextToken()

	colon, ok := p.expect(lexer.COLON, "after show")
	if !ok {
		return nil
	}

	if p.curTok.Type == lexer.EOF ||
		(p.curTok.Span.Line != colon.Span.Line && p.curTok.Span.Column <= colon.LineIndent) {
		p.reportExpected("UI element in show block", p.curTok)
		return nil
	}

	root := p.parseUIElement()
	if root == nil {
		return nil
	}

	return ast.NewShowBlock(root, p.spanFrom(showTok.Span))
}

// parseUIElement parses one component line with its properties and, after a
// trailing ':', its indented children and event bindings.
//
//	button "Add", color: "blue":
//	    when_clicked:
//	        count = count + 1
func (p *Parser) parseUIElement() *ast.UIElement {
	nameTok := p.curTok
	name, ok := p.expectIdent("UI component name")
	if !ok {
		return nil
	}

	el := ast.NewUIElement(name, nil, nil, nameTok.Span)
	line := nameTok.Span.Line

	for p.curTok.Type != lexer.EOF && p.curTok.Span.Line == line && p.curTok.Type != lexer.COLON {
		prop := p.parseUIProp()
		if prop == nil {
			return nil
		}
		el.Props = append(el.Props, prop)

		if p.curTok.Type == lexer.COMMA {
			p.nextToken()
		}
	}

	if p.curTok.Type != lexer.COLON || p.curTok.Span.Line != line {
		el.SetSpan(p.spanFrom(nameTok.Span))
		return el
	}

	colon := p.curTok
	p.nextToken()

	if p.curTok.Type != lexer.EOF && p.curTok.Span.Line == colon.Span.Line {
		if !p.parseUIChild(el) {
			return nil
		}
		el.SetSpan(p.spanFrom(nameTok.Span))
		return el
	}

	indent := colon.LineIndent
	for p.curTok.Type != lexer.EOF && p.curTok.Span.Column > indent {
		startTok := p.curTok
		if !p.parseUIChild(el) {
			p.recoverStatement(startTok)
			continue
		}
		p.expectLineEnd("UI element")
	}

	el.SetSpan(p.spanFrom(nameTok.Span))

	return el
}

// parseUIChild parses a nested element or an event binding into parent.
func (p *Parser) parseUIChild(parent *ast.UIElement) bool {
	if p.curTok.Type == lexer.IDENT && isEventName(p.curTok.Literal) && p.peekTok.Type == lexer.COLON {
		event := ast.NewIdent(p.curTok.Literal, p.curTok.Span)
		p.nextToken()
		colon := p.curTok
		p.nextToken()

		body := p.parseBody(colon)
		if body == nil {
			return false
		}

		parent.Props = append(parent.Props, ast.NewEventBinding(event, body, p.spanFrom(event.Span())))
		return true
	}

	child := p.parseUIElement()
	if child == nil {
		return false
	}
	parent.Children = append(parent.Children, child)

	return true
}

func (p *Parser) parseUIProp() ast.UIProp {
	// `key: value` on one line is a named property; a trailing `name:` opens
	// the element's children and is left for the caller.
	if p.curTok.Type == lexer.IDENT && p.peekTok.Type == lexer.COLON {
		if next := p.peekSecond(); next.Type != lexer.EOF && next.Span.Line == p.peekTok.Span.Line {
			return p.parseNamedProp()
		}
	}

	value := p.parseExpr(precedenceLowest)
	if value == nil {
		return nil
	}

	return ast.NewPositionalProp(value)
}

func (p *Parser) parseNamedProp() ast.UIProp {
	key := ast.NewIdent(p.curTok.Literal, p.curTok.Span)
	p.nextToken()
	p.nextToken() // ':'

	value := p.parseExpr(precedenceLowest)
	if value == nil {
		return nil
	}

	return ast.NewNamedProp(key, value, p.spanFrom(key.Span()))
}
