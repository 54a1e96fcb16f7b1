package parser

import (
	"github.com/aegis-lang/aegis/internal/ast"
	"github.com/aegis-lang/aegis/internal/lexer"
)

// parseTypeExpr parses `Name` or `Name<Type, ...>`.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	tok := p.curTok

	var name string
	switch tok.Type {
	case lexer.IDENT:
		name = tok.Literal
	case lexer.NOTHING:
		name = "nothing"
	default:
		p.reportExpected("type name", tok)
		return nil
	}
	p.nextToken()

	if p.curTok.Type != lexer.LT {
		return ast.NewSimpleType(name, tok.Span)
	}
	p.nextToken()

	var args []ast.TypeExpr
	for {
		arg := p.parseTypeExpr()
		if arg == nil {
			return nil
		}
		args = append(args, arg)

		if p.curTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}

	if _, ok := p.expect(lexer.GT, "to close generic arguments"); !ok {
		return nil
	}

	return ast.NewGenericType(name, args, p.spanFrom(tok.Span))
}

// parseTypeParams parses `<T, U>` after a contract name.
func (p *Parser) parseTypeParams() ([]*ast.Ident, bool) {
	p.nextToken() // '<'

	var params []*ast.Ident
	for {
		param, ok := p.expectIdent("generic parameter name")
		if !ok {
			return nil, false
		}
		params = append(params, param)

		if p.curTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}

	if _, ok := p.expect(lexer.GT, "to close generic parameters"); !ok {
		return nil, false
	}

	return params, true
}
