package parser

import (
	"github.com/aegis-lang/aegis/internal/ast"
	"github.com/aegis-lang/aegis/internal/lexer"
)

// parseBody parses the block that follows colon, which has already been
// consumed. The block is either the single statement on the colon's line or
// the run of following lines indented deeper than the colon's line.
func (p *Parser) parseBody(colon lexer.Token) *ast.BlockStmt {
	start := p.curTok.Span
	block := ast.NewBlockStmt(nil, start)

	if p.curTok.Type != lexer.EOF && p.curTok.Span.Line == colon.Span.Line {
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		block.Stmts = append(block.Stmts, stmt)
		block.SetSpan(p.spanFrom(start))
		return block
	}

	indent := colon.LineIndent

	if p.curTok.Type == lexer.EOF || p.curTok.Span.Column <= indent {
		p.reportExpected("indented block", p.curTok)
		return nil
	}

	for p.curTok.Type != lexer.EOF && p.curTok.Span.Column > indent {
		startTok := p.curTok

		stmt := p.parseStatement()
		if stmt == nil {
			p.recoverStatement(startTok)
			continue
		}

		block.Stmts = append(block.Stmts, stmt)
		p.expectLineEnd("statement")
	}

	block.SetSpan(p.spanFrom(start))

	return block
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.curTok.Type {
	case lexer.LET:
		def := p.parseLetOrFunction()
		switch def := def.(type) {
		case *ast.StmtDef:
			return def.Stmt
		case *ast.FunctionDef:
			p.reportError("functions can only be defined at the top level or in an app", def.Name.Span())
		}
		return nil

	case lexer.FOR:
		if stmt := p.parseForStmt(); stmt != nil {
			return stmt
		}
		return nil

	case lexer.RETURN:
		return p.parseReturnStmt()

	default:
		start := p.curTok.Span
		expr := p.parseExpr(precedenceLowest)
		if expr == nil {
			return nil
		}
		return ast.NewExprStmt(expr, p.spanFrom(start))
	}
}

// parseLetOrFunction handles everything introduced by `let's`: a function
// definition when the name is directly followed by '(' and a let statement
// otherwise. A nil result is always an untyped nil.
func (p *Parser) parseLetOrFunction() ast.Definition {
	letTok := p.curTok

	if p.peekTok.Type == lexer.IDENT {
		p.nextToken()
		if p.peekTok.Type == lexer.LPAREN {
			if fn := p.parseFunctionRest(letTok, false); fn != nil {
				return fn
			}
			return nil
		}
	} else {
		p.nextToken()
	}

	if stmt := p.parseLetRest(letTok); stmt != nil {
		return ast.NewStmtDef(stmt)
	}

	return nil
}

// parseLetRest parses `[track] name [: Type] = value` after `let's`.
func (p *Parser) parseLetRest(letTok lexer.Token) *ast.LetStmt {
	tracked := false
	if p.curTok.Type == lexer.TRACK {
		tracked = true
		p.nextToken()
	}

	name, ok := p.expectIdent("variable name after let's")
	if !ok {
		return nil
	}

	var typ ast.TypeExpr
	if p.curTok.Type == lexer.COLON {
		p.nextToken()
		if typ = p.parseTypeExpr(); typ == nil {
			return nil
		}
	}

	if _, ok := p.expect(lexer.ASSIGN, "after variable name in let's"); !ok {
		return nil
	}

	value := p.parseExpr(precedenceLowest)
	if value == nil {
		return nil
	}

	return ast.NewLetStmt(name, tracked, typ, value, p.spanFrom(letTok.Span))
}

func (p *Parser) parseAsyncFunction() *ast.FunctionDef {
	asyncTok := p.curTok
	p.nextToken()

	if p.curTok.Type != lexer.LET {
		p.reportExpected("let's after async", p.curTok)
		return nil
	}
	p.nextToken()

	if p.curTok.Type != lexer.IDENT || p.peekTok.Type != lexer.LPAREN {
		p.reportExpected("function name and parameter list after async let's", p.curTok)
		return nil
	}

	return p.parseFunctionRest(asyncTok, true)
}

// parseFunctionRest parses `name(params) [-> Type]: body` with curTok on the
// name.
func (p *Parser) parseFunctionRest(startTok lexer.Token, async bool) *ast.FunctionDef {
	name, _ := p.expectIdent("function name")
	p.nextToken() // '('

	var params []*ast.Param
	for p.curTok.Type != lexer.RPAREN {
		param := p.parseParam()
		if param == nil {
			return nil
		}
		params = append(params, param)

		if p.curTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}

	if _, ok := p.expect(lexer.RPAREN, "to close parameter list"); !ok {
		return nil
	}

	var ret ast.TypeExpr
	if p.curTok.Type == lexer.ARROW {
		p.nextToken()
		if ret = p.parseTypeExpr(); ret == nil {
			return nil
		}
	}

	colon, ok := p.expect(lexer.COLON, "before function body")
	if !ok {
		return nil
	}

	body := p.parseBody(colon)
	if body == nil {
		return nil
	}

	return ast.NewFunctionDef(name, async, params, ret, body, p.spanFrom(startTok.Span))
}

func (p *Parser) parseParam() *ast.Param {
	name, ok := p.expectIdent("parameter name")
	if !ok {
		return nil
	}

	if _, ok := p.expect(lexer.COLON, "after parameter name"); !ok {
		return nil
	}

	typ := p.parseTypeExpr()
	if typ == nil {
		return nil
	}

	return ast.NewParam(name, typ, p.spanFrom(name.Span()))
}

// parseForStmt parses `for item in iterable: body`.
func (p *Parser) parseForStmt() *ast.ForStmt {
	forTok := p.curTok
	p.nextToken()

	iter, ok := p.expectIdent("loop variable after for")
	if !ok {
		return nil
	}

	if _, ok := p.expect(lexer.IN, "after loop variable"); !ok {
		return nil
	}

	iterable := p.parseExpr(precedenceLowest)
	if iterable == nil {
		return nil
	}

	colon, ok := p.expect(lexer.COLON, "before loop body")
	if !ok {
		return nil
	}

	body := p.parseBody(colon)
	if body == nil {
		return nil
	}

	return ast.NewForStmt(iter, iterable, body, p.spanFrom(forTok.Span))
}

// parseReturnStmt parses `return [value]`. The value must start on the same
// line as the keyword.
func (p *Parser) parseReturnStmt() ast.Stmt {
	retTok := p.curTok
	p.nextToken()

	if p.curTok.Type == lexer.EOF || p.curTok.Span.Line != retTok.Span.Line || p.curTok.Type == lexer.ELSE {
		return ast.NewReturnStmt(nil, retTok.Span)
	}

	value := p.parseExpr(precedenceLowest)
	if value == nil {
		return nil
	}

	return ast.NewReturnStmt(value, p.spanFrom(retTok.Span))
}
