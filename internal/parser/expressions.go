package parser

import (
	"strings"

	"github.com/aegis-lang/aegis/internal/ast"
	"github.com/aegis-lang/aegis/internal/lexer"
)

var infixOps = map[lexer.TokenType]ast.InfixOp{
	lexer.PLUS:     ast.OpAdd,
	lexer.MINUS:    ast.OpSub,
	lexer.ASTERISK: ast.OpMul,
	lexer.SLASH:    ast.OpDiv,
	lexer.EQ:       ast.OpEq,
	lexer.NOT_EQ:   ast.OpNotEq,
	lexer.LT:       ast.OpLt,
	lexer.GT:       ast.OpGt,
	lexer.LE:       ast.OpLe,
	lexer.GE:       ast.OpGe,
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curTok.Type]; ok {
		return prec
	}
	return precedenceLowest
}

// continuesExpr reports whether curTok may extend the expression that ended
// with prevTok. A call parenthesis or a minus sign on a new line starts a new
// statement instead.
func (p *Parser) continuesExpr() bool {
	if p.curTok.Span.Line == p.prevTok.Span.Line {
		return true
	}

	switch p.curTok.Type {
	case lexer.LPAREN, lexer.MINUS:
		return false
	default:
		return true
	}
}

func (p *Parser) parseExpr(precedence int) ast.Expr {
	prefix := p.prefixFns[p.curTok.Type]
	if prefix == nil {
		p.reportExpected("expression", p.curTok)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for p.curTok.Type != lexer.EOF && precedence < p.curPrecedence() && p.continuesExpr() {
		infix := p.infixFns[p.curTok.Type]
		if infix == nil {
			return left
		}

		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parseIdentifier() ast.Expr {
	tok := p.curTok
	p.nextToken()

	if tok.Literal == "ask_javascript" && p.curTok.Type == lexer.STRING {
		code := p.curTok.Literal
		p.nextToken()
		return ast.NewAskJsExpr(code, p.spanFrom(tok.Span))
	}

	return ast.NewIdent(tok.Literal, tok.Span)
}

func (p *Parser) parseNumberLiteral() ast.Expr {
	tok := p.curTok
	p.nextToken()
	return ast.NewNumberLit(tok.Literal, tok.Span)
}

func (p *Parser) parseStringLiteral() ast.Expr {
	tok := p.curTok
	p.nextToken()
	return ast.NewStringLit(tok.Literal, tok.Span)
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	tok := p.curTok
	p.nextToken()
	return ast.NewBoolLit(tok.Type == lexer.TRUE, tok.Span)
}

func (p *Parser) parseNothingLiteral() ast.Expr {
	tok := p.curTok
	p.nextToken()
	return ast.NewNothingLit(tok.Span)
}

func (p *Parser) parseIllegal() ast.Expr {
	p.reportIllegal(p.curTok)
	return nil
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	tok := p.curTok
	p.nextToken()

	right := p.parseExpr(precedencePrefix)
	if right == nil {
		return nil
	}

	op := ast.OpNegate
	if tok.Type == lexer.BANG {
		op = ast.OpNot
	}

	return ast.NewPrefixExpr(op, right, p.spanFrom(tok.Span))
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	tok := p.curTok
	precedence := p.curPrecedence()
	p.nextToken()

	right := p.parseExpr(precedence)
	if right == nil {
		return nil
	}

	return ast.NewInfixExpr(infixOps[tok.Type], left, right, p.spanFrom(left.Span()))
}

func (p *Parser) parseAssignExpr(left ast.Expr) ast.Expr {
	target, ok := left.(*ast.Ident)
	if !ok {
		p.reportError("invalid assignment target", left.Span())
		return nil
	}

	p.nextToken()

	// right associative: a = b = c
	value := p.parseExpr(precedenceAssign - 1)
	if value == nil {
		return nil
	}

	return ast.NewAssignExpr(target, value, p.spanFrom(left.Span()))
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	p.nextToken()

	expr := p.parseExpr(precedenceLowest)
	if expr == nil {
		return nil
	}

	if _, ok := p.expect(lexer.RPAREN, "to close parenthesized expression"); !ok {
		return nil
	}

	return expr
}

func (p *Parser) parseCallExpr(callee ast.Expr) ast.Expr {
	p.nextToken() // '('

	args, ok := p.parseExprList(lexer.RPAREN)
	if !ok {
		return nil
	}

	if _, ok := p.expect(lexer.RPAREN, "to close argument list"); !ok {
		return nil
	}

	return ast.NewCallExpr(callee, args, p.spanFrom(callee.Span()))
}

// parseExprList parses comma separated expressions up to, but not including,
// closing. It fails only when an element fails to parse.
func (p *Parser) parseExprList(closing lexer.TokenType) ([]ast.Expr, bool) {
	var items []ast.Expr

	for p.curTok.Type != closing && p.curTok.Type != lexer.EOF && !p.atDefinitionLine() {
		item := p.parseExpr(precedenceLowest)
		if item == nil {
			return nil, false
		}
		items = append(items, item)

		if p.curTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}

	return items, true
}

// atDefinitionLine reports whether curTok begins a new top-level definition,
// which bounds unclosed literals.
func (p *Parser) atDefinitionLine() bool {
	return isDefinitionStart(p.curTok.Type) && p.curTok.Span.Column == p.curTok.LineIndent
}

func (p *Parser) parseMemberExpr(object ast.Expr) ast.Expr {
	p.nextToken() // '.'

	prop, ok := p.expectIdent("property name after '.'")
	if !ok {
		return nil
	}

	return ast.NewMemberExpr(object, prop, p.spanFrom(object.Span()))
}

func (p *Parser) parseListLiteral() ast.Expr {
	start := p.curTok.Span
	p.nextToken()

	elems, ok := p.parseExprList(lexer.RBRACKET)
	if !ok {
		return nil
	}

	list := ast.NewListLit(elems, start)
	if p.curTok.Type == lexer.RBRACKET {
		p.nextToken()
	} else {
		p.reportExpected("']' to close list literal", p.curTok)
	}
	list.SetSpan(p.spanFrom(start))

	return list
}

// parseMapLiteral parses `{key: value, ...}` with optional commas. A missing
// closing brace is reported but the entries parsed so far are still returned.
func (p *Parser) parseMapLiteral() ast.Expr {
	start := p.curTok.Span
	p.nextToken()

	m := ast.NewMapLit(nil, start)

	for p.curTok.Type != lexer.RBRACE && p.curTok.Type != lexer.EOF && !p.atDefinitionLine() {
		key := p.parseExpr(precedenceLowest)
		if key == nil {
			return nil
		}

		if _, ok := p.expect(lexer.COLON, "after map key"); !ok {
			return nil
		}

		value := p.parseExpr(precedenceLowest)
		if value == nil {
			return nil
		}

		m.Entries = append(m.Entries, &ast.MapEntry{Key: key, Value: value})

		// commas between pairs are optional
		if p.curTok.Type == lexer.COMMA {
			p.nextToken()
		}
	}

	if p.curTok.Type == lexer.RBRACE {
		p.nextToken()
	} else {
		p.reportExpected("'}' to close map literal", p.curTok)
	}
	m.SetSpan(p.spanFrom(start))

	return m
}

func (p *Parser) parseAwaitExpr() ast.Expr {
	tok := p.curTok
	p.nextToken()

	value := p.parseExpr(precedencePrefix)
	if value == nil {
		return nil
	}

	return ast.NewAwaitExpr(value, p.spanFrom(tok.Span))
}

// parseIfExpr parses `if cond: body [else: body | else if ...]`. An else
// belongs to this if when it follows on the same line or sits at the
// indentation of the line holding the if.
func (p *Parser) parseIfExpr() ast.Expr {
	ifTok := p.curTok
	p.nextToken()

	cond := p.parseExpr(precedenceLowest)
	if cond == nil {
		return nil
	}

	colon, ok := p.expect(lexer.COLON, "after if condition")
	if !ok {
		return nil
	}

	consequence := p.parseBody(colon)
	if consequence == nil {
		return nil
	}

	var alternative ast.Stmt
	if p.curTok.Type == lexer.ELSE &&
		(p.curTok.Span.Line == p.prevTok.Span.Line || p.curTok.Span.Column == ifTok.LineIndent) {
		p.nextToken()

		if p.curTok.Type == lexer.IF {
			nestedStart := p.curTok.Span
			nested := p.parseIfExpr()
			if nested == nil {
				return nil
			}
			alternative = ast.NewExprStmt(nested, p.spanFrom(nestedStart))
		} else {
			colon, ok := p.expect(lexer.COLON, "after else")
			if !ok {
				return nil
			}
			body := p.parseBody(colon)
			if body == nil {
				return nil
			}
			alternative = body
		}
	}

	return ast.NewIfExpr(cond, consequence, alternative, p.spanFrom(ifTok.Span))
}

// parseWhenExpr parses
//
//	when subject:
//	    is pattern => expr
//	    else => expr
func (p *Parser) parseWhenExpr() ast.Expr {
	whenTok := p.curTok
	p.nextToken()

	subject := p.parseExpr(precedenceLowest)
	if subject == nil {
		return nil
	}

	colon, ok := p.expect(lexer.COLON, "after when subject")
	if !ok {
		return nil
	}

	var cases []*ast.WhenCase
	for p.curTok.Type == lexer.IS || p.curTok.Type == lexer.ELSE {
		if p.curTok.Span.Line != colon.Span.Line && p.curTok.Span.Column <= colon.LineIndent {
			break
		}

		c := p.parseWhenCase()
		if c == nil {
			return nil
		}
		cases = append(cases, c)
	}

	if len(cases) == 0 {
		p.reportExpected("'is' or 'else' case in when expression", p.curTok)
		return nil
	}

	return ast.NewWhenExpr(subject, cases, p.spanFrom(whenTok.Span))
}

func (p *Parser) parseWhenCase() *ast.WhenCase {
	start := p.curTok

	var pattern ast.Pattern
	if start.Type == lexer.ELSE {
		pattern = ast.NewElsePattern(start.Span)
		p.nextToken()
	} else {
		p.nextToken() // 'is'
		pattern = p.parsePattern()
		if pattern == nil {
			return nil
		}
	}

	if _, ok := p.expect(lexer.FATARROW, "after when pattern"); !ok {
		return nil
	}

	body := p.parseExpr(precedenceLowest)
	if body == nil {
		return nil
	}

	return ast.NewWhenCase(pattern, body, p.spanFrom(start.Span))
}

func (p *Parser) parsePattern() ast.Pattern {
	switch p.curTok.Type {
	case lexer.NUMBER, lexer.STRING, lexer.TRUE, lexer.FALSE, lexer.NOTHING:
		return ast.NewLiteralPattern(p.prefixFns[p.curTok.Type]())

	case lexer.IDENT:
		name := ast.NewIdent(p.curTok.Literal, p.curTok.Span)
		p.nextToken()

		if p.curTok.Type != lexer.DOT {
			return ast.NewIdentPattern(name)
		}
		p.nextToken()

		variant, ok := p.expectIdent("variant name in pattern")
		if !ok {
			return nil
		}

		var bindings []*ast.Ident
		if p.curTok.Type == lexer.LPAREN {
			p.nextToken()
			for p.curTok.Type != lexer.RPAREN {
				b, ok := p.expectIdent("binding name in pattern")
				if !ok {
					return nil
				}
				bindings = append(bindings, b)

				if p.curTok.Type != lexer.COMMA {
					break
				}
				p.nextToken()
			}
			if _, ok := p.expect(lexer.RPAREN, "to close pattern bindings"); !ok {
				return nil
			}
		}

		return ast.NewEnumVariantPattern(name, variant, bindings, p.spanFrom(name.Span()))

	default:
		p.reportExpected("pattern", p.curTok)
		return nil
	}
}

// isEventName reports whether an app child line names an event handler.
func isEventName(name string) bool {
	return strings.HasPrefix(name, "when_") || strings.HasPrefix(name, "on_")
}
