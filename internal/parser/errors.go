package parser

import (
	"fmt"

	"github.com/aegis-lang/aegis/internal/diag"
	"github.com/aegis-lang/aegis/internal/lexer"
)

// ParseError captures a recoverable parsing error with location context.
type ParseError struct {
	Message  string
	Span     lexer.Span
	Severity diag.Severity
	Code     diag.Code
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Span.Line, e.Span.Column, e.Message)
}

// ToDiagnostic converts the parse error into the shared diagnostic model.
func (e ParseError) ToDiagnostic() diag.Diagnostic {
	stage := diag.StageParser
	if e.Code == diag.CodeLexerIllegalChar || e.Code == diag.CodeLexerUnterminatedString {
		stage = diag.StageLexer
	}

	return diag.Diagnostic{
		Stage:    stage,
		Severity: e.Severity,
		Code:     e.Code,
		Message:  e.Message,
		Span:     diag.Span(e.Span),
	}
}

// emitParseDiagnostic records a recoverable diagnostic without aborting parsing.
func (p *Parser) emitParseDiagnostic(msg string, code diag.Code, span lexer.Span) {
	if span.Filename == "" && p.filename != "" {
		span.Filename = p.filename
	}

	p.errors = append(p.errors, ParseError{
		Message:  msg,
		Span:     span,
		Severity: diag.SeverityError,
		Code:     code,
	})
}

// reportError reports a simple error.
func (p *Parser) reportError(msg string, span lexer.Span) {
	p.emitParseDiagnostic(msg, diag.CodeParseUnexpectedToken, span)
}

// reportExpected reports that what was expected where tok was found.
func (p *Parser) reportExpected(what string, tok lexer.Token) {
	if tok.Type == lexer.ILLEGAL {
		p.reportIllegal(tok)
		return
	}

	p.emitParseDiagnostic(fmt.Sprintf("expected %s, found %s", what, describe(tok)), diag.CodeParseExpectedToken, tok.Span)
}

// reportUnexpected reports a token that cannot start anything in context.
func (p *Parser) reportUnexpected(tok lexer.Token, context string) {
	if tok.Type == lexer.ILLEGAL {
		p.reportIllegal(tok)
		return
	}

	p.emitParseDiagnostic(fmt.Sprintf("unexpected %s %s", describe(tok), context), diag.CodeParseUnexpectedToken, tok.Span)
}

func (p *Parser) reportIllegal(tok lexer.Token) {
	if tok.Literal == `"` {
		p.emitParseDiagnostic("unterminated string literal", diag.CodeLexerUnterminatedString, tok.Span)
		return
	}

	p.emitParseDiagnostic(fmt.Sprintf("illegal character %q", tok.Literal), diag.CodeLexerIllegalChar, tok.Span)
}

func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.EOF:
		return "end of input"
	case lexer.IDENT:
		return fmt.Sprintf("identifier '%s'", tok.Literal)
	case lexer.NUMBER:
		return fmt.Sprintf("number %s", tok.Literal)
	case lexer.STRING:
		return fmt.Sprintf("string %q", tok.Literal)
	}

	if lexer.IsKeyword(tok.Type) {
		return fmt.Sprintf("keyword '%s'", tok.Literal)
	}

	return fmt.Sprintf("'%s'", tok.Literal)
}
