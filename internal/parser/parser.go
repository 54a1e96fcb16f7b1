package parser

import (
	"github.com/aegis-lang/aegis/internal/ast"
	"github.com/aegis-lang/aegis/internal/lexer"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

type Option func(*options)

type options struct {
	filename string
}

// WithFilename configures the parser to attribute all emitted spans to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

const (
	precedenceLowest = iota
	precedenceAssign
	precedenceEquals
	precedenceLessGreater
	precedenceSum
	precedenceProduct
	precedencePrefix
	precedenceCall
	precedenceMember
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:   precedenceAssign,
	lexer.EQ:       precedenceEquals,
	lexer.NOT_EQ:   precedenceEquals,
	lexer.LT:       precedenceLessGreater,
	lexer.LE:       precedenceLessGreater,
	lexer.GT:       precedenceLessGreater,
	lexer.GE:       precedenceLessGreater,
	lexer.PLUS:     precedenceSum,
	lexer.MINUS:    precedenceSum,
	lexer.ASTERISK: precedenceProduct,
	lexer.SLASH:    precedenceProduct,
	lexer.LPAREN:   precedenceCall,
	lexer.DOT:      precedenceMember,
}

// Parser implements a Pratt-style recursive descent parser for Aegis.
//
//   - Lookahead: curTok is the token under examination and peekTok the one
//     after it. Both only change in nextToken.
//   - Position: every parse routine returns with curTok on the first token
//     after the construct it recognised.
//   - Layout: a block opened by ':' either holds the single statement that
//     follows on the same line, or every following line indented deeper
//     than the line holding the ':'.
//   - Diagnostics: errors is append-only and never stops the parse.
type Parser struct {
	lx      *lexer.Lexer
	curTok  lexer.Token
	peekTok lexer.Token
	prevTok lexer.Token // last token consumed, used to close spans

	errors []ParseError

	filename string

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New returns a parser reading tokens from lx.
func New(lx *lexer.Lexer, opts ...Option) *Parser {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Parser{
		lx:        lx,
		prefixFns: make(map[lexer.TokenType]prefixParseFn),
		infixFns:  make(map[lexer.TokenType]infixParseFn),
		filename:  cfg.filename,
	}

	if cfg.filename != "" {
		p.lx.SetFilename(cfg.filename)
	}

	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBoolLiteral)
	p.registerPrefix(lexer.FALSE, p.parseBoolLiteral)
	p.registerPrefix(lexer.NOTHING, p.parseNothingLiteral)
	p.registerPrefix(lexer.MINUS, p.parsePrefixExpr)
	p.registerPrefix(lexer.BANG, p.parsePrefixExpr)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(lexer.LBRACKET, p.parseListLiteral)
	p.registerPrefix(lexer.LBRACE, p.parseMapLiteral)
	p.registerPrefix(lexer.IF, p.parseIfExpr)
	p.registerPrefix(lexer.WHEN, p.parseWhenExpr)
	p.registerPrefix(lexer.AWAIT, p.parseAwaitExpr)
	p.registerPrefix(lexer.ILLEGAL, p.parseIllegal)

	p.registerInfix(lexer.ASSIGN, p.parseAssignExpr)
	p.registerInfix(lexer.PLUS, p.parseInfixExpr)
	p.registerInfix(lexer.MINUS, p.parseInfixExpr)
	p.registerInfix(lexer.ASTERISK, p.parseInfixExpr)
	p.registerInfix(lexer.SLASH, p.parseInfixExpr)
	p.registerInfix(lexer.EQ, p.parseInfixExpr)
	p.registerInfix(lexer.NOT_EQ, p.parseInfixExpr)
	p.registerInfix(lexer.LT, p.parseInfixExpr)
	p.registerInfix(lexer.LE, p.parseInfixExpr)
	p.registerInfix(lexer.GT, p.parseInfixExpr)
	p.registerInfix(lexer.GE, p.parseInfixExpr)
	p.registerInfix(lexer.LPAREN, p.parseCallExpr)
	p.registerInfix(lexer.DOT, p.parseMemberExpr)

	// Seed curTok/peekTok.
	p.nextToken()
	p.nextToken()

	return p
}

// ParseSource parses src in one step and returns the program with any
// parse errors.
func ParseSource(src string, opts ...Option) (*ast.Program, []ParseError) {
	p := New(lexer.New(src), opts...)
	prog := p.ParseProgram()
	return prog, p.Errors()
}

// Errors returns all recoverable parse errors that were encountered.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// ParseProgram parses definitions until the end of input. It always
// returns a program; definitions that failed to parse are left out and
// reported through Errors.
func (p *Parser) ParseProgram() *ast.Program {
	prog := ast.NewProgram(p.curTok.Span)

	for p.curTok.Type != lexer.EOF {
		startTok := p.curTok
		errCount := len(p.errors)

		def := p.parseDefinition()
		if def != nil {
			prog.Definitions = append(prog.Definitions, def)
			p.expectLineEnd("definition")
			continue
		}

		if len(p.errors) == errCount {
			p.reportUnexpected(p.curTok, "at top level")
		}

		p.recoverDefinition(startTok)
	}

	prog.SetSpan(mergeSpan(prog.Span(), p.curTok.Span))

	return prog
}

func (p *Parser) parseDefinition() ast.Definition {
	switch p.curTok.Type {
	case lexer.CONTRACT:
		if def := p.parseContractDef(); def != nil {
			return def
		}
	case lexer.ENUM:
		if def := p.parseEnumDef(); def != nil {
			return def
		}
	case lexer.APP:
		if def := p.parseAppDef(); def != nil {
			return def
		}
	case lexer.LET:
		return p.parseLetOrFunction()
	case lexer.ASYNC:
		if def := p.parseAsyncFunction(); def != nil {
			return def
		}
	case lexer.FOR:
		if stmt := p.parseForStmt(); stmt != nil {
			return ast.NewStmtDef(stmt)
		}
	}

	return nil
}

// nextToken advances the parser's token window. The lexer is only queried
// from here.
func (p *Parser) nextToken() {
	p.prevTok = p.curTok
	p.curTok = p.peekTok
	p.peekTok = p.lx.NextToken()
}

// peekSecond returns the token after peekTok without consuming anything.
// The lexer holds no references, so scanning a copy leaves it untouched.
func (p *Parser) peekSecond() lexer.Token {
	lx := *p.lx
	return lx.NextToken()
}

// expect consumes curTok when it has type tt and reports an error mentioning
// context otherwise.
func (p *Parser) expect(tt lexer.TokenType, context string) (lexer.Token, bool) {
	if p.curTok.Type == tt {
		tok := p.curTok
		p.nextToken()
		return tok, true
	}

	p.reportExpected("'"+string(tt)+"' "+context, p.curTok)
	return p.curTok, false
}

func (p *Parser) expectIdent(context string) (*ast.Ident, bool) {
	if p.curTok.Type != lexer.IDENT {
		p.reportExpected(context, p.curTok)
		return nil, false
	}

	ident := ast.NewIdent(p.curTok.Literal, p.curTok.Span)
	p.nextToken()

	return ident, true
}

// expectLineEnd reports tokens left on the line of the construct that was
// just parsed.
func (p *Parser) expectLineEnd(what string) {
	if p.curTok.Type == lexer.EOF || p.curTok.Span.Line != p.prevTok.Span.Line {
		return
	}

	p.reportExpected("end of line after "+what, p.curTok)
	p.skipLine()
}

// skipLine drops the remaining tokens on the line of the last consumed token.
func (p *Parser) skipLine() {
	line := p.prevTok.Span.Line
	for p.curTok.Type != lexer.EOF && p.curTok.Span.Line == line {
		p.nextToken()
	}
}

// recoverDefinition advances past a failed top-level definition. At least one
// token is always consumed, then tokens are skipped until a definition
// keyword that begins a line.
func (p *Parser) recoverDefinition(start lexer.Token) {
	if sameToken(p.curTok, start) {
		p.nextToken()
	}

	for p.curTok.Type != lexer.EOF {
		if isDefinitionStart(p.curTok.Type) && p.curTok.Span.Column == p.curTok.LineIndent {
			return
		}
		p.nextToken()
	}
}

// recoverStatement advances past a failed statement inside a block by
// skipping the rest of the line the failure was detected on. At least one
// token is always consumed.
func (p *Parser) recoverStatement(start lexer.Token) {
	if sameToken(p.curTok, start) {
		p.nextToken()
	}

	p.skipLine()
}

func sameToken(a, b lexer.Token) bool {
	return a.Type == b.Type && a.Span.Start == b.Span.Start && a.Span.End == b.Span.End
}

func isDefinitionStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.LET, lexer.CONTRACT, lexer.APP, lexer.ENUM, lexer.ASYNC, lexer.FOR:
		return true
	default:
		return false
	}
}

func (p *Parser) registerPrefix(tt lexer.TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

func (p *Parser) registerInfix(tt lexer.TokenType, fn infixParseFn) {
	p.infixFns[tt] = fn
}

func mergeSpan(start, end lexer.Span) lexer.Span {
	if start.Filename == "" {
		start.Filename = end.Filename
	}
	if end.End > start.End {
		start.End = end.End
	}
	return start
}

// spanFrom covers start through the last consumed token.
func (p *Parser) spanFrom(start lexer.Span) lexer.Span {
	return mergeSpan(start, p.prevTok.Span)
}
