package lexer

import (
	"strings"
	"unicode/utf8"
)

// Lexer turns Aegis source text into a stream of tokens, one per NextToken
// call. It never fails: unrecognised input becomes an ILLEGAL token and the
// end of input is reported as EOF on every call after it is reached.
type Lexer struct {
	input    string
	pos      int // byte offset of the next unread byte
	line     int
	column   int
	filename string

	lineIndent  int  // column of the first token on the current line
	atLineStart bool // no token has been produced on the current line yet
}

// New returns a lexer positioned at the start of input.
func New(input string) *Lexer {
	return &Lexer{
		input:       input,
		line:        1,
		column:      1,
		atLineStart: true,
	}
}

// SetFilename attributes every subsequent span to name.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

func (l *Lexer) peekByte(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

// atEnd reports whether the input is exhausted. A NUL byte ends the input
// as well.
func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input) || l.input[l.pos] == 0
}

// advance consumes n bytes on the current line.
func (l *Lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.input); i++ {
		if l.input[l.pos] == '\n' {
			l.line++
			l.column = 1
			l.atLineStart = true
		} else if l.input[l.pos]&0xC0 != 0x80 {
			// continuation bytes of a UTF-8 sequence share one column
			l.column++
		}
		l.pos++
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		switch ch := l.input[l.pos]; ch {
		case ' ', '\t', '\r', '\n':
			l.advance(1)
		case '#':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.advance(1)
			}
		default:
			return
		}
	}
}

func (l *Lexer) makeToken(tokType TokenType, literal string, startLine, startColumn, startPos int) Token {
	return Token{
		Type:    tokType,
		Literal: literal,
		Span: Span{
			Filename: l.filename,
			Line:     startLine,
			Column:   startColumn,
			Start:    startPos,
			End:      l.pos,
		},
		LineIndent: l.lineIndent,
	}
}

// NextToken scans and returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	if l.atLineStart {
		l.lineIndent = l.column
		l.atLineStart = false
	}

	startLine, startColumn, startPos := l.line, l.column, l.pos

	if l.atEnd() {
		return l.makeToken(EOF, "", startLine, startColumn, startPos)
	}

	ch := l.input[l.pos]

	op := func(single TokenType, pairs ...TokenType) Token {
		next := l.peekByte(1)
		for _, pair := range pairs {
			if next != 0 && string(pair)[1] == next {
				l.advance(2)
				return l.makeToken(pair, string(pair), startLine, startColumn, startPos)
			}
		}
		l.advance(1)
		return l.makeToken(single, string(single), startLine, startColumn, startPos)
	}

	switch ch {
	case '=':
		return op(ASSIGN, FATARROW, EQ)
	case '!':
		return op(BANG, NOT_EQ)
	case '<':
		return op(LT, LE)
	case '>':
		return op(GT, GE)
	case '-':
		return op(MINUS, ARROW)
	case '+':
		return op(PLUS)
	case '*':
		return op(ASTERISK)
	case '/':
		return op(SLASH)
	case '.':
		return op(DOT)
	case ',':
		return op(COMMA)
	case ':':
		return op(COLON)
	case '(':
		return op(LPAREN)
	case ')':
		return op(RPAREN)
	case '{':
		return op(LBRACE)
	case '}':
		return op(RBRACE)
	case '[':
		return op(LBRACKET)
	case ']':
		return op(RBRACKET)
	case '"':
		value, terminated := l.readString()
		if !terminated {
			return l.makeToken(ILLEGAL, `"`, startLine, startColumn, startPos)
		}
		return l.makeToken(STRING, value, startLine, startColumn, startPos)
	}

	if isIdentStart(ch) {
		ident := l.readIdentifier()
		return l.makeToken(LookupIdent(ident), ident, startLine, startColumn, startPos)
	}

	if isDigit(ch) {
		num := l.readNumber()
		return l.makeToken(NUMBER, num, startLine, startColumn, startPos)
	}

	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	literal := string(r)
	if r == utf8.RuneError {
		literal = l.input[l.pos : l.pos+size]
	}
	l.advance(size)

	return l.makeToken(ILLEGAL, literal, startLine, startColumn, startPos)
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.advance(1)
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readNumber() string {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.advance(1)
	}
	return l.input[start:l.pos]
}

// readString consumes a string literal starting at the opening quote. It
// reports false when the input ends before the closing quote, in which case
// everything up to the end of input has been consumed.
func (l *Lexer) readString() (value string, terminated bool) {
	l.advance(1) // opening quote
	// a string spanning lines does not start a new line of tokens
	defer func() { l.atLineStart = false }()

	var b strings.Builder
	for !l.atEnd() {
		ch := l.input[l.pos]
		switch ch {
		case '"':
			l.advance(1)
			return b.String(), true
		case '\\':
			next := l.peekByte(1)
			if next == 0 {
				l.advance(1)
				continue
			}
			switch next {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(next)
			}
			l.advance(2)
		default:
			b.WriteByte(ch)
			l.advance(1)
		}
	}

	return b.String(), false
}

func isIdentStart(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || ch == '\''
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
