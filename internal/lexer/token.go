package lexer

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token.
// Start and End are byte offsets into the source; End is exclusive.
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int
	End      int
}

// Len returns the number of source bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Token represents a lexical token
type Token struct {
	Type TokenType
	// Literal is the identifier or operator text, the digits of a number,
	// the decoded contents of a string, or the offending character of an
	// ILLEGAL token.
	Literal string
	Span    Span
	// LineIndent is the column of the first token on this token's line.
	LineIndent int
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"  // counter, ask_javascript, user's
	NUMBER TokenType = "NUMBER" // 1343456
	STRING TokenType = "STRING" // "hello"

	// Operators
	ASSIGN   TokenType = "="
	FATARROW TokenType = "=>"
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	BANG     TokenType = "!"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"

	LT     TokenType = "<"
	GT     TokenType = ">"
	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LE     TokenType = "<="
	GE     TokenType = ">="

	// Delimiters
	COMMA TokenType = ","
	COLON TokenType = ":"
	DOT   TokenType = "."
	ARROW TokenType = "->"

	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Keywords
	LET      TokenType = "LET"
	APP      TokenType = "APP"
	TRACK    TokenType = "TRACK"
	WHEN     TokenType = "WHEN"
	SHOW     TokenType = "SHOW"
	CONTRACT TokenType = "CONTRACT"
	FOR      TokenType = "FOR"
	IN       TokenType = "IN"
	IS       TokenType = "IS"
	RETURN   TokenType = "RETURN"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"
	IF       TokenType = "IF"
	ELSE     TokenType = "ELSE"
	ASYNC    TokenType = "ASYNC"
	AWAIT    TokenType = "AWAIT"
	NOTHING  TokenType = "NOTHING"
	ENUM     TokenType = "ENUM"
)

var keywords = map[string]TokenType{
	"let's":    LET,
	"app":      APP,
	"track":    TRACK,
	"when":     WHEN,
	"show":     SHOW,
	"contract": CONTRACT,
	"for":      FOR,
	"in":       IN,
	"is":       IS,
	"return":   RETURN,
	"true":     TRUE,
	"false":    FALSE,
	"if":       IF,
	"else":     ELSE,
	"async":    ASYNC,
	"await":    AWAIT,
	"nothing":  NOTHING,
	"enum":     ENUM,
}

// LookupIdent checks if an identifier is a keyword.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether t is one of the reserved words.
func IsKeyword(t TokenType) bool {
	for _, kw := range keywords {
		if kw == t {
			return true
		}
	}
	return false
}
