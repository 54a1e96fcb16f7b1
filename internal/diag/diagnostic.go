package diag

import "fmt"

// Stage identifies which compiler phase produced the diagnostic.
type Stage string

const (
	StageLexer    Stage = "lexer"
	StageParser   Stage = "parser"
	StageSemantic Stage = "semantic"
	StageLower    Stage = "lower"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// LabeledSpan represents a span with an optional label (like Rust's primary/secondary labels).
type LabeledSpan struct {
	Span  Span
	Label string // Optional label (e.g., "expected `number`, found `string`")
	Style string // "primary" or "secondary" - primary spans are emphasized
}

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors, surfaced by the parser when it meets an ILLEGAL token
	CodeLexerUnterminatedString Code = "LEXER_UNTERMINATED_STRING"
	CodeLexerIllegalChar        Code = "LEXER_ILLEGAL_CHAR"

	// Parser errors
	CodeParseUnexpectedToken Code = "PARSE_UNEXPECTED_TOKEN"
	CodeParseExpectedToken   Code = "PARSE_EXPECTED_TOKEN"

	// Semantic errors
	CodeUndefinedSymbol      Code = "SEM_UNDEFINED_SYMBOL"
	CodeTypeMismatch         Code = "SEM_TYPE_MISMATCH"
	CodeArityMismatch        Code = "SEM_ARITY_MISMATCH"
	CodeReturnTypeMismatch   Code = "SEM_RETURN_TYPE_MISMATCH"
	CodeAwaitOutsideAsync    Code = "SEM_AWAIT_OUTSIDE_ASYNC"
	CodeDuplicateDeclaration Code = "SEM_DUPLICATE_DECLARATION"
	CodeInvalidMemberAccess  Code = "SEM_INVALID_MEMBER_ACCESS"
	CodeInvalidOperation     Code = "SEM_INVALID_OPERATION"
	CodeMissingField         Code = "SEM_MISSING_FIELD"
	CodeInvalidUIComponent   Code = "SEM_INVALID_UI_COMPONENT"
	CodeUnknownField         Code = "SEM_UNKNOWN_FIELD"
	CodeInvalidFieldKey      Code = "SEM_INVALID_FIELD_KEY"
	CodeUndefinedType        Code = "SEM_UNDEFINED_TYPE"
	CodeInvalidGenericArgs   Code = "SEM_INVALID_GENERIC_ARGS"
	CodeInvalidPattern       Code = "SEM_INVALID_PATTERN"

	// Lowering errors
	CodeLowerUnsupported Code = "LOWER_UNSUPPORTED"
	CodeLowerFailed      Code = "LOWER_FAILED"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a compiler diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
	// LabeledSpans allows multiple spans with labels (like Rust's error format).
	// When empty, Span is shown as the only primary span.
	LabeledSpans []LabeledSpan
	Notes        []string
	Help         string
}

// WithLabeledSpan adds a labeled span to the diagnostic.
func (d Diagnostic) WithLabeledSpan(span Span, label string, style string) Diagnostic {
	if style == "" {
		style = "primary"
	}
	d.LabeledSpans = append(d.LabeledSpans, LabeledSpan{
		Span:  span,
		Label: label,
		Style: style,
	})
	return d
}

// WithPrimarySpan adds a primary labeled span.
func (d Diagnostic) WithPrimarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "primary")
}

// WithSecondarySpan adds a secondary labeled span.
func (d Diagnostic) WithSecondarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "secondary")
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// HasErrors reports whether any diagnostic in ds is an error.
func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
