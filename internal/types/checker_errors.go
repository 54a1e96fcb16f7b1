package types

import (
	"fmt"

	"github.com/aegis-lang/aegis/internal/diag"
	"github.com/aegis-lang/aegis/internal/lexer"
)

// ErrorKind classifies semantic errors.
type ErrorKind int

const (
	UndefinedSymbol ErrorKind = iota
	TypeMismatch
	ArityMismatch
	ReturnTypeMismatch
	AwaitOutsideAsync
	DuplicateDeclaration
	InvalidMemberAccess
	InvalidOperation
	MissingField
	InvalidUIComponent
	UnknownField
	InvalidFieldKey
	UndefinedType
	InvalidGenericArgs
	InvalidPattern
)

var errorKinds = [...]struct {
	name string
	code diag.Code
}{
	UndefinedSymbol:      {"UndefinedSymbol", diag.CodeUndefinedSymbol},
	TypeMismatch:         {"TypeMismatch", diag.CodeTypeMismatch},
	ArityMismatch:        {"ArityMismatch", diag.CodeArityMismatch},
	ReturnTypeMismatch:   {"ReturnTypeMismatch", diag.CodeReturnTypeMismatch},
	AwaitOutsideAsync:    {"AwaitOutsideAsync", diag.CodeAwaitOutsideAsync},
	DuplicateDeclaration: {"DuplicateDeclaration", diag.CodeDuplicateDeclaration},
	InvalidMemberAccess:  {"InvalidMemberAccess", diag.CodeInvalidMemberAccess},
	InvalidOperation:     {"InvalidOperation", diag.CodeInvalidOperation},
	MissingField:         {"MissingField", diag.CodeMissingField},
	InvalidUIComponent:   {"InvalidUIComponent", diag.CodeInvalidUIComponent},
	UnknownField:         {"UnknownField", diag.CodeUnknownField},
	InvalidFieldKey:      {"InvalidFieldKey", diag.CodeInvalidFieldKey},
	UndefinedType:        {"UndefinedType", diag.CodeUndefinedType},
	InvalidGenericArgs:   {"InvalidGenericArgs", diag.CodeInvalidGenericArgs},
	InvalidPattern:       {"InvalidPattern", diag.CodeInvalidPattern},
}

func (k ErrorKind) String() string {
	if int(k) < 0 || int(k) >= len(errorKinds) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return errorKinds[k].name
}

// Code returns the stable diagnostic code for k.
func (k ErrorKind) Code() diag.Code {
	if int(k) < 0 || int(k) >= len(errorKinds) {
		return ""
	}
	return errorKinds[k].code
}

// SemanticError is one diagnostic produced by the Checker.
type SemanticError struct {
	Kind    ErrorKind
	Message string
	Span    lexer.Span

	// Previous points at the earlier declaration for DuplicateDeclaration.
	Previous lexer.Span
	Help     string
}

func (e SemanticError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Span.Line, e.Span.Column, e.Message)
}

// ToDiagnostic converts the error into the shared diagnostic model.
func (e SemanticError) ToDiagnostic() diag.Diagnostic {
	span := diag.Span(e.Span)

	d := diag.Diagnostic{
		Stage:    diag.StageSemantic,
		Severity: diag.SeverityError,
		Code:     e.Kind.Code(),
		Message:  e.Message,
		Span:     span,
	}

	if span.IsValid() {
		d = d.WithPrimarySpan(span, "")
	}

	if prev := diag.Span(e.Previous); prev.IsValid() {
		d = d.WithSecondarySpan(prev, "previously declared here")
	}

	if e.Help != "" {
		d = d.WithHelp(e.Help)
	}

	return d
}

func (c *Checker) report(kind ErrorKind, span lexer.Span, format string, args ...any) *SemanticError {
	c.Errors = append(c.Errors, SemanticError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	})

	return &c.Errors[len(c.Errors)-1]
}
