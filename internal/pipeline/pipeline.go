// Package pipeline runs the compiler stages over a source text:
// parse, semantic analysis, then lowering to IL.
package pipeline

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"
	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/aegis-lang/aegis/internal/ast"
	"github.com/aegis-lang/aegis/internal/diag"
	"github.com/aegis-lang/aegis/internal/il"
	"github.com/aegis-lang/aegis/internal/parser"
	"github.com/aegis-lang/aegis/internal/types"
)

// ErrHasDiagnostics is returned by Result.Err when the compilation reported
// any parse, semantic or lowering error.
var ErrHasDiagnostics = errors.New("compilation has diagnostics")

type (
	Option func(*options)

	options struct {
		filename string
		lower    bool
	}

	// Document is one source text compiled by CompileAll.
	Document struct {
		Name   string
		Source string
	}

	// Result is everything the stages produced. Program is always set.
	// Checker is nil when parsing failed, Sequences is nil unless the
	// program is free of diagnostics.
	Result struct {
		Name   string
		Source string

		Program        *ast.Program
		ParseErrors    []parser.ParseError
		Checker        *types.Checker
		SemanticErrors []types.SemanticError
		Sequences      []*il.Sequence

		// LowerError is the lowering failure, also returned by Compile.
		LowerError error
	}
)

// WithFilename attributes spans to filename instead of the document name.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// SkipLowering stops after semantic analysis.
func SkipLowering() Option {
	return func(o *options) {
		o.lower = false
	}
}

// Compile runs all stages over src. The error is non-nil only when
// lowering fails; language errors are reported in the Result.
func Compile(ctx context.Context, name, src string, opts ...Option) (res *Result, err error) {
	o := options{
		filename: name,
		lower:    true,
	}

	for _, opt := range opts {
		opt(&o)
	}

	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile", "name", name)
	defer tr.Finish("err", &err)

	tlog.SpanFromContext(ctx).Printw("compile", "size", len(src), "lower", o.lower)

	res = &Result{
		Name:   name,
		Source: src,
	}

	res.Program, res.ParseErrors = parser.ParseSource(src, parser.WithFilename(o.filename))

	logStage(tr, "parsed", "definitions", len(res.Program.Definitions), "errors", len(res.ParseErrors))

	if tr.If("dump") {
		tr.Printw("ast", "program", res.Program)
	}

	if len(res.ParseErrors) != 0 {
		return res, nil
	}

	res.Checker = types.NewChecker()
	res.Checker.Check(res.Program)
	res.SemanticErrors = res.Checker.Errors

	logStage(tr, "checked", "symbols", len(res.Checker.GlobalScope.Symbols), "errors", len(res.SemanticErrors))

	if len(res.SemanticErrors) != 0 || !o.lower {
		return res, nil
	}

	res.Sequences, err = il.NewLowerer().LowerProgram(res.Program)
	if err != nil {
		res.LowerError = errors.Wrap(err, "lower %v", name)
		return res, res.LowerError
	}

	logStage(tr, "lowered", "sequences", len(res.Sequences))

	if tr.If("dump") {
		for _, seq := range res.Sequences {
			tr.Printw("sequence", "name", seq.Name, "code", seq.PrettyPrint())
		}
	}

	return res, nil
}

// CompileFile reads path and compiles it.
func CompileFile(ctx context.Context, path string, opts ...Option) (*Result, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", path)

	return Compile(ctx, path, string(text), opts...)
}

// CompileAll compiles docs concurrently, at most parallel at a time when
// parallel is positive. Compilations share no state. Results are in the
// order of docs.
func CompileAll(ctx context.Context, docs []Document, parallel int, opts ...Option) ([]*Result, error) {
	res := make([]*Result, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}

	for i, doc := range docs {
		i, doc := i, doc // per-iteration copies (go directive is 1.21)

		g.Go(func() error {
			r, err := Compile(ctx, doc.Name, doc.Source, opts...)
			res[i] = r

			return err
		})
	}

	err := g.Wait()

	return res, err
}

// ReadDocuments loads each path as a Document named by the path.
func ReadDocuments(paths []string) ([]Document, error) {
	docs := make([]Document, 0, len(paths))

	for _, p := range paths {
		text, err := os.ReadFile(p)
		if err != nil {
			return nil, errors.Wrap(err, "read %v", p)
		}

		docs = append(docs, Document{Name: p, Source: string(text)})
	}

	return docs, nil
}

// Diagnostics returns parse diagnostics, then semantic ones, then the
// lowering failure if any.
func (r *Result) Diagnostics() []diag.Diagnostic {
	ds := make([]diag.Diagnostic, 0, len(r.ParseErrors)+len(r.SemanticErrors))

	for _, e := range r.ParseErrors {
		ds = append(ds, e.ToDiagnostic())
	}

	for _, e := range r.SemanticErrors {
		ds = append(ds, e.ToDiagnostic())
	}

	if r.LowerError != nil {
		code := diag.CodeLowerFailed
		if errors.Is(r.LowerError, il.ErrUnsupported) {
			code = diag.CodeLowerUnsupported
		}

		ds = append(ds, diag.Diagnostic{
			Stage:    diag.StageLower,
			Severity: diag.SeverityError,
			Code:     code,
			Message:  r.LowerError.Error(),
			Span:     diag.Span{Filename: r.Name},
		})
	}

	return ds
}

// Err returns ErrHasDiagnostics wrapped with the document name if any
// diagnostic was reported.
func (r *Result) Err() error {
	n := len(r.ParseErrors) + len(r.SemanticErrors)
	if r.LowerError != nil {
		n++
	}

	if n == 0 {
		return nil
	}

	return errors.Wrap(ErrHasDiagnostics, "%v: %d errors", r.Name, n)
}

func logStage(tr tlog.Span, msg string, kvs ...interface{}) {
	tr.Printw(msg, append(kvs, "from", loc.Caller(1))...)
}
