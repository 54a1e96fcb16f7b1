package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sanity-io/litter"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/aegis-lang/aegis/internal/ast"
	"github.com/aegis-lang/aegis/internal/diag"
	"github.com/aegis-lang/aegis/internal/il"
	"github.com/aegis-lang/aegis/internal/lexer"
	"github.com/aegis-lang/aegis/internal/parser"
	"github.com/aegis-lang/aegis/internal/pipeline"
)

func main() {
	tokensCmd := &cli.Command{
		Name:        "tokens",
		Description: "print the token stream of each file",
		Action:      tokensAct,
		Args:        cli.Args{},
	}

	parseCmd := &cli.Command{
		Name:        "parse",
		Description: "parse files and print their definitions",
		Action:      parseAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("dump", false, "dump the syntax tree"),
		},
	}

	checkCmd := &cli.Command{
		Name:        "check",
		Description: "report diagnostics for files",
		Action:      checkAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("j", 0, "files checked in parallel (0 is unlimited)"),
		},
	}

	lowerCmd := &cli.Command{
		Name:        "lower",
		Description: "print the IL of each file",
		Action:      lowerAct,
		Args:        cli.Args{},
	}

	replCmd := &cli.Command{
		Name:        "repl",
		Description: "compile definitions interactively",
		Action:      replAct,
	}

	app := &cli.Command{
		Name:        "aegis",
		Description: "aegis is a compiler front end for the Aegis language",
		Before:      before,
		Flags: []*cli.Flag{
			cli.NewFlag("verbosity,v", "", "logger verbosity topics (dump prints stage output)"),
			cli.HelpFlag,
		},
		Commands: []*cli.Command{
			tokensCmd,
			parseCmd,
			checkCmd,
			lowerCmd,
			replCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func before(c *cli.Command) error {
	tlog.SetVerbosity(c.String("verbosity"))

	return nil
}

func rootContext() context.Context {
	return tlog.ContextWithSpan(context.Background(), tlog.Root())
}

func tokensAct(c *cli.Command) error {
	for _, a := range c.Args {
		text, err := os.ReadFile(a)
		if err != nil {
			return errors.Wrap(err, "read %v", a)
		}

		lx := lexer.New(string(text))
		lx.SetFilename(a)

		for {
			tok := lx.NextToken()

			fmt.Printf("%s:%d:%d\t%-8s %q\n", a, tok.Span.Line, tok.Span.Column, tok.Type, tok.Literal)

			if tok.Type == lexer.EOF {
				break
			}
		}
	}

	return nil
}

func parseAct(c *cli.Command) error {
	var failed int

	for _, a := range c.Args {
		text, err := os.ReadFile(a)
		if err != nil {
			return errors.Wrap(err, "read %v", a)
		}

		prog, perrs := parser.ParseSource(string(text), parser.WithFilename(a))

		if c.Bool("dump") {
			fmt.Println(litter.Options{StripPackageNames: true, HidePrivateFields: true}.Sdump(prog))
		} else {
			for _, def := range prog.Definitions {
				fmt.Printf("%v:%d\t%s\n", a, def.Span().Line, describeDefinition(def))
			}
		}

		if len(perrs) == 0 {
			continue
		}

		failed++

		f := diag.NewFormatter(os.Stderr)
		f.AddSource(a, string(text))

		for _, e := range perrs {
			f.Format(e.ToDiagnostic())
		}
	}

	if failed != 0 {
		return errors.Wrap(pipeline.ErrHasDiagnostics, "%d files", failed)
	}

	return nil
}

func checkAct(c *cli.Command) error {
	ctx := rootContext()

	docs, err := pipeline.ReadDocuments(c.Args)
	if err != nil {
		return err
	}

	res, err := pipeline.CompileAll(ctx, docs, c.Int("j"), pipeline.SkipLowering())
	if err != nil {
		return errors.Wrap(err, "check")
	}

	f := diag.NewFormatter(os.Stderr)

	var total int

	for _, r := range res {
		ds := r.Diagnostics()
		if len(ds) == 0 {
			continue
		}

		total += len(ds)

		f.AddSource(r.Name, r.Source)
		f.FormatAll(ds)
	}

	if total != 0 {
		return errors.Wrap(pipeline.ErrHasDiagnostics, "%d errors", total)
	}

	return nil
}

func lowerAct(c *cli.Command) error {
	ctx := rootContext()

	for _, a := range c.Args {
		res, err := pipeline.CompileFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "compile %v", a)
		}

		if err := res.Err(); err != nil {
			f := diag.NewFormatter(os.Stderr)
			f.AddSource(res.Name, res.Source)
			f.FormatAll(res.Diagnostics())

			return err
		}

		fmt.Print(il.Format(res.Sequences))
	}

	return nil
}

func describeDefinition(def ast.Definition) string {
	switch d := def.(type) {
	case *ast.ContractDef:
		return fmt.Sprintf("contract %s (%d fields)", d.Name.Name, len(d.Fields))
	case *ast.EnumDef:
		return fmt.Sprintf("enum %s (%d variants)", d.Name.Name, len(d.Variants))
	case *ast.FunctionDef:
		if d.Async {
			return fmt.Sprintf("async function %s/%d", d.Name.Name, len(d.Params))
		}
		return fmt.Sprintf("function %s/%d", d.Name.Name, len(d.Params))
	case *ast.AppDef:
		return fmt.Sprintf("app %s (%d members)", d.Name.Name, len(d.Members))
	case *ast.StmtDef:
		return fmt.Sprintf("statement %T", d.Stmt)
	default:
		return fmt.Sprintf("%T", def)
	}
}
