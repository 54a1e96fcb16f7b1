package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"

	"github.com/aegis-lang/aegis/internal/diag"
	"github.com/aegis-lang/aegis/internal/il"
	"github.com/aegis-lang/aegis/internal/pipeline"
)

const (
	promptMain  = "aegis> "
	promptCont  = "   ... "
	historyFile = ".aegis_history"

	replName = "<repl>"
)

type (
	prompter interface {
		Prompt(prompt string) (string, error)
	}

	// session keeps the chunks accepted so far. Each new chunk is compiled
	// after them and kept only if the whole text is free of diagnostics.
	session struct {
		src string

		mainLen int
		funcs   map[string]bool
	}
)

func replAct(c *cli.Command) error {
	ctx := rootContext()

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	s := newSession()

	for {
		chunk, err := readChunk(ln)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read input")
		}

		switch strings.TrimSpace(chunk) {
		case "":
			continue
		case ":quit":
			return nil
		}

		ln.AppendHistory(strings.ReplaceAll(strings.TrimRight(chunk, "\n"), "\n", " "))

		seqs, ds, err := s.eval(ctx, chunk)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}

		if len(ds) != 0 {
			f := diag.NewFormatter(os.Stderr)
			f.AddSource(replName, s.pending(chunk))
			f.FormatAll(ds)

			continue
		}

		fmt.Print(il.Format(seqs))
	}
}

func newSession() *session {
	return &session{funcs: make(map[string]bool)}
}

func (s *session) pending(chunk string) string {
	if !strings.HasSuffix(chunk, "\n") {
		chunk += "\n"
	}

	return s.src + chunk
}

// eval compiles chunk on top of the accepted ones. It returns the code the
// chunk added: new top-level instructions and new functions.
func (s *session) eval(ctx context.Context, chunk string) ([]*il.Sequence, []diag.Diagnostic, error) {
	src := s.pending(chunk)

	res, err := pipeline.Compile(ctx, replName, src)
	if err != nil {
		return nil, nil, err
	}

	if ds := res.Diagnostics(); len(ds) != 0 {
		return nil, ds, nil
	}

	s.src = src

	top := res.Sequences[0]
	added := []*il.Sequence{{
		Name:         top.Name,
		Instructions: top.Instructions[s.mainLen:],
	}}
	s.mainLen = len(top.Instructions)

	for _, seq := range res.Sequences[1:] {
		if s.funcs[seq.Name] {
			continue
		}

		s.funcs[seq.Name] = true
		added = append(added, seq)
	}

	return added, nil, nil
}

// readChunk reads one line, or when the line opens a block with ':', every
// following line up to an empty one.
func readChunk(p prompter) (string, error) {
	line, err := p.Prompt(promptMain)
	if err != nil {
		return "", err
	}

	if !strings.HasSuffix(strings.TrimSpace(line), ":") {
		return line, nil
	}

	var b strings.Builder

	b.WriteString(line)
	b.WriteByte('\n')

	for {
		line, err = p.Prompt(promptCont)
		if errors.Is(err, io.EOF) {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}

		if strings.TrimSpace(line) == "" {
			return b.String(), nil
		}

		b.WriteString(line)
		b.WriteByte('\n')
	}
}
