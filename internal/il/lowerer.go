package il

import (
	"fmt"

	"tlog.app/go/errors"

	"github.com/aegis-lang/aegis/internal/ast"
)

// ErrUnsupported is returned for constructs that have no IL form.
var ErrUnsupported = errors.New("unsupported construct")

// Lowerer converts a checked AST into instruction sequences.
type Lowerer struct {
	// Label counter for the whole pass, so labels are unique across
	// sequences.
	labelCounter int

	// Counter for synthetic locals.
	tempCounter int

	// Enum names declared in the program, to tell variant construction
	// from member access.
	enums map[string]bool

	// Sequence being built
	cur *Sequence
}

// NewLowerer creates a new lowerer.
func NewLowerer() *Lowerer {
	return &Lowerer{
		enums: make(map[string]bool),
	}
}

// LowerProgram lowers prog. The first sequence is "main", holding the
// top-level statements in source order, followed by one sequence per
// top-level function. Apps, contracts and enums produce no code.
func (l *Lowerer) LowerProgram(prog *ast.Program) ([]*Sequence, error) {
	l.labelCounter = 0
	l.tempCounter = 0
	l.enums = make(map[string]bool)

	for _, def := range prog.Definitions {
		if e, ok := def.(*ast.EnumDef); ok {
			l.enums[e.Name.Name] = true
		}
	}

	main := &Sequence{Name: MainSequence}
	seqs := []*Sequence{main}

	for _, def := range prog.Definitions {
		switch d := def.(type) {
		case *ast.StmtDef:
			l.cur = main
			if err := l.lowerStmt(d.Stmt); err != nil {
				return nil, errors.Wrap(err, "lower %s", MainSequence)
			}

		case *ast.FunctionDef:
			seq, err := l.LowerFunction(d)
			if err != nil {
				return nil, errors.Wrap(err, "lower function %s", d.Name.Name)
			}
			seqs = append(seqs, seq)
		}
	}

	l.cur = nil

	return seqs, nil
}

// LowerFunction lowers one function body into its own sequence.
func (l *Lowerer) LowerFunction(fn *ast.FunctionDef) (*Sequence, error) {
	seq := &Sequence{Name: fn.Name.Name}
	for _, p := range fn.Params {
		seq.Params = append(seq.Params, p.Name.Name)
	}

	outer := l.cur
	l.cur = seq
	defer func() { l.cur = outer }()

	if fn.Body != nil {
		if err := l.lowerBlock(fn.Body); err != nil {
			return nil, err
		}
	}

	return seq, nil
}

func (l *Lowerer) emit(ins ...Instruction) {
	l.cur.Instructions = append(l.cur.Instructions, ins...)
}

func (l *Lowerer) newLabel() string {
	name := fmt.Sprintf("L%d", l.labelCounter)
	l.labelCounter++
	return name
}

func (l *Lowerer) newTemp(prefix string) string {
	name := fmt.Sprintf("$%s%d", prefix, l.tempCounter)
	l.tempCounter++
	return name
}
