package il

import (
	"fmt"
	"strings"
)

// Format returns a human-readable listing of seqs, one block per sequence.
func Format(seqs []*Sequence) string {
	var b strings.Builder
	for i, seq := range seqs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(seq.PrettyPrint())
	}
	return b.String()
}

// PrettyPrint returns a human-readable listing of the sequence.
func (s *Sequence) PrettyPrint() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s(%s):\n", s.Name, strings.Join(s.Params, ", ")))

	for _, ins := range s.Instructions {
		// labels are outdented
		if _, ok := ins.(Label); ok {
			b.WriteString(fmt.Sprintf("%s\n", ins))
			continue
		}
		b.WriteString(fmt.Sprintf("    %s\n", ins))
	}

	return b.String()
}
