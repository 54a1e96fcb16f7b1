package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegis-lang/aegis/internal/parser"
)

func TestDescribeDefinition(t *testing.T) {
	src := `contract User:
    name: string
    age: number
enum Light:
    Red
    Green
async let's load(id: number) -> string:
    return "x"
app Counter:
    let's track count = 0
let's x = 1
`

	prog, errs := parser.ParseSource(src)
	require.Empty(t, errs)

	var got []string
	for _, def := range prog.Definitions {
		got = append(got, describeDefinition(def))
	}

	assert.Equal(t, []string{
		"contract User (2 fields)",
		"enum Light (2 variants)",
		"async function load/1",
		"app Counter (1 members)",
		"statement *ast.LetStmt",
	}, got)
}
