package il

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegis-lang/aegis/internal/ast"
	"github.com/aegis-lang/aegis/internal/lexer"
	"github.com/aegis-lang/aegis/internal/parser"
)

const loadStateEnum = `enum LoadState:
    Loading
    Success(string)
    Failed(string, number)
`

// Helper function to parse and lower source code
func lower(t *testing.T, src string) []*Sequence {
	t.Helper()

	prog, errs := parser.ParseSource(src)
	for _, err := range errs {
		t.Errorf("parse error: %v", err)
	}
	if len(errs) != 0 {
		t.FailNow()
	}

	seqs, err := NewLowerer().LowerProgram(prog)
	require.NoError(t, err)
	require.NotEmpty(t, seqs)
	assert.Equal(t, MainSequence, seqs[0].Name)

	return seqs
}

func lowerMain(t *testing.T, src string) []Instruction {
	t.Helper()

	return lower(t, src)[0].Instructions
}

func TestLowerLetArithmetic(t *testing.T) {
	seqs := lower(t, `let's x = 1 + 2`)

	require.Len(t, seqs, 1)
	assert.Equal(t, []Instruction{
		PushI64{Value: 1},
		PushI64{Value: 2},
		Add{},
		Store{Name: "x"},
	}, seqs[0].Instructions)
}

func TestLowerOperators(t *testing.T) {
	tests := []struct {
		src string
		op  Instruction
	}{
		{"let's v = 1 - 2", Subtract{}},
		{"let's v = 1 * 2", Multiply{}},
		{"let's v = 1 / 2", Divide{}},
		{"let's v = 1 > 2", GreaterThan{}},
		{"let's v = 1 < 2", LessThan{}},
		{"let's v = 1 >= 2", GreaterEqual{}},
		{"let's v = 1 <= 2", LessEqual{}},
		{"let's v = 1 == 2", Equals{}},
		{"let's v = 1 != 2", NotEquals{}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, []Instruction{
				PushI64{Value: 1},
				PushI64{Value: 2},
				tt.op,
				Store{Name: "v"},
			}, lowerMain(t, tt.src))
		})
	}
}

func TestLowerPrecedence(t *testing.T) {
	assert.Equal(t, []Instruction{
		PushI64{Value: 1},
		PushI64{Value: 2},
		PushI64{Value: 3},
		Multiply{},
		Add{},
		Store{Name: "v"},
	}, lowerMain(t, "let's v = 1 + 2 * 3"))
}

func TestLowerLiterals(t *testing.T) {
	tests := []struct {
		src  string
		want []Instruction
	}{
		{`let's v = "hi"`, []Instruction{PushString{Value: "hi"}, Store{Name: "v"}}},
		{`let's v = true`, []Instruction{PushBool{Value: true}, Store{Name: "v"}}},
		{`let's v = nothing`, []Instruction{PushNothing{}, Store{Name: "v"}}},
		{`let's v = [1, 2]`, []Instruction{PushI64{Value: 1}, PushI64{Value: 2}, MakeList{Count: 2}, Store{Name: "v"}}},
		{`let's v = []`, []Instruction{MakeList{Count: 0}, Store{Name: "v"}}},
		{`let's v = { name: "a", age: 3 }`, []Instruction{
			PushString{Value: "name"}, PushString{Value: "a"},
			PushString{Value: "age"}, PushI64{Value: 3},
			MakeMap{Count: 2},
			Store{Name: "v"},
		}},
		{`let's v = -x`, []Instruction{Load{Name: "x"}, Negate{}, Store{Name: "v"}}},
		{`let's v = !x`, []Instruction{Load{Name: "x"}, Not{}, Store{Name: "v"}}},
		{`let's v = user.name`, []Instruction{Load{Name: "user"}, GetMember{Name: "name"}, Store{Name: "v"}}},
		{`let's v = ask_javascript "window.innerWidth"`, []Instruction{
			PushString{Value: "window.innerWidth"},
			Call{Name: "ask_javascript", Argc: 1},
			Store{Name: "v"},
		}},
		{`let's v = await load(1)`, []Instruction{PushI64{Value: 1}, Call{Name: "load", Argc: 1}, Await{}, Store{Name: "v"}}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, lowerMain(t, tt.src))
		})
	}
}

func TestLowerFunction(t *testing.T) {
	src := `let's add(a: number, b: number) -> number:
    return a + b
`

	seqs := lower(t, src)
	require.Len(t, seqs, 2)
	assert.Empty(t, seqs[0].Instructions)

	fn := seqs[1]
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Params)
	assert.Equal(t, []Instruction{
		Load{Name: "a"},
		Load{Name: "b"},
		Add{},
		Return{},
	}, fn.Instructions)
}

func TestLowerStatementValues(t *testing.T) {
	src := `let's bump():
    let's track n = 0
    n = n + 1
    print(n)
    return
`

	seqs := lower(t, src)
	require.Len(t, seqs, 2)

	assert.Equal(t, []Instruction{
		PushI64{Value: 0},
		Store{Name: "n"},
		Load{Name: "n"},
		PushI64{Value: 1},
		Add{},
		Store{Name: "n"},
		Load{Name: "n"},
		Call{Name: "print", Argc: 1},
		Pop{},
		Return{},
	}, seqs[1].Instructions)
}

func TestLowerInlineIf(t *testing.T) {
	ins := lowerMain(t, `let's r = if x > 0: "positive" else: "non-positive"`)

	assert.Equal(t, []Instruction{
		Load{Name: "x"},
		PushI64{Value: 0},
		GreaterThan{},
		JumpIfFalse{Label: "L0"},
		PushString{Value: "positive"},
		Jump{Label: "L1"},
		Label{Name: "L0"},
		PushString{Value: "non-positive"},
		Label{Name: "L1"},
		Store{Name: "r"},
	}, ins)
}

func TestLowerIfElseIfChain(t *testing.T) {
	src := `let's sign(n: number) -> string:
    if n > 0:
        return "positive"
    else if n < 0:
        return "negative"
    else:
        return "zero"
`

	seqs := lower(t, src)
	require.Len(t, seqs, 2)

	assert.Equal(t, []Instruction{
		Load{Name: "n"},
		PushI64{Value: 0},
		GreaterThan{},
		JumpIfFalse{Label: "L0"},
		PushString{Value: "positive"},
		Return{},
		PushNothing{},
		Jump{Label: "L1"},
		Label{Name: "L0"},

		Load{Name: "n"},
		PushI64{Value: 0},
		LessThan{},
		JumpIfFalse{Label: "L2"},
		PushString{Value: "negative"},
		Return{},
		PushNothing{},
		Jump{Label: "L3"},
		Label{Name: "L2"},
		PushString{Value: "zero"},
		Return{},
		PushNothing{},
		Label{Name: "L3"},

		Label{Name: "L1"},
		Pop{},
	}, seqs[1].Instructions)
}

func TestLowerIfWithoutElse(t *testing.T) {
	src := `let's f(ok: boolean):
    if ok:
        print("yes")
`

	seqs := lower(t, src)

	assert.Equal(t, []Instruction{
		Load{Name: "ok"},
		JumpIfFalse{Label: "L0"},
		PushString{Value: "yes"},
		Call{Name: "print", Argc: 1},
		Jump{Label: "L1"},
		Label{Name: "L0"},
		PushNothing{},
		Label{Name: "L1"},
		Pop{},
	}, seqs[1].Instructions)
}

func TestLowerLabelsUniqueAcrossSequences(t *testing.T) {
	src := `let's a(x: boolean) -> number:
    return if x: 1 else: 2
let's b(x: boolean) -> number:
    return if x: 3 else: 4
`

	seqs := lower(t, src)
	require.Len(t, seqs, 3)

	labels := map[string]string{}
	for _, seq := range seqs {
		for _, ins := range seq.Instructions {
			if l, ok := ins.(Label); ok {
				prev, dup := labels[l.Name]
				assert.False(t, dup, "label %s in %s and %s", l.Name, prev, seq.Name)
				labels[l.Name] = seq.Name
			}
		}
	}

	assert.Equal(t, map[string]string{"L0": "a", "L1": "a", "L2": "b", "L3": "b"}, labels)
}

func TestLowerWhenVariants(t *testing.T) {
	src := loadStateEnum + `let's describe(s: LoadState) -> string:
    return when s:
        is LoadState.Loading => "loading"
        is LoadState.Failed(msg, code) => msg
        else => "unknown"
`

	seqs := lower(t, src)
	require.Len(t, seqs, 2)

	assert.Equal(t, []Instruction{
		Load{Name: "s"},
		Store{Name: "$when0"},

		Load{Name: "$when0"},
		IsVariant{Enum: "LoadState", Variant: "Loading"},
		JumpIfFalse{Label: "L1"},
		PushString{Value: "loading"},
		Jump{Label: "L0"},
		Label{Name: "L1"},

		Load{Name: "$when0"},
		IsVariant{Enum: "LoadState", Variant: "Failed"},
		JumpIfFalse{Label: "L2"},
		Load{Name: "$when0"},
		GetMember{Name: "0"},
		Store{Name: "msg"},
		Load{Name: "$when0"},
		GetMember{Name: "1"},
		Store{Name: "code"},
		Load{Name: "msg"},
		Jump{Label: "L0"},
		Label{Name: "L2"},

		PushString{Value: "unknown"},
		Jump{Label: "L0"},
		Label{Name: "L3"},

		PushNothing{},
		Label{Name: "L0"},
		Return{},
	}, seqs[1].Instructions)
}

func TestLowerWhenLiterals(t *testing.T) {
	ins := lowerMain(t, "let's n = 2\nlet's word = when n:\n    is 1 => \"one\"\n    is other => other\n")

	assert.Equal(t, []Instruction{
		PushI64{Value: 2},
		Store{Name: "n"},

		Load{Name: "n"},
		Store{Name: "$when0"},

		Load{Name: "$when0"},
		PushI64{Value: 1},
		Equals{},
		JumpIfFalse{Label: "L1"},
		PushString{Value: "one"},
		Jump{Label: "L0"},
		Label{Name: "L1"},

		Load{Name: "$when0"},
		Store{Name: "other"},
		Load{Name: "other"},
		Jump{Label: "L0"},
		Label{Name: "L2"},

		PushNothing{},
		Label{Name: "L0"},
		Store{Name: "word"},
	}, ins)
}

func TestLowerVariantConstruction(t *testing.T) {
	ins := lowerMain(t, loadStateEnum+`let's a = LoadState.Loading
let's b = LoadState.Failed("boom", 500)
`)

	assert.Equal(t, []Instruction{
		MakeVariant{Enum: "LoadState", Variant: "Loading"},
		Store{Name: "a"},
		PushString{Value: "boom"},
		PushI64{Value: 500},
		MakeVariant{Enum: "LoadState", Variant: "Failed", Count: 2},
		Store{Name: "b"},
	}, ins)
}

func TestLowerSkipsNonCode(t *testing.T) {
	src := loadStateEnum + `contract User:
    name: string
for item in items:
    print(item)
app Counter:
    let's track count = 0
    show:
        text "Count: {count}"
let's x = 1
`

	seqs := lower(t, src)
	require.Len(t, seqs, 1)
	assert.Equal(t, []Instruction{PushI64{Value: 1}, Store{Name: "x"}}, seqs[0].Instructions)
}

func TestLowerNumberOutOfRange(t *testing.T) {
	prog, errs := parser.ParseSource(`let's x = 99999999999999999999`)
	require.Empty(t, errs)

	_, err := NewLowerer().LowerProgram(prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "number literal 99999999999999999999")
}

func TestLowerMethodCallUnsupported(t *testing.T) {
	src := `let's f(w: dynamic):
    w.alert("hi")
`

	prog, errs := parser.ParseSource(src)
	require.Empty(t, errs)

	_, err := NewLowerer().LowerProgram(prog)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Contains(t, err.Error(), "lower function f")
}

func TestLowerUnknownOperator(t *testing.T) {
	var sp lexer.Span

	bad := ast.NewInfixExpr(ast.InfixOp(99), ast.NewNumberLit("1", sp), ast.NewNumberLit("2", sp), sp)
	prog := ast.NewProgram(sp)
	prog.Definitions = append(prog.Definitions, ast.NewStmtDef(ast.NewLetStmt(ast.NewIdent("x", sp), false, nil, bad, sp)))

	_, err := NewLowerer().LowerProgram(prog)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestLowerDeterministic(t *testing.T) {
	src := loadStateEnum + `let's f(s: LoadState) -> number:
    return when s:
        is LoadState.Loading => 1
        else => 2
`

	prog, errs := parser.ParseSource(src)
	require.Empty(t, errs)

	l := NewLowerer()

	first, err := l.LowerProgram(prog)
	require.NoError(t, err)

	second, err := l.LowerProgram(prog)
	require.NoError(t, err)

	assert.Equal(t, Format(first), Format(second))
}

func TestFormat(t *testing.T) {
	src := `let's x = 1 + 2
let's pick(c: boolean) -> string:
    return if c: "a" else: "b"
`

	want := strings.Join([]string{
		"main():",
		"    push_i64 1",
		"    push_i64 2",
		"    add",
		"    store x",
		"",
		"pick(c):",
		"    load c",
		"    jump_if_false L0",
		`    push_string "a"`,
		"    jump L1",
		"L0:",
		`    push_string "b"`,
		"L1:",
		"    return",
		"",
	}, "\n")

	assert.Equal(t, want, Format(lower(t, src)))
}

func TestInstructionStrings(t *testing.T) {
	tests := []struct {
		ins  Instruction
		want string
	}{
		{PushString{Value: "say \"hi\""}, `push_string "say \"hi\""`},
		{PushBool{Value: false}, "push_bool false"},
		{PushI64{Value: -3}, "push_i64 -3"},
		{MakeVariant{Enum: "LoadState", Variant: "Success", Count: 1}, "make_variant LoadState.Success 1"},
		{IsVariant{Enum: "LoadState", Variant: "Loading"}, "is_variant LoadState.Loading"},
		{Call{Name: "print", Argc: 2}, "call print 2"},
		{GetMember{Name: "0"}, "get_member 0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ins.String())
	}
}
