package types

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegis-lang/aegis/internal/ast"
	"github.com/aegis-lang/aegis/internal/diag"
	"github.com/aegis-lang/aegis/internal/lexer"
	"github.com/aegis-lang/aegis/internal/parser"
)

var n0 lexer.Span

const loadStateEnum = `enum LoadState:
    Loading
    Success(string)
    Failed(string, number)
`

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()

	prog, errs := parser.ParseSource(src)
	for _, err := range errs {
		t.Errorf("parse error: %v", err)
	}
	if len(errs) != 0 {
		t.FailNow()
	}

	return prog
}

func check(t *testing.T, src string) *Checker {
	t.Helper()

	c := NewChecker()
	c.Check(parse(t, src))

	return c
}

func kindsOf(c *Checker) []ErrorKind {
	kinds := []ErrorKind{}
	for _, e := range c.Errors {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func assertKinds(t *testing.T, c *Checker, want ...ErrorKind) {
	t.Helper()

	if want == nil {
		want = []ErrorKind{}
	}

	if !assert.Equal(t, want, kindsOf(c)) {
		for _, e := range c.Errors {
			t.Logf("  %v: %v", e.Kind, e)
		}
	}
}

func globalType(t *testing.T, c *Checker, name string) Type {
	t.Helper()

	sym := c.GlobalScope.Lookup(name)
	require.NotNil(t, sym, "symbol %s", name)

	return sym.Type
}

func TestLetNumberLiteral(t *testing.T) {
	c := check(t, "let's x = 42")
	assertKinds(t, c)

	sym := c.GlobalScope.Lookup("x")
	require.NotNil(t, sym)
	assert.Equal(t, TypeNumber, sym.Type)
	assert.Equal(t, &VariableKind{Tracked: false}, sym.Kind)
}

func TestUnannotatedLetTakesInferredType(t *testing.T) {
	tests := []struct {
		value string
		want  Type
	}{
		{`1 + 2`, TypeNumber},
		{`"a"`, TypeString},
		{`1 < 2`, TypeBoolean},
		{`!true`, TypeBoolean},
		{`nothing`, TypeNothing},
		{`[1, 2]`, &List{Elem: TypeNumber}},
		{`[]`, &List{Elem: TypeDynamic}},
		{`{a: 1, b: 2}`, &Map{Key: TypeString, Value: TypeNumber}},
		{`{a: 1, b: "x"}`, &Map{Key: TypeString, Value: TypeDynamic}},
		{`{}`, &Map{Key: TypeDynamic, Value: TypeDynamic}},
		{`ask_javascript "navigator.language"`, TypeDynamic},
		{`if 1 < 2: "a" else: "b"`, TypeString},
		{`if true: 1`, TypeNothing},
	}

	for _, tt := range tests {
		c := check(t, "let's v = "+tt.value)
		assertKinds(t, c)

		got := globalType(t, c, "v")
		assert.True(t, Identical(tt.want, got), "%s: want %v, got %v", tt.value, tt.want, got)
	}
}

func TestTrackedLet(t *testing.T) {
	c := check(t, "let's track count = 0")

	sym := c.GlobalScope.Lookup("count")
	require.NotNil(t, sym)
	assert.Equal(t, &VariableKind{Tracked: true}, sym.Kind)
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		src  string
		want []ErrorKind
	}{
		{"let's y = z + 1", []ErrorKind{UndefinedSymbol}},
		{"let's y = 1 + \"a\"", []ErrorKind{InvalidOperation}},
		{"let's y = -true", []ErrorKind{InvalidOperation}},
		{"let's y = !1", []ErrorKind{InvalidOperation}},
		{"let's y = 1 == \"a\"", []ErrorKind{TypeMismatch}},
		{"let's y = [1, \"a\"]", []ErrorKind{TypeMismatch}},
		{"let's y = if 1: 2 else: 3", []ErrorKind{TypeMismatch}},
		{"let's y = if true: 1 else: \"a\"", []ErrorKind{TypeMismatch}},
		{"let's y = (ask_javascript \"x\") + 1", []ErrorKind{InvalidOperation}},
		{"let's f():\n    let's y = 1\n    y = \"a\"", []ErrorKind{TypeMismatch}},
		{"let's f():\n    undefined_thing = 1", []ErrorKind{UndefinedSymbol}},
		{"let's y = 1\nlet's y = 2", []ErrorKind{DuplicateDeclaration}},
		{"let's y = 1\nlet's z = y(2)", []ErrorKind{InvalidOperation}},
		// one root cause, one error
		{"let's y = (missing + 1) * 2 < 3", []ErrorKind{UndefinedSymbol}},
	}

	for _, tt := range tests {
		prog, errs := parser.ParseSource(tt.src)
		require.Empty(t, errs, "%q", tt.src)

		c := NewChecker()
		c.Check(prog)
		assert.Equal(t, tt.want, kindsOf(c), "%q: %v", tt.src, c.Errors)
	}
}

func TestDuplicateDeclarationPointsAtPrevious(t *testing.T) {
	c := check(t, "let's x = 1\nlet's x = 2")
	require.Len(t, c.Errors, 1)

	e := c.Errors[0]
	assert.Equal(t, DuplicateDeclaration, e.Kind)
	assert.Equal(t, 2, e.Span.Line)
	assert.Equal(t, 1, e.Previous.Line)

	d := e.ToDiagnostic()
	assert.Equal(t, diag.CodeDuplicateDeclaration, d.Code)
	assert.Equal(t, diag.StageSemantic, d.Stage)
	require.Len(t, d.LabeledSpans, 2)
	assert.Equal(t, "secondary", d.LabeledSpans[1].Style)
}

func TestContractInitialization(t *testing.T) {
	const user = "contract User:\n    id: number\n    name: string\n"

	tests := []struct {
		name  string
		value string
		want  []ErrorKind
	}{
		{"valid", `{ id: 42, name: "Alice" }`, nil},
		{"string keys", `{ "id": 42, "name": "Alice" }`, nil},
		{"missing field", `{ id: 42 }`, []ErrorKind{MissingField}},
		{"unknown field", `{ id: 42, name: "A", age: 3 }`, []ErrorKind{UnknownField}},
		{"bad key", `{ 1: 42, name: "A" }`, []ErrorKind{InvalidFieldKey, MissingField}},
		{"wrong type", `{ id: "42", name: "A" }`, []ErrorKind{TypeMismatch}},
		{"repeated key", `{ id: 1, id: 2, name: "A" }`, []ErrorKind{DuplicateDeclaration}},
		{"no commas", `{ id: 42 name: "Alice" }`, nil},
		{"no commas on lines", "{\n    id: 42\n    name: \"Alice\"\n}", nil},
		{"no commas missing field", "{\n    id: 42\n}", []ErrorKind{MissingField}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := check(t, user+"let's user: User = "+tt.value)
			assertKinds(t, c, tt.want...)
		})
	}
}

func TestMissingFieldIsNamed(t *testing.T) {
	c := check(t, "contract User: id: number name: string\nlet's user: User = { id: 42 }")

	require.Len(t, c.Errors, 1)
	assert.Equal(t, MissingField, c.Errors[0].Kind)
	assert.Contains(t, c.Errors[0].Message, "name")
}

func TestMissingFieldsInDeclarationOrder(t *testing.T) {
	c := check(t, "contract P:\n    c: number\n    a: number\n    b: number\nlet's p: P = {}")

	require.Len(t, c.Errors, 3)
	for i, field := range []string{"c", "a", "b"} {
		assert.Contains(t, c.Errors[i].Message, "field "+field+" ")
	}
}

func TestNestedContractInitialization(t *testing.T) {
	src := `contract Address:
    city: string
contract Person:
    name: string
    address: Address
let's p: Person = {name: "A", address: {}}
let's q: Person = {name: "B", address: {city: 1}}
let's r: Person = {name: "C", address: {city: "Kyiv"}}
`

	c := check(t, src)
	assertKinds(t, c, MissingField, TypeMismatch)
	assert.Contains(t, c.Errors[0].Message, "city")
}

func TestContractFieldTypes(t *testing.T) {
	c := check(t, "contract Box:\n    items: List<number>\n    owner: Ghost\n    items: string\n")
	assertKinds(t, c, UndefinedType, DuplicateDeclaration)

	sym := c.GlobalScope.Lookup("Box")
	require.NotNil(t, sym)
	kind, ok := sym.Kind.(*ContractKind)
	require.True(t, ok)
	require.Len(t, kind.Fields, 2)
	assert.True(t, Identical(&List{Elem: TypeNumber}, kind.Fields[0].Type))
}

func TestGenericContractSymbol(t *testing.T) {
	c := check(t, "contract Option<T>:\n    value: T\n")
	assertKinds(t, c)

	sym := c.GlobalScope.Lookup("Option")
	require.NotNil(t, sym)
	assert.Equal(t, &GenericContractKind{
		Params: []string{"T"},
		Fields: []Field{{Name: "value", Type: &Generic{Param: "T"}}},
	}, sym.Kind)

	// the parameter scope does not leak
	assert.Nil(t, c.GlobalScope.Lookup("T"))
}

func TestGenericInstantiation(t *testing.T) {
	src := `contract Option<T>:
    value: T
    present: boolean
let's a: Option<number> = {value: 42, present: true}
let's b: Option<number> = {value: "x", present: true}
let's c: Option<number, string> = {value: 1, present: true}
let's d: Option = {value: 1, present: true}
let's e: Option<List<string>> = {value: ["x"], present: false}
let's v = a.value
let's w = e.value
`

	c := check(t, src)
	assertKinds(t, c, TypeMismatch, InvalidGenericArgs, InvalidGenericArgs)

	assert.True(t, Identical(&Concrete{Name: "Option", Args: []Type{TypeNumber}}, globalType(t, c, "a")))
	assert.Equal(t, TypeNumber, globalType(t, c, "v"))
	assert.True(t, Identical(&List{Elem: TypeString}, globalType(t, c, "w")))
}

func TestBuiltinGenerics(t *testing.T) {
	tests := []struct {
		src  string
		want []ErrorKind
	}{
		{"let's xs: List<number> = [1, 2]", nil},
		{"let's xs: List<string> = [1]", []ErrorKind{TypeMismatch}},
		{"let's m: Map<string, number> = {a: 1}", nil},
		{"let's m: Map<string> = {}", []ErrorKind{InvalidGenericArgs}},
		{"let's q: Foo<number> = 1", []ErrorKind{UndefinedType}},
		{"let's u: Widget = 1", []ErrorKind{UndefinedType}},
		{"let's u: number = \"1\"", []ErrorKind{TypeMismatch}},
		{"let's u: Optional<number> = 1", []ErrorKind{TypeMismatch}},
	}

	for _, tt := range tests {
		c := check(t, tt.src)
		if tt.want == nil {
			tt.want = []ErrorKind{}
		}
		assert.Equal(t, tt.want, kindsOf(c), "%q: %v", tt.src, c.Errors)
	}
}

func TestEnumSimpleVariant(t *testing.T) {
	c := check(t, loadStateEnum+"let's s = LoadState.Loading")
	assertKinds(t, c)

	typ := globalType(t, c, "s")
	enum, ok := typ.(*Enum)
	require.True(t, ok, "got %v", typ)
	assert.Equal(t, "LoadState", enum.Name)
	require.Len(t, enum.Variants, 3)
	assert.Equal(t, []Type{TypeString, TypeNumber}, enum.Variants[2].Types)

	assert.Equal(t, &EnumKind{Variants: []string{"Loading", "Success", "Failed"}}, c.GlobalScope.Lookup("LoadState").Kind)
}

func TestEnumVariantErrors(t *testing.T) {
	tests := []struct {
		expr string
		want []ErrorKind
	}{
		{`LoadState.Success("ok")`, nil},
		{`LoadState.Failed("boom", 500)`, nil},
		{`LoadState.Success`, []ErrorKind{InvalidMemberAccess}},
		{`LoadState.Done`, []ErrorKind{InvalidMemberAccess}},
		{`LoadState.Loading()`, []ErrorKind{InvalidOperation}},
		{`LoadState.Success(1)`, []ErrorKind{TypeMismatch}},
		{`LoadState.Failed(1, "x")`, []ErrorKind{TypeMismatch, TypeMismatch}},
	}

	for _, tt := range tests {
		c := check(t, loadStateEnum+"let's s = "+tt.expr)
		if tt.want == nil {
			tt.want = []ErrorKind{}
		}
		assert.Equal(t, tt.want, kindsOf(c), "%s: %v", tt.expr, c.Errors)

		if len(tt.want) > 0 {
			assert.True(t, IsError(globalType(t, c, "s")), "%s", tt.expr)
		}
	}
}

func TestEnumVariantArity(t *testing.T) {
	for m := 0; m <= 4; m++ {
		if m == 2 {
			continue
		}

		args := make([]string, m)
		for i := range args {
			args[i] = "1"
		}

		c := check(t, loadStateEnum+"let's s = LoadState.Failed("+strings.Join(args, ", ")+")")
		assertKinds(t, c, ArityMismatch)
		assert.True(t, IsError(globalType(t, c, "s")), "arity %d", m)
	}
}

func TestEnumAssociatedTypesResolve(t *testing.T) {
	src := `contract User:
    id: number
enum Result:
    Found(User)
    Later(Token)
`

	c := check(t, src)
	assertKinds(t, c)

	enum := globalType(t, c, "Result").(*Enum)
	assert.Equal(t, []Type{&Custom{Name: "User"}}, enum.Variants[0].Types)
	assert.Equal(t, []Type{&Custom{Name: "Token"}}, enum.Variants[1].Types)
}

func TestFunctions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []ErrorKind
	}{
		{"recursion", `let's fact(n: number) -> number:
    if n <= 1:
        return 1
    return n * fact(n - 1)
`, nil},
		{"return mismatch", `let's f() -> number:
    return "x"
`, []ErrorKind{ReturnTypeMismatch}},
		{"value from nothing function", `let's f():
    return 1
`, []ErrorKind{ReturnTypeMismatch}},
		{"bare return with value expected", `let's f() -> string:
    return
`, []ErrorKind{ReturnTypeMismatch}},
		{"arity", `let's add(a: number, b: number) -> number: return a + b
let's r = add(1)
`, []ErrorKind{ArityMismatch}},
		{"argument type", `let's add(a: number, b: number) -> number: return a + b
let's r = add(1, "2")
`, []ErrorKind{TypeMismatch}},
		{"contract argument", `contract User:
    id: number
let's save(u: User): return nothing
let's r = save({id: "x"})
`, []ErrorKind{TypeMismatch}},
		{"duplicate parameter", `let's f(a: number, a: number): return nothing
`, []ErrorKind{DuplicateDeclaration}},
		{"params are local", `let's f(a: number): return nothing
let's b = a
`, []ErrorKind{UndefinedSymbol}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := check(t, tt.src)
			assertKinds(t, c, tt.want...)
		})
	}
}

func TestAsyncFunctions(t *testing.T) {
	base := "async let's load(url: string) -> string:\n    return url\n"

	tests := []struct {
		name string
		src  string
		want []ErrorKind
	}{
		{"await in async", "async let's run():\n    let's body: string = await load(\"x\")\n", nil},
		{"awaited type", "async let's run():\n    let's n: number = await load(\"x\")\n", []ErrorKind{TypeMismatch}},
		{"await at top level", "let's body = await load(\"x\")\n", []ErrorKind{AwaitOutsideAsync}},
		{"await in sync function", "let's run():\n    let's body = await load(\"x\")\n", []ErrorKind{AwaitOutsideAsync}},
		{"await non future", "async let's run():\n    let's n = await 1\n", []ErrorKind{InvalidOperation}},
		{"future is not its value", "let's s: string = load(\"x\")\n", []ErrorKind{TypeMismatch}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := check(t, base+tt.src)
			assertKinds(t, c, tt.want...)
		})
	}

	c := check(t, base)
	fn, ok := globalType(t, c, "load").(*Function)
	require.True(t, ok)
	assert.True(t, Identical(&Future{Elem: TypeString}, fn.Return))
	assert.Equal(t, &FunctionKind{Params: []Type{TypeString}, Return: TypeString, Async: true}, c.GlobalScope.Lookup("load").Kind)
}

func TestWhen(t *testing.T) {
	tests := []struct {
		name  string
		cases string
		want  []ErrorKind
	}{
		{"all variants", `        is LoadState.Loading => "loading"
        is LoadState.Success(data) => data
        is LoadState.Failed(msg, code) => msg
`, nil},
		{"ident and else", `        is LoadState.Loading => "loading"
        is other => "other"
        else => "unknown"
`, nil},
		{"binding count", `        is LoadState.Failed(msg) => msg
`, []ErrorKind{InvalidPattern}},
		{"unknown variant", `        is LoadState.Done => "done"
`, []ErrorKind{InvalidPattern}},
		{"case types differ", `        is LoadState.Failed(msg, code) => msg
        is LoadState.Failed(msg, code) => code
`, []ErrorKind{TypeMismatch}},
		{"literal pattern", `        is 1 => "one"
`, []ErrorKind{TypeMismatch}},
		{"not an enum", `        is User.Loading => "x"
`, []ErrorKind{UndefinedType}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := loadStateEnum + "let's describe(s: LoadState) -> string:\n    return when s:\n" + tt.cases
			c := check(t, src)
			assertKinds(t, c, tt.want...)
		})
	}
}

func TestWhenResultType(t *testing.T) {
	c := check(t, "let's n = 2\nlet's word = when n:\n    is 1 => \"one\"\n    else => \"many\"\n")
	assertKinds(t, c)
	assert.Equal(t, TypeString, globalType(t, c, "word"))
}

func TestStatementBranchesMayDiffer(t *testing.T) {
	src := `let's f(flag: boolean):
    if flag:
        1
    else:
        "a"
`

	assertKinds(t, check(t, src))
}

func TestForLoops(t *testing.T) {
	src := `let's items = [1, 2, 3]
let's total = 0
for item in items:
    total = total + item
for key in {a: 1}:
    let's k: string = key
for ch in 42:
    total = total + 1
`

	c := check(t, src)
	assertKinds(t, c, InvalidOperation)
	assert.Nil(t, c.GlobalScope.Lookup("item"))
}

func TestApp(t *testing.T) {
	src := `app Counter:
    let's track count = 0
    let's increment():
        count = count + 1
    show:
        column:
            text "Count: {count}"
            text "{missing}"
            slider "x"
            button "Add", color: "blue":
                when_clicked:
                    increment()
                on_hold:
                    return 1
`

	c := check(t, src)
	assertKinds(t, c, UndefinedSymbol, InvalidUIComponent, InvalidOperation)

	assert.Equal(t, &Custom{Name: "App<Counter>"}, globalType(t, c, "Counter"))
	assert.Nil(t, c.GlobalScope.Lookup("count"))

	d := c.Errors[1].ToDiagnostic()
	assert.Equal(t, diag.CodeInvalidUIComponent, d.Code)
	assert.NotEmpty(t, d.Help)
}

func TestInterpolationIgnoresNonNames(t *testing.T) {
	src := "app A:\n    let's user = 1\n    show:\n        text \"{user} {1 + 2} {} {user.name\"\n"
	assertKinds(t, check(t, src))
}

func TestCheckIsIdempotent(t *testing.T) {
	prog := parse(t, loadStateEnum+`contract User:
    id: number
let's u: User = {name: "x"}
let's s = LoadState.Failed(1)
let's y = z
`)

	c := NewChecker()
	c.Check(prog)
	first := append([]SemanticError(nil), c.Errors...)
	require.NotEmpty(t, first)

	c.Check(prog)
	assert.Equal(t, first, c.Errors)
}

func TestInferExprType(t *testing.T) {
	c := check(t, loadStateEnum+"let's n = 1")

	assert.Equal(t, TypeNumber, c.InferExprType(ast.NewIdent("n", n0)))
	assert.IsType(t, &Enum{}, c.InferExprType(ast.NewMemberExpr(ast.NewIdent("LoadState", n0), ast.NewIdent("Loading", n0), n0)))
	assert.True(t, IsError(c.InferExprType(ast.NewIdent("nope", n0))))
}

func TestErrorKindCodes(t *testing.T) {
	for k := UndefinedSymbol; k <= InvalidPattern; k++ {
		assert.NotEmpty(t, k.Code(), "%v", k)
		assert.True(t, strings.HasPrefix(string(k.Code()), "SEM_"), "%v", k)
		assert.NotContains(t, k.String(), "ErrorKind(", "%v", k)
	}

	assert.Equal(t, "ErrorKind(99)", fmt.Sprint(ErrorKind(99)))
}
