// Package il defines the stack-based intermediate language produced from a
// checked program, and the lowerer that builds it.
package il

import (
	"fmt"
	"strconv"
)

// Instruction is one stack machine operation. The set is closed.
type Instruction interface {
	String() string
	instr()
}

// Sequence is the code of one function, or "main" for top-level statements.
type Sequence struct {
	Name         string
	Params       []string
	Instructions []Instruction
}

// MainSequence names the sequence holding top-level statements.
const MainSequence = "main"

type (
	PushI64 struct {
		Value int64
	}
	PushBool struct {
		Value bool
	}
	PushString struct {
		Value string
	}
	PushNothing struct{}

	Store struct {
		Name string
	}
	Load struct {
		Name string
	}

	Add          struct{}
	Subtract     struct{}
	Multiply     struct{}
	Divide       struct{}
	GreaterThan  struct{}
	LessThan     struct{}
	GreaterEqual struct{}
	LessEqual    struct{}
	Equals       struct{}
	NotEquals    struct{}
	Negate       struct{}
	Not          struct{}

	// Pop discards the top of the stack.
	Pop struct{}

	// MakeList pops Count values and pushes a list of them.
	MakeList struct {
		Count int
	}
	// MakeMap pops Count key/value pairs and pushes a map.
	MakeMap struct {
		Count int
	}
	// GetMember replaces the top value by its member Name. Values carried
	// by an enum variant are named by their position.
	GetMember struct {
		Name string
	}
	// MakeVariant pops Count values and pushes the variant carrying them.
	MakeVariant struct {
		Enum    string
		Variant string
		Count   int
	}
	// IsVariant replaces the top value by whether it is the given variant.
	IsVariant struct {
		Enum    string
		Variant string
	}
	Await struct{}

	Label struct {
		Name string
	}
	Jump struct {
		Label string
	}
	JumpIfFalse struct {
		Label string
	}
	// Call pops Argc arguments and pushes the result of calling Name.
	Call struct {
		Name string
		Argc int
	}
	Return struct{}
)

func (i PushI64) String() string     { return "push_i64 " + strconv.FormatInt(i.Value, 10) }
func (i PushBool) String() string    { return "push_bool " + strconv.FormatBool(i.Value) }
func (i PushString) String() string  { return "push_string " + strconv.Quote(i.Value) }
func (PushNothing) String() string   { return "push_nothing" }
func (i Store) String() string       { return "store " + i.Name }
func (i Load) String() string        { return "load " + i.Name }
func (Add) String() string           { return "add" }
func (Subtract) String() string      { return "subtract" }
func (Multiply) String() string      { return "multiply" }
func (Divide) String() string        { return "divide" }
func (GreaterThan) String() string   { return "greater_than" }
func (LessThan) String() string      { return "less_than" }
func (GreaterEqual) String() string  { return "greater_equal" }
func (LessEqual) String() string     { return "less_equal" }
func (Equals) String() string        { return "equals" }
func (NotEquals) String() string     { return "not_equals" }
func (Negate) String() string        { return "negate" }
func (Not) String() string           { return "not" }
func (Pop) String() string           { return "pop" }
func (i MakeList) String() string    { return fmt.Sprintf("make_list %d", i.Count) }
func (i MakeMap) String() string     { return fmt.Sprintf("make_map %d", i.Count) }
func (i GetMember) String() string   { return "get_member " + i.Name }
func (i MakeVariant) String() string { return fmt.Sprintf("make_variant %s.%s %d", i.Enum, i.Variant, i.Count) }
func (i IsVariant) String() string   { return fmt.Sprintf("is_variant %s.%s", i.Enum, i.Variant) }
func (Await) String() string         { return "await" }
func (i Label) String() string       { return i.Name + ":" }
func (i Jump) String() string        { return "jump " + i.Label }
func (i JumpIfFalse) String() string { return "jump_if_false " + i.Label }
func (i Call) String() string        { return fmt.Sprintf("call %s %d", i.Name, i.Argc) }
func (Return) String() string        { return "return" }

func (PushI64) instr()      {}
func (PushBool) instr()     {}
func (PushString) instr()   {}
func (PushNothing) instr()  {}
func (Store) instr()        {}
func (Load) instr()         {}
func (Add) instr()          {}
func (Subtract) instr()     {}
func (Multiply) instr()     {}
func (Divide) instr()       {}
func (GreaterThan) instr()  {}
func (LessThan) instr()     {}
func (GreaterEqual) instr() {}
func (LessEqual) instr()    {}
func (Equals) instr()       {}
func (NotEquals) instr()    {}
func (Negate) instr()       {}
func (Not) instr()          {}
func (Pop) instr()          {}
func (MakeList) instr()     {}
func (MakeMap) instr()      {}
func (GetMember) instr()    {}
func (MakeVariant) instr()  {}
func (IsVariant) instr()    {}
func (Await) instr()        {}
func (Label) instr()        {}
func (Jump) instr()         {}
func (JumpIfFalse) instr()  {}
func (Call) instr()         {}
func (Return) instr()       {}
