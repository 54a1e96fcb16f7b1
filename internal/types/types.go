package types

import "strings"

// Type represents a type in the Aegis type system.
type Type interface {
	String() string
	// isType closes the set of implementations to this package.
	isType()
}

// PrimitiveKind represents the kind of a primitive type.
type PrimitiveKind string

const (
	Number  PrimitiveKind = "number"
	Boolean PrimitiveKind = "boolean"
	String  PrimitiveKind = "string"
	Nothing PrimitiveKind = "nothing"
	Dynamic PrimitiveKind = "dynamic"
	// Invalid marks an expression whose failure was already reported.
	Invalid PrimitiveKind = "error"
)

// Primitive represents a primitive type.
type Primitive struct {
	Kind PrimitiveKind
}

func (p *Primitive) String() string { return string(p.Kind) }
func (p *Primitive) isType()        {}

// Common primitive instances
var (
	TypeNumber  = &Primitive{Kind: Number}
	TypeBoolean = &Primitive{Kind: Boolean}
	TypeString  = &Primitive{Kind: String}
	TypeNothing = &Primitive{Kind: Nothing}
	TypeDynamic = &Primitive{Kind: Dynamic}
	TypeError   = &Primitive{Kind: Invalid}
)

// Custom is an opaque named type: a contract, an app or a name that could
// not be resolved further.
type Custom struct {
	Name string
}

func (c *Custom) String() string { return c.Name }
func (c *Custom) isType()        {}

type List struct {
	Elem Type
}

func (l *List) String() string { return "List<" + l.Elem.String() + ">" }
func (l *List) isType()        {}

type Map struct {
	Key   Type
	Value Type
}

func (m *Map) String() string { return "Map<" + m.Key.String() + ", " + m.Value.String() + ">" }
func (m *Map) isType()        {}

type Set struct {
	Elem Type
}

func (s *Set) String() string { return "Set<" + s.Elem.String() + ">" }
func (s *Set) isType()        {}

type Optional struct {
	Elem Type
}

func (o *Optional) String() string { return "Optional<" + o.Elem.String() + ">" }
func (o *Optional) isType()        {}

// Future is the result of calling an async function.
type Future struct {
	Elem Type
}

func (f *Future) String() string { return "Future<" + f.Elem.String() + ">" }
func (f *Future) isType()        {}

// Generic is an unbound type parameter inside a generic contract.
type Generic struct {
	Param string
}

func (g *Generic) String() string { return g.Param }
func (g *Generic) isType()        {}

// Concrete is a generic contract applied to type arguments. Field types are
// substituted lazily, when a value is checked against it.
type Concrete struct {
	Name string
	Args []Type
}

func (c *Concrete) String() string { return c.Name + "<" + joinTypes(c.Args) + ">" }
func (c *Concrete) isType()        {}

// Enum is a named sum type. Variants keep declaration order.
type Enum struct {
	Name     string
	Variants []Variant
}

type Variant struct {
	Name  string
	Types []Type // empty for a plain tag
}

func (e *Enum) String() string { return e.Name }
func (e *Enum) isType()        {}

// Variant returns the variant with the given name.
func (e *Enum) Variant(name string) (Variant, bool) {
	for _, v := range e.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Function represents a function type.
type Function struct {
	Params []Type
	Return Type
}

func (f *Function) String() string {
	ret := "nothing"
	if f.Return != nil {
		ret = f.Return.String()
	}
	return "(" + joinTypes(f.Params) + ") -> " + ret
}
func (f *Function) isType() {}

func joinTypes(ts []Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// IsError reports whether t is the error sentinel.
func IsError(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && p.Kind == Invalid
}

func isPrimitive(t Type, kind PrimitiveKind) bool {
	p, ok := t.(*Primitive)
	return ok && p.Kind == kind
}

// Identical reports whether a and b are structurally the same type.
// Enums, contracts and apps are compared by name.
func Identical(a, b Type) bool {
	return equal(a, b, false)
}

// Compatible reports whether a value of type actual may be used where
// expected is required. The error sentinel matches anything, at any depth;
// otherwise the types must be identical. There is no implicit conversion.
func Compatible(expected, actual Type) bool {
	return equal(expected, actual, true)
}

func equal(a, b Type, lenient bool) bool {
	if lenient && (IsError(a) || IsError(b)) {
		return true
	}

	switch a := a.(type) {
	case *Primitive:
		b, ok := b.(*Primitive)
		return ok && a.Kind == b.Kind
	case *Custom:
		b, ok := b.(*Custom)
		return ok && a.Name == b.Name
	case *List:
		b, ok := b.(*List)
		return ok && equal(a.Elem, b.Elem, lenient)
	case *Set:
		b, ok := b.(*Set)
		return ok && equal(a.Elem, b.Elem, lenient)
	case *Optional:
		b, ok := b.(*Optional)
		return ok && equal(a.Elem, b.Elem, lenient)
	case *Future:
		b, ok := b.(*Future)
		return ok && equal(a.Elem, b.Elem, lenient)
	case *Map:
		b, ok := b.(*Map)
		return ok && equal(a.Key, b.Key, lenient) && equal(a.Value, b.Value, lenient)
	case *Generic:
		b, ok := b.(*Generic)
		return ok && a.Param == b.Param
	case *Concrete:
		b, ok := b.(*Concrete)
		return ok && a.Name == b.Name && equalAll(a.Args, b.Args, lenient)
	case *Enum:
		b, ok := b.(*Enum)
		return ok && a.Name == b.Name
	case *Function:
		b, ok := b.(*Function)
		return ok && equalAll(a.Params, b.Params, lenient) && equal(a.Return, b.Return, lenient)
	case nil:
		return b == nil
	default:
		return false
	}
}

func equalAll(as, bs []Type, lenient bool) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !equal(as[i], bs[i], lenient) {
			return false
		}
	}
	return true
}

// Substitute replaces generic parameters in t using subst.
func Substitute(t Type, subst map[string]Type) Type {
	switch t := t.(type) {
	case *Generic:
		if s, ok := subst[t.Param]; ok {
			return s
		}
		return t
	case *List:
		return &List{Elem: Substitute(t.Elem, subst)}
	case *Set:
		return &Set{Elem: Substitute(t.Elem, subst)}
	case *Optional:
		return &Optional{Elem: Substitute(t.Elem, subst)}
	case *Future:
		return &Future{Elem: Substitute(t.Elem, subst)}
	case *Map:
		return &Map{Key: Substitute(t.Key, subst), Value: Substitute(t.Value, subst)}
	case *Concrete:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = Substitute(a, subst)
		}
		return &Concrete{Name: t.Name, Args: args}
	case *Function:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = Substitute(p, subst)
		}
		return &Function{Params: params, Return: Substitute(t.Return, subst)}
	default:
		return t
	}
}
