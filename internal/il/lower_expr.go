package il

import (
	"strconv"

	"tlog.app/go/errors"

	"github.com/aegis-lang/aegis/internal/ast"
)

var infixOps = map[ast.InfixOp]Instruction{
	ast.OpAdd:   Add{},
	ast.OpSub:   Subtract{},
	ast.OpMul:   Multiply{},
	ast.OpDiv:   Divide{},
	ast.OpEq:    Equals{},
	ast.OpNotEq: NotEquals{},
	ast.OpLt:    LessThan{},
	ast.OpGt:    GreaterThan{},
	ast.OpLe:    LessEqual{},
	ast.OpGe:    GreaterEqual{},
}

var prefixOps = map[ast.PrefixOp]Instruction{
	ast.OpNegate: Negate{},
	ast.OpNot:    Not{},
}

// askJavaScript is the runtime function behind ask_javascript.
const askJavaScript = "ask_javascript"

// lowerExpr emits code leaving exactly one value on the stack, except for
// assignments which leave none.
func (l *Lowerer) lowerExpr(expr ast.Expr) error {
	switch e := expr.(type) {
	case *ast.NumberLit:
		v, err := strconv.ParseInt(e.Text, 10, 64)
		if err != nil {
			return errors.Wrap(err, "number literal %s", e.Text)
		}
		l.emit(PushI64{Value: v})

	case *ast.StringLit:
		l.emit(PushString{Value: e.Value})

	case *ast.BoolLit:
		l.emit(PushBool{Value: e.Value})

	case *ast.NothingLit:
		l.emit(PushNothing{})

	case *ast.Ident:
		l.emit(Load{Name: e.Name})

	case *ast.ListLit:
		if err := l.lowerExprs(e.Elements); err != nil {
			return err
		}
		l.emit(MakeList{Count: len(e.Elements)})

	case *ast.MapLit:
		return l.lowerMap(e)

	case *ast.PrefixExpr:
		op, ok := prefixOps[e.Op]
		if !ok {
			return errors.Wrap(ErrUnsupported, "prefix operator %v", e.Op)
		}
		if err := l.lowerExpr(e.Right); err != nil {
			return err
		}
		l.emit(op)

	case *ast.InfixExpr:
		op, ok := infixOps[e.Op]
		if !ok {
			return errors.Wrap(ErrUnsupported, "infix operator %v", e.Op)
		}
		if err := l.lowerExpr(e.Left); err != nil {
			return err
		}
		if err := l.lowerExpr(e.Right); err != nil {
			return err
		}
		l.emit(op)

	case *ast.AssignExpr:
		if err := l.lowerExpr(e.Value); err != nil {
			return err
		}
		l.emit(Store{Name: e.Target.Name})

	case *ast.IfExpr:
		return l.lowerIf(e)

	case *ast.WhenExpr:
		return l.lowerWhen(e)

	case *ast.CallExpr:
		return l.lowerCall(e)

	case *ast.MemberExpr:
		if enum, ok := l.enumName(e.Object); ok {
			l.emit(MakeVariant{Enum: enum, Variant: e.Property.Name})
			return nil
		}
		if err := l.lowerExpr(e.Object); err != nil {
			return err
		}
		l.emit(GetMember{Name: e.Property.Name})

	case *ast.AwaitExpr:
		if err := l.lowerExpr(e.Value); err != nil {
			return err
		}
		l.emit(Await{})

	case *ast.AskJsExpr:
		l.emit(PushString{Value: e.Code}, Call{Name: askJavaScript, Argc: 1})

	default:
		return errors.Wrap(ErrUnsupported, "expression %T", expr)
	}

	return nil
}

func (l *Lowerer) lowerExprs(list []ast.Expr) error {
	for _, e := range list {
		if err := l.lowerExpr(e); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) lowerMap(m *ast.MapLit) error {
	for _, entry := range m.Entries {
		switch k := entry.Key.(type) {
		case *ast.Ident:
			l.emit(PushString{Value: k.Name})
		default:
			if err := l.lowerExpr(k); err != nil {
				return err
			}
		}

		if err := l.lowerExpr(entry.Value); err != nil {
			return err
		}
	}

	l.emit(MakeMap{Count: len(m.Entries)})

	return nil
}

// lowerIf emits
//
//	cond; jump_if_false else; consequence; jump end; else: alternative; end:
func (l *Lowerer) lowerIf(e *ast.IfExpr) error {
	elseLabel := l.newLabel()
	endLabel := l.newLabel()

	if err := l.lowerExpr(e.Cond); err != nil {
		return err
	}
	l.emit(JumpIfFalse{Label: elseLabel})

	if err := l.lowerValueBlock(e.Consequence); err != nil {
		return err
	}
	l.emit(Jump{Label: endLabel}, Label{Name: elseLabel})

	switch alt := e.Alternative.(type) {
	case nil:
		l.emit(PushNothing{})
	case *ast.BlockStmt:
		if err := l.lowerValueBlock(alt); err != nil {
			return err
		}
	case *ast.ExprStmt:
		if err := l.lowerExpr(alt.Expr); err != nil {
			return err
		}
		if !leavesValue(alt.Expr) {
			l.emit(PushNothing{})
		}
	default:
		if err := l.lowerStmt(alt); err != nil {
			return err
		}
		l.emit(PushNothing{})
	}

	l.emit(Label{Name: endLabel})

	return nil
}

// lowerWhen keeps the subject in a temporary and tests the cases in order.
// A case that fails its test jumps to the next one; when none matches the
// result is nothing.
func (l *Lowerer) lowerWhen(e *ast.WhenExpr) error {
	subject := l.newTemp("when")
	endLabel := l.newLabel()

	if err := l.lowerExpr(e.Subject); err != nil {
		return err
	}
	l.emit(Store{Name: subject})

	for _, c := range e.Cases {
		next := l.newLabel()

		switch p := c.Pattern.(type) {
		case *ast.LiteralPattern:
			l.emit(Load{Name: subject})
			if err := l.lowerExpr(p.Value); err != nil {
				return err
			}
			l.emit(Equals{}, JumpIfFalse{Label: next})

		case *ast.EnumVariantPattern:
			l.emit(
				Load{Name: subject},
				IsVariant{Enum: p.Enum.Name, Variant: p.Variant.Name},
				JumpIfFalse{Label: next},
			)
			for i, b := range p.Bindings {
				l.emit(
					Load{Name: subject},
					GetMember{Name: strconv.Itoa(i)},
					Store{Name: b.Name},
				)
			}

		case *ast.IdentPattern:
			l.emit(Load{Name: subject}, Store{Name: p.Name.Name})

		case *ast.ElsePattern:

		default:
			return errors.Wrap(ErrUnsupported, "pattern %T", c.Pattern)
		}

		if err := l.lowerExpr(c.Body); err != nil {
			return err
		}
		if !leavesValue(c.Body) {
			l.emit(PushNothing{})
		}

		l.emit(Jump{Label: endLabel}, Label{Name: next})
	}

	l.emit(PushNothing{}, Label{Name: endLabel})

	return nil
}

func (l *Lowerer) lowerCall(e *ast.CallExpr) error {
	switch callee := e.Callee.(type) {
	case *ast.Ident:
		if err := l.lowerExprs(e.Args); err != nil {
			return err
		}
		l.emit(Call{Name: callee.Name, Argc: len(e.Args)})

	case *ast.MemberExpr:
		enum, ok := l.enumName(callee.Object)
		if !ok {
			return errors.Wrap(ErrUnsupported, "method call %s", callee.Property.Name)
		}
		if err := l.lowerExprs(e.Args); err != nil {
			return err
		}
		l.emit(MakeVariant{Enum: enum, Variant: callee.Property.Name, Count: len(e.Args)})

	default:
		return errors.Wrap(ErrUnsupported, "call through %T", e.Callee)
	}

	return nil
}

func (l *Lowerer) enumName(e ast.Expr) (string, bool) {
	id, ok := e.(*ast.Ident)
	if !ok || !l.enums[id.Name] {
		return "", false
	}
	return id.Name, true
}
