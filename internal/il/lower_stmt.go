package il

import (
	"tlog.app/go/errors"

	"github.com/aegis-lang/aegis/internal/ast"
)

func (l *Lowerer) lowerStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		if err := l.lowerExpr(s.Value); err != nil {
			return err
		}
		l.emit(Store{Name: s.Name.Name})

	case *ast.ReturnStmt:
		if s.Value != nil {
			if err := l.lowerExpr(s.Value); err != nil {
				return err
			}
		}
		l.emit(Return{})

	case *ast.BlockStmt:
		return l.lowerBlock(s)

	case *ast.ExprStmt:
		if err := l.lowerExpr(s.Expr); err != nil {
			return err
		}
		if leavesValue(s.Expr) {
			l.emit(Pop{})
		}

	case *ast.ForStmt:
		// no iteration instructions yet

	default:
		return errors.Wrap(ErrUnsupported, "statement %T", stmt)
	}

	return nil
}

func (l *Lowerer) lowerBlock(b *ast.BlockStmt) error {
	for _, s := range b.Stmts {
		if err := l.lowerStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// lowerValueBlock lowers a branch that must leave one value: its trailing
// expression statement, or nothing.
func (l *Lowerer) lowerValueBlock(b *ast.BlockStmt) error {
	for i, s := range b.Stmts {
		if es, ok := s.(*ast.ExprStmt); ok && i == len(b.Stmts)-1 && leavesValue(es.Expr) {
			return l.lowerExpr(es.Expr)
		}
		if err := l.lowerStmt(s); err != nil {
			return err
		}
	}

	l.emit(PushNothing{})

	return nil
}

// leavesValue reports whether lowering e leaves a value on the stack.
// Every expression does except assignment.
func leavesValue(e ast.Expr) bool {
	_, assign := e.(*ast.AssignExpr)
	return !assign
}
