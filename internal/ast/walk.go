package ast

// Walk traverses the AST starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, def := range n.Definitions {
			Walk(def, fn)
		}

	case *StmtDef:
		Walk(n.Stmt, fn)

	case *ContractDef:
		Walk(n.Name, fn)
		for _, p := range n.TypeParams {
			Walk(p, fn)
		}
		for _, f := range n.Fields {
			Walk(f, fn)
		}

	case *ContractField:
		Walk(n.Name, fn)
		walkType(n.Type, fn)

	case *EnumDef:
		Walk(n.Name, fn)
		for _, v := range n.Variants {
			Walk(v, fn)
		}

	case *EnumVariant:
		Walk(n.Name, fn)
		for _, t := range n.Types {
			walkType(t, fn)
		}

	case *FunctionDef:
		Walk(n.Name, fn)
		for _, p := range n.Params {
			Walk(p, fn)
		}
		walkType(n.ReturnType, fn)
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *Param:
		Walk(n.Name, fn)
		walkType(n.Type, fn)

	case *AppDef:
		Walk(n.Name, fn)
		for _, m := range n.Members {
			Walk(m, fn)
		}
		if n.Show != nil {
			Walk(n.Show, fn)
		}

	case *ShowBlock:
		if n.Root != nil {
			Walk(n.Root, fn)
		}

	case *UIElement:
		Walk(n.Name, fn)
		for _, p := range n.Props {
			Walk(p, fn)
		}
		for _, c := range n.Children {
			Walk(c, fn)
		}

	case *PositionalProp:
		Walk(n.Value, fn)

	case *NamedProp:
		Walk(n.Name, fn)
		Walk(n.Value, fn)

	case *EventBinding:
		Walk(n.Event, fn)
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *LetStmt:
		Walk(n.Name, fn)
		walkType(n.Type, fn)
		Walk(n.Value, fn)

	case *ForStmt:
		Walk(n.Iterator, fn)
		Walk(n.Iterable, fn)
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *ReturnStmt:
		Walk(n.Value, fn)

	case *BlockStmt:
		for _, s := range n.Stmts {
			Walk(s, fn)
		}

	case *ExprStmt:
		Walk(n.Expr, fn)

	case *ListLit:
		for _, e := range n.Elements {
			Walk(e, fn)
		}

	case *MapLit:
		for _, e := range n.Entries {
			Walk(e.Key, fn)
			Walk(e.Value, fn)
		}

	case *PrefixExpr:
		Walk(n.Right, fn)

	case *InfixExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *AssignExpr:
		Walk(n.Target, fn)
		Walk(n.Value, fn)

	case *IfExpr:
		Walk(n.Cond, fn)
		if n.Consequence != nil {
			Walk(n.Consequence, fn)
		}
		Walk(n.Alternative, fn)

	case *WhenExpr:
		Walk(n.Subject, fn)
		for _, c := range n.Cases {
			Walk(c, fn)
		}

	case *WhenCase:
		Walk(n.Pattern, fn)
		Walk(n.Body, fn)

	case *LiteralPattern:
		Walk(n.Value, fn)

	case *IdentPattern:
		Walk(n.Name, fn)

	case *EnumVariantPattern:
		Walk(n.Enum, fn)
		Walk(n.Variant, fn)
		for _, b := range n.Bindings {
			Walk(b, fn)
		}

	case *CallExpr:
		Walk(n.Callee, fn)
		for _, a := range n.Args {
			Walk(a, fn)
		}

	case *MemberExpr:
		Walk(n.Object, fn)
		Walk(n.Property, fn)

	case *AwaitExpr:
		Walk(n.Value, fn)

	case *GenericType:
		for _, a := range n.Args {
			walkType(a, fn)
		}
	}
}

func walkType(t TypeExpr, fn func(Node) bool) {
	if t == nil {
		return
	}
	Walk(t, fn)
}
