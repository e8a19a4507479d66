package lint

import "github.com/mago-go/phrix/internal/ast"

// children returns the immediate structural children of node, in
// source order, for the pre-order walk. Every ast.Node variant the
// grammar produces must be listed here or its subtree goes unvisited.
func children(node ast.Node) []ast.Node {
	switch n := node.(type) {
	case *ast.File:
		return n.Body

	// ---- expressions ----
	case *ast.UnaryExpr:
		return []ast.Node{n.Operand}
	case *ast.BinaryExpr:
		return []ast.Node{n.Left, n.Right}
	case *ast.CallExpr:
		out := []ast.Node{n.Callee}
		return append(out, argumentNodes(n.Arguments)...)
	case *ast.MemberAccessExpr:
		return []ast.Node{n.Object}
	case *ast.ArrayLiteral:
		out := make([]ast.Node, len(n.Elements.Items))
		for i, e := range n.Elements.Items {
			out[i] = e
		}
		return out
	case *ast.NewExpr:
		if n.Arguments != nil {
			return argumentNodes(*n.Arguments)
		}
		return nil
	case *ast.PositionalArgument:
		return []ast.Node{n.Value}
	case *ast.NamedArgument:
		return []ast.Node{n.Value}

	// ---- statements ----
	case *ast.ExprStmt:
		return []ast.Node{n.Expr}
	case *ast.Block:
		out := make([]ast.Node, len(n.Stmts))
		for i, s := range n.Stmts {
			out[i] = s
		}
		return out
	case *ast.ReturnStmt:
		if n.Value != nil {
			return []ast.Node{n.Value}
		}
		return nil
	case *ast.If:
		return ifBodyChildren(n.Condition, n.Body)
	case *ast.ClassLikeConstant:
		out := make([]ast.Node, 0, len(n.Items.Items))
		for _, item := range n.Items.Items {
			out = append(out, item.Value)
		}
		return out
	case *ast.FuncDecl:
		if n.Body != nil {
			return []ast.Node{n.Body}
		}
		return nil
	case *ast.ClassDecl:
		out := make([]ast.Node, len(n.Members))
		for i, m := range n.Members {
			out[i] = m
		}
		return out

	default:
		return nil
	}
}

func argumentNodes(args ast.Arguments) []ast.Node {
	out := make([]ast.Node, len(args.List.Items))
	for i, a := range args.List.Items {
		out[i] = a
	}
	return out
}

func ifBodyChildren(cond ast.Expr, body ast.IfBody) []ast.Node {
	out := []ast.Node{cond}
	switch b := body.(type) {
	case ast.StatementIfBody:
		out = append(out, b.Then)
		for _, ei := range b.ElseIfs {
			out = append(out, ei.Condition, ei.Body)
		}
		if b.Else != nil {
			out = append(out, b.Else)
		}
	case ast.ColonDelimitedIfBody:
		for _, s := range b.Then {
			out = append(out, s)
		}
		for _, ei := range b.ElseIfs {
			out = append(out, ei.Condition)
			for _, s := range ei.Body {
				out = append(out, s)
			}
		}
		if b.Else != nil {
			for _, s := range b.Else.Body {
				out = append(out, s)
			}
		}
	}
	return out
}
