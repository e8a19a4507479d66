package ast

import "github.com/mago-go/phrix/internal/interner"

// NodeToMap converts an AST node to a map suitable for JSON
// serialization, producing a tagged-union structure: every node has a
// "kind" field. Interned symbol ids are resolved to their text through
// in.
func NodeToMap(node Node, in *interner.Interner) map[string]interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *File:
		return m("File", n, "body", nodeSlice(n.Body, in))

	// ---- Expressions ----
	case *IdentifierExpr:
		return m("IdentifierExpr", n, "name", in.Lookup(n.Name))
	case *VariableExpr:
		return m("VariableExpr", n, "name", in.Lookup(n.Name))
	case *IntLiteral:
		return m("IntLiteral", n, "value", n.Value)
	case *FloatLiteral:
		return m("FloatLiteral", n, "value", n.Value)
	case *StringLiteral:
		return m("StringLiteral", n, "value", n.Value)
	case *BoolLiteral:
		return m("BoolLiteral", n, "value", n.Value)
	case *NullLiteral:
		return m("NullLiteral", n)
	case *UnaryExpr:
		return m("UnaryExpr", n, "op", n.Op.String(), "operand", NodeToMap(n.Operand, in))
	case *BinaryExpr:
		return m("BinaryExpr", n, "op", n.Op.String(), "left", NodeToMap(n.Left, in), "right", NodeToMap(n.Right, in))
	case *CallExpr:
		return m("CallExpr", n, "callee", NodeToMap(n.Callee, in), "arguments", argumentsToMap(n.Arguments, in))
	case *MemberAccessExpr:
		return m("MemberAccessExpr", n, "object", NodeToMap(n.Object, in), "property", identToMap(n.Property, in))
	case *ArrayLiteral:
		return m("ArrayLiteral", n, "elements", exprSlice(n.Elements.Items, in))
	case *NewExpr:
		result := m("NewExpr", n, "className", identToMap(n.ClassName, in))
		if n.Arguments != nil {
			result["arguments"] = argumentsToMap(*n.Arguments, in)
		}
		return result

	// ---- Statements ----
	case *ExprStmt:
		return m("ExprStmt", n, "expr", NodeToMap(n.Expr, in))
	case *Block:
		stmts := make([]interface{}, len(n.Stmts))
		for i, s := range n.Stmts {
			stmts[i] = NodeToMap(s, in)
		}
		return m("Block", n, "stmts", stmts)
	case *ReturnStmt:
		result := m("ReturnStmt", n)
		if n.Value != nil {
			result["value"] = NodeToMap(n.Value, in)
		}
		return result
	case *If:
		return m("If", n, "condition", NodeToMap(n.Condition, in), "body", ifBodyToMap(n.Body, in))
	case *Use:
		return m("Use", n, "items", useItemListToMap(n.Items, in))
	case *Goto:
		return m("Goto", n, "label", identToMap(n.Label, in))
	case *Label:
		return m("Label", n, "name", identToMap(n.Name, in))
	case *ClassLikeConstant:
		items := make([]interface{}, len(n.Items.Items))
		for i, it := range n.Items.Items {
			items[i] = map[string]interface{}{
				"name":  identToMap(it.Name, in),
				"value": NodeToMap(it.Value, in),
			}
		}
		result := m("ClassLikeConstant", n, "items", items)
		result["hasTypeHint"] = n.Hint != nil
		return result
	case *FuncDecl:
		return m("FuncDecl", n, "name", identToMap(n.Name, in), "parameters", parameterListToMap(n.Parameters, in), "body", NodeToMap(n.Body, in))
	case *ClassDecl:
		members := make([]interface{}, len(n.Members))
		for i, mm := range n.Members {
			members[i] = NodeToMap(mm, in)
		}
		return m("ClassDecl", n, "name", identToMap(n.Name, in), "members", members)

	default:
		return map[string]interface{}{"kind": "Unknown"}
	}
}

// ---- helpers ----

func m(kind string, n Node, kvs ...interface{}) map[string]interface{} {
	result := map[string]interface{}{
		"kind": kind,
		"span": spanToMap(n),
	}
	for i := 0; i+1 < len(kvs); i += 2 {
		key := kvs[i].(string)
		result[key] = kvs[i+1]
	}
	return result
}

func spanToMap(n Node) map[string]interface{} {
	s := n.Span()
	return map[string]interface{}{
		"start": map[string]interface{}{"offset": s.Start.Offset, "line": s.Start.Line, "column": s.Start.Column},
		"end":   map[string]interface{}{"offset": s.End.Offset, "line": s.End.Line, "column": s.End.Column},
	}
}

func identToMap(id LocalIdentifier, in *interner.Interner) map[string]interface{} {
	return map[string]interface{}{
		"name": id.Text(in),
	}
}

func nodeSlice(nodes []Node, in *interner.Interner) []interface{} {
	result := make([]interface{}, len(nodes))
	for i, n := range nodes {
		result[i] = NodeToMap(n, in)
	}
	return result
}

func exprSlice(exprs []Expr, in *interner.Interner) []interface{} {
	result := make([]interface{}, len(exprs))
	for i, e := range exprs {
		result[i] = NodeToMap(e, in)
	}
	return result
}

func argumentsToMap(args Arguments, in *interner.Interner) []interface{} {
	result := make([]interface{}, len(args.List.Items))
	for i, a := range args.List.Items {
		switch arg := a.(type) {
		case *PositionalArgument:
			result[i] = map[string]interface{}{
				"kind":     "PositionalArgument",
				"ellipsis": arg.Ellipsis != nil,
				"value":    NodeToMap(arg.Value, in),
			}
		case *NamedArgument:
			result[i] = map[string]interface{}{
				"kind":  "NamedArgument",
				"name":  identToMap(arg.Name, in),
				"value": NodeToMap(arg.Value, in),
			}
		}
	}
	return result
}

func parameterListToMap(pl ParameterList, in *interner.Interner) []interface{} {
	result := make([]interface{}, len(pl.List.Items))
	for i, p := range pl.List.Items {
		entry := map[string]interface{}{
			"variable": identToMap(p.Variable, in),
			"byRef":    p.Ampersand != nil,
			"variadic": p.Ellipsis != nil,
			"promoted": p.IsPromotedProperty(),
			"hasHint":  p.Hint != nil,
		}
		if p.Default != nil {
			entry["default"] = NodeToMap(p.Default, in)
		}
		result[i] = entry
	}
	return result
}

func ifBodyToMap(body IfBody, in *interner.Interner) map[string]interface{} {
	switch b := body.(type) {
	case StatementIfBody:
		elseIfs := make([]interface{}, len(b.ElseIfs))
		for i, ei := range b.ElseIfs {
			elseIfs[i] = map[string]interface{}{
				"condition": NodeToMap(ei.Condition, in),
				"body":      NodeToMap(ei.Body, in),
			}
		}
		result := map[string]interface{}{
			"shape":   "statement",
			"then":    NodeToMap(b.Then, in),
			"elseIfs": elseIfs,
		}
		if b.Else != nil {
			result["else"] = NodeToMap(b.Else, in)
		}
		return result
	case ColonDelimitedIfBody:
		then := make([]interface{}, len(b.Then))
		for i, s := range b.Then {
			then[i] = NodeToMap(s, in)
		}
		elseIfs := make([]interface{}, len(b.ElseIfs))
		for i, ei := range b.ElseIfs {
			stmts := make([]interface{}, len(ei.Body))
			for j, s := range ei.Body {
				stmts[j] = NodeToMap(s, in)
			}
			elseIfs[i] = map[string]interface{}{
				"condition": NodeToMap(ei.Condition, in),
				"body":      stmts,
			}
		}
		result := map[string]interface{}{
			"shape":   "colon",
			"then":    then,
			"elseIfs": elseIfs,
		}
		if b.Else != nil {
			stmts := make([]interface{}, len(b.Else.Body))
			for i, s := range b.Else.Body {
				stmts[i] = NodeToMap(s, in)
			}
			result["else"] = stmts
		}
		return result
	default:
		return map[string]interface{}{"shape": "unknown"}
	}
}

func useItemsToMap(items TokenSeparatedSequence[UseItem], in *interner.Interner) []interface{} {
	result := make([]interface{}, len(items.Items))
	for i, it := range items.Items {
		entry := map[string]interface{}{
			"name": it.Name.Text(in),
			"type": it.Type.String(),
		}
		if it.Alias != nil {
			entry["alias"] = it.Alias.Text(in)
		}
		result[i] = entry
	}
	return result
}

func useItemListToMap(list UseItemList, in *interner.Interner) map[string]interface{} {
	switch l := list.(type) {
	case TypedSequenceUseItemList:
		return map[string]interface{}{"shape": "typedSequence", "type": l.Type.String(), "items": useItemsToMap(l.Items, in)}
	case TypedListUseItemList:
		return map[string]interface{}{"shape": "typedList", "type": l.Type.String(), "namespace": l.Namespace.Text(in), "items": useItemsToMap(l.Items, in)}
	case SequenceUseItemList:
		return map[string]interface{}{"shape": "sequence", "items": useItemsToMap(l.Items, in)}
	case MixedUseItemList:
		return map[string]interface{}{"shape": "mixedList", "namespace": l.Namespace.Text(in), "items": useItemsToMap(l.Items, in)}
	default:
		return map[string]interface{}{"shape": "unknown"}
	}
}
