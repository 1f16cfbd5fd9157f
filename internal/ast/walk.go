package ast

// Walk traverses an AST in depth-first order.
// For each node, it calls fn(node). If fn returns false,
// the children of that node are not visited.
//
// Example: collect identifier names
//
//	var names []string
//	ast.Walk(prog, func(n ast.Node) bool {
//	    if id, ok := n.(*ast.Ident); ok {
//	        names = append(names, id.Name)
//	    }
//	    return true
//	})
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, c := range Children(node) {
		Walk(c, fn)
	}
}

// Inspect is like Walk but also passes the parent of each node (nil for the
// root).
func Inspect(node Node, fn func(node, parent Node) bool) {
	inspect(node, nil, fn)
}

func inspect(node, parent Node, fn func(node, parent Node) bool) {
	if node == nil || !fn(node, parent) {
		return
	}
	for _, c := range Children(node) {
		inspect(c, node, fn)
	}
}

// Children returns the direct children of node in source order. Absent
// optional children are omitted.
func Children(node Node) []Node {
	var c children
	switch n := node.(type) {
	case *Program:
		for _, e := range n.Elements {
			c.add(e)
		}
	case *FuncDecl:
		for _, e := range n.Body {
			c.add(e)
		}
	case *FunctionExpr:
		for _, e := range n.Body {
			c.add(e)
		}

	// Expressions
	case *SequenceExpr:
		for _, x := range n.List {
			c.add(x)
		}
	case *AssignExpr:
		for _, t := range n.Targets {
			c.add(t.Target)
		}
		c.add(n.Value)
	case *CondExpr:
		c.add(n.Test)
		if n.Then != nil {
			c.add(n.Then)
			c.add(n.Else)
		}
	case *LogicalOrExpr:
		c.level(n.Head, operands(n.Ops))
	case *LogicalAndExpr:
		c.level(n.Head, operands(n.Ops))
	case *BitOrExpr:
		c.level(n.Head, operands(n.Ops))
	case *BitXorExpr:
		c.level(n.Head, operands(n.Ops))
	case *BitAndExpr:
		c.level(n.Head, operands(n.Ops))
	case *EqualityExpr:
		c.level(n.Head, operands(n.Ops))
	case *RelationalExpr:
		c.level(n.Head, operands(n.Ops))
	case *ShiftExpr:
		c.level(n.Head, operands(n.Ops))
	case *AdditiveExpr:
		c.level(n.Head, operands(n.Ops))
	case *MultiplicativeExpr:
		c.level(n.Head, operands(n.Ops))
	case *UnaryExpr:
		c.add(n.Operand)
	case *PostfixExpr:
		c.add(n.Operand)
	case *CallExpr:
		c.add(n.Callee)
		c.add(n.Args)
		for _, m := range n.Modifiers {
			c.add(m)
		}
	case *NewExpr:
		c.add(n.Target)
	case *MemberAccess:
		c.add(n.Target)
		for _, m := range n.Modifiers {
			c.add(m)
		}
	case *Instantiation:
		c.add(n.Target)
		c.add(n.Args)
	case *Arguments:
		for _, x := range n.List {
			c.add(x)
		}
	case *Index:
		c.add(n.Index)
	case *ArrayLit:
		for _, x := range n.Elements {
			c.add(x)
		}
	case *ParenExpr:
		c.add(n.X)
	case *Property, *ThisExpr, *Ident, *NullLit, *BoolLit, *NumberLit, *StringLit:
		// no children

	// Statements
	case *BlockStmt:
		for _, s := range n.List {
			c.add(s)
		}
	case *VarStmt:
		for _, d := range n.List {
			c.add(d)
		}
	case *VarDecl:
		if n.Init != nil {
			c.add(n.Init)
		}
	case *ExprStmt:
		c.add(n.X)
	case *IfStmt:
		c.add(n.Cond)
		c.add(n.Then)
		if n.Else != nil {
			c.add(n.Else)
		}
	case *DoWhileStmt:
		c.add(n.Body)
		c.add(n.Cond)
	case *WhileStmt:
		c.add(n.Cond)
		c.add(n.Body)
	case *ForStmt:
		c.opt(n.Init)
		c.opt(n.Cond)
		c.opt(n.Post)
		c.add(n.Body)
	case *ForVarStmt:
		for _, d := range n.Decls {
			c.add(d)
		}
		c.opt(n.Cond)
		c.opt(n.Post)
		c.add(n.Body)
	case *ForInStmt:
		c.add(n.Target)
		c.add(n.Object)
		c.add(n.Body)
	case *ForInVarStmt:
		c.add(n.Decl)
		c.add(n.Object)
		c.add(n.Body)
	case *ReturnStmt:
		c.opt(n.Value)
	case *WithStmt:
		c.add(n.Object)
		c.add(n.Body)
	case *LabeledStmt:
		c.add(n.Body)
	case *SwitchStmt:
		c.add(n.Tag)
		for _, cc := range n.Cases {
			c.add(cc)
		}
		if n.Default != nil {
			c.add(n.Default)
		}
		for _, cc := range n.Trailing {
			c.add(cc)
		}
	case *CaseClause:
		c.add(n.Match)
		for _, s := range n.Body {
			c.add(s)
		}
	case *DefaultClause:
		for _, s := range n.Body {
			c.add(s)
		}
	case *ThrowStmt:
		c.add(n.X)
	case *TryStmt:
		c.add(n.Body)
		if n.Catch != nil {
			c.add(n.Catch)
		}
		if n.Finally != nil {
			c.add(n.Finally)
		}
	case *CatchClause:
		c.add(n.Body)
	case *EmptyStmt, *ContinueStmt, *BreakStmt, *DebuggerStmt:
		// no children
	}
	return c
}

type children []Node

func (c *children) add(n Node) {
	*c = append(*c, n)
}

// opt adds an optional sequence expression.
func (c *children) opt(x *SequenceExpr) {
	if x != nil {
		*c = append(*c, x)
	}
}

func (c *children) level(head Node, ops []Node) {
	*c = append(*c, head)
	*c = append(*c, ops...)
}

// operands returns the operand of each operation.
func operands[T Expr](ops []Operation[T]) []Node {
	nodes := make([]Node, len(ops))
	for i, op := range ops {
		nodes[i] = op.Operand
	}
	return nodes
}
