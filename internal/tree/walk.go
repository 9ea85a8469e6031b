package tree

// Children returns the direct subtrees of n in source order. Nil children
// are skipped.
func Children(n *Node) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	add := func(nodes ...*Node) {
		for _, c := range nodes {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	switch d := n.Data.(type) {
	case *TopLevelData:
		add(d.Defs...)
	case *ClassDefData:
		add(d.Annotations...)
		add(d.TypeParams...)
		add(d.Extends)
		add(d.Implements...)
		add(d.Defs...)
	case *MethodDefData:
		add(d.Annotations...)
		add(d.TypeParams...)
		add(d.ResType, d.Receiver)
		add(d.Params...)
		add(d.Thrown...)
		add(d.Body)
	case *VarDefData:
		add(d.Annotations...)
		add(d.VarType, d.Init)
	case *TypeParameterData:
		add(d.Annotations...)
		add(d.Bounds...)
	case *BlockData:
		add(d.Stats...)
	case *DoLoopData:
		add(d.Body, d.Cond)
	case *WhileLoopData:
		add(d.Cond, d.Body)
	case *ForLoopData:
		add(d.Init...)
		add(d.Cond)
		add(d.Step...)
		add(d.Body)
	case *ForeachLoopData:
		add(d.Var, d.Expr, d.Body)
	case *LabelledData:
		add(d.Body)
	case *SwitchData:
		add(d.Selector)
		add(d.Cases...)
	case *CaseData:
		add(d.Pat)
		add(d.Stats...)
	case *SynchronizedData:
		add(d.Lock, d.Body)
	case *TryData:
		add(d.Body)
		add(d.Catches...)
		add(d.Finally)
	case *CatchData:
		add(d.Param, d.Body)
	case *IfData:
		add(d.Cond, d.Then, d.Else)
	case *ExecData:
		add(d.Expr)
	case *ReturnData:
		add(d.Expr)
	case *ThrowData:
		add(d.Expr)
	case *AssertData:
		add(d.Cond, d.Detail)
	case *ConditionalData:
		add(d.Cond, d.Then, d.Else)
	case *ApplyData:
		add(d.TypeArgs...)
		add(d.Meth)
		add(d.Args...)
	case *NewClassData:
		add(d.Encl)
		add(d.TypeArgs...)
		add(d.Clazz)
		add(d.Args...)
		add(d.Def)
	case *NewArrayData:
		add(d.Annotations...)
		add(d.ElemType)
		for _, anns := range d.DimAnnotations {
			add(anns...)
		}
		add(d.Dims...)
		add(d.Elems...)
	case *ParensData:
		add(d.Expr)
	case *AssignData:
		add(d.LHS, d.RHS)
	case *OperatorData:
		add(d.LHS, d.RHS)
	case *TypeCastData:
		add(d.Clazz, d.Expr)
	case *TypeTestData:
		add(d.Expr, d.Clazz)
	case *IndexedData:
		add(d.Indexed, d.Index)
	case *SelectData:
		add(d.Selected)
	case *TypeArrayData:
		add(d.Elem)
	case *TypeApplyData:
		add(d.Clazz)
		add(d.Args...)
	case *WildcardData:
		add(d.Inner)
	case *AnnotatedTypeData:
		add(d.Annotations...)
		add(d.Underlying)
	case *AnnotationData:
		add(d.AnnotationType)
		add(d.Args...)
	}
	return out
}

// Inspect traverses the tree depth-first. fn receives the node and its
// ancestors, outermost first; returning false skips the node's children.
func Inspect(n *Node, fn func(n *Node, path []*Node) bool) {
	inspect(n, nil, fn)
}

func inspect(n *Node, path []*Node, fn func(*Node, []*Node) bool) {
	if n == nil || !fn(n, path) {
		return
	}
	path = append(path, n)
	for _, c := range Children(n) {
		inspect(c, path[:len(path):len(path)], fn)
	}
}
