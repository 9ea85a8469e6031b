package trans

import (
	"fmt"

	"erasec/internal/diag"
	"erasec/internal/symbols"
	"erasec/internal/trace"
	"erasec/internal/tree"
	"erasec/internal/types"
)

// rewriteCtx is threaded by value through the rewriter.
type rewriteCtx struct {
	pt     types.TypeID // expected erased type; NoTypeID when the value is unconstrained
	method *tree.Node   // innermost method declaration
}

func (c rewriteCtx) expect(pt types.TypeID) rewriteCtx {
	c.pt = pt
	return c
}

func (c rewriteCtx) stmt() rewriteCtx { return c.expect(types.NoTypeID) }

func (t *Translator) translateList(nodes []*tree.Node, c rewriteCtx) []*tree.Node {
	for i, n := range nodes {
		nodes[i] = t.translate(n, c)
	}
	return nodes
}

// translate rewrites n against the expected type in c and returns the
// replacement node.
func (t *Translator) translate(n *tree.Node, c rewriteCtx) *tree.Node {
	if n == nil {
		return nil
	}
	b := t.types.Builtins()
	switch d := n.Data.(type) {
	// declarations
	case *tree.TopLevelData:
		for _, def := range d.Defs {
			if def.Kind == tree.KindClassDef {
				t.nestedClass(def)
			}
		}
		return n
	case *tree.ClassDefData:
		return t.nestedClass(n)
	case *tree.MethodDefData:
		return t.methodDef(n, d)
	case *tree.VarDefData:
		d.VarType = t.translate(d.VarType, c.stmt())
		d.Init = t.translate(d.Init, c.expect(t.syms.Erasure(n.Sym)))
		n.Type = t.erasure(n.Type)
		return n
	case *tree.TypeParameterData:
		invariant(InvariantUnknownNode, n, "type parameter outside a declaration header")

	// statements
	case *tree.BlockData:
		d.Stats = t.translateList(d.Stats, c.stmt())
		return n
	case *tree.DoLoopData:
		d.Body = t.translate(d.Body, c.stmt())
		d.Cond = t.translate(d.Cond, c.expect(b.Bool))
		return n
	case *tree.WhileLoopData:
		d.Cond = t.translate(d.Cond, c.expect(b.Bool))
		d.Body = t.translate(d.Body, c.stmt())
		return n
	case *tree.ForLoopData:
		d.Init = t.translateList(d.Init, c.stmt())
		d.Cond = t.translate(d.Cond, c.expect(b.Bool))
		d.Step = t.translateList(d.Step, c.stmt())
		d.Body = t.translate(d.Body, c.stmt())
		return n
	case *tree.ForeachLoopData:
		d.Var = t.translate(d.Var, c.stmt())
		iterable := d.Expr.Type
		d.Expr = t.translate(d.Expr, c.expect(t.erasure(iterable)))
		if t.types.ElemType(d.Expr.Type) == types.NoTypeID {
			// element type stays recoverable for the desugaring pass
			d.Expr.Type = iterable
		}
		d.Body = t.translate(d.Body, c.stmt())
		return n
	case *tree.LabelledData:
		d.Body = t.translate(d.Body, c.stmt())
		return n
	case *tree.SwitchData:
		target := b.Int
		if t.syms.ClassSymbol(t.types.Supertype(d.Selector.Type)) == t.syms.Enum() {
			target = t.erasure(d.Selector.Type)
		}
		d.Selector = t.translate(d.Selector, c.expect(target))
		d.Cases = t.translateList(d.Cases, c.stmt())
		return n
	case *tree.CaseData:
		d.Pat = t.translate(d.Pat, c.stmt())
		d.Stats = t.translateList(d.Stats, c.stmt())
		return n
	case *tree.SynchronizedData:
		d.Lock = t.translate(d.Lock, c.expect(t.erasure(d.Lock.Type)))
		d.Body = t.translate(d.Body, c.stmt())
		return n
	case *tree.TryData:
		d.Body = t.translate(d.Body, c.stmt())
		d.Catches = t.translateList(d.Catches, c.stmt())
		d.Finally = t.translate(d.Finally, c.stmt())
		return n
	case *tree.CatchData:
		d.Param = t.translate(d.Param, c.stmt())
		d.Body = t.translate(d.Body, c.stmt())
		return n
	case *tree.IfData:
		d.Cond = t.translate(d.Cond, c.expect(b.Bool))
		d.Then = t.translate(d.Then, c.stmt())
		d.Else = t.translate(d.Else, c.stmt())
		return n
	case *tree.ExecData:
		d.Expr = t.translate(d.Expr, c.stmt())
		return n
	case *tree.JumpData:
		return n
	case *tree.ReturnData:
		result := types.NoTypeID
		if c.method != nil {
			result = t.types.Result(t.erasedSignature(c.method.Sym))
		}
		d.Expr = t.translate(d.Expr, c.expect(result))
		return n
	case *tree.ThrowData:
		d.Expr = t.translate(d.Expr, c.expect(t.erasure(d.Expr.Type)))
		return n
	case *tree.AssertData:
		d.Cond = t.translate(d.Cond, c.expect(b.Bool))
		if d.Detail != nil {
			d.Detail = t.translate(d.Detail, c.expect(t.erasure(d.Detail.Type)))
		}
		return n

	// expressions
	case *tree.ConditionalData:
		d.Cond = t.translate(d.Cond, c.expect(b.Bool))
		erased := t.erasure(n.Type)
		d.Then = t.translate(d.Then, c.expect(erased))
		d.Else = t.translate(d.Else, c.expect(erased))
		n.Type = erased
		return t.retype(n, n.Type, c.pt)
	case *tree.ApplyData:
		return t.apply(n, d, c)
	case *tree.NewClassData:
		return t.newClass(n, d, c)
	case *tree.NewArrayData:
		d.ElemType = t.translate(d.ElemType, c.stmt())
		d.Dims = t.translateList(d.Dims, c.expect(b.Int))
		elem := types.NoTypeID
		if n.Type != types.NoTypeID {
			elem = t.erasure(t.types.ElemType(n.Type))
		}
		d.Elems = t.translateList(d.Elems, c.expect(elem))
		n.Type = t.erasure(n.Type)
		return n
	case *tree.ParensData:
		d.Expr = t.translate(d.Expr, c)
		n.Type = t.erasure(n.Type)
		return n
	case *tree.AssignData:
		d.LHS = t.translate(d.LHS, c.stmt())
		d.RHS = t.translate(d.RHS, c.expect(t.erasure(d.LHS.Type)))
		n.Type = t.erasure(n.Type)
		return n
	case *tree.OperatorData:
		return t.operator(n, d, c)
	case *tree.TypeCastData:
		d.Clazz = t.translate(d.Clazz, c.stmt())
		n.Type = t.erasure(n.Type)
		d.Expr = t.translate(d.Expr, c.expect(n.Type))
		return n
	case *tree.TypeTestData:
		d.Expr = t.translate(d.Expr, c.stmt())
		d.Clazz = t.translate(d.Clazz, c.stmt())
		return n
	case *tree.IndexedData:
		d.Indexed = t.translate(d.Indexed, c.expect(t.erasure(d.Indexed.Type)))
		d.Index = t.translate(d.Index, c.expect(b.Int))
		return t.retype(n, t.types.ElemType(d.Indexed.Type), c.pt)
	case *tree.SelectData:
		return t.selectExpr(n, d, c)
	case *tree.IdentData:
		return t.ident(n, c)
	case *tree.LiteralData:
		n.Type = t.erasure(n.Type)
		return n

	// type trees
	case *tree.PrimitiveTypeData:
		return n
	case *tree.TypeArrayData:
		d.Elem = t.translate(d.Elem, c.stmt())
		n.Type = t.erasure(n.Type)
		return n
	case *tree.TypeApplyData:
		return t.translate(d.Clazz, c.stmt())
	case *tree.WildcardData:
		return t.maker.At(n.Span).Type(t.erasure(n.Type))
	case *tree.AnnotatedTypeData:
		d.Underlying = t.translate(d.Underlying, c.stmt())
		n.Type = d.Underlying.Type
		return n
	case *tree.AnnotationData:
		return n
	case nil:
		if n.Kind == tree.KindSkip {
			return n
		}
	}
	invariant(InvariantUnknownNode, n, "")
	return nil
}

func (t *Translator) methodDef(n *tree.Node, d *tree.MethodDefData) *tree.Node {
	if !n.Sym.IsValid() {
		invariant(InvariantMissingSymbol, n, "method declaration")
	}
	none := rewriteCtx{}
	d.Annotations = t.translateList(d.Annotations, none)
	d.ResType = t.translate(d.ResType, none)
	d.TypeParams = nil
	d.Receiver = t.translate(d.Receiver, none)
	d.Params = t.translateList(d.Params, none)
	d.Thrown = t.translateList(d.Thrown, none)
	erased := t.erasedSignature(n.Sym)
	d.Body = t.translate(d.Body, rewriteCtx{pt: t.types.Result(erased), method: n})
	n.Type = t.erasure(n.Type)
	t.checkSameErasure(n)
	return n
}

// checkSameErasure reports another member of the owner whose erased
// signature equals the method's.
func (t *Translator) checkSameErasure(n *tree.Node) {
	sym := t.syms.Get(n.Sym)
	for _, other := range t.syms.MembersNamed(sym.Owner, sym.Name) {
		if other == n.Sym {
			continue
		}
		if !t.types.IsSameType(t.syms.Erasure(other), n.Type) {
			continue
		}
		if t.clashes.Insert(newClashKey(diag.TransNameClashSameErasure, n.Sym, other)) {
			t.stats.Clashes++
			msg := fmt.Sprintf("name clash: %s and %s have the same erasure",
				t.describe(n.Sym), t.describe(other))
			diag.ReportError(t.reporter, diag.TransNameClashSameErasure, n.Span, msg).
				WithNote(t.syms.Get(other).Span, "other declaration").Emit()
			trace.Clash(t.tracer, t.span, trace.ClashEvent{
				Code:   diag.TransNameClashSameErasure.ID(),
				Class:  t.syms.Name(sym.Owner),
				First:  t.describe(n.Sym),
				Second: t.describe(other),
			})
		}
		return
	}
}

// describe renders a method as name(params) for diagnostics.
func (t *Translator) describe(method symbols.SymbolID) string {
	sym := t.syms.Get(method)
	if sym == nil {
		return "?"
	}
	params := t.types.Params(sym.Type)
	out := sym.Name + "("
	for i, p := range params {
		if i > 0 {
			out += ","
		}
		out += types.Label(t.types, p)
	}
	return out + ")"
}
