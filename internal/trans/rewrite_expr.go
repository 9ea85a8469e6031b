package trans

import (
	"fmt"

	"erasec/internal/symbols"
	"erasec/internal/tree"
	"erasec/internal/types"
)

func (t *Translator) apply(n *tree.Node, d *tree.ApplyData, c rewriteCtx) *tree.Node {
	d.TypeArgs = t.translateList(d.TypeArgs, c.stmt())
	d.Meth = t.translate(d.Meth, c.stmt())
	meth := d.Meth.Sym
	sym := t.syms.Get(meth)
	if sym == nil || sym.Kind != symbols.SymbolMethod {
		invariant(InvariantMissingSymbol, n, "")
	}
	mt := t.erasedSignature(meth)
	params := t.types.Params(mt)
	if t.opts.AllowEnums && sym.IsConstructor() && sym.Owner == t.syms.Enum() && len(params) >= 2 {
		params = params[2:]
	}
	if d.VarargsElement != types.NoTypeID {
		d.VarargsElement = t.erasure(d.VarargsElement)
	} else if len(d.Args) != len(params) {
		invariant(InvariantArity, n, fmt.Sprintf("%d arguments for %d parameters", len(d.Args), len(params)))
	}
	d.Args = t.translateArgs(n, d.Args, params, d.VarargsElement)
	return t.retype(n, t.types.Result(mt), c.pt)
}

func (t *Translator) newClass(n *tree.Node, d *tree.NewClassData, c rewriteCtx) *tree.Node {
	if d.Encl != nil {
		d.Encl = t.translate(d.Encl, c.expect(t.erasure(d.Encl.Type)))
	}
	d.TypeArgs = t.translateList(d.TypeArgs, c.stmt())
	d.Clazz = t.translate(d.Clazz, c.stmt())
	if d.VarargsElement != types.NoTypeID {
		d.VarargsElement = t.erasure(d.VarargsElement)
	}
	if !d.Constructor.IsValid() {
		invariant(InvariantMissingSymbol, n, "constructor")
	}
	params := t.types.Params(t.erasedSignature(d.Constructor))
	if d.VarargsElement == types.NoTypeID && len(d.Args) != len(params) {
		invariant(InvariantArity, n, fmt.Sprintf("%d arguments for %d parameters", len(d.Args), len(params)))
	}
	d.Args = t.translateArgs(n, d.Args, params, d.VarargsElement)
	d.Def = t.translate(d.Def, c.stmt())
	n.Type = t.erasure(n.Type)
	return n
}

// translateArgs coerces each argument to its erased parameter type. In a
// variable arity call the arguments from the last parameter on go against
// the erased element type.
func (t *Translator) translateArgs(call *tree.Node, args []*tree.Node, params []types.TypeID, varargsElement types.TypeID) []*tree.Node {
	if len(params) == 0 {
		return args
	}
	last := len(params) - 1
	if len(args) < last {
		invariant(InvariantArity, call, fmt.Sprintf("%d arguments for %d parameters", len(args), len(params)))
	}
	c := rewriteCtx{}
	for i := 0; i < last; i++ {
		args[i] = t.translate(args[i], c.expect(params[i]))
	}
	if varargsElement != types.NoTypeID {
		for i := last; i < len(args); i++ {
			args[i] = t.translate(args[i], c.expect(varargsElement))
		}
		return args
	}
	args[last] = t.translate(args[last], c.expect(params[last]))
	return args
}

func (t *Translator) operator(n *tree.Node, d *tree.OperatorData, c rewriteCtx) *tree.Node {
	params := t.types.Params(d.Operator)
	param := func(i int) types.TypeID {
		if i < len(params) {
			return params[i]
		}
		return types.NoTypeID
	}
	switch n.Kind {
	case tree.KindAssignOp:
		d.LHS = t.translate(d.LHS, c.stmt())
		d.RHS = t.translate(d.RHS, c.expect(param(1)))
	case tree.KindUnary:
		d.LHS = t.translate(d.LHS, c.expect(param(0)))
	case tree.KindBinary:
		d.LHS = t.translate(d.LHS, c.expect(param(0)))
		d.RHS = t.translate(d.RHS, c.expect(param(1)))
	default:
		invariant(InvariantUnknownNode, n, "operator payload")
	}
	n.Type = t.erasure(n.Type)
	return n
}

func (t *Translator) selectExpr(n *tree.Node, d *tree.SelectData, c rewriteCtx) *tree.Node {
	site := d.Selected.Type
	for t.types.KindOf(site) == types.KindTypeVar {
		site = t.types.UpperBound(site)
	}
	if t.types.KindOf(site) == types.KindIntersection {
		owner := types.NoTypeID
		if sym := t.syms.Get(n.Sym); sym != nil {
			owner = t.syms.Erasure(sym.Owner)
		}
		d.Selected = t.translate(d.Selected, c.expect(t.erasure(d.Selected.Type)))
		if owner != types.NoTypeID {
			d.Selected = t.cast(d.Selected, owner)
		}
	} else {
		d.Selected = t.translate(d.Selected, c.expect(t.erasure(site)))
	}
	return t.variableUse(n, c)
}

func (t *Translator) ident(n *tree.Node, c rewriteCtx) *tree.Node {
	if sym := t.syms.Get(n.Sym); sym != nil && sym.Kind == symbols.SymbolTypeVar {
		return t.maker.At(n.Span).Type(t.syms.Erasure(n.Sym))
	}
	return t.variableUse(n, c)
}

// variableUse finishes identifiers and selects: constants stay as they
// are, variables are retyped, anything else just loses its generics.
func (t *Translator) variableUse(n *tree.Node, c rewriteCtx) *tree.Node {
	sym := t.syms.Get(n.Sym)
	switch {
	case sym != nil && sym.Kind == symbols.SymbolVar && sym.Const:
		return n
	case sym != nil && sym.Kind == symbols.SymbolVar:
		return t.retype(n, t.syms.Erasure(n.Sym), c.pt)
	default:
		n.Type = t.erasure(n.Type)
		return n
	}
}
