package testkit

import (
	"erasec/internal/symbols"
	"erasec/internal/tree"
	"erasec/internal/types"
)

func (b *Builder) node(kind tree.Kind, typ types.TypeID, sym symbols.SymbolID, data tree.Data) *tree.Node {
	return &tree.Node{Kind: kind, Span: b.Span(), Type: typ, Sym: sym, Data: data}
}

// Ident references a variable or class symbol with its declared type.
func (b *Builder) Ident(sym symbols.SymbolID) *tree.Node {
	return b.Maker().Ident(sym)
}

// IdentAs references sym with the type seen at the use site.
func (b *Builder) IdentAs(sym symbols.SymbolID, typ types.TypeID) *tree.Node {
	n := b.Ident(sym)
	n.Type = typ
	return n
}

// This is the receiver typed with the class's declared type.
func (b *Builder) This(c *Class) *tree.Node {
	return b.Maker().This(c.Type())
}

// Select reads member of recv; typ is the member's type at the use site.
func (b *Builder) Select(recv *tree.Node, member symbols.SymbolID, typ types.TypeID) *tree.Node {
	n := b.Maker().Select(recv, member)
	n.Type = typ
	return n
}

// Call invokes method on recv (nil for an unqualified call). typ is the
// result type at the use site.
func (b *Builder) Call(recv *tree.Node, method symbols.SymbolID, typ types.TypeID, args ...*tree.Node) *tree.Node {
	var meth *tree.Node
	if recv == nil {
		meth = b.Ident(method)
	} else {
		meth = b.Maker().Select(recv, method)
	}
	return b.node(tree.KindApply, typ, symbols.NoSymbolID, &tree.ApplyData{Meth: meth, Args: args})
}

// New instantiates typ through constructor ctor.
func (b *Builder) New(typ types.TypeID, ctor symbols.SymbolID, args ...*tree.Node) *tree.Node {
	return b.node(tree.KindNewClass, typ, symbols.NoSymbolID, &tree.NewClassData{
		Clazz:       b.Maker().Type(typ),
		Args:        args,
		Constructor: ctor,
	})
}

// Literal is a constant of typ.
func (b *Builder) Literal(typ types.TypeID, value string) *tree.Node {
	return b.node(tree.KindLiteral, typ, symbols.NoSymbolID, &tree.LiteralData{Value: value})
}

// Null is the null literal.
func (b *Builder) Null() *tree.Node {
	return b.Literal(b.Builtins().Null, "null")
}

func (b *Builder) Assign(lhs, rhs *tree.Node) *tree.Node {
	return b.node(tree.KindAssign, lhs.Type, symbols.NoSymbolID, &tree.AssignData{LHS: lhs, RHS: rhs})
}

func (b *Builder) Index(arr, index *tree.Node) *tree.Node {
	return b.node(tree.KindIndexed, b.Types.ElemType(arr.Type), symbols.NoSymbolID, &tree.IndexedData{Indexed: arr, Index: index})
}

func (b *Builder) Cast(typ types.TypeID, expr *tree.Node) *tree.Node {
	return b.Maker().TypeCast(typ, expr)
}

// Cond builds cond ? then : els typed typ.
func (b *Builder) Cond(typ types.TypeID, cond, then, els *tree.Node) *tree.Node {
	return b.node(tree.KindConditional, typ, symbols.NoSymbolID, &tree.ConditionalData{Cond: cond, Then: then, Else: els})
}

// Binary applies op with operand types params and result typ.
func (b *Builder) Binary(op string, typ types.TypeID, params [2]types.TypeID, lhs, rhs *tree.Node) *tree.Node {
	operator := b.Types.MethodType(params[:], typ, nil, nil)
	return b.node(tree.KindBinary, typ, symbols.NoSymbolID, &tree.OperatorData{Op: op, LHS: lhs, RHS: rhs, Operator: operator})
}

// Statements

func (b *Builder) Exec(expr *tree.Node) *tree.Node { return b.Maker().Exec(expr) }

func (b *Builder) Return(expr *tree.Node) *tree.Node { return b.Maker().Return(expr) }

func (b *Builder) If(cond, then, els *tree.Node) *tree.Node {
	return b.node(tree.KindIf, types.NoTypeID, symbols.NoSymbolID, &tree.IfData{Cond: cond, Then: then, Else: els})
}

func (b *Builder) Block(stats ...*tree.Node) *tree.Node { return b.Maker().Block(stats...) }

// Foreach iterates expr with loop variable decl.
func (b *Builder) Foreach(decl, expr, body *tree.Node) *tree.Node {
	return b.node(tree.KindForeachLoop, types.NoTypeID, symbols.NoSymbolID, &tree.ForeachLoopData{Var: decl, Expr: expr, Body: body})
}

func (b *Builder) Switch(selector *tree.Node, cases ...*tree.Node) *tree.Node {
	return b.node(tree.KindSwitch, types.NoTypeID, symbols.NoSymbolID, &tree.SwitchData{Selector: selector, Cases: cases})
}

// Annotations

// Annotation builds a type annotation use of the annotation interface
// name, declared on first use.
func (b *Builder) Annotation(name string) *tree.Node {
	sym, ok := b.annotations[name]
	if !ok {
		sym = b.Syms.NewClass(name, b.Pkg, symbols.FlagPublic|symbols.FlagInterface|symbols.FlagAbstract, symbols.NoSymbolID, b.Span())
		b.annotations[name] = sym
	}
	typ := b.Syms.Get(sym).Type
	return b.node(tree.KindAnnotation, typ, symbols.NoSymbolID, &tree.AnnotationData{
		AnnotationType: b.Ident(sym),
		TypeAnnotation: true,
		Compound:       symbols.Compound{Type: typ, Name: name},
	})
}

// Annotated wraps a type tree in the type annotations names.
func (b *Builder) Annotated(underlying *tree.Node, names ...string) *tree.Node {
	anns := make([]*tree.Node, len(names))
	for i, n := range names {
		anns[i] = b.Annotation(n)
	}
	return b.node(tree.KindAnnotatedType, underlying.Type, symbols.NoSymbolID, &tree.AnnotatedTypeData{Annotations: anns, Underlying: underlying})
}

// Positions collects the resolved positions of every annotation below n in
// tree order, keyed by annotation name.
func Positions(n *tree.Node) map[string]*symbols.TypeAnnotationPosition {
	out := make(map[string]*symbols.TypeAnnotationPosition)
	tree.Inspect(n, func(n *tree.Node, _ []*tree.Node) bool {
		if d, ok := n.Data.(*tree.AnnotationData); ok {
			out[d.Compound.Name] = d.Position
		}
		return true
	})
	return out
}
