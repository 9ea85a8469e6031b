package tree

import (
	"strconv"

	"erasec/internal/source"
	"erasec/internal/symbols"
	"erasec/internal/types"
)

// Maker builds attributed nodes at a fixed source position.
type Maker struct {
	Syms  *symbols.Table
	Types *types.Interner
	Pos   source.Span
}

func NewMaker(syms *symbols.Table) *Maker {
	return &Maker{Syms: syms, Types: syms.Types}
}

// At returns a maker positioned at span.
func (m *Maker) At(span source.Span) *Maker {
	cp := *m
	cp.Pos = span
	return &cp
}

func (m *Maker) node(kind Kind, typ types.TypeID, sym symbols.SymbolID, data Data) *Node {
	return &Node{Kind: kind, Span: m.Pos, Type: typ, Sym: sym, Data: data}
}

// Ident references sym by name, typed with sym's type.
func (m *Maker) Ident(sym symbols.SymbolID) *Node {
	s := m.Syms.Get(sym)
	if s == nil {
		return m.node(KindIdent, types.NoTypeID, sym, &IdentData{Name: "?"})
	}
	return m.node(KindIdent, s.Type, sym, &IdentData{Name: s.Name})
}

// Idents references every parameter declared by defs.
func (m *Maker) Idents(defs []*Node) []*Node {
	out := make([]*Node, len(defs))
	for i, d := range defs {
		out[i] = m.Ident(d.Sym)
	}
	return out
}

// This is the receiver expression typed typ.
func (m *Maker) This(typ types.TypeID) *Node {
	return m.node(KindIdent, typ, symbols.NoSymbolID, &IdentData{Name: "this"})
}

// Super is the superclass view of the receiver typed typ.
func (m *Maker) Super(typ types.TypeID) *Node {
	return m.node(KindIdent, typ, symbols.NoSymbolID, &IdentData{Name: "super"})
}

// Select builds selected.sym typed with sym's type.
func (m *Maker) Select(selected *Node, sym symbols.SymbolID) *Node {
	s := m.Syms.Get(sym)
	name, typ := "?", types.NoTypeID
	if s != nil {
		name, typ = s.Name, s.Type
	}
	return m.node(KindSelect, typ, sym, &SelectData{Selected: selected, Name: name})
}

// Apply calls meth with args; typ is the call's result type.
func (m *Maker) Apply(meth *Node, args []*Node, typ types.TypeID) *Node {
	return m.node(KindApply, typ, symbols.NoSymbolID, &ApplyData{Meth: meth, Args: args})
}

// TypeCast wraps expr in a cast to typ.
func (m *Maker) TypeCast(typ types.TypeID, expr *Node) *Node {
	return m.node(KindTypeCast, typ, symbols.NoSymbolID, &TypeCastData{Clazz: m.Type(typ), Expr: expr})
}

// Type builds a type tree denoting typ.
func (m *Maker) Type(typ types.TypeID) *Node {
	tt, ok := m.Types.Lookup(typ)
	if !ok {
		return m.node(KindIdent, typ, symbols.NoSymbolID, &IdentData{Name: "?"})
	}
	switch tt.Kind {
	case types.KindClass:
		sym := m.Syms.ClassSymbol(typ)
		clazz := m.node(KindIdent, m.Types.ClassType(types.ClassID(tt.Decl)), sym, &IdentData{Name: m.Syms.Name(sym)})
		args := m.Types.TypeArgs(typ)
		if len(args) == 0 {
			return clazz
		}
		argTrees := make([]*Node, len(args))
		for i, a := range args {
			argTrees[i] = m.Type(a)
		}
		return m.node(KindTypeApply, typ, symbols.NoSymbolID, &TypeApplyData{Clazz: clazz, Args: argTrees})
	case types.KindArray:
		return m.node(KindTypeArray, typ, symbols.NoSymbolID, &TypeArrayData{Elem: m.Type(tt.Elem)})
	case types.KindTypeVar:
		name := "?"
		if info, ok := m.Types.TypeVarInfo(typ); ok {
			name = info.Name
		}
		return m.node(KindIdent, typ, m.Syms.TypeVarSymbol(typ), &IdentData{Name: name})
	case types.KindWildcard:
		var inner *Node
		if tt.Elem != types.NoTypeID {
			inner = m.Type(tt.Elem)
		}
		return m.node(KindWildcard, typ, symbols.NoSymbolID, &WildcardData{Bound: tt.Bound, Inner: inner})
	default:
		return m.node(KindPrimitiveType, typ, symbols.NoSymbolID, &PrimitiveTypeData{})
	}
}

// TypeList builds type trees for every id.
func (m *Maker) TypeList(ids []types.TypeID) []*Node {
	out := make([]*Node, len(ids))
	for i, id := range ids {
		out[i] = m.Type(id)
	}
	return out
}

// Params declares parameters x0..xn of owner with the given types.
func (m *Maker) Params(argTypes []types.TypeID, owner symbols.SymbolID) []*Node {
	out := make([]*Node, len(argTypes))
	for i, at := range argTypes {
		name := "x" + strconv.Itoa(i)
		sym := m.Syms.NewVar(name, symbols.VarParam, symbols.FlagSynthetic, owner, at, m.Pos)
		out[i] = m.node(KindVarDef, at, sym, &VarDefData{Name: name, VarType: m.Type(at)})
	}
	return out
}

// MethodDef declares sym with synthesized parameters and the given body.
func (m *Maker) MethodDef(sym symbols.SymbolID, body *Node) *Node {
	s := m.Syms.Get(sym)
	info, _ := m.Types.MethodInfo(s.Type)
	name, mtype := s.Name, s.Type
	var params []types.TypeID
	var result types.TypeID
	var thrown []types.TypeID
	if info != nil {
		params, result, thrown = info.Params, info.Result, info.Thrown
	}
	def := &MethodDefData{
		Name:    name,
		ResType: m.Type(result),
		Params:  m.Params(params, sym),
		Thrown:  m.TypeList(thrown),
		Body:    body,
	}
	return m.node(KindMethodDef, mtype, sym, def)
}

func (m *Maker) Block(stats ...*Node) *Node {
	return m.node(KindBlock, types.NoTypeID, symbols.NoSymbolID, &BlockData{Stats: stats})
}

func (m *Maker) Return(expr *Node) *Node {
	return m.node(KindReturn, types.NoTypeID, symbols.NoSymbolID, &ReturnData{Expr: expr})
}

func (m *Maker) Exec(expr *Node) *Node {
	return m.node(KindExec, types.NoTypeID, symbols.NoSymbolID, &ExecData{Expr: expr})
}
