package testkit

import (
	"fmt"

	"erasec/internal/source"
	"erasec/internal/symbols"
	"erasec/internal/tree"
	"erasec/internal/types"
)

// Builder assembles attributed programs for tests. Every node gets a fresh
// one-byte span in file 1 so positions can be told apart.
type Builder struct {
	Syms  *symbols.Table
	Types *types.Interner
	Pkg   string

	next        uint32
	lib         map[string]symbols.SymbolID
	annotations map[string]symbols.SymbolID
}

func NewBuilder() *Builder {
	syms := symbols.NewTable(symbols.Hints{Symbols: 64}, nil)
	return &Builder{
		Syms:        syms,
		Types:       syms.Types,
		Pkg:         "p",
		lib:         make(map[string]symbols.SymbolID),
		annotations: make(map[string]symbols.SymbolID),
	}
}

// Span returns a fresh span.
func (b *Builder) Span() source.Span {
	b.next++
	return source.Span{File: 1, Start: b.next, End: b.next + 1}
}

// Maker returns a tree maker at a fresh span.
func (b *Builder) Maker() *tree.Maker {
	return tree.NewMaker(b.Syms).At(b.Span())
}

func (b *Builder) Builtins() types.Builtins { return b.Types.Builtins() }

// Lib returns a public final class of java.lang, declared on first use.
func (b *Builder) Lib(name string) types.TypeID {
	id, ok := b.lib[name]
	if !ok {
		id = b.Syms.NewClass(name, "java.lang", symbols.FlagPublic|symbols.FlagFinal, symbols.NoSymbolID, source.NoSpan)
		b.lib[name] = id
	}
	return b.Syms.Get(id).Type
}

// Array returns the array type of elem.
func (b *Builder) Array(elem types.TypeID) types.TypeID {
	return b.Types.Intern(types.MakeArray(elem))
}

// Wildcard returns ? extends bound, ? super bound or ? when bound is zero.
func (b *Builder) Wildcard(kind types.BoundKind, bound types.TypeID) types.TypeID {
	return b.Types.Intern(types.MakeWildcard(kind, bound))
}

// Class wraps a class declaration under construction.
type Class struct {
	b    *Builder
	Sym  symbols.SymbolID
	Node *tree.Node
	Data *tree.ClassDefData

	params []types.TypeID
}

// Class declares a top-level class in the builder's package.
func (b *Builder) Class(name string, flags symbols.SymbolFlags) *Class {
	return b.class(name, flags, symbols.NoSymbolID)
}

// Nested declares a member class of outer; its node is appended to outer's
// body.
func (b *Builder) Nested(outer *Class, name string, flags symbols.SymbolFlags) *Class {
	c := b.class(name, flags, outer.Sym)
	outer.Data.Defs = append(outer.Data.Defs, c.Node)
	return c
}

func (b *Builder) class(name string, flags symbols.SymbolFlags, owner symbols.SymbolID) *Class {
	span := b.Span()
	sym := b.Syms.NewClass(name, b.Pkg, flags, owner, span)
	data := &tree.ClassDefData{Name: name}
	return &Class{
		b:    b,
		Sym:  sym,
		Data: data,
		Node: &tree.Node{Kind: tree.KindClassDef, Span: span, Type: b.Syms.Get(sym).Type, Sym: sym, Data: data},
	}
}

// Type is the declared type of the class (parameterized by its own type
// variables).
func (c *Class) Type() types.TypeID { return c.b.Syms.Get(c.Sym).Type }

// Raw is the class type without arguments.
func (c *Class) Raw() types.TypeID {
	return c.b.Types.ClassType(c.b.Syms.Get(c.Sym).Class)
}

// Of instantiates the class with args.
func (c *Class) Of(args ...types.TypeID) types.TypeID {
	return c.b.Types.ClassType(c.b.Syms.Get(c.Sym).Class, args...)
}

// TypeParam declares a class type variable; several bounds form an
// intersection.
func (c *Class) TypeParam(name string, bounds ...types.TypeID) types.TypeID {
	tv := c.b.typeVar(name, c.Sym, bounds)
	c.params = append(c.params, tv)
	c.b.Syms.SetClassParams(c.Sym, c.params)
	c.Node.Type = c.Type()
	c.Data.TypeParams = append(c.Data.TypeParams, c.b.typeParamNode(name, tv, bounds))
	return tv
}

func (b *Builder) typeVar(name string, owner symbols.SymbolID, bounds []types.TypeID) types.TypeID {
	tv := b.Syms.NewTypeVar(name, owner)
	switch len(bounds) {
	case 0:
	case 1:
		b.Types.SetTypeVarBound(tv, bounds[0])
	default:
		b.Types.SetTypeVarBound(tv, b.Types.Intersection(bounds...))
	}
	return tv
}

func (b *Builder) typeParamNode(name string, tv types.TypeID, bounds []types.TypeID) *tree.Node {
	mk := b.Maker()
	return &tree.Node{
		Kind: tree.KindTypeParameter,
		Span: mk.Pos,
		Type: tv,
		Sym:  b.Syms.TypeVarSymbol(tv),
		Data: &tree.TypeParameterData{Name: name, Bounds: mk.TypeList(bounds)},
	}
}

// Extends records the supertypes and their header type trees. A zero super
// keeps Object.
func (c *Class) Extends(super types.TypeID, ifaces ...types.TypeID) *Class {
	c.b.Syms.SetSupertypes(c.Sym, super, ifaces)
	mk := c.b.Maker()
	if super != types.NoTypeID {
		c.Data.Extends = mk.Type(super)
	}
	c.Data.Implements = mk.TypeList(ifaces)
	return c
}

// Method wraps a method declaration under construction.
type Method struct {
	b      *Builder
	Sym    symbols.SymbolID
	Node   *tree.Node
	Data   *tree.MethodDefData
	Params []symbols.SymbolID
}

// Method declares a method with parameters p0..pn. Interface methods are
// made abstract; abstract methods get no body.
func (c *Class) Method(name string, flags symbols.SymbolFlags, result types.TypeID, params ...types.TypeID) *Method {
	if c.b.Syms.Get(c.Sym).IsInterface() {
		flags |= symbols.FlagAbstract | symbols.FlagPublic
	}
	return c.method(name, flags, result, nil, params)
}

// Constructor declares a constructor.
func (c *Class) Constructor(flags symbols.SymbolFlags, params ...types.TypeID) *Method {
	return c.method("<init>", flags|symbols.FlagConstructor, c.b.Builtins().Void, nil, params)
}

// GenericMethod declares a method with its own type variables; mk receives
// them and returns the result and parameter types.
func (c *Class) GenericMethod(name string, flags symbols.SymbolFlags, tvars []string, mk func(tvs []types.TypeID) (types.TypeID, []types.TypeID)) *Method {
	b := c.b
	// the method symbol owns its type variables, so declare it first
	sym := b.Syms.NewMethod(name, flags, c.Sym, types.NoTypeID, b.Span())
	tvs := make([]types.TypeID, len(tvars))
	for i, n := range tvars {
		tvs[i] = b.typeVar(n, sym, nil)
	}
	result, params := mk(tvs)
	b.Syms.Get(sym).Type = b.Types.MethodType(params, result, nil, tvs)
	m := c.declare(sym, result, params)
	for i, tv := range tvs {
		m.Data.TypeParams = append(m.Data.TypeParams, b.typeParamNode(tvars[i], tv, nil))
	}
	return m
}

func (c *Class) method(name string, flags symbols.SymbolFlags, result types.TypeID, thrown, params []types.TypeID) *Method {
	b := c.b
	mtype := b.Types.MethodType(params, result, thrown, nil)
	sym := b.Syms.NewMethod(name, flags, c.Sym, mtype, b.Span())
	return c.declare(sym, result, params)
}

func (c *Class) declare(sym symbols.SymbolID, result types.TypeID, params []types.TypeID) *Method {
	b := c.b
	s := b.Syms.Get(sym)
	mk := tree.NewMaker(b.Syms).At(s.Span)
	data := &tree.MethodDefData{Name: s.Name}
	if !s.IsConstructor() {
		data.ResType = mk.Type(result)
	}
	m := &Method{b: b, Sym: sym, Data: data}
	for i, pt := range params {
		name := fmt.Sprintf("p%d", i)
		ps := b.Syms.NewVar(name, symbols.VarParam, 0, sym, pt, b.Span())
		m.Params = append(m.Params, ps)
		data.Params = append(data.Params, b.VarDef(ps, nil, nil))
	}
	if !s.IsAbstract() {
		data.Body = mk.Block()
	}
	m.Node = &tree.Node{Kind: tree.KindMethodDef, Span: s.Span, Type: s.Type, Sym: sym, Data: data}
	c.Data.Defs = append(c.Data.Defs, m.Node)
	return m
}

// Body replaces the method body.
func (m *Method) Body(stats ...*tree.Node) *Method {
	m.Data.Body = m.b.Maker().Block(stats...)
	return m
}

// Param references the i-th parameter.
func (m *Method) Param(i int) *tree.Node {
	return m.b.Ident(m.Params[i])
}

// Field declares a field; typeTree overrides the default type tree.
func (c *Class) Field(name string, flags symbols.SymbolFlags, typ types.TypeID, typeTree *tree.Node) symbols.SymbolID {
	sym := c.b.Syms.NewVar(name, symbols.VarField, flags, c.Sym, typ, c.b.Span())
	c.Data.Defs = append(c.Data.Defs, c.b.VarDef(sym, typeTree, nil))
	return sym
}

// Local declares a local variable of method m, returning its declaration.
func (m *Method) Local(name string, typ types.TypeID, typeTree, init *tree.Node) *tree.Node {
	sym := m.b.Syms.NewVar(name, symbols.VarLocal, 0, m.Sym, typ, m.b.Span())
	return m.b.VarDef(sym, typeTree, init)
}

// VarDef builds the declaration of a variable symbol.
func (b *Builder) VarDef(sym symbols.SymbolID, typeTree, init *tree.Node) *tree.Node {
	s := b.Syms.Get(sym)
	if typeTree == nil {
		typeTree = b.Maker().Type(s.Type)
	}
	return &tree.Node{
		Kind: tree.KindVarDef,
		Span: s.Span,
		Type: s.Type,
		Sym:  sym,
		Data: &tree.VarDefData{Name: s.Name, VarType: typeTree, Init: init},
	}
}

// Unit wraps classes in a compilation unit of the builder's package.
func (b *Builder) Unit(file string, classes ...*Class) *tree.Node {
	defs := make([]*tree.Node, len(classes))
	for i, c := range classes {
		defs[i] = c.Node
	}
	return &tree.Node{
		Kind: tree.KindTopLevel,
		Span: b.Span(),
		Data: &tree.TopLevelData{Package: b.Pkg, File: file, Defs: defs},
	}
}
