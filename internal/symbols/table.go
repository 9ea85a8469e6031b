package symbols

import (
	"fmt"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"erasec/internal/source"
	"erasec/internal/types"
)

// Hints provide optional capacity suggestions for the symbol arena.
type Hints struct{ Symbols uint }

// Table aggregates the symbol arena and the type interner it refers to.
type Table struct {
	Symbols *Symbols
	Types   *types.Interner

	object   SymbolID
	enum     SymbolID
	typeVars map[types.TypeID]SymbolID
}

// NewTable builds a table with the root classes Object and Enum<E>.
// If typesIn is nil, a fresh interner is allocated.
func NewTable(h Hints, typesIn *types.Interner) *Table {
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if typesIn == nil {
		typesIn = types.NewInterner()
	}
	t := &Table{
		Symbols:  NewSymbols(symCap),
		Types:    typesIn,
		typeVars: make(map[types.TypeID]SymbolID),
	}
	objDecl := typesIn.ObjectDecl()
	t.object = t.Symbols.New(&Symbol{
		Name:    "Object",
		Kind:    SymbolClass,
		Flags:   FlagPublic,
		Package: "java.lang",
		Class:   objDecl,
		Type:    typesIn.Builtins().Object,
	})
	typesIn.SetClassSym(objDecl, uint32(t.object))

	t.enum = t.NewClass("Enum", "java.lang", FlagPublic|FlagAbstract, NoSymbolID, source.NoSpan)
	e := t.NewTypeVar("E", t.enum)
	t.SetClassParams(t.enum, []types.TypeID{e})
	t.Types.SetTypeVarBound(e, t.Types.ClassType(t.Symbols.Get(t.enum).Class, e))
	return t
}

// Object returns the root class symbol.
func (t *Table) Object() SymbolID { return t.object }

// Enum returns the root enum class symbol.
func (t *Table) Enum() SymbolID { return t.enum }

// Get returns the symbol or nil.
func (t *Table) Get(id SymbolID) *Symbol { return t.Symbols.Get(id) }

// Name returns the symbol name or "?".
func (t *Table) Name(id SymbolID) string {
	if sym := t.Get(id); sym != nil {
		return sym.Name
	}
	return "?"
}

// NewClass declares a class. Its type is the raw class until
// SetClassParams gives it type variables.
func (t *Table) NewClass(name, pkg string, flags SymbolFlags, owner SymbolID, span source.Span) SymbolID {
	name = norm.NFC.String(name)
	decl := t.Types.RegisterClass(name, 0, flags&FlagInterface != 0)
	id := t.Symbols.New(&Symbol{
		Name:    name,
		Kind:    SymbolClass,
		Flags:   flags,
		Owner:   owner,
		Span:    span,
		Package: pkg,
		Class:   decl,
		Type:    t.Types.ClassType(decl),
	})
	t.Types.SetClassSym(decl, uint32(id))
	if flags&FlagInterface == 0 && decl != t.Types.ObjectDecl() {
		t.Types.SetSupertypes(decl, t.Types.Builtins().Object, nil)
	}
	if owner.IsValid() {
		t.AddMember(owner, id)
	}
	return id
}

// SetClassParams sets the type variables of a class and its declared type.
func (t *Table) SetClassParams(class SymbolID, params []types.TypeID) {
	sym := t.Get(class)
	if sym == nil {
		return
	}
	t.Types.SetClassParams(sym.Class, params)
	sym.Type = t.Types.DeclaredType(sym.Class)
}

// SetSupertypes records extends and implements clauses. A zero super keeps
// Object for classes.
func (t *Table) SetSupertypes(class SymbolID, super types.TypeID, ifaces []types.TypeID) {
	sym := t.Get(class)
	if sym == nil {
		return
	}
	if super == types.NoTypeID && !sym.IsInterface() {
		super = t.Types.Builtins().Object
	}
	t.Types.SetSupertypes(sym.Class, super, ifaces)
}

// NewTypeVar declares a type variable owned by a class or method.
func (t *Table) NewTypeVar(name string, owner SymbolID) types.TypeID {
	name = norm.NFC.String(name)
	tv := t.Types.RegisterTypeVar(name, uint32(owner))
	t.typeVars[tv] = t.Symbols.New(&Symbol{
		Name:  name,
		Kind:  SymbolTypeVar,
		Owner: owner,
		Type:  tv,
	})
	return tv
}

// TypeVarSymbol returns the symbol declaring tv.
func (t *Table) TypeVarSymbol(tv types.TypeID) SymbolID {
	return t.typeVars[tv]
}

// NewMethod declares a method and enters it into its owner's members.
func (t *Table) NewMethod(name string, flags SymbolFlags, owner SymbolID, mtype types.TypeID, span source.Span) SymbolID {
	id := t.Symbols.New(&Symbol{
		Name:  norm.NFC.String(name),
		Kind:  SymbolMethod,
		Flags: flags,
		Owner: owner,
		Type:  mtype,
		Span:  span,
	})
	if owner.IsValid() {
		t.AddMember(owner, id)
	}
	return id
}

// NewVar declares a variable. Fields are entered into the owner's members.
func (t *Table) NewVar(name string, kind VarKind, flags SymbolFlags, owner SymbolID, typ types.TypeID, span source.Span) SymbolID {
	id := t.Symbols.New(&Symbol{
		Name:    norm.NFC.String(name),
		Kind:    SymbolVar,
		Flags:   flags,
		Owner:   owner,
		Type:    typ,
		Span:    span,
		VarKind: kind,
	})
	if kind == VarField && owner.IsValid() {
		t.AddMember(owner, id)
	}
	return id
}

// AddMember appends member to class's member list.
func (t *Table) AddMember(class, member SymbolID) {
	if sym := t.Get(class); sym != nil {
		sym.Members = append(sym.Members, member)
	}
}

// MembersNamed returns class members with the given name, most recently
// entered first.
func (t *Table) MembersNamed(class SymbolID, name string) []SymbolID {
	sym := t.Get(class)
	if sym == nil {
		return nil
	}
	var out []SymbolID
	for i := len(sym.Members) - 1; i >= 0; i-- {
		if m := t.Get(sym.Members[i]); m != nil && m.Name == name {
			out = append(out, sym.Members[i])
		}
	}
	return out
}

// ClassSymbol maps a class type (or declaration slot) back to its symbol.
func (t *Table) ClassSymbol(typ types.TypeID) SymbolID {
	decl, ok := t.Types.ClassOf(typ)
	if !ok {
		return NoSymbolID
	}
	return t.declSymbol(decl)
}

func (t *Table) declSymbol(decl types.ClassID) SymbolID {
	info, ok := t.Types.ClassInfo(decl)
	if !ok {
		return NoSymbolID
	}
	return SymbolID(info.Sym)
}

// Superclass returns the symbol of the direct superclass.
func (t *Table) Superclass(class SymbolID) SymbolID {
	sym := t.Get(class)
	if sym == nil || sym.Kind != SymbolClass {
		return NoSymbolID
	}
	return t.ClassSymbol(t.Types.Supertype(sym.Type))
}

// Interfaces returns the symbols of the direct superinterfaces.
func (t *Table) Interfaces(class SymbolID) []SymbolID {
	sym := t.Get(class)
	if sym == nil || sym.Kind != SymbolClass {
		return nil
	}
	ifaces := t.Types.Interfaces(sym.Type)
	out := make([]SymbolID, 0, len(ifaces))
	for _, it := range ifaces {
		if id := t.ClassSymbol(it); id.IsValid() {
			out = append(out, id)
		}
	}
	return out
}

// EnclosingClass walks owners up to the nearest class symbol.
func (t *Table) EnclosingClass(id SymbolID) SymbolID {
	for sym := t.Get(id); sym != nil; sym = t.Get(sym.Owner) {
		if sym.Kind == SymbolClass {
			return id
		}
		id = sym.Owner
	}
	return NoSymbolID
}

// OutermostClass returns the top-level class enclosing id.
func (t *Table) OutermostClass(id SymbolID) SymbolID {
	out := t.EnclosingClass(id)
	for {
		sym := t.Get(out)
		if sym == nil || !sym.Owner.IsValid() {
			return out
		}
		next := t.EnclosingClass(sym.Owner)
		if !next.IsValid() {
			return out
		}
		out = next
	}
}

// PackageOf returns the package of the enclosing top-level class.
func (t *Table) PackageOf(id SymbolID) string {
	if sym := t.Get(t.OutermostClass(id)); sym != nil {
		return sym.Package
	}
	return ""
}

// Erasure returns the erasure of the symbol's declared type.
func (t *Table) Erasure(id SymbolID) types.TypeID {
	sym := t.Get(id)
	if sym == nil {
		return types.NoTypeID
	}
	return t.Types.Erasure(sym.Type)
}

// MemberType is the type of member as seen from class site.
func (t *Table) MemberType(site, member SymbolID) types.TypeID {
	ss, ms := t.Get(site), t.Get(member)
	if ss == nil || ms == nil {
		return types.NoTypeID
	}
	owner := t.Get(ms.Owner)
	if owner == nil || owner.Kind != SymbolClass {
		return ms.Type
	}
	return t.Types.MemberType(ss.Type, owner.Class, ms.Type)
}
