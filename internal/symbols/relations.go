package symbols

import (
	"slices"

	"erasec/internal/types"
)

// IsSubClass reports whether class c is base or inherits from it, through
// superclasses or interfaces.
func (t *Table) IsSubClass(c, base SymbolID) bool {
	if c == base {
		return true
	}
	cs, bs := t.Get(c), t.Get(base)
	if cs == nil || bs == nil || cs.Kind != SymbolClass || bs.Kind != SymbolClass {
		return false
	}
	return t.Types.AsSuper(cs.Type, bs.Class) != types.NoTypeID
}

// IsInheritedIn reports whether member is inherited into class by access
// rules alone.
func (t *Table) IsInheritedIn(member, class SymbolID) bool {
	ms := t.Get(member)
	if ms == nil {
		return false
	}
	switch ms.Flags & AccessFlags {
	case FlagPublic:
		return true
	case FlagPrivate:
		return ms.Owner == class
	case FlagProtected:
		if cs := t.Get(class); cs != nil && cs.IsInterface() {
			return false
		}
		return true
	default:
		if t.PackageOf(class) != t.PackageOf(ms.Owner) {
			return false
		}
		// every class between class and the owner must be in the same package
		for c := class; c.IsValid() && c != ms.Owner; c = t.Superclass(c) {
			if t.PackageOf(c) != t.PackageOf(ms.Owner) {
				return false
			}
		}
		return true
	}
}

// IsMemberOf reports whether member belongs to class, declared or inherited.
func (t *Table) IsMemberOf(member, class SymbolID) bool {
	ms := t.Get(member)
	if ms == nil {
		return false
	}
	return ms.Owner == class || (t.IsSubClass(class, ms.Owner) && t.IsInheritedIn(member, class))
}

// IsOverridableIn reports whether member can be overridden by a member of
// class.
func (t *Table) IsOverridableIn(member, class SymbolID) bool {
	ms, cs := t.Get(member), t.Get(class)
	if ms == nil || cs == nil {
		return false
	}
	switch ms.Flags & AccessFlags {
	case FlagPrivate:
		return false
	case FlagPublic:
		return !ms.IsStatic() || !cs.IsInterface()
	case FlagProtected:
		return !cs.IsInterface()
	default:
		return t.PackageOf(class) == t.PackageOf(ms.Owner) && !cs.IsInterface()
	}
}

// Overrides reports whether m overrides other as seen from origin.
// checkResult additionally requires a substitutable return type.
func (t *Table) Overrides(m, other, origin SymbolID, checkResult bool) bool {
	ms, os := t.Get(m), t.Get(other)
	if ms == nil || os == nil || ms.Kind != SymbolMethod || os.Kind != SymbolMethod {
		return false
	}
	if ms.IsConstructor() {
		return false
	}
	if m == other {
		return true
	}
	if ms.Name != os.Name {
		return false
	}
	owner := t.Get(ms.Owner)
	if owner == nil {
		return false
	}
	otherOwner := t.Get(os.Owner)
	if otherOwner == nil {
		return false
	}
	// direct implementation
	if t.IsOverridableIn(other, ms.Owner) && t.Types.AsSuper(owner.Type, otherOwner.Class) != types.NoTypeID {
		mt := t.MemberType(ms.Owner, m)
		ot := t.MemberType(ms.Owner, other)
		if t.isSubSignature(mt, ot) && (!checkResult || t.returnSubstitutable(mt, ot)) {
			return true
		}
	}
	// inherited implementation
	if ms.IsAbstract() || !os.IsAbstract() ||
		!t.IsOverridableIn(other, origin) || !t.IsMemberOf(m, origin) {
		return false
	}
	mt := t.MemberType(origin, m)
	ot := t.MemberType(origin, other)
	return t.isSubSignature(mt, ot) && (!checkResult || t.returnSubstitutable(mt, ot))
}

// isSubSignature: same arguments, or m's arguments equal the erasure of
// other's.
func (t *Table) isSubSignature(mt, ot types.TypeID) bool {
	mi, ok1 := t.Types.MethodInfo(mt)
	oi, ok2 := t.Types.MethodInfo(ot)
	if !ok1 || !ok2 || len(mi.Params) != len(oi.Params) {
		return false
	}
	oparams := oi.Params
	if len(mi.TypeParams) == len(oi.TypeParams) && len(oi.TypeParams) > 0 {
		oparams = make([]types.TypeID, len(oi.Params))
		for i, p := range oi.Params {
			oparams[i] = t.Types.Subst(p, oi.TypeParams, mi.TypeParams)
		}
	}
	if slices.Equal(mi.Params, oparams) {
		return true
	}
	return len(mi.TypeParams) == 0 && slices.Equal(mi.Params, t.Types.EraseAll(oi.Params))
}

func (t *Table) returnSubstitutable(mt, ot types.TypeID) bool {
	r1, r2 := t.Types.Result(mt), t.Types.Result(ot)
	if r1 == r2 {
		return true
	}
	if !t.Types.IsReference(r1) || !t.Types.IsReference(r2) {
		return false
	}
	return t.Types.IsSubtype(r1, r2) || t.Types.IsSubtype(r1, t.Types.Erasure(r2)) ||
		t.Types.IsSameType(r1, t.Types.Erasure(r2))
}

// Implementation finds the non-synthetic method implementing m in origin,
// searching origin and its superclasses.
func (t *Table) Implementation(m, origin SymbolID) SymbolID {
	ms := t.Get(m)
	if ms == nil {
		return NoSymbolID
	}
	for c := origin; c.IsValid(); c = t.Superclass(c) {
		for _, cand := range t.MembersNamed(c, ms.Name) {
			cs := t.Get(cand)
			if cs.Kind != SymbolMethod || cs.IsSynthetic() {
				continue
			}
			if t.Overrides(cand, m, origin, true) {
				return cand
			}
		}
	}
	return NoSymbolID
}

// BinaryOverrides reports whether m overrides other after erasure.
func (t *Table) BinaryOverrides(m, other, origin SymbolID) bool {
	ms, os := t.Get(m), t.Get(other)
	if ms == nil || os == nil || ms.Kind != SymbolMethod || os.Kind != SymbolMethod {
		return false
	}
	if ms.IsConstructor() {
		return false
	}
	if m == other {
		return true
	}
	if ms.Name != os.Name {
		return false
	}
	sameErasure := t.Erasure(m) == t.Erasure(other)
	owner, otherOwner := t.Get(ms.Owner), t.Get(os.Owner)
	if owner == nil || otherOwner == nil {
		return false
	}
	if t.IsOverridableIn(other, ms.Owner) &&
		t.Types.AsSuper(owner.Type, otherOwner.Class) != types.NoTypeID && sameErasure {
		return true
	}
	return !ms.IsAbstract() && t.IsOverridableIn(other, origin) && t.IsMemberOf(m, origin) && sameErasure
}

// BinaryImplementation finds the method of origin or a superclass that
// overrides m after erasure, synthetic members included.
func (t *Table) BinaryImplementation(m, origin SymbolID) SymbolID {
	ms := t.Get(m)
	if ms == nil {
		return NoSymbolID
	}
	for c := origin; c.IsValid(); c = t.Superclass(c) {
		for _, cand := range t.MembersNamed(c, ms.Name) {
			if t.BinaryOverrides(cand, m, origin) {
				return cand
			}
		}
	}
	return NoSymbolID
}

// IsAccessible reports whether type typ may be named from class from.
func (t *Table) IsAccessible(from SymbolID, typ types.TypeID) bool {
	switch t.Types.KindOf(typ) {
	case types.KindArray:
		return t.IsAccessible(from, t.Types.ElemType(typ))
	case types.KindClass:
	default:
		return true
	}
	targetID := t.ClassSymbol(typ)
	target := t.Get(targetID)
	if target == nil {
		return true
	}
	switch target.Flags & AccessFlags {
	case FlagPublic:
		outer := t.Get(t.EnclosingClass(target.Owner))
		return outer == nil || t.IsAccessible(from, outer.Type)
	case FlagPrivate:
		return t.OutermostClass(from) == t.OutermostClass(targetID)
	case FlagProtected:
		if t.PackageOf(from) == t.PackageOf(targetID) {
			return true
		}
		for c := from; c.IsValid(); c = t.EnclosingClass(t.Get(c).Owner) {
			if t.IsSubClass(c, t.EnclosingClass(target.Owner)) {
				return true
			}
			if !t.Get(c).Owner.IsValid() {
				break
			}
		}
		return false
	default:
		return t.PackageOf(from) == t.PackageOf(targetID)
	}
}
