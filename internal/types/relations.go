package types

// Supertype returns the direct superclass view of t, substituted with t's
// arguments. Raw types get an erased supertype. Object has none.
func (in *Interner) Supertype(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok {
		return NoTypeID
	}
	switch tt.Kind {
	case KindClass:
		info := in.classInfo(ClassID(tt.Decl))
		if info == nil || ClassID(tt.Decl) == in.objectDecl {
			return NoTypeID
		}
		if info.Super == NoTypeID {
			return in.builtins.Object
		}
		return in.viewThrough(id, info, info.Super)
	case KindArray:
		return in.builtins.Object
	case KindTypeVar:
		return in.UpperBound(id)
	case KindIntersection:
		parts := in.list(tt.Payload)
		if len(parts) > 0 {
			return parts[0]
		}
	}
	return NoTypeID
}

// Interfaces returns the direct superinterfaces of t.
func (in *Interner) Interfaces(id TypeID) []TypeID {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindClass {
		return nil
	}
	info := in.classInfo(ClassID(tt.Decl))
	if info == nil || len(info.Interfaces) == 0 {
		return nil
	}
	out := make([]TypeID, len(info.Interfaces))
	for i, iface := range info.Interfaces {
		out[i] = in.viewThrough(id, info, iface)
	}
	return out
}

// viewThrough instantiates a declared supertype for the use site.
func (in *Interner) viewThrough(site TypeID, info *ClassInfo, declared TypeID) TypeID {
	if in.IsRaw(site) {
		return in.Erasure(declared)
	}
	return in.Subst(declared, info.Params, in.list(in.types[site].Payload))
}

// AsSuper finds the supertype of t whose declaration is decl.
func (in *Interner) AsSuper(id TypeID, decl ClassID) TypeID {
	return in.asSuper(id, decl, 0)
}

func (in *Interner) asSuper(id TypeID, decl ClassID, depth int) TypeID {
	tt, ok := in.Lookup(id)
	if !ok || depth > 64 {
		return NoTypeID
	}
	switch tt.Kind {
	case KindClass:
		if ClassID(tt.Decl) == decl {
			return id
		}
		if st := in.Supertype(id); st != NoTypeID {
			if res := in.asSuper(st, decl, depth+1); res != NoTypeID {
				return res
			}
		}
		for _, iface := range in.Interfaces(id) {
			if res := in.asSuper(iface, decl, depth+1); res != NoTypeID {
				return res
			}
		}
	case KindTypeVar:
		return in.asSuper(in.UpperBound(id), decl, depth+1)
	case KindIntersection:
		for _, part := range in.list(tt.Payload) {
			if res := in.asSuper(part, decl, depth+1); res != NoTypeID {
				return res
			}
		}
	case KindArray:
		if decl == in.objectDecl {
			return in.builtins.Object
		}
	}
	return NoTypeID
}

// IsSameType is identity on interned descriptors.
func (in *Interner) IsSameType(a, b TypeID) bool {
	return a == b
}

// IsSubtype checks s <: t without unchecked conversion.
func (in *Interner) IsSubtype(s, t TypeID) bool {
	return in.isSubtype(s, t, false)
}

// IsAssignable checks s <: t allowing primitive widening and unchecked
// conversion from raw types.
func (in *Interner) IsAssignable(s, t TypeID) bool {
	if s == t {
		return true
	}
	sk, tk := in.KindOf(s), in.KindOf(t)
	if sk.IsPrimitive() && tk.IsPrimitive() {
		return widens(sk, tk)
	}
	return in.isSubtype(s, t, true)
}

func (in *Interner) isSubtype(s, t TypeID, unchecked bool) bool {
	if s == t {
		return true
	}
	st, ok1 := in.Lookup(s)
	tt, ok2 := in.Lookup(t)
	if !ok1 || !ok2 {
		return false
	}
	if st.Kind.IsPrimitive() || tt.Kind.IsPrimitive() {
		return false
	}
	if st.Kind == KindNull {
		return tt.Kind.IsReference()
	}
	if st.Kind == KindIntersection {
		for _, part := range in.list(st.Payload) {
			if in.isSubtype(part, t, unchecked) {
				return true
			}
		}
		return false
	}
	switch tt.Kind {
	case KindClass:
		if ClassID(tt.Decl) == in.objectDecl && tt.Payload == 0 {
			return st.Kind.IsReference()
		}
		sup := in.AsSuper(s, ClassID(tt.Decl))
		if sup == NoTypeID {
			return false
		}
		if tt.Payload == 0 {
			return true
		}
		if in.types[sup].Payload == 0 {
			return unchecked
		}
		return in.containsAll(in.list(tt.Payload), in.list(in.types[sup].Payload))
	case KindArray:
		if st.Kind != KindArray {
			return false
		}
		if in.IsPrimitive(st.Elem) || in.IsPrimitive(tt.Elem) {
			return st.Elem == tt.Elem
		}
		return in.isSubtype(st.Elem, tt.Elem, unchecked)
	case KindTypeVar:
		if st.Kind == KindTypeVar {
			return in.isSubtype(in.UpperBound(s), t, unchecked)
		}
		return false
	case KindIntersection:
		for _, part := range in.list(tt.Payload) {
			if !in.isSubtype(s, part, unchecked) {
				return false
			}
		}
		return true
	}
	if st.Kind == KindTypeVar {
		return in.isSubtype(in.UpperBound(s), t, unchecked)
	}
	return false
}

// containsAll checks type-argument containment pairwise.
func (in *Interner) containsAll(want, got []TypeID) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if !in.contains(want[i], got[i]) {
			return false
		}
	}
	return true
}

func (in *Interner) contains(want, got TypeID) bool {
	if want == got {
		return true
	}
	wt, ok := in.Lookup(want)
	if !ok || wt.Kind != KindWildcard {
		return false
	}
	switch wt.Bound {
	case BoundNone:
		return true
	case BoundExtends:
		return in.IsSubtype(in.wildcardUpper(got), wt.Elem)
	case BoundSuper:
		gt, ok := in.Lookup(got)
		if ok && gt.Kind == KindWildcard {
			return gt.Bound == BoundSuper && in.IsSubtype(wt.Elem, gt.Elem)
		}
		return in.IsSubtype(wt.Elem, got)
	}
	return false
}

func (in *Interner) wildcardUpper(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindWildcard {
		return id
	}
	if tt.Bound == BoundExtends {
		return tt.Elem
	}
	return in.builtins.Object
}

// widens implements primitive widening conversion.
func widens(from, to Kind) bool {
	if from == to {
		return true
	}
	switch from {
	case KindByte:
		return to == KindShort || to == KindInt || to == KindLong || to == KindFloat || to == KindDouble
	case KindShort, KindChar:
		return to == KindInt || to == KindLong || to == KindFloat || to == KindDouble
	case KindInt:
		return to == KindLong || to == KindFloat || to == KindDouble
	case KindLong:
		return to == KindFloat || to == KindDouble
	case KindFloat:
		return to == KindDouble
	}
	return false
}

// ElemType returns the element type of an array, or NoTypeID.
func (in *Interner) ElemType(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindArray {
		return NoTypeID
	}
	return tt.Elem
}

// MemberType returns the type of a member declared in owner with declared
// type t, as seen from site. A raw view of owner erases the member type.
func (in *Interner) MemberType(site TypeID, owner ClassID, t TypeID) TypeID {
	info := in.classInfo(owner)
	if info == nil || len(info.Params) == 0 {
		return t
	}
	base := in.AsSuper(site, owner)
	if base == NoTypeID {
		return t
	}
	if in.types[base].Payload == 0 {
		return in.Erasure(t)
	}
	return in.Subst(t, info.Params, in.list(in.types[base].Payload))
}
