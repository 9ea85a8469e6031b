package types

// Subst replaces every occurrence of from[i] in t by to[i].
func (in *Interner) Subst(id TypeID, from, to []TypeID) TypeID {
	if len(from) == 0 || len(from) != len(to) {
		return id
	}
	mapping := make(map[TypeID]TypeID, len(from))
	for i, f := range from {
		mapping[f] = to[i]
	}
	return in.subst(id, mapping)
}

func (in *Interner) subst(id TypeID, mapping map[TypeID]TypeID) TypeID {
	if repl, ok := mapping[id]; ok {
		return repl
	}
	tt, ok := in.Lookup(id)
	if !ok {
		return id
	}
	switch tt.Kind {
	case KindClass:
		if tt.Payload == 0 {
			return id
		}
		args, changed := in.substList(in.list(tt.Payload), mapping)
		if !changed {
			return id
		}
		return in.ClassType(ClassID(tt.Decl), args...)
	case KindArray:
		elem := in.subst(tt.Elem, mapping)
		if elem == tt.Elem {
			return id
		}
		return in.Intern(MakeArray(elem))
	case KindWildcard:
		if tt.Elem == NoTypeID {
			return id
		}
		bound := in.subst(tt.Elem, mapping)
		if bound == tt.Elem {
			return id
		}
		return in.Intern(MakeWildcard(tt.Bound, bound))
	case KindIntersection:
		parts, changed := in.substList(in.list(tt.Payload), mapping)
		if !changed {
			return id
		}
		return in.Intersection(parts...)
	case KindMethod:
		info := in.methods[tt.Payload]
		params, c1 := in.substList(info.Params, mapping)
		thrown, c2 := in.substList(info.Thrown, mapping)
		result := in.subst(info.Result, mapping)
		if !c1 && !c2 && result == info.Result {
			return id
		}
		return in.MethodType(params, result, thrown, info.TypeParams)
	default:
		return id
	}
}

func (in *Interner) substList(ids []TypeID, mapping map[TypeID]TypeID) ([]TypeID, bool) {
	out := make([]TypeID, len(ids))
	changed := false
	for i, id := range ids {
		out[i] = in.subst(id, mapping)
		if out[i] != id {
			changed = true
		}
	}
	return out, changed
}
