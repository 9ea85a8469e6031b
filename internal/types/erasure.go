package types

// Erasure returns the erased form of t. Erasure is idempotent:
// Erasure(Erasure(t)) == Erasure(t).
func (in *Interner) Erasure(id TypeID) TypeID {
	return in.erasure(id, 0)
}

func (in *Interner) erasure(id TypeID, depth int) TypeID {
	tt, ok := in.Lookup(id)
	if !ok {
		return id
	}
	if depth > 32 {
		// F-bounded cycles end up here only on malformed input
		return in.builtins.Object
	}
	switch tt.Kind {
	case KindClass:
		if tt.Payload == 0 {
			return id
		}
		return in.ClassType(ClassID(tt.Decl))
	case KindArray:
		elem := in.erasure(tt.Elem, depth+1)
		if elem == tt.Elem {
			return id
		}
		return in.Intern(MakeArray(elem))
	case KindTypeVar:
		return in.erasure(in.UpperBound(id), depth+1)
	case KindWildcard:
		if tt.Bound == BoundExtends {
			return in.erasure(tt.Elem, depth+1)
		}
		return in.builtins.Object
	case KindIntersection:
		parts := in.list(tt.Payload)
		if len(parts) == 0 {
			return in.builtins.Object
		}
		return in.erasure(parts[0], depth+1)
	case KindMethod:
		info := in.methods[tt.Payload]
		return in.MethodType(
			in.eraseList(info.Params, depth),
			in.erasure(info.Result, depth+1),
			in.eraseList(info.Thrown, depth),
			nil,
		)
	default:
		return id
	}
}

func (in *Interner) eraseList(ids []TypeID, depth int) []TypeID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]TypeID, len(ids))
	for i, id := range ids {
		out[i] = in.erasure(id, depth+1)
	}
	return out
}

// EraseAll erases every element of ids.
func (in *Interner) EraseAll(ids []TypeID) []TypeID {
	return in.eraseList(ids, 0)
}

// IsErased reports whether t carries no generic information.
func (in *Interner) IsErased(id TypeID) bool {
	return in.Erasure(id) == id
}
