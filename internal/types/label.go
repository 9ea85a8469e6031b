package types

import (
	"strings"
)

// Label returns a user-friendly label for a TypeID.
func Label(typesIn *Interner, id TypeID) string {
	return labelDepth(typesIn, id, 0)
}

func labelDepth(typesIn *Interner, id TypeID, depth int) string {
	if id == NoTypeID {
		return "?"
	}
	if depth > 6 {
		return "..."
	}
	if typesIn == nil {
		return "?"
	}
	tt, ok := typesIn.Lookup(id)
	if !ok {
		return "?"
	}
	switch tt.Kind {
	case KindClass:
		info := typesIn.classInfo(ClassID(tt.Decl))
		name := "?"
		if info != nil {
			name = info.Name
		}
		if tt.Payload == 0 {
			return name
		}
		return name + "<" + labelList(typesIn, typesIn.list(tt.Payload), ",", depth) + ">"
	case KindArray:
		return labelDepth(typesIn, tt.Elem, depth+1) + "[]"
	case KindTypeVar:
		if info := typesIn.typeVarInfo(id); info != nil {
			return info.Name
		}
		return "?"
	case KindWildcard:
		switch tt.Bound {
		case BoundExtends:
			return "? extends " + labelDepth(typesIn, tt.Elem, depth+1)
		case BoundSuper:
			return "? super " + labelDepth(typesIn, tt.Elem, depth+1)
		default:
			return "?"
		}
	case KindIntersection:
		return labelList(typesIn, typesIn.list(tt.Payload), "&", depth)
	case KindMethod:
		info := typesIn.methods[tt.Payload]
		var sb strings.Builder
		if len(info.TypeParams) > 0 {
			sb.WriteString("<" + labelList(typesIn, info.TypeParams, ",", depth) + ">")
		}
		sb.WriteString("(" + labelList(typesIn, info.Params, ",", depth) + ")")
		sb.WriteString(labelDepth(typesIn, info.Result, depth+1))
		return sb.String()
	default:
		return tt.Kind.String()
	}
}

func labelList(typesIn *Interner, ids []TypeID, sep string, depth int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = labelDepth(typesIn, id, depth+1)
	}
	return strings.Join(parts, sep)
}
