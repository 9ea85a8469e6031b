package types

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for primitive types and the root class.
type Builtins struct {
	Invalid TypeID
	Void    TypeID
	Bool    TypeID
	Byte    TypeID
	Short   TypeID
	Char    TypeID
	Int     TypeID
	Long    TypeID
	Float   TypeID
	Double  TypeID
	Null    TypeID
	Object  TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types     []Type
	index     map[typeKey]TypeID
	builtins  Builtins
	lists     [][]TypeID
	listIndex map[string]uint32
	classes   []ClassInfo
	typeVars  []TypeVarInfo
	methods   []MethodInfo
	methodIdx map[methodKey]uint32

	objectDecl ClassID
}

// NewInterner constructs an interner seeded with primitives and Object.
func NewInterner() *Interner {
	in := &Interner{
		index:     make(map[typeKey]TypeID, 64),
		listIndex: make(map[string]uint32, 16),
		methodIdx: make(map[methodKey]uint32, 16),
	}
	// slot 0 is the invalid sentinel in every side table
	in.lists = append(in.lists, nil)
	in.listIndex[""] = 0
	in.classes = append(in.classes, ClassInfo{})
	in.typeVars = append(in.typeVars, TypeVarInfo{})
	in.methods = append(in.methods, MethodInfo{})

	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Byte = in.Intern(Type{Kind: KindByte})
	in.builtins.Short = in.Intern(Type{Kind: KindShort})
	in.builtins.Char = in.Intern(Type{Kind: KindChar})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	in.builtins.Long = in.Intern(Type{Kind: KindLong})
	in.builtins.Float = in.Intern(Type{Kind: KindFloat})
	in.builtins.Double = in.Intern(Type{Kind: KindDouble})
	in.builtins.Null = in.Intern(Type{Kind: KindNull})
	in.objectDecl = in.RegisterClass("Object", 0, false)
	in.builtins.Object = in.ClassType(in.objectDecl)
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// ObjectDecl returns the declaration slot of the root class.
func (in *Interner) ObjectDecl() ClassID {
	return in.objectDecl
}

// Primitive maps a kind to its builtin TypeID.
func (in *Interner) Primitive(k Kind) TypeID {
	switch k {
	case KindVoid:
		return in.builtins.Void
	case KindBool:
		return in.builtins.Bool
	case KindByte:
		return in.builtins.Byte
	case KindShort:
		return in.builtins.Short
	case KindChar:
		return in.builtins.Char
	case KindInt:
		return in.builtins.Int
	case KindLong:
		return in.builtins.Long
	case KindFloat:
		return in.builtins.Float
	case KindDouble:
		return in.builtins.Double
	case KindNull:
		return in.builtins.Null
	default:
		return NoTypeID
	}
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if in == nil || id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// KindOf returns KindInvalid for unknown ids.
func (in *Interner) KindOf(id TypeID) Kind {
	tt, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return tt.Kind
}

func (in *Interner) IsPrimitive(id TypeID) bool { return in.KindOf(id).IsPrimitive() }
func (in *Interner) IsReference(id TypeID) bool { return in.KindOf(id).IsReference() }

// Len returns the number of interned types including the sentinel.
func (in *Interner) Len() int { return len(in.types) }

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Decl    uint32
	Bound   BoundKind
	Payload uint32
}

// internList stores an ordered id list once and returns its slot.
func (in *Interner) internList(ids []TypeID) uint32 {
	if len(ids) == 0 {
		return 0
	}
	var sb strings.Builder
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	key := sb.String()
	if slot, ok := in.listIndex[key]; ok {
		return slot
	}
	slot, err := safecast.Conv[uint32](len(in.lists))
	if err != nil {
		panic(fmt.Errorf("type list overflow: %w", err))
	}
	in.lists = append(in.lists, cloneTypeIDs(ids))
	in.listIndex[key] = slot
	return slot
}

func (in *Interner) list(slot uint32) []TypeID {
	if int(slot) >= len(in.lists) {
		return nil
	}
	return in.lists[slot]
}

func cloneTypeIDs(ids []TypeID) []TypeID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]TypeID, len(ids))
	copy(out, ids)
	return out
}
