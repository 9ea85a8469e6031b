package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindBool
	KindByte
	KindShort
	KindChar
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindNull
	KindClass
	KindArray
	KindTypeVar
	KindWildcard
	KindIntersection
	KindMethod
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindBool:
		return "boolean"
	case KindByte:
		return "byte"
	case KindShort:
		return "short"
	case KindChar:
		return "char"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindNull:
		return "null"
	case KindClass:
		return "class"
	case KindArray:
		return "array"
	case KindTypeVar:
		return "typevar"
	case KindWildcard:
		return "wildcard"
	case KindIntersection:
		return "intersection"
	case KindMethod:
		return "method"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsPrimitive reports primitive value kinds. void is not primitive.
func (k Kind) IsPrimitive() bool {
	return k >= KindBool && k <= KindDouble
}

// IsReference reports kinds whose values are object references.
func (k Kind) IsReference() bool {
	switch k {
	case KindNull, KindClass, KindArray, KindTypeVar, KindIntersection:
		return true
	default:
		return false
	}
}

// BoundKind distinguishes the three wildcard forms.
type BoundKind uint8

const (
	BoundNone    BoundKind = iota // ?
	BoundExtends                  // ? extends T
	BoundSuper                    // ? super T
)

// ClassID is a slot in the class declaration table. Zero is invalid.
type ClassID uint32

// Type is a compact descriptor for any supported type.
//
//   - class:        Decl = ClassID, Payload = argument list
//   - array:        Elem = element
//   - typevar:      Decl = type variable slot
//   - wildcard:     Bound, Elem = bound (none for "?")
//   - intersection: Payload = component list
//   - method:       Payload = method info slot
type Type struct {
	Kind    Kind
	Elem    TypeID
	Decl    uint32
	Bound   BoundKind
	Payload uint32
}

// Descriptor helpers ---------------------------------------------------------

// MakeArray describes an array of elem.
func MakeArray(elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem}
}

// MakeWildcard describes ?, ? extends bound or ? super bound.
func MakeWildcard(kind BoundKind, bound TypeID) Type {
	if kind == BoundNone {
		bound = NoTypeID
	}
	return Type{Kind: KindWildcard, Bound: kind, Elem: bound}
}
