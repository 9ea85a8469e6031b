package symbols

import (
	"erasec/internal/source"
	"erasec/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolClass
	SymbolMethod
	SymbolVar
	SymbolTypeVar
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolClass:
		return "class"
	case SymbolMethod:
		return "method"
	case SymbolVar:
		return "var"
	case SymbolTypeVar:
		return "typevar"
	default:
		return "invalid"
	}
}

// SymbolFlags encode modifiers and synthetic markers.
type SymbolFlags uint32

const (
	FlagPublic SymbolFlags = 1 << iota
	FlagProtected
	FlagPrivate
	FlagStatic
	FlagFinal
	FlagAbstract
	FlagInterface
	FlagEnum
	FlagSynthetic
	FlagBridge
	FlagHypothetical
	FlagVarargs
	FlagConstructor
)

// AccessFlags masks the visibility bits.
const AccessFlags = FlagPublic | FlagProtected | FlagPrivate

var flagLabels = [...]struct {
	flag  SymbolFlags
	label string
}{
	{FlagPublic, "public"},
	{FlagProtected, "protected"},
	{FlagPrivate, "private"},
	{FlagStatic, "static"},
	{FlagFinal, "final"},
	{FlagAbstract, "abstract"},
	{FlagInterface, "interface"},
	{FlagEnum, "enum"},
	{FlagSynthetic, "synthetic"},
	{FlagBridge, "bridge"},
	{FlagHypothetical, "hypothetical"},
	{FlagVarargs, "varargs"},
	{FlagConstructor, "constructor"},
}

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	for _, fl := range flagLabels {
		if f&fl.flag != 0 {
			labels = append(labels, fl.label)
		}
	}
	return labels
}

// Has reports whether all bits of mask are set.
func (f SymbolFlags) Has(mask SymbolFlags) bool { return f&mask == mask }

// VarKind distinguishes variable symbols.
type VarKind uint8

const (
	VarLocal VarKind = iota
	VarField
	VarParam
	VarException
)

func (k VarKind) String() string {
	switch k {
	case VarField:
		return "field"
	case VarParam:
		return "param"
	case VarException:
		return "exception"
	default:
		return "local"
	}
}

// Symbol describes a class, method, variable or type variable.
type Symbol struct {
	Name    string
	Kind    SymbolKind
	Flags   SymbolFlags
	Owner   SymbolID
	Type    types.TypeID
	Span    source.Span
	Package string // classes only

	// Class is the declaration slot in the type interner (classes only).
	Class types.ClassID
	// Members are kept in declaration order; bridges are appended.
	Members []SymbolID

	VarKind VarKind
	// Const marks compile-time constant variables.
	Const bool

	// Attributes are declaration annotations.
	Attributes []Compound
	// TypeAnnotations are lifted type annotations.
	TypeAnnotations []TypeCompound
}

func (s *Symbol) IsConstructor() bool { return s.Flags&FlagConstructor != 0 }
func (s *Symbol) IsInterface() bool   { return s.Flags&FlagInterface != 0 }
func (s *Symbol) IsStatic() bool      { return s.Flags&FlagStatic != 0 }
func (s *Symbol) IsAbstract() bool    { return s.Flags&FlagAbstract != 0 }
func (s *Symbol) IsSynthetic() bool   { return s.Flags&FlagSynthetic != 0 }
