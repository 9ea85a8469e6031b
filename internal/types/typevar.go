package types

import (
	"fmt"

	"fortio.org/safecast"
)

// TypeVarInfo describes a declared type variable.
type TypeVarInfo struct {
	Name  string
	Owner uint32 // declaring class or method symbol
	Bound TypeID // NoTypeID means Object
}

// RegisterTypeVar allocates a fresh type variable. Every call yields a
// distinct type, even for equal names.
func (in *Interner) RegisterTypeVar(name string, owner uint32) TypeID {
	in.typeVars = append(in.typeVars, TypeVarInfo{Name: name, Owner: owner})
	slot, err := safecast.Conv[uint32](len(in.typeVars) - 1)
	if err != nil {
		panic(fmt.Errorf("type var overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindTypeVar, Decl: slot})
}

// SetTypeVarBound sets the upper bound; bounds may mention the variable.
func (in *Interner) SetTypeVarBound(id, bound TypeID) {
	if info := in.typeVarInfo(id); info != nil {
		info.Bound = bound
	}
}

// SetTypeVarOwner rebinds the owner symbol.
func (in *Interner) SetTypeVarOwner(id TypeID, owner uint32) {
	if info := in.typeVarInfo(id); info != nil {
		info.Owner = owner
	}
}

// TypeVarInfo returns metadata for a type variable.
func (in *Interner) TypeVarInfo(id TypeID) (*TypeVarInfo, bool) {
	info := in.typeVarInfo(id)
	return info, info != nil
}

// UpperBound returns the declared bound or Object.
func (in *Interner) UpperBound(id TypeID) TypeID {
	info := in.typeVarInfo(id)
	if info == nil || info.Bound == NoTypeID {
		return in.builtins.Object
	}
	return info.Bound
}

func (in *Interner) typeVarInfo(id TypeID) *TypeVarInfo {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTypeVar || int(tt.Decl) >= len(in.typeVars) {
		return nil
	}
	return &in.typeVars[tt.Decl]
}
