package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// ClassInfo stores the declaration-side view of a class or interface.
// Sym is the owning symbol id in the symbol table; the type layer does not
// interpret it.
type ClassInfo struct {
	Name       string
	Sym        uint32
	Interface  bool
	Params     []TypeID // type variables, declaration order
	Super      TypeID   // NoTypeID for Object and interfaces
	Interfaces []TypeID
}

// RegisterClass allocates a declaration slot.
func (in *Interner) RegisterClass(name string, sym uint32, iface bool) ClassID {
	in.classes = append(in.classes, ClassInfo{Name: name, Sym: sym, Interface: iface})
	slot, err := safecast.Conv[uint32](len(in.classes) - 1)
	if err != nil {
		panic(fmt.Errorf("class info overflow: %w", err))
	}
	return ClassID(slot)
}

// SetClassParams records the declared type variables of the class.
func (in *Interner) SetClassParams(id ClassID, params []TypeID) {
	if info := in.classInfo(id); info != nil {
		info.Params = cloneTypeIDs(params)
	}
}

// SetSupertypes records the direct superclass and interfaces.
func (in *Interner) SetSupertypes(id ClassID, super TypeID, ifaces []TypeID) {
	if info := in.classInfo(id); info != nil {
		info.Super = super
		info.Interfaces = cloneTypeIDs(ifaces)
	}
}

// SetClassSym binds the declaration to its symbol once the symbol exists.
func (in *Interner) SetClassSym(id ClassID, sym uint32) {
	if info := in.classInfo(id); info != nil {
		info.Sym = sym
	}
}

// ClassInfo returns declaration metadata by slot.
func (in *Interner) ClassInfo(id ClassID) (*ClassInfo, bool) {
	info := in.classInfo(id)
	return info, info != nil
}

func (in *Interner) classInfo(id ClassID) *ClassInfo {
	if in == nil || id == 0 || int(id) >= len(in.classes) {
		return nil
	}
	return &in.classes[id]
}

// ClassType builds a reference to the class with the given arguments.
// No arguments yields the raw (erased) class type.
func (in *Interner) ClassType(id ClassID, args ...TypeID) TypeID {
	return in.Intern(Type{Kind: KindClass, Decl: uint32(id), Payload: in.internList(args)})
}

// DeclaredType is C<T1..Tn> where Ti are the class's own type variables.
func (in *Interner) DeclaredType(id ClassID) TypeID {
	info := in.classInfo(id)
	if info == nil {
		return NoTypeID
	}
	return in.ClassType(id, info.Params...)
}

// ClassOf returns the declaration slot of a class type.
func (in *Interner) ClassOf(id TypeID) (ClassID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindClass {
		return 0, false
	}
	return ClassID(tt.Decl), true
}

// TypeArgs returns the argument list of a class type.
func (in *Interner) TypeArgs(id TypeID) []TypeID {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindClass {
		return nil
	}
	return cloneTypeIDs(in.list(tt.Payload))
}

// IsParameterized reports a class type carrying type arguments.
func (in *Interner) IsParameterized(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind == KindClass && tt.Payload != 0
}

// IsRaw reports a generic class used without arguments.
func (in *Interner) IsRaw(id TypeID) bool {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindClass || tt.Payload != 0 {
		return false
	}
	info := in.classInfo(ClassID(tt.Decl))
	return info != nil && len(info.Params) > 0
}

// IsInterface reports class types declared as interfaces.
func (in *Interner) IsInterface(id TypeID) bool {
	decl, ok := in.ClassOf(id)
	if !ok {
		return false
	}
	info := in.classInfo(decl)
	return info != nil && info.Interface
}

// Components returns the parts of an intersection type.
func (in *Interner) Components(id TypeID) []TypeID {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindIntersection {
		return nil
	}
	return cloneTypeIDs(in.list(tt.Payload))
}

// Intersection interns A & B & ... . A single component is returned as is.
func (in *Interner) Intersection(parts ...TypeID) TypeID {
	parts = slices.DeleteFunc(cloneTypeIDs(parts), func(id TypeID) bool { return id == NoTypeID })
	switch len(parts) {
	case 0:
		return NoTypeID
	case 1:
		return parts[0]
	}
	return in.Intern(Type{Kind: KindIntersection, Payload: in.internList(parts)})
}

// ClassSym returns the symbol bound to decl, or 0.
func (in *Interner) ClassSym(decl ClassID) uint32 {
	if info := in.classInfo(decl); info != nil {
		return info.Sym
	}
	return 0
}
