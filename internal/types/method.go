package types

import (
	"fmt"

	"fortio.org/safecast"
)

// MethodInfo stores a method signature.
type MethodInfo struct {
	Params     []TypeID
	Result     TypeID
	Thrown     []TypeID
	TypeParams []TypeID
}

type methodKey struct {
	params, thrown, typeParams uint32
	result                     TypeID
}

// MethodType interns a method signature.
func (in *Interner) MethodType(params []TypeID, result TypeID, thrown, typeParams []TypeID) TypeID {
	key := methodKey{
		params:     in.internList(params),
		thrown:     in.internList(thrown),
		typeParams: in.internList(typeParams),
		result:     result,
	}
	slot, ok := in.methodIdx[key]
	if !ok {
		in.methods = append(in.methods, MethodInfo{
			Params:     cloneTypeIDs(params),
			Result:     result,
			Thrown:     cloneTypeIDs(thrown),
			TypeParams: cloneTypeIDs(typeParams),
		})
		var err error
		slot, err = safecast.Conv[uint32](len(in.methods) - 1)
		if err != nil {
			panic(fmt.Errorf("method info overflow: %w", err))
		}
		in.methodIdx[key] = slot
	}
	return in.Intern(Type{Kind: KindMethod, Payload: slot})
}

// MethodInfo retrieves the signature of a method type. The returned value is
// shared; callers must not modify it.
func (in *Interner) MethodInfo(id TypeID) (*MethodInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindMethod || int(tt.Payload) >= len(in.methods) {
		return nil, false
	}
	return &in.methods[tt.Payload], true
}

// Params returns the parameter types of a method type.
func (in *Interner) Params(id TypeID) []TypeID {
	if info, ok := in.MethodInfo(id); ok {
		return cloneTypeIDs(info.Params)
	}
	return nil
}

// Result returns the result type of a method type.
func (in *Interner) Result(id TypeID) TypeID {
	if info, ok := in.MethodInfo(id); ok {
		return info.Result
	}
	return NoTypeID
}
