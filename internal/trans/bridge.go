package trans

import (
	"github.com/hashicorp/go-set/v3"

	"erasec/internal/source"
	"erasec/internal/symbols"
	"erasec/internal/trace"
	"erasec/internal/tree"
	"erasec/internal/types"
)

// addBridges returns the bridge declarations origin needs. Candidates come
// from the superclass chain (each class's members, then its interfaces)
// and then from origin's own interfaces. Every inherited method is looked
// at once.
func (t *Translator) addBridges(pos source.Span, origin symbols.SymbolID) []*tree.Node {
	var bridges []*tree.Node
	seen := set.New[symbols.SymbolID](16)
	originType := t.syms.Get(origin).Type
	for st := t.types.Supertype(originType); t.types.KindOf(st) == types.KindClass; st = t.types.Supertype(st) {
		t.addBridgesFrom(pos, t.syms.ClassSymbol(st), origin, &bridges, seen)
	}
	for _, it := range t.types.Interfaces(originType) {
		t.addBridgesFrom(pos, t.syms.ClassSymbol(it), origin, &bridges, seen)
	}
	return bridges
}

func (t *Translator) addBridgesFrom(pos source.Span, class, origin symbols.SymbolID, bridges *[]*tree.Node, seen *set.Set[symbols.SymbolID]) {
	sym := t.syms.Get(class)
	if sym == nil {
		return
	}
	for _, m := range sym.Members {
		if seen.Insert(m) {
			t.addBridgeIfNeeded(pos, m, origin, bridges)
		}
	}
	for _, it := range t.types.Interfaces(sym.Type) {
		t.addBridgesFrom(pos, t.syms.ClassSymbol(it), origin, bridges, seen)
	}
}

// addBridgeIfNeeded adds a bridge for method when erasure changed its
// signature as seen from origin, or checks an existing bridge for
// conflicts.
func (t *Translator) addBridgeIfNeeded(pos source.Span, method, origin symbols.SymbolID, bridges *[]*tree.Node) {
	m := t.syms.Get(method)
	if m == nil || m.Kind != symbols.SymbolMethod || m.IsConstructor() ||
		m.Flags&(symbols.FlagPrivate|symbols.FlagSynthetic|symbols.FlagStatic) != 0 ||
		!t.syms.IsMemberOf(method, origin) {
		return
	}
	bridge := t.syms.BinaryImplementation(method, origin)
	impl := t.syms.Implementation(method, origin)

	switch {
	case !bridge.IsValid() || bridge == method ||
		(impl.IsValid() && !t.syms.IsSubClass(t.syms.Get(bridge).Owner, t.syms.Get(impl).Owner)):
		// no bridge yet
		if impl.IsValid() && t.isBridgeNeeded(method, impl, origin) {
			t.addBridge(pos, method, impl, origin, bridge == impl, bridges)
		} else if t.needsVisibilityBridge(method, impl, origin) {
			t.addBridge(pos, method, impl, origin, false, bridges)
		}
	case t.syms.Get(bridge).IsSynthetic():
		other, ok := t.overridden[bridge]
		if ok && other != method && (!impl.IsValid() || !t.syms.Overrides(impl, other, origin, true)) {
			t.reportNoOverride(pos, other, method, origin)
		}
	case !t.syms.Overrides(bridge, method, origin, true):
		// accidental binary override; an ancestor declaring the bridge has
		// reported it already
		bridgeOwner := t.syms.Get(t.syms.Get(bridge).Owner)
		methodOwner := t.syms.Get(m.Owner)
		if bridgeOwner.Kind == symbols.SymbolClass && methodOwner.Kind == symbols.SymbolClass &&
			(t.syms.Get(bridge).Owner == origin || t.types.AsSuper(bridgeOwner.Type, methodOwner.Class) == types.NoTypeID) {
			t.reportNoOverride(pos, bridge, method, origin)
		}
	}
}

// needsVisibilityBridge: a public concrete method inherited unchanged from
// a non-public class into a public one gets a forwarding bridge so that
// reflective calls through the public class succeed.
func (t *Translator) needsVisibilityBridge(method, impl, origin symbols.SymbolID) bool {
	if !t.opts.VisibilityBridges || impl != method {
		return false
	}
	m := t.syms.Get(method)
	owner, o := t.syms.Get(m.Owner), t.syms.Get(origin)
	return m.Owner != origin &&
		m.Flags&symbols.FlagFinal == 0 &&
		m.Flags&(symbols.FlagAbstract|symbols.FlagPublic) == symbols.FlagPublic &&
		o.Flags&symbols.FlagPublic != 0 && owner.Flags&symbols.FlagPublic == 0
}

// isBridgeNeeded decides whether impl must be reached through a bridge
// when method is called on origin.
func (t *Translator) isBridgeNeeded(method, impl, origin symbols.SymbolID) bool {
	methodErasure := t.syms.Erasure(method)
	if impl != method {
		if !t.isSameMemberWhenErased(origin, method, methodErasure) {
			return true
		}
		implErasure := t.syms.Erasure(impl)
		if !t.isSameMemberWhenErased(origin, impl, implErasure) {
			return true
		}
		return !t.types.IsSameType(t.types.Result(implErasure), t.types.Result(methodErasure))
	}
	if t.syms.Get(method).IsAbstract() {
		// concrete subclasses bridge as needed
		return false
	}
	return !t.isSameMemberWhenErased(origin, method, methodErasure)
}

func (t *Translator) isSameMemberWhenErased(class, method symbols.SymbolID, erasure types.TypeID) bool {
	return t.types.IsSameType(t.erasure(t.syms.MemberType(class, method)), erasure)
}

// addBridge declares a bridge for method in origin delegating to impl and
// records it in the association table. Hypothetical bridges only enter
// the member list.
func (t *Translator) addBridge(pos source.Span, method, impl, origin symbols.SymbolID, hypothetical bool, bridges *[]*tree.Node) {
	m, im, o := t.syms.Get(method), t.syms.Get(impl), t.syms.Get(origin)
	origErasure := t.erasure(t.syms.MemberType(origin, method))
	bridgeType := t.syms.Erasure(method)
	flags := im.Flags&symbols.AccessFlags | symbols.FlagSynthetic | symbols.FlagBridge
	if hypothetical {
		flags |= symbols.FlagHypothetical
	}
	bridge := t.syms.NewMethod(m.Name, flags, origin, bridgeType, pos)

	if !hypothetical {
		mk := t.maker.At(pos)
		md := mk.MethodDef(bridge, nil)
		var receiver *tree.Node
		if im.Owner == origin {
			receiver = mk.This(t.syms.Erasure(origin))
		} else {
			receiver = mk.Super(t.erasure(t.types.Supertype(o.Type)))
		}
		callType := t.erasure(t.types.Result(im.Type))
		sel := mk.Select(receiver, impl)
		sel.Type = callType
		def := md.Data.(*tree.MethodDefData)
		args := t.translateArgs(md, mk.Idents(def.Params), t.types.Params(origErasure), types.NoTypeID)
		call := mk.Apply(sel, args, callType)
		var stat *tree.Node
		if t.types.KindOf(t.types.Result(origErasure)) == types.KindVoid {
			stat = mk.Exec(call)
		} else {
			stat = mk.Return(t.coerce(call, t.types.Result(bridgeType)))
		}
		def.Body = mk.Block(stat)
		*bridges = append(*bridges, md)
		t.stats.Bridges++
	}

	t.overridden[bridge] = method
	trace.Bridge(t.tracer, t.span, trace.BridgeEvent{
		Class:        t.syms.Name(origin),
		Method:       t.describe(bridge),
		Target:       t.syms.Name(im.Owner) + "." + im.Name,
		Hypothetical: hypothetical,
	})
}
