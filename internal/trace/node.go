package trace

import "time"

// BridgeEvent describes a bridge method of Class.
type BridgeEvent struct {
	Class        string
	Method       string // bridge signature, e.g. get()
	Target       string // overridden method, e.g. A.get
	Hypothetical bool
}

// Bridge reports a bridge at node scope under parent.
func Bridge(t Tracer, parent uint64, b BridgeEvent) {
	if !passes(t, ScopeNode) {
		return
	}
	ev := nodeEvent(KindBridge, "bridge:"+methodName(b.Method), parent)
	ev.Class, ev.Method, ev.Target, ev.Hypothetical = b.Class, b.Method, b.Target, b.Hypothetical
	t.Emit(ev)
}

// ClashEvent describes a name clash reported in Class.
type ClashEvent struct {
	Code   string
	Class  string
	First  string
	Second string
}

// Clash reports a name clash at node scope under parent.
func Clash(t Tracer, parent uint64, c ClashEvent) {
	if !passes(t, ScopeNode) {
		return
	}
	ev := nodeEvent(KindClash, "clash:"+methodName(c.Second), parent)
	ev.Code, ev.Class, ev.Method, ev.Target = c.Code, c.Class, c.First, c.Second
	t.Emit(ev)
}

func nodeEvent(kind Kind, name string, parent uint64) *Event {
	return &Event{
		Time:     time.Now(),
		Seq:      nextSeq(),
		Kind:     kind,
		Scope:    ScopeNode,
		SpanID:   nextSpanID(),
		ParentID: parent,
		GID:      goroutineID(),
		Name:     name,
	}
}

// methodName cuts the parameter list off a signature.
func methodName(sig string) string {
	for i := 0; i < len(sig); i++ {
		if sig[i] == '(' {
			return sig[:i]
		}
	}
	return sig
}
