package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1 // span opened
	KindSpanEnd                   // span closed
	KindBridge                    // bridge synthesized or found hypothetical
	KindClash                     // name clash reported
	KindHeartbeat                 // liveness tick
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindBridge:
		return "bridge"
	case KindClash:
		return "clash"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event; lower is coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // CLI command, pipeline run
	ScopeUnit                    // one unit file
	ScopeClass                   // one class
	ScopeNode                    // single bridge or clash
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopeUnit:
		return "unit"
	case ScopeClass:
		return "class"
	case ScopeNode:
		return "node"
	default:
		return "unknown"
	}
}

// Event is a single trace record. Class, Method, Target, Code and
// Hypothetical are filled only for bridge and clash events.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	GID      uint64
	Name     string // "translate", "unit:Box.unit.mp", "class:Box", "bridge:get"
	Detail   string
	Extra    map[string]string

	Class        string // owner of the bridge, origin of the clash
	Method       string // bridge signature, or first clashing method
	Target       string // overridden method, or second clashing method
	Code         string // diagnostic code of a clash
	Hypothetical bool   // bridge needed but not emitted
}
