package trace

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Format is the encoding of a stream tracer.
type Format uint8

const (
	FormatText Format = iota
	FormatNDJSON
)

type jsonEvent struct {
	Time         string            `json:"time"`
	Seq          uint64            `json:"seq"`
	Kind         string            `json:"kind"`
	Scope        string            `json:"scope"`
	SpanID       uint64            `json:"span_id"`
	ParentID     uint64            `json:"parent_id,omitempty"`
	GID          uint64            `json:"gid,omitempty"`
	Name         string            `json:"name"`
	Detail       string            `json:"detail,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`
	Class        string            `json:"class,omitempty"`
	Method       string            `json:"method,omitempty"`
	Target       string            `json:"target,omitempty"`
	Code         string            `json:"code,omitempty"`
	Hypothetical bool              `json:"hypothetical,omitempty"`
}

func encodeNDJSON(ev *Event) []byte {
	data, _ := json.Marshal(jsonEvent{
		Time:         ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:          ev.Seq,
		Kind:         ev.Kind.String(),
		Scope:        ev.Scope.String(),
		SpanID:       ev.SpanID,
		ParentID:     ev.ParentID,
		GID:          ev.GID,
		Name:         ev.Name,
		Detail:       ev.Detail,
		Extra:        ev.Extra,
		Class:        ev.Class,
		Method:       ev.Method,
		Target:       ev.Target,
		Code:         ev.Code,
		Hypothetical: ev.Hypothetical,
	})
	return append(data, '\n')
}

// encodeText renders one line:
//
//	15:04:05.000000 #12 class   → class:B
//	15:04:05.000000 #13 node      • bridge B.get() -> A.get
func encodeText(ev *Event) []byte {
	var sb strings.Builder
	sb.WriteString(ev.Time.Format("15:04:05.000000"))
	sb.WriteString(" #")
	sb.WriteString(strconv.FormatUint(ev.Seq, 10))
	sb.WriteByte(' ')
	sb.WriteString(ev.Scope.String())
	sb.WriteString(strings.Repeat("  ", int(ev.Scope)))

	switch ev.Kind {
	case KindSpanBegin:
		sb.WriteString("→ ")
		sb.WriteString(ev.Name)
	case KindSpanEnd:
		sb.WriteString("← ")
		sb.WriteString(ev.Name)
	case KindBridge:
		sb.WriteString("• bridge ")
		sb.WriteString(ev.Class)
		sb.WriteByte('.')
		sb.WriteString(ev.Method)
		sb.WriteString(" -> ")
		sb.WriteString(ev.Target)
		if ev.Hypothetical {
			sb.WriteString(" (hypothetical)")
		}
	case KindClash:
		sb.WriteString("• clash [")
		sb.WriteString(ev.Code)
		sb.WriteString("] ")
		sb.WriteString(ev.Class)
		sb.WriteString(": ")
		sb.WriteString(ev.Method)
		sb.WriteString(" vs ")
		sb.WriteString(ev.Target)
	case KindHeartbeat:
		sb.WriteString("♡ ")
		sb.WriteString(ev.Name)
	}

	if ev.Detail != "" {
		sb.WriteString(" (")
		sb.WriteString(ev.Detail)
		sb.WriteByte(')')
	}
	if len(ev.Extra) > 0 {
		keys := make([]string, 0, len(ev.Extra))
		for k := range ev.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteByte('=')
			sb.WriteString(ev.Extra[k])
		}
		sb.WriteByte('}')
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}
