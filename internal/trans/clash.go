package trans

import (
	"fmt"

	"erasec/internal/diag"
	"erasec/internal/source"
	"erasec/internal/symbols"
	"erasec/internal/trace"
	"erasec/internal/types"
)

// clashKey identifies a reported pair regardless of order.
type clashKey struct {
	code diag.Code
	a, b symbols.SymbolID
}

func newClashKey(code diag.Code, a, b symbols.SymbolID) clashKey {
	if b < a {
		a, b = b, a
	}
	return clashKey{code: code, a: a, b: b}
}

// location renders "in C" or "in C<T>" for a member seen from origin.
func (t *Translator) location(member, origin symbols.SymbolID) string {
	owner := t.syms.Get(member).Owner
	os := t.syms.Get(owner)
	if os == nil {
		return "?"
	}
	if view := t.types.AsSuper(t.syms.Get(origin).Type, os.Class); view != types.NoTypeID {
		return types.Label(t.types, view)
	}
	return os.Name
}

// reportNoOverride reports two methods of origin with the same erasure
// where neither overrides the other.
func (t *Translator) reportNoOverride(pos source.Span, first, second, origin symbols.SymbolID) {
	if !t.clashes.Insert(newClashKey(diag.TransNameClashNoOverride, first, second)) {
		return
	}
	t.stats.Clashes++
	msg := fmt.Sprintf("name clash: %s in %s and %s in %s have the same erasure, yet neither overrides the other",
		t.describe(first), t.location(first, origin), t.describe(second), t.location(second, origin))
	diag.ReportError(t.reporter, diag.TransNameClashNoOverride, pos, msg).
		WithNote(t.syms.Get(first).Span, "first method").
		WithNote(t.syms.Get(second).Span, "second method").
		Emit()
	trace.Clash(t.tracer, t.span, trace.ClashEvent{
		Code:   diag.TransNameClashNoOverride.ID(),
		Class:  t.syms.Name(origin),
		First:  t.describe(first),
		Second: t.describe(second),
	})
}
