package trans

import (
	"fmt"

	"erasec/internal/diag"
	"erasec/internal/symbols"
	"erasec/internal/tree"
	"erasec/internal/types"
)

// cast wraps expr in a cast to target unless it already has exactly that
// type.
func (t *Translator) cast(expr *tree.Node, target types.TypeID) *tree.Node {
	if t.types.IsSameType(expr.Type, target) {
		return expr
	}
	from := symbols.NoSymbolID
	if t.env != nil {
		from = t.env.Class
	}
	if !t.access.IsAccessible(from, target) {
		diag.ReportError(t.reporter, diag.TransCastNotAccessible, expr.Span,
			fmt.Sprintf("%s is not accessible from %s", types.Label(t.types, target), t.syms.Name(from))).Emit()
	}
	t.stats.Casts++
	return t.maker.At(expr.Span).TypeCast(target, expr)
}

// coerce makes expr assignable to the erased target. Primitive and
// reference mismatches are left for boxing.
func (t *Translator) coerce(expr *tree.Node, target types.TypeID) *tree.Node {
	if t.types.IsPrimitive(expr.Type) != t.types.IsPrimitive(target) {
		return expr
	}
	if t.types.IsAssignable(expr.Type, target) {
		return expr
	}
	return t.cast(expr, target)
}

// retype gives expr the erased type of what it reads and coerces it back
// to target. Primitive targets are replaced by the erasure of expr's
// original type. Expressions whose erased type is primitive are untouched.
func (t *Translator) retype(expr *tree.Node, erased, target types.TypeID) *tree.Node {
	if erased == types.NoTypeID || t.types.IsPrimitive(erased) {
		return expr
	}
	if t.types.KindOf(erased) == types.KindVoid {
		expr.Type = erased
		return expr
	}
	if target != types.NoTypeID && t.types.IsPrimitive(target) {
		target = t.erasure(expr.Type)
	}
	expr.Type = erased
	if target != types.NoTypeID {
		return t.coerce(expr, target)
	}
	return expr
}
