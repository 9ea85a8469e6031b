package symbols

import (
	"errors"
	"fmt"

	"erasec/internal/types"
)

// Validate walks the arena checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error
	for idx := 1; idx < len(t.Symbols.data); idx++ {
		id := SymbolID(idx) // #nosec G115 -- arena length is checked in New
		sym := &t.Symbols.data[idx]
		switch sym.Kind {
		case SymbolInvalid:
			errs = append(errs, fmt.Errorf("symbol %d has invalid kind", id))
			continue
		case SymbolClass:
			if back := SymbolID(t.Types.ClassSym(sym.Class)); back != id {
				errs = append(errs, fmt.Errorf("class %s: declaration slot points to symbol %d", sym.Name, back))
			}
			for _, m := range sym.Members {
				ms := t.Get(m)
				if ms == nil {
					errs = append(errs, fmt.Errorf("class %s: invalid member %d", sym.Name, m))
					continue
				}
				if ms.Owner != id {
					errs = append(errs, fmt.Errorf("class %s: member %s owned by %d", sym.Name, ms.Name, ms.Owner))
				}
			}
		case SymbolMethod:
			if t.Types.KindOf(sym.Type) != types.KindMethod {
				errs = append(errs, fmt.Errorf("method %s has non-method type %s", sym.Name, types.Label(t.Types, sym.Type)))
			}
		}
		if sym.Owner.IsValid() && t.Get(sym.Owner) == nil {
			errs = append(errs, fmt.Errorf("symbol %s has invalid owner %d", sym.Name, sym.Owner))
		}
	}
	return errors.Join(errs...)
}
