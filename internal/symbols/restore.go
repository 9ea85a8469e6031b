package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"erasec/internal/types"
)

// Restore rebuilds a table from symbols read back from storage. data holds
// the symbols in id order without the sentinel; object and enum name the
// root classes among them. Type ids in data must already refer to typesIn.
func Restore(typesIn *types.Interner, data []Symbol, object, enum SymbolID) (*Table, error) {
	n, err := safecast.Conv[uint32](len(data) + 1)
	if err != nil {
		return nil, fmt.Errorf("symbols arena overflow: %w", err)
	}
	t := &Table{
		Symbols:  NewSymbols(n),
		Types:    typesIn,
		object:   object,
		enum:     enum,
		typeVars: make(map[types.TypeID]SymbolID),
	}
	for i := range data {
		id := t.Symbols.New(&data[i])
		if data[i].Kind == SymbolTypeVar {
			t.typeVars[data[i].Type] = id
		}
	}
	for _, root := range [...]SymbolID{object, enum} {
		if sym := t.Get(root); sym == nil || sym.Kind != SymbolClass {
			return nil, fmt.Errorf("root class %d missing", root)
		}
	}
	return t, nil
}
