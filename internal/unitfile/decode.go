package unitfile

import (
	"fmt"

	"erasec/internal/source"
	"erasec/internal/symbols"
	"erasec/internal/tree"
	"erasec/internal/types"
)

type decoder struct {
	in        *wireBundle
	types     *types.Interner
	remap     []types.TypeID // stored id -> id in types
	positions []*symbols.TypeAnnotationPosition
}

func decodeBundle(w *wireBundle) (*Bundle, error) {
	if w.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: file has %d, expected %d", ErrSchemaMismatch, w.Schema, SchemaVersion)
	}
	d := &decoder{in: w, types: types.NewInterner()}
	b := &Bundle{Files: source.NewFileSet(), Erased: w.Erased}
	for _, f := range w.Files {
		b.Files.Add(f.Path, f.Content)
	}
	if err := d.decodeTypes(); err != nil {
		return nil, err
	}
	if err := d.decodePositions(); err != nil {
		return nil, err
	}
	syms, err := d.decodeSymbols()
	if err != nil {
		return nil, err
	}
	b.Syms = syms
	for _, root := range w.Units {
		n, err := d.node(root)
		if err != nil {
			return nil, err
		}
		if n == nil || n.Kind != tree.KindTopLevel {
			return nil, fmt.Errorf("unit root %d is not a compilation unit", root)
		}
		b.Units = append(b.Units, n)
	}
	return b, nil
}

// typ maps a stored type id. Only ids below limit may be referenced.
func (d *decoder) typ(id uint32, limit int) (types.TypeID, error) {
	if id == 0 {
		return types.NoTypeID, nil
	}
	if int(id) >= limit || int(id) >= len(d.remap) {
		return types.NoTypeID, fmt.Errorf("type %d referenced before its definition", id)
	}
	return d.remap[id], nil
}

func (d *decoder) typeList(list []uint32, limit int) ([]types.TypeID, error) {
	if len(list) == 0 {
		return nil, nil
	}
	out := make([]types.TypeID, len(list))
	for i, id := range list {
		t, err := d.typ(id, limit)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func (d *decoder) decodeTypes() error {
	in := d.types
	in.SetClassSym(in.ObjectDecl(), d.in.Object)
	for i, c := range d.in.Classes {
		want := types.ClassID(i + 2) // #nosec G115 -- slot order of the writer
		if got := in.RegisterClass(c.Name, c.Sym, c.Interface); got != want {
			return fmt.Errorf("class slot %d decoded as %d", want, got)
		}
	}

	d.remap = make([]types.TypeID, len(d.in.Types)+1)
	for i, w := range d.in.Types {
		limit := i + 1
		var (
			id  types.TypeID
			err error
		)
		kind := types.Kind(w.Kind)
		switch kind {
		case types.KindClass:
			var args []types.TypeID
			if args, err = d.typeList(w.Parts, limit); err == nil {
				id = in.ClassType(types.ClassID(w.Decl), args...)
			}
		case types.KindArray:
			var elem types.TypeID
			if elem, err = d.typ(w.Elem, limit); err == nil {
				id = in.Intern(types.MakeArray(elem))
			}
		case types.KindTypeVar:
			id = in.RegisterTypeVar(w.Name, w.Owner)
		case types.KindWildcard:
			var bound types.TypeID
			if bound, err = d.typ(w.Elem, limit); err == nil {
				id = in.Intern(types.MakeWildcard(types.BoundKind(w.Bound), bound))
			}
		case types.KindIntersection:
			var parts []types.TypeID
			if parts, err = d.typeList(w.Parts, limit); err == nil {
				id = in.Intersection(parts...)
			}
		case types.KindMethod:
			id, err = d.methodType(w, limit)
		default:
			if !kind.IsPrimitive() && kind != types.KindVoid && kind != types.KindNull {
				return fmt.Errorf("type %d has unknown kind %d", i+1, w.Kind)
			}
			id = in.Intern(types.Type{Kind: kind})
		}
		if err != nil {
			return fmt.Errorf("type %d: %w", i+1, err)
		}
		d.remap[i+1] = id
	}

	// declaration-side links may point forward
	all := len(d.remap)
	for i, c := range d.in.Classes {
		decl := types.ClassID(i + 2) // #nosec G115 -- as above
		params, err := d.typeList(c.Params, all)
		if err != nil {
			return err
		}
		super, err := d.typ(c.Super, all)
		if err != nil {
			return err
		}
		ifaces, err := d.typeList(c.Interfaces, all)
		if err != nil {
			return err
		}
		in.SetClassParams(decl, params)
		in.SetSupertypes(decl, super, ifaces)
	}
	for i, w := range d.in.Types {
		if types.Kind(w.Kind) != types.KindTypeVar || w.TVBound == 0 {
			continue
		}
		bound, err := d.typ(w.TVBound, all)
		if err != nil {
			return err
		}
		in.SetTypeVarBound(d.remap[i+1], bound)
	}
	return nil
}

func (d *decoder) methodType(w wireType, limit int) (types.TypeID, error) {
	params, err := d.typeList(w.Parts, limit)
	if err != nil {
		return types.NoTypeID, err
	}
	result, err := d.typ(w.Result, limit)
	if err != nil {
		return types.NoTypeID, err
	}
	thrown, err := d.typeList(w.Thrown, limit)
	if err != nil {
		return types.NoTypeID, err
	}
	tparams, err := d.typeList(w.TypeParams, limit)
	if err != nil {
		return types.NoTypeID, err
	}
	return d.types.MethodType(params, result, thrown, tparams), nil
}

func (d *decoder) decodePositions() error {
	d.positions = make([]*symbols.TypeAnnotationPosition, len(d.in.Positions))
	for i, w := range d.in.Positions {
		p := &symbols.TypeAnnotationPosition{
			Type:           symbols.TargetType(w.Type),
			Pos:            unspan(w.Pos),
			TypeIndex:      int(w.TypeIndex),
			ParameterIndex: int(w.ParameterIndex),
			BoundIndex:     int(w.BoundIndex),
		}
		for _, l := range w.Location {
			p.Location = append(p.Location, int(l))
		}
		if w.Wildcard >= 0 {
			if int(w.Wildcard) >= i {
				return fmt.Errorf("position %d: wildcard %d out of order", i, w.Wildcard)
			}
			p.Wildcard = d.positions[w.Wildcard]
		}
		d.positions[i] = p
	}
	return nil
}

func (d *decoder) position(idx int32) (*symbols.TypeAnnotationPosition, error) {
	if idx < 0 {
		return nil, nil
	}
	if int(idx) >= len(d.positions) {
		return nil, fmt.Errorf("position %d out of range", idx)
	}
	return d.positions[idx], nil
}

func (d *decoder) compound(w wireCompound) (symbols.Compound, error) {
	t, err := d.typ(w.Type, len(d.remap))
	return symbols.Compound{Type: t, Name: w.Name, Args: w.Args}, err
}

func (d *decoder) decodeSymbols() (*symbols.Table, error) {
	all := len(d.remap)
	data := make([]symbols.Symbol, len(d.in.Symbols))
	for i, w := range d.in.Symbols {
		t, err := d.typ(w.Type, all)
		if err != nil {
			return nil, fmt.Errorf("symbol %s: %w", w.Name, err)
		}
		s := symbols.Symbol{
			Name:    w.Name,
			Kind:    symbols.SymbolKind(w.Kind),
			Flags:   symbols.SymbolFlags(w.Flags),
			Owner:   symbols.SymbolID(w.Owner),
			Type:    t,
			Span:    unspan(w.Span),
			Package: w.Package,
			Class:   types.ClassID(w.Class),
			VarKind: symbols.VarKind(w.VarKind),
			Const:   w.Const,
		}
		for _, m := range w.Members {
			s.Members = append(s.Members, symbols.SymbolID(m))
		}
		for _, a := range w.Attributes {
			c, err := d.compound(a)
			if err != nil {
				return nil, err
			}
			s.Attributes = append(s.Attributes, c)
		}
		for _, ta := range w.TypeAnnotations {
			c, err := d.compound(ta.Compound)
			if err != nil {
				return nil, err
			}
			p, err := d.position(ta.Position)
			if err != nil {
				return nil, err
			}
			s.TypeAnnotations = append(s.TypeAnnotations, symbols.TypeCompound{Compound: c, Position: p})
		}
		data[i] = s
	}
	return symbols.Restore(d.types, data, symbols.SymbolID(d.in.Object), symbols.SymbolID(d.in.Enum))
}

func (d *decoder) node(idx int32) (*tree.Node, error) {
	if idx < 0 {
		return nil, nil
	}
	if int(idx) >= len(d.in.Nodes) {
		return nil, fmt.Errorf("node %d out of range", idx)
	}
	w := &d.in.Nodes[idx]
	kind := tree.Kind(w.Kind)
	typ, err := d.typ(w.Type, len(d.remap))
	if err != nil {
		return nil, fmt.Errorf("%s node %d: %w", kind, idx, err)
	}
	data, err := newData(kind)
	if err != nil {
		return nil, err
	}
	n := &tree.Node{Kind: kind, Span: unspan(w.Span), Type: typ, Sym: symbols.SymbolID(w.Sym), Data: data}
	if data == nil {
		return n, nil
	}

	sh := shapeOf(data)
	if len(w.Strs) != len(sh.strs) || len(w.Kids) != len(sh.kids) || len(w.Lists) < len(sh.lists) {
		return nil, fmt.Errorf("%s node %d: malformed payload", kind, idx)
	}
	for i, s := range sh.strs {
		*s = w.Strs[i]
	}
	for i, k := range sh.kids {
		if *k, err = d.node(w.Kids[i]); err != nil {
			return nil, err
		}
	}
	for i, l := range sh.lists {
		if *l, err = d.list(w.Lists[i]); err != nil {
			return nil, err
		}
	}

	aux := func(i int) uint32 {
		if i < len(w.Aux) {
			return w.Aux[i]
		}
		return 0
	}
	all := len(d.remap)
	switch p := data.(type) {
	case *tree.BlockData:
		p.Static = w.Flag
	case *tree.ApplyData:
		p.VarargsElement, err = d.typ(aux(0), all)
	case *tree.NewClassData:
		p.Constructor = symbols.SymbolID(aux(0))
		p.VarargsElement, err = d.typ(aux(1), all)
	case *tree.OperatorData:
		p.Operator, err = d.typ(aux(0), all)
	case *tree.WildcardData:
		p.Bound = types.BoundKind(aux(0))
	case *tree.NewArrayData:
		for _, list := range w.Lists[len(sh.lists):] {
			anns, lerr := d.list(list)
			if lerr != nil {
				return nil, lerr
			}
			p.DimAnnotations = append(p.DimAnnotations, anns)
		}
	case *tree.AnnotationData:
		p.TypeAnnotation = w.Flag
		if w.Compound != nil {
			if p.Compound, err = d.compound(*w.Compound); err != nil {
				return nil, err
			}
		}
		p.Position, err = d.position(w.Position)
	}
	if err != nil {
		return nil, fmt.Errorf("%s node %d: %w", kind, idx, err)
	}
	return n, nil
}

func (d *decoder) list(idx []int32) ([]*tree.Node, error) {
	if len(idx) == 0 {
		return nil, nil
	}
	out := make([]*tree.Node, len(idx))
	for i, c := range idx {
		n, err := d.node(c)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func unspan(w wireSpan) source.Span {
	return source.Span{File: source.FileID(w.File), Start: w.Start, End: w.End}
}
