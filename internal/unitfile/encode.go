package unitfile

import (
	"fmt"

	"fortio.org/safecast"

	"erasec/internal/source"
	"erasec/internal/symbols"
	"erasec/internal/tree"
	"erasec/internal/types"
)

type encoder struct {
	out       wireBundle
	positions map[*symbols.TypeAnnotationPosition]int32
}

func encodeBundle(b *Bundle) (*wireBundle, error) {
	if b == nil || b.Syms == nil {
		return nil, fmt.Errorf("unitfile: nothing to encode")
	}
	e := &encoder{positions: make(map[*symbols.TypeAnnotationPosition]int32)}
	e.out.Schema = SchemaVersion
	e.out.Erased = b.Erased
	e.files(b.Files)
	e.types(b.Syms.Types)
	e.symbols(b.Syms)
	for _, u := range b.Units {
		idx, err := e.node(u)
		if err != nil {
			return nil, err
		}
		e.out.Units = append(e.out.Units, idx)
	}
	return &e.out, nil
}

func (e *encoder) files(fs *source.FileSet) {
	if fs == nil {
		return
	}
	for i := 0; i < fs.Len(); i++ {
		f := fs.Get(source.FileID(i)) // #nosec G115 -- bounded by Len
		e.out.Files = append(e.out.Files, wireFile{Path: f.Path, Content: f.Content})
	}
}

func (e *encoder) types(in *types.Interner) {
	// slot 1 is Object, registered by every interner
	for id := types.ClassID(2); ; id++ {
		info, ok := in.ClassInfo(id)
		if !ok {
			break
		}
		e.out.Classes = append(e.out.Classes, wireClass{
			Name:       info.Name,
			Sym:        info.Sym,
			Interface:  info.Interface,
			Params:     ids(info.Params),
			Super:      uint32(info.Super),
			Interfaces: ids(info.Interfaces),
		})
	}
	for i := 1; i < in.Len(); i++ {
		id := types.TypeID(i) // #nosec G115 -- bounded by Len
		tt := in.MustLookup(id)
		w := wireType{Kind: uint8(tt.Kind), Elem: uint32(tt.Elem), Decl: tt.Decl, Bound: uint8(tt.Bound)}
		switch tt.Kind {
		case types.KindClass:
			w.Parts = ids(in.TypeArgs(id))
		case types.KindIntersection:
			w.Parts = ids(in.Components(id))
		case types.KindMethod:
			info, _ := in.MethodInfo(id)
			w.Parts = ids(info.Params)
			w.Result = uint32(info.Result)
			w.Thrown = ids(info.Thrown)
			w.TypeParams = ids(info.TypeParams)
		case types.KindTypeVar:
			info, _ := in.TypeVarInfo(id)
			w.Name, w.Owner, w.TVBound = info.Name, info.Owner, uint32(info.Bound)
		}
		e.out.Types = append(e.out.Types, w)
	}
}

func (e *encoder) symbols(t *symbols.Table) {
	e.out.Object, e.out.Enum = uint32(t.Object()), uint32(t.Enum())
	for i := range t.Symbols.Data() {
		s := &t.Symbols.Data()[i]
		w := wireSymbol{
			Name:    s.Name,
			Kind:    uint8(s.Kind),
			Flags:   uint32(s.Flags),
			Owner:   uint32(s.Owner),
			Type:    uint32(s.Type),
			Span:    span(s.Span),
			Package: s.Package,
			Class:   uint32(s.Class),
			VarKind: uint8(s.VarKind),
			Const:   s.Const,
		}
		for _, m := range s.Members {
			w.Members = append(w.Members, uint32(m))
		}
		for _, c := range s.Attributes {
			w.Attributes = append(w.Attributes, compound(c))
		}
		for _, tc := range s.TypeAnnotations {
			w.TypeAnnotations = append(w.TypeAnnotations, wireTypeCompound{
				Compound: compound(tc.Compound),
				Position: e.position(tc.Position),
			})
		}
		e.out.Symbols = append(e.out.Symbols, w)
	}
}

// position stores p once; shared positions keep sharing after decoding.
func (e *encoder) position(p *symbols.TypeAnnotationPosition) int32 {
	if p == nil {
		return -1
	}
	if idx, ok := e.positions[p]; ok {
		return idx
	}
	wildcard := e.position(p.Wildcard)
	w := wirePosition{
		Type:           uint8(p.Type),
		Pos:            span(p.Pos),
		TypeIndex:      index(p.TypeIndex),
		ParameterIndex: index(p.ParameterIndex),
		BoundIndex:     index(p.BoundIndex),
		Wildcard:       wildcard,
	}
	for _, l := range p.Location {
		w.Location = append(w.Location, index(l))
	}
	idx := e.next(len(e.out.Positions))
	e.out.Positions = append(e.out.Positions, w)
	e.positions[p] = idx
	return idx
}

func (e *encoder) node(n *tree.Node) (int32, error) {
	if n == nil {
		return -1, nil
	}
	idx := e.next(len(e.out.Nodes))
	e.out.Nodes = append(e.out.Nodes, wireNode{
		Kind:     uint8(n.Kind),
		Span:     span(n.Span),
		Type:     uint32(n.Type),
		Sym:      uint32(n.Sym),
		Position: -1,
	})
	if n.Data == nil {
		if n.Kind != tree.KindSkip {
			return 0, fmt.Errorf("unitfile: %s node without payload at %s", n.Kind, n.Span)
		}
		return idx, nil
	}

	sh := shapeOf(n.Data)
	var w wireNode
	for _, s := range sh.strs {
		w.Strs = append(w.Strs, *s)
	}
	for _, k := range sh.kids {
		c, err := e.node(*k)
		if err != nil {
			return 0, err
		}
		w.Kids = append(w.Kids, c)
	}
	for _, l := range sh.lists {
		list, err := e.list(*l)
		if err != nil {
			return 0, err
		}
		w.Lists = append(w.Lists, list)
	}
	w.Position = -1
	switch d := n.Data.(type) {
	case *tree.BlockData:
		w.Flag = d.Static
	case *tree.ApplyData:
		w.Aux = []uint32{uint32(d.VarargsElement)}
	case *tree.NewClassData:
		w.Aux = []uint32{uint32(d.Constructor), uint32(d.VarargsElement)}
	case *tree.OperatorData:
		w.Aux = []uint32{uint32(d.Operator)}
	case *tree.WildcardData:
		w.Aux = []uint32{uint32(d.Bound)}
	case *tree.NewArrayData:
		for _, anns := range d.DimAnnotations {
			list, err := e.list(anns)
			if err != nil {
				return 0, err
			}
			w.Lists = append(w.Lists, list)
		}
	case *tree.AnnotationData:
		w.Flag = d.TypeAnnotation
		c := compound(d.Compound)
		w.Compound = &c
		w.Position = e.position(d.Position)
	}

	// children were appended after this node, so the slot is still ours
	slot := &e.out.Nodes[idx]
	slot.Strs, slot.Kids, slot.Lists = w.Strs, w.Kids, w.Lists
	slot.Flag, slot.Aux, slot.Compound, slot.Position = w.Flag, w.Aux, w.Compound, w.Position
	return idx, nil
}

func (e *encoder) list(nodes []*tree.Node) ([]int32, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]int32, len(nodes))
	for i, n := range nodes {
		idx, err := e.node(n)
		if err != nil {
			return nil, err
		}
		out[i] = idx
	}
	return out, nil
}

func (e *encoder) next(n int) int32 {
	idx, err := safecast.Conv[int32](n)
	if err != nil {
		panic(fmt.Errorf("unitfile: table overflow: %w", err))
	}
	return idx
}

func ids(list []types.TypeID) []uint32 {
	if len(list) == 0 {
		return nil
	}
	out := make([]uint32, len(list))
	for i, id := range list {
		out[i] = uint32(id)
	}
	return out
}

func span(s source.Span) wireSpan {
	return wireSpan{File: uint32(s.File), Start: s.Start, End: s.End}
}

func compound(c symbols.Compound) wireCompound {
	return wireCompound{Type: uint32(c.Type), Name: c.Name, Args: c.Args}
}

func index(v int) int32 {
	out, err := safecast.Conv[int32](v)
	if err != nil {
		panic(fmt.Errorf("unitfile: index overflow: %w", err))
	}
	return out
}
