package annot

import (
	"slices"

	"erasec/internal/symbols"
	"erasec/internal/tree"
	"erasec/internal/types"
)

// Positions resolves the target of every type annotation inside one class
// body. Nested class declarations are left for their own pass.
func Positions(class *tree.Node, syms *symbols.Table) (err error) {
	defer catch(&err)
	if class == nil || class.Kind != tree.KindClassDef {
		fail(class, nil, "positions expects a class declaration")
	}
	s := &positionScanner{syms: syms, root: class}
	s.scan(class, nil)
	return nil
}

// Resolve computes the position of one annotated node from its ancestors,
// outermost first. The annotations of n are left untouched.
func Resolve(n *tree.Node, path []*tree.Node, syms *symbols.Table) (pos *symbols.TypeAnnotationPosition, err error) {
	defer catch(&err)
	if len(path) == 0 {
		fail(n, nil, "annotated node without enclosing frame")
	}
	s := &positionScanner{syms: syms}
	return s.position(n, path), nil
}

type positionScanner struct {
	syms *symbols.Table
	root *tree.Node
}

// scan visits n; path holds n's ancestors, outermost first.
func (s *positionScanner) scan(n *tree.Node, path []*tree.Node) {
	if n == nil {
		return
	}
	switch d := n.Data.(type) {
	case *tree.ClassDefData:
		if n != s.root {
			return
		}
	case *tree.MethodDefData:
		if d.Receiver != nil {
			if rd, ok := d.Receiver.Data.(*tree.VarDefData); ok && len(rd.Annotations) > 0 {
				p := symbols.NewPosition()
				p.Type = symbols.TargetMethodReceiver
				p.Pos = n.Span
				setPosition(rd.Annotations, p)
			}
		}
	case *tree.TypeParameterData:
		s.findPosition(n, path, d.Annotations)
	case *tree.AnnotatedTypeData:
		s.findPosition(n, path, d.Annotations)
	case *tree.NewArrayData:
		s.newArray(n, d, path)
		return
	}
	path = append(path, n)
	for _, c := range tree.Children(n) {
		s.scan(c, path[:len(path):len(path)])
	}
}

func (s *positionScanner) newArray(n *tree.Node, d *tree.NewArrayData, path []*tree.Node) {
	s.findPosition(n, append(path[:len(path):len(path)], n), d.Annotations)
	for i, anns := range d.DimAnnotations {
		p := symbols.NewPosition()
		p.Type = symbols.TargetNewGenericOrArray
		p.Pos = n.Span
		p.Location = []int{i}
		setPosition(anns, p)
	}
	// annotations on the element type count dimensions from the last
	// annotated one
	i := 0
	if len(d.DimAnnotations) > 0 {
		i = len(d.DimAnnotations) - 1
	}
	inner := append(path[:len(path):len(path)], n)
	elem := d.ElemType
loop:
	for elem != nil {
		switch ed := elem.Data.(type) {
		case *tree.AnnotatedTypeData:
			p := symbols.NewPosition()
			p.Type = symbols.TargetNewGenericOrArray
			p.Pos = n.Span
			p.Location = []int{i}
			setPosition(ed.Annotations, p)
			inner = append(inner, elem)
			elem = ed.Underlying
		case *tree.TypeArrayData:
			i++
			inner = append(inner, elem)
			elem = ed.Elem
		default:
			break loop
		}
	}
	// anything below the array shell (type arguments) resolves through the
	// regular frames
	s.scan(elem, inner)
	inner = append(path[:len(path):len(path)], n)
	for _, dim := range d.Dims {
		s.scan(dim, inner[:len(inner):len(inner)])
	}
	for _, e := range d.Elems {
		s.scan(e, inner[:len(inner):len(inner)])
	}
}

// findPosition resolves n against its parent frame and stores the result
// in every annotation.
func (s *positionScanner) findPosition(n *tree.Node, path []*tree.Node, anns []*tree.Node) {
	if len(anns) == 0 {
		return
	}
	if len(path) == 0 {
		fail(n, nil, "annotated node without enclosing frame")
	}
	setPosition(anns, s.position(n, path))
}

func (s *positionScanner) position(n *tree.Node, path []*tree.Node) *symbols.TypeAnnotationPosition {
	p := s.resolveFrame(n, path, symbols.NewPosition())
	if len(p.Location) > 0 {
		p.Type = p.Type.GenericComplement()
	}
	return p
}

// resolveFrame classifies n by its innermost enclosing frame path[len-1].
func (s *positionScanner) resolveFrame(n *tree.Node, path []*tree.Node, p *symbols.TypeAnnotationPosition) *symbols.TypeAnnotationPosition {
	if len(path) == 0 {
		fail(n, nil, "ran out of frames")
	}
	frame := path[len(path)-1]
	outer := path[:len(path)-1]

	switch fd := frame.Data.(type) {
	case *tree.TypeCastData:
		p.Type = symbols.TargetTypecast
		p.Pos = frame.Span
		return p
	case *tree.TypeTestData:
		p.Type = symbols.TargetInstanceOf
		p.Pos = frame.Span
		return p
	case *tree.NewClassData, *tree.NewArrayData:
		p.Type = symbols.TargetNew
		p.Pos = frame.Span
		return p
	case *tree.ClassDefData:
		p.Pos = frame.Span
		switch {
		case fd.Extends == n:
			p.Type = symbols.TargetClassExtends
			p.TypeIndex = -1
		case slices.Contains(fd.Implements, n):
			p.Type = symbols.TargetClassExtends
			p.TypeIndex = slices.Index(fd.Implements, n)
		case slices.Contains(fd.TypeParams, n):
			p.Type = symbols.TargetClassTypeParameter
			p.ParameterIndex = slices.Index(fd.TypeParams, n)
		default:
			fail(n, frame, "not part of the class header")
		}
		return p
	case *tree.MethodDefData:
		p.Pos = frame.Span
		switch {
		case fd.Receiver == n:
			p.Type = symbols.TargetMethodReceiver
		case slices.Contains(fd.Thrown, n):
			p.Type = symbols.TargetThrows
			p.TypeIndex = slices.Index(fd.Thrown, n)
		case fd.ResType == n:
			p.Type = symbols.TargetMethodReturn
		case slices.Contains(fd.TypeParams, n):
			p.Type = symbols.TargetMethodTypeParameter
			p.ParameterIndex = slices.Index(fd.TypeParams, n)
		default:
			fail(n, frame, "not part of the method header")
		}
		return p
	case *tree.SelectData:
		if fd.Name != "class" {
			fail(n, frame, "annotated select is not a class literal")
		}
		p.Type = symbols.TargetClassLiteral
		p.Pos = innermostType(fd.Selected).Span
		return p
	case *tree.TypeApplyData:
		if fd.Clazz != n {
			idx := slices.Index(fd.Args, n)
			if idx < 0 {
				fail(n, frame, "not a type argument")
			}
			p.Location = slices.Insert(p.Location, 0, idx)
		}
		return s.resolveFrame(frame, outer, p)
	case *tree.TypeArrayData:
		p.Location = slices.Insert(p.Location, 0, 0)
		cur, rest := frame, outer
		for len(rest) > 0 {
			parent := rest[len(rest)-1]
			if parent.Kind == tree.KindTypeArray {
				p.Location = slices.Insert(p.Location, 0, 0)
			} else if parent.Kind != tree.KindAnnotatedType {
				break
			}
			cur, rest = parent, rest[:len(rest)-1]
		}
		return s.resolveFrame(cur, rest, p)
	case *tree.TypeParameterData:
		if len(outer) == 0 {
			fail(n, frame, "type parameter without owner")
		}
		owner := outer[len(outer)-1]
		switch od := owner.Data.(type) {
		case *tree.ClassDefData:
			p.Type = symbols.TargetClassTypeParameterBound
			p.ParameterIndex = slices.Index(od.TypeParams, frame)
		case *tree.MethodDefData:
			p.Type = symbols.TargetMethodTypeParameterBound
			p.ParameterIndex = slices.Index(od.TypeParams, frame)
		default:
			fail(n, owner, "type parameter owner is neither class nor method")
		}
		p.BoundIndex = slices.Index(fd.Bounds, n)
		p.Pos = frame.Span
		return p
	case *tree.VarDefData:
		p.Pos = frame.Span
		s.variable(n, frame, outer, p)
		return p
	case *tree.AnnotatedTypeData:
		return s.resolveFrame(frame, outer, p)
	case *tree.ApplyData:
		idx := slices.Index(fd.TypeArgs, n)
		if idx < 0 {
			fail(n, frame, "not a type argument of the invocation")
		}
		p.Type = symbols.TargetMethodTypeArgument
		p.Pos = frame.Span
		p.TypeIndex = idx
		return p
	case *tree.WildcardData:
		if fd.Bound == types.BoundNone {
			fail(n, frame, "unbounded wildcard has no bound to annotate")
		}
		p.Type = symbols.TargetWildcardBound
		wildcard := s.resolveFrame(frame, outer, symbols.NewPosition())
		if len(wildcard.Location) > 0 {
			wildcard.Type = wildcard.Type.GenericComplement()
		}
		p.Wildcard = wildcard
		p.Pos = frame.Span
		return p
	}
	fail(n, frame, "unexpected frame")
	return nil
}

func (s *positionScanner) variable(n, frame *tree.Node, outer []*tree.Node, p *symbols.TypeAnnotationPosition) {
	var method *tree.MethodDefData
	if len(outer) > 0 {
		method, _ = outer[len(outer)-1].Data.(*tree.MethodDefData)
	}
	if method != nil && method.Receiver == frame {
		p.Type = symbols.TargetMethodReceiver
		return
	}
	sym := s.syms.Get(frame.Sym)
	if sym == nil || sym.Kind != symbols.SymbolVar {
		fail(n, frame, "variable declaration without a variable symbol")
	}
	switch sym.VarKind {
	case symbols.VarLocal, symbols.VarException:
		p.Type = symbols.TargetLocalVariable
	case symbols.VarField:
		p.Type = symbols.TargetField
	case symbols.VarParam:
		if method == nil {
			fail(n, frame, "parameter outside a method declaration")
		}
		p.Type = symbols.TargetMethodParameter
		p.ParameterIndex = slices.Index(method.Params, frame)
	}
}

// innermostType strips annotations from a type tree.
func innermostType(n *tree.Node) *tree.Node {
	for n != nil {
		at, ok := n.Data.(*tree.AnnotatedTypeData)
		if !ok {
			return n
		}
		n = at.Underlying
	}
	return n
}

func setPosition(anns []*tree.Node, p *symbols.TypeAnnotationPosition) {
	for _, a := range anns {
		if ad, ok := a.Data.(*tree.AnnotationData); ok {
			ad.Position = p
		}
	}
}
