package annot

import (
	"erasec/internal/symbols"
	"erasec/internal/tree"
)

// Lift attaches resolved type annotations to the declarations that own
// them: the class for annotations in its header and initializers, each
// method for annotations in its signature and body, each field for its own.
// Declaration annotations of local variables become local-variable type
// annotations. Nested class declarations are not entered.
func Lift(class *tree.Node, syms *symbols.Table) (err error) {
	defer catch(&err)
	if class == nil || class.Kind != tree.KindClassDef {
		fail(class, nil, "lift expects a class declaration")
	}
	l := &lifter{syms: syms, root: class}
	l.scan(class)
	return nil
}

type lifter struct {
	syms     *symbols.Table
	root     *tree.Node
	recorded []symbols.TypeCompound
}

func (l *lifter) scan(n *tree.Node) {
	if n == nil {
		return
	}
	switch d := n.Data.(type) {
	case *tree.ClassDefData:
		if n != l.root {
			return
		}
		l.owned(n, func() { l.children(n) })
		return
	case *tree.MethodDefData:
		l.owned(n, func() { l.children(n) })
		return
	case *tree.VarDefData:
		l.varDef(n, d)
		return
	case *tree.AnnotationData:
		if d.TypeAnnotation {
			if !d.Position.Resolved() {
				fail(n, nil, "type annotation without resolved position")
			}
			l.recorded = append(l.recorded, symbols.TypeCompound{Compound: d.Compound, Position: d.Position})
		}
	}
	l.children(n)
}

func (l *lifter) children(n *tree.Node) {
	for _, c := range tree.Children(n) {
		l.scan(c)
	}
}

// owned runs body with a fresh accumulator and appends what it collected
// to n's symbol.
func (l *lifter) owned(n *tree.Node, body func()) {
	prev := l.recorded
	l.recorded = nil
	body()
	if sym := l.syms.Get(n.Sym); sym != nil {
		sym.TypeAnnotations = append(sym.TypeAnnotations, l.recorded...)
	}
	l.recorded = prev
}

func (l *lifter) varDef(n *tree.Node, d *tree.VarDefData) {
	sym := l.syms.Get(n.Sym)
	if sym == nil {
		fail(n, nil, "variable declaration without symbol")
	}
	prev := l.recorded
	l.recorded = nil
	local := sym.VarKind == symbols.VarLocal || sym.VarKind == symbols.VarException
	if local && len(d.Annotations) > 0 {
		p := symbols.NewPosition()
		p.Type = symbols.TargetLocalVariable
		p.Pos = n.Span
		for _, attr := range sym.Attributes {
			l.recorded = append(l.recorded, symbols.TypeCompound{Compound: attr, Position: p})
		}
	}
	l.children(n)
	own := l.recorded
	l.recorded = prev
	switch {
	case sym.VarKind == symbols.VarField:
		sym.TypeAnnotations = append(sym.TypeAnnotations, own...)
	case local:
		sym.TypeAnnotations = append(sym.TypeAnnotations, own...)
		l.recorded = append(l.recorded, own...)
	default:
		l.recorded = append(l.recorded, own...)
	}
}
