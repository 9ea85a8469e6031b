package trans

import (
	"errors"
	"fmt"

	"erasec/internal/symbols"
	"erasec/internal/tree"
	"erasec/internal/types"
)

// CheckErased verifies that a translated tree carries no generic
// information:
// 1) no type applications, wildcards or type parameter declarations remain
// 2) every recorded node type is its own erasure
// The iterated expression of a for-each loop may keep its type when the
// erased type has no element type.
func CheckErased(root *tree.Node, syms *symbols.Table) error {
	if root == nil || syms == nil {
		return fmt.Errorf("nil tree or symbol table")
	}
	in := syms.Types
	var errs []error
	keep := make(map[*tree.Node]bool)
	tree.Inspect(root, func(n *tree.Node, _ []*tree.Node) bool {
		switch d := n.Data.(type) {
		case *tree.TypeApplyData, *tree.WildcardData, *tree.TypeParameterData:
			errs = append(errs, fmt.Errorf("%s at %s survived erasure", n.Kind, n.Span))
			return false
		case *tree.AnnotationData:
			return false
		case *tree.ClassDefData:
			if len(d.TypeParams) > 0 {
				errs = append(errs, fmt.Errorf("class %s keeps type parameters", d.Name))
			}
		case *tree.MethodDefData:
			if len(d.TypeParams) > 0 {
				errs = append(errs, fmt.Errorf("method %s keeps type parameters", d.Name))
			}
		case *tree.ForeachLoopData:
			if d.Expr != nil && in.ElemType(in.Erasure(d.Expr.Type)) == types.NoTypeID {
				keep[d.Expr] = true
			}
		}
		if n.Type != types.NoTypeID && !keep[n] && !in.IsErased(n.Type) {
			errs = append(errs, fmt.Errorf("%s at %s has generic type %s", n.Kind, n.Span, types.Label(in, n.Type)))
		}
		return true
	})
	return errors.Join(errs...)
}
