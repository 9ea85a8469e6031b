package trans

import (
	"fmt"

	"erasec/internal/source"
	"erasec/internal/tree"
)

// InvariantErrorKind classifies broken input invariants.
type InvariantErrorKind uint8

const (
	// InvariantUnknownNode is a node kind the rewriter has no rule for.
	InvariantUnknownNode InvariantErrorKind = iota + 1
	// InvariantArity is a call whose arguments do not match the erased
	// parameter list.
	InvariantArity
	// InvariantMissingSymbol is a declaration or call without a resolved
	// symbol.
	InvariantMissingSymbol
	// InvariantAnnotation wraps an annotation position failure.
	InvariantAnnotation
)

// InvariantError reports an attributed tree the pass cannot translate.
// The rewriter raises it with panic; TranslateUnit recovers it.
type InvariantError struct {
	Kind InvariantErrorKind
	Node tree.Kind
	Span source.Span
	Msg  string
	Err  error // for InvariantAnnotation
}

func (e *InvariantError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case InvariantUnknownNode:
		return fmt.Sprintf("trans: no rule for %s at %s", e.Node, e.Span)
	case InvariantArity:
		return fmt.Sprintf("trans: argument mismatch in %s at %s: %s", e.Node, e.Span, e.Msg)
	case InvariantMissingSymbol:
		return fmt.Sprintf("trans: unresolved %s at %s", e.Node, e.Span)
	case InvariantAnnotation:
		return fmt.Sprintf("trans: %v", e.Err)
	default:
		return fmt.Sprintf("trans: invariant kind=%d at %s: %s", e.Kind, e.Span, e.Msg)
	}
}

func (e *InvariantError) Unwrap() error { return e.Err }

func invariant(kind InvariantErrorKind, n *tree.Node, msg string) {
	err := &InvariantError{Kind: kind, Msg: msg}
	if n != nil {
		err.Node = n.Kind
		err.Span = n.Span
	}
	panic(err)
}
