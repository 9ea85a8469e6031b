package annot

import (
	"fmt"

	"erasec/internal/source"
	"erasec/internal/tree"
)

// InvariantError reports an annotated tree whose ancestor chain matches no
// known shape. It is raised with panic inside the scanners and returned as
// an error from Positions and Lift.
type InvariantError struct {
	Node  tree.Kind
	Frame tree.Kind
	Span  source.Span
	Msg   string
}

func (e *InvariantError) Error() string {
	if e.Frame == tree.KindInvalid {
		return fmt.Sprintf("annot: %s at %s: %s", e.Node, e.Span, e.Msg)
	}
	return fmt.Sprintf("annot: %s inside %s at %s: %s", e.Node, e.Frame, e.Span, e.Msg)
}

func fail(n, frame *tree.Node, msg string) {
	err := &InvariantError{Msg: msg}
	if n != nil {
		err.Node = n.Kind
		err.Span = n.Span
	}
	if frame != nil {
		err.Frame = frame.Kind
	}
	panic(err)
}

// catch converts an InvariantError panic into an error. Other panics pass
// through.
func catch(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if ie, ok := r.(*InvariantError); ok {
		*errp = ie
		return
	}
	panic(r)
}
