package unitfile

import (
	"fmt"

	"erasec/internal/tree"
)

// shape exposes the string fields and child slots of a payload so that one
// table drives both encoding and decoding.
type shape struct {
	strs  []*string
	kids  []**tree.Node
	lists []*[]*tree.Node
}

func shapeOf(d tree.Data) shape {
	switch d := d.(type) {
	case *tree.TopLevelData:
		return shape{strs: []*string{&d.Package, &d.File}, lists: []*[]*tree.Node{&d.Defs}}
	case *tree.ClassDefData:
		return shape{
			strs:  []*string{&d.Name},
			kids:  []**tree.Node{&d.Extends},
			lists: []*[]*tree.Node{&d.Annotations, &d.TypeParams, &d.Implements, &d.Defs},
		}
	case *tree.MethodDefData:
		return shape{
			strs:  []*string{&d.Name},
			kids:  []**tree.Node{&d.ResType, &d.Receiver, &d.Body},
			lists: []*[]*tree.Node{&d.Annotations, &d.TypeParams, &d.Params, &d.Thrown},
		}
	case *tree.VarDefData:
		return shape{strs: []*string{&d.Name}, kids: []**tree.Node{&d.VarType, &d.Init}, lists: []*[]*tree.Node{&d.Annotations}}
	case *tree.TypeParameterData:
		return shape{strs: []*string{&d.Name}, lists: []*[]*tree.Node{&d.Annotations, &d.Bounds}}
	case *tree.BlockData:
		return shape{lists: []*[]*tree.Node{&d.Stats}}
	case *tree.DoLoopData:
		return shape{kids: []**tree.Node{&d.Body, &d.Cond}}
	case *tree.WhileLoopData:
		return shape{kids: []**tree.Node{&d.Cond, &d.Body}}
	case *tree.ForLoopData:
		return shape{kids: []**tree.Node{&d.Cond, &d.Body}, lists: []*[]*tree.Node{&d.Init, &d.Step}}
	case *tree.ForeachLoopData:
		return shape{kids: []**tree.Node{&d.Var, &d.Expr, &d.Body}}
	case *tree.LabelledData:
		return shape{strs: []*string{&d.Label}, kids: []**tree.Node{&d.Body}}
	case *tree.SwitchData:
		return shape{kids: []**tree.Node{&d.Selector}, lists: []*[]*tree.Node{&d.Cases}}
	case *tree.CaseData:
		return shape{kids: []**tree.Node{&d.Pat}, lists: []*[]*tree.Node{&d.Stats}}
	case *tree.SynchronizedData:
		return shape{kids: []**tree.Node{&d.Lock, &d.Body}}
	case *tree.TryData:
		return shape{kids: []**tree.Node{&d.Body, &d.Finally}, lists: []*[]*tree.Node{&d.Catches}}
	case *tree.CatchData:
		return shape{kids: []**tree.Node{&d.Param, &d.Body}}
	case *tree.IfData:
		return shape{kids: []**tree.Node{&d.Cond, &d.Then, &d.Else}}
	case *tree.ExecData:
		return shape{kids: []**tree.Node{&d.Expr}}
	case *tree.JumpData:
		return shape{strs: []*string{&d.Label}}
	case *tree.ReturnData:
		return shape{kids: []**tree.Node{&d.Expr}}
	case *tree.ThrowData:
		return shape{kids: []**tree.Node{&d.Expr}}
	case *tree.AssertData:
		return shape{kids: []**tree.Node{&d.Cond, &d.Detail}}
	case *tree.ConditionalData:
		return shape{kids: []**tree.Node{&d.Cond, &d.Then, &d.Else}}
	case *tree.ApplyData:
		return shape{kids: []**tree.Node{&d.Meth}, lists: []*[]*tree.Node{&d.TypeArgs, &d.Args}}
	case *tree.NewClassData:
		return shape{kids: []**tree.Node{&d.Encl, &d.Clazz, &d.Def}, lists: []*[]*tree.Node{&d.TypeArgs, &d.Args}}
	case *tree.NewArrayData:
		// DimAnnotations are appended by the codec
		return shape{kids: []**tree.Node{&d.ElemType}, lists: []*[]*tree.Node{&d.Dims, &d.Elems, &d.Annotations}}
	case *tree.ParensData:
		return shape{kids: []**tree.Node{&d.Expr}}
	case *tree.AssignData:
		return shape{kids: []**tree.Node{&d.LHS, &d.RHS}}
	case *tree.OperatorData:
		return shape{strs: []*string{&d.Op}, kids: []**tree.Node{&d.LHS, &d.RHS}}
	case *tree.TypeCastData:
		return shape{kids: []**tree.Node{&d.Clazz, &d.Expr}}
	case *tree.TypeTestData:
		return shape{kids: []**tree.Node{&d.Expr, &d.Clazz}}
	case *tree.IndexedData:
		return shape{kids: []**tree.Node{&d.Indexed, &d.Index}}
	case *tree.SelectData:
		return shape{strs: []*string{&d.Name}, kids: []**tree.Node{&d.Selected}}
	case *tree.IdentData:
		return shape{strs: []*string{&d.Name}}
	case *tree.LiteralData:
		return shape{strs: []*string{&d.Value}}
	case *tree.TypeArrayData:
		return shape{kids: []**tree.Node{&d.Elem}}
	case *tree.TypeApplyData:
		return shape{kids: []**tree.Node{&d.Clazz}, lists: []*[]*tree.Node{&d.Args}}
	case *tree.WildcardData:
		return shape{kids: []**tree.Node{&d.Inner}}
	case *tree.AnnotatedTypeData:
		return shape{kids: []**tree.Node{&d.Underlying}, lists: []*[]*tree.Node{&d.Annotations}}
	case *tree.AnnotationData:
		return shape{kids: []**tree.Node{&d.AnnotationType}, lists: []*[]*tree.Node{&d.Args}}
	}
	return shape{}
}

// newData allocates the empty payload of kind k. Skip has none.
func newData(k tree.Kind) (tree.Data, error) {
	switch k {
	case tree.KindTopLevel:
		return &tree.TopLevelData{}, nil
	case tree.KindClassDef:
		return &tree.ClassDefData{}, nil
	case tree.KindMethodDef:
		return &tree.MethodDefData{}, nil
	case tree.KindVarDef:
		return &tree.VarDefData{}, nil
	case tree.KindTypeParameter:
		return &tree.TypeParameterData{}, nil
	case tree.KindBlock:
		return &tree.BlockData{}, nil
	case tree.KindDoLoop:
		return &tree.DoLoopData{}, nil
	case tree.KindWhileLoop:
		return &tree.WhileLoopData{}, nil
	case tree.KindForLoop:
		return &tree.ForLoopData{}, nil
	case tree.KindForeachLoop:
		return &tree.ForeachLoopData{}, nil
	case tree.KindLabelled:
		return &tree.LabelledData{}, nil
	case tree.KindSwitch:
		return &tree.SwitchData{}, nil
	case tree.KindCase:
		return &tree.CaseData{}, nil
	case tree.KindSynchronized:
		return &tree.SynchronizedData{}, nil
	case tree.KindTry:
		return &tree.TryData{}, nil
	case tree.KindCatch:
		return &tree.CatchData{}, nil
	case tree.KindIf:
		return &tree.IfData{}, nil
	case tree.KindExec:
		return &tree.ExecData{}, nil
	case tree.KindBreak, tree.KindContinue:
		return &tree.JumpData{}, nil
	case tree.KindReturn:
		return &tree.ReturnData{}, nil
	case tree.KindThrow:
		return &tree.ThrowData{}, nil
	case tree.KindAssert:
		return &tree.AssertData{}, nil
	case tree.KindSkip:
		return nil, nil
	case tree.KindConditional:
		return &tree.ConditionalData{}, nil
	case tree.KindApply:
		return &tree.ApplyData{}, nil
	case tree.KindNewClass:
		return &tree.NewClassData{}, nil
	case tree.KindNewArray:
		return &tree.NewArrayData{}, nil
	case tree.KindParens:
		return &tree.ParensData{}, nil
	case tree.KindAssign:
		return &tree.AssignData{}, nil
	case tree.KindAssignOp, tree.KindUnary, tree.KindBinary:
		return &tree.OperatorData{}, nil
	case tree.KindTypeCast:
		return &tree.TypeCastData{}, nil
	case tree.KindTypeTest:
		return &tree.TypeTestData{}, nil
	case tree.KindIndexed:
		return &tree.IndexedData{}, nil
	case tree.KindSelect:
		return &tree.SelectData{}, nil
	case tree.KindIdent:
		return &tree.IdentData{}, nil
	case tree.KindLiteral:
		return &tree.LiteralData{}, nil
	case tree.KindPrimitiveType:
		return &tree.PrimitiveTypeData{}, nil
	case tree.KindTypeArray:
		return &tree.TypeArrayData{}, nil
	case tree.KindTypeApply:
		return &tree.TypeApplyData{}, nil
	case tree.KindWildcard:
		return &tree.WildcardData{}, nil
	case tree.KindAnnotatedType:
		return &tree.AnnotatedTypeData{}, nil
	case tree.KindAnnotation:
		return &tree.AnnotationData{}, nil
	}
	return nil, fmt.Errorf("unknown node kind %d", k)
}
