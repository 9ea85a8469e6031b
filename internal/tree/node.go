package tree

import (
	"erasec/internal/source"
	"erasec/internal/symbols"
	"erasec/internal/types"
)

// Kind enumerates attributed tree node kinds.
type Kind uint8

const (
	KindInvalid Kind = iota

	// declarations
	KindTopLevel
	KindClassDef
	KindMethodDef
	KindVarDef
	KindTypeParameter

	// statements
	KindBlock
	KindDoLoop
	KindWhileLoop
	KindForLoop
	KindForeachLoop
	KindLabelled
	KindSwitch
	KindCase
	KindSynchronized
	KindTry
	KindCatch
	KindIf
	KindExec
	KindBreak
	KindContinue
	KindReturn
	KindThrow
	KindAssert
	KindSkip

	// expressions
	KindConditional
	KindApply
	KindNewClass
	KindNewArray
	KindParens
	KindAssign
	KindAssignOp
	KindUnary
	KindBinary
	KindTypeCast
	KindTypeTest
	KindIndexed
	KindSelect
	KindIdent
	KindLiteral

	// type trees
	KindPrimitiveType
	KindTypeArray
	KindTypeApply
	KindWildcard
	KindAnnotatedType
	KindAnnotation
)

var kindNames = [...]string{
	KindInvalid:       "Invalid",
	KindTopLevel:      "TopLevel",
	KindClassDef:      "ClassDef",
	KindMethodDef:     "MethodDef",
	KindVarDef:        "VarDef",
	KindTypeParameter: "TypeParameter",
	KindBlock:         "Block",
	KindDoLoop:        "DoLoop",
	KindWhileLoop:     "WhileLoop",
	KindForLoop:       "ForLoop",
	KindForeachLoop:   "ForeachLoop",
	KindLabelled:      "Labelled",
	KindSwitch:        "Switch",
	KindCase:          "Case",
	KindSynchronized:  "Synchronized",
	KindTry:           "Try",
	KindCatch:         "Catch",
	KindIf:            "If",
	KindExec:          "Exec",
	KindBreak:         "Break",
	KindContinue:      "Continue",
	KindReturn:        "Return",
	KindThrow:         "Throw",
	KindAssert:        "Assert",
	KindSkip:          "Skip",
	KindConditional:   "Conditional",
	KindApply:         "Apply",
	KindNewClass:      "NewClass",
	KindNewArray:      "NewArray",
	KindParens:        "Parens",
	KindAssign:        "Assign",
	KindAssignOp:      "AssignOp",
	KindUnary:         "Unary",
	KindBinary:        "Binary",
	KindTypeCast:      "TypeCast",
	KindTypeTest:      "TypeTest",
	KindIndexed:       "Indexed",
	KindSelect:        "Select",
	KindIdent:         "Ident",
	KindLiteral:       "Literal",
	KindPrimitiveType: "PrimitiveType",
	KindTypeArray:     "TypeArray",
	KindTypeApply:     "TypeApply",
	KindWildcard:      "Wildcard",
	KindAnnotatedType: "AnnotatedType",
	KindAnnotation:    "Annotation",
}

// String returns a human-readable name for the node kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// IsExpr reports expression kinds.
func (k Kind) IsExpr() bool { return k >= KindConditional && k <= KindLiteral }

// IsTypeTree reports kinds that only appear in type position.
func (k Kind) IsTypeTree() bool { return k >= KindPrimitiveType && k <= KindAnnotation }

// Node is one attributed tree node.
type Node struct {
	Kind Kind
	Span source.Span
	Type types.TypeID     // resolved type, erased after translation
	Sym  symbols.SymbolID // resolved symbol where the kind has one
	Data Data             // kind-specific payload, always a pointer
}

// Data is the interface for kind-specific payloads.
type Data interface {
	nodeData()
}

// Declarations ---------------------------------------------------------------

// TopLevelData holds data for KindTopLevel.
type TopLevelData struct {
	Package string
	File    string
	Defs    []*Node
}

func (*TopLevelData) nodeData() {}

// ClassDefData holds data for KindClassDef. Sym is the class.
type ClassDefData struct {
	Name        string
	Annotations []*Node // declaration annotations
	TypeParams  []*Node
	Extends     *Node
	Implements  []*Node
	Defs        []*Node
}

func (*ClassDefData) nodeData() {}

// MethodDefData holds data for KindMethodDef. Sym is the method.
type MethodDefData struct {
	Name        string
	Annotations []*Node
	TypeParams  []*Node
	ResType     *Node // nil for constructors
	Receiver    *Node // explicit receiver parameter, may be nil
	Params      []*Node
	Thrown      []*Node
	Body        *Node // nil for abstract methods
}

func (*MethodDefData) nodeData() {}

// VarDefData holds data for KindVarDef. Sym is the variable.
type VarDefData struct {
	Name        string
	Annotations []*Node
	VarType     *Node
	Init        *Node
}

func (*VarDefData) nodeData() {}

// TypeParameterData holds data for KindTypeParameter. Type is the type var.
type TypeParameterData struct {
	Name        string
	Annotations []*Node
	Bounds      []*Node
}

func (*TypeParameterData) nodeData() {}

// Statements -----------------------------------------------------------------

type BlockData struct {
	Static bool
	Stats  []*Node
}

func (*BlockData) nodeData() {}

type DoLoopData struct {
	Body *Node
	Cond *Node
}

func (*DoLoopData) nodeData() {}

type WhileLoopData struct {
	Cond *Node
	Body *Node
}

func (*WhileLoopData) nodeData() {}

type ForLoopData struct {
	Init []*Node
	Cond *Node // may be nil
	Step []*Node
	Body *Node
}

func (*ForLoopData) nodeData() {}

type ForeachLoopData struct {
	Var  *Node
	Expr *Node
	Body *Node
}

func (*ForeachLoopData) nodeData() {}

type LabelledData struct {
	Label string
	Body  *Node
}

func (*LabelledData) nodeData() {}

type SwitchData struct {
	Selector *Node
	Cases    []*Node
}

func (*SwitchData) nodeData() {}

// CaseData holds one switch arm; Pat is nil for default.
type CaseData struct {
	Pat   *Node
	Stats []*Node
}

func (*CaseData) nodeData() {}

type SynchronizedData struct {
	Lock *Node
	Body *Node
}

func (*SynchronizedData) nodeData() {}

type TryData struct {
	Body    *Node
	Catches []*Node
	Finally *Node
}

func (*TryData) nodeData() {}

type CatchData struct {
	Param *Node // VarDef of an exception parameter
	Body  *Node
}

func (*CatchData) nodeData() {}

type IfData struct {
	Cond *Node
	Then *Node
	Else *Node
}

func (*IfData) nodeData() {}

type ExecData struct {
	Expr *Node
}

func (*ExecData) nodeData() {}

// JumpData holds data for KindBreak and KindContinue.
type JumpData struct {
	Label string
}

func (*JumpData) nodeData() {}

type ReturnData struct {
	Expr *Node // nil in void methods
}

func (*ReturnData) nodeData() {}

type ThrowData struct {
	Expr *Node
}

func (*ThrowData) nodeData() {}

type AssertData struct {
	Cond   *Node
	Detail *Node
}

func (*AssertData) nodeData() {}

// Expressions ----------------------------------------------------------------

type ConditionalData struct {
	Cond *Node
	Then *Node
	Else *Node
}

func (*ConditionalData) nodeData() {}

// ApplyData holds a method call. The resolved method is Meth.Sym.
// VarargsElement is set when the call passes variable arity arguments.
type ApplyData struct {
	TypeArgs       []*Node
	Meth           *Node
	Args           []*Node
	VarargsElement types.TypeID
}

func (*ApplyData) nodeData() {}

// NewClassData holds an instance creation; Def is an anonymous class body.
type NewClassData struct {
	Encl           *Node
	TypeArgs       []*Node
	Clazz          *Node
	Args           []*Node
	Def            *Node
	Constructor    symbols.SymbolID
	VarargsElement types.TypeID
}

func (*NewClassData) nodeData() {}

// NewArrayData holds an array creation. DimAnnotations[i] annotates the
// i-th dimension; Annotations annotate the element type.
type NewArrayData struct {
	ElemType       *Node // nil for bare initializers
	Dims           []*Node
	Elems          []*Node
	Annotations    []*Node
	DimAnnotations [][]*Node
}

func (*NewArrayData) nodeData() {}

type ParensData struct {
	Expr *Node
}

func (*ParensData) nodeData() {}

type AssignData struct {
	LHS *Node
	RHS *Node
}

func (*AssignData) nodeData() {}

// OperatorData holds data for KindAssignOp, KindUnary and KindBinary.
// Operator is the method type of the resolved operator; RHS is nil for
// unary operators.
type OperatorData struct {
	Op       string
	LHS      *Node
	RHS      *Node
	Operator types.TypeID
}

func (*OperatorData) nodeData() {}

type TypeCastData struct {
	Clazz *Node
	Expr  *Node
}

func (*TypeCastData) nodeData() {}

type TypeTestData struct {
	Expr  *Node
	Clazz *Node
}

func (*TypeTestData) nodeData() {}

type IndexedData struct {
	Indexed *Node
	Index   *Node
}

func (*IndexedData) nodeData() {}

// SelectData holds a member select; Sym is the selected member.
type SelectData struct {
	Selected *Node
	Name     string
}

func (*SelectData) nodeData() {}

// IdentData holds a simple name; Sym is the resolved entity.
type IdentData struct {
	Name string
}

func (*IdentData) nodeData() {}

type LiteralData struct {
	Value string
}

func (*LiteralData) nodeData() {}

// Type trees -----------------------------------------------------------------

// PrimitiveTypeData carries nothing: the kind is in Node.Type.
type PrimitiveTypeData struct{}

func (*PrimitiveTypeData) nodeData() {}

type TypeArrayData struct {
	Elem *Node
}

func (*TypeArrayData) nodeData() {}

type TypeApplyData struct {
	Clazz *Node
	Args  []*Node
}

func (*TypeApplyData) nodeData() {}

type WildcardData struct {
	Bound types.BoundKind
	Inner *Node // nil for "?"
}

func (*WildcardData) nodeData() {}

type AnnotatedTypeData struct {
	Annotations []*Node
	Underlying  *Node
}

func (*AnnotatedTypeData) nodeData() {}

// AnnotationData holds an annotation use. Position is filled by the
// position resolver for type annotations.
type AnnotationData struct {
	AnnotationType *Node
	Args           []*Node
	TypeAnnotation bool
	Compound       symbols.Compound
	Position       *symbols.TypeAnnotationPosition
}

func (*AnnotationData) nodeData() {}
