package symbols

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"erasec/internal/source"
	"erasec/internal/types"
)

// TargetType classifies where a type annotation sits structurally.
type TargetType uint8

const (
	TargetUnknown TargetType = iota
	TargetTypecast
	TargetTypecastGenericOrArray
	TargetInstanceOf
	TargetInstanceOfGenericOrArray
	TargetNew
	TargetNewGenericOrArray
	TargetMethodReceiver
	TargetMethodReceiverGenericOrArray
	TargetLocalVariable
	TargetLocalVariableGenericOrArray
	TargetMethodReturn
	TargetMethodReturnGenericOrArray
	TargetMethodParameter
	TargetMethodParameterGenericOrArray
	TargetField
	TargetFieldGenericOrArray
	TargetClassTypeParameterBound
	TargetClassTypeParameterBoundGenericOrArray
	TargetMethodTypeParameterBound
	TargetMethodTypeParameterBoundGenericOrArray
	TargetClassExtends
	TargetClassExtendsGenericOrArray
	TargetThrows
	TargetMethodTypeArgument
	TargetMethodTypeArgumentGenericOrArray
	TargetWildcardBound
	TargetWildcardBoundGenericOrArray
	TargetClassLiteral
	TargetClassLiteralGenericOrArray
	TargetClassTypeParameter
	TargetMethodTypeParameter
)

var targetNames = [...]string{
	TargetUnknown:                                "unknown",
	TargetTypecast:                               "typecast",
	TargetTypecastGenericOrArray:                 "typecast-generic-or-array",
	TargetInstanceOf:                             "instanceof",
	TargetInstanceOfGenericOrArray:               "instanceof-generic-or-array",
	TargetNew:                                    "new",
	TargetNewGenericOrArray:                      "new-generic-or-array",
	TargetMethodReceiver:                         "method-receiver",
	TargetMethodReceiverGenericOrArray:           "method-receiver-generic-or-array",
	TargetLocalVariable:                          "local-variable",
	TargetLocalVariableGenericOrArray:            "local-variable-generic-or-array",
	TargetMethodReturn:                           "method-return",
	TargetMethodReturnGenericOrArray:             "method-return-generic-or-array",
	TargetMethodParameter:                        "method-parameter",
	TargetMethodParameterGenericOrArray:          "method-parameter-generic-or-array",
	TargetField:                                  "field",
	TargetFieldGenericOrArray:                    "field-generic-or-array",
	TargetClassTypeParameterBound:                "class-type-parameter-bound",
	TargetClassTypeParameterBoundGenericOrArray:  "class-type-parameter-bound-generic-or-array",
	TargetMethodTypeParameterBound:               "method-type-parameter-bound",
	TargetMethodTypeParameterBoundGenericOrArray: "method-type-parameter-bound-generic-or-array",
	TargetClassExtends:                           "class-extends",
	TargetClassExtendsGenericOrArray:             "class-extends-generic-or-array",
	TargetThrows:                                 "throws",
	TargetMethodTypeArgument:                     "method-type-argument",
	TargetMethodTypeArgumentGenericOrArray:       "method-type-argument-generic-or-array",
	TargetWildcardBound:                          "wildcard-bound",
	TargetWildcardBoundGenericOrArray:            "wildcard-bound-generic-or-array",
	TargetClassLiteral:                           "class-literal",
	TargetClassLiteralGenericOrArray:             "class-literal-generic-or-array",
	TargetClassTypeParameter:                     "class-type-parameter",
	TargetMethodTypeParameter:                    "method-type-parameter",
}

func (t TargetType) String() string {
	if int(t) < len(targetNames) && targetNames[t] != "" {
		return targetNames[t]
	}
	return fmt.Sprintf("TargetType(%d)", t)
}

// GenericComplement returns the generic-or-array variant of t. Kinds without
// a variant map to themselves.
func (t TargetType) GenericComplement() TargetType {
	switch t {
	case TargetTypecast, TargetInstanceOf, TargetNew, TargetMethodReceiver,
		TargetLocalVariable, TargetMethodReturn, TargetMethodParameter, TargetField,
		TargetClassTypeParameterBound, TargetMethodTypeParameterBound, TargetClassExtends,
		TargetMethodTypeArgument, TargetWildcardBound, TargetClassLiteral:
		return t + 1
	default:
		return t
	}
}

// IsGenericOrArray reports the promoted variants.
func (t TargetType) IsGenericOrArray() bool {
	switch t {
	case TargetTypecastGenericOrArray, TargetInstanceOfGenericOrArray, TargetNewGenericOrArray,
		TargetMethodReceiverGenericOrArray, TargetLocalVariableGenericOrArray,
		TargetMethodReturnGenericOrArray, TargetMethodParameterGenericOrArray,
		TargetFieldGenericOrArray, TargetClassTypeParameterBoundGenericOrArray,
		TargetMethodTypeParameterBoundGenericOrArray, TargetClassExtendsGenericOrArray,
		TargetMethodTypeArgumentGenericOrArray, TargetWildcardBoundGenericOrArray,
		TargetClassLiteralGenericOrArray:
		return true
	default:
		return false
	}
}

// NoIndex marks an unused index field.
const NoIndex = math.MinInt32

// TypeAnnotationPosition describes the structural target of a type
// annotation. A non-empty Location always comes with a generic-or-array
// target kind.
type TypeAnnotationPosition struct {
	Type           TargetType
	Pos            source.Span
	TypeIndex      int // -1 for the extends clause
	ParameterIndex int
	BoundIndex     int
	Location       []int
	Wildcard       *TypeAnnotationPosition
}

// NewPosition returns an unknown position with all indices unset.
func NewPosition() *TypeAnnotationPosition {
	return &TypeAnnotationPosition{
		TypeIndex:      NoIndex,
		ParameterIndex: NoIndex,
		BoundIndex:     NoIndex,
	}
}

// Resolved reports whether the resolver has classified the position.
func (p *TypeAnnotationPosition) Resolved() bool {
	return p != nil && p.Type != TargetUnknown
}

func (p *TypeAnnotationPosition) String() string {
	if p == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString(p.Type.String())
	writeIdx := func(name string, v int) {
		if v != NoIndex {
			sb.WriteString(" " + name + "=" + strconv.Itoa(v))
		}
	}
	writeIdx("type_index", p.TypeIndex)
	writeIdx("param_index", p.ParameterIndex)
	writeIdx("bound_index", p.BoundIndex)
	if len(p.Location) > 0 {
		parts := make([]string, len(p.Location))
		for i, l := range p.Location {
			parts[i] = strconv.Itoa(l)
		}
		sb.WriteString(" location=[" + strings.Join(parts, ",") + "]")
	}
	if p.Wildcard != nil {
		sb.WriteString(" wildcard={" + p.Wildcard.String() + "}")
	}
	return sb.String()
}

// Compound is an attributed annotation: its type and element values.
type Compound struct {
	Type types.TypeID
	Name string
	Args map[string]string
}

// TypeCompound is a type annotation together with its resolved position.
type TypeCompound struct {
	Compound
	Position *TypeAnnotationPosition
}
