package unitfile

import (
	"errors"

	"erasec/internal/source"
	"erasec/internal/symbols"
	"erasec/internal/tree"
)

// SchemaVersion is bumped whenever the wire layout below changes.
const SchemaVersion uint16 = 1

// ErrSchemaMismatch is returned for files written with another layout.
var ErrSchemaMismatch = errors.New("unit schema mismatch")

// Bundle is the content of one unit file: attributed compilation units
// that share one symbol table.
type Bundle struct {
	Files  *source.FileSet
	Syms   *symbols.Table
	Units  []*tree.Node
	Erased bool // written after translation
}

// Wire layout. Trees are flattened into one node table in pre-order;
// children are referenced by index and -1 stands for nil. Types are stored
// in id order so that every component precedes the type using it.

type wireBundle struct {
	Schema    uint16
	Erased    bool
	Files     []wireFile
	Classes   []wireClass
	Types     []wireType
	Symbols   []wireSymbol
	Object    uint32
	Enum      uint32
	Positions []wirePosition
	Nodes     []wireNode
	Units     []int32
}

type wireFile struct {
	Path    string
	Content []byte
}

// wireClass mirrors types.ClassInfo for slots after Object.
type wireClass struct {
	Name       string
	Sym        uint32
	Interface  bool
	Params     []uint32
	Super      uint32
	Interfaces []uint32
}

type wireType struct {
	_msgpack struct{} `msgpack:",as_array"`

	Kind  uint8
	Elem  uint32
	Decl  uint32
	Bound uint8
	// class arguments, intersection components or method parameters
	Parts      []uint32
	Result     uint32
	Thrown     []uint32
	TypeParams []uint32
	// type variables
	Name    string
	Owner   uint32
	TVBound uint32
}

type wireSpan struct {
	_msgpack struct{} `msgpack:",as_array"`

	File, Start, End uint32
}

type wireCompound struct {
	Type uint32
	Name string
	Args map[string]string `msgpack:",omitempty"`
}

type wireTypeCompound struct {
	Compound wireCompound
	Position int32
}

type wireSymbol struct {
	Name            string
	Kind            uint8
	Flags           uint32
	Owner           uint32
	Type            uint32
	Span            wireSpan
	Package         string `msgpack:",omitempty"`
	Class           uint32
	Members         []uint32 `msgpack:",omitempty"`
	VarKind         uint8
	Const           bool
	Attributes      []wireCompound     `msgpack:",omitempty"`
	TypeAnnotations []wireTypeCompound `msgpack:",omitempty"`
}

type wirePosition struct {
	Type           uint8
	Pos            wireSpan
	TypeIndex      int32
	ParameterIndex int32
	BoundIndex     int32
	Location       []int32
	Wildcard       int32
}

type wireNode struct {
	_msgpack struct{} `msgpack:",as_array"`

	Kind  uint8
	Span  wireSpan
	Type  uint32
	Sym   uint32
	Strs  []string
	Kids  []int32
	Lists [][]int32
	// kind specific scalars: block static flag, varargs element, operator
	// type, constructor, wildcard bound, annotation flag
	Flag     bool
	Aux      []uint32
	Compound *wireCompound
	Position int32
}
