package tree

import (
	"bytes"
	"strings"
	"testing"

	"erasec/internal/source"
	"erasec/internal/symbols"
	"erasec/internal/types"
)

func TestMakerTypeTrees(t *testing.T) {
	syms := symbols.NewTable(symbols.Hints{}, nil)
	list := syms.NewClass("List", "java.util", symbols.FlagPublic|symbols.FlagInterface, symbols.NoSymbolID, source.NoSpan)
	e := syms.NewTypeVar("E", list)
	syms.SetClassParams(list, []types.TypeID{e})
	obj := syms.Types.Builtins().Object
	listOfArr := syms.Types.ClassType(syms.Get(list).Class, syms.Types.Intern(types.MakeArray(obj)))

	mk := NewMaker(syms)
	n := mk.Type(listOfArr)
	if n.Kind != KindTypeApply {
		t.Fatalf("kind = %v, want TypeApply", n.Kind)
	}
	if got := String(n, syms); got != "List<Object[]>" {
		t.Fatalf("rendered %q", got)
	}
	clazz := n.Data.(*TypeApplyData).Clazz
	if clazz.Sym != list || syms.Types.IsParameterized(clazz.Type) {
		t.Fatalf("class tree must reference the raw List symbol")
	}
	if tv := mk.Type(e); tv.Kind != KindIdent || tv.Sym != syms.TypeVarSymbol(e) {
		t.Fatalf("type variable tree = %v sym %d", tv.Kind, tv.Sym)
	}
}

func TestPrintAlignsTypeNotes(t *testing.T) {
	syms := symbols.NewTable(symbols.Hints{}, nil)
	b := syms.Types.Builtins()
	cls := syms.NewClass("Cell", "p", symbols.FlagPublic, symbols.NoSymbolID, source.NoSpan)
	field := syms.NewVar("value", symbols.VarField, 0, cls, b.Object, source.NoSpan)
	getter := syms.NewMethod("get", symbols.FlagPublic, cls, syms.Types.MethodType(nil, b.Object, nil, nil), source.NoSpan)

	mk := NewMaker(syms)
	fieldDef := &Node{Kind: KindVarDef, Type: b.Object, Sym: field, Data: &VarDefData{Name: "value", VarType: mk.Type(b.Object)}}
	method := mk.MethodDef(getter, mk.Block(mk.Return(mk.Ident(field))))
	classDef := &Node{Kind: KindClassDef, Sym: cls, Type: syms.Get(cls).Type, Data: &ClassDefData{Name: "Cell", Defs: []*Node{fieldDef, method}}}

	var buf bytes.Buffer
	if err := Print(&buf, classDef, syms, PrintOptions{ShowTypes: true}); err != nil {
		t.Fatalf("print: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "public class Cell {" {
		t.Fatalf("header = %q", lines[0])
	}
	col := -1
	for _, l := range lines {
		if i := strings.Index(l, "//"); i >= 0 {
			if col >= 0 && i != col {
				t.Fatalf("notes are not aligned:\n%s", buf.String())
			}
			col = i
		}
	}
	if col < 0 || !strings.Contains(buf.String(), "return value;") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestInspectPath(t *testing.T) {
	syms := symbols.NewTable(symbols.Hints{}, nil)
	mk := NewMaker(syms)
	lit := &Node{Kind: KindLiteral, Type: syms.Types.Builtins().Int, Data: &LiteralData{Value: "1"}}
	root := mk.Block(mk.Exec(&Node{Kind: KindParens, Data: &ParensData{Expr: lit}}))
	var depth int
	Inspect(root, func(n *Node, path []*Node) bool {
		if n == lit {
			depth = len(path)
		}
		return true
	})
	if depth != 3 {
		t.Fatalf("literal path depth = %d, want 3", depth)
	}
}
