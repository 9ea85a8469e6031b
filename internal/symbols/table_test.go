package symbols

import (
	"testing"

	"erasec/internal/source"
	"erasec/internal/types"
)

type fixture struct {
	table          *Table
	str            SymbolID
	a, b           SymbolID
	aGet, bGet     SymbolID
	tv             types.TypeID
	stringType     types.TypeID
	objectType     types.TypeID
	aParameterized types.TypeID
}

// class A<T> { public T get() }  class B extends A<String> { public String get() }
func newFixture(t *testing.T) *fixture {
	t.Helper()
	table := NewTable(Hints{}, nil)
	f := &fixture{table: table}
	f.objectType = table.Types.Builtins().Object
	f.str = table.NewClass("String", "java.lang", FlagPublic|FlagFinal, NoSymbolID, source.NoSpan)
	f.stringType = table.Get(f.str).Type

	f.a = table.NewClass("A", "p", FlagPublic, NoSymbolID, source.NoSpan)
	f.tv = table.NewTypeVar("T", f.a)
	table.SetClassParams(f.a, []types.TypeID{f.tv})
	f.aGet = table.NewMethod("get", FlagPublic, f.a, table.Types.MethodType(nil, f.tv, nil, nil), source.NoSpan)

	f.b = table.NewClass("B", "p", FlagPublic, NoSymbolID, source.NoSpan)
	f.aParameterized = table.Types.ClassType(table.Get(f.a).Class, f.stringType)
	table.SetSupertypes(f.b, f.aParameterized, nil)
	f.bGet = table.NewMethod("get", FlagPublic, f.b, table.Types.MethodType(nil, f.stringType, nil, nil), source.NoSpan)

	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	return f
}

func TestRootClasses(t *testing.T) {
	table := NewTable(Hints{}, nil)
	obj := table.Get(table.Object())
	if obj == nil || obj.Type != table.Types.Builtins().Object {
		t.Fatalf("Object symbol not bound to builtin type")
	}
	if table.ClassSymbol(obj.Type) != table.Object() {
		t.Fatalf("Object type does not map back to its symbol")
	}
	enum := table.Get(table.Enum())
	if !table.Types.IsParameterized(enum.Type) {
		t.Fatalf("Enum must be generic, got %s", types.Label(table.Types, enum.Type))
	}
	if table.Superclass(table.Enum()) != table.Object() {
		t.Fatalf("Enum extends Object")
	}
}

func TestOverridesThroughSubstitution(t *testing.T) {
	f := newFixture(t)
	tb := f.table
	if !tb.Overrides(f.bGet, f.aGet, f.b, true) {
		t.Fatalf("B.get must override A.get")
	}
	if tb.BinaryOverrides(f.bGet, f.aGet, f.b) {
		t.Fatalf("B.get erases to ()String and cannot binary-override ()Object")
	}
	if impl := tb.Implementation(f.aGet, f.b); impl != f.bGet {
		t.Fatalf("implementation = %s, want B.get", tb.Name(impl))
	}
	if bin := tb.BinaryImplementation(f.aGet, f.b); bin != f.aGet {
		t.Fatalf("binary implementation = %d, want A.get", bin)
	}
	if got := tb.Erasure(f.aGet); tb.Types.Result(got) != f.objectType {
		t.Fatalf("erasure(A.get) = %s", types.Label(tb.Types, got))
	}
	member := tb.Types.Erasure(tb.MemberType(f.b, f.aGet))
	if tb.Types.Result(member) != f.stringType {
		t.Fatalf("A.get as member of B erases to %s", types.Label(tb.Types, member))
	}
}

func TestMembershipAndPackages(t *testing.T) {
	f := newFixture(t)
	tb := f.table
	hidden := tb.NewMethod("helper", 0, f.a, tb.Types.MethodType(nil, tb.Types.Builtins().Void, nil, nil), source.NoSpan)
	other := tb.NewClass("C", "q", FlagPublic, NoSymbolID, source.NoSpan)
	tb.SetSupertypes(other, f.aParameterized, nil)

	if !tb.IsMemberOf(f.aGet, f.b) || !tb.IsMemberOf(hidden, f.b) {
		t.Fatalf("members of A are inherited by B in the same package")
	}
	if tb.IsMemberOf(hidden, other) {
		t.Fatalf("package-private member leaked into another package")
	}
	if tb.IsOverridableIn(hidden, other) {
		t.Fatalf("package-private member is not overridable from another package")
	}
	if got := tb.MembersNamed(f.a, "get"); len(got) != 1 || got[0] != f.aGet {
		t.Fatalf("MembersNamed = %v", got)
	}
	if !tb.IsSubClass(f.b, f.a) || tb.IsSubClass(f.a, f.b) {
		t.Fatalf("subclass relation broken")
	}
}

func TestIsAccessible(t *testing.T) {
	f := newFixture(t)
	tb := f.table
	private := tb.NewClass("Secret", "p", FlagPrivate, f.a, source.NoSpan)
	pkg := tb.NewClass("Local", "p", 0, NoSymbolID, source.NoSpan)
	stranger := tb.NewClass("Stranger", "q", FlagPublic, NoSymbolID, source.NoSpan)

	if !tb.IsAccessible(stranger, f.stringType) {
		t.Fatalf("public class must be accessible")
	}
	if tb.IsAccessible(stranger, tb.Get(pkg).Type) || !tb.IsAccessible(f.b, tb.Get(pkg).Type) {
		t.Fatalf("package access broken")
	}
	if tb.IsAccessible(f.b, tb.Get(private).Type) || !tb.IsAccessible(f.a, tb.Get(private).Type) {
		t.Fatalf("private nested class access broken")
	}
	arr := tb.Types.Intern(types.MakeArray(tb.Get(pkg).Type))
	if tb.IsAccessible(stranger, arr) {
		t.Fatalf("array of inaccessible element must be inaccessible")
	}
}

func TestPositionComplement(t *testing.T) {
	pos := NewPosition()
	if pos.TypeIndex != NoIndex || pos.Resolved() {
		t.Fatalf("fresh position must be unresolved with unset indices")
	}
	if TargetField.GenericComplement() != TargetFieldGenericOrArray {
		t.Fatalf("field complement = %v", TargetField.GenericComplement())
	}
	if TargetThrows.GenericComplement() != TargetThrows {
		t.Fatalf("throws has no generic variant")
	}
	if !TargetWildcardBound.GenericComplement().IsGenericOrArray() {
		t.Fatalf("wildcard bound complement must be generic-or-array")
	}
	pos.Type = TargetFieldGenericOrArray
	pos.Location = []int{1}
	if got := pos.String(); got != "field-generic-or-array location=[1]" {
		t.Fatalf("String() = %q", got)
	}
}
