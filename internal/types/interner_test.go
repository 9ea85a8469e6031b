package types

import "testing"

// box declares class Box<T extends Number> and class Number.
func box(in *Interner) (boxDecl ClassID, tv, number TypeID) {
	numDecl := in.RegisterClass("Number", 0, false)
	number = in.ClassType(numDecl)
	boxDecl = in.RegisterClass("Box", 0, false)
	tv = in.RegisterTypeVar("T", 0)
	in.SetTypeVarBound(tv, number)
	in.SetClassParams(boxDecl, []TypeID{tv})
	return boxDecl, tv, number
}

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Void == NoTypeID || b.Bool == NoTypeID || b.Object == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	if in.KindOf(b.Object) != KindClass {
		t.Fatalf("Object must be a class type, got %v", in.KindOf(b.Object))
	}
	if !in.IsPrimitive(b.Int) || in.IsReference(b.Int) {
		t.Fatalf("int classification broken")
	}
	if got := Label(in, b.Object); got != "Object" {
		t.Fatalf("root class label = %q, want simple name like other classes", got)
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner()
	decl, tv, number := box(in)
	a := in.ClassType(decl, number)
	b := in.ClassType(decl, number)
	if a != b {
		t.Fatalf("class types with equal arguments must be deduplicated")
	}
	if in.Intern(MakeArray(tv)) != in.Intern(MakeArray(tv)) {
		t.Fatalf("array types should be deduplicated")
	}
	m1 := in.MethodType([]TypeID{tv}, tv, nil, nil)
	m2 := in.MethodType([]TypeID{tv}, tv, nil, nil)
	if m1 != m2 {
		t.Fatalf("method types should be deduplicated")
	}
	if in.RegisterTypeVar("T", 0) == tv {
		t.Fatalf("type variables are nominal")
	}
}

func TestErasure(t *testing.T) {
	in := NewInterner()
	decl, tv, number := box(in)
	raw := in.ClassType(decl)
	cases := []struct {
		name string
		in   TypeID
		want TypeID
	}{
		{"typevar", tv, number},
		{"parameterized", in.ClassType(decl, number), raw},
		{"array of typevar", in.Intern(MakeArray(tv)), in.Intern(MakeArray(number))},
		{"wildcard extends", in.Intern(MakeWildcard(BoundExtends, tv)), number},
		{"wildcard super", in.Intern(MakeWildcard(BoundSuper, tv)), in.Builtins().Object},
		{"intersection", in.Intersection(tv, in.Builtins().Object), number},
		{"primitive", in.Builtins().Int, in.Builtins().Int},
		{"method", in.MethodType([]TypeID{tv}, in.ClassType(decl, tv), nil, []TypeID{tv}),
			in.MethodType([]TypeID{number}, raw, nil, nil)},
	}
	for _, tc := range cases {
		got := in.Erasure(tc.in)
		if got != tc.want {
			t.Fatalf("%s: erasure(%s) = %s, want %s", tc.name, Label(in, tc.in), Label(in, got), Label(in, tc.want))
		}
		if again := in.Erasure(got); again != got {
			t.Fatalf("%s: erasure is not idempotent: %s", tc.name, Label(in, again))
		}
	}
}

func TestSupertypeSubstitution(t *testing.T) {
	in := NewInterner()
	boxDecl, tv, number := box(in)
	// class IntBox extends Box<Number>
	intBox := in.RegisterClass("IntBox", 0, false)
	in.SetSupertypes(intBox, in.ClassType(boxDecl, number), nil)
	st := in.Supertype(in.ClassType(intBox))
	if st != in.ClassType(boxDecl, number) {
		t.Fatalf("supertype = %s", Label(in, st))
	}
	if got := in.MemberType(in.ClassType(intBox), boxDecl, tv); got != number {
		t.Fatalf("member type = %s, want Number", Label(in, got))
	}
	if in.Supertype(in.Builtins().Object) != NoTypeID {
		t.Fatalf("Object has no supertype")
	}
}

func TestRawViewErasesMembers(t *testing.T) {
	in := NewInterner()
	boxDecl, tv, number := box(in)
	list := in.RegisterClass("List", 0, true)
	e := in.RegisterTypeVar("E", 0)
	in.SetClassParams(list, []TypeID{e})
	in.SetSupertypes(boxDecl, NoTypeID, []TypeID{in.ClassType(list, tv)})
	raw := in.ClassType(boxDecl)
	ifaces := in.Interfaces(raw)
	if len(ifaces) != 1 || ifaces[0] != in.ClassType(list) {
		t.Fatalf("raw interfaces = %v", ifaces)
	}
	mt := in.MethodType(nil, e, nil, nil)
	if got := in.MemberType(in.ClassType(boxDecl, number), list, mt); in.Result(got) != number {
		t.Fatalf("member type through Box<Number> = %s", Label(in, got))
	}
	if got := in.MemberType(raw, list, mt); in.Result(got) != in.Builtins().Object {
		t.Fatalf("member type through raw Box = %s", Label(in, got))
	}
}

func TestSubtypingAndAssignability(t *testing.T) {
	in := NewInterner()
	boxDecl, _, number := box(in)
	b := in.Builtins()
	integer := in.RegisterClass("Integer", 0, false)
	in.SetSupertypes(integer, number, nil)
	intT := in.ClassType(integer)

	if !in.IsSubtype(intT, number) || in.IsSubtype(number, intT) {
		t.Fatalf("class subtyping broken")
	}
	if !in.IsSubtype(b.Null, intT) {
		t.Fatalf("null is a subtype of every reference")
	}
	boxInt := in.ClassType(boxDecl, intT)
	boxExt := in.ClassType(boxDecl, in.Intern(MakeWildcard(BoundExtends, number)))
	if !in.IsSubtype(boxInt, boxExt) {
		t.Fatalf("Box<Integer> <: Box<? extends Number>")
	}
	if in.IsSubtype(boxInt, in.ClassType(boxDecl, number)) {
		t.Fatalf("generics are invariant")
	}
	raw := in.ClassType(boxDecl)
	if in.IsSubtype(raw, boxInt) || !in.IsAssignable(raw, boxInt) {
		t.Fatalf("raw to parameterized needs unchecked conversion")
	}
	if !in.IsAssignable(b.Int, b.Long) || in.IsAssignable(b.Long, b.Int) {
		t.Fatalf("primitive widening broken")
	}
	if !in.IsSubtype(in.Intern(MakeArray(intT)), b.Object) {
		t.Fatalf("arrays are objects")
	}
}

func TestLabel(t *testing.T) {
	in := NewInterner()
	decl, tv, _ := box(in)
	got := Label(in, in.ClassType(decl, in.Intern(MakeArray(tv))))
	if got != "Box<T[]>" {
		t.Fatalf("label = %q", got)
	}
}
