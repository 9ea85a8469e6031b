package source

import "testing"

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("a/b/../Box.java", []byte("class Box {\n  T get();\n}\n"))
	if got, ok := fs.Lookup("a/Box.java"); !ok || got != id {
		t.Fatalf("lookup by cleaned path failed: %v %v", got, ok)
	}
	start, end := fs.Resolve(Span{File: id, Start: 14, End: 17})
	if start.Line != 2 || start.Col != 3 {
		t.Fatalf("start = %+v, want 2:3", start)
	}
	if end.Line != 2 || end.Col != 6 {
		t.Fatalf("end = %+v, want 2:6", end)
	}
	if line := fs.Get(id).Line(2); line != "  T get();" {
		t.Fatalf("line 2 = %q", line)
	}
}

func TestResolveFirstAndUnknown(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("x", []byte("ab\ncd"))
	start, _ := fs.Resolve(Span{File: id, Start: 0, End: 1})
	if start != (LineCol{Line: 1, Col: 1}) {
		t.Fatalf("offset 0 -> %+v", start)
	}
	start, _ = fs.Resolve(Span{File: id, Start: 2, End: 2})
	if start != (LineCol{Line: 1, Col: 3}) {
		t.Fatalf("newline offset -> %+v", start)
	}
	start, _ = fs.Resolve(Span{File: id, Start: 3, End: 3})
	if start != (LineCol{Line: 2, Col: 1}) {
		t.Fatalf("offset after newline -> %+v", start)
	}
	start, _ = fs.Resolve(Span{File: 9, Start: 4, End: 5})
	if start != (LineCol{Line: 1, Col: 5}) {
		t.Fatalf("unknown file -> %+v", start)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 12}
	if got := a.Cover(b); got != (Span{File: 1, Start: 5, End: 20}) {
		t.Fatalf("cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Fatalf("cross-file cover changed span: %v", got)
	}
	if !a.Contains(Span{File: 1, Start: 11, End: 20}) {
		t.Fatalf("expected containment")
	}
}
