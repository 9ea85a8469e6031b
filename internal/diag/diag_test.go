package diag

import (
	"testing"

	"erasec/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("src/Box.java", []byte("a\nb\n"))

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     TransCastNotAccessible,
			Message:  "another",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     TransNameClashSameErasure,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes:    []Note{{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "note line"}},
		},
	}

	expected := "error TRN3401 src/Box.java:1:1 first line second\n" +
		"note TRN3401 src/Box.java:2:1 note line\n" +
		"warning TRN3403 src/Box.java:2:1 another"
	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagLimitAndDedup(t *testing.T) {
	bag := NewBag(2)
	r := NewDedupReporter(BagReporter{Bag: bag})
	span := source.Span{File: 1, Start: 1, End: 2}
	ReportError(r, TransNameClashNoOverride, span, "clash").Emit()
	ReportError(r, TransNameClashNoOverride, span, "clash").Emit()
	if bag.Len() != 1 {
		t.Fatalf("duplicate was not suppressed: %d", bag.Len())
	}
	b := ReportError(r, TransCastNotAccessible, span, "cast").WithNote(span, "here")
	b.Emit()
	b.Emit()
	if bag.Len() != 2 || !bag.HasErrors() {
		t.Fatalf("expected two errors, got %d", bag.Len())
	}
	if bag.Add(Diagnostic{Severity: SevError, Code: UnknownCode, Primary: span, Message: "over"}) {
		t.Fatalf("bag must respect its limit")
	}
	if got := bag.Items()[1].Notes; len(got) != 1 || got[0].Msg != "here" {
		t.Fatalf("notes lost: %+v", got)
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		TransNameClashSameErasure: "TRN3401",
		IOLoadUnitError:           "IO4001",
		CfgInvalidVersion:         "CFG5002",
		UnknownCode:               "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("%d.ID() = %s, want %s", code, got, want)
		}
	}
}
