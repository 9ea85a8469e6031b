package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"erasec/internal/diag"
	"erasec/internal/source"
)

const clashSource = "class A {\n  List<String> m() {}\n  List<Integer> m() {}\n}\n"

func clashBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.Add("/home/user/project/src/A.java", []byte(clashSource))
	bag := diag.NewBag(10)
	// "m" во второй строке: смещение 10 + 15
	first := source.Span{File: id, Start: 25, End: 26}
	second := source.Span{File: id, Start: 48, End: 49}
	diag.ReportError(diag.BagReporter{Bag: bag}, diag.TransNameClashSameErasure, second,
		"name clash: m() and m() have the same erasure").
		WithNote(first, "other declaration").Emit()
	return bag, fs
}

func TestPrettyPrintsLocationAndMarker(t *testing.T) {
	bag, fs := clashBag(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true}); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), out)
	}
	if want := "A.java:3:17: ERROR TRN3401: name clash"; !strings.HasPrefix(lines[0], want) {
		t.Errorf("header: want prefix %q, got %q", want, lines[0])
	}
	if want := "    3 |   List<Integer> m() {}"; lines[1] != want {
		t.Errorf("excerpt: want %q, got %q", want, lines[1])
	}
	if idx := strings.Index(lines[2], "^"); idx != len("    3 | ")+16 {
		t.Errorf("marker at column %d:\n%s", idx, out)
	}
	if !strings.Contains(lines[3], "A.java:2:16: note: other declaration") {
		t.Errorf("note line: %q", lines[3])
	}
}

func TestPrettyHidesNotes(t *testing.T) {
	bag, fs := clashBag(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	if strings.Contains(buf.String(), "note:") {
		t.Errorf("notes printed without ShowNotes:\n%s", buf.String())
	}
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	bag, fs := clashBag(t)
	tests := []struct {
		name     string
		opts     PrettyOpts
		contains string
	}{
		{"Auto path", PrettyOpts{}, "/home/user/project/src/A.java:3:17"},
		{"Relative path", PrettyOpts{PathMode: PathModeRelative, BaseDir: "/home/user/project"}, "src/A.java:3:17"},
		{"Basename only", PrettyOpts{PathMode: PathModeBasename}, "A.java:3:17"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Pretty(&buf, bag, fs, tt.opts); err != nil {
				t.Fatalf("pretty: %v", err)
			}
			if !strings.HasPrefix(buf.String(), tt.contains) {
				t.Errorf("expected output to start with %q, got:\n%s", tt.contains, buf.String())
			}
		})
	}
}

func TestPrettyWithoutFiles(t *testing.T) {
	bag := diag.NewBag(10)
	diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadUnitError, source.NoSpan, "open x.mp: no such file").Emit()
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, nil, PrettyOpts{Color: true}); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "IO4001") || !strings.HasSuffix(out, ": open x.mp: no such file\n") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestJSONIncludesPositions(t *testing.T) {
	bag, fs := clashBag(t)
	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true, PathMode: PathModeBasename})
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("unexpected count: %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Code != "TRN3401" || d.Severity != "ERROR" {
		t.Errorf("unexpected header %+v", d)
	}
	if d.Location.File != "A.java" || d.Location.StartLine != 3 || d.Location.StartCol != 17 {
		t.Errorf("unexpected location %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.StartLine != 2 {
		t.Errorf("unexpected notes %+v", d.Notes)
	}
}

func TestParsePathMode(t *testing.T) {
	if m, ok := ParsePathMode("relative"); !ok || m != PathModeRelative {
		t.Errorf("relative: %v %v", m, ok)
	}
	if _, ok := ParsePathMode("weird"); ok {
		t.Error("weird path mode accepted")
	}
}
