package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"erasec/internal/pipeline"
)

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestPrintStageTimings(t *testing.T) {
	var timings pipeline.Timings
	timings.Add(pipeline.StageLoad, 2*time.Millisecond)
	timings.Add(pipeline.StageTranslate, 1500*time.Microsecond)

	var buf bytes.Buffer
	if err := printStageTimings(&buf, timings); err != nil {
		t.Fatalf("print: %v", err)
	}
	want := "loaded 2.0 ms\nerased 1.5 ms\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWatchSetMatchesInputs(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.mp")
	ws, err := newWatchSet([]string{a, filepath.Join(dir, "b.mp")})
	if err != nil {
		t.Fatalf("newWatchSet: %v", err)
	}
	if len(ws.dirs) != 1 || ws.dirs[0] != dir {
		t.Fatalf("dirs = %v", ws.dirs)
	}
	if arg, ok := ws.match(fsnotify.Event{Name: a, Op: fsnotify.Create}); !ok || arg != a {
		t.Errorf("create of a.mp: %q %v", arg, ok)
	}
	if _, ok := ws.match(fsnotify.Event{Name: a, Op: fsnotify.Chmod}); ok {
		t.Error("chmod should be ignored")
	}
	if _, ok := ws.match(fsnotify.Event{Name: filepath.Join(dir, "a.erased.mp"), Op: fsnotify.Write}); ok {
		t.Error("outputs should be ignored")
	}
}

func TestVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, versionPayload{Tool: "erasec", Version: "1.0.0", Schema: 1}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), `"unit_schema": 1`) {
		t.Errorf("unexpected payload %s", buf.String())
	}
}
