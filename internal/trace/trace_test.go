package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelPhase, ScopeUnit, true},
		{LevelPhase, ScopeClass, false},
		{LevelDetail, ScopeClass, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
		{LevelOff, ScopeDriver, false},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Fatalf("%v.ShouldEmit(%v) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if l, err := ParseLevel("DEBUG"); err != nil || l != LevelDebug {
		t.Fatalf("ParseLevel(DEBUG) = %v, %v", l, err)
	}
}

func TestStreamTextFiltersNodeEventsAtDetail(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	span := Begin(tr, ScopeClass, "class:Box", 0)
	Bridge(tr, span.ID(), BridgeEvent{Class: "Box", Method: "get()", Target: "A.get"})
	span.WithExtra("bridges", "1").WithExtra("casts", "2").End("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected begin and end only, got:\n%s", buf.String())
	}
	if !strings.Contains(lines[1], "class:Box (done) {bridges=1, casts=2}") {
		t.Fatalf("unexpected end line: %q", lines[1])
	}
}

func TestStreamTextRendersBridgeAndClash(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	Bridge(tr, 0, BridgeEvent{Class: "B", Method: "get()", Target: "A.get", Hypothetical: true})
	Clash(tr, 0, ClashEvent{Code: "TRN3402", Class: "B", First: "set(Object)", Second: "set(T)"})

	out := buf.String()
	if !strings.Contains(out, "• bridge B.get() -> A.get (hypothetical)") {
		t.Fatalf("bridge line missing:\n%s", out)
	}
	if !strings.Contains(out, "• clash [TRN3402] B: set(Object) vs set(T)") {
		t.Fatalf("clash line missing:\n%s", out)
	}
}

func TestNDJSONCarriesBridgeFields(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDebug, Output: &buf, OutputPath: "run.ndjson"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Bridge(tr, 7, BridgeEvent{Class: "S", Method: "compareTo(Object)", Target: "Cmp.compareTo"})

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("not json: %v (%q)", err, buf.String())
	}
	if got["kind"] != "bridge" || got["name"] != "bridge:compareTo" {
		t.Fatalf("kind/name = %v/%v", got["kind"], got["name"])
	}
	if got["class"] != "S" || got["method"] != "compareTo(Object)" || got["target"] != "Cmp.compareTo" {
		t.Fatalf("bridge fields = %v", got)
	}
	if got["parent_id"] != float64(7) {
		t.Fatalf("parent_id = %v", got["parent_id"])
	}
	if _, ok := got["hypothetical"]; ok {
		t.Fatalf("hypothetical must be omitted when false")
	}
}

func TestRecorderKeepsNewest(t *testing.T) {
	rec := NewRecorder(2, LevelDebug)
	for _, m := range []string{"a()", "b()", "c()"} {
		Bridge(rec, 0, BridgeEvent{Class: "X", Method: m})
	}
	evs := rec.Events()
	if len(evs) != 2 || evs[0].Method != "b()" || evs[1].Method != "c()" {
		t.Fatalf("events = %+v", evs)
	}
	if len(rec.Of(KindClash)) != 0 || len(rec.Of(KindBridge)) != 2 {
		t.Fatalf("Of filtered wrongly")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("missing tracer must fall back to Nop")
	}
	rec := NewRecorder(4, LevelPhase)
	ctx := WithTracer(context.Background(), rec)
	if FromContext(ctx) != Tracer(rec) {
		t.Fatalf("tracer not propagated")
	}
	if Parent(ctx) != 0 {
		t.Fatalf("parent without WithParent = %d", Parent(ctx))
	}
	sp := Begin(rec, ScopeDriver, "translate", 0)
	if got := Parent(WithParent(ctx, sp.ID())); got != sp.ID() || got == 0 {
		t.Fatalf("Parent = %d, want %d", got, sp.ID())
	}
}

func TestInertSpanOnFilteredScope(t *testing.T) {
	rec := NewRecorder(4, LevelPhase)
	sp := Begin(rec, ScopeClass, "class:A", 0)
	sp.WithExtra("casts", "1").End("")
	if sp.ID() != 0 || len(rec.Events()) != 0 {
		t.Fatalf("class span must be dropped at phase level: %+v", rec.Events())
	}
}

func TestHeartbeatStops(t *testing.T) {
	rec := NewRecorder(64, LevelPhase)
	stop := StartHeartbeat(rec, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(rec.Of(KindHeartbeat)) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	stop()
	stop()
	n := len(rec.Of(KindHeartbeat))
	if n == 0 {
		t.Fatalf("no heartbeat recorded")
	}
	time.Sleep(5 * time.Millisecond)
	if got := len(rec.Of(KindHeartbeat)); got != n {
		t.Fatalf("heartbeat kept running after stop: %d -> %d", n, got)
	}
	StartHeartbeat(Nop, time.Millisecond)()
}
