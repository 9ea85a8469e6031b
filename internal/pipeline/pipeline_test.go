package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erasec/internal/diag"
	"erasec/internal/pipeline"
	"erasec/internal/source"
	"erasec/internal/symbols"
	"erasec/internal/testkit"
	"erasec/internal/trans"
	"erasec/internal/tree"
	"erasec/internal/unitfile"
)

// writeProgram stores a unit with A<T> and B extends A<String> under dir.
func writeProgram(t *testing.T, dir, name string) string {
	t.Helper()
	b := testkit.NewBuilder()
	str := b.Lib("String")
	a := b.Class("A", symbols.FlagPublic)
	tv := a.TypeParam("T")
	a.Method("get", symbols.FlagPublic, tv).Body(b.Return(b.Null()))
	sub := b.Class("B", symbols.FlagPublic).Extends(a.Of(str))
	sub.Method("get", symbols.FlagPublic, str).Body(b.Return(b.Literal(str, `"x"`)))

	fs := source.NewFileSet()
	fs.Add(name+".java", []byte("class A {}\n"))
	path := filepath.Join(dir, name+".mp")
	require.NoError(t, unitfile.Write(path, &unitfile.Bundle{
		Files: fs,
		Syms:  b.Syms,
		Units: []*tree.Node{b.Unit(name+".java", a, sub)},
	}))
	return path
}

type recorder struct {
	mu     sync.Mutex
	events []pipeline.Event
}

func (r *recorder) OnEvent(evt pipeline.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recorder) final(file string) pipeline.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var last pipeline.Event
	for _, evt := range r.events {
		if evt.File == file {
			last = evt
		}
	}
	return last
}

func TestTranslateWritesErasedUnits(t *testing.T) {
	dir := t.TempDir()
	in := []string{writeProgram(t, dir, "one"), writeProgram(t, dir, "two")}
	rec := &recorder{}

	res, err := pipeline.Translate(context.Background(), &pipeline.Request{
		Inputs:   in,
		Options:  trans.DefaultOptions(),
		Jobs:     2,
		Verify:   true,
		Progress: rec,
	})
	require.NoError(t, err)
	require.False(t, res.Failed())
	require.Len(t, res.Units, 2)
	assert.Equal(t, 2, res.Stats.Bridges)
	assert.Equal(t, 4, res.Stats.Classes)

	for i, u := range res.Units {
		assert.Equal(t, in[i], u.Path)
		assert.Equal(t, unitfile.OutputPath(in[i], ""), u.Output)
		out, err := unitfile.Read(u.Output)
		require.NoError(t, err)
		assert.True(t, out.Erased)
		require.NoError(t, trans.CheckErased(out.Units[0], out.Syms))
		assert.Equal(t, pipeline.StatusDone, rec.final(in[i]).Status)
	}
	for _, st := range pipeline.Stages {
		assert.True(t, res.Timings.Has(st), "stage %s", st)
	}
}

func TestBrokenInputDoesNotStopOthers(t *testing.T) {
	dir := t.TempDir()
	good := writeProgram(t, dir, "good")
	bad := filepath.Join(dir, "bad.mp")
	require.NoError(t, os.WriteFile(bad, []byte("not a unit"), 0o600))
	missing := filepath.Join(dir, "missing.mp")
	rec := &recorder{}

	res, err := pipeline.Translate(context.Background(), &pipeline.Request{
		Inputs:   []string{bad, good, missing},
		Options:  trans.DefaultOptions(),
		Progress: rec,
	})
	require.NoError(t, err)
	assert.True(t, res.Failed())

	for _, i := range []int{0, 2} {
		u := res.Units[i]
		require.Error(t, u.Err)
		require.Equal(t, 1, u.Bag.Len())
		assert.Equal(t, diag.IOLoadUnitError, u.Bag.Items()[0].Code)
		assert.Empty(t, u.Output)
		assert.Equal(t, pipeline.StatusError, rec.final(u.Path).Status)
	}
	assert.False(t, res.Units[1].Failed())
	assert.FileExists(t, res.Units[1].Output)
}

func TestNoWriteLeavesDirectoryAlone(t *testing.T) {
	dir := t.TempDir()
	in := writeProgram(t, dir, "one")

	res, err := pipeline.Translate(context.Background(), &pipeline.Request{
		Inputs:  []string{in},
		Options: trans.DefaultOptions(),
		NoWrite: true,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Units[0].Output)
	assert.True(t, res.Units[0].Bundle.Erased)
	assert.False(t, res.Timings.Has(pipeline.StageWrite))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOutputDirectory(t *testing.T) {
	dir, out := t.TempDir(), t.TempDir()
	in := writeProgram(t, dir, "one")

	res, err := pipeline.Translate(context.Background(), &pipeline.Request{
		Inputs:  []string{in},
		OutDir:  out,
		Options: trans.Options{},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "one.erased.mp"), res.Units[0].Output)
	assert.Zero(t, res.Stats.Bridges)
}

func TestCancelledContext(t *testing.T) {
	dir := t.TempDir()
	in := writeProgram(t, dir, "one")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipeline.Translate(ctx, &pipeline.Request{Inputs: []string{in}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestNilRequest(t *testing.T) {
	_, err := pipeline.Translate(context.Background(), nil)
	require.Error(t, err)
}
