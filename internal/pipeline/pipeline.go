// Package pipeline drives unit files through loading, erasure, verification
// and writing.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"erasec/internal/diag"
	"erasec/internal/source"
	"erasec/internal/trace"
	"erasec/internal/trans"
	"erasec/internal/unitfile"
)

// Request describes one run over a set of unit files.
type Request struct {
	Inputs         []string
	OutDir         string // empty: next to each input
	Options        trans.Options
	MaxDiagnostics int
	Jobs           int // parallel loads; <= 0 means GOMAXPROCS
	Verify         bool
	NoWrite        bool
	Progress       ProgressSink
}

// UnitResult is the outcome for one input file.
type UnitResult struct {
	Path   string
	Output string // empty when nothing was written
	Bundle *unitfile.Bundle
	Bag    *diag.Bag
	Stats  trans.Stats
	Err    error

	load, translate, verify, write time.Duration
	reported                       bool
}

// Unreported returns Err unless it is already in Bag as a diagnostic.
func (u *UnitResult) Unreported() error {
	if u.reported {
		return nil
	}
	return u.Err
}

// Failed reports units that hit an error or produced error diagnostics.
func (u *UnitResult) Failed() bool {
	return u.Err != nil || (u.Bag != nil && u.Bag.HasErrors())
}

// Files returns the file set for rendering the unit's diagnostics.
func (u *UnitResult) Files() *source.FileSet {
	if u.Bundle == nil {
		return nil
	}
	return u.Bundle.Files
}

// Result aggregates a run.
type Result struct {
	Units   []UnitResult
	Timings Timings
	Stats   trans.Stats
}

// Failed reports whether any unit failed.
func (r *Result) Failed() bool {
	for i := range r.Units {
		if r.Units[i].Failed() {
			return true
		}
	}
	return false
}

// Translate loads every input in parallel, then erases, verifies and
// writes them one by one. Per-unit failures are recorded in the result;
// the returned error is reserved for cancellation and bad requests.
func Translate(ctx context.Context, req *Request) (Result, error) {
	if req == nil {
		return Result{}, errors.New("missing request")
	}
	tracer := trace.FromContext(ctx)
	sp := trace.Begin(tracer, trace.ScopeDriver, "translate", trace.Parent(ctx))
	defer sp.End("")
	ctx = trace.WithParent(ctx, sp.ID())

	res := Result{Units: make([]UnitResult, len(req.Inputs))}
	for i, path := range req.Inputs {
		res.Units[i] = UnitResult{Path: path, Bag: diag.NewBag(req.MaxDiagnostics)}
		emit(req.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}
	if err := load(ctx, req, res.Units); err != nil {
		return res, err
	}

	for i := range res.Units {
		u := &res.Units[i]
		if u.Err != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := translateUnit(ctx, req, u); err != nil {
			return res, err
		}
		if u.Err == nil && req.Verify {
			verifyUnit(req, u)
		}
		if u.Err == nil && !req.NoWrite && !u.Bag.HasErrors() {
			writeUnit(req, u)
		}
		evt := Event{File: u.Path, Status: StatusDone, Elapsed: u.load + u.translate + u.verify + u.write}
		if u.Failed() {
			evt.Status, evt.Err = StatusError, u.Err
		}
		emit(req.Progress, evt)
	}

	for i := range res.Units {
		u := &res.Units[i]
		res.Timings.Add(StageLoad, u.load)
		res.Timings.Add(StageTranslate, u.translate)
		if req.Verify {
			res.Timings.Add(StageVerify, u.verify)
		}
		if !req.NoWrite {
			res.Timings.Add(StageWrite, u.write)
		}
		res.Stats = addStats(res.Stats, u.Stats)
	}
	sp.WithExtra("units", strconv.Itoa(len(res.Units))).
		WithExtra("bridges", strconv.Itoa(res.Stats.Bridges))
	return res, nil
}

func load(ctx context.Context, req *Request, units []UnitResult) error {
	if len(units) == 0 {
		return nil
	}
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(units)))
	for i := range units {
		u := &units[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			emit(req.Progress, Event{File: u.Path, Stage: StageLoad, Status: StatusWorking})
			start := time.Now()
			b, err := unitfile.Read(u.Path)
			u.load = time.Since(start)
			defer func() {
				if u.Err != nil {
					emit(req.Progress, Event{File: u.Path, Stage: StageLoad, Status: StatusError, Err: u.Err, Elapsed: u.load})
				}
			}()
			switch {
			case errors.Is(err, unitfile.ErrSchemaMismatch):
				u.fail(diag.IOSchemaMismatch, err)
			case err != nil:
				u.fail(diag.IOLoadUnitError, err)
			default:
				u.Bundle = b
				if verr := b.Syms.Validate(); verr != nil {
					u.fail(diag.IOUnitNotResolved, fmt.Errorf("%s: %w", u.Path, verr))
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// fail records err as the unit's error and as a diagnostic.
func (u *UnitResult) fail(code diag.Code, err error) {
	u.Err, u.reported = err, true
	diag.ReportError(diag.BagReporter{Bag: u.Bag}, code, source.NoSpan, err.Error()).Emit()
}

func translateUnit(ctx context.Context, req *Request, u *UnitResult) error {
	emit(req.Progress, Event{File: u.Path, Stage: StageTranslate, Status: StatusWorking})
	sp := trace.Begin(trace.FromContext(ctx), trace.ScopeUnit, "unit:"+u.Path, trace.Parent(ctx))
	uctx := trace.WithParent(ctx, sp.ID())
	start := time.Now()
	defer func() {
		u.translate = time.Since(start)
		sp.WithExtra("classes", strconv.Itoa(u.Stats.Classes)).
			WithExtra("casts", strconv.Itoa(u.Stats.Casts)).
			WithExtra("bridges", strconv.Itoa(u.Stats.Bridges)).
			End("")
	}()

	b := u.Bundle
	tr := trans.New(b.Syms, diag.NewDedupReporter(diag.BagReporter{Bag: u.Bag}), req.Options)
	for _, unit := range b.Units {
		tr.AddUnit(unit)
	}
	for _, unit := range b.Units {
		if err := tr.TranslateUnit(uctx, unit); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			u.Err = err
			break
		}
	}
	u.Stats = tr.Stats()
	b.Erased = u.Err == nil
	return nil
}

func verifyUnit(req *Request, u *UnitResult) {
	emit(req.Progress, Event{File: u.Path, Stage: StageVerify, Status: StatusWorking})
	start := time.Now()
	var errs []error
	for _, unit := range u.Bundle.Units {
		if err := trans.CheckErased(unit, u.Bundle.Syms); err != nil {
			errs = append(errs, err)
		}
	}
	u.verify = time.Since(start)
	if err := errors.Join(errs...); err != nil {
		u.Err = fmt.Errorf("%s: verify: %w", u.Path, err)
	}
}

func writeUnit(req *Request, u *UnitResult) {
	emit(req.Progress, Event{File: u.Path, Stage: StageWrite, Status: StatusWorking})
	start := time.Now()
	out := unitfile.OutputPath(u.Path, req.OutDir)
	if err := unitfile.Write(out, u.Bundle); err != nil {
		u.fail(diag.IOWriteUnitError, err)
	} else {
		u.Output = out
	}
	u.write = time.Since(start)
}

func addStats(a, b trans.Stats) trans.Stats {
	return trans.Stats{
		Classes: a.Classes + b.Classes,
		Casts:   a.Casts + b.Casts,
		Bridges: a.Bridges + b.Bridges,
		Clashes: a.Clashes + b.Clashes,
	}
}
