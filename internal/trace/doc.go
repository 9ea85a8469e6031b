// Package trace is the logging layer of erasec. Components never print
// progress themselves; they report spans and events to a Tracer taken
// from the context.
//
// Spans cover the driver run, each unit and each class:
//
//	sp := trace.Begin(t, trace.ScopeClass, "class:Box", parent)
//	defer sp.WithExtra("bridges", "1").End("")
//
// Node-scope events are typed. A synthesized bridge is reported with
// trace.Bridge and carries the owning class, the bridge signature and the
// overridden target; a name clash is reported with trace.Clash and carries
// the diagnostic code and both methods.
//
// Levels gate scopes: phase keeps driver and unit spans, detail adds class
// spans, debug adds bridges and clashes.
//
//	erasec translate --trace=- --trace-level=debug Box.unit.mp
//	erasec translate --trace=run.ndjson --trace-level=detail units/
package trace
