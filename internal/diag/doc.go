// Package diag defines the diagnostic model shared by the translation pass,
// the unit loader and the CLI.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// Notes should be used sparingly: each note must add new context (e.g. “other
// member declared here”) rather than repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter to decouple emission from storage. The
// translator constructs a ReportBuilder via ReportError and chains WithNote
// before calling Emit. diag.BagReporter aggregates diagnostics into a Bag,
// which supports sorting, deduplication and limits.
//
// Package diag does no IO. Rendering lives in internal/diagfmt.
package diag
