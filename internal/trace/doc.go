// Package trace provides the tracing subsystem of redtrace.
//
// Tracing records export calls, archive entries and batch pipeline stages to
// help diagnose slow or stuck exports.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	redtrace export --trace=- --trace-level=detail capture.json
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - Nop: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer, dumped on exit
//   - MultiTracer: Combines multiple tracers
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Only failure dumps
//   - LevelPhase: Driver and export boundaries
//   - LevelDetail: Entry-level events
//   - LevelDebug: Everything including single notes
//
// # Scopes
//
//   - ScopeDriver: CLI commands, batch runs
//   - ScopeExport: One archive export or one snapshot file
//   - ScopeEntry: One archive entry
//   - ScopeNote: One rendered message
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeExport, "export", parentID)
//	defer span.End("")
package trace
