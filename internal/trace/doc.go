// Package trace records what the pipeline is doing: which files are being
// loaded, lexed, parsed and rendered, and how long each step took.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	minijson parse --trace=- --trace-level=detail ./docs
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Only failures
//   - LevelPhase: Command and pass boundaries
//   - LevelDetail: Per-file events
//   - LevelDebug: Everything
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "parse")
//	defer span.End("")
package trace
