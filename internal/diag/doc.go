// Package diag defines the diagnostic model shared by the CLI and the driver.
//
// The lexer and parser return typed errors. FromError converts them into
// Diagnostic records at the boundary, attaching a stable Code and the
// primary source.Span. Package diag performs no formatting or IO; rendering
// lives in internal/diagfmt.
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error.
//   - Code – numeric identifier with a stable string form (LEX1001, SYN2003, ...).
//   - Message – short human text.
//   - Primary – the span pointing to the problem.
//   - Notes – optional secondary spans with extra context.
//
// Producers emit through a Reporter; BagReporter collects into a Bag, which
// supports sorting, deduplication and limits.
package diag
