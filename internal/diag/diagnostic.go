package diag

import (
	"minijson/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	// Located is false for diagnostics without a source position, e.g. a
	// file that could not be read.
	Located bool
	Notes   []Note
}
