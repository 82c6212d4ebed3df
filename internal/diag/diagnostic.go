package diag

import (
	"sable/internal/source"
)

// Note is a secondary location attached to a diagnostic, like the
// enclosing function of a stray break.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is one text replacement of a suggested fix.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a suggested rewrite of the offending source.
type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is one finding against a surface unit. It must stay a
// plain value: bags of diagnostics travel through the result cache.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
