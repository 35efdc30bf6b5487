// Package diag provides severity levels, source spans, and the diagnostic
// sink used by the attribute validation engine. The sink accumulates
// user-facing problems; it never aborts a validation walk.
package diag

import "fmt"

// Severity controls how a diagnostic is reported.
type Severity int

const (
	// Silent suppresses the diagnostic entirely.
	Silent Severity = iota
	// Warn reports the diagnostic without failing the pass.
	Warn
	// Error reports the diagnostic and marks the pass as failed.
	Error
)

// String returns the lowercase display name of the severity.
func (s Severity) String() string {
	switch s {
	case Silent:
		return "silent"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalJSON renders the severity as its display name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON parses a severity from its display name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"silent"`:
		*s = Silent
	case `"warn"`:
		*s = Warn
	case `"error"`:
		*s = Error
	default:
		return fmt.Errorf("unknown severity %s", data)
	}
	return nil
}

// IsSilent reports whether the severity suppresses output.
func (s Severity) IsSilent() bool { return s == Silent }

// IsError reports whether the severity fails the pass.
func (s Severity) IsError() bool { return s == Error }

// Span identifies a location in a source document. The zero value means
// "unknown location". Spans are comparable; the engine uses them only for
// provenance and duplicate ordering, never for content.
type Span struct {
	File string `json:"file,omitempty"`
	Line int    `json:"line"`
	Col  int    `json:"col"`
}

// String renders the span as file:line:col, omitting unknown parts.
func (sp Span) String() string {
	if sp == (Span{}) {
		return "<unknown>"
	}
	if sp.File == "" {
		return fmt.Sprintf("%d:%d", sp.Line, sp.Col)
	}
	return fmt.Sprintf("%s:%d:%d", sp.File, sp.Line, sp.Col)
}

// Sink receives diagnostics in the order they are raised.
//
// Report emits a primary diagnostic. Note emits a follow-up note attached to
// the most recent Report (e.g. "previous declaration here"). Implementations
// must tolerate many calls per pass; there is no backpressure.
type Sink interface {
	Report(sev Severity, span Span, msg string)
	Note(span Span, msg string)
}

// Diagnostic is one recorded entry in a Collector.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Span     Span     `json:"span"`
	Message  string   `json:"message"`
	// Note marks follow-up notes attached to the preceding diagnostic.
	Note bool `json:"note,omitempty"`
}

// String renders the diagnostic in compiler style: "file:1:2: error: msg".
func (d Diagnostic) String() string {
	kind := d.Severity.String()
	if d.Note {
		kind = "note"
	}
	return fmt.Sprintf("%s: %s: %s", d.Span, kind, d.Message)
}

// Collector is a Sink that accumulates every diagnostic in order.
// The zero value is ready to use.
type Collector struct {
	diags    []Diagnostic
	errors   int
	warnings int
}

// Report records a primary diagnostic. Silent diagnostics are dropped.
func (c *Collector) Report(sev Severity, span Span, msg string) {
	if sev.IsSilent() {
		return
	}
	c.diags = append(c.diags, Diagnostic{Severity: sev, Span: span, Message: msg})
	if sev.IsError() {
		c.errors++
	} else {
		c.warnings++
	}
}

// Note records a follow-up note for the preceding diagnostic.
func (c *Collector) Note(span Span, msg string) {
	c.diags = append(c.diags, Diagnostic{Severity: Warn, Span: span, Message: msg, Note: true})
}

// Diagnostics returns all recorded entries in emission order.
func (c *Collector) Diagnostics() []Diagnostic { return c.diags }

// HasErrors reports whether any error-level diagnostic was recorded.
func (c *Collector) HasErrors() bool { return c.errors > 0 }

// ErrorCount returns the number of error-level diagnostics.
func (c *Collector) ErrorCount() int { return c.errors }

// WarningCount returns the number of warning-level diagnostics.
// Notes are not counted.
func (c *Collector) WarningCount() int { return c.warnings }

// Len returns the total number of recorded entries, notes included.
func (c *Collector) Len() int { return len(c.diags) }
