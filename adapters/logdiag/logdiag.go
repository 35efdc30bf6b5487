// Package logdiag provides a diagnostic sink that writes structured zerolog
// events. It is used where diagnostics should land in the service log rather
// than (or in addition to) an in-memory collector.
package logdiag

import (
	"github.com/rs/zerolog"

	"github.com/artpar/attrgate/core/diag"
)

// Sink writes each diagnostic as one log event. Silent diagnostics are
// dropped, mirroring Collector behavior.
type Sink struct {
	logger zerolog.Logger
}

// New creates a sink writing to logger.
func New(logger zerolog.Logger) *Sink {
	return &Sink{logger: logger}
}

// Report logs a primary diagnostic at the level matching its severity.
func (s *Sink) Report(sev diag.Severity, span diag.Span, msg string) {
	if sev.IsSilent() {
		return
	}
	ev := s.logger.Warn()
	if sev.IsError() {
		ev = s.logger.Error()
	}
	spanFields(ev, span).Msg(msg)
}

// Note logs a follow-up note for the preceding diagnostic.
func (s *Sink) Note(span diag.Span, msg string) {
	spanFields(s.logger.Info().Bool("note", true), span).Msg(msg)
}

func spanFields(ev *zerolog.Event, span diag.Span) *zerolog.Event {
	if span == (diag.Span{}) {
		return ev
	}
	if span.File != "" {
		ev = ev.Str("file", span.File)
	}
	return ev.Int("line", span.Line).Int("col", span.Col)
}

// Tee fans every diagnostic out to multiple sinks, e.g. a Collector for the
// response body plus a log sink.
type Tee []diag.Sink

// Report forwards the diagnostic to every sink.
func (t Tee) Report(sev diag.Severity, span diag.Span, msg string) {
	for _, s := range t {
		s.Report(sev, span, msg)
	}
}

// Note forwards the note to every sink.
func (t Tee) Note(span diag.Span, msg string) {
	for _, s := range t {
		s.Note(span, msg)
	}
}
