package attr

import (
	"testing"

	"github.com/artpar/attrgate/core/diag"
)

func span(line int) diag.Span {
	return diag.Span{File: "test.yaml", Line: line, Col: 1}
}

func TestSlotFirstWriteWins(t *testing.T) {
	var c diag.Collector
	s := NewSlot[string](diag.WarnOnDuplicate())

	s = s.Update(&c, "first", span(1))
	s = s.Update(&c, "second", span(2))

	if got := s.ValueOr(""); got != "first" {
		t.Errorf("ValueOr() = %q, want %q", got, "first")
	}
	if s.Span() != span(1) {
		t.Errorf("Span() = %v, want %v", s.Span(), span(1))
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (warning + note)", c.Len())
	}
	if c.HasErrors() {
		t.Error("warn-level duplicate must not fail the pass")
	}
}

func TestSlotDuplicateAtError(t *testing.T) {
	var c diag.Collector
	s := NewSlot[bool](diag.ErrorOnDuplicate("declared twice"))

	s = s.Update(&c, true, span(1))
	s = s.Update(&c, false, span(2))

	if got := s.ValueOr(false); got != true {
		t.Error("error-level duplicate must still retain the first value")
	}
	if !c.HasErrors() {
		t.Error("error-level duplicate must fail the pass")
	}
}

func TestSlotDuplicateSilent(t *testing.T) {
	var c diag.Collector
	s := NewSlot[int](diag.IgnoreDuplicate())

	s = s.Update(&c, 1, span(1))
	s = s.Update(&c, 2, span(2))

	if got := s.ValueOr(0); got != 1 {
		t.Errorf("ValueOr() = %d, want 1", got)
	}
	if c.Len() != 0 {
		t.Errorf("silent duplicate emitted %d diagnostics", c.Len())
	}
}

func TestSlotEmpty(t *testing.T) {
	s := NewSlot[string](diag.WarnOnDuplicate())

	if s.HasValue() {
		t.Error("new slot must be empty")
	}
	if got := s.ValueOr("def"); got != "def" {
		t.Errorf("ValueOr() = %q, want %q", got, "def")
	}
	if _, ok := s.Value(); ok {
		t.Error("Value() reported a value for an empty slot")
	}
	if s.Span() != (diag.Span{}) {
		t.Errorf("empty slot span = %v, want zero", s.Span())
	}
}
