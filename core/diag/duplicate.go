package diag

// DuplicatePolicy decides how a second value for an already-filled slot is
// reported. The policy is an immutable value, copied into every slot
// instantiated from the same declaration.
type DuplicatePolicy struct {
	// Level is the severity of the duplicate report.
	Level Severity
	// Extra is an optional explanation appended to the message.
	Extra string
}

// NewDuplicatePolicy builds a policy with an explanatory note.
func NewDuplicatePolicy(level Severity, extra string) DuplicatePolicy {
	return DuplicatePolicy{Level: level, Extra: extra}
}

// WarnOnDuplicate is the default policy for simple declarations.
func WarnOnDuplicate() DuplicatePolicy {
	return DuplicatePolicy{Level: Warn}
}

// ErrorOnDuplicate builds an error-level policy with an explanation.
func ErrorOnDuplicate(extra string) DuplicatePolicy {
	return DuplicatePolicy{Level: Error, Extra: extra}
}

// IgnoreDuplicate silently discards later values.
func IgnoreDuplicate() DuplicatePolicy {
	return DuplicatePolicy{Level: Silent}
}

// Issue reports a duplicate value at span, pointing back at prev where the
// first value was seen. At any non-Silent level a "previous declaration here"
// note follows the primary diagnostic. Returns whether the policy's level is
// Error, so a caller can mark the pass as failed; emission never aborts the
// walk.
func (p DuplicatePolicy) Issue(sink Sink, span, prev Span) bool {
	msg := "duplicate attribute"
	if p.Extra != "" {
		msg += ". " + p.Extra
	}
	sink.Report(p.Level, span, msg)
	if !p.Level.IsSilent() {
		sink.Note(prev, "previous declaration here")
	}
	return p.Level.IsError()
}
