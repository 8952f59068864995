package types

import "errors"

// Detection failures are reported as wrapped sentinel errors so callers can
// distinguish the failure kind with errors.Is. Nothing is retried and no
// failure is downgraded to a best-guess format.
var (
	// ErrEmptyInput is returned when a batch contains no date strings.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnmatched is returned when a string admits no full covering under
	// the rule set. One unparseable string aborts the whole batch.
	ErrUnmatched = errors.New("unmatched string")

	// ErrInconsistent is returned when every string is coverable but no
	// single directive sequence satisfies all of them.
	ErrInconsistent = errors.New("inconsistent batch")

	// ErrMalformedRule is returned at catalog construction time for rules
	// that are structurally invalid.
	ErrMalformedRule = errors.New("malformed rule")
)

// FailureKind returns a short stable label for a detection error, suitable
// for persistence. Unknown errors map to "error".
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyInput):
		return "empty"
	case errors.Is(err, ErrUnmatched):
		return "unmatched"
	case errors.Is(err, ErrInconsistent):
		return "inconsistent"
	case errors.Is(err, ErrMalformedRule):
		return "malformed-rule"
	default:
		return "error"
	}
}
