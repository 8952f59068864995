package types

import "strings"

// DirectiveKind classifies the token shape a directive matches.
type DirectiveKind string

const (
	// KindNumber matches a maximal run of ASCII digits.
	KindNumber DirectiveKind = "number"
	// KindWord matches a maximal run of ASCII letters, case-insensitively.
	KindWord DirectiveKind = "word"
	// KindOffset matches a regex-shaped token such as a +0100 UTC offset.
	KindOffset DirectiveKind = "offset"
)

// Directive declares one strftime placeholder the engine can recognize.
// The engine is agnostic to the directive inventory; the default set is
// supplied by the builtin catalog in pkg/rule.
type Directive struct {
	Code   string        // e.g., "%d"
	Kind   DirectiveKind // number, word, or offset
	Common int           // likelihood score; breaks per-slot alternative ties

	// Number directives: inclusive value range. A match must parse within
	// range and must not be longer than the digit count of Max.
	Min int
	Max int

	// Word directives: recognized words, lower case. MinAbbrev > 0 allows
	// prefix matches of at least that many characters.
	Words     []string
	MinAbbrev int

	// Offset directives: regex for the token shape, anchored at the match
	// offset. Compiled by pkg/matcher with regexp2.
	Shape string
}

// InRange reports whether v is a valid value for a number directive.
func (d *Directive) InRange(v int) bool {
	return v >= d.Min && v <= d.Max
}

// MaxDigits returns the digit count of Max for a number directive.
func (d *Directive) MaxDigits() int {
	n := 1
	for v := d.Max; v >= 10; v /= 10 {
		n++
	}
	return n
}

// MatchesWord reports whether text is a valid value for a word directive.
// Comparison is case-insensitive; partial matches are accepted when they
// prefix a recognized word and meet the MinAbbrev length.
func (d *Directive) MatchesWord(text string) bool {
	lower := strings.ToLower(text)
	if d.MinAbbrev > 0 && len(lower) >= d.MinAbbrev {
		for _, w := range d.Words {
			if strings.HasPrefix(w, lower) {
				return true
			}
		}
		return false
	}
	for _, w := range d.Words {
		if w == lower {
			return true
		}
	}
	return false
}

// Catalog bundles a directive inventory with the rules that reference it.
// Catalogs are immutable configuration; one catalog serves any number of
// concurrent detection calls.
type Catalog struct {
	Directives []*Directive
	Rules      []*Rule
}

// Directive returns the declaration for code, or nil if unknown.
func (c *Catalog) Directive(code string) *Directive {
	for _, d := range c.Directives {
		if d.Code == code {
			return d
		}
	}
	return nil
}
