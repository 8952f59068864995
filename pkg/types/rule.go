package types

// PatternToken is one sub-token of a rule pattern: either a literal string
// that must match exactly, or a set of alternative directive codes of which
// at least one must match the token shape at that position.
type PatternToken struct {
	Literal      string
	Alternatives []string
}

// IsLiteral reports whether the sub-token is a fixed literal.
func (t PatternToken) IsLiteral() bool {
	return len(t.Alternatives) == 0
}

// Rule is a single matching unit. Pattern rules match a fixed sub-token
// sequence as one span; a single-element pattern is the degenerate simple
// rule. Priority and weight are static configuration, never computed.
type Rule struct {
	ID       string // e.g., "ds.time.hms"
	Name     string // human-readable name
	Priority int    // resolves ties among overlapping matches, higher wins
	Weight   int    // contributes to hypothesis scoring
	Anchor   *int   // optional: only offset at which the rule may apply

	Pattern []PatternToken

	// Keywords for Aho-Corasick prefiltering, lower case. Derived by the
	// loader from word-directive alternatives; rules without keywords are
	// always tried.
	Keywords []string
}
