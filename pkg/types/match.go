package types

// Segment is one rendered position of a match or assignment hypothesis:
// literal text, or a slot holding the directive alternatives that survived
// shape and range checks at that position.
type Segment struct {
	Literal      string
	Alternatives []string
}

// IsLiteral reports whether the segment carries literal text.
func (s Segment) IsLiteral() bool {
	return len(s.Alternatives) == 0
}

// Match is one rule applied successfully at one offset of one string.
// Matches are ephemeral: they are owned by a single detection call and
// discarded with it.
type Match struct {
	RuleID   string
	Start    int
	Length   int
	Segments []Segment
	Weight   int
	Priority int
}

// End returns the offset one past the matched span.
func (m *Match) End() int {
	return m.Start + m.Length
}

// Covering is an ordered sequence of matches whose spans are contiguous,
// non-overlapping, and together consume an entire string.
type Covering []*Match

// Segments flattens the covering into its segment sequence.
func (c Covering) Segments() []Segment {
	var segs []Segment
	for _, m := range c {
		segs = append(segs, m.Segments...)
	}
	return segs
}

// Directives counts the directive slots in the covering.
func (c Covering) Directives() int {
	n := 0
	for _, m := range c {
		for _, seg := range m.Segments {
			if !seg.IsLiteral() {
				n++
			}
		}
	}
	return n
}

// Weight sums the match weights in the covering.
func (c Covering) Weight() int {
	n := 0
	for _, m := range c {
		n += m.Weight
	}
	return n
}

// Priority sums the match priorities in the covering.
func (c Covering) Priority() int {
	n := 0
	for _, m := range c {
		n += m.Priority
	}
	return n
}

// ResolvedSegment is a segment with all ambiguity collapsed: literal text
// or exactly one directive.
type ResolvedSegment struct {
	Literal   string
	Directive string
}

// Assignment is a fully resolved directive sequence with its literal
// separators, consistent across every input of a batch. It is the
// pre-rendering form of the detected format.
type Assignment struct {
	Segments []ResolvedSegment
}

// Directives returns the directive codes of the assignment in order.
func (a *Assignment) Directives() []string {
	var codes []string
	for _, seg := range a.Segments {
		if seg.Directive != "" {
			codes = append(codes, seg.Directive)
		}
	}
	return codes
}
