package matcher

import (
	"strconv"
	"strings"

	"github.com/LanceJenkinZA/DateSense/pkg/types"
)

// TryMatch attempts rule r at one offset of s. On success it returns the
// match with the directive alternatives that survived shape and value
// checks at each slot. Matching is deterministic, side-effect-free, and
// never consumes a zero-length span.
func (m *Matcher) TryMatch(r *types.Rule, s string, offset int) (*types.Match, bool) {
	pos := offset
	segments := make([]types.Segment, 0, len(r.Pattern))

	for _, tok := range r.Pattern {
		if tok.IsLiteral() {
			if !strings.HasPrefix(s[pos:], tok.Literal) {
				return nil, false
			}
			segments = append(segments, types.Segment{Literal: tok.Literal})
			pos += len(tok.Literal)
			continue
		}

		length, survivors := m.matchAlternatives(tok.Alternatives, s, pos)
		if len(survivors) == 0 {
			return nil, false
		}
		segments = append(segments, types.Segment{Alternatives: survivors})
		pos += length
	}

	return &types.Match{
		RuleID:   r.ID,
		Start:    offset,
		Length:   pos - offset,
		Segments: segments,
		Weight:   r.Weight,
		Priority: r.Priority,
	}, true
}

// matchAlternatives checks which directive alternatives accept the token at
// pos, and how many characters that token consumes. Directive kinds are
// disjoint on their leading character (digit, letter, sign), so surviving
// alternatives of one slot always agree on the consumed span; a survivor
// whose span disagrees is discarded.
func (m *Matcher) matchAlternatives(codes []string, s string, pos int) (int, []string) {
	if pos >= len(s) {
		return 0, nil
	}

	digits := digitRun(s, pos)
	letters := letterRun(s, pos)

	value := 0
	valueOK := false
	if digits > 0 {
		if v, err := strconv.Atoi(s[pos : pos+digits]); err == nil {
			value = v
			valueOK = true
		}
	}

	length := 0
	var survivors []string
	for _, code := range codes {
		d := m.catalog.Directive(code)
		matched := 0

		switch d.Kind {
		case types.KindNumber:
			if digits == 0 || !valueOK || digits > d.MaxDigits() || !d.InRange(value) {
				continue
			}
			matched = digits
		case types.KindWord:
			if letters == 0 || !d.MatchesWord(s[pos:pos+letters]) {
				continue
			}
			matched = letters
		case types.KindOffset:
			matched = m.matchOffset(code, s, pos)
			if matched == 0 {
				continue
			}
		}

		if length != 0 && matched != length {
			continue
		}
		length = matched
		survivors = append(survivors, code)
	}

	return length, survivors
}

// matchOffset matches an offset-shaped directive such as %z at pos. The
// shape must start cleanly after a non-digit and end on a token boundary,
// mirroring how the original tokenizer joins +0100 into one token only
// when it is not glued to another number.
func (m *Matcher) matchOffset(code, s string, pos int) int {
	if pos > 0 && isDigit(s[pos-1]) {
		return 0
	}
	re := m.shapes[code]
	match, err := re.FindStringMatch(s[pos:])
	if err != nil || match == nil {
		return 0
	}
	n := match.Length
	if n == 0 {
		return 0
	}
	if pos+n < len(s) && isDigit(s[pos+n]) {
		return 0
	}
	return n
}

// digitRun returns the length of the maximal ASCII digit run starting at
// pos, or 0 when pos is not the start of a run.
func digitRun(s string, pos int) int {
	if !isDigit(s[pos]) || (pos > 0 && isDigit(s[pos-1])) {
		return 0
	}
	end := pos
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	return end - pos
}

// letterRun returns the length of the maximal ASCII letter run starting at
// pos, or 0 when pos is not the start of a run.
func letterRun(s string, pos int) int {
	if !isLetter(s[pos]) || (pos > 0 && isLetter(s[pos-1])) {
		return 0
	}
	end := pos
	for end < len(s) && isLetter(s[end]) {
		end++
	}
	return end - pos
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
