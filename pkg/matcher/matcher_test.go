package matcher

import (
	"testing"

	"github.com/LanceJenkinZA/DateSense/pkg/rule"
	"github.com/LanceJenkinZA/DateSense/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()

	cat, err := rule.NewLoader().LoadBuiltinCatalog()
	require.NoError(t, err)

	m, err := New(Config{Catalog: cat})
	require.NoError(t, err)
	return m
}

func findRule(t *testing.T, m *Matcher, id string) *types.Rule {
	t.Helper()
	for _, r := range m.Catalog().Rules {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("rule %s not in catalog", id)
	return nil
}

func TestNew_RequiresCatalog(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNew_RejectsMalformedCatalog(t *testing.T) {
	cat := &types.Catalog{
		Directives: []*types.Directive{
			{Code: "%H", Kind: types.KindNumber, Min: 23, Max: 0},
		},
	}
	_, err := New(Config{Catalog: cat})
	assert.ErrorIs(t, err, types.ErrMalformedRule)
}

func TestTryMatch_PatternRule(t *testing.T) {
	m := newTestMatcher(t)
	hms := findRule(t, m, "ds.time.hms")

	match, ok := m.TryMatch(hms, "13:05:59", 0)
	require.True(t, ok)

	assert.Equal(t, 0, match.Start)
	assert.Equal(t, 8, match.Length)
	assert.Len(t, match.Segments, 5)

	// 13 exceeds the 12-hour range, so %I is pruned in the first slot.
	assert.Equal(t, []string{"%H"}, match.Segments[0].Alternatives)
	assert.Equal(t, []string{"%M"}, match.Segments[2].Alternatives)
	assert.Equal(t, []string{"%S"}, match.Segments[4].Alternatives)
}

func TestTryMatch_KeepsAmbiguousAlternatives(t *testing.T) {
	m := newTestMatcher(t)
	hms := findRule(t, m, "ds.time.hms")

	match, ok := m.TryMatch(hms, "03:05:59", 0)
	require.True(t, ok)

	// 03 fits both clocks; the resolver decides, not the matcher.
	assert.Equal(t, []string{"%H", "%I"}, match.Segments[0].Alternatives)
}

func TestTryMatch_RejectsOutOfRange(t *testing.T) {
	m := newTestMatcher(t)
	hms := findRule(t, m, "ds.time.hms")

	_, ok := m.TryMatch(hms, "25:05:59", 0)
	assert.False(t, ok, "25 is not a valid hour on either clock")

	_, ok = m.TryMatch(hms, "13:65:59", 0)
	assert.False(t, ok, "65 is not a valid minute")
}

func TestTryMatch_MaximalRuns(t *testing.T) {
	m := newTestMatcher(t)
	ymd := findRule(t, m, "ds.date.ymd")

	// A directive may not match a prefix of a longer digit run: 20145 is
	// one token and no year directive accepts five digits.
	_, ok := m.TryMatch(ymd, "20145-12-15", 0)
	assert.False(t, ok)

	// Mid-run offsets are not run starts.
	_, ok = m.TryMatch(ymd, "92014-12-15", 1)
	assert.False(t, ok)
}

func TestTryMatch_Words(t *testing.T) {
	m := newTestMatcher(t)
	dby := findRule(t, m, "ds.date.dby")

	match, ok := m.TryMatch(dby, "15 Dec 2014", 0)
	require.True(t, ok)
	assert.Equal(t, []string{"%b"}, match.Segments[2].Alternatives)
	assert.Equal(t, []string{"%Y"}, match.Segments[4].Alternatives)

	match, ok = m.TryMatch(dby, "15 December 2014", 0)
	require.True(t, ok)
	assert.Equal(t, []string{"%B"}, match.Segments[2].Alternatives)

	// Case-insensitive.
	match, ok = m.TryMatch(dby, "15 DEC 2014", 0)
	require.True(t, ok)
	assert.Equal(t, []string{"%b"}, match.Segments[2].Alternatives)

	// A word run longer than the month name is one token and must not match.
	_, ok = m.TryMatch(dby, "15 Decx 2014", 0)
	assert.False(t, ok)
}

func TestTryMatch_Offset(t *testing.T) {
	m := newTestMatcher(t)
	bare := findRule(t, m, "ds.any.offset")

	match, ok := m.TryMatch(bare, "+0100", 0)
	require.True(t, ok)
	assert.Equal(t, 5, match.Length)

	_, ok = m.TryMatch(bare, "+2500", 0)
	assert.False(t, ok, "+2500 is not a valid offset")

	// Glued to a following digit the token is longer than the shape.
	_, ok = m.TryMatch(bare, "+01005", 0)
	assert.False(t, ok)
}

func TestCoverings_SimpleDate(t *testing.T) {
	m := newTestMatcher(t)

	coverings, err := m.Coverings("2014-12-15")
	require.NoError(t, err)
	require.NotEmpty(t, coverings)

	// The ymd pattern rule must be among the coverings.
	found := false
	for _, c := range coverings {
		if len(c) == 1 && c[0].RuleID == "ds.date.ymd" {
			found = true
		}
	}
	assert.True(t, found, "expected a single-match ds.date.ymd covering")

	// Every covering consumes the whole string.
	for _, c := range coverings {
		pos := 0
		for _, match := range c {
			assert.Equal(t, pos, match.Start)
			pos = match.End()
		}
		assert.Equal(t, len("2014-12-15"), pos)
	}
}

func TestCoverings_Unmatched(t *testing.T) {
	m := newTestMatcher(t)

	_, err := m.Coverings("definitely not a date")
	assert.ErrorIs(t, err, types.ErrUnmatched)

	_, err = m.Coverings("")
	assert.ErrorIs(t, err, types.ErrUnmatched)

	// Separator-only strings cover but carry no date information.
	_, err = m.Coverings("--//--")
	assert.ErrorIs(t, err, types.ErrUnmatched)
}

func TestCoverings_Cap(t *testing.T) {
	cat, err := rule.NewLoader().LoadBuiltinCatalog()
	require.NoError(t, err)

	m, err := New(Config{Catalog: cat, MaxCoverings: 3})
	require.NoError(t, err)

	coverings, err := m.Coverings("2014-12-15 13:05:59")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(coverings), 3)
}

func TestCoverAll(t *testing.T) {
	m := newTestMatcher(t)

	results, err := m.CoverAll([]string{"2014-12-15", "13:05:59"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.NotEmpty(t, results[0])
	assert.NotEmpty(t, results[1])
}

func TestCoverAll_FirstErrorByInputOrder(t *testing.T) {
	m := newTestMatcher(t)

	_, err := m.CoverAll([]string{"2014-12-15", "not a date", "also not a date"})
	require.ErrorIs(t, err, types.ErrUnmatched)
	assert.Contains(t, err.Error(), "not a date")
}
