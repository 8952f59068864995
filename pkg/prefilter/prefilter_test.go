package prefilter

import (
	"testing"

	"github.com/LanceJenkinZA/DateSense/pkg/types"
)

func testRules() []*types.Rule {
	return []*types.Rule{
		{ID: "numeric", Pattern: []types.PatternToken{{Alternatives: []string{"%d"}}}},
		{ID: "worded", Keywords: []string{"jan", "feb", "mar"}},
		{ID: "meridiem", Keywords: []string{"am", "pm"}},
	}
}

func ruleIDs(rules []*types.Rule) map[string]bool {
	ids := make(map[string]bool, len(rules))
	for _, r := range rules {
		ids[r.ID] = true
	}
	return ids
}

func TestFilter_KeywordHit(t *testing.T) {
	pf := New(testRules())

	ids := ruleIDs(pf.Filter("15 Jan 2014"))
	if !ids["worded"] {
		t.Error("expected worded rule for input containing jan")
	}
	if !ids["numeric"] {
		t.Error("keyword-less rules must always be tried")
	}
	if ids["meridiem"] {
		t.Error("meridiem rule should be filtered out without am/pm")
	}
}

func TestFilter_CaseInsensitive(t *testing.T) {
	pf := New(testRules())

	ids := ruleIDs(pf.Filter("15 JAN 2014"))
	if !ids["worded"] {
		t.Error("keyword matching must be case-insensitive")
	}
}

func TestFilter_NoKeywordHits(t *testing.T) {
	pf := New(testRules())

	ids := ruleIDs(pf.Filter("2014-12-15"))
	if len(ids) != 1 || !ids["numeric"] {
		t.Errorf("expected only the keyword-less rule, got %v", ids)
	}
}

func TestFilter_NoKeywordRulesAtAll(t *testing.T) {
	pf := New([]*types.Rule{
		{ID: "a"},
		{ID: "b"},
	})

	ids := ruleIDs(pf.Filter("anything"))
	if len(ids) != 2 {
		t.Errorf("expected both rules, got %v", ids)
	}
}

func TestFilter_RuleNotDuplicated(t *testing.T) {
	// A rule with several keywords present in the input must appear once.
	pf := New([]*types.Rule{
		{ID: "months", Keywords: []string{"jan", "feb"}},
	})

	rules := pf.Filter("jan feb")
	if len(rules) != 1 {
		t.Errorf("expected rule once, got %d entries", len(rules))
	}
}
