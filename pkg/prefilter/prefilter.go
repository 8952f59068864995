package prefilter

import (
	"strings"

	"github.com/LanceJenkinZA/DateSense/pkg/types"
	"github.com/cloudflare/ahocorasick"
)

// Prefilter uses Aho-Corasick keyword matching to cut the rule set down to
// the rules that can possibly match one input string. Rules that declare no
// keywords are always tried.
type Prefilter struct {
	matcher        *ahocorasick.Matcher
	keywords       []string                 // keyword at each index
	keywordRules   map[string][]*types.Rule // keyword -> rules needing it
	noKeywordRules []*types.Rule            // rules without keywords (always tried)
}

// New creates a prefilter from rules.
func New(rules []*types.Rule) *Prefilter {
	pf := &Prefilter{
		keywordRules:   make(map[string][]*types.Rule),
		noKeywordRules: make([]*types.Rule, 0),
	}

	keywordSet := make(map[string]bool)
	for _, rule := range rules {
		if len(rule.Keywords) == 0 {
			pf.noKeywordRules = append(pf.noKeywordRules, rule)
			continue
		}
		for _, keyword := range rule.Keywords {
			if !keywordSet[keyword] {
				keywordSet[keyword] = true
				pf.keywords = append(pf.keywords, keyword)
			}
			pf.keywordRules[keyword] = append(pf.keywordRules[keyword], rule)
		}
	}

	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}

	return pf
}

// Filter returns the rules that might match input: rules with a keyword
// present in the lowercased input, plus every keyword-less rule. Callers
// that care about rule order should treat the result as a set.
func (pf *Prefilter) Filter(input string) []*types.Rule {
	result := make([]*types.Rule, 0, len(pf.noKeywordRules))
	result = append(result, pf.noKeywordRules...)

	if pf.matcher == nil {
		return result
	}

	hits := pf.matcher.Match([]byte(strings.ToLower(input)))

	seenRules := make(map[*types.Rule]bool)
	for _, rule := range pf.noKeywordRules {
		seenRules[rule] = true
	}

	for _, hit := range hits {
		keyword := pf.keywords[hit]
		for _, rule := range pf.keywordRules[keyword] {
			if !seenRules[rule] {
				seenRules[rule] = true
				result = append(result, rule)
			}
		}
	}

	return result
}
