package rule

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/LanceJenkinZA/DateSense/pkg/types"
)

// FilterConfig specifies include and exclude patterns for rule filtering.
type FilterConfig struct {
	Include []string // regex patterns - only matching rules included
	Exclude []string // regex patterns - matching rules excluded
}

// ParsePatterns splits a comma-separated string into individual patterns.
// Patterns are trimmed of whitespace.
func ParsePatterns(patterns string) []string {
	if patterns == "" {
		return []string{}
	}

	parts := strings.Split(patterns, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Filter applies include and exclude patterns to a catalog's rules, matched
// against rule IDs. Include is applied first, then exclude; empty include
// means "include all". The directive inventory is shared with the input
// catalog. Returns an error if any pattern is invalid regex.
func Filter(cat *types.Catalog, config FilterConfig) (*types.Catalog, error) {
	includeRegexes, err := compilePatterns(config.Include)
	if err != nil {
		return nil, err
	}
	excludeRegexes, err := compilePatterns(config.Exclude)
	if err != nil {
		return nil, err
	}

	filtered := cat.Rules
	if len(includeRegexes) > 0 {
		filtered = selectRules(filtered, includeRegexes, true)
	}
	if len(excludeRegexes) > 0 {
		filtered = selectRules(filtered, excludeRegexes, false)
	}

	return &types.Catalog{Directives: cat.Directives, Rules: filtered}, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	var regexes []*regexp.Regexp
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		regexes = append(regexes, re)
	}
	return regexes, nil
}

func selectRules(rules []*types.Rule, regexes []*regexp.Regexp, keepMatching bool) []*types.Rule {
	result := make([]*types.Rule, 0)
	for _, rule := range rules {
		if matchesAny(rule.ID, regexes) == keepMatching {
			result = append(result, rule)
		}
	}
	return result
}

func matchesAny(ruleID string, regexes []*regexp.Regexp) bool {
	for _, re := range regexes {
		if re.MatchString(ruleID) {
			return true
		}
	}
	return false
}
