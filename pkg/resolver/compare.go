package resolver

import "github.com/LanceJenkinZA/DateSense/pkg/types"

// The selection policy lives in these two functions and nowhere else, so
// it can be revised without touching matching or hypothesis generation.

// hypothesisBetter ranks satisfied hypotheses: aggregate weight, then
// aggregate priority, then fewer total matches (simpler sequences), then
// more common directives, then generation order for a stable final pick.
func hypothesisBetter(a, b *hypothesis) bool {
	if a.weight != b.weight {
		return a.weight > b.weight
	}
	if a.priority != b.priority {
		return a.priority > b.priority
	}
	if a.matches != b.matches {
		return a.matches < b.matches
	}
	if a.common != b.common {
		return a.common > b.common
	}
	return a.seq < b.seq
}

// coveringBetter ranks one string's coverings by the same criteria, used
// both to expand promising seed coverings first and to pick each string's
// contributing covering.
func coveringBetter(a, b types.Covering) bool {
	if a.Weight() != b.Weight() {
		return a.Weight() > b.Weight()
	}
	if a.Priority() != b.Priority() {
		return a.Priority() > b.Priority()
	}
	return len(a) < len(b)
}
