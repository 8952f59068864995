package matcher

import (
	"fmt"
	"sync"

	"github.com/LanceJenkinZA/DateSense/pkg/types"
)

// Coverings returns every covering of s, up to the configured cap. Matches
// from different rules at the same offset are all retained as candidate
// edges; pruning between them is the resolver's job, because a locally
// weaker match may be the only one consistent across a batch.
//
// Coverings without a single directive slot are discarded: an all-literal
// covering carries no date information. A string with no directive-bearing
// covering fails with ErrUnmatched.
func (m *Matcher) Coverings(s string) ([]types.Covering, error) {
	n := len(s)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty string", types.ErrUnmatched)
	}

	candidates := m.pf.Filter(s)
	inSet := make(map[*types.Rule]bool, len(candidates))
	for _, r := range candidates {
		inSet[r] = true
	}

	// Candidate edges: edges[i] holds every match starting at offset i.
	// Rules are tried in catalog order so enumeration is deterministic.
	edges := make([][]*types.Match, n)
	for _, r := range m.rules {
		if !inSet[r] {
			continue
		}
		if r.Anchor != nil {
			if *r.Anchor < n {
				if match, ok := m.TryMatch(r, s, *r.Anchor); ok {
					edges[*r.Anchor] = append(edges[*r.Anchor], match)
				}
			}
			continue
		}
		for i := 0; i < n; i++ {
			if match, ok := m.TryMatch(r, s, i); ok {
				edges[i] = append(edges[i], match)
			}
		}
	}

	// Backward reachability lets the walk skip edges that cannot complete
	// a covering.
	can := make([]bool, n+1)
	can[n] = true
	for i := n - 1; i >= 0; i-- {
		for _, e := range edges[i] {
			if can[e.End()] {
				can[i] = true
				break
			}
		}
	}
	if !can[0] {
		return nil, fmt.Errorf("%w: %q cannot be fully covered by the rule set", types.ErrUnmatched, s)
	}

	var coverings []types.Covering
	var path []*types.Match
	var walk func(i int) bool
	walk = func(i int) bool {
		if i == n {
			covering := make(types.Covering, len(path))
			copy(covering, path)
			coverings = append(coverings, covering)
			return len(coverings) < m.maxCoverings
		}
		for _, e := range edges[i] {
			if !can[e.End()] {
				continue
			}
			path = append(path, e)
			ok := walk(e.End())
			path = path[:len(path)-1]
			if !ok {
				return false
			}
		}
		return true
	}
	walk(0)

	kept := coverings[:0]
	for _, c := range coverings {
		if c.Directives() > 0 {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: no date components recognized in %q", types.ErrUnmatched, s)
	}

	return kept, nil
}

// CoverAll computes coverings for a whole batch, one goroutine per string.
// The rule set is read-only so the fan-out needs no locking; the first
// error (by input order) aborts the batch.
func (m *Matcher) CoverAll(dates []string) ([][]types.Covering, error) {
	results := make([][]types.Covering, len(dates))
	errs := make([]error, len(dates))

	var wg sync.WaitGroup
	for i, s := range dates {
		wg.Add(1)
		go func(i int, s string) {
			defer wg.Done()
			results[i], errs[i] = m.Coverings(s)
		}(i, s)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
