package resolver

import (
	"fmt"
	"sort"

	"github.com/LanceJenkinZA/DateSense/pkg/types"
)

// DefaultMaxHypotheses caps how many concrete directive sequences are
// generated per detection call, bounding the search on adversarial rule
// sets with many overlapping matches.
const DefaultMaxHypotheses = 4096

// Resolve reconciles per-string coverings into one directive assignment
// that every input admits: same directive order, same literal separators,
// every ambiguity collapsed to the same directive for all strings.
//
// Hypotheses are generated from the seed string (fewest coverings, ties to
// the first input): each of its coverings expands into concrete directive
// sequences, highest-weight coverings first so the cap trims only the
// low-scoring tail. Every string, seed included, is then scored against
// each hypothesis symmetrically, which keeps the result independent of
// input order.
func Resolve(cat *types.Catalog, coverings [][]types.Covering, maxHypotheses int) (*types.Assignment, error) {
	if len(coverings) == 0 {
		return nil, fmt.Errorf("%w: no coverings to resolve", types.ErrEmptyInput)
	}
	if maxHypotheses <= 0 {
		maxHypotheses = DefaultMaxHypotheses
	}

	seed := seedIndex(coverings)

	// Expand the seed's coverings into concrete hypotheses, best coverings
	// first.
	seedCoverings := make([]types.Covering, len(coverings[seed]))
	copy(seedCoverings, coverings[seed])
	sort.SliceStable(seedCoverings, func(i, j int) bool {
		return coveringBetter(seedCoverings[i], seedCoverings[j])
	})

	var hypotheses []*hypothesis
	for _, cov := range seedCoverings {
		if len(hypotheses) >= maxHypotheses {
			break
		}
		for _, segs := range expandCovering(cov, maxHypotheses-len(hypotheses)) {
			hypotheses = append(hypotheses, &hypothesis{
				segments: segs,
				seq:      len(hypotheses),
			})
		}
	}

	// Score each hypothesis against every string. A hypothesis survives
	// only if every string has a covering instantiating it; the best
	// satisfying covering per string contributes to the aggregate.
	var best *hypothesis
	for _, h := range hypotheses {
		if !scoreHypothesis(cat, h, coverings) {
			continue
		}
		if best == nil || hypothesisBetter(h, best) {
			best = h
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: no directive sequence is consistent across all %d inputs", types.ErrInconsistent, len(coverings))
	}

	return &types.Assignment{Segments: best.segments}, nil
}

// hypothesis is one concrete directive sequence under evaluation, with its
// aggregate score across the batch.
type hypothesis struct {
	segments []types.ResolvedSegment
	weight   int
	priority int
	matches  int
	common   int
	seq      int
}

// seedIndex picks the string whose covering set is smallest; ties go to
// the earliest input.
func seedIndex(coverings [][]types.Covering) int {
	seed := 0
	for i, c := range coverings {
		if len(c) < len(coverings[seed]) {
			seed = i
		}
	}
	return seed
}

// expandCovering turns one covering into concrete segment sequences by
// taking the product of every slot's surviving alternatives, in slot
// order. Expansion stops at limit.
func expandCovering(cov types.Covering, limit int) [][]types.ResolvedSegment {
	segs := cov.Segments()

	var results [][]types.ResolvedSegment
	current := make([]types.ResolvedSegment, len(segs))

	var expand func(i int) bool
	expand = func(i int) bool {
		if len(results) >= limit {
			return false
		}
		if i == len(segs) {
			sequence := make([]types.ResolvedSegment, len(current))
			copy(sequence, current)
			results = append(results, sequence)
			return true
		}
		if segs[i].IsLiteral() {
			current[i] = types.ResolvedSegment{Literal: segs[i].Literal}
			return expand(i + 1)
		}
		for _, code := range segs[i].Alternatives {
			current[i] = types.ResolvedSegment{Directive: code}
			if !expand(i + 1) {
				return false
			}
		}
		return true
	}
	expand(0)

	return results
}

// scoreHypothesis checks that every string admits the hypothesis and
// accumulates the aggregate score from each string's best satisfying
// covering. Returns false if any string has none.
func scoreHypothesis(cat *types.Catalog, h *hypothesis, coverings [][]types.Covering) bool {
	h.weight, h.priority, h.matches = 0, 0, 0

	for _, stringCoverings := range coverings {
		var best types.Covering
		for _, cov := range stringCoverings {
			if !satisfies(cov, h.segments) {
				continue
			}
			if best == nil || coveringBetter(cov, best) {
				best = cov
			}
		}
		if best == nil {
			return false
		}
		h.weight += best.Weight()
		h.priority += best.Priority()
		h.matches += len(best)
	}

	h.common = 0
	for _, seg := range h.segments {
		if seg.Directive == "" {
			continue
		}
		if d := cat.Directive(seg.Directive); d != nil {
			h.common += d.Common
		}
	}
	return true
}

// satisfies reports whether a covering instantiates the concrete sequence:
// same segment structure, identical literals, and every directive among
// the covering's surviving alternatives at that slot.
func satisfies(cov types.Covering, segments []types.ResolvedSegment) bool {
	segs := cov.Segments()
	if len(segs) != len(segments) {
		return false
	}
	for i, want := range segments {
		if want.Directive == "" {
			if !segs[i].IsLiteral() || segs[i].Literal != want.Literal {
				return false
			}
			continue
		}
		if segs[i].IsLiteral() {
			return false
		}
		found := false
		for _, code := range segs[i].Alternatives {
			if code == want.Directive {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
