package matcher

import (
	"fmt"

	"github.com/LanceJenkinZA/DateSense/pkg/prefilter"
	"github.com/LanceJenkinZA/DateSense/pkg/rule"
	"github.com/LanceJenkinZA/DateSense/pkg/types"
	"github.com/dlclark/regexp2"
)

// DefaultMaxCoverings caps how many coverings are enumerated per string.
// The covering search is exhaustive and rule sets with many overlapping
// matches can explode combinatorially; the cap guarantees termination.
const DefaultMaxCoverings = 4096

// Config for matcher initialization.
type Config struct {
	// Catalog supplies the directive inventory and rules to compile.
	Catalog *types.Catalog

	// MaxCoverings limits coverings enumerated per string (0 = default).
	MaxCoverings int
}

// Matcher finds, for one string at a time, every covering: a contiguous,
// non-overlapping sequence of rule matches consuming the whole string.
// A Matcher is immutable after construction and safe for concurrent use.
type Matcher struct {
	catalog      *types.Catalog
	rules        []*types.Rule // catalog order
	shapes       map[string]*regexp2.Regexp
	pf           *prefilter.Prefilter
	maxCoverings int
}

// New compiles a catalog into a Matcher. Malformed rules and directives are
// rejected here, never at matching time.
func New(cfg Config) (*Matcher, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if err := rule.ValidateCatalog(cfg.Catalog); err != nil {
		return nil, err
	}

	maxCoverings := cfg.MaxCoverings
	if maxCoverings <= 0 {
		maxCoverings = DefaultMaxCoverings
	}

	m := &Matcher{
		catalog:      cfg.Catalog,
		rules:        cfg.Catalog.Rules,
		shapes:       make(map[string]*regexp2.Regexp),
		pf:           prefilter.New(cfg.Catalog.Rules),
		maxCoverings: maxCoverings,
	}

	// Pre-compile offset shapes, anchored at the match position.
	for _, d := range cfg.Catalog.Directives {
		if d.Kind != types.KindOffset {
			continue
		}
		re, err := regexp2.Compile("^(?:"+d.Shape+")", regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("compiling shape for %s: %w", d.Code, err)
		}
		m.shapes[d.Code] = re
	}

	return m, nil
}

// Catalog returns the compiled catalog.
func (m *Matcher) Catalog() *types.Catalog {
	return m.catalog
}
