// Package datesense detects the strftime-style format shared by a batch
// of date strings.
//
// Given sample strings such as "2014-12-15 13:05:59", it infers the
// format "%Y-%m-%d %H:%M:%S" by matching a catalog of directive rules
// against every string and reconciling the ambiguities across the batch:
// a lone "03" could be a month, a day, or an hour, but the batch as a
// whole usually pins it down.
//
// # Basic Usage
//
// Create a detector with the builtin rule catalog and detect a format:
//
//	detector, err := datesense.NewDetector()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	format, err := detector.DetectFormat([]string{
//	    "15 Dec 2014",
//	    "9 Jan 2015",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(format) // %d %b %Y
//
// Or use the package-level convenience function:
//
//	format, err := datesense.DetectFormat([]string{"2014-12-15"})
//
// Detection failures are distinguishable with errors.Is: ErrEmptyInput,
// ErrUnmatched (a string no rule combination can explain), and
// ErrInconsistent (strings that individually match but share no format).
package datesense

import (
	"github.com/LanceJenkinZA/DateSense/pkg/format"
	"github.com/LanceJenkinZA/DateSense/pkg/matcher"
	"github.com/LanceJenkinZA/DateSense/pkg/resolver"
	"github.com/LanceJenkinZA/DateSense/pkg/rule"
	"github.com/LanceJenkinZA/DateSense/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/LanceJenkinZA/DateSense" without
// subpackages.
type (
	// Catalog bundles a directive inventory with the rules that reference it.
	Catalog = types.Catalog

	// Directive describes one strftime directive and its value constraints.
	Directive = types.Directive

	// Rule is one matchable pattern of literals and directive slots.
	Rule = types.Rule

	// Assignment is a fully resolved directive sequence, the pre-rendering
	// form of a detected format.
	Assignment = types.Assignment

	// Run records one detection over one source, as persisted by pkg/store.
	Run = types.Run
)

// Re-export failure sentinels.
var (
	ErrEmptyInput    = types.ErrEmptyInput
	ErrUnmatched     = types.ErrUnmatched
	ErrInconsistent  = types.ErrInconsistent
	ErrMalformedRule = types.ErrMalformedRule
)

// Detector infers date formats from sample strings.
// A Detector is immutable after construction and safe for concurrent use.
type Detector struct {
	matcher       *matcher.Matcher
	maxHypotheses int
}

// detectorConfig holds detector configuration.
type detectorConfig struct {
	catalog       *types.Catalog
	maxCoverings  int
	maxHypotheses int
}

// Option configures a Detector.
type Option func(*detectorConfig)

// WithCatalog uses a custom catalog instead of the builtin one.
func WithCatalog(cat *Catalog) Option {
	return func(c *detectorConfig) {
		c.catalog = cat
	}
}

// WithRules replaces the rule set while keeping the builtin directive
// inventory. Rules must reference builtin directive codes.
func WithRules(rules []*Rule) Option {
	return func(c *detectorConfig) {
		if c.catalog == nil {
			return
		}
		c.catalog = &types.Catalog{
			Directives: c.catalog.Directives,
			Rules:      rules,
		}
	}
}

// WithMaxCoverings limits how many coverings are enumerated per input
// string. Default is matcher.DefaultMaxCoverings.
func WithMaxCoverings(n int) Option {
	return func(c *detectorConfig) {
		c.maxCoverings = n
	}
}

// WithMaxHypotheses limits how many candidate directive sequences are
// tested per detection. Default is resolver.DefaultMaxHypotheses.
func WithMaxHypotheses(n int) Option {
	return func(c *detectorConfig) {
		c.maxHypotheses = n
	}
}

// NewDetector creates a new Detector with the given options.
//
// By default, the detector uses the builtin rule catalog and the default
// search caps. The catalog is validated here; a malformed catalog fails
// construction with an error wrapping ErrMalformedRule.
func NewDetector(opts ...Option) (*Detector, error) {
	cfg := &detectorConfig{}

	// Load the builtin catalog first so WithRules can inherit its
	// directive inventory even when applied alone.
	builtin, err := rule.NewLoader().LoadBuiltinCatalog()
	if err != nil {
		return nil, err
	}
	cfg.catalog = builtin

	for _, opt := range opts {
		opt(cfg)
	}

	m, err := matcher.New(matcher.Config{
		Catalog:      cfg.catalog,
		MaxCoverings: cfg.maxCoverings,
	})
	if err != nil {
		return nil, err
	}

	return &Detector{
		matcher:       m,
		maxHypotheses: cfg.maxHypotheses,
	}, nil
}

// DetectFormat infers the strftime format shared by all input strings.
// Percent signs in literal separators are escaped as %%.
func (d *Detector) DetectFormat(dates []string) (string, error) {
	a, err := d.DetectAssignment(dates)
	if err != nil {
		return "", err
	}
	return format.Assemble(a), nil
}

// DetectAssignment is DetectFormat without the final rendering, for
// callers that want the directive sequence itself.
func (d *Detector) DetectAssignment(dates []string) (*Assignment, error) {
	if len(dates) == 0 {
		return nil, types.ErrEmptyInput
	}

	coverings, err := d.matcher.CoverAll(dates)
	if err != nil {
		return nil, err
	}

	return resolver.Resolve(d.matcher.Catalog(), coverings, d.maxHypotheses)
}

// Catalog returns the detector's compiled catalog.
func (d *Detector) Catalog() *Catalog {
	return d.matcher.Catalog()
}

// DetectFormat infers a format using a detector with default options.
// For repeated calls, construct one Detector and reuse it.
func DetectFormat(dates []string) (string, error) {
	d, err := NewDetector()
	if err != nil {
		return "", err
	}
	return d.DetectFormat(dates)
}
