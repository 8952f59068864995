package rule

import (
	"fmt"

	"github.com/LanceJenkinZA/DateSense/pkg/types"
	"github.com/dlclark/regexp2"
)

// ValidateCatalog checks every directive and rule in a catalog. Structural
// problems are rejected here, at construction time, never deferred to
// matching time.
func ValidateCatalog(cat *types.Catalog) error {
	if cat == nil {
		return fmt.Errorf("%w: catalog is nil", types.ErrMalformedRule)
	}
	if len(cat.Directives) == 0 {
		return fmt.Errorf("%w: catalog declares no directives", types.ErrMalformedRule)
	}

	seen := make(map[string]bool)
	for _, d := range cat.Directives {
		if err := ValidateDirective(d); err != nil {
			return err
		}
		if seen[d.Code] {
			return fmt.Errorf("%w: duplicate directive %s", types.ErrMalformedRule, d.Code)
		}
		seen[d.Code] = true
	}

	seenRules := make(map[string]bool)
	for _, r := range cat.Rules {
		if err := ValidateRule(r, cat); err != nil {
			return err
		}
		if seenRules[r.ID] {
			return fmt.Errorf("%w: duplicate rule ID %s", types.ErrMalformedRule, r.ID)
		}
		seenRules[r.ID] = true
	}

	return nil
}

// ValidateDirective checks one directive declaration.
func ValidateDirective(d *types.Directive) error {
	if d == nil {
		return fmt.Errorf("%w: directive is nil", types.ErrMalformedRule)
	}
	if d.Code == "" {
		return fmt.Errorf("%w: directive code is required", types.ErrMalformedRule)
	}

	switch d.Kind {
	case types.KindNumber:
		if d.Min < 0 || d.Max < d.Min {
			return fmt.Errorf("%w: directive %s has invalid range [%d, %d]", types.ErrMalformedRule, d.Code, d.Min, d.Max)
		}
	case types.KindWord:
		if len(d.Words) == 0 {
			return fmt.Errorf("%w: word directive %s declares no words", types.ErrMalformedRule, d.Code)
		}
		for _, w := range d.Words {
			if w == "" {
				return fmt.Errorf("%w: word directive %s declares an empty word", types.ErrMalformedRule, d.Code)
			}
		}
	case types.KindOffset:
		if d.Shape == "" {
			return fmt.Errorf("%w: offset directive %s declares no shape", types.ErrMalformedRule, d.Code)
		}
		if _, err := regexp2.Compile(d.Shape, regexp2.None); err != nil {
			return fmt.Errorf("%w: offset directive %s has invalid shape %q: %v", types.ErrMalformedRule, d.Code, d.Shape, err)
		}
	default:
		return fmt.Errorf("%w: directive %s has unknown kind %q", types.ErrMalformedRule, d.Code, d.Kind)
	}

	return nil
}

// ValidateRule checks one rule against the catalog's directive inventory.
func ValidateRule(r *types.Rule, cat *types.Catalog) error {
	if r == nil {
		return fmt.Errorf("%w: rule is nil", types.ErrMalformedRule)
	}
	if r.ID == "" {
		return fmt.Errorf("%w: rule ID is required", types.ErrMalformedRule)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: rule %s: name is required", types.ErrMalformedRule, r.ID)
	}
	if len(r.Pattern) == 0 {
		return fmt.Errorf("%w: rule %s: empty pattern", types.ErrMalformedRule, r.ID)
	}
	if r.Anchor != nil && *r.Anchor < 0 {
		return fmt.Errorf("%w: rule %s: negative anchor %d", types.ErrMalformedRule, r.ID, *r.Anchor)
	}

	for i, tok := range r.Pattern {
		if tok.IsLiteral() {
			if tok.Literal == "" {
				return fmt.Errorf("%w: rule %s: pattern token %d is an empty literal", types.ErrMalformedRule, r.ID, i)
			}
			continue
		}
		if tok.Literal != "" {
			return fmt.Errorf("%w: rule %s: pattern token %d mixes a literal with alternatives", types.ErrMalformedRule, r.ID, i)
		}
		seen := make(map[string]bool)
		for _, code := range tok.Alternatives {
			if cat.Directive(code) == nil {
				return fmt.Errorf("%w: rule %s: unknown directive %s", types.ErrMalformedRule, r.ID, code)
			}
			if seen[code] {
				return fmt.Errorf("%w: rule %s: pattern token %d repeats directive %s", types.ErrMalformedRule, r.ID, i, code)
			}
			seen[code] = true
		}
	}

	return nil
}
