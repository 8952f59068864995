package rule

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/LanceJenkinZA/DateSense/pkg/types"
	"gopkg.in/yaml.v3"
)

// Loader handles loading catalogs from YAML files.
type Loader struct {
	fs fs.FS // embedded filesystem for the built-in catalog
}

// NewLoader creates a loader backed by the built-in catalog.
func NewLoader() *Loader {
	return &Loader{fs: builtinCatalogFS}
}

// NewLoaderWithFS creates a loader with a custom filesystem.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{fs: fsys}
}

// LoadCatalog loads a catalog from YAML bytes. The result is validated and
// prefilter keywords are derived for rules that declare none.
func (l *Loader) LoadCatalog(data []byte) (*types.Catalog, error) {
	var yamlFile yamlCatalogFile
	if err := yaml.Unmarshal(data, &yamlFile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cat := &types.Catalog{}
	mergeYAMLCatalog(cat, &yamlFile)

	if err := finishCatalog(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// LoadCatalogFile loads a catalog from a YAML file path.
func (l *Loader) LoadCatalogFile(path string) (*types.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return l.LoadCatalog(data)
}

// LoadBuiltinCatalog loads the built-in catalog from the embedded
// filesystem, merging all catalog files.
func (l *Loader) LoadBuiltinCatalog() (*types.Catalog, error) {
	cat := &types.Catalog{}

	var paths []string
	err := fs.WalkDir(l.fs, "catalog", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".yml" {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Deterministic merge order regardless of walk order, so rule and
	// directive ordering is stable across runs.
	sort.Strings(paths)

	for _, path := range paths {
		data, err := fs.ReadFile(l.fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		var yamlFile yamlCatalogFile
		if err := yaml.Unmarshal(data, &yamlFile); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		mergeYAMLCatalog(cat, &yamlFile)
	}

	if err := finishCatalog(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// mergeYAMLCatalog appends the converted declarations of one YAML file.
func mergeYAMLCatalog(cat *types.Catalog, yamlFile *yamlCatalogFile) {
	for _, yd := range yamlFile.Directives {
		cat.Directives = append(cat.Directives, convertYAMLDirective(yd))
	}
	for _, yr := range yamlFile.Rules {
		cat.Rules = append(cat.Rules, convertYAMLRule(yr))
	}
}

// finishCatalog validates the merged catalog and derives rule keywords.
func finishCatalog(cat *types.Catalog) error {
	if err := ValidateCatalog(cat); err != nil {
		return err
	}
	for _, r := range cat.Rules {
		if len(r.Keywords) == 0 {
			r.Keywords = deriveKeywords(cat, r)
		}
	}
	return nil
}

func convertYAMLDirective(yd yamlDirective) *types.Directive {
	words := make([]string, len(yd.Words))
	for i, w := range yd.Words {
		words[i] = strings.ToLower(w)
	}
	return &types.Directive{
		Code:      yd.Code,
		Kind:      types.DirectiveKind(yd.Kind),
		Common:    yd.Common,
		Min:       yd.Min,
		Max:       yd.Max,
		Words:     words,
		MinAbbrev: yd.MinAbbrev,
		Shape:     yd.Shape,
	}
}

func convertYAMLRule(yr yamlRule) *types.Rule {
	r := &types.Rule{
		ID:       yr.ID,
		Name:     yr.Name,
		Priority: yr.Priority,
		Weight:   yr.Weight,
		Anchor:   yr.Anchor,
		Keywords: yr.Keywords,
	}
	for _, yt := range yr.Pattern {
		r.Pattern = append(r.Pattern, types.PatternToken{
			Literal:      yt.Literal,
			Alternatives: yt.Alternatives,
		})
	}
	return r
}

// deriveKeywords collects prefilter keywords from the rule's word slots.
// Only slots whose every alternative is a word directive contribute: such a
// slot can only match when one of its words is present, so the keywords are
// a sound prefilter. Words are truncated to MinAbbrev so partial matches in
// the input still hit a keyword. Rules without a pure word slot get no
// keywords and are always tried.
func deriveKeywords(cat *types.Catalog, r *types.Rule) []string {
	seen := make(map[string]bool)
	var keywords []string
	for _, tok := range r.Pattern {
		if tok.IsLiteral() || !allWordAlternatives(cat, tok) {
			continue
		}
		for _, code := range tok.Alternatives {
			d := cat.Directive(code)
			for _, w := range d.Words {
				if d.MinAbbrev > 0 && len(w) > d.MinAbbrev {
					w = w[:d.MinAbbrev]
				}
				if !seen[w] {
					seen[w] = true
					keywords = append(keywords, w)
				}
			}
		}
	}
	return keywords
}

func allWordAlternatives(cat *types.Catalog, tok types.PatternToken) bool {
	for _, code := range tok.Alternatives {
		d := cat.Directive(code)
		if d == nil || d.Kind != types.KindWord {
			return false
		}
	}
	return true
}
