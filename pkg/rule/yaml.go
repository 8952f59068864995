package rule

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlPatternToken is one entry of a rule pattern in catalog YAML. A plain
// string is a literal; a list of strings is a set of directive alternatives.
type yamlPatternToken struct {
	Literal      string
	Alternatives []string
}

// UnmarshalYAML accepts either a scalar (literal) or a sequence
// (directive alternatives).
func (t *yamlPatternToken) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&t.Literal)
	case yaml.SequenceNode:
		return node.Decode(&t.Alternatives)
	default:
		return fmt.Errorf("line %d: pattern token must be a string or a list of directive codes", node.Line)
	}
}

// yamlDirective is the intermediate struct for a directive declaration.
type yamlDirective struct {
	Code      string   `yaml:"code"`
	Kind      string   `yaml:"kind"`
	Common    int      `yaml:"common"`
	Min       int      `yaml:"min,omitempty"`
	Max       int      `yaml:"max,omitempty"`
	Words     []string `yaml:"words,omitempty"`
	MinAbbrev int      `yaml:"min_abbrev,omitempty"`
	Shape     string   `yaml:"shape,omitempty"`
}

// yamlRule is the intermediate struct for a rule declaration.
type yamlRule struct {
	ID       string             `yaml:"id"`
	Name     string             `yaml:"name"`
	Priority int                `yaml:"priority"`
	Weight   int                `yaml:"weight"`
	Anchor   *int               `yaml:"anchor,omitempty"`
	Pattern  []yamlPatternToken `yaml:"pattern"`
	Keywords []string           `yaml:"keywords,omitempty"`
}

// yamlCatalogFile is the top-level structure of a catalog YAML file. A file
// may declare directives, rules, or both; the loader merges files.
type yamlCatalogFile struct {
	Directives []yamlDirective `yaml:"directives,omitempty"`
	Rules      []yamlRule      `yaml:"rules,omitempty"`
}
