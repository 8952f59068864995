package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/LanceJenkinZA/DateSense/pkg/types"
	"github.com/spf13/cobra"
)

var (
	rulesPath    string
	outputFormat string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage detection rules",
	Long:  "Commands for listing and inspecting the rule catalog",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available rules",
	Long:  "Display all rules in the catalog with their IDs, patterns, and weights",
	RunE:  runRulesList,
}

var rulesDirectivesCmd = &cobra.Command{
	Use:   "directives",
	Short: "List known directives",
	Long:  "Display the directive inventory with value ranges and word lists",
	RunE:  runRulesDirectives,
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesDirectivesCmd)
	rulesCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "Path to custom rules file")
	rulesCmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format: table, json")
}

func runRulesList(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(rulesPath, "", "")
	if err != nil {
		return err
	}

	switch outputFormat {
	case "json":
		return outputRulesJSON(cmd, cat.Rules)
	case "table":
		return outputRulesTable(cmd, cat.Rules)
	default:
		return fmt.Errorf("unknown output format: %s", outputFormat)
	}
}

func runRulesDirectives(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(rulesPath, "", "")
	if err != nil {
		return err
	}

	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(cat.Directives)
	case "table":
		return outputDirectivesTable(cmd, cat.Directives)
	default:
		return fmt.Errorf("unknown output format: %s", outputFormat)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func outputRulesJSON(cmd *cobra.Command, rules []*types.Rule) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(rules)
}

func outputRulesTable(cmd *cobra.Command, rules []*types.Rule) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID\tName\tWeight\tPriority\tPattern\n")
	fmt.Fprintf(w, "--\t----\t------\t--------\t-------\n")

	for _, r := range rules {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", r.ID, r.Name, r.Weight, r.Priority, patternString(r))
	}

	return nil
}

func outputDirectivesTable(cmd *cobra.Command, directives []*types.Directive) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Code\tKind\tRange\tWords\n")
	fmt.Fprintf(w, "----\t----\t-----\t-----\n")

	for _, d := range directives {
		rng := ""
		if d.Kind == types.KindNumber {
			rng = fmt.Sprintf("%d-%d", d.Min, d.Max)
		}
		words := ""
		if len(d.Words) > 0 {
			words = d.Words[0]
			if len(d.Words) > 1 {
				words += fmt.Sprintf(" (+%d)", len(d.Words)-1)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Code, d.Kind, rng, words)
	}

	return nil
}

// patternString renders a rule pattern compactly: literals quoted, slots
// as their alternatives joined with "|".
func patternString(r *types.Rule) string {
	var parts []string
	for _, tok := range r.Pattern {
		if tok.IsLiteral() {
			parts = append(parts, fmt.Sprintf("%q", tok.Literal))
			continue
		}
		parts = append(parts, "["+strings.Join(tok.Alternatives, "|")+"]")
	}
	return strings.Join(parts, " ")
}
