package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/LanceJenkinZA/DateSense/pkg/format"
	"github.com/LanceJenkinZA/DateSense/pkg/matcher"
	"github.com/LanceJenkinZA/DateSense/pkg/resolver"
	"github.com/LanceJenkinZA/DateSense/pkg/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	detectInput        string
	detectRulesPath    string
	detectRulesInclude string
	detectRulesExclude string
	detectOutputFormat string
	detectColor        string
	detectSample       bool
	detectMaxCoverings int
)

// styles holds color formatters for human-readable output.
type styles struct {
	heading   *color.Color
	formatStr *color.Color
	directive *color.Color
	metadata  *color.Color
	failure   *color.Color
}

// newStyles creates color formatters for detect output.
// enabled=false respects --color=never and the NO_COLOR env var.
func newStyles(enabled bool) *styles {
	s := &styles{
		heading:   color.New(color.Bold),
		formatStr: color.New(color.Bold, color.FgHiGreen),
		directive: color.New(color.FgHiBlue),
		metadata:  color.New(color.FgHiBlack),
		failure:   color.New(color.Bold, color.FgHiRed),
	}

	if !enabled {
		s.heading.DisableColor()
		s.formatStr.DisableColor()
		s.directive.DisableColor()
		s.metadata.DisableColor()
		s.failure.DisableColor()
	}

	return s
}

// colorEnabled resolves the --color flag against the terminal.
func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// detectResult is the JSON output shape of the detect command.
type detectResult struct {
	Format     string   `json:"format,omitempty"`
	Directives []string `json:"directives,omitempty"`
	Sample     string   `json:"sample,omitempty"`
	Lines      int      `json:"lines"`
	Failure    string   `json:"failure,omitempty"`
	Error      string   `json:"error,omitempty"`
}

var detectCmd = &cobra.Command{
	Use:   "detect [date strings...]",
	Short: "Detect the format of date strings",
	Long: `Detect the strftime-style format shared by the given date strings.

Strings come from arguments, from --input (a file of one date per line,
or "-" for stdin), or from stdin when neither is given.`,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().StringVarP(&detectInput, "input", "i", "", `Input file, one date per line ("-" for stdin)`)
	detectCmd.Flags().StringVar(&detectRulesPath, "rules", "", "Path to custom rules file")
	detectCmd.Flags().StringVar(&detectRulesInclude, "rules-include", "", "Include rules matching regex pattern (comma-separated)")
	detectCmd.Flags().StringVar(&detectRulesExclude, "rules-exclude", "", "Exclude rules matching regex pattern (comma-separated)")
	detectCmd.Flags().StringVar(&detectOutputFormat, "format", "human", "Output format: human, json")
	detectCmd.Flags().StringVar(&detectColor, "color", "auto", "Color output: auto, always, never")
	detectCmd.Flags().BoolVar(&detectSample, "sample", false, "Render the current time in the detected format")
	detectCmd.Flags().IntVar(&detectMaxCoverings, "max-coverings", 0, "Limit coverings enumerated per string (0 = default)")
}

func runDetect(cmd *cobra.Command, args []string) error {
	dates := args
	if len(dates) == 0 {
		input := detectInput
		if input == "" {
			input = "-"
		}
		lines, err := readLines(input)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		dates = lines
	}

	cat, err := loadCatalog(detectRulesPath, detectRulesInclude, detectRulesExclude)
	if err != nil {
		return err
	}

	m, err := matcher.New(matcher.Config{
		Catalog:      cat,
		MaxCoverings: detectMaxCoverings,
	})
	if err != nil {
		return fmt.Errorf("creating matcher: %w", err)
	}

	assignment, detectErr := detect(m, dates)

	switch detectOutputFormat {
	case "json":
		return outputDetectJSON(cmd, assignment, len(dates), detectErr)
	case "human":
		return outputDetectHuman(cmd, assignment, dates, detectErr)
	default:
		return fmt.Errorf("unknown output format: %s", detectOutputFormat)
	}
}

func detect(m *matcher.Matcher, dates []string) (*types.Assignment, error) {
	if len(dates) == 0 {
		return nil, types.ErrEmptyInput
	}
	coverings, err := m.CoverAll(dates)
	if err != nil {
		return nil, err
	}
	return resolver.Resolve(m.Catalog(), coverings, 0)
}

// =============================================================================
// OUTPUT
// =============================================================================

func outputDetectJSON(cmd *cobra.Command, a *types.Assignment, lines int, detectErr error) error {
	result := detectResult{Lines: lines}
	if detectErr != nil {
		result.Failure = types.FailureKind(detectErr)
		result.Error = detectErr.Error()
	} else {
		result.Format = format.Assemble(a)
		result.Directives = a.Directives()
		if detectSample {
			result.Sample = format.Sample(result.Format, time.Now())
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return err
	}
	if detectErr != nil {
		return detectErr
	}
	return nil
}

func outputDetectHuman(cmd *cobra.Command, a *types.Assignment, dates []string, detectErr error) error {
	out := cmd.OutOrStdout()
	s := newStyles(colorEnabled(detectColor))

	if detectErr != nil {
		fmt.Fprintf(out, "%s %s\n", s.failure.Sprint("detection failed:"), detectErr)
		return detectErr
	}

	formatStr := format.Assemble(a)
	fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Format:"), s.formatStr.Sprint(formatStr))

	if verbose {
		fmt.Fprintf(out, "%s\n", s.heading.Sprint("Directives:"))
		for _, code := range a.Directives() {
			fmt.Fprintf(out, "  %s\n", s.directive.Sprint(code))
		}
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Inputs:"), s.metadata.Sprintf("%d", len(dates)))
	}

	if detectSample {
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Sample:"), format.Sample(formatStr, time.Now()))
	}

	return nil
}
