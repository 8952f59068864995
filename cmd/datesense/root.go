package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/LanceJenkinZA/DateSense/pkg/rule"
	"github.com/LanceJenkinZA/DateSense/pkg/types"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "datesense",
	Short: "DateSense - detect the format of date strings",
	Long: `DateSense infers the strftime-style format shared by a batch of date strings.
Given samples like "2014-12-15 13:05:59" it reports "%Y-%m-%d %H:%M:%S",
reconciling ambiguous fields (is "03" a month, a day, an hour?) across the batch.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadCatalog loads the builtin or a custom catalog and applies rule ID
// include/exclude filters. Shared by the detect and scan commands.
func loadCatalog(path, include, exclude string) (*types.Catalog, error) {
	loader := rule.NewLoader()

	var cat *types.Catalog
	var err error
	if path != "" {
		cat, err = loader.LoadCatalogFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading rules from %s: %w", path, err)
		}
	} else {
		cat, err = loader.LoadBuiltinCatalog()
		if err != nil {
			return nil, fmt.Errorf("loading builtin rules: %w", err)
		}
	}

	if include == "" && exclude == "" {
		return cat, nil
	}
	return rule.Filter(cat, rule.FilterConfig{
		Include: rule.ParsePatterns(include),
		Exclude: rule.ParsePatterns(exclude),
	})
}

// readLines reads non-empty lines from a file, or stdin when path is "-".
func readLines(path string) ([]string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return splitLines(data), nil
}

// splitLines splits raw input into trimmed, non-empty lines.
func splitLines(data []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
