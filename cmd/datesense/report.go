package main

import (
	"encoding/json"
	"fmt"

	"github.com/LanceJenkinZA/DateSense/pkg/store"
	"github.com/spf13/cobra"
)

var (
	reportDatabase string
	reportFormat   string
	reportColor    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a report from scan results",
	Long:  "Read detection runs from a database and output a summary report",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportDatabase, "database", "datesense.db", "Path to the scan database")
	reportCmd.Flags().StringVar(&reportFormat, "format", "human", "Output format: human, json")
	reportCmd.Flags().StringVar(&reportColor, "color", "auto", "Color output: auto, always, never")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportDatabase == ":memory:" {
		return fmt.Errorf("cannot report from in-memory store")
	}

	s, err := store.New(store.Config{
		Path: reportDatabase,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	runs, err := s.GetRuns()
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	out := cmd.OutOrStdout()

	switch reportFormat {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	case "human":
	default:
		return fmt.Errorf("unknown output format: %s", reportFormat)
	}

	s2 := newStyles(colorEnabled(reportColor))

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}

	detected := 0
	for _, r := range runs {
		if r.Format != "" {
			detected++
		}
	}
	fmt.Fprintf(out, "%s %s\n\n",
		s2.heading.Sprintf("%d run(s),", len(runs)),
		s2.metadata.Sprintf("%d with a detected format", detected))

	for i, r := range runs {
		fmt.Fprintf(out, "%s %s\n", s2.heading.Sprintf("Run %d:", i+1), r.Source)
		fmt.Fprintf(out, "  Source ID: %s\n", s2.metadata.Sprint(r.SourceID))
		fmt.Fprintf(out, "  Lines: %d\n", r.Lines)
		if r.Format != "" {
			fmt.Fprintf(out, "  Format: %s\n", s2.formatStr.Sprint(r.Format))
		} else {
			fmt.Fprintf(out, "  Failure: %s\n", s2.failure.Sprint(r.Failure))
		}
		fmt.Fprintf(out, "  Detected at: %s\n\n", r.DetectedAt.Format("2006-01-02 15:04:05 MST"))
	}

	return nil
}
