package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/LanceJenkinZA/DateSense/pkg/format"
	"github.com/LanceJenkinZA/DateSense/pkg/matcher"
	"github.com/LanceJenkinZA/DateSense/pkg/store"
	"github.com/LanceJenkinZA/DateSense/pkg/types"
	"github.com/spf13/cobra"
)

var (
	scanRulesPath    string
	scanRulesInclude string
	scanRulesExclude string
	scanOutputPath   string
	scanIncremental  bool
	scanMaxCoverings int
)

var scanCmd = &cobra.Command{
	Use:   "scan <target>...",
	Short: "Detect formats for files of date strings",
	Long: `Run format detection over one or more targets, each a file holding one
date string per line, or a directory scanned recursively for such files, and
record the results in a database for later reporting.

A file that fails detection is recorded with its failure kind rather than
aborting the scan.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanRulesPath, "rules", "", "Path to custom rules file")
	scanCmd.Flags().StringVar(&scanRulesInclude, "rules-include", "", "Include rules matching regex pattern (comma-separated)")
	scanCmd.Flags().StringVar(&scanRulesExclude, "rules-exclude", "", "Exclude rules matching regex pattern (comma-separated)")
	scanCmd.Flags().StringVar(&scanOutputPath, "output", "datesense.db", "Output database path")
	scanCmd.Flags().BoolVar(&scanIncremental, "incremental", false, "Skip files whose content was already scanned")
	scanCmd.Flags().IntVar(&scanMaxCoverings, "max-coverings", 0, "Limit coverings enumerated per string (0 = default)")
}

func runScan(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(scanRulesPath, scanRulesInclude, scanRulesExclude)
	if err != nil {
		return err
	}

	m, err := matcher.New(matcher.Config{
		Catalog:      cat,
		MaxCoverings: scanMaxCoverings,
	})
	if err != nil {
		return fmt.Errorf("creating matcher: %w", err)
	}

	s, err := store.New(store.Config{
		Path: scanOutputPath,
	})
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	defer s.Close()

	files, err := expandTargets(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	detected := 0
	failed := 0
	skipped := 0

	for _, path := range files {
		lines, err := readLines(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		sourceID := types.ComputeSourceID(lines)
		if scanIncremental {
			exists, err := s.RunExists(sourceID)
			if err != nil {
				return fmt.Errorf("checking run: %w", err)
			}
			if exists {
				skipped++
				continue
			}
		}

		run := &types.Run{
			SourceID:   sourceID,
			Source:     path,
			Lines:      len(lines),
			DetectedAt: time.Now(),
		}

		assignment, detectErr := detect(m, lines)
		switch {
		case detectErr == nil:
			run.Format = format.Assemble(assignment)
			detected++
			if !quiet {
				fmt.Fprintf(out, "%s: %s\n", path, run.Format)
			}
		case isDetectionFailure(detectErr):
			run.Failure = types.FailureKind(detectErr)
			failed++
			if !quiet {
				fmt.Fprintf(out, "%s: no format (%s)\n", path, run.Failure)
			}
		default:
			return fmt.Errorf("detecting %s: %w", path, detectErr)
		}

		if err := s.AddRun(run); err != nil {
			return fmt.Errorf("storing run: %w", err)
		}
	}

	if !quiet {
		fmt.Fprintf(out, "\nScanned %d file(s): %d detected, %d failed, %d skipped\n",
			len(files), detected, failed, skipped)
	}

	return nil
}

// expandTargets resolves scan arguments to files: directories are walked
// recursively, hidden entries skipped.
func expandTargets(args []string) ([]string, error) {
	var files []string
	for _, target := range args {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("target does not exist: %s", target)
		}
		if !info.IsDir() {
			files = append(files, target)
			continue
		}
		err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if strings.HasPrefix(d.Name(), ".") && path != target {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", target, err)
		}
	}
	return files, nil
}

// isDetectionFailure separates per-source detection outcomes, which the
// scan records and moves past, from real errors that abort it.
func isDetectionFailure(err error) bool {
	return errors.Is(err, types.ErrEmptyInput) ||
		errors.Is(err, types.ErrUnmatched) ||
		errors.Is(err, types.ErrInconsistent)
}
