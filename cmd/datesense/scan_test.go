package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/LanceJenkinZA/DateSense/pkg/types"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetScanFlags(dbPath string) {
	scanRulesPath = ""
	scanRulesInclude = ""
	scanRulesExclude = ""
	scanOutputPath = dbPath
	scanIncremental = false
	scanMaxCoverings = 0
	verbose = false
	quiet = false
}

func writeDates(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunScan(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "scan.db")
	good := writeDates(t, dir, "good.txt", "2014-12-15\n2015-01-09\n")
	bad := writeDates(t, dir, "bad.txt", "definitely not a date\n")

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	resetScanFlags(dbPath)

	err := runScan(cmd, []string{good, bad})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "%Y-%m-%d")
	assert.Contains(t, output, "no format (unmatched)")
	assert.Contains(t, output, "1 detected, 1 failed")
}

func TestRunScan_Directory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "logs")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeDates(t, sub, "a.txt", "2014-12-15\n")
	writeDates(t, sub, "b.txt", "13:05:59\n")
	writeDates(t, sub, ".hidden.txt", "2014-12-15\n")

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	resetScanFlags(filepath.Join(dir, "scan.db"))

	require.NoError(t, runScan(cmd, []string{sub}))
	assert.Contains(t, buf.String(), "Scanned 2 file(s): 2 detected")
}

func TestRunScan_MissingTarget(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	resetScanFlags(filepath.Join(dir, "scan.db"))

	err := runScan(cmd, []string{filepath.Join(dir, "missing.txt")})
	assert.Error(t, err)
}

func TestRunScan_Incremental(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "scan.db")
	good := writeDates(t, dir, "good.txt", "2014-12-15\n")

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	resetScanFlags(dbPath)
	scanIncremental = true

	require.NoError(t, runScan(cmd, []string{good}))

	buf.Reset()
	require.NoError(t, runScan(cmd, []string{good}))
	assert.Contains(t, buf.String(), "1 skipped")
}

func TestRunScanThenReport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "scan.db")
	good := writeDates(t, dir, "good.txt", "15 Dec 2014\n9 Jan 2015\n")

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	resetScanFlags(dbPath)
	quiet = true
	require.NoError(t, runScan(cmd, []string{good}))

	// Human report
	buf.Reset()
	reportDatabase = dbPath
	reportFormat = "human"
	reportColor = "never"
	require.NoError(t, runReport(cmd, nil))

	output := buf.String()
	assert.Contains(t, output, "good.txt")
	assert.Contains(t, output, "%d %b %Y")

	// JSON report
	buf.Reset()
	reportFormat = "json"
	require.NoError(t, runReport(cmd, nil))

	var runs []*types.Run
	require.NoError(t, json.Unmarshal(buf.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "%d %b %Y", runs[0].Format)
	assert.Equal(t, 2, runs[0].Lines)
}

func TestRunReport_MemoryRejected(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	reportDatabase = ":memory:"
	err := runReport(cmd, nil)
	assert.Error(t, err)
}
