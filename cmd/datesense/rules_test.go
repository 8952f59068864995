package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRulesList(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	// Reset flags for test
	rulesPath = ""
	outputFormat = "table"

	err := runRulesList(cmd, []string{})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "Pattern")
	assert.Contains(t, output, "ds.time.hms")
}

func TestRunRulesListJSON(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	rulesPath = ""
	outputFormat = "json"

	err := runRulesList(cmd, []string{})
	require.NoError(t, err)

	var rules []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rules))
	assert.NotEmpty(t, rules)
}

func TestRunRulesListUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	rulesPath = ""
	outputFormat = "xml"

	err := runRulesList(cmd, []string{})
	assert.Error(t, err)
}

func TestRunRulesDirectives(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	rulesPath = ""
	outputFormat = "table"

	err := runRulesDirectives(cmd, []string{})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Code")
	assert.Contains(t, output, "%d")
	assert.Contains(t, output, "1-31")
	assert.Contains(t, output, "jan")
}
