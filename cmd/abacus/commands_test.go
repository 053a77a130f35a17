package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quoteDoc = `
symbols:
  - name: turnover
    namespace: quote
    expr: {const: 150000}
  - name: premium
    expr:
      lookup:
        path: bands.csv
        filters:
          - range: {min: min, max: max, value: {symbol: {name: turnover, namespace: quote}}}
        columns: [premium]
  - name: missing
    expr:
      lookup:
        path: bands.csv
        filters:
          - exact: {column: premium, value: 99}
  - name: broken
    expr: {infix: {left: "a", op: "-", right: 1}}
outputs: [premium, missing]
`

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bands.csv"),
		[]byte("min,max,premium\n0,100000,10\n100000,200000,15\n"), 0o600))
	path := filepath.Join(dir, "quote.yaml")
	require.NoError(t, os.WriteFile(path, []byte(quoteDoc), 0o600))
	return path
}

func run(t *testing.T, cmd *EvalCmd, configPath string) (string, error) {
	t.Helper()
	color.NoColor = true
	var out bytes.Buffer
	err := cmd.Run(&Context{Config: configPath, Stdout: &out})
	return out.String(), err
}

func TestEval_Text(t *testing.T) {
	out, err := run(t, &EvalCmd{File: writeFixtures(t)}, "")
	require.NoError(t, err)
	assert.Equal(t, "premium = \"15\"\nmissing = <absent>\n", out)
}

func TestEval_SetOverridesConstant(t *testing.T) {
	cmd := &EvalCmd{
		File:   writeFixtures(t),
		Output: []string{"premium", "quote.turnover"},
		Set:    []string{"quote.turnover=50000"},
	}
	out, err := run(t, cmd, "")
	require.NoError(t, err)
	assert.Equal(t, "premium = \"10\"\nquote.turnover = 50000\n", out)
}

func TestEval_ErrorExitsNonZero(t *testing.T) {
	out, err := run(t, &EvalCmd{File: writeFixtures(t), Output: []string{"broken"}}, "")
	assert.ErrorIs(t, err, ErrOutputsFailed)
	assert.Contains(t, out, "broken: operator error:")
}

func TestEval_JSON(t *testing.T) {
	cmd := &EvalCmd{File: writeFixtures(t), Output: []string{"premium", "broken"}, JSON: true, Inspect: true}
	out, err := run(t, cmd, "")
	require.ErrorIs(t, err, ErrOutputsFailed)

	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)

	assert.Equal(t, "premium", results[0]["name"])
	assert.Equal(t, "present", results[0]["status"])
	assert.Equal(t, "15", results[0]["value"])
	inspected, ok := results[0]["inspect"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "premium", inspected["label"])

	assert.Equal(t, "error", results[1]["status"])
	assert.Equal(t, "operator", results[1]["category"])
}

func TestEval_Settings(t *testing.T) {
	doc := writeFixtures(t)
	settings := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("lookup:\n  base_dir: /nonexistent\n"), 0o600))

	out, err := run(t, &EvalCmd{File: doc, Output: []string{"premium"}}, settings)
	assert.ErrorIs(t, err, ErrOutputsFailed)
	assert.Contains(t, out, "premium: io error:")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("lookup:\n  delimiter: ab\n"), 0o600))
	_, err = run(t, &EvalCmd{File: doc}, bad)
	assert.ErrorContains(t, err, "failed to load settings")
}

func TestEval_Telemetry(t *testing.T) {
	doc := writeFixtures(t)
	settings := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(settings,
		[]byte("observability:\n  tracing: true\n  metrics: true\n"), 0o600))

	color.NoColor = true
	var out, errOut bytes.Buffer
	err := (&EvalCmd{File: doc, Output: []string{"premium"}}).Run(&Context{
		Config: settings,
		Stdout: &out,
		Stderr: &errOut,
	})
	require.NoError(t, err)
	assert.Equal(t, "premium = \"15\"\n", out.String())

	logs := errOut.String()
	assert.Contains(t, logs, "msg=span name=abacus.lookup")
	assert.Contains(t, logs, "msg=span name=abacus.resolve")
	assert.Contains(t, logs, "lookup.path=bands.csv")
	assert.Contains(t, logs, "msg=metric name=abacus.resolutions value=1 outcome=present")
	assert.Contains(t, logs, "msg=metric name=abacus.lookup.rows_scanned")
}

func TestEval_InvalidSet(t *testing.T) {
	_, err := run(t, &EvalCmd{File: writeFixtures(t), Set: []string{"novalue"}}, "")
	assert.ErrorContains(t, err, "expected name=value")
}

func TestTypes(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, (&TypesCmd{}).Run(&Context{Stdout: &out}))
	assert.Equal(t, "number\nstring\nboolean\nlist(<type>)\ndict(<type>)\n", out.String())
}
