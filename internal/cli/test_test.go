package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func runTestCmd(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTestCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestTestCommandMissingDirectory(t *testing.T) {
	_, err := runTestCmd(t, filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandNoScenarios(t *testing.T) {
	buf, err := runTestCmd(t, t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No scenarios found")
}

func TestTestCommandPassingScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "add.yaml"), `
name: add
description: 2 + 3 = 5
keys: ["2", "+", "3", "="]
expect: "5"
`)

	buf, err := runTestCmd(t, dir)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ add")
	assert.Contains(t, buf.String(), "1 passed, 0 failed, 1 total")
}

func TestTestCommandFailingScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yaml"), `
name: bad
description: wrong expectation
keys: ["2", "+", "3", "="]
expect: "6"
`)

	buf, err := runTestCmd(t, dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "✗ bad")
	assert.Contains(t, buf.String(), "0 passed, 1 failed, 1 total")
}

func TestTestCommandFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "add.yaml"), `
name: add
description: addition
keys: ["1", "+", "1", "="]
expect: "2"
`)
	writeFile(t, filepath.Join(dir, "bad.yaml"), `
name: bad
description: would fail
keys: ["1"]
expect: "9"
`)

	buf, err := runTestCmd(t, dir, "--filter", "add")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ add")
	assert.NotContains(t, buf.String(), "bad")
}

func TestTestCommandGoldenRoundTrip(t *testing.T) {
	dir := t.TempDir()
	scenarioPath := filepath.Join(dir, "square.yaml")
	writeFile(t, scenarioPath, `
name: square
description: 9 squared
keys: ["9", "s"]
expect: "81"
`)

	// First pass writes the golden file.
	buf, err := runTestCmd(t, dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "golden updated")

	goldenPath := filepath.Join(dir, "golden", "square.golden")
	golden, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(golden), `"scenario_name":"square"`)

	// Second pass compares against it.
	buf, err = runTestCmd(t, dir)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ square")

	// A stale golden file is a failure.
	require.NoError(t, os.WriteFile(goldenPath, []byte(`{"scenario_name":"square","trace":[]}`), 0o644))
	buf, err = runTestCmd(t, dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "Golden file mismatch")
}

func TestTestCommandMalformedScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.yaml"), `
name: broken
descriptio: typo field
keys: ["1"]
expect: "1"
`)

	buf, err := runTestCmd(t, dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "Load error")
}
