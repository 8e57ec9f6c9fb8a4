package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keypad/internal/store"
)

func newEvalCmd(args ...string) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"eval"}, args...))
	err := cmd.Execute()
	return buf, err
}

func TestEvalPackedScript(t *testing.T) {
	buf, err := newEvalCmd("12*3=")
	require.NoError(t, err)
	assert.Equal(t, "36", strings.TrimSpace(buf.String()))
}

func TestEvalSpaceSeparatedTokens(t *testing.T) {
	buf, err := newEvalCmd("1 2 * 3 enter")
	require.NoError(t, err)
	assert.Equal(t, "36", strings.TrimSpace(buf.String()))
}

func TestEvalDivideByZeroExitsOne(t *testing.T) {
	buf, err := newEvalCmd("5/0=")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "Error", strings.TrimSpace(buf.String()))
}

func TestEvalUnboundKey(t *testing.T) {
	_, err := newEvalCmd("1z2=")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "not bound")
}

func TestEvalEmptyScript(t *testing.T) {
	_, err := newEvalCmd("   ")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "empty key script")
}

func TestEvalJSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--format", "json", "eval", "9s", "--session", "json-test"})

	require.NoError(t, cmd.Execute())

	var response CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)

	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "81", data["display"])
	assert.Equal(t, "json-test", data["session"])

	steps, ok := data["steps"].([]interface{})
	require.True(t, ok)
	assert.Len(t, steps, 2)
}

func TestEvalPersistsTrace(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "eval.db")

	_, err := newEvalCmd("4+2=", "--db", dbPath, "--session", "persisted")
	require.NoError(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	steps, err := st.ReadSession(context.Background(), "persisted")
	require.NoError(t, err)
	require.Len(t, steps, 4)
	assert.Equal(t, "6", steps[3].Display)
}

func TestEvalCustomKeymap(t *testing.T) {
	buf, err := newEvalCmd("7x6=", "--keymap", filepath.Join("testdata", "letters.cue"))
	require.NoError(t, err)
	assert.Equal(t, "42", strings.TrimSpace(buf.String()))
}

func TestTokenizeLineMixedFields(t *testing.T) {
	events, err := tokenizeLine("12 backspace +3 =", mustDefaultKeymap(t))
	require.NoError(t, err)
	require.Len(t, events, 6)
	assert.Equal(t, "backspace", events[2].Kind.String())
}
