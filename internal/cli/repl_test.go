package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplProcessesScript(t *testing.T) {
	in := strings.NewReader("12*3=\nq\n")
	out := &bytes.Buffer{}

	rootOpts := &RootOptions{Format: "text"}
	cmd := NewReplCommand(rootOpts)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	output := out.String()
	assert.Contains(t, output, "keypad session")
	assert.Contains(t, output, "= 36")
}

func TestReplQuitsOnEOF(t *testing.T) {
	in := strings.NewReader("5+5=\n")
	out := &bytes.Buffer{}

	rootOpts := &RootOptions{Format: "text"}
	cmd := NewReplCommand(rootOpts)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "= 10")
}

func TestReplReportsUnboundKeys(t *testing.T) {
	in := strings.NewReader("hello\nq\n")
	out := &bytes.Buffer{}

	rootOpts := &RootOptions{Format: "text"}
	cmd := NewReplCommand(rootOpts)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "not bound")
}

func TestReplBadKeymapPath(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewReplCommand(rootOpts)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--keymap", "nope.cue"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
