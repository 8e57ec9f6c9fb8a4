package keymap

import (
	"path/filepath"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keypad/internal/key"
)

func TestDefault_CoversStandardLayout(t *testing.T) {
	m := Default()
	assert.Equal(t, "default", m.Name())

	ev, ok := m.Resolve("7")
	require.True(t, ok)
	assert.Equal(t, key.Digit('7'), ev)

	ev, ok = m.Resolve("*")
	require.True(t, ok)
	assert.Equal(t, key.Operator(key.OpMul), ev)

	// enter and "=" are both equals.
	eq, ok := m.Resolve("enter")
	require.True(t, ok)
	assert.Equal(t, key.KindEquals, eq.Kind)
	eq, ok = m.Resolve("=")
	require.True(t, ok)
	assert.Equal(t, key.KindEquals, eq.Kind)

	ev, ok = m.Resolve("esc")
	require.True(t, ok)
	assert.Equal(t, key.KindClear, ev.Kind)

	_, ok = m.Resolve("x")
	assert.False(t, ok, "unbound token resolves to nothing")
}

func TestDefault_BindingsSorted(t *testing.T) {
	bindings := Default().Bindings()
	require.NotEmpty(t, bindings)

	for i := 1; i < len(bindings); i++ {
		assert.Less(t, bindings[i-1].Token, bindings[i].Token)
	}
}

func TestCompileProfile_OverlaysDefault(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
name: "letters"
bindings: {
	"x": "multiply"
	"q": "square"
}
`)
	require.NoError(t, v.Err())

	m, err := CompileProfile(v)
	require.NoError(t, err)
	assert.Equal(t, "letters", m.Name())

	ev, ok := m.Resolve("x")
	require.True(t, ok)
	assert.Equal(t, key.Operator(key.OpMul), ev)

	ev, ok = m.Resolve("q")
	require.True(t, ok)
	assert.Equal(t, key.KindSquare, ev.Kind)

	// Default bindings survive the overlay.
	ev, ok = m.Resolve("3")
	require.True(t, ok)
	assert.Equal(t, key.Digit('3'), ev)
}

func TestCompileProfile_MissingBindings(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`name: "empty"`)
	require.NoError(t, v.Err())

	_, err := CompileProfile(v)
	require.Error(t, err)

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "bindings", compileErr.Field)
}

func TestCompileProfile_UnknownAction(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`bindings: {"y": "yank"}`)
	require.NoError(t, v.Err())

	_, err := CompileProfile(v)
	require.Error(t, err)

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "bindings.y", compileErr.Field)
	assert.Contains(t, compileErr.Message, "unknown action")
}

func TestCompileProfile_DigitActionRequiresDigitToken(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`bindings: {"k": "digit"}`)
	require.NoError(t, v.Err())

	_, err := CompileProfile(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single digit token")
}

func TestLoadProfile_FromFile(t *testing.T) {
	m, err := LoadProfile(filepath.Join("testdata", "letters.cue"))
	require.NoError(t, err)

	assert.Equal(t, "letters", m.Name())

	ev, ok := m.Resolve("d")
	require.True(t, ok)
	assert.Equal(t, key.Operator(key.OpDiv), ev)
}

func TestLoadProfile_MissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join("testdata", "nope.cue"))
	require.Error(t, err)
}

func TestLoadProfile_BadSyntax(t *testing.T) {
	_, err := LoadProfile(filepath.Join("testdata", "broken.cue"))
	require.Error(t, err)
}
