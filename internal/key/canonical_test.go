package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_SortedKeys(t *testing.T) {
	obj := map[string]any{
		"zebra": "z",
		"alpha": "a",
		"mid":   int64(5),
	}

	out, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":"a","mid":5,"zebra":"z"}`, string(out))
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	out, err := MarshalCanonical(map[string]any{"k": "<a>&</a>"})
	require.NoError(t, err)
	assert.Equal(t, `{"k":"<a>&</a>"}`, string(out))
}

func TestMarshalCanonical_ControlCharsEscaped(t *testing.T) {
	out, err := MarshalCanonical("line1\nline2\ttab")
	require.NoError(t, err)
	assert.Equal(t, `"line1\nline2\ttab"`, string(out))
}

func TestMarshalCanonical_FloatsForbidden(t *testing.T) {
	_, err := MarshalCanonical(map[string]any{"v": 1.5})
	assert.Error(t, err)
}

func TestMarshalCanonical_NullForbidden(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.Error(t, err)

	_, err = MarshalCanonical(map[string]any{"v": nil})
	assert.Error(t, err)
}

func TestMarshalCanonical_NestedArray(t *testing.T) {
	obj := map[string]any{
		"trace": []any{
			map[string]any{"seq": int64(1), "display": "1"},
			map[string]any{"seq": int64(2), "display": "12"},
		},
	}

	out, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t,
		`{"trace":[{"display":"1","seq":1},{"display":"12","seq":2}]}`,
		string(out))
}

func TestMarshalCanonical_Deterministic(t *testing.T) {
	obj := map[string]any{"b": "2", "a": "1", "c": int64(3), "d": true}

	first, err := MarshalCanonical(obj)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		again, err := MarshalCanonical(obj)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again), "iteration %d", i)
	}
}

func TestStepID_StableAcrossCalls(t *testing.T) {
	a, err := StepID("s1", "digit", "5", "5", 1)
	require.NoError(t, err)
	b, err := StepID("s1", "digit", "5", "5", 1)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestStepID_DistinctInputsDistinctIDs(t *testing.T) {
	base := MustStepID("s1", "digit", "5", "5", 1)

	assert.NotEqual(t, base, MustStepID("s2", "digit", "5", "5", 1), "session changes ID")
	assert.NotEqual(t, base, MustStepID("s1", "digit", "6", "6", 1), "value changes ID")
	assert.NotEqual(t, base, MustStepID("s1", "digit", "5", "5", 2), "seq changes ID")
}
