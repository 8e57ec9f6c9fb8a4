package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpen_InMemory(t *testing.T) {
	st := openMemory(t)
	require.NotNil(t, st.DB())
}

func TestOpen_Pragmas(t *testing.T) {
	st := openMemory(t)

	// WAL degrades to "memory" journal for in-memory databases; the
	// remaining pragmas must hold exactly.
	assert.NoError(t, st.verifyPragma("foreign_keys", "1"))
	assert.NoError(t, st.verifyPragma("busy_timeout", "5000"))
}

func TestOpen_SchemaVersion(t *testing.T) {
	st := openMemory(t)

	var version int
	require.NoError(t, st.DB().QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpen_FileDatabase(t *testing.T) {
	path := t.TempDir() + "/trace.db"

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	// Re-opening an existing database is idempotent.
	st, err = Open(path)
	require.NoError(t, err)
	assert.NoError(t, st.Close())
}
