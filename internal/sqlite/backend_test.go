package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/sawmill/pkg/types"
)

// setupBackend creates an attached Backend over a temp data directory.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestBackendAttach(t *testing.T) {
	t.Run("creates data dir and database file", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), "nested", "data")
		b := NewBackend()
		config := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}

		require.NoError(t, b.Attach(config))
		defer b.Detach()

		_, err := os.Stat(filepath.Join(dataDir, DBFileName))
		assert.NoError(t, err, "database file should exist")
	})

	t.Run("rejects double attach", func(t *testing.T) {
		b := setupBackend(t)
		err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
		assert.ErrorIs(t, err, types.ErrAlreadyAttached)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		b := NewBackend()
		err := b.Attach(types.Config{Backend: "", DataDir: t.TempDir()})
		assert.ErrorIs(t, err, types.ErrBackendEmpty)

		err = b.Attach(types.Config{Backend: "papyrus", DataDir: t.TempDir()})
		assert.ErrorIs(t, err, types.ErrBackendUnknown)
	})
}

func TestBackendDetach(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		b := setupBackend(t)
		require.NoError(t, b.Detach())
		require.NoError(t, b.Detach())
	})

	t.Run("operations fail after detach", func(t *testing.T) {
		b := setupBackend(t)
		table, err := b.GetTable(types.PlansTable)
		require.NoError(t, err)

		require.NoError(t, b.Detach())

		_, err = b.GetTable(types.PlansTable)
		assert.ErrorIs(t, err, types.ErrArchiveDetached)

		_, err = table.Get("anything")
		assert.ErrorIs(t, err, types.ErrArchiveDetached)
	})
}

func TestBackendGetTable(t *testing.T) {
	b := setupBackend(t)

	for _, name := range types.StandardTableNames {
		table, err := b.GetTable(name)
		require.NoError(t, err, "table %s", name)
		assert.NotNil(t, table)
	}

	_, err := b.GetTable("offcuts")
	assert.ErrorIs(t, err, types.ErrTableNotFound)
}

func TestBackendPersistsAcrossAttaches(t *testing.T) {
	dataDir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}

	b := NewBackend()
	require.NoError(t, b.Attach(config))

	jobs, err := b.GetTable(types.JobsTable)
	require.NoError(t, err)
	id, err := jobs.Set("", &types.ArchivedJob{Name: "bench", Source: "boards: []\n"})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	// A fresh backend over the same directory sees the stored job.
	b2 := NewBackend()
	require.NoError(t, b2.Attach(config))
	defer b2.Detach()

	jobs2, err := b2.GetTable(types.JobsTable)
	require.NoError(t, err)
	entity, err := jobs2.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "bench", entity.(*types.ArchivedJob).Name)
}
