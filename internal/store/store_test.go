package store

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemStore(t *testing.T) (*KVStore, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	s, err := NewKVStore(fsys, "/data", DefaultKey)
	require.NoError(t, err)
	return s, fsys
}

func TestNewKVStore_InvalidKey(t *testing.T) {
	for _, key := range []string{"", "a/b", `a\b`, ".", ".."} {
		_, err := NewKVStore(afero.NewMemMapFs(), "/", key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestLoad_Missing(t *testing.T) {
	s, _ := newMemStore(t)

	txns, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestSaveLoad(t *testing.T) {
	s, fsys := newMemStore(t)

	require.NoError(t, s.Save(sampleTxns()))

	txns, err := s.Load()
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "a1", txns[0].ID)
	assert.Equal(t, "b2", txns[1].ID)

	// No temp files left behind.
	entries, err := afero.ReadDir(fsys, "/data")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultKey+".json", entries[0].Name())
}

func TestSave_Overwrites(t *testing.T) {
	s, _ := newMemStore(t)

	require.NoError(t, s.Save(sampleTxns()))
	require.NoError(t, s.Save(sampleTxns()[1:]))

	txns, err := s.Load()
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "b2", txns[0].ID)
}

func TestSaveLoad_Idempotent(t *testing.T) {
	s, fsys := newMemStore(t)
	require.NoError(t, s.Save(sampleTxns()))

	before, err := afero.ReadFile(fsys, s.Path())
	require.NoError(t, err)

	loaded, err := s.Load()
	require.NoError(t, err)
	require.NoError(t, s.Save(loaded))

	after, err := afero.ReadFile(fsys, s.Path())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestLoad_Malformed(t *testing.T) {
	s, fsys := newMemStore(t)
	require.NoError(t, afero.WriteFile(fsys, s.Path(), []byte(`[{"id":`), 0o644))

	_, err := s.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), s.Path())
}

func TestClear(t *testing.T) {
	s, _ := newMemStore(t)
	require.NoError(t, s.Save(sampleTxns()))

	require.NoError(t, s.Clear())

	txns, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, txns)

	// Clearing again is fine.
	require.NoError(t, s.Clear())
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, "ledger")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ledger.json"), s.Path())

	require.NoError(t, s.Save(sampleTxns()))
	txns, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}

func TestNewMemory(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.Save(sampleTxns()))

	txns, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}
