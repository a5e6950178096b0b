package store

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/famwallet/famwallet/internal/model"
)

// DefaultKey is the storage key the collection lives under.
const DefaultKey = "fam_wallet_txns_v1"

// Store persists the full transaction collection as a single unit.
type Store interface {
	Load() ([]model.Transaction, error)
	Save(txns []model.Transaction) error
	Clear() error
}

// KVStore keeps the collection as one JSON blob per key in a directory.
type KVStore struct {
	fs  afero.Fs
	dir string
	key string
}

// NewKVStore creates a KVStore rooted at dir on fsys.
func NewKVStore(fsys afero.Fs, dir, key string) (*KVStore, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return nil, fmt.Errorf("invalid storage key %q", key)
	}
	return &KVStore{fs: fsys, dir: dir, key: key}, nil
}

// NewFileStore creates a KVStore on the OS filesystem.
func NewFileStore(dir, key string) (*KVStore, error) {
	return NewKVStore(afero.NewOsFs(), dir, key)
}

// NewMemory creates a KVStore backed by an in-memory filesystem.
func NewMemory() *KVStore {
	s, _ := NewKVStore(afero.NewMemMapFs(), "/", DefaultKey)
	return s
}

// Path returns the file the blob is stored in.
func (s *KVStore) Path() string {
	return filepath.Join(s.dir, s.key+".json")
}

// Load reads the collection. A missing blob is an empty collection.
func (s *KVStore) Load() ([]model.Transaction, error) {
	path := s.Path()
	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	txns, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return txns, nil
}

// Save replaces the stored blob with txns. The write goes to a temp file
// that is renamed over the blob.
func (s *KVStore) Save(txns []model.Transaction) error {
	data, err := Marshal(txns)
	if err != nil {
		return err
	}

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating storage dir: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, s.dir, s.key+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}

	if err := s.fs.Rename(tmpName, s.Path()); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", s.Path(), err)
	}
	return nil
}

// Clear removes the blob. Clearing an absent blob is not an error.
func (s *KVStore) Clear() error {
	err := s.fs.Remove(s.Path())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", s.Path(), err)
	}
	return nil
}
