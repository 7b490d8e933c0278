// Package filekv stores each key as a JSON file in a data directory. It is
// the default backend: durable enough for a single-operator deployment
// without asking for a database.
package filekv

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/hatari/storage/kv"
)

type store struct {
	mu  sync.Mutex
	dir string
}

var _ kv.Store = (*store)(nil)

func Open(dir string) (kv.Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating data dir %s", dir)
	}
	return &store{dir: dir}, nil
}

// path maps a namespaced key to a filename; ':' is not portable across
// filesystems.
func (s *store) path(key string) string {
	return filepath.Join(s.dir, strings.ReplaceAll(key, ":", "_")+".json")
}

func (s *store) Get(key string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return kv.ErrKeyNotFound
	}
	if err != nil {
		return &kv.StorageError{Key: key, Err: err}
	}
	if err := json.Unmarshal(blob, v); err != nil {
		return &kv.StorageError{Key: key, Err: err}
	}
	return nil
}

func (s *store) Put(key string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := json.Marshal(v)
	if err != nil {
		return &kv.StorageError{Key: key, Err: err}
	}

	// write-then-rename so a failed write never truncates the previous blob
	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return &kv.StorageError{Key: key, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		return &kv.StorageError{Key: key, Err: err}
	}
	return nil
}

func (s *store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return &kv.StorageError{Key: key, Err: err}
	}
	return nil
}

func (s *store) Close() error { return nil }
