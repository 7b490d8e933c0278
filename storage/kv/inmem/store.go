// Package inmemkv is a map-backed kv.Store used by tests and throwaway
// environments; contents vanish when the process exits.
package inmemkv

import (
	"encoding/json"
	"sync"

	"github.com/trezcool/hatari/storage/kv"
)

type store struct {
	sync.RWMutex
	blobs map[string][]byte
}

var _ kv.Store = (*store)(nil)

func Open() kv.Store {
	return &store{blobs: make(map[string][]byte)}
}

func (s *store) Get(key string, v interface{}) error {
	s.RLock()
	blob, ok := s.blobs[key]
	s.RUnlock()
	if !ok {
		return kv.ErrKeyNotFound
	}
	if err := json.Unmarshal(blob, v); err != nil {
		return &kv.StorageError{Key: key, Err: err}
	}
	return nil
}

func (s *store) Put(key string, v interface{}) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return &kv.StorageError{Key: key, Err: err}
	}
	s.Lock()
	s.blobs[key] = blob
	s.Unlock()
	return nil
}

func (s *store) Delete(key string) error {
	s.Lock()
	delete(s.blobs, key)
	s.Unlock()
	return nil
}

func (s *store) Close() error { return nil }
