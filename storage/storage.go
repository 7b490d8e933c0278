// Package storage implements the domain Repository contracts on top of the
// kv blob store: every collection is one serialized blob that is fully read
// and rewritten on each write.
package storage

import (
	"github.com/pkg/errors"

	"github.com/trezcool/hatari/core"
	"github.com/trezcool/hatari/storage/kv"
	filekv "github.com/trezcool/hatari/storage/kv/file"
	inmemkv "github.com/trezcool/hatari/storage/kv/inmem"
	pgkv "github.com/trezcool/hatari/storage/kv/postgres"
	rediskv "github.com/trezcool/hatari/storage/kv/redis"
)

// Open returns the blob store backend selected by the configuration.
func Open(conf *core.Config) (kv.Store, error) {
	switch conf.Storage {
	case "inmem":
		return inmemkv.Open(), nil
	case "file":
		return filekv.Open(conf.DataDir)
	case "redis":
		return rediskv.Open(conf.RedisURL)
	case "postgres":
		return pgkv.Open(conf.DatabaseURL)
	default:
		return nil, errors.Errorf("unknown storage backend %q", conf.Storage)
	}
}

// getList reads a whole collection; an absent key is an empty collection.
func getList[T any](store kv.Store, key string) ([]T, error) {
	var list []T
	if err := store.Get(key, &list); err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return []T{}, nil
		}
		return nil, err
	}
	return list, nil
}

// upsertByKey replaces the element whose key matches item's, or appends.
func upsertByKey[T any](list []T, keyOf func(T) string, item T) []T {
	key := keyOf(item)
	for i := range list {
		if keyOf(list[i]) == key {
			list[i] = item
			return list
		}
	}
	return append(list, item)
}

// upsertAllByKey applies upsertByKey for each item in one pass over saves.
func upsertAllByKey[T any](list []T, keyOf func(T) string, items []T) []T {
	for _, item := range items {
		list = upsertByKey(list, keyOf, item)
	}
	return list
}
