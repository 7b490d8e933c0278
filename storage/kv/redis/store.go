// Package rediskv keeps each blob as a redis string value; useful when
// several dashboard instances should see the same data.
package rediskv

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/trezcool/hatari/storage/kv"
)

type store struct {
	client *redis.Client
}

var _ kv.Store = (*store)(nil)

func Open(url string) (kv.Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parsing redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, errors.Wrap(err, "pinging redis")
	}
	return &store{client: client}, nil
}

func (s *store) Get(key string, v interface{}) error {
	blob, err := s.client.Get(context.Background(), key).Bytes()
	if err == redis.Nil {
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
	blob, err := json.Marshal(v)
	if err != nil {
		return &kv.StorageError{Key: key, Err: err}
	}
	if err := s.client.Set(context.Background(), key, blob, 0).Err(); err != nil {
		return &kv.StorageError{Key: key, Err: err}
	}
	return nil
}

func (s *store) Delete(key string) error {
	if err := s.client.Del(context.Background(), key).Err(); err != nil {
		return &kv.StorageError{Key: key, Err: err}
	}
	return nil
}

func (s *store) Close() error { return s.client.Close() }
