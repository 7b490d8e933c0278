// Package pgkv keeps all blobs in a single two-column table. The point is
// durability on existing infrastructure, not a relational schema; the
// storage contract stays an opaque key/value one.
package pgkv

import (
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/hatari/storage/kv"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_blobs (
    key   TEXT PRIMARY KEY,
    value JSONB NOT NULL
);`

type store struct {
	db *sqlx.DB
}

var _ kv.Store = (*store)(nil)

func Open(databaseURL string) (kv.Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating kv_blobs table")
	}
	return &store{db: db}, nil
}

func (s *store) Get(key string, v interface{}) error {
	var blob []byte
	err := s.db.QueryRow(`SELECT value FROM kv_blobs WHERE key = $1`, key).Scan(&blob)
	if err == sql.ErrNoRows {
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
	_, err = s.db.Exec(
		`INSERT INTO kv_blobs (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, blob,
	)
	if err != nil {
		return &kv.StorageError{Key: key, Err: err}
	}
	return nil
}

func (s *store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv_blobs WHERE key = $1`, key); err != nil {
		return &kv.StorageError{Key: key, Err: err}
	}
	return nil
}

func (s *store) Close() error { return s.db.Close() }
