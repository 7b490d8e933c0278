// Package kv defines the blob store every repository is built on: one
// JSON-serialized value per namespaced key, fully read and rewritten on
// every write. There are no partial updates and no transactions; two
// concurrent read-modify-write cycles on the same key can lose the first
// writer's change. That hazard is accepted for this single-operator system.
package kv

import (
	"errors"
	"fmt"
)

// Storage keys, one per entity collection. The API key deliberately lives
// under its own key, separate from the structured settings blob.
const (
	KeyStudents      = "srm:students"
	KeyAttendance    = "srm:attendance"
	KeyGrades        = "srm:grades"
	KeyBehavior      = "srm:behavior"
	KeyAlerts        = "srm:alerts"
	KeyPredictions   = "srm:predictions"
	KeyModelMetadata = "srm:model_metadata"
	KeySettings      = "srm:settings"
	KeyAPIKey        = "srm:api_key"
)

// ErrKeyNotFound is returned by Get when nothing was ever stored under the
// key; callers substitute their type-specific default.
var ErrKeyNotFound = errors.New("key not found")

// StorageError wraps a failure of the underlying medium (disk full, quota,
// connection lost). Such failures are surfaced to the caller and are not
// retryable within the same operation.
type StorageError struct {
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store is an opaque blob store addressed by the fixed keys above.
type Store interface {
	// Get unmarshals the value stored under key into v; ErrKeyNotFound
	// when the key is absent.
	Get(key string, v interface{}) error
	// Put serializes v and overwrites whatever was stored under key.
	Put(key string, v interface{}) error
	Delete(key string) error
	Close() error
}
