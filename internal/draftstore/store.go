// Package draftstore provides the key-value persistence layer for
// uncommitted plan drafts, so in-progress work survives navigation and
// client restarts.
package draftstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("draft entry not found")

// Store is a string-keyed get/set/remove capability over JSON-serialized
// blobs. Injected rather than global so it can be faked in tests.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
