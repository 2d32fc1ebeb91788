package ports

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get and Delete when no document exists for the
// given collection and key.
var ErrNotFound = errors.New("document not found")

// FieldUpdate names one field overwrite inside a batch.
type FieldUpdate struct {
	Key   string
	Field string
	Value interface{}
}

// DocumentStore is the narrow contract every tracker store persists through.
// Documents are JSON records addressed by (collection, composite key); a
// field overwrite replaces the whole named field and is the unit of
// atomicity. There are no cross-document transactions outside
// BatchUpdateField, which applies all its updates atomically (used for task
// reordering).
type DocumentStore interface {
	// Get unmarshals the document into out, or returns ErrNotFound.
	Get(ctx context.Context, collection, key string, out interface{}) error

	// SetIfAbsent creates the document only when the key is free and reports
	// whether this call created it. Concurrent callers agree on one winner.
	SetIfAbsent(ctx context.Context, collection, key string, doc interface{}) (bool, error)

	// Set overwrites the document unconditionally, creating it when absent.
	Set(ctx context.Context, collection, key string, doc interface{}) error

	// UpdateField overwrites one named top-level field of an existing
	// document; ErrNotFound when the document does not exist.
	UpdateField(ctx context.Context, collection, key, field string, value interface{}) error

	// BatchUpdateField applies every update atomically.
	BatchUpdateField(ctx context.Context, collection string, updates []FieldUpdate) error

	// List streams the raw payload of every document whose key starts with
	// keyPrefix, in key order.
	List(ctx context.Context, collection, keyPrefix string, each func(raw []byte) error) error

	// Delete removes the document; ErrNotFound when absent.
	Delete(ctx context.Context, collection, key string) error
}
