// Package storage is the durable key-value store of the client, the
// counterpart of a browser's localStorage: string keys, opaque values,
// last writer wins.
package storage

import "context"

// Storage is a durable key-value store.
//
// GetItem returns (nil, nil) for an absent key. RemoveItems removes all
// given keys or none of them.
type Storage interface {
	GetItem(ctx context.Context, key string) ([]byte, error)
	SetItem(ctx context.Context, key string, value []byte) error
	RemoveItems(ctx context.Context, keys ...string) error
}
