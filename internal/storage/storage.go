// Package storage defines the durable key-value facility the booking cache
// persists to, plus the in-process and file-backed drivers.
package storage

import "context"

// Storage maps string keys to string values. Set replaces the whole value
// atomically; Delete of an absent key is not an error.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
