package kv

import "context"

// Pair is a single key/value write.
type Pair struct {
	Key   string
	Value []byte
}

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// SetMany writes pairs in order, atomically.
	SetMany(ctx context.Context, pairs []Pair) error

	// DeleteMany removes keys in order, atomically.
	DeleteMany(ctx context.Context, keys []string) error
}
