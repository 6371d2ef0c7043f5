package kv

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/grievdesk/internal/cryptox"
)

// Sealed encrypts values before handing them to the wrapped Store.
// Keys stay in clear text so lookups keep working.
type Sealed struct {
	inner Store
	key   []byte
}

func NewSealed(inner Store, key []byte) *Sealed {
	return &Sealed{inner: inner, key: key}
}

func (s *Sealed) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := s.inner.Get(ctx, key)
	if err != nil || sealed == nil {
		return nil, err
	}
	plain, err := cryptox.Open(s.key, sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to unseal kv[%s]: %w", key, err)
	}
	return plain, nil
}

func (s *Sealed) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := cryptox.Seal(s.key, value)
	if err != nil {
		return fmt.Errorf("failed to seal kv[%s]: %w", key, err)
	}
	return s.inner.Set(ctx, key, sealed)
}

func (s *Sealed) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

func (s *Sealed) SetMany(ctx context.Context, pairs []Pair) error {
	out := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		sealed, err := cryptox.Seal(s.key, p.Value)
		if err != nil {
			return fmt.Errorf("failed to seal kv[%s]: %w", p.Key, err)
		}
		out = append(out, Pair{Key: p.Key, Value: sealed})
	}
	return s.inner.SetMany(ctx, out)
}

func (s *Sealed) DeleteMany(ctx context.Context, keys []string) error {
	return s.inner.DeleteMany(ctx, keys)
}
