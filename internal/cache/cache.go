package cache

import (
	"context"
	"time"
)

// Cache is a best-effort byte store for display reads. Misses and
// backend errors look the same to callers; nothing here is authoritative.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

type noop struct{}

// NewNoop returns a cache that stores nothing, for deployments without
// Redis configured.
func NewNoop() Cache {
	return noop{}
}

func (noop) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (noop) Set(context.Context, string, []byte, time.Duration) {}

func (noop) Delete(context.Context, string) {}
