// Package cache provides content-addressed caching of derived layout
// results.
//
// Layout computation is the slow path of the canvas core, and it is a
// pure function of the graph plus options - ideal cache material. Keys
// are SHA-256 digests of the inputs (see Key), so a hit is always valid
// and invalidation is automatic.
//
// Three implementations cover the use cases: Memory for in-process
// reuse, File for persistence of derived results across CLI runs, and
// Null to disable caching. Only computed results land here; the cache is
// never a system of record for canvas state.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys with an optional
// TTL. Implementations must treat Get misses as (nil, false, nil), not
// as errors.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// entry wraps cached data with its expiration.
type entry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (e entry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Memory is an in-process cache. Safe for use from a single goroutine,
// matching the canvas execution model.
type Memory struct {
	entries map[string]entry
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]entry)}
}

// Get retrieves a value, treating expired entries as misses.
func (c *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if e.expired(time.Now()) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set stores a value. A non-positive ttl means no expiration.
func (c *Memory) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := entry{Data: data}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}

// Delete removes a value. Deleting an absent key is a no-op.
func (c *Memory) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

// Close does nothing for the memory cache.
func (c *Memory) Close() error { return nil }

var _ Cache = (*Memory)(nil)
