// Package cache stores computed layouts and rendered artifacts by content
// hash.
//
// The engine consults a [Cache] before running the force simulation: an
// identical simulation input (nodes, last-known positions, links and
// settings) always yields identical coordinates, so the result can be
// reused. Keys are produced by a [Keyer] from SHA-256 hashes of the inputs.
//
// Implementations:
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [MemoryCache]: bounded in-process cache for interactive sessions
//   - [FileCache]: on-disk cache shared by repeated CLI runs
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrClosed is returned by operations on a cache after Close.
var ErrClosed = errors.New("cache closed")

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a simulation result by the hash of its input and
	// the hash of the layout settings.
	LayoutKey(inputHash, configHash string) string
	// RenderKey identifies a rendered artifact of a render model.
	RenderKey(modelHash, format string) string
}

// DefaultKeyer is the unscoped Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(inputHash, configHash string) string {
	return hashKey("layout", inputHash, configHash)
}

// RenderKey returns "render:<sha256>".
func (DefaultKeyer) RenderKey(modelHash, format string) string {
	return hashKey("render", modelHash, format)
}
