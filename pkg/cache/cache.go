// Package cache provides pluggable byte caching for pipeline artifacts.
//
// Two implementations ship with Typetower: [FileCache] for persistent
// on-disk caching between CLI invocations, and [NullCache] for disabling
// caching entirely. The [Keyer] interface derives stable cache keys from
// pipeline inputs, so the same input document with the same options always
// maps to the same entry.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long cached pipeline artifacts stay fresh.
const DefaultTTL = 24 * time.Hour

// Cache stores opaque byte values under string keys with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// GraphKeyOpts captures the inference options that affect a cached graph.
// Two runs whose options differ must not share an entry.
type GraphKeyOpts struct {
	Format   string // Input format (json, yaml, toml)
	RootName string // Top-level type name
	Schema   bool   // Whether the input was treated as a JSON Schema
}

// Keyer derives cache keys from pipeline inputs.
type Keyer interface {
	// GraphKey generates a key for an inferred type graph, derived from
	// the hash of the source document and the inference options.
	GraphKey(sourceHash string, opts GraphKeyOpts) string

	// OutputKey generates a key for emitted code, derived from the graph
	// hash and the target language.
	OutputKey(graphHash, language, packageName string) string
}

// DefaultKeyer is the standard key derivation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(sourceHash string, opts GraphKeyOpts) string {
	return hashKey("graph", sourceHash, opts.Format, opts.RootName, opts.Schema)
}

// OutputKey implements Keyer.
func (DefaultKeyer) OutputKey(graphHash, language, packageName string) string {
	return hashKey("output", graphHash, language, packageName)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, useful
// when several projects share one cache directory.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// GraphKey generates a prefixed graph key.
func (k *ScopedKeyer) GraphKey(sourceHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(sourceHash, opts)
}

// OutputKey generates a prefixed output key.
func (k *ScopedKeyer) OutputKey(graphHash, language, packageName string) string {
	return k.prefix + k.inner.OutputKey(graphHash, language, packageName)
}
