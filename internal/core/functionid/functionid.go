// Package functionid derives and caches the 32-bit function selectors
// a Function's canonical signature maps to, so a registry serving many
// FunctionCalls for the same Function does not re-run CRC32 on every
// call.
package functionid

import (
	"context"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/tonlayer/abicodec/pkg/types"
)

// Deriver resolves a Function's InputID/OutputID, consulting and
// populating an in-memory cache keyed by canonical signature. The
// cache is purely an optimization — Derive always agrees with
// types.DeriveFunctionID for the same input, cache hit or not.
type Deriver struct {
	cache *bigcache.BigCache
}

// New constructs a Deriver backed by a bigcache instance with the
// given entry lifetime. A zero or negative ttl is replaced by a
// 24-hour lifetime.
func New(ttl time.Duration) (*Deriver, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	cfg := bigcache.DefaultConfig(ttl)
	cfg.Shards = 16
	c, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	return &Deriver{cache: c}, nil
}

// Derive returns the CRC32-derived function id for canonical,
// consulting the cache first.
func (d *Deriver) Derive(canonical string) uint32 {
	if d == nil || d.cache == nil {
		return types.DeriveFunctionID(canonical)
	}
	key := canonical
	if cached, err := d.cache.Get(key); err == nil && len(cached) == 4 {
		return beUint32(cached)
	}
	id := types.DeriveFunctionID(canonical)
	buf := make([]byte, 4)
	putBeUint32(buf, id)
	_ = d.cache.Set(key, buf)
	return id
}

// EnsureIDs fills fn.InputID/OutputID via the cache-backed deriver,
// mirroring types.Function.EnsureIDs but routed through the cache.
func (d *Deriver) EnsureIDs(fn *types.Function) {
	if fn.InputID != 0 || fn.OutputID != 0 {
		return
	}
	id := d.Derive(fn.CanonicalSignature())
	fn.InputID = id &^ 0x80000000
	fn.OutputID = id | 0x80000000
}

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func putBeUint32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}
