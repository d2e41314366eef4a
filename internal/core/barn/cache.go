// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package barn

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LayoutCache stores assembled [LayoutView] values per barn.
//
// Implementations are best-effort: callers log cache errors and fall back to
// the repository.
//
// Reads and invalidations are not coordinated. A view built while a
// reconciliation or move commits may be stored after that commit's
// invalidation and is then served until its TTL expires.
type LayoutCache interface {
	// Get returns the cached view, or (nil, false, nil) on a miss.
	Get(context context.Context, barnID int64) (*LayoutView, bool, error)
	Set(context context.Context, view *LayoutView) error
	Invalidate(context context.Context, barnIDs ...int64) error
}

// memoryCacheSize bounds the in-process cache; a farm has a handful of barns.
const memoryCacheSize = 256

// MemoryLayoutCache is an in-process [LayoutCache] used when Redis is not
// configured.
type MemoryLayoutCache struct {
	entries *expirable.LRU[int64, *LayoutView]
}

// NewMemoryLayoutCache builds an expiring LRU cache with the given TTL.
func NewMemoryLayoutCache(ttl time.Duration) *MemoryLayoutCache {
	return &MemoryLayoutCache{entries: expirable.NewLRU[int64, *LayoutView](memoryCacheSize, nil, ttl)}
}

// Get implements [LayoutCache].
func (cache *MemoryLayoutCache) Get(_ context.Context, barnID int64) (*LayoutView, bool, error) {
	view, ok := cache.entries.Get(barnID)
	return view, ok, nil
}

// Set implements [LayoutCache].
func (cache *MemoryLayoutCache) Set(_ context.Context, view *LayoutView) error {
	cache.entries.Add(view.BarnID, view)
	return nil
}

// Invalidate implements [LayoutCache].
func (cache *MemoryLayoutCache) Invalidate(_ context.Context, barnIDs ...int64) error {
	for _, barnID := range barnIDs {
		cache.entries.Remove(barnID)
	}
	return nil
}
