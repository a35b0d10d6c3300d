package blobstore

import (
	"context"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheEntries is the blob count used when NewCachingStore gets a
// non-positive size.
const DefaultCacheEntries = 256

// CachingStore wraps a BlobStore with an LRU of whole blobs.
// Put and Delete invalidate the cached entry around the inner write.
//
// A miss only fills the cache when no Put or Delete finished while the inner
// Get was in flight, so a slow read never re-inserts overwritten bytes.
type CachingStore struct {
	inner BlobStore
	cache *lru.Cache[string, []byte]

	mu  sync.Mutex
	gen uint64 // bumped by every completed Put and Delete

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCachingStore creates a new CachingStore holding up to entries blobs.
func NewCachingStore(inner BlobStore, entries int) (*CachingStore, error) {
	if entries <= 0 {
		entries = DefaultCacheEntries
	}
	cache, err := lru.New[string, []byte](entries)
	if err != nil {
		return nil, err
	}
	return &CachingStore{inner: inner, cache: cache}, nil
}

// Put invalidates the cached blob and writes through.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.cache.Remove(name)
	defer s.invalidate(name)
	return s.inner.Put(ctx, name, data)
}

// Get serves from the cache, falling back to the inner store on a miss.
// Callers receive a private copy.
func (s *CachingStore) Get(ctx context.Context, name string) ([]byte, error) {
	if data, ok := s.cache.Get(name); ok {
		s.hits.Add(1)
		return append([]byte(nil), data...), nil
	}
	s.misses.Add(1)

	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	data, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.gen == gen {
		s.cache.Add(name, append([]byte(nil), data...))
	}
	s.mu.Unlock()

	return data, nil
}

// Delete invalidates the cached blob and deletes it from the inner store.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.cache.Remove(name)
	defer s.invalidate(name)
	return s.inner.Delete(ctx, name)
}

func (s *CachingStore) invalidate(name string) {
	s.mu.Lock()
	s.gen++
	s.cache.Remove(name)
	s.mu.Unlock()
}

// List is passed through uncached.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// Stats returns a snapshot of the cache counters.
func (s *CachingStore) Stats() CacheStats {
	return CacheStats{
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
		Entries: s.cache.Len(),
	}
}

// Purge drops every cached blob.
func (s *CachingStore) Purge() { s.cache.Purge() }
