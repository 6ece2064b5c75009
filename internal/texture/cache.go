package texture

import (
	"sync"

	"go.uber.org/zap"
)

// Resolver resolves a texture name to a loaded texture.
type Resolver interface {
	Resolve(name string) *Texture
}

// Cache is a concurrency-safe texture cache over an Index. A failed load is
// cached too, so a missing or malformed asset is diagnosed once and then
// stays absent for the rest of the run.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
	log   *zap.Logger
}

type cacheEntry struct {
	tex *Texture // nil when the load failed
}

// NewCache creates a texture cache backed by the given index. A nil logger
// disables diagnostics.
func NewCache(index *Index, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
		log:   log,
	}
}

// Resolve loads and caches a texture by name. Returns nil if the name does
// not resolve or the file fails to decode; the caller handles absence.
func (c *Cache) Resolve(name string) *Texture {
	path, ok := c.index.ResolvePath(name)
	if !ok {
		c.log.Warn("texture not found", zap.String("name", name))
		return nil
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.tex
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	tex, err := Load(path)
	if err != nil {
		c.log.Warn("texture load failed", zap.String("path", path), zap.Error(err))
	}

	// Write lock with double-check
	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.tex
	}
	c.items[path] = &cacheEntry{tex: tex}
	c.mu.Unlock()

	return tex
}
