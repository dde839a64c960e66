package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/clippings/internal/domain"
)

// MemoryIndex is the daemon's read model of the collection.
// Readers always get a copy; writers swap the whole collection.
type MemoryIndex struct {
	mu         sync.RWMutex
	collection domain.Collection
	lastReload time.Time // Timestamp of last replacement
	source     string    // file, redis, api
	version    uint64
}

// NewMemoryIndex creates an empty index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{collection: domain.Collection{}}
}

// Replace swaps the collection. source records who produced it.
func (idx *MemoryIndex) Replace(c domain.Collection, source string) {
	clone := c.Clone()

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.collection = clone
	idx.source = source
	idx.lastReload = time.Now()
	idx.version++
}

// All returns a copy of the collection, never nil
func (idx *MemoryIndex) All() domain.Collection {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.collection.Clone()
}

// Find retrieves a clipping by id
func (idx *MemoryIndex) Find(id int) (domain.Clipping, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.collection.Find(id)
}

// Count returns the number of clippings
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.collection)
}

// Version increments on every Replace. Used as a cache key component.
func (idx *MemoryIndex) Version() uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.version
}

// Source returns who produced the current collection
func (idx *MemoryIndex) Source() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.source
}

// GetLastReload returns the timestamp of the last replacement
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

// ReferencedFiles returns the set of upload filenames referenced by a url.
func (idx *MemoryIndex) ReferencedFiles() map[string]struct{} {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make(map[string]struct{}, len(idx.collection))
	for _, c := range idx.collection {
		if name := c.Filename(); name != "" {
			out[name] = struct{}{}
		}
	}
	return out
}
