// Package assets handles asset lookup across search roots, with caching.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Faultbox/curveview/pkg/formats"
)

// Manager resolves slash-separated asset paths against a list of directories.
// It implements formats.Source.
type Manager struct {
	roots []string
	cache *Cache
	mu    sync.RWMutex
}

var _ formats.Source = (*Manager)(nil)

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddRoot adds a search directory.
// Roots are searched in the order they were added.
func (m *Manager) AddRoot(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding root %s: not a directory", dir)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("adding root %s: %w", dir, err)
	}

	m.mu.Lock()
	m.roots = append(m.roots, abs)
	m.mu.Unlock()

	return nil
}

// Roots returns the search directories.
func (m *Manager) Roots() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.roots...)
}

// Resolve returns the filesystem path of the first root containing path.
// Absolute paths are returned unchanged if they exist.
func (m *Manager) Resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", formats.ErrFileNotFound, path)
		}
		return path, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	rel := filepath.FromSlash(path)
	for _, root := range m.roots {
		full := filepath.Join(root, rel)
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			return full, nil
		}
	}

	return "", fmt.Errorf("%w: %s", formats.ErrFileNotFound, path)
}

// Load reads a file from the first root that contains it.
// Missing files are reported as formats.ErrFileNotFound.
func (m *Manager) Load(path string) ([]byte, error) {
	// Check cache first
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	full, err := m.Resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", formats.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", full, err)
	}

	m.cache.Set(path, data)
	return data, nil
}

// Invalidate drops a cached file so the next Load reads it from disk again.
func (m *Manager) Invalidate(path string) {
	m.cache.Delete(path)
}

// InvalidateAll drops every cached file.
func (m *Manager) InvalidateAll() {
	m.cache.Clear()
}

// Close drops all roots and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.roots = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
// It is shared between the render loop and the file watcher goroutine.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Delete removes an item from cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Len returns the number of cached items.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
