// Package assets loads scene and pointer track files and caches their bytes.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Faultbox/midgard-xr/internal/engine/input"
	"github.com/Faultbox/midgard-xr/internal/engine/scene"
)

// Manager resolves asset paths against a list of directories.
type Manager struct {
	dirs  []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddDir adds a search directory.
// Directories are searched in reverse order (last added = highest priority).
func (m *Manager) AddDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("adding asset dir %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding asset dir %s: not a directory", path)
	}

	m.mu.Lock()
	m.dirs = append(m.dirs, path)
	m.mu.Unlock()

	return nil
}

// Load reads a file. Absolute paths and paths relative to the working
// directory are tried when no search directory has the file.
func (m *Manager) Load(path string) ([]byte, error) {
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	m.mu.RLock()
	candidates := make([]string, 0, len(m.dirs)+1)
	if !filepath.IsAbs(path) {
		for i := len(m.dirs) - 1; i >= 0; i-- {
			candidates = append(candidates, filepath.Join(m.dirs[i], path))
		}
	}
	m.mu.RUnlock()
	candidates = append(candidates, path)

	for _, c := range candidates {
		data, err := os.ReadFile(c)
		if err == nil {
			m.cache.Set(path, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", c, err)
		}
	}

	return nil, fmt.Errorf("file not found: %s", path)
}

// LoadScene reads, decodes and builds a scene file. Object ids come from pool.
func (m *Manager) LoadScene(path string, pool *scene.IDPool) (*scene.Scene, error) {
	data, err := m.Load(path)
	if err != nil {
		return nil, err
	}
	sf, err := DecodeScene(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return sf.Build(pool)
}

// LoadTrack reads and decodes a pointer track file.
func (m *Manager) LoadTrack(path string) (*input.Track, error) {
	data, err := m.Load(path)
	if err != nil {
		return nil, err
	}
	tf, err := DecodeTrack(data)
	if err != nil {
		return nil, fmt.Errorf("track %s: %w", path, err)
	}
	return tf.Build(), nil
}

// Close drops the search directories and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dirs = nil
	m.cache.Clear()
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

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
