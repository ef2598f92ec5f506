// Package assets resolves, loads and caches model files.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/raging-sea/internal/logger"
)

// ErrNotFound is returned when a path resolves in none of the search dirs.
var ErrNotFound = errors.New("asset not found")

// Result is the outcome of an asynchronous load.
type Result struct {
	Path  string
	Model *Model
	Err   error
}

// Manager resolves model paths against search directories and caches
// parsed models.
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

// AddSearchDir adds a directory to resolve relative paths against.
// Directories are searched in reverse order (last added = highest priority).
func (m *Manager) AddSearchDir(dir string) {
	m.mu.Lock()
	m.dirs = append(m.dirs, dir)
	m.mu.Unlock()
}

// Resolve returns the first existing location for path. Absolute paths and
// paths relative to the working directory are tried first.
func (m *Manager) Resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrNotFound)
	}
	if fileExists(path) {
		return filepath.Clean(path), nil
	}
	if filepath.IsAbs(path) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.dirs) - 1; i >= 0; i-- {
		candidate := filepath.Join(m.dirs[i], path)
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, path)
}

// LoadModel resolves and parses a model, using the cache when possible.
func (m *Manager) LoadModel(path string) (*Model, error) {
	resolved, err := m.Resolve(path)
	if err != nil {
		return nil, err
	}

	if model, ok := m.cache.Get(resolved); ok {
		return model, nil
	}

	model, err := LoadModel(resolved)
	if err != nil {
		return nil, err
	}
	m.cache.Set(resolved, model)

	logger.Info("model loaded",
		zap.String("path", resolved),
		zap.String("name", model.Name),
		zap.Int("meshes", len(model.Meshes)),
		zap.Int("vertices", model.VertexCount()),
		zap.Int("textures", len(model.Textures)))

	return model, nil
}

// Load parses a model in a background goroutine. The returned channel
// receives exactly one Result and is never closed before it does.
func (m *Manager) Load(path string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		model, err := m.LoadModel(path)
		ch <- Result{Path: path, Model: model, Err: err}
	}()
	return ch
}

// Close drops cached models.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache returns the model cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Cache is a simple in-memory cache for parsed models.
type Cache struct {
	data map[string]*Model
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*Model),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (*Model, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	model, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return model, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, model *Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = model
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*Model)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
