// Package assets resolves map files from data directories and GRF archives.
// Names are relative to the data root ("prontera.rsw", "texture/x.bmp");
// archives store them under "data/".
package assets

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/afero"

	"github.com/Faultbox/sceneexport/pkg/grf"
)

// ErrNotFound is returned when no source has the requested file.
var ErrNotFound = errors.New("asset not found")

// Manager searches its sources in reverse order (last added = highest
// priority) and caches what it reads.
type Manager struct {
	sources []Source
	cache   *Cache
	mu      sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddSource adds a source with the highest priority so far.
func (m *Manager) AddSource(s Source) {
	m.mu.Lock()
	m.sources = append(m.sources, s)
	m.mu.Unlock()
}

// AddDir adds a data directory on fs.
func (m *Manager) AddDir(fs afero.Fs, dir string) error {
	ok, err := afero.DirExists(fs, dir)
	if err != nil {
		return fmt.Errorf("checking data directory %s: %w", dir, err)
	}
	if !ok {
		return fmt.Errorf("data directory %s does not exist", dir)
	}
	m.AddSource(NewDirSource(fs, dir))
	return nil
}

// AddArchive opens a GRF archive and adds it.
func (m *Manager) AddArchive(path string) error {
	archive, err := grf.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", path, err)
	}
	m.AddSource(NewArchiveSource(path, archive))
	return nil
}

// Load returns the contents of name from the highest priority source that
// has it.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.sources) - 1; i >= 0; i-- {
		data, err := m.sources[i].Read(name)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.sources[i].Name(), err)
		}
		m.cache.Set(name, data)
		return data, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Locate returns the file system path Load reads name from. It reports
// false when the file would come from an archive or does not exist.
func (m *Manager) Locate(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.sources) - 1; i >= 0; i-- {
		s := m.sources[i]
		if !s.Has(name) {
			continue
		}
		if d, ok := s.(*DirSource); ok {
			return d.Path(name), true
		}
		return "", false
	}
	return "", false
}

// Invalidate drops cached copies of the given names.
func (m *Manager) Invalidate(names ...string) {
	for _, name := range names {
		m.cache.Delete(name)
	}
}

// CacheStats returns the cache hit and miss counts.
func (m *Manager) CacheStats() (hits, misses int) {
	return m.cache.Stats()
}

// Close closes all sources.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, s := range m.sources {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	m.sources = nil
	m.cache.Clear()
	return errors.Join(errs...)
}

// Cache is a simple in-memory cache for loaded assets.
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

// Delete removes an item.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
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
