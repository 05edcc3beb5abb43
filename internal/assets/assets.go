// Package assets resolves OBJ sources on disk and inside zip bundles.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Faultbox/objmesh/pkg/bundle"
)

// Source names an OBJ payload: a plain file, or an entry inside a bundle.
type Source struct {
	Path  string // File on disk
	Entry string // Bundle entry, empty for plain files
}

// String returns the source as "bundle.zip:entry" or the plain path.
func (s Source) String() string {
	if s.Entry == "" {
		return s.Path
	}
	return s.Path + ":" + s.Entry
}

// IsBundle reports whether path names a zip bundle.
func IsBundle(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}

// ParseSource splits "bundle.zip:inner.obj" into its parts. A bundle without
// an explicit entry uses defaultEntry; an empty defaultEntry means the
// bundle's first .obj entry.
func ParseSource(arg, defaultEntry string) Source {
	if i := strings.LastIndex(arg, ".zip:"); i >= 0 {
		return Source{Path: arg[:i+4], Entry: arg[i+5:]}
	}
	if IsBundle(arg) {
		return Source{Path: arg, Entry: defaultEntry}
	}
	return Source{Path: arg}
}

// Manager loads OBJ payloads and keeps opened bundles and read bytes cached.
type Manager struct {
	archives map[string]*bundle.Archive
	cache    *Cache
	mu       sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		archives: make(map[string]*bundle.Archive),
		cache:    NewCache(),
	}
}

// Load reads the payload named by src.
func (m *Manager) Load(src Source) ([]byte, error) {
	key := src.String()

	// Check cache first
	if data, ok := m.cache.Get(key); ok {
		return data, nil
	}

	var data []byte
	var err error
	if IsBundle(src.Path) {
		data, err = m.loadEntry(src)
	} else {
		data, err = os.ReadFile(src.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", key, err)
	}

	m.cache.Set(key, data)
	return data, nil
}

// loadEntry reads an entry while holding the archive lock, so Invalidate and
// Close cannot close the archive underneath the read.
func (m *Manager) loadEntry(src Source) ([]byte, error) {
	m.mu.RLock()
	if archive, ok := m.archives[src.Path]; ok {
		defer m.mu.RUnlock()
		return readEntry(archive, src.Entry)
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	archive, ok := m.archives[src.Path]
	if !ok {
		var err error
		if archive, err = bundle.Open(src.Path); err != nil {
			return nil, err
		}
		m.archives[src.Path] = archive
	}
	return readEntry(archive, src.Entry)
}

// readEntry reads entry, falling back to the first .obj only for the implicit
// default entry.
func readEntry(archive *bundle.Archive, entry string) ([]byte, error) {
	if entry == "" || (entry == bundle.DefaultEntry && !archive.Contains(entry)) {
		var err error
		if entry, err = archive.FindOBJ(); err != nil {
			return nil, err
		}
	}
	return archive.Read(entry)
}

// Invalidate drops cached bytes and any opened bundle for path, so the next
// Load reads it from disk again.
func (m *Manager) Invalidate(path string) {
	m.cache.DeleteSource(path)

	m.mu.Lock()
	defer m.mu.Unlock()
	if archive, ok := m.archives[path]; ok {
		archive.Close()
		delete(m.archives, path)
	}
}

// Close closes all archives.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, archive := range m.archives {
		errs = append(errs, archive.Close())
	}
	m.archives = make(map[string]*bundle.Archive)
	m.cache.Clear()
	return errors.Join(errs...)
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Cache is a simple in-memory cache for loaded payloads.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

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

// DeleteSource removes the entry of the file at path and, for a bundle, the
// entries of all its members ("path:member").
func (c *Cache) DeleteSource(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, path)
	members := path + ":"
	for key := range c.data {
		if strings.HasPrefix(key, members) {
			delete(c.data, key)
		}
	}
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
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
