package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ginanjarn/cmaketools/script"
)

const cacheFileName = "names.json"

// cacheEntry is one persisted name record. The kind is stored as its string
// form so the cache file stays readable by external tooling.
type cacheEntry struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// Cache persists fetched name lists as a single JSON file keyed by kind.
type Cache struct {
	dir string

	mu      sync.RWMutex
	entries map[string][]cacheEntry
}

// NewCache opens (creating if needed) the cache directory and loads any
// previously persisted name lists. A missing or corrupt cache file is treated
// as empty, not as an error: the lists can always be refetched.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	c := &Cache{dir: dir, entries: make(map[string][]cacheEntry)}

	data, err := os.ReadFile(c.path())
	if err != nil {
		return c, nil
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		c.entries = make(map[string][]cacheEntry)
	}
	return c, nil
}

func (c *Cache) path() string {
	return filepath.Join(c.dir, cacheFileName)
}

// Load returns the cached names for a kind, if present.
func (c *Cache) Load(kind script.NameKind) ([]script.Name, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries, ok := c.entries[kind.String()]
	if !ok {
		return nil, false
	}

	names := make([]script.Name, 0, len(entries))
	for _, e := range entries {
		names = append(names, script.Name{Name: e.Name, Kind: kind})
	}
	return names, true
}

// Store records the names for a kind and rewrites the cache file.
func (c *Cache) Store(kind script.NameKind, names []script.Name) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]cacheEntry, 0, len(names))
	for _, n := range names {
		entries = append(entries, cacheEntry{Name: n.Name, Kind: kind.String()})
	}
	c.entries[kind.String()] = entries

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding name cache: %w", err)
	}
	if err := os.WriteFile(c.path(), data, 0o644); err != nil {
		return fmt.Errorf("writing name cache: %w", err)
	}
	return nil
}
