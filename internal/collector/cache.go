package collector

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// SnapshotCache persists raw fetched payloads on disk, one JSON file per
// symbol, so backtests and label builds can run offline after a single fetch.
type SnapshotCache struct {
	mu  sync.Mutex
	dir string
}

// NewSnapshotCache creates the cache directory if needed.
func NewSnapshotCache(dir string) (*SnapshotCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &SnapshotCache{dir: dir}, nil
}

// Path returns the snapshot file for a symbol.
func (c *SnapshotCache) Path(symbol string) string {
	return filepath.Join(c.dir, strings.ToUpper(symbol)+"_daily.json")
}

// Save writes a fetched payload, replacing any previous snapshot.
func (c *SnapshotCache) Save(symbol string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.WriteFile(c.Path(symbol), data, 0644)
}

// Load reads the stored payload for a symbol.
func (c *SnapshotCache) Load(symbol string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := os.ReadFile(c.Path(symbol))
	if err != nil {
		return nil, fmt.Errorf("load snapshot for %s: %w", symbol, err)
	}
	return data, nil
}
