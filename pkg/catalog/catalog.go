package catalog

import (
	"fmt"
	"sort"
	"sync"
)

// Catalog maps table names to their definitions. It is constructed
// explicitly and handed to whoever builds plans; there is no
// process-wide registry.
type Catalog struct {
	mu     sync.RWMutex
	tables map[string]Table
}

// NewCatalog creates a new empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		tables: make(map[string]Table),
	}
}

// Register adds a table to the catalog.
func (c *Catalog) Register(name string, t Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[name] = t
}

// Table retrieves a table by name.
func (c *Catalog) Table(name string) (Table, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("table %q not found", name)
	}
	return t, nil
}

// Names returns the registered table names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
