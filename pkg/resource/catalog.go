package resource

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Catalog is the validated registry of resources. Registration is eager:
// every descriptor error surfaces at Register time, never at call time.
type Catalog struct {
	mu        sync.RWMutex
	resources map[string]*Resource
	order     []string
	frozen    bool
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{resources: make(map[string]*Resource)}
}

// Register validates and adds a resource descriptor.
func (c *Catalog) Register(r *Resource) error {
	if err := r.normalize(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frozen {
		return errors.New("catalog is frozen: register all resources before building the API client")
	}
	if _, exists := c.resources[r.Name]; exists {
		return fmt.Errorf("resource %q already registered", r.Name)
	}

	c.resources[r.Name] = r
	c.order = append(c.order, r.Name)
	return nil
}

// Freeze marks the catalog immutable. The API factory freezes the catalog
// it is built from; later Register calls fail.
func (c *Catalog) Freeze() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frozen = true
}

// Get returns a resource by name.
func (c *Catalog) Get(name string) (*Resource, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.resources[name]
	return r, ok
}

// Names returns all resource names in sorted order for deterministic output.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.resources))
	for name := range c.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resources returns the descriptors in registration order.
func (c *Catalog) Resources() []*Resource {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Resource, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.resources[name])
	}
	return out
}

// Len returns the number of registered resources.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.resources)
}

// Supports reports whether the named resource exists and supports op.
func (c *Catalog) Supports(name string, op Operation) bool {
	r, ok := c.Get(name)
	return ok && r.Supports(op)
}
