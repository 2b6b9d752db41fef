// Package catalog keeps named extended curves and builds each one on first use.
package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/meenmo/longend/extension"
	"github.com/meenmo/longend/termstructure"
)

var (
	ErrCurveNotFound = errors.New("curve not found")
)

type entry struct {
	base   termstructure.TermStructure
	policy extension.Policy
	curve  *termstructure.Curve
}

// Cache maps names to (base, policy) pairs and memoizes the built curve.
// Built curves are owned by the cache and stay valid for its lifetime.
// Methods are safe for concurrent use; builds are serialized.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	order   []string
}

func New() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

// AddOrUpdate registers name without building. Re-adding a name replaces
// the entry and drops any curve already built for it.
func (c *Cache) AddOrUpdate(name string, base termstructure.TermStructure, policy extension.Policy) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[name]; !ok {
		c.order = append(c.order, name)
	}
	c.entries[name] = &entry{base: base, policy: policy}
}

// Get returns the curve for name, building it on the first call. A failed
// build leaves the entry unbuilt so a later call retries.
func (c *Cache) Get(name string) (*termstructure.Curve, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[name]
	if !ok {
		return nil, fmt.Errorf("Cache.Get: %w: %q", ErrCurveNotFound, name)
	}
	if e.curve != nil {
		return e.curve, nil
	}

	curve, err := e.policy.BuildCurve(e.base)
	if err != nil {
		return nil, fmt.Errorf("Cache.Get: %q: %w", name, err)
	}
	e.curve = curve
	log.Debug().Str("Curve", name).Msg("cached extended curve")
	return curve, nil
}

// Policy returns the policy registered under name.
func (c *Cache) Policy(name string) (extension.Policy, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[name]
	if !ok {
		return extension.Policy{}, false
	}
	return e.policy, true
}

// Has reports whether name is registered.
func (c *Cache) Has(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[name]
	return ok
}

// Names returns registered names in first-registration order.
func (c *Cache) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.order...)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
