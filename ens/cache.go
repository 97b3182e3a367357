package ens

import (
	"strings"
	"sync"
)

// NameOutcome is a cached address→name result. A resolved outcome with an
// empty Name means "definitively no name bound", a negative worth caching
// just as much as a hit.
type NameOutcome struct {
	Name  string
	State ResolutionState
}

// Cache memoizes resolution outcomes for the lifetime of the process.
// Entries never expire on their own; only Flush clears them. Within one
// process, name bindings are assumed stable enough that staleness is less
// costly than repeated network calls.
//
// De-duplication is best effort, not a hard mutex: Begin* writes a pending
// placeholder before the network call starts so repeated lookups observe
// "loading", but two goroutines racing a cold key may both reach the
// network and overwrite with the same eventual answer. That duplicate call
// is tolerated.
type Cache struct {
	mu       sync.Mutex
	names    map[string]NameOutcome
	profiles map[string]*Identity
}

func NewCache() *Cache {
	return &Cache{
		names:    map[string]NameOutcome{},
		profiles: map[string]*Identity{},
	}
}

func cacheKey(addr string) string {
	return strings.ToLower(addr)
}

// BeginName returns the cached outcome for addr when one exists (terminal
// or pending). Otherwise it writes a pending placeholder and tells the
// caller to go resolve.
func (c *Cache) BeginName(addr string) (NameOutcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(addr)
	if out, found := c.names[key]; found {
		return out, true
	}
	pending := NameOutcome{State: StatePending}
	c.names[key] = pending
	return pending, false
}

func (c *Cache) PutName(addr, name string, state ResolutionState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names[cacheKey(addr)] = NameOutcome{Name: name, State: state}
}

// BeginProfile mirrors BeginName for full identity records.
func (c *Cache) BeginProfile(addr string) (*Identity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(addr)
	if id, found := c.profiles[key]; found {
		return id, true
	}
	c.profiles[key] = pendingIdentity(key)
	return c.profiles[key], false
}

func (c *Cache) PutProfile(addr string, id *Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profiles[cacheKey(addr)] = id
}

// Flush unconditionally clears both maps. Meant for tests and manual
// refresh, not steady-state operation.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = map[string]NameOutcome{}
	c.profiles = map[string]*Identity{}
}
