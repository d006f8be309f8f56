package data

import (
	"sync"

	"github.com/HackSoc/slack-discord-bridge/internal/biz/domain"
	"github.com/HackSoc/slack-discord-bridge/internal/biz/repo"
)

// profileCache is the in-memory profile cache. A single lock guards all
// access; lookups are cheap map reads, the remote fetch on a miss happens
// outside the lock and its result is written back with Put. Unbounded: at
// bridge scale correctness matters more than a memory cap, and the cache
// rebuilds from cold on restart.
type profileCache struct {
	mu       sync.Mutex
	profiles map[string]domain.Profile
}

// NewProfileCache creates a new in-memory profile cache
func NewProfileCache() repo.ProfileCache {
	return &profileCache{
		profiles: make(map[string]domain.Profile),
	}
}

// Get looks up a cached profile
func (c *profileCache) Get(userID string) (domain.Profile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	profile, ok := c.profiles[userID]
	return profile, ok
}

// Put stores a profile, overwriting any previous entry
func (c *profileCache) Put(userID string, profile domain.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profiles[userID] = profile
}
