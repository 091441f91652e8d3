package gamification

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/firesafetykz/portal/internal/domain"
)

// profileCache is an expiring LRU of player profiles keyed by user id.
// Entries are deep copies, callers can't mutate what is cached.
type profileCache struct {
	lru *expirable.LRU[string, domain.PlayerProfile]
}

func newProfileCache(size int, ttl time.Duration) *profileCache {
	return &profileCache{
		lru: expirable.NewLRU[string, domain.PlayerProfile](size, nil, ttl),
	}
}

func (c *profileCache) Get(userID string) (domain.PlayerProfile, bool) {
	p, found := c.lru.Get(userID)
	if !found {
		return domain.PlayerProfile{}, false
	}
	return p.Clone(), true
}

func (c *profileCache) Set(p domain.PlayerProfile) {
	c.lru.Add(p.UserID, p.Clone())
}

func (c *profileCache) Invalidate(userID string) {
	c.lru.Remove(userID)
}
