package user

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// userCache remembers which display name was last written for a user
// so repeated reactions from the same user skip the upsert round trip.
// TTL-based expiry bounds how long a rename can stay unnoticed.
type userCache struct {
	lru *expirable.LRU[int64, string]
}

// newUserCache creates a new user cache with the specified size and TTL
func newUserCache(size int, ttl time.Duration) *userCache {
	return &userCache{
		lru: expirable.NewLRU[int64, string](size, nil, ttl),
	}
}

// Get returns the last stored username for the user, if cached
func (c *userCache) Get(id int64) (string, bool) {
	return c.lru.Get(id)
}

// Set records the username just written for the user
func (c *userCache) Set(id int64, username string) {
	c.lru.Add(id, username)
}

// Invalidate removes a user from the cache
func (c *userCache) Invalidate(id int64) {
	c.lru.Remove(id)
}
