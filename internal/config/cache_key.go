package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SessionKey returns the cache key holding the identity bound to a session id.
func (r *CacheKeyStruct) SessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// RateLimitKey returns the limiter bucket key for a client on a route.
func (r *CacheKeyStruct) RateLimitKey(route, clientIP string) string {
	return fmt.Sprintf("ratelimit:%s:%s", route, clientIP)
}

var CacheKey = NewCacheKeyStruct()
