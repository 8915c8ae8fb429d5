package storage

import "time"

// Service provides high-level operations on the local card data cache.
type Service struct {
	db  *DB
	ttl time.Duration
}

// NewService creates a new cache service. Cached rows older than ttl are
// treated as misses; a zero or negative ttl keeps rows fresh forever.
func NewService(db *DB, ttl time.Duration) *Service {
	return &Service{db: db, ttl: ttl}
}
