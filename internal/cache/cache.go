package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for extraction-result caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// DocumentKey generates a cache key from normalized document text.
// Identical lease text always maps to the same entry regardless of the
// uploaded file name.
func DocumentKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "leaselens:v1:" + hex.EncodeToString(hash[:])
}
