package auth

import (
	"context"
	"crypto/sha256"
	"errors"
	"sync"

	"github.com/2beens/gyminsights/pkg"
)

var ErrNoKeysConfigured = errors.New("no api key hashes configured")

// APIKeyChecker verifies keys against bcrypt hashes. A key that matched once
// is remembered by its sha256 digest, so bcrypt runs once per key and process.
type APIKeyChecker struct {
	hashes []string

	mutex    sync.RWMutex
	verified map[[sha256.Size]byte]bool
}

func NewAPIKeyChecker(hashes []string) *APIKeyChecker {
	return &APIKeyChecker{
		hashes:   hashes,
		verified: make(map[[sha256.Size]byte]bool),
	}
}

func (c *APIKeyChecker) IsAuthorized(_ context.Context, apiKey string) (bool, error) {
	if len(c.hashes) == 0 {
		return false, ErrNoKeysConfigured
	}
	if apiKey == "" {
		return false, nil
	}

	digest := sha256.Sum256([]byte(apiKey))
	c.mutex.RLock()
	known := c.verified[digest]
	c.mutex.RUnlock()
	if known {
		return true, nil
	}

	for _, hash := range c.hashes {
		if pkg.CheckAPIKeyHash(apiKey, hash) {
			c.mutex.Lock()
			c.verified[digest] = true
			c.mutex.Unlock()
			return true, nil
		}
	}

	return false, nil
}
