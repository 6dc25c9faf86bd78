package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache stores serialized insights. A miss and a backend failure look the
// same to callers: both mean "compute it".
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// InsightsKey is the read-through key for one user's history version.
// Any change to the history bumps the version, so stale entries are never read.
func InsightsKey(userID string, historyVersion int64) string {
	return fmt.Sprintf("insights::%s::%d", userID, historyVersion)
}

type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, bool) {
	return nil, false
}

func (NoopCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}
