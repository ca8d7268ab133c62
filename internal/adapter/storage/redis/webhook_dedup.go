package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const defaultDedupTTL = 24 * time.Hour

// WebhookDedupStore implements ports.WebhookDedupStore using Redis SET NX.
// A replayed delivery with a known event id is acknowledged without being
// reprocessed; entries age out after the TTL.
type WebhookDedupStore struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewWebhookDedupStore creates a new Redis-backed webhook dedup store.
func NewWebhookDedupStore(client *goredis.Client) *WebhookDedupStore {
	return &WebhookDedupStore{
		client: client,
		prefix: "webhook:event:",
		ttl:    defaultDedupTTL,
	}
}

// MarkProcessed atomically records an event id. Returns true if the event is
// new, false if it was already processed.
func (s *WebhookDedupStore) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	key := s.prefix + eventID
	result, err := s.client.SetArgs(ctx, key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  s.ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists, the event was processed before
			return false, nil
		}
		return false, fmt.Errorf("redis webhook dedup: %w", err)
	}
	return result == "OK", nil
}
