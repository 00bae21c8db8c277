package applicantinfra

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/talentops/funnel/pkg/kernel"
)

const seenKeyPrefix = "funnel:seen:"

// RedisSeenStore implements applicant.SeenStore on Redis. A key per
// (sheet, email) pair records that the applicant has already been announced;
// keys have no expiry, an applicant is only ever announced once.
type RedisSeenStore struct {
	client *redis.Client
}

// NewRedisSeenStore creates a seen store over the given Redis client.
func NewRedisSeenStore(client *redis.Client) *RedisSeenStore {
	return &RedisSeenStore{
		client: client,
	}
}

func seenKey(sheetID kernel.SheetID, email kernel.Email) string {
	return fmt.Sprintf("%s%s:%s", seenKeyPrefix, sheetID, email)
}

// Seen reports whether the applicant has already been announced.
func (s *RedisSeenStore) Seen(ctx context.Context, sheetID kernel.SheetID, email kernel.Email) (bool, error) {
	n, err := s.client.Exists(ctx, seenKey(sheetID, email)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check seen key: %w", err)
	}
	return n > 0, nil
}

// MarkSeen records that the applicant has been announced.
func (s *RedisSeenStore) MarkSeen(ctx context.Context, sheetID kernel.SheetID, email kernel.Email) error {
	if err := s.client.Set(ctx, seenKey(sheetID, email), "1", 0).Err(); err != nil {
		return fmt.Errorf("failed to mark applicant seen: %w", err)
	}
	return nil
}
