package applicantinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/talentops/funnel/intake/applicant"
)

// RedisSyncQueue implements applicant.SyncQueue using Redis. Ready jobs sit
// on a list, delayed jobs on a sorted set scored by their due time.
type RedisSyncQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisSyncQueue creates a new Redis-based sync queue.
func NewRedisSyncQueue(client *redis.Client, queueName string) *RedisSyncQueue {
	return &RedisSyncQueue{
		client:    client,
		queueName: queueName,
	}
}

// Enqueue adds a job to the ready queue.
func (q *RedisSyncQueue) Enqueue(ctx context.Context, job *applicant.SyncJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal sync job %s: %w", job.ID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue sync job %s: %w", job.ID, err)
	}

	return nil
}

// EnqueueDelayed schedules a job for later processing (for retries).
func (q *RedisSyncQueue) EnqueueDelayed(ctx context.Context, job *applicant.SyncJob, delay time.Duration) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal delayed sync job %s: %w", job.ID, err)
	}

	score := float64(time.Now().Add(delay).Unix())
	delayedQueue := q.queueName + ":delayed"

	if err := q.client.ZAdd(ctx, delayedQueue, &redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed sync job %s: %w", job.ID, err)
	}

	return nil
}

// Dequeue gets a job from the queue (blocking with timeout).
func (q *RedisSyncQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		// redis.Nil is returned when timeout occurs
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue sync job: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	return []byte(result[1]), nil
}

// MoveDelayedToReady moves delayed jobs that are due onto the ready queue.
func (q *RedisSyncQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	delayedQueue := q.queueName + ":delayed"
	now := float64(time.Now().Unix())

	jobs, err := q.client.ZRangeByScore(ctx, delayedQueue, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed sync jobs: %w", err)
	}

	if len(jobs) == 0 {
		return 0, nil
	}

	// Use pipeline for atomic operations
	pipe := q.client.Pipeline()
	for _, job := range jobs {
		pipe.LPush(ctx, q.queueName, job)
		pipe.ZRem(ctx, delayedQueue, job)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed sync jobs to ready: %w", err)
	}

	return len(jobs), nil
}

// Size returns the number of ready jobs in the queue.
func (q *RedisSyncQueue) Size(ctx context.Context) (int64, error) {
	size, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("get sync queue size: %w", err)
	}
	return size, nil
}
