package sortedstorage

import (
	"context"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-pcg/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const lockSuffix = ":dispatch_lock"

var _ i.SortedQueue = &RedisSortedQueue{}

// RedisSortedQueue is a sorted set per queue key. Keys expire ttl after their first member
// unless refreshed.
type RedisSortedQueue struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisSortedQueue initializes a RedisSortedQueue with the provided Redis client and TTL.
func NewRedisSortedQueue(client *redis.Client, ttlSeconds int) (*RedisSortedQueue, error) {
	if client == nil {
		return nil, fmt.Errorf("sorted queue needs a redis client")
	}
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("sorted queue ttl must be positive, got %d", ttlSeconds)
	}
	return &RedisSortedQueue{
		client: client,
		locker: redsync.New(goredis.NewPool(client)),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}, nil
}

// Enqueue implements i.SortedQueue.
func (rsq *RedisSortedQueue) Enqueue(ctx context.Context, queueKey string, score float64, member string) error {
	if err := rsq.client.ZAdd(ctx, queueKey, redis.Z{Score: score, Member: member}).Err(); err != nil {
		return fmt.Errorf("enqueue on %s: %w", queueKey, err)
	}

	// -1 means the key exists without an expiry.
	ttl, err := rsq.client.TTL(ctx, queueKey).Result()
	if err == nil && ttl == -1 {
		_ = rsq.client.Expire(ctx, queueKey, rsq.ttl).Err()
	}
	return nil
}

// DequeTops implements i.SortedQueue under a distributed lock on the queue key.
func (rsq *RedisSortedQueue) DequeTops(ctx context.Context, queueKey string, amount int64) ([]string, error) {
	mutex := rsq.locker.NewMutex(queueKey + lockSuffix)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("locking %s: %w", queueKey, err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	if rsq.client.ZCard(ctx, queueKey).Val() < amount {
		return nil, nil
	}

	popped, err := rsq.client.ZPopMin(ctx, queueKey, amount).Result()
	if err != nil {
		return nil, fmt.Errorf("dequeue on %s: %w", queueKey, err)
	}
	members := make([]string, 0, len(popped))
	for _, z := range popped {
		if m, ok := z.Member.(string); ok {
			members = append(members, m)
		}
	}
	return members, nil
}

// Count implements i.SortedQueue.
func (rsq *RedisSortedQueue) Count(ctx context.Context, queueKey string) int64 {
	return rsq.client.ZCard(ctx, queueKey).Val()
}
