package i

import "context"

// SortedQueue is a keyed queue of members ordered by score, lowest first.
type SortedQueue interface {
	Enqueue(ctx context.Context, queueKey string, score float64, member string) error

	// DequeTops pops amount members when at least that many are queued, none otherwise.
	DequeTops(ctx context.Context, queueKey string, amount int64) ([]string, error)

	Count(ctx context.Context, queueKey string) int64
}
