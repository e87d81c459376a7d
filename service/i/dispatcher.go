package i

import "context"

// Job is one queued level seed.
type Job struct {
	Seed  int64  `json:"seed"`
	Label string `json:"label,omitempty"`
}

// Dispatcher hands out level seeds to environments through per-problem work queues.
type Dispatcher interface {
	Push(ctx context.Context, problem string, jobs ...Job) error
	Pending(ctx context.Context, problem string) int64
	Next(ctx context.Context, problem string) (Job, bool, error)
	QueueKey(problem string) string
}
