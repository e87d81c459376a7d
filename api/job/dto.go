// Package jobapi lets operators feed level seeds into the per-problem work queues.
package jobapi

// PushRequest enqueues explicit seeds, or Count consecutive seeds starting at FirstSeed.
type PushRequest struct {
	Problem   string  `json:"problem" binding:"required"`
	Seeds     []int64 `json:"seeds"`
	FirstSeed int64   `json:"first_seed"`
	Count     int     `json:"count" binding:"min=0,max=10000"`
	Label     string  `json:"label"`
}

// QueueResponse describes one work queue.
type QueueResponse struct {
	Problem string `json:"problem"`
	Queue   string `json:"queue"`
	Pending int64  `json:"pending"`
}
