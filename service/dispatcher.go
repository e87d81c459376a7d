package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-pcg/service/i"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultPrefix   = "pcg"
	queueProblemFmt = "%s:queue:%s"
)

var (
	ErrEmptyProblem = errors.New("problem name is empty")
)

var _ i.Dispatcher = &Dispatcher{}

// queuedJob is the member stored in the sorted queue. The nonce keeps equal jobs distinct.
type queuedJob struct {
	Nonce uuid.UUID `json:"nonce"`
	i.Job
}

// DispatcherOptions configure a Dispatcher.
type DispatcherOptions struct {
	Prefix string
}

// Dispatcher feeds level seeds to environments in first-in first-out order per problem.
type Dispatcher struct {
	sortedQueue i.SortedQueue
	logger      logrus.FieldLogger
	opts        *DispatcherOptions

	mu        sync.Mutex
	lastScore int64
}

// NewDispatcher creates a Dispatcher over a sorted queue.
func NewDispatcher(sortedQueue i.SortedQueue, logger logrus.FieldLogger, opts *DispatcherOptions) (*Dispatcher, error) {
	if sortedQueue == nil {
		return nil, errors.New("dispatcher needs a sorted queue")
	}
	if opts == nil {
		opts = &DispatcherOptions{}
	}
	if opts.Prefix == "" {
		opts.Prefix = defaultPrefix
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Dispatcher{
		sortedQueue: sortedQueue,
		logger:      logger.WithField("component", "DISPATCHER"),
		opts:        opts,
	}, nil
}

// Push implements i.Dispatcher. Jobs keep their argument order.
func (d *Dispatcher) Push(ctx context.Context, problem string, jobs ...i.Job) error {
	if problem == "" {
		return ErrEmptyProblem
	}
	key := d.QueueKey(problem)
	for _, job := range jobs {
		member, err := json.Marshal(queuedJob{Nonce: uuid.New(), Job: job})
		if err != nil {
			return err
		}
		if err := d.sortedQueue.Enqueue(ctx, key, d.nextScore(), string(member)); err != nil {
			d.logger.WithError(err).WithField("queue", key).Error("failed to enqueue job")
			return err
		}
	}

	d.logger.WithFields(logrus.Fields{"queue": key, "jobs": len(jobs)}).Info("jobs enqueued")
	return nil
}

// nextScore returns a strictly increasing score. Microseconds stay exact as float64.
func (d *Dispatcher) nextScore() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastScore = max(time.Now().UnixMicro(), d.lastScore+1)
	return float64(d.lastScore)
}

// Pending implements i.Dispatcher.
func (d *Dispatcher) Pending(ctx context.Context, problem string) int64 {
	return d.sortedQueue.Count(ctx, d.QueueKey(problem))
}

// Next implements i.Dispatcher. The boolean is false when the queue is empty.
func (d *Dispatcher) Next(ctx context.Context, problem string) (i.Job, bool, error) {
	key := d.QueueKey(problem)
	raw, err := d.sortedQueue.DequeTops(ctx, key, 1)
	if err != nil {
		d.logger.WithError(err).WithField("queue", key).Error("obtaining queue lock")
		return i.Job{}, false, err
	}
	if len(raw) == 0 {
		return i.Job{}, false, nil
	}

	var qj queuedJob
	if err := json.Unmarshal([]byte(raw[0]), &qj); err != nil {
		d.logger.WithField("queue", key).Warnf("malformed job in queue: %s", raw[0])
		return i.Job{}, false, fmt.Errorf("decoding job: %w", err)
	}
	return qj.Job, true, nil
}

// QueueKey implements i.Dispatcher.
func (d *Dispatcher) QueueKey(problem string) string {
	return fmt.Sprintf(queueProblemFmt, d.opts.Prefix, problem)
}
