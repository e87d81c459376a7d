package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-pcg/game"
	"github.com/beka-birhanu/vinom-pcg/identity"
	"github.com/google/uuid"
)

type scored struct {
	score  float64
	member string
}

// memQueue is an in-memory SortedQueue.
type memQueue struct {
	sync.Mutex
	queues map[string][]scored
	err    error
}

func newMemQueue() *memQueue {
	return &memQueue{queues: make(map[string][]scored)}
}

func (q *memQueue) Enqueue(_ context.Context, key string, score float64, member string) error {
	q.Lock()
	defer q.Unlock()
	if q.err != nil {
		return q.err
	}
	items := append(q.queues[key], scored{score: score, member: member})
	sort.SliceStable(items, func(a, b int) bool { return items[a].score < items[b].score })
	q.queues[key] = items
	return nil
}

func (q *memQueue) DequeTops(_ context.Context, key string, amount int64) ([]string, error) {
	q.Lock()
	defer q.Unlock()
	if q.err != nil {
		return nil, q.err
	}
	items := q.queues[key]
	if int64(len(items)) < amount {
		return nil, nil
	}
	out := make([]string, amount)
	for n := range out {
		out[n] = items[n].member
	}
	q.queues[key] = items[amount:]
	return out, nil
}

func (q *memQueue) Count(_ context.Context, key string) int64 {
	q.Lock()
	defer q.Unlock()
	return int64(len(q.queues[key]))
}

// memOperators is an in-memory OperatorRepo with a unique name index.
type memOperators struct {
	sync.Mutex
	byID map[uuid.UUID]*identity.Operator
}

func newMemOperators() *memOperators {
	return &memOperators{byID: make(map[uuid.UUID]*identity.Operator)}
}

func (r *memOperators) Save(o *identity.Operator) error {
	r.Lock()
	defer r.Unlock()
	for id, existing := range r.byID {
		if existing.Name == o.Name && id != o.ID {
			return identity.ErrOperatorConflict
		}
	}
	r.byID[o.ID] = o
	return nil
}

func (r *memOperators) ByID(id uuid.UUID) (*identity.Operator, error) {
	r.Lock()
	defer r.Unlock()
	if o, ok := r.byID[id]; ok {
		return o, nil
	}
	return nil, identity.ErrOperatorNotFound
}

func (r *memOperators) ByName(name string) (*identity.Operator, error) {
	r.Lock()
	defer r.Unlock()
	for _, o := range r.byID {
		if o.Name == name {
			return o, nil
		}
	}
	return nil, identity.ErrOperatorNotFound
}

// memLevels is an in-memory LevelRepo.
type memLevels struct {
	sync.Mutex
	levels []*game.Level
	err    error
}

func (r *memLevels) Save(_ context.Context, l *game.Level) error {
	r.Lock()
	defer r.Unlock()
	if r.err != nil {
		return r.err
	}
	r.levels = append(r.levels, l)
	return nil
}

func (r *memLevels) ByID(_ context.Context, id uuid.UUID) (*game.Level, error) {
	r.Lock()
	defer r.Unlock()
	for _, l := range r.levels {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, game.ErrLevelNotFound
}

func (r *memLevels) ByOwner(_ context.Context, owner uuid.UUID, limit int64) ([]*game.Level, error) {
	r.Lock()
	defer r.Unlock()
	var out []*game.Level
	for _, l := range r.levels {
		if l.Owner == owner && int64(len(out)) < limit {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memLevels) count() int {
	r.Lock()
	defer r.Unlock()
	return len(r.levels)
}

// stubTokenizer encodes claims as a printable token.
type stubTokenizer struct {
	claims map[string]interface{}
	ttl    time.Duration
}

func (s *stubTokenizer) Generate(claims map[string]interface{}, ttl time.Duration) (string, error) {
	s.claims, s.ttl = claims, ttl
	return fmt.Sprintf("token-for-%v", claims["operatorID"]), nil
}

func (s *stubTokenizer) Decode(token string) (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
