package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/beka-birhanu/vinom-pcg/game"
	"github.com/beka-birhanu/vinom-pcg/game/grid"
	"github.com/beka-birhanu/vinom-pcg/game/problem"
	"github.com/beka-birhanu/vinom-pcg/game/rep"
	"github.com/beka-birhanu/vinom-pcg/game/tile"
	"github.com/beka-birhanu/vinom-pcg/service/i"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxEnvsPerOwner = 16
	defaultMaxCells        = 1 << 16
)

var (
	ErrUnknownProblem  = errors.New("unknown problem")
	ErrSessionNotFound = errors.New("environment not found")
	ErrTooManyEnvs     = errors.New("too many open environments")
)

var _ i.EnvSessionManager = &EnvSessionManager{}

// envSession is one live environment. Its mutex serialises every call that touches env.
type envSession struct {
	sync.Mutex
	env      *game.Env
	info     i.EnvInfo
	useQueue bool
	archived bool
	label    string // label of the queued job seeding the current episode
}

// EnvSessionConfig holds the collaborators of an EnvSessionManager.
type EnvSessionConfig struct {
	Problems        map[string]problem.Config
	Dispatcher      i.Dispatcher   // optional; enables queue-fed resets
	LevelRepo       i.LevelRepo    // optional; finished levels are archived when set
	OperatorRepo    i.OperatorRepo // optional; operator quotas override MaxEnvsPerOwner when set
	Logger          logrus.FieldLogger
	MaxEnvsPerOwner int
	MaxCells        int // largest grid an environment may allocate
}

// EnvSessionManager owns the environments of every operator.
type EnvSessionManager struct {
	problems    map[string]problem.Config
	dispatcher  i.Dispatcher
	levelRepo   i.LevelRepo
	operators   i.OperatorRepo
	logger      logrus.FieldLogger
	maxPerOwner int
	maxCells    int
	sessions    map[uuid.UUID]*envSession
	sync.RWMutex
}

// NewEnvSessionManager creates a session manager over the given problem definitions.
func NewEnvSessionManager(c *EnvSessionConfig) (*EnvSessionManager, error) {
	if len(c.Problems) == 0 {
		return nil, errors.New("session manager needs at least one problem")
	}
	for name, cfg := range c.Problems {
		if _, err := problem.New(cfg); err != nil {
			return nil, fmt.Errorf("problem %q: %w", name, err)
		}
	}

	logger := c.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	maxPerOwner := c.MaxEnvsPerOwner
	if maxPerOwner <= 0 {
		maxPerOwner = defaultMaxEnvsPerOwner
	}
	maxCells := c.MaxCells
	if maxCells <= 0 {
		maxCells = defaultMaxCells
	}

	return &EnvSessionManager{
		problems:    c.Problems,
		dispatcher:  c.Dispatcher,
		levelRepo:   c.LevelRepo,
		operators:   c.OperatorRepo,
		logger:      logger.WithField("component", "SESSION-MANAGER"),
		maxPerOwner: maxPerOwner,
		maxCells:    maxCells,
		sessions:    make(map[uuid.UUID]*envSession),
	}, nil
}

// Create implements i.EnvSessionManager. Every environment gets its own problem instance.
func (m *EnvSessionManager) Create(ctx context.Context, owner uuid.UUID, cfg i.EnvConfig) (i.EnvInfo, error) {
	pcfg, ok := m.problems[cfg.Problem]
	if !ok {
		return i.EnvInfo{}, fmt.Errorf("%w: %q", ErrUnknownProblem, cfg.Problem)
	}
	if err := cfg.Shape.Validate(); err != nil {
		return i.EnvInfo{}, err
	}
	if cfg.Shape.Size() > m.maxCells {
		return i.EnvInfo{}, fmt.Errorf("%w: %d cells exceed the limit of %d", grid.ErrConfig, cfg.Shape.Size(), m.maxCells)
	}
	quota, err := m.quota(owner)
	if err != nil {
		return i.EnvInfo{}, err
	}
	p, err := problem.New(pcfg)
	if err != nil {
		return i.EnvInfo{}, err
	}
	kind, err := rep.ParseKind(cfg.Representation)
	if err != nil {
		return i.EnvInfo{}, err
	}
	spawn, err := rep.ParseSpawn(cfg.Spawn)
	if err != nil {
		return i.EnvInfo{}, err
	}

	env, err := game.NewEnv(game.Options{
		Problem:          p,
		Kind:             kind,
		Shape:            cfg.Shape,
		Agents:           cfg.Agents,
		Spawn:            spawn,
		Warp:             cfg.Warp,
		Holes:            cfg.Holes,
		RandomStart:      cfg.RandomStart,
		MazeStart:        cfg.MazeStart,
		ChangePercentage: cfg.ChangePercentage,
		MaxIterations:    cfg.MaxIterations,
		TracePath:        cfg.TracePath,
	})
	if err != nil {
		return i.EnvInfo{}, err
	}

	info := i.EnvInfo{
		Owner:          owner,
		Problem:        cfg.Problem,
		Representation: kind.String(),
		Shape:          cfg.Shape,
		Tiles:          p.Tiles().Names(),
		NumActions:     env.NumActions(),
	}
	useQueue := cfg.UseQueue && m.dispatcher != nil
	if useQueue {
		info.QueueKey = m.dispatcher.QueueKey(cfg.Problem)
	}

	m.Lock()
	defer m.Unlock()
	if m.ownedBy(owner) >= quota {
		return i.EnvInfo{}, ErrTooManyEnvs
	}
	info.ID = uuid.New()
	for {
		if _, taken := m.sessions[info.ID]; !taken {
			break
		}
		info.ID = uuid.New()
	}
	m.sessions[info.ID] = &envSession{env: env, info: info, useQueue: useQueue}

	m.logger.WithFields(logrus.Fields{
		"env":     info.ID,
		"owner":   owner,
		"problem": cfg.Problem,
		"rep":     info.Representation,
	}).Info("created environment")
	return info, nil
}

// Info implements i.EnvSessionManager.
func (m *EnvSessionManager) Info(owner, id uuid.UUID) (i.EnvInfo, error) {
	s, err := m.session(owner, id)
	if err != nil {
		return i.EnvInfo{}, err
	}
	return s.info, nil
}

// quota is the number of environments owner may hold open.
func (m *EnvSessionManager) quota(owner uuid.UUID) (int, error) {
	if m.operators == nil {
		return m.maxPerOwner, nil
	}
	operator, err := m.operators.ByID(owner)
	if err != nil {
		return 0, err
	}
	if operator.Quota <= 0 {
		return m.maxPerOwner, nil
	}
	return operator.Quota, nil
}

func (m *EnvSessionManager) ownedBy(owner uuid.UUID) int {
	n := 0
	for _, s := range m.sessions {
		if s.info.Owner == owner {
			n++
		}
	}
	return n
}

// Reset implements i.EnvSessionManager. Without an explicit seed a queue-fed environment takes
// the next queued job; otherwise a random seed is drawn.
func (m *EnvSessionManager) Reset(ctx context.Context, owner, id uuid.UUID, seed *int64, cells []tile.Type) (game.Observation, error) {
	s, err := m.session(owner, id)
	if err != nil {
		return game.Observation{}, err
	}
	s.Lock()
	defer s.Unlock()

	var episodeSeed int64
	label := ""
	switch {
	case seed != nil:
		episodeSeed = *seed
	case s.useQueue:
		job, ok, err := m.dispatcher.Next(ctx, s.info.Problem)
		if err != nil {
			return game.Observation{}, err
		}
		if ok {
			episodeSeed = job.Seed
			label = job.Label
			m.logger.WithFields(logrus.Fields{"env": id, "seed": job.Seed, "label": job.Label}).Debug("reset from queued job")
		} else {
			episodeSeed = rand.Int63()
		}
	default:
		episodeSeed = rand.Int63()
	}

	o, err := s.env.Reset(game.ResetOptions{Seed: episodeSeed, Cells: cells})
	if err != nil {
		return game.Observation{}, err
	}
	s.archived = false
	s.label = label
	return o, nil
}

// Step implements i.EnvSessionManager. The level is archived the first time an episode ends.
func (m *EnvSessionManager) Step(ctx context.Context, owner, id uuid.UUID, a rep.Action) (game.StepResult, error) {
	s, err := m.session(owner, id)
	if err != nil {
		return game.StepResult{}, err
	}
	s.Lock()
	defer s.Unlock()

	res, err := s.env.Step(a)
	if err != nil {
		return game.StepResult{}, err
	}

	if res.Done && !s.archived {
		s.archived = true
		m.archive(ctx, s)
	}
	return res, nil
}

func (m *EnvSessionManager) archive(ctx context.Context, s *envSession) {
	if m.levelRepo == nil {
		return
	}
	level := s.env.Snapshot(s.info.Owner)
	level.Label = s.label
	if err := m.levelRepo.Save(ctx, level); err != nil {
		m.logger.WithError(err).WithField("env", s.info.ID).Error("archiving level")
		return
	}
	m.logger.WithFields(logrus.Fields{"env": s.info.ID, "level": level.ID, "solved": level.Solved}).Info("archived level")
}

// SetActiveAgent implements i.EnvSessionManager.
func (m *EnvSessionManager) SetActiveAgent(owner, id uuid.UUID, agent int) error {
	s, err := m.session(owner, id)
	if err != nil {
		return err
	}
	s.Lock()
	defer s.Unlock()
	return s.env.SetActiveAgent(agent)
}

// Observation implements i.EnvSessionManager.
func (m *EnvSessionManager) Observation(owner, id uuid.UUID, window int) (game.Observation, error) {
	s, err := m.session(owner, id)
	if err != nil {
		return game.Observation{}, err
	}
	s.Lock()
	defer s.Unlock()
	return s.env.Observation(window)
}

// Stats implements i.EnvSessionManager.
func (m *EnvSessionManager) Stats(owner, id uuid.UUID) (map[string]int, error) {
	s, err := m.session(owner, id)
	if err != nil {
		return nil, err
	}
	s.Lock()
	defer s.Unlock()
	return s.env.Stats().Map(), nil
}

// Path implements i.EnvSessionManager.
func (m *EnvSessionManager) Path(owner, id uuid.UUID) ([]grid.Coord, error) {
	s, err := m.session(owner, id)
	if err != nil {
		return nil, err
	}
	s.Lock()
	defer s.Unlock()
	return s.env.LastPath(), nil
}

// Border implements i.EnvSessionManager.
func (m *EnvSessionManager) Border(owner, id uuid.UUID) (tile.Type, string, error) {
	s, err := m.session(owner, id)
	if err != nil {
		return tile.OutOfBounds, "", err
	}
	s.Lock()
	defer s.Unlock()
	b := s.env.Border()
	return b, s.env.Problem().Tiles().Name(b), nil
}

// Close implements i.EnvSessionManager.
func (m *EnvSessionManager) Close(owner, id uuid.UUID) error {
	m.Lock()
	defer m.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.info.Owner != owner {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	m.logger.WithField("env", id).Info("closed environment")
	return nil
}

// CloseAll drops every environment.
func (m *EnvSessionManager) CloseAll() {
	m.Lock()
	defer m.Unlock()
	clear(m.sessions)
}

// session finds an environment owned by owner. Environments of other owners are reported
// as missing.
func (m *EnvSessionManager) session(owner, id uuid.UUID) (*envSession, error) {
	m.RLock()
	defer m.RUnlock()
	s, ok := m.sessions[id]
	if !ok || s.info.Owner != owner {
		return nil, ErrSessionNotFound
	}
	return s, nil
}
