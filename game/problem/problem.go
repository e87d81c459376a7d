/*
Package problem turns a grid into named statistics and scores edits by comparing statistics.

A Problem owns a tile set and a target description for one level domain. Stats runs the region
and path engines over a grid, Reward compares a before/after pair of snapshots through weighted
range rewards, and EpisodeOver decides whether the level reached its targets.
*/
package problem

import (
	"fmt"
	"maps"

	"github.com/beka-birhanu/vinom-pcg/game/grid"
	"github.com/beka-birhanu/vinom-pcg/game/tile"
	"github.com/zyedidia/generic/mapset"
)

// Problem computes statistics, rewards, and termination for one level domain.
type Problem interface {
	// Name identifies the configured problem.
	Name() string

	// Tiles returns the tile set of the domain.
	Tiles() *tile.Set

	// Border returns the tile padding bordered grids.
	Border() tile.Type

	// Probabilities returns the per-tile distribution used for random fills.
	Probabilities() map[tile.Type]float64

	// Stats evaluates a grid. With trace set the problem keeps the path it measured.
	Stats(g *grid.Grid, trace bool) Snapshot

	// Reward scores the change between two snapshots.
	Reward(newStats, oldStats Snapshot) float64

	// EpisodeOver reports whether newStats satisfies the problem's targets.
	EpisodeOver(newStats, oldStats Snapshot) bool

	// DebugInfo returns the statistics worth reporting to a controller.
	DebugInfo(newStats, oldStats Snapshot) map[string]int

	// LastPath returns the path traced by the latest Stats call made with trace set.
	LastPath() []grid.Coord
}

// Config describes a problem in a definitions file. Zero fields keep the domain defaults.
type Config struct {
	Name            string              `yaml:"name" json:"name"`
	Domain          string              `yaml:"domain" json:"domain"`
	Probabilities   map[string]float64  `yaml:"probabilities" json:"probabilities,omitempty"`
	Border          string              `yaml:"border" json:"border,omitempty"`
	Weights         map[string]float64  `yaml:"weights" json:"weights,omitempty"`
	Passable        map[string][]string `yaml:"passable" json:"passable,omitempty"`
	TargetPath      int                 `yaml:"target_path" json:"target_path,omitempty"`
	TargetEnemyDist int                 `yaml:"target_enemy_dist" json:"target_enemy_dist,omitempty"`
	MaxEnemies      int                 `yaml:"max_enemies" json:"max_enemies,omitempty"`
}

const (
	DomainZelda  = "zelda"
	DomainBinary = "binary"
)

// Defaults returns the built-in configuration of every domain, keyed by problem name.
func Defaults() map[string]Config {
	return map[string]Config{
		DomainZelda:  zeldaDefaults(),
		DomainBinary: binaryDefaults(),
	}
}

// New builds a problem from cfg layered over the defaults of its domain.
func New(cfg Config) (Problem, error) {
	var (
		p   Problem
		err error
	)
	switch cfg.Domain {
	case DomainZelda:
		p, err = newZelda(merge(zeldaDefaults(), cfg))
	case DomainBinary:
		p, err = newBinary(merge(binaryDefaults(), cfg))
	default:
		return nil, fmt.Errorf("%w: unknown problem domain %q", grid.ErrConfig, cfg.Domain)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// merge overlays the non-zero fields of over onto base.
func merge(base, over Config) Config {
	if over.Name != "" {
		base.Name = over.Name
	}
	if len(over.Probabilities) > 0 {
		base.Probabilities = maps.Clone(over.Probabilities)
	}
	if over.Border != "" {
		base.Border = over.Border
	}
	base.Weights = maps.Clone(base.Weights)
	maps.Copy(base.Weights, over.Weights)
	base.Passable = maps.Clone(base.Passable)
	maps.Copy(base.Passable, over.Passable)
	if over.TargetPath > 0 {
		base.TargetPath = over.TargetPath
	}
	if over.TargetEnemyDist > 0 {
		base.TargetEnemyDist = over.TargetEnemyDist
	}
	if over.MaxEnemies > 0 {
		base.MaxEnemies = over.MaxEnemies
	}
	return base
}

// base holds what every domain shares.
type base struct {
	name     string
	tiles    *tile.Set
	border   tile.Type
	probs    map[tile.Type]float64
	weights  map[string]float64
	passable map[string]mapset.Set[tile.Type]
	path     []grid.Coord
}

func newBase(cfg Config, tileNames []string, stats []string) (base, error) {
	tiles, err := tile.NewSet(tileNames...)
	if err != nil {
		return base{}, fmt.Errorf("%w: %w", grid.ErrConfig, err)
	}
	b := base{
		name:     cfg.Name,
		tiles:    tiles,
		probs:    make(map[tile.Type]float64, len(cfg.Probabilities)),
		weights:  make(map[string]float64, len(cfg.Weights)),
		passable: make(map[string]mapset.Set[tile.Type], len(cfg.Passable)),
	}

	if b.border, err = tiles.Type(cfg.Border); err != nil {
		return base{}, fmt.Errorf("%w: border: %w", grid.ErrConfig, err)
	}
	for name, p := range cfg.Probabilities {
		t, err := tiles.Type(name)
		if err != nil {
			return base{}, fmt.Errorf("%w: probabilities: %w", grid.ErrConfig, err)
		}
		b.probs[t] = p
	}

	known := make(map[string]bool, len(stats))
	for _, s := range stats {
		known[s] = true
	}
	for stat, w := range cfg.Weights {
		if !known[stat] {
			return base{}, fmt.Errorf("%w: weight for unknown statistic %q", grid.ErrConfig, stat)
		}
		b.weights[stat] = w
	}
	for query, names := range cfg.Passable {
		set, err := tiles.Passable(names...)
		if err != nil {
			return base{}, fmt.Errorf("%w: passable %q: %w", grid.ErrConfig, query, err)
		}
		b.passable[query] = set
	}
	return b, nil
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Tiles() *tile.Set {
	return b.tiles
}

func (b *base) Border() tile.Type {
	return b.border
}

func (b *base) Probabilities() map[tile.Type]float64 {
	return maps.Clone(b.probs)
}

func (b *base) LastPath() []grid.Coord {
	return append([]grid.Coord(nil), b.path...)
}

// mustType resolves a tile name that the domain itself declared.
func (b *base) mustType(name string) tile.Type {
	t, err := b.tiles.Type(name)
	if err != nil {
		panic(err)
	}
	return t
}

// requirePassable fails when a domain query has no passable set configured.
func (b *base) requirePassable(queries ...string) error {
	for _, q := range queries {
		if _, ok := b.passable[q]; !ok {
			return fmt.Errorf("%w: no passable tiles for %q", grid.ErrConfig, q)
		}
	}
	return nil
}
