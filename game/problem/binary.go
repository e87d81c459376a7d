package problem

import (
	"math"

	"github.com/beka-birhanu/vinom-pcg/game/grid"
	"github.com/beka-birhanu/vinom-pcg/game/path"
	"github.com/beka-birhanu/vinom-pcg/game/region"
)

// StatConnected is 1 when the entrance of a holey grid reaches its exit.
const StatConnected = "connected"

// QueryPath names the passable set of the binary domain's path measurement.
const QueryPath = "path"

func binaryDefaults() Config {
	return Config{
		Name:   DomainBinary,
		Domain: DomainBinary,
		Probabilities: map[string]float64{
			"empty": 0.5,
			"solid": 0.5,
		},
		Border: "solid",
		Weights: map[string]float64{
			StatRegions:    5,
			StatPathLength: 1,
			StatConnected:  2,
		},
		Passable: map[string][]string{
			QueryRegions: {"empty"},
			QueryPath:    {"empty"},
		},
		TargetPath: 20,
	}
}

// Binary is the maze domain: a grid of empty and solid tiles that should form one region with
// a long path through it. On a grid with holes the path runs from the entrance to the exit.
type Binary struct {
	base
	targetPath int
}

func newBinary(cfg Config) (*Binary, error) {
	b, err := newBase(cfg, []string{"empty", "solid"}, []string{StatRegions, StatPathLength, StatConnected})
	if err != nil {
		return nil, err
	}
	if err := b.requirePassable(QueryRegions, QueryPath); err != nil {
		return nil, err
	}
	return &Binary{base: b, targetPath: cfg.TargetPath}, nil
}

// Stats implements Problem.
func (p *Binary) Stats(g *grid.Grid, trace bool) Snapshot {
	p.path = nil
	if holes, ok := g.Holes(); ok {
		return p.holeyStats(g, holes, trace)
	}

	longest, route := path.Longest(g, p.passable[QueryPath])
	if trace {
		p.path = route
	}
	return NewSnapshot(map[string]int{
		StatRegions:    region.Count(g, p.passable[QueryRegions]),
		StatPathLength: longest,
	})
}

// holeyStats measures the bordered grid. Traced coordinates are in bordered space.
func (p *Binary) holeyStats(g *grid.Grid, holes grid.Holes, trace bool) Snapshot {
	bordered := g.Bordered()
	stats := map[string]int{
		StatRegions:    region.Count(bordered, p.passable[QueryRegions]),
		StatPathLength: 0,
		StatConnected:  0,
	}

	field := path.Dijkstra(bordered, holes.Entry[0], p.passable[QueryPath])
	exit := holes.Exit[0]
	if field.Reached(exit) {
		stats[StatPathLength] = field.At(exit)
		stats[StatConnected] = 1
		if trace {
			p.path = reverse(field.PathTo(exit))
		}
	}
	return NewSnapshot(stats)
}

func reverse(cs []grid.Coord) []grid.Coord {
	for i, j := 0, len(cs)-1; i < j; i, j = i+1, j-1 {
		cs[i], cs[j] = cs[j], cs[i]
	}
	return cs
}

// Reward implements Problem.
func (p *Binary) Reward(newStats, oldStats Snapshot) float64 {
	bounds := map[string]Bounds{
		StatRegions:    {1, 1},
		StatPathLength: {math.Inf(1), math.Inf(1)},
		StatConnected:  {1, 1},
	}
	return weightedReward(newStats, oldStats, bounds, p.weights)
}

// EpisodeOver implements Problem.
func (p *Binary) EpisodeOver(newStats, _ Snapshot) bool {
	if newStats.Has(StatConnected) && newStats.Get(StatConnected) == 0 {
		return false
	}
	return newStats.Get(StatRegions) == 1 && newStats.Get(StatPathLength) >= p.targetPath
}

// DebugInfo implements Problem.
func (p *Binary) DebugInfo(newStats, _ Snapshot) map[string]int {
	return newStats.Map()
}
