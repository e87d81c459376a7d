package problem

import (
	"math"
	"slices"

	"github.com/beka-birhanu/vinom-pcg/game/grid"
	"github.com/beka-birhanu/vinom-pcg/game/path"
	"github.com/beka-birhanu/vinom-pcg/game/region"
	"github.com/beka-birhanu/vinom-pcg/game/tile"
)

// Statistic names reported by the key-and-door domain.
const (
	StatPlayer       = "player"
	StatKey          = "key"
	StatDoor         = "door"
	StatEnemies      = "enemies"
	StatRegions      = "regions"
	StatNearestEnemy = "nearest-enemy"
	StatPathLength   = "path-length"
)

// Passable-set names of the key-and-door domain's queries.
const (
	QueryRegions      = "regions"
	QueryNearestEnemy = "nearest-enemy"
	QueryPathToKey    = "path-to-key"
	QueryPathToDoor   = "path-to-door"
)

var zeldaTiles = []string{"empty", "solid", "player", "key", "door", "bat", "scorpion", "spider"}

func zeldaDefaults() Config {
	walkers := []string{"empty", "player", "key", "bat", "scorpion", "spider"}
	return Config{
		Name:   DomainZelda,
		Domain: DomainZelda,
		Probabilities: map[string]float64{
			"empty":    0.58,
			"solid":    0.3,
			"player":   0.02,
			"key":      0.02,
			"door":     0.02,
			"bat":      0.02,
			"scorpion": 0.02,
			"spider":   0.02,
		},
		Border: "solid",
		Weights: map[string]float64{
			StatPlayer:       3,
			StatKey:          3,
			StatDoor:         3,
			StatRegions:      5,
			StatEnemies:      1,
			StatNearestEnemy: 2,
			StatPathLength:   1,
		},
		Passable: map[string][]string{
			QueryRegions:      walkers,
			QueryNearestEnemy: walkers,
			QueryPathToKey:    walkers,
			QueryPathToDoor:   append(slices.Clone(walkers), "door"),
		},
		TargetPath:      16,
		TargetEnemyDist: 4,
		MaxEnemies:      5,
	}
}

// Zelda is the key-and-door domain: one player must reach one key and then one door, with
// enemies kept at a distance from the player's spawn.
type Zelda struct {
	base
	player, key, door tile.Type
	enemies           []tile.Type
	targetPath        int
	targetEnemyDist   int
	maxEnemies        int
}

func newZelda(cfg Config) (*Zelda, error) {
	b, err := newBase(cfg, zeldaTiles, []string{
		StatPlayer, StatKey, StatDoor, StatEnemies, StatRegions, StatNearestEnemy, StatPathLength,
	})
	if err != nil {
		return nil, err
	}
	if err := b.requirePassable(QueryRegions, QueryNearestEnemy, QueryPathToKey, QueryPathToDoor); err != nil {
		return nil, err
	}

	z := &Zelda{
		base:            b,
		targetPath:      cfg.TargetPath,
		targetEnemyDist: cfg.TargetEnemyDist,
		maxEnemies:      cfg.MaxEnemies,
	}
	z.player = z.mustType("player")
	z.key = z.mustType("key")
	z.door = z.mustType("door")
	z.enemies = []tile.Type{z.mustType("bat"), z.mustType("scorpion"), z.mustType("spider")}
	return z, nil
}

// Stats implements Problem.
//
// nearest-enemy and path-length are only measured on levels with one player and one region.
// When no enemy can be reached from the player, nearest-enemy holds the cell count of the grid,
// which satisfies any finite target. A path leg that cannot be walked leaves path-length at zero.
func (z *Zelda) Stats(g *grid.Grid, trace bool) Snapshot {
	z.path = nil
	ix := grid.Locate(g)

	stats := map[string]int{
		StatPlayer:       ix.Count(z.player),
		StatKey:          ix.Count(z.key),
		StatDoor:         ix.Count(z.door),
		StatEnemies:      ix.Count(z.enemies...),
		StatRegions:      region.Count(g, z.passable[QueryRegions]),
		StatNearestEnemy: 0,
		StatPathLength:   0,
	}
	if stats[StatPlayer] != 1 || stats[StatRegions] != 1 {
		return NewSnapshot(stats)
	}

	player, _ := ix.First(z.player)
	stats[StatNearestEnemy] = z.nearestEnemy(g, player, ix.All(z.enemies...))

	if stats[StatKey] == 1 && stats[StatDoor] == 1 {
		key, _ := ix.First(z.key)
		door, _ := ix.First(z.door)

		toKey := path.Dijkstra(g, player, z.passable[QueryPathToKey])
		toDoor := path.Dijkstra(g, key, z.passable[QueryPathToDoor])
		if toKey.Reached(key) && toDoor.Reached(door) {
			stats[StatPathLength] = toKey.At(key) + toDoor.At(door)
			if trace {
				z.path = joinLegs(toKey.PathTo(key), toDoor.PathTo(door))
			}
		}
	}
	return NewSnapshot(stats)
}

func (z *Zelda) nearestEnemy(g *grid.Grid, player grid.Coord, enemies []grid.Coord) int {
	nearest := g.Shape().Size()
	if len(enemies) == 0 {
		return nearest
	}
	field := path.Dijkstra(g, player, z.passable[QueryNearestEnemy])
	for _, e := range enemies {
		if d := field.At(e); d > 0 && d < nearest {
			nearest = d
		}
	}
	return nearest
}

// joinLegs turns two target-to-source walks into one source-to-target route.
func joinLegs(first, second []grid.Coord) []grid.Coord {
	route := make([]grid.Coord, 0, len(first)+len(second))
	for i := len(first) - 1; i >= 0; i-- {
		route = append(route, first[i])
	}
	for i := len(second) - 2; i >= 0; i-- {
		route = append(route, second[i])
	}
	return route
}

// Reward implements Problem.
func (z *Zelda) Reward(newStats, oldStats Snapshot) float64 {
	bounds := map[string]Bounds{
		StatPlayer:       {1, 1},
		StatKey:          {1, 1},
		StatDoor:         {1, 10},
		StatEnemies:      {2, float64(z.maxEnemies)},
		StatRegions:      {1, 1},
		StatNearestEnemy: {float64(z.targetEnemyDist), math.Inf(1)},
		StatPathLength:   {math.Inf(1), math.Inf(1)},
	}
	return weightedReward(newStats, oldStats, bounds, z.weights)
}

// EpisodeOver implements Problem.
func (z *Zelda) EpisodeOver(newStats, _ Snapshot) bool {
	return newStats.Get(StatNearestEnemy) >= z.targetEnemyDist &&
		newStats.Get(StatPathLength) >= z.targetPath
}

// DebugInfo implements Problem.
func (z *Zelda) DebugInfo(newStats, _ Snapshot) map[string]int {
	return newStats.Map()
}
