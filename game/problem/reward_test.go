package problem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeReward(t *testing.T) {
	inf := math.Inf(1)
	tests := []struct {
		name                  string
		newV, oldV, low, high float64
		want                  float64
	}{
		{"both inside", 1, 1, 1, 1, 0},
		{"both inside wide range", 3, 7, 2, 10, 0},
		{"climbing toward low", 3, 1, 4, inf, 2},
		{"climbing into range", 6, 1, 4, 10, 3},
		{"falling toward high", 12, 15, 2, 10, 3},
		{"falling away from low", 0, 2, 4, inf, -2},
		{"rising away from high", 15, 12, 2, 10, -3},
		{"jumping over the range upward", 12, 1, 4, 10, -5},
		{"jumping over the range downward", 1, 12, 4, 10, -5},
		{"unbounded above grows", 9, 4, inf, inf, 5},
		{"unbounded above shrinks", 4, 9, inf, inf, -5},
		{"leaving single point range", 2, 1, 1, 1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RangeReward(tt.newV, tt.oldV, tt.low, tt.high))
		})
	}
}

func TestWeightedReward(t *testing.T) {
	bounds := map[string]Bounds{
		"a": {1, 1},
		"b": {math.Inf(1), math.Inf(1)},
		"c": {0, 0},
	}
	weights := map[string]float64{"a": 2, "b": 0.5}

	newStats := NewSnapshot(map[string]int{"a": 1, "b": 10, "c": 4})
	oldStats := NewSnapshot(map[string]int{"a": 3, "b": 6, "c": 0})

	// c carries no weight and is ignored.
	assert.Equal(t, 2*2+0.5*4, weightedReward(newStats, oldStats, bounds, weights))
}

func TestSnapshot(t *testing.T) {
	values := map[string]int{"regions": 2, "key": 1}
	s := NewSnapshot(values)
	values["regions"] = 9

	assert.Equal(t, 2, s.Get("regions"))
	assert.Equal(t, 0, s.Get("door"))
	assert.True(t, s.Has("key"))
	assert.False(t, s.Has("door"))
	assert.Equal(t, []string{"key", "regions"}, s.Names())

	m := s.Map()
	m["key"] = 5
	assert.Equal(t, 1, s.Get("key"))

	assert.NotNil(t, Snapshot{}.Map())
}
