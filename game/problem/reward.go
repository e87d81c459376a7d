package problem

import (
	"maps"
	"math"
	"slices"
)

// RangeReward measures how far a statistic moved toward the closed range [low, high].
//
// It is zero when both values already lie in the range. Otherwise it is the signed distance
// new moved toward the range relative to old, counted only up to the range boundary. Either
// bound may be infinite.
func RangeReward(newValue, oldValue, low, high float64) float64 {
	newIn := newValue >= low && newValue <= high
	oldIn := oldValue >= low && oldValue <= high
	switch {
	case newIn && oldIn:
		return 0
	case oldValue <= high && newValue <= high:
		return math.Min(newValue, low) - math.Min(oldValue, low)
	case oldValue >= low && newValue >= low:
		return math.Max(oldValue, high) - math.Max(newValue, high)
	case newValue > high && oldValue < low:
		return high - newValue + oldValue - low
	case newValue < low && oldValue > high:
		return high - oldValue + newValue - low
	}
	return 0
}

// Bounds is the target range of one statistic.
type Bounds struct {
	Low, High float64
}

// weightedReward sums weight[name] * RangeReward over the statistics that have bounds.
func weightedReward(newStats, oldStats Snapshot, bounds map[string]Bounds, weights map[string]float64) float64 {
	total := 0.0
	for _, name := range slices.Sorted(maps.Keys(bounds)) {
		b := bounds[name]
		w, ok := weights[name]
		if !ok || w == 0 {
			continue
		}
		total += w * RangeReward(float64(newStats.Get(name)), float64(oldStats.Get(name)), b.Low, b.High)
	}
	return total
}
