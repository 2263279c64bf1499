package binning

import (
	"fmt"
	"math"

	"gouniform/domain/core"
)

// IntervalSet is an ascending list of right edges for contiguous half-open bins.
// Start is the left edge of the first bin and Width the nominal bin width.
type IntervalSet struct {
	Start float64
	Width float64
	Edges []float64
}

// Len returns the number of bins
func (s IntervalSet) Len() int { return len(s.Edges) }

// Round rounds x to the given number of decimal places
func Round(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(x*scale) / scale
}

// UnitIntervals partitions [0,1) into k equal bins with right edges rounded to 2 decimals
func UnitIntervals(k int) (IntervalSet, error) {
	if k <= 0 {
		return IntervalSet{}, fmt.Errorf("%w: interval count %d must be positive", core.ErrInvalidParameter, k)
	}
	width := 1.0 / float64(k)
	edges := make([]float64, k)
	for i := range edges {
		edges[i] = Round(float64(i+1)/float64(k), 2)
	}
	return IntervalSet{Start: 0, Width: width, Edges: edges}, nil
}

// RangeIntervals partitions [min,max] into k equal bins with right edges at min+width·(i+1)
func RangeIntervals(min, max float64, k int) (IntervalSet, error) {
	if k <= 0 {
		return IntervalSet{}, fmt.Errorf("%w: interval count %d must be positive", core.ErrInvalidParameter, k)
	}
	if max < min {
		return IntervalSet{}, fmt.Errorf("%w: range max %v below min %v", core.ErrInvalidParameter, max, min)
	}
	width := (max - min) / float64(k)
	edges := make([]float64, k)
	for i := range edges {
		edges[i] = min + width + width*float64(i)
	}
	return IntervalSet{Start: min, Width: width, Edges: edges}, nil
}

// CountByEdge assigns each value to the first bin whose right edge exceeds it.
// Values at or above the last edge fall into the last bin.
func (s IntervalSet) CountByEdge(values []float64) []int {
	freq := make([]int, len(s.Edges))
	if len(freq) == 0 {
		return freq
	}
	last := len(freq) - 1
	for _, v := range values {
		idx := last
		for i, edge := range s.Edges {
			if v < edge {
				idx = i
				break
			}
		}
		freq[idx]++
	}
	return freq
}

// CountByWidth assigns each value to floor((v-Start)/Width), clamped to the valid index range.
// A zero-width set (all values equal) places everything in the first bin.
func (s IntervalSet) CountByWidth(values []float64) []int {
	freq := make([]int, len(s.Edges))
	if len(freq) == 0 {
		return freq
	}
	last := len(freq) - 1
	for _, v := range values {
		idx := 0
		if s.Width > 0 {
			pos := math.Floor((v - s.Start) / s.Width)
			switch {
			case math.IsNaN(pos) || pos < 0:
				idx = 0
			case pos > float64(last):
				idx = last
			default:
				idx = int(pos)
			}
		}
		freq[idx]++
	}
	return freq
}

// Cumulative returns running totals of freq
func Cumulative(freq []int) []int {
	out := make([]int, len(freq))
	running := 0
	for i, f := range freq {
		running += f
		out[i] = running
	}
	return out
}
