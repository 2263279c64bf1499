package binning

import (
	"errors"
	"sort"
	"testing"

	"gouniform/domain/core"
	"gouniform/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(freq []int) int {
	total := 0
	for _, f := range freq {
		total += f
	}
	return total
}

func TestUnitIntervals_TenAscendingEdgesEndingAtOne(t *testing.T) {
	set, err := UnitIntervals(10)
	require.NoError(t, err)

	assert.Equal(t, 10, set.Len())
	assert.True(t, sort.Float64sAreSorted(set.Edges))
	assert.Equal(t, 1.0, set.Edges[9])
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}, set.Edges)
}

func TestUnitIntervals_RoundsToTwoDecimals(t *testing.T) {
	set, err := UnitIntervals(3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.33, 0.67, 1.0}, set.Edges)
}

func TestIntervals_RejectNonPositiveCount(t *testing.T) {
	_, err := UnitIntervals(0)
	assert.True(t, errors.Is(err, core.ErrInvalidParameter))

	_, err = RangeIntervals(0, 1, -1)
	assert.True(t, errors.Is(err, core.ErrInvalidParameter))

	_, err = RangeIntervals(1, 0, 10)
	assert.True(t, errors.Is(err, core.ErrInvalidParameter))
}

func TestCountByEdge_EveryValueLandsOnce(t *testing.T) {
	set, err := UnitIntervals(10)
	require.NoError(t, err)

	values := []float64{-0.2, 0, 0.05, 0.1, 0.99, 1.0, 1.7}
	freq := set.CountByEdge(values)

	assert.Equal(t, len(values), sum(freq))
	assert.Equal(t, 3, freq[0], "negative, zero and 0.05 go to the first bin")
	assert.Equal(t, 1, freq[1], "0.1 is not below the first edge")
	assert.Equal(t, 3, freq[9], "0.99 and everything at or above 1.0")
}

func TestCountByWidth_SumsToSampleSize(t *testing.T) {
	kit := testkit.New(7)
	for _, n := range []int{1, 2, 17, 1000} {
		values := kit.Uniform(n)
		min, max := values[0], values[0]
		for _, v := range values {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}

		set, err := RangeIntervals(min, max, 10)
		require.NoError(t, err)
		freq := set.CountByWidth(values)
		assert.Equal(t, n, sum(freq), "n=%d", n)
	}
}

func TestCountByWidth_MaximumClampedToLastBin(t *testing.T) {
	set, err := RangeIntervals(0, 1, 4)
	require.NoError(t, err)

	freq := set.CountByWidth([]float64{0, 0.25, 0.5, 0.99, 1})
	assert.Equal(t, []int{1, 1, 1, 2}, freq)
}

func TestCountByWidth_ZeroWidth(t *testing.T) {
	set, err := RangeIntervals(0.3, 0.3, 5)
	require.NoError(t, err)

	freq := set.CountByWidth([]float64{0.3, 0.3, 0.3})
	assert.Equal(t, []int{3, 0, 0, 0, 0}, freq)
}

func TestCumulative(t *testing.T) {
	assert.Equal(t, []int{1, 3, 3, 7}, Cumulative([]int{1, 2, 0, 4}))
	assert.Empty(t, Cumulative(nil))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.3, Round(0.30000000000000004, 2))
	assert.Equal(t, 0.08333, Round(0.0833332, 5))
	assert.Equal(t, 1.0, Round(0.999999, 2))
}
