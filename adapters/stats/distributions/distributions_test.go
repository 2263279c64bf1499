package distributions

import (
	"errors"
	"math"
	"testing"

	"gouniform/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestNormalQuantile_KnownValues(t *testing.T) {
	d := New()
	cases := []struct {
		p, want float64
	}{
		{0.5, 0},
		{0.975, 1.959963984540054},
		{0.025, -1.959963984540054},
		{0.95, 1.6448536269514722},
	}
	for _, tc := range cases {
		got, err := d.NormalQuantile(tc.p)
		require.NoError(t, err)
		assert.True(t, scalar.EqualWithinAbsOrRel(got, tc.want, 1e-9, 1e-9),
			"p=%v: got %v, want %v", tc.p, got, tc.want)
	}
}

func TestChiSquaredQuantile_KnownValues(t *testing.T) {
	d := New()
	cases := []struct {
		p    float64
		df   int
		want float64
	}{
		{0.95, 9, 16.918977604620448},
		{0.95, 6, 12.591587243743977},
		{0.975, 1, 5.023886187314888},
		{0.025, 10, 3.246972780236841},
	}
	for _, tc := range cases {
		got, err := d.ChiSquaredQuantile(tc.p, tc.df)
		require.NoError(t, err)
		assert.True(t, scalar.EqualWithinAbsOrRel(got, tc.want, 1e-6, 1e-6),
			"p=%v df=%d: got %v, want %v", tc.p, tc.df, got, tc.want)
	}
}

func TestChiSquaredSurvival_MatchesUpperQuantile(t *testing.T) {
	d := New()
	for _, df := range []int{1, 6, 9, 99} {
		isf, err := d.ChiSquaredSurvival(0.05, df)
		require.NoError(t, err)
		q, err := d.ChiSquaredQuantile(0.95, df)
		require.NoError(t, err)
		assert.InDelta(t, q, isf, 1e-9)
	}
}

func TestDistributions_InvalidParameters(t *testing.T) {
	d := New()

	for _, p := range []float64{0, 1, -0.1, 1.5, math.NaN()} {
		_, err := d.NormalQuantile(p)
		assert.True(t, errors.Is(err, core.ErrInvalidParameter), "p=%v", p)

		_, err = d.ChiSquaredQuantile(p, 3)
		assert.True(t, errors.Is(err, core.ErrInvalidParameter), "p=%v", p)

		_, err = d.ChiSquaredSurvival(p, 3)
		assert.True(t, errors.Is(err, core.ErrInvalidParameter), "alpha=%v", p)
	}

	for _, df := range []int{0, -4} {
		_, err := d.ChiSquaredQuantile(0.5, df)
		assert.True(t, errors.Is(err, core.ErrInvalidParameter), "df=%d", df)
	}
}
