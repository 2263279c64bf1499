package uniformity

import (
	"fmt"
	"math"

	"gouniform/adapters/stats/binning"
	"gouniform/adapters/stats/distributions"
	"gouniform/domain/core"
	domain "gouniform/domain/uniformity"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// ChiTest compares observed frequencies over [min,max] intervals with the uniform expectation
type ChiTest struct {
	config Config
	dist   *distributions.Distributions
	sample domain.Sample
}

// NewChiTest creates a chi-squared goodness-of-fit test
func NewChiTest(config Config) *ChiTest {
	return &ChiTest{config: config, dist: distributions.New()}
}

// Name returns the test name
func (t *ChiTest) Name() domain.TestName { return domain.TestChi }

// SetSample replaces the sample under test
func (t *ChiTest) SetSample(sample domain.Sample) { t.sample = sample.Clone() }

// Execute satisfies ports.UniformityTestPort
func (t *ChiTest) Execute() (domain.Result, error) {
	res, err := t.Run()
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Run computes Pearson's statistic and checks it is below the upper alpha critical value
// of chi-squared(intervals-1).
func (t *ChiTest) Run() (domain.ChiResult, error) {
	n := t.sample.Len()
	if n == 0 {
		return domain.ChiResult{}, fmt.Errorf("chi test: %w", core.ErrEmptyInput)
	}

	values := []float64(t.sample)
	min, err := stats.Min(values)
	if err != nil {
		return domain.ChiResult{}, fmt.Errorf("chi test: %w", err)
	}
	max, err := stats.Max(values)
	if err != nil {
		return domain.ChiResult{}, fmt.Errorf("chi test: %w", err)
	}

	intervals, err := binning.RangeIntervals(min, max, t.config.Intervals)
	if err != nil {
		return domain.ChiResult{}, fmt.Errorf("chi test: %w", err)
	}
	k := intervals.Len()
	freq := intervals.CountByWidth(values)

	expected := float64(n) / float64(k)
	errs := make([]float64, k)
	for i, observed := range freq {
		errs[i] = math.Pow(float64(observed)-expected, 2) / expected
	}
	statistic := floats.Sum(errs)

	df := k - 1
	critical, err := t.dist.ChiSquaredSurvival(t.config.Alpha, df)
	if err != nil {
		return domain.ChiResult{}, fmt.Errorf("chi test: %w", err)
	}

	return domain.ChiResult{
		N:                 n,
		Min:               min,
		Max:               max,
		Intervals:         intervals.Edges,
		Frequencies:       freq,
		ExpectedFrequency: expected,
		Errors:            errs,
		Statistic:         statistic,
		DegreesOfFreedom:  df,
		CriticalValue:     critical,
		Pass:              statistic < critical,
	}, nil
}
