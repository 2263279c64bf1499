package uniformity

import (
	"fmt"

	"gouniform/adapters/stats/binning"
	"gouniform/adapters/stats/distributions"
	"gouniform/domain/core"
	domain "gouniform/domain/uniformity"

	"github.com/montanaflynn/stats"
)

// VarianceTest checks the population variance against the Uniform(0,1) variance of 1/12
type VarianceTest struct {
	config Config
	dist   *distributions.Distributions
	sample domain.Sample
}

// NewVarianceTest creates a variance test
func NewVarianceTest(config Config) *VarianceTest {
	return &VarianceTest{config: config, dist: distributions.New()}
}

// Name returns the test name
func (t *VarianceTest) Name() domain.TestName { return domain.TestVariance }

// SetSample replaces the sample under test
func (t *VarianceTest) SetSample(sample domain.Sample) { t.sample = sample.Clone() }

// Execute satisfies ports.UniformityTestPort
func (t *VarianceTest) Execute() (domain.Result, error) {
	res, err := t.Run()
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Run builds the chi-squared pivot interval with df = n-1.
// LowerLimit comes from the 1-alpha/2 quantile and UpperLimit from the alpha/2
// quantile, so a passing variance satisfies UpperLimit <= variance <= LowerLimit.
func (t *VarianceTest) Run() (domain.VarianceResult, error) {
	n := t.sample.Len()
	switch {
	case n == 0:
		return domain.VarianceResult{}, fmt.Errorf("variance test: %w", core.ErrEmptyInput)
	case n < 2:
		return domain.VarianceResult{}, fmt.Errorf("variance test: %w: need at least 2 values, got %d", core.ErrInsufficientSample, n)
	}

	values := []float64(t.sample)
	mean, err := stats.Mean(values)
	if err != nil {
		return domain.VarianceResult{}, fmt.Errorf("variance test: %w", err)
	}
	variance, err := stats.PopulationVariance(values)
	if err != nil {
		return domain.VarianceResult{}, fmt.Errorf("variance test: %w", err)
	}

	df := n - 1
	oneHalfAlpha := 1 - t.config.Alpha/2
	halfAlpha := t.config.Alpha / 2

	completeChi, err := t.dist.ChiSquaredQuantile(oneHalfAlpha, df)
	if err != nil {
		return domain.VarianceResult{}, fmt.Errorf("variance test: %w", err)
	}
	halfChi, err := t.dist.ChiSquaredQuantile(halfAlpha, df)
	if err != nil {
		return domain.VarianceResult{}, fmt.Errorf("variance test: %w", err)
	}

	variance = binning.Round(variance, varianceDecimals)
	completeChi = binning.Round(completeChi, varianceDecimals)
	halfChi = binning.Round(halfChi, varianceDecimals)
	lower := binning.Round(completeChi/(12*float64(df)), varianceDecimals)
	upper := binning.Round(halfChi/(12*float64(df)), varianceDecimals)

	return domain.VarianceResult{
		N:                 n,
		DegreesOfFreedom:  df,
		Mean:              mean,
		Variance:          variance,
		OneHalfAlpha:      oneHalfAlpha,
		HalfAlpha:         halfAlpha,
		CompleteChiInvert: completeChi,
		HalfChiInvert:     halfChi,
		LowerLimit:        lower,
		UpperLimit:        upper,
		Pass:              upper <= variance && variance <= lower,
	}, nil
}
