package uniformity

import (
	"fmt"
	"math"

	"gouniform/adapters/stats/binning"
	"gouniform/domain/core"
	domain "gouniform/domain/uniformity"

	"gonum.org/v1/gonum/floats"
)

// KSTest compares the stepped empirical CDF over fixed [0,1) intervals with the uniform CDF
type KSTest struct {
	config Config
	sample domain.Sample
}

// NewKSTest creates a Kolmogorov-Smirnov test
func NewKSTest(config Config) *KSTest {
	return &KSTest{config: config}
}

// Name returns the test name
func (t *KSTest) Name() domain.TestName { return domain.TestKS }

// SetSample replaces the sample under test
func (t *KSTest) SetSample(sample domain.Sample) { t.sample = sample.Clone() }

// Execute satisfies ports.UniformityTestPort
func (t *KSTest) Execute() (domain.Result, error) {
	res, err := t.Run()
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Run computes D = max |F_obs - F_exp| over the interval edges and compares it with
// the configured critical value. Intervals are recomputed on every call.
func (t *KSTest) Run() (domain.KSResult, error) {
	n := t.sample.Len()
	if n == 0 {
		return domain.KSResult{}, fmt.Errorf("ks test: %w", core.ErrEmptyInput)
	}

	intervals, err := binning.UnitIntervals(t.config.Intervals)
	if err != nil {
		return domain.KSResult{}, fmt.Errorf("ks test: %w", err)
	}
	k := intervals.Len()

	freq := intervals.CountByEdge(t.sample)
	obtained := binning.Cumulative(freq)

	probObtained := make([]float64, k)
	expectedAcc := make([]float64, k)
	probExpected := make([]float64, k)
	diffs := make([]float64, k)

	expectedFreq := float64(n) / float64(k)
	for i := 0; i < k; i++ {
		probObtained[i] = float64(obtained[i]) / float64(n)
		expectedAcc[i] = expectedFreq * float64(i+1)
		probExpected[i] = expectedAcc[i] / float64(n)
		diffs[i] = binning.Round(math.Abs(probExpected[i]-probObtained[i]), differenceDecimals)
	}
	maxDiff := floats.Max(diffs)

	return domain.KSResult{
		N:                            n,
		Intervals:                    intervals.Edges,
		Frequencies:                  freq,
		ObtainedAccumulatedFrequency: obtained,
		ProbabilityObtained:          probObtained,
		ExpectedAccumulatedFrequency: expectedAcc,
		ProbabilityExpected:          probExpected,
		Differences:                  diffs,
		MaxDifference:                maxDiff,
		CriticalValue:                t.config.KSCriticalValue,
		Pass:                         !(maxDiff > t.config.KSCriticalValue),
	}, nil
}
