package uniformity

import (
	"fmt"
	"math"

	"gouniform/adapters/stats/distributions"
	"gouniform/domain/core"
	domain "gouniform/domain/uniformity"

	"github.com/montanaflynn/stats"
)

// MeanTest checks the sample mean against the Uniform(0,1) mean of 1/2
type MeanTest struct {
	config Config
	dist   *distributions.Distributions
	sample domain.Sample
}

// NewMeanTest creates a mean test
func NewMeanTest(config Config) *MeanTest {
	return &MeanTest{config: config, dist: distributions.New()}
}

// Name returns the test name
func (t *MeanTest) Name() domain.TestName { return domain.TestMean }

// SetSample replaces the sample under test
func (t *MeanTest) SetSample(sample domain.Sample) { t.sample = sample.Clone() }

// Execute satisfies ports.UniformityTestPort
func (t *MeanTest) Execute() (domain.Result, error) {
	res, err := t.Run()
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Run computes the confidence interval 1/2 ± z/√(12n) and checks r falls inside it
func (t *MeanTest) Run() (domain.MeanResult, error) {
	n := t.sample.Len()
	if n == 0 {
		return domain.MeanResult{}, fmt.Errorf("mean test: %w", core.ErrEmptyInput)
	}

	r, err := stats.Mean([]float64(t.sample))
	if err != nil {
		return domain.MeanResult{}, fmt.Errorf("mean test: %w", err)
	}

	halfAlpha := 1 - t.config.Alpha/2
	zeta, err := t.dist.NormalQuantile(halfAlpha)
	if err != nil {
		return domain.MeanResult{}, fmt.Errorf("mean test: %w", err)
	}

	halfWidth := zeta / math.Sqrt(12*float64(n))
	lower := 0.5 - halfWidth
	upper := 0.5 + halfWidth

	return domain.MeanResult{
		N:          n,
		Alpha:      t.config.Alpha,
		R:          r,
		HalfAlpha:  halfAlpha,
		Zeta:       zeta,
		LowerLimit: lower,
		UpperLimit: upper,
		Pass:       lower <= r && r <= upper,
	}, nil
}
