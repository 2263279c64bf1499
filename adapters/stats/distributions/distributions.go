package distributions

import (
	"fmt"
	"math"

	"gouniform/domain/core"

	"gonum.org/v1/gonum/stat/distuv"
)

// Distributions provides the quantile lookups the uniformity tests need.
// All methods are pure and validate their arguments before calling gonum,
// whose quantile functions panic outside [0,1].
type Distributions struct{}

// New creates a distributions utility
func New() *Distributions {
	return &Distributions{}
}

// NormalQuantile returns z such that P(Z <= z) = p for standard normal Z
func (d *Distributions) NormalQuantile(p float64) (float64, error) {
	if err := checkProbability(p); err != nil {
		return 0, err
	}
	return distuv.UnitNormal.Quantile(p), nil
}

// ChiSquaredQuantile returns x such that P(X <= x) = p for X ~ chi-squared(df)
func (d *Distributions) ChiSquaredQuantile(p float64, df int) (float64, error) {
	if err := checkProbability(p); err != nil {
		return 0, err
	}
	if df <= 0 {
		return 0, fmt.Errorf("%w: degrees of freedom %d must be positive", core.ErrInvalidParameter, df)
	}
	return distuv.ChiSquared{K: float64(df)}.Quantile(p), nil
}

// ChiSquaredSurvival is the inverse survival function: x such that P(X > x) = alpha
func (d *Distributions) ChiSquaredSurvival(alpha float64, df int) (float64, error) {
	if err := checkProbability(alpha); err != nil {
		return 0, err
	}
	return d.ChiSquaredQuantile(1-alpha, df)
}

func checkProbability(p float64) error {
	if math.IsNaN(p) || p <= 0 || p >= 1 {
		return fmt.Errorf("%w: probability %v outside (0,1)", core.ErrInvalidParameter, p)
	}
	return nil
}
