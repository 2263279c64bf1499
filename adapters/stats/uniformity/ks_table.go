package uniformity

import (
	"fmt"
	"math"

	"gouniform/domain/core"
)

// Two-sided Kolmogorov critical values D(alpha, n) for n = 10
var kolmogorovTen = map[float64]float64{
	0.20: 0.32260,
	0.10: 0.36866,
	0.05: 0.40925,
	0.02: 0.45662,
	0.01: 0.48893,
}

// Asymptotic coefficients c(alpha) with D ≈ c/√n for n > 35
var kolmogorovAsymptotic = map[float64]float64{
	0.20: 1.07,
	0.10: 1.22,
	0.05: 1.36,
	0.02: 1.52,
	0.01: 1.63,
}

// KolmogorovCriticalValue looks up the tabulated critical value for (alpha, n).
// Only the n = 10 row and the large-n approximation are tabulated; other sizes
// must supply an explicit value through configuration.
func KolmogorovCriticalValue(alpha float64, n int) (float64, error) {
	key := math.Round(alpha*100) / 100
	if math.Abs(key-alpha) > 1e-12 {
		return 0, fmt.Errorf("%w: alpha %v is not a tabulated level", core.ErrInvalidParameter, alpha)
	}
	if n == 10 {
		if d, ok := kolmogorovTen[key]; ok {
			return d, nil
		}
	}
	if n > 35 {
		if c, ok := kolmogorovAsymptotic[key]; ok {
			return c / math.Sqrt(float64(n)), nil
		}
	}
	return 0, fmt.Errorf("%w: no Kolmogorov table entry for alpha=%v n=%d", core.ErrInvalidParameter, alpha, n)
}
