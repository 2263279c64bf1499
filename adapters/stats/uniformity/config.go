package uniformity

import (
	"fmt"

	"gouniform/domain/core"
)

// Config holds the constants every test reads
type Config struct {
	Alpha           float64 `json:"alpha"`
	Intervals       int     `json:"intervals"`
	KSCriticalValue float64 `json:"ks_critical_value"`
}

// DefaultConfig returns alpha 0.05, ten intervals and the matching Kolmogorov critical value
func DefaultConfig() Config {
	return Config{
		Alpha:           DefaultAlpha,
		Intervals:       DefaultIntervals,
		KSCriticalValue: 0.40925,
	}
}

// Validate checks the invariants the tests rely on
func (c Config) Validate() error {
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("%w: alpha %v outside (0,1)", core.ErrInvalidParameter, c.Alpha)
	}
	if c.Intervals < 2 {
		return fmt.Errorf("%w: need at least 2 intervals, got %d", core.ErrInvalidParameter, c.Intervals)
	}
	if c.KSCriticalValue <= 0 || c.KSCriticalValue > 1 {
		return fmt.Errorf("%w: KS critical value %v outside (0,1]", core.ErrInvalidParameter, c.KSCriticalValue)
	}
	return nil
}

const (
	DefaultAlpha     = 0.05
	DefaultIntervals = 10

	// The poker test always looks up chi-squared(6) at 0.05, whatever alpha is configured.
	PokerAlpha            = 0.05
	PokerDegreesOfFreedom = 6
	HandSize              = 5

	// Reported statistics are rounded to this many decimals where the reference tables are.
	varianceDecimals   = 5
	differenceDecimals = 5
)
