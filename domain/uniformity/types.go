package uniformity

import (
	"time"

	"gouniform/domain/core"
)

// Sample is an ordered sequence of numbers expected to lie in [0,1)
type Sample []float64

// Clone returns an independent copy so callers cannot mutate an assigned sample
func (s Sample) Clone() Sample {
	if s == nil {
		return nil
	}
	out := make(Sample, len(s))
	copy(out, s)
	return out
}

// Len returns the sample size
func (s Sample) Len() int { return len(s) }

// TestName identifies one of the five uniformity tests
type TestName string

const (
	TestMean     TestName = "mean"
	TestVariance TestName = "variance"
	TestKS       TestName = "ks"
	TestChi      TestName = "chi"
	TestPoker    TestName = "poker"
)

// AllTests lists the tests in reporting order
var AllTests = []TestName{TestMean, TestVariance, TestKS, TestChi, TestPoker}

// DisplayName returns the human-readable name used in logs and reports
func (n TestName) DisplayName() string {
	switch n {
	case TestMean:
		return "Mean Test"
	case TestVariance:
		return "Variance Test"
	case TestKS:
		return "Kolmogorov-Smirnov Test"
	case TestChi:
		return "Chi-Squared Test"
	case TestPoker:
		return "Poker Test"
	}
	return string(n)
}

// ParseTestName resolves a user-supplied name
func ParseTestName(s string) (TestName, error) {
	for _, n := range AllTests {
		if string(n) == s {
			return n, nil
		}
	}
	return "", core.ErrUnknownTest
}

// Verdict is the three-valued outcome handed to the display layer
type Verdict string

const (
	VerdictPass          Verdict = "pass"
	VerdictFail          Verdict = "fail"
	VerdictIndeterminate Verdict = "indeterminate"
)

// VerdictOf maps a boolean decision onto a Verdict
func VerdictOf(passed bool) Verdict {
	if passed {
		return VerdictPass
	}
	return VerdictFail
}

// Result is implemented by every test's result record
type Result interface {
	Test() TestName
	Passed() bool
}

// MeanResult is the confidence-interval test on the sample mean
type MeanResult struct {
	N          int     `json:"n"`
	Alpha      float64 `json:"alpha"`
	R          float64 `json:"r"`
	HalfAlpha  float64 `json:"half_alpha"` // 1 - alpha/2
	Zeta       float64 `json:"zeta"`
	LowerLimit float64 `json:"lower_limit"`
	UpperLimit float64 `json:"upper_limit"`
	Pass       bool    `json:"passed"`
}

func (r MeanResult) Test() TestName { return TestMean }
func (r MeanResult) Passed() bool   { return r.Pass }

// VarianceResult is the chi-squared pivot test on the population variance.
// LowerLimit derives from the upper-tail quantile and UpperLimit from the
// lower-tail quantile; the pass condition is UpperLimit <= Variance <= LowerLimit.
type VarianceResult struct {
	N                 int     `json:"n"`
	DegreesOfFreedom  int     `json:"degrees_of_freedom"`
	Mean              float64 `json:"mean"`
	Variance          float64 `json:"variance"`
	OneHalfAlpha      float64 `json:"one_half_alpha"` // 1 - alpha/2
	HalfAlpha         float64 `json:"half_alpha"`     // alpha/2
	CompleteChiInvert float64 `json:"complete_chi_invert"`
	HalfChiInvert     float64 `json:"half_chi_invert"`
	LowerLimit        float64 `json:"lower_limit"`
	UpperLimit        float64 `json:"upper_limit"`
	Pass              bool    `json:"passed"`
}

func (r VarianceResult) Test() TestName { return TestVariance }
func (r VarianceResult) Passed() bool   { return r.Pass }

// KSResult is the Kolmogorov-Smirnov goodness-of-fit result over fixed intervals
type KSResult struct {
	N                            int       `json:"n"`
	Intervals                    []float64 `json:"intervals"`
	Frequencies                  []int     `json:"frequencies"`
	ObtainedAccumulatedFrequency []int     `json:"obtained_accumulated_frequency"`
	ProbabilityObtained          []float64 `json:"probability_obtained"`
	ExpectedAccumulatedFrequency []float64 `json:"expected_accumulated_frequency"`
	ProbabilityExpected          []float64 `json:"probability_expected"`
	Differences                  []float64 `json:"differences"`
	MaxDifference                float64   `json:"max_difference"`
	CriticalValue                float64   `json:"critical_value"`
	Pass                         bool      `json:"passed"`
}

func (r KSResult) Test() TestName { return TestKS }
func (r KSResult) Passed() bool   { return r.Pass }

// ChiResult is Pearson's goodness-of-fit result over data-range intervals
type ChiResult struct {
	N                 int       `json:"n"`
	Min               float64   `json:"min"`
	Max               float64   `json:"max"`
	Intervals         []float64 `json:"intervals"`
	Frequencies       []int     `json:"frequencies"`
	ExpectedFrequency float64   `json:"expected_frequency"`
	Errors            []float64 `json:"errors"`
	Statistic         float64   `json:"statistic"`
	DegreesOfFreedom  int       `json:"degrees_of_freedom"`
	CriticalValue     float64   `json:"critical_value"`
	Pass              bool      `json:"passed"`
}

func (r ChiResult) Test() TestName { return TestChi }
func (r ChiResult) Passed() bool   { return r.Pass }

// HandCategory is a poker-hand class of a 5-digit group
type HandCategory string

const (
	AllDifferent HandCategory = "all_different"
	OnePair      HandCategory = "one_pair"
	TwoPair      HandCategory = "two_pair"
	ThreeOfAKind HandCategory = "three_of_a_kind"
	FullHouse    HandCategory = "full_house"
	FourOfAKind  HandCategory = "four_of_a_kind"
	FiveOfAKind  HandCategory = "five_of_a_kind"
)

// HandCategories lists categories in the order used for statistics and reports
var HandCategories = []HandCategory{
	AllDifferent, OnePair, TwoPair, ThreeOfAKind, FullHouse, FourOfAKind, FiveOfAKind,
}

// PokerResult is the pattern-frequency result over 5-digit hands
type PokerResult struct {
	N                int                      `json:"n"`
	Hands            int                      `json:"hands"`
	Observed         map[HandCategory]int     `json:"observed"`
	Expected         map[HandCategory]float64 `json:"expected"`
	Statistic        float64                  `json:"statistic"`
	DegreesOfFreedom int                      `json:"degrees_of_freedom"`
	CriticalValue    float64                  `json:"critical_value"`
	Pass             bool                     `json:"passed"`
}

func (r PokerResult) Test() TestName { return TestPoker }
func (r PokerResult) Passed() bool   { return r.Pass }

// Outcome is one test's result as seen by the aggregator's caller
type Outcome struct {
	Test    TestName `json:"test"`
	Verdict Verdict  `json:"verdict"`
	Result  Result   `json:"result,omitempty"`
	Error   string   `json:"error,omitempty"`
	Err     error    `json:"-"`
}

// Report bundles a run-all execution
type Report struct {
	RunID      core.RunID      `json:"run_id"`
	SampleHash core.SampleHash `json:"sample_hash"`
	SampleSize int             `json:"sample_size"`
	Alpha      float64         `json:"alpha"`
	Intervals  int             `json:"intervals"`
	Outcomes   []Outcome       `json:"outcomes"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Passed reports whether every test passed
func (r Report) Passed() bool {
	for _, o := range r.Outcomes {
		if o.Verdict != VerdictPass {
			return false
		}
	}
	return len(r.Outcomes) > 0
}

// Outcome returns the outcome for a test name
func (r Report) Outcome(name TestName) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Test == name {
			return o, true
		}
	}
	return Outcome{}, false
}
