package uniformity

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gouniform/adapters/stats/distributions"
	"gouniform/domain/core"
	domain "gouniform/domain/uniformity"
)

// Theoretical probabilities of each hand for independent uniform decimal digits
var handProbabilities = map[domain.HandCategory]float64{
	domain.AllDifferent: 0.3024,
	domain.OnePair:      0.5040,
	domain.TwoPair:      0.1080,
	domain.ThreeOfAKind: 0.0720,
	domain.FullHouse:    0.0090,
	domain.FourOfAKind:  0.0045,
	domain.FiveOfAKind:  0.0001,
}

// PokerTest classifies 5-digit groups into poker hands and compares hand frequencies
// with their theoretical values.
type PokerTest struct {
	dist   *distributions.Distributions
	sample domain.Sample
}

// NewPokerTest creates a poker test. It takes no config because its critical
// value is always chi-squared(6) at 0.05.
func NewPokerTest() *PokerTest {
	return &PokerTest{dist: distributions.New()}
}

// Name returns the test name
func (t *PokerTest) Name() domain.TestName { return domain.TestPoker }

// SetSample replaces the sample under test
func (t *PokerTest) SetSample(sample domain.Sample) { t.sample = sample.Clone() }

// Execute satisfies ports.UniformityTestPort
func (t *PokerTest) Execute() (domain.Result, error) {
	res, err := t.Run()
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Run extracts hands, counts categories and computes the chi-squared statistic
func (t *PokerTest) Run() (domain.PokerResult, error) {
	n := t.sample.Len()
	if n == 0 {
		return domain.PokerResult{}, fmt.Errorf("poker test: %w", core.ErrEmptyInput)
	}

	hands, err := Hands(t.sample)
	if err != nil {
		return domain.PokerResult{}, fmt.Errorf("poker test: %w", err)
	}

	observed := make(map[domain.HandCategory]int, len(domain.HandCategories))
	for _, c := range domain.HandCategories {
		observed[c] = 0
	}
	for _, h := range hands {
		observed[ClassifyHand(h)]++
	}

	total := float64(len(hands))
	expected := make(map[domain.HandCategory]float64, len(domain.HandCategories))
	statistic := 0.0
	for _, c := range domain.HandCategories {
		e := handProbabilities[c] * total
		expected[c] = e
		statistic += math.Pow(float64(observed[c])-e, 2) / e
	}

	critical, err := t.dist.ChiSquaredSurvival(PokerAlpha, PokerDegreesOfFreedom)
	if err != nil {
		return domain.PokerResult{}, fmt.Errorf("poker test: %w", err)
	}

	return domain.PokerResult{
		N:                n,
		Hands:            len(hands),
		Observed:         observed,
		Expected:         expected,
		Statistic:        statistic,
		DegreesOfFreedom: PokerDegreesOfFreedom,
		CriticalValue:    critical,
		Pass:             statistic < critical,
	}, nil
}

// FractionDigits returns exactly five digits after the decimal point of x's fractional
// part, right-padded with '0' (0.12 gives "12000").
func FractionDigits(x float64) (string, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "", fmt.Errorf("%w: non-finite value %v", core.ErrInvalidParameter, x)
	}
	frac := x - math.Floor(x)
	s := strconv.FormatFloat(frac, 'f', -1, 64)

	digits := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		digits = s[i+1:]
	}
	if len(digits) > HandSize {
		digits = digits[:HandSize]
	}
	return digits + strings.Repeat("0", HandSize-len(digits)), nil
}

// Hands concatenates every value's five digits and re-chunks the stream into hands
func Hands(values []float64) ([]string, error) {
	var b strings.Builder
	b.Grow(len(values) * HandSize)
	for _, v := range values {
		d, err := FractionDigits(v)
		if err != nil {
			return nil, err
		}
		b.WriteString(d)
	}
	return ChunkHands(b.String()), nil
}

// ChunkHands splits a digit stream into groups of five. A trailing group shorter
// than five is kept as a hand; streams built by Hands never have one.
func ChunkHands(stream string) []string {
	hands := make([]string, 0, (len(stream)+HandSize-1)/HandSize)
	for i := 0; i < len(stream); i += HandSize {
		end := i + HandSize
		if end > len(stream) {
			end = len(stream)
		}
		hands = append(hands, stream[i:end])
	}
	return hands
}

// ClassifyHand maps a hand to its category from the multiset of digit repetition counts
func ClassifyHand(hand string) domain.HandCategory {
	counts := make(map[rune]int, HandSize)
	for _, r := range hand {
		counts[r]++
	}

	has := func(want int) bool {
		for _, c := range counts {
			if c == want {
				return true
			}
		}
		return false
	}

	switch len(counts) {
	case 5:
		return domain.AllDifferent
	case 4:
		return domain.OnePair
	case 3:
		if has(3) {
			return domain.ThreeOfAKind
		}
		return domain.TwoPair
	case 2:
		if has(4) {
			return domain.FourOfAKind
		}
		return domain.FullHouse
	default:
		return domain.FiveOfAKind
	}
}
