package testkit

import (
	"math/rand"
	"strconv"
)

// GeneratorConfig configures the sample generator
type GeneratorConfig struct {
	Seed int64 `json:"seed"`
}

// DefaultGeneratorConfig returns the seed used by fixtures unless a test needs another
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{Seed: 42}
}

// TestKit produces deterministic samples for exercising the uniformity tests
type TestKit struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// New creates a test kit seeded with seed
func New(seed int64) *TestKit {
	return NewWithConfig(GeneratorConfig{Seed: seed})
}

// NewWithConfig creates a test kit from a config
func NewWithConfig(config GeneratorConfig) *TestKit {
	return &TestKit{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Seed returns the configured seed
func (k *TestKit) Seed() int64 { return k.config.Seed }

// Uniform draws n pseudo-random values in [0,1)
func (k *TestKit) Uniform(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = k.rng.Float64()
	}
	return out
}

// Grid returns the perfectly uniform grid i/n for i in [0,n)
func Grid(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(n)
	}
	return out
}

// Constant returns n copies of v
func Constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Hands returns n numbers whose first five fractional digits are the given hand,
// e.g. Hands("12345", 3) yields three copies of 0.12345.
func Hands(hand string, n int) []float64 {
	v, err := strconv.ParseFloat("0."+hand, 64)
	if err != nil {
		panic("testkit: hand must be decimal digits: " + hand)
	}
	return Constant(n, v)
}

// Skewed draws n values concentrated toward zero (u²), useful for failing fixtures
func (k *TestKit) Skewed(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		u := k.rng.Float64()
		out[i] = u * u
	}
	return out
}
