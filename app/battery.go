package app

import (
	"fmt"
	"time"

	"gouniform/adapters/stats/uniformity"
	"gouniform/domain/core"
	domain "gouniform/domain/uniformity"
	"gouniform/internal"
	"gouniform/ports"
)

// Battery owns one instance of each uniformity test and runs them over a shared sample
type Battery struct {
	config   uniformity.Config
	tests    map[domain.TestName]ports.UniformityTestPort
	sample   domain.Sample
	logger   *internal.Logger
	recorder ports.OutcomeRecorderPort
	now      func() time.Time
}

// NewBattery creates a battery with the five standard tests
func NewBattery(config uniformity.Config, logger *internal.Logger) *Battery {
	return NewBatteryWithTests(config, logger,
		uniformity.NewMeanTest(config),
		uniformity.NewVarianceTest(config),
		uniformity.NewKSTest(config),
		uniformity.NewChiTest(config),
		uniformity.NewPokerTest(),
	)
}

// NewBatteryWithTests creates a battery over the given tests, keyed by their names.
// A later test with the same name replaces an earlier one.
func NewBatteryWithTests(config uniformity.Config, logger *internal.Logger, tests ...ports.UniformityTestPort) *Battery {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	b := &Battery{
		config: config,
		tests:  make(map[domain.TestName]ports.UniformityTestPort, len(tests)),
		logger: logger.With("battery"),
		now:    time.Now,
	}
	for _, t := range tests {
		b.tests[t.Name()] = t
	}
	return b
}

// WithRecorder attaches an observer notified of every sample and outcome
func (b *Battery) WithRecorder(r ports.OutcomeRecorderPort) *Battery {
	b.recorder = r
	return b
}

// Config returns the battery's test configuration
func (b *Battery) Config() uniformity.Config { return b.config }

// SetSample hands the same sample to every test, replacing prior state
func (b *Battery) SetSample(sample domain.Sample) {
	b.sample = sample.Clone()
	for _, t := range b.tests {
		t.SetSample(b.sample)
	}
	if b.recorder != nil {
		b.recorder.RecordSample(b.sample.Len())
	}
}

// Sample returns a copy of the current sample
func (b *Battery) Sample() domain.Sample { return b.sample.Clone() }

// ExecuteMeanTest runs the mean test
func (b *Battery) ExecuteMeanTest() domain.Outcome { return b.execute(domain.TestMean) }

// ExecuteVarianceTest runs the variance test
func (b *Battery) ExecuteVarianceTest() domain.Outcome { return b.execute(domain.TestVariance) }

// ExecuteKSTest runs the Kolmogorov-Smirnov test
func (b *Battery) ExecuteKSTest() domain.Outcome { return b.execute(domain.TestKS) }

// ExecuteChiTest runs the chi-squared test
func (b *Battery) ExecuteChiTest() domain.Outcome { return b.execute(domain.TestChi) }

// ExecutePokerTest runs the poker test
func (b *Battery) ExecutePokerTest() domain.Outcome { return b.execute(domain.TestPoker) }

// Run executes a single test by name
func (b *Battery) Run(name domain.TestName) (domain.Outcome, error) {
	if _, ok := b.tests[name]; !ok {
		return domain.Outcome{}, fmt.Errorf("%w: %q", core.ErrUnknownTest, name)
	}
	return b.execute(name), nil
}

// RunAll executes every test in mean, variance, ks, chi, poker order.
// A failing test never prevents the others from running.
func (b *Battery) RunAll() []domain.Outcome {
	outcomes := make([]domain.Outcome, 0, len(domain.AllTests))
	for _, name := range domain.AllTests {
		if _, ok := b.tests[name]; !ok {
			continue
		}
		outcomes = append(outcomes, b.execute(name))
	}
	return outcomes
}

// Report runs every test and stamps the outcomes with run metadata
func (b *Battery) Report() domain.Report {
	outcomes := b.RunAll()
	return domain.Report{
		RunID:      core.NewRunID(),
		SampleHash: core.ComputeSampleHash(b.sample),
		SampleSize: b.sample.Len(),
		Alpha:      b.config.Alpha,
		Intervals:  b.config.Intervals,
		Outcomes:   outcomes,
		CreatedAt:  b.now().UTC(),
	}
}

func (b *Battery) execute(name domain.TestName) domain.Outcome {
	t, ok := b.tests[name]
	if !ok {
		err := fmt.Errorf("%w: %q", core.ErrUnknownTest, name)
		return domain.Outcome{Test: name, Verdict: domain.VerdictIndeterminate, Error: err.Error(), Err: err}
	}

	start := time.Now()
	res, err := safeExecute(t)
	elapsed := time.Since(start)
	if err != nil {
		b.logger.Error("%s failed: %v", name.DisplayName(), err)
		b.record(name, domain.VerdictIndeterminate, elapsed)
		return domain.Outcome{Test: name, Verdict: domain.VerdictIndeterminate, Error: err.Error(), Err: err}
	}

	verdict := domain.VerdictOf(res.Passed())
	b.logger.Debug("%s finished in %s: %s", name.DisplayName(), elapsed, verdict)
	b.record(name, verdict, elapsed)
	return domain.Outcome{Test: name, Verdict: verdict, Result: res}
}

// safeExecute turns a panic or a nil result into ErrTestAborted
func safeExecute(t ports.UniformityTestPort) (res domain.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%w: %v", core.ErrTestAborted, r)
		}
	}()
	res, err = t.Execute()
	if err == nil && res == nil {
		err = fmt.Errorf("%w: no result returned", core.ErrTestAborted)
	}
	return res, err
}

func (b *Battery) record(name domain.TestName, verdict domain.Verdict, elapsed time.Duration) {
	if b.recorder != nil {
		b.recorder.RecordOutcome(name, verdict, elapsed)
	}
}
