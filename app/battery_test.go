package app

import (
	"bytes"
	stderrors "errors"
	"testing"
	"time"

	"gouniform/adapters/stats/uniformity"
	"gouniform/domain/core"
	domain "gouniform/domain/uniformity"
	"gouniform/internal"
	"gouniform/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUniformityTest stands in for a test whose behavior is scripted
type MockUniformityTest struct {
	mock.Mock
	name domain.TestName
}

func (m *MockUniformityTest) Name() domain.TestName { return m.name }

func (m *MockUniformityTest) SetSample(sample domain.Sample) {
	m.Called(sample)
}

func (m *MockUniformityTest) Execute() (domain.Result, error) {
	args := m.Called()
	res, _ := args.Get(0).(domain.Result)
	return res, args.Error(1)
}

func newTestBattery(buf *bytes.Buffer) *Battery {
	return NewBattery(uniformity.DefaultConfig(), internal.NewLoggerWithWriter(internal.LogLevelDebug, buf))
}

func TestBattery_RunAllOnUniformGrid(t *testing.T) {
	var buf bytes.Buffer
	b := newTestBattery(&buf)
	b.SetSample(testkit.Grid(1000))

	outcomes := b.RunAll()
	require.Len(t, outcomes, 5)

	for i, name := range domain.AllTests {
		assert.Equal(t, name, outcomes[i].Test)
	}
	for _, o := range outcomes[:4] {
		assert.Equal(t, domain.VerdictPass, o.Verdict, o.Test)
		assert.Empty(t, o.Error)
	}
	assert.NotEqual(t, domain.VerdictIndeterminate, outcomes[4].Verdict)

	mean, ok := outcomes[0].Result.(domain.MeanResult)
	require.True(t, ok)
	assert.InDelta(t, 0.4995, mean.R, 1e-12)
}

func TestBattery_EmptySampleIsIndeterminate(t *testing.T) {
	var buf bytes.Buffer
	b := newTestBattery(&buf)
	b.SetSample(domain.Sample{})

	for _, o := range b.RunAll() {
		assert.Equal(t, domain.VerdictIndeterminate, o.Verdict, o.Test)
		assert.ErrorIs(t, o.Err, core.ErrEmptyInput)
		assert.Nil(t, o.Result)
		assert.Contains(t, buf.String(), o.Test.DisplayName())
	}
}

func TestBattery_FailureDoesNotBlockOtherTests(t *testing.T) {
	var buf bytes.Buffer
	cfg := uniformity.DefaultConfig()
	broken := &MockUniformityTest{name: domain.TestVariance}
	broken.On("SetSample", mock.Anything).Return()
	broken.On("Execute").Return(nil, stderrors.New("boom"))

	b := NewBatteryWithTests(cfg, internal.NewLoggerWithWriter(internal.LogLevelError, &buf),
		uniformity.NewMeanTest(cfg),
		broken,
		uniformity.NewKSTest(cfg),
	)
	b.SetSample(testkit.Grid(1000))

	outcomes := b.RunAll()
	require.Len(t, outcomes, 3)
	assert.Equal(t, domain.VerdictPass, outcomes[0].Verdict)
	assert.Equal(t, domain.VerdictIndeterminate, outcomes[1].Verdict)
	assert.Equal(t, "boom", outcomes[1].Error)
	assert.Equal(t, domain.VerdictPass, outcomes[2].Verdict)
	assert.Contains(t, buf.String(), "Variance Test failed: boom")
	broken.AssertExpectations(t)
}

func TestBattery_SetSampleBroadcasts(t *testing.T) {
	cfg := uniformity.DefaultConfig()
	a := &MockUniformityTest{name: domain.TestMean}
	c := &MockUniformityTest{name: domain.TestChi}
	sample := domain.Sample{0.1, 0.2}
	a.On("SetSample", sample).Return().Once()
	c.On("SetSample", sample).Return().Once()

	b := NewBatteryWithTests(cfg, nil, a, c)
	b.SetSample(sample)

	a.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestBattery_SampleIsCopied(t *testing.T) {
	var buf bytes.Buffer
	b := newTestBattery(&buf)
	sample := domain.Sample(testkit.Grid(1000))
	b.SetSample(sample)
	sample[0] = 0.9

	assert.Equal(t, 0.0, b.Sample()[0])
	assert.InDelta(t, 0.4995, b.ExecuteMeanTest().Result.(domain.MeanResult).R, 1e-12)
}

func TestBattery_ExecuteEntryPoints(t *testing.T) {
	var buf bytes.Buffer
	b := newTestBattery(&buf)
	b.SetSample(testkit.Grid(1000))

	cases := []struct {
		name domain.TestName
		run  func() domain.Outcome
	}{
		{domain.TestMean, b.ExecuteMeanTest},
		{domain.TestVariance, b.ExecuteVarianceTest},
		{domain.TestKS, b.ExecuteKSTest},
		{domain.TestChi, b.ExecuteChiTest},
		{domain.TestPoker, b.ExecutePokerTest},
	}
	for _, tc := range cases {
		o := tc.run()
		assert.Equal(t, tc.name, o.Test)
		require.NotNil(t, o.Result, tc.name)
		assert.Equal(t, tc.name, o.Result.Test())
	}
}

func TestBattery_RunByName(t *testing.T) {
	var buf bytes.Buffer
	b := newTestBattery(&buf)
	b.SetSample(domain.Sample{0.5})

	o, err := b.Run(domain.TestVariance)
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictIndeterminate, o.Verdict)
	assert.ErrorIs(t, o.Err, core.ErrInsufficientSample)

	_, err = b.Run(domain.TestName("runs"))
	assert.ErrorIs(t, err, core.ErrUnknownTest)
}

func TestBattery_Report(t *testing.T) {
	var buf bytes.Buffer
	b := newTestBattery(&buf)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return fixed }
	b.SetSample(testkit.Grid(1000))

	report := b.Report()
	assert.False(t, core.ID(report.RunID).IsEmpty())
	assert.Equal(t, core.ComputeSampleHash(testkit.Grid(1000)), report.SampleHash)
	assert.Equal(t, 1000, report.SampleSize)
	assert.Equal(t, 0.05, report.Alpha)
	assert.Equal(t, 10, report.Intervals)
	assert.Equal(t, fixed, report.CreatedAt)
	assert.Len(t, report.Outcomes, 5)

	other := b.Report()
	assert.NotEqual(t, report.RunID, other.RunID)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordOutcome(test domain.TestName, verdict domain.Verdict, elapsed time.Duration) {
	m.Called(test, verdict, elapsed)
}

func (m *MockRecorder) RecordSample(size int) {
	m.Called(size)
}

func TestBattery_RecorderSeesSampleAndOutcomes(t *testing.T) {
	var buf bytes.Buffer
	rec := &MockRecorder{}
	rec.On("RecordSample", 1).Return().Once()
	rec.On("RecordOutcome", domain.TestVariance, domain.VerdictIndeterminate, mock.AnythingOfType("time.Duration")).Return().Once()
	rec.On("RecordOutcome", mock.Anything, mock.Anything, mock.Anything).Return()

	b := newTestBattery(&buf).WithRecorder(rec)
	b.SetSample(domain.Sample{0.5})
	b.RunAll()

	rec.AssertExpectations(t)
	rec.AssertNumberOfCalls(t, "RecordOutcome", 5)
}

func TestBattery_PanickingTestIsIndeterminate(t *testing.T) {
	var buf bytes.Buffer
	cfg := uniformity.DefaultConfig()
	crashing := &MockUniformityTest{name: domain.TestVariance}
	crashing.On("SetSample", mock.Anything).Return()
	crashing.On("Execute").Run(func(mock.Arguments) { panic("boom") })

	b := NewBatteryWithTests(cfg, internal.NewLoggerWithWriter(internal.LogLevelError, &buf),
		uniformity.NewMeanTest(cfg),
		crashing,
		uniformity.NewKSTest(cfg),
	)
	b.SetSample(testkit.Grid(1000))

	var outcomes []domain.Outcome
	require.NotPanics(t, func() { outcomes = b.RunAll() })
	require.Len(t, outcomes, 3)
	assert.Equal(t, domain.VerdictPass, outcomes[0].Verdict)
	assert.Equal(t, domain.VerdictIndeterminate, outcomes[1].Verdict)
	assert.ErrorIs(t, outcomes[1].Err, core.ErrTestAborted)
	assert.Contains(t, outcomes[1].Error, "boom")
	assert.Nil(t, outcomes[1].Result)
	assert.Equal(t, domain.VerdictPass, outcomes[2].Verdict)
	assert.Contains(t, buf.String(), "Variance Test failed")
}

func TestBattery_NilResultIsIndeterminate(t *testing.T) {
	var buf bytes.Buffer
	empty := &MockUniformityTest{name: domain.TestMean}
	empty.On("SetSample", mock.Anything).Return()
	empty.On("Execute").Return(nil, nil)

	b := NewBatteryWithTests(uniformity.DefaultConfig(), internal.NewLoggerWithWriter(internal.LogLevelError, &buf), empty)
	b.SetSample(domain.Sample{0.5})

	o := b.ExecuteMeanTest()
	assert.Equal(t, domain.VerdictIndeterminate, o.Verdict)
	assert.ErrorIs(t, o.Err, core.ErrTestAborted)
}
