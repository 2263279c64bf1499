package ports

import (
	"context"
	"time"

	"gouniform/domain/uniformity"
)

// UniformityTestPort is the capability every uniformity test exposes.
// A test owns its sample; SetSample replaces it and discards derived state.
type UniformityTestPort interface {
	Name() uniformity.TestName
	SetSample(sample uniformity.Sample)
	Execute() (uniformity.Result, error)
}

// SampleReaderPort loads a sample from an external source
type SampleReaderPort interface {
	ReadSample(ctx context.Context) (uniformity.Sample, error)
}

// OutcomeRecorderPort observes battery activity, e.g. for metrics
type OutcomeRecorderPort interface {
	RecordOutcome(test uniformity.TestName, verdict uniformity.Verdict, elapsed time.Duration)
	RecordSample(size int)
}
