package recordingfakes

import (
	"sync"
	"time"

	"github.com/smzarrabimmp/cms/monitor/recording"
)

type FakeDurationRecorder struct {
	mu sync.Mutex

	ObserveStub    func(duration time.Duration) error
	observeCalls   []time.Duration
	observeReturns error
}

func (f *FakeDurationRecorder) Observe(duration time.Duration) error {
	f.mu.Lock()
	f.observeCalls = append(f.observeCalls, duration)
	stub := f.ObserveStub
	returns := f.observeReturns
	f.mu.Unlock()

	if stub != nil {
		return stub(duration)
	}
	return returns
}

func (f *FakeDurationRecorder) ObserveReturns(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.observeReturns = err
}

func (f *FakeDurationRecorder) ObserveCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.observeCalls)
}

func (f *FakeDurationRecorder) ObserveArgsForCall(i int) time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.observeCalls[i]
}

var _ recording.DurationRecorder = &FakeDurationRecorder{}
