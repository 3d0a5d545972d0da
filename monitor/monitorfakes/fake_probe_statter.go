package monitorfakes

import (
	"sync"

	"github.com/smzarrabimmp/cms/monitor"
)

type FakeProbeStatter struct {
	mu sync.Mutex

	rotateCalls             int
	sendFailedProbeCalls    int
	sendIncorrectProbeCalls int
	sendSlowProbeCalls      int
	sendCorrectProbeCalls   int
}

func (f *FakeProbeStatter) Rotate() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rotateCalls++
}

func (f *FakeProbeStatter) RotateCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.rotateCalls
}

func (f *FakeProbeStatter) SendFailedProbe() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sendFailedProbeCalls++
}

func (f *FakeProbeStatter) SendFailedProbeCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.sendFailedProbeCalls
}

func (f *FakeProbeStatter) SendIncorrectProbe() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sendIncorrectProbeCalls++
}

func (f *FakeProbeStatter) SendIncorrectProbeCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.sendIncorrectProbeCalls
}

func (f *FakeProbeStatter) SendSlowProbe() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sendSlowProbeCalls++
}

func (f *FakeProbeStatter) SendSlowProbeCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.sendSlowProbeCalls
}

func (f *FakeProbeStatter) SendCorrectProbe() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sendCorrectProbeCalls++
}

func (f *FakeProbeStatter) SendCorrectProbeCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.sendCorrectProbeCalls
}

var _ monitor.ProbeStatter = &FakeProbeStatter{}
