package cmdfakes

import (
	"sync"

	"github.com/smzarrabimmp/cms/cmd"
)

type FakeProbe struct {
	mu sync.Mutex

	RunStub func() error

	runCalls   int
	runReturns error
}

func (p *FakeProbe) Run() error {
	p.mu.Lock()
	p.runCalls++
	stub := p.RunStub
	returns := p.runReturns
	p.mu.Unlock()

	if stub != nil {
		return stub()
	}
	return returns
}

func (p *FakeProbe) RunReturns(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.runReturns = err
}

func (p *FakeProbe) RunCallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.runCalls
}

var _ cmd.Probe = &FakeProbe{}
