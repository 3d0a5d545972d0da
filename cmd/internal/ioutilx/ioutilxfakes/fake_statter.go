package ioutilxfakes

import (
	"os"
	"sync"

	"github.com/smzarrabimmp/cms/cmd/internal/ioutilx"
)

type FakeStatter struct {
	mu sync.Mutex

	StatStub func(string) (os.FileInfo, error)

	statCalls   []string
	statReturns struct {
		info os.FileInfo
		err  error
	}
}

func (s *FakeStatter) Stat(name string) (os.FileInfo, error) {
	s.mu.Lock()
	s.statCalls = append(s.statCalls, name)
	stub := s.StatStub
	returns := s.statReturns
	s.mu.Unlock()

	if stub != nil {
		return stub(name)
	}
	return returns.info, returns.err
}

func (s *FakeStatter) StatReturns(info os.FileInfo, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.statReturns = struct {
		info os.FileInfo
		err  error
	}{info, err}
}

func (s *FakeStatter) StatCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.statCalls)
}

func (s *FakeStatter) StatArgsForCall(i int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.statCalls[i]
}

var _ ioutilx.Statter = &FakeStatter{}
