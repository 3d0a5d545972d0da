package ioutilxfakes

import (
	"sync"

	"github.com/smzarrabimmp/cms/cmd/internal/ioutilx"
)

type FakeFileReader struct {
	mu sync.Mutex

	ReadFileStub func(string) ([]byte, error)

	readFileCalls   []string
	readFileReturns struct {
		contents []byte
		err      error
	}
}

func (r *FakeFileReader) ReadFile(filename string) ([]byte, error) {
	r.mu.Lock()
	r.readFileCalls = append(r.readFileCalls, filename)
	stub := r.ReadFileStub
	returns := r.readFileReturns
	r.mu.Unlock()

	if stub != nil {
		return stub(filename)
	}
	return returns.contents, returns.err
}

func (r *FakeFileReader) ReadFileReturns(contents []byte, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.readFileReturns = struct {
		contents []byte
		err      error
	}{contents, err}
}

func (r *FakeFileReader) ReadFileCallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.readFileCalls)
}

func (r *FakeFileReader) ReadFileArgsForCall(i int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.readFileCalls[i]
}

var _ ioutilx.FileReader = &FakeFileReader{}
