package ioutilxfakes

import (
	"os"
	"sync"
	"time"
)

type FakeFileInfo struct {
	mu sync.Mutex

	nameReturns    string
	sizeReturns    int64
	modeReturns    os.FileMode
	modTimeReturns time.Time
	isDirReturns   bool
	sysReturns     interface{}
}

func (f *FakeFileInfo) Name() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.nameReturns
}

func (f *FakeFileInfo) NameReturns(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nameReturns = name
}

func (f *FakeFileInfo) Size() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.sizeReturns
}

func (f *FakeFileInfo) SizeReturns(size int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sizeReturns = size
}

func (f *FakeFileInfo) Mode() os.FileMode {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.modeReturns
}

func (f *FakeFileInfo) ModeReturns(mode os.FileMode) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.modeReturns = mode
}

func (f *FakeFileInfo) ModTime() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.modTimeReturns
}

func (f *FakeFileInfo) ModTimeReturns(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.modTimeReturns = t
}

func (f *FakeFileInfo) IsDir() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.isDirReturns
}

func (f *FakeFileInfo) IsDirReturns(isDir bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.isDirReturns = isDir
}

func (f *FakeFileInfo) Sys() interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.sysReturns
}

func (f *FakeFileInfo) SysReturns(sys interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sysReturns = sys
}

var _ os.FileInfo = &FakeFileInfo{}
