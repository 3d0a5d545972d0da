package logxfakes

import (
	"sync"

	"github.com/smzarrabimmp/cms/logx"
)

// FakeLogger records every call made to it and hands itself back from
// WithName and WithData so assertions see the calls made on derived loggers.
type FakeLogger struct {
	mu sync.Mutex

	names []string
	data  []logx.Data

	debugCalls []logCall
	infoCalls  []logCall
	errorCalls []errorCall
}

type logCall struct {
	message string
	data    []logx.Data
}

type errorCall struct {
	message string
	err     error
	data    []logx.Data
}

func (l *FakeLogger) WithName(name string) logx.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.names = append(l.names, name)
	return l
}

func (l *FakeLogger) WithData(data ...logx.Data) logx.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.data = append(l.data, data...)
	return l
}

func (l *FakeLogger) Debug(message string, data ...logx.Data) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.debugCalls = append(l.debugCalls, logCall{message: message, data: data})
}

func (l *FakeLogger) Info(message string, data ...logx.Data) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.infoCalls = append(l.infoCalls, logCall{message: message, data: data})
}

func (l *FakeLogger) Error(message string, err error, data ...logx.Data) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.errorCalls = append(l.errorCalls, errorCall{message: message, err: err, data: data})
}

func (l *FakeLogger) Names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string{}, l.names...)
}

func (l *FakeLogger) DebugCallCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.debugCalls)
}

func (l *FakeLogger) DebugArgsForCall(i int) (string, []logx.Data) {
	l.mu.Lock()
	defer l.mu.Unlock()

	call := l.debugCalls[i]
	return call.message, call.data
}

func (l *FakeLogger) InfoCallCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.infoCalls)
}

func (l *FakeLogger) InfoArgsForCall(i int) (string, []logx.Data) {
	l.mu.Lock()
	defer l.mu.Unlock()

	call := l.infoCalls[i]
	return call.message, call.data
}

func (l *FakeLogger) ErrorCallCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.errorCalls)
}

func (l *FakeLogger) ErrorArgsForCall(i int) (string, error, []logx.Data) {
	l.mu.Lock()
	defer l.mu.Unlock()

	call := l.errorCalls[i]
	return call.message, call.err, call.data
}

var _ logx.Logger = &FakeLogger{}
