package logxfakes

import (
	"context"
	"sync"

	"github.com/smzarrabimmp/cms/logx"
)

type FakeSecurityLogger struct {
	mu sync.Mutex

	logCalls []securityLogCall
}

type securityLogCall struct {
	ctx       context.Context
	signature string
	name      string
	args      []logx.SecurityData
}

func (l *FakeSecurityLogger) Log(ctx context.Context, signature string, name string, args ...logx.SecurityData) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logCalls = append(l.logCalls, securityLogCall{ctx: ctx, signature: signature, name: name, args: args})
}

func (l *FakeSecurityLogger) LogCallCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.logCalls)
}

func (l *FakeSecurityLogger) LogArgsForCall(i int) (context.Context, string, string, []logx.SecurityData) {
	l.mu.Lock()
	defer l.mu.Unlock()

	call := l.logCalls[i]
	return call.ctx, call.signature, call.name, call.args
}

var _ logx.SecurityLogger = &FakeSecurityLogger{}
