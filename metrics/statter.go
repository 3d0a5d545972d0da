package metrics

import "time"

// Statter emits operational metrics. Implementations are expected to handle
// delivery failures themselves; callers fire and forget.
type Statter interface {
	Inc(metric string, value int64)
	Gauge(metric string, value int64)
	TimingDuration(metric string, value time.Duration)
}
