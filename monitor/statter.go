package monitor

import (
	"github.com/smzarrabimmp/cms/metrics"
	"github.com/smzarrabimmp/cms/monitor/stats"
)

const (
	MetricFailure = 0
	MetricSuccess = 1

	MetricProbeRunsSuccess = "cms.probe.runs.success"
	MetricProbeRunsCorrect = "cms.probe.runs.correct"

	MetricProbeTimingMax  = "cms.probe.responses.timing.max"  // gauge
	MetricProbeTimingP90  = "cms.probe.responses.timing.p90"  // gauge
	MetricProbeTimingP99  = "cms.probe.responses.timing.p99"  // gauge
	MetricProbeTimingP999 = "cms.probe.responses.timing.p999" // gauge
)

//go:generate counterfeiter . ProbeStatter

type ProbeStatter interface {
	Rotate()
	SendFailedProbe()
	SendIncorrectProbe()
	SendSlowProbe()
	SendCorrectProbe()
}

type Statter struct {
	metrics.Statter
	Histogram *stats.ThreadSafeHistogram
}

func (s *Statter) Rotate() {
	s.Histogram.Rotate()
}

func (s *Statter) SendFailedProbe() {
	s.Gauge(MetricProbeRunsSuccess, MetricFailure)
}

func (s *Statter) SendIncorrectProbe() {
	s.Gauge(MetricProbeRunsSuccess, MetricFailure)
	s.Gauge(MetricProbeRunsCorrect, MetricFailure)
}

// SendSlowProbe reports a run that returned the right answers but blew
// the latency budget.
func (s *Statter) SendSlowProbe() {
	s.Gauge(MetricProbeRunsSuccess, MetricFailure)
	s.Gauge(MetricProbeRunsCorrect, MetricSuccess)
}

func (s *Statter) SendCorrectProbe() {
	s.Gauge(MetricProbeRunsSuccess, MetricSuccess)
	s.Gauge(MetricProbeRunsCorrect, MetricSuccess)
	s.sendHistogramQuantile(90, MetricProbeTimingP90)
	s.sendHistogramQuantile(99, MetricProbeTimingP99)
	s.sendHistogramQuantile(99.9, MetricProbeTimingP999)
	s.sendHistogramMax(MetricProbeTimingMax)
}

func (s *Statter) sendHistogramQuantile(quantile float64, metric string) {
	s.Gauge(metric, s.Histogram.ValueAtQuantile(quantile))
}

func (s *Statter) sendHistogramMax(metric string) {
	s.Gauge(metric, s.Histogram.Max())
}
