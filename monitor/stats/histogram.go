package stats

import (
	"sync"
	"time"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
)

// ThreadSafeHistogram wraps a windowed HDR histogram so that probe calls
// and the metrics reporter can share it across goroutines. Quantiles and
// the max are always computed over the merged window set.
type ThreadSafeHistogram struct {
	rw        *sync.RWMutex
	histogram *hdrhistogram.WindowedHistogram
}

func NewThreadSafeHistogram(windowCount int, sigfigs int) *ThreadSafeHistogram {
	return &ThreadSafeHistogram{
		rw:        &sync.RWMutex{},
		histogram: hdrhistogram.NewWindowed(windowCount, 0, int64(time.Minute*10), sigfigs),
	}
}

// Observe records a call duration in nanoseconds.
func (h *ThreadSafeHistogram) Observe(d time.Duration) error {
	return h.RecordValue(int64(d))
}

func (h *ThreadSafeHistogram) RecordValue(v int64) error {
	h.rw.Lock()
	defer h.rw.Unlock()

	return h.histogram.Current.RecordValue(v)
}

func (h *ThreadSafeHistogram) Max() int64 {
	h.rw.RLock()
	defer h.rw.RUnlock()

	return h.histogram.Merge().Max()
}

func (h *ThreadSafeHistogram) ValueAtQuantile(q float64) int64 {
	h.rw.RLock()
	defer h.rw.RUnlock()

	return h.histogram.Merge().ValueAtQuantile(q)
}

func (h *ThreadSafeHistogram) Rotate() {
	h.rw.Lock()
	defer h.rw.Unlock()

	h.histogram.Rotate()
}
