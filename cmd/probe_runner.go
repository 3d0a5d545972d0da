package cmd

import (
	"context"
	"sync"
	"time"

	"github.com/smzarrabimmp/cms/logx"
	"github.com/smzarrabimmp/cms/monitor"
	"github.com/smzarrabimmp/cms/monitor/recording"
)

//go:generate counterfeiter . Probe

type Probe interface {
	Run() error
}

// RecordProbeResult runs the probe once and reports the outcome:
// a run that returned wrong memberships counts as incorrect, a run
// that was only too slow still counts as correct, and everything
// else is a plain failure.
func RecordProbeResult(logger logx.Logger, probe Probe, statter monitor.ProbeStatter) {
	err := probe.Run()

	switch err {
	case nil:
		logger.Debug(success)
		statter.SendCorrectProbe()
	case monitor.ErrIncorrectMembership:
		logger.Error(failed, err)
		statter.SendIncorrectProbe()
	case monitor.ErrExceededMaxLatency:
		logger.Error(failed, err)
		statter.SendSlowProbe()
	default:
		if _, ok := err.(recording.FailedToObserveDurationError); ok {
			logger.Error(failedToObserveDuration, err)
		} else {
			logger.Error(failed, err)
		}
		statter.SendFailedProbe()
	}
}

// RunProbeWithFrequency runs the probe on every frequency tick and
// rotates the statter's histogram window on every refreshInterval
// tick, until the context is canceled.
func RunProbeWithFrequency(
	ctx context.Context,
	logger logx.Logger,
	probe Probe,
	statter monitor.ProbeStatter,
	frequency time.Duration,
	refreshInterval time.Duration,
) {
	logger.Debug(starting)
	defer logger.Debug(finished)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()

		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				statter.Rotate()
			}
		}
	}()

	go func() {
		defer wg.Done()

		ticker := time.NewTicker(frequency)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				RecordProbeResult(logger, probe, statter)
			}
		}
	}()

	wg.Wait()
}
