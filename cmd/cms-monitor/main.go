package main

import (
	"context"
	"crypto/tls"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/cactus/go-statsd-client/v5/statsd"
	flags "github.com/jessevdk/go-flags"

	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/cmd"
	cmdflags "github.com/smzarrabimmp/cms/cmd/flags"
	"github.com/smzarrabimmp/cms/cmd/internal/cryptox"
	"github.com/smzarrabimmp/cms/cmd/internal/ioutilx"
	"github.com/smzarrabimmp/cms/logx"
	"github.com/smzarrabimmp/cms/metrics/statsdx"
	"github.com/smzarrabimmp/cms/monitor"
	"github.com/smzarrabimmp/cms/monitor/recording"
	"github.com/smzarrabimmp/cms/monitor/stats"
)

const (
	ProbeHistogramWindow      = 5 // Minutes
	ProbeHistogramRefreshTime = 1 * time.Minute

	statsDFlushInterval = 300 * time.Millisecond
)

type options struct {
	CMS cmsOptions `group:"CMS" namespace:"cms"`

	StatsD statsDOptions `group:"StatsD" namespace:"statsd"`

	Logger cmdflags.LagerFlag

	Frequency       time.Duration `long:"frequency" description:"Frequency with which the probe is issued" default:"5s"`
	RequestDuration time.Duration `long:"request-duration" description:"Time after which a request is considered to have failed" default:"100ms"`
	Timeout         time.Duration `long:"timeout" description:"Time after which the probe will cancel a run" default:"10s"`
}

type cmsOptions struct {
	Hostname      string                 `long:"hostname" description:"Hostname used to resolve the address of the group directory" required:"true"`
	Port          int                    `long:"port" description:"Port used to connect to the group directory" required:"true"`
	CACertificate []ioutilx.FileOrString `long:"ca-certificate" description:"File path of the group directory's CA certificate"`
}

type statsDOptions struct {
	Hostname string `long:"hostname" description:"Hostname used to connect to StatsD server" required:"true"`
	Port     int    `long:"port" description:"Port used to connect to StatsD server" required:"true"`
}

func main() {
	parserOpts := &options{}
	parser := flags.NewParser(parserOpts, flags.Default)
	parser.NamespaceDelimiter = "-"

	_, err := parser.Parse()
	if err != nil {
		os.Exit(1)
	}

	logger := parserOpts.Logger.Logger("cms-monitor")

	logger.Debug(starting)
	defer logger.Debug(finished)

	statsDAddr := net.JoinHostPort(parserOpts.StatsD.Hostname, strconv.Itoa(parserOpts.StatsD.Port))
	statsDClient, err := statsd.NewClientWithConfig(&statsd.ClientConfig{
		Address:       statsDAddr,
		UseBuffered:   true,
		FlushInterval: statsDFlushInterval,
	})
	if err != nil {
		logger.Error(failedToConnectToStatsD, err, logx.Data{Key: "addr", Value: statsDAddr})
		os.Exit(1)
	}
	defer statsDClient.Close()

	var certs [][]byte
	for _, certPath := range parserOpts.CMS.CACertificate {
		caPem, readErr := certPath.Bytes(ioutilx.OS, ioutilx.IOReader)
		if readErr != nil {
			logger.Error(failedToReadCertificate, readErr, logx.Data{Key: "location", Value: certPath})
			os.Exit(1)
		}

		certs = append(certs, caPem)
	}

	pool, err := cryptox.NewCertPool(certs...)
	if err != nil {
		logger.Error(failedToAppendCertToPool, err)
		os.Exit(1)
	}

	addr := net.JoinHostPort(parserOpts.CMS.Hostname, strconv.Itoa(parserOpts.CMS.Port))
	client, err := cms.Dial(addr, cms.WithTLSConfig(&tls.Config{
		RootCAs: pool,
	}))
	if err != nil {
		logger.Error(failedToCreateClient, err)
		os.Exit(1)
	}
	defer client.Close()

	histogram := stats.NewThreadSafeHistogram(ProbeHistogramWindow, 3)

	recordingClient := recording.NewClient(client, histogram)

	probe := monitor.NewProbe(
		recordingClient,
		monitor.WithTimeout(parserOpts.Timeout),
		monitor.WithMaxLatency(parserOpts.RequestDuration),
	)

	statter := &monitor.Statter{
		statsdx.NewStatter(logger.WithName("metrics"), statsDClient),
		histogram,
	}

	cmd.RunProbeWithFrequency(
		context.Background(),
		logger.WithName("probe"),
		probe,
		statter,
		parserOpts.Frequency,
		ProbeHistogramRefreshTime,
	)
}
