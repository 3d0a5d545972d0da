package cmd

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/cactus/go-statsd-client/v5/statsd"

	"github.com/smzarrabimmp/cms"
	"github.com/smzarrabimmp/cms/api"
	"github.com/smzarrabimmp/cms/cmd/flags"
	"github.com/smzarrabimmp/cms/cmd/internal/ioutilx"
	"github.com/smzarrabimmp/cms/internal/migrations"
	"github.com/smzarrabimmp/cms/internal/sqlx"
	"github.com/smzarrabimmp/cms/logx"
	"github.com/smzarrabimmp/cms/logx/cef"
	"github.com/smzarrabimmp/cms/metrics/statsdx"
	"github.com/smzarrabimmp/cms/repos/db"
	"github.com/smzarrabimmp/cms/repos/inmemory"
)

const (
	gracefulStopTimeout = 10 * time.Second
	statsDFlushInterval = 300 * time.Millisecond
)

var errTLSCredentialsIncomplete = errors.New("tls-certificate and tls-key must both be provided")

type ServeCommand struct {
	Logger flags.LagerFlag

	Hostname       string           `long:"listen-hostname" description:"Hostname on which to listen for HTTP traffic" default:"0.0.0.0"`
	Port           int              `long:"listen-port" description:"Port on which to listen for HTTP traffic" default:"6283"`
	TLSCertificate string           `long:"tls-certificate" description:"File path of TLS certificate"`
	TLSKey         string           `long:"tls-key" description:"File path of TLS private key"`
	AuditFilePath  string           `long:"audit-file-path" description:"File path of the security event log file; defaults to stdout"`
	DB             flags.DBFlag     `group:"DB" namespace:"db"`
	StatsD         flags.StatsDFlag `group:"StatsD" namespace:"statsd"`
}

func (cmd ServeCommand) Execute([]string) error {
	logger := cmd.Logger.Logger("cms")
	logger = logger.WithName("serve")

	ctx := context.Background()

	hostname := cmd.Hostname
	port := cmd.Port
	listeningLogData := []logx.Data{
		{Key: "protocol", Value: "tcp"},
		{Key: "hostname", Value: hostname},
		{Key: "port", Value: port},
	}

	lis, err := net.Listen("tcp", net.JoinHostPort(hostname, strconv.Itoa(port)))
	if err != nil {
		logger.Error(failedToListen, err, listeningLogData...)
		return err
	}

	serverOpts := []api.ServerOption{
		api.WithLogger(logger.WithName("api")),
	}

	if cmd.TLSCertificate != "" || cmd.TLSKey != "" {
		if cmd.TLSCertificate == "" || cmd.TLSKey == "" {
			logger.Error(failedToParseTLSCredentials, errTLSCredentialsIncomplete)
			return errTLSCredentialsIncomplete
		}

		cert, certErr := tls.LoadX509KeyPair(cmd.TLSCertificate, cmd.TLSKey)
		if certErr != nil {
			logger.Error(failedToParseTLSCredentials, certErr)
			return certErr
		}

		serverOpts = append(serverOpts, api.WithTLSConfig(&tls.Config{
			MinVersion:   tls.VersionTLS12,
			Certificates: []tls.Certificate{cert},
		}))
	}

	auditWriter := io.Writer(os.Stdout)
	if cmd.AuditFilePath != "" {
		auditFile, fileErr := ioutilx.OpenLogFile(cmd.AuditFilePath)
		if fileErr != nil {
			logger.Error(failedToOpenAuditFile, fileErr, logx.Data{Key: "path", Value: cmd.AuditFilePath})
			return fileErr
		}
		defer auditFile.Close()

		auditWriter = auditFile
	}

	securityLogger := cef.NewLogger(
		auditWriter,
		"smzarrabimmp",
		"cms",
		cms.Version,
		cef.Hostname(hostname),
		port,
		logger.WithName("cef"),
	)
	serverOpts = append(serverOpts, api.WithSecurityLogger(securityLogger))

	if cmd.StatsD.Configured() {
		statsDAddr := net.JoinHostPort(cmd.StatsD.Hostname, strconv.Itoa(cmd.StatsD.Port))
		statsDClient, statsDErr := statsd.NewClientWithConfig(&statsd.ClientConfig{
			Address:       statsDAddr,
			UseBuffered:   true,
			FlushInterval: statsDFlushInterval,
		})
		if statsDErr != nil {
			logger.Error(failedToConnectToStatsD, statsDErr, logx.Data{Key: "addr", Value: statsDAddr})
			return statsDErr
		}
		defer statsDClient.Close()

		serverOpts = append(serverOpts, api.WithStatter(statsdx.NewStatter(logger.WithName("metrics"), statsDClient)))
	}

	var store api.Store
	if cmd.DB.IsInMemory() {
		store = inmemory.NewStore()
	} else {
		conn, connErr := cmd.DB.Connect(ctx, logger)
		if connErr != nil {
			return connErr
		}
		defer conn.Close()

		verifyLogger := logger.WithName("verify-migrations")
		if verifyErr := sqlx.VerifyAppliedMigrations(ctx, verifyLogger, conn, migrations.TableName, migrations.Migrations); verifyErr != nil {
			logger.Error(failedToVerifyMigrations, verifyErr)
			return verifyErr
		}

		store = db.NewStore(conn)
	}

	server := api.NewServer(store, serverOpts...)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(lis)
	}()

	logger.Info(starting, listeningLogData...)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err = <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info(shuttingDown, logx.Data{Key: "signal", Value: sig.String()})

		stopCtx, cancel := context.WithTimeout(ctx, gracefulStopTimeout)
		defer cancel()

		if stopErr := server.GracefulStop(stopCtx); stopErr != nil {
			server.Stop()
		}

		logger.Info(finished)
		return nil
	}
}
