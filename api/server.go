package api

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smzarrabimmp/cms/groups"
	"github.com/smzarrabimmp/cms/logx"
	"github.com/smzarrabimmp/cms/metrics"
	"github.com/smzarrabimmp/cms/repos"
)

// Store is the storage surface the server needs: groups, memberships,
// and settings. Both repos/db.Store and repos/inmemory.Store satisfy it.
type Store interface {
	repos.GroupRepo
	repos.MembershipRepo
	repos.SettingRepo
}

type Server struct {
	logger         logx.Logger
	securityLogger logx.SecurityLogger
	handler        http.Handler
	server         *http.Server
	tlsConfig      *tls.Config
}

func NewServer(store Store, opts ...ServerOption) *Server {
	config := &serverConfig{
		logger:         &emptyLogger{},
		securityLogger: &emptySecurityLogger{},
		statter:        &emptyStatter{},
	}

	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	statter := config.statter

	settings := config.settings
	if settings == nil {
		settings = groups.NewStoreSettings(store, logger.WithName("settings"))
	}

	directoryOpts := []groups.DirectoryOption{
		groups.WithLogger(logger),
		groups.WithSettings(settings),
	}
	if config.hooks != nil {
		directoryOpts = append(directoryOpts, groups.WithHooks(config.hooks))
	}

	directory := groups.NewDirectory(store, store, directoryOpts...)

	groupRoutes := &groupHandler{
		logger:         logger,
		securityLogger: config.securityLogger,
		directory:      directory,
	}
	assignmentRoutes := &assignmentHandler{
		logger:         logger,
		securityLogger: config.securityLogger,
		directory:      directory,
	}
	settingRoutes := &settingHandler{
		logger:         logger,
		securityLogger: config.securityLogger,
		settingRepo:    store,
	}

	router := chi.NewRouter()
	router.Use(withRequestContext)
	router.Use(recoverPanics(logger))

	router.Route("/v1", func(r chi.Router) {
		r.Route("/groups", func(r chi.Router) {
			r.Get("/", instrument(statter, "list-groups", groupRoutes.listGroups))
			r.Post("/", instrument(statter, "create-group", groupRoutes.createGroup))
			r.Get("/handle/{handle}", instrument(statter, "group-by-handle", groupRoutes.getGroupByHandle))
			r.Get("/{groupID}", instrument(statter, "group-by-id", groupRoutes.getGroup))
			r.Put("/{groupID}", instrument(statter, "update-group", groupRoutes.updateGroup))
			r.Delete("/{groupID}", instrument(statter, "delete-group", groupRoutes.deleteGroup))
		})

		r.Route("/users/{userID}/groups", func(r chi.Router) {
			r.Get("/", instrument(statter, "groups-for-user", assignmentRoutes.listUserGroups))
			r.Put("/", instrument(statter, "assign-user-to-groups", assignmentRoutes.assignUserToGroups))
			r.Post("/default", instrument(statter, "assign-user-to-default-group", assignmentRoutes.assignUserToDefaultGroup))
		})

		r.Route("/settings/{namespace}/{key}", func(r chi.Router) {
			r.Get("/", instrument(statter, "find-setting", settingRoutes.findSetting))
			r.Put("/", instrument(statter, "save-setting", settingRoutes.saveSetting))
		})
	})

	return &Server{
		logger:         logger,
		securityLogger: config.securityLogger,
		handler:        router,
		server:         &http.Server{Handler: router},
		tlsConfig:      config.tlsConfig,
	}
}

// Serve accepts connections on the listener until the server is
// stopped. The listener is wrapped with TLS when the server was
// configured with a TLS config.
func (s *Server) Serve(listener net.Listener) error {
	if s.tlsConfig != nil {
		listener = tls.NewListener(listener, s.tlsConfig)
	}

	err := s.server.Serve(listener)

	switch err {
	case nil:
		return nil
	case http.ErrServerClosed:
		return ErrServerStopped
	default:
		return ErrServerFailedToStart
	}
}

// GracefulStop stops accepting new requests and waits for in-flight
// ones, up to the context's deadline.
func (s *Server) GracefulStop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) Stop() {
	s.server.Close()
}

// Handler exposes the routed handler for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

type ServerOption func(*serverConfig)

func WithLogger(logger logx.Logger) ServerOption {
	return func(o *serverConfig) {
		o.logger = logger
	}
}

func WithSecurityLogger(logger logx.SecurityLogger) ServerOption {
	return func(o *serverConfig) {
		o.securityLogger = logger
	}
}

func WithTLSConfig(config *tls.Config) ServerOption {
	return func(o *serverConfig) {
		o.tlsConfig = config
	}
}

func WithStatter(statter metrics.Statter) ServerOption {
	return func(o *serverConfig) {
		o.statter = statter
	}
}

func WithSettings(settings groups.Settings) ServerOption {
	return func(o *serverConfig) {
		o.settings = settings
	}
}

func WithHooks(hooks *groups.Hooks) ServerOption {
	return func(o *serverConfig) {
		o.hooks = hooks
	}
}

type serverConfig struct {
	logger         logx.Logger
	securityLogger logx.SecurityLogger

	tlsConfig *tls.Config
	statter   metrics.Statter

	settings groups.Settings
	hooks    *groups.Hooks
}

type emptyLogger struct{}

func (l *emptyLogger) WithName(string) logx.Logger {
	return l
}

func (l *emptyLogger) WithData(...logx.Data) logx.Logger {
	return l
}

func (l *emptyLogger) Debug(string, ...logx.Data) {}

func (l *emptyLogger) Info(string, ...logx.Data) {}

func (l *emptyLogger) Error(string, error, ...logx.Data) {}

type emptySecurityLogger struct{}

func (l *emptySecurityLogger) Log(context.Context, string, string, ...logx.SecurityData) {}

type emptyStatter struct{}

func (s *emptyStatter) Inc(string, int64) {}

func (s *emptyStatter) Gauge(string, int64) {}

func (s *emptyStatter) TimingDuration(string, time.Duration) {}
