package intake

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/contactform/core/cookie"
	"github.com/dmitrymomot/contactform/core/email"
	"github.com/dmitrymomot/contactform/core/handler"
	"github.com/dmitrymomot/contactform/core/health"
	"github.com/dmitrymomot/contactform/core/logger"
	"github.com/dmitrymomot/contactform/core/response"
	"github.com/dmitrymomot/contactform/core/router"
	"github.com/dmitrymomot/contactform/core/server"
	"github.com/dmitrymomot/contactform/core/session"
	"github.com/dmitrymomot/contactform/core/sessiontransport"
	"github.com/dmitrymomot/contactform/integration/database/redis"
	"github.com/dmitrymomot/contactform/integration/email/postmark"
	"github.com/dmitrymomot/contactform/integration/email/smtp"
	"github.com/dmitrymomot/contactform/integration/storage/s3"
	mw "github.com/dmitrymomot/contactform/middleware"
	"github.com/dmitrymomot/contactform/pkg/ratelimiter"
)

var (
	ErrUnknownEmailProvider = errors.New("intake: unknown email provider")
	ErrUnknownSessionStore  = errors.New("intake: unknown session store")
)

// App wires configuration, dependencies and routes of the intake service.
type App struct {
	config Config
	logger *slog.Logger

	sender       email.EmailSender
	archiver     *s3.Archiver
	redis        goredis.UniversalClient
	sessionStore session.Store[Draft]
	sessions     *session.Manager[Draft]
	store        *CSVStore
	limits       *ratelimiter.MemoryStore
	server       *server.Server
	router       router.Router[handler.Context]
}

// AppOption overrides a dependency NewApp would otherwise build from Config.
type AppOption func(*App) error

// WithAppLogger sets the application logger.
func WithAppLogger(l *slog.Logger) AppOption {
	return func(a *App) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		a.logger = l
		return nil
	}
}

// WithEmailSender sets the notification transport.
func WithEmailSender(s email.EmailSender) AppOption {
	return func(a *App) error {
		if s == nil {
			return errors.New("email sender cannot be nil")
		}
		a.sender = s
		return nil
	}
}

// WithSessionStore sets the draft session store.
func WithSessionStore(s session.Store[Draft]) AppOption {
	return func(a *App) error {
		if s == nil {
			return errors.New("session store cannot be nil")
		}
		a.sessionStore = s
		return nil
	}
}

// WithServer sets the HTTP server.
func WithServer(s *server.Server) AppOption {
	return func(a *App) error {
		if s == nil {
			return errors.New("server cannot be nil")
		}
		a.server = s
		return nil
	}
}

// NewApp builds the application. Dependencies not supplied through options
// are created from cfg; Redis and S3 are contacted here when enabled.
func NewApp(ctx context.Context, cfg Config, opts ...AppOption) (*App, error) {
	app := &App{config: cfg}
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		app.logger = newLogger(cfg)
	}

	if app.sender == nil {
		sender, err := newEmailSender(cfg)
		if err != nil {
			return nil, err
		}
		app.sender = sender
	}

	if cfg.Archive.Enabled() {
		arch, err := s3.New(ctx, cfg.Archive)
		if err != nil {
			return nil, fmt.Errorf("archive: %w", err)
		}
		app.archiver = arch
	}

	if app.sessionStore == nil {
		if err := app.initSessionStore(ctx); err != nil {
			return nil, err
		}
	}

	if cfg.Cookie.Secrets == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.Cookie.Secrets = secret
		app.logger.Warn("SESSION_COOKIE_SECRET is not set, using a random secret; drafts will not survive a restart")
	}
	cookieMgr, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return nil, fmt.Errorf("cookie: %w", err)
	}

	app.sessions = session.NewManager(app.sessionStore, session.WithConfig(cfg.Session))
	app.store = NewCSVStore(cfg.StorePath)
	app.logger.Info("submission store configured", logger.Key("path", app.store.Path()))

	if app.server == nil {
		srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		app.server = srv
	}

	serviceOpts := []ServiceOption{WithLogger(app.logger)}
	if app.archiver != nil {
		serviceOpts = append(serviceOpts, WithArchiver(app.archiver))
	}
	service := NewService(
		app.store,
		NewNotifier(app.sender, cfg.NotifyRecipient, cfg.NotifyAttachStore),
		serviceOpts...,
	)

	var handlerOpts []HandlerOption
	if cfg.RateLimit.Enabled() {
		app.limits = ratelimiter.NewMemoryStore()
		limiter, err := ratelimiter.NewTokenBucket(app.limits, cfg.RateLimit)
		if err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		handlerOpts = append(handlerOpts, WithSubmitMiddleware(
			mw.RateLimit[handler.Context](mw.RateLimitConfig{
				Limiter:           limiter,
				TrustProxyHeaders: cfg.TrustProxyHeaders,
				SetHeaders:        true,
			}),
		))
	}

	transport := sessiontransport.NewCookieFromConfig(cfg.Transport, app.sessions, cookieMgr)
	app.router = app.routes(NewHandler(transport, service, cfg.Branding, app.logger, handlerOpts...))

	if cfg.NotifyRecipient == "" {
		app.logger.Warn("NOTIFY_RECIPIENT is not set, submissions will be saved without notification")
	}
	return app, nil
}

// Router returns the router with all routes mounted.
func (a *App) Router() router.Router[handler.Context] {
	return a.router
}

// Run serves HTTP and sweeps expired sessions until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(ctx, a.router))
	g.Go(func() error {
		a.cleanupSessions(ctx)
		return nil
	})
	if a.limits != nil {
		g.Go(a.limits.Run(ctx, time.Minute))
	}
	return g.Wait()
}

// Close releases external connections.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("failed to close redis client", logger.Error(err))
		}
	}
}

func (a *App) routes(h *Handler) router.Router[handler.Context] {
	r := router.New(router.WithErrorHandler(response.ErrorHandler[handler.Context]))

	httpLogger := &httplog.Logger{}
	httpLogger.Configure(httplog.Options{
		Concise:         true,
		QuietDownRoutes: []string{"/health/live", "/health/ready"},
		QuietDownPeriod: time.Minute,
	})
	// Request logs share the application handler, level and format.
	httpLogger.Logger = a.logger.With(logger.Component("http"))
	r.UseHTTP(httplog.RequestLogger(httpLogger))
	r.UseHTTP(middleware.Recoverer)
	if a.config.MaxBodyBytes > 0 {
		r.UseHTTP(middleware.RequestSize(a.config.MaxBodyBytes))
	}
	if a.config.SecurityHeaders {
		headers := mw.FormPageSecurity
		headers.IsDevelopment = a.config.IsDevelopment()
		r.UseHTTP(mw.SecurityHeaders(headers))
	}

	h.Mount(r)

	checks := []health.Check{health.NewCheck("store", a.store.Check)}
	if a.redis != nil {
		checks = append(checks, health.NewCheck("redis", redis.Healthcheck(a.redis)))
	}
	if a.archiver != nil {
		checks = append(checks, health.NewCheck("archive", a.archiver.Ping))
	}
	r.Get("/health/live", health.Liveness[handler.Context])
	r.Get("/health/ready", health.Readiness[handler.Context](a.logger, checks...))

	return r
}

func (a *App) initSessionStore(ctx context.Context) error {
	switch a.config.SessionStore {
	case "", SessionStoreMemory:
		a.sessionStore = session.NewMemoryStore[Draft]()
	case SessionStoreRedis:
		client, err := redis.Connect(ctx, a.config.Redis)
		if err != nil {
			return fmt.Errorf("session store: %w", err)
		}
		a.redis = client
		a.sessionStore = redis.NewSessionStore[Draft](client, a.config.Redis.KeyPrefix)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSessionStore, a.config.SessionStore)
	}
	return nil
}

func (a *App) cleanupSessions(ctx context.Context) {
	if a.config.SessionCleanupInterval <= 0 {
		return
	}

	ticker := time.NewTicker(a.config.SessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.sessions.CleanupExpired(ctx)
			if err != nil {
				a.logger.ErrorContext(ctx, "session cleanup failed", logger.Error(err))
				continue
			}
			if n > 0 {
				a.logger.DebugContext(ctx, "expired sessions removed", logger.Count("sessions", int(n)))
			}
		}
	}
}

func newLogger(cfg Config) *slog.Logger {
	opts := []logger.Option{logger.WithProduction(cfg.AppName)}
	if cfg.IsDevelopment() {
		opts = []logger.Option{logger.WithDevelopment(cfg.AppName)}
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	}
	return logger.New(opts...)
}

func newEmailSender(cfg Config) (email.EmailSender, error) {
	switch cfg.EmailProvider {
	case EmailProviderSMTP:
		client, err := smtp.New(cfg.SMTP)
		if err != nil {
			return nil, err
		}
		return client, nil
	case EmailProviderPostmark:
		client, err := postmark.New(cfg.Postmark)
		if err != nil {
			return nil, err
		}
		return client, nil
	case EmailProviderDev:
		return email.NewDevSender(cfg.DevEmailDir), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEmailProvider, cfg.EmailProvider)
	}
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate cookie secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
