package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"propertyhub/api"
	apicart "propertyhub/api/cart"
	apienquiry "propertyhub/api/enquiry"
	"propertyhub/api/health"
	cartapp "propertyhub/application/cart"
	enquiryapp "propertyhub/application/enquiry"
	"propertyhub/config"
	"propertyhub/pkg/logger"
	"propertyhub/pkg/tracing"

	"go.uber.org/zap"
)

// AppBuilder builds an App from configuration
type AppBuilder struct {
	cfg         *config.Config
	traceWriter io.Writer
	skipLogger  bool
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// WithTraceWriter redirects exported spans; stdout is used otherwise.
func (b *AppBuilder) WithTraceWriter(w io.Writer) *AppBuilder {
	b.traceWriter = w
	return b
}

// WithoutLoggerInit keeps the current global logger, for tests.
func (b *AppBuilder) WithoutLoggerInit() *AppBuilder {
	b.skipLogger = true
	return b
}

// Build creates the App instance
func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	if !b.skipLogger {
		if err := logger.Init(&b.cfg.Log, b.cfg.App.Env); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	shutdownTracing, err := tracing.Init(ctx, b.cfg.App, b.cfg.Tracing, b.traceWriter)
	if err != nil {
		return nil, err
	}

	infra, err := NewInfrastructure(ctx, b.cfg)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, err
	}

	var cartOpts []cartapp.Option
	if infra.Locker != nil {
		cartOpts = append(cartOpts, cartapp.WithLocker(infra.Locker))
	}
	cartService := cartapp.NewApplicationService(infra.CartRepo, infra.UoWFactory, cartOpts...)
	enquiryService := enquiryapp.NewApplicationService(infra.EnquiryRepo, infra.UoWFactory)

	router := api.NewRouter(
		b.cfg,
		health.NewController(b.cfg, infra.Checks),
		apicart.NewController(cartService),
		apienquiry.NewController(enquiryService),
	)
	router.SetupRoutes()

	app := &App{
		config: b.cfg,
		router: router,
		infra:  infra,
		server: &http.Server{
			Addr:         ":" + b.cfg.Server.Port,
			Handler:      router.GetEngine(),
			ReadTimeout:  b.cfg.Server.ReadTimeout,
			WriteTimeout: b.cfg.Server.WriteTimeout,
		},
		shutdownTracing: shutdownTracing,
	}

	// The in-memory outbox is only visible to this process, so the relay runs here.
	if infra.InMemory && b.cfg.Worker.Enabled {
		worker, err := infra.NewOutboxWorker(b.cfg)
		if err != nil {
			app.release(ctx)
			return nil, fmt.Errorf("failed to create outbox worker: %w", err)
		}
		app.worker = worker
	}

	return app, nil
}
