package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"golang.org/x/sync/errgroup"

	imagegenclient "github.com/Apurer/garment-studio/internal/clients/http/imagegen"
	externalimagegen "github.com/Apurer/garment-studio/internal/domains/designs/adapters/external/imagegen"
	"github.com/Apurer/garment-studio/internal/domains/designs/adapters/http/handlers"
	"github.com/Apurer/garment-studio/internal/domains/designs/adapters/identity"
	designsmemory "github.com/Apurer/garment-studio/internal/domains/designs/adapters/memory"
	designsobs "github.com/Apurer/garment-studio/internal/domains/designs/adapters/observability"
	designspostgres "github.com/Apurer/garment-studio/internal/domains/designs/adapters/persistence/postgres"
	designsupabase "github.com/Apurer/garment-studio/internal/domains/designs/adapters/storage/supabase"
	designsworkflows "github.com/Apurer/garment-studio/internal/domains/designs/adapters/workflows"
	designsapp "github.com/Apurer/garment-studio/internal/domains/designs/application"
	designsports "github.com/Apurer/garment-studio/internal/domains/designs/ports"
	"github.com/Apurer/garment-studio/internal/platform/migrations"
	platformobservability "github.com/Apurer/garment-studio/internal/platform/observability"
	platformpostgres "github.com/Apurer/garment-studio/internal/platform/postgres"
)

const serviceName = "garment-studio-api"

// Run boots the design studio HTTP API with observability, storage, and
// generation wired. It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, ObservabilityConfig(cfg, serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repo, cleanupRepo := buildDesignRepository(ctx, cfg, logger)
	defer cleanupRepo()

	generator, cleanupGenerator := buildGenerator(cfg, instruments)
	defer cleanupGenerator()

	coreService := designsapp.NewService(nil, generator, repo, identity.ContextProvider{},
		designsapp.WithUploadStore(buildUploadStore(cfg, logger)))
	designService := designsobs.New(
		coreService,
		designsobs.WithLogger(logger),
		designsobs.WithTracer(instruments.Tracer("internal.designs.application")),
		designsobs.WithMeter(instruments.Meter("internal.designs.application")),
	)

	var verifier handlers.TokenVerifier
	if cfg.JWTSecret != "" {
		verifier = identity.NewVerifier(cfg.JWTSecret)
	} else {
		logger.Warn("AUTH_JWT_SECRET not set, every caller is anonymous and saving is disabled")
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewRouter(designService, verifier),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("design studio API listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return coreService.RunSweeper(gctx, cfg.SessionSweepEvery, cfg.SessionIdle)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Error("design studio API exited", slog.String("error", err.Error()))
		return err
	}
	logger.Info("design studio API stopped")
	return nil
}

// NewRouter builds the gin engine serving the design routes.
func NewRouter(service designsports.Service, verifier handlers.TokenVerifier) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	handlers.NewHandler(service, verifier).Register(router)
	return router
}

// ObservabilityConfig projects the process config onto the telemetry settings.
func ObservabilityConfig(cfg Config, service string) platformobservability.Config {
	return platformobservability.Config{
		ServiceName:  service,
		Environment:  cfg.Environment,
		LogLevel:     cfg.LogLevel,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
	}
}

// DialTemporal connects to Temporal with tracing and structured logging.
func DialTemporal(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer("temporal-client"),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

// NewHTTPGenerator builds the direct image-generation adapter.
func NewHTTPGenerator(cfg Config) (*externalimagegen.Generator, error) {
	c, err := imagegenclient.NewClient(cfg.ImageGenBaseURL, cfg.ImageGenAPIKey, nil, cfg.ImageGenTimeout)
	if err != nil {
		return nil, err
	}
	return externalimagegen.NewGenerator(c), nil
}

// buildGenerator prefers the Temporal workflow and falls back to calling the
// image-generation service inline.
func buildGenerator(cfg Config, instruments *platformobservability.Instruments) (designsports.ImageGenerator, func()) {
	logger := instruments.Logger
	temporalClient, err := DialTemporal(cfg, instruments)
	if err == nil {
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
		return designsworkflows.NewTemporalGenerator(temporalClient), temporalClient.Close
	}
	logger.Warn("Temporal workflows unavailable, generating inline", slog.String("error", err.Error()))
	generator, err := NewHTTPGenerator(cfg)
	if err != nil {
		logger.Warn("image generation disabled", slog.String("error", err.Error()))
		return nil, func() {}
	}
	return generator, func() {}
}

func buildDesignRepository(ctx context.Context, cfg Config, logger *slog.Logger) (designsports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, platformpostgres.PoolConfig{MaxOpenConns: 10}, logger)
	if db == nil {
		return designsmemory.NewRepository(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to migrate saved designs schema, falling back to memory", slog.String("error", err.Error()))
		cleanup()
		return designsmemory.NewRepository(), func() {}
	}
	logger.Info("saved design repository configured with postgres")
	return designspostgres.NewRepository(db), cleanup
}

func buildUploadStore(cfg Config, logger *slog.Logger) designsports.UploadStore {
	if cfg.SupabaseURL == "" {
		logger.Warn("SUPABASE_URL not set, photo uploads are kept in memory")
		return designsmemory.NewUploadStore()
	}
	store, err := designsupabase.NewUploadStore(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)
	if err != nil {
		logger.Warn("failed to configure supabase storage, photo uploads are kept in memory", slog.String("error", err.Error()))
		return designsmemory.NewUploadStore()
	}
	logger.Info("photo uploads stored in supabase", slog.String("bucket", cfg.SupabaseBucket))
	return store
}
