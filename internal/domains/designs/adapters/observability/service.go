package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	designsapp "github.com/Apurer/garment-studio/internal/domains/designs/application"
	"github.com/Apurer/garment-studio/internal/domains/designs/application/types"
	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
)

const tracerName = "github.com/Apurer/garment-studio/internal/domains/designs/adapters/observability/service"

// Service decorates the design service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core design service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Catalog(ctx context.Context, audience domain.Audience) (*types.CatalogView, error) {
	ctx, span := s.tracer.Start(ctx, "DesignService.Catalog", trace.WithAttributes(attribute.String("catalog.audience", string(audience))))
	defer span.End()

	result, err := s.inner.Catalog(ctx, audience)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load catalog")
	}
	span.SetAttributes(attribute.Int("catalog.garment_types", len(result.GarmentTypes)))
	return result, nil
}

func (s *Service) StartSession(ctx context.Context, seed *domain.ProductSnapshot) (*types.SessionProjection, error) {
	ctx, span := s.tracer.Start(ctx, "DesignService.StartSession", trace.WithAttributes(attribute.Bool("session.seeded", seed != nil)))
	defer span.End()

	result, err := s.inner.StartSession(ctx, seed)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to start design session")
	}
	span.SetAttributes(attribute.String("session.id", result.ID))
	s.metrics.recordSessionStarted(ctx)
	s.logInfo(ctx, "design session started", slog.String("session.id", result.ID), slog.String("garment_type", result.Configuration.GarmentType))
	return result, nil
}

func (s *Service) GetSession(ctx context.Context, sessionID string) (*types.SessionProjection, error) {
	ctx, span := s.tracer.Start(ctx, "DesignService.GetSession", trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	result, err := s.inner.GetSession(ctx, sessionID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load design session", slog.String("session.id", sessionID))
	}
	return result, nil
}

func (s *Service) UpdateConfiguration(ctx context.Context, sessionID string, patch types.ConfigurationPatch) (*types.SessionProjection, error) {
	ctx, span := s.tracer.Start(ctx, "DesignService.UpdateConfiguration", trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	result, err := s.inner.UpdateConfiguration(ctx, sessionID, patch)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update configuration", slog.String("session.id", sessionID))
	}
	span.SetAttributes(attribute.Int64("price.total", result.Quote.Total))
	return result, nil
}

func (s *Service) UploadPhoto(ctx context.Context, input types.UploadPhotoInput) (*types.SessionProjection, error) {
	ctx, span := s.tracer.Start(ctx, "DesignService.UploadPhoto",
		trace.WithAttributes(attribute.String("session.id", input.SessionID), attribute.Int("upload.bytes", len(input.Data))))
	defer span.End()

	s.logInfo(ctx, "uploading photo", slog.String("session.id", input.SessionID), slog.String("content_type", input.ContentType), slog.Int("bytes", len(input.Data)))
	result, err := s.inner.UploadPhoto(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to upload photo", slog.String("session.id", input.SessionID))
	}
	return result, nil
}

func (s *Service) Generate(ctx context.Context, sessionID string, mode domain.GenerationMode) (*types.SessionProjection, error) {
	ctx, span := s.tracer.Start(ctx, "DesignService.Generate",
		trace.WithAttributes(attribute.String("session.id", sessionID), attribute.String("generation.mode", string(mode))))
	defer span.End()

	s.metrics.recordGenerationRequested(ctx, mode)
	s.logInfo(ctx, "generating artwork", slog.String("session.id", sessionID), slog.String("mode", string(mode)))
	result, err := s.inner.Generate(ctx, sessionID, mode)
	if err != nil {
		s.metrics.recordGenerationFailed(ctx, mode, failureKind(err))
		return nil, s.handleError(ctx, span, err, "artwork generation failed",
			slog.String("session.id", sessionID), slog.String("mode", string(mode)), slog.String("failure", failureKind(err)))
	}
	s.logInfo(ctx, "artwork generated", slog.String("session.id", sessionID), slog.String("mode", string(mode)))
	return result, nil
}

func (s *Service) SaveDesign(ctx context.Context, sessionID string) (*domain.SavedDesign, error) {
	ctx, span := s.tracer.Start(ctx, "DesignService.SaveDesign", trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	result, err := s.inner.SaveDesign(ctx, sessionID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to save design", slog.String("session.id", sessionID))
	}
	span.SetAttributes(attribute.String("design.id", result.ID), attribute.Int64("design.price", result.Price))
	s.metrics.recordSaved(ctx, result.GarmentType)
	s.logInfo(ctx, "design saved", slog.String("session.id", sessionID), slog.String("design.id", result.ID), slog.Int64("price", result.Price))
	return result, nil
}

func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "DesignService.EndSession", trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	if err := s.inner.EndSession(ctx, sessionID); err != nil {
		return s.handleError(ctx, span, err, "failed to end design session", slog.String("session.id", sessionID))
	}
	s.logInfo(ctx, "design session ended", slog.String("session.id", sessionID))
	return nil
}

func (s *Service) GetSavedDesign(ctx context.Context, designID string) (*domain.SavedDesign, error) {
	ctx, span := s.tracer.Start(ctx, "DesignService.GetSavedDesign", trace.WithAttributes(attribute.String("design.id", designID)))
	defer span.End()

	result, err := s.inner.GetSavedDesign(ctx, designID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load saved design", slog.String("design.id", designID))
	}
	return result, nil
}

func (s *Service) ListSavedDesigns(ctx context.Context, audience domain.Audience) ([]*domain.SavedDesign, error) {
	ctx, span := s.tracer.Start(ctx, "DesignService.ListSavedDesigns", trace.WithAttributes(attribute.String("catalog.audience", string(audience))))
	defer span.End()

	result, err := s.inner.ListSavedDesigns(ctx, audience)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list saved designs")
	}
	span.SetAttributes(attribute.Int("designs.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, designsapp.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, designsapp.ErrPaymentRequired):
		return "payment_required"
	case errors.Is(err, designsapp.ErrConcurrentRequestRejected):
		return "concurrent"
	case errors.Is(err, designsapp.ErrValidation):
		return "validation"
	case errors.Is(err, designsapp.ErrSessionNotFound):
		return "session_not_found"
	default:
		return "failed"
	}
}

type serviceMetrics struct {
	sessionsStarted    metric.Int64Counter
	generationRequests metric.Int64Counter
	generationFailures metric.Int64Counter
	designsSaved       metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	sessionsStarted, _ := m.Int64Counter("designs.sessions.started", metric.WithDescription("Number of design sessions started"))
	generationRequests, _ := m.Int64Counter("designs.generation.requests", metric.WithDescription("Number of artwork generation requests"))
	generationFailures, _ := m.Int64Counter("designs.generation.failures", metric.WithDescription("Number of failed artwork generation requests"))
	designsSaved, _ := m.Int64Counter("designs.saved", metric.WithDescription("Number of saved designs"))
	return serviceMetrics{
		sessionsStarted:    sessionsStarted,
		generationRequests: generationRequests,
		generationFailures: generationFailures,
		designsSaved:       designsSaved,
	}
}

func (m serviceMetrics) recordSessionStarted(ctx context.Context) {
	if m.sessionsStarted != nil {
		m.sessionsStarted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordGenerationRequested(ctx context.Context, mode domain.GenerationMode) {
	if m.generationRequests != nil {
		m.generationRequests.Add(ctx, 1, metric.WithAttributes(attribute.String("generation.mode", string(mode))))
	}
}

func (m serviceMetrics) recordGenerationFailed(ctx context.Context, mode domain.GenerationMode, kind string) {
	if m.generationFailures != nil {
		m.generationFailures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("generation.mode", string(mode)),
			attribute.String("generation.failure", kind),
		))
	}
}

func (m serviceMetrics) recordSaved(ctx context.Context, garmentType string) {
	if m.designsSaved != nil {
		m.designsSaved.Add(ctx, 1, metric.WithAttributes(attribute.String("garment.type", garmentType)))
	}
}

var _ ports.Service = (*Service)(nil)
