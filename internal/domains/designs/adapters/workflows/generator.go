package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
	designworkflows "github.com/Apurer/garment-studio/internal/platform/temporal/workflows/designs"
)

var _ ports.ImageGenerator = (*TemporalGenerator)(nil)

// workflowStarter is the part of the Temporal client used to run a generation.
type workflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// TemporalGenerator runs each generation as a Temporal workflow and waits for its result.
type TemporalGenerator struct {
	client    workflowStarter
	taskQueue string
}

// NewTemporalGenerator wires a Temporal client into the generator.
func NewTemporalGenerator(c client.Client) *TemporalGenerator {
	return &TemporalGenerator{client: c, taskQueue: designworkflows.GenerationTaskQueue}
}

// Generate starts the generation workflow and blocks until it finishes.
func (g *TemporalGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*ports.GenerationResult, error) {
	if g == nil || g.client == nil {
		return nil, errors.New("temporal generator not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:                       fmt.Sprintf("design-generation-%s-%s", req.Mode, uuid.NewString()),
		TaskQueue:                g.taskQueue,
		WorkflowExecutionTimeout: designworkflows.GenerationTimeout + 30*time.Second,
	}
	run, err := g.client.ExecuteWorkflow(
		ctx,
		options,
		designworkflows.GenerationWorkflowName,
		designworkflows.GenerationWorkflowInput{Request: req, TraceID: traceComponent},
	)
	if err != nil {
		return nil, fmt.Errorf("start generation workflow: %w", err)
	}
	var result ports.GenerationResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, toGenerationFailure(err)
	}
	return &result, nil
}

// toGenerationFailure recovers the failure reason the activity encoded as the
// application error type.
func toGenerationFailure(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	failure := &ports.GenerationFailure{
		Reason:  ports.FailureReason(appErr.Type()),
		Message: appErr.Message(),
		Err:     err,
	}
	if appErr.HasDetails() {
		var status int
		if detailErr := appErr.Details(&status); detailErr == nil {
			failure.StatusCode = status
		}
	}
	return failure
}

func workflowTraceComponent(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() || !spanCtx.TraceID().IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
