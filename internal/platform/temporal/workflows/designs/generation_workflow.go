package designs

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
	designactivities "github.com/Apurer/garment-studio/internal/platform/temporal/activities/designs"
)

const (
	// GenerationWorkflowName is the public identifier for registering the workflow.
	GenerationWorkflowName = "designs.workflows.Generation"
	// GenerationTaskQueue is the queue consumed by the worker processing generation workflows.
	GenerationTaskQueue = "DESIGN_GENERATION"
	// GenerationTimeout bounds the single collaborator call.
	GenerationTimeout = 90 * time.Second
)

// GenerationWorkflowInput carries one generation request.
type GenerationWorkflowInput struct {
	Request domain.GenerationRequest
	TraceID string
}

// GenerationWorkflow runs the artwork activity exactly once. Failures surface
// to the caller unchanged; the shopper decides whether to try again.
func GenerationWorkflow(ctx workflow.Context, input GenerationWorkflowInput) (*ports.GenerationResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("GenerationWorkflow started", withTraceID(input.TraceID, "mode", input.Request.Mode)...)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: GenerationTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	var result ports.GenerationResult
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), designactivities.GenerateArtworkActivityName, input.Request).Get(ctx, &result)
	if err != nil {
		logger.Error("GenerationWorkflow failed", withTraceID(input.TraceID, "mode", input.Request.Mode, "error", err)...)
		return nil, err
	}
	logger.Info("GenerationWorkflow completed", withTraceID(input.TraceID, "mode", input.Request.Mode)...)
	return &result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
