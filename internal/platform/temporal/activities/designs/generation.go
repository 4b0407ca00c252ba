package designs

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
)

// GenerateArtworkActivityName calls the image-generation collaborator once.
const GenerateArtworkActivityName = "designs.activities.GenerateArtwork"

// Activities groups activities that operate on the designs bounded context.
type Activities struct {
	generator ports.ImageGenerator
}

func NewActivities(generator ports.ImageGenerator) *Activities {
	return &Activities{generator: generator}
}

// GenerateArtwork forwards one request to the collaborator. Failures are
// non-retryable and carry the failure reason as the application error type
// and the HTTP status as details.
func (a *Activities) GenerateArtwork(ctx context.Context, req domain.GenerationRequest) (*ports.GenerationResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.generator == nil {
		logger.Error("generate artwork activity not initialized", "mode", req.Mode)
		return nil, temporal.NewNonRetryableApplicationError("generate artwork activity not initialized", string(ports.FailureUpstream), nil)
	}
	logger.Info("GenerateArtwork activity started", "mode", req.Mode, "garmentType", req.GarmentTypeID)
	result, err := a.generator.Generate(ctx, req)
	if err != nil {
		logger.Error("GenerateArtwork activity failed", "mode", req.Mode, "error", err)
		return nil, toApplicationError(err)
	}
	logger.Info("GenerateArtwork activity completed", "mode", req.Mode)
	return result, nil
}

func toApplicationError(err error) error {
	var failure *ports.GenerationFailure
	if errors.As(err, &failure) {
		reason := failure.Reason
		if reason == "" {
			reason = ports.FailureUpstream
		}
		return temporal.NewNonRetryableApplicationError(failure.Error(), string(reason), err, failure.StatusCode)
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), string(ports.FailureUpstream), err)
}
