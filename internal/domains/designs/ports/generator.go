package ports

import (
	"context"
	"fmt"

	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
)

// FailureReason classifies a failed generation call as reported by the collaborator.
type FailureReason string

const (
	FailureRateLimited     FailureReason = "rate_limited"
	FailurePaymentRequired FailureReason = "payment_required"
	FailureUpstream        FailureReason = "upstream"
)

// GenerationResult is the collaborator's answer to a successful request.
type GenerationResult struct {
	ImageURL string
}

// GenerationFailure is returned by ImageGenerator implementations that can tell
// why a call failed. Reason is empty when only the status or message is known.
type GenerationFailure struct {
	Reason     FailureReason
	StatusCode int
	Message    string
	Err        error
}

func (f *GenerationFailure) Error() string {
	switch {
	case f.StatusCode != 0 && f.Message != "":
		return fmt.Sprintf("image generation failed: status %d: %s", f.StatusCode, f.Message)
	case f.StatusCode != 0:
		return fmt.Sprintf("image generation failed: status %d", f.StatusCode)
	case f.Message != "":
		return "image generation failed: " + f.Message
	case f.Err != nil:
		return "image generation failed: " + f.Err.Error()
	default:
		return "image generation failed"
	}
}

func (f *GenerationFailure) Unwrap() error { return f.Err }

// ImageGenerator is the external image-generation collaborator. Implementations
// perform exactly one outbound call per invocation and never retry.
type ImageGenerator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*GenerationResult, error)
}
