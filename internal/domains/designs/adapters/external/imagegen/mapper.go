package imagegen

import (
	"errors"
	"net/http"
	"strings"

	imagegenclient "github.com/Apurer/garment-studio/internal/clients/http/imagegen"
	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
)

// ToPayload converts a generation request into the collaborator's wire shape.
func ToPayload(req domain.GenerationRequest) imagegenclient.GenerateRequest {
	return imagegenclient.GenerateRequest{
		Mode:          string(req.Mode),
		PromptText:    req.PromptText,
		ImageData:     req.ImageRef,
		GarmentTypeID: req.GarmentTypeID,
		ColorHex:      req.ColorHex,
	}
}

// ToFailure converts a client error into a typed generation failure.
func ToFailure(err error) *ports.GenerationFailure {
	if err == nil {
		return nil
	}
	var apiErr *imagegenclient.APIError
	if !errors.As(err, &apiErr) {
		return &ports.GenerationFailure{Reason: FailureReasonFor(0, err.Error()), Err: err}
	}
	return &ports.GenerationFailure{
		Reason:     FailureReasonFor(apiErr.StatusCode, apiErr.Message),
		StatusCode: apiErr.StatusCode,
		Message:    apiErr.Message,
		Err:        err,
	}
}

// FailureReasonFor classifies by status code, then by message text.
func FailureReasonFor(status int, message string) ports.FailureReason {
	switch status {
	case http.StatusTooManyRequests:
		return ports.FailureRateLimited
	case http.StatusPaymentRequired:
		return ports.FailurePaymentRequired
	}
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "rate limit"):
		return ports.FailureRateLimited
	case strings.Contains(msg, "payment required"):
		return ports.FailurePaymentRequired
	}
	return ports.FailureUpstream
}
