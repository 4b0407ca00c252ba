package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
)

var (
	// ErrInvalidSelection signals a catalog id or color that does not exist.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrValidation signals a generation or upload request missing required input.
	ErrValidation = errors.New("validation failed")
	// ErrConcurrentRequestRejected is returned while another generation is in flight.
	ErrConcurrentRequestRejected = errors.New("a generation request is already in progress")
	ErrRateLimited               = errors.New("image generation rate limited")
	ErrPaymentRequired           = errors.New("image generation requires credits")
	ErrGenerationFailed          = errors.New("image generation failed")
	// ErrUnauthenticated is returned when saving without a signed-in user.
	ErrUnauthenticated = errors.New("authentication required")
	ErrPersistence     = errors.New("persistence failed")
	ErrSessionNotFound = errors.New("design session not found")
	ErrDesignNotFound  = errors.New("saved design not found")
)

// NotFoundError names the session or saved design that was looked up. It
// unwraps to ErrSessionNotFound or ErrDesignNotFound.
type NotFoundError struct {
	Kind error
	ID   string
}

func (e *NotFoundError) Error() string { return e.Kind.Error() }

func (e *NotFoundError) Unwrap() error { return e.Kind }

func sessionNotFound(id string) error {
	return &NotFoundError{Kind: ErrSessionNotFound, ID: id}
}

func designNotFound(id string) error {
	return &NotFoundError{Kind: ErrDesignNotFound, ID: id}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrInvalidSelection), errors.Is(err, ErrValidation), errors.Is(err, ErrDesignNotFound):
		return err
	case errors.Is(err, domain.ErrInvalidSelection):
		return fmt.Errorf("%w: %w", ErrInvalidSelection, err)
	case errors.Is(err, domain.ErrEmptyPrompt),
		errors.Is(err, domain.ErrMissingUpload),
		errors.Is(err, domain.ErrUnknownGenerationMode),
		errors.Is(err, domain.ErrEmptyImageRef),
		errors.Is(err, domain.ErrEmptyUpload),
		errors.Is(err, domain.ErrUploadTooLarge),
		errors.Is(err, domain.ErrUnsupportedImageType):
		return fmt.Errorf("%w: %w", ErrValidation, err)
	case errors.Is(err, ports.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrDesignNotFound, err)
	}
	return err
}

// classifyGenerationError maps a collaborator failure onto the taxonomy. A typed
// reason wins, then the HTTP status, then the message text.
func classifyGenerationError(err error) error {
	if err == nil {
		return nil
	}
	var failure *ports.GenerationFailure
	if errors.As(err, &failure) {
		switch failure.Reason {
		case ports.FailureRateLimited:
			return fmt.Errorf("%w: %w", ErrRateLimited, err)
		case ports.FailurePaymentRequired:
			return fmt.Errorf("%w: %w", ErrPaymentRequired, err)
		}
		switch failure.StatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", ErrRateLimited, err)
		case http.StatusPaymentRequired:
			return fmt.Errorf("%w: %w", ErrPaymentRequired, err)
		}
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit"):
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	case strings.Contains(msg, "payment required"):
		return fmt.Errorf("%w: %w", ErrPaymentRequired, err)
	}
	return fmt.Errorf("%w: %w", ErrGenerationFailed, err)
}

// UserMessage returns the text shown to the shopper for err.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRateLimited):
		return "Rate limit reached. Please try again later."
	case errors.Is(err, ErrPaymentRequired):
		return "AI credits are used up. Add credits to keep generating."
	case errors.Is(err, ErrGenerationFailed):
		return "We could not generate your design. Please try again."
	case errors.Is(err, ErrConcurrentRequestRejected):
		return "A preview is already being generated."
	case errors.Is(err, domain.ErrEmptyPrompt):
		return "Describe the design you want first."
	case errors.Is(err, domain.ErrMissingUpload):
		return "Upload a photo to preview the try-on."
	case errors.Is(err, domain.ErrUnsupportedImageType), errors.Is(err, domain.ErrEmptyUpload):
		return "Upload a JPG or PNG photo."
	case errors.Is(err, domain.ErrUploadTooLarge):
		return "That photo is too large."
	case errors.Is(err, domain.ErrInvalidColor):
		return "Pick a valid color."
	case errors.Is(err, ErrInvalidSelection):
		return "That option is not available."
	case errors.Is(err, ErrValidation):
		return "Some required information is missing."
	case errors.Is(err, ErrUnauthenticated):
		return "Sign in to save your design."
	case errors.Is(err, ErrPersistence):
		return "Failed to save design. Please try again."
	case errors.Is(err, ErrSessionNotFound):
		return "This design session has expired. Start a new design."
	case errors.Is(err, ErrDesignNotFound):
		return "Design not found."
	default:
		return "Something went wrong."
	}
}
