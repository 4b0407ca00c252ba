package domain

import (
	"errors"
	"strings"
)

// GenerationMode selects which kind of artwork the collaborator produces.
type GenerationMode string

const (
	GenerationModeDesign GenerationMode = "design"
	GenerationModeTryOn  GenerationMode = "tryon"
)

// GenerationState is the orchestrator lifecycle. Succeeded and Failed are
// terminal outcomes of a single call; the orchestrator returns to Idle after both.
type GenerationState string

const (
	GenerationIdle       GenerationState = "idle"
	GenerationRequesting GenerationState = "requesting"
	GenerationSucceeded  GenerationState = "succeeded"
	GenerationFailed     GenerationState = "failed"
)

var (
	ErrEmptyPrompt           = errors.New("a design prompt is required")
	ErrMissingUpload         = errors.New("an uploaded photo is required for try-on")
	ErrUnknownGenerationMode = errors.New("unknown generation mode")
)

// GenerationRequest is the value handed to the image-generation collaborator.
// It is built from a configuration snapshot and lives for one call.
type GenerationRequest struct {
	Mode          GenerationMode
	PromptText    string
	ImageRef      string
	GarmentTypeID string
	ColorHex      string
}

// NewGenerationRequest validates that the snapshot carries the input the mode needs.
func NewGenerationRequest(mode GenerationMode, cfg Configuration) (GenerationRequest, error) {
	req := GenerationRequest{
		Mode:          mode,
		GarmentTypeID: cfg.GarmentType,
		ColorHex:      cfg.Color,
	}
	switch mode {
	case GenerationModeDesign:
		prompt := strings.TrimSpace(cfg.PromptText)
		if prompt == "" {
			return GenerationRequest{}, ErrEmptyPrompt
		}
		req.PromptText = prompt
	case GenerationModeTryOn:
		if strings.TrimSpace(cfg.UploadedImageRef) == "" {
			return GenerationRequest{}, ErrMissingUpload
		}
		req.ImageRef = cfg.UploadedImageRef
		req.PromptText = strings.TrimSpace(cfg.PromptText)
	default:
		return GenerationRequest{}, ErrUnknownGenerationMode
	}
	return req, nil
}
