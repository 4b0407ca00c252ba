package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
)

// generationTarget is the configuration a generation reads from and writes to.
type generationTarget interface {
	Snapshot() domain.Configuration
	ApplyGeneratedArtifact(ref string) error
}

// Orchestrator mediates calls to the image-generation collaborator for one
// configuration. At most one call is in flight; a second caller is rejected
// rather than queued.
type Orchestrator struct {
	generator ports.ImageGenerator

	mu          sync.Mutex
	state       domain.GenerationState
	lastOutcome domain.GenerationState
	lastErr     error
}

func NewOrchestrator(generator ports.ImageGenerator) *Orchestrator {
	return &Orchestrator{generator: generator, state: domain.GenerationIdle}
}

// State is Idle or Requesting.
func (o *Orchestrator) State() domain.GenerationState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LastOutcome returns the terminal state of the most recent call and its error.
func (o *Orchestrator) LastOutcome() (domain.GenerationState, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastOutcome, o.lastErr
}

// Generate validates the target's snapshot for mode, makes one collaborator
// call and applies the artifact on success. On failure the target is untouched.
func (o *Orchestrator) Generate(ctx context.Context, mode domain.GenerationMode, target generationTarget) error {
	req, err := domain.NewGenerationRequest(mode, target.Snapshot())
	if err != nil {
		return mapError(err)
	}
	if o.generator == nil {
		return fmt.Errorf("%w: image generator not configured", ErrGenerationFailed)
	}
	if !o.begin() {
		return ErrConcurrentRequestRejected
	}

	result, err := o.generator.Generate(ctx, req)
	if err != nil {
		err = classifyGenerationError(err)
		o.finish(domain.GenerationFailed, err)
		return err
	}
	if result == nil {
		err = classifyGenerationError(errors.New("empty generation result"))
		o.finish(domain.GenerationFailed, err)
		return err
	}
	if err := target.ApplyGeneratedArtifact(result.ImageURL); err != nil {
		err = classifyGenerationError(err)
		o.finish(domain.GenerationFailed, err)
		return err
	}
	o.finish(domain.GenerationSucceeded, nil)
	return nil
}

func (o *Orchestrator) begin() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == domain.GenerationRequesting {
		return false
	}
	o.state = domain.GenerationRequesting
	return true
}

// finish records the terminal outcome and returns to Idle.
func (o *Orchestrator) finish(outcome domain.GenerationState, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastOutcome = outcome
	o.lastErr = err
	o.state = domain.GenerationIdle
}
