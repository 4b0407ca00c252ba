package application

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/garment-studio/internal/domains/designs/application/types"
	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
)

// Session owns one Configuration and its orchestrator. Field mutations and
// snapshots are serialized; a generation call runs outside the lock so edits
// and saves proceed while it is in flight.
type Session struct {
	id           string
	orchestrator *Orchestrator
	now          func() time.Time

	mu        sync.Mutex
	cfg       *domain.Configuration
	createdAt time.Time
	updatedAt time.Time
}

func NewSession(id string, catalog *domain.Catalog, generator ports.ImageGenerator, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	ts := now().UTC()
	return &Session{
		id:           id,
		orchestrator: NewOrchestrator(generator),
		now:          now,
		cfg:          domain.NewConfiguration(catalog),
		createdAt:    ts,
		updatedAt:    ts,
	}
}

func (s *Session) ID() string { return s.id }

// Update applies fn to the configuration under the session lock.
func (s *Session) Update(fn func(cfg *domain.Configuration) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.cfg); err != nil {
		return mapError(err)
	}
	s.updatedAt = s.now().UTC()
	return nil
}

// Apply writes the non-nil fields of patch. A rejected field discards the whole patch.
func (s *Session) Apply(patch types.ConfigurationPatch) error {
	return s.Update(func(current *domain.Configuration) error {
		next := current.Snapshot()
		cfg := &next
		if patch.GarmentType != nil {
			if err := cfg.SetGarmentType(*patch.GarmentType); err != nil {
				return err
			}
		}
		if patch.Fabric != nil {
			if err := cfg.SetFabric(*patch.Fabric); err != nil {
				return err
			}
		}
		if patch.Size != nil {
			if err := cfg.SetSize(*patch.Size); err != nil {
				return err
			}
		}
		if patch.Color != nil {
			if err := cfg.SetColor(*patch.Color); err != nil {
				return err
			}
		}
		if patch.Text != nil {
			cfg.SetText(*patch.Text)
		}
		if patch.Prompt != nil {
			cfg.SetPrompt(*patch.Prompt)
		}
		*current = next
		return nil
	})
}

func (s *Session) Snapshot() domain.Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Snapshot()
}

func (s *Session) ApplyGeneratedArtifact(ref string) error {
	return s.Update(func(cfg *domain.Configuration) error {
		return cfg.ApplyGeneratedArtifact(ref)
	})
}

// Generate runs one generation for the current configuration.
func (s *Session) Generate(ctx context.Context, mode domain.GenerationMode) error {
	s.touch()
	err := s.orchestrator.Generate(ctx, mode, s)
	s.touch()
	return err
}

// Quote prices the current configuration.
func (s *Session) Quote() (domain.Quote, error) {
	return domain.QuoteFor(s.Snapshot())
}

// Generating reports whether a collaborator call is in flight.
func (s *Session) Generating() bool {
	return s.orchestrator.State() == domain.GenerationRequesting
}

func (s *Session) LastTouched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// Projection returns a consistent read model of the session.
func (s *Session) Projection() (*types.SessionProjection, error) {
	s.mu.Lock()
	snapshot := s.cfg.Snapshot()
	meta := types.SessionMetadata{CreatedAt: s.createdAt, UpdatedAt: s.updatedAt}
	s.mu.Unlock()

	quote, err := domain.QuoteFor(snapshot)
	if err != nil {
		return nil, err
	}
	outcome, lastErr := s.orchestrator.LastOutcome()
	status := types.GenerationStatus{State: s.orchestrator.State(), LastOutcome: outcome}
	if lastErr != nil {
		status.LastError = UserMessage(lastErr)
	}
	return &types.SessionProjection{
		ID:            s.id,
		Configuration: snapshot,
		Quote:         quote,
		Generation:    status,
		Metadata:      meta,
	}, nil
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = s.now().UTC()
}
