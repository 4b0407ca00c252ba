package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/garment-studio/internal/domains/designs/application/types"
	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
)

// Service orchestrates design-session use cases. Sessions live in memory and
// end when the shopper leaves or the sweeper drops them.
type Service struct {
	catalog    *domain.Catalog
	generator  ports.ImageGenerator
	repo       ports.Repository
	identities ports.IdentityProvider
	uploads    ports.UploadStore
	persister  *Persister
	now        func() time.Time
	newID      func() string

	mu       sync.RWMutex
	sessions map[string]*Session
}

type Option func(*Service)

// WithUploadStore enables photo uploads.
func WithUploadStore(store ports.UploadStore) Option {
	return func(s *Service) {
		s.uploads = store
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the design service with its collaborators.
func NewService(catalog *domain.Catalog, generator ports.ImageGenerator, repo ports.Repository, identities ports.IdentityProvider, opts ...Option) *Service {
	if catalog == nil {
		catalog = domain.DefaultCatalog()
	}
	s := &Service{
		catalog:    catalog,
		generator:  generator,
		repo:       repo,
		identities: identities,
		now:        time.Now,
		newID:      uuid.NewString,
		sessions:   map[string]*Session{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.persister = NewPersister(repo)
	s.persister.now = s.now
	return s
}

// Catalog lists the tables offered to an audience; an empty audience lists everything.
func (s *Service) Catalog(_ context.Context, audience domain.Audience) (*types.CatalogView, error) {
	return types.NewCatalogView(s.catalog, audience), nil
}

// StartSession creates a configuration on the catalog defaults, optionally seeded from a product.
func (s *Service) StartSession(_ context.Context, seed *domain.ProductSnapshot) (*types.SessionProjection, error) {
	session := NewSession(s.newID(), s.catalog, s.generator, s.now)
	if seed != nil {
		if err := session.Update(func(cfg *domain.Configuration) error {
			return cfg.SeedFromProduct(*seed)
		}); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	s.sessions[session.ID()] = session
	s.mu.Unlock()
	return session.Projection()
}

func (s *Service) GetSession(_ context.Context, sessionID string) (*types.SessionProjection, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return session.Projection()
}

// UpdateConfiguration applies a patch atomically.
func (s *Service) UpdateConfiguration(_ context.Context, sessionID string, patch types.ConfigurationPatch) (*types.SessionProjection, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: configuration patch changes nothing", ErrValidation)
	}
	if err := session.Apply(patch); err != nil {
		return nil, err
	}
	return session.Projection()
}

// UploadPhoto stores a shopper photo and attaches its reference to the session.
func (s *Service) UploadPhoto(ctx context.Context, input types.UploadPhotoInput) (*types.SessionProjection, error) {
	session, err := s.session(input.SessionID)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateUpload(input.ContentType, len(input.Data)); err != nil {
		return nil, mapError(err)
	}
	if s.uploads == nil {
		return nil, fmt.Errorf("%w: upload store not configured", ErrPersistence)
	}
	owner := session.ID()
	if identity, ok := s.currentUser(ctx); ok {
		owner = identity.UserID
	}
	ref, err := s.uploads.Put(ctx, owner, input.Filename, input.ContentType, input.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: upload photo: %w", ErrPersistence, err)
	}
	if err := session.Update(func(cfg *domain.Configuration) error {
		return cfg.AttachUploadedImage(ref)
	}); err != nil {
		return nil, err
	}
	return session.Projection()
}

// Generate asks the collaborator for artwork. The projection is returned only
// on success; failures leave the configuration as it was.
func (s *Service) Generate(ctx context.Context, sessionID string, mode domain.GenerationMode) (*types.SessionProjection, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Generate(ctx, mode); err != nil {
		return nil, err
	}
	return session.Projection()
}

// SaveDesign persists the session's current configuration for the signed-in user.
func (s *Service) SaveDesign(ctx context.Context, sessionID string) (*domain.SavedDesign, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	identity, _ := s.currentUser(ctx)
	return s.persister.Save(ctx, session.Snapshot(), identity)
}

// EndSession destroys the session's configuration.
func (s *Service) EndSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return sessionNotFound(sessionID)
	}
	delete(s.sessions, sessionID)
	return nil
}

// GetSavedDesign loads one of the caller's designs. Other owners' designs read as not found.
func (s *Service) GetSavedDesign(ctx context.Context, designID string) (*domain.SavedDesign, error) {
	identity, ok := s.currentUser(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	designID = strings.TrimSpace(designID)
	if _, err := uuid.Parse(designID); err != nil {
		return nil, designNotFound(designID)
	}
	design, err := s.repo.GetByID(ctx, designID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, designNotFound(designID)
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if design.OwnerID != identity.UserID {
		return nil, designNotFound(designID)
	}
	return design, nil
}

// ListSavedDesigns returns the caller's gallery, optionally for one audience tab.
func (s *Service) ListSavedDesigns(ctx context.Context, audience domain.Audience) ([]*domain.SavedDesign, error) {
	identity, ok := s.currentUser(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	designs, err := s.repo.ListByOwner(ctx, identity.UserID, audience)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return designs, nil
}

// SweepIdle ends sessions untouched for longer than maxIdle and reports how
// many. Sessions with a generation in flight are kept.
func (s *Service) SweepIdle(_ context.Context, maxIdle time.Duration) int {
	cutoff := s.now().UTC().Add(-maxIdle)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if session.Generating() {
			continue
		}
		if session.LastTouched().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls SweepIdle every interval until ctx is done.
func (s *Service) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) error {
	if interval <= 0 || maxIdle <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.SweepIdle(ctx, maxIdle)
		}
	}
}

func (s *Service) session(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id = strings.TrimSpace(id)
	session, ok := s.sessions[id]
	if !ok {
		return nil, sessionNotFound(id)
	}
	return session, nil
}

func (s *Service) currentUser(ctx context.Context) (*ports.Identity, bool) {
	if s.identities == nil {
		return nil, false
	}
	identity, ok := s.identities.CurrentUser(ctx)
	if !ok || identity == nil || identity.UserID == "" {
		return nil, false
	}
	return identity, true
}

var _ ports.Service = (*Service)(nil)
