package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
)

// Persister turns a configuration snapshot into a saved design for an
// authenticated owner. Each call inserts a new record.
type Persister struct {
	repo  ports.Repository
	now   func() time.Time
	newID func() string
}

func NewPersister(repo ports.Repository) *Persister {
	return &Persister{repo: repo, now: time.Now, newID: uuid.NewString}
}

// Save writes cfg for identity. Without an identity nothing is written.
func (p *Persister) Save(ctx context.Context, cfg domain.Configuration, identity *ports.Identity) (*domain.SavedDesign, error) {
	if identity == nil || identity.UserID == "" {
		return nil, ErrUnauthenticated
	}
	design, err := domain.NewSavedDesign(cfg, identity.UserID, p.now())
	if err != nil {
		if errors.Is(err, domain.ErrMissingOwner) {
			return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	design.ID = p.newID()
	if p.repo == nil {
		return nil, fmt.Errorf("%w: repository not configured", ErrPersistence)
	}
	saved, err := p.repo.Insert(ctx, design)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return saved, nil
}
