package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
)

var _ ports.Repository = (*Repository)(nil)

// ErrDuplicateID is returned when an insert reuses an existing id.
var ErrDuplicateID = errors.New("saved design id already exists")

// Repository is an in-memory saved-design store for development and tests.
type Repository struct {
	mu      sync.RWMutex
	designs map[string]*domain.SavedDesign
}

func NewRepository() *Repository {
	return &Repository{designs: map[string]*domain.SavedDesign{}}
}

func (r *Repository) Insert(_ context.Context, design *domain.SavedDesign) (*domain.SavedDesign, error) {
	if design == nil {
		return nil, errors.New("saved design is nil")
	}
	if design.ID == "" {
		return nil, errors.New("saved design id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.designs[design.ID]; exists {
		return nil, ErrDuplicateID
	}
	r.designs[design.ID] = design.Clone()
	return design.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.SavedDesign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	design, ok := r.designs[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return design.Clone(), nil
}

func (r *Repository) ListByOwner(_ context.Context, ownerID string, audience domain.Audience) ([]*domain.SavedDesign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.SavedDesign, 0)
	for _, design := range r.designs {
		if design.OwnerID == ownerID && design.OfferedTo(audience) {
			list = append(list, design.Clone())
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].GeneratedAt.Equal(list[j].GeneratedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].GeneratedAt.After(list[j].GeneratedAt)
	})
	return list, nil
}
