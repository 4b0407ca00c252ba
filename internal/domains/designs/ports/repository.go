package ports

import (
	"context"
	"errors"

	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
)

var ErrNotFound = errors.New("saved design not found")

// Repository stores saved designs. Every save is a new row; nothing is updated in place.
type Repository interface {
	Insert(ctx context.Context, design *domain.SavedDesign) (*domain.SavedDesign, error)
	GetByID(ctx context.Context, id string) (*domain.SavedDesign, error)
	// ListByOwner returns the owner's designs newest first. An empty audience matches all.
	ListByOwner(ctx context.Context, ownerID string, audience domain.Audience) ([]*domain.SavedDesign, error)
}
