package ports

import (
	"context"

	"github.com/Apurer/garment-studio/internal/domains/designs/application/types"
	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
)

// Service exposes design-session use cases to adapters.
type Service interface {
	Catalog(ctx context.Context, audience domain.Audience) (*types.CatalogView, error)
	StartSession(ctx context.Context, seed *domain.ProductSnapshot) (*types.SessionProjection, error)
	GetSession(ctx context.Context, sessionID string) (*types.SessionProjection, error)
	UpdateConfiguration(ctx context.Context, sessionID string, patch types.ConfigurationPatch) (*types.SessionProjection, error)
	UploadPhoto(ctx context.Context, input types.UploadPhotoInput) (*types.SessionProjection, error)
	Generate(ctx context.Context, sessionID string, mode domain.GenerationMode) (*types.SessionProjection, error)
	SaveDesign(ctx context.Context, sessionID string) (*domain.SavedDesign, error)
	EndSession(ctx context.Context, sessionID string) error
	GetSavedDesign(ctx context.Context, designID string) (*domain.SavedDesign, error)
	ListSavedDesigns(ctx context.Context, audience domain.Audience) ([]*domain.SavedDesign, error)
}
