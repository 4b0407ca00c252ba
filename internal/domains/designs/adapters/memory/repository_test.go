package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
)

func savedDesign(t *testing.T, id, owner, garment string, at time.Time) *domain.SavedDesign {
	t.Helper()
	cfg := domain.NewConfiguration(domain.DefaultCatalog())
	require.NoError(t, cfg.SetGarmentType(garment))
	design, err := domain.NewSavedDesign(cfg.Snapshot(), owner, at)
	require.NoError(t, err)
	design.ID = id
	return design
}

func TestRepository_InsertOnly(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	_, err := repo.Insert(ctx, savedDesign(t, "a", "owner", "hoodie", at))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, savedDesign(t, "a", "owner", "dress", at))
	require.ErrorIs(t, err, ErrDuplicateID)

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "hoodie", got.GarmentType)
	require.Equal(t, int64(1499), got.Price)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListByOwner(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	for _, d := range []*domain.SavedDesign{
		savedDesign(t, "1", "owner", "shirt", at),
		savedDesign(t, "2", "owner", "dress", at.Add(time.Minute)),
		savedDesign(t, "3", "someone-else", "dress", at),
	} {
		_, err := repo.Insert(ctx, d)
		require.NoError(t, err)
	}

	all, err := repo.ListByOwner(ctx, "owner", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "2", all[0].ID)

	men, err := repo.ListByOwner(ctx, "owner", domain.AudienceMen)
	require.NoError(t, err)
	require.Len(t, men, 1)
	require.Equal(t, "1", men[0].ID)
}

func TestUploadStore_ReturnsDataURL(t *testing.T) {
	store := NewUploadStore()
	data := []byte("abc")
	ref, err := store.Put(context.Background(), "owner", "me.png", "image/png", data)
	require.NoError(t, err)
	data[0] = 'x'
	require.Equal(t, "data:image/png;base64,YWJj", ref)
}
