package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists saved designs in PostgreSQL using GORM. Rows are insert-only.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&designRecord{})
	}
	return repo
}

// designRecord maps a saved design to a relational row.
type designRecord struct {
	ID                   string         `gorm:"primaryKey;column:id;type:uuid"`
	OwnerID              string         `gorm:"column:owner_id;index:idx_saved_designs_owner_generated"`
	GarmentType          string         `gorm:"column:garment_type;type:varchar(32)"`
	Audiences            pq.StringArray `gorm:"column:audiences;type:text[]"`
	Fabric               string         `gorm:"column:fabric;type:varchar(32)"`
	Size                 string         `gorm:"column:size;type:varchar(8)"`
	Color                string         `gorm:"column:color;type:varchar(7)"`
	Text                 string         `gorm:"column:text"`
	UploadedImageRef     string         `gorm:"column:uploaded_image_ref"`
	GeneratedArtifactRef string         `gorm:"column:generated_artifact_ref"`
	Price                int64          `gorm:"column:price"`
	GeneratedAt          time.Time      `gorm:"column:generated_at;index:idx_saved_designs_owner_generated"`
	CreatedAt            time.Time      `gorm:"column:created_at"`
}

func (designRecord) TableName() string { return "saved_designs" }

// Insert writes a new row; an existing id is a conflict, never an update.
func (r *Repository) Insert(ctx context.Context, design *domain.SavedDesign) (*domain.SavedDesign, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if design == nil {
		return nil, errors.New("saved design is nil")
	}
	record := toRecord(design)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches a saved design by identifier. Identifiers that are not
// UUIDs cannot match the id column and report ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.SavedDesign, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ports.ErrNotFound
	}
	var record designRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListByOwner returns the owner's designs newest first, optionally for one audience.
func (r *Repository) ListByOwner(ctx context.Context, ownerID string, audience domain.Audience) ([]*domain.SavedDesign, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if audience != "" {
		query = query.Where("? = ANY(audiences)", string(audience))
	}
	var records []designRecord
	if err := query.Order("generated_at DESC").Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	designs := make([]*domain.SavedDesign, 0, len(records))
	for i := range records {
		designs = append(designs, records[i].toDomain())
	}
	return designs, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres saved design repository not configured")
	}
	return nil
}

func toRecord(design *domain.SavedDesign) designRecord {
	audiences := make(pq.StringArray, 0, len(design.Audiences))
	for _, a := range design.Audiences {
		audiences = append(audiences, string(a))
	}
	return designRecord{
		ID:                   design.ID,
		OwnerID:              design.OwnerID,
		GarmentType:          design.GarmentType,
		Audiences:            audiences,
		Fabric:               design.Fabric,
		Size:                 design.Size,
		Color:                design.Color,
		Text:                 design.Text,
		UploadedImageRef:     design.UploadedImageRef,
		GeneratedArtifactRef: design.GeneratedArtifactRef,
		Price:                design.Price,
		GeneratedAt:          design.GeneratedAt.UTC(),
	}
}

func (r designRecord) toDomain() *domain.SavedDesign {
	audiences := make([]domain.Audience, 0, len(r.Audiences))
	for _, a := range r.Audiences {
		audiences = append(audiences, domain.Audience(a))
	}
	return &domain.SavedDesign{
		ID:                   r.ID,
		OwnerID:              r.OwnerID,
		GarmentType:          r.GarmentType,
		Audiences:            audiences,
		Fabric:               r.Fabric,
		Size:                 r.Size,
		Color:                r.Color,
		Text:                 r.Text,
		UploadedImageRef:     r.UploadedImageRef,
		GeneratedArtifactRef: r.GeneratedArtifactRef,
		Price:                r.Price,
		GeneratedAt:          r.GeneratedAt.UTC(),
	}
}
