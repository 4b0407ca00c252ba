package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the design studio schema.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&savedDesignRecord{})
}

// savedDesignRecord mirrors the designs Postgres adapter.
type savedDesignRecord struct {
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

func (savedDesignRecord) TableName() string { return "saved_designs" }
