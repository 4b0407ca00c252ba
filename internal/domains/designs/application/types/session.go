package types

import (
	"time"

	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
)

// SessionMetadata captures bookkeeping timestamps of a design session.
type SessionMetadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GenerationStatus reports where the session's generation lifecycle stands.
// LastOutcome is empty until a first call completes.
type GenerationStatus struct {
	State       domain.GenerationState
	LastOutcome domain.GenerationState
	LastError   string
}

// SessionProjection is a read model of one design session. Configuration is a
// detached snapshot; mutating it does not affect the session.
type SessionProjection struct {
	ID            string
	Configuration domain.Configuration
	Quote         domain.Quote
	Generation    GenerationStatus
	Metadata      SessionMetadata
}

// ConfigurationPatch carries the fields a shopper changed. Nil fields are left as they are.
type ConfigurationPatch struct {
	GarmentType *string
	Fabric      *string
	Size        *string
	Color       *string
	Text        *string
	Prompt      *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ConfigurationPatch) IsEmpty() bool {
	return p.GarmentType == nil && p.Fabric == nil && p.Size == nil &&
		p.Color == nil && p.Text == nil && p.Prompt == nil
}

// UploadPhotoInput is a shopper photo destined for try-on previews.
type UploadPhotoInput struct {
	SessionID   string
	Filename    string
	ContentType string
	Data        []byte
}
