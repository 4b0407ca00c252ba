package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrMissingOwner = errors.New("saved design requires an owner")

// SavedDesign is the immutable record written on each save. It captures the
// configuration and its derived price as they were at GeneratedAt.
type SavedDesign struct {
	ID                   string
	OwnerID              string
	GarmentType          string
	Audiences            []Audience
	Fabric               string
	Size                 string
	Color                string
	Text                 string
	UploadedImageRef     string
	GeneratedArtifactRef string
	Price                int64
	GeneratedAt          time.Time
}

// NewSavedDesign snapshots cfg for owner. The caller assigns the id.
func NewSavedDesign(cfg Configuration, ownerID string, at time.Time) (*SavedDesign, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrMissingOwner
	}
	quote, err := QuoteFor(cfg)
	if err != nil {
		return nil, err
	}
	garment, _ := cfg.catalog.GarmentType(cfg.GarmentType)
	return &SavedDesign{
		OwnerID:              ownerID,
		GarmentType:          cfg.GarmentType,
		Audiences:            append([]Audience{}, garment.Audiences...),
		Fabric:               cfg.Fabric,
		Size:                 cfg.Size,
		Color:                cfg.Color,
		Text:                 cfg.Text,
		UploadedImageRef:     cfg.UploadedImageRef,
		GeneratedArtifactRef: cfg.GeneratedArtifactRef,
		Price:                quote.Total,
		GeneratedAt:          at.UTC(),
	}, nil
}

// Clone returns a deep copy.
func (d *SavedDesign) Clone() *SavedDesign {
	if d == nil {
		return nil
	}
	copy := *d
	copy.Audiences = append([]Audience{}, d.Audiences...)
	return &copy
}

// OfferedTo reports whether the saved garment belongs to an audience tab.
func (d *SavedDesign) OfferedTo(audience Audience) bool {
	if audience == "" {
		return true
	}
	for _, a := range d.Audiences {
		if a == audience {
			return true
		}
	}
	return false
}
