package mapper

import (
	"time"

	"github.com/Apurer/garment-studio/internal/domains/designs/application/types"
	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
)

// ProductSeed is the product a shopper was browsing when opening the studio.
type ProductSeed struct {
	Type   string `json:"type" binding:"required"`
	Color  string `json:"color"`
	Fabric string `json:"fabric"`
}

// StartSessionRequest optionally seeds a new session from a product.
type StartSessionRequest struct {
	Product *ProductSeed `json:"product,omitempty"`
}

// ConfigurationPatch mirrors the PATCH body; absent fields are left unchanged.
type ConfigurationPatch struct {
	GarmentType *string `json:"garmentType,omitempty"`
	Fabric      *string `json:"fabric,omitempty"`
	Size        *string `json:"size,omitempty"`
	Color       *string `json:"color,omitempty"`
	Text        *string `json:"text,omitempty"`
	Prompt      *string `json:"prompt,omitempty"`
}

// GenerateRequest selects the generation mode.
type GenerateRequest struct {
	Mode string `json:"mode" binding:"required"`
}

type Configuration struct {
	GarmentType          string `json:"garmentType"`
	Fabric               string `json:"fabric"`
	Size                 string `json:"size"`
	Color                string `json:"color"`
	Text                 string `json:"text"`
	Prompt               string `json:"prompt"`
	UploadedImageRef     string `json:"uploadedImageRef,omitempty"`
	GeneratedArtifactRef string `json:"generatedArtifactRef,omitempty"`
}

// Quote exposes the price breakdown. Multipliers are decimal strings.
type Quote struct {
	BasePrice        int64  `json:"basePrice"`
	FabricMultiplier string `json:"fabricMultiplier"`
	SizeMultiplier   string `json:"sizeMultiplier"`
	Total            int64  `json:"total"`
}

type Generation struct {
	State       string `json:"state"`
	LastOutcome string `json:"lastOutcome,omitempty"`
	LastError   string `json:"lastError,omitempty"`
}

// Session is the HTTP representation of a design session.
type Session struct {
	ID            string        `json:"id"`
	Configuration Configuration `json:"configuration"`
	Quote         Quote         `json:"quote"`
	Generation    Generation    `json:"generation"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// SavedDesign is the HTTP representation of a persisted design.
type SavedDesign struct {
	ID                   string    `json:"id"`
	GarmentType          string    `json:"garmentType"`
	Audiences            []string  `json:"audiences"`
	Fabric               string    `json:"fabric"`
	Size                 string    `json:"size"`
	Color                string    `json:"color"`
	Text                 string    `json:"text"`
	UploadedImageRef     string    `json:"uploadedImageRef,omitempty"`
	GeneratedArtifactRef string    `json:"generatedArtifactRef,omitempty"`
	Price                int64     `json:"price"`
	GeneratedAt          time.Time `json:"generatedAt"`
}

type GarmentType struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	BasePrice int64    `json:"basePrice"`
	Audiences []string `json:"audiences"`
}

// Option is a fabric or size entry.
type Option struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	PriceMultiplier string `json:"priceMultiplier"`
}

type Swatch struct {
	Hex   string `json:"hex"`
	Label string `json:"label"`
}

type CatalogDefaults struct {
	GarmentType string `json:"garmentType"`
	Fabric      string `json:"fabric"`
	Size        string `json:"size"`
	Color       string `json:"color"`
}

type Catalog struct {
	Audience     string          `json:"audience,omitempty"`
	GarmentTypes []GarmentType   `json:"garmentTypes"`
	Fabrics      []Option        `json:"fabrics"`
	Sizes        []Option        `json:"sizes"`
	Palette      []Swatch        `json:"palette"`
	Defaults     CatalogDefaults `json:"defaults"`
}

// ToProductSnapshot maps the optional seed; nil means catalog defaults.
func ToProductSnapshot(req StartSessionRequest) *domain.ProductSnapshot {
	if req.Product == nil {
		return nil
	}
	return &domain.ProductSnapshot{Type: req.Product.Type, Color: req.Product.Color, Fabric: req.Product.Fabric}
}

func ToConfigurationPatch(patch ConfigurationPatch) types.ConfigurationPatch {
	return types.ConfigurationPatch{
		GarmentType: patch.GarmentType,
		Fabric:      patch.Fabric,
		Size:        patch.Size,
		Color:       patch.Color,
		Text:        patch.Text,
		Prompt:      patch.Prompt,
	}
}

// FromSession maps a session projection into its transport form.
func FromSession(p *types.SessionProjection) Session {
	if p == nil {
		return Session{}
	}
	cfg := p.Configuration
	return Session{
		ID: p.ID,
		Configuration: Configuration{
			GarmentType:          cfg.GarmentType,
			Fabric:               cfg.Fabric,
			Size:                 cfg.Size,
			Color:                cfg.Color,
			Text:                 cfg.Text,
			Prompt:               cfg.PromptText,
			UploadedImageRef:     cfg.UploadedImageRef,
			GeneratedArtifactRef: cfg.GeneratedArtifactRef,
		},
		Quote: Quote{
			BasePrice:        p.Quote.BasePrice,
			FabricMultiplier: p.Quote.FabricMultiplier.String(),
			SizeMultiplier:   p.Quote.SizeMultiplier.String(),
			Total:            p.Quote.Total,
		},
		Generation: Generation{
			State:       string(p.Generation.State),
			LastOutcome: string(p.Generation.LastOutcome),
			LastError:   p.Generation.LastError,
		},
		CreatedAt: p.Metadata.CreatedAt,
		UpdatedAt: p.Metadata.UpdatedAt,
	}
}

func FromSavedDesign(d *domain.SavedDesign) SavedDesign {
	if d == nil {
		return SavedDesign{}
	}
	return SavedDesign{
		ID:                   d.ID,
		GarmentType:          d.GarmentType,
		Audiences:            audienceStrings(d.Audiences),
		Fabric:               d.Fabric,
		Size:                 d.Size,
		Color:                d.Color,
		Text:                 d.Text,
		UploadedImageRef:     d.UploadedImageRef,
		GeneratedArtifactRef: d.GeneratedArtifactRef,
		Price:                d.Price,
		GeneratedAt:          d.GeneratedAt,
	}
}

func FromSavedDesignList(designs []*domain.SavedDesign) []SavedDesign {
	out := make([]SavedDesign, 0, len(designs))
	for _, d := range designs {
		out = append(out, FromSavedDesign(d))
	}
	return out
}

func FromCatalog(view *types.CatalogView) Catalog {
	if view == nil {
		return Catalog{}
	}
	out := Catalog{
		Audience:     string(view.Audience),
		GarmentTypes: make([]GarmentType, 0, len(view.GarmentTypes)),
		Fabrics:      make([]Option, 0, len(view.Fabrics)),
		Sizes:        make([]Option, 0, len(view.Sizes)),
		Palette:      make([]Swatch, 0, len(view.Palette)),
		Defaults: CatalogDefaults{
			GarmentType: view.Defaults.GarmentType,
			Fabric:      view.Defaults.Fabric,
			Size:        view.Defaults.Size,
			Color:       view.Defaults.Color,
		},
	}
	for _, g := range view.GarmentTypes {
		out.GarmentTypes = append(out.GarmentTypes, GarmentType{ID: g.ID, Label: g.Label, BasePrice: g.BasePrice, Audiences: audienceStrings(g.Audiences)})
	}
	for _, f := range view.Fabrics {
		out.Fabrics = append(out.Fabrics, Option{ID: f.ID, Label: f.Label, PriceMultiplier: f.PriceMultiplier.String()})
	}
	for _, s := range view.Sizes {
		out.Sizes = append(out.Sizes, Option{ID: s.ID, Label: s.Label, PriceMultiplier: s.PriceMultiplier.String()})
	}
	for _, c := range view.Palette {
		out.Palette = append(out.Palette, Swatch{Hex: c.Hex, Label: c.Label})
	}
	return out
}

func audienceStrings(audiences []domain.Audience) []string {
	out := make([]string, 0, len(audiences))
	for _, a := range audiences {
		out = append(out, string(a))
	}
	return out
}
