package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Audience tags the shoppers a garment type is offered to.
type Audience string

const (
	AudienceMen   Audience = "men"
	AudienceWomen Audience = "women"
	AudienceKids  Audience = "kids"
)

// ErrNotFound is returned by catalog lookups for unknown identifiers.
var ErrNotFound = errors.New("catalog entry not found")

// GarmentType is a catalog entry for a base garment.
type GarmentType struct {
	ID        string
	Label     string
	BasePrice int64
	Audiences []Audience
}

// AppliesTo reports whether the garment is offered to the audience.
func (g GarmentType) AppliesTo(audience Audience) bool {
	for _, a := range g.Audiences {
		if a == audience {
			return true
		}
	}
	return false
}

// FabricOption is a catalog fabric with its price multiplier.
type FabricOption struct {
	ID              string
	Label           string
	PriceMultiplier decimal.Decimal
}

// SizeOption is a catalog size with its price multiplier.
type SizeOption struct {
	ID              string
	Label           string
	PriceMultiplier decimal.Decimal
}

// ColorSwatch is one entry of the fixed palette.
type ColorSwatch struct {
	Hex   string
	Label string
}

// Catalog holds the immutable reference tables consulted for validation and pricing.
type Catalog struct {
	garments []GarmentType
	fabrics  []FabricOption
	sizes    []SizeOption
	palette  []ColorSwatch

	DefaultGarmentType string
	DefaultFabric      string
	DefaultSize        string
	DefaultColor       string
}

// NewCatalog builds a catalog from the given tables. The first entry of each
// table becomes the baseline unless overridden afterwards.
func NewCatalog(garments []GarmentType, fabrics []FabricOption, sizes []SizeOption, palette []ColorSwatch) *Catalog {
	c := &Catalog{
		garments: cloneGarments(garments),
		fabrics:  append([]FabricOption{}, fabrics...),
		sizes:    append([]SizeOption{}, sizes...),
		palette:  append([]ColorSwatch{}, palette...),
	}
	if len(c.garments) > 0 {
		c.DefaultGarmentType = c.garments[0].ID
	}
	if len(c.fabrics) > 0 {
		c.DefaultFabric = c.fabrics[0].ID
	}
	if len(c.sizes) > 0 {
		c.DefaultSize = c.sizes[0].ID
	}
	if len(c.palette) > 0 {
		c.DefaultColor = c.palette[0].Hex
	}
	return c
}

// DefaultCatalog returns the studio's garment, fabric, size and color tables.
func DefaultCatalog() *Catalog {
	c := NewCatalog(
		[]GarmentType{
			{ID: "t-shirt", Label: "T-Shirt", BasePrice: 899, Audiences: []Audience{AudienceMen, AudienceWomen, AudienceKids}},
			{ID: "hoodie", Label: "Hoodie", BasePrice: 1499, Audiences: []Audience{AudienceMen, AudienceWomen, AudienceKids}},
			{ID: "dress", Label: "Dress", BasePrice: 1999, Audiences: []Audience{AudienceWomen, AudienceKids}},
			{ID: "shirt", Label: "Shirt", BasePrice: 1299, Audiences: []Audience{AudienceMen, AudienceWomen}},
		},
		[]FabricOption{
			{ID: "cotton", Label: "Cotton", PriceMultiplier: decimal.NewFromInt(1)},
			{ID: "organic-cotton", Label: "Organic Cotton", PriceMultiplier: decimal.RequireFromString("1.2")},
			{ID: "polyester", Label: "Polyester", PriceMultiplier: decimal.RequireFromString("0.9")},
			{ID: "linen", Label: "Linen", PriceMultiplier: decimal.RequireFromString("1.4")},
			{ID: "silk-blend", Label: "Silk Blend", PriceMultiplier: decimal.RequireFromString("1.8")},
		},
		[]SizeOption{
			{ID: "XS", Label: "Extra Small", PriceMultiplier: decimal.NewFromInt(1)},
			{ID: "S", Label: "Small", PriceMultiplier: decimal.NewFromInt(1)},
			{ID: "M", Label: "Medium", PriceMultiplier: decimal.NewFromInt(1)},
			{ID: "L", Label: "Large", PriceMultiplier: decimal.NewFromInt(1)},
			{ID: "XL", Label: "Extra Large", PriceMultiplier: decimal.RequireFromString("1.1")},
			{ID: "XXL", Label: "2X Large", PriceMultiplier: decimal.RequireFromString("1.2")},
		},
		[]ColorSwatch{
			{Hex: "#FF6B9D", Label: "Pink"},
			{Hex: "#A855F7", Label: "Purple"},
			{Hex: "#000000", Label: "Black"},
			{Hex: "#FFFFFF", Label: "White"},
			{Hex: "#3B82F6", Label: "Blue"},
			{Hex: "#10B981", Label: "Green"},
		},
	)
	c.DefaultSize = "M"
	return c
}

// GarmentType looks up a garment by id or label.
func (c *Catalog) GarmentType(id string) (GarmentType, error) {
	key := normalizeKey(id)
	for _, g := range c.garments {
		if g.ID == key || normalizeKey(g.Label) == key {
			return cloneGarment(g), nil
		}
	}
	return GarmentType{}, ErrNotFound
}

// Fabric looks up a fabric by id or label.
func (c *Catalog) Fabric(id string) (FabricOption, error) {
	key := normalizeKey(id)
	for _, f := range c.fabrics {
		if f.ID == key || normalizeKey(f.Label) == key {
			return f, nil
		}
	}
	return FabricOption{}, ErrNotFound
}

// Size looks up a size by id or label. Size ids are upper-case.
func (c *Catalog) Size(id string) (SizeOption, error) {
	key := normalizeKey(id)
	for _, s := range c.sizes {
		if strings.ToLower(s.ID) == key || normalizeKey(s.Label) == key {
			return s, nil
		}
	}
	return SizeOption{}, ErrNotFound
}

// GarmentTypes lists every garment in catalog order.
func (c *Catalog) GarmentTypes() []GarmentType {
	return cloneGarments(c.garments)
}

// GarmentTypesFor lists the garments offered to an audience. An empty audience
// returns the whole table.
func (c *Catalog) GarmentTypesFor(audience Audience) []GarmentType {
	if audience == "" {
		return c.GarmentTypes()
	}
	var out []GarmentType
	for _, g := range c.garments {
		if g.AppliesTo(audience) {
			out = append(out, cloneGarment(g))
		}
	}
	return out
}

func (c *Catalog) Fabrics() []FabricOption { return append([]FabricOption{}, c.fabrics...) }

func (c *Catalog) Sizes() []SizeOption { return append([]SizeOption{}, c.sizes...) }

func (c *Catalog) Palette() []ColorSwatch { return append([]ColorSwatch{}, c.palette...) }

// ParseAudience accepts men/women/kids in any case; anything else is rejected.
func ParseAudience(raw string) (Audience, bool) {
	switch Audience(strings.ToLower(strings.TrimSpace(raw))) {
	case AudienceMen:
		return AudienceMen, true
	case AudienceWomen:
		return AudienceWomen, true
	case AudienceKids:
		return AudienceKids, true
	default:
		return "", false
	}
}

// normalizeKey folds "Silk Blend", " silk_blend " and "silk-blend" onto one key.
func normalizeKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "_", "-")
	return strings.Join(strings.Fields(key), "-")
}

func cloneGarment(g GarmentType) GarmentType {
	g.Audiences = append([]Audience{}, g.Audiences...)
	return g
}

func cloneGarments(src []GarmentType) []GarmentType {
	out := make([]GarmentType, 0, len(src))
	for _, g := range src {
		out = append(out, cloneGarment(g))
	}
	return out
}
