package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrInvalidSelection = errors.New("selection is not in the catalog")
	ErrInvalidColor     = errors.New("color must be a #RGB or #RRGGBB hex value")
	ErrEmptyImageRef    = errors.New("image reference is required")
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9A-F]{3}|[0-9A-F]{6})$`)

// ProductSnapshot is the catalog/browsing view used to seed a new configuration.
type ProductSnapshot struct {
	Type   string
	Color  string
	Fabric string
}

// Configuration is the shopper's current garment selection. Type, fabric and
// size always reference catalog entries; setters reject unknown ids without
// touching the previous value.
type Configuration struct {
	GarmentType          string
	Fabric               string
	Size                 string
	Color                string
	Text                 string
	UploadedImageRef     string
	GeneratedArtifactRef string
	PromptText           string

	catalog *Catalog
}

// NewConfiguration starts a configuration on the catalog baselines.
func NewConfiguration(catalog *Catalog) *Configuration {
	return &Configuration{
		GarmentType: catalog.DefaultGarmentType,
		Fabric:      catalog.DefaultFabric,
		Size:        catalog.DefaultSize,
		Color:       catalog.DefaultColor,
		catalog:     catalog,
	}
}

// Catalog exposes the tables the configuration validates against.
func (c *Configuration) Catalog() *Catalog {
	return c.catalog
}

func (c *Configuration) SetGarmentType(id string) error {
	g, err := c.catalog.GarmentType(id)
	if err != nil {
		return selectionError("garment type", id)
	}
	c.GarmentType = g.ID
	return nil
}

func (c *Configuration) SetFabric(id string) error {
	f, err := c.catalog.Fabric(id)
	if err != nil {
		return selectionError("fabric", id)
	}
	c.Fabric = f.ID
	return nil
}

func (c *Configuration) SetSize(id string) error {
	s, err := c.catalog.Size(id)
	if err != nil {
		return selectionError("size", id)
	}
	c.Size = s.ID
	return nil
}

// SetColor stores a hex color. Values outside the palette are allowed.
func (c *Configuration) SetColor(hex string) error {
	normalized, err := NormalizeColor(hex)
	if err != nil {
		return err
	}
	c.Color = normalized
	return nil
}

// SetText sets the overlay text; an empty string removes it.
func (c *Configuration) SetText(text string) {
	c.Text = text
}

// SetPrompt sets the AI design prompt; independent of the overlay text.
func (c *Configuration) SetPrompt(prompt string) {
	c.PromptText = prompt
}

// AttachUploadedImage records a successfully uploaded shopper photo.
func (c *Configuration) AttachUploadedImage(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return ErrEmptyImageRef
	}
	c.UploadedImageRef = ref
	return nil
}

// ApplyGeneratedArtifact replaces any previous generated preview.
func (c *Configuration) ApplyGeneratedArtifact(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return ErrEmptyImageRef
	}
	c.GeneratedArtifactRef = ref
	return nil
}

// SeedFromProduct overwrites type, color and fabric from a catalog product.
// Either all three are applied or none is.
func (c *Configuration) SeedFromProduct(product ProductSnapshot) error {
	g, err := c.catalog.GarmentType(product.Type)
	if err != nil {
		return selectionError("garment type", product.Type)
	}
	f, err := c.catalog.Fabric(product.Fabric)
	if err != nil {
		return selectionError("fabric", product.Fabric)
	}
	color, err := NormalizeColor(product.Color)
	if err != nil {
		return err
	}
	c.GarmentType = g.ID
	c.Fabric = f.ID
	c.Color = color
	return nil
}

// Snapshot returns a detached copy that shares the catalog but no mutable state.
func (c *Configuration) Snapshot() Configuration {
	return *c
}

// NormalizeColor upper-cases and validates a hex color.
func NormalizeColor(hex string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(hex))
	if !hexColorPattern.MatchString(normalized) {
		return "", fmt.Errorf("%w: %w: %q", ErrInvalidSelection, ErrInvalidColor, hex)
	}
	return normalized, nil
}

func selectionError(kind, id string) error {
	return fmt.Errorf("%w: unknown %s %q", ErrInvalidSelection, kind, id)
}
