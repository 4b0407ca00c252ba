package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfiguration_Defaults(t *testing.T) {
	cfg := NewConfiguration(DefaultCatalog())

	assert.Equal(t, "t-shirt", cfg.GarmentType)
	assert.Equal(t, "cotton", cfg.Fabric)
	assert.Equal(t, "M", cfg.Size)
	assert.Equal(t, "#FF6B9D", cfg.Color)
	assert.Empty(t, cfg.Text)
	assert.Empty(t, cfg.UploadedImageRef)
	assert.Empty(t, cfg.GeneratedArtifactRef)
}

func TestSetGarmentType_UnknownLeavesStateUnchanged(t *testing.T) {
	cfg := NewConfiguration(DefaultCatalog())
	require.NoError(t, cfg.SetGarmentType("hoodie"))

	err := cfg.SetGarmentType("kimono")
	require.ErrorIs(t, err, ErrInvalidSelection)
	require.Equal(t, "hoodie", cfg.GarmentType)
}

func TestSetFabricAndSize_RejectUnknownIDs(t *testing.T) {
	cfg := NewConfiguration(DefaultCatalog())

	require.ErrorIs(t, cfg.SetFabric("kevlar"), ErrInvalidSelection)
	require.ErrorIs(t, cfg.SetSize("XXXXL"), ErrInvalidSelection)
	require.Equal(t, "cotton", cfg.Fabric)
	require.Equal(t, "M", cfg.Size)
}

func TestSetters_NormalizeIDs(t *testing.T) {
	cfg := NewConfiguration(DefaultCatalog())

	require.NoError(t, cfg.SetFabric("Organic Cotton"))
	require.NoError(t, cfg.SetSize("xl"))
	require.NoError(t, cfg.SetGarmentType(" T-Shirt "))
	assert.Equal(t, "organic-cotton", cfg.Fabric)
	assert.Equal(t, "XL", cfg.Size)
	assert.Equal(t, "t-shirt", cfg.GarmentType)
}

func TestSetColor(t *testing.T) {
	cfg := NewConfiguration(DefaultCatalog())

	require.NoError(t, cfg.SetColor("#123abc"))
	assert.Equal(t, "#123ABC", cfg.Color)

	err := cfg.SetColor("purple")
	require.ErrorIs(t, err, ErrInvalidSelection)
	require.ErrorIs(t, err, ErrInvalidColor)
	assert.Equal(t, "#123ABC", cfg.Color)
}

func TestSeedFromProduct_NormalizesFabricAndKeepsOtherFields(t *testing.T) {
	cfg := NewConfiguration(DefaultCatalog())
	require.NoError(t, cfg.SetSize("L"))
	cfg.SetText("Hello")
	require.NoError(t, cfg.ApplyGeneratedArtifact("https://cdn.example.com/a.png"))

	err := cfg.SeedFromProduct(ProductSnapshot{Type: "dress", Color: "#A855F7", Fabric: "Silk Blend"})
	require.NoError(t, err)

	assert.Equal(t, "dress", cfg.GarmentType)
	assert.Equal(t, "#A855F7", cfg.Color)
	assert.Equal(t, "silk-blend", cfg.Fabric)
	assert.Equal(t, "L", cfg.Size)
	assert.Equal(t, "Hello", cfg.Text)
	assert.Equal(t, "https://cdn.example.com/a.png", cfg.GeneratedArtifactRef)
}

func TestSeedFromProduct_IsAtomic(t *testing.T) {
	cfg := NewConfiguration(DefaultCatalog())
	before := cfg.Snapshot()

	err := cfg.SeedFromProduct(ProductSnapshot{Type: "hoodie", Color: "#000000", Fabric: "velvet"})
	require.ErrorIs(t, err, ErrInvalidSelection)
	require.Equal(t, before, cfg.Snapshot())

	err = cfg.SeedFromProduct(ProductSnapshot{Type: "hoodie", Color: "not-a-color", Fabric: "linen"})
	require.ErrorIs(t, err, ErrInvalidSelection)
	require.Equal(t, before, cfg.Snapshot())
}

func TestApplyGeneratedArtifact_Replaces(t *testing.T) {
	cfg := NewConfiguration(DefaultCatalog())
	require.NoError(t, cfg.ApplyGeneratedArtifact("first"))
	require.NoError(t, cfg.ApplyGeneratedArtifact("second"))
	assert.Equal(t, "second", cfg.GeneratedArtifactRef)

	require.ErrorIs(t, cfg.ApplyGeneratedArtifact("  "), ErrEmptyImageRef)
	assert.Equal(t, "second", cfg.GeneratedArtifactRef)
}

func TestSnapshot_IsDetached(t *testing.T) {
	cfg := NewConfiguration(DefaultCatalog())
	snap := cfg.Snapshot()
	cfg.SetText("changed")
	assert.Empty(t, snap.Text)
}

func TestCatalog_GarmentTypesFor(t *testing.T) {
	catalog := DefaultCatalog()

	var men []string
	for _, g := range catalog.GarmentTypesFor(AudienceMen) {
		men = append(men, g.ID)
	}
	assert.Equal(t, []string{"t-shirt", "hoodie", "shirt"}, men)
	assert.Len(t, catalog.GarmentTypesFor(""), 4)

	_, err := catalog.GarmentType("kimono")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewGenerationRequest(t *testing.T) {
	cfg := NewConfiguration(DefaultCatalog())

	_, err := NewGenerationRequest(GenerationModeDesign, cfg.Snapshot())
	require.ErrorIs(t, err, ErrEmptyPrompt)
	_, err = NewGenerationRequest(GenerationModeTryOn, cfg.Snapshot())
	require.ErrorIs(t, err, ErrMissingUpload)

	cfg.SetPrompt("  neon tiger  ")
	req, err := NewGenerationRequest(GenerationModeDesign, cfg.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, "neon tiger", req.PromptText)
	assert.Equal(t, "t-shirt", req.GarmentTypeID)
	assert.Equal(t, "#FF6B9D", req.ColorHex)

	require.NoError(t, cfg.AttachUploadedImage("data:image/png;base64,AAAA"))
	req, err = NewGenerationRequest(GenerationModeTryOn, cfg.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", req.ImageRef)
}
