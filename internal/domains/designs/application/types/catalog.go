package types

import "github.com/Apurer/garment-studio/internal/domains/designs/domain"

// CatalogView is the catalog as offered to one audience tab.
type CatalogView struct {
	Audience     domain.Audience
	GarmentTypes []domain.GarmentType
	Fabrics      []domain.FabricOption
	Sizes        []domain.SizeOption
	Palette      []domain.ColorSwatch
	Defaults     CatalogDefaults
}

// CatalogDefaults are the selections a fresh configuration starts with.
type CatalogDefaults struct {
	GarmentType string
	Fabric      string
	Size        string
	Color       string
}

// NewCatalogView filters the garment table by audience and copies the rest.
func NewCatalogView(catalog *domain.Catalog, audience domain.Audience) *CatalogView {
	return &CatalogView{
		Audience:     audience,
		GarmentTypes: catalog.GarmentTypesFor(audience),
		Fabrics:      catalog.Fabrics(),
		Sizes:        catalog.Sizes(),
		Palette:      catalog.Palette(),
		Defaults: CatalogDefaults{
			GarmentType: catalog.DefaultGarmentType,
			Fabric:      catalog.DefaultFabric,
			Size:        catalog.DefaultSize,
			Color:       catalog.DefaultColor,
		},
	}
}
