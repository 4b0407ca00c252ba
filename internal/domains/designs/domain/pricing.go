package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrUnpricedConfiguration means a configuration references entries its catalog
// does not hold. Configurations built with NewConfiguration never hit it.
var ErrUnpricedConfiguration = errors.New("configuration cannot be priced")

// Quote is the price of a configuration together with the factors it came from.
type Quote struct {
	BasePrice        int64
	FabricMultiplier decimal.Decimal
	SizeMultiplier   decimal.Decimal
	Total            int64
}

// QuoteFor derives the price of cfg from its catalog. Multipliers compound and
// the product is rounded half-up to a whole currency unit. Nothing is cached.
func QuoteFor(cfg Configuration) (Quote, error) {
	if cfg.catalog == nil {
		return Quote{}, fmt.Errorf("%w: no catalog attached", ErrUnpricedConfiguration)
	}
	garment, err := cfg.catalog.GarmentType(cfg.GarmentType)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: garment type %q", ErrUnpricedConfiguration, cfg.GarmentType)
	}
	fabric, err := cfg.catalog.Fabric(cfg.Fabric)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: fabric %q", ErrUnpricedConfiguration, cfg.Fabric)
	}
	size, err := cfg.catalog.Size(cfg.Size)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: size %q", ErrUnpricedConfiguration, cfg.Size)
	}
	return Quote{
		BasePrice:        garment.BasePrice,
		FabricMultiplier: fabric.PriceMultiplier,
		SizeMultiplier:   size.PriceMultiplier,
		Total:            roundPrice(garment.BasePrice, fabric.PriceMultiplier, size.PriceMultiplier),
	}, nil
}

// Price is QuoteFor without the breakdown.
func Price(cfg Configuration) (int64, error) {
	q, err := QuoteFor(cfg)
	if err != nil {
		return 0, err
	}
	return q.Total, nil
}

func roundPrice(base int64, fabric, size decimal.Decimal) int64 {
	// decimal.Round is half away from zero, which is half-up for positive prices.
	return decimal.NewFromInt(base).Mul(fabric).Mul(size).Round(0).IntPart()
}
