package imagegen

import (
	"context"
	"errors"

	imagegenclient "github.com/Apurer/garment-studio/internal/clients/http/imagegen"
	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
)

// Generator implements the image-generation port over the HTTP client.
type Generator struct {
	client *imagegenclient.Client
}

func NewGenerator(client *imagegenclient.Client) *Generator {
	return &Generator{client: client}
}

func (g *Generator) Generate(ctx context.Context, req domain.GenerationRequest) (*ports.GenerationResult, error) {
	if g == nil || g.client == nil {
		return nil, errors.New("image generator not configured")
	}
	resp, err := g.client.Generate(ctx, ToPayload(req))
	if err != nil {
		return nil, ToFailure(err)
	}
	return &ports.GenerationResult{ImageURL: resp.ImageURL}, nil
}

var _ ports.ImageGenerator = (*Generator)(nil)
