package identity

import (
	"context"

	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
)

type contextKey struct{}

var _ ports.IdentityProvider = ContextProvider{}

// WithIdentity attaches an authenticated user to ctx.
func WithIdentity(ctx context.Context, identity *ports.Identity) context.Context {
	if identity == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, identity)
}

// ContextProvider reads the user placed on the request context by the auth middleware.
type ContextProvider struct{}

func (ContextProvider) CurrentUser(ctx context.Context) (*ports.Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(*ports.Identity)
	if !ok || identity == nil || identity.UserID == "" {
		return nil, false
	}
	return identity, true
}
