package ports

import "context"

// Identity is the authenticated shopper.
type Identity struct {
	UserID string
	Email  string
}

// IdentityProvider resolves the current user, if any, for a request.
type IdentityProvider interface {
	CurrentUser(ctx context.Context) (*Identity, bool)
}
