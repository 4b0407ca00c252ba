package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/garment-studio/internal/domains/designs/adapters/identity"
	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
	apierrors "github.com/Apurer/garment-studio/internal/shared/errors"
)

// TokenVerifier turns a bearer token into an identity.
type TokenVerifier interface {
	Verify(raw string) (*ports.Identity, error)
}

// Authenticate attaches the caller's identity when a bearer token is present.
// Anonymous requests pass through; a bad token is rejected with 401.
func Authenticate(verifier TokenVerifier, responder *apierrors.Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || verifier == nil {
			c.Next()
			return
		}
		user, err := verifier.Verify(header)
		if err != nil {
			responder.Respond(c, apierrors.ErrUnauthorized.WithDetail("invalid or expired token"))
			return
		}
		c.Request = c.Request.WithContext(identity.WithIdentity(c.Request.Context(), user))
		c.Next()
	}
}
