package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"eventbook/pkg/auth"
	"eventbook/pkg/ctxkeys"
)

// Identity is the authenticated-identity marker attached to every
// request context. Zero value means unauthenticated.
type Identity struct {
	UserID        string
	Email         string
	Authenticated bool
}

// AuthGate inspects the Authorization header and attaches an Identity to
// the request context. It never rejects: a missing, malformed or invalid
// bearer token degrades to an unauthenticated identity and the request
// continues. Authorization decisions belong to the resolvers.
func AuthGate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		var identity Identity

		header := c.GetHeader("Authorization")
		if header != "" {
			parts := strings.Split(header, " ")
			if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
				if claims, err := auth.ValidateJWT(parts[1], secret); err == nil {
					identity = Identity{
						UserID:        claims.UserID,
						Email:         claims.Email,
						Authenticated: true,
					}
				}
			}
		}

		ctx := context.WithValue(c.Request.Context(), ctxkeys.KeyIdentity, identity)
		if identity.Authenticated {
			// Picked up by the request logging middleware.
			ctx = context.WithValue(ctx, ctxkeys.KeyUserID, identity.UserID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// IdentityFromContext extracts the Identity attached by AuthGate. The
// zero value is returned when the gate never ran.
func IdentityFromContext(ctx context.Context) Identity {
	if identity, ok := ctx.Value(ctxkeys.KeyIdentity).(Identity); ok {
		return identity
	}
	return Identity{}
}

// RequireAuth returns the Identity or ErrUnauthenticated when the
// context has no authenticated user.
func RequireAuth(ctx context.Context) (Identity, error) {
	identity := IdentityFromContext(ctx)
	if !identity.Authenticated {
		return Identity{}, auth.ErrUnauthenticated
	}
	return identity, nil
}
