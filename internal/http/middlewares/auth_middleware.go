package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/toolhub/internal/actorctx"
	"github.com/geocoder89/toolhub/internal/auth"
	"github.com/geocoder89/toolhub/internal/domain/user"
)

const userLookupTimeout = 2 * time.Second

// Keep these small so tests can fake them easily.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

// AuthMiddleware is the access guard. Every authenticated request
// re-resolves the token's subject against the user store, so the admin flag
// always reflects the current record rather than the one at issue time.
type AuthMiddleware struct {
	jwt   TokenVerifier
	users UserLookup
}

func NewAuthMiddleware(jwt TokenVerifier, users UserLookup) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, users: users}
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}

	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return raw, raw != ""
}

// Authenticate resolves an Authorization header to a Principal. Missing or
// bad credentials and unknown users yield auth.ErrUnauthorized; any other
// error is a store failure.
func (m *AuthMiddleware) Authenticate(ctx context.Context, header string) (auth.Principal, error) {
	raw, ok := bearerToken(header)
	if !ok {
		return auth.Principal{}, auth.ErrUnauthorized
	}

	claims, err := m.jwt.Verify(raw)
	if err != nil {
		return auth.Principal{}, fmt.Errorf("%w: %v", auth.ErrUnauthorized, err)
	}

	lookupCtx, cancel := context.WithTimeout(ctx, userLookupTimeout)
	defer cancel()

	u, err := m.users.GetByEmail(lookupCtx, claims.Subject)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return auth.Principal{}, auth.ErrUnauthorized
		}
		return auth.Principal{}, fmt.Errorf("resolve user: %w", err)
	}

	return auth.Principal{
		UserID:  u.ID,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
	}, nil
}

// AuthenticateAdmin is Authenticate plus the admin check.
func (m *AuthMiddleware) AuthenticateAdmin(ctx context.Context, header string) (auth.Principal, error) {
	p, err := m.Authenticate(ctx, header)
	if err != nil {
		return auth.Principal{}, err
	}
	if !p.IsAdmin {
		return p, auth.ErrForbidden
	}
	return p, nil
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := m.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			abortAuthError(c, err)
			return
		}

		setPrincipal(c, p)
		c.Next()
	}
}

func setPrincipal(c *gin.Context, p auth.Principal) {
	c.Set(CtxPrincipal, p)
	c.Request = c.Request.WithContext(actorctx.WithPrincipal(c.Request.Context(), p))
}

func abortAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrForbidden):
		abortWithError(c, http.StatusForbidden, "forbidden", "Admin access required")
	case errors.Is(err, auth.ErrUnauthorized):
		abortWithError(c, http.StatusUnauthorized, "unauthorized", "Missing, invalid or expired access token")
	default:
		abortWithError(c, http.StatusInternalServerError, "internal_error", "Could not authenticate request")
	}
}

// PrincipalFromContext returns the caller stashed by RequireAuth or
// RequireAdmin.
func PrincipalFromContext(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(CtxPrincipal)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok && p.UserID != ""
}

func UserIDFromContext(c *gin.Context) (string, bool) {
	p, ok := PrincipalFromContext(c)
	return p.UserID, ok
}
