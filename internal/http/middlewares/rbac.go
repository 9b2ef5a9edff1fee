package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/geocoder89/toolhub/internal/auth"
)

// RequireAdmin authenticates the request (unless RequireAuth already did)
// and rejects non-admins with 403.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFromContext(c)
		if !ok {
			var err error
			p, err = m.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
			if err != nil {
				abortAuthError(c, err)
				return
			}
			setPrincipal(c, p)
		}

		if !p.IsAdmin {
			abortAuthError(c, auth.ErrForbidden)
			return
		}
		c.Next()
	}
}
