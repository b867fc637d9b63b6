package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dbrown13/home-harmony/internal/models"
	"github.com/dbrown13/home-harmony/internal/service"
)

const principalKey = "principal"

// CurrentUser resolves the session cookie into a principal when possible. A
// missing or invalid cookie is a normal anonymous request, never an error.
func CurrentUser(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(service.CookieName)
		if err == nil {
			if principal, ok := tokens.Verify(raw); ok {
				c.Set(principalKey, principal)
			}
		}
		c.Next()
	}
}

// RequireAuth gates owner-scoped routes: anonymous requests are redirected to
// the login surface and never reach the handler.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Principal(c); !ok {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Principal returns the authenticated identity set by CurrentUser, if any.
func Principal(c *gin.Context) (*models.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	principal, ok := value.(*models.Principal)
	return principal, ok
}
