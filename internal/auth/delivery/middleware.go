package delivery

import (
	"net/http"
	"strings"

	authdomain "cinetrack-backend/internal/auth/domain"
	"cinetrack-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		identity, err := authUsecase.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("identity", identity)
		c.Set("userID", identity.UID)
		c.Next()
	}
}

// IdentityFromContext returns the authenticated identity set by
// AuthMiddleware, or nil when the request is unauthenticated.
func IdentityFromContext(c *gin.Context) *authdomain.Identity {
	value, exists := c.Get("identity")
	if !exists {
		return nil
	}
	identity, ok := value.(*authdomain.Identity)
	if !ok {
		return nil
	}
	return identity
}
