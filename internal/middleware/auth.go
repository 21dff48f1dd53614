package middleware

import (
	"net/http"
	"strings"

	"investment-service/internal/models"
	"investment-service/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserId = "userId"
	ContextRole   = "role"
)

// RequireAuth validates the Bearer token and stores the caller's identity
// on the request context.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.NewErrorResponse("Unauthorized", nil, http.StatusUnauthorized))
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.NewErrorResponse("Invalid or expired token", nil, http.StatusUnauthorized))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.NewErrorResponse("Invalid token claims", nil, http.StatusUnauthorized))
			return
		}

		sub, ok := claims["sub"].(float64)
		if !ok || sub <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.NewErrorResponse("Invalid token subject", nil, http.StatusUnauthorized))
			return
		}

		role, _ := claims["role"].(string)
		c.Set(ContextUserId, int(sub))
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RequireAdmin gates admin routes; it must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				common.NewErrorResponse("Admin access required", nil, http.StatusForbidden))
			return
		}
		c.Next()
	}
}

// UserId returns the authenticated caller's id, zero when unauthenticated.
func UserId(c *gin.Context) int {
	return c.GetInt(ContextUserId)
}
