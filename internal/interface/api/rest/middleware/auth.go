package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"user-record-manager/internal/domain/user"
	"user-record-manager/internal/infrastructure/jwt"
)

const (
	CtxUserRole  = "userRole"
	CtxUserID    = "userID"
	CtxUserEmail = "userEmail"
)

func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing Authorization header"},
			)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token format"},
			)
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		c.Set(CtxUserRole, claims.Role)
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserEmail, claims.Email)

		c.Next()
	}
}

// SelfOrAdmin lets the request through when the token belongs to the user
// named by param, or to an admin. Must run after AuthMiddleware.
func SelfOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserRole) == user.RoleAdmin.String() ||
			c.GetString(CtxUserID) == c.Param(param) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(
			http.StatusForbidden,
			gin.H{"error": "forbidden"},
		)
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserRole) != user.RoleAdmin.String() {
			c.AbortWithStatusJSON(
				http.StatusForbidden,
				gin.H{"error": "forbidden"},
			)
			return
		}
		c.Next()
	}
}
