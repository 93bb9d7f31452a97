package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"settings_backend/internal/auth"
	"settings_backend/internal/logger"
	"settings_backend/pkg/apperrors"
)

const (
	// Ключи контекста Gin для данных аутентификации
	ContextClaimsKey = "claims"
	ContextUserIDKey = "userID"
	ContextTokenKey  = "accessToken"
)

// AuthMiddleware - middleware проверки JWT. Сырой токен также кладется
// в контекст: сервисный слой резолвит из него identity самостоятельно.
func AuthMiddleware(parser auth.TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := parser.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID())
		c.Request = c.Request.WithContext(ctx)

		c.Set(ContextClaimsKey, claims)
		c.Set(ContextUserIDKey, claims.UserID())
		c.Set(ContextTokenKey, tokenStr)
		c.Next()
	}
}

// RequireRoles - middleware для проверки наличия хотя бы одной из ролей.
// Отказ отдается в общем формате ошибок приложения.
func RequireRoles(roles ...string) gin.HandlerFunc {
	roleSet := make(map[string]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		claimsVal, exists := c.Get(ContextClaimsKey)
		if !exists {
			abortForbidden(c, "Access denied: no role")
			return
		}

		claims, ok := claimsVal.(*auth.Claims)
		if !ok {
			abortForbidden(c, "Access denied: invalid claims type")
			return
		}

		for _, r := range claims.Roles() {
			if roleSet[r] {
				c.Next()
				return
			}
		}
		abortForbidden(c, "Access denied: insufficient role")
	}
}

func abortForbidden(c *gin.Context, message string) {
	apperrors.HandleError(c, apperrors.NewForbiddenError(message))
	c.Abort()
}

// GetAccessToken извлекает сырой токен доступа из контекста
func GetAccessToken(c *gin.Context) string {
	token, exists := c.Get(ContextTokenKey)
	if !exists {
		return ""
	}

	tokenStr, ok := token.(string)
	if !ok {
		return ""
	}
	return tokenStr
}
