package middleware

import (
	"errors"
	"jobboard/shared/cookie"
	"jobboard/shared/jwt_service"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ключ gin контекста, под которым лежит jwt_service.Subject текущего пользователя
const SessionKey = "session"

var errInvalidAuthHeader = errors.New("invalid authorization header format")

// SessionAuth пропускает запрос только с валидной сессией (Bearer токен или сессионная кука)
func SessionAuth(tokens jwt_service.SessionTokens, cookies cookie.CookieManagerInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := resolveSession(c, tokens, cookies)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(SessionKey, subject)
		c.Next()
	}
}

// OptionalSession кладёт сессию в контекст, если она есть, и никогда не отклоняет запрос
func OptionalSession(tokens jwt_service.SessionTokens, cookies cookie.CookieManagerInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if subject, err := resolveSession(c, tokens, cookies); err == nil {
			c.Set(SessionKey, subject)
		}
		c.Next()
	}
}

// RequireRole - 403 если роль пользователя не из списка; ставится после SessionAuth
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, ok := GetSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		for _, role := range roles {
			if subject.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}

// GetSession достаёт пользователя текущего запроса
func GetSession(c *gin.Context) (jwt_service.Subject, bool) {
	value, exists := c.Get(SessionKey)
	if !exists {
		return jwt_service.Subject{}, false
	}
	subject, ok := value.(jwt_service.Subject)
	return subject, ok
}

// токен берётся из заголовка Authorization, иначе из сессионной куки
func resolveSession(c *gin.Context, tokens jwt_service.SessionTokens, cookies cookie.CookieManagerInterface) (jwt_service.Subject, error) {
	var tokenString string

	if header := c.GetHeader("Authorization"); header != "" {
		token, err := CheckBearerFormat(header)
		if err != nil {
			return jwt_service.Subject{}, err
		}
		tokenString = token
	} else if cookies != nil {
		token, err := cookies.GetCookie(c, cookies.SessionName())
		if err != nil {
			return jwt_service.Subject{}, err
		}
		tokenString = token
	}

	claims, err := tokens.ParseSessionToken(tokenString)
	if err != nil {
		slog.Debug("session rejected", "error", err, "path", c.FullPath())
		return jwt_service.Subject{}, err
	}
	return claims.Subject(), nil
}

// CheckBearerFormat проверяет формат "Bearer <token>"
func CheckBearerFormat(authHeader string) (string, error) {
	const prefix = "Bearer "
	if len(authHeader) > len(prefix) && strings.EqualFold(authHeader[:len(prefix)], prefix) {
		return strings.TrimSpace(authHeader[len(prefix):]), nil
	}
	return "", errInvalidAuthHeader
}
