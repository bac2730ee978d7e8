package middleware

import (
	"errors"
	"strings"

	"consultbr_backend/internal/auth"
	"consultbr_backend/internal/logger"
	"consultbr_backend/internal/models"
	"consultbr_backend/internal/repositories"
	"consultbr_backend/pkg/apperrors"
	"consultbr_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionParser проверяет токен сессии
type SessionParser interface {
	Parse(token string) (*auth.Claims, error)
}

// UserLookup - источник актуальной записи пользователя для проверки роли
type UserLookup interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
}

// sessionToken берет токен из cookie, затем из заголовка Authorization
func sessionToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func setUser(c *gin.Context, userID string) {
	c.Set(contextkeys.UserIDKey, userID)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), userID))
}

// AuthMiddleware требует валидную сессию
func AuthMiddleware(sessions SessionParser, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cookieName)
		if token == "" {
			apperrors.HandleError(c, apperrors.ErrNotAuthenticated)
			return
		}

		claims, err := sessions.Parse(token)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		setUser(c, claims.UserID())
		c.Next()
	}
}

// OptionalAuthMiddleware выставляет userID, если сессия валидна, но никогда не отклоняет запрос
func OptionalAuthMiddleware(sessions SessionParser, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := sessionToken(c, cookieName); token != "" {
			if claims, err := sessions.Parse(token); err == nil {
				setUser(c, claims.UserID())
			}
		}
		c.Next()
	}
}

// RequireRoles - единственная проверка ролей. Пользователь перечитывается из БД на каждый запрос,
// поэтому смена роли или блокировка действуют сразу.
func RequireRoles(users UserLookup, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == "" {
			apperrors.HandleError(c, apperrors.ErrNotAuthenticated)
			return
		}

		db, ok := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
		if !ok {
			apperrors.HandleError(c, apperrors.InternalError(errors.New("database is not attached to the request")))
			return
		}

		user, err := users.FindByID(db, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				apperrors.HandleError(c, apperrors.ErrNotAuthenticated)
				return
			}
			apperrors.HandleError(c, apperrors.InternalError(err))
			return
		}

		if !user.Status.CanSignIn() {
			apperrors.HandleError(c, apperrors.ErrUserSuspended)
			return
		}

		if !user.HasRole(roles...) {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}

		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(contextkeys.UserIDKey)
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}
