package handlers

import (
	"consultbr_backend/internal/middleware"
	"consultbr_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Guards - middleware доступа, общие для всех хендлеров
type Guards struct {
	Auth         gin.HandlerFunc
	OptionalAuth gin.HandlerFunc
	users        middleware.UserLookup
}

func NewGuards(sessions middleware.SessionParser, cookieName string, users middleware.UserLookup) *Guards {
	return &Guards{
		Auth:         middleware.AuthMiddleware(sessions, cookieName),
		OptionalAuth: middleware.OptionalAuthMiddleware(sessions, cookieName),
		users:        users,
	}
}

// Roles - проверка роли по актуальной записи пользователя
func (g *Guards) Roles(roles ...models.UserRole) gin.HandlerFunc {
	return middleware.RequireRoles(g.users, roles...)
}
