package handlers

import (
	"fmt"

	"consultbr_backend/internal/logger"
	"consultbr_backend/internal/validator"
	"consultbr_backend/pkg/apperrors"
	"consultbr_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BaseHandler - общие помощники обработчиков
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// GetDB извлекает *gorm.DB, положенный DBMiddleware. Без него маршрут собран неверно.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	val, ok := c.Get(string(contextkeys.DBContextKey))
	if !ok {
		logger.CtxError(c.Request.Context(), "db not found in gin context")
		panic("handlers: DBMiddleware is not installed")
	}
	db, ok := val.(*gorm.DB)
	if !ok {
		panic(fmt.Sprintf("handlers: db in context has type %T", val))
	}
	return db
}

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	return h.bind(c, obj, "body", c.ShouldBindJSON)
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	return h.bind(c, obj, "query", c.ShouldBindQuery)
}

func (h *BaseHandler) BindAndValidate_URI(c *gin.Context, obj interface{}) bool {
	return h.bind(c, obj, "uri", c.ShouldBindUri)
}

func (h *BaseHandler) bind(c *gin.Context, obj interface{}, source string, bindFn func(interface{}) error) bool {
	if err := bindFn(obj); err != nil {
		logger.CtxWarn(c.Request.Context(), "cannot bind request", "source", source, "error", err.Error(), "path", c.FullPath())
		apperrors.HandleError(c, apperrors.NewBadRequestError(fmt.Sprintf("Invalid request %s: %v", source, err)))
		return false
	}
	return h.validate(c, obj, source)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}, source string) bool {
	err := h.validator.Validate(obj)
	if err == nil {
		return true
	}

	ctx := c.Request.Context()
	if vErr, ok := err.(*validator.ValidationError); ok {
		logger.CtxWarn(ctx, "validation failed", "source", source, "errors", vErr.Errors, "path", c.FullPath())
		apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
	} else {
		logger.CtxWithError(ctx, "validator failure", err, "source", source)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
	return false
}

// HandleServiceError - единственное место, где ошибки сервисов становятся ответом
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if !apperrors.As(err, &appErr) {
		logger.CtxWithError(ctx, "unexpected service error", err, "path", c.FullPath())
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(ctx, "service failure", err, "path", c.FullPath())
	} else {
		logger.CtxInfo(ctx, "request rejected", "code", appErr.Code, "message", appErr.Message, "path", c.FullPath())
	}
	apperrors.HandleError(c, appErr)
}

// GetAndAuthorizeUserID - userID, выставленный AuthMiddleware; иначе 401
func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(contextkeys.UserIDKey)
	if userID == "" {
		logger.CtxWarn(c.Request.Context(), "no user in context", "path", c.FullPath(), "ip", c.ClientIP())
		apperrors.HandleError(c, apperrors.ErrNotAuthenticated)
		return "", false
	}
	return userID, true
}
