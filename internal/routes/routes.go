package routes

import (
	"net/http"

	"consultbr_backend/internal/handlers"
	"consultbr_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StaticFiles - раздача загруженных файлов локального хранилища
type StaticFiles struct {
	URLPrefix string
	Dir       string
}

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	guards *handlers.Guards,
	static *StaticFiles,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := ginRouter.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api, guards)
		appHandlers.ProfileHandler.RegisterRoutes(api, guards)
		appHandlers.ProjectHandler.RegisterRoutes(api, guards)
		appHandlers.ProposalHandler.RegisterRoutes(api, guards)
		appHandlers.MessageHandler.RegisterRoutes(api, guards)
		appHandlers.FavoriteHandler.RegisterRoutes(api, guards)
		appHandlers.PortfolioHandler.RegisterRoutes(api, guards)
		appHandlers.DashboardHandler.RegisterRoutes(api, guards)
		appHandlers.SpecializationHandler.RegisterRoutes(api, guards)
		appHandlers.NotificationHandler.RegisterRoutes(api, guards)
		appHandlers.TransactionHandler.RegisterRoutes(api, guards)
		appHandlers.UploadHandler.RegisterRoutes(api, guards)
	}

	if static != nil && static.URLPrefix != "" {
		ginRouter.Static(static.URLPrefix, static.Dir)
		logger.Info("Serving uploaded files", "prefix", static.URLPrefix, "dir", static.Dir)
	}
}
