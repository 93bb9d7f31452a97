package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"settings_backend/internal/auth"
	"settings_backend/internal/handlers"
	"settings_backend/internal/middleware"
)

// RegisterRoutes регистрирует все HTTP-маршруты приложения.
// adminRoles - роли, которым разрешено чтение чужих настроек.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	parser auth.TokenParser,
	adminRoles []string,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := ginRouter.Group("/api/v1")
	settings := api.Group("/settings")
	settings.Use(middleware.AuthMiddleware(parser))
	{
		settings.GET("/me", appHandlers.SettingsHandler.GetMySettings)
		settings.GET("/me/inbox", appHandlers.SettingsHandler.GetInboxMessages)
		settings.GET("/:userId", middleware.RequireRoles(adminRoles...), appHandlers.SettingsHandler.GetUserSettings)

		channels := settings.Group("/me/channels/:channel")
		{
			channels.POST("/verification-code", appHandlers.SettingsHandler.SendVerificationCode)
			channels.POST("/activate", appHandlers.SettingsHandler.ActivateChannel)
			channels.POST("/deactivate", appHandlers.SettingsHandler.DeactivateChannel)
		}
	}
}
