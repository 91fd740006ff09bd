package api

import (
	"net/http"

	appDelivery "jobdeck-backend/internal/application/delivery"
	"jobdeck-backend/internal/auth/delivery"
	authUsecase "jobdeck-backend/internal/auth/usecase"
	taskDelivery "jobdeck-backend/internal/task/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authUc authUsecase.AuthUsecase,
	authHandler *delivery.AuthHandler,
	taskHandler *taskDelivery.TaskHandler,
	appHandler *appDelivery.ApplicationHandler,
) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", delivery.AuthMiddleware(authUc), authHandler.Me)

			// Mailbox consent flows
			auth.GET("/google/connect", delivery.AuthMiddleware(authUc), authHandler.GoogleConnect)
			auth.GET("/google/callback", authHandler.GoogleCallback)
			auth.POST("/imap", delivery.AuthMiddleware(authUc), authHandler.ConnectIMAP)
		}

		// FCM routes (protected)
		fcm := api.Group("/fcm")
		fcm.Use(delivery.AuthMiddleware(authUc))
		{
			fcm.POST("/register", authHandler.RegisterFCMToken)
			fcm.DELETE("/:token", authHandler.UnregisterFCMToken)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(delivery.AuthMiddleware(authUc))
		{
			tasks.GET("", taskHandler.GetTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PUT("/:id", taskHandler.ToggleTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Application routes (protected)
		apps := api.Group("/applications")
		apps.Use(delivery.AuthMiddleware(authUc))
		{
			apps.GET("", appHandler.GetApplications)
			apps.POST("", appHandler.CreateApplication)
			apps.PUT("/:id", appHandler.UpdateApplication)
			apps.DELETE("/:id", appHandler.DeleteApplication)

			apps.POST("/sync", appHandler.SyncMailbox)
			apps.GET("/sync/history", appHandler.GetSyncHistory)
			apps.POST("/watch", appHandler.WatchMailbox)
			apps.POST("/watch/stop", appHandler.StopWatch)

			apps.POST("/search/semantic", appHandler.SemanticSearch)
		}
	}
}
